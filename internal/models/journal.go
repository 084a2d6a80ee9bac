package models

import "time"

// JournalType categorizes a journal entry
type JournalType string

const (
	JournalPhoto   JournalType = "photo"
	JournalDrawing JournalType = "drawing"
	JournalMovie   JournalType = "movie"
	JournalTracing JournalType = "tracing"
	JournalBadge   JournalType = "badge"
)

func (t JournalType) Valid() bool {
	switch t {
	case JournalPhoto, JournalDrawing, JournalMovie, JournalTracing, JournalBadge:
		return true
	}
	return false
}

// JournalDateLayout formats the human-readable entry date
const JournalDateLayout = "Jan 2, 2006"

// JournalEntry is one keepsake in the player's journal
type JournalEntry struct {
	ID         string      `json:"id"`
	Type       JournalType `json:"type"`
	English    string      `json:"english"`
	Indonesian string      `json:"indonesian"`
	Data       string      `json:"data,omitempty"`
	Date       string      `json:"date"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// NewJournalEntry is the caller-supplied part of an entry
type NewJournalEntry struct {
	Type       JournalType `json:"type"`
	English    string      `json:"english"`
	Indonesian string      `json:"indonesian"`
	Data       string      `json:"data,omitempty"`
}
