package models

import (
	"errors"
	"strings"
)

// QuestType is the activity category a daily quest counts
type QuestType string

const (
	QuestTypeVocab     QuestType = "vocab"
	QuestTypeChat      QuestType = "chat"
	QuestTypeScramble  QuestType = "scramble"
	QuestTypeAny       QuestType = "any"
	QuestTypeSinging   QuestType = "singing"
	QuestTypeScavenger QuestType = "scavenger"
	QuestTypeTracing   QuestType = "tracing"
)

var questTypes = []QuestType{
	QuestTypeVocab, QuestTypeChat, QuestTypeScramble, QuestTypeAny,
	QuestTypeSinging, QuestTypeScavenger, QuestTypeTracing,
}

func (q QuestType) Valid() bool {
	for _, known := range questTypes {
		if q == known {
			return true
		}
	}
	return false
}

// DailyQuest is the one quest a player holds for a calendar day
type DailyQuest struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	IdnTitle  string    `json:"idnTitle"`
	Goal      int       `json:"goal"`
	Current   int       `json:"current"`
	Reward    int       `json:"reward"`
	Type      QuestType `json:"type"`
	IsClaimed bool      `json:"isClaimed"`
	Date      Date      `json:"date"`
}

// QuestState is the lifecycle position of a quest on a given day
type QuestState string

const (
	QuestAbsent    QuestState = "absent"
	QuestActive    QuestState = "active"
	QuestClaimable QuestState = "claimable"
	QuestClaimed   QuestState = "claimed"
)

// StateOn reports the quest's state as seen on today. A quest from another
// day is absent.
func (q *DailyQuest) StateOn(today Date) QuestState {
	if q == nil || q.Date != today {
		return QuestAbsent
	}
	switch {
	case q.IsClaimed:
		return QuestClaimed
	case q.Current >= q.Goal:
		return QuestClaimable
	default:
		return QuestActive
	}
}

// Accepts reports whether a progress report of type t counts toward the quest
func (q *DailyQuest) Accepts(t QuestType) bool {
	return q.Type == QuestTypeAny || q.Type == t
}

// QuestCandidate is a generated quest before it is issued
type QuestCandidate struct {
	Title    string    `json:"title"`
	IdnTitle string    `json:"idnTitle"`
	Goal     int       `json:"goal"`
	Reward   int       `json:"reward"`
	Type     QuestType `json:"type"`
}

var ErrInvalidQuestCandidate = errors.New("invalid quest candidate")

// Validate requires every field to be present and sensible
func (c QuestCandidate) Validate() error {
	switch {
	case strings.TrimSpace(c.Title) == "":
		return errors.Join(ErrInvalidQuestCandidate, errors.New("missing title"))
	case strings.TrimSpace(c.IdnTitle) == "":
		return errors.Join(ErrInvalidQuestCandidate, errors.New("missing idnTitle"))
	case c.Goal <= 0:
		return errors.Join(ErrInvalidQuestCandidate, errors.New("goal must be positive"))
	case c.Reward <= 0:
		return errors.Join(ErrInvalidQuestCandidate, errors.New("reward must be positive"))
	case !c.Type.Valid():
		return errors.Join(ErrInvalidQuestCandidate, errors.New("unknown type "+string(c.Type)))
	}
	return nil
}

// DefaultQuestCandidate is issued whenever generation fails
func DefaultQuestCandidate() QuestCandidate {
	return QuestCandidate{
		Title:    "Word Explorer",
		IdnTitle: "Penjelajah Kata",
		Goal:     5,
		Reward:   200,
		Type:     QuestTypeVocab,
	}
}
