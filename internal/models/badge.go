package models

import "time"

// Badge IDs in the registry
const (
	BadgeFirstLogin   = "first_login"
	BadgeStreak3      = "streak_3"
	BadgeVocabMaster  = "vocab_master"
	BadgeArtist       = "artist"
	BadgeSinger       = "singer"
	BadgeDragonMaster = "dragon_master"
	BadgeWriter       = "writer"
)

// Badge is an achievement a player can unlock once
type Badge struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

// DefaultBadges returns a fresh copy of the badge registry as a new player sees it
func DefaultBadges() []Badge {
	return []Badge{
		{ID: BadgeFirstLogin, Name: "First Arrival", Description: "Visited the island for the first time!", Icon: "🚢", Unlocked: true},
		{ID: BadgeStreak3, Name: "Consistent Cub", Description: "Reached a 3-day streak!", Icon: "🐾"},
		{ID: BadgeVocabMaster, Name: "Word Collector", Description: "Completed a full vocabulary set!", Icon: "📚"},
		{ID: BadgeArtist, Name: "Magic Artist", Description: "Created 5 magical drawings!", Icon: "🎨"},
		{ID: BadgeSinger, Name: "Pop Star", Description: "Sang your heart out on Singing Island!", Icon: "🎤"},
		{ID: BadgeDragonMaster, Name: "Dragon Rider", Description: "Evolved Wordy to a Dragon!", Icon: "🐲"},
		{ID: BadgeWriter, Name: "Letter Master", Description: "Traced 5 different letters perfectly!", Icon: "✍️"},
	}
}

// IsRegisteredBadge reports whether id belongs to the registry
func IsRegisteredBadge(id string) bool {
	for _, b := range DefaultBadges() {
		if b.ID == id {
			return true
		}
	}
	return false
}

// MergeBadges overlays stored unlock state onto the registry. Unknown stored
// badges are dropped and registry badges missing from storage are added.
func MergeBadges(stored []Badge) []Badge {
	byID := make(map[string]Badge, len(stored))
	for _, b := range stored {
		byID[b.ID] = b
	}
	merged := DefaultBadges()
	for i, b := range merged {
		if s, ok := byID[b.ID]; ok && s.Unlocked {
			merged[i].Unlocked = true
			merged[i].UnlockedAt = s.UnlockedAt
		}
	}
	return merged
}
