package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultBadgesSeedFirstArrival(t *testing.T) {
	badges := DefaultBadges()
	assert.Len(t, badges, 7)
	for _, b := range badges {
		assert.Equal(t, b.ID == BadgeFirstLogin, b.Unlocked, b.ID)
	}
}

func TestMergeBadges(t *testing.T) {
	stored := []Badge{
		{ID: BadgeArtist, Name: "Old name", Unlocked: true},
		{ID: "retired_badge", Unlocked: true},
	}

	merged := MergeBadges(stored)

	assert.Len(t, merged, len(DefaultBadges()))
	for _, b := range merged {
		switch b.ID {
		case BadgeArtist:
			assert.True(t, b.Unlocked)
			assert.Equal(t, "Magic Artist", b.Name)
		case BadgeFirstLogin:
			assert.True(t, b.Unlocked)
		default:
			assert.False(t, b.Unlocked, b.ID)
		}
	}
	assert.False(t, IsRegisteredBadge("retired_badge"))
}
