package service

import "wordisland/internal/models"

// RuleInput is the state badge rules are evaluated against
type RuleInput struct {
	Facts  models.Facts
	Points int
	Streak int
}

// BadgeRule unlocks BadgeID once Satisfied holds
type BadgeRule struct {
	BadgeID   string
	Satisfied func(RuleInput) bool
}

const (
	artworksForArtist = 5
	lettersForWriter  = 5
	streakForCub      = 3
)

// DefaultBadgeRules covers every badge in the registry
var DefaultBadgeRules = []BadgeRule{
	{BadgeID: models.BadgeFirstLogin, Satisfied: func(in RuleInput) bool { return in.Facts.Launches > 0 }},
	{BadgeID: models.BadgeStreak3, Satisfied: func(in RuleInput) bool { return in.Streak >= streakForCub }},
	{BadgeID: models.BadgeVocabMaster, Satisfied: func(in RuleInput) bool { return in.Facts.VocabSets > 0 }},
	{BadgeID: models.BadgeArtist, Satisfied: func(in RuleInput) bool { return in.Facts.Drawings >= artworksForArtist }},
	{BadgeID: models.BadgeSinger, Satisfied: func(in RuleInput) bool { return in.Facts.SongsSung > 0 }},
	{BadgeID: models.BadgeDragonMaster, Satisfied: func(in RuleInput) bool {
		return models.CompanionStageForPoints(in.Points) == models.CompanionMaster
	}},
	{BadgeID: models.BadgeWriter, Satisfied: func(in RuleInput) bool { return in.Facts.LettersTraced >= lettersForWriter }},
}
