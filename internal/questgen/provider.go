// Package questgen produces the day's quest content.
package questgen

import (
	"context"

	"wordisland/internal/models"
)

// Provider generates a candidate daily quest. Implementations may fail; the
// caller substitutes the default quest.
type Provider interface {
	GenerateQuest(ctx context.Context) (models.QuestCandidate, error)
}

// StaticProvider always offers the same candidate. It is used when no AI
// backend is configured.
type StaticProvider struct {
	Candidate models.QuestCandidate
}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{Candidate: models.DefaultQuestCandidate()}
}

func (p *StaticProvider) GenerateQuest(ctx context.Context) (models.QuestCandidate, error) {
	return p.Candidate, nil
}
