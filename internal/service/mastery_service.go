package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"wordisland/internal/models"
	"wordisland/internal/repository"
)

// MasteryView is one activity's mastery with its display tier
type MasteryView struct {
	Activity models.Activity    `json:"activity"`
	Percent  int                `json:"percent"`
	Tier     models.MasteryTier `json:"tier"`
}

// MasteryService accumulates bounded per-activity mastery
type MasteryService struct {
	repo    *repository.ProgressRepository
	weights map[models.Activity]int
	logger  *zap.Logger
}

// NewMasteryService uses weights for per-success increments; nil selects the
// default table.
func NewMasteryService(repo *repository.ProgressRepository, weights map[models.Activity]int, logger *zap.Logger) *MasteryService {
	if weights == nil {
		weights = models.DefaultMasteryWeights
	}
	return &MasteryService{repo: repo, weights: weights, logger: logger}
}

// IncrementMastery raises activity's mastery by delta, saturating at 100.
// Non-positive deltas leave the value unchanged.
func (s *MasteryService) IncrementMastery(ctx context.Context, activity models.Activity, delta int) (int, error) {
	if !activity.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrUnknownActivity, activity)
	}

	m, err := s.repo.Mastery(ctx)
	if err != nil {
		return 0, err
	}
	current := m.Value(activity)
	if delta <= 0 {
		s.logger.Debug("ignoring non-positive mastery delta",
			zap.String("activity", string(activity)), zap.Int("delta", delta))
		return current, nil
	}

	next := models.MasteryMax
	if delta < models.MasteryMax-current {
		next = models.ClampMastery(current + delta)
	}
	if next == current {
		return current, nil
	}
	m[activity] = next
	if err := s.repo.SaveMastery(ctx, m); err != nil {
		return current, err
	}
	return next, nil
}

// RecordSuccess increments activity by its configured weight
func (s *MasteryService) RecordSuccess(ctx context.Context, activity models.Activity) (int, error) {
	return s.IncrementMastery(ctx, activity, s.weights[activity])
}

// Weight returns the per-success increment for activity
func (s *MasteryService) Weight(activity models.Activity) int {
	return s.weights[activity]
}

// All returns every activity's mastery in display order
func (s *MasteryService) All(ctx context.Context) ([]MasteryView, error) {
	m, err := s.repo.Mastery(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]MasteryView, 0, len(models.AllActivities))
	for _, a := range models.AllActivities {
		v := m.Value(a)
		views = append(views, MasteryView{Activity: a, Percent: v, Tier: models.MasteryTierFor(v)})
	}
	return views, nil
}
