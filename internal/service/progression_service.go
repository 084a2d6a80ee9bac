package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"wordisland/internal/models"
	"wordisland/internal/repository"
)

// AwardResult reports the effect of a points award
type AwardResult struct {
	NewTotal  int    `json:"new_total"`
	LeveledUp bool   `json:"leveled_up"`
	Level     int    `json:"level"`
	Rank      string `json:"rank"`
}

// ProgressionService owns points, level and rank
type ProgressionService struct {
	repo     *repository.ProgressRepository
	notifier Notifier
	logger   *zap.Logger
}

func NewProgressionService(repo *repository.ProgressRepository, notifier Notifier, logger *zap.Logger) *ProgressionService {
	return &ProgressionService{repo: repo, notifier: notifier, logger: logger}
}

// AwardPoints adds amount to the player's total and announces it. Negative
// amounts are treated as zero; a zero award still shows its toast.
func (s *ProgressionService) AwardPoints(ctx context.Context, amount int, reason string) (AwardResult, error) {
	return s.award(ctx, amount, reason, 0)
}

// AwardPointsWithDelayedToast persists the award immediately but shows its
// toast after delay.
func (s *ProgressionService) AwardPointsWithDelayedToast(ctx context.Context, amount int, reason string, delay time.Duration) (AwardResult, error) {
	return s.award(ctx, amount, reason, delay)
}

func (s *ProgressionService) award(ctx context.Context, amount int, reason string, toastDelay time.Duration) (AwardResult, error) {
	if amount < 0 {
		s.logger.Debug("clamping negative award", zap.Int("amount", amount), zap.String("reason", reason))
		amount = 0
	}

	before, err := s.repo.Points(ctx)
	if err != nil {
		return AwardResult{}, err
	}
	after := math.MaxInt
	if amount <= math.MaxInt-before {
		after = before + amount
	}
	if err := s.repo.SetPoints(ctx, after); err != nil {
		return AwardResult{}, err
	}

	oldLevel := models.LevelForPoints(before)
	newLevel := models.LevelForPoints(after)
	result := AwardResult{
		NewTotal:  after,
		LeveledUp: newLevel > oldLevel,
		Level:     newLevel,
		Rank:      models.RankForLevel(newLevel),
	}

	if toastDelay > 0 {
		time.AfterFunc(toastDelay, func() { s.notifier.ShowReward(amount, reason) })
	} else {
		s.notifier.ShowReward(amount, reason)
	}
	if result.LeveledUp {
		s.notifier.ShowLevelUp(result.Level, result.Rank)
		s.logger.Info("player leveled up", zap.Int("level", result.Level), zap.String("rank", result.Rank))
	}

	return result, nil
}

// Progress returns points with the derived level view
func (s *ProgressionService) Progress(ctx context.Context) (int, models.LevelProgress, error) {
	points, err := s.repo.Points(ctx)
	if err != nil {
		return 0, models.LevelProgress{}, err
	}
	return points, models.ProgressForPoints(points), nil
}
