package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"wordisland/internal/models"
	"wordisland/internal/repository"
)

const milestoneReason = "Weekly Milestone Bonus! 🏆"

// StreakService evaluates the once-per-day login streak
type StreakService struct {
	repo           *repository.ProgressRepository
	progression    *ProgressionService
	notifier       Notifier
	calendar       *Calendar
	milestoneDelay time.Duration
	logger         *zap.Logger
}

func NewStreakService(repo *repository.ProgressRepository, progression *ProgressionService, notifier Notifier, calendar *Calendar, milestoneDelay time.Duration, logger *zap.Logger) *StreakService {
	return &StreakService{
		repo:           repo,
		progression:    progression,
		notifier:       notifier,
		calendar:       calendar,
		milestoneDelay: milestoneDelay,
		logger:         logger,
	}
}

func loginReason(streak int) string {
	if streak > 1 {
		return fmt.Sprintf("%d Day Streak! 🔥", streak)
	}
	return "Welcome Back! 🎁"
}

// EvaluateDailyLogin runs the day's streak check. The new streak and today's
// date are stored before any points are awarded, so a failed award is never
// retried for the same day.
func (s *StreakService) EvaluateDailyLogin(ctx context.Context) (models.LoginOutcome, error) {
	count, last, err := s.repo.Streak(ctx)
	if err != nil {
		return models.LoginOutcome{}, err
	}

	today := s.calendar.Today()
	outcome := models.EvaluateDailyLogin(today, today.AddDays(-1), last, count)
	if outcome.AlreadyEvaluated {
		s.logger.Debug("daily login already evaluated", zap.Stringer("date", today))
		return outcome, nil
	}

	if err := s.repo.SaveStreak(ctx, outcome.NewStreak, today); err != nil {
		return models.LoginOutcome{}, err
	}
	s.logger.Info("daily login evaluated",
		zap.Stringer("date", today),
		zap.Int("streak", outcome.NewStreak),
		zap.Int("bonus", outcome.TotalBonus()))

	s.notifier.ShowStreakSplash(outcome.NewStreak, outcome.TotalBonus())

	if _, err := s.progression.AwardPoints(ctx, outcome.DailyBonus(), loginReason(outcome.NewStreak)); err != nil {
		return outcome, fmt.Errorf("failed to award login bonus: %w", err)
	}
	if outcome.IsMilestone() {
		if _, err := s.progression.AwardPointsWithDelayedToast(ctx, outcome.MilestoneBonus, milestoneReason, s.milestoneDelay); err != nil {
			return outcome, fmt.Errorf("failed to award milestone bonus: %w", err)
		}
	}

	return outcome, nil
}

// Current returns the stored streak count
func (s *StreakService) Current(ctx context.Context) (int, models.Date, error) {
	return s.repo.Streak(ctx)
}
