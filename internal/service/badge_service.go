package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"wordisland/internal/models"
	"wordisland/internal/repository"
)

// BadgeService unlocks registry badges exactly once
type BadgeService struct {
	repo     *repository.ProgressRepository
	rules    []BadgeRule
	calendar *Calendar
	logger   *zap.Logger
}

// NewBadgeService evaluates rules centrally; nil selects DefaultBadgeRules
func NewBadgeService(repo *repository.ProgressRepository, rules []BadgeRule, calendar *Calendar, logger *zap.Logger) *BadgeService {
	if rules == nil {
		rules = DefaultBadgeRules
	}
	return &BadgeService{repo: repo, rules: rules, calendar: calendar, logger: logger}
}

// Unlock flips badgeID to unlocked. Calling it again is a no-op that reports
// alreadyUnlocked.
func (s *BadgeService) Unlock(ctx context.Context, badgeID string) (alreadyUnlocked bool, err error) {
	if !models.IsRegisteredBadge(badgeID) {
		return false, fmt.Errorf("%w: %s", ErrUnknownBadge, badgeID)
	}

	badges, err := s.repo.Badges(ctx)
	if err != nil {
		return false, err
	}
	for i := range badges {
		if badges[i].ID != badgeID {
			continue
		}
		if badges[i].Unlocked {
			return true, nil
		}
		now := s.calendar.Now()
		badges[i].Unlocked = true
		badges[i].UnlockedAt = &now
		break
	}

	if err := s.repo.SaveBadges(ctx, badges); err != nil {
		return false, err
	}
	s.logger.Info("badge unlocked", zap.String("badge", badgeID))
	return false, nil
}

// EvaluateRules unlocks every badge whose rule now holds and returns the
// badges that changed.
func (s *BadgeService) EvaluateRules(ctx context.Context) ([]models.Badge, error) {
	facts, err := s.repo.Facts(ctx)
	if err != nil {
		return nil, err
	}
	points, err := s.repo.Points(ctx)
	if err != nil {
		return nil, err
	}
	streak, _, err := s.repo.Streak(ctx)
	if err != nil {
		return nil, err
	}
	in := RuleInput{Facts: facts, Points: points, Streak: streak}

	var unlocked []string
	for _, rule := range s.rules {
		if !rule.Satisfied(in) {
			continue
		}
		already, err := s.Unlock(ctx, rule.BadgeID)
		if err != nil {
			return nil, err
		}
		if !already {
			unlocked = append(unlocked, rule.BadgeID)
		}
	}
	if len(unlocked) == 0 {
		return nil, nil
	}

	badges, err := s.repo.Badges(ctx)
	if err != nil {
		return nil, err
	}
	var changed []models.Badge
	for _, b := range badges {
		for _, id := range unlocked {
			if b.ID == id {
				changed = append(changed, b)
			}
		}
	}
	return changed, nil
}

// Badges returns the full registry with unlock state
func (s *BadgeService) Badges(ctx context.Context) ([]models.Badge, error) {
	return s.repo.Badges(ctx)
}
