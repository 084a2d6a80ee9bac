package service

import (
	"context"

	"go.uber.org/zap"

	"wordisland/internal/models"
	"wordisland/internal/repository"
	"wordisland/internal/utils"
)

const questClaimReason = "Daily Mission Completed! 🏆"

// QuestService runs the daily quest state machine
type QuestService struct {
	repo        *repository.ProgressRepository
	progression *ProgressionService
	calendar    *Calendar
	logger      *zap.Logger
}

func NewQuestService(repo *repository.ProgressRepository, progression *ProgressionService, calendar *Calendar, logger *zap.Logger) *QuestService {
	return &QuestService{repo: repo, progression: progression, calendar: calendar, logger: logger}
}

// NeedsQuest reports whether today has no quest yet
func (s *QuestService) NeedsQuest(ctx context.Context) (bool, error) {
	q, err := s.repo.DailyQuest(ctx)
	if err != nil {
		return false, err
	}
	return q == nil || q.Date != s.calendar.Today(), nil
}

// IssueQuest stores candidate as today's quest, replacing any earlier one. An
// incomplete candidate is replaced by the default quest.
func (s *QuestService) IssueQuest(ctx context.Context, candidate models.QuestCandidate) (*models.DailyQuest, error) {
	if err := candidate.Validate(); err != nil {
		s.logger.Warn("using default quest", zap.Error(err))
		candidate = models.DefaultQuestCandidate()
	}

	q := &models.DailyQuest{
		ID:       utils.GenerateOrderedID(),
		Title:    candidate.Title,
		IdnTitle: candidate.IdnTitle,
		Goal:     candidate.Goal,
		Current:  0,
		Reward:   candidate.Reward,
		Type:     candidate.Type,
		Date:     s.calendar.Today(),
	}
	if err := s.repo.SaveDailyQuest(ctx, q); err != nil {
		return nil, err
	}
	s.logger.Info("daily quest issued",
		zap.String("quest", q.ID), zap.String("type", string(q.Type)), zap.Int("goal", q.Goal))
	return q, nil
}

// ReportProgress advances today's unclaimed quest when questType counts
// toward it. The returned bool is false when nothing changed.
func (s *QuestService) ReportProgress(ctx context.Context, questType models.QuestType, amount int) (*models.DailyQuest, bool, error) {
	q, err := s.repo.DailyQuest(ctx)
	if err != nil {
		return nil, false, err
	}
	if q == nil || q.IsClaimed || q.Date != s.calendar.Today() || !q.Accepts(questType) || amount <= 0 {
		s.logger.Debug("quest progress ignored", zap.String("type", string(questType)))
		return q, false, nil
	}
	if q.Current >= q.Goal {
		return q, false, nil
	}

	q.Current += amount
	if q.Current > q.Goal {
		q.Current = q.Goal
	}
	if err := s.repo.SaveDailyQuest(ctx, q); err != nil {
		return nil, false, err
	}
	return q, true, nil
}

// Claim pays the quest reward once the goal is reached. Repeated claims are
// no-ops.
func (s *QuestService) Claim(ctx context.Context) (*models.DailyQuest, bool, error) {
	q, err := s.repo.DailyQuest(ctx)
	if err != nil {
		return nil, false, err
	}
	if q == nil || q.IsClaimed || q.Current < q.Goal {
		s.logger.Debug("quest claim ignored")
		return q, false, nil
	}

	q.IsClaimed = true
	if err := s.repo.SaveDailyQuest(ctx, q); err != nil {
		return nil, false, err
	}
	if _, err := s.progression.AwardPoints(ctx, q.Reward, questClaimReason); err != nil {
		return q, true, err
	}
	return q, true, nil
}

// Current returns the stored quest, if any
func (s *QuestService) Current(ctx context.Context) (*models.DailyQuest, error) {
	return s.repo.DailyQuest(ctx)
}
