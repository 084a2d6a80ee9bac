package service

import (
	"context"
	"strings"

	"wordisland/internal/models"
	"wordisland/internal/repository"
	"wordisland/internal/utils"
)

// JournalService appends keepsakes to the player's journal
type JournalService struct {
	repo     *repository.ProgressRepository
	calendar *Calendar
}

func NewJournalService(repo *repository.ProgressRepository, calendar *Calendar) *JournalService {
	return &JournalService{repo: repo, calendar: calendar}
}

func validateJournalEntry(entry models.NewJournalEntry) error {
	if !entry.Type.Valid() {
		return utils.ValidationError{Field: "type", Message: "unknown journal entry type"}
	}
	if strings.TrimSpace(entry.English) == "" {
		return utils.ValidationError{Field: "english", Message: "caption is required"}
	}
	return nil
}

// AddEntry stamps and prepends entry, newest first
func (s *JournalService) AddEntry(ctx context.Context, entry models.NewJournalEntry) (models.JournalEntry, error) {
	if err := validateJournalEntry(entry); err != nil {
		return models.JournalEntry{}, err
	}

	entries, err := s.repo.Journal(ctx)
	if err != nil {
		return models.JournalEntry{}, err
	}

	now := s.calendar.Now().In(s.calendar.Location)
	stored := models.JournalEntry{
		ID:         utils.GenerateOrderedID(),
		Type:       entry.Type,
		English:    entry.English,
		Indonesian: entry.Indonesian,
		Data:       entry.Data,
		Date:       now.Format(models.JournalDateLayout),
		CreatedAt:  now,
	}

	updated := make([]models.JournalEntry, 0, len(entries)+1)
	updated = append(updated, stored)
	updated = append(updated, entries...)
	if err := s.repo.SaveJournal(ctx, updated); err != nil {
		return models.JournalEntry{}, err
	}
	return stored, nil
}

// Entries returns the journal newest first
func (s *JournalService) Entries(ctx context.Context) ([]models.JournalEntry, error) {
	return s.repo.Journal(ctx)
}
