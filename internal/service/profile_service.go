package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"wordisland/internal/models"
	"wordisland/internal/repository"
	"wordisland/internal/utils"
)

const (
	profileUpdatePoints = 10
	tutorialPoints      = 100
	feedPoints          = 5
)

// ProfileService manages the player's identity, word bag and companion
type ProfileService struct {
	repo        *repository.ProgressRepository
	progression *ProgressionService
	mastery     *MasteryService
	calendar    *Calendar
	logger      *zap.Logger
}

func NewProfileService(repo *repository.ProgressRepository, progression *ProgressionService, mastery *MasteryService, calendar *Calendar, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		repo:        repo,
		progression: progression,
		mastery:     mastery,
		calendar:    calendar,
		logger:      logger,
	}
}

func validateIdentity(name, avatar string) error {
	if err := utils.ValidateName(name); err != nil {
		return err
	}
	if !models.IsAvatar(avatar) {
		return utils.ValidationError{Field: "avatar", Message: "unknown avatar"}
	}
	return nil
}

// Create stores a new profile. It fails with ErrProfileExists if one is
// already present.
func (s *ProfileService) Create(ctx context.Context, name, avatar string) (*models.PlayerProfile, error) {
	if err := validateIdentity(name, avatar); err != nil {
		return nil, err
	}
	existing, err := s.repo.Profile(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProfileExists
	}

	p := &models.PlayerProfile{
		Name:         strings.TrimSpace(name),
		Avatar:       avatar,
		JoinedDate:   s.calendar.Now(),
		LearnedWords: []string{},
		EatenWords:   []string{},
	}
	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the profile or ErrNoProfile
func (s *ProfileService) Get(ctx context.Context) (*models.PlayerProfile, error) {
	p, err := s.repo.Profile(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNoProfile
	}
	return p, nil
}

// Update changes name and avatar and rewards the edit
func (s *ProfileService) Update(ctx context.Context, name, avatar string) (*models.PlayerProfile, error) {
	if err := validateIdentity(name, avatar); err != nil {
		return nil, err
	}
	p, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(name)
	p.Avatar = avatar
	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	if _, err := s.progression.AwardPoints(ctx, profileUpdatePoints, "Profile Updated! ✨"); err != nil {
		return p, err
	}
	return p, nil
}

// CompleteTutorial marks the guided tour done. Only the first call pays out.
func (s *ProfileService) CompleteTutorial(ctx context.Context) (bool, error) {
	p, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	if p.TutorialComplete {
		return false, nil
	}
	p.TutorialComplete = true
	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return false, err
	}
	if _, err := s.progression.AwardPoints(ctx, tutorialPoints, "Guided Tour Complete! 🗺️"); err != nil {
		return true, err
	}
	return true, nil
}

// AddLearnedWord puts word in the word bag. Known words are ignored.
func (s *ProfileService) AddLearnedWord(ctx context.Context, word string) (bool, error) {
	if err := utils.ValidateWord(word); err != nil {
		return false, err
	}
	word = utils.NormalizeWord(word)

	p, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	if p.HasLearned(word) {
		return false, nil
	}
	p.LearnedWords = append(p.LearnedWords, word)
	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return false, err
	}
	return true, nil
}

// FeedWord gives a learned, uneaten word to the companion
func (s *ProfileService) FeedWord(ctx context.Context, word string) (bool, error) {
	word = utils.NormalizeWord(word)
	p, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	if !p.HasLearned(word) || p.HasEaten(word) {
		s.logger.Debug("companion refused word", zap.String("word", word))
		return false, nil
	}

	p.EatenWords = append(p.EatenWords, word)
	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return false, err
	}
	if _, err := s.progression.AwardPoints(ctx, feedPoints, "Feeding Wordy! 🥯"); err != nil {
		return true, err
	}
	if _, err := s.mastery.RecordSuccess(ctx, models.ActivityPet); err != nil {
		return true, err
	}
	return true, nil
}
