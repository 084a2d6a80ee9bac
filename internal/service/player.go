package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"wordisland/internal/models"
	"wordisland/internal/questgen"
	"wordisland/internal/repository"
	"wordisland/internal/store"
	"wordisland/internal/utils"
)

// ActivityResult is what a mini-game reports after a success
type ActivityResult struct {
	Points       int                     `json:"points"`
	Reason       string                  `json:"reason"`
	Words        []string                `json:"words,omitempty"`
	SetCompleted bool                    `json:"set_completed"`
	Entry        *models.NewJournalEntry `json:"journal_entry,omitempty"`
}

// ActivityOutcome summarizes everything one activity report changed
type ActivityOutcome struct {
	Award     AwardResult          `json:"award"`
	Mastery   int                  `json:"mastery"`
	Quest     *models.DailyQuest   `json:"quest,omitempty"`
	Entry     *models.JournalEntry `json:"journal_entry,omitempty"`
	NewBadges []models.Badge       `json:"new_badges,omitempty"`
}

// SessionStart is the result of the once-per-session bootstrap
type SessionStart struct {
	Login     models.LoginOutcome `json:"login"`
	Quest     *models.DailyQuest  `json:"quest,omitempty"`
	NewBadges []models.Badge      `json:"new_badges,omitempty"`
}

// Snapshot is the full progression view of a player
type Snapshot struct {
	Profile     *models.PlayerProfile `json:"profile"`
	Points      int                   `json:"points"`
	Progress    models.LevelProgress  `json:"progress"`
	Streak      int                   `json:"streak"`
	LastLogin   models.Date           `json:"last_login"`
	Companion   models.CompanionStage `json:"companion"`
	PantryCount int                   `json:"pantry_count"`
	Badges      []models.Badge        `json:"badges"`
	Mastery     []MasteryView         `json:"mastery"`
	Quest       *models.DailyQuest    `json:"quest,omitempty"`
	QuestState  models.QuestState     `json:"quest_state"`
}

// PlayerOptions configures a Player
type PlayerOptions struct {
	Calendar       *Calendar
	Notifier       Notifier
	Provider       questgen.Provider
	Weights        map[models.Activity]int
	Rules          []BadgeRule
	MilestoneDelay time.Duration
	Logger         *zap.Logger
}

// Player is one player's progression engine. Every event runs under the
// player's lock so read-modify-write sequences never interleave.
type Player struct {
	ID string

	mu       sync.Mutex
	provider questgen.Provider
	logger   *zap.Logger

	settings    *repository.SettingsRepository
	repo        *repository.ProgressRepository
	Progression *ProgressionService
	Streak      *StreakService
	Mastery     *MasteryService
	Badges      *BadgeService
	Quests      *QuestService
	Journal     *JournalService
	Profile     *ProfileService
}

// NewPlayer wires the services for playerID over the shared store
func NewPlayer(st store.Store, playerID string, opts PlayerOptions) *Player {
	if opts.Calendar == nil {
		opts.Calendar = NewCalendar(time.Local)
	}
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier
	}
	if opts.Provider == nil {
		opts.Provider = questgen.NewStaticProvider()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	logger := opts.Logger.With(zap.String("player", playerID))

	scoped := store.ForPlayer(st, playerID)
	repo := repository.NewProgressRepository(scoped, logger)
	progression := NewProgressionService(repo, opts.Notifier, logger)
	mastery := NewMasteryService(repo, opts.Weights, logger)

	return &Player{
		ID:          playerID,
		provider:    opts.Provider,
		logger:      logger,
		settings:    repository.NewSettingsRepository(scoped),
		repo:        repo,
		Progression: progression,
		Streak:      NewStreakService(repo, progression, opts.Notifier, opts.Calendar, opts.MilestoneDelay, logger),
		Mastery:     mastery,
		Badges:      NewBadgeService(repo, opts.Rules, opts.Calendar, logger),
		Quests:      NewQuestService(repo, progression, opts.Calendar, logger),
		Journal:     NewJournalService(repo, opts.Calendar),
		Profile:     NewProfileService(repo, progression, mastery, opts.Calendar, logger),
	}
}

// CreateProfile stores the player's profile
func (p *Player) CreateProfile(ctx context.Context, name, avatar string) (*models.PlayerProfile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Profile.Create(ctx, name, avatar)
}

// StartSession evaluates the daily streak and makes sure today has a quest.
// The quest provider is called without holding the lock; if another session
// issued today's quest meanwhile, the generated one is discarded.
func (p *Player) StartSession(ctx context.Context) (SessionStart, error) {
	var start SessionStart

	needQuest, err := p.locked(func() (bool, error) {
		if _, err := p.Profile.Get(ctx); err != nil {
			return false, err
		}
		facts, err := p.repo.Facts(ctx)
		if err != nil {
			return false, err
		}
		facts.Launches++
		if err := p.repo.SaveFacts(ctx, facts); err != nil {
			return false, err
		}
		if start.Login, err = p.Streak.EvaluateDailyLogin(ctx); err != nil {
			return false, err
		}
		return p.Quests.NeedsQuest(ctx)
	})
	if err != nil {
		return start, err
	}

	if needQuest {
		candidate, genErr := p.provider.GenerateQuest(ctx)
		if genErr != nil {
			p.logger.Warn("quest generation failed, using default quest", zap.Error(genErr))
			candidate = models.DefaultQuestCandidate()
		}
		if _, err := p.locked(func() (bool, error) {
			still, err := p.Quests.NeedsQuest(ctx)
			if err != nil || !still {
				return false, err
			}
			_, err = p.Quests.IssueQuest(ctx, candidate)
			return true, err
		}); err != nil {
			return start, err
		}
	}

	_, err = p.locked(func() (bool, error) {
		var err error
		if start.NewBadges, err = p.Badges.EvaluateRules(ctx); err != nil {
			return false, err
		}
		start.Quest, err = p.Quests.Current(ctx)
		return false, err
	})
	return start, err
}

func (p *Player) locked(fn func() (bool, error)) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fn()
}

// afterEvent runs the central badge rules; callers hold the lock
func (p *Player) afterEvent(ctx context.Context) ([]models.Badge, error) {
	return p.Badges.EvaluateRules(ctx)
}

// AwardPoints grants points for reason
func (p *Player) AwardPoints(ctx context.Context, amount int, reason string) (AwardResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	res, err := p.Progression.AwardPoints(ctx, amount, reason)
	if err != nil {
		return res, err
	}
	_, err = p.afterEvent(ctx)
	return res, err
}

// IncrementMastery raises one activity's mastery
func (p *Player) IncrementMastery(ctx context.Context, activity models.Activity, delta int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Mastery.IncrementMastery(ctx, activity, delta)
}

// UnlockBadge unlocks a badge directly
func (p *Player) UnlockBadge(ctx context.Context, badgeID string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Badges.Unlock(ctx, badgeID)
}

// ReportQuestProgress advances today's quest
func (p *Player) ReportQuestProgress(ctx context.Context, questType models.QuestType, amount int) (*models.DailyQuest, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Quests.ReportProgress(ctx, questType, amount)
}

// ClaimQuest pays out a completed quest once
func (p *Player) ClaimQuest(ctx context.Context) (*models.DailyQuest, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	q, claimed, err := p.Quests.Claim(ctx)
	if err != nil || !claimed {
		return q, claimed, err
	}
	_, err = p.afterEvent(ctx)
	return q, claimed, err
}

// AddJournalEntry saves a keepsake
func (p *Player) AddJournalEntry(ctx context.Context, entry models.NewJournalEntry) (models.JournalEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Journal.AddEntry(ctx, entry)
}

// JournalEntries lists keepsakes newest first
func (p *Player) JournalEntries(ctx context.Context) ([]models.JournalEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Journal.Entries(ctx)
}

// AddLearnedWord puts a word in the word bag
func (p *Player) AddLearnedWord(ctx context.Context, word string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Profile.AddLearnedWord(ctx, word)
}

// FeedWord feeds a learned word to the companion
func (p *Player) FeedWord(ctx context.Context, word string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fed, err := p.Profile.FeedWord(ctx, word)
	if err != nil || !fed {
		return fed, err
	}
	_, err = p.afterEvent(ctx)
	return fed, err
}

// UpdateProfile changes name and avatar
func (p *Player) UpdateProfile(ctx context.Context, name, avatar string) (*models.PlayerProfile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prof, err := p.Profile.Update(ctx, name, avatar)
	if err != nil {
		return prof, err
	}
	_, err = p.afterEvent(ctx)
	return prof, err
}

// CompleteTutorial finishes the guided tour
func (p *Player) CompleteTutorial(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	done, err := p.Profile.CompleteTutorial(ctx)
	if err != nil || !done {
		return done, err
	}
	_, err = p.afterEvent(ctx)
	return done, err
}

// recordFacts bumps the raw counters an activity success contributes to
func recordFacts(f *models.Facts, activity models.Activity, result ActivityResult) {
	f.ActivityComplete++
	switch activity {
	case models.ActivityVocab:
		if result.SetCompleted {
			f.VocabSets++
		}
	case models.ActivityImageQuest:
		f.Drawings++
	case models.ActivityTracing:
		f.LettersTraced++
	case models.ActivitySinging:
		f.SongsSung++
	}
}

// CompleteActivity applies one mini-game success: points, mastery by the
// activity's weight, quest progress, learned words, an optional journal
// entry, and then the badge rules.
func (p *Player) CompleteActivity(ctx context.Context, activity models.Activity, result ActivityResult) (ActivityOutcome, error) {
	if !activity.Valid() {
		return ActivityOutcome{}, fmt.Errorf("%w: %s", ErrUnknownActivity, activity)
	}
	// Reject the whole report before anything is written.
	for _, w := range result.Words {
		if err := utils.ValidateWord(w); err != nil {
			return ActivityOutcome{}, err
		}
	}
	if result.Entry != nil {
		if err := validateJournalEntry(*result.Entry); err != nil {
			return ActivityOutcome{}, err
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var out ActivityOutcome
	var err error

	if _, err = p.Profile.Get(ctx); err != nil {
		return out, err
	}
	if result.Points > 0 || result.Reason != "" {
		if out.Award, err = p.Progression.AwardPoints(ctx, result.Points, result.Reason); err != nil {
			return out, err
		}
	}
	if out.Mastery, err = p.Mastery.RecordSuccess(ctx, activity); err != nil {
		return out, err
	}
	if out.Quest, _, err = p.Quests.ReportProgress(ctx, activity.QuestType(), 1); err != nil {
		return out, err
	}
	for _, w := range result.Words {
		if _, err = p.Profile.AddLearnedWord(ctx, w); err != nil {
			return out, err
		}
	}
	if result.Entry != nil {
		entry, err := p.Journal.AddEntry(ctx, *result.Entry)
		if err != nil {
			return out, err
		}
		out.Entry = &entry
	}

	facts, err := p.repo.Facts(ctx)
	if err != nil {
		return out, err
	}
	recordFacts(&facts, activity, result)
	if err := p.repo.SaveFacts(ctx, facts); err != nil {
		return out, err
	}

	out.NewBadges, err = p.afterEvent(ctx)
	return out, err
}

// Snapshot assembles the full progression view
func (p *Player) Snapshot(ctx context.Context) (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var s Snapshot
	var err error
	if s.Profile, err = p.Profile.Get(ctx); err != nil {
		return s, err
	}
	if s.Points, s.Progress, err = p.Progression.Progress(ctx); err != nil {
		return s, err
	}
	if s.Streak, s.LastLogin, err = p.Streak.Current(ctx); err != nil {
		return s, err
	}
	if s.Badges, err = p.Badges.Badges(ctx); err != nil {
		return s, err
	}
	if s.Mastery, err = p.Mastery.All(ctx); err != nil {
		return s, err
	}
	if s.Quest, err = p.Quests.Current(ctx); err != nil {
		return s, err
	}
	s.QuestState = s.Quest.StateOn(p.Quests.calendar.Today())
	s.Companion = models.CompanionStageForPoints(s.Points)
	s.PantryCount = len(s.Profile.LearnedWords) - len(s.Profile.EatenWords)
	return s, nil
}

func (p *Player) IsMuted(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings.IsMuted(ctx)
}

func (p *Player) SetMuted(ctx context.Context, muted bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings.SetMuted(ctx, muted)
}
