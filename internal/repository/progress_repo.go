package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"wordisland/internal/models"
	"wordisland/internal/store"
)

// Persisted keys, one value each
const (
	KeyProfile       = "profile"
	KeyPoints        = "points"
	KeyStreakCount   = "streakCount"
	KeyLastLoginDate = "lastLoginDate"
	KeyBadges        = "badges"
	KeyJournal       = "journal"
	KeyDailyQuest    = "dailyQuest"
	KeyIslandMastery = "islandMastery"
	KeyIsMuted       = "isMuted"
	KeyFacts         = "factCounters"
)

// ProgressRepository reads and writes one player's progression state.
// Missing or malformed values decode to their documented defaults.
type ProgressRepository struct {
	st     store.Store
	logger *zap.Logger
}

// NewProgressRepository creates a repository over a player-scoped store
func NewProgressRepository(st store.Store, logger *zap.Logger) *ProgressRepository {
	return &ProgressRepository{st: st, logger: logger}
}

// load fetches key and unmarshals it into dst. It reports false when the key
// is absent or the stored value cannot be decoded.
func (r *ProgressRepository) load(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, ok, err := r.st.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		r.logger.Warn("discarding malformed stored value",
			zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (r *ProgressRepository) save(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.st.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// loadInt accepts a JSON number or a bare numeric string
func (r *ProgressRepository) loadInt(ctx context.Context, key string) (int, error) {
	raw, ok, err := r.st.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return 0, nil
	}
	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	n, err := strconv.Atoi(text)
	if err != nil {
		r.logger.Warn("discarding malformed stored value",
			zap.String("key", key), zap.Error(err))
		return 0, nil
	}
	return n, nil
}

// Profile returns the stored profile, or nil when the player has none
func (r *ProgressRepository) Profile(ctx context.Context) (*models.PlayerProfile, error) {
	var p models.PlayerProfile
	ok, err := r.load(ctx, KeyProfile, &p)
	if err != nil || !ok {
		return nil, err
	}
	if p.LearnedWords == nil {
		p.LearnedWords = []string{}
	}
	// eatenWords must stay a subset of learnedWords
	eaten := make([]string, 0, len(p.EatenWords))
	for _, w := range p.EatenWords {
		if p.HasLearned(w) && !containsString(eaten, w) {
			eaten = append(eaten, w)
		}
	}
	p.EatenWords = eaten
	return &p, nil
}

func (r *ProgressRepository) SaveProfile(ctx context.Context, p *models.PlayerProfile) error {
	return r.save(ctx, KeyProfile, p)
}

// Points returns the stored total, never negative
func (r *ProgressRepository) Points(ctx context.Context) (int, error) {
	n, err := r.loadInt(ctx, KeyPoints)
	if n < 0 {
		n = 0
	}
	return n, err
}

func (r *ProgressRepository) SetPoints(ctx context.Context, points int) error {
	return r.save(ctx, KeyPoints, points)
}

// Streak returns the stored streak count and the last evaluated day
func (r *ProgressRepository) Streak(ctx context.Context) (int, models.Date, error) {
	count, err := r.loadInt(ctx, KeyStreakCount)
	if err != nil {
		return 0, models.Date{}, err
	}
	if count < 0 {
		count = 0
	}

	raw, ok, err := r.st.Get(ctx, KeyLastLoginDate)
	if err != nil {
		return 0, models.Date{}, fmt.Errorf("failed to read %s: %w", KeyLastLoginDate, err)
	}
	if !ok {
		return count, models.Date{}, nil
	}
	text := string(raw)
	var s string
	if json.Unmarshal(raw, &s) == nil {
		text = s
	}
	last, err := models.ParseDate(text)
	if err != nil {
		r.logger.Warn("discarding malformed stored value",
			zap.String("key", KeyLastLoginDate), zap.Error(err))
		return count, models.Date{}, nil
	}
	return count, last, nil
}

// SaveStreak writes the count and last evaluated day together
func (r *ProgressRepository) SaveStreak(ctx context.Context, count int, last models.Date) error {
	countRaw, err := json.Marshal(count)
	if err != nil {
		return err
	}
	lastRaw, err := json.Marshal(last)
	if err != nil {
		return err
	}
	if err := store.SetMany(ctx, r.st, map[string][]byte{
		KeyStreakCount:   countRaw,
		KeyLastLoginDate: lastRaw,
	}); err != nil {
		return fmt.Errorf("failed to write streak: %w", err)
	}
	return nil
}

// Badges returns the registry merged with stored unlock state
func (r *ProgressRepository) Badges(ctx context.Context) ([]models.Badge, error) {
	var stored []models.Badge
	if _, err := r.load(ctx, KeyBadges, &stored); err != nil {
		return nil, err
	}
	return models.MergeBadges(stored), nil
}

func (r *ProgressRepository) SaveBadges(ctx context.Context, badges []models.Badge) error {
	return r.save(ctx, KeyBadges, badges)
}

// Journal returns entries newest first
func (r *ProgressRepository) Journal(ctx context.Context) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	if _, err := r.load(ctx, KeyJournal, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	return entries, nil
}

func (r *ProgressRepository) SaveJournal(ctx context.Context, entries []models.JournalEntry) error {
	return r.save(ctx, KeyJournal, entries)
}

// DailyQuest returns the stored quest, or nil when there is none or it is unusable
func (r *ProgressRepository) DailyQuest(ctx context.Context) (*models.DailyQuest, error) {
	var q models.DailyQuest
	ok, err := r.load(ctx, KeyDailyQuest, &q)
	if err != nil || !ok {
		return nil, err
	}
	if q.Goal <= 0 || q.Date.IsZero() {
		r.logger.Warn("discarding incomplete stored quest", zap.String("id", q.ID))
		return nil, nil
	}
	if q.Current < 0 {
		q.Current = 0
	}
	if q.Current > q.Goal {
		q.Current = q.Goal
	}
	if q.Reward < 0 {
		q.Reward = 0
	}
	return &q, nil
}

func (r *ProgressRepository) SaveDailyQuest(ctx context.Context, q *models.DailyQuest) error {
	return r.save(ctx, KeyDailyQuest, q)
}

// Mastery returns a value for every activity, zero when unset
func (r *ProgressRepository) Mastery(ctx context.Context) (models.IslandMastery, error) {
	var stored map[models.Activity]int
	if _, err := r.load(ctx, KeyIslandMastery, &stored); err != nil {
		return nil, err
	}
	m := make(models.IslandMastery, len(models.AllActivities))
	for _, a := range models.AllActivities {
		m[a] = models.ClampMastery(stored[a])
	}
	return m, nil
}

func (r *ProgressRepository) SaveMastery(ctx context.Context, m models.IslandMastery) error {
	return r.save(ctx, KeyIslandMastery, m)
}

func (r *ProgressRepository) Facts(ctx context.Context) (models.Facts, error) {
	var f models.Facts
	_, err := r.load(ctx, KeyFacts, &f)
	return f, err
}

func (r *ProgressRepository) SaveFacts(ctx context.Context, f models.Facts) error {
	return r.save(ctx, KeyFacts, f)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
