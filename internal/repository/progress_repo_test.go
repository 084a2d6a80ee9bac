package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"wordisland/internal/models"
	"wordisland/internal/store"
)

func newTestRepo(t *testing.T) (*ProgressRepository, store.Store) {
	t.Helper()
	st := store.ForPlayer(store.NewMemoryStore(), "p1")
	return NewProgressRepository(st, zaptest.NewLogger(t)), st
}

func TestDefaultsWhenNothingStored(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	profile, err := repo.Profile(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile)

	points, err := repo.Points(ctx)
	require.NoError(t, err)
	assert.Zero(t, points)

	count, last, err := repo.Streak(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.True(t, last.IsZero())

	badges, err := repo.Badges(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultBadges(), badges)

	mastery, err := repo.Mastery(ctx)
	require.NoError(t, err)
	assert.Len(t, mastery, len(models.AllActivities))
	for _, a := range models.AllActivities {
		assert.Zero(t, mastery[a])
	}

	quest, err := repo.DailyQuest(ctx)
	require.NoError(t, err)
	assert.Nil(t, quest)

	journal, err := repo.Journal(ctx)
	require.NoError(t, err)
	assert.Empty(t, journal)
}

func TestMalformedValuesFallBackToDefaults(t *testing.T) {
	repo, st := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, KeyPoints, []byte("lots")))
	require.NoError(t, st.Set(ctx, KeyBadges, []byte("{not json")))
	require.NoError(t, st.Set(ctx, KeyIslandMastery, []byte(`{"VOCAB": 450, "SCRAMBLE": -3}`)))
	require.NoError(t, st.Set(ctx, KeyDailyQuest, []byte(`{"id":"q","goal":0}`)))
	require.NoError(t, st.Set(ctx, KeyLastLoginDate, []byte("someday")))

	points, err := repo.Points(ctx)
	require.NoError(t, err)
	assert.Zero(t, points)

	badges, err := repo.Badges(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultBadges(), badges)

	mastery, err := repo.Mastery(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, mastery[models.ActivityVocab])
	assert.Equal(t, 0, mastery[models.ActivityScramble])

	quest, err := repo.DailyQuest(ctx)
	require.NoError(t, err)
	assert.Nil(t, quest)

	_, last, err := repo.Streak(ctx)
	require.NoError(t, err)
	assert.True(t, last.IsZero())
}

func TestLegacyStreakValues(t *testing.T) {
	repo, st := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, KeyStreakCount, []byte("4")))
	require.NoError(t, st.Set(ctx, KeyLastLoginDate, []byte("Mon Jan 01 2024")))

	count, last, err := repo.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.Equal(t, "2024-01-01", last.String())
}

func TestStreakRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	last, err := models.ParseDate("2024-03-09")
	require.NoError(t, err)
	require.NoError(t, repo.SaveStreak(ctx, 6, last))

	count, got, err := repo.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, count)
	assert.Equal(t, last, got)
}

func TestProfileKeepsEatenWordsWithinLearned(t *testing.T) {
	repo, st := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, KeyProfile, []byte(
		`{"name":"Ayu","avatar":"🐼","learnedWords":["cat","dog"],"eatenWords":["cat","fish","cat"]}`)))

	p, err := repo.Profile(ctx)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, []string{"cat"}, p.EatenWords)
}

func TestMutedSetting(t *testing.T) {
	st := store.ForPlayer(store.NewMemoryStore(), "p1")
	repo := NewSettingsRepository(st)
	ctx := context.Background()

	muted, err := repo.IsMuted(ctx)
	require.NoError(t, err)
	assert.False(t, muted)

	require.NoError(t, repo.SetMuted(ctx, true))
	muted, err = repo.IsMuted(ctx)
	require.NoError(t, err)
	assert.True(t, muted)
}
