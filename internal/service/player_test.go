package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordisland/internal/models"
	"wordisland/internal/store"
	"wordisland/internal/utils"
)

func badgeUnlocked(t *testing.T, f *fixture, id string) bool {
	t.Helper()
	badges, err := f.player.Badges.Badges(context.Background())
	require.NoError(t, err)
	for _, b := range badges {
		if b.ID == id {
			return b.Unlocked
		}
	}
	t.Fatalf("badge %s not in registry", id)
	return false
}

func TestStartSessionRequiresProfile(t *testing.T) {
	f := newFixture(t, "2024-01-02")

	_, err := f.player.StartSession(context.Background())
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestStartSessionIssuesOneQuestPerDay(t *testing.T) {
	f := newFixture(t, "2024-01-02").withProfile(t)
	ctx := context.Background()

	start, err := f.player.StartSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, start.Quest)
	assert.Equal(t, "Chatterbox", start.Quest.Title)
	assert.Equal(t, 1, start.Login.NewStreak)

	again, err := f.player.StartSession(ctx)
	require.NoError(t, err)
	assert.True(t, again.Login.AlreadyEvaluated)
	assert.Equal(t, start.Quest.ID, again.Quest.ID)
	assert.Equal(t, 1, f.provider.calls)

	f.clock.AdvanceDays(1)
	next, err := f.player.StartSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, next.Login.NewStreak)
	assert.NotEqual(t, start.Quest.ID, next.Quest.ID)
	assert.Equal(t, 2, f.provider.calls)
}

func TestStartSessionFallsBackWhenProviderFails(t *testing.T) {
	f := newFixture(t, "2024-01-02").withProfile(t)
	f.provider.err = errors.New("quota exceeded")

	start, err := f.player.StartSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, start.Quest)
	assert.Equal(t, "Word Explorer", start.Quest.Title)
	assert.Equal(t, 5, start.Quest.Goal)
}

func TestThirdConsecutiveDayUnlocksStreakBadge(t *testing.T) {
	f := newFixture(t, "2024-01-02").withProfile(t)
	ctx := context.Background()

	for day := 1; day <= 3; day++ {
		start, err := f.player.StartSession(ctx)
		require.NoError(t, err)
		if day < 3 {
			assert.False(t, badgeUnlocked(t, f, models.BadgeStreak3))
		} else {
			require.Len(t, start.NewBadges, 1)
			assert.Equal(t, models.BadgeStreak3, start.NewBadges[0].ID)
		}
		f.clock.AdvanceDays(1)
	}
	assert.Equal(t, 75+100+125, points(t, f))
}

func TestCompleteActivityAppliesEverything(t *testing.T) {
	f := newFixture(t, "2024-01-02").withProfile(t)
	ctx := context.Background()
	_, err := f.player.Quests.IssueQuest(ctx, models.QuestCandidate{
		Title: "Word Hunt", IdnTitle: "Berburu Kata", Goal: 2, Reward: 200, Type: models.QuestTypeVocab,
	})
	require.NoError(t, err)

	out, err := f.player.CompleteActivity(ctx, models.ActivityVocab, ActivityResult{
		Points:       20,
		Reason:       "Great job! 🌟",
		Words:        []string{"Rainbow"},
		SetCompleted: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 20, out.Award.NewTotal)
	assert.Equal(t, 5, out.Mastery)
	require.NotNil(t, out.Quest)
	assert.Equal(t, 1, out.Quest.Current)
	require.Len(t, out.NewBadges, 1)
	assert.Equal(t, models.BadgeVocabMaster, out.NewBadges[0].ID)

	snap, err := f.player.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"rainbow"}, snap.Profile.LearnedWords)
	assert.Equal(t, 1, snap.PantryCount)
	assert.Equal(t, models.QuestActive, snap.QuestState)
	assert.Equal(t, models.CompanionEgg, snap.Companion)
}

func TestCompleteActivityArtistNeedsFiveDrawings(t *testing.T) {
	f := newFixture(t, "2024-01-02").withProfile(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		out, err := f.player.CompleteActivity(ctx, models.ActivityImageQuest, ActivityResult{
			Points: 30,
			Reason: "Beautiful drawing! 🎨",
			Entry:  &models.NewJournalEntry{Type: models.JournalDrawing, English: "A blue whale", Indonesian: "Paus biru"},
		})
		require.NoError(t, err)
		require.NotNil(t, out.Entry)
		if i < 5 {
			assert.Empty(t, out.NewBadges)
		} else {
			require.Len(t, out.NewBadges, 1)
			assert.Equal(t, models.BadgeArtist, out.NewBadges[0].ID)
		}
	}

	entries, err := f.player.JournalEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestCompleteActivityRejectsInvalidReportWithoutWriting(t *testing.T) {
	tests := []struct {
		name   string
		result ActivityResult
	}{
		{name: "blank word", result: ActivityResult{Points: 20, Reason: "Great job! 🌟", Words: []string{"cat", "  "}}},
		{name: "unknown journal type", result: ActivityResult{Points: 20, Reason: "Great job! 🌟",
			Entry: &models.NewJournalEntry{Type: "sculpture", English: "A cat"}}},
		{name: "journal without caption", result: ActivityResult{Points: 20, Reason: "Great job! 🌟",
			Entry: &models.NewJournalEntry{Type: models.JournalDrawing}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "2024-01-02").withProfile(t)
			ctx := context.Background()
			_, err := f.player.Quests.IssueQuest(ctx, models.QuestCandidate{
				Title: "Word Hunt", IdnTitle: "Berburu Kata", Goal: 2, Reward: 200, Type: models.QuestTypeVocab,
			})
			require.NoError(t, err)

			_, err = f.player.CompleteActivity(ctx, models.ActivityVocab, tt.result)
			var vErr utils.ValidationError
			require.ErrorAs(t, err, &vErr)

			points, err := f.player.repo.Points(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, points)

			mastery, err := f.player.repo.Mastery(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, mastery.Value(models.ActivityVocab))

			quest, err := f.player.Quests.Current(ctx)
			require.NoError(t, err)
			require.NotNil(t, quest)
			assert.Equal(t, 0, quest.Current)

			profile, err := f.player.Profile.Get(ctx)
			require.NoError(t, err)
			assert.Empty(t, profile.LearnedWords)

			entries, err := f.player.JournalEntries(ctx)
			require.NoError(t, err)
			assert.Empty(t, entries)

			facts, err := f.player.repo.Facts(ctx)
			require.NoError(t, err)
			assert.Zero(t, facts.ActivityComplete)
		})
	}
}

func TestMutedSettingRoundTrip(t *testing.T) {
	f := newFixture(t, "2024-01-02")
	ctx := context.Background()

	muted, err := f.player.IsMuted(ctx)
	require.NoError(t, err)
	assert.False(t, muted)

	require.NoError(t, f.player.SetMuted(ctx, true))
	muted, err = f.player.IsMuted(ctx)
	require.NoError(t, err)
	assert.True(t, muted)
}

func TestCompleteActivityUnknownActivity(t *testing.T) {
	f := newFixture(t, "2024-01-02").withProfile(t)

	_, err := f.player.CompleteActivity(context.Background(), "JUGGLING", ActivityResult{Points: 5})
	assert.ErrorIs(t, err, ErrUnknownActivity)
}

func TestConcurrentAwardsAreSerialized(t *testing.T) {
	f := newFixture(t, "2024-01-02")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.player.AwardPoints(ctx, 10, "tap")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 500, points(t, f))
}

func TestEngineSharesPlayersAndListsThem(t *testing.T) {
	st := store.NewMemoryStore()
	clock := newTestClock("2024-01-02")
	engine := NewEngine(st, PlayerOptions{Calendar: clock.Calendar()}, nil)
	ctx := context.Background()

	id, profile, err := engine.CreatePlayer(ctx, "Ayu", "🐯")
	require.NoError(t, err)
	assert.Equal(t, "Ayu", profile.Name)
	assert.Same(t, engine.Player(id), engine.Player(id))

	_, _, err = engine.CreatePlayer(ctx, "", "🐯")
	assert.Error(t, err)

	ids, err := engine.PlayerIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, ids)
}
