package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"wordisland/internal/models"
	"wordisland/internal/store"
)

type reward struct {
	amount int
	reason string
}

type recordingNotifier struct {
	mu       sync.Mutex
	rewards  []reward
	levelUps []int
	splashes []int
}

func (n *recordingNotifier) ShowReward(amount int, reason string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rewards = append(n.rewards, reward{amount, reason})
}

func (n *recordingNotifier) ShowLevelUp(level int, rank string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.levelUps = append(n.levelUps, level)
}

func (n *recordingNotifier) ShowStreakSplash(streak, bonus int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.splashes = append(n.splashes, streak)
}

func (n *recordingNotifier) Rewards() []reward {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]reward(nil), n.rewards...)
}

// testClock is a settable clock for calendar-driven logic
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(day string) *testClock {
	t, err := time.Parse("2006-01-02 15:04", day+" 09:00")
	if err != nil {
		panic(err)
	}
	return &testClock{now: t}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) AdvanceDays(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, n)
}

func (c *testClock) Calendar() *Calendar {
	return &Calendar{Now: c.Now, Location: time.UTC}
}

type stubProvider struct {
	candidate models.QuestCandidate
	err       error
	calls     int
}

func (p *stubProvider) GenerateQuest(ctx context.Context) (models.QuestCandidate, error) {
	p.calls++
	return p.candidate, p.err
}

// failingStore rejects writes to keys with the given suffix
type failingStore struct {
	store.Store
	suffix string
}

func (s *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if strings.HasSuffix(key, s.suffix) {
		return errors.New("disk full")
	}
	return s.Store.Set(ctx, key, value)
}

type fixture struct {
	clock    *testClock
	notifier *recordingNotifier
	provider *stubProvider
	player   *Player
	st       store.Store
}

func newFixture(t *testing.T, day string) *fixture {
	t.Helper()
	return newFixtureWithStore(t, day, store.NewMemoryStore())
}

func newFixtureWithStore(t *testing.T, day string, st store.Store) *fixture {
	t.Helper()
	f := &fixture{
		clock:    newTestClock(day),
		notifier: &recordingNotifier{},
		provider: &stubProvider{candidate: models.QuestCandidate{
			Title: "Chatterbox", IdnTitle: "Si Cerewet", Goal: 3, Reward: 150, Type: models.QuestTypeChat,
		}},
		st: st,
	}
	f.player = NewPlayer(st, "kid-1", PlayerOptions{
		Calendar: f.clock.Calendar(),
		Notifier: f.notifier,
		Provider: f.provider,
		Logger:   zaptest.NewLogger(t),
	})
	return f
}

func (f *fixture) withProfile(t *testing.T) *fixture {
	t.Helper()
	if _, err := f.player.CreateProfile(context.Background(), "Ayu", "🐼"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	return f
}
