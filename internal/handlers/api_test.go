package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wordisland/internal/display"
	"wordisland/internal/models"
	"wordisland/internal/security"
	"wordisland/internal/service"
	"wordisland/internal/store"
)

type apiFixture struct {
	t       *testing.T
	handler http.Handler
	hub     *display.Hub
}

func newAPIFixture(t *testing.T, requestsPerMinute int) *apiFixture {
	t.Helper()

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	calendar := &service.Calendar{Now: func() time.Time { return now }, Location: time.UTC}

	hub := display.NewHub(display.Durations{Toast: time.Minute, LevelUp: time.Minute})
	t.Cleanup(hub.Close)

	engine := service.NewEngine(store.NewMemoryStore(), service.PlayerOptions{
		Calendar: calendar,
		Logger:   zap.NewNop(),
	}, func(playerID string) service.Notifier {
		return hub.For(playerID)
	})

	handler := NewRouter(Dependencies{
		Engine:  engine,
		Hub:     hub,
		Tokens:  security.NewTokenIssuer("test-secret", time.Hour),
		Limiter: security.NewRateLimiter(requestsPerMinute, time.Minute),
		Logger:  zap.NewNop(),
	})
	return &apiFixture{t: t, handler: handler, hub: hub}
}

func (f *apiFixture) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	f.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(f.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "10.0.0.1:4000"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) createPlayer() createPlayerResponse {
	f.t.Helper()
	rec := f.do(http.MethodPost, "/api/players", "", map[string]string{"name": "Budi", "avatar": "🐯"})
	require.Equal(f.t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp createPlayerResponse
	require.NoError(f.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	f := newAPIFixture(t, 100)
	rec := f.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreatePlayerValidation(t *testing.T) {
	f := newAPIFixture(t, 100)

	rec := f.do(http.MethodPost, "/api/players", "", map[string]string{"name": "", "avatar": "🐯"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/api/players", "", map[string]string{"name": "Budi", "avatar": "🐯", "extra": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"`+ErrInvalidJSON+`"}`, rec.Body.String())
}

func TestEndpointsRequireToken(t *testing.T) {
	f := newAPIFixture(t, 100)

	rec := f.do(http.MethodGet, "/api/progress", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodGet, "/api/progress", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAndProgressFlow(t *testing.T) {
	f := newAPIFixture(t, 100)
	player := f.createPlayer()
	assert.NotEmpty(t, player.PlayerID)
	assert.Equal(t, "Budi", player.Profile.Name)

	rec := f.do(http.MethodPost, "/api/session/start", player.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	start := decode[service.SessionStart](t, rec)
	assert.Equal(t, 1, start.Login.NewStreak)
	assert.Equal(t, 75, start.Login.DailyBonus())
	require.NotNil(t, start.Quest)
	assert.Equal(t, models.QuestTypeVocab, start.Quest.Type)

	// Second start on the same day grants nothing
	rec = f.do(http.MethodPost, "/api/session/start", player.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[service.SessionStart](t, rec).Login.AlreadyEvaluated)

	rec = f.do(http.MethodGet, "/api/progress", player.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode[service.Snapshot](t, rec)
	assert.Equal(t, 75, snap.Points)
	assert.Equal(t, 1, snap.Streak)
	assert.Equal(t, models.QuestActive, snap.QuestState)

	rec = f.do(http.MethodGet, "/api/display", player.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	state := decode[display.State](t, rec)
	require.NotNil(t, state.Toast)
	assert.Equal(t, 75, state.Toast.Amount)
	require.NotNil(t, state.StreakSplash)

	rec = f.do(http.MethodPost, "/api/display/streak-splash/dismiss", player.Token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, f.hub.For(player.PlayerID).Snapshot().StreakSplash)
}

func TestActivityQuestAndClaim(t *testing.T) {
	f := newAPIFixture(t, 100)
	player := f.createPlayer()
	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/api/session/start", player.Token, nil).Code)

	for i := 0; i < 5; i++ {
		rec := f.do(http.MethodPost, "/api/activities/VOCAB/results", player.Token, map[string]interface{}{
			"points": 10,
			"reason": "Word Master!",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := f.do(http.MethodPost, "/api/quest/claim", player.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	claim := decode[questResponse](t, rec)
	assert.True(t, claim.Changed)
	require.NotNil(t, claim.Quest)
	assert.True(t, claim.Quest.IsClaimed)

	rec = f.do(http.MethodPost, "/api/quest/claim", player.Token, nil)
	assert.False(t, decode[questResponse](t, rec).Changed)

	rec = f.do(http.MethodGet, "/api/progress", player.Token, nil)
	snap := decode[service.Snapshot](t, rec)
	assert.Equal(t, 75+50+200, snap.Points)
}

func TestUnknownActivityAndBadge(t *testing.T) {
	f := newAPIFixture(t, 100)
	player := f.createPlayer()

	rec := f.do(http.MethodPost, "/api/activities/JUGGLING/results", player.Token, map[string]interface{}{"points": 5})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(http.MethodPost, "/api/badges/ghost/unlock", player.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(http.MethodPost, "/api/badges/"+models.BadgeArtist+"/unlock", player.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"already_unlocked":false}`, rec.Body.String())
}

func TestMasteryEndpoint(t *testing.T) {
	f := newAPIFixture(t, 100)
	player := f.createPlayer()

	rec := f.do(http.MethodPost, "/api/mastery/MATCHING", player.Token, map[string]int{"delta": 95})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 95, decode[service.MasteryView](t, rec).Percent)

	rec = f.do(http.MethodPost, "/api/mastery/MATCHING", player.Token, map[string]int{"delta": 20})
	view := decode[service.MasteryView](t, rec)
	assert.Equal(t, 100, view.Percent)
	assert.Equal(t, models.TierMaster.Label, view.Tier.Label)
}

func TestJournalWordsAndSettings(t *testing.T) {
	f := newAPIFixture(t, 100)
	player := f.createPlayer()

	rec := f.do(http.MethodPost, "/api/journal", player.Token, models.NewJournalEntry{
		Type:       models.JournalDrawing,
		English:    "Cat",
		Indonesian: "Kucing",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(http.MethodGet, "/api/journal", player.Token, nil)
	entries := decode[[]models.JournalEntry](t, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, "Cat", entries[0].English)

	rec = f.do(http.MethodPost, "/api/words", player.Token, wordRequest{Word: "apple"})
	assert.JSONEq(t, `{"added":true}`, rec.Body.String())
	rec = f.do(http.MethodPost, "/api/words/apple/feed", player.Token, nil)
	assert.JSONEq(t, `{"fed":true}`, rec.Body.String())
	rec = f.do(http.MethodPost, "/api/words/apple/feed", player.Token, nil)
	assert.JSONEq(t, `{"fed":false}`, rec.Body.String())

	rec = f.do(http.MethodPut, "/api/settings/muted", player.Token, mutedBody{Muted: true})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(http.MethodGet, "/api/settings/muted", player.Token, nil)
	assert.JSONEq(t, `{"muted":true}`, rec.Body.String())
}

func TestRateLimit(t *testing.T) {
	f := newAPIFixture(t, 2)

	var codes []int
	for i := 0; i < 4; i++ {
		rec := f.do(http.MethodPost, "/api/players", "", map[string]string{"name": "Budi", "avatar": "🐯"})
		codes = append(codes, rec.Code)
	}
	assert.Contains(t, codes, http.StatusTooManyRequests)
	assert.Equal(t, http.StatusCreated, codes[0])
}
