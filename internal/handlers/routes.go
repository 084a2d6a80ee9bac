package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"wordisland/internal/display"
	"wordisland/internal/security"
	"wordisland/internal/service"
)

// Dependencies are what the router needs to build its handlers
type Dependencies struct {
	Engine  *service.Engine
	Hub     *display.Hub
	Tokens  *security.TokenIssuer
	Limiter *security.RateLimiter
	Logger  *zap.Logger
}

// NewRouter registers every API route and wraps the mux in request logging
func NewRouter(deps Dependencies) http.Handler {
	middleware := NewMiddleware(deps.Tokens, deps.Limiter, deps.Logger)
	players := NewPlayerHandler(deps.Engine, deps.Hub, deps.Tokens, deps.Logger)
	games := NewGameHandler(deps.Engine, deps.Logger)

	auth := middleware.RequirePlayer
	limited := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.RateLimit(auth(h))
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /api/players", middleware.RateLimit(players.CreatePlayer))
	mux.HandleFunc("POST /api/session/start", limited(players.StartSession))
	mux.HandleFunc("GET /api/progress", auth(players.Progress))
	mux.HandleFunc("POST /api/profile", limited(players.UpdateProfile))
	mux.HandleFunc("POST /api/tutorial/complete", limited(players.CompleteTutorial))
	mux.HandleFunc("POST /api/words", limited(players.AddWord))
	mux.HandleFunc("POST /api/words/{word}/feed", limited(players.FeedWord))
	mux.HandleFunc("GET /api/display", auth(players.Display))
	mux.HandleFunc("POST /api/display/streak-splash/dismiss", auth(players.DismissStreakSplash))
	mux.HandleFunc("GET /api/settings/muted", auth(players.GetMuted))
	mux.HandleFunc("PUT /api/settings/muted", limited(players.SetMuted))

	mux.HandleFunc("POST /api/points", limited(games.AwardPoints))
	mux.HandleFunc("POST /api/activities/{activity}/results", limited(games.CompleteActivity))
	mux.HandleFunc("POST /api/mastery/{activity}", limited(games.IncrementMastery))
	mux.HandleFunc("POST /api/badges/{id}/unlock", limited(games.UnlockBadge))
	mux.HandleFunc("POST /api/quest/progress", limited(games.ReportQuestProgress))
	mux.HandleFunc("POST /api/quest/claim", limited(games.ClaimQuest))
	mux.HandleFunc("GET /api/journal", auth(games.ListJournal))
	mux.HandleFunc("POST /api/journal", limited(games.AddJournalEntry))

	return Logging(deps.Logger, mux)
}
