package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"wordisland/internal/display"
	"wordisland/internal/models"
	"wordisland/internal/security"
	"wordisland/internal/service"
)

// PlayerHandler handles profile, session and presentation requests
type PlayerHandler struct {
	engine *service.Engine
	hub    *display.Hub
	tokens *security.TokenIssuer
	logger *zap.Logger
}

func NewPlayerHandler(engine *service.Engine, hub *display.Hub, tokens *security.TokenIssuer, logger *zap.Logger) *PlayerHandler {
	return &PlayerHandler{engine: engine, hub: hub, tokens: tokens, logger: logger}
}

func (h *PlayerHandler) player(r *http.Request) *service.Player {
	return h.engine.Player(PlayerIDFromContext(r.Context()))
}

type profileRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type createPlayerResponse struct {
	PlayerID string                `json:"player_id"`
	Token    string                `json:"token"`
	Profile  *models.PlayerProfile `json:"profile"`
}

// CreatePlayer registers a new player and returns its bearer token
func (h *PlayerHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	id, profile, err := h.engine.CreatePlayer(r.Context(), req.Name, req.Avatar)
	if err != nil {
		respondWithServiceError(w, h.logger, "failed to create player", err)
		return
	}
	token, err := h.tokens.Issue(id)
	if err != nil {
		respondWithError(w, h.logger, http.StatusInternalServerError, ErrInternalServerError, "failed to issue token", err)
		return
	}

	h.logger.Info("player created", zap.String("player", id))
	respondJSON(w, http.StatusCreated, createPlayerResponse{PlayerID: id, Token: token, Profile: profile})
}

// StartSession runs the daily streak check and quest issue
func (h *PlayerHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	start, err := h.player(r).StartSession(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, "failed to start session", err)
		return
	}
	respondJSON(w, http.StatusOK, start)
}

// Progress returns the full progression snapshot
func (h *PlayerHandler) Progress(w http.ResponseWriter, r *http.Request) {
	snap, err := h.player(r).Snapshot(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, "failed to load progress", err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// UpdateProfile changes the player's name and avatar
func (h *PlayerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}
	profile, err := h.player(r).UpdateProfile(r.Context(), req.Name, req.Avatar)
	if err != nil {
		respondWithServiceError(w, h.logger, "failed to update profile", err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// CompleteTutorial marks the guided tour as done
func (h *PlayerHandler) CompleteTutorial(w http.ResponseWriter, r *http.Request) {
	done, err := h.player(r).CompleteTutorial(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, "failed to complete tutorial", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"completed_now": done})
}

type wordRequest struct {
	Word string `json:"word"`
}

// AddWord puts a word in the player's word bag
func (h *PlayerHandler) AddWord(w http.ResponseWriter, r *http.Request) {
	var req wordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}
	added, err := h.player(r).AddLearnedWord(r.Context(), req.Word)
	if err != nil {
		respondWithServiceError(w, h.logger, "failed to add word", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"added": added})
}

// FeedWord feeds a learned word to the companion
func (h *PlayerHandler) FeedWord(w http.ResponseWriter, r *http.Request) {
	fed, err := h.player(r).FeedWord(r.Context(), r.PathValue("word"))
	if err != nil {
		respondWithServiceError(w, h.logger, "failed to feed word", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"fed": fed})
}

// Display returns the presentation signals currently showing
func (h *PlayerHandler) Display(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.hub.For(PlayerIDFromContext(r.Context())).Snapshot())
}

// DismissStreakSplash hides the streak overlay
func (h *PlayerHandler) DismissStreakSplash(w http.ResponseWriter, r *http.Request) {
	h.hub.For(PlayerIDFromContext(r.Context())).DismissStreakSplash()
	w.WriteHeader(http.StatusNoContent)
}

type mutedBody struct {
	Muted bool `json:"muted"`
}

// GetMuted returns the sound preference
func (h *PlayerHandler) GetMuted(w http.ResponseWriter, r *http.Request) {
	muted, err := h.player(r).IsMuted(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, "failed to read settings", err)
		return
	}
	respondJSON(w, http.StatusOK, mutedBody{Muted: muted})
}

// SetMuted stores the sound preference
func (h *PlayerHandler) SetMuted(w http.ResponseWriter, r *http.Request) {
	var req mutedBody
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}
	if err := h.player(r).SetMuted(r.Context(), req.Muted); err != nil {
		respondWithServiceError(w, h.logger, "failed to save settings", err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}
