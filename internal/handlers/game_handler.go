package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"wordisland/internal/models"
	"wordisland/internal/service"
)

// GameHandler handles the calls mini-games make after a success
type GameHandler struct {
	engine *service.Engine
	logger *zap.Logger
}

func NewGameHandler(engine *service.Engine, logger *zap.Logger) *GameHandler {
	return &GameHandler{engine: engine, logger: logger}
}

func (h *GameHandler) player(r *http.Request) *service.Player {
	return h.engine.Player(PlayerIDFromContext(r.Context()))
}

type pointsRequest struct {
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

// AwardPoints grants points for a reason
func (h *GameHandler) AwardPoints(w http.ResponseWriter, r *http.Request) {
	var req pointsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}
	res, err := h.player(r).AwardPoints(r.Context(), req.Amount, req.Reason)
	if err != nil {
		respondWithServiceError(w, h.logger, "failed to award points", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// CompleteActivity reports a mini-game success
func (h *GameHandler) CompleteActivity(w http.ResponseWriter, r *http.Request) {
	var req service.ActivityResult
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}
	activity := models.Activity(r.PathValue("activity"))
	out, err := h.player(r).CompleteActivity(r.Context(), activity, req)
	if err != nil {
		respondWithServiceError(w, h.logger, "failed to record activity", err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

type masteryRequest struct {
	Delta int `json:"delta"`
}

// IncrementMastery raises one activity's mastery
func (h *GameHandler) IncrementMastery(w http.ResponseWriter, r *http.Request) {
	var req masteryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}
	activity := models.Activity(r.PathValue("activity"))
	percent, err := h.player(r).IncrementMastery(r.Context(), activity, req.Delta)
	if err != nil {
		respondWithServiceError(w, h.logger, "failed to update mastery", err)
		return
	}
	respondJSON(w, http.StatusOK, service.MasteryView{
		Activity: activity,
		Percent:  percent,
		Tier:     models.MasteryTierFor(percent),
	})
}

// UnlockBadge unlocks a badge by id
func (h *GameHandler) UnlockBadge(w http.ResponseWriter, r *http.Request) {
	already, err := h.player(r).UnlockBadge(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, h.logger, "failed to unlock badge", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"already_unlocked": already})
}

type questProgressRequest struct {
	Type   models.QuestType `json:"type"`
	Amount *int             `json:"amount,omitempty"`
}

type questResponse struct {
	Quest   *models.DailyQuest `json:"quest"`
	Changed bool               `json:"changed"`
}

// ReportQuestProgress advances today's quest
func (h *GameHandler) ReportQuestProgress(w http.ResponseWriter, r *http.Request) {
	var req questProgressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}
	amount := 1
	if req.Amount != nil {
		amount = *req.Amount
	}
	q, changed, err := h.player(r).ReportQuestProgress(r.Context(), req.Type, amount)
	if err != nil {
		respondWithServiceError(w, h.logger, "failed to report quest progress", err)
		return
	}
	respondJSON(w, http.StatusOK, questResponse{Quest: q, Changed: changed})
}

// ClaimQuest pays out a completed quest
func (h *GameHandler) ClaimQuest(w http.ResponseWriter, r *http.Request) {
	q, claimed, err := h.player(r).ClaimQuest(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, "failed to claim quest", err)
		return
	}
	respondJSON(w, http.StatusOK, questResponse{Quest: q, Changed: claimed})
}

// ListJournal returns the journal newest first
func (h *GameHandler) ListJournal(w http.ResponseWriter, r *http.Request) {
	entries, err := h.player(r).JournalEntries(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, "failed to load journal", err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// AddJournalEntry saves a keepsake
func (h *GameHandler) AddJournalEntry(w http.ResponseWriter, r *http.Request) {
	var req models.NewJournalEntry
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}
	entry, err := h.player(r).AddJournalEntry(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, h.logger, "failed to save journal entry", err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}
