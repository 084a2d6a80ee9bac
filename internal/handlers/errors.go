package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"wordisland/internal/service"
	"wordisland/internal/utils"
)

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func respondWithError(w http.ResponseWriter, logger *zap.Logger, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		logger.Error(logMsg, zap.Int("status", status), zap.Error(err))
	}

	respondJSON(w, status, errorBody{Error: userMsg})
}

// respondWithServiceError maps service errors onto HTTP responses
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, logMsg string, err error) {
	var vErr utils.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondJSON(w, http.StatusBadRequest, errorBody{Error: vErr.Message, Field: vErr.Field})
	case errors.Is(err, service.ErrNoProfile):
		respondJSON(w, http.StatusConflict, errorBody{Error: ErrNoProfile})
	case errors.Is(err, service.ErrProfileExists):
		respondJSON(w, http.StatusConflict, errorBody{Error: ErrProfileExists})
	case errors.Is(err, service.ErrUnknownBadge), errors.Is(err, service.ErrUnknownActivity):
		respondJSON(w, http.StatusNotFound, errorBody{Error: ErrNotFound})
	default:
		respondWithError(w, logger, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
