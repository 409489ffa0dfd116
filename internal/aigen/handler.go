package aigen

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/quizmaster-app/quizmaster/internal/auth"
	"github.com/quizmaster-app/quizmaster/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func callerID(r *http.Request) (uuid.UUID, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Generate godoc
// @Summary Generate question candidates for teacher review
// @Tags ai
// @Accept json
// @Produce json
// @Param request body GenerateRequest true "Generation parameters"
// @Success 200 {object} GenerateResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /ai/questions [post]
// @Security BearerAuth
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := callerID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	candidates, err := h.service.Generate(r.Context(), teacherID, req)
	if err != nil {
		if errors.Is(err, ErrTopicRequired) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, ErrGenerationFailed.Error(), http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, GenerateResponse{
		Status:    "success",
		Questions: candidates,
	})
}

// History godoc
// @Summary List the caller's recent generation requests
// @Tags ai
// @Produce json
// @Success 200 {array} GenerationLog
// @Failure 500 {object} map[string]string
// @Router /ai/questions/history [get]
// @Security BearerAuth
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := callerID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	logs, err := h.service.History(r.Context(), teacherID)
	if err != nil {
		http.Error(w, "Failed to list generation history", http.StatusInternalServerError)
		return
	}
	config.JSON(w, http.StatusOK, logs)
}
