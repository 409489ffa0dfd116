package analytics

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/quizmaster-app/quizmaster/internal/auth"
	"github.com/quizmaster-app/quizmaster/internal/config"
)

type Handler struct {
	service AnalyticsService
}

func NewHandler(service AnalyticsService) *Handler {
	return &Handler{service: service}
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

// QuizResults godoc
// @Summary Completed attempts and score statistics for one quiz
// @Tags analytics
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} QuizResultsResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /quizzes/{id}/results [get]
// @Security BearerAuth
func (h *Handler) QuizResults(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	quizID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid quiz id", http.StatusBadRequest)
		return
	}

	resp, err := h.service.QuizResults(r.Context(), userID, quizID)
	if err != nil {
		switch {
		case errors.Is(err, ErrQuizNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrNotOwner):
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

// TeacherDashboard godoc
// @Summary Aggregate stats across the caller's quizzes
// @Tags analytics
// @Produce json
// @Success 200 {object} TeacherDashboardResponse
// @Router /dashboard/teacher [get]
// @Security BearerAuth
func (h *Handler) TeacherDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	resp, err := h.service.TeacherDashboard(r.Context(), userID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

// StudentDashboard godoc
// @Summary Performance summary across the caller's attempts
// @Tags analytics
// @Produce json
// @Success 200 {object} StudentDashboardResponse
// @Router /dashboard/student [get]
// @Security BearerAuth
func (h *Handler) StudentDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	resp, err := h.service.StudentDashboard(r.Context(), userID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, resp)
}
