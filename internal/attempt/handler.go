package attempt

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/quizmaster-app/quizmaster/internal/auth"
	"github.com/quizmaster-app/quizmaster/internal/config"
)

type Handler struct {
	service AttemptService
}

func NewHandler(service AttemptService) *Handler {
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

// TakeQuiz godoc
// @Summary Start or resume a quiz attempt
// @Tags attempts
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} TakeResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /quizzes/{id}/take [get]
// @Security BearerAuth
func (h *Handler) TakeQuiz(w http.ResponseWriter, r *http.Request) {
	studentID, ok := callerID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	quizID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid quiz id", http.StatusBadRequest)
		return
	}

	resp, err := h.service.StartOrResume(r.Context(), studentID, quizID, clientIP(r), r.UserAgent())
	if err != nil {
		var completed *CompletedError
		if errors.As(err, &completed) {
			config.JSON(w, http.StatusConflict, map[string]string{
				"error":      err.Error(),
				"attempt_id": completed.AttemptID.String(),
			})
			return
		}
		writeAttemptError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

// SubmitQuiz godoc
// @Summary Submit answers and finalize the in-progress attempt
// @Tags attempts
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body SubmitRequest true "Answer map"
// @Success 200 {object} SubmitResponse
// @Failure 400 {object} map[string]string
// @Router /quizzes/{id}/submit [post]
// @Security BearerAuth
func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	studentID, ok := callerID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	quizID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid quiz id", http.StatusBadRequest)
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Submit(r.Context(), studentID, quizID, req)
	if err != nil {
		// A missing in_progress attempt is a client-side ordering
		// error here (submit before take, or a second submit).
		if errors.Is(err, ErrAttemptNotFound) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeAttemptError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

// Result godoc
// @Summary Detailed result for one attempt
// @Tags attempts
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} ResultResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /attempts/{id}/result [get]
// @Security BearerAuth
func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
	studentID, ok := callerID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	attemptID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid attempt id", http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetResult(r.Context(), studentID, attemptID)
	if err != nil {
		writeAttemptError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

func writeAttemptError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrQuizNotFound), errors.Is(err, ErrAttemptNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidAnswer), errors.Is(err, ErrEmptyQuiz):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrQuizUnavailable), errors.Is(err, ErrMaxAttempts), errors.Is(err, ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func clientIP(r *http.Request) string {
	// chi's RealIP middleware rewrites RemoteAddr from the
	// forwarding headers before handlers run.
	return r.RemoteAddr
}
