package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quizmaster-app/quizmaster/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/active", h.ListActive)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleTeacher))

		r.Post("/", h.CreateQuiz)
		r.Get("/", h.ListMine)
		r.Get("/{id}", h.GetQuiz)
		r.Put("/{id}", h.UpdateQuiz)
		r.Delete("/{id}", h.DeleteQuiz)
		r.Post("/{id}/questions", h.AddQuestion)
		r.Delete("/questions/{questionID}", h.RemoveQuestion)
	})
	return r
}
