package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/quizmaster-app/quizmaster/internal/aigen"
	"github.com/quizmaster-app/quizmaster/internal/analytics"
	"github.com/quizmaster-app/quizmaster/internal/attempt"
	"github.com/quizmaster-app/quizmaster/internal/auth"
	"github.com/quizmaster-app/quizmaster/internal/middlewares"
	"github.com/quizmaster-app/quizmaster/internal/quiz"
	"github.com/quizmaster-app/quizmaster/internal/user"
)

type RouterConfig struct {
	UserHandler      *user.Handler
	QuizHandler      *quiz.Handler
	AttemptHandler   *attempt.Handler
	AnalyticsHandler *analytics.Handler
	AIGenHandler     *aigen.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", cfg.UserHandler.Signup)
		r.Post("/login", cfg.UserHandler.Login)
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(auth.RoleStudent))

			r.Get("/quizzes/{id}/take", cfg.AttemptHandler.TakeQuiz)
			r.Post("/quizzes/{id}/submit", cfg.AttemptHandler.SubmitQuiz)
			r.Get("/dashboard/student", cfg.AnalyticsHandler.StudentDashboard)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(auth.RoleTeacher))

			r.Post("/ai/questions", cfg.AIGenHandler.Generate)
			r.Get("/ai/questions/history", cfg.AIGenHandler.History)
			r.Get("/quizzes/{id}/results", cfg.AnalyticsHandler.QuizResults)
			r.Get("/dashboard/teacher", cfg.AnalyticsHandler.TeacherDashboard)
		})

		r.Get("/attempts/{id}/result", cfg.AttemptHandler.Result)
	})
	return r
}
