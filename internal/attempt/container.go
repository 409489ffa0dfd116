package attempt

import (
	"github.com/quizmaster-app/quizmaster/internal/quiz"
	"gorm.io/gorm"
)

type AttemptContainer struct {
	Repo    AttemptRepository
	Service AttemptService
	Handler *Handler
}

func NewAttemptContainer(db *gorm.DB, quizRepo quiz.QuizRepository, strict bool) *AttemptContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, quizRepo, strict)
	handler := NewHandler(service)

	return &AttemptContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
