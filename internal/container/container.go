package container

import (
	"context"
	"log"
	"os"

	"github.com/quizmaster-app/quizmaster/internal/aigen"
	"github.com/quizmaster-app/quizmaster/internal/analytics"
	"github.com/quizmaster-app/quizmaster/internal/attempt"
	"github.com/quizmaster-app/quizmaster/internal/auth"
	"github.com/quizmaster-app/quizmaster/internal/config"
	"github.com/quizmaster-app/quizmaster/internal/quiz"
	"github.com/quizmaster-app/quizmaster/internal/user"
)

type Container struct {
	UserContainer      *user.UserContainer
	QuizContainer      *quiz.QuizContainer
	AttemptContainer   *attempt.AttemptContainer
	AnalyticsContainer *analytics.AnalyticsContainer
	AIGenContainer     *aigen.AIGenContainer
}

func New() *Container {
	config.Init()
	auth.Init()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	err := config.DB.AutoMigrate(
		&user.User{},
		&quiz.Quiz{},
		&quiz.Question{},
		&quiz.Option{},
		&attempt.QuizAttempt{},
		&attempt.StudentAnswer{},
		&aigen.GenerationLog{},
	)
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	userContainer := user.NewUserContainer(config.DB)
	quizContainer := quiz.NewQuizContainer(config.DB)
	attemptContainer := attempt.NewAttemptContainer(config.DB, quizContainer.Repo, config.GradingStrict())
	analyticsContainer := analytics.NewAnalyticsContainer(config.DB, quizContainer.Repo)
	aiGenContainer := aigen.NewAIGenContainer(config.DB)

	return &Container{
		UserContainer:      userContainer,
		QuizContainer:      quizContainer,
		AttemptContainer:   attemptContainer,
		AnalyticsContainer: analyticsContainer,
		AIGenContainer:     aiGenContainer,
	}
}
