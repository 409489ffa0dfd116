package quiz

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/quizmaster-app/quizmaster/internal/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&user.User{}, &Quiz{}, &Question{}, &Option{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	// ListMine counts attempts out of a table owned by another package.
	if err := db.Exec(`CREATE TABLE quiz_attempts (id TEXT PRIMARY KEY, quiz_id TEXT, student_id TEXT, status TEXT)`).Error; err != nil {
		t.Fatalf("failed to create attempts table: %v", err)
	}
	return db
}

func seedTeacher(t *testing.T, db *gorm.DB) *user.User {
	t.Helper()
	u := &user.User{
		ID:       uuid.New(),
		Username: fmt.Sprintf("teacher-%s", uuid.New().String()[:8]),
		Email:    fmt.Sprintf("%s@example.com", uuid.New().String()[:8]),
		Role:     user.RoleTeacher,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to seed teacher: %v", err)
	}
	return u
}

func validCreateDTO() CreateQuizDTO {
	return CreateQuizDTO{
		Title:      "Algebra I",
		Category:   "math",
		Difficulty: DifficultyEasy,
		TimeLimit:  30,
		TotalMarks: 10,
		Questions: []QuestionDTO{
			{
				Text:    "What is 2+2?",
				Options: []string{"3", "4", "5", "6"},
				Correct: 1,
				Marks:   5,
			},
			{
				Text:    "Is zero even?",
				Type:    QuestionTypeTrueFalse,
				Options: []string{"True", "False"},
				Correct: 0,
				Marks:   5,
			},
		},
	}
}

func TestCreateWithQuestions(t *testing.T) {
	ctx := context.Background()

	t.Run("PersistsQuizQuestionsAndOptions", func(t *testing.T) {
		db := newTestDB(t)
		teacher := seedTeacher(t, db)
		service := NewService(db, NewRepository(db))

		q, err := service.CreateWithQuestions(ctx, teacher.ID, validCreateDTO())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.PassingMarks != 6 {
			t.Errorf("expected default passing marks 6 (60%% of 10), got %d", q.PassingMarks)
		}
		if q.MaxAttempts != 3 || !q.AllowRetake || !q.ShowCorrectAnswers {
			t.Errorf("unexpected defaults: %+v", q)
		}

		var questionCount, optionCount, correctCount int64
		db.Model(&Question{}).Where("quiz_id = ?", q.ID).Count(&questionCount)
		db.Model(&Option{}).Count(&optionCount)
		db.Model(&Option{}).Where("is_correct = ?", true).Count(&correctCount)
		if questionCount != 2 || optionCount != 6 {
			t.Errorf("expected 2 questions with 6 options, got %d/%d", questionCount, optionCount)
		}
		if correctCount != 2 {
			t.Errorf("expected exactly one correct option per question, got %d total", correctCount)
		}
	})

	t.Run("RejectsQuizWithoutQuestions", func(t *testing.T) {
		db := newTestDB(t)
		teacher := seedTeacher(t, db)
		service := NewService(db, NewRepository(db))

		dto := validCreateDTO()
		dto.Questions = nil
		if _, err := service.CreateWithQuestions(ctx, teacher.ID, dto); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("RejectsOutOfRangeCorrectIndex", func(t *testing.T) {
		db := newTestDB(t)
		teacher := seedTeacher(t, db)
		service := NewService(db, NewRepository(db))

		dto := validCreateDTO()
		dto.Questions[0].Correct = 4
		if _, err := service.CreateWithQuestions(ctx, teacher.ID, dto); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
		// Nothing from the failed request may survive.
		var count int64
		db.Model(&Quiz{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no quiz rows after a rejected create, got %d", count)
		}
	})

	t.Run("RejectsTooFewOptions", func(t *testing.T) {
		db := newTestDB(t)
		teacher := seedTeacher(t, db)
		service := NewService(db, NewRepository(db))

		dto := validCreateDTO()
		dto.Questions[0].Options = []string{"only one"}
		if _, err := service.CreateWithQuestions(ctx, teacher.ID, dto); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("RejectsTrueFalseWithFourOptions", func(t *testing.T) {
		db := newTestDB(t)
		teacher := seedTeacher(t, db)
		service := NewService(db, NewRepository(db))

		dto := validCreateDTO()
		dto.Questions[1].Options = []string{"True", "False", "Maybe", "Unsure"}
		if _, err := service.CreateWithQuestions(ctx, teacher.ID, dto); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("RejectsBadTimeLimit", func(t *testing.T) {
		db := newTestDB(t)
		teacher := seedTeacher(t, db)
		service := NewService(db, NewRepository(db))

		dto := validCreateDTO()
		dto.TimeLimit = 500
		if _, err := service.CreateWithQuestions(ctx, teacher.ID, dto); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})
}

func TestOwnership(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	owner := seedTeacher(t, db)
	other := seedTeacher(t, db)
	service := NewService(db, NewRepository(db))

	q, err := service.CreateWithQuestions(ctx, owner.ID, validCreateDTO())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	t.Run("UpdateByNonOwner", func(t *testing.T) {
		title := "hijacked"
		if _, err := service.Update(ctx, other.ID, q.ID, UpdateQuizDTO{Title: &title}); !errors.Is(err, ErrNotOwner) {
			t.Errorf("expected ErrNotOwner, got %v", err)
		}
	})

	t.Run("DeleteByNonOwner", func(t *testing.T) {
		if err := service.Delete(ctx, other.ID, q.ID); !errors.Is(err, ErrNotOwner) {
			t.Errorf("expected ErrNotOwner, got %v", err)
		}
	})

	t.Run("GetByNonOwner", func(t *testing.T) {
		if _, _, err := service.GetOwned(ctx, other.ID, q.ID); !errors.Is(err, ErrNotOwner) {
			t.Errorf("expected ErrNotOwner, got %v", err)
		}
	})

	t.Run("UnknownQuiz", func(t *testing.T) {
		if _, _, err := service.GetOwned(ctx, owner.ID, uuid.New()); !errors.Is(err, ErrQuizNotFound) {
			t.Errorf("expected ErrQuizNotFound, got %v", err)
		}
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	teacher := seedTeacher(t, db)
	service := NewService(db, NewRepository(db))

	q, err := service.CreateWithQuestions(ctx, teacher.ID, validCreateDTO())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	t.Run("PartialUpdate", func(t *testing.T) {
		title := "Algebra II"
		status := StatusArchived
		updated, err := service.Update(ctx, teacher.ID, q.ID, UpdateQuizDTO{Title: &title, Status: &status})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Title != "Algebra II" || updated.Status != StatusArchived {
			t.Errorf("update not applied: %+v", updated)
		}
		if updated.Category != "math" {
			t.Error("untouched fields must survive a partial update")
		}
	})

	t.Run("EmptyTitleRejected", func(t *testing.T) {
		title := "   "
		if _, err := service.Update(ctx, teacher.ID, q.ID, UpdateQuizDTO{Title: &title}); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})
}

func TestQuestionManagement(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	teacher := seedTeacher(t, db)
	other := seedTeacher(t, db)
	service := NewService(db, NewRepository(db))

	q, err := service.CreateWithQuestions(ctx, teacher.ID, validCreateDTO())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	t.Run("AddQuestionAppendsAtEnd", func(t *testing.T) {
		question, err := service.AddQuestion(ctx, teacher.ID, q.ID, QuestionDTO{
			Text:    "What is 3*3?",
			Options: []string{"6", "9"},
			Correct: 1,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if question.OrderIndex != 3 {
			t.Errorf("expected order 3, got %d", question.OrderIndex)
		}
		if question.Marks != 1 {
			t.Errorf("expected default marks 1, got %d", question.Marks)
		}
		if len(question.Options) != 2 {
			t.Errorf("expected options returned, got %d", len(question.Options))
		}
	})

	t.Run("DeleteQuestion", func(t *testing.T) {
		questions, err := NewRepository(db).ListQuestionsByQuiz(q.ID)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		target := questions[0].ID

		if err := service.DeleteQuestion(ctx, other.ID, target); !errors.Is(err, ErrNotOwner) {
			t.Fatalf("expected ErrNotOwner for foreign teacher, got %v", err)
		}
		if err := service.DeleteQuestion(ctx, teacher.ID, target); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := service.DeleteQuestion(ctx, teacher.ID, target); !errors.Is(err, ErrQuestionNotFound) {
			t.Errorf("expected ErrQuestionNotFound on second delete, got %v", err)
		}
	})
}

func TestListMine(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	teacher := seedTeacher(t, db)
	other := seedTeacher(t, db)
	service := NewService(db, NewRepository(db))

	q, err := service.CreateWithQuestions(ctx, teacher.ID, validCreateDTO())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.CreateWithQuestions(ctx, other.ID, validCreateDTO()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	err = db.Exec(`INSERT INTO quiz_attempts (id, quiz_id, student_id, status) VALUES (?, ?, ?, 'completed')`,
		uuid.New().String(), q.ID.String(), uuid.New().String()).Error
	if err != nil {
		t.Fatalf("failed to seed attempt row: %v", err)
	}

	summaries, err := service.ListMine(ctx, teacher.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected only the caller's quizzes, got %d", len(summaries))
	}
	if summaries[0].QuestionCount != 2 {
		t.Errorf("expected 2 questions, got %d", summaries[0].QuestionCount)
	}
	if summaries[0].AttemptCount != 1 {
		t.Errorf("expected 1 attempt, got %d", summaries[0].AttemptCount)
	}
}
