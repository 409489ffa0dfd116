package analytics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quizmaster-app/quizmaster/internal/attempt"
	"github.com/quizmaster-app/quizmaster/internal/quiz"
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
	err = db.AutoMigrate(
		&user.User{},
		&quiz.Quiz{},
		&quiz.Question{},
		&quiz.Option{},
		&attempt.QuizAttempt{},
		&attempt.StudentAnswer{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role user.Role, firstName string) *user.User {
	t.Helper()
	u := &user.User{
		ID:        uuid.New(),
		Username:  fmt.Sprintf("user-%s", uuid.New().String()[:8]),
		Email:     fmt.Sprintf("%s@example.com", uuid.New().String()[:8]),
		FirstName: firstName,
		Role:      role,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

func seedQuiz(t *testing.T, db *gorm.DB, teacher *user.User, status quiz.Status) *quiz.Quiz {
	t.Helper()
	q := &quiz.Quiz{
		ID:           uuid.New(),
		CreatedByID:  teacher.ID,
		Title:        "History basics",
		Category:     "history",
		TimeLimit:    20,
		TotalMarks:   10,
		PassingMarks: 6,
		Status:       status,
		MaxAttempts:  3,
	}
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("failed to seed quiz: %v", err)
	}
	return q
}

func seedCompletedAttempt(t *testing.T, db *gorm.DB, student *user.User, q *quiz.Quiz, score int, percentage float64, passed bool) *attempt.QuizAttempt {
	t.Helper()
	end := time.Now().UTC()
	a := &attempt.QuizAttempt{
		ID:         uuid.New(),
		StudentID:  student.ID,
		QuizID:     q.ID,
		StartTime:  end.Add(-10 * time.Minute),
		EndTime:    &end,
		Score:      &score,
		MaxScore:   10,
		TotalMarks: 10,
		Percentage: &percentage,
		Passed:     &passed,
		Status:     attempt.StatusCompleted,
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("failed to seed attempt: %v", err)
	}
	return a
}

func TestQuizResults(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	teacher := seedUser(t, db, user.RoleTeacher, "Ada")
	other := seedUser(t, db, user.RoleTeacher, "Grace")
	alice := seedUser(t, db, user.RoleStudent, "Alice")
	bob := seedUser(t, db, user.RoleStudent, "Bob")
	q := seedQuiz(t, db, teacher, quiz.StatusActive)
	seedCompletedAttempt(t, db, alice, q, 9, 90, true)
	seedCompletedAttempt(t, db, bob, q, 4, 40, false)
	service := NewService(NewRepository(db), quiz.NewRepository(db))

	t.Run("OwnerSeesStatsAndRows", func(t *testing.T) {
		resp, err := service.QuizResults(ctx, teacher.ID, q.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.TotalAttempts != 2 || len(resp.Attempts) != 2 {
			t.Fatalf("expected 2 attempts, got %d", resp.TotalAttempts)
		}
		if resp.Stats.AvgScore != 6.5 || resp.Stats.MaxScore != 9 || resp.Stats.MinScore != 4 {
			t.Errorf("unexpected stats: %+v", resp.Stats)
		}
		for _, row := range resp.Attempts {
			if row.StudentName == "" {
				t.Error("expected student names on result rows")
			}
		}
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		if _, err := service.QuizResults(ctx, other.ID, q.ID); !errors.Is(err, ErrNotOwner) {
			t.Errorf("expected ErrNotOwner, got %v", err)
		}
	})

	t.Run("UnknownQuiz", func(t *testing.T) {
		if _, err := service.QuizResults(ctx, teacher.ID, uuid.New()); !errors.Is(err, ErrQuizNotFound) {
			t.Errorf("expected ErrQuizNotFound, got %v", err)
		}
	})
}

func TestTeacherDashboard(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	teacher := seedUser(t, db, user.RoleTeacher, "Ada")
	alice := seedUser(t, db, user.RoleStudent, "Alice")
	bob := seedUser(t, db, user.RoleStudent, "Bob")
	active := seedQuiz(t, db, teacher, quiz.StatusActive)
	seedQuiz(t, db, teacher, quiz.StatusDraft)
	seedCompletedAttempt(t, db, alice, active, 9, 90, true)
	seedCompletedAttempt(t, db, alice, active, 7, 70, true)
	seedCompletedAttempt(t, db, bob, active, 4, 40, false)
	service := NewService(NewRepository(db), quiz.NewRepository(db))

	resp, err := service.TeacherDashboard(ctx, teacher.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TotalQuizzes != 2 || resp.ActiveQuizzes != 1 {
		t.Errorf("expected 2 quizzes / 1 active, got %d/%d", resp.TotalQuizzes, resp.ActiveQuizzes)
	}
	if resp.TotalStudents != 2 {
		t.Errorf("expected 2 distinct students, got %d", resp.TotalStudents)
	}
	if resp.TotalAttempts != 3 {
		t.Errorf("expected 3 attempts, got %d", resp.TotalAttempts)
	}
	if len(resp.RecentQuizzes) != 2 {
		t.Errorf("expected 2 recent quizzes, got %d", len(resp.RecentQuizzes))
	}
	total := 0
	for _, band := range resp.GradeDistribution {
		total += band.Count
	}
	if total != 3 {
		t.Errorf("expected every completed attempt bucketed, got %d", total)
	}
}

func TestStudentDashboard(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	teacher := seedUser(t, db, user.RoleTeacher, "Ada")
	alice := seedUser(t, db, user.RoleStudent, "Alice")
	q := seedQuiz(t, db, teacher, quiz.StatusActive)
	seedCompletedAttempt(t, db, alice, q, 9, 90, true)
	seedCompletedAttempt(t, db, alice, q, 5, 50, false)
	service := NewService(NewRepository(db), quiz.NewRepository(db))

	resp, err := service.StudentDashboard(ctx, alice.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Stats.TotalQuizzes != 2 || resp.Stats.PassedQuizzes != 1 {
		t.Errorf("unexpected stats: %+v", resp.Stats)
	}
	if resp.Stats.PassRate != 50 {
		t.Errorf("expected pass rate 50, got %v", resp.Stats.PassRate)
	}
	if len(resp.RecentAttempts) != 2 {
		t.Fatalf("expected 2 recent attempts, got %d", len(resp.RecentAttempts))
	}
	for _, row := range resp.RecentAttempts {
		if row.QuizTitle == "" {
			t.Error("expected quiz titles on recent attempts")
		}
	}

	t.Run("EmptyHistory", func(t *testing.T) {
		bob := seedUser(t, db, user.RoleStudent, "Bob")
		resp, err := service.StudentDashboard(ctx, bob.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Stats.TotalQuizzes != 0 || len(resp.RecentAttempts) != 0 {
			t.Errorf("expected empty dashboard, got %+v", resp)
		}
	})
}
