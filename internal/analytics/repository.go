package analytics

import (
	"github.com/google/uuid"
	"github.com/quizmaster-app/quizmaster/internal/attempt"
	"github.com/quizmaster-app/quizmaster/internal/quiz"
	"gorm.io/gorm"
)

// AnalyticsRepository covers the read side of the dashboards. It only
// ever sees finished data written by the attempt pipeline.
type AnalyticsRepository interface {
	CompletedByQuiz(quizID uuid.UUID) ([]attempt.QuizAttempt, error)
	CompletedByStudent(studentID uuid.UUID) ([]attempt.QuizAttempt, error)
	CompletedByTeacher(teacherID uuid.UUID) ([]attempt.QuizAttempt, error)
	CountAttemptsByTeacher(teacherID uuid.UUID) (int64, error)
	CountStudentsByTeacher(teacherID uuid.UUID) (int64, error)
	RecentQuizzesByTeacher(teacherID uuid.UUID, limit int) ([]quiz.Quiz, error)
	CountQuizzesByTeacher(teacherID uuid.UUID) (int64, error)
	CountActiveQuizzesByTeacher(teacherID uuid.UUID) (int64, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CompletedByQuiz(quizID uuid.UUID) ([]attempt.QuizAttempt, error) {
	var attempts []attempt.QuizAttempt
	err := r.db.
		Preload("Student").
		Where("quiz_id = ? AND status = ?", quizID, attempt.StatusCompleted).
		Order("end_time DESC").
		Find(&attempts).
		Error
	return attempts, err
}

func (r *analyticsRepository) CompletedByStudent(studentID uuid.UUID) ([]attempt.QuizAttempt, error) {
	var attempts []attempt.QuizAttempt
	err := r.db.
		Preload("Quiz").
		Where("student_id = ? AND status = ?", studentID, attempt.StatusCompleted).
		Order("end_time DESC").
		Find(&attempts).
		Error
	return attempts, err
}

func (r *analyticsRepository) CompletedByTeacher(teacherID uuid.UUID) ([]attempt.QuizAttempt, error) {
	var attempts []attempt.QuizAttempt
	err := r.db.
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Where("quizzes.created_by_id = ? AND quiz_attempts.status = ?", teacherID, attempt.StatusCompleted).
		Find(&attempts).
		Error
	return attempts, err
}

func (r *analyticsRepository) CountAttemptsByTeacher(teacherID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&attempt.QuizAttempt{}).
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Where("quizzes.created_by_id = ?", teacherID).
		Count(&count).
		Error
	return count, err
}

func (r *analyticsRepository) CountStudentsByTeacher(teacherID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&attempt.QuizAttempt{}).
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Where("quizzes.created_by_id = ?", teacherID).
		Distinct("quiz_attempts.student_id").
		Count(&count).
		Error
	return count, err
}

func (r *analyticsRepository) RecentQuizzesByTeacher(teacherID uuid.UUID, limit int) ([]quiz.Quiz, error) {
	var quizzes []quiz.Quiz
	err := r.db.
		Where("created_by_id = ?", teacherID).
		Order("created_at DESC").
		Limit(limit).
		Find(&quizzes).
		Error
	return quizzes, err
}

func (r *analyticsRepository) CountQuizzesByTeacher(teacherID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&quiz.Quiz{}).
		Where("created_by_id = ?", teacherID).
		Count(&count).
		Error
	return count, err
}

func (r *analyticsRepository) CountActiveQuizzesByTeacher(teacherID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&quiz.Quiz{}).
		Where("created_by_id = ? AND status = ?", teacherID, quiz.StatusActive).
		Count(&count).
		Error
	return count, err
}
