package attempt

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository interface {
	Create(a *QuizAttempt) error
	FindByID(id uuid.UUID) (*QuizAttempt, error)
	FindInProgress(studentID, quizID uuid.UUID) (*QuizAttempt, error)
	LatestCompleted(studentID, quizID uuid.UUID) (*QuizAttempt, error)
	CountCompleted(studentID, quizID uuid.UUID) (int64, error)
	ListAnswers(attemptID uuid.UUID) ([]StudentAnswer, error)

	// Claim atomically flips an in_progress attempt to completed and
	// reports whether this caller won the transition.
	Claim(tx *gorm.DB, attemptID uuid.UUID) (bool, error)
	UpsertAnswer(tx *gorm.DB, answer *StudentAnswer) error
	Finalize(tx *gorm.DB, a *QuizAttempt) error
}

type attemptRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(a *QuizAttempt) error {
	return r.db.Create(a).Error
}

func (r *attemptRepository) FindByID(id uuid.UUID) (*QuizAttempt, error) {
	var a QuizAttempt
	if err := r.db.Preload("Quiz").First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *attemptRepository) FindInProgress(studentID, quizID uuid.UUID) (*QuizAttempt, error) {
	var a QuizAttempt
	err := r.db.
		First(&a, "student_id = ? AND quiz_id = ? AND status = ?", studentID, quizID, StatusInProgress).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *attemptRepository) LatestCompleted(studentID, quizID uuid.UUID) (*QuizAttempt, error) {
	var a QuizAttempt
	err := r.db.
		Where("student_id = ? AND quiz_id = ? AND status = ?", studentID, quizID, StatusCompleted).
		Order("end_time DESC").
		First(&a).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *attemptRepository) CountCompleted(studentID, quizID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&QuizAttempt{}).
		Where("student_id = ? AND quiz_id = ? AND status = ?", studentID, quizID, StatusCompleted).
		Count(&count).
		Error
	return count, err
}

func (r *attemptRepository) ListAnswers(attemptID uuid.UUID) ([]StudentAnswer, error) {
	var answers []StudentAnswer
	err := r.db.
		Preload("Question").
		Preload("Question.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		}).
		Preload("SelectedOption").
		Where("attempt_id = ?", attemptID).
		Find(&answers).
		Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *attemptRepository) Claim(tx *gorm.DB, attemptID uuid.UUID) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	res := tx.Model(&QuizAttempt{}).
		Where("id = ? AND status = ?", attemptID, StatusInProgress).
		Update("status", StatusCompleted)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *attemptRepository) UpsertAnswer(tx *gorm.DB, answer *StudentAnswer) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"selected_option_id", "selected_option_index", "is_correct",
		}),
	}).Create(answer).Error
}

func (r *attemptRepository) Finalize(tx *gorm.DB, a *QuizAttempt) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Save(a).Error
}
