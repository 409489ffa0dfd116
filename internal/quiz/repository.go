package quiz

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(tx *gorm.DB, q *Quiz) error
	FindByID(id uuid.UUID) (*Quiz, error)
	ListByCreator(creatorID uuid.UUID) ([]*Quiz, error)
	ListActive() ([]*Quiz, error)
	Update(q *Quiz) error
	Delete(id uuid.UUID) error

	AddQuestions(tx *gorm.DB, questions []*Question) error
	AddOptions(tx *gorm.DB, options []*Option) error
	FindQuestionByID(id uuid.UUID) (*Question, error)
	FindQuestionInQuiz(quizID, questionID uuid.UUID) (*Question, error)
	ListQuestionsByQuiz(quizID uuid.UUID) ([]Question, error)
	DeleteQuestion(id uuid.UUID) error
	CountQuestions(quizID uuid.UUID) (int64, error)
	MaxQuestionOrder(quizID uuid.UUID) (int, error)

	CountAttempts(quizID uuid.UUID) (int64, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(tx *gorm.DB, q *Quiz) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(q).Error
}

func (r *quizRepository) FindByID(id uuid.UUID) (*Quiz, error) {
	var q Quiz
	if err := r.db.First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *quizRepository) ListByCreator(creatorID uuid.UUID) ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.
		Where("created_by_id = ?", creatorID).
		Order("created_at DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) ListActive() ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.
		Where("status = ?", StatusActive).
		Order("created_at DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) Update(q *Quiz) error {
	return r.db.Save(q).Error
}

func (r *quizRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Quiz{}, "id = ?", id).Error
}

func (r *quizRepository) AddQuestions(tx *gorm.DB, questions []*Question) error {
	if len(questions) == 0 {
		return nil
	}
	if tx == nil {
		tx = r.db
	}
	return tx.Create(&questions).Error
}

func (r *quizRepository) AddOptions(tx *gorm.DB, options []*Option) error {
	if len(options) == 0 {
		return nil
	}
	if tx == nil {
		tx = r.db
	}
	return tx.Create(&options).Error
}

func (r *quizRepository) FindQuestionByID(id uuid.UUID) (*Question, error) {
	var q Question
	if err := r.db.Preload("Options").First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *quizRepository) FindQuestionInQuiz(quizID, questionID uuid.UUID) (*Question, error) {
	var q Question
	if err := r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		}).
		First(&q, "id = ? AND quiz_id = ?", questionID, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *quizRepository) ListQuestionsByQuiz(quizID uuid.UUID) ([]Question, error) {
	var questions []Question
	if err := r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		}).
		Where("quiz_id = ?", quizID).
		Order("order_index ASC, id ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *quizRepository) DeleteQuestion(id uuid.UUID) error {
	return r.db.Delete(&Question{}, "id = ?", id).Error
}

func (r *quizRepository) CountQuestions(quizID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}

func (r *quizRepository) MaxQuestionOrder(quizID uuid.UUID) (int, error) {
	var max *int
	err := r.db.Model(&Question{}).
		Where("quiz_id = ?", quizID).
		Select("MAX(order_index)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// The attempt table belongs to another package; counting through the
// table name avoids an import cycle.
func (r *quizRepository) CountAttempts(quizID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Table("quiz_attempts").Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}
