package attempt

import (
	"time"

	"github.com/google/uuid"
	"github.com/quizmaster-app/quizmaster/internal/quiz"
	"github.com/quizmaster-app/quizmaster/internal/user"
)

type QuizAttempt struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index:idx_attempt_student_quiz" json:"student_id"`
	Student   user.User `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	QuizID    uuid.UUID `gorm:"type:uuid;not null;index:idx_attempt_student_quiz" json:"quiz_id"`
	Quiz      quiz.Quiz `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`

	StartTime time.Time  `gorm:"not null;index" json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	// Client-reported elapsed seconds, recorded at finalize.
	TimeSpent int `gorm:"not null;default:0" json:"time_spent"`

	Score    *int `json:"score"`
	MaxScore int  `gorm:"not null;default:0" json:"max_score"`
	// Deprecated mirror of MaxScore, kept for rows written before the
	// rename.
	TotalMarks int      `gorm:"not null;default:0" json:"total_marks"`
	Percentage *float64 `json:"percentage"`

	Status Status `gorm:"type:varchar(20);not null;default:in_progress;index" json:"status"`

	CorrectAnswers   int `gorm:"not null;default:0" json:"correct_answers"`
	IncorrectAnswers int `gorm:"not null;default:0" json:"incorrect_answers"`
	Unanswered       int `gorm:"not null;default:0" json:"unanswered"`

	Passed *bool `json:"passed"`

	IPAddress string `gorm:"type:varchar(45)" json:"ip_address,omitempty"`
	UserAgent string `gorm:"type:varchar(255)" json:"user_agent,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Answers []StudentAnswer `gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

type StudentAnswer struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	AttemptID  uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_answer_attempt_question" json:"attempt_id"`
	QuestionID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_answer_attempt_question" json:"question_id"`
	Question   quiz.Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`

	SelectedOptionID *uuid.UUID   `gorm:"type:uuid" json:"selected_option_id"`
	SelectedOption   *quiz.Option `gorm:"foreignKey:SelectedOptionID;constraint:OnDelete:SET NULL" json:"selected_option,omitempty"`

	// Deprecated index-based selection, used only for questions that
	// predate the normalized Option model.
	SelectedOptionIndex int `gorm:"not null;default:0" json:"selected_option_index"`

	// Always derived server-side, never taken from the client.
	IsCorrect bool `gorm:"not null;default:false" json:"is_correct"`

	IsFlagged bool `gorm:"not null;default:false" json:"is_flagged"`
	TimeTaken int  `gorm:"not null;default:0" json:"time_taken"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (StudentAnswer) TableName() string {
	return "student_answers"
}
