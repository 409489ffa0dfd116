package quiz

import (
	"time"

	"github.com/google/uuid"
	"github.com/quizmaster-app/quizmaster/internal/user"
)

type Quiz struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedBy   user.User `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"-"`

	Title       string     `gorm:"type:varchar(200);not null;index" json:"title"`
	Category    string     `gorm:"type:varchar(100);not null;index" json:"category"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	Difficulty  Difficulty `gorm:"type:varchar(20);not null;default:medium" json:"difficulty"`

	// Time limit in minutes (1-300)
	TimeLimit int `gorm:"not null" json:"time_limit"`

	TotalMarks   int `gorm:"not null" json:"total_marks"`
	PassingMarks int `gorm:"not null" json:"passing_marks"`

	Status Status `gorm:"type:varchar(20);not null;default:active;index" json:"status"`

	AllowRetake        bool `gorm:"not null;default:true" json:"allow_retake"`
	MaxAttempts        int  `gorm:"not null;default:3" json:"max_attempts"`
	ShuffleQuestions   bool `gorm:"not null;default:false" json:"shuffle_questions"`
	ShuffleOptions     bool `gorm:"not null;default:false" json:"shuffle_options"`
	ShowCorrectAnswers bool `gorm:"not null;default:true" json:"show_correct_answers"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Questions []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type Question struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`

	QuestionText string       `gorm:"type:text;not null" json:"question_text"`
	QuestionType QuestionType `gorm:"type:varchar(20);not null;default:multiple_choice" json:"question_type"`
	Marks        int          `gorm:"not null;default:1" json:"marks"`

	// Legacy inline options, kept for backward compatibility with rows
	// created before the normalized Option model existed.
	OptionA       string `gorm:"type:varchar(500);default:''" json:"option_a,omitempty"`
	OptionB       string `gorm:"type:varchar(500);default:''" json:"option_b,omitempty"`
	OptionC       string `gorm:"type:varchar(500);default:''" json:"option_c,omitempty"`
	OptionD       string `gorm:"type:varchar(500);default:''" json:"option_d,omitempty"`
	CorrectAnswer int    `gorm:"not null;default:0" json:"correct_answer"`

	Explanation string `gorm:"type:text" json:"explanation,omitempty"`
	OrderIndex  int    `gorm:"not null;default:0;index" json:"order"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Options []Option `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

type Option struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	OptionText string    `gorm:"type:varchar(500);not null" json:"option_text"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"is_correct"`
	OrderIndex int       `gorm:"not null;default:0" json:"order"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// InlineOptions returns the non-empty legacy options in A..D order.
func (q *Question) InlineOptions() []string {
	opts := make([]string, 0, 4)
	for _, o := range []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD} {
		if o != "" {
			opts = append(opts, o)
		}
	}
	return opts
}
