package aigen

import (
	"time"

	"github.com/google/uuid"
	"github.com/quizmaster-app/quizmaster/internal/user"
	"gorm.io/datatypes"
)

// Candidate is one generated question before the teacher reviews it.
// Candidates are never written to the quiz tables directly.
type Candidate struct {
	Text        string   `json:"text"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Type        string   `json:"type"`
	Marks       int      `json:"marks"`
	Explanation string   `json:"explanation"`
}

// GenerationLog records every model call for auditing, including the
// raw candidates that were returned.
type GenerationLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TeacherID uuid.UUID `gorm:"type:uuid;not null;index" json:"teacher_id"`
	Teacher   user.User `gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE" json:"-"`

	Topic        string `gorm:"type:varchar(200);not null" json:"topic"`
	Difficulty   string `gorm:"type:varchar(20);not null" json:"difficulty"`
	NumQuestions int    `gorm:"not null" json:"num_questions"`

	Success   bool           `gorm:"not null;default:false" json:"success"`
	Questions datatypes.JSON `json:"questions,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (GenerationLog) TableName() string {
	return "generation_logs"
}
