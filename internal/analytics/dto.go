package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/quizmaster-app/quizmaster/internal/quiz"
)

// AttemptRow is one completed attempt as shown on the teacher's
// results table.
type AttemptRow struct {
	ID          uuid.UUID  `json:"id"`
	StudentID   uuid.UUID  `json:"student_id"`
	StudentName string     `json:"student_name"`
	Score       *int       `json:"score"`
	MaxScore    int        `json:"max_score"`
	Percentage  *float64   `json:"percentage"`
	Passed      *bool      `json:"passed"`
	TimeSpent   int        `json:"time_spent"`
	EndTime     *time.Time `json:"end_time"`
}

type QuizResultsResponse struct {
	QuizID            uuid.UUID    `json:"quiz_id"`
	QuizTitle         string       `json:"quiz_title"`
	TotalAttempts     int          `json:"total_attempts"`
	Stats             ScoreStats   `json:"stats"`
	GradeDistribution []GradeBand  `json:"grade_distribution"`
	Attempts          []AttemptRow `json:"attempts"`
}

type TeacherDashboardResponse struct {
	TotalQuizzes      int64       `json:"total_quizzes"`
	ActiveQuizzes     int64       `json:"active_quizzes"`
	TotalStudents     int64       `json:"total_students"`
	TotalAttempts     int64       `json:"total_attempts"`
	RecentQuizzes     []quiz.Quiz `json:"recent_quizzes"`
	GradeDistribution []GradeBand `json:"grade_distribution"`
}

// RecentAttempt is one row of the student's attempt history.
type RecentAttempt struct {
	ID         uuid.UUID  `json:"id"`
	QuizID     uuid.UUID  `json:"quiz_id"`
	QuizTitle  string     `json:"quiz_title"`
	Score      *int       `json:"score"`
	MaxScore   int        `json:"max_score"`
	Percentage *float64   `json:"percentage"`
	Passed     *bool      `json:"passed"`
	EndTime    *time.Time `json:"end_time"`
}

type StudentDashboardResponse struct {
	Stats             PerformanceStats `json:"stats"`
	GradeDistribution []GradeBand      `json:"grade_distribution"`
	RecentAttempts    []RecentAttempt  `json:"recent_attempts"`
}
