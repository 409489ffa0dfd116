package attempt

import (
	"time"

	"github.com/google/uuid"
	"github.com/quizmaster-app/quizmaster/internal/quiz"
)

type SubmitRequest struct {
	// question id -> selected option id (or legacy option index)
	Answers   map[string]string `json:"answers"`
	TimeSpent int               `json:"time_spent"`
}

type SubmitResponse struct {
	Success    bool      `json:"success"`
	AttemptID  uuid.UUID `json:"attempt_id"`
	Score      int       `json:"score"`
	MaxScore   int       `json:"max_score"`
	Percentage float64   `json:"percentage"`
	Passed     bool      `json:"passed"`
	Message    string    `json:"message"`
}

type AttemptInfo struct {
	ID        uuid.UUID `json:"id"`
	StartTime time.Time `json:"start_time"`
	Status    Status    `json:"status"`
}

type TakeResponse struct {
	Quiz    *quiz.TakeQuizView `json:"quiz"`
	Attempt AttemptInfo        `json:"attempt"`
}

type AnswerBreakdown struct {
	QuestionID     uuid.UUID        `json:"question_id"`
	QuestionText   string           `json:"question_text"`
	Marks          int              `json:"marks"`
	SelectedOption *quiz.TakeOption `json:"selected_option,omitempty"`
	CorrectOption  *quiz.TakeOption `json:"correct_option,omitempty"`
	Explanation    string           `json:"explanation,omitempty"`
	IsCorrect      bool             `json:"is_correct"`
	IsFlagged      bool             `json:"is_flagged"`
	TimeTaken      int              `json:"time_taken"`
}

type ResultResponse struct {
	Attempt        *QuizAttempt      `json:"attempt"`
	QuizTitle      string            `json:"quiz_title"`
	PassingMarks   int               `json:"passing_marks"`
	TotalQuestions int               `json:"total_questions"`
	CorrectAnswers int               `json:"correct_answers"`
	Answers        []AnswerBreakdown `json:"answers"`
}
