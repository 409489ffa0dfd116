package quiz

import (
	"time"

	"github.com/google/uuid"
)

type QuestionDTO struct {
	Text        string       `json:"text"`
	Type        QuestionType `json:"type"`
	Marks       int          `json:"marks"`
	Explanation string       `json:"explanation"`
	Options     []string     `json:"options"`
	Correct     int          `json:"correct"`
}

type CreateQuizDTO struct {
	Title              string        `json:"title"`
	Category           string        `json:"category"`
	Description        string        `json:"description"`
	Difficulty         Difficulty    `json:"difficulty"`
	TimeLimit          int           `json:"time_limit"`
	TotalMarks         int           `json:"total_marks"`
	PassingMarks       *int          `json:"passing_marks"`
	Status             Status        `json:"status"`
	AllowRetake        *bool         `json:"allow_retake"`
	MaxAttempts        *int          `json:"max_attempts"`
	ShuffleQuestions   bool          `json:"shuffle_questions"`
	ShuffleOptions     bool          `json:"shuffle_options"`
	ShowCorrectAnswers *bool         `json:"show_correct_answers"`
	Questions          []QuestionDTO `json:"questions"`
}

type UpdateQuizDTO struct {
	Title        *string     `json:"title"`
	Category     *string     `json:"category"`
	Description  *string     `json:"description"`
	Difficulty   *Difficulty `json:"difficulty"`
	TimeLimit    *int        `json:"time_limit"`
	TotalMarks   *int        `json:"total_marks"`
	PassingMarks *int        `json:"passing_marks"`
	Status       *Status     `json:"status"`
	AllowRetake  *bool       `json:"allow_retake"`
	MaxAttempts  *int        `json:"max_attempts"`
}

type QuizSummary struct {
	Quiz
	QuestionCount int64 `json:"question_count"`
	AttemptCount  int64 `json:"attempt_count"`
}

// TakeOption and TakeQuestion are the student-facing projections: they
// never carry correctness flags.
type TakeOption struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

type TakeQuestion struct {
	ID      uuid.UUID    `json:"id"`
	Text    string       `json:"text"`
	Marks   int          `json:"marks"`
	Options []TakeOption `json:"options"`
}

type TakeQuizView struct {
	ID             uuid.UUID      `json:"id"`
	Title          string         `json:"title"`
	Category       string         `json:"category"`
	Difficulty     Difficulty     `json:"difficulty"`
	TimeLimit      int            `json:"time_limit"`
	TotalMarks     int            `json:"total_marks"`
	PassingMarks   int            `json:"passing_marks"`
	TotalQuestions int            `json:"total_questions"`
	Questions      []TakeQuestion `json:"questions"`
	CreatedAt      time.Time      `json:"created_at"`
}

// SanitizeForTaking strips correct-answer information from a loaded
// question list. Grading happens server-side only.
func SanitizeForTaking(q *Quiz, questions []Question) *TakeQuizView {
	view := &TakeQuizView{
		ID:             q.ID,
		Title:          q.Title,
		Category:       q.Category,
		Difficulty:     q.Difficulty,
		TimeLimit:      q.TimeLimit,
		TotalMarks:     q.TotalMarks,
		PassingMarks:   q.PassingMarks,
		TotalQuestions: len(questions),
		Questions:      make([]TakeQuestion, 0, len(questions)),
		CreatedAt:      q.CreatedAt,
	}
	for _, question := range questions {
		tq := TakeQuestion{
			ID:      question.ID,
			Text:    question.QuestionText,
			Marks:   question.Marks,
			Options: make([]TakeOption, 0, len(question.Options)),
		}
		for _, opt := range question.Options {
			tq.Options = append(tq.Options, TakeOption{ID: opt.ID, Text: opt.OptionText})
		}
		view.Questions = append(view.Questions, tq)
	}
	return view
}
