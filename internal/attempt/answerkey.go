package attempt

import (
	"github.com/google/uuid"
	"github.com/quizmaster-app/quizmaster/internal/quiz"
)

// AnswerKey reduces both answer representations (normalized Option rows
// and the legacy inline index) to one canonical "which selection is
// correct" value, so grading has a single code path.
type AnswerKey struct {
	legacy          bool
	correctOptionID uuid.UUID
	correctIndex    int
}

// AnswerKeyFromOptionSet builds a key from normalized Option rows. The
// first option flagged correct wins; rows that violate the exactly-one-
// correct invariant are tolerated rather than rejected at grading time.
func AnswerKeyFromOptionSet(options []quiz.Option) AnswerKey {
	key := AnswerKey{correctOptionID: uuid.Nil}
	for _, opt := range options {
		if opt.IsCorrect {
			key.correctOptionID = opt.ID
			break
		}
	}
	return key
}

// AnswerKeyFromInline builds a key from the legacy option_a..option_d
// representation, where correct_answer is an index into the options.
func AnswerKeyFromInline(q *quiz.Question) AnswerKey {
	return AnswerKey{legacy: true, correctIndex: q.CorrectAnswer}
}

// KeyFor prefers the normalized model when the question has Option rows
// and falls back to the inline representation otherwise.
func KeyFor(q *quiz.Question) AnswerKey {
	if len(q.Options) > 0 {
		return AnswerKeyFromOptionSet(q.Options)
	}
	return AnswerKeyFromInline(q)
}

func (k AnswerKey) Legacy() bool {
	return k.legacy
}

func (k AnswerKey) GradeOption(optionID uuid.UUID) bool {
	return !k.legacy && k.correctOptionID != uuid.Nil && optionID == k.correctOptionID
}

func (k AnswerKey) GradeIndex(index int) bool {
	return k.legacy && index == k.correctIndex
}
