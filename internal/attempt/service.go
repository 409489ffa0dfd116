package attempt

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/quizmaster-app/quizmaster/internal/config"
	"github.com/quizmaster-app/quizmaster/internal/quiz"
	"gorm.io/gorm"
)

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuizUnavailable  = errors.New("this quiz is not available")
	ErrEmptyQuiz        = errors.New("this quiz has no questions yet")
	ErrAlreadyCompleted = errors.New("quiz already completed")
	ErrMaxAttempts      = errors.New("maximum attempts reached for this quiz")
	ErrAttemptNotFound  = errors.New("quiz attempt not found")
	ErrInvalidAnswer    = errors.New("submission contains an invalid answer entry")
	ErrForbidden        = errors.New("you do not have permission to view this attempt")
)

// CompletedError carries the finished attempt so callers can redirect
// the student straight to the existing result.
type CompletedError struct {
	AttemptID uuid.UUID
}

func (e *CompletedError) Error() string {
	return ErrAlreadyCompleted.Error()
}

func (e *CompletedError) Is(target error) bool {
	return target == ErrAlreadyCompleted
}

type AttemptService interface {
	StartOrResume(ctx context.Context, studentID, quizID uuid.UUID, ip, userAgent string) (*TakeResponse, error)
	Submit(ctx context.Context, studentID, quizID uuid.UUID, req SubmitRequest) (*SubmitResponse, error)
	GetResult(ctx context.Context, callerID, attemptID uuid.UUID) (*ResultResponse, error)
}

type attemptService struct {
	repo     AttemptRepository
	quizRepo quiz.QuizRepository
	db       *gorm.DB
	// When true, an unresolvable answer entry fails the whole
	// submission instead of being skipped.
	strict bool
}

func NewService(db *gorm.DB, repo AttemptRepository, quizRepo quiz.QuizRepository, strict bool) AttemptService {
	return &attemptService{
		repo:     repo,
		quizRepo: quizRepo,
		db:       db,
		strict:   strict,
	}
}

func (s *attemptService) StartOrResume(ctx context.Context, studentID, quizID uuid.UUID, ip, userAgent string) (*TakeResponse, error) {
	log := config.WithContext(ctx)

	q, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}
	if q.Status != quiz.StatusActive {
		return nil, ErrQuizUnavailable
	}

	questions, err := s.quizRepo.ListQuestionsByQuiz(quizID)
	if err != nil {
		return nil, err
	}
	// An empty quiz must be rejected before any attempt row exists.
	if len(questions) == 0 {
		return nil, ErrEmptyQuiz
	}

	completed, err := s.repo.CountCompleted(studentID, quizID)
	if err != nil {
		return nil, err
	}
	if completed > 0 {
		if !q.AllowRetake {
			latest, err := s.repo.LatestCompleted(studentID, quizID)
			if err != nil {
				return nil, err
			}
			return nil, &CompletedError{AttemptID: latest.ID}
		}
		if completed >= int64(q.MaxAttempts) {
			return nil, ErrMaxAttempts
		}
	}

	attempt, err := s.repo.FindInProgress(studentID, quizID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		attempt = &QuizAttempt{
			ID:        uuid.New(),
			StudentID: studentID,
			QuizID:    quizID,
			StartTime: time.Now().UTC(),
			Status:    StatusInProgress,
			IPAddress: ip,
			UserAgent: userAgent,
		}
		if err := s.repo.Create(attempt); err != nil {
			log.WithError(err).Error("Failed to create quiz attempt")
			return nil, err
		}
		log.WithField("attempt_id", attempt.ID).Info("Quiz attempt started")
	}

	return &TakeResponse{
		Quiz: quiz.SanitizeForTaking(q, questions),
		Attempt: AttemptInfo{
			ID:        attempt.ID,
			StartTime: attempt.StartTime,
			Status:    attempt.Status,
		},
	}, nil
}

// gradedAnswer is one resolved entry of the answer map.
type gradedAnswer struct {
	answer  *StudentAnswer
	marks   int
	correct bool
}

func (s *attemptService) Submit(ctx context.Context, studentID, quizID uuid.UUID, req SubmitRequest) (*SubmitResponse, error) {
	log := config.WithContext(ctx)

	q, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	attempt, err := s.repo.FindInProgress(studentID, quizID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, ErrAttemptNotFound
	}

	questionCount, err := s.quizRepo.CountQuestions(quizID)
	if err != nil {
		return nil, err
	}

	var resp *SubmitResponse
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Claim the attempt first: only one submission can move it out
		// of in_progress, so a concurrent double-submit loses here.
		claimed, err := s.repo.Claim(tx, attempt.ID)
		if err != nil {
			return err
		}
		if !claimed {
			return ErrAttemptNotFound
		}

		totalScore := 0
		maxScore := 0
		correctCount := 0
		incorrectCount := 0
		graded := 0

		for questionIDStr, selection := range req.Answers {
			entry, err := s.resolveAnswer(attempt.ID, quizID, questionIDStr, selection)
			if err != nil {
				return err
			}
			if entry == nil {
				continue
			}
			if err := s.repo.UpsertAnswer(tx, entry.answer); err != nil {
				return err
			}
			maxScore += entry.marks
			if entry.correct {
				totalScore += entry.marks
				correctCount++
			} else {
				incorrectCount++
			}
			graded++
		}

		now := time.Now().UTC()
		attempt.Status = StatusCompleted
		attempt.Score = &totalScore
		attempt.MaxScore = maxScore
		attempt.TotalMarks = maxScore
		attempt.CorrectAnswers = correctCount
		attempt.IncorrectAnswers = incorrectCount
		attempt.Unanswered = int(questionCount) - graded
		attempt.EndTime = &now
		// The server clock is authoritative for time spent; the
		// client-reported value only fills in when start_time is missing.
		attempt.TimeSpent = req.TimeSpent
		if !attempt.StartTime.IsZero() {
			attempt.TimeSpent = int(now.Sub(attempt.StartTime).Seconds())
		}

		percentage := 0.0
		passed := false
		if maxScore > 0 {
			percentage = float64(totalScore) / float64(maxScore) * 100
			passed = totalScore >= q.PassingMarks
		}
		attempt.Percentage = &percentage
		attempt.Passed = &passed

		if err := s.repo.Finalize(tx, attempt); err != nil {
			return err
		}

		resp = &SubmitResponse{
			Success:    true,
			AttemptID:  attempt.ID,
			Score:      totalScore,
			MaxScore:   maxScore,
			Percentage: math.Round(percentage*100) / 100,
			Passed:     passed,
			Message:    "Quiz submitted successfully!",
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAttemptNotFound) || errors.Is(err, ErrInvalidAnswer) {
			return nil, err
		}
		log.WithError(err).Error("Failed to grade quiz submission")
		return nil, err
	}

	log.WithField("attempt_id", attempt.ID).
		Infof("Attempt graded: %d/%d (passed=%t)", resp.Score, resp.MaxScore, resp.Passed)
	return resp, nil
}

// resolveAnswer turns one (question id, selection) pair into an upsert-
// ready StudentAnswer. Entries referencing unknown questions, options
// outside the question, or garbage ids return (nil, nil) in lenient
// mode and ErrInvalidAnswer in strict mode.
func (s *attemptService) resolveAnswer(attemptID, quizID uuid.UUID, questionIDStr, selection string) (*gradedAnswer, error) {
	questionID, err := uuid.Parse(questionIDStr)
	if err != nil {
		return nil, s.skipOrFail("malformed question id %q", questionIDStr)
	}

	question, err := s.quizRepo.FindQuestionInQuiz(quizID, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, s.skipOrFail("question %s does not belong to this quiz", questionIDStr)
	}

	key := KeyFor(question)
	answer := &StudentAnswer{
		ID:         uuid.New(),
		AttemptID:  attemptID,
		QuestionID: question.ID,
	}

	if key.Legacy() {
		index, err := strconv.Atoi(selection)
		if err != nil || index < 0 || index >= len(question.InlineOptions()) {
			return nil, s.skipOrFail("invalid option index %q for question %s", selection, questionIDStr)
		}
		answer.SelectedOptionIndex = index
		answer.IsCorrect = key.GradeIndex(index)
	} else {
		optionID, err := uuid.Parse(selection)
		if err != nil {
			return nil, s.skipOrFail("malformed option id %q", selection)
		}
		var selected *quiz.Option
		for i := range question.Options {
			if question.Options[i].ID == optionID {
				selected = &question.Options[i]
				break
			}
		}
		if selected == nil {
			return nil, s.skipOrFail("option %s does not belong to question %s", selection, questionIDStr)
		}
		answer.SelectedOptionID = &selected.ID
		answer.IsCorrect = key.GradeOption(selected.ID)
	}

	return &gradedAnswer{
		answer:  answer,
		marks:   question.Marks,
		correct: answer.IsCorrect,
	}, nil
}

func (s *attemptService) skipOrFail(format string, args ...interface{}) error {
	if s.strict {
		return fmt.Errorf("%w: %s", ErrInvalidAnswer, fmt.Sprintf(format, args...))
	}
	return nil
}

func (s *attemptService) GetResult(ctx context.Context, callerID, attemptID uuid.UUID) (*ResultResponse, error) {
	attempt, err := s.repo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, ErrAttemptNotFound
	}

	isOwner := attempt.StudentID == callerID
	isQuizTeacher := attempt.Quiz.CreatedByID == callerID
	if !isOwner && !isQuizTeacher {
		return nil, ErrForbidden
	}

	answers, err := s.repo.ListAnswers(attemptID)
	if err != nil {
		return nil, err
	}

	showCorrect := isQuizTeacher || attempt.Quiz.ShowCorrectAnswers

	breakdown := make([]AnswerBreakdown, 0, len(answers))
	correctCount := 0
	for _, a := range answers {
		item := AnswerBreakdown{
			QuestionID:   a.QuestionID,
			QuestionText: a.Question.QuestionText,
			Marks:        a.Question.Marks,
			IsCorrect:    a.IsCorrect,
			IsFlagged:    a.IsFlagged,
			TimeTaken:    a.TimeTaken,
		}
		if a.IsCorrect {
			correctCount++
		}
		if a.SelectedOption != nil {
			item.SelectedOption = &quiz.TakeOption{ID: a.SelectedOption.ID, Text: a.SelectedOption.OptionText}
		}
		if showCorrect {
			item.Explanation = a.Question.Explanation
			for _, opt := range a.Question.Options {
				if opt.IsCorrect {
					item.CorrectOption = &quiz.TakeOption{ID: opt.ID, Text: opt.OptionText}
					break
				}
			}
		}
		breakdown = append(breakdown, item)
	}

	return &ResultResponse{
		Attempt:        attempt,
		QuizTitle:      attempt.Quiz.Title,
		PassingMarks:   attempt.Quiz.PassingMarks,
		TotalQuestions: len(answers) + attempt.Unanswered,
		CorrectAnswers: correctCount,
		Answers:        breakdown,
	}, nil
}
