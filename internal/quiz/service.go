package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/quizmaster-app/quizmaster/internal/config"
	"gorm.io/gorm"
)

const (
	MinTimeLimit   = 1
	MaxTimeLimit   = 300
	MinMarks       = 1
	MaxMarks       = 100
	MinMaxAttempts = 1
	MaxMaxAttempts = 10

	// Default passing threshold when the teacher leaves it unset.
	defaultPassingRatio = 0.6
	defaultMaxAttempts  = 3
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrNotOwner         = errors.New("quiz does not belong to this teacher")
)

type QuizService interface {
	CreateWithQuestions(ctx context.Context, teacherID uuid.UUID, dto CreateQuizDTO) (*Quiz, error)
	GetOwned(ctx context.Context, teacherID, quizID uuid.UUID) (*Quiz, []Question, error)
	ListMine(ctx context.Context, teacherID uuid.UUID) ([]QuizSummary, error)
	ListActive(ctx context.Context) ([]*Quiz, error)
	Update(ctx context.Context, teacherID, quizID uuid.UUID, dto UpdateQuizDTO) (*Quiz, error)
	Delete(ctx context.Context, teacherID, quizID uuid.UUID) error
	AddQuestion(ctx context.Context, teacherID, quizID uuid.UUID, dto QuestionDTO) (*Question, error)
	DeleteQuestion(ctx context.Context, teacherID, questionID uuid.UUID) error
}

type quizService struct {
	repo QuizRepository
	db   *gorm.DB
}

func NewService(db *gorm.DB, repo QuizRepository) QuizService {
	return &quizService{repo: repo, db: db}
}

func (s *quizService) CreateWithQuestions(ctx context.Context, teacherID uuid.UUID, dto CreateQuizDTO) (*Quiz, error) {
	log := config.WithContext(ctx)

	q, err := buildQuiz(teacherID, dto)
	if err != nil {
		return nil, err
	}
	if len(dto.Questions) == 0 {
		return nil, fmt.Errorf("%w: quiz must contain at least one question", ErrValidation)
	}

	questions := make([]*Question, 0, len(dto.Questions))
	options := make([]*Option, 0, len(dto.Questions)*4)
	for i, qdto := range dto.Questions {
		question, opts, err := buildQuestion(q.ID, qdto, i+1)
		if err != nil {
			return nil, err
		}
		questions = append(questions, question)
		options = append(options, opts...)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(tx, q); err != nil {
			return err
		}
		if err := s.repo.AddQuestions(tx, questions); err != nil {
			return err
		}
		return s.repo.AddOptions(tx, options)
	})
	if err != nil {
		log.WithError(err).Error("Failed to create quiz with questions")
		return nil, err
	}

	log.WithField("quiz_id", q.ID).Infof("Quiz %q created with %d questions", q.Title, len(questions))
	return q, nil
}

func buildQuiz(teacherID uuid.UUID, dto CreateQuizDTO) (*Quiz, error) {
	dto.Title = strings.TrimSpace(dto.Title)
	dto.Category = strings.TrimSpace(dto.Category)

	if dto.Title == "" || dto.Category == "" {
		return nil, fmt.Errorf("%w: title and category are required", ErrValidation)
	}
	if dto.Difficulty == "" {
		dto.Difficulty = DifficultyMedium
	}
	if !dto.Difficulty.Valid() {
		return nil, fmt.Errorf("%w: invalid difficulty", ErrValidation)
	}
	if dto.TimeLimit < MinTimeLimit || dto.TimeLimit > MaxTimeLimit {
		return nil, fmt.Errorf("%w: time limit must be between %d and %d minutes", ErrValidation, MinTimeLimit, MaxTimeLimit)
	}
	if dto.TotalMarks < 1 {
		return nil, fmt.Errorf("%w: total marks must be a positive number", ErrValidation)
	}
	if dto.Status == "" {
		dto.Status = StatusActive
	}
	if !dto.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status", ErrValidation)
	}

	passingMarks := int(float64(dto.TotalMarks) * defaultPassingRatio)
	if dto.PassingMarks != nil {
		if *dto.PassingMarks < 0 {
			return nil, fmt.Errorf("%w: passing marks cannot be negative", ErrValidation)
		}
		passingMarks = *dto.PassingMarks
	}

	maxAttempts := defaultMaxAttempts
	if dto.MaxAttempts != nil {
		if *dto.MaxAttempts < MinMaxAttempts || *dto.MaxAttempts > MaxMaxAttempts {
			return nil, fmt.Errorf("%w: max attempts must be between %d and %d", ErrValidation, MinMaxAttempts, MaxMaxAttempts)
		}
		maxAttempts = *dto.MaxAttempts
	}

	allowRetake := true
	if dto.AllowRetake != nil {
		allowRetake = *dto.AllowRetake
	}
	showCorrect := true
	if dto.ShowCorrectAnswers != nil {
		showCorrect = *dto.ShowCorrectAnswers
	}

	return &Quiz{
		ID:                 uuid.New(),
		CreatedByID:        teacherID,
		Title:              dto.Title,
		Category:           dto.Category,
		Description:        strings.TrimSpace(dto.Description),
		Difficulty:         dto.Difficulty,
		TimeLimit:          dto.TimeLimit,
		TotalMarks:         dto.TotalMarks,
		PassingMarks:       passingMarks,
		Status:             dto.Status,
		AllowRetake:        allowRetake,
		MaxAttempts:        maxAttempts,
		ShuffleQuestions:   dto.ShuffleQuestions,
		ShuffleOptions:     dto.ShuffleOptions,
		ShowCorrectAnswers: showCorrect,
	}, nil
}

func buildQuestion(quizID uuid.UUID, dto QuestionDTO, order int) (*Question, []*Option, error) {
	dto.Text = strings.TrimSpace(dto.Text)
	if dto.Text == "" {
		return nil, nil, fmt.Errorf("%w: question text is required", ErrValidation)
	}
	if dto.Type == "" {
		dto.Type = QuestionTypeMultipleChoice
	}
	if !dto.Type.Valid() {
		return nil, nil, fmt.Errorf("%w: invalid question type", ErrValidation)
	}
	if dto.Marks == 0 {
		dto.Marks = 1
	}
	if dto.Marks < MinMarks || dto.Marks > MaxMarks {
		return nil, nil, fmt.Errorf("%w: question marks must be between %d and %d", ErrValidation, MinMarks, MaxMarks)
	}

	texts := make([]string, 0, len(dto.Options))
	for _, o := range dto.Options {
		if t := strings.TrimSpace(o); t != "" {
			texts = append(texts, t)
		}
	}
	if len(texts) < 2 || len(texts) > 4 {
		return nil, nil, fmt.Errorf("%w: a question needs between 2 and 4 options", ErrValidation)
	}
	if dto.Type == QuestionTypeTrueFalse && len(texts) != 2 {
		return nil, nil, fmt.Errorf("%w: a true/false question needs exactly 2 options", ErrValidation)
	}
	// Exactly one correct option per question, enforced at the door so
	// grading stays well-defined.
	if dto.Correct < 0 || dto.Correct >= len(texts) {
		return nil, nil, fmt.Errorf("%w: correct option index out of range", ErrValidation)
	}

	question := &Question{
		ID:            uuid.New(),
		QuizID:        quizID,
		QuestionText:  dto.Text,
		QuestionType:  dto.Type,
		Marks:         dto.Marks,
		CorrectAnswer: dto.Correct,
		Explanation:   strings.TrimSpace(dto.Explanation),
		OrderIndex:    order,
	}

	options := make([]*Option, 0, len(texts))
	for idx, text := range texts {
		options = append(options, &Option{
			ID:         uuid.New(),
			QuestionID: question.ID,
			OptionText: text,
			IsCorrect:  idx == dto.Correct,
			OrderIndex: idx,
		})
	}
	return question, options, nil
}

func (s *quizService) GetOwned(ctx context.Context, teacherID, quizID uuid.UUID) (*Quiz, []Question, error) {
	q, err := s.ownedQuiz(teacherID, quizID)
	if err != nil {
		return nil, nil, err
	}
	questions, err := s.repo.ListQuestionsByQuiz(quizID)
	if err != nil {
		return nil, nil, err
	}
	return q, questions, nil
}

func (s *quizService) ListMine(ctx context.Context, teacherID uuid.UUID) ([]QuizSummary, error) {
	log := config.WithContext(ctx)

	quizzes, err := s.repo.ListByCreator(teacherID)
	if err != nil {
		log.WithError(err).Error("Failed to list quizzes")
		return nil, err
	}

	summaries := make([]QuizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		questionCount, err := s.repo.CountQuestions(q.ID)
		if err != nil {
			return nil, err
		}
		attemptCount, err := s.repo.CountAttempts(q.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, QuizSummary{
			Quiz:          *q,
			QuestionCount: questionCount,
			AttemptCount:  attemptCount,
		})
	}
	return summaries, nil
}

func (s *quizService) ListActive(ctx context.Context) ([]*Quiz, error) {
	return s.repo.ListActive()
}

func (s *quizService) Update(ctx context.Context, teacherID, quizID uuid.UUID, dto UpdateQuizDTO) (*Quiz, error) {
	log := config.WithContext(ctx)

	q, err := s.ownedQuiz(teacherID, quizID)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		if strings.TrimSpace(*dto.Title) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		q.Title = strings.TrimSpace(*dto.Title)
	}
	if dto.Category != nil {
		q.Category = strings.TrimSpace(*dto.Category)
	}
	if dto.Description != nil {
		q.Description = strings.TrimSpace(*dto.Description)
	}
	if dto.Difficulty != nil {
		if !dto.Difficulty.Valid() {
			return nil, fmt.Errorf("%w: invalid difficulty", ErrValidation)
		}
		q.Difficulty = *dto.Difficulty
	}
	if dto.TimeLimit != nil {
		if *dto.TimeLimit < MinTimeLimit || *dto.TimeLimit > MaxTimeLimit {
			return nil, fmt.Errorf("%w: time limit must be between %d and %d minutes", ErrValidation, MinTimeLimit, MaxTimeLimit)
		}
		q.TimeLimit = *dto.TimeLimit
	}
	if dto.TotalMarks != nil {
		if *dto.TotalMarks < 1 {
			return nil, fmt.Errorf("%w: total marks must be a positive number", ErrValidation)
		}
		q.TotalMarks = *dto.TotalMarks
	}
	if dto.PassingMarks != nil {
		if *dto.PassingMarks < 0 {
			return nil, fmt.Errorf("%w: passing marks cannot be negative", ErrValidation)
		}
		q.PassingMarks = *dto.PassingMarks
	}
	if dto.Status != nil {
		if !dto.Status.Valid() {
			return nil, fmt.Errorf("%w: invalid status", ErrValidation)
		}
		q.Status = *dto.Status
	}
	if dto.AllowRetake != nil {
		q.AllowRetake = *dto.AllowRetake
	}
	if dto.MaxAttempts != nil {
		if *dto.MaxAttempts < MinMaxAttempts || *dto.MaxAttempts > MaxMaxAttempts {
			return nil, fmt.Errorf("%w: max attempts must be between %d and %d", ErrValidation, MinMaxAttempts, MaxMaxAttempts)
		}
		q.MaxAttempts = *dto.MaxAttempts
	}

	if err := s.repo.Update(q); err != nil {
		log.WithError(err).Error("Failed to update quiz")
		return nil, err
	}
	return q, nil
}

func (s *quizService) Delete(ctx context.Context, teacherID, quizID uuid.UUID) error {
	log := config.WithContext(ctx)

	if _, err := s.ownedQuiz(teacherID, quizID); err != nil {
		return err
	}
	if err := s.repo.Delete(quizID); err != nil {
		log.WithError(err).Error("Failed to delete quiz")
		return err
	}
	log.WithField("quiz_id", quizID).Info("Quiz deleted")
	return nil
}

func (s *quizService) AddQuestion(ctx context.Context, teacherID, quizID uuid.UUID, dto QuestionDTO) (*Question, error) {
	log := config.WithContext(ctx)

	if _, err := s.ownedQuiz(teacherID, quizID); err != nil {
		return nil, err
	}

	maxOrder, err := s.repo.MaxQuestionOrder(quizID)
	if err != nil {
		return nil, err
	}

	question, options, err := buildQuestion(quizID, dto, maxOrder+1)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.AddQuestions(tx, []*Question{question}); err != nil {
			return err
		}
		return s.repo.AddOptions(tx, options)
	})
	if err != nil {
		log.WithError(err).Error("Failed to add question")
		return nil, err
	}

	question.Options = make([]Option, 0, len(options))
	for _, o := range options {
		question.Options = append(question.Options, *o)
	}
	log.WithField("question_id", question.ID).Info("Question added")
	return question, nil
}

func (s *quizService) DeleteQuestion(ctx context.Context, teacherID, questionID uuid.UUID) error {
	log := config.WithContext(ctx)

	question, err := s.repo.FindQuestionByID(questionID)
	if err != nil {
		return err
	}
	if question == nil {
		return ErrQuestionNotFound
	}
	if _, err := s.ownedQuiz(teacherID, question.QuizID); err != nil {
		return err
	}

	if err := s.repo.DeleteQuestion(questionID); err != nil {
		log.WithError(err).Error("Failed to delete question")
		return err
	}
	return nil
}

func (s *quizService) ownedQuiz(teacherID, quizID uuid.UUID) (*Quiz, error) {
	q, err := s.repo.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}
	if q.CreatedByID != teacherID {
		return nil, ErrNotOwner
	}
	return q, nil
}
