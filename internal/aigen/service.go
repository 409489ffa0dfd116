package aigen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quizmaster-app/quizmaster/internal/config"
)

var (
	ErrTopicRequired    = errors.New("topic is required")
	ErrGenerationFailed = errors.New("AI failed to generate data")
)

type Service interface {
	Generate(ctx context.Context, teacherID uuid.UUID, req GenerateRequest) ([]Candidate, error)
	History(ctx context.Context, teacherID uuid.UUID) ([]GenerationLog, error)
}

// historyLimit caps how many past generations the history endpoint
// returns.
const historyLimit = 20

type service struct {
	provider Provider
	logs     LogRepository
	timeout  time.Duration
}

func NewService(provider Provider, logs LogRepository, timeout time.Duration) Service {
	return &service{provider: provider, logs: logs, timeout: timeout}
}

func (s *service) Generate(ctx context.Context, teacherID uuid.UUID, req GenerateRequest) ([]Candidate, error) {
	log := config.WithContext(ctx)

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, ErrTopicRequired
	}
	count := clampCount(req.NumQuestions)
	difficulty := strings.TrimSpace(req.Difficulty)
	if difficulty == "" {
		difficulty = defaultDifficulty
	}

	prompt := buildPrompt(topic, count, difficulty, req.Instructions)

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	candidates, err := s.provider.Generate(genCtx, prompt)
	if err != nil || len(candidates) == 0 {
		s.record(ctx, teacherID, topic, difficulty, count, false, nil)
		if err != nil {
			log.WithError(err).Error("Question generation failed")
		}
		return nil, ErrGenerationFailed
	}

	candidates = filterUsable(candidates)
	if len(candidates) == 0 {
		s.record(ctx, teacherID, topic, difficulty, count, false, nil)
		return nil, ErrGenerationFailed
	}

	s.record(ctx, teacherID, topic, difficulty, count, true, candidates)
	log.Infof("Generated %d question candidates for topic %q", len(candidates), topic)
	return candidates, nil
}

func (s *service) History(ctx context.Context, teacherID uuid.UUID) ([]GenerationLog, error) {
	return s.logs.ListByTeacher(teacherID, historyLimit)
}

// filterUsable drops candidates the quiz builder could not accept:
// no text, fewer than two options, or an out-of-range correct index.
func filterUsable(candidates []Candidate) []Candidate {
	usable := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if strings.TrimSpace(c.Text) == "" {
			continue
		}
		if len(c.Options) < 2 || c.Correct < 0 || c.Correct >= len(c.Options) {
			continue
		}
		usable = append(usable, c)
	}
	return usable
}

// record writes the audit row. Logging failures never fail the call.
func (s *service) record(ctx context.Context, teacherID uuid.UUID, topic, difficulty string, count int, success bool, candidates []Candidate) {
	entry := &GenerationLog{
		ID:           uuid.New(),
		TeacherID:    teacherID,
		Topic:        topic,
		Difficulty:   difficulty,
		NumQuestions: count,
		Success:      success,
	}
	if len(candidates) > 0 {
		if payload, err := json.Marshal(candidates); err == nil {
			entry.Questions = payload
		}
	}
	if err := s.logs.Create(entry); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Failed to record generation log")
	}
}
