package analytics

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/quizmaster-app/quizmaster/internal/config"
	"github.com/quizmaster-app/quizmaster/internal/quiz"
)

var (
	ErrQuizNotFound = errors.New("quiz not found")
	ErrNotOwner     = errors.New("you do not have permission to view these results")
)

const recentLimit = 5

type AnalyticsService interface {
	QuizResults(ctx context.Context, teacherID, quizID uuid.UUID) (*QuizResultsResponse, error)
	TeacherDashboard(ctx context.Context, teacherID uuid.UUID) (*TeacherDashboardResponse, error)
	StudentDashboard(ctx context.Context, studentID uuid.UUID) (*StudentDashboardResponse, error)
}

type analyticsService struct {
	repo     AnalyticsRepository
	quizRepo quiz.QuizRepository
}

func NewService(repo AnalyticsRepository, quizRepo quiz.QuizRepository) AnalyticsService {
	return &analyticsService{repo: repo, quizRepo: quizRepo}
}

func (s *analyticsService) QuizResults(ctx context.Context, teacherID, quizID uuid.UUID) (*QuizResultsResponse, error) {
	q, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}
	if q.CreatedByID != teacherID {
		return nil, ErrNotOwner
	}

	attempts, err := s.repo.CompletedByQuiz(quizID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load quiz attempts")
		return nil, err
	}

	rows := make([]AttemptRow, 0, len(attempts))
	for _, a := range attempts {
		rows = append(rows, AttemptRow{
			ID:          a.ID,
			StudentID:   a.StudentID,
			StudentName: a.Student.FullName(),
			Score:       a.Score,
			MaxScore:    a.MaxScore,
			Percentage:  a.Percentage,
			Passed:      a.Passed,
			TimeSpent:   a.TimeSpent,
			EndTime:     a.EndTime,
		})
	}

	return &QuizResultsResponse{
		QuizID:            q.ID,
		QuizTitle:         q.Title,
		TotalAttempts:     len(attempts),
		Stats:             Scores(attempts),
		GradeDistribution: GradeDistribution(attempts),
		Attempts:          rows,
	}, nil
}

func (s *analyticsService) TeacherDashboard(ctx context.Context, teacherID uuid.UUID) (*TeacherDashboardResponse, error) {
	totalQuizzes, err := s.repo.CountQuizzesByTeacher(teacherID)
	if err != nil {
		return nil, err
	}
	activeQuizzes, err := s.repo.CountActiveQuizzesByTeacher(teacherID)
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.repo.CountStudentsByTeacher(teacherID)
	if err != nil {
		return nil, err
	}
	totalAttempts, err := s.repo.CountAttemptsByTeacher(teacherID)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.RecentQuizzesByTeacher(teacherID, recentLimit)
	if err != nil {
		return nil, err
	}
	completed, err := s.repo.CompletedByTeacher(teacherID)
	if err != nil {
		return nil, err
	}

	return &TeacherDashboardResponse{
		TotalQuizzes:      totalQuizzes,
		ActiveQuizzes:     activeQuizzes,
		TotalStudents:     totalStudents,
		TotalAttempts:     totalAttempts,
		RecentQuizzes:     recent,
		GradeDistribution: GradeDistribution(completed),
	}, nil
}

func (s *analyticsService) StudentDashboard(ctx context.Context, studentID uuid.UUID) (*StudentDashboardResponse, error) {
	attempts, err := s.repo.CompletedByStudent(studentID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load student attempts")
		return nil, err
	}

	recent := make([]RecentAttempt, 0, recentLimit)
	for _, a := range attempts {
		if len(recent) == recentLimit {
			break
		}
		recent = append(recent, RecentAttempt{
			ID:         a.ID,
			QuizID:     a.QuizID,
			QuizTitle:  a.Quiz.Title,
			Score:      a.Score,
			MaxScore:   a.MaxScore,
			Percentage: a.Percentage,
			Passed:     a.Passed,
			EndTime:    a.EndTime,
		})
	}

	return &StudentDashboardResponse{
		Stats:             Performance(attempts),
		GradeDistribution: GradeDistribution(attempts),
		RecentAttempts:    recent,
	}, nil
}
