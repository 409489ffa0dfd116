package analytics

import (
	"testing"

	"github.com/quizmaster-app/quizmaster/internal/attempt"
)

func completedAttempt(score int, percentage float64, passed bool) attempt.QuizAttempt {
	return attempt.QuizAttempt{
		Score:      &score,
		Percentage: &percentage,
		Passed:     &passed,
		Status:     attempt.StatusCompleted,
	}
}

func TestGradeDistribution(t *testing.T) {
	t.Run("BoundariesAreInclusive", func(t *testing.T) {
		attempts := []attempt.QuizAttempt{
			completedAttempt(10, 100, true),
			completedAttempt(9, 90, true),
			completedAttempt(8, 89, true),
			completedAttempt(5, 50, false),
			completedAttempt(4, 49, false),
			completedAttempt(0, 0, false),
		}
		bands := GradeDistribution(attempts)

		want := map[string]int{
			"90-100": 2,
			"80-89":  1,
			"70-79":  0,
			"60-69":  0,
			"50-59":  1,
			"0-49":   2,
		}
		if len(bands) != len(want) {
			t.Fatalf("expected %d bands, got %d", len(want), len(bands))
		}
		for _, band := range bands {
			if band.Count != want[band.Label] {
				t.Errorf("band %s: expected %d, got %d", band.Label, want[band.Label], band.Count)
			}
		}
	})

	t.Run("BestBandComesFirst", func(t *testing.T) {
		bands := GradeDistribution(nil)
		if bands[0].Label != "90-100" || bands[len(bands)-1].Label != "0-49" {
			t.Errorf("unexpected band order: %v", bands)
		}
	})

	t.Run("IgnoresAttemptsWithoutPercentage", func(t *testing.T) {
		attempts := []attempt.QuizAttempt{{Status: attempt.StatusCompleted}}
		for _, band := range GradeDistribution(attempts) {
			if band.Count != 0 {
				t.Errorf("band %s counted an attempt with no percentage", band.Label)
			}
		}
	})
}

func TestScores(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		stats := Scores(nil)
		if stats.AvgScore != 0 || stats.MaxScore != 0 || stats.MinScore != 0 {
			t.Errorf("expected zero stats, got %+v", stats)
		}
	})

	t.Run("AveragesToTwoDecimals", func(t *testing.T) {
		attempts := []attempt.QuizAttempt{
			completedAttempt(1, 10, false),
			completedAttempt(2, 20, false),
			completedAttempt(2, 20, false),
		}
		stats := Scores(attempts)
		if stats.AvgScore != 1.67 {
			t.Errorf("expected avg 1.67, got %v", stats.AvgScore)
		}
		if stats.MaxScore != 2 || stats.MinScore != 1 {
			t.Errorf("expected max 2 min 1, got %+v", stats)
		}
	})

	t.Run("SkipsUnscoredAttempts", func(t *testing.T) {
		attempts := []attempt.QuizAttempt{
			{Status: attempt.StatusCompleted},
			completedAttempt(7, 70, true),
		}
		stats := Scores(attempts)
		if stats.AvgScore != 7 || stats.MinScore != 7 {
			t.Errorf("nil scores should be excluded, got %+v", stats)
		}
	})
}

func TestPerformance(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		stats := Performance(nil)
		if stats.TotalQuizzes != 0 || stats.PassRate != 0 {
			t.Errorf("expected zero stats, got %+v", stats)
		}
	})

	t.Run("PassRateToOneDecimal", func(t *testing.T) {
		attempts := []attempt.QuizAttempt{
			completedAttempt(8, 80, true),
			completedAttempt(6, 60, true),
			completedAttempt(3, 30, false),
		}
		stats := Performance(attempts)
		if stats.TotalQuizzes != 3 || stats.PassedQuizzes != 2 || stats.FailedQuizzes != 1 {
			t.Errorf("unexpected counts: %+v", stats)
		}
		if stats.PassRate != 66.7 {
			t.Errorf("expected pass rate 66.7, got %v", stats.PassRate)
		}
		if stats.BestScore != 8 || stats.WorstScore != 3 {
			t.Errorf("expected best 8 worst 3, got %+v", stats)
		}
		if stats.AvgScore != 5.67 {
			t.Errorf("expected avg 5.67, got %v", stats.AvgScore)
		}
	})

	t.Run("NilPassedCountsNeitherWay", func(t *testing.T) {
		score := 5
		passed := true
		attempts := []attempt.QuizAttempt{
			{Score: &score, Status: attempt.StatusCompleted},
			{Score: &score, Passed: &passed, Status: attempt.StatusCompleted},
		}
		stats := Performance(attempts)
		if stats.TotalQuizzes != 2 {
			t.Errorf("expected both attempts in the total, got %+v", stats)
		}
		if stats.PassedQuizzes != 1 || stats.FailedQuizzes != 0 {
			t.Errorf("expected the verdict-less attempt excluded from both counts, got %+v", stats)
		}
		if stats.PassRate != 50 {
			t.Errorf("expected pass rate 50, got %v", stats.PassRate)
		}
	})
}
