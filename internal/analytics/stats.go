package analytics

import (
	"math"

	"github.com/quizmaster-app/quizmaster/internal/attempt"
)

// GradeBand is one bucket of a percentage histogram.
type GradeBand struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type gradeRange struct {
	label string
	min   float64
	max   float64
}

// Bands are ordered best-first and bounds are inclusive on both ends,
// so a percentage on a boundary lands in exactly one bucket.
var gradeRanges = []gradeRange{
	{"90-100", 90, 100},
	{"80-89", 80, 89},
	{"70-79", 70, 79},
	{"60-69", 60, 69},
	{"50-59", 50, 59},
	{"0-49", 0, 49},
}

// GradeDistribution buckets completed attempts by percentage. Attempts
// without a percentage are ignored.
func GradeDistribution(attempts []attempt.QuizAttempt) []GradeBand {
	bands := make([]GradeBand, len(gradeRanges))
	for i, r := range gradeRanges {
		bands[i] = GradeBand{Label: r.label}
	}
	for _, a := range attempts {
		if a.Percentage == nil {
			continue
		}
		for i, r := range gradeRanges {
			if *a.Percentage >= r.min && *a.Percentage <= r.max {
				bands[i].Count++
				break
			}
		}
	}
	return bands
}

// ScoreStats summarises the scores of a set of completed attempts.
type ScoreStats struct {
	AvgScore float64 `json:"avg_score"`
	MaxScore int     `json:"max_score"`
	MinScore int     `json:"min_score"`
}

func Scores(attempts []attempt.QuizAttempt) ScoreStats {
	var stats ScoreStats
	sum := 0
	count := 0
	for _, a := range attempts {
		if a.Score == nil {
			continue
		}
		s := *a.Score
		if count == 0 || s > stats.MaxScore {
			stats.MaxScore = s
		}
		if count == 0 || s < stats.MinScore {
			stats.MinScore = s
		}
		sum += s
		count++
	}
	if count > 0 {
		stats.AvgScore = round2(float64(sum) / float64(count))
	}
	return stats
}

// PerformanceStats is the student-facing summary of all their
// completed attempts.
type PerformanceStats struct {
	TotalQuizzes  int     `json:"total_quizzes"`
	PassedQuizzes int     `json:"passed_quizzes"`
	FailedQuizzes int     `json:"failed_quizzes"`
	AvgScore      float64 `json:"avg_score"`
	BestScore     int     `json:"best_score"`
	WorstScore    int     `json:"worst_score"`
	PassRate      float64 `json:"pass_rate"`
}

func Performance(attempts []attempt.QuizAttempt) PerformanceStats {
	stats := PerformanceStats{TotalQuizzes: len(attempts)}
	if len(attempts) == 0 {
		return stats
	}
	// Attempts without a pass verdict count toward the total but
	// neither passed nor failed, so the two need not sum to it.
	for _, a := range attempts {
		if a.Passed == nil {
			continue
		}
		if *a.Passed {
			stats.PassedQuizzes++
		} else {
			stats.FailedQuizzes++
		}
	}
	scores := Scores(attempts)
	stats.AvgScore = scores.AvgScore
	stats.BestScore = scores.MaxScore
	stats.WorstScore = scores.MinScore
	stats.PassRate = round1(float64(stats.PassedQuizzes) / float64(stats.TotalQuizzes) * 100)
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
