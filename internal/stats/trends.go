// Package stats summarizes training attempts over time.
package stats

import (
	"math"
	"sort"
	"time"
)

// Sample is the minimal attempt data needed for trend analysis.
type Sample struct {
	AttemptID   string
	AlgorithmID string
	StartedAt   time.Time
	Duration    time.Duration
	Moves       int
	Mistakes    int
	Stars       int
	Completed   bool
}

// TrendReport contains trend analysis across attempts.
type TrendReport struct {
	TotalAttempts     int `json:"total_attempts"`
	CompletedAttempts int `json:"completed_attempts"`

	AvgDuration time.Duration `json:"avg_duration"`
	AvgMistakes float64       `json:"avg_mistakes"`
	CleanRate   float64       `json:"clean_rate"` // share of completions with no mistakes, 0-100

	Best  *Sample `json:"best,omitempty"`
	Worst *Sample `json:"worst,omitempty"`

	// Improvement compares the first quarter of completions to the last.
	// Negative means the trainee got slower.
	ImprovementPct   float64 `json:"improvement_pct"`
	ConsistencyScore float64 `json:"consistency_score"`

	// Rolling averages over the last 5, 12 and 50 completions.
	RollingAvgs map[int]time.Duration `json:"rolling_averages"`

	StarCounts [4]int `json:"star_counts"` // index is the star rating
}

// RollingWindows are the rolling average sizes reported.
var RollingWindows = []int{5, 12, 50}

// AnalyzeTrends analyzes attempts in chronological order. Abandoned
// attempts only count towards TotalAttempts.
func AnalyzeTrends(samples []Sample) *TrendReport {
	report := &TrendReport{
		TotalAttempts: len(samples),
		RollingAvgs:   make(map[int]time.Duration),
	}
	if len(samples) == 0 {
		return report
	}

	sorted := make([]Sample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartedAt.Before(sorted[j].StartedAt)
	})

	var completed []Sample
	var total time.Duration
	var mistakes, clean int
	for i := range sorted {
		s := sorted[i]
		if !s.Completed || s.Duration <= 0 {
			continue
		}
		completed = append(completed, s)
		total += s.Duration
		mistakes += s.Mistakes
		if s.Mistakes == 0 {
			clean++
		}
		if s.Stars >= 0 && s.Stars < len(report.StarCounts) {
			report.StarCounts[s.Stars]++
		}

		if report.Best == nil || s.Duration < report.Best.Duration {
			best := s
			report.Best = &best
		}
		if report.Worst == nil || s.Duration > report.Worst.Duration {
			worst := s
			report.Worst = &worst
		}
	}

	report.CompletedAttempts = len(completed)
	if len(completed) == 0 {
		return report
	}

	n := len(completed)
	report.AvgDuration = total / time.Duration(n)
	report.AvgMistakes = float64(mistakes) / float64(n)
	report.CleanRate = float64(clean) / float64(n) * 100
	report.ImprovementPct = calculateImprovement(completed)
	report.ConsistencyScore = calculateConsistency(completed)

	for _, w := range RollingWindows {
		if n >= w {
			report.RollingAvgs[w] = mean(completed[n-w:])
		}
	}

	return report
}

func mean(samples []Sample) time.Duration {
	var sum time.Duration
	for _, s := range samples {
		sum += s.Duration
	}
	return sum / time.Duration(len(samples))
}

// calculateImprovement compares the first quarter of completions to the last.
func calculateImprovement(samples []Sample) float64 {
	if len(samples) < 4 {
		return 0
	}
	q := len(samples) / 4

	first := mean(samples[:q])
	last := mean(samples[len(samples)-q:])
	if first <= 0 {
		return 0
	}
	return float64(first-last) / float64(first) * 100
}

// calculateConsistency maps the coefficient of variation of completion times
// to a 0-100 score, higher is more consistent.
func calculateConsistency(samples []Sample) float64 {
	if len(samples) < 2 {
		return 100
	}

	m := float64(mean(samples))
	if m <= 0 {
		return 100
	}

	var sumSquares float64
	for _, s := range samples {
		diff := float64(s.Duration) - m
		sumSquares += diff * diff
	}
	cv := math.Sqrt(sumSquares/float64(len(samples))) / m

	return math.Max(0, math.Min(100, 100-cv*100))
}
