package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func sample(i int, d time.Duration, mistakes, stars int) Sample {
	return Sample{
		AttemptID:   string(rune('a' + i)),
		AlgorithmID: "sexy",
		StartedAt:   base.Add(time.Duration(i) * time.Minute),
		Duration:    d,
		Mistakes:    mistakes,
		Stars:       stars,
		Completed:   true,
	}
}

func TestAnalyzeTrendsEmpty(t *testing.T) {
	r := AnalyzeTrends(nil)
	assert.Zero(t, r.TotalAttempts)
	assert.Nil(t, r.Best)
	assert.Empty(t, r.RollingAvgs)
}

func TestAnalyzeTrendsSkipsAbandoned(t *testing.T) {
	samples := []Sample{
		sample(0, 4*time.Second, 0, 3),
		{AttemptID: "x", StartedAt: base, Duration: time.Second},
	}
	r := AnalyzeTrends(samples)
	assert.Equal(t, 2, r.TotalAttempts)
	assert.Equal(t, 1, r.CompletedAttempts)
	require.NotNil(t, r.Best)
	assert.Equal(t, 4*time.Second, r.Best.Duration)
	assert.Equal(t, float64(100), r.ConsistencyScore)
}

func TestAnalyzeTrendsOrdersByStart(t *testing.T) {
	// Given newest first, as the attempt repository lists them.
	samples := []Sample{
		sample(7, 2*time.Second, 0, 3),
		sample(6, 2*time.Second, 0, 3),
		sample(5, 3*time.Second, 0, 3),
		sample(4, 3*time.Second, 1, 3),
		sample(3, 5*time.Second, 0, 3),
		sample(2, 6*time.Second, 1, 2),
		sample(1, 8*time.Second, 2, 2),
		sample(0, 8*time.Second, 0, 2),
	}

	r := AnalyzeTrends(samples)
	assert.Equal(t, 8, r.CompletedAttempts)
	assert.Equal(t, "g", r.Best.AttemptID, "ties keep the earlier attempt")
	assert.Equal(t, 8*time.Second, r.Worst.Duration)
	assert.Equal(t, 37*time.Second/8, r.AvgDuration)
	assert.InDelta(t, 0.5, r.AvgMistakes, 1e-9)
	assert.InDelta(t, 62.5, r.CleanRate, 1e-9)
	assert.InDelta(t, 75.0, r.ImprovementPct, 1e-9)
	assert.Equal(t, [4]int{0, 0, 3, 5}, r.StarCounts)

	assert.Equal(t, 3*time.Second, r.RollingAvgs[5])
	_, ok := r.RollingAvgs[12]
	assert.False(t, ok)

	assert.Equal(t, "g", samples[1].AttemptID, "input is not reordered")
}

func TestConsistency(t *testing.T) {
	steady := []Sample{sample(0, 4*time.Second, 0, 3), sample(1, 4*time.Second, 0, 3)}
	assert.Equal(t, float64(100), calculateConsistency(steady))

	erratic := []Sample{sample(0, time.Second, 0, 3), sample(1, 9*time.Second, 0, 1)}
	assert.InDelta(t, 20.0, calculateConsistency(erratic), 1e-9)
}
