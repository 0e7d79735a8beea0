package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galamath/galamath/internal/analytics"
	"github.com/galamath/galamath/internal/models"
)

type roundSpec struct {
	number  int
	score   int
	avgTime float64
}

func sessionOf(id string, rounds ...roundSpec) []models.Attempt {
	out := make([]models.Attempt, 0, len(rounds))
	for i, r := range rounds {
		out = append(out, models.Attempt{
			ID:                 int64(i + 1),
			UserID:             "u1",
			UserName:           "Zoe",
			SessionID:          id,
			ThemeName:          "addition",
			Level:              models.LevelEasy,
			Round:              r.number,
			Score:              r.score,
			TotalQuestions:     10,
			TotalTimeSeconds:   int(r.avgTime * 10),
			AvgTimePerQuestion: r.avgTime,
			CompletedAt:        base.Add(time.Duration(i) * time.Minute),
		})
	}
	return out
}

func TestSeriousness_Labels(t *testing.T) {
	tests := []struct {
		name    string
		rounds  []roundSpec
		reason  string
		serious bool
	}{
		{"perfect single round", []roundSpec{{1, 10, 4}}, analytics.ReasonPerfect, true},
		{"good start", []roundSpec{{1, 8, 4}}, analytics.ReasonGoodStart, true},
		{"needs practice but careful", []roundSpec{{1, 5, 4}}, analytics.ReasonNeedsPractice, true},
		{"needs practice and fast", []roundSpec{{1, 5, 2}}, analytics.ReasonNeedsPractice, false},
		{"rushing later rounds", []roundSpec{{1, 5, 6}, {2, 9, 2}}, analytics.ReasonRushing, false},
		{"gave up", []roundSpec{{1, 8, 6}, {2, 6, 4}}, analytics.ReasonGaveUp, false},
		{"getting worse", []roundSpec{{1, 8, 6}, {2, 8, 6}, {3, 7, 6}, {4, 7, 6}}, analytics.ReasonGettingWorse, false},
		{"mastered", []roundSpec{{1, 6, 6}, {2, 10, 6}}, analytics.ReasonMastered, true},
		{"great progress", []roundSpec{{1, 5, 6}, {2, 8, 6}}, analytics.ReasonGreatProgress, true},
		{"improving", []roundSpec{{1, 5, 6}, {2, 6, 6}}, analytics.ReasonImproving, true},
		{"struggling", []roundSpec{{1, 5, 6}, {2, 5, 6}}, analytics.ReasonStruggling, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := analytics.Reconstruct(sessionOf("s", tt.rounds...))

			out := analytics.Seriousness(sessions)

			require.Len(t, out, 1)
			assert.Equal(t, tt.reason, out[0].Reason)
			assert.Equal(t, tt.serious, out[0].Serious)
			assert.Equal(t, len(tt.rounds), out[0].RoundsCount)
		})
	}
}

func TestSeriousness_Figures(t *testing.T) {
	sessions := analytics.Reconstruct(sessionOf("s", roundSpec{1, 5, 6}, roundSpec{2, 8, 4.5}, roundSpec{3, 9, 4}))

	out := analytics.Seriousness(sessions)

	require.Len(t, out, 1)
	a := out[0]
	assert.InDelta(t, 50.0, a.Round1Percentage, 1e-9)
	assert.InDelta(t, 90.0, a.FinalPercentage, 1e-9)
	assert.InDelta(t, 40.0, a.Improvement, 1e-9)
	assert.InDelta(t, 4.3, a.AvgTimeLaterRounds, 1e-9)
	assert.InDelta(t, 6.0, a.AvgTimeRound1, 1e-9)
	assert.Equal(t, 60+45+40, a.TotalTimeSeconds)
	assert.Equal(t, base.Add(2*time.Minute), a.CompletedAt)
}

func TestSeriousness_SkipsInferredAndHeadlessSessions(t *testing.T) {
	inferred := sessionOf("", roundSpec{1, 5, 6}, roundSpec{2, 8, 6})
	headless := sessionOf("h", roundSpec{2, 5, 6}, roundSpec{3, 8, 6})

	out := analytics.Seriousness(analytics.Reconstruct(append(inferred, headless...)))

	assert.Empty(t, out)
}
