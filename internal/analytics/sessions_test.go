package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galamath/galamath/internal/analytics"
	"github.com/galamath/galamath/internal/models"
)

func TestReconstruct_ExplicitSessionsPartitionExactly(t *testing.T) {
	attempts := []models.Attempt{
		withSession(attempt(1, "Ana", "addition", models.LevelEasy, 1, base, answers(2)), "s1"),
		withSession(attempt(2, "Ana", "addition", models.LevelEasy, 2, base.Add(time.Minute), answers(2)), "s1"),
		withSession(attempt(3, "Ana", "addition", models.LevelEasy, 1, base.Add(2*time.Minute), answers(2)), "s2"),
		// Same session id far apart in time stays together.
		withSession(attempt(4, "Ana", "addition", models.LevelEasy, 3, base.Add(5*time.Hour), answers(2)), "s1"),
	}

	sessions := analytics.Reconstruct(attempts)

	require.Len(t, sessions, 2)
	seen := map[int64]int{}
	for id, s := range sessions {
		assert.Equal(t, id, s.ID)
		assert.False(t, s.Inferred)
		for _, r := range s.Rounds {
			seen[r.AttemptID]++
		}
	}
	assert.Equal(t, map[int64]int{1: 1, 2: 1, 3: 1, 4: 1}, seen, "every attempt lands in exactly one session")
	assert.Len(t, sessions["s1"].Rounds, 3)
	assert.Equal(t, base.Add(5*time.Hour), sessions["s1"].CompletedAt)
}

func TestReconstruct_GapRule(t *testing.T) {
	tests := []struct {
		name     string
		gap      time.Duration
		sessions int
	}{
		{name: "29 minutes apart", gap: 29 * time.Minute, sessions: 1},
		{name: "exactly 30 minutes apart", gap: 30 * time.Minute, sessions: 1},
		{name: "31 minutes apart", gap: 31 * time.Minute, sessions: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := []models.Attempt{
				attempt(1, "Ben", "times", models.LevelEasy, 1, base, answers(2)),
				attempt(2, "Ben", "times", models.LevelEasy, 2, base.Add(tt.gap), answers(2)),
			}

			sessions := analytics.Reconstruct(attempts)

			assert.Len(t, sessions, tt.sessions)
			for _, s := range sessions {
				assert.True(t, s.Inferred)
			}
		})
	}
}

func TestReconstruct_GapMeasuredFromPreviousAttempt(t *testing.T) {
	// 20 + 20 minutes: each gap is short even though the span is 40 minutes.
	attempts := []models.Attempt{
		attempt(3, "Cy", "fractions", models.LevelEasy, 3, base.Add(40*time.Minute), answers(1)),
		attempt(1, "Cy", "fractions", models.LevelEasy, 1, base, answers(1)),
		attempt(2, "Cy", "fractions", models.LevelEasy, 2, base.Add(20*time.Minute), answers(1)),
	}

	sessions := analytics.Reconstruct(attempts)

	require.Len(t, sessions, 1)
	for _, s := range sessions {
		require.Len(t, s.Rounds, 3)
		assert.Equal(t, int64(1), s.Rounds[0].AttemptID)
		assert.Equal(t, int64(3), s.Rounds[2].AttemptID)
		assert.Equal(t, base.Add(40*time.Minute), s.CompletedAt)
	}
}

func TestReconstruct_ImplicitGroupsSplitByUserThemeLevel(t *testing.T) {
	attempts := []models.Attempt{
		attempt(1, "Dee", "addition", models.LevelEasy, 1, base, answers(1)),
		attempt(2, "Dee", "addition", models.LevelMedium, 1, base.Add(time.Minute), answers(1)),
		attempt(3, "Dee", "subtraction", models.LevelEasy, 1, base.Add(2*time.Minute), answers(1)),
		attempt(4, "Eve", "addition", models.LevelEasy, 1, base.Add(3*time.Minute), answers(1)),
	}

	sessions := analytics.Reconstruct(attempts)

	assert.Len(t, sessions, 4)
}

func TestReconstruct_FirstRoundDecidesLevel(t *testing.T) {
	attempts := []models.Attempt{
		withSession(attempt(1, "Fay", "decimals", models.LevelMedium, 1, base, answers(2, "q1")), "s"),
		// Later round written with the wrong level.
		withSession(attempt(2, "Fay", "decimals", models.LevelEasy, 2, base.Add(time.Minute), answers(2)), "s"),
	}

	sessions := analytics.Reconstruct(attempts)

	require.Contains(t, sessions, "s")
	assert.Equal(t, models.LevelMedium, sessions["s"].Level)

	metrics := analytics.FocusMetrics(sessions)
	require.Len(t, metrics, 1)
	assert.Equal(t, models.LevelMedium, metrics[0].Level)
}

func TestReconstruct_EmptyNamesStillGroup(t *testing.T) {
	a := attempt(1, "", "", models.LevelEasy, 1, base, answers(1, "q1"))
	b := attempt(2, "", "", models.LevelEasy, 2, base.Add(time.Minute), answers(1))

	res := analytics.Compute([]models.Attempt{a, b})

	require.Len(t, res.Sessions, 1)
	require.Len(t, res.FocusMetrics, 1)
	assert.Equal(t, "", res.FocusMetrics[0].UserName)
	assert.Equal(t, 1, res.FocusMetrics[0].TotalCorrections)
}

func TestReconstruct_TiesBrokenByAttemptID(t *testing.T) {
	attempts := []models.Attempt{
		withSession(attempt(9, "Gus", "angles", models.LevelEasy, 2, base, answers(2)), "s"),
		withSession(attempt(3, "Gus", "angles", models.LevelEasy, 1, base, answers(2, "q1")), "s"),
	}

	sessions := analytics.Reconstruct(attempts)

	rounds := sessions["s"].Rounds
	require.Len(t, rounds, 2)
	assert.Equal(t, int64(3), rounds[0].AttemptID)
	assert.Equal(t, int64(9), rounds[1].AttemptID)
}

func TestReconstruct_InferredIDsAvoidExplicitIDs(t *testing.T) {
	attempts := []models.Attempt{
		withSession(attempt(1, "Hal", "money", models.LevelEasy, 1, base, answers(1)), "inferred-1"),
		attempt(2, "Hal", "money", models.LevelEasy, 1, base, answers(1)),
	}

	sessions := analytics.Reconstruct(attempts)

	require.Len(t, sessions, 2)
	assert.False(t, sessions["inferred-1"].Inferred)
	assert.True(t, sessions["inferred-2"].Inferred)
}

func TestIngest(t *testing.T) {
	valid, skipped := analytics.Ingest([]models.Attempt{
		{ID: 1, CompletedAt: base},
		{ID: 2},
		{ID: 3, CompletedAt: base.Add(time.Second)},
	})

	assert.Equal(t, 1, skipped)
	require.Len(t, valid, 2)
	assert.Equal(t, int64(1), valid[0].ID)
	assert.Equal(t, int64(3), valid[1].ID)
}
