package analytics

import (
	"sort"

	"github.com/galamath/galamath/internal/models"
)

// Corrections compares each pair of adjacent rounds. A mistake in round i is
// corrected only when round i+1 answers the same question correctly; a
// question absent from round i+1 stays uncorrected.
func Corrections(rounds []Round) (mistakes, corrections int) {
	for i := 0; i+1 < len(rounds); i++ {
		next := rounds[i+1].Answers
		for _, q := range rounds[i].Mistakes() {
			mistakes++
			if ans, ok := next[q]; ok && ans.Correct {
				corrections++
			}
		}
	}
	return mistakes, corrections
}

type metricKey struct {
	user  string
	theme string
	level models.Level
}

// FocusMetrics folds sessions into one metric per (user name, theme, level).
// Single-round sessions only move LastAttempt forward.
func FocusMetrics(sessions map[string]Session) []models.FocusMetric {
	acc := make(map[metricKey]*models.FocusMetric)

	for _, s := range sessions {
		k := metricKey{user: s.UserName, theme: s.ThemeName, level: s.Level}
		m, ok := acc[k]
		if !ok {
			m = &models.FocusMetric{
				UserName:    s.UserName,
				ThemeName:   s.ThemeName,
				Level:       s.Level,
				LastAttempt: s.CompletedAt,
			}
			acc[k] = m
		}
		if s.CompletedAt.After(m.LastAttempt) {
			m.LastAttempt = s.CompletedAt
		}

		if len(s.Rounds) < 2 {
			continue
		}
		rounds := s.Sorted().Rounds

		m.TotalMultiRoundSessions++
		if rounds[len(rounds)-1].Mastered() {
			m.MasteryCount++
		}
		mistakes, corrections := Corrections(rounds)
		m.TotalMistakes += mistakes
		m.TotalCorrections += corrections
	}

	out := make([]models.FocusMetric, 0, len(acc))
	for _, m := range acc {
		m.CorrectionRate = Percent(m.TotalCorrections, m.TotalMistakes)
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		return lessUserThemeLevel(out[i].UserName, out[i].ThemeName, out[i].Level,
			out[j].UserName, out[j].ThemeName, out[j].Level)
	})
	return out
}

// LearningRate emits one point per multi-round session that had mistakes.
func LearningRate(sessions map[string]Session) []models.LearningRatePoint {
	out := []models.LearningRatePoint{}
	for id, s := range sessions {
		if len(s.Rounds) < 2 {
			continue
		}
		mistakes, corrections := Corrections(s.Sorted().Rounds)
		if mistakes == 0 {
			continue
		}
		out = append(out, models.LearningRatePoint{
			UserName:       s.UserName,
			ThemeName:      s.ThemeName,
			Level:          s.Level,
			SessionID:      id,
			CompletedAt:    s.CompletedAt,
			Mistakes:       mistakes,
			Corrections:    corrections,
			CorrectionRate: Percent(corrections, mistakes),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.UserName != b.UserName || a.ThemeName != b.ThemeName || a.Level != b.Level {
			return lessUserThemeLevel(a.UserName, a.ThemeName, a.Level, b.UserName, b.ThemeName, b.Level)
		}
		if !a.CompletedAt.Equal(b.CompletedAt) {
			return a.CompletedAt.Before(b.CompletedAt)
		}
		return a.SessionID < b.SessionID
	})
	return out
}

// Result is the output of one analytics run.
type Result struct {
	FocusMetrics []models.FocusMetric
	LearningRate []models.LearningRatePoint
	Sessions     map[string]Session
	Skipped      int
}

// Compute runs ingestion, reconstruction and both metric passes.
func Compute(attempts []models.Attempt) Result {
	valid, skipped := Ingest(attempts)
	sessions := Reconstruct(valid)
	return Result{
		FocusMetrics: FocusMetrics(sessions),
		LearningRate: LearningRate(sessions),
		Sessions:     sessions,
		Skipped:      skipped,
	}
}

func lessUserThemeLevel(u1, t1 string, l1 models.Level, u2, t2 string, l2 models.Level) bool {
	if u1 != u2 {
		return u1 < u2
	}
	if t1 != t2 {
		return t1 < t2
	}
	if l1.Rank() != l2.Rank() {
		return l1.Rank() < l2.Rank()
	}
	return l1 < l2
}
