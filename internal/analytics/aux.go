package analytics

import (
	"sort"

	"github.com/galamath/galamath/internal/models"
)

const (
	// RecentMistakeWindow is how many recent attempts with mistakes are scanned.
	RecentMistakeWindow = 200
	// MaxRepeatedMistakes caps the repeated-mistake list.
	MaxRepeatedMistakes = 30
	unknownSourceTheme  = "Unknown"
)

type userKey struct {
	id   string
	name string
}

func (k userKey) less(o userKey) bool {
	if k.name != o.name {
		return k.name < o.name
	}
	return k.id < o.id
}

type themeKey struct {
	user  userKey
	theme string
	level models.Level
}

func (k themeKey) less(o themeKey) bool {
	if k.user != o.user {
		return k.user.less(o.user)
	}
	return lessUserThemeLevel("", k.theme, k.level, "", o.theme, o.level)
}

// Users lists every distinct user, ordered by name.
func Users(attempts []models.Attempt) []models.UserRef {
	seen := make(map[userKey]struct{})
	for _, a := range attempts {
		seen[userKey{a.UserID, a.UserName}] = struct{}{}
	}
	keys := sortedKeys(seen)
	out := make([]models.UserRef, 0, len(keys))
	for _, k := range keys {
		out = append(out, models.UserRef{UserID: k.id, UserName: k.name})
	}
	return out
}

// Summaries aggregates quizzes per user.
func Summaries(attempts []models.Attempt) []models.UserSummary {
	type acc struct {
		quizzes, questions int
		times              []float64
	}
	byUser := make(map[userKey]*acc)
	for _, a := range attempts {
		k := userKey{a.UserID, a.UserName}
		s, ok := byUser[k]
		if !ok {
			s = &acc{}
			byUser[k] = s
		}
		s.quizzes++
		s.questions += a.TotalQuestions
		s.times = append(s.times, a.AvgTimePerQuestion)
	}

	out := make([]models.UserSummary, 0, len(byUser))
	for _, k := range sortedKeys(byUser) {
		s := byUser[k]
		out = append(out, models.UserSummary{
			UserID:             k.id,
			UserName:           k.name,
			TotalQuizzes:       s.quizzes,
			TotalQuestions:     s.questions,
			AvgTimePerQuestion: Mean1(s.times),
		})
	}
	return out
}

// SingleRoundStats counts attempts and perfect attempts per theme and level.
func SingleRoundStats(attempts []models.Attempt) []models.SingleRoundStat {
	acc := make(map[themeKey]*models.SingleRoundStat)
	for _, a := range attempts {
		k := themeKey{userKey{a.UserID, a.UserName}, a.ThemeName, a.Level}
		s, ok := acc[k]
		if !ok {
			s = &models.SingleRoundStat{
				UserID:    a.UserID,
				UserName:  a.UserName,
				ThemeName: a.ThemeName,
				Level:     a.Level,
			}
			acc[k] = s
		}
		s.TotalSessions++
		if a.Score == a.TotalQuestions {
			s.PerfectSessions++
		}
		if a.CompletedAt.After(s.LastAttempt) {
			s.LastAttempt = a.CompletedAt
		}
	}

	out := make([]models.SingleRoundStat, 0, len(acc))
	for _, k := range sortedThemeKeys(acc) {
		out = append(out, *acc[k])
	}
	return out
}

// Round1Progress returns every first-round attempt with its score percentage.
func Round1Progress(attempts []models.Attempt) []models.ProgressPoint {
	out := []models.ProgressPoint{}
	for _, a := range attempts {
		if a.Round != 1 {
			continue
		}
		out = append(out, models.ProgressPoint{
			UserID:      a.UserID,
			UserName:    a.UserName,
			ThemeName:   a.ThemeName,
			Level:       a.Level,
			CompletedAt: a.CompletedAt,
			Percentage:  Percent1(a.Score, a.TotalQuestions),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.UserName != b.UserName || a.ThemeName != b.ThemeName || a.Level != b.Level {
			return lessUserThemeLevel(a.UserName, a.ThemeName, a.Level, b.UserName, b.ThemeName, b.Level)
		}
		return a.CompletedAt.Before(b.CompletedAt)
	})
	return out
}

// ThemeMastery reports the best first-round score per theme and level.
// Empty quizzes count as attempts but never set the best score.
func ThemeMastery(attempts []models.Attempt) []models.ThemeMastery {
	acc := make(map[themeKey]*models.ThemeMastery)
	for _, a := range attempts {
		if a.Round != 1 {
			continue
		}
		k := themeKey{userKey{a.UserID, a.UserName}, a.ThemeName, a.Level}
		m, ok := acc[k]
		if !ok {
			m = &models.ThemeMastery{
				UserID:    a.UserID,
				UserName:  a.UserName,
				ThemeName: a.ThemeName,
				Level:     a.Level,
			}
			acc[k] = m
		}
		m.Attempts++
		if a.TotalQuestions > 0 {
			if p := Percent(a.Score, a.TotalQuestions); p > m.BestPercentage {
				m.BestPercentage = p
			}
		}
		if a.CompletedAt.After(m.LastAttempt) {
			m.LastAttempt = a.CompletedAt
		}
	}

	out := make([]models.ThemeMastery, 0, len(acc))
	for _, k := range sortedThemeKeys(acc) {
		out = append(out, *acc[k])
	}
	return out
}

// RepeatedMistakes counts how often each user missed the same question across
// the most recent attempts with mistakes. Only questions missed at least
// twice are kept, most frequent first.
func RepeatedMistakes(attempts []models.Attempt) []models.RepeatedMistake {
	recent := make([]models.Attempt, 0, len(attempts))
	for _, a := range attempts {
		if len(a.Mistakes) > 0 {
			recent = append(recent, a)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].CompletedAt.After(recent[j].CompletedAt) })
	if len(recent) > RecentMistakeWindow {
		recent = recent[:RecentMistakeWindow]
	}

	type key struct{ user, question string }
	tracker := make(map[key]*models.RepeatedMistake)
	for _, a := range recent {
		for _, m := range a.Mistakes {
			k := key{a.UserName, m.Question}
			r, ok := tracker[k]
			if !ok {
				r = &models.RepeatedMistake{
					UserName:      a.UserName,
					ThemeName:     a.ThemeName,
					Level:         a.Level,
					Question:      m.Question,
					CorrectAnswer: m.CorrectAnswer,
				}
				tracker[k] = r
			}
			r.Count++
		}
	}

	out := []models.RepeatedMistake{}
	for _, r := range tracker {
		if r.Count >= 2 {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].UserName != out[j].UserName {
			return out[i].UserName < out[j].UserName
		}
		return out[i].Question < out[j].Question
	})
	if len(out) > MaxRepeatedMistakes {
		out = out[:MaxRepeatedMistakes]
	}
	return out
}

// TestSummaries aggregates test-mode attempts per user.
func TestSummaries(attempts []models.Attempt) []models.TestSummary {
	type acc struct {
		tests, questions int
		percentages      []float64
		times            []float64
	}
	byUser := make(map[userKey]*acc)
	for _, a := range attempts {
		k := userKey{a.UserID, a.UserName}
		s, ok := byUser[k]
		if !ok {
			s = &acc{}
			byUser[k] = s
		}
		s.tests++
		s.questions += a.TotalQuestions
		if a.TotalQuestions > 0 {
			s.percentages = append(s.percentages, a.Percentage())
		}
		s.times = append(s.times, a.AvgTimePerQuestion)
	}

	out := make([]models.TestSummary, 0, len(byUser))
	for _, k := range sortedKeys(byUser) {
		s := byUser[k]
		out = append(out, models.TestSummary{
			UserID:             k.id,
			UserName:           k.name,
			TotalTests:         s.tests,
			TotalQuestions:     s.questions,
			AvgPercentage:      Mean1(s.percentages),
			AvgTimePerQuestion: Mean1(s.times),
		})
	}
	return out
}

// TestProgress lists test attempts by user, level and time.
func TestProgress(attempts []models.Attempt) []models.TestProgressPoint {
	out := make([]models.TestProgressPoint, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, models.TestProgressPoint{
			UserID:           a.UserID,
			UserName:         a.UserName,
			Level:            a.Level,
			CompletedAt:      a.CompletedAt,
			Score:            a.Score,
			TotalQuestions:   a.TotalQuestions,
			Percentage:       Percent1(a.Score, a.TotalQuestions),
			TotalTimeSeconds: a.TotalTimeSeconds,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.UserName != b.UserName {
			return a.UserName < b.UserName
		}
		if a.Level != b.Level {
			return a.Level.Rank() < b.Level.Rank()
		}
		return a.CompletedAt.Before(b.CompletedAt)
	})
	return out
}

// TestThemeBreakdown scores test answers by the theme each question came from.
func TestThemeBreakdown(attempts []models.Attempt) []models.ThemeBreakdown {
	type key struct{ user, theme string }
	acc := make(map[key]*models.ThemeBreakdown)
	for _, a := range attempts {
		for _, ans := range a.AllAnswers {
			theme := ans.SourceTheme
			if theme == "" {
				theme = unknownSourceTheme
			}
			k := key{a.UserName, theme}
			b, ok := acc[k]
			if !ok {
				b = &models.ThemeBreakdown{UserName: a.UserName, SourceTheme: theme}
				acc[k] = b
			}
			b.TotalQuestions++
			if ans.IsCorrect() {
				b.CorrectCount++
			}
		}
	}

	out := make([]models.ThemeBreakdown, 0, len(acc))
	for _, b := range acc {
		b.Percentage = Percent(b.CorrectCount, b.TotalQuestions)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.UserName != b.UserName {
			return a.UserName < b.UserName
		}
		if a.Percentage != b.Percentage {
			return a.Percentage > b.Percentage
		}
		return a.SourceTheme < b.SourceTheme
	})
	return out
}

func sortedKeys[V any](m map[userKey]V) []userKey {
	keys := make([]userKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	return keys
}

func sortedThemeKeys[V any](m map[themeKey]V) []themeKey {
	keys := make([]themeKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	return keys
}
