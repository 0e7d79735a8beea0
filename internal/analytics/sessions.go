package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/galamath/galamath/internal/models"
)

// SessionGap is the longest pause between two attempts of one inferred session.
const SessionGap = 30 * time.Minute

const inferredPrefix = "inferred-"

// AnswerOutcome is the result of one question within a round.
type AnswerOutcome struct {
	Correct    bool
	UserAnswer *int
}

// Round is one attempt as seen from inside a session.
type Round struct {
	Number             int
	AttemptID          int64
	CompletedAt        time.Time
	Answers            map[string]AnswerOutcome
	Score              int
	TotalQuestions     int
	TotalTimeSeconds   int
	AvgTimePerQuestion float64
}

func newRound(a models.Attempt) Round {
	answers := make(map[string]AnswerOutcome, len(a.AllAnswers))
	for _, ans := range a.AllAnswers {
		answers[ans.Question] = AnswerOutcome{Correct: ans.IsCorrect(), UserAnswer: ans.UserAnswer}
	}
	return Round{
		Number:             a.Round,
		AttemptID:          a.ID,
		CompletedAt:        a.CompletedAt,
		Answers:            answers,
		Score:              a.Score,
		TotalQuestions:     a.TotalQuestions,
		TotalTimeSeconds:   a.TotalTimeSeconds,
		AvgTimePerQuestion: a.AvgTimePerQuestion,
	}
}

// Mistakes returns the questions answered incorrectly, sorted.
func (r Round) Mistakes() []string {
	var out []string
	for q, ans := range r.Answers {
		if !ans.Correct {
			out = append(out, q)
		}
	}
	sort.Strings(out)
	return out
}

// Mastered reports a non-empty round with every answer correct.
func (r Round) Mastered() bool {
	if len(r.Answers) == 0 {
		return false
	}
	for _, ans := range r.Answers {
		if !ans.Correct {
			return false
		}
	}
	return true
}

// Session is one continuous practice sequence of a user on a theme and level.
type Session struct {
	ID          string
	Inferred    bool
	UserID      string
	UserName    string
	ThemeName   string
	Level       models.Level
	CompletedAt time.Time
	Rounds      []Round
}

// Sorted returns a copy of s with rounds in completion order.
func (s Session) Sorted() Session {
	rounds := make([]Round, len(s.Rounds))
	copy(rounds, s.Rounds)
	sort.SliceStable(rounds, func(i, j int) bool { return roundLess(rounds[i], rounds[j]) })
	s.Rounds = rounds
	return s
}

// roundLess orders by completion time, then storage id, then stored round number.
func roundLess(a, b Round) bool {
	if !a.CompletedAt.Equal(b.CompletedAt) {
		return a.CompletedAt.Before(b.CompletedAt)
	}
	if a.AttemptID != b.AttemptID {
		return a.AttemptID < b.AttemptID
	}
	return a.Number < b.Number
}

func attemptLess(a, b models.Attempt) bool {
	return roundLess(
		Round{CompletedAt: a.CompletedAt, AttemptID: a.ID, Number: a.Round},
		Round{CompletedAt: b.CompletedAt, AttemptID: b.ID, Number: b.Round},
	)
}

// Reconstruct groups attempts into sessions keyed by session id. Attempts
// carrying a session id are grouped verbatim; the rest are split into
// inferred sessions per (user, theme, level) wherever two consecutive
// attempts are more than SessionGap apart. Rounds come back sorted.
func Reconstruct(attempts []models.Attempt) map[string]Session {
	var explicit, implicit []models.Attempt
	for _, a := range attempts {
		if a.SessionID != "" {
			explicit = append(explicit, a)
		} else {
			implicit = append(implicit, a)
		}
	}

	sessions := make(map[string]Session, len(attempts))
	groupExplicit(explicit, sessions)
	inferSessions(implicit, sessions)

	for id, s := range sessions {
		sessions[id] = s.Sorted()
	}
	return sessions
}

func groupExplicit(attempts []models.Attempt, into map[string]Session) {
	sorted := append([]models.Attempt(nil), attempts...)
	sort.SliceStable(sorted, func(i, j int) bool { return attemptLess(sorted[i], sorted[j]) })

	for _, a := range sorted {
		s, ok := into[a.SessionID]
		if !ok {
			s = Session{
				ID:          a.SessionID,
				UserID:      a.UserID,
				UserName:    a.UserName,
				ThemeName:   a.ThemeName,
				Level:       a.Level,
				CompletedAt: a.CompletedAt,
			}
		}
		// Round 1 decides the level when rounds disagree.
		if a.Round == 1 {
			s.Level = a.Level
		}
		if a.CompletedAt.After(s.CompletedAt) {
			s.CompletedAt = a.CompletedAt
		}
		s.Rounds = append(s.Rounds, newRound(a))
		into[a.SessionID] = s
	}
}

type groupKey struct {
	userID string
	theme  string
	level  models.Level
}

func (k groupKey) less(o groupKey) bool {
	if k.userID != o.userID {
		return k.userID < o.userID
	}
	if k.theme != o.theme {
		return k.theme < o.theme
	}
	return k.level < o.level
}

func inferSessions(attempts []models.Attempt, into map[string]Session) {
	groups := make(map[groupKey][]models.Attempt)
	for _, a := range attempts {
		k := groupKey{userID: a.UserID, theme: a.ThemeName, level: a.Level}
		groups[k] = append(groups[k], a)
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })

	counter := 0
	for _, k := range keys {
		rows := groups[k]
		sort.SliceStable(rows, func(i, j int) bool { return attemptLess(rows[i], rows[j]) })

		var current *Session
		var last time.Time
		flush := func() {
			if current != nil {
				into[current.ID] = *current
			}
		}
		for _, a := range rows {
			if current == nil || a.CompletedAt.Sub(last) > SessionGap {
				flush()
				id := nextInferredID(&counter, into)
				current = &Session{
					ID:        id,
					Inferred:  true,
					UserID:    a.UserID,
					UserName:  a.UserName,
					ThemeName: a.ThemeName,
					Level:     a.Level,
				}
			}
			current.CompletedAt = a.CompletedAt
			current.Rounds = append(current.Rounds, newRound(a))
			last = a.CompletedAt
		}
		flush()
	}
}

// nextInferredID skips ids already used by an explicit session.
func nextInferredID(counter *int, taken map[string]Session) string {
	for {
		*counter++
		id := fmt.Sprintf("%s%d", inferredPrefix, *counter)
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}
