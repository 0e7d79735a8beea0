package models

import "time"

// Level is the difficulty a theme was played at.
type Level string

const (
	LevelEasy   Level = "easy"
	LevelMedium Level = "medium"
	LevelHard   Level = "hard"
)

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelEasy, LevelMedium, LevelHard:
		return true
	}
	return false
}

// Rank orders levels easy < medium < hard < anything else.
func (l Level) Rank() int {
	switch l {
	case LevelEasy:
		return 1
	case LevelMedium:
		return 2
	case LevelHard:
		return 3
	default:
		return 4
	}
}

// Attempt is one completed quiz round by one user on one theme and level.
type Attempt struct {
	ID                 int64            `json:"id"`
	UserID             string           `json:"user_id"`
	UserName           string           `json:"user_name"`
	SessionID          string           `json:"session_id,omitempty"`
	ThemeID            string           `json:"theme_id"`
	ThemeName          string           `json:"theme_name"`
	Level              Level            `json:"level"`
	Round              int              `json:"round"`
	Score              int              `json:"score"`
	TotalQuestions     int              `json:"total_questions"`
	TotalTimeSeconds   int              `json:"total_time_seconds"`
	AvgTimePerQuestion float64          `json:"avg_time_per_question"`
	CompletedAt        time.Time        `json:"completed_at"`
	IsTestMode         bool             `json:"is_test_mode"`
	AllAnswers         []AnswerRecord   `json:"all_answers"`
	Mistakes           []MistakeSummary `json:"mistakes"`
}

// Percentage is score over total questions in [0,100], 0 for an empty quiz.
func (a Attempt) Percentage() float64 {
	if a.TotalQuestions <= 0 {
		return 0
	}
	return float64(a.Score) / float64(a.TotalQuestions) * 100
}

// IsPerfect reports a full score on a non-empty quiz.
func (a Attempt) IsPerfect() bool {
	return a.TotalQuestions > 0 && a.Score == a.TotalQuestions
}

// AnswerRecord is the learner's response to one question of an attempt.
type AnswerRecord struct {
	QuestionID    int     `json:"questionId"`
	Question      string  `json:"question"`
	UserAnswer    *int    `json:"userAnswer"`
	CorrectAnswer int     `json:"correctAnswer"`
	TimeSpent     float64 `json:"timeSpent,omitempty"`
	SourceTheme   string  `json:"sourceTheme,omitempty"`
}

// IsCorrect is true only for an explicit answer matching the key.
// A skipped question is never correct.
func (a AnswerRecord) IsCorrect() bool {
	return a.UserAnswer != nil && *a.UserAnswer == a.CorrectAnswer
}

// MistakeSummary is the denormalized mistake list stored with an attempt.
type MistakeSummary struct {
	QuestionNumber int     `json:"questionNumber"`
	Question       string  `json:"question"`
	UserAnswer     *string `json:"userAnswer"`
	CorrectAnswer  string  `json:"correctAnswer"`
	Hint           string  `json:"hint,omitempty"`
}

// AttemptFilter scopes an attempt query.
type AttemptFilter struct {
	// TestMode restricts to test (true) or training (false) attempts; nil means both.
	TestMode *bool
	// SessionOnly keeps attempts that carry an explicit session id.
	SessionOnly bool
	// RoundOne keeps first-round attempts only.
	RoundOne bool
	// NewestFirst orders by completion time descending instead of ascending.
	NewestFirst bool
	Limit       int
}

// Bool returns a pointer to b, for filter fields.
func Bool(b bool) *bool {
	return &b
}
