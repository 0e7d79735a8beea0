package models

// ThemeScore is a per-source-theme tally sent with a test-mode result.
type ThemeScore struct {
	Theme   string `json:"theme"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

// ResultSubmission is the payload a client posts when a quiz round ends.
type ResultSubmission struct {
	UserID             string           `json:"userId"`
	UserName           string           `json:"userName"`
	ThemeID            string           `json:"themeId"`
	ThemeName          string           `json:"themeName"`
	Score              int              `json:"score"`
	TotalQuestions     int              `json:"totalQuestions"`
	TotalTimeSeconds   int              `json:"totalTimeSeconds"`
	AvgTimePerQuestion float64          `json:"avgTimePerQuestion"`
	Mistakes           []MistakeSummary `json:"mistakes"`
	AllAnswers         []AnswerRecord   `json:"allAnswers"`
	Round              int              `json:"round,omitempty"`
	Level              Level            `json:"level,omitempty"`
	IsTestMode         bool             `json:"isTestMode,omitempty"`
	ThemeBreakdown     []ThemeScore     `json:"themeBreakdown,omitempty"`
	SessionID          string           `json:"sessionId,omitempty"`
}

// Attempt converts the submission into a storable attempt, defaulting the
// level to easy and the round to 1. CompletedAt is left for the caller.
func (s ResultSubmission) Attempt() Attempt {
	level := s.Level
	if level == "" {
		level = LevelEasy
	}
	round := s.Round
	if round <= 0 {
		round = 1
	}
	return Attempt{
		UserID:             s.UserID,
		UserName:           s.UserName,
		SessionID:          s.SessionID,
		ThemeID:            s.ThemeID,
		ThemeName:          s.ThemeName,
		Level:              level,
		Round:              round,
		Score:              s.Score,
		TotalQuestions:     s.TotalQuestions,
		TotalTimeSeconds:   s.TotalTimeSeconds,
		AvgTimePerQuestion: s.AvgTimePerQuestion,
		IsTestMode:         s.IsTestMode,
		AllAnswers:         s.AllAnswers,
		Mistakes:           s.Mistakes,
	}
}
