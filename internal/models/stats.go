package models

import "time"

// FocusMetric aggregates correction behavior for one (user, theme, level).
type FocusMetric struct {
	UserName                string    `json:"user_name"`
	ThemeName               string    `json:"theme_name"`
	Level                   Level     `json:"level"`
	TotalMultiRoundSessions int       `json:"total_multi_round_sessions"`
	TotalMistakes           int       `json:"total_mistakes"`
	TotalCorrections        int       `json:"total_corrections"`
	CorrectionRate          int       `json:"correction_rate"`
	MasteryCount            int       `json:"mastery_count"`
	LastAttempt             time.Time `json:"last_attempt"`
}

// LearningRatePoint is the correction rate of a single multi-round session.
type LearningRatePoint struct {
	UserName       string    `json:"user_name"`
	ThemeName      string    `json:"theme_name"`
	Level          Level     `json:"level"`
	SessionID      string    `json:"session_id"`
	CompletedAt    time.Time `json:"completed_at"`
	Mistakes       int       `json:"mistakes"`
	Corrections    int       `json:"corrections"`
	CorrectionRate int       `json:"correction_rate"`
}

type UserRef struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

type UserSummary struct {
	UserID             string  `json:"user_id"`
	UserName           string  `json:"user_name"`
	TotalQuizzes       int     `json:"total_quizzes"`
	TotalQuestions     int     `json:"total_questions"`
	AvgTimePerQuestion float64 `json:"avg_time_per_question"`
}

type SingleRoundStat struct {
	UserID          string    `json:"user_id"`
	UserName        string    `json:"user_name"`
	ThemeName       string    `json:"theme_name"`
	Level           Level     `json:"level"`
	TotalSessions   int       `json:"total_sessions"`
	PerfectSessions int       `json:"perfect_sessions"`
	LastAttempt     time.Time `json:"last_attempt"`
}

type ProgressPoint struct {
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	ThemeName   string    `json:"theme_name"`
	Level       Level     `json:"level"`
	CompletedAt time.Time `json:"completed_at"`
	Percentage  float64   `json:"percentage"`
}

type ThemeMastery struct {
	UserID         string    `json:"user_id"`
	UserName       string    `json:"user_name"`
	ThemeName      string    `json:"theme_name"`
	Level          Level     `json:"level"`
	BestPercentage int       `json:"best_percentage"`
	Attempts       int       `json:"attempts"`
	LastAttempt    time.Time `json:"last_attempt"`
}

type RepeatedMistake struct {
	Count         int    `json:"count"`
	UserName      string `json:"user_name"`
	ThemeName     string `json:"theme_name"`
	Level         Level  `json:"level"`
	Question      string `json:"question"`
	CorrectAnswer string `json:"correct_answer"`
}

// SessionAnalysis describes how seriously a learner worked through a session.
type SessionAnalysis struct {
	UserName            string    `json:"user_name"`
	ThemeName           string    `json:"theme_name"`
	Level               Level     `json:"level"`
	SessionID           string    `json:"session_id"`
	RoundsCount         int       `json:"rounds_count"`
	Round1Percentage    float64   `json:"round1_percentage"`
	FinalPercentage     float64   `json:"final_percentage"`
	Improvement         float64   `json:"improvement"`
	AvgTimeLaterRounds  float64   `json:"avg_time_later_rounds"`
	AvgTimeRound1       float64   `json:"avg_time_round1"`
	TotalTimeSeconds    int       `json:"total_time_seconds"`
	Serious             bool      `json:"serious"`
	Reason              string    `json:"reason"`
	CompletedAt         time.Time `json:"completed_at"`
}

type TestSummary struct {
	UserID             string  `json:"user_id"`
	UserName           string  `json:"user_name"`
	TotalTests         int     `json:"total_tests"`
	TotalQuestions     int     `json:"total_questions"`
	AvgPercentage      float64 `json:"avg_percentage"`
	AvgTimePerQuestion float64 `json:"avg_time_per_question"`
}

type TestProgressPoint struct {
	UserID           string    `json:"user_id"`
	UserName         string    `json:"user_name"`
	Level            Level     `json:"level"`
	CompletedAt      time.Time `json:"completed_at"`
	Score            int       `json:"score"`
	TotalQuestions   int       `json:"total_questions"`
	Percentage       float64   `json:"percentage"`
	TotalTimeSeconds int       `json:"total_time_seconds"`
}

type ThemeBreakdown struct {
	UserName       string `json:"user_name"`
	SourceTheme    string `json:"source_theme"`
	TotalQuestions int    `json:"total_questions"`
	CorrectCount   int    `json:"correct_count"`
	Percentage     int    `json:"percentage"`
}

// AdminStats is the full admin dashboard payload.
type AdminStats struct {
	Users                []UserRef           `json:"users"`
	SummaryStats         []UserSummary       `json:"summaryStats"`
	SeriousnessStats     []FocusMetric       `json:"seriousnessStats"`
	SingleRoundStats     []SingleRoundStat   `json:"singleRoundStats"`
	Round1Progress       []ProgressPoint     `json:"round1Progress"`
	LearningRateProgress []LearningRatePoint `json:"learningRateProgress"`
	SessionAnalysis      []SessionAnalysis   `json:"sessionAnalysis"`
	ThemeMastery         []ThemeMastery      `json:"themeMastery"`
	RepeatedMistakes     []RepeatedMistake   `json:"repeatedMistakes"`
	TestSummaryStats     []TestSummary       `json:"testSummaryStats"`
	TestProgress         []TestProgressPoint `json:"testProgress"`
	TestThemeBreakdown   []ThemeBreakdown    `json:"testThemeBreakdown"`
	AllQuizResults       []Attempt           `json:"allQuizResults"`
	SkippedRecords       int                 `json:"skippedRecords"`
	GeneratedAt          time.Time           `json:"generatedAt"`
}
