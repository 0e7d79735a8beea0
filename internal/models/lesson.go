package models

import "time"

// Lesson is an AI-generated remediation lesson stored per quiz session.
type Lesson struct {
	SessionID         string    `json:"sessionId"`
	UserID            string    `json:"userId"`
	UserName          string    `json:"userName"`
	ThemeName         string    `json:"themeName"`
	Grade             int       `json:"grade"`
	LessonText        string    `json:"lessonText"`
	LessonAudioBase64 string    `json:"lessonAudioBase64,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// DefaultGrade is used when a lesson or tutoring request omits the grade.
const DefaultGrade = 5
