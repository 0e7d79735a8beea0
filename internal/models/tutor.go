package models

// ChatTurn is one message of a tutoring conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QuestionContext describes the question a learner is stuck on.
type QuestionContext struct {
	Question string   `json:"question"`
	Hint     string   `json:"hint"`
	Theme    string   `json:"theme"`
	Answers  []string `json:"answers"`
	UserName string   `json:"userName"`
}

// ChatRequest continues a tutoring conversation about one question.
type ChatRequest struct {
	QuestionContext
	Messages []ChatTurn `json:"messages"`
}

// LessonRequest asks for a spoken mini-lesson covering a round's mistakes.
type LessonRequest struct {
	Mistakes  []MistakeSummary `json:"mistakes"`
	ThemeName string           `json:"themeName"`
	UserName  string           `json:"userName"`
	Grade     int              `json:"grade"`
}

// Student is an entry of the family roster shown on the login screen.
type Student struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Grade   int    `json:"grade"`
	Color   string `json:"color"`
	BgColor string `json:"bgColor"`
}
