// Package llm wraps the chat-completion providers used for tutoring.
package llm

import "context"

// Provider generates a text reply for a conversation.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System sets the tutor's role and constraints.
	System   string
	Messages []Message

	MaxTokens int
	// Temperature ranges 0.0 - 1.0; zero leaves the provider default.
	Temperature float64
}

// Message is a single turn of the conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the model's reply.
type Response struct {
	Text  string
	Usage Usage
	Model string
	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
