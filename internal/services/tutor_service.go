package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/galamath/galamath/internal/errors"
	"github.com/galamath/galamath/internal/llm"
	"github.com/galamath/galamath/internal/logger"
	"github.com/galamath/galamath/internal/models"
)

const (
	defaultStudentName = "buddy"
	tutorTemperature   = 0.7
	chatMaxTokens      = 300
	explainMaxTokens   = 350
	lessonMaxTokens    = 1200
)

// TutorService produces child-safe tutoring text
type TutorService interface {
	Chat(ctx context.Context, req models.ChatRequest) (string, error)
	Explain(ctx context.Context, req models.QuestionContext) (string, error)
	Lesson(ctx context.Context, req models.LessonRequest) (string, error)
}

type tutorService struct {
	provider llm.Provider
}

// NewTutorService creates a new TutorService
func NewTutorService(provider llm.Provider) TutorService {
	return &tutorService{provider: provider}
}

func (s *tutorService) Chat(ctx context.Context, req models.ChatRequest) (string, error) {
	if len(req.Messages) == 0 {
		return "", errors.NewBadRequestError("messages required")
	}

	system, err := render(chatSystemTmpl, questionData(req.QuestionContext))
	if err != nil {
		return "", errors.NewInternalError(err)
	}

	messages := make([]llm.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := llm.RoleUser
		if m.Role == string(llm.RoleAssistant) {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}

	return s.generate(ctx, "chat", llm.Request{
		System:      system,
		Messages:    messages,
		MaxTokens:   chatMaxTokens,
		Temperature: tutorTemperature,
	})
}

func (s *tutorService) Explain(ctx context.Context, req models.QuestionContext) (string, error) {
	if strings.TrimSpace(req.Question) == "" {
		return "", errors.NewBadRequestError("question required")
	}

	data := questionData(req)
	system, err := render(explainSystemTmpl, data)
	if err != nil {
		return "", errors.NewInternalError(err)
	}
	prompt, err := render(explainUserTmpl, data)
	if err != nil {
		return "", errors.NewInternalError(err)
	}

	return s.generate(ctx, "explain", llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   explainMaxTokens,
		Temperature: tutorTemperature,
	})
}

func (s *tutorService) Lesson(ctx context.Context, req models.LessonRequest) (string, error) {
	if len(req.Mistakes) == 0 {
		return "", errors.NewBadRequestError("mistakes required")
	}

	grade := req.Grade
	if grade <= 0 {
		grade = models.DefaultGrade
	}
	data := promptData{
		Name:     studentName(req.UserName),
		Theme:    req.ThemeName,
		Grade:    grade,
		Mistakes: mistakesForLesson(req.Mistakes),
	}

	system, err := render(lessonSystemTmpl, data)
	if err != nil {
		return "", errors.NewInternalError(err)
	}
	prompt, err := render(lessonUserTmpl, data)
	if err != nil {
		return "", errors.NewInternalError(err)
	}

	return s.generate(ctx, "lesson", llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   lessonMaxTokens,
		Temperature: tutorTemperature,
	})
}

func (s *tutorService) generate(ctx context.Context, kind string, req llm.Request) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("tutor").WithField("kind", kind)

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		var rl *llm.ErrRateLimit
		if stderrors.As(err, &rl) {
			log.Warn("provider rate limited: %v", err)
			return "", errors.NewRateLimitError()
		}
		log.Error("provider failed: %v", err)
		return "", errors.NewUnavailableError("tutor", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

func questionData(q models.QuestionContext) promptData {
	return promptData{
		Name:     studentName(q.UserName),
		Theme:    q.Theme,
		Question: q.Question,
		Hint:     q.Hint,
		Answers:  q.Answers,
	}
}

func studentName(name string) string {
	if strings.TrimSpace(name) == "" {
		return defaultStudentName
	}
	return name
}
