package llm

import (
	"context"
	"time"

	"github.com/galamath/galamath/internal/logger"
)

// LoggingProvider logs latency and token usage of every request.
type LoggingProvider struct {
	inner Provider
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider) Provider {
	return &LoggingProvider{inner: p}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	log := logger.FromContext(ctx).WithPrefix("llm").WithField("model", l.inner.ModelID())
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	latency := time.Since(start)
	if err != nil {
		log.WithError(err).Warn("generate failed after %v", latency)
		return nil, err
	}
	log.WithFields(map[string]any{
		"input_tokens":  resp.Usage.InputTokens,
		"output_tokens": resp.Usage.OutputTokens,
		"stop":          resp.StopReason,
	}).Debug("generate ok in %v", latency)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
