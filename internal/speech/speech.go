// Package speech turns lesson text into spoken audio.
package speech

import (
	"context"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/galamath/galamath/internal/logger"
)

// ContentType is the MIME type of every clip Synthesize returns.
const ContentType = "audio/mpeg"

// Synthesizer converts text to audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Voice   string
	Speed   float64
}

// Client synthesizes MP3 audio through the OpenAI speech endpoint.
type Client struct {
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.SpeechVoice
	speed  float64
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required for speech")
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}

	c := &Client{
		client: openai.NewClientWithConfig(oc),
		model:  openai.SpeechModel(cfg.Model),
		voice:  openai.SpeechVoice(cfg.Voice),
		speed:  cfg.Speed,
	}
	if c.model == "" {
		c.model = openai.TTSModel1
	}
	if c.voice == "" {
		c.voice = openai.VoiceNova
	}
	if c.speed == 0 {
		c.speed = 0.95
	}
	return c, nil
}

func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("speech")

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}

	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          c.model,
		Input:          text,
		Voice:          c.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          c.speed,
	})
	if err != nil {
		return nil, fmt.Errorf("create speech: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read speech audio: %w", err)
	}
	log.Debug("synthesized %d chars into %d bytes", len(text), len(audio))
	return audio, nil
}
