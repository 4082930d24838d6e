// Package openai provides a speech-to-text adapter using the OpenAI API.
package openai

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/custodia-labs/supporta-cli/internal/core/ports/driven"
)

// Ensure TranscriptionService implements the interface.
var _ driven.TranscriptionService = (*TranscriptionService)(nil)

// Default configuration values.
const (
	DefaultModel   = openai.Whisper1
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the OpenAI transcription service.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL overrides the API base URL.
	BaseURL string

	// Model is the speech model to use (default: whisper-1).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// TranscriptionService converts audio into text using the OpenAI API.
type TranscriptionService struct {
	client *openai.Client
	model  string
}

// NewTranscriptionService creates a new OpenAI transcription service.
func NewTranscriptionService(cfg Config) (*TranscriptionService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &TranscriptionService{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

// Transcribe sends the audio bytes to the speech model. The filename
// carries the container extension the API uses to pick a decoder.
func (s *TranscriptionService) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("openai: empty audio input")
	}

	resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    s.model,
		FilePath: filename,
		Reader:   bytes.NewReader(audio),
	})
	if err != nil {
		return "", fmt.Errorf("openai transcription: %w", err)
	}

	return resp.Text, nil
}

// ModelName returns the name of the speech model being used.
func (s *TranscriptionService) ModelName() string {
	return s.model
}
