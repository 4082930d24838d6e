// Package openai provides an image generation adapter using the OpenAI API.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/custodia-labs/supporta-cli/internal/core/ports/driven"
)

// Ensure ImageService implements the interface.
var _ driven.ImageService = (*ImageService)(nil)

// Default configuration values.
const (
	DefaultModel   = openai.CreateImageModelDallE3
	DefaultSize    = openai.CreateImageSize1024x1024
	DefaultQuality = openai.CreateImageQualityStandard
	DefaultTimeout = 180 * time.Second
)

// Config holds configuration for the OpenAI image service.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL overrides the API base URL.
	BaseURL string

	// Model is the image model to use (default: dall-e-3).
	Model string

	// Timeout is the request timeout (default: 180s).
	// Image generation is the slowest call in the pipeline.
	Timeout time.Duration
}

// ImageService renders prompts into images using the OpenAI API.
type ImageService struct {
	client *openai.Client
	model  string
}

// NewImageService creates a new OpenAI image service.
func NewImageService(cfg Config) (*ImageService, error) {
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

	return &ImageService{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

// Generate returns one base64-encoded image for the prompt.
func (s *ImageService) Generate(ctx context.Context, prompt string, opts driven.ImageOptions) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("openai: empty image prompt")
	}
	if opts.Size == "" {
		opts.Size = DefaultSize
	}
	if opts.Quality == "" {
		opts.Quality = DefaultQuality
	}

	resp, err := s.client.CreateImage(ctx, openai.ImageRequest{
		Model:          s.model,
		Prompt:         prompt,
		Size:           opts.Size,
		Quality:        opts.Quality,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return "", fmt.Errorf("openai image generation: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("openai: no image returned")
	}

	return resp.Data[0].B64JSON, nil
}

// ModelName returns the name of the image model being used.
func (s *ImageService) ModelName() string {
	return s.model
}
