package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driven"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driving"
	"github.com/custodia-labs/supporta-cli/internal/logger"
)

// Ensure VoiceService implements the interface.
var _ driving.VoiceService = (*VoiceService)(nil)

// Ensure VoiceService can use customised prompts.
var _ driven.PromptStoreAware = (*VoiceService)(nil)

// defaultImageRewritePrompt is the fallback when no PromptStore is configured.
const defaultImageRewritePrompt = `You are a creative assistant that converts user requests into detailed, vivid image-generation prompts. Return ONLY the image prompt, nothing else. Make the prompt descriptive with style, lighting, composition, and mood details.`

// VoiceService runs the three-step voice-to-image pipeline:
// transcribe the audio, rewrite the transcript into an image prompt,
// render the image.
type VoiceService struct {
	stt         driven.TranscriptionService
	chat        driven.ChatService
	image       driven.ImageService
	promptStore driven.PromptStore
}

// NewVoiceService creates a voice pipeline service.
func NewVoiceService(
	stt driven.TranscriptionService,
	chat driven.ChatService,
	image driven.ImageService,
) *VoiceService {
	return &VoiceService{
		stt:   stt,
		chat:  chat,
		image: image,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *VoiceService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Run executes the pipeline. Unlike the chat loops, failures propagate
// as errors: the pipeline has no chat-shaped contract and the CLI
// renders the fault directly.
func (s *VoiceService) Run(ctx context.Context, audio []byte, filename string) (driving.VoiceResult, error) {
	var result driving.VoiceResult

	if s.stt == nil || s.chat == nil || s.image == nil {
		return result, domain.ErrChatUnavailable
	}

	logger.Section("Voice Pipeline")

	logger.Info("Step 1/3 - transcribing %d bytes with %s", len(audio), s.stt.ModelName())
	transcript, err := s.stt.Transcribe(ctx, audio, filename)
	if err != nil {
		return result, fmt.Errorf("transcribe: %w", err)
	}
	logger.Debug("Transcript: %q", transcript)
	result.Transcript = transcript

	logger.Info("Step 2/3 - rewriting transcript with %s", s.chat.ModelName())
	turn, err := s.chat.Chat(ctx, []domain.Message{
		{Role: domain.RoleSystem, Content: s.loadPrompt(driven.PromptImageRewrite, defaultImageRewritePrompt)},
		{Role: domain.RoleUser, Content: transcript},
	}, nil, driven.ChatOptions{Temperature: 0.7, MaxTokens: 300})
	if err != nil {
		return result, fmt.Errorf("generate image prompt: %w", err)
	}
	logger.Debug("Image prompt: %q", turn.Content)
	result.ImagePrompt = turn.Content

	logger.Info("Step 3/3 - rendering image with %s", s.image.ModelName())
	imageB64, err := s.image.Generate(ctx, turn.Content, driven.ImageOptions{})
	if err != nil {
		return result, fmt.Errorf("generate image: %w", err)
	}
	result.ImageB64 = imageB64

	return result, nil
}

func (s *VoiceService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
