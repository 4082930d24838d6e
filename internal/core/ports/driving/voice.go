package driving

import "context"

// VoiceResult is the output of a full voice-to-image run.
type VoiceResult struct {
	// Transcript is the speech-to-text output.
	Transcript string

	// ImagePrompt is the model-rewritten image-generation prompt.
	ImagePrompt string

	// ImageB64 is the base64-encoded generated image.
	ImageB64 string
}

// VoiceService turns spoken audio into a generated image via a
// three-step pipeline: transcribe, rewrite, render.
type VoiceService interface {
	// Run executes the pipeline on the given audio bytes.
	Run(ctx context.Context, audio []byte, filename string) (VoiceResult, error)
}
