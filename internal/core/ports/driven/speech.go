package driven

import "context"

// TranscriptionService converts spoken audio into text.
type TranscriptionService interface {
	// Transcribe sends the audio bytes to the speech-to-text model and
	// returns the transcript. The filename hints the container format
	// to the API (e.g., "recording.wav").
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)

	// ModelName returns the name of the speech model being used.
	ModelName() string
}
