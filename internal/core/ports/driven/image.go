package driven

import "context"

// ImageOptions configures image generation.
type ImageOptions struct {
	// Size is the output resolution (default "1024x1024").
	Size string

	// Quality is the generation quality tier (default "standard").
	Quality string
}

// ImageService renders a text prompt into an image.
type ImageService interface {
	// Generate returns one base64-encoded image for the prompt.
	Generate(ctx context.Context, prompt string, opts ImageOptions) (string, error)

	// ModelName returns the name of the image model being used.
	ModelName() string
}
