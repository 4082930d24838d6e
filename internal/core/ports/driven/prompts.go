package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible
	// default or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptSupportSystem is the system prompt for the documentation
	// support assistant. No format placeholders.
	PromptSupportSystem = "support_system"

	// PromptDataChatSystem is the system prompt for the database chat
	// agent. No format placeholders.
	PromptDataChatSystem = "datachat_system"

	// PromptAugmentedQuestion wraps the user question with retrieved
	// context. Expects %s (question) and %s (context block) placeholders.
	PromptAugmentedQuestion = "augmented_question"

	// PromptImageRewrite turns a transcript into an image-generation
	// prompt. No format placeholders; the transcript is the user turn.
	PromptImageRewrite = "image_rewrite"
)

// PromptStoreAware is an optional interface for services that can use custom prompts.
// Services implementing this interface can have their prompt templates customised
// by injecting a PromptStore after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}
