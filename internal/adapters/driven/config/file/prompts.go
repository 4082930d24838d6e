package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/supporta-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor. This makes testing easier and avoids unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptSupportSystem: `You are a helpful customer support assistant.

Your role is to:
1. Answer questions using the provided documentation
2. Always cite your sources with document name and page number
3. If you cannot find the answer in the documentation, suggest creating a support ticket
4. Help users create support tickets when they request it

When answering questions:
- Be accurate and cite sources in format: [Source: filename, Page: X]
- If uncertain, acknowledge it and offer to create a support ticket
- Be friendly and professional`,

	driven.PromptAugmentedQuestion: `User Question: %s

Relevant Documentation:
%s

Please answer the question based on the documentation above. Always cite your sources using the format [Source: filename, Page: X]. If the answer is not in the documentation, suggest creating a support ticket.`,

	driven.PromptDataChatSystem: `You are a helpful data assistant for an e-commerce business. You help users query and understand data from the company's database.

## Your Capabilities:
1. **Query Database**: You can execute SQL SELECT queries to retrieve data about customers, products, orders, and order items.
2. **Explain Schema**: You can show and explain the database structure.
3. **Create Support Tickets**: You can escalate issues to human support by creating tracker issues.

## Database Overview:
The database contains the following tables:
- **customers**: Customer information (id, name, email, phone, city, state)
- **products**: Product catalog (id, name, category, price, cost, stock)
- **orders**: Order records (id, customer_id, date, status, payment, total)
- **order_items**: Order line items (id, order_id, product_id, quantity, price)

## Safety Guidelines:
- You can ONLY execute SELECT queries (read-only)
- DELETE, UPDATE, INSERT, DROP and other modifying operations are blocked
- If a user asks for data modifications, explain that you can only read data

## When to Create Support Tickets:
- When the user explicitly asks to speak with a human or create a ticket
- When you encounter issues you cannot resolve
- When the user has complaints or complex requests requiring human judgment

## Response Guidelines:
- Be concise and helpful
- Format query results in readable tables when appropriate
- Explain what the data means in business terms
- Suggest follow-up queries when relevant
- If you're unsure, use get_database_schema to understand the structure first

Remember: Always use the tools available to you to help the user. Don't make up data - always query the database.`,

	driven.PromptImageRewrite: `You are a creative assistant that converts user requests into detailed, vivid image-generation prompts. Return ONLY the image prompt, nothing else. Make the prompt descriptive with style, lighting, composition, and mood details.`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.supporta/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".supporta", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Supporta Prompts

This directory contains customisable prompts used by Supporta's LLM features.

## Files

- ` + "`support_system.txt`" + ` - System prompt for the documentation assistant
- ` + "`augmented_question.txt`" + ` - Wraps the user question with retrieved context
- ` + "`datachat_system.txt`" + ` - System prompt for the database chat agent
- ` + "`image_rewrite.txt`" + ` - Turns a transcript into an image-generation prompt

## Customisation

Edit any file to customise LLM behaviour. Changes take effect on the next
command.

## Format Placeholders

Some prompts use Go fmt placeholders:
- ` + "`%s`" + ` - String (e.g., the question or context block)

Ensure customised prompts maintain placeholders in the correct positions.
`
	return os.WriteFile(path, []byte(content), 0600)
}
