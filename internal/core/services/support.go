package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driven"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driving"
	"github.com/custodia-labs/supporta-cli/internal/logger"
)

// Ensure SupportService implements the interface.
var _ driving.SupportService = (*SupportService)(nil)

// Ensure SupportService can use customised prompts.
var _ driven.PromptStoreAware = (*SupportService)(nil)

// DefaultTopK is the number of chunks retrieved per query.
const DefaultTopK = 3

// maxToolRounds bounds the dispatch loop. The model terminates the loop
// by answering without tool calls; the bound only guards against a model
// that never does.
const maxToolRounds = 8

// EmptyContextSentinel is injected when retrieval finds nothing.
const EmptyContextSentinel = "No relevant information found in the documentation."

// defaultSupportSystemPrompt is the fallback when no PromptStore is configured.
const defaultSupportSystemPrompt = `You are a helpful customer support assistant.

Your role is to:
1. Answer questions using the provided documentation
2. Always cite your sources with document name and page number
3. If you cannot find the answer in the documentation, suggest creating a support ticket
4. Help users create support tickets when they request it

When answering questions:
- Be accurate and cite sources in format: [Source: filename, Page: X]
- If uncertain, acknowledge it and offer to create a support ticket
- Be friendly and professional`

// defaultAugmentedQuestion is the fallback when no PromptStore is configured.
const defaultAugmentedQuestion = `User Question: %s

Relevant Documentation:
%s

Please answer the question based on the documentation above. Always cite your sources using the format [Source: filename, Page: X]. If the answer is not in the documentation, suggest creating a support ticket.`

// SupportService answers questions from indexed documentation via
// retrieval-augmented generation and escalates to the issue tracker
// through model tool calls.
type SupportService struct {
	chat        driven.ChatService
	embedder    driven.EmbeddingService
	index       driven.VectorIndex
	tracker     driven.IssueTracker
	promptStore driven.PromptStore
	session     *Session
	topK        int
	chatOpts    driven.ChatOptions
}

// SupportOption configures the support service.
type SupportOption func(*SupportService)

// WithTopK sets the number of chunks retrieved per query. Callers are
// responsible for keeping topK small enough that the assembled context
// fits the model window.
func WithTopK(k int) SupportOption {
	return func(s *SupportService) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithSupportChatOptions sets the model call options.
func WithSupportChatOptions(opts driven.ChatOptions) SupportOption {
	return func(s *SupportService) {
		s.chatOpts = opts
	}
}

// NewSupportService creates a support service with a fresh session.
func NewSupportService(
	chat driven.ChatService,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	tracker driven.IssueTracker,
	opts ...SupportOption,
) *SupportService {
	s := &SupportService{
		chat:     chat,
		embedder: embedder,
		index:    index,
		tracker:  tracker,
		topK:     DefaultTopK,
		chatOpts: driven.ChatOptions{Temperature: 0.7, MaxTokens: 1000},
	}

	for _, opt := range opts {
		opt(s)
	}

	// The system prompt is loaded per turn so a PromptStore injected
	// after construction still takes effect.
	s.session = NewSession("")

	return s
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *SupportService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// FormatContext renders search results into a numbered, citation-tagged
// block for prompt injection. Results are rendered in input order
// (ascending distance), 1-indexed. The block is injected verbatim and
// never truncated independently of the chunk size.
func FormatContext(results []domain.SearchResult) string {
	if len(results) == 0 {
		return EmptyContextSentinel
	}

	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprintf("[Source %d: %s, Page %d]\n%s\n",
			i+1, r.Metadata.Filename, r.Metadata.PageNumber, r.Text)
	}

	return strings.Join(parts, "\n")
}

// Query runs one retrieval-augmented turn. It always returns a
// renderable Reply: model and tool failures are folded into a Reply of
// type ReplyError, never propagated.
func (s *SupportService) Query(ctx context.Context, userMessage string) domain.Reply {
	logger.Section("Support Query")
	logger.Debug("User message: %q", userMessage)

	if s.chat == nil {
		return errorReply(domain.ErrChatUnavailable)
	}

	results, err := s.searchDocuments(ctx, userMessage)
	if err != nil {
		return errorReply(err)
	}
	logger.Debug("Retrieved %d chunks", len(results))

	contextBlock := s.formatContextBlock(results)

	// The window is taken before this turn's message is appended; the
	// model sees the raw question only inside the augmented turn.
	messages := make([]domain.Message, 0, domain.DefaultWindowSize+2)
	messages = append(messages, domain.Message{
		Role:    domain.RoleSystem,
		Content: s.loadPrompt(driven.PromptSupportSystem, defaultSupportSystemPrompt),
	})
	messages = append(messages, s.session.Window(domain.DefaultWindowSize)...)
	messages = append(messages, domain.Message{
		Role:    domain.RoleUser,
		Content: fmt.Sprintf(s.loadPrompt(driven.PromptAugmentedQuestion, defaultAugmentedQuestion), userMessage, contextBlock),
	})

	s.session.Append(domain.Message{Role: domain.RoleUser, Content: userMessage})

	tools := []driven.ToolSpec{createTicketSpec()}

	turn, err := s.chat.Chat(ctx, messages, tools, s.chatOpts)
	if err != nil {
		return errorReply(err)
	}

	var lastTicket *domain.TicketResult
	for round := 0; len(turn.ToolCalls) > 0; round++ {
		if round >= maxToolRounds {
			return errorReply(fmt.Errorf("tool dispatch did not converge after %d rounds", maxToolRounds))
		}
		logger.Debug("Round %d: %d tool call(s)", round+1, len(turn.ToolCalls))

		messages = append(messages, domain.Message{
			Role:      domain.RoleAssistant,
			Content:   turn.Content,
			ToolCalls: turn.ToolCalls,
		})

		for _, call := range turn.ToolCalls {
			payload := s.dispatchTool(ctx, call, &lastTicket)
			messages = append(messages, domain.Message{
				Role:       domain.RoleTool,
				Content:    payload,
				ToolCallID: call.ID,
			})
		}

		turn, err = s.chat.Chat(ctx, messages, tools, s.chatOpts)
		if err != nil {
			return errorReply(err)
		}
	}

	reply := s.shapeReply(turn.Content, results, lastTicket)
	s.session.Append(domain.Message{Role: domain.RoleAssistant, Content: reply.Content})

	return reply
}

// Stats reports the state of the vector index.
func (s *SupportService) Stats(ctx context.Context) (domain.IndexStats, error) {
	if s.index == nil {
		return domain.IndexStats{}, domain.ErrVectorIndexUnavailable
	}
	return s.index.Stats(ctx)
}

// Reset discards the conversation history.
func (s *SupportService) Reset() {
	s.session.Reset()
}

// searchDocuments retrieves the topK nearest chunks for the raw user
// message. No query rewriting is applied.
func (s *SupportService) searchDocuments(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.index == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := s.index.Search(ctx, embedding, s.topK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	return results, nil
}

func (s *SupportService) formatContextBlock(results []domain.SearchResult) string {
	block := FormatContext(results)
	if block == EmptyContextSentinel {
		logger.Debug("Empty index or no hits; injecting sentinel context")
	}
	return block
}

// ticketArgs is the argument shape of the create_support_ticket tool.
type ticketArgs struct {
	UserName    string `json:"user_name"`
	UserEmail   string `json:"user_email"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// dispatchTool invokes one tool call and returns the JSON payload for
// the tool-result message. Failures become structured payloads, never
// errors: the model decides how to proceed.
func (s *SupportService) dispatchTool(ctx context.Context, call domain.ToolCall, lastTicket **domain.TicketResult) string {
	switch call.Name {
	case ToolCreateTicket:
		var args ticketArgs
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return marshalToolError(fmt.Sprintf("invalid tool arguments: %v", err))
		}
		if args.Title == "" || args.Description == "" {
			return marshalToolError("missing required tool arguments: title and description are required")
		}

		if s.tracker == nil {
			return marshalToolError(domain.ErrNotFound.Error() + ": no issue tracker configured")
		}

		result := s.tracker.Create(ctx, domain.TicketRequest{
			UserName:    args.UserName,
			UserEmail:   args.UserEmail,
			Title:       args.Title,
			Description: args.Description,
		})
		*lastTicket = &result

		payload, err := json.Marshal(result)
		if err != nil {
			return marshalToolError(err.Error())
		}
		return string(payload)

	default:
		logger.Warn("Model requested unknown tool %q", call.Name)
		return marshalToolError("unknown tool: " + call.Name)
	}
}

// shapeReply maps the final model turn plus any dispatched ticket onto
// the reply variants.
func (s *SupportService) shapeReply(content string, sources []domain.SearchResult, ticket *domain.TicketResult) domain.Reply {
	if ticket == nil {
		return domain.Reply{
			Type:    domain.ReplyAnswer,
			Content: content,
			Sources: sources,
		}
	}

	if ticket.Success {
		if strings.TrimSpace(content) == "" {
			content = fmt.Sprintf(
				"Support ticket created successfully!\n\nTicket #%d: %s\n\nYou can track your ticket at: %s\n\nWe'll contact you at %s soon.",
				ticket.TicketID, ticket.Title, ticket.TicketURL, ticket.UserEmail)
		}
		return domain.Reply{
			Type:    domain.ReplyTicketCreated,
			Content: content,
			Ticket:  ticket,
		}
	}

	if strings.TrimSpace(content) == "" {
		content = "Failed to create ticket: " + ticket.Error
	}
	return domain.Reply{
		Type:    domain.ReplyTicketError,
		Content: content,
		Ticket:  ticket,
		Err:     ticket.Error,
	}
}

func (s *SupportService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

func errorReply(err error) domain.Reply {
	logger.Error("Support query failed: %v", err)
	return domain.Reply{
		Type:    domain.ReplyError,
		Content: fmt.Sprintf("Error processing query: %v", err),
		Err:     err.Error(),
	}
}

func marshalToolError(reason string) string {
	payload, err := json.Marshal(map[string]any{
		"success": false,
		"error":   reason,
	})
	if err != nil {
		return `{"success":false,"error":"internal error"}`
	}
	return string(payload)
}
