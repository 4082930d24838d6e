package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driven"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driving"
	"github.com/custodia-labs/supporta-cli/internal/logger"
)

// Ensure DataChatService implements the interface.
var _ driving.DataChatService = (*DataChatService)(nil)

// Ensure DataChatService can use customised prompts.
var _ driven.PromptStoreAware = (*DataChatService)(nil)

// defaultDataChatSystemPrompt is the fallback when no PromptStore is configured.
const defaultDataChatSystemPrompt = `You are a helpful data assistant for an e-commerce business. You help users query and understand data from the company's database.

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

Remember: Always use the tools available to you to help the user. Don't make up data - always query the database.`

// DataChatService conducts a tool-calling conversation over the
// read-only business database. Unlike the support loop it keeps the
// whole history: schema context accumulated early in a session stays
// useful for later queries.
type DataChatService struct {
	chat        driven.ChatService
	db          driven.ReadOnlyDatabase
	tracker     driven.IssueTracker
	promptStore driven.PromptStore
	session     *Session
	chatOpts    driven.ChatOptions
}

// NewDataChatService creates a data chat service with a fresh session.
func NewDataChatService(
	chat driven.ChatService,
	db driven.ReadOnlyDatabase,
	tracker driven.IssueTracker,
) *DataChatService {
	return &DataChatService{
		chat:     chat,
		db:       db,
		tracker:  tracker,
		session:  NewSession(""),
		chatOpts: driven.ChatOptions{},
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *DataChatService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Chat runs one user turn. All tool calls in a model turn are
// dispatched and their results appended before the model is re-invoked;
// the loop ends when a turn contains no tool calls.
func (s *DataChatService) Chat(ctx context.Context, userMessage string) (string, error) {
	logger.Section("Data Chat Turn")
	logger.Debug("User message: %q", userMessage)

	if s.chat == nil {
		return "", domain.ErrChatUnavailable
	}

	s.session.Append(domain.Message{Role: domain.RoleUser, Content: userMessage})

	tools := []driven.ToolSpec{queryDatabaseSpec(), getSchemaSpec(), escalateTicketSpec()}

	turn, err := s.chat.Chat(ctx, s.messages(), tools, s.chatOpts)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	for round := 0; len(turn.ToolCalls) > 0; round++ {
		if round >= maxToolRounds {
			return "", fmt.Errorf("tool dispatch did not converge after %d rounds", maxToolRounds)
		}
		logger.Debug("Round %d: %d tool call(s)", round+1, len(turn.ToolCalls))

		s.session.Append(domain.Message{
			Role:      domain.RoleAssistant,
			Content:   turn.Content,
			ToolCalls: turn.ToolCalls,
		})

		for _, call := range turn.ToolCalls {
			s.session.Append(domain.Message{
				Role:       domain.RoleTool,
				Content:    s.dispatchTool(ctx, call),
				ToolCallID: call.ID,
			})
		}

		turn, err = s.chat.Chat(ctx, s.messages(), tools, s.chatOpts)
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}
	}

	s.session.Append(domain.Message{Role: domain.RoleAssistant, Content: turn.Content})

	return turn.Content, nil
}

// SampleQueries returns canned queries users can start from.
func (s *DataChatService) SampleQueries() []driving.SampleQuery {
	return []driving.SampleQuery{
		{
			Description: "Total sales revenue",
			Query:       "SELECT SUM(total_amount) AS total_revenue FROM orders WHERE status = 'delivered'",
		},
		{
			Description: "Top 5 customers by orders",
			Query:       "SELECT c.first_name, c.last_name, COUNT(o.order_id) AS order_count FROM customers c JOIN orders o ON c.customer_id = o.customer_id GROUP BY c.customer_id ORDER BY order_count DESC LIMIT 5",
		},
		{
			Description: "Products by category",
			Query:       "SELECT category, COUNT(*) AS product_count, AVG(price) AS avg_price FROM products GROUP BY category",
		},
		{
			Description: "Monthly order trends",
			Query:       "SELECT strftime('%Y-%m', order_date) AS month, COUNT(*) AS orders, SUM(total_amount) AS revenue FROM orders GROUP BY month ORDER BY month DESC LIMIT 12",
		},
		{
			Description: "Order status distribution",
			Query:       "SELECT status, COUNT(*) AS count FROM orders GROUP BY status",
		},
	}
}

// Reset discards the conversation history, keeping the system prompt.
func (s *DataChatService) Reset() {
	s.session.Reset()
}

// messages builds the full model input: system prompt plus the whole
// session log.
func (s *DataChatService) messages() []domain.Message {
	history := s.session.History()
	messages := make([]domain.Message, 0, len(history)+1)
	messages = append(messages, domain.Message{
		Role:    domain.RoleSystem,
		Content: s.loadPrompt(driven.PromptDataChatSystem, defaultDataChatSystemPrompt),
	})
	return append(messages, history...)
}

// dispatchTool invokes one tool call and returns the JSON payload for
// the tool-result message. All failures are structured payloads.
func (s *DataChatService) dispatchTool(ctx context.Context, call domain.ToolCall) string {
	logger.Debug("Dispatching tool %s", call.Name)

	switch call.Name {
	case ToolQueryDatabase:
		var args struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return marshalToolError(fmt.Sprintf("invalid tool arguments: %v", err))
		}
		return marshalResult(s.runQuery(ctx, args.Query))

	case ToolGetSchema:
		if s.db == nil {
			return marshalToolError(domain.ErrDatabaseUnavailable.Error())
		}
		schema, err := s.db.Schema(ctx)
		if err != nil {
			return marshalToolError(fmt.Sprintf("schema introspection failed: %v", err))
		}
		return marshalResult(map[string]any{"success": true, "schema": schema})

	case ToolCreateTicket:
		var args ticketArgs
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return marshalToolError(fmt.Sprintf("invalid tool arguments: %v", err))
		}
		if args.Title == "" || args.Description == "" {
			return marshalToolError("missing required tool arguments: title and description are required")
		}
		if s.tracker == nil {
			return marshalToolError("no issue tracker configured")
		}
		return marshalResult(s.tracker.Create(ctx, domain.TicketRequest{
			Title:       args.Title,
			Description: args.Description,
		}))

	default:
		logger.Warn("Model requested unknown tool %q", call.Name)
		return marshalToolError("unknown tool: " + call.Name)
	}
}

// runQuery vets the query with the domain guard before it reaches the
// database. Rejections and execution failures are both structured
// results; nothing is raised.
func (s *DataChatService) runQuery(ctx context.Context, query string) domain.QueryResult {
	if safe, reason := domain.IsSafeQuery(query); !safe {
		logger.Warn("Blocked query: %s", reason)
		return domain.QueryResult{Success: false, Error: reason}
	}

	if s.db == nil {
		return domain.QueryResult{Success: false, Error: domain.ErrDatabaseUnavailable.Error()}
	}

	result, err := s.db.Query(ctx, query)
	if err != nil {
		logger.Error("Query failed: %v", err)
		return domain.QueryResult{Success: false, Error: fmt.Sprintf("Database error: %v", err)}
	}

	logger.Debug("Query returned %d rows (truncated=%t)", result.RowCount, result.Truncated)
	return result
}

func (s *DataChatService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

func marshalResult(v any) string {
	payload, err := json.Marshal(v)
	if err != nil {
		return marshalToolError(err.Error())
	}
	return string(payload)
}
