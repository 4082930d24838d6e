package services

import "github.com/custodia-labs/supporta-cli/internal/core/ports/driven"

// Tool names form a closed set. Dispatch switches over these constants
// exhaustively, so adding or removing a tool is a compile-time-checked
// change rather than a stringly-typed branch.
const (
	// ToolCreateTicket escalates to human support via the issue tracker.
	ToolCreateTicket = "create_support_ticket"

	// ToolQueryDatabase executes a read-only SQL query.
	ToolQueryDatabase = "query_database"

	// ToolGetSchema introspects the business database structure.
	ToolGetSchema = "get_database_schema"
)

// createTicketSpec declares the ticket tool for the support assistant,
// which collects user contact details before escalating.
func createTicketSpec() driven.ToolSpec {
	return driven.ToolSpec{
		Name: ToolCreateTicket,
		Description: "Create a support ticket in the issue tracking system when the user requests help " +
			"that cannot be answered from documentation or when they explicitly ask to create a ticket",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"user_name": map[string]any{
					"type":        "string",
					"description": "The name of the user requesting support",
				},
				"user_email": map[string]any{
					"type":        "string",
					"description": "The email address of the user",
				},
				"title": map[string]any{
					"type":        "string",
					"description": "Brief title summarizing the support request",
				},
				"description": map[string]any{
					"type":        "string",
					"description": "Detailed description of the issue or request",
				},
			},
			"required": []string{"user_name", "user_email", "title", "description"},
		},
	}
}

// escalateTicketSpec declares the ticket tool for the data agent, which
// escalates conversations rather than collecting contact details.
func escalateTicketSpec() driven.ToolSpec {
	return driven.ToolSpec{
		Name: ToolCreateTicket,
		Description: "Create a support ticket (issue) to escalate to human support. Use this when the " +
			"user explicitly requests human help, when you cannot resolve their issue, or when the " +
			"request requires human judgment",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{
					"type":        "string",
					"description": "Brief title summarizing the support request",
				},
				"description": map[string]any{
					"type":        "string",
					"description": "Detailed description of the issue or request, including any relevant context from the conversation",
				},
			},
			"required": []string{"title", "description"},
		},
	}
}

func queryDatabaseSpec() driven.ToolSpec {
	return driven.ToolSpec{
		Name: ToolQueryDatabase,
		Description: "Execute a SQL SELECT query on the e-commerce database. Use this to retrieve data " +
			"about customers, products, orders, and order items. Only SELECT queries are allowed for " +
			"security reasons.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The SQL SELECT query to execute. Must be a valid SELECT statement.",
				},
			},
			"required": []string{"query"},
		},
	}
}

func getSchemaSpec() driven.ToolSpec {
	return driven.ToolSpec{
		Name: ToolGetSchema,
		Description: "Get the database schema including all tables, their columns, data types, and row " +
			"counts. Use this to understand the database structure before writing queries.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
			"required":   []string{},
		},
	}
}
