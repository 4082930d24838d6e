package cli

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask the documentation assistant",
	Long: `Answers questions from your indexed documentation using
retrieval-augmented generation. Every answer cites its sources; when the
documentation cannot answer, the assistant offers to file a support ticket.

With a question argument, runs a single turn. Without one, starts an
interactive session ('exit' to quit, 'reset' to clear history).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if err := ensureSupportService(cmd.Context()); err != nil {
		return err
	}

	if len(args) == 1 {
		renderReply(cmd, supportService.Query(cmd.Context(), args[0]))
		return nil
	}

	return chatLoop(cmd)
}

func chatLoop(cmd *cobra.Command) error {
	cmd.Println("Supporta documentation assistant. Type 'exit' to quit, 'reset' to clear history.")

	reader := bufio.NewReader(cmd.InOrStdin())
	for {
		cmd.Print("you> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				cmd.Println()
				return nil
			}
			return err
		}

		switch line = strings.TrimSpace(line); line {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "reset":
			supportService.Reset()
			cmd.Println("History cleared.")
			continue
		}

		renderReply(cmd, supportService.Query(cmd.Context(), line))
	}
}

// renderReply prints one chat-shaped result. Every reply type is
// renderable, including failures.
func renderReply(cmd *cobra.Command, reply domain.Reply) {
	switch reply.Type {
	case domain.ReplyAnswer:
		cmd.Println(reply.Content)
		if len(reply.Sources) > 0 {
			cmd.Println()
			cmd.Println("Sources:")
			for i, src := range reply.Sources {
				cmd.Printf("  [%d] %s, page %d (distance %.3f)\n",
					i+1, src.Metadata.Filename, src.Metadata.PageNumber, src.Distance)
			}
		}
	case domain.ReplyTicketCreated:
		ticket := reply.Ticket
		if ticket.Simulated {
			cmd.Printf("Ticket simulated (no tracker configured): %s\n", ticket.Title)
		} else {
			cmd.Printf("Ticket #%d created: %s\n", ticket.TicketID, ticket.TicketURL)
		}
		if reply.Content != "" {
			cmd.Println(reply.Content)
		}
	case domain.ReplyTicketError:
		cmd.Printf("Ticket creation failed: %s\n", reply.Ticket.Error)
	case domain.ReplyError:
		cmd.Printf("Error: %s\n", reply.Err)
	}
}
