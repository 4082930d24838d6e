package cli

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var (
	dataDBPath  string
	dataSamples bool
)

var dataCmd = &cobra.Command{
	Use:   "data [question]",
	Short: "Chat with the business database",
	Long: `Answers questions about your business data by letting the model run
read-only SQL against a SQLite database. Modifying statements are
rejected before they reach the database.

With a question argument, runs a single turn. Without one, starts an
interactive session ('exit' to quit, 'reset' to clear history,
'samples' to list example questions).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runData,
}

func init() {
	dataCmd.Flags().StringVar(&dataDBPath, "db", "", "path to the SQLite database (default: database.path from config)")
	dataCmd.Flags().BoolVar(&dataSamples, "samples", false, "list sample queries and exit")
	rootCmd.AddCommand(dataCmd)
}

func runData(cmd *cobra.Command, args []string) error {
	if err := ensureDataChatService(cmd.Context(), dataDBPath); err != nil {
		return err
	}

	if dataSamples {
		printSamples(cmd)
		return nil
	}

	if len(args) == 1 {
		answer, err := dataChatService.Chat(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		cmd.Println(answer)
		return nil
	}

	return dataLoop(cmd)
}

func dataLoop(cmd *cobra.Command) error {
	cmd.Println("Supporta data assistant. Type 'exit' to quit, 'reset' to clear history, 'samples' for examples.")

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
			dataChatService.Reset()
			cmd.Println("History cleared.")
			continue
		case "samples":
			printSamples(cmd)
			continue
		}

		answer, err := dataChatService.Chat(cmd.Context(), line)
		if err != nil {
			cmd.Printf("Error: %s\n", err)
			continue
		}
		cmd.Println(answer)
	}
}

func printSamples(cmd *cobra.Command) {
	cmd.Println("Sample questions:")
	for i, sample := range dataChatService.SampleQueries() {
		cmd.Printf("  %d. %s\n", i+1, sample.Description)
	}
}
