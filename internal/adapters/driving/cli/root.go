// Package cli implements the cobra command tree that drives the core
// services. Each command depends on a driving port, so the command
// layer can be exercised against fakes in tests.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/supporta-cli/internal/core/ports/driving"
	"github.com/custodia-labs/supporta-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services are package-level so tests can substitute fakes before
// executing commands. Production wiring fills them lazily on first use.
var (
	supportService  driving.SupportService
	dataChatService driving.DataChatService
	voiceService    driving.VoiceService
	ingestService   driving.IngestService
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "supporta",
	Short: "AI support assistant for docs, data, and voice",
	Long: `Supporta is a customer-support assistant driven by LLM tool calling.

It answers questions from your indexed documentation, chats with your
business database through safe read-only SQL, and turns voice notes
into generated images. Unresolved issues escalate to GitHub as support
tickets.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose pipeline logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
