package cli

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vector index statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		stats, err := indexStats(cmd.Context())
		if err != nil {
			return err
		}

		cmd.Printf("Collection: %s\n", stats.Collection)
		cmd.Printf("Chunks:     %d\n", stats.Chunks)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
