package cli

import (
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every chunk from the vector index",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := clearIndex(cmd.Context()); err != nil {
			return err
		}

		cmd.Println("Index cleared.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
