package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/supporta-cli/internal/core/ports/driving"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Index documents for the documentation assistant",
	Long: `Extracts, chunks, embeds, and indexes a document or a directory of
documents. Supported formats: PDF (via pdftotext), plain text, and
Markdown. Re-ingesting a file updates its chunks in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := ensureIngestService(); err != nil {
		return err
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	var report driving.IngestReport
	if info.IsDir() {
		report, err = ingestService.IngestDirectory(cmd.Context(), path)
	} else {
		report, err = ingestService.IngestFile(cmd.Context(), path)
	}
	if err != nil {
		return err
	}

	cmd.Printf("Ingested %d document(s): %d pages, %d chunks\n",
		report.Documents, report.Pages, report.Chunks)
	return nil
}
