package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driving"
)

var extractForce bool

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Build the corpus from the documentation directory",
	Long: `Extracts every PDF manual and HTML documentation set under docs.dir,
indexes the text and replaces the stored snapshot.

Top-level files are sources on their own; each top-level directory is one
source made of every file beneath it. Pages that fail to extract are
skipped and reported; a source with no usable pages is reported as failed.

When nothing changed since the last run the rebuild is skipped.
Use --force to rebuild anyway.`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVarP(&extractForce, "force", "f", false, "rebuild even when inputs are unchanged")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	if extractionService == nil {
		return errors.New("extraction service not configured")
	}

	summary, err := extractionService.Run(cmd.Context(), driving.ExtractOptions{Force: extractForce})
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	printSummary(cmd, summary)
	return nil
}

func printSummary(cmd *cobra.Command, summary *domain.ExtractionSummary) {
	if summary.Unchanged {
		cmd.Println("Documentation unchanged since the last extraction; nothing to do.")
		cmd.Println("Use --force to rebuild.")
		return
	}

	cmd.Println("Extraction summary")
	cmd.Println("==================")
	for _, src := range summary.Sources {
		switch {
		case src.Failed:
			cmd.Printf("  ✗ %s: failed (%s)\n", src.SourceID, src.Reason)
		case len(src.Skipped) > 0:
			cmd.Printf("  ! %s: %d records, %d skipped\n", src.SourceID, src.Records, len(src.Skipped))
		default:
			cmd.Printf("  ✓ %s: %d records\n", src.SourceID, src.Records)
		}
	}
	cmd.Println()
	cmd.Printf("Sources: %d (%d failed)\n", len(summary.Sources), len(summary.FailedSources()))
	cmd.Printf("Records: %d\n", summary.TotalRecords())
	if n := summary.SkippedCount(); n > 0 {
		cmd.Printf("Skipped: %d (run with --verbose for details)\n", n)
	}
}
