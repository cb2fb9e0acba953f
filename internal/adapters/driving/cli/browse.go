package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/manuals/internal/core/services"
)

var browseJSON bool

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List indexed sources",
	Args:  cobra.NoArgs,
	RunE:  runSources,
}

var chaptersCmd = &cobra.Command{
	Use:   "chapters <source-id>",
	Short: "List the chapter ranges of a source",
	Args:  cobra.ExactArgs(1),
	RunE:  runChapters,
}

var chapterCmd = &cobra.Command{
	Use:   "chapter <source-id> <title>",
	Short: "Print the text of a chapter",
	Long: `Prints every page labelled with the chapter title, matched without
regard to case. A title that recurs in the source yields all of its
ranges in order.`,
	Args: cobra.ExactArgs(2),
	RunE: runChapter,
}

var pageCmd = &cobra.Command{
	Use:   "page <source-id> <ordinal>",
	Short: "Print one page or section",
	Args:  cobra.ExactArgs(2),
	RunE:  runPage,
}

func init() {
	sourcesCmd.Flags().BoolVar(&browseJSON, "json", false, "output as JSON")
	chaptersCmd.Flags().BoolVar(&browseJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(sourcesCmd, chaptersCmd, chapterCmd, pageCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}
	if err := ensureCorpus(cmd.Context()); err != nil {
		return err
	}

	infos, err := lookupService.Sources(cmd.Context())
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}
	if browseJSON {
		return printJSON(cmd, services.SourceViews(infos))
	}

	if len(infos) == 0 {
		cmd.Println("No sources indexed.")
		return nil
	}
	for _, in := range infos {
		cmd.Printf("%-40s %5d records %4d chapters  (%d-%d)\n",
			in.ID, in.RecordCount, in.ChapterCount, in.FirstOrdinal, in.LastOrdinal)
	}
	return nil
}

func runChapters(cmd *cobra.Command, args []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}
	if err := ensureCorpus(cmd.Context()); err != nil {
		return err
	}

	ranges, err := lookupService.ChapterRanges(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("list chapters: %w", err)
	}
	if browseJSON {
		return printJSON(cmd, services.ChapterViews(ranges))
	}

	if len(ranges) == 0 {
		cmd.Println("No chapters detected.")
		return nil
	}
	for _, r := range ranges {
		cmd.Printf("%5d-%-5d %s\n", r.Start, r.End, r.Label)
	}
	return nil
}

func runChapter(cmd *cobra.Command, args []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}
	if err := ensureCorpus(cmd.Context()); err != nil {
		return err
	}

	ch, err := lookupService.GetChapter(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("get chapter: %w", err)
	}

	cmd.Printf("# %s\n\n", ch.Label)
	for _, r := range ch.Ranges {
		cmd.Printf("Pages %d-%d\n", r.Start, r.End)
	}
	cmd.Println()
	cmd.Println(ch.Body)
	return nil
}

func runPage(cmd *cobra.Command, args []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}
	if err := ensureCorpus(cmd.Context()); err != nil {
		return err
	}
	ordinal, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid ordinal %q: %w", args[1], err)
	}
	if err := ensureCorpus(cmd.Context()); err != nil {
		return err
	}

	rec, err := lookupService.Record(cmd.Context(), args[0], ordinal)
	if err != nil {
		return fmt.Errorf("get page: %w", err)
	}
	if rec.HasLabel() {
		cmd.Printf("# %s\n\n", rec.Label)
	}
	cmd.Println(rec.Body)
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
