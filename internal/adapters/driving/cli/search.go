package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/manuals/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/manuals/internal/core/domain"
)

var (
	searchLimit  int
	searchSource string
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documentation",
	Long: `Ranks pages and sections by TF x IDF relevance to the query.
Ties are broken by source and then by page, so results are stable.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default search.default_limit)")
	searchCmd.Flags().StringVarP(&searchSource, "source", "s", "", "restrict results to one source")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

// searchResultJSON is the JSON shape of a search hit.
type searchResultJSON struct {
	SourceID string  `json:"source_id"`
	Ordinal  int     `json:"ordinal"`
	Label    string  `json:"label,omitempty"`
	Score    float64 `json:"score"`
	Snippet  string  `json:"snippet"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}
	if err := ensureCorpus(cmd.Context()); err != nil {
		return err
	}

	query := domain.Query{
		Text:       strings.Join(args, " "),
		SourceID:   searchSource,
		MaxResults: searchLimit,
	}
	results, err := searchService.Search(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	out := make([]searchResultJSON, len(results))
	for i, r := range results {
		out[i] = searchResultJSON{
			SourceID: r.Record.SourceID,
			Ordinal:  r.Record.Ordinal,
			Label:    r.Record.Label,
			Score:    r.Score,
			Snippet:  r.Snippet,
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	styled := isTerminal(cmd)
	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		title := fmt.Sprintf("%s p.%d", r.Record.SourceID, r.Record.Ordinal)
		if styled {
			title = styles.DefaultStyles().Title.Render(title)
		}
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, title, r.Score)
		if r.Record.HasLabel() {
			cmd.Printf("      Chapter: %s\n", r.Record.Label)
		}
		if r.Snippet != "" {
			cmd.Printf("      %s\n", r.Snippet)
		}
		cmd.Println()
	}
	return nil
}

// isTerminal reports whether the command writes to an interactive terminal.
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
