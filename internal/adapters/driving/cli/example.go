package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/cobra"
)

var (
	exampleLimit    int
	exampleLanguage string
)

var exampleCmd = &cobra.Command{
	Use:   "example [topic]",
	Short: "Show code examples for a topic",
	Long: `Finds the pages that look most like code and mention the topic.
Output is syntax highlighted when written to a terminal.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExample,
}

func init() {
	exampleCmd.Flags().IntVarP(&exampleLimit, "limit", "n", 1, "number of examples")
	exampleCmd.Flags().StringVar(&exampleLanguage, "lang", "python", "language used for highlighting")
	rootCmd.AddCommand(exampleCmd)
}

func runExample(cmd *cobra.Command, args []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}
	if err := ensureCorpus(cmd.Context()); err != nil {
		return err
	}

	topic := strings.Join(args, " ")
	results, err := lookupService.CodeExamples(cmd.Context(), topic, exampleLimit)
	if err != nil {
		return fmt.Errorf("code example: %w", err)
	}

	styled := isTerminal(cmd)
	for i, r := range results {
		cmd.Printf("── Example %d: %s p.%d", i+1, r.Record.SourceID, r.Record.Ordinal)
		if r.Record.HasLabel() {
			cmd.Printf(" (%s)", r.Record.Label)
		}
		cmd.Println()
		cmd.Println(highlight(r.Record.Body, exampleLanguage, styled))
		cmd.Println()
	}
	return nil
}

// highlight renders code with terminal colours, or returns it unchanged.
func highlight(code, language string, styled bool) string {
	if !styled {
		return code
	}
	var b strings.Builder
	if err := quick.Highlight(&b, code, language, "terminal256", "monokai"); err != nil {
		return code
	}
	return b.String()
}
