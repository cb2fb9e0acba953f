package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/manuals/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change settings",
	Long: `View and change settings stored in config.toml.

Environment variables override stored values: a key such as corpus.path
is read from MANUALS_CORPUS_PATH. A .env file in the working directory or
the config directory is loaded first.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting",
	Long: `Stores a setting in config.toml.

Values are stored as integers, floats or booleans when they parse as one.
List settings (extract.strip_patterns, pipeline.processors) take a
comma-separated value.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration directory",
	Args:  cobra.NoArgs,
	Annotations: map[string]string{
		annotationNoServices: "true",
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println(resolveConfigDir())
	},
}

// listKeys hold string slices.
var listKeys = map[string]bool{
	services.KeyStripPatterns: true,
	services.KeyProcessors:    true,
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Corpus]")
	cmd.Printf("  Docs dir: %s\n", settings.Corpus.DocsDir)
	cmd.Printf("  Format: %s\n", settings.Corpus.Format.Description())
	if snapshotPath != "" {
		cmd.Printf("  Snapshot: %s\n", snapshotPath)
	}
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Default limit: %d\n", settings.Search.DefaultLimit)
	cmd.Printf("  Snippet length: %d\n", settings.Search.SnippetLength)
	cmd.Printf("  Minimum code score: %g\n", settings.Search.MinCodeScore)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Product: %s\n", settings.Server.Product)
	cmd.Printf("  HTTP rate: %g/s (burst %d)\n", settings.Server.HTTPRate, settings.Server.HTTPBurst)
	if settings.Server.CataloguePath != "" {
		cmd.Printf("  Catalogue: %s\n", settings.Server.CataloguePath)
	}
	cmd.Println()

	cmd.Println("[Pipeline]")
	cmd.Printf("  Processors: %s\n", strings.Join(settings.Pipeline.Processors, ", "))
	cmd.Println()

	if configStore != nil {
		cmd.Printf("Config file: %s\n", configStore.Path())
	}
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	key, raw := args[0], args[1]

	if err := configStore.Set(key, parseValue(key, raw)); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s = %s\n", key, raw)

	if settingsService != nil {
		if err := settingsService.Validate(); err != nil {
			cmd.Printf("Warning: %v\n", err)
		}
	}
	return nil
}

// parseValue converts a command-line value to the type stored for key.
func parseValue(key, raw string) any {
	if listKeys[key] {
		var items []string
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				items = append(items, p)
			}
		}
		return items
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
