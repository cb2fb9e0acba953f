// Package cli implements the manuals command line.
package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/manuals/internal/logger"
)

// version is overridden at build time with -ldflags.
var version = "dev"

// annotationNoServices marks commands that run without wiring services.
const annotationNoServices = "no-services"

var (
	verbose   bool
	quiet     bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "manuals",
	Short: "Search product documentation from the terminal or an AI assistant",
	Long: `manuals extracts text from PDF manuals and HTML documentation sets,
indexes it for full-text search and serves it over MCP.

Typical use:
  manuals extract            # build the corpus from docs.dir
  manuals search "meshing"   # ranked search
  manuals mcp serve          # expose the corpus to an AI assistant`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRun,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress warnings")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.manuals)")
}

// Execute runs the root command. Command output goes to stdout.
func Execute(ctx context.Context) error {
	defer closeServices()
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func preRun(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetQuiet(quiet)

	loadDotEnv()

	if cmd.Annotations[annotationNoServices] == "true" || servicesInjected {
		return nil
	}
	return bootstrap(resolveConfigDir())
}

// loadDotEnv reads .env from the working directory and the config directory.
// Variables already set in the environment win.
func loadDotEnv() {
	candidates := []string{".env", filepath.Join(resolveConfigDir(), ".env")}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			logger.Warn("reading %s: %v", path, err)
			continue
		}
		logger.Debug("Loaded environment from %s", path)
	}
}

func resolveConfigDir() string {
	if configDir != "" {
		return configDir
	}
	if dir := os.Getenv("MANUALS_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".manuals"
	}
	return filepath.Join(home, ".manuals")
}
