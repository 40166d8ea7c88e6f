// Package main provides the entry point for the markup validator CLI and HTTP server.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/markup-validator/internal/config"
	"github.com/jonathan/markup-validator/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger = zap.NewNop()

	newLogger = logging.New
)

var rootCmd = &cobra.Command{
	Use:   "markup_agent",
	Short: "HTML tag-structure validator",
	Long: `markup_agent checks HTML for unclosed and mismatched tags, invalid nesting,
missing document structure and common attribute mistakes. It can also
re-indent markup, build a sanitized preview, and serve all of this over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			loaded.Verbose = true
		}
		cfg = loaded

		logger, err = newLogger(cfg.LogLevel, cfg.Verbose)
		if err != nil {
			return err
		}
		logger.Debug("configuration loaded", zap.String("path", configPath), zap.Any("config", cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging and detailed summaries")
	rootCmd.Version = version
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes args and returns the process exit code. The logger is synced
// on every exit path, including commands that fail.
func run(args []string, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
