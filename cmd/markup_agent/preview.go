package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/markup-validator/internal/observability"
	"github.com/jonathan/markup-validator/internal/preview"
	"github.com/jonathan/markup-validator/internal/schemas"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Summarize how a browser would see an HTML document",
	Long: `Parses the document the way a browser does and prints its title, heading
outline, element counts and a text excerpt. With --out, writes the preview
JSON, including sanitized HTML, to a file.`,
	RunE: runPreview,
}

var (
	previewInput   string
	previewURL     string
	previewBrowser bool
	previewOutput  string
)

func init() {
	previewCmd.Flags().StringVarP(&previewInput, "in", "i", "", "Path to HTML file, or - for stdin")
	previewCmd.Flags().StringVarP(&previewURL, "url", "u", "", "URL of a page to fetch")
	previewCmd.Flags().BoolVar(&previewBrowser, "browser", false, "Render --url in headless Chrome first")
	previewCmd.Flags().StringVarP(&previewOutput, "out", "o", "", "Path to write the preview JSON")
	previewCmd.MarkFlagsMutuallyExclusive("in", "url")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	sources, err := collectSources([]string{previewInput}, nil, previewURL)
	if err != nil {
		return err
	}
	src := sources[0]

	markup, err := src.load(cmd.Context(), urlOptions(previewBrowser, logger))
	if err != nil {
		return fmt.Errorf("failed to load markup: %w", err)
	}

	pv, err := preview.Build(markup)
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintPreview(pv)

	if previewOutput == "" {
		return nil
	}

	if dir := filepath.Dir(previewOutput); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	jsonBytes, err := json.MarshalIndent(pv, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preview to JSON: %w", err)
	}
	if err := os.WriteFile(previewOutput, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write preview to output file: %w", err)
	}

	checkAgainstSchema(schemas.PreviewSchemaPath, previewOutput)
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Preview written to %s\n", previewOutput)
	return nil
}
