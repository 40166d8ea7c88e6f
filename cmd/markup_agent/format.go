package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/markup-validator/internal/formatting"
	"github.com/jonathan/markup-validator/internal/ingestion"
	"github.com/spf13/cobra"
)

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Re-indent an HTML document",
	Long:  "Puts adjacent tags on their own lines and indents nested elements.",
	RunE:  runFormat,
}

var (
	formatInput  string
	formatIndent int
	formatOutput string
)

func init() {
	formatCmd.Flags().StringVarP(&formatInput, "in", "i", "", "Path to HTML file, or - for stdin (required)")
	formatCmd.Flags().IntVar(&formatIndent, "indent", 0, "Spaces per nesting level (default from config)")
	formatCmd.Flags().StringVarP(&formatOutput, "out", "o", "", "Path to write the formatted markup (default stdout)")

	if err := formatCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, _ []string) error {
	markup, err := ingestion.LoadFile(formatInput)
	if err != nil {
		return fmt.Errorf("failed to load markup: %w", err)
	}

	indent := formatIndent
	if indent <= 0 && cfg != nil {
		indent = cfg.IndentSize
	}

	formatted := formatting.Format(markup, indent) + "\n"

	if formatOutput == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), formatted)
		return err
	}

	if dir := filepath.Dir(formatOutput); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(formatOutput, []byte(formatted), 0644); err != nil {
		return fmt.Errorf("failed to write formatted markup: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Formatted markup written to %s\n", formatOutput)
	return nil
}
