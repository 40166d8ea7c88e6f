package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/jonathan/markup-validator/internal/ingestion"
	"github.com/jonathan/markup-validator/internal/observability"
	"github.com/jonathan/markup-validator/internal/rendering"
	"github.com/jonathan/markup-validator/internal/schemas"
	"github.com/jonathan/markup-validator/internal/types"
	"github.com/jonathan/markup-validator/internal/validation"
	"github.com/jonathan/markup-validator/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate the tag structure of HTML documents",
	Long: `Validates one or more HTML documents and prints a report of errors,
warnings and passed checks for each. Exits non-zero when any document has errors.`,
	RunE: runValidate,
}

var (
	validateInputs  []string
	validateURL     string
	validateBrowser bool
	validateFormat  string
	validateOutput  string
	validateWatch   bool
)

func init() {
	validateCmd.Flags().StringArrayVarP(&validateInputs, "in", "i", nil, "Path to HTML file, or - for stdin (repeatable)")
	validateCmd.Flags().StringVarP(&validateURL, "url", "u", "", "URL of a page to fetch and validate")
	validateCmd.Flags().BoolVar(&validateBrowser, "browser", false, "Render --url in headless Chrome before validating")
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "", "Output format: text, json, markdown, html, pretty (default from config)")
	validateCmd.Flags().StringVarP(&validateOutput, "out", "o", "", "Path to write the report JSON (single input only)")
	validateCmd.Flags().BoolVarP(&validateWatch, "watch", "w", false, "Re-validate files whenever they change")

	rootCmd.AddCommand(validateCmd)
}

// validationResult pairs a source with its report.
type validationResult struct {
	source source
	report *types.Report
}

func runValidate(cmd *cobra.Command, args []string) error {
	sources, err := collectSources(validateInputs, args, validateURL)
	if err != nil {
		return err
	}

	format, err := resolveFormat(validateFormat)
	if err != nil {
		return err
	}

	if validateOutput != "" && len(sources) != 1 {
		return fmt.Errorf("--out requires exactly one input, got %d", len(sources))
	}

	var watchPaths []string
	if validateWatch {
		if watchPaths, err = filePaths(sources); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v := validation.New()
	opts := urlOptions(validateBrowser, logger)

	results, err := validateSources(ctx, sources, func(ctx context.Context, s source) (*types.Report, error) {
		if s.isURL {
			markup, err := s.load(ctx, opts)
			if err != nil {
				return nil, err
			}
			return v.Validate(markup), nil
		}
		return v.ValidateFile(s.name)
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := printResults(out, results, format); err != nil {
		return err
	}

	if validateOutput != "" {
		if err := writeReport(validateOutput, results[0].report); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", validateOutput)
	}

	if validateWatch {
		return watchFiles(ctx, cmd, v, watchPaths, format)
	}

	return reportsError(results)
}

// resolveFormat applies the config default when the flag is empty.
func resolveFormat(flag string) (rendering.Format, error) {
	if flag == "" && cfg != nil {
		flag = cfg.OutputFormat
	}
	return rendering.ParseFormat(flag)
}

// validateSources validates every source concurrently, preserving input
// order in the result. The first load failure cancels the rest.
func validateSources(
	ctx context.Context,
	sources []source,
	check func(context.Context, source) (*types.Report, error),
) ([]validationResult, error) {
	results := make([]validationResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, s := range sources {
		g.Go(func() error {
			report, err := check(gctx, s)
			if err != nil {
				return fmt.Errorf("%s: %w", s.displayName(), err)
			}
			results[i] = validationResult{source: s, report: report}
			logger.Debug("validated",
				zap.String("source", s.displayName()),
				zap.Int("errors", len(report.Errors)),
				zap.Int("warnings", len(report.Warnings)),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// printResults renders each report, with a header line per source when there
// is more than one.
func printResults(w io.Writer, results []validationResult, format rendering.Format) error {
	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				_, _ = fmt.Fprintln(w)
			}
			_, _ = fmt.Fprintf(w, "==> %s <==\n", r.source.displayName())
		}
		if err := rendering.Render(w, r.report, format); err != nil {
			return fmt.Errorf("failed to render report for %s: %w", r.source.displayName(), err)
		}
		if verbose {
			observability.NewPrinter(os.Stderr).PrintReport(r.source.displayName(), r.report)
		}
	}
	return nil
}

// writeReport writes report as JSON to path and checks it against the report
// schema. Schema problems are reported as warnings only.
func writeReport(path string, report *types.Report) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	jsonBytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write report to output file: %w", err)
	}

	checkAgainstSchema(schemas.ReportSchemaPath, path)
	return nil
}

// checkAgainstSchema validates the JSON file at path against the named schema
// and prints a warning on failure.
func checkAgainstSchema(schemaRelPath, path string) {
	schemaPath := schemas.ResolveSchemaPath(schemaRelPath)
	if schemaPath == "" {
		return
	}
	if err := schemas.ValidateJSON(schemaPath, path); err != nil {
		var validationErr *schemas.ValidationError
		var schemaLoadErr *schemas.SchemaLoadError
		switch {
		case errors.As(err, &validationErr):
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Generated output does not validate against schema: %v\n", err)
		case errors.As(err, &schemaLoadErr):
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema (schema loading failed): %v\n", err)
		default:
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema: %v\n", err)
		}
	}
}

// reportsError returns an error naming every invalid report, or nil.
func reportsError(results []validationResult) error {
	var errs []error
	for _, r := range results {
		if err := validation.AsError(r.source.displayName(), r.report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// filePaths returns the paths of sources, failing on anything that is not a
// regular file input.
func filePaths(sources []source) ([]string, error) {
	var paths []string
	for _, s := range sources {
		if s.isURL || s.name == ingestion.StdinPath {
			return nil, fmt.Errorf("--watch only supports files, not %s", s.displayName())
		}
		paths = append(paths, s.name)
	}
	return paths, nil
}

// watchFiles re-validates paths on change until ctx is canceled.
func watchFiles(ctx context.Context, cmd *cobra.Command, v *validation.Validator, paths []string, format rendering.Format) error {
	out := cmd.OutOrStdout()
	w, err := watch.New(paths, func(_ context.Context, path string) {
		report, err := v.ValidateFile(path)
		if err != nil {
			logger.Warn("re-validation failed", zap.String("path", path), zap.Error(err))
			return
		}
		_, _ = fmt.Fprintf(out, "\n==> %s changed <==\n", path)
		if err := rendering.Render(out, report, format); err != nil {
			logger.Warn("failed to render report", zap.Error(err))
		}
	}, watch.WithLogger(logger))
	if err != nil {
		return err
	}

	if err := w.Start(ctx); err != nil {
		w.Stop()
		return err
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Watching %d file(s); press Ctrl+C to stop\n", len(paths))

	<-ctx.Done()
	w.Stop()
	return nil
}
