package main

import (
	"context"
	"fmt"

	"github.com/jonathan/markup-validator/internal/ingestion"
	"go.uber.org/zap"
)

// source is one input named on the command line.
type source struct {
	name  string
	isURL bool
}

// collectSources combines --in values, positional arguments and --url into
// an ordered input list.
func collectSources(inputs []string, args []string, url string) ([]source, error) {
	var sources []source
	stdin := 0
	for _, in := range append(append([]string{}, inputs...), args...) {
		if in == "" {
			continue
		}
		if in == ingestion.StdinPath {
			stdin++
		}
		sources = append(sources, source{name: in})
	}
	if stdin > 1 {
		return nil, fmt.Errorf("standard input (%q) can only be read once", ingestion.StdinPath)
	}
	if url != "" {
		sources = append(sources, source{name: url, isURL: true})
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no input given: use --in <file>, --in - for stdin, or --url <url>")
	}
	return sources, nil
}

// displayName is how a source is labelled in output.
func (s source) displayName() string {
	if s.name == ingestion.StdinPath {
		return "<stdin>"
	}
	return s.name
}

// urlOptions builds fetch options from the loaded config and the --browser flag.
func urlOptions(useBrowser bool, log *zap.Logger) ingestion.URLOptions {
	opts := ingestion.URLOptions{UseBrowser: useBrowser, Logger: log}
	if cfg != nil {
		opts.UseBrowser = opts.UseBrowser || cfg.UseBrowser
		opts.Timeout = cfg.FetchTimeoutDuration()
	}
	return opts
}

// load reads the markup for a single source.
func (s source) load(ctx context.Context, opts ingestion.URLOptions) (string, error) {
	if s.isURL {
		return ingestion.LoadURL(ctx, s.name, opts)
	}
	return ingestion.LoadFile(s.name)
}
