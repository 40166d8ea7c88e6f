package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// syncCounter records how often the logger is flushed.
type syncCounter struct {
	zapcore.Core
	syncs *int
}

func (c syncCounter) Sync() error {
	*c.syncs++
	return c.Core.Sync()
}

func TestRun_SyncsLoggerOnEveryExit(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode int
		wantErr  string
	}{
		{name: "valid document", content: validDocument, wantCode: 0},
		{name: "invalid document", content: invalidDocument, wantCode: 1, wantErr: "error(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origNewLogger := newLogger
			syncs := 0
			core, _ := observer.New(zapcore.DebugLevel)
			newLogger = func(string, bool) (*zap.Logger, error) {
				return zap.New(syncCounter{Core: core, syncs: &syncs}), nil
			}
			t.Cleanup(func() {
				newLogger = origNewLogger
				logger = zap.NewNop()
				cfg = nil
				rootCmd.SetOut(nil)
				rootCmd.SetArgs(nil)
			})
			rootCmd.SetOut(io.Discard)

			path := writeTemp(t, "page.html", tt.content)
			var stderr bytes.Buffer

			code := run([]string{"validate", path}, &stderr)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, 1, syncs)
			if tt.wantErr != "" {
				assert.Contains(t, stderr.String(), tt.wantErr)
			} else {
				assert.Empty(t, stderr.String())
			}
		})
	}
}
