package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{name: "default", input: "", want: slog.LevelInfo},
		{name: "debug", input: "debug", want: slog.LevelDebug},
		{name: "mixed case", input: " DEBUG ", want: slog.LevelDebug},
		{name: "warn alias", input: "warning", want: slog.LevelWarn},
		{name: "error", input: "error", want: slog.LevelError},
		{name: "invalid", input: "nope", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestOpenOutputFallsBackToStderr(t *testing.T) {
	assert.Equal(t, os.Stderr, openOutput(""), "empty path")

	missing := filepath.Join(t.TempDir(), "missing", "dir", "log.txt")
	assert.Equal(t, os.Stderr, openOutput(missing), "unopenable path")
}

func TestOpenOutputCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "infiniscroll.log")

	f, ok := openOutput(path).(*os.File)
	require.True(t, ok, "expected a file writer")
	defer f.Close()

	assert.NotEqual(t, os.Stderr, f)
	assert.FileExists(t, path)
}
