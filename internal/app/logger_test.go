package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &Config{LogFormat: "json", LogLevel: "warn"})
	logger.Info("hidden")
	logger.Warn("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestRotatingLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockledger.log")
	file := newRotatingFile(path)
	defer file.Close()

	logger := newLogger(file, &Config{LogFormat: "json", LogLevel: "info"})
	logger.Info("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"written to file"`)
}
