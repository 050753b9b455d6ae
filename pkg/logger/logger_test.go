package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.log")

	log, err := New(path, "warn")
	require.NoError(t, err)

	log.Info("BuildReport: should be filtered")
	log.Warn("BuildReport: hours mismatch: unsplit=%.2f split=%.2f", 120.0, 121.0)
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "hours mismatch: unsplit=120.00 split=121.00")
	assert.False(t, strings.Contains(content, "should be filtered"))
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Info("nothing %d", 1)
	assert.NoError(t, log.Close())
}
