package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/adoreshop/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesAtConfiguredLevel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "app.log")

	logger, err := New(config.LogConfig{Level: "warn", Encoding: "json", OutputPaths: []string{out}})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", zap.String("client_id", "c1"))
	_ = logger.Sync()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
	assert.Contains(t, string(data), `"client_id":"c1"`)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"})

	assert.Error(t, err)
}
