package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigobdz/lint-staged/internal/constants"
)

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)
	assert.True(t, cfg.Concurrent, "default concurrent")
	assert.GreaterOrEqual(t, cfg.MaxConcurrency, 1, "default max concurrency")
	assert.False(t, cfg.AbortOnError, "concurrent runs collect every error")
	assert.Equal(t, constants.DefaultChunkSize, cfg.ChunkSize)
	assert.Equal(t, InvocationBatch, cfg.Invocation)
	assert.Equal(t, constants.DefaultCommandTimeout, cfg.Timeout)
	assert.Equal(t, RendererUpdate, cfg.Renderer)
	assert.False(t, cfg.AutoStage)
	assert.True(t, cfg.Relative)
	assert.Empty(t, cfg.Linters)
	assert.False(t, cfg.Validated())
}

func TestConfig_Validated(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		var cfg *Config
		assert.False(t, cfg.Validated())
	})

	t.Run("set by Validate", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Linters = []Linter{{Pattern: "*.go", Commands: []string{"gofmt -l"}}}
		require.NoError(t, Validate(cfg))
		assert.True(t, cfg.Validated())
	})

	t.Run("reset by failed Validate", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Linters = []Linter{{Pattern: "*.go", Commands: []string{"gofmt -l"}}}
		require.NoError(t, Validate(cfg))

		cfg.ChunkSize = -1
		require.Error(t, Validate(cfg))
		assert.False(t, cfg.Validated())
	})
}

func TestConfig_Patterns(t *testing.T) {
	cfg := &Config{Linters: []Linter{
		{Pattern: "*.js", Commands: []string{"eslint"}},
		{Pattern: "*.css", Commands: []string{"stylelint"}},
		{Pattern: "docs/**/*.md", Commands: []string{"markdownlint"}},
	}}

	assert.Equal(t, []string{"*.js", "*.css", "docs/**/*.md"}, cfg.Patterns())
}

func TestMarshal_RoundTripKeepsOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Concurrent = false
	cfg.AbortOnError = true
	cfg.Timeout = 90 * time.Second
	cfg.Linters = []Linter{
		{Pattern: "*.ts", Commands: []string{"prettier --write", "eslint"}},
		{Pattern: "*.css", Commands: []string{"stylelint --fix"}},
	}

	out, err := Marshal(cfg)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "linters:")
	assert.Contains(t, text, "timeout: 1m30s")
	assert.Less(t, strings.Index(text, "*.ts"), strings.Index(text, "*.css"), "declaration order is kept")

	parsed, err := Parse(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, cfg.Linters, parsed.Linters)
	assert.False(t, parsed.Concurrent)
	assert.True(t, parsed.AbortOnError)
	assert.Equal(t, 90*time.Second, parsed.Timeout)
}

func TestMarshal_NilConfig(t *testing.T) {
	_, err := Marshal(nil)
	require.Error(t, err)
}
