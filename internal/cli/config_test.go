package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigobdz/lint-staged/internal/config"
)

const orderedConfig = `concurrent: false
linters:
  "*.{js,ts}":
    - eslint --fix
    - prettier --write
  "*.css": stylelint
  "*.md": markdownlint
`

func TestConfigCmd_Text(t *testing.T) {
	repo := repoWithConfig(t, orderedConfig)

	stdout, _, err := executeIn(t, repo.Root, "config")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Resolved configuration")
	assert.Contains(t, stdout, "# source: ")
	assert.Contains(t, stdout, "concurrent: false")
	assert.Contains(t, stdout, "abort_on_error: true")

	js := strings.Index(stdout, "*.{js,ts}")
	css := strings.Index(stdout, "*.css")
	md := strings.Index(stdout, "*.md")
	require.GreaterOrEqual(t, js, 0)
	assert.Less(t, js, css, "patterns keep declaration order")
	assert.Less(t, css, md, "patterns keep declaration order")
}

func TestConfigCmd_JSONWithOverrides(t *testing.T) {
	repo := repoWithConfig(t, orderedConfig)

	stdout, _, err := executeIn(t, repo.Root, "config", "--output", "json", "--concurrent", "--max-concurrency", "2", "--debug")
	require.NoError(t, err)

	var got configJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.True(t, got.Concurrent)
	assert.False(t, got.AbortOnError, "enabling concurrency resets abort_on_error")
	assert.Equal(t, 2, got.MaxConcurrency)
	assert.Equal(t, config.RendererVerbose, got.Renderer)
	require.Len(t, got.Linters, 3)
	assert.Equal(t, "*.{js,ts}", got.Linters[0].Pattern)
	assert.Equal(t, []string{"eslint --fix", "prettier --write"}, got.Linters[0].Commands)
	assert.Equal(t, "*.md", got.Linters[2].Pattern)
}

func TestConfigCmd_Invalid(t *testing.T) {
	repo := repoWithConfig(t, "\"!*.js\": eslint\n")

	_, stderr, err := executeIn(t, repo.Root, "config")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
	assert.Contains(t, stderr, "configuration is invalid")
}

func TestShowConfig_JSON(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Linters = []config.Linter{{Pattern: "*.go", Commands: []string{"gofmt -l"}}}
	cfg.SourcePath = "/repo/.lintstagedrc"

	var buf bytes.Buffer
	require.NoError(t, showConfig(&buf, OutputJSON, cfg))

	var got configJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "/repo/.lintstagedrc", got.Source)
	assert.Equal(t, (5 * time.Minute).String(), got.Timeout)
	assert.Equal(t, []linterJSON{{Pattern: "*.go", Commands: []string{"gofmt -l"}}}, got.Linters)
}
