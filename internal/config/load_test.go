package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigobdz/lint-staged/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParse_SimpleFormatKeepsOrder(t *testing.T) {
	cfg, err := Parse(context.Background(), []byte(`
"*.{js,jsx}": eslint --fix
"*.css":
  - stylelint --fix
  - prettier --check
"docs/**/*.md": markdownlint
`))
	require.NoError(t, err)

	require.Len(t, cfg.Linters, 3)
	assert.Equal(t, Linter{Pattern: "*.{js,jsx}", Commands: []string{"eslint --fix"}}, cfg.Linters[0])
	assert.Equal(t, Linter{Pattern: "*.css", Commands: []string{"stylelint --fix", "prettier --check"}}, cfg.Linters[1])
	assert.Equal(t, "docs/**/*.md", cfg.Linters[2].Pattern)

	// Defaults apply when no option is given.
	assert.True(t, cfg.Concurrent)
	assert.False(t, cfg.AbortOnError)
	assert.Equal(t, RendererUpdate, cfg.Renderer)
}

func TestParse_SimpleFormatWithOptions(t *testing.T) {
	cfg, err := Parse(context.Background(), []byte(`
concurrent: false
chunkSize: 10
"*.go": gofmt -l
`))
	require.NoError(t, err)

	require.Len(t, cfg.Linters, 1)
	assert.Equal(t, "*.go", cfg.Linters[0].Pattern)
	assert.False(t, cfg.Concurrent)
	assert.True(t, cfg.AbortOnError, "sequential runs abort on first error by default")
	assert.Equal(t, 10, cfg.ChunkSize)
}

func TestParse_AdvancedFormat(t *testing.T) {
	cfg, err := Parse(context.Background(), []byte(`
concurrent: false
abort_on_error: false
invocation: per_file
timeout: 30s
renderer: verbose
auto_stage: true
linters:
  "*.py":
    - black
    - flake8
  "*.sh": shellcheck
`))
	require.NoError(t, err)

	require.Len(t, cfg.Linters, 2)
	assert.Equal(t, "*.py", cfg.Linters[0].Pattern)
	assert.Equal(t, []string{"black", "flake8"}, cfg.Linters[0].Commands)
	assert.Equal(t, "*.sh", cfg.Linters[1].Pattern)
	assert.False(t, cfg.Concurrent)
	assert.False(t, cfg.AbortOnError)
	assert.Equal(t, InvocationPerFile, cfg.Invocation)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, RendererVerbose, cfg.Renderer)
	assert.True(t, cfg.AutoStage)
}

func TestParse_JSON(t *testing.T) {
	cfg, err := Parse(context.Background(), []byte(`{
  "*.js": ["eslint --fix", "git add"],
  "*.md": "prettier --write"
}`))
	require.NoError(t, err)

	require.Len(t, cfg.Linters, 2)
	assert.Equal(t, []string{"eslint --fix", "git add"}, cfg.Linters[0].Commands)
	assert.Equal(t, "*.md", cfg.Linters[1].Pattern)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not a mapping", "- eslint\n- prettier\n"},
		{"malformed yaml", "\"*.js\": [eslint\n"},
		{"mapping value", "\"*.js\":\n  cmd: eslint\n"},
		{"unknown advanced option", "linters:\n  \"*.js\": eslint\nbogus: true\n"},
		{"linters not a mapping", "linters:\n  - eslint\n"},
		{"bad timeout", "timeout: soon\n\"*.js\": eslint\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(context.Background(), []byte(tc.content))
			require.Error(t, err)
			require.ErrorIs(t, err, errors.ErrInvalidConfig)
		})
	}
}

func TestParse_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("LINT_STAGED_RENDERER", "silent")
	t.Setenv("LINT_STAGED_MAX_CONCURRENCY", "3")

	cfg, err := Parse(context.Background(), []byte(`
renderer: verbose
"*.js": eslint
`))
	require.NoError(t, err)

	assert.Equal(t, RendererSilent, cfg.Renderer)
	assert.Equal(t, 3, cfg.MaxConcurrency)
}

func TestParse_EnvironmentAbortOnError(t *testing.T) {
	t.Setenv("LINT_STAGED_ABORT_ON_ERROR", "true")

	cfg, err := Parse(context.Background(), []byte(`
concurrent: false
"*.js": eslint
`))
	require.NoError(t, err)
	assert.True(t, cfg.AbortOnError)
}

func TestLoadFromPath(t *testing.T) {
	ctx := context.Background()

	t.Run("rc file", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, ".lintstagedrc", "\"*.go\": gofmt -l\n")

		cfg, err := LoadFromPath(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, path, cfg.SourcePath)
		require.Len(t, cfg.Linters, 1)
	})

	t.Run("package.json key", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "package.json", `{
  "name": "demo",
  "lint-staged": {
    "*.js": "eslint --fix"
  }
}`)

		cfg, err := LoadFromPath(ctx, path)
		require.NoError(t, err)
		require.Len(t, cfg.Linters, 1)
		assert.Equal(t, "*.js", cfg.Linters[0].Pattern)
	})

	t.Run("package.json without key", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "package.json", `{"name": "demo"}`)

		_, err := LoadFromPath(ctx, path)
		require.ErrorIs(t, err, errors.ErrConfigNotFound)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromPath(ctx, filepath.Join(t.TempDir(), ".lintstagedrc"))
		require.ErrorIs(t, err, errors.ErrConfigNotFound)
	})
}

func TestLoadWithOverrides(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, ".lintstagedrc.yaml", `
renderer: update
"*.js": eslint
`)

	t.Run("discovers file", func(t *testing.T) {
		cfg, err := Load(ctx, dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, ".lintstagedrc.yaml"), cfg.SourcePath)
	})

	t.Run("flags win", func(t *testing.T) {
		sequential := false
		cfg, err := LoadWithOverrides(ctx, dir, Overrides{
			Concurrent:     &sequential,
			MaxConcurrency: 2,
			Renderer:       RendererJSON,
		})
		require.NoError(t, err)
		assert.False(t, cfg.Concurrent)
		assert.True(t, cfg.AbortOnError)
		assert.Equal(t, 2, cfg.MaxConcurrency)
		assert.Equal(t, RendererJSON, cfg.Renderer)
	})

	t.Run("flag keeps explicit abort_on_error", func(t *testing.T) {
		explicit := t.TempDir()
		writeFile(t, explicit, ".lintstagedrc.yaml", `
concurrent: true
abort_on_error: false
"*.js": eslint
`)
		sequential := false
		cfg, err := LoadWithOverrides(ctx, explicit, Overrides{Concurrent: &sequential})
		require.NoError(t, err)
		assert.False(t, cfg.Concurrent)
		assert.False(t, cfg.AbortOnError, "explicit value survives the mode switch")
	})

	t.Run("flag conflicting with explicit abort_on_error fails validation", func(t *testing.T) {
		explicit := t.TempDir()
		writeFile(t, explicit, ".lintstagedrc.yaml", `
concurrent: false
abort_on_error: true
"*.js": eslint
`)
		concurrent := true
		cfg, err := LoadWithOverrides(ctx, explicit, Overrides{Concurrent: &concurrent})
		require.NoError(t, err)
		assert.True(t, cfg.AbortOnError)
		require.ErrorIs(t, Validate(cfg), errors.ErrInvalidConfig)
	})

	t.Run("verbose switches default renderer", func(t *testing.T) {
		cfg, err := LoadWithOverrides(ctx, dir, Overrides{Verbose: true})
		require.NoError(t, err)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, RendererVerbose, cfg.Renderer)
	})

	t.Run("relative config path", func(t *testing.T) {
		writeFile(t, dir, "custom.yml", "\"*.css\": stylelint\n")
		cfg, err := LoadWithOverrides(ctx, dir, Overrides{ConfigPath: "custom.yml"})
		require.NoError(t, err)
		require.Len(t, cfg.Linters, 1)
		assert.Equal(t, "*.css", cfg.Linters[0].Pattern)
	})

	t.Run("no config", func(t *testing.T) {
		_, err := Load(ctx, t.TempDir())
		require.ErrorIs(t, err, errors.ErrConfigNotFound)
	})
}
