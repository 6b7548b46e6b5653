package config

import (
	"path"
	"strings"

	"github.com/rodrigobdz/lint-staged/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found and,
// on success, marks the configuration as validated.
//
// Validation rules:
//   - At least one linter must be configured
//   - Patterns must be non-empty, non-negated, well-formed globs
//   - Every pattern must have at least one non-empty command
//   - chunk_size must not be negative
//   - max_concurrency must be at least 1
//   - abort_on_error cannot be combined with concurrent
//   - renderer and invocation must be known values
//   - timeout must be positive
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}
	cfg.validated = false

	if err := validateLinters(cfg.Linters); err != nil {
		return err
	}

	if err := validateOptions(cfg); err != nil {
		return err
	}

	cfg.validated = true
	return nil
}

// validateLinters checks every pattern and its command list.
func validateLinters(linters []Linter) error {
	if len(linters) == 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "no linters configured")
	}

	seen := make(map[string]struct{}, len(linters))
	for _, l := range linters {
		if err := validatePattern(l.Pattern); err != nil {
			return err
		}
		if _, dup := seen[l.Pattern]; dup {
			return errors.Wrapf(errors.ErrInvalidConfig, "pattern %q is declared twice", l.Pattern)
		}
		seen[l.Pattern] = struct{}{}

		if len(l.Commands) == 0 {
			return errors.Wrapf(errors.ErrInvalidConfig, "pattern %q has no commands", l.Pattern)
		}
		for i, cmd := range l.Commands {
			if strings.TrimSpace(cmd) == "" {
				return errors.Wrapf(errors.ErrInvalidConfig, "pattern %q: command %d is empty", l.Pattern, i+1)
			}
		}
	}
	return nil
}

// validatePattern rejects patterns the matcher cannot compile.
// Each "/"-separated segment must be valid path.Match syntax.
func validatePattern(pattern string) error {
	trimmed := strings.TrimSpace(pattern)
	if trimmed == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "pattern must not be empty")
	}
	if strings.HasPrefix(trimmed, "!") {
		return errors.Wrapf(errors.ErrInvalidConfig, "pattern %q: negated patterns are not supported", pattern)
	}
	for _, segment := range strings.Split(strings.Trim(trimmed, "/"), "/") {
		if segment == "**" {
			continue
		}
		if _, err := path.Match(segment, ""); err != nil {
			return errors.Wrapf(errors.ErrInvalidConfig, "pattern %q: %s", pattern, err)
		}
	}
	return nil
}

// validateOptions checks scalar options.
func validateOptions(cfg *Config) error {
	if cfg.ChunkSize < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig,
			"chunk_size cannot be negative, got %d", cfg.ChunkSize)
	}

	if cfg.MaxConcurrency < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig,
			"max_concurrency must be at least 1, got %d", cfg.MaxConcurrency)
	}

	if cfg.Concurrent && cfg.AbortOnError {
		return errors.Wrap(errors.ErrInvalidConfig,
			"abort_on_error is only supported when concurrent is false")
	}

	if cfg.Timeout <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig,
			"timeout must be positive, got %s", cfg.Timeout)
	}

	switch cfg.Renderer {
	case RendererUpdate, RendererVerbose, RendererSilent, RendererJSON:
	default:
		return errors.Wrapf(errors.ErrInvalidConfig,
			"renderer must be one of update, verbose, silent, json; got %q", cfg.Renderer)
	}

	switch cfg.Invocation {
	case InvocationBatch, InvocationPerFile:
	default:
		return errors.Wrapf(errors.ErrInvalidConfig,
			"invocation must be %q or %q, got %q", InvocationBatch, InvocationPerFile, cfg.Invocation)
	}

	return nil
}
