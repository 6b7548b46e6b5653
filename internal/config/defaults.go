package config

import (
	"runtime"

	"github.com/rodrigobdz/lint-staged/internal/constants"
)

// DefaultConfig returns a new Config with default values and no linters.
// These defaults are the base layer overridden by the project config file,
// environment variables and CLI flags.
func DefaultConfig() *Config {
	return &Config{
		Concurrent:     true,
		MaxConcurrency: defaultMaxConcurrency(),
		// Concurrent runs collect every error before deciding anything.
		AbortOnError: false,
		ChunkSize:    constants.DefaultChunkSize,
		Invocation:   constants.DefaultInvocation,
		Timeout:      constants.DefaultCommandTimeout,
		Renderer:     constants.DefaultRenderer,
		AutoStage:    false,
		Relative:     true,
		Verbose:      false,
	}
}

func defaultMaxConcurrency() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}
