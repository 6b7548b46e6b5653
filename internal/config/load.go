package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/rodrigobdz/lint-staged/internal/constants"
	"github.com/rodrigobdz/lint-staged/internal/errors"
)

// lintersKey marks the advanced configuration format, where options sit
// next to a "linters" mapping instead of being mixed with glob keys.
const lintersKey = "linters"

// optionKeys maps every accepted option spelling to its canonical key.
// camelCase spellings are accepted for configs shared with the npm tool.
//
//nolint:gochecknoglobals // Read-only lookup table
var optionKeys = map[string]string{
	"concurrent":      "concurrent",
	"max_concurrency": "max_concurrency",
	"maxConcurrency":  "max_concurrency",
	"abort_on_error":  "abort_on_error",
	"abortOnError":    "abort_on_error",
	"chunk_size":      "chunk_size",
	"chunkSize":       "chunk_size",
	"invocation":      "invocation",
	"timeout":         "timeout",
	"renderer":        "renderer",
	"auto_stage":      "auto_stage",
	"autoStage":       "auto_stage",
	"relative":        "relative",
	"verbose":         "verbose",
}

// Overrides holds values from CLI flags, the highest precedence layer.
// Zero values are ignored; pointer fields distinguish "unset" from false.
type Overrides struct {
	// ConfigPath replaces config file discovery when non-empty.
	ConfigPath string
	// Concurrent overrides the concurrent option when non-nil.
	Concurrent *bool
	// MaxConcurrency overrides max_concurrency when positive.
	MaxConcurrency int
	// Renderer overrides the renderer when non-empty.
	Renderer string
	// Verbose forces verbose mode when true.
	Verbose bool
}

// newViperInstance creates a new Viper instance with defaults and LINT_STAGED_ env support.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults configures all default values on the Viper instance.
// These defaults match the values from DefaultConfig().
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("concurrent", d.Concurrent)
	v.SetDefault("max_concurrency", d.MaxConcurrency)
	v.SetDefault("chunk_size", d.ChunkSize)
	v.SetDefault("invocation", d.Invocation)
	v.SetDefault("timeout", d.Timeout.String())
	v.SetDefault("renderer", d.Renderer)
	v.SetDefault("auto_stage", d.AutoStage)
	v.SetDefault("relative", d.Relative)
	v.SetDefault("verbose", d.Verbose)
	// abort_on_error has no static default: it follows concurrent.
}

// Load discovers the configuration file at repoRoot and loads it.
// The returned config is not validated; call Validate before use.
func Load(ctx context.Context, repoRoot string) (*Config, error) {
	return LoadWithOverrides(ctx, repoRoot, Overrides{})
}

// LoadWithOverrides loads configuration and applies CLI flag overrides.
// The returned config is not validated; call Validate before use.
func LoadWithOverrides(ctx context.Context, repoRoot string, overrides Overrides) (*Config, error) {
	path := overrides.ConfigPath
	if path == "" {
		found, err := FindConfigFile(repoRoot)
		if err != nil {
			return nil, err
		}
		path = found
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(repoRoot, path)
	}

	cfg, err := LoadFromPath(ctx, path)
	if err != nil {
		return nil, err
	}

	applyOverrides(cfg, overrides)
	return cfg, nil
}

// LoadFromPath reads the configuration from a specific file.
// package.json files are read from their "lint-staged" key.
func LoadFromPath(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- config path is chosen by the user
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrConfigNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	cfg, err := parse(ctx, data, filepath.Base(path) == constants.PackageJSONFileName)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	cfg.SourcePath = path
	return cfg, nil
}

// Parse decodes a configuration document (YAML or JSON).
// It is exposed for callers that embed configuration, such as tests.
func Parse(ctx context.Context, data []byte) (*Config, error) {
	return parse(ctx, data, false)
}

func parse(ctx context.Context, data []byte, fromPackageJSON bool) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	root := documentRoot(&doc)
	if fromPackageJSON {
		node, ok := lookupKey(root, constants.PackageJSONKey)
		if !ok {
			return nil, errors.Wrapf(errors.ErrConfigNotFound, "no %q key in %s", constants.PackageJSONKey, constants.PackageJSONFileName)
		}
		root = node
	}
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "configuration must be a mapping of glob patterns to commands")
	}

	options, lintersNode, err := splitDocument(root)
	if err != nil {
		return nil, err
	}

	linters, err := decodeLinters(lintersNode)
	if err != nil {
		return nil, err
	}

	v := newViperInstance()
	if err := v.MergeConfigMap(options); err != nil {
		return nil, errors.Wrap(err, "failed to merge options")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}
	if v.IsSet("abort_on_error") {
		cfg.AbortOnError = v.GetBool("abort_on_error")
		cfg.abortOnErrorSet = true
	} else {
		cfg.AbortOnError = !cfg.Concurrent
	}
	cfg.Linters = linters

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Int("linters", len(cfg.Linters)).
		Bool("concurrent", cfg.Concurrent).
		Int("max_concurrency", cfg.MaxConcurrency).
		Str("renderer", cfg.Renderer).
		Msg("configuration loaded")

	return &cfg, nil
}

// splitDocument separates option keys from linter keys.
// In the advanced format the linters live under the "linters" key and every
// other key must be a known option. In the simple format known option keys
// are options and every other key is a glob pattern.
func splitDocument(root *yaml.Node) (map[string]any, []*yaml.Node, error) {
	options := make(map[string]any)
	_, advanced := lookupKey(root, lintersKey)

	var linterPairs []*yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		key := keyNode.Value

		if advanced && key == lintersKey {
			if valueNode.Kind != yaml.MappingNode {
				return nil, nil, errors.Wrap(errors.ErrInvalidConfig, "linters must be a mapping")
			}
			linterPairs = valueNode.Content
			continue
		}

		if canonical, ok := optionKeys[key]; ok {
			var value any
			if err := valueNode.Decode(&value); err != nil {
				return nil, nil, fmt.Errorf("%w: option %s: %w", errors.ErrInvalidConfig, key, err)
			}
			options[canonical] = value
			continue
		}

		if advanced {
			return nil, nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown option %q", key)
		}
		linterPairs = append(linterPairs, keyNode, valueNode)
	}

	return options, linterPairs, nil
}

// decodeLinters converts key/value node pairs into Linters, keeping order.
// Values may be a single command string or a list of command strings.
func decodeLinters(pairs []*yaml.Node) ([]Linter, error) {
	linters := make([]Linter, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		pattern := pairs[i].Value
		valueNode := pairs[i+1]

		var commands []string
		switch valueNode.Kind {
		case yaml.ScalarNode:
			commands = []string{valueNode.Value}
		case yaml.SequenceNode:
			if err := valueNode.Decode(&commands); err != nil {
				return nil, fmt.Errorf("%w: commands for %q must be strings: %w", errors.ErrInvalidConfig, pattern, err)
			}
		case yaml.DocumentNode, yaml.MappingNode, yaml.AliasNode:
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "commands for %q must be a string or a list of strings", pattern)
		}

		linters = append(linters, Linter{Pattern: pattern, Commands: commands})
	}
	return linters, nil
}

// documentRoot unwraps a DocumentNode to its content node.
func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	if doc.Kind == 0 {
		return nil
	}
	return doc
}

// lookupKey returns the value node for key in a mapping node.
func lookupKey(mapping *yaml.Node, key string) (*yaml.Node, bool) {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1], true
		}
	}
	return nil, false
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// This configures mapstructure to handle time.Duration conversion from strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}

// applyOverrides merges non-zero override values into the config.
func applyOverrides(cfg *Config, overrides Overrides) {
	if overrides.Concurrent != nil {
		cfg.Concurrent = *overrides.Concurrent
		// Without an explicit abort_on_error, follow the new mode's default.
		if !cfg.abortOnErrorSet {
			cfg.AbortOnError = !cfg.Concurrent
		}
	}
	if overrides.MaxConcurrency > 0 {
		cfg.MaxConcurrency = overrides.MaxConcurrency
	}
	if overrides.Renderer != "" {
		cfg.Renderer = overrides.Renderer
	}
	if overrides.Verbose {
		cfg.Verbose = true
		if overrides.Renderer == "" && cfg.Renderer == RendererUpdate {
			cfg.Renderer = RendererVerbose
		}
	}
}
