package config

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rodrigobdz/lint-staged/internal/errors"
)

// Marshal renders the resolved configuration as YAML in the advanced format.
// Options come first in a fixed order, followed by the linters in
// declaration order.
func Marshal(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, errors.ErrConfigNil
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	addScalar(root, "concurrent", "!!bool", strconv.FormatBool(cfg.Concurrent))
	addScalar(root, "max_concurrency", "!!int", strconv.Itoa(cfg.MaxConcurrency))
	addScalar(root, "abort_on_error", "!!bool", strconv.FormatBool(cfg.AbortOnError))
	addScalar(root, "chunk_size", "!!int", strconv.Itoa(cfg.ChunkSize))
	addScalar(root, "invocation", "!!str", cfg.Invocation)
	addScalar(root, "timeout", "!!str", cfg.Timeout.String())
	addScalar(root, "renderer", "!!str", cfg.Renderer)
	addScalar(root, "auto_stage", "!!bool", strconv.FormatBool(cfg.AutoStage))
	addScalar(root, "relative", "!!bool", strconv.FormatBool(cfg.Relative))

	linters := &yaml.Node{Kind: yaml.MappingNode}
	for _, l := range cfg.Linters {
		commands := &yaml.Node{Kind: yaml.SequenceNode}
		for _, c := range l.Commands {
			commands.Content = append(commands.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c})
		}
		linters.Content = append(linters.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: l.Pattern},
			commands,
		)
	}
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: lintersKey},
		linters,
	)

	out, err := yaml.Marshal(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal configuration")
	}
	return out, nil
}

func addScalar(mapping *yaml.Node, key, tag, value string) {
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value},
	)
}
