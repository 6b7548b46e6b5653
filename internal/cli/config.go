package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rodrigobdz/lint-staged/internal/config"
	"github.com/rodrigobdz/lint-staged/internal/git"
	"github.com/rodrigobdz/lint-staged/internal/tui"
)

// configJSON is the JSON shape of the resolved configuration. Linters stay
// a list so declaration order survives.
type configJSON struct {
	Source         string       `json:"source"`
	Concurrent     bool         `json:"concurrent"`
	MaxConcurrency int          `json:"max_concurrency"`
	AbortOnError   bool         `json:"abort_on_error"`
	ChunkSize      int          `json:"chunk_size"`
	Invocation     string       `json:"invocation"`
	Timeout        string       `json:"timeout"`
	Renderer       string       `json:"renderer"`
	AutoStage      bool         `json:"auto_stage"`
	Relative       bool         `json:"relative"`
	Linters        []linterJSON `json:"linters"`
}

type linterJSON struct {
	Pattern  string   `json:"pattern"`
	Commands []string `json:"commands"`
}

// AddConfigCommand adds the config subcommand to the root command.
func AddConfigCommand(root *cobra.Command, flags *GlobalFlags, runFlags *RunFlags) {
	root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration lint-staged would run with, after defaults,
LINT_STAGED_* environment variables, and flags are applied.

Patterns are listed in the order they are matched and run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			repo, err := git.DetectRepo(cmd.Context(), cwd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd.Context(), repo.Root, configOverrides(cmd, flags, runFlags))
			if err != nil {
				return err
			}
			return showConfig(cmd.OutOrStdout(), flags.Output, cfg)
		},
	})
}

// showConfig writes cfg as YAML with a source header, or as JSON.
func showConfig(w io.Writer, format string, cfg *config.Config) error {
	if format == OutputJSON {
		return tui.NewJSONOutput(w).JSON(toConfigJSON(cfg))
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	tui.CheckNoColor()
	header := lipgloss.NewStyle().Bold(true).Foreground(tui.ColorPrimary)
	styles := tui.NewOutputStyles()

	_, _ = fmt.Fprintln(w, header.Render("Resolved configuration"))
	_, _ = fmt.Fprintln(w, styles.Dim.Render("# source: "+cfg.SourcePath))
	_, err = w.Write(data)
	return err
}

func toConfigJSON(cfg *config.Config) configJSON {
	out := configJSON{
		Source:         cfg.SourcePath,
		Concurrent:     cfg.Concurrent,
		MaxConcurrency: cfg.MaxConcurrency,
		AbortOnError:   cfg.AbortOnError,
		ChunkSize:      cfg.ChunkSize,
		Invocation:     cfg.Invocation,
		Timeout:        cfg.Timeout.String(),
		Renderer:       cfg.Renderer,
		AutoStage:      cfg.AutoStage,
		Relative:       cfg.Relative,
		Linters:        make([]linterJSON, 0, len(cfg.Linters)),
	}
	for _, l := range cfg.Linters {
		out.Linters = append(out.Linters, linterJSON{Pattern: l.Pattern, Commands: l.Commands})
	}
	return out
}
