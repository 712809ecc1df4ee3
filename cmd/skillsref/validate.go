package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agentskills/skillsref/pkg/lint"
	"github.com/agentskills/skillsref/pkg/presenter"
	"github.com/agentskills/skillsref/pkg/watcher"
)

type ValidateConfig struct {
	Strict bool
	Format string
	Watch  bool
}

func NewValidateConfig() *ValidateConfig {
	return &ValidateConfig{
		Strict: false,
		Format: "text",
		Watch:  false,
	}
}

var validateCmd = &cobra.Command{
	Use:   "validate [dir...]",
	Short: "Validate skill directories",
	Long: `Validate skill directories against the Agent Skills frontmatter standard.

Each skill directory must contain a SKILL.md starting with a YAML frontmatter
block declaring 'name' and 'description'. Names must be lowercase hyphenated
words matching the directory name, and every relative link in the body must
resolve to a file inside the skill directory.

With no arguments the ./skills corpus is validated.

Examples:
  skillsref validate                     # Validate ./skills
  skillsref validate ./skills ./extra    # Validate multiple corpora
  skillsref validate --strict            # Treat warnings as failures
  skillsref validate --format json       # Machine-readable report
  skillsref validate --watch             # Re-validate on file changes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := getValidateConfigFromFlags(cmd)

		roots := args
		if len(roots) == 0 {
			roots = []string{"./skills"}
		}

		if config.Format != "text" && config.Format != "json" {
			return usagef("unknown format %q: expected 'text' or 'json'", config.Format)
		}

		ok, err := runValidation(roots, config)
		if err != nil {
			return err
		}

		if config.Watch {
			return watchValidation(cmd.Context(), roots, config)
		}

		if !ok {
			os.Exit(exitValidationFailed)
		}
		return nil
	},
}

func init() {
	defaults := NewValidateConfig()
	validateCmd.Flags().Bool("strict", defaults.Strict, "Treat warnings as errors")
	validateCmd.Flags().String("format", defaults.Format, "Output format (text or json)")
	validateCmd.Flags().BoolP("watch", "w", defaults.Watch, "Re-validate when files change")
	validateCmd.SilenceUsage = true

	rootCmd.AddCommand(validateCmd)
}

func getValidateConfigFromFlags(cmd *cobra.Command) *ValidateConfig {
	config := NewValidateConfig()
	if strict, err := cmd.Flags().GetBool("strict"); err == nil {
		config.Strict = strict
	}
	if format, err := cmd.Flags().GetString("format"); err == nil {
		config.Format = format
	}
	if watch, err := cmd.Flags().GetBool("watch"); err == nil {
		config.Watch = watch
	}
	return config
}

// runValidation lints every root and renders the merged report. It returns
// whether the corpus passed.
func runValidation(roots []string, config *ValidateConfig) (bool, error) {
	linter := lint.New()
	report := lint.NewReport()

	for _, root := range roots {
		r, err := linter.LintDir(root)
		if err != nil {
			return false, err
		}
		report.Merge(r)
	}

	if config.Format == "json" {
		if err := report.WriteJSON(os.Stdout); err != nil {
			return false, err
		}
		return report.OK(config.Strict), nil
	}

	if len(report.Findings) > 0 {
		report.WriteText(os.Stdout)
	} else {
		presenter.Success(fmt.Sprintf("%d skill(s) checked, no issues found", report.Skills))
	}

	return report.OK(config.Strict), nil
}

// watchValidation blocks re-running validation whenever the watched roots
// change, until interrupted.
func watchValidation(ctx context.Context, roots []string, config *ValidateConfig) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	presenter.Info("Watching for changes, press Ctrl-C to stop...")

	err := watcher.Watch(ctx, roots, watcher.DefaultDebounce, func() {
		presenter.Separator()
		if _, err := runValidation(roots, config); err != nil {
			presenter.Error(err, "Validation failed")
		}
	})
	if err == context.Canceled {
		return nil
	}
	return err
}
