package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentskills/skillsref/pkg/logger"
	"github.com/agentskills/skillsref/pkg/presenter"
)

// Exit codes. Validation failures exit 1 so scripts can tell a broken corpus
// apart from a mistyped invocation.
const (
	exitValidationFailed = 1
	exitUsage            = 2
)

var rootCmd = &cobra.Command{
	Use:   "skillsref",
	Short: "Validate and manage Agent Skills",
	Long: `skillsref is a toolkit for Agent Skills: directories containing a SKILL.md
file whose YAML frontmatter declares a name and description, loaded by AI
coding agents as contextual guidance.

It validates skill frontmatter and reference files, lists and searches a
skill corpus, installs skills from git repositories, and scaffolds new skills.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := logger.SetLogLevel(viper.GetString("log-level")); err != nil {
			return err
		}
		logger.SetLogFormat(viper.GetString("log-format"))
		presenter.SetQuiet(viper.GetBool("quiet"))
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

// usageError marks an error caused by how the command was invoked rather
// than by the corpus being validated.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// isUsageError reports whether err came from command parsing: our own
// usageError sentinel, a wrapped flag-parse error, or one of cobra's
// unknown-command and argument-count errors.
func isUsageError(err error) bool {
	var uerr usageError
	if errors.As(err, &uerr) {
		return true
	}
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "accepts ") ||
		strings.HasPrefix(msg, "requires ")
}

func init() {
	// Environment variables
	viper.SetEnvPrefix("SKILLSREF")
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName(".skillsref")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()

	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text or json)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-essential output")

	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))

	// The presenter is the single error channel
	rootCmd.SilenceErrors = true
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		presenter.Error(err, "")
		if isUsageError(err) {
			os.Exit(exitUsage)
		}
		os.Exit(exitValidationFailed)
	}
}
