package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/agentskills/skillsref/pkg/installer"
	"github.com/agentskills/skillsref/pkg/presenter"
)

var addCmd = &cobra.Command{
	Use:   "add <repo>[@ref]...",
	Short: "Install skills from git repositories",
	Long: `Install skills from one or more git repositories. Every directory in the
repository containing a SKILL.md is installed as a skill.

Repositories are given as 'owner/repo' (resolved against github.com) or as a
full clone URL, optionally pinned to a branch or tag with '@ref'.

Examples:
  skillsref add cloudflare/skills              # Install all skills from repo
  skillsref add cloudflare/skills@v1.0.0       # Install from specific tag
  skillsref add cloudflare/skills --dir skills/workers
  skillsref add cloudflare/skills -g           # Install to ~/.skillsref/skills
  skillsref add cloudflare/skills --force      # Overwrite existing skills`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")
		force, _ := cmd.Flags().GetBool("force")
		dir, _ := cmd.Flags().GetString("dir")

		inst, err := installer.NewInstaller(
			installer.WithGlobal(global),
			installer.WithForce(force),
			installer.WithDir(dir),
		)
		if err != nil {
			return err
		}

		for _, arg := range args {
			repo, ref := installer.ParseRepoRef(arg)
			presenter.Info(fmt.Sprintf("Installing skills from %s...", repo))

			result, err := inst.Install(cmd.Context(), repo, ref)
			if err != nil {
				return errors.Wrapf(err, "failed to install from %s", repo)
			}

			if len(result.Installed) > 0 {
				presenter.Success(fmt.Sprintf("Installed skills: %s", strings.Join(result.Installed, ", ")))
			}
			if len(result.Skipped) > 0 {
				presenter.Warning(fmt.Sprintf("Skipped skills: %s", strings.Join(result.Skipped, ", ")))
			}
		}

		presenter.Info(fmt.Sprintf("Skills installed to %s", inst.TargetDir()))
		return nil
	},
}

func init() {
	addCmd.Flags().BoolP("global", "g", false, "Install to the global ~/.skillsref/skills directory")
	addCmd.Flags().Bool("force", false, "Overwrite existing skills")
	addCmd.Flags().StringP("dir", "d", "", "Only install skills beneath this repository subdirectory")

	rootCmd.AddCommand(addCmd)
}
