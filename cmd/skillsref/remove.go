package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/agentskills/skillsref/pkg/installer"
	"github.com/agentskills/skillsref/pkg/presenter"
)

var removeCmd = &cobra.Command{
	Use:   "remove <skill-name>...",
	Short: "Remove installed skills",
	Long: `Remove one or more installed skills by name. Only skills under the install
roots (./.skillsref/skills or ~/.skillsref/skills) can be removed; a
repository's own skills/ corpus is never touched.

Examples:
  skillsref remove workers
  skillsref remove workers queues -g`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")

		remover, err := installer.NewRemover(global)
		if err != nil {
			return err
		}

		var removed []string
		for _, name := range args {
			if err := remover.Remove(name); err != nil {
				return errors.Wrapf(err, "failed to remove %s", name)
			}
			removed = append(removed, name)
		}

		presenter.Success(fmt.Sprintf("Removed skills: %s", strings.Join(removed, ", ")))
		return nil
	},
}

func init() {
	removeCmd.Flags().BoolP("global", "g", false, "Remove from the global ~/.skillsref/skills directory")

	rootCmd.AddCommand(removeCmd)
}
