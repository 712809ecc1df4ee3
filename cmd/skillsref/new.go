package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentskills/skillsref/pkg/presenter"
	"github.com/agentskills/skillsref/pkg/scaffold"
)

var newCmd = &cobra.Command{
	Use:   "new <skill-name>",
	Short: "Scaffold a new skill directory",
	Long: `Create a new skill directory with a templated SKILL.md.

Examples:
  skillsref new my-skill --description "What the skill does"
  skillsref new my-skill -m "What the skill does" --references
  skillsref new my-skill -m "..." --dir ./skills`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		withRefs, _ := cmd.Flags().GetBool("references")
		dir, _ := cmd.Flags().GetString("dir")

		skillDir, err := scaffold.Create(dir, scaffold.Params{
			Name:           args[0],
			Description:    description,
			WithReferences: withRefs,
		})
		if err != nil {
			return err
		}

		presenter.Success(fmt.Sprintf("Created skill '%s' at %s", args[0], skillDir))
		return nil
	},
}

func init() {
	newCmd.Flags().StringP("description", "m", "", "Skill description for the frontmatter")
	newCmd.Flags().Bool("references", false, "Also create a references/ directory")
	newCmd.Flags().String("dir", "./skills", "Corpus directory to create the skill in")

	rootCmd.AddCommand(newCmd)
}
