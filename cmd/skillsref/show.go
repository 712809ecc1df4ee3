package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/agentskills/skillsref/pkg/skills"
)

var showCmd = &cobra.Command{
	Use:   "show <skill-name>",
	Short: "Display a skill",
	Long: `Display a skill's instructions rendered for the terminal.

Examples:
  skillsref show workers            # Rendered markdown body
  skillsref show workers --raw      # Raw SKILL.md bytes
  skillsref show workers --meta     # Frontmatter as YAML`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		meta, _ := cmd.Flags().GetBool("meta")
		dirs, _ := cmd.Flags().GetStringSlice("dir")

		discovered, err := discoverSkills(dirs)
		if err != nil {
			return err
		}

		skill, exists := discovered[args[0]]
		if !exists {
			return errors.Errorf("skill '%s' not found", args[0])
		}

		switch {
		case raw:
			content, err := os.ReadFile(filepath.Join(skill.Directory, skills.SkillFileName))
			if err != nil {
				return errors.Wrap(err, "failed to read skill file")
			}
			fmt.Print(string(content))

		case meta:
			fm := skills.Frontmatter{
				Name:          skill.Name,
				Description:   skill.Description,
				License:       skill.License,
				Compatibility: skill.Compatibility,
				AllowedTools:  skill.AllowedTools,
				Metadata:      skill.Metadata,
			}
			out, err := yaml.Marshal(fm)
			if err != nil {
				return errors.Wrap(err, "failed to marshal frontmatter")
			}
			fmt.Print(string(out))

		default:
			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return errors.Wrap(err, "failed to create markdown renderer")
			}

			rendered, err := renderer.Render(skill.Content)
			if err != nil {
				return errors.Wrap(err, "failed to render markdown")
			}
			fmt.Print(rendered)
		}

		return nil
	},
}

func init() {
	showCmd.Flags().Bool("raw", false, "Print the raw SKILL.md content")
	showCmd.Flags().Bool("meta", false, "Print the frontmatter as YAML")
	showCmd.Flags().StringSlice("dir", nil, "Skill directories to search instead of the defaults")

	rootCmd.AddCommand(showCmd)
}
