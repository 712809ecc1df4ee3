package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agentskills/skillsref/pkg/presenter"
	"github.com/agentskills/skillsref/pkg/skills"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available skills",
	Long: `List all available skills with their names, directories, and descriptions.

Skills are discovered from ./skills, ./.skillsref/skills, and
~/.skillsref/skills in that precedence order.

Examples:
  skillsref list
  skillsref list --filter 'workers*'
  skillsref list --dir ./my-skills`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		filter, _ := cmd.Flags().GetString("filter")
		dirs, _ := cmd.Flags().GetStringSlice("dir")

		discovered, err := discoverSkills(dirs)
		if err != nil {
			return err
		}

		filtered, err := skills.FilterByPattern(discovered, filter)
		if err != nil {
			return err
		}

		if len(filtered) == 0 {
			presenter.Info("No skills found")
			return nil
		}

		names := make([]string, 0, len(filtered))
		for name := range filtered {
			names = append(names, name)
		}
		sort.Strings(names)

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tDIRECTORY\tDESCRIPTION")
		fmt.Fprintln(tw, "----\t---------\t-----------")

		for _, name := range names {
			skill := filtered[name]
			fmt.Fprintf(tw, "%s\t%s\t%s\n", skill.Name, skill.Directory,
				truncateDescription(skill.Description, 60))
		}
		tw.Flush()

		return nil
	},
}

func init() {
	listCmd.Flags().String("filter", "", "Glob pattern to filter skill names")
	listCmd.Flags().StringSlice("dir", nil, "Skill directories to search instead of the defaults")

	rootCmd.AddCommand(listCmd)
}

// truncateDescription shortens a description to max display characters,
// counting runes so multi-byte text is never split mid-character.
func truncateDescription(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// discoverSkills discovers skills from the given directories, or from the
// default locations when none are given.
func discoverSkills(dirs []string) (map[string]*skills.Skill, error) {
	var opts []skills.Option
	if len(dirs) > 0 {
		opts = append(opts, skills.WithSkillDirs(dirs...))
	}

	discovery, err := skills.NewDiscovery(opts...)
	if err != nil {
		return nil, err
	}

	return discovery.DiscoverSkills()
}
