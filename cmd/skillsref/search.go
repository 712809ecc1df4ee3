package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentskills/skillsref/pkg/presenter"
	"github.com/agentskills/skillsref/pkg/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search across skills",
	Long: `Search skill names, descriptions, and instructions.

The query supports the Bleve query string syntax: bare terms, quoted phrases,
field prefixes (name:workers), and +/- modifiers.

Examples:
  skillsref search "dead letter queue"
  skillsref search 'name:workers* kv'
  skillsref search vectorize --limit 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		dirs, _ := cmd.Flags().GetStringSlice("dir")

		discovered, err := discoverSkills(dirs)
		if err != nil {
			return err
		}

		index, err := search.NewIndex(discovered)
		if err != nil {
			return err
		}
		defer index.Close()

		results, err := index.Search(strings.Join(args, " "), limit)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			presenter.Info("No matching skills")
			return nil
		}

		for i, result := range results {
			fmt.Printf("%d. %s (score %.2f)\n   %s\n", i+1, result.Name, result.Score, result.Description)
			for _, fragment := range result.Fragments {
				fmt.Printf("   ...%s...\n", strings.TrimSpace(fragment))
			}
		}

		return nil
	},
}

func init() {
	searchCmd.Flags().IntP("limit", "n", 10, "Maximum number of results")
	searchCmd.Flags().StringSlice("dir", nil, "Skill directories to search instead of the defaults")

	rootCmd.AddCommand(searchCmd)
}
