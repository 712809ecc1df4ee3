package main

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/agentskills/skillsref/pkg/skills"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the SKILL.md frontmatter JSON Schema",
	Long: `Print the JSON Schema describing the SKILL.md frontmatter contract,
for use by editors and external validators.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		reflector := &jsonschema.Reflector{
			ExpandedStruct: true,
			DoNotReference: true,
		}

		schema := reflector.Reflect(&skills.Frontmatter{})

		out, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal schema")
		}

		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
