// Package scaffold creates new skill directories from an embedded SKILL.md
// template.
package scaffold

import (
	"bytes"
	_ "embed"
	"os"
	"path/filepath"
	"text/template"

	"github.com/pkg/errors"

	"github.com/agentskills/skillsref/pkg/skills"
)

//go:embed templates/SKILL.md.tmpl
var skillTemplate string

// Params holds the values rendered into the skill template
type Params struct {
	Name        string
	Description string
	// WithReferences also creates a references/ directory with a starter file
	WithReferences bool
}

// Create scaffolds a new skill directory beneath root and returns its path.
// Nothing is written when the name is invalid or the directory already exists.
func Create(root string, params Params) (string, error) {
	if !skills.NamePattern.MatchString(params.Name) {
		return "", errors.Errorf("invalid skill name %q: must be lowercase alphanumeric words separated by hyphens", params.Name)
	}
	if params.Description == "" {
		return "", errors.New("description is required")
	}

	skillDir := filepath.Join(root, params.Name)
	if _, err := os.Stat(skillDir); err == nil {
		return "", errors.Errorf("directory %s already exists", skillDir)
	}

	tmpl, err := template.New("skill").Parse(skillTemplate)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse skill template")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return "", errors.Wrap(err, "failed to render skill template")
	}

	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create skill directory")
	}

	if err := os.WriteFile(filepath.Join(skillDir, skills.SkillFileName), buf.Bytes(), 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write SKILL.md")
	}

	if params.WithReferences {
		refsDir := filepath.Join(skillDir, "references")
		if err := os.MkdirAll(refsDir, 0o755); err != nil {
			return "", errors.Wrap(err, "failed to create references directory")
		}
		starter := "# " + params.Name + " reference\n\nDetailed material linked from SKILL.md.\n"
		if err := os.WriteFile(filepath.Join(refsDir, "details.md"), []byte(starter), 0o644); err != nil {
			return "", errors.Wrap(err, "failed to write reference file")
		}
	}

	return skillDir, nil
}
