// Package lint validates Agent Skill directories against the skill naming and
// frontmatter schema standard: required name/description fields, naming rules,
// length limits, and resolvable reference files. Discovery is lenient and
// skips malformed skills; lint is the strict counterpart that reports them.
package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/agentskills/skillsref/pkg/skills"
)

const (
	// MaxNameLength is the maximum length of a skill name
	MaxNameLength = 64
	// MaxDescriptionLength is the maximum length of a skill description
	MaxDescriptionLength = 1024
	// MaxCompatibilityLength is the maximum length of the compatibility field
	MaxCompatibilityLength = 500
	// MaxBodyLines is the recommended maximum SKILL.md body size. Bodies over
	// this are flagged as warnings since agents load the whole file into context.
	MaxBodyLines = 500
)

// Linter validates skill directories
type Linter struct{}

// New creates a Linter
func New() *Linter {
	return &Linter{}
}

// LintDir validates every skill directory beneath root. If root itself
// contains a SKILL.md it is treated as a single skill directory.
func (l *Linter) LintDir(root string) (*Report, error) {
	report := NewReport()

	if _, err := os.Stat(filepath.Join(root, skills.SkillFileName)); err == nil {
		if name := l.lintSkill(report, root); name != "" {
			report.recordName(name, root)
		}
		return report, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read skills directory %s", root)
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dirs = append(dirs, filepath.Join(root, entry.Name()))
	}
	sort.Strings(dirs)

	for _, dir := range dirs {
		if name := l.lintSkill(report, dir); name != "" {
			report.recordName(name, dir)
		}
	}

	return report, nil
}

// lintSkill validates a single skill directory and returns the declared skill
// name, or "" when the frontmatter is unusable.
func (l *Linter) lintSkill(report *Report, dir string) string {
	report.Skills++

	skillPath := filepath.Join(dir, skills.SkillFileName)
	content, err := os.ReadFile(skillPath)
	if err != nil {
		report.add(RuleFrontmatterPresent, SeverityError, dir, "SKILL.md not found")
		return ""
	}

	skill, raw, err := skills.Parse(content)
	if err != nil {
		switch {
		case errors.Is(err, skills.ErrMissingFrontmatter):
			report.add(RuleFrontmatterPresent, SeverityError, skillPath, "SKILL.md must start with a YAML frontmatter block")
		case errors.Is(err, skills.ErrMissingName):
			report.add(RuleNameRequired, SeverityError, skillPath, "frontmatter is missing the required 'name' field")
		case errors.Is(err, skills.ErrMissingDescription):
			report.add(RuleDescriptionRequired, SeverityError, skillPath, "frontmatter is missing the required 'description' field")
		default:
			report.add(RuleFrontmatterPresent, SeverityError, skillPath, err.Error())
		}
		return ""
	}

	l.checkName(report, skillPath, skill.Name, filepath.Base(dir))
	l.checkLengths(report, skillPath, skill)
	l.checkUnknownFields(report, skillPath, raw)
	l.checkReferences(report, dir, skill.Content)
	l.checkBodyLength(report, skillPath, skill.Content)

	return skill.Name
}

func (l *Linter) checkName(report *Report, path, name, dirName string) {
	if len(name) > MaxNameLength {
		report.add(RuleNameFormat, SeverityError, path,
			fmt.Sprintf("name exceeds %d characters", MaxNameLength))
	} else if !skills.NamePattern.MatchString(name) {
		report.add(RuleNameFormat, SeverityError, path,
			fmt.Sprintf("name '%s' must be lowercase alphanumeric words separated by hyphens", name))
	}

	if name != dirName {
		report.add(RuleNameMatchesDir, SeverityError, path,
			fmt.Sprintf("name '%s' does not match directory name '%s'", name, dirName))
	}
}

func (l *Linter) checkLengths(report *Report, path string, skill *skills.Skill) {
	if len(skill.Description) > MaxDescriptionLength {
		report.add(RuleDescriptionLength, SeverityError, path,
			fmt.Sprintf("description exceeds %d characters", MaxDescriptionLength))
	}
	if len(skill.Compatibility) > MaxCompatibilityLength {
		report.add(RuleCompatibilityLength, SeverityError, path,
			fmt.Sprintf("compatibility exceeds %d characters", MaxCompatibilityLength))
	}
}

func (l *Linter) checkUnknownFields(report *Report, path string, raw map[string]interface{}) {
	var unknown []string
	for field := range raw {
		if !skills.KnownFields[field] {
			unknown = append(unknown, field)
		}
	}
	sort.Strings(unknown)

	for _, field := range unknown {
		report.add(RuleUnknownField, SeverityWarning, path,
			fmt.Sprintf("unknown frontmatter field '%s'", field))
	}
}

func (l *Linter) checkBodyLength(report *Report, path, body string) {
	lines := 1
	for _, c := range body {
		if c == '\n' {
			lines++
		}
	}
	if lines > MaxBodyLines {
		report.add(RuleBodyLength, SeverityWarning, path,
			fmt.Sprintf("body is %d lines, consider moving detail into references/ (recommended maximum %d)", lines, MaxBodyLines))
	}
}
