package skills

import (
	"bytes"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// SkillFileName is the canonical file name each skill directory must contain.
const SkillFileName = "SKILL.md"

var (
	// ErrMissingFrontmatter indicates a SKILL.md without a YAML frontmatter block
	ErrMissingFrontmatter = errors.New("missing frontmatter")
	// ErrMissingName indicates a frontmatter block without the required name field
	ErrMissingName = errors.New("skill name is required in frontmatter")
	// ErrMissingDescription indicates a frontmatter block without the required description field
	ErrMissingDescription = errors.New("skill description is required in frontmatter")
)

// Load reads and parses a SKILL.md file from path
func Load(path string) (*Skill, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}

	skill, _, err := Parse(content)
	return skill, err
}

// Parse parses SKILL.md content into a Skill. It also returns the raw
// frontmatter map so callers can inspect fields outside the schema.
func Parse(content []byte) (*Skill, map[string]interface{}, error) {
	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, nil, errors.Wrap(err, "failed to parse markdown")
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return nil, nil, ErrMissingFrontmatter
	}

	name, _ := metaData["name"].(string)
	description, _ := metaData["description"].(string)

	if name == "" {
		return nil, metaData, ErrMissingName
	}
	if description == "" {
		return nil, metaData, ErrMissingDescription
	}

	skill := &Skill{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Content:     extractBody(string(content)),
	}

	if v, ok := metaData["license"].(string); ok {
		skill.License = v
	}
	if v, ok := metaData["compatibility"].(string); ok {
		skill.Compatibility = v
	}
	if v, ok := metaData["allowed-tools"].(string); ok {
		skill.AllowedTools = v
	}
	if v, ok := metaData["metadata"].(map[interface{}]interface{}); ok {
		skill.Metadata = toStringMap(v)
	}

	return skill, metaData, nil
}

// extractBody removes the YAML frontmatter block and returns the body
func extractBody(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	frontmatterEnd := -1

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[frontmatterEnd+1:], "\n"), "\n")
}

// toStringMap keeps only string-valued entries of a decoded YAML mapping.
// goldmark-meta decodes nested mappings with interface{} keys.
func toStringMap(m map[interface{}]interface{}) map[string]string {
	result := make(map[string]string, len(m))
	for k, v := range m {
		key, ok := k.(string)
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			result[key] = s
		}
	}
	return result
}
