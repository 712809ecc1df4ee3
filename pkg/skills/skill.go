// Package skills provides loading and discovery for Agent Skills: directories
// containing a SKILL.md file whose YAML frontmatter declares the skill's name
// and description, with the Markdown body carrying the instructions an agent
// runtime loads into context.
package skills

import "regexp"

// NamePattern is the required shape of a skill name: lowercase alphanumeric
// words separated by single hyphens.
var NamePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Skill represents a loaded skill with its metadata and body content
type Skill struct {
	Name          string            // Unique name from frontmatter, must match the directory name
	Description   string            // Description used by the agent to decide when to load the skill
	License       string            // Optional SPDX license identifier
	Compatibility string            // Optional free-form agent/environment compatibility note
	AllowedTools  string            // Optional comma-separated tool allowlist
	Metadata      map[string]string // Optional arbitrary string metadata
	Directory     string            // Full path to the skill directory
	Content       string            // SKILL.md body with the frontmatter stripped
}

// Frontmatter mirrors the YAML frontmatter block of a SKILL.md file
type Frontmatter struct {
	Name          string            `yaml:"name" json:"name" jsonschema:"required,maxLength=64,pattern=^[a-z0-9]+(-[a-z0-9]+)*$"`
	Description   string            `yaml:"description" json:"description" jsonschema:"required,maxLength=1024"`
	License       string            `yaml:"license,omitempty" json:"license,omitempty"`
	Compatibility string            `yaml:"compatibility,omitempty" json:"compatibility,omitempty" jsonschema:"maxLength=500"`
	AllowedTools  string            `yaml:"allowed-tools,omitempty" json:"allowed-tools,omitempty"`
	Metadata      map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// KnownFields lists the frontmatter fields the schema defines. Anything else
// in a SKILL.md frontmatter block is flagged by lint as an unknown field.
var KnownFields = map[string]bool{
	"name":          true,
	"description":   true,
	"license":       true,
	"compatibility": true,
	"allowed-tools": true,
	"metadata":      true,
}
