package installer

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/agentskills/skillsref/pkg/skills"
)

// Remover removes installed skills. It only ever touches install roots, never
// a repository's own skills/ corpus.
type Remover struct {
	targetDir string
}

// NewRemover creates a skill remover
func NewRemover(global bool) (*Remover, error) {
	r := &Remover{}

	if global {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get user home directory")
		}
		r.targetDir = filepath.Join(homeDir, skillsrefDir, "skills")
	} else {
		r.targetDir = filepath.Join(skillsrefDir, "skills")
	}

	return r, nil
}

// NewRemoverWithTargetDir creates a remover for a specific directory (tests)
func NewRemoverWithTargetDir(dir string) *Remover {
	return &Remover{targetDir: dir}
}

// Remove deletes an installed skill by name
func (r *Remover) Remove(name string) error {
	skillDir := filepath.Join(r.targetDir, name)

	if _, err := os.Stat(filepath.Join(skillDir, skills.SkillFileName)); os.IsNotExist(err) {
		return errors.Errorf("skill '%s' not found in %s", name, r.targetDir)
	}

	if err := os.RemoveAll(skillDir); err != nil {
		return errors.Wrapf(err, "failed to remove skill '%s'", name)
	}

	return nil
}
