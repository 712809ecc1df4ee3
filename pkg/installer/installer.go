// Package installer installs skills from git repositories into a local or
// user-global skills directory. Repositories are cloned shallowly to a
// temporary directory and every directory containing a SKILL.md is copied in.
package installer

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/pkg/errors"

	"github.com/agentskills/skillsref/pkg/logger"
	"github.com/agentskills/skillsref/pkg/skills"
)

const skillsrefDir = ".skillsref"

// ValidateRepoName validates a repository reference. Accepted forms are
// "owner/repo" (resolved against github.com) or a full clone URL.
func ValidateRepoName(repo string) error {
	if repo == "" {
		return errors.New("repository name cannot be empty")
	}
	if strings.Contains(repo, "://") {
		return nil
	}
	parts := strings.SplitN(repo, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return errors.Errorf("invalid repository format %q: expected 'owner/repo' or a clone URL", repo)
	}
	return nil
}

// ParseRepoRef splits "repo@ref" into its repository and ref parts
func ParseRepoRef(arg string) (repo, ref string) {
	if idx := strings.LastIndex(arg, "@"); idx != -1 {
		return arg[:idx], arg[idx+1:]
	}
	return arg, ""
}

func cloneURL(repo string) string {
	if strings.Contains(repo, "://") {
		return repo
	}
	return "https://github.com/" + repo + ".git"
}

// Installer installs skills from git repositories
type Installer struct {
	global    bool
	force     bool
	dir       string // optional subdirectory within the repository
	targetDir string
}

// Option configures an Installer
type Option func(*Installer)

// WithGlobal installs skills to the user-global directory
func WithGlobal(global bool) Option {
	return func(i *Installer) {
		i.global = global
	}
}

// WithForce overwrites existing skills
func WithForce(force bool) Option {
	return func(i *Installer) {
		i.force = force
	}
}

// WithDir restricts installation to a subdirectory of the repository
func WithDir(dir string) Option {
	return func(i *Installer) {
		i.dir = dir
	}
}

// WithTargetDir overrides the install destination (used in tests)
func WithTargetDir(dir string) Option {
	return func(i *Installer) {
		i.targetDir = dir
	}
}

// NewInstaller creates a skill installer
func NewInstaller(opts ...Option) (*Installer, error) {
	i := &Installer{}

	for _, opt := range opts {
		opt(i)
	}

	if i.targetDir == "" {
		if i.global {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, errors.Wrap(err, "failed to get user home directory")
			}
			i.targetDir = filepath.Join(homeDir, skillsrefDir, "skills")
		} else {
			i.targetDir = filepath.Join(skillsrefDir, "skills")
		}
	}

	return i, nil
}

// TargetDir returns the install destination
func (i *Installer) TargetDir() string {
	return i.targetDir
}

// InstallResult describes the outcome of an install run
type InstallResult struct {
	Installed []string
	Skipped   []string
}

// Install clones the repository and copies its skill directories into the
// target directory. Existing skills are skipped unless force is set.
func (i *Installer) Install(ctx context.Context, repo, ref string) (*InstallResult, error) {
	if err := ValidateRepoName(repo); err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "skillsref-install-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temporary directory")
	}
	defer os.RemoveAll(tmpDir)

	if err := i.clone(ctx, tmpDir, repo, ref); err != nil {
		return nil, err
	}

	searchRoot := tmpDir
	if i.dir != "" {
		searchRoot = filepath.Join(tmpDir, i.dir)
		if _, err := os.Stat(searchRoot); err != nil {
			return nil, errors.Errorf("directory %q not found in repository", i.dir)
		}
	}

	skillDirs, err := findSkillDirs(searchRoot)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find skills in repository")
	}
	if len(skillDirs) == 0 {
		return nil, errors.New("no skills found in repository")
	}

	return i.copySkills(ctx, skillDirs)
}

// clone performs a shallow clone, trying the ref as a branch first and
// falling back to a tag.
func (i *Installer) clone(ctx context.Context, dest, repo, ref string) error {
	url := cloneURL(repo)

	opts := &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
	}

	if ref == "" {
		_, err := git.PlainCloneContext(ctx, dest, false, opts)
		return errors.Wrapf(err, "failed to clone %s", url)
	}

	opts.ReferenceName = plumbing.NewBranchReferenceName(ref)
	if _, err := git.PlainCloneContext(ctx, dest, false, opts); err == nil {
		return nil
	}

	if err := os.RemoveAll(dest); err != nil {
		return errors.Wrap(err, "failed to reset clone directory")
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return errors.Wrap(err, "failed to recreate clone directory")
	}

	opts.ReferenceName = plumbing.NewTagReferenceName(ref)
	_, err := git.PlainCloneContext(ctx, dest, false, opts)
	return errors.Wrapf(err, "failed to clone %s at ref %s", url, ref)
}

func (i *Installer) copySkills(ctx context.Context, skillDirs []string) (*InstallResult, error) {
	if err := os.MkdirAll(i.targetDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create skills directory")
	}

	result := &InstallResult{}
	log := logger.G(ctx)

	for _, dir := range skillDirs {
		skillName := filepath.Base(dir)

		if _, err := skills.Load(filepath.Join(dir, skills.SkillFileName)); err != nil {
			log.WithField("skill", skillName).WithError(err).Warn("skipping skill with invalid SKILL.md")
			result.Skipped = append(result.Skipped, skillName)
			continue
		}

		destDir := filepath.Join(i.targetDir, skillName)
		if _, err := os.Stat(destDir); err == nil {
			if !i.force {
				log.WithField("skill", skillName).Debug("skill already installed")
				result.Skipped = append(result.Skipped, skillName)
				continue
			}
			if err := os.RemoveAll(destDir); err != nil {
				return nil, errors.Wrapf(err, "failed to replace skill '%s'", skillName)
			}
		}

		if err := copyDir(dir, destDir); err != nil {
			return nil, errors.Wrapf(err, "failed to install skill '%s'", skillName)
		}
		result.Installed = append(result.Installed, skillName)
	}

	return result, nil
}

// findSkillDirs walks root collecting directories that contain a SKILL.md
func findSkillDirs(root string) ([]string, error) {
	var skillDirs []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() && (info.Name() == ".git" || info.Name() == "node_modules") {
			return filepath.SkipDir
		}

		if !info.IsDir() && info.Name() == skills.SkillFileName {
			skillDirs = append(skillDirs, filepath.Dir(path))
		}

		return nil
	})

	return skillDirs, err
}

func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		destPath := filepath.Join(dst, relPath)

		if info.IsDir() {
			return os.MkdirAll(destPath, info.Mode())
		}

		return copyFile(path, destPath)
	})
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
