package lint

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const referencesSubdir = "references"

// checkReferences resolves every relative link and image in the skill body
// against the skill directory, and flags files under references/ that the
// body never links to.
func (l *Linter) checkReferences(report *Report, dir, body string) {
	linked := make(map[string]bool)

	for _, dest := range extractLinkTargets([]byte(body)) {
		if isExternalTarget(dest) {
			continue
		}

		target := strings.SplitN(dest, "#", 2)[0]
		if target == "" {
			continue
		}

		resolved := filepath.Join(dir, filepath.FromSlash(target))

		rel, err := filepath.Rel(dir, resolved)
		if err != nil || strings.HasPrefix(rel, "..") {
			report.add(RuleBrokenReference, SeverityError, filepath.Join(dir, "SKILL.md"),
				fmt.Sprintf("reference '%s' escapes the skill directory", target))
			continue
		}

		if _, err := os.Stat(resolved); err != nil {
			report.add(RuleBrokenReference, SeverityError, filepath.Join(dir, "SKILL.md"),
				fmt.Sprintf("reference '%s' does not exist", target))
			continue
		}

		linked[filepath.ToSlash(rel)] = true
	}

	l.checkOrphans(report, dir, linked)
}

// checkOrphans reports files under references/ that no link points at
func (l *Linter) checkOrphans(report *Report, dir string, linked map[string]bool) {
	refsDir := filepath.Join(dir, referencesSubdir)
	entries, err := os.ReadDir(refsDir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		rel := referencesSubdir + "/" + entry.Name()
		if !linked[rel] {
			report.add(RuleOrphanReference, SeverityWarning, filepath.Join(refsDir, entry.Name()),
				"file is never linked from SKILL.md")
		}
	}
}

// extractLinkTargets parses markdown and returns the destination of every
// link and image node.
func extractLinkTargets(source []byte) []string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var targets []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			targets = append(targets, string(node.Destination))
		case *ast.Image:
			targets = append(targets, string(node.Destination))
		}
		return ast.WalkContinue, nil
	})

	return targets
}

// isExternalTarget reports whether a link destination points outside the
// local filesystem: absolute URLs, mailto links, anchors, absolute paths.
func isExternalTarget(dest string) bool {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "/") {
		return true
	}
	if u, err := url.Parse(dest); err == nil && u.Scheme != "" {
		return true
	}
	return false
}
