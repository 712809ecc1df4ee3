package lint

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkillFile(t *testing.T, root, dir, content string) string {
	t.Helper()
	skillDir := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(skillDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte(content), 0o644))
	return skillDir
}

func findingRules(report *Report) []string {
	rules := make([]string, 0, len(report.Findings))
	for _, f := range report.Findings {
		rules = append(rules, f.Rule)
	}
	return rules
}

func TestLintDirCleanCorpus(t *testing.T) {
	tmpDir := t.TempDir()

	writeSkillFile(t, tmpDir, "workers", `---
name: workers
description: Build serverless functions on the edge
---

# Workers

Deploy with wrangler.
`)
	writeSkillFile(t, tmpDir, "queues", `---
name: queues
description: Guaranteed message delivery for Workers
---

# Queues

Producers and consumers.
`)

	report, err := New().LintDir(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Skills)
	assert.Empty(t, report.Findings)
	assert.True(t, report.OK(true))
	assert.NoError(t, report.Err())
}

func TestLintSingleSkillDir(t *testing.T) {
	tmpDir := t.TempDir()
	skillDir := writeSkillFile(t, tmpDir, "vectorize", `---
name: vectorize
description: Query the vector database from Workers
---

# Vectorize
`)

	report, err := New().LintDir(skillDir)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Skills)
	assert.Empty(t, report.Findings)
}

func TestLintFrontmatterRules(t *testing.T) {
	t.Run("missing frontmatter", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeSkillFile(t, tmpDir, "plain", "# No frontmatter here\n")

		report, err := New().LintDir(tmpDir)
		require.NoError(t, err)
		assert.Contains(t, findingRules(report), RuleFrontmatterPresent)
	})

	t.Run("missing SKILL.md", func(t *testing.T) {
		tmpDir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "empty"), 0o755))

		report, err := New().LintDir(tmpDir)
		require.NoError(t, err)
		assert.Contains(t, findingRules(report), RuleFrontmatterPresent)
	})

	t.Run("missing name", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeSkillFile(t, tmpDir, "anon", `---
description: No name declared
---

Body.
`)

		report, err := New().LintDir(tmpDir)
		require.NoError(t, err)
		assert.Contains(t, findingRules(report), RuleNameRequired)
	})

	t.Run("missing description", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeSkillFile(t, tmpDir, "terse", `---
name: terse
---

Body.
`)

		report, err := New().LintDir(tmpDir)
		require.NoError(t, err)
		assert.Contains(t, findingRules(report), RuleDescriptionRequired)
	})
}

func TestLintNameRules(t *testing.T) {
	t.Run("invalid characters", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeSkillFile(t, tmpDir, "Bad_Name", `---
name: Bad_Name
description: Uppercase and underscore are not allowed
---

Body.
`)

		report, err := New().LintDir(tmpDir)
		require.NoError(t, err)
		assert.Contains(t, findingRules(report), RuleNameFormat)
	})

	t.Run("name too long", func(t *testing.T) {
		tmpDir := t.TempDir()
		longName := strings.Repeat("a", MaxNameLength+1)
		writeSkillFile(t, tmpDir, longName, `---
name: `+longName+`
description: Name is too long
---

Body.
`)

		report, err := New().LintDir(tmpDir)
		require.NoError(t, err)
		assert.Contains(t, findingRules(report), RuleNameFormat)
	})

	t.Run("name does not match directory", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeSkillFile(t, tmpDir, "actual-dir", `---
name: declared-name
description: Name differs from directory
---

Body.
`)

		report, err := New().LintDir(tmpDir)
		require.NoError(t, err)
		assert.Contains(t, findingRules(report), RuleNameMatchesDir)
	})
}

func TestLintLengthRules(t *testing.T) {
	t.Run("description too long", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeSkillFile(t, tmpDir, "wordy", `---
name: wordy
description: `+strings.Repeat("x", MaxDescriptionLength+1)+`
---

Body.
`)

		report, err := New().LintDir(tmpDir)
		require.NoError(t, err)
		assert.Contains(t, findingRules(report), RuleDescriptionLength)
	})

	t.Run("compatibility too long", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeSkillFile(t, tmpDir, "compat", `---
name: compat
description: Has an oversized compatibility note
compatibility: `+strings.Repeat("y", MaxCompatibilityLength+1)+`
---

Body.
`)

		report, err := New().LintDir(tmpDir)
		require.NoError(t, err)
		assert.Contains(t, findingRules(report), RuleCompatibilityLength)
	})

	t.Run("body too long", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeSkillFile(t, tmpDir, "verbose", `---
name: verbose
description: Body exceeds the recommended line count
---

`+strings.Repeat("line\n", MaxBodyLines+1))

		report, err := New().LintDir(tmpDir)
		require.NoError(t, err)
		assert.Contains(t, findingRules(report), RuleBodyLength)
		assert.True(t, report.OK(false), "body length is a warning")
		assert.False(t, report.OK(true))
	})
}

func TestLintUnknownField(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkillFile(t, tmpDir, "extra", `---
name: extra
description: Carries an extra field
color: purple
---

Body.
`)

	report, err := New().LintDir(tmpDir)
	require.NoError(t, err)
	require.Contains(t, findingRules(report), RuleUnknownField)

	warnings := report.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "color")
}

func TestLintReferences(t *testing.T) {
	t.Run("broken reference", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeSkillFile(t, tmpDir, "docs", `---
name: docs
description: Links to a file that does not exist
---

See [the details](references/missing.md).
`)

		report, err := New().LintDir(tmpDir)
		require.NoError(t, err)
		assert.Contains(t, findingRules(report), RuleBrokenReference)
	})

	t.Run("reference escaping the skill directory", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeSkillFile(t, tmpDir, "sneaky", `---
name: sneaky
description: Links outside its own directory
---

See [elsewhere](../other/file.md).
`)

		report, err := New().LintDir(tmpDir)
		require.NoError(t, err)
		assert.Contains(t, findingRules(report), RuleBrokenReference)
	})

	t.Run("valid reference and orphan", func(t *testing.T) {
		tmpDir := t.TempDir()
		skillDir := writeSkillFile(t, tmpDir, "guide", `---
name: guide
description: Links one reference, leaves another orphaned
---

See [linked](references/linked.md).
`)
		refsDir := filepath.Join(skillDir, "references")
		require.NoError(t, os.MkdirAll(refsDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(refsDir, "linked.md"), []byte("# Linked\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(refsDir, "orphan.md"), []byte("# Orphan\n"), 0o644))

		report, err := New().LintDir(tmpDir)
		require.NoError(t, err)

		rules := findingRules(report)
		assert.NotContains(t, rules, RuleBrokenReference)
		require.Contains(t, rules, RuleOrphanReference)

		warnings := report.Warnings()
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0].Path, "orphan.md")
	})

	t.Run("external links are skipped", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeSkillFile(t, tmpDir, "external", `---
name: external
description: Only links to URLs and anchors
---

See [docs](https://developers.cloudflare.com/workers/), [anchor](#section),
and [mail](mailto:someone@example.com).
`)

		report, err := New().LintDir(tmpDir)
		require.NoError(t, err)
		assert.Empty(t, report.Findings)
	})
}

func TestLintDuplicateName(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkillFile(t, tmpDir, "first", `---
name: shared
description: First declaration
---

Body.
`)
	writeSkillFile(t, tmpDir, "second", `---
name: shared
description: Second declaration
---

Body.
`)

	report, err := New().LintDir(tmpDir)
	require.NoError(t, err)
	assert.Contains(t, findingRules(report), RuleDuplicateName)
}

func TestLintDuplicateNameAcrossMergedRoots(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	writeSkillFile(t, rootA, "shared", `---
name: shared
description: Declared in the first corpus
---

Body.
`)
	writeSkillFile(t, rootB, "shared", `---
name: shared
description: Declared in the second corpus
---

Body.
`)

	linter := New()
	merged := NewReport()
	for _, root := range []string{rootA, rootB} {
		report, err := linter.LintDir(root)
		require.NoError(t, err)
		assert.Empty(t, report.Findings)
		merged.Merge(report)
	}

	assert.Equal(t, 2, merged.Skills)
	assert.Contains(t, findingRules(merged), RuleDuplicateName)
	assert.False(t, merged.OK(false))
}

func TestReportErr(t *testing.T) {
	report := NewReport()
	assert.NoError(t, report.Err())

	report.add(RuleNameFormat, SeverityError, "a/SKILL.md", "bad name")
	report.add(RuleBodyLength, SeverityWarning, "a/SKILL.md", "long body")

	err := report.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad name")
	assert.NotContains(t, err.Error(), "long body")
}

func TestReportWriteJSON(t *testing.T) {
	report := NewReport()
	report.Skills = 1
	report.add(RuleBrokenReference, SeverityError, "a/SKILL.md", "reference 'x.md' does not exist")

	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 1, decoded.Skills)
	require.Len(t, decoded.Findings, 1)
	assert.Equal(t, RuleBrokenReference, decoded.Findings[0].Rule)
	assert.Equal(t, SeverityError, decoded.Findings[0].Severity)
}

func TestReportWriteText(t *testing.T) {
	report := NewReport()
	report.Skills = 2
	report.add(RuleNameFormat, SeverityError, "a/SKILL.md", "bad name")

	var buf bytes.Buffer
	report.WriteText(&buf)

	out := buf.String()
	assert.Contains(t, out, "error: a/SKILL.md: bad name [name-format]")
	assert.Contains(t, out, "2 skill(s) checked, 1 error(s), 0 warning(s)")
}
