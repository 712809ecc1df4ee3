package lint

import (
	"encoding/json"
	"fmt"
	"io"

	multierror "github.com/hashicorp/go-multierror"
)

// Severity classifies a finding
type Severity string

const (
	// SeverityError marks a violation of the skill schema standard
	SeverityError Severity = "error"
	// SeverityWarning marks a conformance concern that does not fail validation
	// unless strict mode is enabled
	SeverityWarning Severity = "warning"
)

// Rule identifiers, stable for machine consumption of JSON reports
const (
	RuleFrontmatterPresent  = "frontmatter-present"
	RuleNameRequired        = "name-required"
	RuleDescriptionRequired = "description-required"
	RuleNameFormat          = "name-format"
	RuleNameMatchesDir      = "name-matches-dir"
	RuleDescriptionLength   = "description-length"
	RuleCompatibilityLength = "compatibility-length"
	RuleUnknownField        = "unknown-field"
	RuleBrokenReference     = "broken-reference"
	RuleOrphanReference     = "orphan-reference"
	RuleDuplicateName       = "duplicate-name"
	RuleBodyLength          = "body-length"
)

// Finding is a single rule violation
type Finding struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	Message  string   `json:"message"`
}

// Report aggregates findings across a lint run
type Report struct {
	Skills   int       `json:"skills"`
	Findings []Finding `json:"findings"`

	declared map[string]string
}

// NewReport creates an empty report
func NewReport() *Report {
	return &Report{}
}

func (r *Report) add(rule string, severity Severity, path, message string) {
	r.Findings = append(r.Findings, Finding{
		Rule:     rule,
		Severity: severity,
		Path:     path,
		Message:  message,
	})
}

// recordName registers a declared skill name and flags it when another
// directory in the report already declared it.
func (r *Report) recordName(name, dir string) {
	if r.declared == nil {
		r.declared = make(map[string]string)
	}
	if prev, dup := r.declared[name]; dup {
		r.add(RuleDuplicateName, SeverityError, dir,
			fmt.Sprintf("skill name '%s' already declared by %s", name, prev))
		return
	}
	r.declared[name] = dir
}

// Merge appends another report's findings and skill count. Names declared in
// the other report are re-recorded so duplicates spanning separately linted
// roots are still caught.
func (r *Report) Merge(other *Report) {
	r.Skills += other.Skills
	r.Findings = append(r.Findings, other.Findings...)
	for name, dir := range other.declared {
		r.recordName(name, dir)
	}
}

// Errors returns the findings with error severity
func (r *Report) Errors() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// Warnings returns the findings with warning severity
func (r *Report) Warnings() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			out = append(out, f)
		}
	}
	return out
}

// OK reports whether the run passed. Strict mode promotes warnings to failures.
func (r *Report) OK(strict bool) bool {
	if strict {
		return len(r.Findings) == 0
	}
	return len(r.Errors()) == 0
}

// Err folds all error findings into a single error, or nil when clean
func (r *Report) Err() error {
	var result *multierror.Error
	for _, f := range r.Errors() {
		result = multierror.Append(result, fmt.Errorf("%s: %s (%s)", f.Path, f.Message, f.Rule))
	}
	return result.ErrorOrNil()
}

// WriteText renders the report in a human-readable format
func (r *Report) WriteText(w io.Writer) {
	for _, f := range r.Findings {
		fmt.Fprintf(w, "%s: %s: %s [%s]\n", f.Severity, f.Path, f.Message, f.Rule)
	}
	fmt.Fprintf(w, "%d skill(s) checked, %d error(s), %d warning(s)\n",
		r.Skills, len(r.Errors()), len(r.Warnings()))
}

// WriteJSON renders the report as indented JSON
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
