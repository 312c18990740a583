package snirf

import (
	"fmt"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Issue is a single validation finding: one coded diagnostic at one location
// within the document tree.
type Issue struct {
	Location string   `json:"location" yaml:"location"`
	Code     Code     `json:"code" yaml:"code"`
	Severity Severity `json:"severity" yaml:"severity"`
}

func (is Issue) String() string {
	return fmt.Sprintf("%-7s %s %s", is.Severity, is.Location, is.Code)
}

// ValidationResult accumulates findings from one full validation pass.
//
// At most one issue is recorded per location; the first writer wins. Rules
// for a specific entity run before the shared structural pass, so an
// entity rule's verdict supersedes the structural one for the same
// location. Appending is otherwise order-preserving, which keeps output
// deterministic across runs on identical input.
type ValidationResult struct {
	issues []Issue
	byLoc  map[string]struct{}
}

// NewValidationResult returns an empty result.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{byLoc: map[string]struct{}{}}
}

// add records code at location unless the location already has a verdict.
func (r *ValidationResult) add(location string, code Code) {
	if r.byLoc == nil {
		r.byLoc = map[string]struct{}{}
	}
	if _, dup := r.byLoc[location]; dup {
		return
	}
	r.byLoc[location] = struct{}{}
	r.issues = append(r.issues, Issue{Location: location, Code: code, Severity: SeverityOf(code)})
}

// Valid reports whether the document passed: no fatal finding was recorded.
func (r *ValidationResult) Valid() bool {
	for _, is := range r.issues {
		if is.Severity == SeverityFatal {
			return false
		}
	}
	return true
}

// Issues returns every finding in accumulation order.
func (r *ValidationResult) Issues() []Issue {
	return append([]Issue(nil), r.issues...)
}

// IssuesAtLeast returns the findings whose severity is min or higher,
// preserving accumulation order.
func (r *ValidationResult) IssuesAtLeast(min Severity) []Issue {
	var out []Issue
	for _, is := range r.issues {
		if is.Severity >= min {
			out = append(out, is)
		}
	}
	return out
}

// At returns the finding recorded at location, if any.
func (r *ValidationResult) At(location string) (Issue, bool) {
	for _, is := range r.issues {
		if is.Location == location {
			return is, true
		}
	}
	return Issue{}, false
}

// Count returns the number of findings with exactly severity sev.
func (r *ValidationResult) Count(sev Severity) int {
	n := 0
	for _, is := range r.issues {
		if is.Severity == sev {
			n++
		}
	}
	return n
}

func (r *ValidationResult) String() string {
	b := &strings.Builder{}
	for _, is := range r.issues {
		fmt.Fprintln(b, is)
	}
	if r.Valid() {
		fmt.Fprint(b, "valid")
	} else {
		fmt.Fprint(b, "invalid")
	}
	return b.String()
}

// report is the serialized shape shared by JSON and YAML output.
type report struct {
	Valid  bool    `json:"valid" yaml:"valid"`
	Issues []Issue `json:"issues" yaml:"issues"`
}

// MarshalJSON renders the ordered issue list plus the pass/fail verdict.
func (r *ValidationResult) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(report{Valid: r.Valid(), Issues: r.Issues()})
}

// YAML renders the ordered issue list plus the pass/fail verdict as YAML.
func (r *ValidationResult) YAML() ([]byte, error) {
	return yaml.Marshal(report{Valid: r.Valid(), Issues: r.Issues()})
}
