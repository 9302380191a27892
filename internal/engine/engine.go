package engine

import (
	"fmt"
	"strings"

	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/textscan"
)

// Rule is one detection heuristic. Check is a pure function of its inputs:
// it never mutates shared state and never reads from disk. Findings come
// back in ascending line order.
type Rule struct {
	ID       string
	Summary  string
	Severity finding.Severity // default severity, for inventory endpoints
	Check    func(content, path string, lines []string) []finding.Finding
}

// Domain binds an applicability gate to an ordered rule list.
type Domain struct {
	Tag        string
	Indicators []string // case-sensitive substrings; any hit makes the domain applicable
	Rules      []Rule
}

// Analyzer runs one domain's rules. It is immutable after construction and
// keeps no per-call state, so concurrent Analyze calls are safe.
type Analyzer struct {
	domain Domain
}

// NewAnalyzer validates the domain up front: malformed rule sets are a
// construction-time defect, not something to discover mid-scan.
func NewAnalyzer(d Domain) (*Analyzer, error) {
	if strings.TrimSpace(d.Tag) == "" {
		return nil, fmt.Errorf("engine: domain tag is required")
	}
	seen := make(map[string]struct{}, len(d.Rules))
	for _, r := range d.Rules {
		if r.ID == "" {
			return nil, fmt.Errorf("engine: domain %q has a rule without an ID", d.Tag)
		}
		if r.Check == nil {
			return nil, fmt.Errorf("engine: rule %s has no Check", r.ID)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("engine: duplicate rule ID %s in domain %q", r.ID, d.Tag)
		}
		seen[r.ID] = struct{}{}
	}
	return &Analyzer{domain: d}, nil
}

func (a *Analyzer) Tag() string { return a.domain.Tag }

// Rules returns a copy of the rule list for inventory purposes.
func (a *Analyzer) Rules() []Rule {
	out := make([]Rule, len(a.domain.Rules))
	copy(out, a.domain.Rules)
	return out
}

// Applicable reports whether content contains at least one domain indicator.
// A false negative silently skips analysis; a false positive only costs an
// extra scan and never emits wrong findings.
func (a *Analyzer) Applicable(content string) bool {
	for _, ind := range a.domain.Indicators {
		if strings.Contains(content, ind) {
			return true
		}
	}
	return false
}

// Analyze runs every rule in declaration order against the same
// (content, path, lines) triple and returns the accumulated findings.
// The accumulator is call-local; repeated calls with identical input yield
// identical, order-stable output.
func (a *Analyzer) Analyze(content, path string) []finding.Finding {
	if !a.Applicable(content) {
		return nil
	}
	lines := textscan.Lines(content)
	var acc []finding.Finding
	for _, r := range a.domain.Rules {
		acc = append(acc, r.Check(content, path, lines)...)
	}
	if acc == nil {
		return nil
	}
	out := make([]finding.Finding, len(acc))
	copy(out, acc)
	return out
}
