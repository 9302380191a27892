package finding

import (
	"sort"
	"strings"
)

// Severity is the canonical lowercase token used in serialized findings.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Rank orders severities: critical=5 .. info=1. Unknown values rank as info.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 5
	case SeverityHigh:
		return 4
	case SeverityMedium:
		return 3
	case SeverityLow:
		return 2
	default:
		return 1
	}
}

// ParseSeverity accepts any casing and falls back to info.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return SeverityCritical
	case "high":
		return SeverityHigh
	case "medium":
		return SeverityMedium
	case "low":
		return SeverityLow
	default:
		return SeverityInfo
	}
}

// Finding is one detected issue. Values are immutable once built;
// LineEnd == 0 means "no end line" and is omitted from JSON.
type Finding struct {
	Key         string         `json:"key,omitempty"` // run-local identity, set by scan
	RuleID      string         `json:"rule_id"`
	Message     string         `json:"message"`
	Severity    Severity       `json:"severity"`
	FilePath    string         `json:"file_path"`
	LineStart   int            `json:"line_start"`
	LineEnd     int            `json:"line_end,omitempty"`
	CodeSnippet string         `json:"code_snippet,omitempty"`
	Suggestion  string         `json:"suggestion,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Sort orders findings by (line_start, rule_id) in place. Analyzers emit in
// rule-declaration order; callers wanting a single line-ordered view sort
// explicitly with this.
func Sort(fs []Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].LineStart != fs[j].LineStart {
			return fs[i].LineStart < fs[j].LineStart
		}
		return fs[i].RuleID < fs[j].RuleID
	})
}
