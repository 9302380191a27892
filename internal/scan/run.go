package scan

import (
	"time"

	"github.com/codewithboateng/qlint/internal/finding"
)

const Version = "1.0"

// Run is one repository-wide scan: the analyzed files plus every finding
// that survived filtering.
type Run struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	Source        string    `json:"source,omitempty"`
	EngineVersion string    `json:"engine_version,omitempty"`

	Context  Context           `json:"context"`
	Files    []FileResult      `json:"files"`
	Findings []finding.Finding `json:"findings,omitempty"`
}

// Context records the settings the run was produced under.
type Context struct {
	SeverityThreshold finding.Severity `json:"severity_threshold,omitempty"`
	DisabledRules     []string         `json:"disabled_rules,omitempty"`
	WaivedCount       int              `json:"waived_count,omitempty"`
}

// FileResult is a per-file summary row.
type FileResult struct {
	Path     string `json:"path"`
	Findings int    `json:"findings"`
}
