package scan

import (
	"strings"

	"github.com/codewithboateng/qlint/internal/finding"
)

// Waiver suppresses findings matching a rule, optionally narrowed by a path
// substring and a message/snippet substring. Matching is case-insensitive.
type Waiver struct {
	RuleID     string
	PathSub    string
	PatternSub string
}

// ApplyWaivers filters out findings matched by any waiver.
// Returns (kept, waivedCount).
func ApplyWaivers(in []finding.Finding, ws []Waiver) ([]finding.Finding, int) {
	if len(ws) == 0 || len(in) == 0 {
		return in, 0
	}
	var out []finding.Finding
	waived := 0
nextFinding:
	for _, f := range in {
		for _, w := range ws {
			if !strings.EqualFold(strings.TrimSpace(f.RuleID), strings.TrimSpace(w.RuleID)) {
				continue
			}
			if w.PathSub != "" && !containsCI(f.FilePath, w.PathSub) {
				continue
			}
			if w.PatternSub != "" &&
				!containsCI(f.Message, w.PatternSub) && !containsCI(f.CodeSnippet, w.PatternSub) {
				continue
			}
			waived++
			continue nextFinding
		}
		out = append(out, f)
	}
	return out, waived
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToUpper(s), strings.ToUpper(sub))
}
