package mongo

import (
	"regexp"
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
)

var emptyFilterRe = regexp.MustCompile(`\b(updateMany|deleteMany)\s*\(\s*\{\s*\}`)

func emptyFilterWrite() engine.Rule {
	return engine.Rule{
		ID:       "MONGO006",
		Summary:  "Mass write with an empty filter touches every document.",
		Severity: finding.SeverityCritical,
		Check:    checkEmptyFilterWrite,
	}
}

func checkEmptyFilterWrite(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		m := emptyFilterRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "MONGO006",
			Severity:    finding.SeverityCritical,
			Message:     m[1] + "({}) matches the entire collection; one call rewrites or removes every document.",
			FilePath:    path,
			LineStart:   i + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Pass an explicit filter. If whole-collection maintenance is intended, gate it behind a dedicated admin path.",
		})
	}
	return out
}
