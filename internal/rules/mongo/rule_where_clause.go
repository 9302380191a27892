package mongo

import (
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
)

func whereClause() engine.Rule {
	return engine.Rule{
		ID:       "MONGO004",
		Summary:  "$where executes JavaScript per document; never use it.",
		Severity: finding.SeverityCritical,
		Check:    checkWhereClause,
	}
}

// Fires on every $where occurrence regardless of surrounding context.
func checkWhereClause(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		if !strings.Contains(line, "$where") {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "MONGO004",
			Severity:    finding.SeverityCritical,
			Message:     "$where runs JavaScript for every document, cannot use indexes, and is an injection vector when built from input.",
			FilePath:    path,
			LineStart:   i + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Express the predicate with query operators ($expr, $gt, $in, ...) instead of $where.",
		})
	}
	return out
}
