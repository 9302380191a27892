package mongo

import (
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/textscan"
)

func lookupWithoutLimit() engine.Rule {
	return engine.Rule{
		ID:       "MONGO007",
		Summary:  "$lookup stage with no bounding stage after it.",
		Severity: finding.SeverityMedium,
		Check:    checkLookupWithoutLimit,
	}
}

func checkLookupWithoutLimit(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		if !strings.Contains(line, "$lookup") {
			continue
		}
		after := textscan.Window(lines, i, 0, 10)
		if strings.Contains(after, "$limit") || strings.Contains(after, "$match") {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "MONGO007",
			Severity:    finding.SeverityMedium,
			Message:     "$lookup joins without a following $match or $limit; the joined set is unbounded.",
			FilePath:    path,
			LineStart:   i + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Filter before the $lookup and bound the pipeline with $match/$limit stages after it.",
		})
	}
	return out
}
