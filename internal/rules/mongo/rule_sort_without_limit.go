package mongo

import (
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/textscan"
)

func sortWithoutLimit() engine.Rule {
	return engine.Rule{
		ID:       "MONGO005",
		Summary:  "sort() without limit() may sort the whole collection in memory.",
		Severity: finding.SeverityMedium,
		Check:    checkSortWithoutLimit,
	}
}

func checkSortWithoutLimit(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		if !strings.Contains(line, ".sort(") {
			continue
		}
		if strings.Contains(textscan.Window(lines, i, 5, 5), "limit") {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "MONGO005",
			Severity:    finding.SeverityMedium,
			Message:     "sort() with no limit nearby; without a supporting index this sorts the full result set in memory.",
			FilePath:    path,
			LineStart:   i + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Add .limit(), and back the sort key with an index.",
		})
	}
	return out
}
