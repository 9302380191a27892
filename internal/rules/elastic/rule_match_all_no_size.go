package elastic

import (
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/textscan"
)

func matchAllNoSize() engine.Rule {
	return engine.Rule{
		ID:       "ES003",
		Summary:  "match_all without an explicit size returns the default page only.",
		Severity: finding.SeverityMedium,
		Check:    checkMatchAllNoSize,
	}
}

func checkMatchAllNoSize(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		if !strings.Contains(line, "match_all") {
			continue
		}
		// A size token anywhere in the neighborhood suppresses the finding.
		if strings.Contains(textscan.Window(lines, i, 5, 5), "size") {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "ES003",
			Severity:    finding.SeverityMedium,
			Message:     "match_all query without an explicit size; the result set is silently capped at the server default.",
			FilePath:    path,
			LineStart:   i + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Set size explicitly, or use the scroll/search_after APIs if you need all documents.",
		})
	}
	return out
}
