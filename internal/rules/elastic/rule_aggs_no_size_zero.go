package elastic

import (
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/textscan"
)

func aggsNoSizeZero() engine.Rule {
	return engine.Rule{
		ID:       "ES007",
		Summary:  "Aggregation request also fetches hits; set size: 0.",
		Severity: finding.SeverityLow,
		Check:    checkAggsNoSizeZero,
	}
}

func checkAggsNoSizeZero(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		if !strings.Contains(line, "\"aggs\"") && !strings.Contains(line, "\"aggregations\"") {
			continue
		}
		w := textscan.Window(lines, i, 5, 5)
		if strings.Contains(w, "size: 0") || strings.Contains(w, "\"size\": 0") {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "ES007",
			Severity:    finding.SeverityLow,
			Message:     "Aggregation-only request without size: 0 also returns top hits nobody reads.",
			FilePath:    path,
			LineStart:   i + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Add size: 0 when only the aggregation buckets are consumed.",
		})
	}
	return out
}
