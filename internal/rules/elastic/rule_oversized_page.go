package elastic

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
)

var sizeRe = regexp.MustCompile(`\bsize["']?\s*[:=]\s*(\d+)`)

const oversizedPageThreshold = 1000

func oversizedPage() engine.Rule {
	return engine.Rule{
		ID:       "ES006",
		Summary:  "Very large page size in a single request.",
		Severity: finding.SeverityMedium,
		Check:    checkOversizedPage,
	}
}

func checkOversizedPage(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		m := sizeRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= oversizedPageThreshold {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "ES006",
			Severity:    finding.SeverityMedium,
			Message:     fmt.Sprintf("Requesting %d hits in one page; large pages inflate heap usage on both client and coordinating node.", n),
			FilePath:    path,
			LineStart:   i + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Page with search_after, or use the scroll API for bulk export.",
			Metadata:    map[string]any{"size_value": n},
		})
	}
	return out
}
