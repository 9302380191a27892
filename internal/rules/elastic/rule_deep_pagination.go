package elastic

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
)

// Matches from: 15000, "from": 15000 and from = 15000 spellings.
var fromRe = regexp.MustCompile(`\bfrom["']?\s*[:=]\s*(\d+)`)

// Offsets beyond this force Elasticsearch to materialize and discard every
// preceding hit on every shard.
const deepPaginationThreshold = 10000

func deepPagination() engine.Rule {
	return engine.Rule{
		ID:       "ES002",
		Summary:  "Deep pagination offset; use search_after instead.",
		Severity: finding.SeverityHigh,
		Check:    checkDeepPagination,
	}
}

func checkDeepPagination(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		m := fromRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= deepPaginationThreshold {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "ES002",
			Severity:    finding.SeverityHigh,
			Message:     fmt.Sprintf("Pagination offset from=%d exceeds %d; each shard must collect and discard all preceding hits.", n, deepPaginationThreshold),
			FilePath:    path,
			LineStart:   i + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Use search_after with a point-in-time for deep pagination.",
			Metadata:    map[string]any{"from_value": n},
		})
	}
	return out
}
