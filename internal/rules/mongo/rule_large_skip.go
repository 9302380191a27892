package mongo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
)

// Matches .skip(15000) and skip: 15000 spellings.
var skipRe = regexp.MustCompile(`\bskip["']?\s*[:(]\s*(\d+)`)

const largeSkipThreshold = 10000

func largeSkip() engine.Rule {
	return engine.Rule{
		ID:       "MONGO003",
		Summary:  "Skip-based pagination with a very large offset.",
		Severity: finding.SeverityHigh,
		Check:    checkLargeSkip,
	}
}

func checkLargeSkip(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		m := skipRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= largeSkipThreshold {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "MONGO003",
			Severity:    finding.SeverityHigh,
			Message:     fmt.Sprintf("skip=%d walks and discards every preceding document on each request.", n),
			FilePath:    path,
			LineStart:   i + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Paginate with a range filter on an indexed sort key instead of skip.",
			Metadata:    map[string]any{"skip_value": n},
		})
	}
	return out
}
