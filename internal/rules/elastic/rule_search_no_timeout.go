package elastic

import (
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/textscan"
)

// Files with many search calls all missing timeouts would drown the report;
// only the first two occurrences are emitted.
const searchNoTimeoutMax = 2

const searchBlockCap = 40

func searchNoTimeout() engine.Rule {
	return engine.Rule{
		ID:       "ES005",
		Summary:  "Search call without a timeout.",
		Severity: finding.SeverityMedium,
		Check:    checkSearchNoTimeout,
	}
}

func checkSearchNoTimeout(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		if len(out) >= searchNoTimeoutMax {
			break
		}
		if !strings.Contains(line, ".search(") {
			continue
		}
		block, end := textscan.Block(lines, i, searchBlockCap)
		if strings.Contains(block, "timeout") {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "ES005",
			Severity:    finding.SeverityMedium,
			Message:     "Search call without a timeout; a slow shard stalls the caller indefinitely.",
			FilePath:    path,
			LineStart:   i + 1,
			LineEnd:     end + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Set a request timeout on the search body or the client call.",
		})
	}
	return out
}
