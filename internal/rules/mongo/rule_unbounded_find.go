package mongo

import (
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/textscan"
)

const findBlockCap = 40

func unboundedFind() engine.Rule {
	return engine.Rule{
		ID:       "MONGO001",
		Summary:  "find() without limit or batchSize.",
		Severity: finding.SeverityMedium,
		Check:    checkUnboundedFind,
	}
}

func checkUnboundedFind(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		if !strings.Contains(line, ".find(") {
			continue
		}
		block, end := textscan.Block(lines, i, findBlockCap)
		if strings.Contains(block, "limit") || strings.Contains(block, "batchSize") {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "MONGO001",
			Severity:    finding.SeverityMedium,
			Message:     "find() with no limit or batchSize; the cursor will stream the entire collection.",
			FilePath:    path,
			LineStart:   i + 1,
			LineEnd:     end + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Add .limit() (or a batchSize) and paginate on an indexed field.",
		})
	}
	return out
}
