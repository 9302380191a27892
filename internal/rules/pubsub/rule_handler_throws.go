package pubsub

import (
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/textscan"
)

func handlerThrowsUncaught() engine.Rule {
	return engine.Rule{
		ID:       "PUBSUB007",
		Summary:  "Event handler throws without a try/catch in its body.",
		Severity: finding.SeverityHigh,
		Check:    checkHandlerThrows,
	}
}

func checkHandlerThrows(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		if !strings.Contains(line, "@PubSubEvent(") {
			continue
		}
		block, end := textscan.Block(lines, i, handlerBlockCap)
		if !strings.Contains(block, "throw") {
			continue
		}
		if strings.Contains(block, "try") || strings.Contains(block, "catch") {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "PUBSUB007",
			Severity:    finding.SeverityHigh,
			Message:     "Handler throws with no try/catch in its body; the same message will fail and redeliver in a loop.",
			FilePath:    path,
			LineStart:   i + 1,
			LineEnd:     end + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Catch, log with the message ID, and nack (or dead-letter) instead of throwing out of the handler.",
		})
	}
	return out
}
