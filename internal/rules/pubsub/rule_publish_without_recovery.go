package pubsub

import (
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/textscan"
)

const recoveryWindow = 10

func publishWithoutRecovery() engine.Rule {
	return engine.Rule{
		ID:       "PUBSUB006",
		Summary:  "Publish with no catch/retry handling nearby.",
		Severity: finding.SeverityHigh,
		Check:    checkPublishWithoutRecovery,
	}
}

func checkPublishWithoutRecovery(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		if !strings.Contains(line, ".publish(") {
			continue
		}
		// A catch or retry token within ±10 lines suppresses the finding.
		w := textscan.Window(lines, i, recoveryWindow, recoveryWindow)
		if strings.Contains(w, "catch") || strings.Contains(w, "retry") {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "PUBSUB006",
			Severity:    finding.SeverityHigh,
			Message:     "Publish call with no catch or retry handling in reach; a broker outage silently drops the event.",
			FilePath:    path,
			LineStart:   i + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Wrap the publish in error handling with a bounded retry, or route failures to an outbox.",
		})
	}
	return out
}
