package pubsub

import (
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/textscan"
)

func missingRetryPolicy() engine.Rule {
	return engine.Rule{
		ID:       "PUBSUB005",
		Summary:  "Subscription created without an explicit retry policy.",
		Severity: finding.SeverityLow,
		Check:    checkMissingRetryPolicy,
	}
}

func checkMissingRetryPolicy(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		if !strings.Contains(line, ".subscription(") {
			continue
		}
		w := textscan.Window(lines, i, 10, 10)
		if strings.Contains(w, "retryPolicy") || strings.Contains(w, "retry_policy") {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "PUBSUB005",
			Severity:    finding.SeverityLow,
			Message:     "Subscription relies on the default immediate-redelivery retry behavior.",
			FilePath:    path,
			LineStart:   i + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Configure an exponential-backoff retry policy so transient failures are not hammered.",
		})
	}
	return out
}
