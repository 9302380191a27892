package pubsub

import (
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/textscan"
)

func missingDeadLetter() engine.Rule {
	return engine.Rule{
		ID:       "PUBSUB003",
		Summary:  "Subscription created without a dead-letter topic.",
		Severity: finding.SeverityMedium,
		Check:    checkMissingDeadLetter,
	}
}

func checkMissingDeadLetter(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		if !strings.Contains(line, ".subscription(") {
			continue
		}
		w := textscan.Window(lines, i, 10, 10)
		if strings.Contains(w, "deadLetter") || strings.Contains(w, "dead_letter") {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "PUBSUB003",
			Severity:    finding.SeverityMedium,
			Message:     "Subscription with no dead-letter configuration; a poison message will be redelivered forever.",
			FilePath:    path,
			LineStart:   i + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Attach a dead-letter topic with a bounded delivery-attempt count.",
		})
	}
	return out
}
