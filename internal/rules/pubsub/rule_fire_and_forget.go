package pubsub

import (
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
)

// Cap matching ES005: repeated fire-and-forget publishes in one file say the
// same thing; two examples are enough.
const fireAndForgetMax = 2

func fireAndForgetPublish() engine.Rule {
	return engine.Rule{
		ID:       "PUBSUB002",
		Summary:  "Publish result is discarded on the call site.",
		Severity: finding.SeverityMedium,
		Check:    checkFireAndForget,
	}
}

func checkFireAndForget(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		if len(out) >= fireAndForgetMax {
			break
		}
		if !strings.Contains(line, ".publish(") {
			continue
		}
		if strings.Contains(line, "await") || strings.Contains(line, ".then") ||
			strings.Contains(line, "=") || strings.Contains(line, "return") {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "PUBSUB002",
			Severity:    finding.SeverityMedium,
			Message:     "Publish call whose result is discarded; delivery failures are invisible to the caller.",
			FilePath:    path,
			LineStart:   i + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Await (or capture) the publish result and handle the failure path.",
		})
	}
	return out
}
