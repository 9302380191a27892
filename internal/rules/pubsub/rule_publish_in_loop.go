package pubsub

import (
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/textscan"
)

var loopTokens = []string{"for ", "for(", "while ", "while(", ".forEach(", ".map("}

func publishInLoop() engine.Rule {
	return engine.Rule{
		ID:       "PUBSUB004",
		Summary:  "Per-item publish inside a loop.",
		Severity: finding.SeverityMedium,
		Check:    checkPublishInLoop,
	}
}

func checkPublishInLoop(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		if !strings.Contains(line, ".publish(") {
			continue
		}
		// Loop header on the publish line or within the 3 lines above it.
		ctx := textscan.Window(lines, i, 3, 1)
		inLoop := false
		for _, tok := range loopTokens {
			if strings.Contains(ctx, tok) {
				inLoop = true
				break
			}
		}
		if !inLoop {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "PUBSUB004",
			Severity:    finding.SeverityMedium,
			Message:     "Publishing one message per loop iteration; each call pays a full round trip to the broker.",
			FilePath:    path,
			LineStart:   i + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Batch the messages and publish once, or use the client's built-in batching settings.",
		})
	}
	return out
}
