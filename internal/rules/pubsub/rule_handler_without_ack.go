package pubsub

import (
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/textscan"
)

const handlerBlockCap = 40

func handlerWithoutAck() engine.Rule {
	return engine.Rule{
		ID:       "PUBSUB001",
		Summary:  "Event handler never acknowledges the message.",
		Severity: finding.SeverityHigh,
		Check:    checkHandlerWithoutAck,
	}
}

func checkHandlerWithoutAck(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		if !strings.Contains(line, "@PubSubEvent(") {
			continue
		}
		block, end := textscan.Block(lines, i, handlerBlockCap)
		if strings.Contains(block, "ack(") {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "PUBSUB001",
			Severity:    finding.SeverityHigh,
			Message:     "Handler body has no ack() call; the broker will redeliver the message until its deadline expires.",
			FilePath:    path,
			LineStart:   i + 1,
			LineEnd:     end + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Acknowledge on success and nack explicitly on failure so redelivery is deliberate.",
		})
	}
	return out
}
