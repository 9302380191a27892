package elastic

import (
	"regexp"
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/textscan"
)

var scriptQueryRe = regexp.MustCompile(`["']script["']\s*:|\bscript_score\b`)

// Interpolation markers that suggest the script source is assembled from
// runtime values.
var interpolationTokens = []string{"${", "\" +", "' +", "` +"}

func scriptQuery() engine.Rule {
	return engine.Rule{
		ID:       "ES004",
		Summary:  "Scripted query; critical when the script is built by string interpolation.",
		Severity: finding.SeverityHigh,
		Check:    checkScriptQuery,
	}
}

func checkScriptQuery(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		if !scriptQueryRe.MatchString(line) {
			continue
		}
		f := finding.Finding{
			RuleID:      "ES004",
			Severity:    finding.SeverityHigh,
			Message:     "Scripted query runs per document and bypasses index structures.",
			FilePath:    path,
			LineStart:   i + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Precompute the value at index time, or move the logic into a runtime field.",
		}
		// Interpolation in the following lines escalates to an injection risk.
		window := textscan.Window(lines, i, 0, 10)
		for _, tok := range interpolationTokens {
			if strings.Contains(window, tok) {
				f.Severity = finding.SeverityCritical
				f.Message = "Scripted query built with string interpolation; this is a script-injection vector."
				f.Suggestion = "Pass runtime values through script params; never concatenate them into the script source."
				break
			}
		}
		out = append(out, f)
	}
	return out
}
