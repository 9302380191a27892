package mongo

import (
	"regexp"
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
)

// $regex values anchored as ^.* or starting with .* cannot use an index.
var wildcardRegexRe = regexp.MustCompile(`\$regex[^\n]*?(["'/])(\^\.\*|\.\*)`)

func leadingWildcardRegex() engine.Rule {
	return engine.Rule{
		ID:       "MONGO002",
		Summary:  "Regex filter with a leading wildcard forces a collection scan.",
		Severity: finding.SeverityHigh,
		Check:    checkLeadingWildcardRegex,
	}
}

func checkLeadingWildcardRegex(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		if !wildcardRegexRe.MatchString(line) {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "MONGO002",
			Severity:    finding.SeverityHigh,
			Message:     "$regex starting with a wildcard cannot use an index; every document in the collection is scanned.",
			FilePath:    path,
			LineStart:   i + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Anchor the regex with a literal prefix (^abc), or use a text index for substring search.",
		})
	}
	return out
}
