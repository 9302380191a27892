package elastic

import (
	"regexp"
	"strings"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
)

var leadingWildcardRe = regexp.MustCompile(`wildcard[^\n]*?["']([*?][^"']*)["']`)

func leadingWildcard() engine.Rule {
	return engine.Rule{
		ID:       "ES001",
		Summary:  "Wildcard query with a leading wildcard cannot use the index.",
		Severity: finding.SeverityHigh,
		Check:    checkLeadingWildcard,
	}
}

func checkLeadingWildcard(content, path string, lines []string) []finding.Finding {
	var out []finding.Finding
	for i, line := range lines {
		m := leadingWildcardRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		out = append(out, finding.Finding{
			RuleID:      "ES001",
			Severity:    finding.SeverityHigh,
			Message:     "Wildcard query value " + m[1] + " starts with a wildcard; Elasticsearch must scan every term in the field.",
			FilePath:    path,
			LineStart:   i + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Avoid leading wildcards. Use an edge-ngram or reverse-keyword analyzer if suffix matching is required.",
		})
	}
	return out
}
