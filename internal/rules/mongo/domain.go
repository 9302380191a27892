// Package mongo detects MongoDB query anti-patterns: server-side JavaScript,
// unanchored regexes, unbounded cursors, skip-based pagination and empty
// filter documents on mass writes.
package mongo

import "github.com/codewithboateng/qlint/internal/engine"

func Domain() engine.Domain {
	return engine.Domain{
		Tag: "mongo",
		Indicators: []string{
			"$where:",
			".find(",
			".aggregate(",
			"$regex",
			"updateMany",
			"deleteMany",
		},
		Rules: []engine.Rule{
			unboundedFind(),
			leadingWildcardRegex(),
			largeSkip(),
			whereClause(),
			sortWithoutLimit(),
			emptyFilterWrite(),
			lookupWithoutLimit(),
		},
	}
}
