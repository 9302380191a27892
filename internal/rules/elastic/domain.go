// Package elastic detects Elasticsearch query anti-patterns in raw source
// text: leading wildcards, deep pagination, unbounded match_all, scripted
// queries with interpolation, missing search timeouts.
package elastic

import "github.com/codewithboateng/qlint/internal/engine"

// Domain builds the elastic rule set. Rule order here is the emission order.
func Domain() engine.Domain {
	return engine.Domain{
		Tag: "elastic",
		Indicators: []string{
			".search(",
			"\"query\"",
			"match_all",
			"wildcard",
			"\"aggs\"",
			"\"aggregations\"",
		},
		Rules: []engine.Rule{
			leadingWildcard(),
			deepPagination(),
			matchAllNoSize(),
			scriptQuery(),
			searchNoTimeout(),
			oversizedPage(),
			aggsNoSizeZero(),
		},
	}
}
