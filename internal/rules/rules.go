// Package rules assembles the built-in analyzer domains.
package rules

import (
	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/rules/elastic"
	"github.com/codewithboateng/qlint/internal/rules/mongo"
	"github.com/codewithboateng/qlint/internal/rules/pubsub"
)

// DefaultRegistry returns a registry with the built-in domains. Analyzers
// are constructed lazily, once each, on first use.
func DefaultRegistry() *engine.Registry {
	r := engine.NewRegistry()
	// Registration order is fixed; it drives cross-domain output order.
	_ = r.Register("elastic", elastic.Domain)
	_ = r.Register("mongo", mongo.Domain)
	_ = r.Register("pubsub", pubsub.Domain)
	return r
}
