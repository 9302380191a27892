// Package pubsub detects messaging reliability anti-patterns: handlers that
// never acknowledge, fire-and-forget publishes, subscriptions without
// dead-letter or retry configuration, and poison-message risks.
package pubsub

import "github.com/codewithboateng/qlint/internal/engine"

func Domain() engine.Domain {
	return engine.Domain{
		Tag: "pubsub",
		Indicators: []string{
			"@PubSubEvent(",
			".publish(",
			".subscription(",
			"pubsub",
		},
		Rules: []engine.Rule{
			handlerWithoutAck(),
			fireAndForgetPublish(),
			missingDeadLetter(),
			publishInLoop(),
			missingRetryPolicy(),
			publishWithoutRecovery(),
			handlerThrowsUncaught(),
		},
	}
}
