// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Relay names used as metric labels.
const (
	RelayContact   = "contact"
	RelaySubscribe = "subscribe"
)

// Outcome labels for relay requests.
const (
	OutcomeSuccess       = "success"        // upstream accepted
	OutcomeDuplicate     = "duplicate"      // contact already on the list
	OutcomeRejected      = "rejected"       // upstream refused the submission
	OutcomeInvalid       = "invalid"        // failed input validation
	OutcomeConfig        = "config"         // credential missing
	OutcomeUpstreamError = "upstream_error" // transport or decode failure
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	IncRelayRequest(relay, outcome string)
	ObserveUpstreamDuration(relay string, duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
