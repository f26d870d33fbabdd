package metrics

import (
	"sort"
	"sync"
	"time"
)

// RelayCount is one relay/outcome counter.
type RelayCount struct {
	Relay   string
	Outcome string
	Count   uint64
}

// DurationStat aggregates upstream call durations for one relay.
type DurationStat struct {
	Relay   string
	Count   uint64
	TotalNs int64
}

// Snapshot captures current in-memory counters, sorted by relay then outcome.
type Snapshot struct {
	Requests  []RelayCount
	Durations []DurationStat
}

type relayKey struct {
	relay   string
	outcome string
}

// InMemoryRecorder keeps counters in process memory.
type InMemoryRecorder struct {
	mu        sync.Mutex
	requests  map[relayKey]uint64
	durations map[string]*DurationStat
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		requests:  make(map[relayKey]uint64),
		durations: make(map[string]*DurationStat),
	}
}

// IncRelayRequest counts one finished relay request.
func (m *InMemoryRecorder) IncRelayRequest(relay, outcome string) {
	m.mu.Lock()
	m.requests[relayKey{relay, outcome}]++
	m.mu.Unlock()
}

// ObserveUpstreamDuration records the time spent waiting on an upstream API.
func (m *InMemoryRecorder) ObserveUpstreamDuration(relay string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stat, ok := m.durations[relay]
	if !ok {
		stat = &DurationStat{Relay: relay}
		m.durations[relay] = stat
	}
	stat.Count++
	stat.TotalNs += duration.Nanoseconds()
}

// Count returns a single counter value.
func (m *InMemoryRecorder) Count(relay, outcome string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[relayKey{relay, outcome}]
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Requests:  make([]RelayCount, 0, len(m.requests)),
		Durations: make([]DurationStat, 0, len(m.durations)),
	}
	for k, v := range m.requests {
		snap.Requests = append(snap.Requests, RelayCount{Relay: k.relay, Outcome: k.outcome, Count: v})
	}
	for _, d := range m.durations {
		snap.Durations = append(snap.Durations, *d)
	}

	sort.Slice(snap.Requests, func(i, j int) bool {
		if snap.Requests[i].Relay != snap.Requests[j].Relay {
			return snap.Requests[i].Relay < snap.Requests[j].Relay
		}
		return snap.Requests[i].Outcome < snap.Requests[j].Outcome
	})
	sort.Slice(snap.Durations, func(i, j int) bool {
		return snap.Durations[i].Relay < snap.Durations[j].Relay
	})
	return snap
}
