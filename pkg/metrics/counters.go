package metrics

import (
	"sort"
	"sync"
	"time"
)

// Counters implements Recorder with in-memory counters. Exporting
// them to a monitoring system is left to the host application.
type Counters struct {
	mu         sync.Mutex
	assertions map[string]int
	elements   map[string]int
	mismatches map[string]int
	durations  map[string][]time.Duration
}

// NewCounters creates an empty Counters.
func NewCounters() *Counters {
	return &Counters{
		assertions: make(map[string]int),
		elements:   make(map[string]int),
		mismatches: make(map[string]int),
		durations:  make(map[string][]time.Duration),
	}
}

// RecordAssertion counts a finished assertion under name:status and
// keeps its duration.
func (m *Counters) RecordAssertion(
	name string, passed bool, duration time.Duration,
) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assertions[name+":"+status(passed)]++
	m.durations[name] = append(m.durations[name], duration)
}

// RecordElement counts a judged element under kind:status.
func (m *Counters) RecordElement(kind string, passed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.elements[kind+":"+status(passed)]++
}

// RecordMismatch counts a structural failure of the given kind.
func (m *Counters) RecordMismatch(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mismatches[kind]++
}

// AssertionCount returns the count for an assertion+status
// combination.
func (m *Counters) AssertionCount(name, status string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assertions[name+":"+status]
}

// ElementCount returns the count for an expectation kind+status
// combination.
func (m *Counters) ElementCount(kind, status string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elements[kind+":"+status]
}

// MismatchCount returns how often a structural failure of the given
// kind was recorded.
func (m *Counters) MismatchCount(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mismatches[kind]
}

// Durations returns a copy of the recorded durations of an
// assertion.
func (m *Counters) Durations(name string) []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.durations[name]...)
}

// Snapshot returns every counter as "group:key" => count, for
// dumping at the end of a test run.
func (m *Counters) Snapshot() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]int,
		len(m.assertions)+len(m.elements)+len(m.mismatches))
	for k, v := range m.assertions {
		out["assertion:"+k] = v
	}
	for k, v := range m.elements {
		out["element:"+k] = v
	}
	for k, v := range m.mismatches {
		out["mismatch:"+k] = v
	}
	return out
}

// Names returns the assertions seen so far, sorted.
func (m *Counters) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.durations))
	for name := range m.durations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
