// Package metrics counts assertion outcomes: how many checks ran,
// how many elements each expectation kind judged, and how often
// collections disagreed with their expectation lists in length.
package metrics

import "time"

// Statuses used in counter keys.
const (
	StatusPassed = "passed"
	StatusFailed = "failed"
)

// Recorder receives assertion measurements.
type Recorder interface {
	// RecordAssertion records a finished assertion call such as
	// "Single" or "Collection".
	RecordAssertion(name string, passed bool, duration time.Duration)
	// RecordElement records one element judged by an expectation
	// of the given kind.
	RecordElement(kind string, passed bool)
	// RecordMismatch records a structural failure.
	RecordMismatch(kind string)
}

// NoopRecorder is a no-op implementation of Recorder, used when
// metrics collection is disabled.
type NoopRecorder struct{}

// RecordAssertion is a no-op.
func (NoopRecorder) RecordAssertion(_ string, _ bool, _ time.Duration) {}

// RecordElement is a no-op.
func (NoopRecorder) RecordElement(_ string, _ bool) {}

// RecordMismatch is a no-op.
func (NoopRecorder) RecordMismatch(_ string) {}

func status(passed bool) string {
	if passed {
		return StatusPassed
	}
	return StatusFailed
}
