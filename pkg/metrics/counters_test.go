package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounters_ImplementsInterface(t *testing.T) {
	var _ Recorder = &Counters{}
}

func TestNoopRecorder_ImplementsInterface(t *testing.T) {
	var _ Recorder = NoopRecorder{}
}

func TestCounters_Assertions(t *testing.T) {
	m := NewCounters()
	m.RecordAssertion("Single", true, time.Millisecond)
	m.RecordAssertion("Single", false, 2*time.Millisecond)
	m.RecordAssertion("Single", true, 3*time.Millisecond)
	m.RecordAssertion("Empty", true, 0)

	assert.Equal(t, 2, m.AssertionCount("Single", StatusPassed))
	assert.Equal(t, 1, m.AssertionCount("Single", StatusFailed))
	assert.Equal(t, 0, m.AssertionCount("Collection", StatusPassed))
	assert.Len(t, m.Durations("Single"), 3)
	assert.Equal(t, []string{"Empty", "Single"}, m.Names())
}

func TestCounters_DurationsIsACopy(t *testing.T) {
	m := NewCounters()
	m.RecordAssertion("All", true, time.Second)

	d := m.Durations("All")
	d[0] = 0
	assert.Equal(t, time.Second, m.Durations("All")[0])
}

func TestCounters_ElementsAndMismatches(t *testing.T) {
	m := NewCounters()
	m.RecordElement("literal", true)
	m.RecordElement("literal", false)
	m.RecordElement("predicate", false)
	m.RecordMismatch("iterable too short")

	assert.Equal(t, 1, m.ElementCount("literal", StatusPassed))
	assert.Equal(t, 1, m.ElementCount("predicate", StatusFailed))
	assert.Equal(t, 1, m.MismatchCount("iterable too short"))
	assert.Equal(t, 0, m.MismatchCount("too few arguments"))

	assert.Equal(t, map[string]int{
		"element:literal:passed":      1,
		"element:literal:failed":      1,
		"element:predicate:failed":    1,
		"mismatch:iterable too short": 1,
	}, m.Snapshot())
}

func TestCounters_Concurrent(t *testing.T) {
	m := NewCounters()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordElement("type", true)
			m.RecordAssertion("Collection", true, time.Microsecond)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, m.ElementCount("type", StatusPassed))
	assert.Equal(t, 20, m.AssertionCount("Collection", StatusPassed))
}
