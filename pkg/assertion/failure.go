package assertion

import "fmt"

// MismatchKind classifies a disagreement between the number of
// elements produced and the number of expectations.
type MismatchKind int

const (
	// MismatchNone means the counts agreed.
	MismatchNone MismatchKind = iota
	// MismatchTooFew means the collection ran out first.
	MismatchTooFew
	// MismatchTooMany means the collection had elements left over.
	MismatchTooMany
)

// String returns the key used in Extras.
func (k MismatchKind) String() string {
	switch k {
	case MismatchTooFew:
		return "iterable too short"
	case MismatchTooMany:
		return "too few arguments"
	default:
		return "none"
	}
}

// Mismatch records a structural failure.
type Mismatch struct {
	Kind MismatchKind
	// Produced is the number of elements the collection yielded.
	// For MismatchTooMany it is Requested+1: only the existence of
	// one extra element is confirmed.
	Produced  int
	Requested int
}

// Comparison is the detail of literal and type checks.
type Comparison struct {
	Actual   any
	Expected any
}

// Outcome is the result of checking one position.
type Outcome struct {
	// Expectation is the check assigned to this position.
	Expectation Expectation
	// Evaluated is false for positions the collection never
	// reached.
	Evaluated bool
	Passed    bool
	// Actual is the element pulled for this position.
	Actual any
	// Detail is a Comparison for literal and type checks, or the
	// value a predicate returned.
	Detail any
	// Err is the failure captured from a predicate.
	Err error
}

// CollectionError is returned by Collection and All. It carries one
// Outcome per expectation.
type CollectionError struct {
	Passed   []bool
	Outcomes []Outcome
	// Mismatch is set for structural failures and takes precedence
	// over the per-position outcomes.
	Mismatch *Mismatch
}

func newCollectionError(
	outcomes []Outcome, mismatch *Mismatch,
) *CollectionError {
	passed := make([]bool, len(outcomes))
	for i, o := range outcomes {
		passed[i] = o.Passed
	}
	return &CollectionError{
		Passed:   passed,
		Outcomes: outcomes,
		Mismatch: mismatch,
	}
}

// NewCollectionError builds a failure from raw pass flags, for code
// that aggregates its own results.
func NewCollectionError(passed []bool, details []any) *CollectionError {
	outcomes := make([]Outcome, len(passed))
	for i, ok := range passed {
		outcomes[i] = Outcome{Evaluated: true, Passed: ok}
		if i < len(details) {
			outcomes[i].Detail = details[i]
		}
	}
	return newCollectionError(outcomes, nil)
}

// Error returns the summary message.
func (e *CollectionError) Error() string {
	if m := e.Mismatch; m != nil {
		switch m.Kind {
		case MismatchTooFew:
			return fmt.Sprintf(
				"Expected %d elements, got only %d.",
				m.Requested, m.Produced,
			)
		case MismatchTooMany:
			return fmt.Sprintf(
				"Expected %d elements, got %d or more.",
				m.Requested, m.Produced,
			)
		}
	}

	failures := e.Failures()
	total := len(e.Passed)

	switch {
	case len(failures) == 0:
		return "All elements passed. A fault must exist somewhere else."
	case len(failures) == 1:
		return fmt.Sprintf("Index %d failed test.", failures[0])
	case len(failures) == total:
		return fmt.Sprintf("All %d elements failed their tests.", total)
	default:
		return fmt.Sprintf(
			"Only %d/%d elements passed their tests.",
			total-len(failures), total,
		)
	}
}

// Unwrap returns ErrAssertionFailed for errors.Is.
func (e *CollectionError) Unwrap() error {
	return ErrAssertionFailed
}

// Failures returns the indexes of positions that did not pass.
func (e *CollectionError) Failures() []int {
	var out []int
	for i, ok := range e.Passed {
		if !ok {
			out = append(out, i)
		}
	}
	return out
}

// PassedCount returns the number of positions that passed.
func (e *CollectionError) PassedCount() int {
	return len(e.Passed) - len(e.Failures())
}

// Extras describes a structural failure as a map with the keys
// "error", "container" and "args". It returns nil when there is
// none.
func (e *CollectionError) Extras() map[string]any {
	if e.Mismatch == nil || e.Mismatch.Kind == MismatchNone {
		return nil
	}
	return map[string]any{
		"error":     e.Mismatch.Kind.String(),
		"container": e.Mismatch.Produced,
		"args":      e.Mismatch.Requested,
	}
}
