package assertion

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrAssertionFailed is the sentinel every assertion failure in this
// package unwraps to.
var ErrAssertionFailed = errors.New("assertion failed")

// ErrInvalidExpectation marks expectations that can never be
// evaluated, such as functions taking two arguments. It is a usage
// error, not an assertion failure.
var ErrInvalidExpectation = errors.New(
	"All positional arguments to `assert_collection` must either " +
		"be callable with exactly 1 argument or an object to compare.",
)

// Failure messages of the single-shot assertions.
const (
	msgNotIterable     = "Object is not an iterable."
	msgSingleEmpty     = "A single element was expected, but the iterable was empty."
	msgSingleMany      = "A single element was expected, but the iterable contained %d items."
	msgSingleAtLeast   = "A single element was expected, but the iterable contained %d or more items."
	msgNotEmpty        = "The iterable was expected to be empty, but it contained %d items."
	msgNotEmptyInexact = "The iterable was not empty as expected."
	msgEmptyAdvisory   = "Use `assert_is_empty` instead of `assert_collection` with an empty argument set."
)

// Error is a failed single-shot assertion.
type Error struct {
	// Assertion names the check that failed, e.g. "Single".
	Assertion string
	Message   string
}

// Error returns the failure message.
func (e *Error) Error() string {
	if e == nil {
		return ErrAssertionFailed.Error()
	}
	return e.Message
}

// Unwrap returns ErrAssertionFailed for errors.Is.
func (e *Error) Unwrap() error {
	return ErrAssertionFailed
}

func fail(assertion, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Assertion: assertion, Message: msg}
}

// ExpectationError reports an expectation function with the wrong
// shape. Its message is always the ErrInvalidExpectation text.
type ExpectationError struct {
	// Position is the index of the offending argument.
	Position int
	// Type is the offending function's type.
	Type reflect.Type
}

func (e *ExpectationError) Error() string {
	return ErrInvalidExpectation.Error()
}

// Is matches ErrInvalidExpectation.
func (e *ExpectationError) Is(target error) bool {
	return target == ErrInvalidExpectation
}

// ArgumentTypeError is captured when a collection element cannot be
// passed to a predicate's parameter type.
type ArgumentTypeError struct {
	Actual any
	Param  reflect.Type
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf(
		"element %v of type %T cannot be passed as %s",
		e.Actual, e.Actual, e.Param,
	)
}

// Unwrap returns ErrAssertionFailed: a type mismatch is a failed
// element, not a usage error.
func (e *ArgumentTypeError) Unwrap() error {
	return ErrAssertionFailed
}
