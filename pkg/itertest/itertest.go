// Package itertest reports the collection assertions of package
// assertion as test failures, through testify's assert (non-fatal)
// and require (fatal) conventions.
//
//	func TestUsers(t *testing.T) {
//		u := itertest.RequireSingle(t, repo.Find("ada"))
//		itertest.AssertCollection(t, roles(u),
//			"admin",
//			func(r string) bool { return strings.HasPrefix(r, "ops") },
//		)
//	}
package itertest

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.iterables/pkg/assertion"
	"digital.vasic.iterables/pkg/report"
)

type tHelper interface {
	Helper()
}

func helper(t any) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
}

// Helper binds the reporting functions to a Checker.
type Helper struct {
	checker        *assertion.Checker
	maxValueLength int
}

// New creates a Helper around c. A nil c selects
// assertion.Default().
func New(c *assertion.Checker) *Helper {
	if c == nil {
		c = assertion.Default()
	}
	return &Helper{checker: c}
}

// WithMaxValueLength sets how long rendered element values in
// failure details may get.
func (h *Helper) WithMaxValueLength(n int) *Helper {
	return &Helper{checker: h.checker, maxValueLength: n}
}

// check fails t without stopping it. The per-position table of a
// collection failure is attached as the message.
func (h *Helper) check(t assert.TestingT, err error) bool {
	helper(t)
	if err == nil {
		return true
	}
	if details := report.Describe(err, h.maxValueLength); details != "" {
		return assert.Fail(t, err.Error(), details)
	}
	return assert.Fail(t, err.Error())
}

func (h *Helper) fatal(t require.TestingT, err error) {
	helper(t)
	if err == nil {
		return
	}
	if details := report.Describe(err, h.maxValueLength); details != "" {
		require.Fail(t, err.Error(), details)
		return
	}
	require.Fail(t, err.Error())
}

// AssertIterable marks t failed unless v is a collection.
func (h *Helper) AssertIterable(t assert.TestingT, v any) bool {
	helper(t)
	return h.check(t, h.checker.IsIterable(v))
}

// AssertSingle marks t failed unless v has exactly one element, and
// returns that element.
func (h *Helper) AssertSingle(t assert.TestingT, v any) (any, bool) {
	helper(t)
	item, err := h.checker.Single(v)
	return item, h.check(t, err)
}

// AssertEmpty marks t failed unless v has no elements.
func (h *Helper) AssertEmpty(t assert.TestingT, v any) bool {
	helper(t)
	return h.check(t, h.checker.Empty(v))
}

// AssertCollection marks t failed unless every element of v meets
// its expectation. An invalid expectation is reported as a failure
// too.
func (h *Helper) AssertCollection(
	t assert.TestingT, v any, expectations ...any,
) bool {
	helper(t)
	return h.check(t, h.checker.Collection(v, expectations...))
}

// AssertAll marks t failed unless every element of v meets
// expectation.
func (h *Helper) AssertAll(
	t assert.TestingT, v any, expectation any,
) bool {
	helper(t)
	return h.check(t, h.checker.All(v, expectation))
}

// RequireIterable stops the test unless v is a collection.
func (h *Helper) RequireIterable(t require.TestingT, v any) {
	helper(t)
	h.fatal(t, h.checker.IsIterable(v))
}

// RequireSingle stops the test unless v has exactly one element,
// and returns that element.
func (h *Helper) RequireSingle(t require.TestingT, v any) any {
	helper(t)
	item, err := h.checker.Single(v)
	h.fatal(t, err)
	return item
}

// RequireEmpty stops the test unless v has no elements.
func (h *Helper) RequireEmpty(t require.TestingT, v any) {
	helper(t)
	h.fatal(t, h.checker.Empty(v))
}

// RequireCollection stops the test unless every element of v meets
// its expectation.
func (h *Helper) RequireCollection(
	t require.TestingT, v any, expectations ...any,
) {
	helper(t)
	h.fatal(t, h.checker.Collection(v, expectations...))
}

// RequireAll stops the test unless every element of v meets
// expectation.
func (h *Helper) RequireAll(t require.TestingT, v any, expectation any) {
	helper(t)
	h.fatal(t, h.checker.All(v, expectation))
}

var std = New(nil)

// AssertIterable marks t failed unless v is a collection.
func AssertIterable(t assert.TestingT, v any) bool {
	helper(t)
	return std.AssertIterable(t, v)
}

// AssertSingle marks t failed unless v has exactly one element.
func AssertSingle(t assert.TestingT, v any) (any, bool) {
	helper(t)
	return std.AssertSingle(t, v)
}

// AssertEmpty marks t failed unless v has no elements.
func AssertEmpty(t assert.TestingT, v any) bool {
	helper(t)
	return std.AssertEmpty(t, v)
}

// AssertCollection marks t failed unless every element of v meets
// its expectation.
func AssertCollection(t assert.TestingT, v any, expectations ...any) bool {
	helper(t)
	return std.AssertCollection(t, v, expectations...)
}

// AssertAll marks t failed unless every element of v meets
// expectation.
func AssertAll(t assert.TestingT, v any, expectation any) bool {
	helper(t)
	return std.AssertAll(t, v, expectation)
}

// RequireIterable stops the test unless v is a collection.
func RequireIterable(t require.TestingT, v any) {
	helper(t)
	std.RequireIterable(t, v)
}

// RequireSingle stops the test unless v has exactly one element.
func RequireSingle(t require.TestingT, v any) any {
	helper(t)
	return std.RequireSingle(t, v)
}

// RequireEmpty stops the test unless v has no elements.
func RequireEmpty(t require.TestingT, v any) {
	helper(t)
	std.RequireEmpty(t, v)
}

// RequireCollection stops the test unless every element of v meets
// its expectation.
func RequireCollection(t require.TestingT, v any, expectations ...any) {
	helper(t)
	std.RequireCollection(t, v, expectations...)
}

// RequireAll stops the test unless every element of v meets
// expectation.
func RequireAll(t require.TestingT, v any, expectation any) {
	helper(t)
	std.RequireAll(t, v, expectation)
}
