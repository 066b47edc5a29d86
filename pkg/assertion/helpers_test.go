package assertion

import (
	"context"
	"iter"

	"github.com/stretchr/testify/mock"

	"digital.vasic.iterables/pkg/logging"
)

// recordingLogger captures advisories and traces.
type recordingLogger struct {
	mock.Mock
}

func (m *recordingLogger) Info(msg string, fields ...logging.Field) {
	m.Called(msg, fields)
}

func (m *recordingLogger) Warn(msg string, fields ...logging.Field) {
	m.Called(msg, fields)
}

func (m *recordingLogger) Error(msg string, fields ...logging.Field) {
	m.Called(msg, fields)
}

func (m *recordingLogger) Debug(msg string, fields ...logging.Field) {
	m.Called(msg, fields)
}

func (m *recordingLogger) WithFields(
	fields ...logging.Field,
) logging.Logger {
	args := m.Called(fields)
	return args.Get(0).(logging.Logger)
}

func (m *recordingLogger) Close() error {
	return m.Called().Error(0)
}

// quiet returns a checker that logs nowhere.
func quiet(opts ...Option) *Checker {
	return NewChecker(
		append([]Option{WithLogger(logging.NullLogger{})}, opts...)...,
	)
}

// count yields 0..n-1 and records how many values were pulled.
func count(n int, pulled *int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < n; i++ {
			if pulled != nil {
				*pulled++
			}
			if !yield(i) {
				return
			}
		}
	}
}

// naturals never ends.
func naturals(pulled *int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; ; i++ {
			if pulled != nil {
				*pulled++
			}
			if !yield(i) {
				return
			}
		}
	}
}

// tape is a single-use cursor over fixed values.
type tape struct {
	items []any
}

func (t *tape) Next() (any, bool) {
	if len(t.items) == 0 {
		return nil, false
	}
	v := t.items[0]
	t.items = t.items[1:]
	return v, true
}

func (t *tape) Stop() {}

type named interface {
	Name() string
}

type user struct {
	name string
}

func (u user) Name() string { return u.name }

// brokenStream is a pull source that fails after n values.
type brokenStream struct {
	n      int
	pulled int
	err    error
}

func (s *brokenStream) Pull(_ context.Context) (*int, error) {
	if s.pulled >= s.n {
		return nil, s.err
	}
	v := s.pulled
	s.pulled++
	return &v, nil
}
