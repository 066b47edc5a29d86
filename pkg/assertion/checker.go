package assertion

import (
	"os"
	"time"

	"digital.vasic.iterables/pkg/config"
	"digital.vasic.iterables/pkg/logging"
	"digital.vasic.iterables/pkg/metrics"
)

// DefaultProbeLimit is how many elements Single and Empty count
// exactly before settling for a lower bound.
const DefaultProbeLimit = 2

// Checker runs assertions with a given logger and probe limit. It
// is immutable and safe for concurrent use.
type Checker struct {
	logger     logging.Logger
	metrics    metrics.Recorder
	probeLimit int
	warnEmpty  bool
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the logger receiving advisories and traces.
func WithLogger(l logging.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the recorder receiving assertion counts.
func WithMetrics(r metrics.Recorder) Option {
	return func(c *Checker) {
		if r != nil {
			c.metrics = r
		}
	}
}

// WithProbeLimit sets the probe limit. Values below 1 are raised
// to 1, the least that can tell empty from non-empty.
func WithProbeLimit(n int) Option {
	return func(c *Checker) {
		c.probeLimit = max(n, 1)
	}
}

// WithoutEmptyWarning silences the advisory emitted when Collection
// is called without expectations.
func WithoutEmptyWarning() Option {
	return func(c *Checker) {
		c.warnEmpty = false
	}
}

// NewChecker creates a Checker. Without options it warns on stderr
// and probes DefaultProbeLimit elements.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		logger: logging.NewTruncatingLogger(
			logging.NewConsoleLoggerTo(
				os.Stderr, logging.LevelWarn, false,
			),
			logging.DefaultMaxValueLength,
		),
		metrics:    metrics.NoopRecorder{},
		probeLimit: DefaultProbeLimit,
		warnEmpty:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromConfig creates a Checker described by cfg.
func FromConfig(cfg config.Config) (*Checker, error) {
	logger, err := config.NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithLogger(logger),
		WithProbeLimit(cfg.ProbeLimit),
	}
	if !cfg.WarnOnEmptyExpectations {
		opts = append(opts, WithoutEmptyWarning())
	}
	return NewChecker(opts...), nil
}

// Logger returns the checker's logger.
func (c *Checker) Logger() logging.Logger {
	return c.logger
}

// ProbeLimit returns the checker's probe limit.
func (c *Checker) ProbeLimit() int {
	return c.probeLimit
}

// observe records the assertion once the deferred call runs. err
// must point at the caller's named result.
func (c *Checker) observe(name string, err *error) func() {
	start := time.Now()
	return func() {
		c.metrics.RecordAssertion(name, *err == nil, time.Since(start))
	}
}

var defaultChecker = NewChecker()

// Default returns the Checker behind the package-level functions.
func Default() *Checker {
	return defaultChecker
}

// IsIterable fails unless v is a collection. See Checker.IsIterable.
func IsIterable(v any) error {
	return defaultChecker.IsIterable(v)
}

// Single returns the only element of v. See Checker.Single.
func Single(v any) (any, error) {
	return defaultChecker.Single(v)
}

// Empty fails unless v has no elements. See Checker.Empty.
func Empty(v any) error {
	return defaultChecker.Empty(v)
}

// Collection checks v element by element. See Checker.Collection.
func Collection(v any, expectations ...any) error {
	return defaultChecker.Collection(v, expectations...)
}

// All checks every element of v. See Checker.All.
func All(v any, expectation any) error {
	return defaultChecker.All(v, expectation)
}
