package iterable

import (
	"errors"
	"fmt"
)

// ErrNegativeLimit is returned when a probe is given a negative cap.
var ErrNegativeLimit = errors.New("probe limit must not be negative")

// ProbeLength returns the length of v. When the length is not
// available without walking, at most limit+1 elements are consumed:
// a sequence that ends in time yields (true, count), a longer one
// yields (false, limit), a lower bound. A source that fails while
// being walked returns its error wrapped in ErrSourceFailed.
//
// Walking advances single-pass sources such as channels, cursors
// and pull-based streams; the consumed elements are gone.
func ProbeLength(v any, limit int) (exact bool, count int, err error) {
	if limit < 0 {
		return false, 0, fmt.Errorf("%w: %d", ErrNegativeLimit, limit)
	}

	if n, ok := Len(v); ok {
		return true, n, nil
	}

	c, err := Open(v)
	if err != nil {
		return false, 0, err
	}
	defer c.Stop()

	for {
		if _, ok := c.Next(); !ok {
			if err := Err(c); err != nil {
				return false, count, err
			}
			return true, count, nil
		}
		if count >= limit {
			return false, limit, nil
		}
		count++
	}
}

// First walks v like ProbeLength but also returns the first element.
// Sizes are never taken from Len here, so the cursor is always
// opened; callers use it when no cheap indexed access exists.
func First(v any, limit int) (
	first any, exact bool, count int, err error,
) {
	if limit < 0 {
		return nil, false, 0, fmt.Errorf(
			"%w: %d", ErrNegativeLimit, limit,
		)
	}

	c, err := Open(v)
	if err != nil {
		return nil, false, 0, err
	}
	defer c.Stop()

	first, ok := c.Next()
	if !ok {
		if err := Err(c); err != nil {
			return nil, false, 0, err
		}
		return nil, true, 0, nil
	}

	count = 1
	for {
		if _, ok := c.Next(); !ok {
			if err := Err(c); err != nil {
				return nil, false, count, err
			}
			return first, true, count, nil
		}
		if count >= limit {
			return first, false, count, nil
		}
		count++
	}
}
