package iterable

import (
	"context"
	"io"
)

// countdown is a single-pass cursor without a cheap length.
type countdown struct {
	remaining int
	next      int
	stopped   int
}

func newCountdown(n int) *countdown {
	return &countdown{remaining: n}
}

func (c *countdown) Next() (any, bool) {
	if c.remaining == 0 {
		return nil, false
	}
	c.remaining--
	v := c.next
	c.next++
	return v, true
}

func (c *countdown) Stop() { c.stopped++ }

// ring hands out a fresh cursor on every call.
type ring []int

func (r ring) Iter() Cursor {
	return &indexSlice{items: r}
}

type indexSlice struct {
	items []int
	i     int
}

func (s *indexSlice) Next() (any, bool) {
	if s.i >= len(s.items) {
		return nil, false
	}
	s.i++
	return s.items[s.i-1], true
}

func (s *indexSlice) Stop() {}

// pullSource mimics a stream source with Pull(ctx) (*T, error).
type pullSource struct {
	n      int
	pulled int
	err    error
}

func (p *pullSource) Pull(_ context.Context) (*int, error) {
	if p.pulled >= p.n {
		if p.err != nil {
			return nil, p.err
		}
		return nil, io.EOF
	}
	v := p.pulled
	p.pulled++
	return &v, nil
}

// sized reports a length it never lets anyone walk.
type sized struct {
	n int
}

func (s sized) Len() int { return s.n }

func (s sized) Iter() Cursor { return newCountdown(s.n) }

type counted struct {
	n int
}

func (c counted) Count() int { return c.n }

func (c counted) Iter() Cursor { return newCountdown(c.n) }
