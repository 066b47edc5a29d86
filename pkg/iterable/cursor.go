// Package iterable classifies values that can be walked element by
// element, opens single-pass cursors over them, and probes their
// length without unbounded consumption.
package iterable

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"reflect"
	"unicode/utf8"
)

// ErrNotIterable is returned when a value offers no way to walk its
// elements.
var ErrNotIterable = errors.New("value is not iterable")

// ErrSourceFailed wraps the error that ended a sequence before it
// was exhausted.
var ErrSourceFailed = errors.New("collection source failed")

// Cursor is a single-pass, forward-only view over a sequence.
type Cursor interface {
	// Next returns the next element. The boolean is false once the
	// sequence is exhausted.
	Next() (any, bool)

	// Stop releases any resources held by the cursor. It is safe
	// to call more than once.
	Stop()
}

// Iterable is implemented by types that hand out their own cursors.
type Iterable interface {
	Iter() Cursor
}

// Sized is implemented by collections that know their length
// without being walked.
type Sized interface {
	Len() int
}

// Counted is the Count() flavour of Sized, as exposed by most
// collection libraries.
type Counted interface {
	Count() int
}

// Indexed is implemented by collections that support random access.
type Indexed interface {
	At(i int) any
}

// Pair is the element type produced when walking maps and
// iter.Seq2 sequences.
type Pair struct {
	Key   any `json:"key" yaml:"key"`
	Value any `json:"value" yaml:"value"`
}

// String renders the pair as "key: value".
func (p Pair) String() string {
	return fmt.Sprintf("%v: %v", p.Key, p.Value)
}

type source int

const (
	sourceNone source = iota
	sourceCursor
	sourceIterable
	sourceIndex
	sourceString
	sourceMap
	sourceChan
	sourceSeq
	sourceSeq2
	sourcePull
)

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
)

// classify determines how v can be walked without touching it.
func classify(v any) source {
	if v == nil {
		return sourceNone
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Func,
		reflect.Chan:
		if rv.IsNil() {
			return sourceNone
		}
	}

	switch v.(type) {
	case Cursor:
		return sourceCursor
	case Iterable:
		return sourceIterable
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return sourceIndex
	case reflect.String:
		return sourceString
	case reflect.Map:
		return sourceMap
	case reflect.Chan:
		if rv.Type().ChanDir()&reflect.RecvDir != 0 {
			return sourceChan
		}
		return sourceNone
	case reflect.Func:
		switch seqArity(rv.Type()) {
		case 1:
			return sourceSeq
		case 2:
			return sourceSeq2
		}
	case reflect.Pointer:
		if rv.Elem().Kind() == reflect.Array {
			return sourceIndex
		}
	}

	if isPuller(rv) {
		return sourcePull
	}
	return sourceNone
}

// seqArity reports 1 for iter.Seq shaped functions, 2 for
// iter.Seq2 shaped ones and 0 otherwise.
func seqArity(t reflect.Type) int {
	if t.NumIn() != 1 || t.NumOut() != 0 || t.IsVariadic() {
		return 0
	}

	yield := t.In(0)
	if yield.Kind() != reflect.Func || yield.IsVariadic() ||
		yield.NumOut() != 1 ||
		yield.Out(0).Kind() != reflect.Bool {
		return 0
	}

	switch yield.NumIn() {
	case 1, 2:
		return yield.NumIn()
	}
	return 0
}

// isPuller matches stream sources of the form
// Pull(context.Context) (*T, error).
func isPuller(rv reflect.Value) bool {
	m := rv.MethodByName("Pull")
	if !m.IsValid() {
		return false
	}

	t := m.Type()
	return t.NumIn() == 1 && t.In(0) == contextType &&
		t.NumOut() == 2 && t.Out(0).Kind() == reflect.Pointer &&
		t.Out(1) == errorType
}

// Open returns a cursor over v. Cursors handed in by the caller are
// borrowed: stopping the returned cursor leaves them usable, only
// their position moves.
func Open(v any) (Cursor, error) {
	src := classify(v)
	rv := reflect.ValueOf(v)

	switch src {
	case sourceCursor:
		return borrowed{v.(Cursor)}, nil
	case sourceIterable:
		c := v.(Iterable).Iter()
		if c == nil {
			return nil, fmt.Errorf(
				"%w: %T returned a nil cursor", ErrNotIterable, v,
			)
		}
		return c, nil
	case sourceIndex:
		if rv.Kind() == reflect.Pointer {
			rv = rv.Elem()
		}
		return &indexCursor{v: rv}, nil
	case sourceString:
		return &stringCursor{s: rv.String()}, nil
	case sourceMap:
		return &mapCursor{it: rv.MapRange()}, nil
	case sourceChan:
		return &chanCursor{v: rv}, nil
	case sourceSeq, sourceSeq2:
		return newSeqCursor(rv, src == sourceSeq2), nil
	case sourcePull:
		return &pullCursor{v: rv}, nil
	}

	return nil, fmt.Errorf("%w: %T", ErrNotIterable, v)
}

// Len reports the length of v when it can be determined without
// walking it.
func Len(v any) (int, bool) {
	switch c := v.(type) {
	case Sized:
		return c.Len(), true
	case Counted:
		return c.Count(), true
	}

	switch classify(v) {
	case sourceIndex, sourceMap:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer {
			rv = rv.Elem()
		}
		return rv.Len(), true
	case sourceString:
		return utf8.RuneCountInString(reflect.ValueOf(v).String()), true
	}
	return 0, false
}

// failer is implemented by cursors that can end on an error.
type failer interface {
	Err() error
}

// Err returns the error that ended c early, wrapped in
// ErrSourceFailed. It returns nil when c ran out normally or cannot
// fail. Call it once Next has reported the end of the sequence.
func Err(c Cursor) error {
	f, ok := c.(failer)
	if !ok {
		return nil
	}
	if err := f.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSourceFailed, err)
	}
	return nil
}

type borrowed struct {
	Cursor
}

func (borrowed) Stop() {}

func (b borrowed) Err() error {
	if f, ok := b.Cursor.(failer); ok {
		return f.Err()
	}
	return nil
}

type indexCursor struct {
	v reflect.Value
	i int
}

func (c *indexCursor) Next() (any, bool) {
	if c.i >= c.v.Len() {
		return nil, false
	}
	item := c.v.Index(c.i).Interface()
	c.i++
	return item, true
}

func (c *indexCursor) Stop() {}

type stringCursor struct {
	s string
}

func (c *stringCursor) Next() (any, bool) {
	if c.s == "" {
		return nil, false
	}
	r, size := utf8.DecodeRuneInString(c.s)
	c.s = c.s[size:]
	return r, true
}

func (c *stringCursor) Stop() {}

type mapCursor struct {
	it *reflect.MapIter
}

func (c *mapCursor) Next() (any, bool) {
	if !c.it.Next() {
		return nil, false
	}
	return Pair{
		Key:   c.it.Key().Interface(),
		Value: c.it.Value().Interface(),
	}, true
}

func (c *mapCursor) Stop() {}

// chanCursor receives until the channel is closed.
type chanCursor struct {
	v reflect.Value
}

func (c *chanCursor) Next() (any, bool) {
	item, ok := c.v.Recv()
	if !ok {
		return nil, false
	}
	return item.Interface(), true
}

func (c *chanCursor) Stop() {}

type seqCursor struct {
	next func() (any, bool)
	stop func()
}

func newSeqCursor(fn reflect.Value, pairs bool) *seqCursor {
	yieldType := fn.Type().In(0)
	resultType := yieldType.Out(0)

	seq := func(yield func(any) bool) {
		y := reflect.MakeFunc(
			yieldType,
			func(args []reflect.Value) []reflect.Value {
				var item any
				if pairs {
					item = Pair{
						Key:   args[0].Interface(),
						Value: args[1].Interface(),
					}
				} else {
					item = args[0].Interface()
				}
				more := reflect.ValueOf(yield(item))
				return []reflect.Value{more.Convert(resultType)}
			},
		)
		fn.Call([]reflect.Value{y})
	}

	next, stop := iter.Pull(seq)
	return &seqCursor{next: next, stop: stop}
}

func (c *seqCursor) Next() (any, bool) {
	return c.next()
}

func (c *seqCursor) Stop() {
	c.stop()
}

// pullCursor adapts Pull(ctx) (*T, error) sources. io.EOF ends the
// sequence; any other error ends it too and is kept for Err.
type pullCursor struct {
	v    reflect.Value
	err  error
	done bool
}

func (c *pullCursor) Next() (any, bool) {
	if c.done {
		return nil, false
	}

	out := c.v.MethodByName("Pull").Call(
		[]reflect.Value{reflect.ValueOf(context.Background())},
	)
	if err, _ := out[1].Interface().(error); err != nil {
		c.done = true
		if !errors.Is(err, io.EOF) {
			c.err = err
		}
		return nil, false
	}
	if out[0].IsNil() {
		return nil, true
	}
	return out[0].Elem().Interface(), true
}

// Stop leaves the source open; it belongs to the caller.
func (c *pullCursor) Stop() {
	c.done = true
}

// Err returns the error that ended the sequence early, if any.
func (c *pullCursor) Err() error {
	return c.err
}
