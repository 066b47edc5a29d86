// Package assertion checks the contents of collections: whether a
// value is a collection at all, whether it holds exactly one or zero
// elements, and whether each element meets its own expectation.
//
// Failures are returned as errors that unwrap to ErrAssertionFailed;
// the itertest package turns them into test failures.
package assertion

import (
	"fmt"
	"reflect"
)

// Kind identifies how an Expectation judges an element.
type Kind int

const (
	// KindLiteral compares the element with a value.
	KindLiteral Kind = iota
	// KindType checks the element's dynamic type.
	KindType
	// KindPredicate calls a one-argument function with the element.
	KindPredicate
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindType:
		return "type"
	case KindPredicate:
		return "predicate"
	default:
		return "unknown"
	}
}

// Expectation is what a single collection element is checked
// against.
type Expectation struct {
	kind  Kind
	value any
	typ   reflect.Type
	fn    reflect.Value
	label string
	// invalid is set by constructors handed a nil function.
	invalid *ExpectationError
}

var errorType = reflect.TypeFor[error]()

// Equal expects an element equal to v, as judged by
// testify's ObjectsAreEqual.
func Equal(v any) Expectation {
	return Expectation{kind: KindLiteral, value: v}
}

// OfType expects an element whose dynamic type is assignable to T.
// For interface types this means the element implements T.
func OfType[T any]() Expectation {
	return TypeOf(reflect.TypeFor[T]())
}

// TypeOf is OfType for a reflect.Type known only at run time.
func TypeOf(t reflect.Type) Expectation {
	return Expectation{kind: KindType, typ: t}
}

// Satisfies expects pred to report true for the element. A nil
// pred is an invalid expectation.
func Satisfies(pred func(any) bool) Expectation {
	return predicate(reflect.ValueOf(pred))
}

// Check expects fn to return nil for the element. A non-nil error
// is kept as the position's captured failure. A nil fn is an
// invalid expectation.
func Check(fn func(any) error) Expectation {
	return predicate(reflect.ValueOf(fn))
}

func predicate(fn reflect.Value) Expectation {
	e := Expectation{kind: KindPredicate, fn: fn}
	if fn.IsNil() {
		e.invalid = &ExpectationError{Position: -1, Type: fn.Type()}
	}
	return e
}

// Expect turns a raw argument into an Expectation:
//
//   - an Expectation is used as is;
//   - a reflect.Type becomes a type check;
//   - a function must take exactly one argument and becomes a
//     predicate;
//   - anything else, nil included, is compared for equality.
//
// Functions of any other shape, and Expectations built from a nil
// function, yield an error matching ErrInvalidExpectation.
func Expect(arg any) (Expectation, error) {
	switch a := arg.(type) {
	case Expectation:
		if a.invalid != nil {
			ee := *a.invalid
			return Expectation{}, &ee
		}
		return a, nil
	case reflect.Type:
		if a != nil {
			return TypeOf(a), nil
		}
	}

	rv := reflect.ValueOf(arg)
	if rv.Kind() != reflect.Func {
		return Equal(arg), nil
	}

	t := rv.Type()
	if rv.IsNil() || t.NumIn() != 1 || t.IsVariadic() {
		return Expectation{}, &ExpectationError{Position: -1, Type: t}
	}
	return Expectation{kind: KindPredicate, fn: rv}, nil
}

// resolve converts every raw argument, stopping at the first usage
// error.
func resolve(args []any) ([]Expectation, error) {
	exps := make([]Expectation, len(args))
	for i, arg := range args {
		exp, err := Expect(arg)
		if err != nil {
			if ee, ok := err.(*ExpectationError); ok {
				ee.Position = i
			}
			return nil, err
		}
		exps[i] = exp
	}
	return exps, nil
}

// Kind returns how the expectation judges elements.
func (e Expectation) Kind() Kind {
	return e.kind
}

// String describes the expectation for failure reports.
func (e Expectation) String() string {
	if e.label != "" {
		return e.label
	}
	switch e.kind {
	case KindType:
		return fmt.Sprintf("type %s", e.typ)
	case KindPredicate:
		return e.fn.Type().String()
	default:
		return fmt.Sprintf("%#v", e.value)
	}
}
