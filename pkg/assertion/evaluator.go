package assertion

import (
	"errors"
	"reflect"

	"github.com/stretchr/testify/assert"
)

// evaluate checks one element against the expectation.
func (e Expectation) evaluate(actual any) Outcome {
	out := Outcome{Expectation: e, Evaluated: true, Actual: actual}
	if e.invalid != nil {
		out.Err = e.invalid
		return out
	}

	switch e.kind {
	case KindType:
		out.Passed = isInstance(actual, e.typ)
		out.Detail = Comparison{Actual: actual, Expected: e.typ}
	case KindPredicate:
		e.call(actual, &out)
	default:
		out.Passed = assert.ObjectsAreEqual(e.value, actual)
		out.Detail = Comparison{Actual: actual, Expected: e.value}
	}
	return out
}

// isInstance reports whether actual's dynamic type is assignable to
// t. A nil element is an instance of nothing.
func isInstance(actual any, t reflect.Type) bool {
	if actual == nil {
		return false
	}
	return reflect.TypeOf(actual).AssignableTo(t)
}

// call invokes the predicate. A panic carrying an assertion failure
// is captured; any other panic propagates.
func (e Expectation) call(actual any, out *Outcome) {
	arg, err := argument(actual, e.fn.Type().In(0))
	if err != nil {
		out.Err = err
		return
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrAssertionFailed) {
			panic(r)
		}
		out.Passed = false
		out.Detail = nil
		out.Err = err
	}()

	interpret(e.fn.Call([]reflect.Value{arg}), out)
}

// argument adapts actual to the predicate's parameter type.
func argument(actual any, param reflect.Type) (reflect.Value, error) {
	if actual == nil {
		switch param.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map,
			reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(param), nil
		}
		return reflect.Value{}, &ArgumentTypeError{Param: param}
	}

	v := reflect.ValueOf(actual)
	if !v.Type().AssignableTo(param) {
		return reflect.Value{}, &ArgumentTypeError{
			Actual: actual, Param: param,
		}
	}
	return v, nil
}

// interpret maps a predicate's results onto the outcome:
//
//	()            pass
//	(bool)        false fails, true passes
//	(error)       non-nil fails and is captured
//	(T)           pass, T is kept as the detail
//	(T, error)    non-nil error fails, otherwise as (T)
func interpret(results []reflect.Value, out *Outcome) {
	switch {
	case len(results) == 0:
		out.Passed = true
	case len(results) == 2 && results[1].Type() == errorType:
		if err, _ := results[1].Interface().(error); err != nil {
			out.Err = err
			return
		}
		single(results[0], out)
	case len(results) == 1:
		single(results[0], out)
	default:
		values := make([]any, len(results))
		for i, r := range results {
			values[i] = r.Interface()
		}
		out.Passed = true
		out.Detail = values
	}
}

func single(v reflect.Value, out *Outcome) {
	if v.Type().Implements(errorType) {
		if isNil(v) {
			out.Passed = true
			return
		}
		out.Err = v.Interface().(error)
		return
	}

	if v.Kind() == reflect.Bool && !v.Bool() {
		return
	}

	out.Passed = true
	out.Detail = v.Interface()
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map,
		reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
