package assertion

import (
	"fmt"
	"strings"
)

// AllOf expects an element to meet every one of exps. It fails on
// the first expectation that does not hold.
func AllOf(exps ...Expectation) Expectation {
	e := Check(func(v any) error {
		for i, exp := range exps {
			if o := exp.evaluate(v); !o.Passed {
				return subFailure(i, exp, v, o)
			}
		}
		return nil
	})
	e.label = composeLabel("all of", exps)
	e.invalid = firstInvalid(exps...)
	return e
}

// AnyOf expects an element to meet at least one of exps. With no
// expectations nothing can match and every element fails.
func AnyOf(exps ...Expectation) Expectation {
	e := Check(func(v any) error {
		for _, exp := range exps {
			if exp.evaluate(v).Passed {
				return nil
			}
		}
		return fmt.Errorf(
			"%w: none of %d expectations held for %v",
			ErrAssertionFailed, len(exps), v,
		)
	})
	e.label = composeLabel("any of", exps)
	e.invalid = firstInvalid(exps...)
	return e
}

// Not expects an element that fails exp.
func Not(exp Expectation) Expectation {
	e := Check(func(v any) error {
		if exp.evaluate(v).Passed {
			return fmt.Errorf(
				"%w: %s unexpectedly held for %v",
				ErrAssertionFailed, exp, v,
			)
		}
		return nil
	})
	e.label = "not " + exp.String()
	e.invalid = firstInvalid(exp)
	return e
}

func subFailure(i int, exp Expectation, v any, o Outcome) error {
	if o.Err != nil {
		return fmt.Errorf(
			"%w: expectation %d (%s) failed for %v: %w",
			ErrAssertionFailed, i, exp, v, o.Err,
		)
	}
	return fmt.Errorf(
		"%w: expectation %d (%s) failed for %v",
		ErrAssertionFailed, i, exp, v,
	)
}

// firstInvalid returns the error of the first expectation built
// from a nil function, so a composite is as invalid as its parts.
func firstInvalid(exps ...Expectation) *ExpectationError {
	for _, exp := range exps {
		if exp.invalid != nil {
			return exp.invalid
		}
	}
	return nil
}

func composeLabel(op string, exps []Expectation) string {
	parts := make([]string, len(exps))
	for i, exp := range exps {
		parts[i] = exp.String()
	}
	return op + " [" + strings.Join(parts, ", ") + "]"
}
