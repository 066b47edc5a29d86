package assertion

import (
	"digital.vasic.iterables/pkg/iterable"
	"digital.vasic.iterables/pkg/logging"
)

// Collection checks the elements of v in order, one expectation per
// element. Each expectation is resolved with Expect, so plain
// values, reflect.Type markers and one-argument functions can be
// mixed freely:
//
//	err := assertion.Collection(items,
//		1,
//		func(x int) bool { return x > 1 },
//		reflect.TypeFor[int](),
//	)
//
// Expectations are validated before v is touched; an invalid one
// is returned as is. A collection that runs out early, or has
// elements left once all expectations are used, fails at once with a
// Mismatch. Otherwise every position is evaluated and a failure
// reports all of them. At most len(expectations)+1 elements are
// pulled, so infinite sequences are safe. A source that fails while
// being walked returns its error, wrapped in
// iterable.ErrSourceFailed, instead of a verdict.
//
// Called without expectations, Collection logs an advisory and
// behaves like Empty.
func (c *Checker) Collection(v any, expectations ...any) (err error) {
	defer c.observe("Collection", &err)()

	if err := checkIterable(v); err != nil {
		return err
	}

	exps, err := resolve(expectations)
	if err != nil {
		return err
	}

	if len(exps) == 0 {
		if c.warnEmpty {
			c.logger.Warn(msgEmptyAdvisory, logging.CategoryField("user"))
		}
		return c.empty(v)
	}

	cur, err := iterable.Open(v)
	if err != nil {
		return err
	}
	defer cur.Stop()

	outcomes := make([]Outcome, len(exps))
	for i, exp := range exps {
		outcomes[i].Expectation = exp
	}

	for i, exp := range exps {
		actual, ok := cur.Next()
		if !ok {
			if err := iterable.Err(cur); err != nil {
				return err
			}
			return c.mismatch(outcomes, MismatchTooFew, i)
		}
		outcomes[i] = exp.evaluate(actual)
		c.trace(i, actual, outcomes[i])
	}

	if _, ok := cur.Next(); ok {
		return c.mismatch(outcomes, MismatchTooMany, len(exps)+1)
	}
	if err := iterable.Err(cur); err != nil {
		return err
	}

	return verdict(outcomes)
}

// All checks every element of v against one expectation. There is
// no length to disagree with, so only per-element failures are
// reported; an empty collection passes. All walks v to the end.
func (c *Checker) All(v any, expectation any) (err error) {
	defer c.observe("All", &err)()

	if err := checkIterable(v); err != nil {
		return err
	}

	exp, err := Expect(expectation)
	if err != nil {
		return err
	}

	cur, err := iterable.Open(v)
	if err != nil {
		return err
	}
	defer cur.Stop()

	var outcomes []Outcome
	for i := 0; ; i++ {
		actual, ok := cur.Next()
		if !ok {
			if err := iterable.Err(cur); err != nil {
				return err
			}
			break
		}
		o := exp.evaluate(actual)
		c.trace(i, actual, o)
		outcomes = append(outcomes, o)
	}

	return verdict(outcomes)
}

func (c *Checker) mismatch(
	outcomes []Outcome, kind MismatchKind, produced int,
) error {
	c.metrics.RecordMismatch(kind.String())
	return newCollectionError(outcomes, &Mismatch{
		Kind:      kind,
		Produced:  produced,
		Requested: len(outcomes),
	})
}

// verdict returns nil when every outcome passed.
func verdict(outcomes []Outcome) error {
	for _, o := range outcomes {
		if !o.Passed {
			return newCollectionError(outcomes, nil)
		}
	}
	return nil
}

func (c *Checker) trace(i int, actual any, o Outcome) {
	c.metrics.RecordElement(o.Expectation.Kind().String(), o.Passed)

	fields := []logging.Field{
		logging.PositionField(i),
		logging.BoolField("passed", o.Passed),
		logging.LogField("actual", actual),
		logging.StringField("expected", o.Expectation.String()),
	}
	if o.Err != nil {
		fields = append(fields, logging.ErrorField(o.Err))
	}
	c.logger.Debug("collection element checked", fields...)
}
