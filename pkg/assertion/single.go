package assertion

import (
	"reflect"

	"digital.vasic.iterables/pkg/iterable"
)

// IsIterable fails with "Object is not an iterable." unless v is a
// collection in the sense of iterable.IsIterable.
func (c *Checker) IsIterable(v any) (err error) {
	defer c.observe("IsIterable", &err)()
	return checkIterable(v)
}

func checkIterable(v any) error {
	if !iterable.IsIterable(v) {
		return fail("IsIterable", msgNotIterable)
	}
	return nil
}

// Single returns the only element of v. Maps yield their single
// entry as an iterable.Pair.
//
// Values without indexed access are walked: cursors, channels and
// other single-pass sources lose up to ProbeLimit+1 elements.
func (c *Checker) Single(v any) (item any, err error) {
	defer c.observe("Single", &err)()

	if err := checkIterable(v); err != nil {
		return nil, err
	}

	first, exact, count, err := c.first(v)
	if err != nil {
		return nil, err
	}

	switch {
	case count == 0:
		return nil, fail("Single", msgSingleEmpty)
	case count > 1 && exact:
		return nil, fail("Single", msgSingleMany, count)
	case count > 1:
		return nil, fail("Single", msgSingleAtLeast, count)
	}
	return first, nil
}

// first returns the first element and the element count, using
// direct access when the collection supports it.
func (c *Checker) first(v any) (any, bool, int, error) {
	if n, ok := iterable.Len(v); ok {
		if n > 0 {
			if item, ok := at0(v); ok {
				return item, true, n, nil
			}
		}
		// The element only matters when there is exactly one.
		if n != 1 {
			return nil, true, n, nil
		}
	}
	return iterable.First(v, c.probeLimit)
}

// at0 reads the first element without a cursor.
func at0(v any) (any, bool) {
	if ix, ok := v.(iterable.Indexed); ok {
		return ix.At(0), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.Array {
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Index(0).Interface(), true
	case reflect.Map:
		it := rv.MapRange()
		if !it.Next() {
			return nil, false
		}
		return iterable.Pair{
			Key:   it.Key().Interface(),
			Value: it.Value().Interface(),
		}, true
	}
	return nil, false
}

// Empty fails unless v has no elements. When v has to be walked and
// turns out longer than the probe limit, the count is omitted from
// the message since only a lower bound is known.
func (c *Checker) Empty(v any) (err error) {
	defer c.observe("Empty", &err)()
	return c.empty(v)
}

func (c *Checker) empty(v any) error {
	if err := checkIterable(v); err != nil {
		return err
	}

	exact, n, err := iterable.ProbeLength(v, c.probeLimit)
	if err != nil {
		return err
	}

	switch {
	case n > 0 && exact:
		return fail("Empty", msgNotEmpty, n)
	case !exact:
		return fail("Empty", msgNotEmptyInexact)
	}
	return nil
}
