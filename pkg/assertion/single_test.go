package assertion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.iterables/pkg/iterable"
)

func TestIsIterable(t *testing.T) {
	tests := []struct {
		name string
		v    any
		ok   bool
	}{
		{"nil", nil, false},
		{"string", "abc", false},
		{"bytes", []byte("abc"), false},
		{"byte array", [3]byte{'a', 'b', 'c'}, false},
		{"true", true, false},
		{"false", false, false},
		{"int", 1, false},
		{"empty slice", []int{}, true},
		{"empty array", [0]int{}, true},
		{"empty map", map[string]int{}, true},
		{"empty set", map[int]struct{}{}, true},
		{"sequence", count(2, nil), true},
		{"cursor", &tape{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := IsIterable(tt.v)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrAssertionFailed)
			assert.Equal(t, "Object is not an iterable.", err.Error())
		})
	}
}

func TestSingle(t *testing.T) {
	tests := []struct {
		name  string
		v     any
		want  any
		error string
	}{
		{"one int", []int{5}, 5, ""},
		{"one pointer array", &[1]string{"x"}, "x", ""},
		{"one sequence value", count(1, nil), 0, ""},
		{"one map entry", map[string]int{"a": 1}, iterable.Pair{Key: "a", Value: 1}, ""},
		{"one cursor value", &tape{items: []any{"only"}}, "only", ""},
		{"empty slice", []int{}, nil,
			"A single element was expected, but the iterable was empty."},
		{"empty sequence", count(0, nil), nil,
			"A single element was expected, but the iterable was empty."},
		{"two ints", []int{1, 2}, nil,
			"A single element was expected, but the iterable contained 2 items."},
		{"ten ints", make([]int, 10), nil,
			"A single element was expected, but the iterable contained 10 items."},
		{"two from a sequence", count(2, nil), nil,
			"A single element was expected, but the iterable contained 2 items."},
		{"many from a sequence", count(9, nil), nil,
			"A single element was expected, but the iterable contained 2 or more items."},
		{"infinite", naturals(nil), nil,
			"A single element was expected, but the iterable contained 2 or more items."},
		{"not iterable", 5, nil, "Object is not an iterable."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := quiet().Single(tt.v)
			if tt.error != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrAssertionFailed)
				assert.Equal(t, tt.error, err.Error())
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSingle_ErrorNamesAssertion(t *testing.T) {
	_, err := Single([]int{})

	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Single", ae.Assertion)
}

func TestSingle_ProbeLimitBoundsConsumption(t *testing.T) {
	pulled := 0
	_, err := quiet(WithProbeLimit(4)).Single(naturals(&pulled))

	require.Error(t, err)
	assert.Equal(t,
		"A single element was expected, but the iterable contained 4 or more items.",
		err.Error())
	assert.LessOrEqual(t, pulled, 5)
}

func TestEmpty(t *testing.T) {
	tests := []struct {
		name  string
		v     any
		error string
	}{
		{"empty slice", []int{}, ""},
		{"nil slice", []int(nil), ""},
		{"empty map", map[int]int{}, ""},
		{"empty sequence", count(0, nil), ""},
		{"empty cursor", &tape{}, ""},
		{"one int", []int{1}, "The iterable was expected to be empty, but it contained 1 items."},
		{"three ints", []int{1, 2, 3}, "The iterable was expected to be empty, but it contained 3 items."},
		{"two from a sequence", count(2, nil), "The iterable was expected to be empty, but it contained 2 items."},
		{"long sequence", count(7, nil), "The iterable was not empty as expected."},
		{"infinite", naturals(nil), "The iterable was not empty as expected."},
		{"not iterable", "abc", "Object is not an iterable."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := quiet().Empty(tt.v)
			if tt.error == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrAssertionFailed)
			assert.Equal(t, tt.error, err.Error())
		})
	}
}

func TestEmpty_ProbeLimitFloor(t *testing.T) {
	c := quiet(WithProbeLimit(0))
	assert.Equal(t, 1, c.ProbeLimit())

	err := c.Empty(count(1, nil))
	require.Error(t, err)
	assert.Equal(t,
		"The iterable was expected to be empty, but it contained 1 items.",
		err.Error())

	err = c.Empty(count(5, nil))
	require.Error(t, err)
	assert.Equal(t, "The iterable was not empty as expected.", err.Error())
}
