package iterable

import (
	"encoding/json"
	"iter"
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

type label string

type blob []byte

func TestIsIterable(t *testing.T) {
	var nilSlice []int
	var nilChan chan int
	var nilCursor *countdown
	var nilSeq iter.Seq[int]

	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{"nil", nil, false},
		{"string", "abc", false},
		{"named string", label("abc"), false},
		{"byte slice", []byte("abc"), false},
		{"named byte slice", blob("abc"), false},
		{"raw json", json.RawMessage(`[1]`), false},
		{"byte array", [3]byte{1, 2, 3}, false},
		{"byte array pointer", &[3]byte{1, 2, 3}, false},
		{"true", true, false},
		{"false", false, false},
		{"int", 1, false},
		{"float", 3.14, false},
		{"struct", struct{ A int }{1}, false},
		{"func", func(int) int { return 0 }, false},
		{"nil cursor pointer", nilCursor, false},
		{"nil chan", nilChan, false},
		{"nil seq", nilSeq, false},
		{"send-only chan", make(chan<- int), false},
		{"empty slice", []int{}, true},
		{"nil slice", nilSlice, true},
		{"empty array", [0]int{}, true},
		{"array pointer", &[2]int{1, 2}, true},
		{"map", map[string]int{}, true},
		{"set", map[int]struct{}{}, true},
		{"rune slice", []rune("abc"), true},
		{"chan", make(chan int), true},
		{"seq", slices.Values([]int{1}), true},
		{"seq2", maps.All(map[int]int{}), true},
		{"cursor", newCountdown(2), true},
		{"iterable", ring{1, 2}, true},
		{"puller", &pullSource{n: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsIterable(tt.value))
		})
	}
}

func TestIsIterable_DoesNotConsume(t *testing.T) {
	c := newCountdown(3)

	assert.True(t, IsIterable(c))
	assert.True(t, IsIterable(c))
	assert.Equal(t, 3, c.remaining)
}
