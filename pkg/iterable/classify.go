package iterable

import "reflect"

// IsIterable reports whether v is a genuine collection. Strings,
// byte slices and byte arrays are excluded even though they can be
// walked: treating text as a collection of characters is almost
// always a mistake in an assertion.
func IsIterable(v any) bool {
	if v == nil || isTextual(reflect.TypeOf(v)) {
		return false
	}
	return classify(v) != sourceNone
}

// isTextual matches string kinds and byte sequences, named types
// and pointers to byte arrays included.
func isTextual(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Array {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return true
	case reflect.Slice, reflect.Array:
		return t.Elem().Kind() == reflect.Uint8
	}
	return false
}
