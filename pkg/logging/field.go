package logging

// LogField creates a Field from a key-value pair.
func LogField(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// StringField creates a Field with a string value.
func StringField(key, value string) Field {
	return Field{Key: key, Value: value}
}

// IntField creates a Field with an integer value.
func IntField(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// BoolField creates a Field with a boolean value.
func BoolField(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// ErrorField creates a Field for an error value. If err is nil,
// the value is set to the string "<nil>".
func ErrorField(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: "<nil>"}
	}
	return Field{Key: "error", Value: err.Error()}
}

// PositionField tags an entry with the index of the collection
// element it concerns.
func PositionField(index int) Field {
	return Field{Key: "position", Value: index}
}

// CategoryField tags an entry with a warning category, such as
// "user" for advisories aimed at the test author.
func CategoryField(category string) Field {
	return Field{Key: "category", Value: category}
}

// mergeFields returns base overlaid with extra without touching
// either input.
func mergeFields(base map[string]any, extra ...Field) map[string]any {
	merged := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for _, f := range extra {
		merged[f.Key] = f.Value
	}
	return merged
}
