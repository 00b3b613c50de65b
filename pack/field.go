package pack

import (
	"bytes"
	"encoding/json"
)

// Field tracks whether a JSON member was present, so records can tell a
// missing field from a zero value. A JSON null counts as present.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(b, []byte("null")) {
		f.Null = true
		return nil
	}
	return json.Unmarshal(b, &f.Value)
}

// Present reports whether the member appeared in the document.
func (f Field[T]) Present() bool {
	return f.Set
}

// Or returns the value, or fallback when the member is missing or null.
func (f Field[T]) Or(fallback T) T {
	if !f.Set || f.Null {
		return fallback
	}
	return f.Value
}
