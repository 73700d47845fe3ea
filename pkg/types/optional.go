package types

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// Optional distinguishes a JSON field that was absent from one that was
// explicitly null. Absent means "leave the stored value unchanged"; null
// means "clear it"; a value means "overwrite". Partial-update payloads use
// this instead of collapsing both cases into a nil pointer.
type Optional[T any] struct {
	value T
	set   bool
	valid bool
}

// Some builds a present, non-null Optional.
func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, set: true, valid: true}
}

// Null builds a present, explicitly-null Optional.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true}
}

// IsSet reports whether the field appeared in the payload at all.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// IsNull reports whether the field appeared as an explicit null.
func (o Optional[T]) IsNull() bool {
	return o.set && !o.valid
}

// Value returns the decoded value and whether it is present and non-null.
func (o Optional[T]) Value() (T, bool) {
	return o.value, o.set && o.valid
}

// Ptr returns the value as a pointer, or nil when absent or null.
func (o Optional[T]) Ptr() *T {
	if !o.set || !o.valid {
		return nil
	}
	v := o.value
	return &v
}

// UnmarshalJSON is only invoked for fields present in the payload, which is
// what makes the absent/null distinction observable.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		o.valid = false
		var zero T
		o.value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.value); err != nil {
		return err
	}
	o.valid = true
	return nil
}

// MarshalJSON renders null for unset or null values.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set || !o.valid {
		return jsonNull, nil
	}
	return json.Marshal(o.value)
}
