package patch

import "encoding/json"

// Optional is a tri-state JSON field: absent, explicit null, or a value.
// The zero value means the field was not present in the payload, which is
// what keeps omitted fields from being overwritten.
type Optional[T any] struct {
	Present bool
	Valid   bool
	Value   T
}

// Some builds a present, non-null Optional. Mostly useful in tests.
func Some[T any](value T) Optional[T] {
	return Optional[T]{Present: true, Valid: true, Value: value}
}

// Null builds a present but null Optional.
func Null[T any]() Optional[T] {
	return Optional[T]{Present: true}
}

// UnmarshalJSON is only invoked for keys present in the payload, so Present
// is true whenever it runs.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON round-trips the tri-state back into JSON.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Get returns the value and whether it was present and non-null.
func (o Optional[T]) Get() (T, bool) {
	if !o.Present || !o.Valid {
		var zero T
		return zero, false
	}
	return o.Value, true
}
