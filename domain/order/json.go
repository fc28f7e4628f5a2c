package order

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Text is a free-form order field. Clients may send it as a JSON string or
// as a bare number ("zip": 1203).
type Text string

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (t *Text) UnmarshalJSON(data []byte) error {
	s, ok, err := textFromJSON(data)
	if err != nil {
		return fmt.Errorf("expected a string or a number: %w", err)
	}
	if ok {
		*t = Text(s)
	}
	return nil
}

// UnmarshalJSON accepts the status as a JSON string or number, so both
// "status": "2" and "status": 2 mean delivered.
func (s *Status) UnmarshalJSON(data []byte) error {
	v, ok, err := textFromJSON(data)
	if err != nil {
		return fmt.Errorf("status must be a string or a number: %w", err)
	}
	if ok {
		*s = Status(v)
	}
	return nil
}

// Quantity is a requested line count. A numeric string ("2") is accepted as
// well as a JSON number; fractions are rejected.
type Quantity int

// UnmarshalJSON accepts a whole JSON number, a numeric string or null.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("quantity must be a number: %w", err)
	}
	if v, err := n.Int64(); err == nil {
		*q = Quantity(v)
		return nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("quantity %s is not a whole number", n)
	}
	*q = Quantity(f)
	return nil
}

// textFromJSON reads a JSON string or number as text. ok is false for null.
func textFromJSON(data []byte) (s string, ok bool, err error) {
	if bytes.Equal(data, []byte("null")) {
		return "", false, nil
	}
	if err := json.Unmarshal(data, &s); err == nil {
		return s, true, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", false, err
	}
	return n.String(), true, nil
}
