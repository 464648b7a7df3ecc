package operation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// OptionValue is the value of a select option: either a number or a string.
// The zero value is the empty string.
type OptionValue struct {
	str    string
	num    float64
	number bool
}

// String constructs a string option value.
func String(s string) OptionValue {
	return OptionValue{str: s}
}

// Number constructs a numeric option value.
func Number(n float64) OptionValue {
	return OptionValue{num: n, number: true}
}

// IsNumber reports whether the value holds a number.
func (v OptionValue) IsNumber() bool { return v.number }

// IsEmpty reports whether the value is the empty string.
func (v OptionValue) IsEmpty() bool { return !v.number && v.str == "" }

// Float returns the numeric value, or zero for string values.
func (v OptionValue) Float() float64 {
	if !v.number {
		return 0
	}
	return v.num
}

// String returns the canonical text form used in form submissions.
func (v OptionValue) String() string {
	if v.number {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

// Interface returns the value as float64 or string.
func (v OptionValue) Interface() any {
	if v.number {
		return v.num
	}
	return v.str
}

// Equal compares kind and value.
func (v OptionValue) Equal(other OptionValue) bool {
	if v.number != other.number {
		return false
	}
	if v.number {
		return v.num == other.num
	}
	return v.str == other.str
}

// MarshalJSON emits a JSON number or string.
func (v OptionValue) MarshalJSON() ([]byte, error) {
	if v.number {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.str)
}

// UnmarshalJSON accepts a JSON number or string.
func (v *OptionValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = String(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("operation: option value must be a number or string: %w", err)
	}
	*v = Number(n)
	return nil
}

// MarshalYAML emits the plain scalar.
func (v OptionValue) MarshalYAML() (any, error) {
	return v.Interface(), nil
}
