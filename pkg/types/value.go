package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the two value shapes routines operate on.
type Kind int

const (
	// KindInt is a single integer value.
	KindInt Kind = iota

	// KindList is a homogeneous list of integers.
	KindList
)

// Value is a concrete routine value: either an integer or an integer list.
// The zero Value is the integer 0.
type Value struct {
	Kind Kind
	Int  int
	List []int
}

// IntValue wraps an integer as a Value.
func IntValue(n int) Value {
	return Value{Kind: KindInt, Int: n}
}

// ListValue wraps an integer list as a Value. The slice is not copied.
func ListValue(xs []int) Value {
	if xs == nil {
		xs = []int{}
	}
	return Value{Kind: KindList, List: xs}
}

// Equal reports value equality: same kind and same integer content.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	if v.Kind == KindInt {
		return v.Int == other.Int
	}
	if len(v.List) != len(other.List) {
		return false
	}
	for i := range v.List {
		if v.List[i] != other.List[i] {
			return false
		}
	}
	return true
}

// Len returns the list length, or -1 for integer values.
func (v Value) Len() int {
	if v.Kind != KindList {
		return -1
	}
	return len(v.List)
}

// String renders the value the way it appears in routine examples.
func (v Value) String() string {
	if v.Kind == KindInt {
		return strconv.Itoa(v.Int)
	}
	parts := make([]string, len(v.List))
	for i, x := range v.List {
		parts[i] = strconv.Itoa(x)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// MarshalJSON encodes integers as JSON numbers and lists as JSON arrays.
// Empty lists encode as [] rather than null.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == KindInt {
		return json.Marshal(v.Int)
	}
	if v.List == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.List)
}

// UnmarshalJSON decodes a JSON number into an integer value and a JSON
// array of numbers into a list value.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return fmt.Errorf("empty value")
	}
	if trimmed[0] == '[' {
		var xs []int
		if err := json.Unmarshal(data, &xs); err != nil {
			return fmt.Errorf("decoding list value: %w", err)
		}
		if xs == nil {
			xs = []int{}
		}
		*v = Value{Kind: KindList, List: xs}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding integer value: %w", err)
	}
	*v = Value{Kind: KindInt, Int: n}
	return nil
}
