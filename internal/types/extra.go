package types

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Kind identifies which of the closed set of value kinds a Value holds.
type Kind int

const (
	KindString Kind = iota + 1
	KindInt
	KindBool
	KindStrings
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindStrings:
		return "[]string"
	default:
		return "invalid"
	}
}

// Value is one source-specific fact. The zero Value is invalid.
type Value struct {
	kind Kind
	s    string
	i    int
	b    bool
	ss   []string
}

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int returns an integer Value.
func Int(i int) Value { return Value{kind: KindInt, i: i} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Strings returns a list Value. The slice is copied.
func Strings(ss ...string) Value {
	return Value{kind: KindStrings, ss: append([]string{}, ss...)}
}

func (v Value) Kind() Kind { return v.kind }

// IsList reports whether the value accumulates during merges.
func (v Value) IsList() bool { return v.kind == KindStrings }

func (v Value) Str() string { return v.s }

func (v Value) IntValue() int { return v.i }

func (v Value) BoolValue() bool { return v.b }

// List returns the list elements. The caller must not modify them.
func (v Value) List() []string { return v.ss }

// Append returns a list Value with more elements appended. Duplicates are kept.
func (v Value) Append(more ...string) Value {
	out := make([]string, 0, len(v.ss)+len(more))
	out = append(out, v.ss...)
	out = append(out, more...)
	return Value{kind: KindStrings, ss: out}
}

// Sorted returns a copy of a list Value with its elements sorted.
func (v Value) Sorted() Value {
	if v.kind != KindStrings {
		return v
	}
	out := slices.Clone(v.ss)
	slices.Sort(out)
	return Value{kind: KindStrings, ss: out}
}

// Equal reports whether two values have the same kind and content.
// go-cmp picks this method up when comparing records.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == o.s
	case KindInt:
		return v.i == o.i
	case KindBool:
		return v.b == o.b
	case KindStrings:
		return slices.Equal(v.ss, o.ss)
	default:
		return true
	}
}

// Interface returns the raw Go value.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindBool:
		return v.b
	case KindStrings:
		if v.ss == nil {
			return []string{}
		}
		return v.ss
	default:
		return nil
	}
}

func (v Value) GoString() string {
	return fmt.Sprintf("%s(%#v)", v.kind, v.Interface())
}

// MarshalJSON encodes the raw value.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == 0 {
		return nil, fmt.Errorf("marshal invalid extra value")
	}
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes a raw JSON value into one of the four kinds.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case string:
		*v = String(x)
	case bool:
		*v = Bool(x)
	case float64:
		if x != float64(int(x)) {
			return fmt.Errorf("extra value %v is not an integer", x)
		}
		*v = Int(int(x))
	case []any:
		ss := make([]string, 0, len(x))
		for _, e := range x {
			s, ok := e.(string)
			if !ok {
				return fmt.Errorf("extra list element %v is not a string", e)
			}
			ss = append(ss, s)
		}
		*v = Strings(ss...)
	default:
		return fmt.Errorf("unsupported extra value %s", data)
	}
	return nil
}

// Extra maps source-specific keys to strongly kinded values.
type Extra map[string]Value

// Set stores a value, allocating the map if needed.
func (e *Extra) Set(key string, v Value) {
	if *e == nil {
		*e = make(Extra)
	}
	(*e)[key] = v
}

// Clone returns a copy of the map. List values share no backing arrays.
func (e Extra) Clone() Extra {
	if e == nil {
		return nil
	}
	out := make(Extra, len(e))
	for k, v := range e {
		if v.IsList() {
			v = Strings(v.ss...)
		}
		out[k] = v
	}
	return out
}
