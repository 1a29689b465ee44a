package api

import (
	"encoding/json"
	"strconv"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindAbsent Kind = iota
	KindBool
	KindText
	KindTextList
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindText:
		return "text"
	case KindTextList:
		return "list"
	default:
		return "absent"
	}
}

// Value is a single cell (or metadata field) extracted from a record.
// The zero Value is Absent.
type Value struct {
	kind Kind
	b    bool
	s    string
	list []string
}

func Absent() Value { return Value{} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func Text(s string) Value { return Value{kind: KindText, s: s} }
func TextList(items []string) Value {
	return Value{kind: KindTextList, list: append([]string(nil), items...)}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }
func (v Value) Bool() bool { return v.kind == KindBool && v.b }
func (v Value) Items() []string { return append([]string(nil), v.list...) }

// Text returns the scalar text of the value. Bools render as true/false,
// lists are joined with ", " and Absent is empty.
func (v Value) Text() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindText:
		return v.s
	case KindTextList:
		out := ""
		for i, s := range v.list {
			if i > 0 {
				out += ", "
			}
			out += s
		}
		return out
	default:
		return ""
	}
}

// Truthy reports whether the value counts as set: true, non-empty text or a
// non-empty list.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindText:
		return v.s != ""
	case KindTextList:
		return len(v.list) > 0
	default:
		return false
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindText:
		return json.Marshal(v.s)
	case KindTextList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

// FromAny lifts a decoded JSON/YAML value into a Value. Numbers become text,
// lists become text lists and nested mappings are treated as Absent since a
// mapping has no single cell rendering.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Absent()
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return Text(t)
	case []string:
		return TextList(t)
	case []any:
		items := make([]string, 0, len(t))
		for _, it := range t {
			items = append(items, FormatScalar(it))
		}
		return TextList(items)
	case map[string]any, map[any]any, Record:
		return Absent()
	default:
		if s, ok := formatNumber(x); ok {
			return Text(s)
		}
		return Absent()
	}
}

// FormatScalar renders a decoded scalar the way it reads in a README.
func FormatScalar(x any) string {
	switch t := x.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	}
	if s, ok := formatNumber(x); ok {
		return s
	}
	return FromAny(x).Text()
}

func formatNumber(x any) (string, bool) {
	switch n := x.(type) {
	case int:
		return strconv.Itoa(n), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	case json.Number:
		return n.String(), true
	default:
		return "", false
	}
}
