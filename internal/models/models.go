package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTable
)

// Value is a tagged union over the scalar and table types that can appear in
// a Lua table literal. Exactly one of the payload fields is meaningful,
// selected by Kind. Numbers keep the integer/float distinction of the source
// literal (a decimal point selects float).
type Value struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Table *Table
}

// Nil returns the nil Value.
func Nil() Value {
	return Value{Kind: KindNil}
}

// BoolValue wraps a boolean.
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// IntValue wraps an integer.
func IntValue(n int64) Value {
	return Value{Kind: KindInt, Int: n}
}

// FloatValue wraps a float.
func FloatValue(f float64) Value {
	return Value{Kind: KindFloat, Float: f}
}

// StringValue wraps a string.
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// TableValue wraps a table.
func TableValue(t *Table) Value {
	return Value{Kind: KindTable, Table: t}
}

// MarshalJSON renders the Value as its underlying JSON type.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindBool:
		return json.Marshal(v.Bool)
	case KindInt:
		return json.Marshal(v.Int)
	case KindFloat:
		return json.Marshal(v.Float)
	case KindString:
		return json.Marshal(v.Str)
	case KindTable:
		return json.Marshal(v.Table)
	default:
		return []byte("null"), nil
	}
}

// String renders the Value roughly the way its source literal would look.
// Used for diagnostics.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindString:
		return v.Str
	case KindTable:
		return "{...}"
	default:
		return "nil"
	}
}

// ArrayItemsKey is the reserved key under which a Table's unkeyed entries
// are serialized.
const ArrayItemsKey = "_array_items"

// Table is a Lua-style mixed array/map literal: an insertion-ordered mapping
// from string keys to Values, plus a separate ordered bucket for entries that
// appeared without a key. A Table with no unkeyed entries omits the bucket
// from its JSON form entirely.
type Table struct {
	keys   []string
	fields map[string]Value
	items  []Value
}

// Record is a Table guaranteed by the extractor to contain a "type" key; it
// is the unit of extraction output.
type Record = *Table

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{fields: make(map[string]Value)}
}

// Set inserts or replaces a keyed entry. Duplicate keys are last write wins;
// the key keeps its original insertion position.
func (t *Table) Set(key string, v Value) {
	if _, exists := t.fields[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.fields[key] = v
}

// Get returns the value for key and whether it is present.
func (t *Table) Get(key string) (Value, bool) {
	v, ok := t.fields[key]
	return v, ok
}

// Has reports whether key is present.
func (t *Table) Has(key string) bool {
	_, ok := t.fields[key]
	return ok
}

// GetString returns the string value for key, or "" when the key is absent
// or holds a non-string value.
func (t *Table) GetString(key string) string {
	if v, ok := t.fields[key]; ok && v.Kind == KindString {
		return v.Str
	}
	return ""
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not mutate it.
func (t *Table) Keys() []string {
	return t.keys
}

// Len returns the number of keyed entries.
func (t *Table) Len() int {
	return len(t.keys)
}

// Append adds an unkeyed entry to the array bucket.
func (t *Table) Append(v Value) {
	t.items = append(t.items, v)
}

// Items returns the array bucket in insertion order. The returned slice is
// shared; callers must not mutate it.
func (t *Table) Items() []Value {
	return t.items
}

// Copy returns a shallow copy of the Table: keyed entries and the array
// bucket are copied, nested tables are shared. The catalog uses it to attach
// derived fields to backfilled records without touching the source tree.
func (t *Table) Copy() *Table {
	c := &Table{
		keys:   make([]string, len(t.keys)),
		fields: make(map[string]Value, len(t.fields)),
	}
	copy(c.keys, t.keys)
	for k, v := range t.fields {
		c.fields[k] = v
	}
	if len(t.items) > 0 {
		c.items = make([]Value, len(t.items))
		copy(c.items, t.items)
	}
	return c
}

// MarshalJSON renders the Table as a JSON object with keys in insertion
// order, followed by the "_array_items" bucket when it is non-empty.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(t.fields[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	if len(t.items) > 0 {
		if len(t.keys) > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`"` + ArrayItemsKey + `":`)
		items, err := json.Marshal(t.items)
		if err != nil {
			return nil, err
		}
		buf.Write(items)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
