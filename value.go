// value.go
//
// Runtime value model for NIKL. Every runtime datum is a Value: a small
// tagged union with a discriminant Tag and a Go payload in Data. Collection
// payloads are pointers so values stay cheap to copy; deep copies go through
// cloneValue.
package nikl

import (
	"strconv"
	"strings"
)

type ValueTag int

const (
	VTNull    ValueTag = iota // null (no payload)
	VTBool                    // bool
	VTInt                     // int64
	VTFloat                   // float64
	VTStr                     // string
	VTArray                   // []Value
	VTTuple                   // []Value (fixed-shape)
	VTMap                     // *MapObject (ordered key/value pairs)
	VTFunc                    // *Function (user closure)
	VTBuiltin                 // *Builtin (native)
)

// Value is the universal runtime carrier used by the interpreter.
//
// Invariants:
//   - When Tag==VTNull, Data is nil.
//   - When Tag==VTMap, Data is *MapObject preserving insertion order.
//   - VTArray and VTTuple both carry []Value; the Tag decides rendering and
//     iteration behavior.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Null is the singleton null Value.
var Null = Value{Tag: VTNull}

// Primitive constructors for convenience.
func Bool(b bool) Value     { return Value{Tag: VTBool, Data: b} }
func Int(n int64) Value     { return Value{Tag: VTInt, Data: n} }
func Float(f float64) Value { return Value{Tag: VTFloat, Data: f} }
func Str(s string) Value    { return Value{Tag: VTStr, Data: s} }
func Arr(xs []Value) Value  { return Value{Tag: VTArray, Data: xs} }
func Tup(xs []Value) Value  { return Value{Tag: VTTuple, Data: xs} }

// MapEntry is one key/value pair of a MapObject.
type MapEntry struct {
	Key Value
	Val Value
}

// MapObject is NIKL's HashMap: an insertion-ordered pair list. Keys may be
// any Value; lookup is linear using deep equality. Iteration and rendering
// follow insertion order.
type MapObject struct {
	Entries []MapEntry
}

// Get returns the value stored under key, if present.
func (m *MapObject) Get(key Value) (Value, bool) {
	for _, e := range m.Entries {
		if valueEquals(e.Key, key) {
			return e.Val, true
		}
	}
	return Null, false
}

// Set replaces the value of an existing key or appends a new entry.
func (m *MapObject) Set(key, val Value) {
	for i, e := range m.Entries {
		if valueEquals(e.Key, key) {
			m.Entries[i].Val = val
			return
		}
	}
	m.Entries = append(m.Entries, MapEntry{Key: key, Val: val})
}

// MapVal wraps a MapObject into a Value (Tag=VTMap).
func MapVal(m *MapObject) Value { return Value{Tag: VTMap, Data: m} }

// Function is a user-defined function. Env is the closure snapshot taken at
// definition time; calls run in a fresh child of it.
type Function struct {
	Name   string
	Params []string
	Body   []Statement
	Env    *Env
}

// FuncVal wraps *Function into a Value (Tag=VTFunc).
func FuncVal(f *Function) Value { return Value{Tag: VTFunc, Data: f} }

// Builtin is a native function implemented in Go.
type Builtin struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

// BuiltinVal wraps *Builtin into a Value (Tag=VTBuiltin).
func BuiltinVal(b *Builtin) Value { return Value{Tag: VTBuiltin, Data: b} }

// String renders the value's display form: the representation print writes
// and the REPL echoes. Strings render bare, booleans as True/False, null as
// None, collections recursively in insertion order.
func (v Value) String() string {
	switch v.Tag {
	case VTNull:
		return "None"
	case VTBool:
		if v.Data.(bool) {
			return "True"
		}
		return "False"
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTFloat:
		return strconv.FormatFloat(v.Data.(float64), 'f', -1, 64)
	case VTStr:
		return v.Data.(string)
	case VTArray:
		return "[" + joinValues(v.Data.([]Value)) + "]"
	case VTTuple:
		return "(" + joinValues(v.Data.([]Value)) + ")"
	case VTMap:
		m := v.Data.(*MapObject)
		parts := make([]string, len(m.Entries))
		for i, e := range m.Entries {
			parts[i] = e.Key.String() + ": " + e.Val.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case VTFunc:
		return "<function " + v.Data.(*Function).Name + ">"
	case VTBuiltin:
		return "<builtin function>"
	default:
		return "<unknown>"
	}
}

func joinValues(xs []Value) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = x.String()
	}
	return strings.Join(parts, ", ")
}

// TypeName is the name the `type` builtin reports.
func (v Value) TypeName() string {
	switch v.Tag {
	case VTNull:
		return "None"
	case VTBool:
		return "Boolean"
	case VTInt:
		return "Integer"
	case VTFloat:
		return "Float"
	case VTStr:
		return "String"
	case VTArray:
		return "Array"
	case VTTuple:
		return "Tuple"
	case VTMap:
		return "HashMap"
	case VTFunc, VTBuiltin:
		return "Function"
	default:
		return "<unknown>"
	}
}

// valueEquals is deep structural equality. Mixed Int/Float pairs compare
// numerically; functions compare by identity; map equality is
// order-sensitive like the pair list it stores.
func valueEquals(a, b Value) bool {
	if a.Tag != b.Tag {
		if a.Tag == VTInt && b.Tag == VTFloat {
			return float64(a.Data.(int64)) == b.Data.(float64)
		}
		if a.Tag == VTFloat && b.Tag == VTInt {
			return a.Data.(float64) == float64(b.Data.(int64))
		}
		return false
	}
	switch a.Tag {
	case VTNull:
		return true
	case VTBool:
		return a.Data.(bool) == b.Data.(bool)
	case VTInt:
		return a.Data.(int64) == b.Data.(int64)
	case VTFloat:
		return a.Data.(float64) == b.Data.(float64)
	case VTStr:
		return a.Data.(string) == b.Data.(string)
	case VTArray, VTTuple:
		xs, ys := a.Data.([]Value), b.Data.([]Value)
		if len(xs) != len(ys) {
			return false
		}
		for i := range xs {
			if !valueEquals(xs[i], ys[i]) {
				return false
			}
		}
		return true
	case VTMap:
		ma, mb := a.Data.(*MapObject), b.Data.(*MapObject)
		if len(ma.Entries) != len(mb.Entries) {
			return false
		}
		for i := range ma.Entries {
			if !valueEquals(ma.Entries[i].Key, mb.Entries[i].Key) ||
				!valueEquals(ma.Entries[i].Val, mb.Entries[i].Val) {
				return false
			}
		}
		return true
	case VTFunc, VTBuiltin:
		return a.Data == b.Data
	default:
		return false
	}
}

// cloneValue deep-copies collections so snapshots stay isolated from later
// mutation. Functions and builtins are shared by pointer: their captured
// envs are themselves snapshots, and copying them would chase the cycle a
// self-recursive function has with its own closure.
func cloneValue(v Value) Value {
	switch v.Tag {
	case VTArray, VTTuple:
		xs := v.Data.([]Value)
		out := make([]Value, len(xs))
		for i, x := range xs {
			out[i] = cloneValue(x)
		}
		return Value{Tag: v.Tag, Data: out}
	case VTMap:
		m := v.Data.(*MapObject)
		out := &MapObject{Entries: make([]MapEntry, len(m.Entries))}
		for i, e := range m.Entries {
			out.Entries[i] = MapEntry{Key: cloneValue(e.Key), Val: cloneValue(e.Val)}
		}
		return MapVal(out)
	default:
		return v
	}
}
