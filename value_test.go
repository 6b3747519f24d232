// value_test.go
package nikl

import "testing"

func wantDisplay(t *testing.T, v Value, want string) {
	t.Helper()
	if got := v.String(); got != want {
		t.Fatalf("display: want %q, got %q", want, got)
	}
}

func Test_Value_Display_Scalars(t *testing.T) {
	wantDisplay(t, Null, "None")
	wantDisplay(t, Bool(true), "True")
	wantDisplay(t, Bool(false), "False")
	wantDisplay(t, Int(-7), "-7")
	wantDisplay(t, Str("hi"), "hi") // bare, no quotes
}

func Test_Value_Display_Floats(t *testing.T) {
	wantDisplay(t, Float(3.14), "3.14")
	wantDisplay(t, Float(2), "2")
	wantDisplay(t, Float(0.5), "0.5")
}

func Test_Value_Display_Collections(t *testing.T) {
	wantDisplay(t, Arr([]Value{Int(1), Str("a"), Bool(true)}), "[1, a, True]")
	wantDisplay(t, Tup([]Value{Int(1), Int(2)}), "(1, 2)")

	m := &MapObject{}
	m.Set(Str("k"), Int(1))
	m.Set(Int(2), Str("v"))
	wantDisplay(t, MapVal(m), "{k: 1, 2: v}")
}

func Test_Value_Display_Functions(t *testing.T) {
	wantDisplay(t, FuncVal(&Function{Name: "add"}), "<function add>")
	wantDisplay(t, BuiltinVal(&Builtin{Name: "print"}), "<builtin function>")
}

func Test_Value_TypeName(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Null, "None"},
		{Bool(true), "Boolean"},
		{Int(1), "Integer"},
		{Float(1), "Float"},
		{Str(""), "String"},
		{Arr(nil), "Array"},
		{Tup(nil), "Tuple"},
		{MapVal(&MapObject{}), "HashMap"},
		{FuncVal(&Function{}), "Function"},
		{BuiltinVal(&Builtin{}), "Function"},
	}
	for _, c := range cases {
		if got := c.v.TypeName(); got != c.want {
			t.Fatalf("TypeName(%#v): want %s, got %s", c.v, c.want, got)
		}
	}
}

func Test_Value_Equals_MixedNumeric(t *testing.T) {
	if !valueEquals(Int(2), Float(2.0)) {
		t.Fatalf("2 must equal 2.0")
	}
	if valueEquals(Int(2), Float(2.5)) {
		t.Fatalf("2 must not equal 2.5")
	}
}

func Test_Value_Equals_Collections(t *testing.T) {
	a := Arr([]Value{Int(1), Str("x")})
	b := Arr([]Value{Int(1), Str("x")})
	if !valueEquals(a, b) {
		t.Fatalf("equal arrays must compare equal")
	}
	if valueEquals(a, Tup([]Value{Int(1), Str("x")})) {
		t.Fatalf("array must not equal tuple")
	}

	m1 := &MapObject{}
	m1.Set(Str("a"), Int(1))
	m1.Set(Str("b"), Int(2))
	m2 := &MapObject{}
	m2.Set(Str("b"), Int(2))
	m2.Set(Str("a"), Int(1))
	// Entry order is part of a HashMap's identity.
	if valueEquals(MapVal(m1), MapVal(m2)) {
		t.Fatalf("maps with different entry order must not compare equal")
	}
}

func Test_MapObject_GetSet(t *testing.T) {
	m := &MapObject{}
	m.Set(Str("k"), Int(1))
	m.Set(Str("k"), Int(2)) // replaces in place
	if len(m.Entries) != 1 {
		t.Fatalf("Set must replace, got %d entries", len(m.Entries))
	}
	v, ok := m.Get(Str("k"))
	if !ok || v.Data.(int64) != 2 {
		t.Fatalf("want 2, got %v (%v)", v, ok)
	}
	if _, ok := m.Get(Str("missing")); ok {
		t.Fatalf("missing key must not resolve")
	}
}

func Test_MapObject_NonStringKeys(t *testing.T) {
	m := &MapObject{}
	m.Set(Int(1), Str("one"))
	m.Set(Tup([]Value{Int(1), Int(2)}), Str("pair"))
	if v, ok := m.Get(Int(1)); !ok || v.Data.(string) != "one" {
		t.Fatalf("integer key lookup failed: %v %v", v, ok)
	}
	if v, ok := m.Get(Tup([]Value{Int(1), Int(2)})); !ok || v.Data.(string) != "pair" {
		t.Fatalf("tuple key lookup failed: %v %v", v, ok)
	}
}

func Test_CloneValue_IsolatesCollections(t *testing.T) {
	orig := Arr([]Value{Int(1), Arr([]Value{Int(2)})})
	cp := cloneValue(orig)
	cp.Data.([]Value)[0] = Int(99)
	cp.Data.([]Value)[1].Data.([]Value)[0] = Int(98)
	if orig.Data.([]Value)[0].Data.(int64) != 1 {
		t.Fatalf("clone must not share top-level storage")
	}
	if orig.Data.([]Value)[1].Data.([]Value)[0].Data.(int64) != 2 {
		t.Fatalf("clone must not share nested storage")
	}
}

func Test_CloneValue_SharesFunctions(t *testing.T) {
	fn := &Function{Name: "f"}
	cp := cloneValue(FuncVal(fn))
	if cp.Data.(*Function) != fn {
		t.Fatalf("function values clone by reference")
	}
}
