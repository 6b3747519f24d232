// builtin_core_test.go
package nikl

import (
	"bytes"
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

// runCapture evaluates src on a fresh interpreter with stdout replaced by a
// buffer and returns everything the program printed.
func runCapture(t *testing.T, src string) string {
	t.Helper()
	stmts, err := ParseSource(src)
	if err != nil {
		t.Fatalf("parse error: %v\nsource:\n%s", err, src)
	}
	ip := NewInterpreter()
	var out bytes.Buffer
	ip.stdout = &out
	if _, err := ip.Interpret(stmts); err != nil {
		t.Fatalf("eval error: %v\nsource:\n%s", err, src)
	}
	return out.String()
}

// --- print -----------------------------------------------------------------

func Test_Builtin_Print_JoinsWithSpaces(t *testing.T) {
	got := runCapture(t, `print("a", 1, True)`)
	if got != "a 1 True\n" {
		t.Fatalf("print output = %q", got)
	}
}

func Test_Builtin_Print_DisplayForms(t *testing.T) {
	got := runCapture(t, `print([1, 2], (3, 4), {"k": 5}, 1.5)`)
	if got != "[1, 2] (3, 4) {k: 5} 1.5\n" {
		t.Fatalf("print output = %q", got)
	}
}

func Test_Builtin_Print_NoArgsIsBlankLine(t *testing.T) {
	if got := runCapture(t, "print()"); got != "\n" {
		t.Fatalf("print() output = %q", got)
	}
}

// --- len --------------------------------------------------------------------

func Test_Builtin_Len(t *testing.T) {
	wantInt(t, evalSrc(t, `len("hello")`), 5)
	wantInt(t, evalSrc(t, `len("héj")`), 4) // bytes, not runes
	wantInt(t, evalSrc(t, `len([1, 2, 3])`), 3)
	wantInt(t, evalSrc(t, `len((1, 2))`), 2)
	wantInt(t, evalSrc(t, `len({"a": 1, "b": 2})`), 2)
}

func Test_Builtin_Len_Errors(t *testing.T) {
	wantEvalError(t, "len(5)", "len() currently only works on strings, arrays, tuples, and hashmaps")
	wantEvalError(t, "len()", "len() takes exactly one argument")
	wantEvalError(t, `len("a", "b")`, "len() takes exactly one argument")
}

// --- conversions ------------------------------------------------------------

func Test_Builtin_Str(t *testing.T) {
	wantStr(t, evalSrc(t, "str(42)"), "42")
	wantStr(t, evalSrc(t, "str(3.14)"), "3.14")
	wantStr(t, evalSrc(t, "str(True)"), "True")
	wantStr(t, evalSrc(t, `str("x")`), "x")
	wantEvalError(t, "str([1])", "str() currently only works on strings, integers, floats, and booleans")
}

func Test_Builtin_Int(t *testing.T) {
	wantInt(t, evalSrc(t, `int("42")`), 42)
	wantInt(t, evalSrc(t, "int(3.9)"), 3)
	wantInt(t, evalSrc(t, "int(-3.9)"), -3)
	wantInt(t, evalSrc(t, "int(7)"), 7)
	wantEvalError(t, `int("4.2")`, "Invalid string for int conversion: 4.2")
	wantEvalError(t, "int(True)", "int() currently only works on strings, integers, and floats")
}

func Test_Builtin_Float(t *testing.T) {
	wantFloat(t, evalSrc(t, `float("2.5")`), 2.5)
	wantFloat(t, evalSrc(t, "float(3)"), 3.0)
	wantFloat(t, evalSrc(t, "float(1.5)"), 1.5)
	wantEvalError(t, `float("abc")`, "Invalid string for float conversion: abc")
	wantEvalError(t, "float(True)", "float() currently only works on strings, integers, and floats")
}

func Test_Builtin_Bool(t *testing.T) {
	wantBool(t, evalSrc(t, `bool("")`), false)
	wantBool(t, evalSrc(t, `bool("x")`), true)
	wantBool(t, evalSrc(t, "bool(0)"), false)
	wantBool(t, evalSrc(t, "bool(-1)"), true)
	wantBool(t, evalSrc(t, "bool(0.0)"), false)
	wantBool(t, evalSrc(t, "bool(0.1)"), true)
	wantEvalError(t, "bool(None)", "Undefined variable 'None'")
	wantEvalError(t, "bool([1])", "bool() currently only works on strings, integers, and floats")
}

// --- type -------------------------------------------------------------------

func Test_Builtin_Type(t *testing.T) {
	wantStr(t, evalSrc(t, "type(1)"), "Integer")
	wantStr(t, evalSrc(t, "type(1.5)"), "Float")
	wantStr(t, evalSrc(t, `type("s")`), "String")
	wantStr(t, evalSrc(t, "type(True)"), "Boolean")
	wantStr(t, evalSrc(t, "type([1])"), "Array")
	wantStr(t, evalSrc(t, "type((1,))"), "Tuple")
	wantStr(t, evalSrc(t, `type({"a": 1})`), "HashMap")
	wantStr(t, evalSrc(t, "fn f() {\n    return 0\n}\ntype(f)"), "Function")
	wantStr(t, evalSrc(t, "type(print)"), "Function")
}

// --- exit -------------------------------------------------------------------

func Test_Builtin_Exit_RejectsNonInteger(t *testing.T) {
	wantEvalError(t, `exit("no")`, `exit() only works with integer argument, got String("no")`)
	wantEvalError(t, "exit()", "exit() takes exactly one argument")
}

// --- input ------------------------------------------------------------------

func Test_Builtin_Input_ReadsLineAndTrims(t *testing.T) {
	ip := NewInterpreter()
	var out bytes.Buffer
	ip.stdout = &out
	ip.stdin = strings.NewReader("  hello world  \nsecond\n")

	v := evalIn(t, ip, `input("name: ")`)
	wantStr(t, v, "hello world")
	if out.String() != "name: " {
		t.Fatalf("prompt = %q", out.String())
	}

	// A second call continues on the same reader.
	wantStr(t, evalIn(t, ip, "input()"), "second")
	if !strings.HasSuffix(out.String(), "> ") {
		t.Fatalf("default prompt missing, output = %q", out.String())
	}
}

func Test_Builtin_Input_EOFGivesEmptyString(t *testing.T) {
	ip := NewInterpreter()
	ip.stdout = &bytes.Buffer{}
	ip.stdin = strings.NewReader("")
	wantStr(t, evalIn(t, ip, "input()"), "")
}

func Test_Builtin_Input_Errors(t *testing.T) {
	wantEvalError(t, "input(1)", "input() argument must be a string")
	wantEvalError(t, `input("a", "b")`, "input() takes at most one argument")
}

// --- builtins are constants -------------------------------------------------

func Test_Builtin_BindingsAreImmutable(t *testing.T) {
	wantEvalError(t, "print = 1", "Cannot assign to constant 'print'")
}
