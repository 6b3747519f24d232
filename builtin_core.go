// builtin_core.go
package nikl

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// ---- core built-ins ----------------------------------------------------
//
// The nine functions every NIKL program sees without importing anything.
// Each builtin owns its own arity and argument-kind checking; failures
// surface as ordinary runtime errors. print and input go through the
// interpreter's stdout/stdin so tests can substitute buffers.

func registerCoreBuiltins(ip *Interpreter) {
	define := func(name string, fn func(args []Value) (Value, error)) {
		// The root env is empty at this point; Define cannot collide.
		_ = ip.env.Define(name, BuiltinVal(&Builtin{Name: name, Fn: fn}), false)
	}

	// print(...) -> Null. Any number of arguments, rendered in display
	// form and joined with single spaces on one line.
	define("print", func(args []Value) (Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		if _, err := io.WriteString(ip.stdout, strings.Join(parts, " ")+"\n"); err != nil {
			return Null, rtErrf("Failed to write output: %v", err)
		}
		return Null, nil
	})

	// len(x) -> Integer. Strings count bytes; collections count elements.
	define("len", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Null, rtErrf("len() takes exactly one argument")
		}
		switch args[0].Tag {
		case VTStr:
			return Int(int64(len(args[0].Data.(string)))), nil
		case VTArray, VTTuple:
			return Int(int64(len(args[0].Data.([]Value)))), nil
		case VTMap:
			return Int(int64(len(args[0].Data.(*MapObject).Entries))), nil
		default:
			return Null, rtErrf("len() currently only works on strings, arrays, tuples, and hashmaps")
		}
	})

	// str(x) -> String
	define("str", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Null, rtErrf("str() takes exactly one argument")
		}
		switch args[0].Tag {
		case VTStr, VTInt, VTFloat, VTBool:
			return Str(args[0].String()), nil
		default:
			return Null, rtErrf("str() currently only works on strings, integers, floats, and booleans")
		}
	})

	// int(x) -> Integer. Floats truncate toward zero.
	define("int", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Null, rtErrf("int() takes exactly one argument")
		}
		switch args[0].Tag {
		case VTStr:
			s := args[0].Data.(string)
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return Null, rtErrf("Invalid string for int conversion: %s", s)
			}
			return Int(n), nil
		case VTInt:
			return args[0], nil
		case VTFloat:
			return Int(int64(args[0].Data.(float64))), nil
		default:
			return Null, rtErrf("int() currently only works on strings, integers, and floats")
		}
	})

	// float(x) -> Float
	define("float", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Null, rtErrf("float() takes exactly one argument")
		}
		switch args[0].Tag {
		case VTStr:
			s := args[0].Data.(string)
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return Null, rtErrf("Invalid string for float conversion: %s", s)
			}
			return Float(f), nil
		case VTInt:
			return Float(float64(args[0].Data.(int64))), nil
		case VTFloat:
			return args[0], nil
		default:
			return Null, rtErrf("float() currently only works on strings, integers, and floats")
		}
	})

	// bool(x) -> Boolean. Non-empty strings and nonzero numbers are True.
	define("bool", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Null, rtErrf("bool() takes exactly one argument")
		}
		switch args[0].Tag {
		case VTStr:
			return Bool(args[0].Data.(string) != ""), nil
		case VTInt:
			return Bool(args[0].Data.(int64) != 0), nil
		case VTFloat:
			return Bool(args[0].Data.(float64) != 0), nil
		default:
			return Null, rtErrf("bool() currently only works on strings, integers, and floats")
		}
	})

	// exit(code) terminates the process.
	define("exit", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Null, rtErrf("exit() takes exactly one argument")
		}
		if args[0].Tag != VTInt {
			return Null, rtErrf("exit() only works with integer argument, got %s", args[0].debugString())
		}
		os.Exit(int(args[0].Data.(int64)))
		return Null, nil
	})

	// type(x) -> String naming the runtime kind.
	define("type", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Null, rtErrf("type() takes exactly one argument")
		}
		return Str(args[0].TypeName()), nil
	})

	// input([prompt]) -> String. Writes the prompt without a newline, reads
	// one line, returns it with surrounding whitespace trimmed.
	define("input", func(args []Value) (Value, error) {
		prompt := "> "
		switch len(args) {
		case 0:
		case 1:
			if args[0].Tag != VTStr {
				return Null, rtErrf("input() argument must be a string")
			}
			prompt = args[0].Data.(string)
		default:
			return Null, rtErrf("input() takes at most one argument")
		}
		if _, err := io.WriteString(ip.stdout, prompt); err != nil {
			return Null, rtErrf("Failed to write output: %v", err)
		}
		if ip.stdinBuf == nil {
			ip.stdinBuf = bufio.NewReader(ip.stdin)
		}
		line, err := ip.stdinBuf.ReadString('\n')
		if err != nil && err != io.EOF {
			return Null, rtErrf("Failed to read input: %v", err)
		}
		return Str(strings.TrimSpace(line)), nil
	})
}
