// module_regex.go
package nikl

import (
	"github.com/dlclark/regexp2"
)

// regexModule builds the native `regex` module. Patterns compile per call
// through regexp2, which keeps lookarounds and backreferences available to
// scripts; compile and match failures surface as `regex error: ...`.
func regexModule() *MapObject {
	m := &MapObject{}
	add := func(name string, fn func(args []Value) (Value, error)) {
		m.Entries = append(m.Entries, MapEntry{Key: Str(name), Val: BuiltinVal(&Builtin{Name: name, Fn: fn})})
	}

	// match(pattern, text) -> Array | None. The array holds the full match
	// followed by each capture group; groups that did not participate are
	// None. No match at all yields None.
	add("match", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Null, rtErrf("match expects 2 arguments: pattern, text")
		}
		pat, text, ok := twoStrings(args)
		if !ok {
			return Null, rtErrf("match expects two string arguments")
		}
		re, err := regexp2.Compile(pat, regexp2.None)
		if err != nil {
			return Null, rtErrf("regex error: %v", err)
		}
		mt, err := re.FindStringMatch(text)
		if err != nil {
			return Null, rtErrf("regex error: %v", err)
		}
		if mt == nil {
			return Null, nil
		}
		groups := mt.Groups()
		out := make([]Value, 0, len(groups))
		for i := range groups {
			if len(groups[i].Captures) == 0 {
				out = append(out, Null)
				continue
			}
			out = append(out, Str(groups[i].String()))
		}
		return Arr(out), nil
	})

	// is_match(pattern, text) -> Bool
	add("is_match", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Null, rtErrf("is_match expects 2 arguments: pattern, text")
		}
		pat, text, ok := twoStrings(args)
		if !ok {
			return Null, rtErrf("is_match expects two string arguments")
		}
		re, err := regexp2.Compile(pat, regexp2.None)
		if err != nil {
			return Null, rtErrf("regex error: %v", err)
		}
		hit, err := re.MatchString(text)
		if err != nil {
			return Null, rtErrf("regex error: %v", err)
		}
		return Bool(hit), nil
	})

	// find_all(pattern, text) -> Array of String (full match texts, in order).
	add("find_all", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Null, rtErrf("findall expects 2 arguments: pattern, text")
		}
		pat, text, ok := twoStrings(args)
		if !ok {
			return Null, rtErrf("findall expects two string arguments")
		}
		re, err := regexp2.Compile(pat, regexp2.None)
		if err != nil {
			return Null, rtErrf("regex error: %v", err)
		}
		out := []Value{}
		mt, err := re.FindStringMatch(text)
		for err == nil && mt != nil {
			out = append(out, Str(mt.String()))
			mt, err = re.FindNextMatch(mt)
		}
		if err != nil {
			return Null, rtErrf("regex error: %v", err)
		}
		return Arr(out), nil
	})

	// replace(pattern, replacement, text) -> String, replacing every match.
	add("replace", func(args []Value) (Value, error) {
		if len(args) != 3 {
			return Null, rtErrf("replace expects 3 arguments: pattern, replacement, text")
		}
		if args[0].Tag != VTStr || args[1].Tag != VTStr || args[2].Tag != VTStr {
			return Null, rtErrf("replace expects three string arguments")
		}
		pat := args[0].Data.(string)
		repl := args[1].Data.(string)
		text := args[2].Data.(string)
		re, err := regexp2.Compile(pat, regexp2.None)
		if err != nil {
			return Null, rtErrf("regex error: %v", err)
		}
		out, err := re.Replace(text, repl, -1, -1)
		if err != nil {
			return Null, rtErrf("regex error: %v", err)
		}
		return Str(out), nil
	})

	return m
}

func twoStrings(args []Value) (string, string, bool) {
	if args[0].Tag != VTStr || args[1].Tag != VTStr {
		return "", "", false
	}
	return args[0].Data.(string), args[1].Data.(string), true
}
