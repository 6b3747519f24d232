// errors.go: user-facing error wrapping and caret-snippet rendering
//
// Turns low-level lexer/parser diagnostics into readable snippets with a
// caret pointing at the offending column. The entry point is
// `WrapErrorWithSource`, which recognizes `*LexError` (lexer.go) and
// `*ParseError` (parser.go), formats them, and returns an error whose
// message is a multi-line snippet:
//
//	PARSE ERROR: Expected RightBrace, found Eof at line 3, column 14
//
//	   2 | fn add(a, b) {
//	   3 |     return a + b
//	       |             ^
//
// Runtime errors carry no source position in NIKL, so they pass through
// unchanged. Line/Col are 1-based and clamped to the source bounds; output
// is plain text, safe for logs and terminals.
package nikl

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource augments lex/parse errors with a caret-annotated
// snippet of src. Other errors are returned untouched.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name ("script.nk")
// shown in the header.
func WrapErrorWithName(err error, srcName string, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "LEXICAL ERROR", srcName, e.Line, e.Col, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "PARSE ERROR", srcName, e.Line, e.Col, e.Msg))
	default:
		return err
	}
}

// prettyErrorStringLabeled builds the snippet: a header, at most one line of
// context before and after, and a caret under the 1-based column. The error
// message itself already names the line/column, so the header stays short.
func prettyErrorStringLabeled(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s: %s\n\n", header, name, msg)
	} else {
		fmt.Fprintf(&b, "%s: %s\n\n", header, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad > len(lineTxt) {
		caretPad = len(lineTxt)
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
