// runfile.go — the `nikl <script.nk>` runner.
//
// Validates the target path (regular file, .nk suffix, non-empty), reads and
// executes it on a fresh interpreter whose import root is the script's
// directory, and reports failures on stderr. Lex and parse failures are
// rendered as caret snippets via errors.go; runtime failures carry no
// position and print as-is. Returns a process exit code for cmd/nikl.
package nikl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// validateScriptFile checks that path names a regular, non-empty *.nk file.
func validateScriptFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("Error: File '%s' does not exist.", path)
	}
	if !info.Mode().IsRegular() || !strings.HasSuffix(path, ".nk") {
		return fmt.Errorf("Error: File '%s' is not a valid script, it should end with .nk", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("Error: Script '%s' is empty.", path)
	}
	return nil
}

// RunFile executes the script at path. Script output goes to stdout,
// diagnostics to stderr; the return value is the process exit code.
func RunFile(path string) int {
	return runFileTo(os.Stdout, os.Stderr, path)
}

func runFileTo(out, errw io.Writer, path string) int {
	if err := validateScriptFile(path); err != nil {
		fmt.Fprintln(errw, err)
		fmt.Fprintln(errw, "Failed to read or validate the file.")
		return 1
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(errw, "Error reading file '%s': %v\n", path, err)
		return 1
	}
	src := string(data)

	toks, err := Tokenize(src)
	if err != nil {
		fmt.Fprintln(errw, WrapErrorWithName(err, path, src))
		return 1
	}
	if debugEnabled() {
		for _, t := range toks {
			slog.Debug("token", slog.String("tok", t.describe()))
		}
	}

	stmts, err := Parse(toks)
	if err != nil {
		fmt.Fprintf(errw, "Error parsing statements: %v\n", WrapErrorWithName(err, path, src))
		return 1
	}
	if debugEnabled() {
		for _, s := range stmts {
			slog.Debug("statement", slog.String("stmt", s.String()))
		}
	}

	ip := NewInterpreter()
	ip.stdout = out
	if abs, aerr := filepath.Abs(path); aerr == nil {
		ip.scriptDir = filepath.Dir(abs)
	}
	if _, err := ip.Interpret(stmts); err != nil {
		fmt.Fprintf(errw, "Error executing script: %v\n", err)
		return 1
	}
	slog.Info("script executed successfully", slog.String("path", path))
	return 0
}

func debugEnabled() bool {
	return slog.Default().Enabled(context.Background(), slog.LevelDebug)
}
