// runfile_test.go
package nikl

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_RunFile_ValidateMissing(t *testing.T) {
	err := validateScriptFile("/no/such/file.nk")
	if err == nil || err.Error() != "Error: File '/no/such/file.nk' does not exist." {
		t.Fatalf("got %v", err)
	}
}

func Test_RunFile_ValidateWrongExtension(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	p := write(t, dir, "script.txt", "print(1)")

	err := validateScriptFile(p)
	want := "Error: File '" + p + "' is not a valid script, it should end with .nk"
	if err == nil || err.Error() != want {
		t.Fatalf("got %v", err)
	}
}

func Test_RunFile_ValidateDirectory(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	d := filepath.Join(dir, "d.nk")
	if err := os.Mkdir(d, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	err := validateScriptFile(d)
	want := "Error: File '" + d + "' is not a valid script, it should end with .nk"
	if err == nil || err.Error() != want {
		t.Fatalf("got %v", err)
	}
}

func Test_RunFile_ValidateEmpty(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	p := write(t, dir, "e.nk", "")

	err := validateScriptFile(p)
	if err == nil || err.Error() != "Error: Script '"+p+"' is empty." {
		t.Fatalf("got %v", err)
	}
}

func Test_RunFile_ExecutesScript(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	p := write(t, dir, "hello.nk", "print(\"hi\")\nlet x = 1\n")

	var out, errw bytes.Buffer
	if code := runFileTo(&out, &errw, p); code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, errw.String())
	}
	if out.String() != "hi\n" {
		t.Fatalf("stdout = %q", out.String())
	}
	if errw.Len() != 0 {
		t.Fatalf("stderr = %q", errw.String())
	}
}

func Test_RunFile_MissingFileExitCode(t *testing.T) {
	var out, errw bytes.Buffer
	if code := runFileTo(&out, &errw, "/nope/x.nk"); code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	want := "Error: File '/nope/x.nk' does not exist.\nFailed to read or validate the file.\n"
	if errw.String() != want {
		t.Fatalf("stderr = %q", errw.String())
	}
}

func Test_RunFile_LexErrorSnippet(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	p := write(t, dir, "bad.nk", "let s = \"oops")

	var out, errw bytes.Buffer
	if code := runFileTo(&out, &errw, p); code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(errw.String(), "LEXICAL ERROR in "+p+": ") {
		t.Fatalf("stderr = %q", errw.String())
	}
}

func Test_RunFile_ParseErrorSnippet(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	p := write(t, dir, "bad.nk", "let = 1\n")

	var out, errw bytes.Buffer
	if code := runFileTo(&out, &errw, p); code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(errw.String(), "Error parsing statements: PARSE ERROR in "+p+": ") {
		t.Fatalf("stderr = %q", errw.String())
	}
}

func Test_RunFile_RuntimeError(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	p := write(t, dir, "boom.nk", "1 / 0\n")

	var out, errw bytes.Buffer
	if code := runFileTo(&out, &errw, p); code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if errw.String() != "Error executing script: Division by zero\n" {
		t.Fatalf("stderr = %q", errw.String())
	}
}

func Test_RunFile_ImportsResolveAgainstScriptDir(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	write(t, dir, "lib.nk", "let v = 5\n")
	p := write(t, dir, "main.nk", "import \"lib.nk\" as lib\nprint(lib.v)\n")

	var out, errw bytes.Buffer
	if code := runFileTo(&out, &errw, p); code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, errw.String())
	}
	if out.String() != "5\n" {
		t.Fatalf("stdout = %q", out.String())
	}
}
