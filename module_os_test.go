// module_os_test.go
package nikl

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// osInterp returns an interpreter with the os module already imported
// under the alias `o`.
func osInterp(t *testing.T) *Interpreter {
	t.Helper()
	ip := NewInterpreter()
	ip.stdout = &bytes.Buffer{}
	evalIn(t, ip, `import "os" as o`)
	return ip
}

func Test_ModuleOS_WriteAndReadFile(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	p := filepath.Join(dir, "note.txt")

	ip := osInterp(t)
	evalIn(t, ip, fmt.Sprintf(`o.write_file(%q, "hello file")`, p))
	wantStr(t, evalIn(t, ip, fmt.Sprintf("o.read_file(%q)", p)), "hello file")
}

func Test_ModuleOS_ExistsIsFileIsDir(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	file := write(t, dir, "f.txt", "x")

	ip := osInterp(t)
	wantBool(t, evalIn(t, ip, fmt.Sprintf("o.exists(%q)", file)), true)
	wantBool(t, evalIn(t, ip, fmt.Sprintf("o.is_file(%q)", file)), true)
	wantBool(t, evalIn(t, ip, fmt.Sprintf("o.is_dir(%q)", file)), false)
	wantBool(t, evalIn(t, ip, fmt.Sprintf("o.is_dir(%q)", dir)), true)
	missing := filepath.Join(dir, "nope")
	wantBool(t, evalIn(t, ip, fmt.Sprintf("o.exists(%q)", missing)), false)
	wantBool(t, evalIn(t, ip, fmt.Sprintf("o.is_file(%q)", missing)), false)
}

func Test_ModuleOS_MakeAndRemoveDir(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	nested := filepath.Join(dir, "a", "b")

	ip := osInterp(t)
	evalIn(t, ip, fmt.Sprintf("o.make_dir(%q)", nested))
	wantBool(t, evalIn(t, ip, fmt.Sprintf("o.is_dir(%q)", nested)), true)
	evalIn(t, ip, fmt.Sprintf("o.remove_dir(%q)", filepath.Join(dir, "a")))
	wantBool(t, evalIn(t, ip, fmt.Sprintf("o.exists(%q)", nested)), false)
}

func Test_ModuleOS_ListDir(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	write(t, dir, "b.txt", "")
	write(t, dir, "a.txt", "")
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	ip := osInterp(t)
	v := evalIn(t, ip, fmt.Sprintf("o.list_dir(%q)", dir))
	xs := v.Data.([]Value)
	if len(xs) != 3 {
		t.Fatalf("list_dir returned %d entries", len(xs))
	}
	// ReadDir reports names in lexical order.
	wantStr(t, xs[0], "a.txt")
	wantStr(t, xs[1], "b.txt")
	wantStr(t, xs[2], "sub")
}

func Test_ModuleOS_RenameAndRemoveFile(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	src := write(t, dir, "old.txt", "content")
	dst := filepath.Join(dir, "new.txt")

	ip := osInterp(t)
	evalIn(t, ip, fmt.Sprintf("o.rename(%q, %q)", src, dst))
	wantBool(t, evalIn(t, ip, fmt.Sprintf("o.exists(%q)", src)), false)
	wantStr(t, evalIn(t, ip, fmt.Sprintf("o.read_file(%q)", dst)), "content")

	evalIn(t, ip, fmt.Sprintf("o.remove_file(%q)", dst))
	wantBool(t, evalIn(t, ip, fmt.Sprintf("o.exists(%q)", dst)), false)
}

func Test_ModuleOS_Cwd(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	old, _ := os.Getwd()
	defer func() { _ = os.Chdir(old) }()

	ip := osInterp(t)
	evalIn(t, ip, fmt.Sprintf("o.set_cwd(%q)", dir))
	now, _ := os.Getwd()
	wantStr(t, evalIn(t, ip, "o.get_cwd()"), now)
}

func Test_ModuleOS_Env(t *testing.T) {
	const key = "NIKL_OS_TEST_KEY"
	_ = os.Unsetenv(key)
	defer func() { _ = os.Unsetenv(key) }()

	ip := osInterp(t)
	wantNull(t, evalIn(t, ip, fmt.Sprintf("o.env_get(%q)", key)))
	evalIn(t, ip, fmt.Sprintf("o.env_set(%q, \"on\")", key))
	wantStr(t, evalIn(t, ip, fmt.Sprintf("o.env_get(%q)", key)), "on")
	if os.Getenv(key) != "on" {
		t.Fatalf("env_set did not reach the process environment")
	}
}

func Test_ModuleOS_ArgumentErrors(t *testing.T) {
	ip := osInterp(t)
	cases := []struct{ src, want string }{
		{"o.set_cwd(1)", "setcwd expects a string path"},
		{"o.list_dir(1)", "listdir expects a string path"},
		{"o.make_dir(1)", "mkdir expects a string path"},
		{"o.remove_dir(1)", "rmdir expects a string path"},
		{"o.remove_file(1)", "remove_file expects a string path"},
		{`o.rename("only")`, "rename expects 2 arguments: old_path, new_path"},
		{`o.rename(1, 2)`, "rename expects 2 string arguments"},
		{`o.write_file("p")`, "write_file expects 2 arguments: path, content"},
		{`o.write_file("p", 1)`, "write_file expects 2 string arguments"},
		{"o.read_file(1)", "read_file expects a string path"},
		{"o.env_get(1)", "env_get expects a string key"},
		{`o.env_set("k")`, "env_set expects 2 arguments: key, value"},
	}
	for _, c := range cases {
		if got := evalErr(t, ip, c.src).Error(); got != c.want {
			t.Fatalf("%s: got %q, want %q", c.src, got, c.want)
		}
	}
}

func Test_ModuleOS_ReadMissingFile(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()

	ip := osInterp(t)
	err := evalErr(t, ip, fmt.Sprintf("o.read_file(%q)", filepath.Join(dir, "ghost.txt")))
	if !strings.HasPrefix(err.Error(), "os.read_file error:") {
		t.Fatalf("got %q", err.Error())
	}
}
