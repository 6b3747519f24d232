// pkg_init_test.go
package nikl

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_PkgInit_ScaffoldsProject(t *testing.T) {
	base, cleanup := withTempDir(t)
	defer cleanup()
	dir := filepath.Join(base, "my-pkg")

	if code := InitPackage([]string{dir}); code != 0 {
		t.Fatalf("init: code = %d", code)
	}

	main, err := os.ReadFile(filepath.Join(dir, "src", "my-pkg.nk"))
	if err != nil {
		t.Fatalf("entry source: %v", err)
	}
	if string(main) != defaultMainSource {
		t.Fatalf("entry source = %q", string(main))
	}

	info, err := os.ReadFile(filepath.Join(dir, ".nikl", "info.json"))
	if err != nil || string(info) != `{ "packages": [] }` {
		t.Fatalf("info.json = %q, %v", string(info), err)
	}
	if fi, err := os.Stat(filepath.Join(dir, ".nikl", "packages")); err != nil || !fi.IsDir() {
		t.Fatalf("packages dir: %v", err)
	}

	readme, err := os.ReadFile(filepath.Join(dir, "README.md"))
	if err != nil {
		t.Fatalf("README: %v", err)
	}
	if !strings.HasPrefix(string(readme), "# My Pkg\n") || !strings.Contains(string(readme), "src/my-pkg.nk") {
		t.Fatalf("README = %q", string(readme))
	}

	if fi, err := os.Stat(filepath.Join(dir, "LICENSE")); err != nil || fi.Size() != 0 {
		t.Fatalf("LICENSE: %v", err)
	}
}

func Test_PkgInit_ConfigRoundTrips(t *testing.T) {
	base, cleanup := withTempDir(t)
	defer cleanup()
	dir := filepath.Join(base, "demo")

	if code := InitPackage([]string{dir}); code != 0 {
		t.Fatalf("init: code = %d", code)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("config.json: %v", err)
	}
	var cfg PkgConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.Name != "demo" || cfg.DisplayName != "Demo" || cfg.Version != "1.0.0" {
		t.Fatalf("got %+v", cfg)
	}
	if cfg.Dependencies["os"] != "0.0.1" || cfg.Dependencies["regex"] != "1.0.0" {
		t.Fatalf("dependencies = %v", cfg.Dependencies)
	}
	if cfg.ReadmeFile != "README.md" || cfg.LicenseFile != "LICENSE" {
		t.Fatalf("file refs = %q, %q", cfg.ReadmeFile, cfg.LicenseFile)
	}

	// loadPkgConfig reads its own output.
	if _, err := loadPkgConfig(dir); err != nil {
		t.Fatalf("reload: %v", err)
	}
}

func Test_PkgInit_RefusesNonEmptyDir(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	write(t, dir, "present.txt", "x")

	if code := InitPackage([]string{dir}); code != 1 {
		t.Fatalf("code = %d", code)
	}
}

func Test_PkgInit_CreatesMissingDir(t *testing.T) {
	base, cleanup := withTempDir(t)
	defer cleanup()
	dir := filepath.Join(base, "deep", "nested", "proj")

	if code := InitPackage([]string{dir}); code != 0 {
		t.Fatalf("code = %d", code)
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "proj.nk")); err != nil {
		t.Fatalf("entry source: %v", err)
	}
}

func Test_PkgInit_Usage(t *testing.T) {
	if code := InitPackage(nil); code != 2 {
		t.Fatalf("code = %d", code)
	}
}

func Test_PkgInit_RejectsBadProjectName(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()

	err := createPackageStructure(dir, "bad name!")
	if err == nil || err.Error() != "Project name can only contain alphanumeric characters, dashes, and underscores." {
		t.Fatalf("got %v", err)
	}
	err = createPackageStructure(dir, "   ")
	if err == nil || err.Error() != "Project name cannot be empty." {
		t.Fatalf("got %v", err)
	}
}

func Test_PkgInit_CapitalizeWords(t *testing.T) {
	cases := []struct{ in, out string }{
		{"my-cool_pkg", "My Cool Pkg"},
		{"solo", "Solo"},
		{"a-b", "A B"},
	}
	for _, c := range cases {
		if got := capitalizeWords(c.in); got != c.out {
			t.Fatalf("capitalizeWords(%q) = %q, want %q", c.in, got, c.out)
		}
	}
}
