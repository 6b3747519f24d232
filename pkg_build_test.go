// pkg_build_test.go
package nikl

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// buildableProject scaffolds a package named "demo" under a fresh temp dir
// and returns its path.
func buildableProject(t *testing.T) (dir string, cleanup func()) {
	t.Helper()
	base, clean := withTempDir(t)
	dir = filepath.Join(base, "demo")
	if code := InitPackage([]string{dir}); code != 0 {
		clean()
		t.Fatalf("init: code = %d", code)
	}
	return dir, clean
}

// readArchive returns the entry names in order and the content of each.
func readArchive(t *testing.T, path string) ([]string, map[string]string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip: %v", err)
	}
	tr := tar.NewReader(gz)

	var names []string
	content := map[string]string{}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("tar: %v", err)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("read %s: %v", hdr.Name, err)
		}
		names = append(names, hdr.Name)
		content[hdr.Name] = string(data)
	}
	return names, content
}

func Test_PkgBuild_CreatesArchive(t *testing.T) {
	dir, cleanup := buildableProject(t)
	defer cleanup()
	write(t, dir, filepath.Join("src", "util", "helpers.nk"), "let h = 1\n")
	write(t, dir, filepath.Join("src", "notes.txt"), "skipped")

	if err := createTarGz(dir); err != nil {
		t.Fatalf("build: %v", err)
	}

	names, content := readArchive(t, filepath.Join(dir, "demo-1.0.0.tar.gz"))
	want := []string{
		"demo/demo.nk",
		"demo/util/helpers.nk",
		"config.json",
		".nikl/info.json",
		"README.md",
		"LICENSE",
	}
	if len(names) != len(want) {
		t.Fatalf("entries = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("entry %d = %q, want %q\nall: %v", i, names[i], want[i], names)
		}
	}
	if content["demo/demo.nk"] != defaultMainSource {
		t.Fatalf("entry source = %q", content["demo/demo.nk"])
	}
	if content[".nikl/info.json"] != `{ "packages": [] }` {
		t.Fatalf("info.json = %q", content[".nikl/info.json"])
	}
}

func Test_PkgBuild_RefusesExistingArchive(t *testing.T) {
	dir, cleanup := buildableProject(t)
	defer cleanup()
	write(t, dir, "demo-1.0.0.tar.gz", "old")

	err := createTarGz(dir)
	if err == nil || err.Error() != "File demo-1.0.0.tar.gz already exists. Please remove it before creating a new package." {
		t.Fatalf("got %v", err)
	}
}

func Test_PkgBuild_RequiresEntryFile(t *testing.T) {
	dir, cleanup := buildableProject(t)
	defer cleanup()
	if err := os.Remove(filepath.Join(dir, "src", "demo.nk")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	err := createTarGz(dir)
	if err == nil || err.Error() != "Required file src/demo.nk not found" {
		t.Fatalf("got %v", err)
	}
}

func Test_PkgBuild_RequiresInfoManifest(t *testing.T) {
	dir, cleanup := buildableProject(t)
	defer cleanup()
	if err := os.Remove(filepath.Join(dir, ".nikl", "info.json")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	err := createTarGz(dir)
	if err == nil || err.Error() != "Required file .nikl/info.json not found" {
		t.Fatalf("got %v", err)
	}
}

func Test_PkgBuild_NoConfig(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()

	err := createTarGz(dir)
	if err == nil || err.Error() != "config.json not found" {
		t.Fatalf("got %v", err)
	}
}

func Test_PkgBuild_RunsInCurrentDir(t *testing.T) {
	dir, cleanup := buildableProject(t)
	defer cleanup()
	restore := chdir(t, dir)
	defer restore()

	if code := BuildPackage(); code != 0 {
		t.Fatalf("code = %d", code)
	}
	if _, err := os.Stat("demo-1.0.0.tar.gz"); err != nil {
		t.Fatalf("archive missing: %v", err)
	}
}
