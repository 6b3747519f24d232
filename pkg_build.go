// pkg_build.go — `nikl build`: pack the current project into a
// name-version.tar.gz archive.
//
// Archive layout: every *.nk file under src/ is stored under the package
// name (src/a/b.nk → <name>/a/b.nk), followed by config.json,
// .nikl/info.json, and whatever README/LICENSE files the manifest names.
// Building refuses to overwrite an existing archive.
package nikl

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// BuildPackage implements `nikl build` against the current directory.
func BuildPackage() int {
	fmt.Println("Building the current package...")
	if err := createTarGz("."); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func createTarGz(dir string) error {
	cfg, err := loadPkgConfig(dir)
	if err != nil {
		return err
	}
	if err := validateRequiredFiles(dir, cfg); err != nil {
		return err
	}

	archiveName := fmt.Sprintf("%s-%s.tar.gz", cfg.Name, cfg.Version)
	archivePath := filepath.Join(dir, archiveName)
	if _, err := os.Stat(archivePath); err == nil {
		return fmt.Errorf("File %s already exists. Please remove it before creating a new package.", archiveName)
	}
	fmt.Printf("Creating %s...\n", archiveName)

	f, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	if err := addNkFiles(tw, dir, cfg.Name); err != nil {
		return err
	}
	if err := addMetadataFiles(tw, dir, cfg); err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	fmt.Printf("Created %s successfully.\n", archiveName)
	return nil
}

func validateRequiredFiles(dir string, cfg *PkgConfig) error {
	if _, err := os.Stat(filepath.Join(dir, "src", cfg.Name+".nk")); err != nil {
		return fmt.Errorf("Required file src/%s.nk not found", cfg.Name)
	}
	if _, err := os.Stat(filepath.Join(dir, niklInfoFile)); err != nil {
		return fmt.Errorf("Required file .nikl/info.json not found")
	}
	return nil
}

// addNkFiles stores every *.nk under dir/src in the archive, rooted at the
// package name.
func addNkFiles(tw *tar.Writer, dir, pkgName string) error {
	srcRoot := filepath.Join(dir, "src")
	return filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".nk") {
			return nil
		}
		rel, rerr := filepath.Rel(srcRoot, path)
		if rerr != nil {
			return rerr
		}
		return addFileAs(tw, path, filepath.ToSlash(filepath.Join(pkgName, rel)))
	})
}

func addMetadataFiles(tw *tar.Writer, dir string, cfg *PkgConfig) error {
	if err := addFileAs(tw, filepath.Join(dir, "config.json"), "config.json"); err != nil {
		return err
	}
	if err := addFileAs(tw, filepath.Join(dir, niklInfoFile), ".nikl/info.json"); err != nil {
		return err
	}
	for _, extra := range []string{cfg.ReadmeFile, cfg.LicenseFile} {
		if extra == "" {
			continue
		}
		p := filepath.Join(dir, extra)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := addFileAs(tw, p, filepath.ToSlash(extra)); err != nil {
			return err
		}
	}
	return nil
}

// addFileAs stores the file at path under name in the archive.
func addFileAs(tw *tar.Writer, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = name
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(tw, f)
	return err
}
