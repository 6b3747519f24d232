// pkg.go — package metadata and the install/uninstall surface behind
// `nikl install` / `nikl uninstall`.
//
// A package is addressed remotely as `name` or `name@version`, or locally as
// a path to a `name-version.tar.gz` archive produced by `nikl build`. The
// version is everything after the LAST dash of the archive stem, so dashes
// inside names survive (`math-v1s-1.0.0.tar.gz` → name `math-v1s`).
//
// Install state lives under `.nikl/` in the current directory: packages/
// holds extracted packages and info.json records what is installed. Actual
// extraction and registry downloads are not implemented yet; install and
// uninstall validate, prepare the environment, and report what they would
// do.
package nikl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	niklDir      = ".nikl"
	niklPkgsDir  = ".nikl/packages"
	niklInfoFile = ".nikl/info.json"
)

// PkgAuthor is one entry of the config.json authors list.
type PkgAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// PkgConfig mirrors a project's config.json manifest.
type PkgConfig struct {
	Name         string            `json:"name"`
	DisplayName  string            `json:"displayName"`
	Version      string            `json:"version"`
	Description  string            `json:"description"`
	Authors      []PkgAuthor       `json:"authors"`
	License      string            `json:"license"`
	EntryPoint   string            `json:"entryPoint,omitempty"`
	ReadmeFile   string            `json:"readmeFile,omitempty"`
	LicenseFile  string            `json:"licenseFile,omitempty"`
	Repository   string            `json:"repository,omitempty"`
	Homepage     string            `json:"homepage,omitempty"`
	Dependencies map[string]string `json:"dependencies"`
	Keywords     []string          `json:"keywords"`
}

// loadPkgConfig reads and decodes dir/config.json.
func loadPkgConfig(dir string) (*PkgConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		return nil, fmt.Errorf("config.json not found")
	}
	var cfg PkgConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("Invalid config.json structure or format")
	}
	return &cfg, nil
}

// niklInfo is the shape of .nikl/info.json.
type niklInfo struct {
	Packages []string `json:"packages"`
}

// Package identifies one installable package.
type Package struct {
	Name    string
	Version string
	IsLocal bool   // local tar.gz archive rather than a registry name
	Path    string // archive path when IsLocal
}

// ParsePackageSpec understands `name`, `name@version`, and paths to local
// `name-version.tar.gz` archives.
func ParsePackageSpec(raw string) (*Package, error) {
	spec := strings.TrimSpace(raw)
	if strings.HasSuffix(spec, ".tar.gz") {
		return parseLocalSpec(spec)
	}
	return parseRemoteSpec(spec)
}

func parseRemoteSpec(spec string) (*Package, error) {
	parts := strings.Split(spec, "@")
	switch len(parts) {
	case 1:
		return &Package{Name: parts[0]}, nil
	case 2:
		return &Package{Name: parts[0], Version: parts[1]}, nil
	default:
		return nil, fmt.Errorf("Invalid remote package format. Use 'name' or 'name@version'.")
	}
}

func parseLocalSpec(path string) (*Package, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("Local package '%s' does not exist.", path)
	}
	stem := strings.TrimSuffix(filepath.Base(path), ".tar.gz")
	cut := strings.LastIndex(stem, "-")
	if cut < 0 {
		return nil, fmt.Errorf("Invalid local package file name format. Expected 'name-version.tar.gz'.")
	}
	name, version := stem[:cut], stem[cut+1:]
	if name == "" || version == "" {
		return nil, fmt.Errorf("Package name or version cannot be empty.")
	}
	return &Package{Name: name, Version: version, IsLocal: true, Path: path}, nil
}

// ensureNiklEnv makes sure the current directory carries a usable .nikl
// environment, creating or repairing it as needed.
func ensureNiklEnv() error {
	if _, err := os.Stat(niklDir); err != nil {
		fmt.Println("Creating .nikl directory for package management...")
		cwd, cerr := os.Getwd()
		if cerr != nil {
			return cerr
		}
		return createNiklEnvironment(cwd)
	}
	if err := os.MkdirAll(niklPkgsDir, 0o755); err != nil {
		return err
	}
	if _, err := os.Stat(niklInfoFile); err != nil {
		f, cerr := os.Create(niklInfoFile)
		if cerr != nil {
			return cerr
		}
		_ = f.Close()
	}
	return nil
}

func (p *Package) isInstalled() bool {
	data, err := os.ReadFile(niklInfoFile)
	if err != nil {
		return false
	}
	var info niklInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return false
	}
	for _, name := range info.Packages {
		if name == p.Name {
			return true
		}
	}
	return false
}

// Install reports the requested installation. Extraction of local archives
// and registry downloads are not wired up yet.
func (p *Package) Install() {
	if p.isInstalled() {
		fmt.Printf("Package '%s' is already installed. Skipping installation.\n", p.Name)
		return
	}
	if p.IsLocal {
		fmt.Printf("Installing local package: %s (version: %s)\n", p.Name, p.Version)
	} else {
		fmt.Printf("Installing remote package: %s (version: %s)\n", p.Name, p.Version)
	}
}

// Uninstall reports the requested removal without touching the store.
func (p *Package) Uninstall() {
	fmt.Printf("Uninstalling package: %s (version: %s)\n", p.Name, p.Version)
}

// InstallPackage implements `nikl install <pkg>`.
func InstallPackage(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: nikl install <pkg>")
		return 2
	}
	if err := ensureNiklEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create .nikl environment: %v\n", err)
		return 1
	}
	pkg, err := ParsePackageSpec(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	pkg.Install()
	return 0
}

// UninstallPackage implements `nikl uninstall <pkg>`.
func UninstallPackage(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: nikl uninstall <pkg>")
		return 2
	}
	pkg, err := ParsePackageSpec(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	pkg.Uninstall()
	return 0
}

// Login implements `nikl login`.
func Login() int {
	fmt.Println("Logging in...")
	fmt.Println("Account login is not implemented yet.")
	return 0
}

// Logout implements `nikl logout`.
func Logout() int {
	fmt.Println("Logging out...")
	fmt.Println("Account logout is not implemented yet.")
	return 0
}

// PublishPackage implements `nikl publish`.
func PublishPackage() int {
	fmt.Println("Publishing the current package...")
	fmt.Println("Publishing to the package registry is not implemented yet.")
	return 0
}
