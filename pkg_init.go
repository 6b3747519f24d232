// pkg_init.go — `nikl init <dir>`: scaffold a new NIKL package.
//
// Lays down the standard project layout:
//
//	<dir>/
//	  .nikl/packages/       store for installed dependencies
//	  .nikl/info.json       install-state manifest
//	  src/<name>.nk         entry source file
//	  README.md config.json LICENSE
//
// The project name is the directory's base name and may contain only
// alphanumerics, dashes, and underscores.
package nikl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const defaultMainSource = `// This is a simple example of a Nikl project.
print("Hello, Neko Nik!")
`

var readmeTemplate = "# %s\n\n" +
	"This is a project created using the `nikl init` command. It serves as a template " +
	"for creating new projects with the Nikl.\n\n" +
	"## Getting Started\n" +
	"To get started, you can modify the `src/%s.nk` file to add your own code.\n" +
	"You can also add any additional files or directories as needed.\n"

// InitPackage implements `nikl init <dir>`.
func InitPackage(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: nikl init <dir>")
		return 2
	}
	dir := args[0]
	fmt.Printf("Initializing package in directory: %s\n", dir)

	if _, err := os.Stat(dir); err != nil {
		fmt.Println("Directory does not exist. Creating it...")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create directory: %v\n", err)
			return 1
		}
	}
	if entries, err := os.ReadDir(dir); err == nil && len(entries) > 0 {
		fmt.Fprintln(os.Stderr, "Directory is not empty. Please choose an empty directory.")
		return 1
	}

	name := filepath.Base(filepath.Clean(dir))
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "nikl_project"
	}

	fmt.Println("Creating package structure...")
	if err := createPackageStructure(dir, name); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create package structure: %v\n", err)
		return 1
	}
	fmt.Println("Package structure created successfully.")
	return 0
}

// createPackageStructure scaffolds the full project under dir.
func createPackageStructure(dir, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("Project name cannot be empty.")
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return fmt.Errorf("Project name can only contain alphanumeric characters, dashes, and underscores.")
		}
	}

	if err := createNiklEnvironment(dir); err != nil {
		return err
	}
	srcDir := filepath.Join(dir, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(srcDir, name+".nk"), []byte(defaultMainSource), 0o644); err != nil {
		return err
	}
	readme := fmt.Sprintf(readmeTemplate, capitalizeWords(name), name)
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte(readme), 0o644); err != nil {
		return err
	}
	cfg, err := defaultConfigJSON(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), cfg, 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "LICENSE"), nil, 0o644)
}

// createNiklEnvironment lays down .nikl/packages and an empty install
// manifest inside dir.
func createNiklEnvironment(dir string) error {
	if err := os.MkdirAll(filepath.Join(dir, niklDir, "packages"), 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, niklDir, "info.json"), []byte(`{ "packages": [] }`), 0o644)
}

func defaultConfigJSON(name string) ([]byte, error) {
	cfg := PkgConfig{
		Name:        name,
		DisplayName: capitalizeWords(name),
		Version:     "1.0.0",
		Description: "An example project to demonstrate the use of a configuration file.",
		Authors:     []PkgAuthor{{Name: "Neko Nik", Email: "admin@nekonik.com"}},
		License:     "MIT",
		EntryPoint:  "src/" + name + ".nk",
		ReadmeFile:  "README.md",
		LicenseFile: "LICENSE",
		Repository:  "https://github.com/Neko-Nik-Org/NIKL-Core",
		Homepage:    "https://nekonik.com",
		Dependencies: map[string]string{
			"os":    "0.0.1",
			"regex": "1.0.0",
		},
		Keywords: []string{"example", "project", "configuration"},
	}
	return json.MarshalIndent(&cfg, "", "    ")
}

// capitalizeWords turns "my-cool_pkg" into "My Cool Pkg".
func capitalizeWords(input string) string {
	words := strings.FieldsFunc(input, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		rs := []rune(w)
		rs[0] = unicode.ToUpper(rs[0])
		words[i] = string(rs)
	}
	return strings.Join(words, " ")
}
