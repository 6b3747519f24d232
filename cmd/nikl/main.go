// cmd/nikl/main.go — the nikl command line: REPL, script runner, and
// package tooling.
package main

import (
	"fmt"
	"log/slog"
	"os"

	nikl "github.com/Neko-Nik-Org/NIKL-Core"
)

const appName = "nikl"

func main() {
	initLogging()

	if len(os.Args) < 2 {
		os.Exit(nikl.Repl())
	}

	switch os.Args[1] {
	case "init":
		os.Exit(nikl.InitPackage(os.Args[2:]))
	case "build":
		os.Exit(nikl.BuildPackage())
	case "login":
		os.Exit(nikl.Login())
	case "logout":
		os.Exit(nikl.Logout())
	case "publish":
		os.Exit(nikl.PublishPackage())
	case "install":
		os.Exit(nikl.InstallPackage(os.Args[2:]))
	case "uninstall":
		os.Exit(nikl.UninstallPackage(os.Args[2:]))
	case "help", "-h", "--help":
		usage()
		os.Exit(0)
	default:
		// Anything else is a script path.
		os.Exit(nikl.RunFile(os.Args[1]))
	}
}

// initLogging wires slog to stderr. NIKL_DEBUG=1 turns on the debug dumps
// (tokens, statements, history housekeeping); otherwise only errors surface.
func initLogging() {
	level := slog.LevelError
	if os.Getenv("NIKL_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func usage() {
	fmt.Printf(`Usage:
  %s            # Start REPL
  %s <file.nk>  # Run script file
  %s init <dir> # Initialize a new package
  %s build      # Build the current package
  %s login      # Login to your account
  %s logout     # Logout from the current user
  %s publish    # Publish the current package
  %s install <pkg>    # Install a package
  %s uninstall <pkg>  # Uninstall a package
  %s help       # Show this help message
`, appName, appName, appName, appName, appName, appName, appName, appName, appName, appName)
}
