// repl.go — interactive NIKL shell.
//
// Line-at-a-time REPL on peterh/liner with persistent history in
// /tmp/.nikl_history. Session state (variables, functions, imports) lives in
// one interpreter for the whole run, so definitions carry across lines.
// Ctrl+C cancels the current line, Ctrl+D or `exit` leaves the shell. The
// value of the last statement on a line is echoed unless it is None.
package nikl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
)

const (
	replHistoryFile = "/tmp/.nikl_history"
	replPrompt      = ">>> "
)

func ensureHistoryFile(path string) {
	if _, err := os.Stat(path); err == nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	if f, err := os.Create(path); err == nil {
		_ = f.Close()
	}
}

// Repl runs the interactive shell until `exit` or EOF and returns a process
// exit code.
func Repl() int {
	fmt.Println("Welcome to Nikl REPL!")
	fmt.Println("To exit, type 'exit' or press Ctrl+D")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	ensureHistoryFile(replHistoryFile)
	if f, err := os.Open(replHistoryFile); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
		slog.Debug("loaded history", slog.String("path", replHistoryFile))
	}
	defer func() {
		if f, err := os.Create(replHistoryFile); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
			slog.Debug("saved history", slog.String("path", replHistoryFile))
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	ip := NewInterpreter()

	for {
		line, err := ln.Prompt(replPrompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println("Keyboard Interrupt")
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println("Exiting REPL.")
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if input == "exit" {
			break
		}
		ln.AppendHistory(input)

		toks, lerr := Tokenize(input)
		if lerr != nil {
			fmt.Fprintln(os.Stderr, lerr)
			continue
		}
		if debugEnabled() {
			for _, t := range toks {
				slog.Debug("token", slog.String("tok", t.describe()))
			}
		}
		stmts, perr := Parse(toks)
		if perr != nil {
			fmt.Fprintf(os.Stderr, "Parse error: %v\n", perr)
			continue
		}
		v, rerr := ip.Interpret(stmts)
		if rerr != nil {
			fmt.Fprintf(os.Stderr, "Runtime error: %v\n", rerr)
			continue
		}
		if v.Tag != VTNull {
			fmt.Println(v.String())
		}
	}
	return 0
}
