package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/mamaar/deskcalc/internal/cli"
	"github.com/mamaar/deskcalc/pkg/calc"
)

// ReplOptions configures an interactive session.
type ReplOptions struct {
	Prompt string
	JSON   bool
	OnStep calc.StepFunc
}

// ReplCommand handles the repl command
func ReplCommand(args []string) {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Error: repl takes no arguments\n")
		os.Exit(1)
	}

	prompt := ""
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		prompt = "> "
	}

	ctx := context.Background()
	record, done := openRecorder(ctx)
	err := Repl(os.Stdin, os.Stdout, os.Stderr, ReplOptions{
		Prompt: prompt,
		JSON:   *cli.GlobalFlags.Json,
		OnStep: record,
	})
	done()
	exitOnError(err)
}

// Repl reads lines of keys from r and writes the display after each line to
// w. Lines that fail to parse are reported to errw and leave the session
// untouched. One session lives for the whole loop. "state" prints the full
// state and "quit" or "exit" ends the loop; so does end of input.
func Repl(r io.Reader, w, errw io.Writer, opts ReplOptions) error {
	s := calc.NewSession(opts.OnStep)
	scanner := bufio.NewScanner(r)
	for {
		if opts.Prompt != "" {
			fmt.Fprint(w, opts.Prompt)
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "state":
			if err := writeSnapshot(w, s.State().Snapshot(), opts.JSON); err != nil {
				return err
			}
			continue
		}

		evs, err := calc.ParseKeys(line)
		if err != nil {
			fmt.Fprintf(errw, "Error: %v\n", err)
			continue
		}
		fmt.Fprintln(w, s.PressAll(evs))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("repl: read input: %w", err)
	}
	return nil
}

func writeSnapshot(w io.Writer, snap calc.Snapshot, asJSON bool) error {
	if asJSON {
		return OutputJSON(w, snap)
	}
	_, err := fmt.Fprintf(w, "display=%s previous=%s pending=%s awaiting=%t phase=%s\n",
		snap.Display, orDash(snap.Previous), orDash(snap.Pending), snap.AwaitingOperand, snap.Phase)
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
