package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/mamaar/deskcalc/pkg/tape"
)

// RunCommand handles the run command
func RunCommand(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: run requires at least one tape file\n")
		fmt.Fprintf(os.Stderr, "Usage: deskcalc run <file.tape>...\n")
		os.Exit(1)
	}
	if failed := RunTapes(os.Stdout, os.Stderr, args); failed > 0 {
		os.Exit(1)
	}
}

// RunTapes replays every tape, writing traces to w and failures to errw.
// It returns the number of tapes that could not be read or missed an
// expectation.
func RunTapes(w, errw io.Writer, paths []string) int {
	failed := 0
	printed := false
	for _, path := range paths {
		t, err := tape.ParseFile(path)
		if err != nil {
			fmt.Fprintf(errw, "Error: %v\n", err)
			failed++
			continue
		}

		if printed {
			fmt.Fprintln(w)
		}
		res := tape.Run(t, nil)
		if err := tape.Format(w, res); err != nil {
			fmt.Fprintf(errw, "Error: write trace: %v\n", err)
		}
		printed = true

		for _, f := range res.Failures {
			fmt.Fprintf(errw, "%s:%s\n", path, f)
		}
		if !res.OK() {
			failed++
		}
	}
	return failed
}
