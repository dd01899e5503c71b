package commands

import (
	"fmt"
	"os"

	"github.com/mamaar/deskcalc/internal/cli"
)

// HelpCommand handles help requests for specific commands
func HelpCommand(args []string) {
	if len(args) > 0 {
		cmd := args[0]
		switch cmd {
		case "press":
			fmt.Println(`Press Command - Press keys on a fresh calculator

Usage: deskcalc [--trace] [--json] press <keys...>

Arguments:
  keys  Button labels separated by spaces. A run of digits and dots such
        as 12.5 presses one key per character.

Operators chain strictly left to right: 3 + 4 × 2 = shows 14.
Pressing = again repeats the last result.

With --history-db set, every evaluation is recorded under --session.

Examples:
  deskcalc press 3 + 4 × 2 =
  deskcalc press 5 ± %
  deskcalc --trace press 1 ÷ 0 =
  deskcalc --json press 7 * 6 =`)

		case "repl":
			fmt.Println(`Repl Command - Interactive calculator

Usage: deskcalc repl

Reads one line of keys at a time and prints the display after each line.
The session keeps its state between lines.

Special lines:
  state        Print the full calculator state
  quit, exit   Leave the repl`)

		case "run":
			fmt.Println(`Run Command - Replay tapes

Usage: deskcalc run <file.tape>...

A tape is a keystroke script. Tokens are separated by whitespace and # starts
a comment. "expect <display>" checks the display after the preceding keys.

The run command prints a trace of every tape and exits with status 1 when
a tape cannot be read or an expectation fails.

Example tape:
  # chained operations evaluate left to right
  3 + 4 × 2 =
  expect 14`)

		case "watch":
			fmt.Println(`Watch Command - Re-run tapes on change

Usage: deskcalc [--debounce 200ms] watch <dir|file.tape>

Replays every tape under the directory once, then again whenever one is
created or modified. Hidden directories are skipped. Stops on interrupt.`)

		case "history":
			fmt.Println(`History Command - List recorded evaluations

Usage: deskcalc --history-db <file> history [-session <name>] [-limit <n>] [-clear]

Options:
  -session <name>  Only list entries of this session (default: all)
  -limit <n>       Maximum number of entries, newest first (default: 20)
  -clear           Delete the entries of -session instead of listing

Examples:
  deskcalc --history-db calc.db history
  deskcalc --history-db calc.db --json history -session desk -limit 5
  deskcalc --history-db calc.db history -session desk -clear`)

		case "version":
			fmt.Println(`Version Command - Show application version

Usage: deskcalc version`)

		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
			cli.Usage()
		}
	} else {
		cli.Usage()
	}
}
