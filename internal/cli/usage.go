package cli

import (
	"flag"
	"fmt"
	"os"
)

// Usage prints the usage information for the deskcalc command
func Usage() {
	fmt.Fprintf(os.Stderr, `deskcalc - Pocket calculator engine with a paper tape

Usage: deskcalc [options] <command> [arguments]

Commands:
  press <keys...>
    Press keys on a fresh calculator and print the display

  repl
    Read lines of keys from stdin and print the display after each line

  run <file.tape>...
    Replay tapes and check their expectations

  watch <dir|file.tape>
    Re-run tapes whenever they change

  history [-session <name>] [-limit <n>] [-clear]
    List or clear recorded evaluations

  version
    Show version information

  help [command]
    Show help for a specific command

Keys:
  0-9 .  AC ± % ÷ × − + =
  ASCII spellings: C clear +/- neg / * x -

Options:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Environment:
  DESKCALC_HISTORY_DB, DESKCALC_SESSION, DESKCALC_LOG_LEVEL,
  DESKCALC_LOG_FORMAT and DESKCALC_WATCH_DEBOUNCE set the defaults of the
  matching options.

Examples:
  # Chain operations left to right
  deskcalc press 3 + 4 × 2 =

  # Show the display after every key
  deskcalc --trace press 12 ÷ 4 =

  # Record evaluations and list them
  deskcalc --history-db calc.db press 5 + 3 = =
  deskcalc --history-db calc.db history -limit 5

  # Check tapes in CI
  deskcalc run testdata/*.tape
`)
}
