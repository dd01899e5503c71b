package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mamaar/deskcalc/internal/cli"
	"github.com/mamaar/deskcalc/internal/history"
	"github.com/mamaar/deskcalc/pkg/calc"
)

// HistoryStore is the part of the history store the history command uses.
type HistoryStore interface {
	List(ctx context.Context, session string, limit int) ([]history.Entry, error)
	Clear(ctx context.Context, session string) (int64, error)
}

// HistoryOptions selects which entries to list or clear.
type HistoryOptions struct {
	Session string
	Limit   int
	Clear   bool
	JSON    bool
}

// EntryOutput is the JSON form of a history entry.
type EntryOutput struct {
	ID       int64  `json:"id"`
	Session  string `json:"session"`
	Left     string `json:"left"`
	Operator string `json:"operator"`
	Right    string `json:"right"`
	Result   string `json:"result"`
	At       string `json:"at"`
}

// HistoryCommand handles the history command
func HistoryCommand(args []string) {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	session := fs.String("session", "", "Only list entries of this session")
	limit := fs.Int("limit", 20, "Maximum number of entries to list")
	clearSession := fs.Bool("clear", false, "Delete the entries of -session")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := cli.OpenHistory(ctx)
	exitOnError(err)
	if store == nil {
		exitOnError(errors.New("history is disabled: set DESKCALC_HISTORY_DB or --history-db"))
	}

	err = History(ctx, os.Stdout, store, HistoryOptions{
		Session: *session,
		Limit:   *limit,
		Clear:   *clearSession,
		JSON:    *cli.GlobalFlags.Json,
	})
	_ = store.Close()
	exitOnError(err)
}

// History lists recorded evaluations, newest first. With Clear set it
// first deletes the entries of Session.
func History(ctx context.Context, w io.Writer, store HistoryStore, opts HistoryOptions) error {
	if opts.Clear {
		if opts.Session == "" {
			return errors.New("history -clear requires -session")
		}
		n, err := store.Clear(ctx, opts.Session)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "cleared %d entries from %s\n", n, opts.Session)
		return nil
	}

	entries, err := store.List(ctx, opts.Session, opts.Limit)
	if err != nil {
		return err
	}

	if opts.JSON {
		out := make([]EntryOutput, len(entries))
		for i, e := range entries {
			out[i] = EntryOutput{
				ID:       e.ID,
				Session:  e.Session,
				Left:     calc.FormatNumber(e.Left),
				Operator: e.Operator.String(),
				Right:    calc.FormatNumber(e.Right),
				Result:   e.Result,
				At:       e.At.Format(time.RFC3339),
			}
		}
		return OutputJSON(w, out)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "no entries")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%4d  %-10s %s\n", e.ID, e.Session, e)
	}
	return nil
}
