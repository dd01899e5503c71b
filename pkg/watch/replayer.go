package watch

import (
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/mamaar/deskcalc/pkg/tape"
)

// ReportFunc receives the outcome of replaying one changed tape. err is set
// when the tape could not be read or parsed.
type ReportFunc func(path string, res tape.Result, err error)

// Replayer re-runs tapes when the watcher reports them changed.
type Replayer struct {
	report ReportFunc
	logger *slog.Logger
}

// NewReplayer creates a Replayer that hands each result to report.
func NewReplayer(report ReportFunc, logger *slog.Logger) *Replayer {
	return &Replayer{report: report, logger: logger}
}

// HandleChanges replays every tape in the batch that still exists, in path
// order. Existence is checked on disk rather than read from the op bits.
func (r *Replayer) HandleChanges(events []ChangeEvent) {
	start := time.Now()

	paths := make([]string, 0, len(events))
	for _, ev := range events {
		if _, err := os.Stat(ev.Path); err != nil {
			r.logger.Debug("tape removed", "path", ev.Path, "op", ev.Op)
			continue
		}
		paths = append(paths, ev.Path)
	}
	sort.Strings(paths)

	failed := 0
	for _, path := range paths {
		t, err := tape.ParseFile(path)
		if err != nil {
			failed++
			r.report(path, tape.Result{}, err)
			continue
		}
		res := tape.Run(t, nil)
		if !res.OK() {
			failed++
		}
		r.report(path, res, nil)
	}

	r.logger.Info("batch complete",
		"tapes", len(paths),
		"failed", failed,
		"elapsed", time.Since(start),
	)
}
