package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mamaar/deskcalc/internal/cli"
	"github.com/mamaar/deskcalc/pkg/calc"
)

// OutputJSON writes data to w as indented JSON
func OutputJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// exitOnError prints err and exits with status 1
func exitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// openRecorder opens the configured history store and returns a step hook
// recording to it, or nil when history is disabled. done closes the store.
func openRecorder(ctx context.Context) (record calc.StepFunc, done func()) {
	store, err := cli.OpenHistory(ctx)
	exitOnError(err)
	return cli.SessionRecorder(ctx, store), func() { _ = store.Close() }
}

// chainSteps returns a hook calling every non-nil hook in order.
func chainSteps(hooks ...calc.StepFunc) calc.StepFunc {
	var live []calc.StepFunc
	for _, h := range hooks {
		if h != nil {
			live = append(live, h)
		}
	}
	if len(live) == 0 {
		return nil
	}
	return func(st calc.Step) {
		for _, h := range live {
			h(st)
		}
	}
}
