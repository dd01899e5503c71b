package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mamaar/deskcalc/internal/cli"
	"github.com/mamaar/deskcalc/pkg/calc"
)

// PressOptions controls how Press reports the keys it applied.
type PressOptions struct {
	Trace  bool
	JSON   bool
	OnStep calc.StepFunc
}

// PressOutput is the JSON form of a press.
type PressOutput struct {
	Keys    []string      `json:"keys"`
	Display string        `json:"display"`
	State   calc.Snapshot `json:"state"`
	Steps   []StepOutput  `json:"steps,omitempty"`
}

// StepOutput is the display after one key.
type StepOutput struct {
	Key     string `json:"key"`
	Display string `json:"display"`
}

// PressCommand handles the press command
func PressCommand(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: press requires at least one key\n")
		fmt.Fprintf(os.Stderr, "Usage: deskcalc press 3 + 4 × 2 =\n")
		os.Exit(1)
	}

	ctx := context.Background()
	record, done := openRecorder(ctx)
	err := Press(os.Stdout, args, PressOptions{
		Trace:  *cli.GlobalFlags.Trace,
		JSON:   *cli.GlobalFlags.Json,
		OnStep: record,
	})
	done()
	exitOnError(err)
}

// Press applies keys to a fresh session and writes the final display.
func Press(w io.Writer, keys []string, opts PressOptions) error {
	evs, err := calc.ParseKeys(strings.Join(keys, " "))
	if err != nil {
		return err
	}

	var steps []StepOutput
	s := calc.NewSession(chainSteps(opts.OnStep, func(st calc.Step) {
		steps = append(steps, StepOutput{Key: st.Event.Label(), Display: st.After.Display})
	}))
	display := s.PressAll(evs)

	if opts.JSON {
		out := PressOutput{
			Keys:    make([]string, len(evs)),
			Display: display,
			State:   s.State().Snapshot(),
		}
		for i, ev := range evs {
			out.Keys[i] = ev.Label()
		}
		if opts.Trace {
			out.Steps = steps
		}
		return OutputJSON(w, out)
	}

	if opts.Trace {
		for _, st := range steps {
			if _, err := fmt.Fprintf(w, "%-3s %s\n", st.Key, st.Display); err != nil {
				return err
			}
		}
	}
	_, err = fmt.Fprintln(w, display)
	return err
}
