package tape

import (
	"fmt"
	"io"

	"github.com/mamaar/deskcalc/pkg/calc"
)

// Entry is one replayed instruction.
type Entry struct {
	Instruction Instruction
	Display     string // display after the instruction
	Passed      bool   // expectations only
}

// Failure is an expectation the replay did not meet.
type Failure struct {
	Line   int
	Column int
	Want   string
	Got    string
}

func (f Failure) String() string {
	return fmt.Sprintf("%d:%d: expected display %q, got %q", f.Line, f.Column, f.Want, f.Got)
}

// Result is the outcome of replaying a tape.
type Result struct {
	Name         string
	Entries      []Entry
	Failures     []Failure
	Display      string
	Expectations int
}

// OK reports whether every expectation held.
func (r Result) OK() bool {
	return len(r.Failures) == 0
}

// Run replays t through a fresh session. onStep, if non-nil, observes every
// key press.
func Run(t *Tape, onStep calc.StepFunc) Result {
	s := calc.NewSession(onStep)
	res := Result{Name: t.Name}
	for _, in := range t.Instructions {
		switch in.Kind {
		case KeyInstruction:
			res.Entries = append(res.Entries, Entry{Instruction: in, Display: s.Press(in.Event)})
		case ExpectInstruction:
			res.Expectations++
			got := s.Display()
			passed := got == in.Want
			res.Entries = append(res.Entries, Entry{Instruction: in, Display: got, Passed: passed})
			if !passed {
				res.Failures = append(res.Failures, Failure{
					Line:   in.Line,
					Column: in.Column,
					Want:   in.Want,
					Got:    got,
				})
			}
		}
	}
	res.Display = s.Display()
	return res
}

// Format writes a human-readable trace of r: one line per instruction with
// its source line, the key or expectation, and the display.
func Format(w io.Writer, r Result) error {
	if _, err := fmt.Fprintf(w, "tape %s\n", r.Name); err != nil {
		return err
	}
	for _, e := range r.Entries {
		var err error
		in := e.Instruction
		switch {
		case in.Kind == KeyInstruction:
			_, err = fmt.Fprintf(w, "%4d  %-12s %s\n", in.Line, in.Event.Label(), e.Display)
		case e.Passed:
			_, err = fmt.Fprintf(w, "%4d  %-12s ok\n", in.Line, expectDirective+" "+in.Want)
		default:
			_, err = fmt.Fprintf(w, "%4d  %-12s FAIL: got %s\n", in.Line, expectDirective+" "+in.Want, e.Display)
		}
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "display %s\n%d/%d expectations passed\n",
		r.Display, r.Expectations-len(r.Failures), r.Expectations)
	return err
}
