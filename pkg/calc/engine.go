// Package calc implements a desk-calculator state machine driven by
// discrete key events.
//
// Apply is a total, pure transition function: every event is accepted in
// every state and no transition fails. Numerically invalid results such as
// division by zero surface as "Infinity" or "NaN" on the display.
package calc

import (
	"math"
	"strings"
)

// New returns the initial state of a calculator session.
func New() State {
	return State{Display: "0"}
}

// Apply returns the state that results from handling ev in s.
func Apply(s State, ev Event) State {
	switch ev.Kind {
	case DigitEvent:
		d := string(ev.Digit)
		switch {
		case s.AwaitingOperand:
			s.Display = d
			s.AwaitingOperand = false
		case s.Display == "0":
			s.Display = d
		default:
			s.Display += d
		}

	case DecimalEvent:
		if s.AwaitingOperand {
			s.Display = "0."
			s.AwaitingOperand = false
		} else if !strings.Contains(s.Display, ".") {
			s.Display += "."
		}

	case ClearEvent:
		return New()

	case NegateEvent:
		s.Display = FormatNumber(ParseNumber(s.Display) * -1)

	case PercentEvent:
		s.Display = FormatNumber(ParseNumber(s.Display) / 100)

	case OperatorEvent:
		input := ParseNumber(s.Display)
		if !s.HasPrevious {
			s.Previous = input
			s.HasPrevious = true
		} else if s.Pending != NoOperator {
			result := evaluate(s.Pending, leftOperand(s.Previous), input)
			s.Display = FormatNumber(result)
			s.Previous = result
		}
		s.AwaitingOperand = true
		s.Pending = ev.Op
	}
	return s
}

// ApplyAll folds evs over s from left to right.
func ApplyAll(s State, evs ...Event) State {
	for _, ev := range evs {
		s = Apply(s, ev)
	}
	return s
}

// leftOperand treats a NaN accumulator as zero so that a chain can recover
// after 0 ÷ 0.
func leftOperand(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func evaluate(op Operator, a, b float64) float64 {
	switch op {
	case Add:
		return a + b
	case Subtract:
		return a - b
	case Multiply:
		return a * b
	case Divide:
		return a / b
	default:
		// Equals re-displays the right operand.
		return b
	}
}
