package calc

import "fmt"

// Operator is a binary operation awaiting its right-hand operand.
type Operator int

const (
	NoOperator Operator = iota
	Add
	Subtract
	Multiply
	Divide
	Equals
)

// String returns the button label for the operator.
func (op Operator) String() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "−"
	case Multiply:
		return "×"
	case Divide:
		return "÷"
	case Equals:
		return "="
	default:
		return ""
	}
}

type EventKind int

const (
	DigitEvent EventKind = iota
	DecimalEvent
	OperatorEvent
	ClearEvent
	PercentEvent
	NegateEvent
)

func (k EventKind) String() string {
	switch k {
	case DigitEvent:
		return "digit"
	case DecimalEvent:
		return "decimal"
	case OperatorEvent:
		return "operator"
	case ClearEvent:
		return "clear"
	case PercentEvent:
		return "percent"
	case NegateEvent:
		return "negate"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a single symbolic key press forwarded by a presentation layer.
type Event struct {
	Kind  EventKind
	Digit byte     // '0'..'9', set for DigitEvent
	Op    Operator // set for OperatorEvent
}

// Digit returns the event for numeral d. Only the last decimal digit of d
// is used.
func Digit(d int) Event {
	if d < 0 {
		d = -d
	}
	return Event{Kind: DigitEvent, Digit: byte('0' + d%10)}
}

func Decimal() Event { return Event{Kind: DecimalEvent} }

func Op(op Operator) Event { return Event{Kind: OperatorEvent, Op: op} }

func Clear() Event { return Event{Kind: ClearEvent} }

func Percent() Event { return Event{Kind: PercentEvent} }

func Negate() Event { return Event{Kind: NegateEvent} }

// State is the complete engine state for one calculator session.
type State struct {
	Display         string
	Previous        float64
	HasPrevious     bool
	Pending         Operator
	AwaitingOperand bool
}

// Phase names the implicit machine state derived from a State.
type Phase int

const (
	Idle Phase = iota
	AccumulatingOperand
	ChainPending
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case AccumulatingOperand:
		return "accumulating"
	case ChainPending:
		return "chain-pending"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Phase reports which of the three machine states s is in.
func (s State) Phase() Phase {
	switch {
	case !s.HasPrevious:
		return Idle
	case s.AwaitingOperand:
		return ChainPending
	default:
		return AccumulatingOperand
	}
}

// Snapshot is a printable view of a State. Previous is formatted the way
// the display would show it and is empty when no operand is held.
type Snapshot struct {
	Display         string `json:"display"`
	Previous        string `json:"previous,omitempty"`
	Pending         string `json:"pending,omitempty"`
	AwaitingOperand bool   `json:"awaiting_operand"`
	Phase           string `json:"phase"`
}

// Snapshot returns the printable view of s.
func (s State) Snapshot() Snapshot {
	snap := Snapshot{
		Display:         s.Display,
		Pending:         s.Pending.String(),
		AwaitingOperand: s.AwaitingOperand,
		Phase:           s.Phase().String(),
	}
	if s.HasPrevious {
		snap.Previous = FormatNumber(s.Previous)
	}
	return snap
}
