package calc

// Step describes one handled event.
type Step struct {
	Event  Event
	Before State
	After  State
}

// Evaluation is a completed binary operation, as printed on a paper tape.
type Evaluation struct {
	Left     float64
	Operator Operator
	Right    float64
	Result   string
}

// Evaluation reports the operation folded by this step, if any. Only an
// operator press with a pending chain evaluates.
func (st Step) Evaluation() (Evaluation, bool) {
	if st.Event.Kind != OperatorEvent || !st.Before.HasPrevious || st.Before.Pending == NoOperator {
		return Evaluation{}, false
	}
	return Evaluation{
		Left:     leftOperand(st.Before.Previous),
		Operator: st.Before.Pending,
		Right:    ParseNumber(st.Before.Display),
		Result:   st.After.Display,
	}, true
}

// StepFunc observes every step of a Session.
type StepFunc func(Step)

// Session owns the state of one calculator for its whole lifetime.
//
// A Session is not safe for concurrent use; the owner must serialize
// events.
type Session struct {
	state  State
	onStep StepFunc
}

// NewSession returns a session in the initial state. onStep may be nil.
func NewSession(onStep StepFunc) *Session {
	return &Session{state: New(), onStep: onStep}
}

// Press applies ev and returns the resulting display.
func (s *Session) Press(ev Event) string {
	before := s.state
	s.state = Apply(before, ev)
	if s.onStep != nil {
		s.onStep(Step{Event: ev, Before: before, After: s.state})
	}
	return s.state.Display
}

// PressAll applies evs in order and returns the final display.
func (s *Session) PressAll(evs []Event) string {
	for _, ev := range evs {
		s.Press(ev)
	}
	return s.state.Display
}

func (s *Session) Display() string { return s.state.Display }

func (s *Session) State() State { return s.state }

// Reset returns the session to its initial state without notifying the
// step observer.
func (s *Session) Reset() {
	s.state = New()
}
