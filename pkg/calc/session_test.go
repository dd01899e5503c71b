package calc

import "testing"

func TestSession_PressReturnsDisplay(t *testing.T) {
	s := NewSession(nil)
	if got := s.Display(); got != "0" {
		t.Fatalf("initial display %q", got)
	}
	evs, _ := ParseKeys("3 + 4 ×")
	if got := s.PressAll(evs); got != "7" {
		t.Errorf("display %q, want 7", got)
	}
	if got := s.Press(Digit(2)); got != "2" {
		t.Errorf("display %q, want 2", got)
	}
	if got := s.Press(Op(Equals)); got != "14" {
		t.Errorf("display %q, want 14", got)
	}
}

func TestSession_StepsReportEvaluations(t *testing.T) {
	var steps []Step
	s := NewSession(func(st Step) { steps = append(steps, st) })

	evs, _ := ParseKeys("3 + 4 × 2 =")
	s.PressAll(evs)
	if len(steps) != len(evs) {
		t.Fatalf("observed %d steps, want %d", len(steps), len(evs))
	}

	var evals []Evaluation
	for _, st := range steps {
		if ev, ok := st.Evaluation(); ok {
			evals = append(evals, ev)
		}
	}
	want := []Evaluation{
		{Left: 3, Operator: Add, Right: 4, Result: "7"},
		{Left: 7, Operator: Multiply, Right: 2, Result: "14"},
	}
	if len(evals) != len(want) {
		t.Fatalf("got %d evaluations (%+v), want %d", len(evals), evals, len(want))
	}
	for i := range want {
		if evals[i] != want[i] {
			t.Errorf("evaluation %d = %+v, want %+v", i, evals[i], want[i])
		}
	}
}

func TestSession_FirstOperatorIsNotAnEvaluation(t *testing.T) {
	var n int
	s := NewSession(func(st Step) {
		if _, ok := st.Evaluation(); ok {
			n++
		}
	})
	s.Press(Digit(7))
	s.Press(Op(Equals))
	if n != 0 {
		t.Errorf("got %d evaluations, want 0", n)
	}
}

func TestSession_Reset(t *testing.T) {
	calls := 0
	s := NewSession(func(Step) { calls++ })
	s.Press(Digit(9))
	s.Press(Op(Add))
	s.Reset()
	if s.State() != New() {
		t.Errorf("state after reset: %+v", s.State())
	}
	if calls != 2 {
		t.Errorf("reset notified the observer: %d calls", calls)
	}
}
