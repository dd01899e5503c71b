package mcp

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/mamaar/deskcalc/pkg/calc"
)

func TestCalcServer_WithoutHistory(t *testing.T) {
	s := NewCalcServer(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer s.Close()

	evs, err := calc.ParseKeys("2 + 2 =")
	if err != nil {
		t.Fatal(err)
	}
	if st := s.Press("x", evs); st.Display != "4" {
		t.Errorf("display = %q, want 4", st.Display)
	}
	if _, err := s.History(context.Background(), "", 10); err == nil {
		t.Error("expected error when history is disabled")
	}
	if st := s.State("never-used"); st != calc.New() {
		t.Errorf("unused session state = %+v", st)
	}
	if got := s.Sessions(); len(got) != 1 || got[0].Name != "x" {
		t.Errorf("reading an unused session must not create it: %+v", got)
	}
}

func TestSessionName(t *testing.T) {
	for in, want := range map[string]string{"": DefaultSession, "  ": DefaultSession, " desk ": "desk"} {
		if got := sessionName(in); got != want {
			t.Errorf("sessionName(%q) = %q, want %q", in, got, want)
		}
	}
}
