package cli

import (
	"strings"
	"testing"
)

func TestRunner_ExecuteDispatchesToCommand(t *testing.T) {
	r := NewRunner()
	var got []string
	r.RegisterCommand("press", func(args []string) { got = args })
	r.RegisterCommand("repl", func(args []string) { t.Error("repl should not run") })

	r.Execute("press", []string{"1", "+", "1"})

	if strings.Join(got, " ") != "1 + 1" {
		t.Errorf("args = %v, want [1 + 1]", got)
	}
}

func TestRunner_Names(t *testing.T) {
	r := NewRunner()
	for _, name := range []string{"run", "press", "history"} {
		r.RegisterCommand(name, func([]string) {})
	}
	if got := strings.Join(r.Names(), ","); got != "history,press,run" {
		t.Errorf("Names() = %s", got)
	}
	if _, ok := r.Lookup("watch"); ok {
		t.Error("watch was never registered")
	}
}
