package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mamaar/deskcalc/internal/history"
	"github.com/mamaar/deskcalc/pkg/calc"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPress(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		opts PressOptions
		want string
	}{
		{"chain", []string{"3", "+", "4", "×", "2", "="}, PressOptions{}, "14\n"},
		{"ascii aliases", []string{"7", "*", "6", "="}, PressOptions{}, "42\n"},
		{"numeral tokens", []string{"12.5", "+", "0.5", "="}, PressOptions{}, "13\n"},
		{
			"trace", []string{"12", "÷", "4", "="}, PressOptions{Trace: true},
			"1   1\n2   12\n÷   12\n4   4\n=   3\n3\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Press(&buf, tt.keys, tt.opts); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPress_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Press(&buf, []string{"7 x 6 ="}, PressOptions{JSON: true}); err != nil {
		t.Fatal(err)
	}

	var out PressOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if out.Display != "42" {
		t.Errorf("display = %q, want 42", out.Display)
	}
	if strings.Join(out.Keys, " ") != "7 × 6 =" {
		t.Errorf("keys = %v", out.Keys)
	}
	if out.State.Phase != "chain-pending" || out.State.Previous != "42" {
		t.Errorf("state = %+v", out.State)
	}
	if out.Steps != nil {
		t.Errorf("steps should be omitted without trace: %v", out.Steps)
	}
}

func TestPress_UnknownKey(t *testing.T) {
	err := Press(io.Discard, []string{"2", "^", "3"}, PressOptions{})
	var inErr *calc.InputError
	if !errors.As(err, &inErr) || inErr.Token != "^" {
		t.Fatalf("expected unknown key error for ^, got %v", err)
	}
}

func TestRepl(t *testing.T) {
	in := strings.NewReader("1 + 2\n\n=\nstate\nbogus\nquit\n5\n")
	var out, errOut bytes.Buffer
	if err := Repl(in, &out, &errOut, ReplOptions{}); err != nil {
		t.Fatal(err)
	}
	want := "2\n3\n" +
		"display=3 previous=3 pending== awaiting=true phase=chain-pending\n"
	if got := out.String(); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
	if got := errOut.String(); got != "Error: unknown key \"bogus\"\n" {
		t.Errorf("errors = %q", got)
	}
}

func TestRepl_ErrorsGoToErrorWriter(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := Repl(strings.NewReader("4 +\n2 ^ 3\n1 =\n"), &out, &errOut, ReplOptions{}); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "4\n5\n" {
		t.Errorf("output = %q, want displays only", got)
	}
	if !strings.Contains(errOut.String(), `unknown key "^"`) {
		t.Errorf("errors = %q", errOut.String())
	}
}

func TestRepl_PromptAndEOF(t *testing.T) {
	var out bytes.Buffer
	if err := Repl(strings.NewReader("9"), &out, io.Discard, ReplOptions{Prompt: "> "}); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "> 9\n> " {
		t.Errorf("output = %q", got)
	}
}

func TestRepl_StateJSON(t *testing.T) {
	var out bytes.Buffer
	if err := Repl(strings.NewReader("state\n"), &out, io.Discard, ReplOptions{JSON: true}); err != nil {
		t.Fatal(err)
	}
	var snap calc.Snapshot
	if err := json.Unmarshal(out.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap != (calc.Snapshot{Display: "0", Phase: "idle"}) {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestRunTapes(t *testing.T) {
	dir := t.TempDir()
	pass := writeTape(t, dir, "pass.tape", "2 + 3 =\nexpect 5\n")
	fail := writeTape(t, dir, "fail.tape", "2 × 3 =\nexpect 5\n")
	missing := filepath.Join(dir, "missing.tape")

	var out, errOut bytes.Buffer
	if n := RunTapes(&out, &errOut, []string{pass}); n != 0 {
		t.Fatalf("failed = %d, want 0; stderr: %s", n, errOut.String())
	}
	if !strings.Contains(out.String(), "1/1 expectations passed") {
		t.Errorf("unexpected trace:\n%s", out.String())
	}

	out.Reset()
	n := RunTapes(&out, &errOut, []string{pass, fail, missing})
	if n != 2 {
		t.Errorf("failed = %d, want 2", n)
	}
	if !strings.Contains(out.String(), "tape pass.tape") || !strings.Contains(out.String(), "tape fail.tape") {
		t.Errorf("both traces expected:\n%s", out.String())
	}
	if !strings.Contains(errOut.String(), `expected display "5", got "6"`) {
		t.Errorf("missing failure in stderr:\n%s", errOut.String())
	}
	if !strings.Contains(errOut.String(), "missing.tape") {
		t.Errorf("missing read error in stderr:\n%s", errOut.String())
	}
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	store, err := history.Open(ctx, filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	err = Press(io.Discard, []string{"5 + 3 = ="}, PressOptions{OnStep: store.Recorder(ctx, "desk", testLogger())})
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := History(ctx, &out, store, HistoryOptions{Limit: 10}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out.String())
	}
	if !strings.HasSuffix(lines[0], "desk       8 = 8 = 8") || !strings.HasSuffix(lines[1], "desk       5 + 3 = 8") {
		t.Errorf("unexpected listing:\n%s", out.String())
	}

	out.Reset()
	if err := History(ctx, &out, store, HistoryOptions{Session: "desk", Limit: 1, JSON: true}); err != nil {
		t.Fatal(err)
	}
	var entries []EntryOutput
	if err := json.Unmarshal(out.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Operator != "=" || entries[0].Result != "8" {
		t.Errorf("entries = %+v", entries)
	}

	if err := History(ctx, io.Discard, store, HistoryOptions{Clear: true, Limit: 10}); err == nil {
		t.Error("expected error clearing without a session")
	}
	out.Reset()
	if err := History(ctx, &out, store, HistoryOptions{Session: "desk", Clear: true, Limit: 10}); err != nil {
		t.Fatal(err)
	}
	if out.String() != "cleared 2 entries from desk\n" {
		t.Errorf("clear output = %q", out.String())
	}

	out.Reset()
	if err := History(ctx, &out, store, HistoryOptions{Limit: 10}); err != nil {
		t.Fatal(err)
	}
	if out.String() != "no entries\n" {
		t.Errorf("output after clear = %q", out.String())
	}
}

func TestWatch_ReplaysOnChange(t *testing.T) {
	dir := t.TempDir()
	writeTape(t, dir, "sum.tape", "1 + 1 =\nexpect 2\n")

	out := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, out, dir, 50*time.Millisecond, testLogger())
	}()

	waitForOutput(t, out, "1/1 expectations passed")

	writeTape(t, dir, "sum.tape", "1 + 1 =\nexpect 3\n")
	waitForOutput(t, out, "FAIL: got 2")

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Watch returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not stop after cancellation")
	}
}

func TestChainSteps(t *testing.T) {
	if chainSteps(nil, nil) != nil {
		t.Error("expected nil hook when every hook is nil")
	}
	var order []string
	hook := chainSteps(
		func(calc.Step) { order = append(order, "a") },
		nil,
		func(calc.Step) { order = append(order, "b") },
	)
	hook(calc.Step{})
	if strings.Join(order, "") != "ab" {
		t.Errorf("order = %v", order)
	}
}

// --- helpers ---

func writeTape(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitForOutput(t *testing.T, b *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(b.String(), want) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in output:\n%s", want, b.String())
}
