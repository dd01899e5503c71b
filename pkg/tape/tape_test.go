package tape

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mamaar/deskcalc/pkg/calc"
)

var update = flag.Bool("update", false, "update golden files")

func TestRun_Golden(t *testing.T) {
	tapes, err := filepath.Glob(filepath.Join("testdata", "*"+Ext))
	if err != nil {
		t.Fatal(err)
	}
	if len(tapes) == 0 {
		t.Fatal("no tapes in testdata")
	}

	for _, path := range tapes {
		name := filepath.Base(path)
		t.Run(strings.TrimSuffix(name, Ext), func(t *testing.T) {
			tp, err := ParseFile(path)
			if err != nil {
				t.Fatalf("ParseFile: %v", err)
			}
			var buf bytes.Buffer
			if err := Format(&buf, Run(tp, nil)); err != nil {
				t.Fatalf("Format: %v", err)
			}

			golden := strings.TrimSuffix(path, Ext) + ".golden"
			if *update {
				if err := os.WriteFile(golden, buf.Bytes(), 0o644); err != nil {
					t.Fatal(err)
				}
				return
			}
			want, err := os.ReadFile(golden)
			if err != nil {
				t.Fatalf("read golden (run with -update to create): %v", err)
			}
			if got := buf.String(); got != string(want) {
				t.Errorf("trace mismatch for %s\n--- got ---\n%s\n--- want ---\n%s", name, got, want)
			}
		})
	}
}

func TestRun_Failures(t *testing.T) {
	tp, err := Parse("inline", strings.NewReader("2 × 3 =\nexpect 6\n+ 1 =\nexpect 8\n"))
	if err != nil {
		t.Fatal(err)
	}
	res := Run(tp, nil)
	if res.OK() {
		t.Fatal("expected a failure")
	}
	if res.Expectations != 2 || len(res.Failures) != 1 {
		t.Fatalf("expectations=%d failures=%v", res.Expectations, res.Failures)
	}
	f := res.Failures[0]
	if f.Line != 4 || f.Column != 1 || f.Want != "8" || f.Got != "7" {
		t.Errorf("unexpected failure %+v", f)
	}
	if res.Display != "7" {
		t.Errorf("display %q, want 7", res.Display)
	}
}

func TestRun_ObservesSteps(t *testing.T) {
	tp, err := Parse("inline", strings.NewReader("9 − 4 = expect 5"))
	if err != nil {
		t.Fatal(err)
	}
	var evals []calc.Evaluation
	Run(tp, func(st calc.Step) {
		if ev, ok := st.Evaluation(); ok {
			evals = append(evals, ev)
		}
	})
	if len(evals) != 1 || evals[0].Result != "5" || evals[0].Operator != calc.Subtract {
		t.Errorf("evaluations = %+v", evals)
	}
}

func TestParse_Positions(t *testing.T) {
	src := "  12  +\n# comment only\n\t3 = expect 15 # trailing\n"
	tp, err := Parse("pos", strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	type pos struct{ line, col int }
	want := []pos{{1, 3}, {1, 3}, {1, 7}, {3, 2}, {3, 4}, {3, 6}}
	if len(tp.Instructions) != len(want) {
		t.Fatalf("got %d instructions, want %d", len(tp.Instructions), len(want))
	}
	for i, w := range want {
		in := tp.Instructions[i]
		if in.Line != w.line || in.Column != w.col {
			t.Errorf("instruction %d at %d:%d, want %d:%d", i, in.Line, in.Column, w.line, w.col)
		}
	}
	last := tp.Instructions[len(tp.Instructions)-1]
	if last.Kind != ExpectInstruction || last.Want != "15" {
		t.Errorf("last instruction %+v", last)
	}
	if got := calc.Labels(tp.Keys()); got != "1 2 + 3 =" {
		t.Errorf("Keys = %q", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind calc.ErrorKind
		line int
		col  int
	}{
		{"unknown key", "1 +\n2 ^ 3\n", calc.UnknownKey, 2, 3},
		{"dangling expect", "1 + 1 =\nexpect\n", calc.MissingValue, 2, 1},
		{"unicode columns", "× × sqrt", calc.UnknownKey, 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.tape", strings.NewReader(tt.src))
			var inErr *calc.InputError
			if !errors.As(err, &inErr) {
				t.Fatalf("expected *calc.InputError, got %T (%v)", err, err)
			}
			if inErr.Kind != tt.kind || inErr.Line != tt.line || inErr.Column != tt.col {
				t.Errorf("got kind=%v at %d:%d, want kind=%v at %d:%d",
					inErr.Kind, inErr.Line, inErr.Column, tt.kind, tt.line, tt.col)
			}
			if !strings.HasPrefix(err.Error(), "bad.tape:") {
				t.Errorf("error %q lacks source prefix", err)
			}
		})
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.tape"))
	var inErr *calc.InputError
	if !errors.As(err, &inErr) || inErr.Kind != calc.ReadError {
		t.Fatalf("expected read error, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist: %v", err)
	}
}
