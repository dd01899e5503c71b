// Package tape parses and replays keystroke scripts.
//
// A tape is plain text. Tokens are separated by whitespace and '#' starts a
// comment that runs to the end of the line. Every token is a calculator key
// label (see calc.ParseKey) or a numeral such as "12.5". The directive
// "expect <display>" asserts the display after the keys before it:
//
//	# left-to-right folding
//	3 + 4 × 2 =
//	expect 14
package tape

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mamaar/deskcalc/pkg/calc"
)

// Ext is the file extension of tape scripts.
const Ext = ".tape"

const expectDirective = "expect"

type InstructionKind int

const (
	KeyInstruction InstructionKind = iota
	ExpectInstruction
)

// Instruction is one key press or one expectation, with its source position.
type Instruction struct {
	Kind   InstructionKind
	Event  calc.Event // KeyInstruction
	Want   string     // ExpectInstruction
	Line   int
	Column int
}

// Tape is a parsed keystroke script.
type Tape struct {
	Name         string
	Instructions []Instruction
}

// Keys returns the key events of the tape, without expectations.
func (t *Tape) Keys() []calc.Event {
	var evs []calc.Event
	for _, in := range t.Instructions {
		if in.Kind == KeyInstruction {
			evs = append(evs, in.Event)
		}
	}
	return evs
}

// ParseFile reads and parses the tape at path.
func ParseFile(path string) (*Tape, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &calc.InputError{
			Kind:    calc.ReadError,
			Message: fmt.Sprintf("open tape: %v", err),
			Source:  path,
			Cause:   err,
		}
	}
	defer f.Close()
	return Parse(filepath.Base(path), f)
}

// Parse reads a tape from r. name is used in error positions.
func Parse(name string, r io.Reader) (*Tape, error) {
	t := &Tape{Name: name}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		toks := fields(line)
		for i := 0; i < len(toks); i++ {
			tok := toks[i]
			if tok.text == expectDirective {
				if i+1 >= len(toks) {
					return nil, &calc.InputError{
						Kind:    calc.MissingValue,
						Message: "expect needs a display value",
						Token:   tok.text,
						Source:  name,
						Line:    lineNo,
						Column:  tok.col,
					}
				}
				i++
				t.Instructions = append(t.Instructions, Instruction{
					Kind:   ExpectInstruction,
					Want:   toks[i].text,
					Line:   lineNo,
					Column: tok.col,
				})
				continue
			}

			evs, err := calc.ParseKeys(tok.text)
			if err != nil {
				return nil, &calc.InputError{
					Kind:    calc.UnknownKey,
					Message: fmt.Sprintf("unknown key %q", tok.text),
					Token:   tok.text,
					Source:  name,
					Line:    lineNo,
					Column:  tok.col,
					Cause:   err,
				}
			}
			for _, ev := range evs {
				t.Instructions = append(t.Instructions, Instruction{
					Kind:   KeyInstruction,
					Event:  ev,
					Line:   lineNo,
					Column: tok.col,
				})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &calc.InputError{
			Kind:    calc.ReadError,
			Message: fmt.Sprintf("read tape: %v", err),
			Source:  name,
			Cause:   err,
		}
	}
	return t, nil
}

type token struct {
	text string
	col  int // 1-based, in runes
}

// fields splits line on whitespace and records each token's column.
func fields(line string) []token {
	var toks []token
	start := -1
	for i, r := range line {
		if unicode.IsSpace(r) {
			if start >= 0 {
				toks = append(toks, token{text: line[start:i], col: utf8.RuneCountInString(line[:start]) + 1})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		toks = append(toks, token{text: line[start:], col: utf8.RuneCountInString(line[:start]) + 1})
	}
	return toks
}
