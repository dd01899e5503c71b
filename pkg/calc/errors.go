package calc

import "fmt"

type ErrorKind int

const (
	UnknownKey ErrorKind = iota
	MissingValue
	ReadError
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownKey:
		return "unknown key"
	case MissingValue:
		return "missing value"
	case ReadError:
		return "read error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// InputError represents a key or script token that could not be turned into
// events. The engine itself never fails; only the layers that translate
// user input into events do.
type InputError struct {
	Kind    ErrorKind
	Message string
	Token   string
	Source  string // script name, empty for ad-hoc input
	Line    int
	Column  int
	Cause   error
}

func (e *InputError) Error() string {
	if e.Line > 0 {
		src := e.Source
		if src == "" {
			src = "<input>"
		}
		return fmt.Sprintf("%s:%d:%d: %s", src, e.Line, e.Column, e.Message)
	}
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Cause
}
