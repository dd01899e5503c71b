package calc

import (
	"fmt"
	"strings"
)

// keyAliases maps every accepted button label onto its event. The first
// group are the labels printed on the calculator face; the rest are ASCII
// spellings for terminals.
var keyAliases = map[string]Event{
	"AC": Clear(),
	"±":  Negate(),
	"%":  Percent(),
	"÷":  Op(Divide),
	"×":  Op(Multiply),
	"−":  Op(Subtract),
	"+":  Op(Add),
	"=":  Op(Equals),
	".":  Decimal(),

	"C":     Clear(),
	"clear": Clear(),
	"+/-":   Negate(),
	"neg":   Negate(),
	"/":     Op(Divide),
	"*":     Op(Multiply),
	"x":     Op(Multiply),
	"-":     Op(Subtract),
}

// Label returns the canonical button label for ev.
func (ev Event) Label() string {
	switch ev.Kind {
	case DigitEvent:
		return string(ev.Digit)
	case DecimalEvent:
		return "."
	case OperatorEvent:
		return ev.Op.String()
	case ClearEvent:
		return "AC"
	case PercentEvent:
		return "%"
	case NegateEvent:
		return "±"
	default:
		return ""
	}
}

func (ev Event) String() string {
	return ev.Label()
}

// ParseKey maps a single button label onto its event.
func ParseKey(label string) (Event, error) {
	if len(label) == 1 && label[0] >= '0' && label[0] <= '9' {
		return Digit(int(label[0] - '0')), nil
	}
	if ev, ok := keyAliases[label]; ok {
		return ev, nil
	}
	return Event{}, &InputError{
		Kind:    UnknownKey,
		Message: fmt.Sprintf("unknown key %q", label),
		Token:   label,
	}
}

// ParseKeys splits text on whitespace and maps every token onto events.
// A token made only of digits and dots, such as "12.5", expands into one
// event per character. An unknown token is reported with its 1-based
// position in the sequence as Column.
func ParseKeys(text string) ([]Event, error) {
	var events []Event
	for i, tok := range strings.Fields(text) {
		evs, err := parseToken(tok, i+1)
		if err != nil {
			return nil, err
		}
		events = append(events, evs...)
	}
	return events, nil
}

// parseToken maps one whitespace-delimited token at position pos onto events.
func parseToken(tok string, pos int) ([]Event, error) {
	if ev, err := ParseKey(tok); err == nil {
		return []Event{ev}, nil
	}
	if !isNumeral(tok) {
		return nil, &InputError{
			Kind:    UnknownKey,
			Message: fmt.Sprintf("unknown key %q", tok),
			Token:   tok,
			Column:  pos,
		}
	}
	evs := make([]Event, 0, len(tok))
	for i := 0; i < len(tok); i++ {
		if tok[i] == '.' {
			evs = append(evs, Decimal())
		} else {
			evs = append(evs, Digit(int(tok[i]-'0')))
		}
	}
	return evs, nil
}

func isNumeral(tok string) bool {
	if tok == "" {
		return false
	}
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if c != '.' && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// Labels renders evs as a space-separated key sequence.
func Labels(evs []Event) string {
	parts := make([]string, len(evs))
	for i, ev := range evs {
		parts[i] = ev.Label()
	}
	return strings.Join(parts, " ")
}
