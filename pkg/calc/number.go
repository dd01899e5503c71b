package calc

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseNumber converts the longest leading decimal literal of s into a
// float64. Trailing garbage is ignored ("5." is 5, "Infinity5" is +Inf).
// A string with no numeric prefix yields NaN; overflow yields ±Inf.
func ParseNumber(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := numericPrefix(s)
	if end == 0 {
		return math.NaN()
	}
	lit := s[:end]

	body := strings.TrimLeft(lit, "+-")
	if body == "Infinity" {
		if lit[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		// ErrRange still carries the correctly rounded ±Inf or 0.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return v
		}
		return math.NaN()
	}
	return v
}

// numericPrefix returns the length of the decimal literal at the start of s,
// or 0 when there is none.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		return i + len("Infinity")
	}

	intDigits := countDigits(s[i:])
	i += intDigits
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		fracDigits = countDigits(s[i+1:])
		if intDigits > 0 || fracDigits > 0 {
			i += 1 + fracDigits
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if n := countDigits(s[j:]); n > 0 {
			i = j + n
		}
	}
	return i
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

// FormatNumber renders v the way a desk calculator display shows it:
// shortest round-trip digits, plain notation for magnitudes in [1e-6, 1e21),
// exponent notation otherwise. Negative zero renders as "0".
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, expPart, _ := strings.Cut(sci, "e")
	digits := strings.Replace(mantissa, ".", "", 1)
	exp, _ := strconv.Atoi(expPart)

	k := len(digits)
	n := exp + 1

	var out string
	switch {
	case k <= n && n <= 21:
		out = digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		out = digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		out = "0." + strings.Repeat("0", -n) + digits
	default:
		e := n - 1
		es := "+" + strconv.Itoa(e)
		if e < 0 {
			es = "-" + strconv.Itoa(-e)
		}
		if k == 1 {
			out = digits + "e" + es
		} else {
			out = digits[:1] + "." + digits[1:] + "e" + es
		}
	}
	return sign + out
}
