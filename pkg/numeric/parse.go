package numeric

import (
	"errors"
	"math/cmplx"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// FromText parses text under the grammar of kind. Surrounding whitespace is
// ignored. Malformed input yields a *ParseError naming the offending
// substring.
func FromText(text string, kind Kind) (Value, error) {
	switch kind {
	case KindDouble:
		return parseDouble(text)
	case KindDecimal:
		return parseDecimal(text)
	case KindComplex:
		return parseComplex(text)
	default:
		return Value{}, &UnsupportedKindError{Kind: kind, Native: "string", Reason: "unknown kind"}
	}
}

// Parse is the facade spelling of FromText.
func Parse(text string, kind Kind) (Value, error) {
	return FromText(text, kind)
}

// trim strips whitespace and returns the offset of the first kept byte.
func trim(text string) (string, int) {
	s := strings.TrimLeft(text, " \t\r\n")
	lead := len(text) - len(s)
	return strings.TrimRight(s, " \t\r\n"), lead
}

func parseFailure(kind Kind, input, s string, off, base int, reason string) *ParseError {
	e := &ParseError{Kind: kind, Input: input, Offset: base + off, Reason: reason}
	if off < len(s) {
		e.Offending = s[off:]
	}
	return e
}

// scanDecimal validates [+-]?(digits[.digits?]|.digits)([eE][+-]?digits)?
// and returns the index of the first byte that breaks the grammar, or
// len(s) with ok=false when the input ends early.
func scanDecimal(s string) (pos int, ok bool) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intDigits := i - intStart
	if i < len(s) && s[i] == '.' {
		i++
		fracStart := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if intDigits == 0 && i == fracStart {
			return i, false
		}
	} else if intDigits == 0 {
		return i, false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expStart := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == expStart {
			return i, false
		}
	}
	return i, i == len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func parseDecimal(text string) (Value, error) {
	s, lead := trim(text)
	if s == "" {
		return Value{}, parseFailure(KindDecimal, text, s, 0, lead, "empty input")
	}
	if pos, ok := scanDecimal(s); !ok {
		reason := "unexpected character"
		if pos >= len(s) {
			reason = "unexpected end of input"
		}
		return Value{}, parseFailure(KindDecimal, text, s, pos, lead, reason)
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Value{}, parseFailure(KindDecimal, text, s, 0, lead, err.Error())
	}
	return decimalValue(d), nil
}

func parseDouble(text string) (Value, error) {
	s, lead := trim(text)
	if s == "" {
		return Value{}, parseFailure(KindDouble, text, s, 0, lead, "empty input")
	}
	f, err := parseFloatPart(KindDouble, text, s, lead)
	if err != nil {
		return Value{}, err
	}
	return Double(f), nil
}

// parseFloatPart parses one double literal found at offset base of input.
func parseFloatPart(kind Kind, input, s string, base int) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, parseFailure(kind, input, s, 0, base, "value out of range")
	}
	pos, _ := scanDecimal(s)
	if pos >= len(s) {
		if s == "" {
			return 0, parseFailure(kind, input, s, 0, base, "missing number")
		}
		return 0, parseFailure(kind, input, s, len(s), base, "unexpected end of input")
	}
	return 0, parseFailure(kind, input, s, pos, base, "invalid float literal")
}

// parseComplex accepts a, bi, a+bi, a-bi, i, -i, a+i, optionally wrapped in
// parentheses, and polar(r, θ).
func parseComplex(text string) (Value, error) {
	s, lead := trim(text)
	if s == "" {
		return Value{}, parseFailure(KindComplex, text, s, 0, lead, "empty input")
	}
	if len(s) > 6 && strings.EqualFold(s[:6], "polar(") {
		return parsePolar(text, s, lead)
	}
	if s[0] == '(' {
		if s[len(s)-1] != ')' {
			return Value{}, parseFailure(KindComplex, text, s, len(s), lead, "unclosed parenthesis")
		}
		s, lead = s[1:len(s)-1], lead+1
		if s == "" {
			return Value{}, parseFailure(KindComplex, text, s, 0, lead, "empty parentheses")
		}
	}
	if s[len(s)-1] != 'i' {
		re, err := parseFloatPart(KindComplex, text, s, lead)
		if err != nil {
			return Value{}, err
		}
		return Complex(re, 0), nil
	}
	body := s[:len(s)-1]
	split := splitImaginary(body)
	var re float64
	if split > 0 {
		var err error
		if re, err = parseFloatPart(KindComplex, text, body[:split], lead); err != nil {
			return Value{}, err
		}
	}
	im, err := parseImaginary(text, body[split:], lead+split)
	if err != nil {
		return Value{}, err
	}
	return Complex(re, im), nil
}

// splitImaginary finds the sign that starts the imaginary part: the last
// '+' or '-' that is neither leading nor part of an exponent. Zero means the
// whole body is imaginary.
func splitImaginary(body string) int {
	for i := len(body) - 1; i > 0; i-- {
		if (body[i] == '+' || body[i] == '-') && body[i-1] != 'e' && body[i-1] != 'E' {
			return i
		}
	}
	return 0
}

func parseImaginary(input, s string, base int) (float64, error) {
	switch s {
	case "", "+":
		return 1, nil
	case "-":
		return -1, nil
	}
	return parseFloatPart(KindComplex, input, s, base)
}

func parsePolar(input, s string, lead int) (Value, error) {
	if s[len(s)-1] != ')' {
		return Value{}, parseFailure(KindComplex, input, s, len(s), lead, "unclosed parenthesis")
	}
	inner := s[6 : len(s)-1]
	rText, thetaText, found := strings.Cut(inner, ",")
	if !found {
		return Value{}, parseFailure(KindComplex, input, s, len(s)-1, lead, "polar form needs two arguments")
	}
	rTrim, rLead := trim(rText)
	r, err := parseFloatPart(KindComplex, input, rTrim, lead+6+rLead)
	if err != nil {
		return Value{}, err
	}
	thetaTrim, tLead := trim(thetaText)
	theta, err := parseFloatPart(KindComplex, input, thetaTrim, lead+6+len(rText)+1+tLead)
	if err != nil {
		return Value{}, err
	}
	return Complex128(cmplx.Rect(r, theta)), nil
}
