package numeric

import (
	"fmt"
	"strconv"
	"strings"
)

// Style selects a textual notation.
type Style uint8

const (
	// StylePlain prints positional notation with no exponent.
	StylePlain Style = iota
	// StyleScientific prints one integer digit and an exponent.
	StyleScientific
	// StyleEngineering prints an exponent that is a multiple of three.
	StyleEngineering
	// StylePolar prints COMPLEX values as polar(r, θ).
	StylePolar
)

var styleNames = [...]string{
	StylePlain:       "plain",
	StyleScientific:  "scientific",
	StyleEngineering: "engineering",
	StylePolar:       "polar",
}

func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return fmt.Sprintf("style(%d)", uint8(s))
}

// ParseStyle resolves a style name. "sci" and "eng" are accepted as
// abbreviations.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "plain":
		return StylePlain, nil
	case "scientific", "sci":
		return StyleScientific, nil
	case "engineering", "eng":
		return StyleEngineering, nil
	case "polar":
		return StylePolar, nil
	default:
		return 0, fmt.Errorf("unknown format style %q", name)
	}
}

// formatters carry no policy; formatting never rounds.
var formatters = newBackends(DefaultPolicy())

// Format renders v in the requested style. StylePolar applies only to
// COMPLEX values.
func Format(v Value, style Style) (string, error) {
	if style > StylePolar {
		return "", &UnsupportedOperationError{Op: "format " + style.String(), Kind: v.kind}
	}
	b := formatters.get(v.kind)
	if b == nil {
		return "", &UnsupportedKindError{Kind: v.kind, Native: "Value", Reason: "unknown kind"}
	}
	return b.Format(v, style)
}

// engineering renders a number given its significant digits and the
// exponent of the first digit (scientific exponent). The printed exponent is
// a multiple of three and the integer part has one to three digits.
func engineering(neg bool, digits []byte, adj int64) string {
	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	if len(digits) == 0 || (len(digits) == 1 && digits[0] == '0') {
		sb.WriteString("0e+0")
		return sb.String()
	}
	exp := adj - mod3(adj)
	intDigits := int(adj-exp) + 1
	for len(digits) < intDigits {
		digits = append(digits, '0')
	}
	sb.Write(digits[:intDigits])
	if len(digits) > intDigits {
		sb.WriteByte('.')
		sb.Write(digits[intDigits:])
	}
	sb.WriteByte('e')
	if exp >= 0 {
		sb.WriteByte('+')
	}
	sb.WriteString(strconv.FormatInt(exp, 10))
	return sb.String()
}

// mod3 is the non-negative remainder of n divided by three.
func mod3(n int64) int64 {
	r := n % 3
	if r < 0 {
		r += 3
	}
	return r
}
