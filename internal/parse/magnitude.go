package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Multipliers for sreport's abbreviated number format. Suffixes are matched
// case-insensitively; a missing suffix means base units.
var magnitudes = map[byte]float64{
	'k': 1e3,
	'm': 1e6,
	'g': 1e9,
	't': 1e12,
	'p': 1e15,
}

// After suffix and comma stripping the remainder must be a plain non-negative
// decimal. strconv.ParseFloat alone is too permissive here (exponents, hex
// floats, leading signs).
var decimalPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// MalformedNumberError reports a token that failed suffixed-number parsing.
type MalformedNumberError struct {
	Token string
}

func (e *MalformedNumberError) Error() string {
	return fmt.Sprintf("malformed number %q", e.Token)
}

// ParseMagnitude converts a token like "1,234k" or "2.5G" into base units:
// the trailing magnitude letter (k/m/g/t/p) selects the multiplier, commas
// are thousands separators. Pure function, no side effects.
func ParseMagnitude(token string) (float64, error) {
	s := strings.TrimSpace(token)

	multiplier := 1.0
	if len(s) > 0 {
		if m, ok := magnitudes[s[len(s)-1]|0x20]; ok {
			multiplier = m
			s = s[:len(s)-1]
		}
	}

	s = strings.ReplaceAll(s, ",", "")
	if !decimalPattern.MatchString(s) {
		return 0, &MalformedNumberError{Token: token}
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &MalformedNumberError{Token: token}
	}
	return value * multiplier, nil
}
