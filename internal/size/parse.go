package size

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidFormat is matched (via errors.Is) by every error Parse returns.
var ErrInvalidFormat = errors.New("invalid size format")

// Reason identifies why a size notation was rejected.
type Reason string

const (
	ReasonUnitRequired Reason = "unit required"
	ReasonUnknownUnit  Reason = "unknown unit"
	ReasonBadNumber    Reason = "bad number"
	ReasonNotSmaller   Reason = "target not smaller than source"
)

// FormatError describes a rejected size notation. Message is written for
// the person at the prompt; Reason is for callers that branch on it.
type FormatError struct {
	Input   string
	Reason  Reason
	Message string
}

func (e *FormatError) Error() string { return e.Message }

// Is lets errors.Is(err, ErrInvalidFormat) succeed for any FormatError.
func (e *FormatError) Is(target error) bool { return target == ErrInvalidFormat }

const unitHelp = "(B, KB, MB, GB)"

// Parse converts a size notation such as "8MB" or "1.5 gb" into bytes. The
// result must be strictly smaller than currentBytes: a target size has to
// ask for actual shrinkage.
func Parse(text string, currentBytes int64) (float64, error) {
	s := normalize(text)

	if s == "" || isDecimal(s) {
		return 0, &FormatError{
			Input:   text,
			Reason:  ReasonUnitRequired,
			Message: "Please specify a unit " + unitHelp + ".",
		}
	}

	unit, ok := matchUnit(s)
	if !ok {
		return 0, &FormatError{
			Input:   text,
			Reason:  ReasonUnknownUnit,
			Message: "Unknown unit. Please specify a valid unit " + unitHelp + ".",
		}
	}

	number := strings.TrimSuffix(s, unit.Suffix)
	if !isDecimal(number) {
		return 0, &FormatError{
			Input:   text,
			Reason:  ReasonBadNumber,
			Message: "Invalid number format. Please enter a number and specify a valid unit " + unitHelp + ".",
		}
	}
	n, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, &FormatError{
			Input:   text,
			Reason:  ReasonBadNumber,
			Message: fmt.Sprintf("Invalid number format %q.", number),
		}
	}

	bytes := n * unit.Multiplier
	if bytes >= float64(currentBytes) {
		return 0, &FormatError{
			Input:   text,
			Reason:  ReasonNotSmaller,
			Message: "Compression size should be less than file size. File size: " + FormatInt(currentBytes),
		}
	}
	return bytes, nil
}

// normalize trims, uppercases and drops all interior whitespace.
func normalize(text string) string {
	return strings.ToUpper(strings.Join(strings.Fields(text), ""))
}

// matchUnit returns the unit whose suffix ends s. The character before the
// suffix must not be a letter, so "12XB" matches nothing rather than "B".
func matchUnit(s string) (Unit, bool) {
	for _, u := range Units {
		if !strings.HasSuffix(s, u.Suffix) {
			continue
		}
		rest := s[:len(s)-len(u.Suffix)]
		if rest != "" && unicode.IsLetter(rune(rest[len(rest)-1])) {
			continue
		}
		return u, true
	}
	return Unit{}, false
}

// isDecimal reports whether s is digits with at most one decimal point and
// at least one digit ("5", "5.", ".5", "12.75").
func isDecimal(s string) bool {
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return digits > 0
}
