package voyage

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// NumberWidth is the canonical width of the voyage number before the decimal point.
const NumberWidth = 4

// ErrMalformedNumber is returned when a voyage number does not start with
// up to four digits followed by a decimal point.
var ErrMalformedNumber = errors.New("malformed voyage number")

var numberPrefix = regexp.MustCompile(`^(\d{0,4})\.`)

// AddLeadingZeros left-pads the number part of a voyage identifier with zeros
// to NumberWidth digits: "12.3" becomes "0012.3".
// A missing value (Valid=false) is returned unchanged.
func AddLeadingZeros(number pgtype.Text) (pgtype.Text, error) {
	if !number.Valid {
		return number, nil
	}

	m := numberPrefix.FindStringSubmatch(number.String)
	if m == nil {
		return pgtype.Text{}, fmt.Errorf("%w: %q", ErrMalformedNumber, number.String)
	}

	padded := strings.Repeat("0", NumberWidth-len(m[1])) + number.String
	return pgtype.Text{String: padded, Valid: true}, nil
}

// Canonical pads a voyage identifier and applies the string correction table.
func Canonical(number pgtype.Text) (pgtype.Text, error) {
	padded, err := AddLeadingZeros(number)
	if err != nil || !padded.Valid {
		return padded, err
	}
	padded.String = Correct(padded.String)
	return padded, nil
}

// ParseNumber wraps a raw cell as a voyage number. Empty cells are missing.
func ParseNumber(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}
