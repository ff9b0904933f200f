// Package dates parses the date fields of the VOC records.
//
// A date that is missing or cannot be parsed is represented as a pgtype value
// with Valid=false rather than as an error, so that derived values such as
// durations can short-circuit on it.
package dates

import (
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Layout is the canonical textual date format.
const Layout = "2006-01-02"

// parseLayout also accepts unpadded month and day, e.g. 1700-6-1.
const parseLayout = "2006-1-2"

const secondsPerDay = 24 * 60 * 60

// MakeDate parses v as a YYYY-MM-DD date; month and day may be unpadded.
// Returns an invalid date if v is missing or does not match the layout.
func MakeDate(v pgtype.Text) pgtype.Date {
	if !v.Valid {
		return pgtype.Date{Valid: false}
	}
	t, err := time.Parse(parseLayout, v.String)
	if err != nil {
		return pgtype.Date{Valid: false}
	}
	return pgtype.Date{Time: t, Valid: true}
}

// ParseDate is MakeDate for a raw cell; blank cells are missing.
func ParseDate(s string) pgtype.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Date{Valid: false}
	}
	return MakeDate(pgtype.Text{String: s, Valid: true})
}

// CalculateDelta returns end minus begin in whole days.
// Returns an invalid value if either date is invalid.
func CalculateDelta(begin, end pgtype.Date) pgtype.Int4 {
	if !begin.Valid || !end.Valid {
		return pgtype.Int4{Valid: false}
	}
	// time.Duration saturates after ~292 years, so count in Unix seconds.
	days := (end.Time.Unix() - begin.Time.Unix()) / secondsPerDay
	return pgtype.Int4{Int32: int32(days), Valid: true}
}

// FormatDate renders d in Layout, or "" when d is invalid.
func FormatDate(d pgtype.Date) string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(Layout)
}

// FormatDelta renders a day count, or "" when it is invalid.
func FormatDelta(n pgtype.Int4) string {
	if !n.Valid {
		return ""
	}
	return strconv.Itoa(int(n.Int32))
}
