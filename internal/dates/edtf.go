package dates

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sfomuseum/go-edtf/parser"
)

// ErrInvalidEDTF is returned when an EDTF set expression cannot be parsed.
var ErrInvalidEDTF = errors.New("invalid EDTF expression")

// qualifiers strips uncertain (?), approximate (~) and combined (%) markers.
var qualifiers = strings.NewReplacer("?", "", "~", "", "%", "")

// FixEDTF turns an EDTF expression into a single plain date string.
//
//   - "[a, b..c]" (a one-of set): the first member of the set
//   - "a/b" (an interval): the start of the interval
//   - anything else is returned unchanged
func FixEDTF(x string) (string, error) {
	switch {
	case strings.HasPrefix(x, "["):
		set, err := ParseSet(x)
		if err != nil {
			return "", err
		}
		return set.First(), nil
	case strings.Contains(x, "/"):
		start, _, _ := strings.Cut(x, "/")
		return start, nil
	default:
		return x, nil
	}
}

// Set is a parsed EDTF set: "[...]" (one of) or "{...}" (all of).
type Set struct {
	OneOf   bool
	Members []Member
}

// Member is a single date or a range inside a Set. For a single date Start
// and End are equal; open ends are empty.
type Member struct {
	Start string
	End   string
}

// Resolve returns the earliest known date of the member.
func (m Member) Resolve() string {
	if m.Start != "" {
		return m.Start
	}
	return m.End
}

// First returns the resolved first member, or "" for an empty set.
func (s Set) First() string {
	if len(s.Members) == 0 {
		return ""
	}
	return s.Members[0].Resolve()
}

// ParseSet parses an EDTF set expression. Qualifiers on member dates are
// dropped from the result.
func ParseSet(s string) (Set, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Set{}, fmt.Errorf("%w: %q", ErrInvalidEDTF, s)
	}

	var set Set
	switch {
	case s[0] == '[' && s[len(s)-1] == ']':
		set.OneOf = true
	case s[0] == '{' && s[len(s)-1] == '}':
	default:
		return Set{}, fmt.Errorf("%w: %q is not a set", ErrInvalidEDTF, s)
	}

	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return Set{}, fmt.Errorf("%w: empty set", ErrInvalidEDTF)
	}

	for _, part := range strings.Split(body, ",") {
		m, err := parseMember(strings.TrimSpace(part))
		if err != nil {
			return Set{}, fmt.Errorf("%w in %q", err, s)
		}
		set.Members = append(set.Members, m)
	}
	return set, nil
}

func parseMember(part string) (Member, error) {
	start, end, isRange := strings.Cut(part, "..")
	if !isRange {
		d, err := parseEDTFDate(part)
		if err != nil {
			return Member{}, err
		}
		return Member{Start: d, End: d}, nil
	}

	if start == "" && end == "" {
		return Member{}, fmt.Errorf("%w: unbounded range", ErrInvalidEDTF)
	}

	var m Member
	var err error
	if start != "" {
		if m.Start, err = parseEDTFDate(start); err != nil {
			return Member{}, err
		}
	}
	if end != "" {
		if m.End, err = parseEDTFDate(end); err != nil {
			return Member{}, err
		}
	}
	return m, nil
}

// parseEDTFDate validates a single EDTF date and returns it without
// qualifiers.
func parseEDTFDate(s string) (string, error) {
	if _, err := parser.ParseString(s); err != nil {
		return "", fmt.Errorf("%w: bad date %q: %v", ErrInvalidEDTF, s, err)
	}
	return qualifiers.Replace(s), nil
}
