package dates

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) pgtype.Date {
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

func TestMakeDate(t *testing.T) {
	tests := []struct {
		name  string
		input pgtype.Text
		want  pgtype.Date
	}{
		{name: "iso date", input: pgtype.Text{String: "2020-01-15", Valid: true}, want: date(2020, time.January, 15)},
		{name: "early modern date", input: pgtype.Text{String: "1694-11-03", Valid: true}, want: date(1694, time.November, 3)},
		{name: "unpadded month and day", input: pgtype.Text{String: "1700-6-1", Valid: true}, want: date(1700, time.June, 1)},
		{name: "bad string", input: pgtype.Text{String: "bad", Valid: true}, want: pgtype.Date{}},
		{name: "wrong layout", input: pgtype.Text{String: "15/01/2020", Valid: true}, want: pgtype.Date{}},
		{name: "impossible day", input: pgtype.Text{String: "2020-02-30", Valid: true}, want: pgtype.Date{}},
		{name: "missing", input: pgtype.Text{}, want: pgtype.Date{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MakeDate(tt.input))
		})
	}
}

func TestParseDate(t *testing.T) {
	assert.Equal(t, date(1700, time.June, 1), ParseDate(" 1700-06-01 "))
	assert.False(t, ParseDate("").Valid)
}

func TestCalculateDelta(t *testing.T) {
	tests := []struct {
		name       string
		begin, end pgtype.Date
		want       pgtype.Int4
	}{
		{name: "ten days", begin: date(2020, 1, 1), end: date(2020, 1, 11), want: pgtype.Int4{Int32: 10, Valid: true}},
		{name: "negative", begin: date(2020, 1, 11), end: date(2020, 1, 1), want: pgtype.Int4{Int32: -10, Valid: true}},
		{name: "across non-leap 1700", begin: date(1700, 2, 27), end: date(1704, 3, 1), want: pgtype.Int4{Int32: 1463, Valid: true}},
		{name: "long span", begin: date(1602, 3, 20), end: date(1999, 12, 31), want: pgtype.Int4{Int32: 145287, Valid: true}},
		{name: "begin missing", begin: pgtype.Date{}, end: date(2020, 1, 1), want: pgtype.Int4{}},
		{name: "end missing", begin: date(2020, 1, 1), end: pgtype.Date{}, want: pgtype.Int4{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateDelta(tt.begin, tt.end))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1700-06-01", FormatDate(date(1700, 6, 1)))
	assert.Equal(t, "", FormatDate(pgtype.Date{}))
	assert.Equal(t, "-3", FormatDelta(pgtype.Int4{Int32: -3, Valid: true}))
	assert.Equal(t, "", FormatDelta(pgtype.Int4{}))
}

func TestFixEDTF(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2020/2021", "2020"},
		{"1700-05-01/1702-01-01", "1700-05-01"},
		{"2020-01-01", "2020-01-01"},
		{"", ""},
		{"[1667, 1668, 1670..1672]", "1667"},
		{"[1760-01, 1760-02]", "1760-01"},
		{"[1760-12-03?,1761]", "1760-12-03"},
		{"[1670..1672, 1680]", "1670"},
		{"[..1760-12-03]", "1760-12-03"},
		{"[1760..]", "1760"},
		{"[1700-06-01~, 1701]", "1700-06-01"},
		{"[2004-06-11%]", "2004-06-11"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := FixEDTF(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFixEDTF_Invalid(t *testing.T) {
	for _, input := range []string{"[]", "[1760", "[abc]", "[17-60]", "[..]", "[1760, x]"} {
		_, err := FixEDTF(input)
		assert.ErrorIs(t, err, ErrInvalidEDTF, "input %q", input)
	}
}

func TestParseSet_AllOf(t *testing.T) {
	set, err := ParseSet("{1667, 1668}")
	require.NoError(t, err)
	assert.False(t, set.OneOf)
	require.Len(t, set.Members, 2)
	assert.Equal(t, Member{Start: "1668", End: "1668"}, set.Members[1])
	assert.Equal(t, "", Set{}.First())
}
