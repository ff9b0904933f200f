package voyage

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

func TestAddLeadingZeros(t *testing.T) {
	tests := []struct {
		name  string
		input pgtype.Text
		want  pgtype.Text
	}{
		{name: "two digits", input: text("12.3"), want: text("0012.3")},
		{name: "three digits", input: text("496.2"), want: text("0496.2")},
		{name: "already padded", input: text("4572.1"), want: text("4572.1")},
		{name: "no digits", input: text(".1"), want: text("0000.1")},
		{name: "missing passes through", input: pgtype.Text{}, want: pgtype.Text{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddLeadingZeros(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddLeadingZeros_Malformed(t *testing.T) {
	for _, input := range []string{"abc", "1662", "12345.1", ""} {
		_, err := AddLeadingZeros(text(input))
		assert.ErrorIs(t, err, ErrMalformedNumber, "input %q", input)
	}
}

func TestCorrect(t *testing.T) {
	assert.Equal(t, "4572.3", Correct("4572.1"))
	assert.Equal(t, "0496.1", Correct("0496.2"))
	assert.Equal(t, "1234.5", Correct("1234.5"))

	// disabled entries are not applied
	assert.Equal(t, "1316.4", Correct("1316.4"))
}

func TestCorrectNumeric(t *testing.T) {
	assert.Equal(t, 1315.4, CorrectNumeric(1316.4))
	assert.Equal(t, 1662.1, CorrectNumeric(1662))
	assert.Equal(t, 42.0, CorrectNumeric(42))
}

func TestCanonical(t *testing.T) {
	got, err := Canonical(text("496.2"))
	require.NoError(t, err)
	assert.Equal(t, text("0496.1"), got)

	got, err = Canonical(pgtype.Text{})
	require.NoError(t, err)
	assert.False(t, got.Valid)

	_, err = Canonical(text("n/a"))
	assert.ErrorIs(t, err, ErrMalformedNumber)
}

func TestDiscrepancies(t *testing.T) {
	got := Discrepancies()

	require.Len(t, got, 2)
	assert.Equal(t, Discrepancy{Key: "1316.4", Numeric: "1315.4", Disabled: true}, got[0])
	assert.Equal(t, Discrepancy{Key: "1662.0", Numeric: "1662.1", Disabled: true}, got[1])
	assert.Equal(t, "1316.4 -> 1315.4 (disabled in string table)", got[0].String())
}

func TestFillMissingID(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want pgtype.Int8
	}{
		{
			name: "zero voyage",
			row:  Row{DASVoyageNum: text("0000.0"), DASVoyageID: pgtype.Int8{Int64: 7, Valid: true}},
			want: pgtype.Int8{Int64: 0, Valid: true},
		},
		{
			name: "override 4800.1",
			row:  Row{DASVoyageNum: text("4800.1")},
			want: pgtype.Int8{Int64: 100001, Valid: true},
		},
		{
			name: "override 4801.1",
			row:  Row{DASVoyageNum: text("4801.1")},
			want: pgtype.Int8{Int64: 100002, Valid: true},
		},
		{
			name: "existing id kept",
			row:  Row{DASVoyageNum: text("1234.1"), DASVoyageID: pgtype.Int8{Int64: 93412, Valid: true}},
			want: pgtype.Int8{Int64: 93412, Valid: true},
		},
		{
			name: "missing number falls back",
			row:  Row{DASVoyageID: pgtype.Int8{Int64: 5, Valid: true}},
			want: pgtype.Int8{Int64: FallbackID, Valid: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FillMissingID(tt.row))
		})
	}
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, text("12.3"), ParseNumber(" 12.3 "))
	assert.False(t, ParseNumber("   ").Valid)
}
