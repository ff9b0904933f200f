// Package voyage normalizes VOC voyage identifiers.
//
// A voyage identifier has the form "NNNN.N": a four digit voyage number, a
// decimal point and a sub-voyage digit. Source files frequently drop the
// leading zeros and contain a handful of known data-entry errors, which the
// correction tables in this package remap.
package voyage

import (
	"fmt"
	"sort"
	"strconv"
)

// NumericCorrections maps incorrect voyage numbers to correct voyage numbers,
// keyed by the numeric value of the identifier.
var NumericCorrections = map[float64]float64{
	4572.1: 4572.3,
	4633.3: 4633.4,
	1316.4: 1315.4,
	1662:   1662.1,
	496.2:  496.1,
	2925.5: 2925.1,
	4540.1: 4540.2,
	4671.1: 4671.2,
}

// StringCorrections maps incorrect voyage identifiers to correct ones, keyed by
// the zero-padded identifier. This is the table Correct uses.
var StringCorrections = map[string]string{
	"4572.1": "4572.3",
	"4633.3": "4633.4",
	"0496.2": "0496.1",
	"2925.5": "2925.1",
	"4540.1": "4540.2",
	"4671.1": "4671.2",
}

// DisabledStringCorrections holds string-keyed corrections that are known but
// switched off. NumericCorrections still carries them; see Discrepancies.
var DisabledStringCorrections = map[string]string{
	"1316.4": "1315.4",
	"1662":   "1662.1",
}

// Correct returns the corrected identifier for id, or id unchanged when no
// correction is registered.
func Correct(id string) string {
	if fixed, ok := StringCorrections[id]; ok {
		return fixed
	}
	return id
}

// CorrectNumeric is the numeric-keyed counterpart of Correct.
func CorrectNumeric(n float64) float64 {
	if fixed, ok := NumericCorrections[n]; ok {
		return fixed
	}
	return n
}

// Discrepancy describes a numeric correction that the string table does not apply.
type Discrepancy struct {
	Key      string `json:"key" yaml:"key"`
	Numeric  string `json:"numeric" yaml:"numeric"`
	Disabled bool   `json:"disabled" yaml:"disabled"` // listed in DisabledStringCorrections
}

func (d Discrepancy) String() string {
	state := "missing"
	if d.Disabled {
		state = "disabled"
	}
	return fmt.Sprintf("%s -> %s (%s in string table)", d.Key, d.Numeric, state)
}

// Discrepancies lists every entry of NumericCorrections whose padded key is not
// enabled in StringCorrections, sorted by key.
func Discrepancies() []Discrepancy {
	disabled := make(map[string]bool, len(DisabledStringCorrections))
	for k := range DisabledStringCorrections {
		n, err := strconv.ParseFloat(k, 64)
		if err != nil {
			continue
		}
		disabled[formatNumber(n)] = true
	}

	var out []Discrepancy
	for from, to := range NumericCorrections {
		key := formatNumber(from)
		if fixed, ok := StringCorrections[key]; ok && fixed == formatNumber(to) {
			continue
		}
		out = append(out, Discrepancy{
			Key:      key,
			Numeric:  formatNumber(to),
			Disabled: disabled[key],
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out
}

// formatNumber renders a numeric identifier in canonical "NNNN.N" form.
func formatNumber(n float64) string {
	return fmt.Sprintf("%06.1f", n)
}
