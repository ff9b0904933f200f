// Package schema defines the ordered column layouts of the headerless
// NT00444 source files. The original exports carry no header row, so the
// names here are applied positionally when a file is read.
package schema

// FieldType represents the expected data type of a column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldDate           // EDTF date, normalized with dates.FixEDTF
	FieldNumeric
	FieldVoyageNumber // "NNNN.N" identifier, read as text to keep leading zeros
)

func (t FieldType) String() string {
	switch t {
	case FieldDate:
		return "date"
	case FieldNumeric:
		return "numeric"
	case FieldVoyageNumber:
		return "voyage_number"
	default:
		return "text"
	}
}

// FieldSpec describes a single column.
type FieldSpec struct {
	Name string
	Type FieldType
}

// Names returns the column names of specs, in order.
func Names(specs []FieldSpec) []string {
	names := make([]string, len(specs))
	for i, spec := range specs {
		names[i] = spec.Name
	}
	return names
}

// ColumnsOfType returns the names of the columns in specs with type t.
func ColumnsOfType(specs []FieldSpec, t FieldType) []string {
	var names []string
	for _, spec := range specs {
		if spec.Type == t {
			names = append(names, spec.Name)
		}
	}
	return names
}
