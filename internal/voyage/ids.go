package voyage

import "github.com/jackc/pgx/v5/pgtype"

// FallbackID is assigned to DAS rows that have no voyage number at all.
const FallbackID int64 = 100003

// idOverrides resolves voyage numbers that have no usable DAS voyage id.
var idOverrides = map[string]int64{
	"0000.0": 0,
	"4800.1": 100001,
	"4801.1": 100002,
}

// Row carries the DAS fields needed to resolve a voyage id.
type Row struct {
	DASVoyageNum pgtype.Text
	DASVoyageID  pgtype.Int8
}

// FillMissingID returns the canonical DAS voyage id for row.
//
// Known special numbers resolve through a fixed override table. Otherwise a
// row with a voyage number keeps its own id (which may itself be missing),
// and a row without one gets FallbackID.
func FillMissingID(row Row) pgtype.Int8 {
	if row.DASVoyageNum.Valid {
		if id, ok := idOverrides[row.DASVoyageNum.String]; ok {
			return pgtype.Int8{Int64: id, Valid: true}
		}
		return row.DASVoyageID
	}
	return pgtype.Int8{Int64: FallbackID, Valid: true}
}
