package normalize

import "strings"

// SourceType classifies the document a contract row was transcribed from.
type SourceType string

const (
	RegimentBook SourceType = "regiment_book"
	RequestBook  SourceType = "request_book"
	PayLedger    SourceType = "pay_ledger"
)

// ClassifySource derives the source type from the free-text chamber field.
// Regiment books take precedence over request books; anything else is a pay ledger.
func ClassifySource(chamber string) SourceType {
	switch {
	case strings.Contains(chamber, "Regiment"):
		return RegimentBook
	case strings.Contains(chamber, "Verzoekboeken"):
		return RequestBook
	default:
		return PayLedger
	}
}
