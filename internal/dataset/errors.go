package dataset

import "fmt"

// UnknownLabelError is returned when a label is not in the registry.
type UnknownLabelError struct {
	Label   string
	Options []string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("unknown dataset label %q, options are %v", e.Label, e.Options)
}
