package summaries

import (
	"fmt"

	"github.com/go-sif/sketchfn"
	errors "github.com/go-sif/sketchfn/errors"
)

func incompatible(expected sketchfn.Summary, got sketchfn.Summary) error {
	return errors.IncompatibleSummaryError{
		Expected: fmt.Sprintf("%T", expected),
		Got:      fmt.Sprintf("%T", got),
	}
}

func corrupt(kind string, format string, args ...interface{}) error {
	return errors.CorruptSummaryError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}
