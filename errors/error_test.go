package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	require.Equal(t, "Incoming summary *summaries.Sum is not compatible with *summaries.Count",
		IncompatibleSummaryError{Expected: "*summaries.Count", Got: "*summaries.Sum"}.Error())
	require.Equal(t, "Input position 3 is out of range for a tuple of width 2",
		ShapeMismatchError{Index: 3, Width: 2}.Error())
	require.Equal(t, "Unknown state codec \"snappy\"", UnknownCodecError{Name: "snappy"}.Error())
	require.Equal(t, "Serialized count summary is corrupt: short buffer",
		CorruptSummaryError{Kind: "count", Reason: "short buffer"}.Error())
}
