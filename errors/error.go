package errors

import (
	"fmt"
)

// IncompatibleSummaryError occurs when a Summary is merged with a Summary of a different kind or configuration
type IncompatibleSummaryError struct {
	Expected string
	Got      string
}

// Error returns a textual representation of this IncompatibleSummaryError
func (e IncompatibleSummaryError) Error() string {
	return fmt.Sprintf("Incoming summary %s is not compatible with %s", e.Got, e.Expected)
}

// CorruptSummaryError occurs when serialized Summary data cannot be decoded
type CorruptSummaryError struct {
	Kind   string
	Reason string
}

// Error returns a textual representation of this CorruptSummaryError
func (e CorruptSummaryError) Error() string {
	return fmt.Sprintf("Serialized %s summary is corrupt: %s", e.Kind, e.Reason)
}

// ShapeMismatchError occurs when a TransformFunction addresses a position its input tuple does not have
type ShapeMismatchError struct {
	Index int
	Width int
}

// Error returns a textual representation of this ShapeMismatchError
func (e ShapeMismatchError) Error() string {
	return fmt.Sprintf("Input position %d is out of range for a tuple of width %d", e.Index, e.Width)
}

// UnknownCodecError occurs when a state codec is requested by a name that is not registered
type UnknownCodecError struct{ Name string }

// Error returns a textual representation of this UnknownCodecError
func (e UnknownCodecError) Error() string {
	return fmt.Sprintf("Unknown state codec %q", e.Name)
}
