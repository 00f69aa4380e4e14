package sketchfn

import "reflect"

// A Summary is a mergeable, serializable value (e.g. a probabilistic sketch)
// tracked by an AggregateFunction. Summaries need not offer a clone operation,
// a content-based equality or an "empty" constructor; AggregateFunctions rely only
// on the three methods below. ToBytes must be canonical: two Summaries with equal
// content must serialize to byte-identical output, otherwise equality between
// AggregateFunctions is not well-defined.
type Summary interface {
	Merge(o Summary) error                 // Merge combines o's contribution into this Summary, in place
	ToBytes() ([]byte, error)              // ToBytes serializes this Summary canonically
	FromBytes(buf []byte) (Summary, error) // FromBytes produces a new, independent Summary from serialized data
}

// IsAbsent reports whether s carries no Summary at all, either because it is a
// nil interface or because it wraps a nil pointer.
func IsAbsent(s Summary) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
