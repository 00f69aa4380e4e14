package sketchfn

import (
	"strings"

	xxhash "github.com/cespare/xxhash/v2"
)

// Kind names a declared input or output of a Function. Kinds are opaque to
// sketchfn: they are compared and printed, never used for runtime type checks.
type Kind string

const (
	// KindAny accepts any value
	KindAny Kind = "any"
	// KindString is a string value
	KindString Kind = "string"
	// KindInt is an integer value
	KindInt Kind = "int"
	// KindFloat is a floating-point value
	KindFloat Kind = "float"
	// KindBytes is a byte slice
	KindBytes Kind = "bytes"
	// KindCount is a Count Summary
	KindCount Kind = "count"
	// KindSum is a Sum Summary
	KindSum Kind = "sum"
	// KindQuantiles is a Quantiles Summary
	KindQuantiles Kind = "quantiles"
	// KindCardinality is a Cardinality Summary
	KindCardinality Kind = "cardinality"
	// KindFrequencies is a Frequencies Summary
	KindFrequencies Kind = "frequencies"
	// KindComposed is a Composed Summary
	KindComposed Kind = "composed"
)

// Descriptor lists the declared input and output Kinds of a Function.
// A Descriptor is immutable once constructed.
type Descriptor struct {
	inputs  []Kind
	outputs []Kind
}

// NewDescriptor creates a Descriptor. The supplied slices are copied.
func NewDescriptor(inputs []Kind, outputs []Kind) Descriptor {
	return Descriptor{
		inputs:  copyKinds(inputs),
		outputs: copyKinds(outputs),
	}
}

// Inputs returns a copy of the declared input Kinds
func (d Descriptor) Inputs() []Kind {
	return copyKinds(d.inputs)
}

// Outputs returns a copy of the declared output Kinds
func (d Descriptor) Outputs() []Kind {
	return copyKinds(d.outputs)
}

// Equal returns true iff both Descriptors declare the same Kinds in the same order
func (d Descriptor) Equal(o Descriptor) bool {
	return kindsEqual(d.inputs, o.inputs) && kindsEqual(d.outputs, o.outputs)
}

// WriteHash feeds this Descriptor into an xxhash Digest
func (d Descriptor) WriteHash(h *xxhash.Digest) {
	// separators keep (["a"], ["bc"]) and (["ab"], ["c"]) apart
	for _, k := range d.inputs {
		h.WriteString(string(k))
		h.Write([]byte{0})
	}
	h.Write([]byte{1})
	for _, k := range d.outputs {
		h.WriteString(string(k))
		h.Write([]byte{0})
	}
	h.Write([]byte{1})
}

// String returns a human-readable representation of this Descriptor, e.g. (string, int) -> (string)
func (d Descriptor) String() string {
	var sb strings.Builder
	writeKinds(&sb, d.inputs)
	sb.WriteString(" -> ")
	writeKinds(&sb, d.outputs)
	return sb.String()
}

func writeKinds(sb *strings.Builder, kinds []Kind) {
	sb.WriteByte('(')
	for i, k := range kinds {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(string(k))
	}
	sb.WriteByte(')')
}

func copyKinds(kinds []Kind) []Kind {
	if kinds == nil {
		return nil
	}
	res := make([]Kind, len(kinds))
	copy(res, kinds)
	return res
}

func kindsEqual(a []Kind, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
