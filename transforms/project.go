package transforms

import (
	"github.com/go-sif/sketchfn"
	errors "github.com/go-sif/sketchfn/errors"
)

// ProjectFunction selects and reorders positions of its input tuple
type ProjectFunction struct {
	desc    sketchfn.Descriptor
	indices []int
}

// Project returns a ProjectFunction emitting input[indices[0]], input[indices[1]], ...
func Project(indices ...int) *ProjectFunction {
	width := 0
	for _, i := range indices {
		if i+1 > width {
			width = i + 1
		}
	}
	inputs := make([]sketchfn.Kind, width)
	for i := range inputs {
		inputs[i] = sketchfn.KindAny
	}
	outputs := make([]sketchfn.Kind, len(indices))
	for i := range outputs {
		outputs[i] = sketchfn.KindAny
	}
	idx := make([]int, len(indices))
	copy(idx, indices)
	return &ProjectFunction{
		desc:    sketchfn.NewDescriptor(inputs, outputs),
		indices: idx,
	}
}

// Identity returns a ProjectFunction which copies a tuple of the given width unchanged
func Identity(width int) *ProjectFunction {
	indices := make([]int, width)
	for i := range indices {
		indices[i] = i
	}
	return Project(indices...)
}

// Descriptor returns the declared input and output Kinds of this TransformFunction
func (p *ProjectFunction) Descriptor() sketchfn.Descriptor {
	return p.desc
}

// Transform maps an input tuple to the selected positions, in order
func (p *ProjectFunction) Transform(input []interface{}) ([]interface{}, error) {
	res := make([]interface{}, len(p.indices))
	for i, idx := range p.indices {
		if idx < 0 || idx >= len(input) {
			return nil, errors.ShapeMismatchError{Index: idx, Width: len(input)}
		}
		res[i] = input[idx]
	}
	return res, nil
}

// StatelessClone produces an independent copy with an equal Descriptor
func (p *ProjectFunction) StatelessClone() sketchfn.TransformFunction {
	idx := make([]int, len(p.indices))
	copy(idx, p.indices)
	return &ProjectFunction{desc: p.desc, indices: idx}
}
