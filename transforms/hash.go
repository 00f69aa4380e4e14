package transforms

import (
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-sif/sketchfn"
)

// Hash64Function hashes the textual form of its input tuple with xxhash, e.g. to derive a grouping key
type Hash64Function struct {
	desc sketchfn.Descriptor
}

// Hash64 returns a Hash64Function over arity inputs of any Kind
func Hash64(arity int) *Hash64Function {
	inputs := make([]sketchfn.Kind, arity)
	for i := range inputs {
		inputs[i] = sketchfn.KindAny
	}
	return &Hash64Function{
		desc: sketchfn.NewDescriptor(inputs, []sketchfn.Kind{sketchfn.KindInt}),
	}
}

// Descriptor returns the declared input and output Kinds of this TransformFunction
func (h *Hash64Function) Descriptor() sketchfn.Descriptor {
	return h.desc
}

// Transform maps an input tuple to a single uint64
func (h *Hash64Function) Transform(input []interface{}) ([]interface{}, error) {
	d := xxhash.New()
	for _, v := range input {
		fmt.Fprint(d, v)
		d.Write([]byte{0})
	}
	return []interface{}{d.Sum64()}, nil
}

// StatelessClone produces an independent copy with an equal Descriptor
func (h *Hash64Function) StatelessClone() sketchfn.TransformFunction {
	return &Hash64Function{desc: h.desc}
}
