package transforms

import (
	"fmt"
	"strings"

	"github.com/go-sif/sketchfn"
)

// ConcatFunction joins the textual form of every input value, followed by a fixed suffix
type ConcatFunction struct {
	desc   sketchfn.Descriptor
	suffix string
}

// Concat returns a ConcatFunction over arity inputs of any Kind, producing one string
func Concat(arity int, suffix string) *ConcatFunction {
	inputs := make([]sketchfn.Kind, arity)
	for i := range inputs {
		inputs[i] = sketchfn.KindAny
	}
	return &ConcatFunction{
		desc:   sketchfn.NewDescriptor(inputs, []sketchfn.Kind{sketchfn.KindString}),
		suffix: suffix,
	}
}

// Example returns the two-input ConcatFunction with the suffix " transformed",
// e.g. ["a", 5] -> ["a5 transformed"]
func Example() *ConcatFunction {
	return Concat(2, " transformed")
}

// Descriptor returns the declared input and output Kinds of this TransformFunction
func (c *ConcatFunction) Descriptor() sketchfn.Descriptor {
	return c.desc
}

// Transform maps an input tuple to a single concatenated string
func (c *ConcatFunction) Transform(input []interface{}) ([]interface{}, error) {
	var sb strings.Builder
	for _, v := range input {
		fmt.Fprint(&sb, v)
	}
	sb.WriteString(c.suffix)
	return []interface{}{sb.String()}, nil
}

// StatelessClone produces an independent copy with an equal Descriptor
func (c *ConcatFunction) StatelessClone() sketchfn.TransformFunction {
	return &ConcatFunction{desc: c.desc, suffix: c.suffix}
}
