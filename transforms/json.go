package transforms

import (
	"fmt"

	"github.com/go-sif/sketchfn"
	errors "github.com/go-sif/sketchfn/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ExtractJSONFunction extracts one value per gjson path from a JSON document
type ExtractJSONFunction struct {
	desc  sketchfn.Descriptor
	paths []string
}

// ExtractJSON returns an ExtractJSONFunction. Its single input is a JSON
// document (string or []byte); it emits one value per path, or nil where a path
// does not exist.
func ExtractJSON(paths ...string) *ExtractJSONFunction {
	outputs := make([]sketchfn.Kind, len(paths))
	for i := range outputs {
		outputs[i] = sketchfn.KindAny
	}
	p := make([]string, len(paths))
	copy(p, paths)
	return &ExtractJSONFunction{
		desc:  sketchfn.NewDescriptor([]sketchfn.Kind{sketchfn.KindString}, outputs),
		paths: p,
	}
}

// Descriptor returns the declared input and output Kinds of this TransformFunction
func (e *ExtractJSONFunction) Descriptor() sketchfn.Descriptor {
	return e.desc
}

// Transform maps a JSON document to the values found at each path
func (e *ExtractJSONFunction) Transform(input []interface{}) ([]interface{}, error) {
	if len(input) < 1 {
		return nil, errors.ShapeMismatchError{Index: 0, Width: len(input)}
	}
	var doc string
	switch v := input[0].(type) {
	case string:
		doc = v
	case []byte:
		doc = string(v)
	default:
		return nil, fmt.Errorf("ExtractJSON expects a string or []byte document, got %T", input[0])
	}
	if !gjson.Valid(doc) {
		return nil, fmt.Errorf("ExtractJSON input is not valid JSON")
	}
	res := make([]interface{}, len(e.paths))
	for i, r := range gjson.GetMany(doc, e.paths...) {
		if r.Exists() {
			res[i] = r.Value()
		}
	}
	return res, nil
}

// StatelessClone produces an independent copy with an equal Descriptor
func (e *ExtractJSONFunction) StatelessClone() sketchfn.TransformFunction {
	return ExtractJSON(e.paths...)
}

// EncodeJSONFunction encodes its whole input tuple as a JSON array
type EncodeJSONFunction struct {
	desc sketchfn.Descriptor
}

// EncodeJSON returns an EncodeJSONFunction over arity inputs of any Kind
func EncodeJSON(arity int) *EncodeJSONFunction {
	inputs := make([]sketchfn.Kind, arity)
	for i := range inputs {
		inputs[i] = sketchfn.KindAny
	}
	return &EncodeJSONFunction{
		desc: sketchfn.NewDescriptor(inputs, []sketchfn.Kind{sketchfn.KindString}),
	}
}

// Descriptor returns the declared input and output Kinds of this TransformFunction
func (e *EncodeJSONFunction) Descriptor() sketchfn.Descriptor {
	return e.desc
}

// Transform maps an input tuple to its JSON array encoding
func (e *EncodeJSONFunction) Transform(input []interface{}) ([]interface{}, error) {
	s, err := json.MarshalToString(input)
	if err != nil {
		return nil, err
	}
	return []interface{}{s}, nil
}

// StatelessClone produces an independent copy with an equal Descriptor
func (e *EncodeJSONFunction) StatelessClone() sketchfn.TransformFunction {
	return &EncodeJSONFunction{desc: e.desc}
}
