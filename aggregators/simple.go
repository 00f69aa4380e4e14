package aggregators

import (
	"bytes"
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-sif/sketchfn"
)

// Simple is an AggregateFunction which owns at most one Summary. It starts
// empty; the first Summary it is given is materialized by round-tripping it
// through its own ToBytes/FromBytes pair, so the held Summary is never the
// caller's object, and every subsequent Summary is merged into the held one.
type Simple struct {
	desc  sketchfn.Descriptor
	state sketchfn.Summary
}

// NewSimple creates an empty Simple AggregateFunction with the given Descriptor
func NewSimple(desc sketchfn.Descriptor) *Simple {
	return &Simple{desc: desc}
}

// Descriptor returns the declared input and output Kinds of this AggregateFunction
func (a *Simple) Descriptor() sketchfn.Descriptor {
	return a.desc
}

// Aggregate merges input into the held Summary. Absent inputs are ignored.
// Errors from the Summary are returned unmodified.
func (a *Simple) Aggregate(input sketchfn.Summary) error {
	if sketchfn.IsAbsent(input) {
		return nil
	}
	if a.state == nil {
		state, err := materialize(input)
		if err != nil {
			return err
		}
		a.state = state
		return nil
	}
	return a.state.Merge(input)
}

// State returns the held Summary, or nil if nothing has been aggregated yet
func (a *Simple) State() sketchfn.Summary {
	return a.state
}

// StatelessClone produces an empty AggregateFunction with an equal Descriptor
func (a *Simple) StatelessClone() sketchfn.AggregateFunction {
	return NewSimple(a.desc)
}

// Equal returns true iff both Descriptors are equal and either both
// AggregateFunctions are empty or both hold Summaries with identical serialized forms
func (a *Simple) Equal(o sketchfn.AggregateFunction) (bool, error) {
	if o == nil {
		return false, nil
	}
	if sketchfn.AggregateFunction(a) == o {
		return true, nil
	}
	if !a.desc.Equal(o.Descriptor()) {
		return false, nil
	}
	ostate := o.State()
	if a.state == nil || sketchfn.IsAbsent(ostate) {
		return a.state == nil && sketchfn.IsAbsent(ostate), nil
	}
	buf, err := a.state.ToBytes()
	if err != nil {
		return false, err
	}
	obuf, err := ostate.ToBytes()
	if err != nil {
		return false, err
	}
	return bytes.Equal(buf, obuf), nil
}

// Hash returns a hash of the Descriptor and, if a Summary is held, its serialized form
func (a *Simple) Hash() (uint64, error) {
	h := xxhash.New()
	a.desc.WriteHash(h)
	if a.state != nil {
		buf, err := a.state.ToBytes()
		if err != nil {
			return 0, err
		}
		h.Write(buf)
	}
	return h.Sum64(), nil
}

// String returns a human-readable representation of this AggregateFunction
func (a *Simple) String() string {
	if a.state == nil {
		return fmt.Sprintf("Simple%s{empty}", a.desc)
	}
	return fmt.Sprintf("Simple%s{%T}", a.desc, a.state)
}

// materialize produces an independent copy of s without requiring a clone operation
func materialize(s sketchfn.Summary) (sketchfn.Summary, error) {
	buf, err := s.ToBytes()
	if err != nil {
		return nil, err
	}
	return s.FromBytes(buf)
}
