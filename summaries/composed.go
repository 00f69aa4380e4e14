package summaries

import (
	"bytes"
	"encoding/gob"

	"github.com/go-sif/sketchfn"
)

// Compose returns a new Composed Summary over the given parts. The parts are
// owned by the Composed Summary from then on.
func Compose(parts ...sketchfn.Summary) *Composed {
	return &Composed{parts: parts}
}

// Composed composes other Summaries positionally
type Composed struct {
	parts []sketchfn.Summary
}

// GetResults returns the contained Summaries, so that their results may be accessed
func (c *Composed) GetResults() []sketchfn.Summary {
	return c.parts
}

// Merge merges another Composed Summary into this one, merging all contained Summaries
func (c *Composed) Merge(o sketchfn.Summary) error {
	compa, ok := o.(*Composed)
	if !ok || len(compa.parts) != len(c.parts) {
		return incompatible(c, o)
	}
	for i, a := range c.parts {
		err := a.Merge(compa.parts[i])
		if err != nil {
			return err
		}
	}
	return nil
}

// ToBytes serializes this Summary
func (c *Composed) ToBytes() ([]byte, error) {
	result := make([][]byte, len(c.parts))
	for i, a := range c.parts {
		buff, err := a.ToBytes()
		if err != nil {
			return nil, err
		}
		result[i] = buff
	}
	buff := new(bytes.Buffer)
	e := gob.NewEncoder(buff)
	err := e.Encode(result)
	if err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// FromBytes produce a new Summary from serialized data, using the parts of this
// Composed Summary as prototypes
func (c *Composed) FromBytes(buff []byte) (sketchfn.Summary, error) {
	var deser [][]byte
	d := gob.NewDecoder(bytes.NewBuffer(buff))
	err := d.Decode(&deser)
	if err != nil {
		return nil, err
	}
	if len(deser) != len(c.parts) {
		return nil, corrupt("composed", "expected %d parts, got %d", len(c.parts), len(deser))
	}
	newParts := make([]sketchfn.Summary, len(c.parts))
	for i, b := range deser {
		a, err := c.parts[i].FromBytes(b)
		if err != nil {
			return nil, err
		}
		newParts[i] = a
	}
	return &Composed{parts: newParts}, nil
}
