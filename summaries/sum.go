package summaries

import (
	"encoding/binary"
	"math"

	"github.com/go-sif/sketchfn"
)

// Adder returns a new Sum Summary
func Adder() *Sum {
	return new(Sum)
}

// Sum sums values
type Sum struct {
	sum float64
}

// GetSum returns the running total from this Summary
func (a *Sum) GetSum() float64 {
	return a.sum
}

// Add adds a value to this Summary
func (a *Sum) Add(v float64) {
	a.sum += v
}

// Merge merges another Summary into this one
func (a *Sum) Merge(o sketchfn.Summary) error {
	ca, ok := o.(*Sum)
	if !ok {
		return incompatible(a, o)
	}
	a.sum += ca.sum
	return nil
}

// ToBytes serializes this Summary
func (a *Sum) ToBytes() ([]byte, error) {
	buff := make([]byte, 8)
	binary.LittleEndian.PutUint64(buff, math.Float64bits(a.sum))
	return buff, nil
}

// FromBytes produce a new Summary from serialized data
func (a *Sum) FromBytes(buff []byte) (sketchfn.Summary, error) {
	if len(buff) != 8 {
		return nil, corrupt("sum", "expected 8 bytes, got %d", len(buff))
	}
	return &Sum{sum: math.Float64frombits(binary.LittleEndian.Uint64(buff))}, nil
}
