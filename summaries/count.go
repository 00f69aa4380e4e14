package summaries

import (
	"encoding/binary"

	"github.com/go-sif/sketchfn"
)

// Counter returns a new Count Summary
func Counter() *Count {
	return new(Count)
}

// Count counts records
type Count struct {
	count uint64
}

// GetCount returns the record count from this Summary
func (a *Count) GetCount() uint64 {
	return a.count
}

// Add adds n records to this Summary
func (a *Count) Add(n uint64) {
	a.count += n
}

// Merge merges another Summary into this one
func (a *Count) Merge(o sketchfn.Summary) error {
	ca, ok := o.(*Count)
	if !ok {
		return incompatible(a, o)
	}
	a.count += ca.count
	return nil
}

// ToBytes serializes this Summary
func (a *Count) ToBytes() ([]byte, error) {
	buff := make([]byte, 8)
	binary.LittleEndian.PutUint64(buff, a.count)
	return buff, nil
}

// FromBytes produce a new Summary from serialized data
func (a *Count) FromBytes(buff []byte) (sketchfn.Summary, error) {
	if len(buff) != 8 {
		return nil, corrupt("count", "expected 8 bytes, got %d", len(buff))
	}
	return &Count{count: binary.LittleEndian.Uint64(buff)}, nil
}
