package summaries

import (
	"encoding/binary"
	"fmt"

	"github.com/apache/datasketches-go/common"
	"github.com/cespare/xxhash/v2"
)

// stringHasher places strings in a frequencies sketch's hash map
type stringHasher struct{}

var _ common.ItemSketchHasher[string] = stringHasher{}

func (stringHasher) Hash(item string) uint64 {
	return xxhash.Sum64String(item)
}

// stringSerde writes each item as a little-endian uint32 byte length followed by
// its bytes, the same layout the other DataSketches string serdes use. Lengths
// are checked against the remaining input before anything is allocated.
type stringSerde struct{}

var _ common.ItemSketchSerde[string] = stringSerde{}

func (stringSerde) SizeOf(item string) int {
	return 4 + len(item)
}

func (stringSerde) SizeOfMany(mem []byte, offsetBytes int, numItems int) (int, error) {
	end, err := scanItems(mem, offsetBytes, numItems, nil)
	if err != nil {
		return 0, err
	}
	return end - offsetBytes, nil
}

func (s stringSerde) SerializeOneToSlice(item string) []byte {
	return s.SerializeManyToSlice([]string{item})
}

func (s stringSerde) SerializeManyToSlice(items []string) []byte {
	size := 0
	for _, item := range items {
		size += s.SizeOf(item)
	}
	buf := make([]byte, 0, size)
	for _, item := range items {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(item)))
		buf = append(buf, item...)
	}
	return buf
}

func (stringSerde) DeserializeManyFromSlice(mem []byte, offsetBytes int, numItems int) ([]string, error) {
	if _, err := scanItems(mem, offsetBytes, numItems, nil); err != nil {
		return nil, err
	}
	items := make([]string, 0, numItems)
	_, err := scanItems(mem, offsetBytes, numItems, func(item []byte) {
		items = append(items, string(item))
	})
	return items, err
}

// scanItems walks numItems length-prefixed items starting at offset and returns
// the offset just past the last one
func scanItems(mem []byte, offset int, numItems int, fn func(item []byte)) (int, error) {
	if offset < 0 || offset > len(mem) {
		return 0, fmt.Errorf("item offset %d outside %d bytes", offset, len(mem))
	}
	if numItems < 0 {
		return 0, fmt.Errorf("negative item count %d", numItems)
	}
	pos := offset
	for i := 0; i < numItems; i++ {
		if len(mem)-pos < 4 {
			return 0, fmt.Errorf("item %d: length truncated at offset %d", i, pos)
		}
		l := uint64(binary.LittleEndian.Uint32(mem[pos:]))
		pos += 4
		if l > uint64(len(mem)-pos) {
			return 0, fmt.Errorf("item %d: length %d exceeds the %d remaining bytes", i, l, len(mem)-pos)
		}
		if fn != nil {
			fn(mem[pos : pos+int(l)])
		}
		pos += int(l)
	}
	return pos, nil
}
