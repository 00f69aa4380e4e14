package summaries

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/apache/datasketches-go/frequencies"
	"github.com/go-sif/sketchfn"
)

// DefaultMaxMapSize is the hash map size used by FrequentStrings
const DefaultMaxMapSize = 64

// frequent items image layout (DataSketches cross-language format, little-endian)
const (
	freqPreLongsEmpty = 1
	freqPreLongsFull  = 4
	freqSerialVersion = 1
	freqFamilyID      = 10
	freqEmptyFlags    = 5
	freqHeaderBytes   = 32
	freqLgMinMapSize  = 3
	freqLgMaxMapSize  = 26
	freqLoadFactor    = 0.75
)

// Frequencies tracks the most frequent strings in a stream with a DataSketches
// frequent items sketch. Estimates never fall below the true frequency and exceed
// it by at most MaximumError().
type Frequencies struct {
	maxMapSize int
	sketch     *frequencies.ItemsSketch[string]
}

// FrequentItem is a single row of a frequent items report
type FrequentItem struct {
	Item       string
	Estimate   uint64
	LowerBound uint64
	UpperBound uint64
}

// NewFrequencies returns a new, empty Frequencies Summary whose hash map holds
// maxMapSize slots. maxMapSize must be a power of 2 no smaller than 8.
func NewFrequencies(maxMapSize int) (*Frequencies, error) {
	if maxMapSize < 1<<freqLgMinMapSize || maxMapSize > 1<<freqLgMaxMapSize || maxMapSize&(maxMapSize-1) != 0 {
		return nil, fmt.Errorf("max map size %d must be a power of 2 between %d and %d", maxMapSize, 1<<freqLgMinMapSize, 1<<freqLgMaxMapSize)
	}
	sketch, err := frequencies.NewFrequencyItemsSketchWithMaxMapSize[string](maxMapSize, stringHasher{}, stringSerde{})
	if err != nil {
		return nil, err
	}
	return &Frequencies{maxMapSize: maxMapSize, sketch: sketch}, nil
}

// Update records n occurrences of item
func (f *Frequencies) Update(item string, n uint64) error {
	if n > math.MaxInt64 {
		return fmt.Errorf("weight %d overflows the stream length", n)
	}
	return f.sketch.UpdateMany(item, int64(n))
}

// Estimate returns the upper-bound estimate of item's frequency, or 0 if it is not tracked
func (f *Frequencies) Estimate(item string) (uint64, error) {
	est, err := f.sketch.GetEstimate(item)
	return uint64(est), err
}

// LowerBound returns a guaranteed lower bound on item's frequency
func (f *Frequencies) LowerBound(item string) (uint64, error) {
	lb, err := f.sketch.GetLowerBound(item)
	return uint64(lb), err
}

// MaximumError returns the largest possible overestimate for any item
func (f *Frequencies) MaximumError() uint64 {
	return uint64(f.sketch.GetMaximumError())
}

// StreamLength returns the total weight recorded
func (f *Frequencies) StreamLength() uint64 {
	return uint64(f.sketch.GetStreamLength())
}

// MaxMapSize returns the hash map size this Summary was configured with
func (f *Frequencies) MaxMapSize() int {
	return f.maxMapSize
}

// FrequentItems returns every tracked item whose upper bound is at least threshold
// (or MaximumError(), whichever is larger), ordered by estimate (descending) then
// item. The report has no false negatives.
func (f *Frequencies) FrequentItems(threshold uint64) ([]FrequentItem, error) {
	if threshold > math.MaxInt64 {
		threshold = math.MaxInt64
	}
	rows, err := f.sketch.GetFrequentItemsWithThreshold(int64(threshold), frequencies.ErrorTypeEnum.NoFalseNegatives)
	if err != nil {
		return nil, err
	}
	res := make([]FrequentItem, 0, len(rows))
	for _, row := range rows {
		res = append(res, FrequentItem{
			Item:       row.GetItem(),
			Estimate:   uint64(row.GetEstimate()),
			LowerBound: uint64(row.GetLowerBound()),
			UpperBound: uint64(row.GetUpperBound()),
		})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Estimate != res[j].Estimate {
			return res[i].Estimate > res[j].Estimate
		}
		return res[i].Item < res[j].Item
	})
	return res, nil
}

// Merge merges another Frequencies Summary into this one
func (f *Frequencies) Merge(o sketchfn.Summary) error {
	fo, ok := o.(*Frequencies)
	if !ok {
		return incompatible(f, o)
	}
	other := fo.sketch
	if fo == f {
		// the sketch cannot iterate its own map while updating it
		cp, err := roundTripFrequencies(f)
		if err != nil {
			return err
		}
		other = cp.sketch
	}
	merged, err := f.sketch.Merge(other)
	if err != nil {
		return err
	}
	f.sketch = merged
	return nil
}

// ToBytes serializes this Summary. The sketch writes items in hash map order, so
// the image is rewritten with items sorted and the map size normalized; equal
// content always yields identical bytes.
func (f *Frequencies) ToBytes() ([]byte, error) {
	buf, err := f.sketch.ToSlice()
	if err != nil {
		return nil, err
	}
	img, err := decodeFrequencies(buf)
	if err != nil {
		return nil, err
	}
	return img.encode(), nil
}

// FromBytes produce a new Summary from serialized data
func (f *Frequencies) FromBytes(buf []byte) (sketchfn.Summary, error) {
	img, err := decodeFrequencies(buf)
	if err != nil {
		return nil, err
	}
	maxMapSize := 1 << img.lgMaxMapSize
	if len(img.items) == 0 {
		// an empty image read by the sketch itself would lose its map size
		res, err := NewFrequencies(maxMapSize)
		if err != nil {
			return nil, corrupt("frequencies", "%s", err)
		}
		return res, nil
	}
	sketch, err := frequencies.NewFrequencyItemsSketchFromSlice[string](img.encode(), stringHasher{}, stringSerde{})
	if err != nil {
		return nil, corrupt("frequencies", "%s", err)
	}
	return &Frequencies{maxMapSize: maxMapSize, sketch: sketch}, nil
}

func roundTripFrequencies(f *Frequencies) (*Frequencies, error) {
	buf, err := f.ToBytes()
	if err != nil {
		return nil, err
	}
	cp, err := f.FromBytes(buf)
	if err != nil {
		return nil, err
	}
	return cp.(*Frequencies), nil
}

// frequenciesImage is the decoded content of a serialized frequent items sketch
type frequenciesImage struct {
	lgMaxMapSize int
	streamLength int64
	offset       int64
	items        []string
	counts       []int64
}

func decodeFrequencies(buf []byte) (*frequenciesImage, error) {
	if len(buf) < 8 {
		return nil, corrupt("frequencies", "preamble needs 8 bytes, got %d", len(buf))
	}
	if buf[1] != freqSerialVersion || buf[2] != freqFamilyID {
		return nil, corrupt("frequencies", "unexpected serial version %d or family %d", buf[1], buf[2])
	}
	img := &frequenciesImage{lgMaxMapSize: int(buf[3])}
	if img.lgMaxMapSize < freqLgMinMapSize || img.lgMaxMapSize > freqLgMaxMapSize {
		return nil, corrupt("frequencies", "lgMaxMapSize %d out of range", img.lgMaxMapSize)
	}
	preLongs := buf[0] & 0x3f
	empty := buf[5]&freqEmptyFlags != 0
	switch {
	case preLongs == freqPreLongsEmpty && empty:
		if len(buf) != 8 {
			return nil, corrupt("frequencies", "%d trailing bytes after empty preamble", len(buf)-8)
		}
		return img, nil
	case preLongs == freqPreLongsFull && !empty:
	default:
		return nil, corrupt("frequencies", "%d preamble longs do not match empty=%t", preLongs, empty)
	}
	if len(buf) < freqHeaderBytes {
		return nil, corrupt("frequencies", "preamble needs %d bytes, got %d", freqHeaderBytes, len(buf))
	}
	n := int(binary.LittleEndian.Uint32(buf[8:]))
	if n == 0 || n > freqCapacity(img.lgMaxMapSize) {
		return nil, corrupt("frequencies", "%d active items for a map of 2^%d", n, img.lgMaxMapSize)
	}
	img.streamLength = int64(binary.LittleEndian.Uint64(buf[16:]))
	img.offset = int64(binary.LittleEndian.Uint64(buf[24:]))
	if img.streamLength < 0 || img.offset < 0 {
		return nil, corrupt("frequencies", "negative stream length %d or offset %d", img.streamLength, img.offset)
	}
	itemsStart := freqHeaderBytes + 8*n
	if itemsStart > len(buf) {
		return nil, corrupt("frequencies", "%d counts truncated at %d bytes", n, len(buf))
	}
	img.counts = make([]int64, n)
	for i := range img.counts {
		img.counts[i] = int64(binary.LittleEndian.Uint64(buf[freqHeaderBytes+8*i:]))
		if img.counts[i] <= 0 {
			return nil, corrupt("frequencies", "count %d is not positive", img.counts[i])
		}
	}
	size, err := stringSerde{}.SizeOfMany(buf, itemsStart, n)
	if err != nil {
		return nil, corrupt("frequencies", "%s", err)
	}
	if itemsStart+size != len(buf) {
		return nil, corrupt("frequencies", "%d trailing bytes", len(buf)-itemsStart-size)
	}
	img.items, err = stringSerde{}.DeserializeManyFromSlice(buf, itemsStart, n)
	if err != nil {
		return nil, corrupt("frequencies", "%s", err)
	}
	seen := make(map[string]struct{}, n)
	for _, item := range img.items {
		if _, dup := seen[item]; dup {
			return nil, corrupt("frequencies", "duplicate item %q", item)
		}
		seen[item] = struct{}{}
	}
	return img, nil
}

// encode writes the image with items in sorted order and the smallest current map
// size able to hold them
func (img *frequenciesImage) encode() []byte {
	n := len(img.items)
	lgCur := freqLgMinMapSize
	for lgCur < img.lgMaxMapSize && n > freqCapacity(lgCur) {
		lgCur++
	}
	if n == 0 {
		buf := make([]byte, 8)
		writeFrequenciesPreamble(buf, freqPreLongsEmpty, img.lgMaxMapSize, lgCur, freqEmptyFlags)
		return buf
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return img.items[order[i]] < img.items[order[j]] })
	sorted := make([]string, n)
	for i, idx := range order {
		sorted[i] = img.items[idx]
	}
	items := stringSerde{}.SerializeManyToSlice(sorted)

	buf := make([]byte, freqHeaderBytes+8*n+len(items))
	writeFrequenciesPreamble(buf, freqPreLongsFull, img.lgMaxMapSize, lgCur, 0)
	binary.LittleEndian.PutUint32(buf[8:], uint32(n))
	binary.LittleEndian.PutUint64(buf[16:], uint64(img.streamLength))
	binary.LittleEndian.PutUint64(buf[24:], uint64(img.offset))
	for i, idx := range order {
		binary.LittleEndian.PutUint64(buf[freqHeaderBytes+8*i:], uint64(img.counts[idx]))
	}
	copy(buf[freqHeaderBytes+8*n:], items)
	return buf
}

func writeFrequenciesPreamble(buf []byte, preLongs byte, lgMax int, lgCur int, flags byte) {
	buf[0] = preLongs
	buf[1] = freqSerialVersion
	buf[2] = freqFamilyID
	buf[3] = byte(lgMax)
	buf[4] = byte(lgCur)
	buf[5] = flags
}

func freqCapacity(lg int) int {
	return int(float64(uint64(1)<<lg) * freqLoadFactor)
}
