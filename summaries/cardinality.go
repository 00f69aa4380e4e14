package summaries

import (
	"encoding/binary"
	"sort"

	"github.com/apache/datasketches-go/hll"
	"github.com/go-sif/sketchfn"
)

// DefaultLgConfigK is the log2 of the number of HLL buckets used by CardinalitySketch
const DefaultLgConfigK = 12

// HLL compact image layout (DataSketches cross-language format, little-endian)
const (
	hllPreIntsByte    = 0
	hllLgKByte        = 3
	hllLgArrByte      = 4
	hllFlagsByte      = 5
	hllCountByte      = 6 // list count in LIST mode, curMin in HLL mode
	hllModeByte       = 7
	hllListStart      = 8
	hllSetCountInt    = 8
	hllSetStart       = 12
	hllRegistersStart = 40

	hllEmptyFlag      = 4
	hllCompactFlag    = 8
	hllOutOfOrderFlag = 16
	hllRebuildFlag    = 32

	hllModeList = 0
	hllModeSet  = 1
	hllModeHll  = 2

	hllListPreInts = 2
	hllSetPreInts  = 3
	hllHllPreInts  = 10
	hllFamilyID    = 7

	hllSerialVersion = 1

	hllTypeHll8    = 2
	hllMinLgK      = 4
	hllMaxLgK      = 21
	hllMaxListSize = 8
	hllLgInitList  = 3
	hllLgInitSet   = 5
	hllMaxRegister = 63
)

// Cardinality estimates the number of distinct values using a HyperLogLog sketch.
// An HllSketch cannot merge in place, so merges go through an hll.Union sized to
// the held sketch. Registers are always kept as HLL_8 so the serialized image can
// be normalized without unpacking nibbles.
type Cardinality struct {
	sketch hll.HllSketch
}

// NewCardinality returns a new, empty Cardinality Summary with 2^lgConfigK buckets
func NewCardinality(lgConfigK int) (*Cardinality, error) {
	sketch, err := hll.NewHllSketch(lgConfigK, hll.TgtHllTypeHll8)
	if err != nil {
		return nil, err
	}
	return &Cardinality{sketch: sketch}, nil
}

// UpdateString records a string value
func (c *Cardinality) UpdateString(v string) error {
	return c.sketch.UpdateString(v)
}

// Estimate returns the estimated number of distinct values recorded
func (c *Cardinality) Estimate() (float64, error) {
	return c.sketch.GetEstimate()
}

// Merge merges another Cardinality Summary into this one
func (c *Cardinality) Merge(o sketchfn.Summary) error {
	co, ok := o.(*Cardinality)
	if !ok {
		return incompatible(c, o)
	}
	union, err := hll.NewUnion(c.sketch.GetLgConfigK())
	if err != nil {
		return err
	}
	if err = union.UpdateSketch(c.sketch); err != nil {
		return err
	}
	if err = union.UpdateSketch(co.sketch); err != nil {
		return err
	}
	merged, err := union.GetResult(hll.TgtHllTypeHll8)
	if err != nil {
		return err
	}
	c.sketch = merged
	return nil
}

// ToBytes serializes this Summary. The compact image is normalized: coupons are
// sorted, and in HLL mode the order-dependent estimator fields are cleared and
// flagged for rebuild, so equal content always yields identical bytes.
func (c *Cardinality) ToBytes() ([]byte, error) {
	buf, err := c.sketch.ToCompactSlice()
	if err != nil {
		return nil, err
	}
	return canonicalHll(buf)
}

// FromBytes produce a new Summary from serialized data
func (c *Cardinality) FromBytes(buf []byte) (sketchfn.Summary, error) {
	// canonicalHll validates the image and always returns a fresh buffer, which
	// matters because the sketch keeps a reference to its HLL registers
	image, err := canonicalHll(buf)
	if err != nil {
		return nil, err
	}
	sketch, err := hll.NewHllSketchFromSlice(image, true)
	if err != nil {
		return nil, corrupt("cardinality", "%s", err)
	}
	return &Cardinality{sketch: sketch}, nil
}

func canonicalHll(buf []byte) ([]byte, error) {
	if len(buf) < hllListStart {
		return nil, corrupt("cardinality", "image needs at least %d bytes, got %d", hllListStart, len(buf))
	}
	if buf[1] != hllSerialVersion || buf[2] != hllFamilyID {
		return nil, corrupt("cardinality", "unexpected serial version %d or family %d", buf[1], buf[2])
	}
	lgK := int(buf[hllLgKByte])
	if lgK < hllMinLgK || lgK > hllMaxLgK {
		return nil, corrupt("cardinality", "lgK %d out of range", lgK)
	}
	if (buf[hllModeByte]>>2)&3 != hllTypeHll8 {
		return nil, corrupt("cardinality", "only HLL_8 images are supported")
	}
	if buf[hllFlagsByte]&hllCompactFlag == 0 {
		return nil, corrupt("cardinality", "image is not compact")
	}
	mode := buf[hllModeByte] & 3
	if want := hllPreInts(mode); want == 0 || buf[hllPreIntsByte]&0x3f != want {
		return nil, corrupt("cardinality", "mode %d does not match %d preamble ints", mode, buf[hllPreIntsByte]&0x3f)
	}
	switch mode {
	case hllModeList:
		count := int(buf[hllCountByte])
		if count >= hllMaxListSize {
			return nil, corrupt("cardinality", "list of %d coupons cannot exist", count)
		}
		out, err := canonicalCoupons(buf, hllListStart, count, hllListPreInts)
		if err != nil {
			return nil, err
		}
		out[hllLgArrByte] = hllLgInitList
		out[hllCountByte] = byte(count)
		if count == 0 {
			out[hllFlagsByte] |= hllEmptyFlag
		}
		return out, nil
	case hllModeSet:
		if len(buf) < hllSetStart {
			return nil, corrupt("cardinality", "set image needs at least %d bytes, got %d", hllSetStart, len(buf))
		}
		if lgK <= 7 {
			return nil, corrupt("cardinality", "lgK %d has no set mode", lgK)
		}
		count := binary.LittleEndian.Uint32(buf[hllSetCountInt:])
		if uint64(count) > uint64(1)<<lgK {
			return nil, corrupt("cardinality", "set of %d coupons exceeds 2^%d", count, lgK)
		}
		out, err := canonicalCoupons(buf, hllSetStart, int(count), hllSetPreInts)
		if err != nil {
			return nil, err
		}
		lgArr := hllLgInitSet
		for 4*int(count) > 3<<lgArr {
			lgArr++
		}
		out[hllLgArrByte] = byte(lgArr)
		binary.LittleEndian.PutUint32(out[hllSetCountInt:], count)
		return out, nil
	case hllModeHll:
		k := 1 << lgK
		if len(buf) != hllRegistersStart+k {
			return nil, corrupt("cardinality", "HLL_8 image needs %d bytes, got %d", hllRegistersStart+k, len(buf))
		}
		out := make([]byte, len(buf))
		writeHllHeader(out, buf, hllHllPreInts)
		out[hllFlagsByte] = hllCompactFlag | hllOutOfOrderFlag | hllRebuildFlag
		for i, v := range buf[hllRegistersStart:] {
			if v > hllMaxRegister {
				return nil, corrupt("cardinality", "register %d holds %d", i, v)
			}
		}
		copy(out[hllRegistersStart:], buf[hllRegistersStart:])
		return out, nil
	default:
		return nil, corrupt("cardinality", "unknown mode %d", mode)
	}
}

// canonicalCoupons rewrites a LIST or SET image with its coupons in ascending order
func canonicalCoupons(buf []byte, start int, count int, preInts byte) ([]byte, error) {
	size := start + 4*count
	if len(buf) != size {
		return nil, corrupt("cardinality", "image of %d coupons needs %d bytes, got %d", count, size, len(buf))
	}
	coupons := make([]uint32, count)
	for i := range coupons {
		coupons[i] = binary.LittleEndian.Uint32(buf[start+4*i:])
	}
	sort.Slice(coupons, func(i, j int) bool { return coupons[i] < coupons[j] })
	for i, cp := range coupons {
		if cp == 0 {
			return nil, corrupt("cardinality", "empty coupon in compact image")
		}
		if i > 0 && coupons[i-1] == cp {
			return nil, corrupt("cardinality", "duplicate coupon %d", cp)
		}
	}
	out := make([]byte, size)
	writeHllHeader(out, buf, preInts)
	out[hllFlagsByte] = hllCompactFlag
	for i, cp := range coupons {
		binary.LittleEndian.PutUint32(out[start+4*i:], cp)
	}
	return out, nil
}

func writeHllHeader(out []byte, buf []byte, preInts byte) {
	out[hllPreIntsByte] = preInts
	out[1] = hllSerialVersion
	out[2] = hllFamilyID
	out[hllLgKByte] = buf[hllLgKByte]
	out[hllModeByte] = buf[hllModeByte] & 0x0f
}

func hllPreInts(mode byte) byte {
	switch mode {
	case hllModeList:
		return hllListPreInts
	case hllModeSet:
		return hllSetPreInts
	case hllModeHll:
		return hllHllPreInts
	}
	return 0
}
