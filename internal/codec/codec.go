package codec

import (
	"bytes"
	"io/ioutil"

	errors "github.com/go-sif/sketchfn/errors"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

const (
	// None ships serialized state as-is
	None = "none"
	// LZ4 compresses serialized state with lz4
	LZ4 = "lz4"
	// Zstd compresses serialized state with zstd
	Zstd = "zstd"
)

// A StateCodec packs serialized Summary state for transfer between a worker and the coordinator (and the inverse)
type StateCodec interface {
	Name() string                      // Name returns the registered name of this StateCodec
	Pack(buf []byte) ([]byte, error)   // Pack compresses serialized state
	Unpack(buf []byte) ([]byte, error) // Unpack decompresses packed state
	Destroy()                          // Destroy cleans up anything relevant when the StateCodec is no longer needed
}

// ForName returns the StateCodec registered under name
func ForName(name string) (StateCodec, error) {
	switch name {
	case None, "":
		return noneCodec{}, nil
	case LZ4:
		return lz4Codec{}, nil
	case Zstd:
		return newZstdCodec()
	default:
		return nil, errors.UnknownCodecError{Name: name}
	}
}

// IsKnown returns true iff a StateCodec is registered under name
func IsKnown(name string) bool {
	switch name {
	case None, "", LZ4, Zstd:
		return true
	}
	return false
}

type noneCodec struct{}

func (noneCodec) Name() string { return None }

func (noneCodec) Destroy() {}

func (noneCodec) Pack(buf []byte) ([]byte, error) {
	res := make([]byte, len(buf))
	copy(res, buf)
	return res, nil
}

func (noneCodec) Unpack(buf []byte) ([]byte, error) {
	res := make([]byte, len(buf))
	copy(res, buf)
	return res, nil
}

// lz4Codec compresses state using the lz4 frame format
type lz4Codec struct{}

func (lz4Codec) Name() string { return LZ4 }

func (lz4Codec) Destroy() {}

func (lz4Codec) Pack(buf []byte) ([]byte, error) {
	out := new(bytes.Buffer)
	compressor := lz4.NewWriter(out)
	if _, err := compressor.Write(buf); err != nil {
		return nil, err
	}
	if err := compressor.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (lz4Codec) Unpack(buf []byte) ([]byte, error) {
	decompressor := lz4.NewReader(bytes.NewReader(buf))
	return ioutil.ReadAll(decompressor)
}

// zstdCodec compresses state using zstd at its fastest level
type zstdCodec struct {
	compressor   *zstd.Encoder
	decompressor *zstd.Decoder
}

func newZstdCodec() (*zstdCodec, error) {
	compressor, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	decompressor, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		compressor.Close()
		return nil, err
	}
	return &zstdCodec{compressor: compressor, decompressor: decompressor}, nil
}

func (z *zstdCodec) Name() string { return Zstd }

func (z *zstdCodec) Destroy() {
	z.compressor.Close()
	z.decompressor.Close()
}

func (z *zstdCodec) Pack(buf []byte) ([]byte, error) {
	return z.compressor.EncodeAll(buf, nil), nil
}

func (z *zstdCodec) Unpack(buf []byte) ([]byte, error) {
	return z.decompressor.DecodeAll(buf, nil)
}
