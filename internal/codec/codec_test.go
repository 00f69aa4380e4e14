package codec

import (
	"bytes"
	goerrors "errors"
	"testing"

	errors "github.com/go-sif/sketchfn/errors"
	"github.com/stretchr/testify/require"
)

func TestCodecsRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("sketch state "), 200)
	for _, name := range []string{None, LZ4, Zstd} {
		t.Run(name, func(t *testing.T) {
			require.True(t, IsKnown(name))
			c, err := ForName(name)
			require.NoError(t, err)
			defer c.Destroy()
			require.Equal(t, name, c.Name())

			packed, err := c.Pack(payload)
			require.NoError(t, err)
			if name != None {
				require.Less(t, len(packed), len(payload))
			}
			unpacked, err := c.Unpack(packed)
			require.NoError(t, err)
			require.Equal(t, payload, unpacked)
		})
	}
}

func TestEmptyPayload(t *testing.T) {
	for _, name := range []string{None, LZ4, Zstd} {
		c, err := ForName(name)
		require.NoError(t, err)
		packed, err := c.Pack(nil)
		require.NoError(t, err)
		unpacked, err := c.Unpack(packed)
		require.NoError(t, err)
		require.Len(t, unpacked, 0)
		c.Destroy()
	}
}

func TestUnknownCodec(t *testing.T) {
	require.False(t, IsKnown("snappy"))
	_, err := ForName("snappy")
	var cerr errors.UnknownCodecError
	require.True(t, goerrors.As(err, &cerr))
	require.Equal(t, "snappy", cerr.Name)
}
