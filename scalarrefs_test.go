package dejson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarGetters(t *testing.T) {
	buf := make([]byte, ArrayRefSize)
	buf[0] = 0xFF
	require.Equal(t, int8(-1), GetInt8(buf, 0))
	require.Equal(t, uint8(0xFF), GetUint8(buf, 0))

	PutArrayRef(buf, 0, ArrayRef{}) // zero it via a known writer
	buf[0], buf[1] = 0x34, 0x12
	require.Equal(t, uint16(0x1234), GetUint16(buf, 0))
	require.Equal(t, int16(0x1234), GetInt16(buf, 0))

	buf[0], buf[1], buf[2], buf[3] = 0x78, 0x56, 0x34, 0x12
	require.Equal(t, uint32(0x12345678), GetUint32(buf, 0))
	require.Equal(t, int32(0x12345678), GetInt32(buf, 0))

	for i := 0; i < 8; i++ {
		buf[i] = byte(i + 1)
	}
	require.Equal(t, uint64(0x0807060504030201), GetUint64(buf, 0))

	buf[0] = 1
	require.True(t, GetBool(buf, 0))
	buf[0] = 0
	require.False(t, GetBool(buf, 0))
}

func TestFloatGetters(t *testing.T) {
	buf := make([]byte, 8)
	putFloat32(buf, 0, 3.5)
	require.Equal(t, float32(3.5), GetFloat32(buf, 0))

	putFloat64(buf, 0, 2.25)
	require.Equal(t, 2.25, GetFloat64(buf, 0))
}
