package dejson

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInt64Range(t *testing.T) {
	p := newParser("200")
	_, err := p.getInt64(-100, 100)
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestGetUint64Range(t *testing.T) {
	p := newParser("300")
	_, err := p.getUint64(255)
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestGetDoubleAcceptsNegativeValues(t *testing.T) {
	// The original used FLT_MIN/DBL_MIN as a lower bound, which rejects
	// every negative number since *_MIN is the smallest positive
	// magnitude. The corrected check uses a symmetric range.
	p := newParser("-123.5")
	v, err := p.getDouble(math.MaxFloat64)
	require.NoError(t, err)
	require.Equal(t, -123.5, v)
}

func TestGetDoubleRejectsOutOfRange(t *testing.T) {
	p := newParser("1e40")
	_, err := p.getDouble(math.MaxFloat32)
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestWriteScalarBool(t *testing.T) {
	buf := make([]byte, 1)
	p := &parser{json: []byte("true"), arena: &Arena{Buf: buf}}
	require.NoError(t, p.writeScalar(TypeBool, 0))
	require.Equal(t, byte(1), buf[0])
}

func TestWriteScalarCountingModeDoesNotPanic(t *testing.T) {
	p := &parser{json: []byte("42"), arena: &Arena{}}
	require.NoError(t, p.writeScalar(TypeInt32, 0))
}

func TestWriteScalarFloat(t *testing.T) {
	buf := make([]byte, 4)
	p := &parser{json: []byte("3.5"), arena: &Arena{Buf: buf}}
	require.NoError(t, p.writeScalar(TypeFloat, 0))
	bits := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
	require.Equal(t, float32(3.5), math.Float32frombits(bits))
}
