package dejson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringRefRoundTrip(t *testing.T) {
	buf := make([]byte, 16)
	PutStringRef(buf, 4, StringRef(123))
	require.Equal(t, StringRef(123), GetStringRef(buf, 4))
}

func TestPointerRefNull(t *testing.T) {
	require.True(t, PointerRef(NullOffset).IsNull())
	require.False(t, PointerRef(0).IsNull())
}

func TestArrayRefRoundTrip(t *testing.T) {
	buf := make([]byte, 16)
	ref := ArrayRef{Offset: 8, Count: 3, Stride: 4}
	PutArrayRef(buf, 0, ref)
	require.Equal(t, ref, GetArrayRef(buf, 0))
}

func TestStringAt(t *testing.T) {
	arena := make([]byte, 0, 32)
	arena = append(arena, 0, 0, 0, 0) // length placeholder at offset 0
	arena[0] = 5
	arena = append(arena, []byte("hello")...)
	arena = append(arena, 0) // NUL terminator
	require.Equal(t, "hello", StringAt(arena, StringRef(0)))
}
