package dejson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArenaCountingThenMaterializing(t *testing.T) {
	counting := &Arena{}
	_, err := counting.Reserve(4, 4)
	require.NoError(t, err)
	_, err = counting.Reserve(9, 1)
	require.NoError(t, err)
	size := counting.Offset

	buf := make([]byte, size)
	materializing := &Arena{Buf: buf}
	off1, err := materializing.Write([]byte{1, 2, 3, 4}, 4)
	require.NoError(t, err)
	require.Equal(t, uint32(0), off1)
	off2, err := materializing.Write([]byte("123456789"), 1)
	require.NoError(t, err)
	require.Equal(t, uint32(4), off2)
	require.Equal(t, size, materializing.Offset)
}

func TestArenaAlignment(t *testing.T) {
	a := &Arena{}
	_, _ = a.Reserve(1, 1)
	off, err := a.Reserve(8, 8)
	require.NoError(t, err)
	require.Equal(t, uint32(8), off)
}

func TestArenaBufferTooSmall(t *testing.T) {
	a := &Arena{Buf: make([]byte, 4)}
	_, err := a.Reserve(8, 1)
	require.ErrorIs(t, err, ErrBufferTooSmall)
}

func TestArenaWriteString(t *testing.T) {
	counting := &Arena{}
	_, err := counting.WriteString("hi")
	require.NoError(t, err)
	size := counting.Offset
	require.Equal(t, uint32(4+2+1), size)

	buf := make([]byte, size)
	materializing := &Arena{Buf: buf}
	ref, err := materializing.WriteString("hi")
	require.NoError(t, err)
	require.Equal(t, "hi", StringAt(buf, ref))
}

func TestArenaCountingNeverTouchesBuf(t *testing.T) {
	a := &Arena{}
	require.True(t, a.Counting())
	off, err := a.Reserve(1<<20, 1)
	require.NoError(t, err)
	require.Equal(t, uint32(0), off)
}
