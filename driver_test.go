package dejson

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func personMeta() *RecordMeta {
	return &RecordMeta{
		NameHash: Hash("Person"),
		Size:     8,
		Alignment: 4,
		Fields: []FieldMeta{
			{NameHash: Hash("Age"), Type: TypeInt32, Offset: 0},
			{NameHash: Hash("Name"), Type: TypeString, Offset: 4},
		},
	}
}

func personResolver() Resolver {
	meta := personMeta()
	return ResolverFunc(func(hash uint32) *RecordMeta {
		if hash == meta.NameHash {
			return meta
		}
		return nil
	})
}

func TestSizeAndDeserializeScalarAndString(t *testing.T) {
	r := personResolver()
	json := []byte(`{"Age":30,"Name":"Alice"}`)

	n, err := Size(r, Hash("Person"), json)
	require.NoError(t, err)
	require.Greater(t, n, uint32(8))

	buf := make([]byte, n)
	require.NoError(t, Deserialize(r, Hash("Person"), json, buf))

	age := int32(binary.LittleEndian.Uint32(buf[0:4]))
	require.Equal(t, int32(30), age)

	ref := GetStringRef(buf, 4)
	require.Equal(t, "Alice", StringAt(buf, ref))
}

func TestDeserializeUnknownKeyIsSkipped(t *testing.T) {
	r := personResolver()
	json := []byte(`{"Age":30,"Extra":{"a":[1,2,3]},"Name":"Bob"}`)

	n, err := Size(r, Hash("Person"), json)
	require.NoError(t, err)
	buf := make([]byte, n)
	require.NoError(t, Deserialize(r, Hash("Person"), json, buf))
	require.Equal(t, "Bob", StringAt(buf, GetStringRef(buf, 4)))
}

func TestDeserializeUnknownRecord(t *testing.T) {
	r := personResolver()
	_, err := Size(r, Hash("Nope"), []byte(`{}`))
	require.ErrorIs(t, err, ErrUnknownRecord)
}

func TestDeserializeMissingObject(t *testing.T) {
	r := personResolver()
	_, err := Size(r, Hash("Person"), []byte(`[1,2,3]`))
	require.ErrorIs(t, err, ErrObjectExpected)
}

func TestDeserializeTrailingGarbage(t *testing.T) {
	r := personResolver()
	_, err := Size(r, Hash("Person"), []byte(`{"Age":1,"Name":"x"} garbage`))
	require.ErrorIs(t, err, ErrEOFExpected)
}

func TestDeserializeUnterminatedObject(t *testing.T) {
	r := personResolver()
	_, err := Size(r, Hash("Person"), []byte(`{"Age":1`))
	require.Error(t, err)
}

func TestDeserializeUnterminatedKeyIsDistinctFromUnterminatedString(t *testing.T) {
	r := personResolver()
	_, err := Size(r, Hash("Person"), []byte(`{"Age`))
	require.ErrorIs(t, err, ErrUnterminatedKey)
	require.NotErrorIs(t, err, ErrUnterminatedString)
}

func TestDeserializeBufferTooSmall(t *testing.T) {
	r := personResolver()
	json := []byte(`{"Age":30,"Name":"Alice"}`)
	n, err := Size(r, Hash("Person"), json)
	require.NoError(t, err)
	buf := make([]byte, n-1)
	err = Deserialize(r, Hash("Person"), json, buf)
	require.ErrorIs(t, err, ErrBufferTooSmall)
}

func arrayRecordMeta() (*RecordMeta, Resolver) {
	meta := &RecordMeta{
		NameHash:  Hash("Bag"),
		Size:      12,
		Alignment: 4,
		Fields: []FieldMeta{
			{NameHash: Hash("Values"), Type: TypeInt32, Offset: 0, Flags: FlagArray},
		},
	}
	return meta, ResolverFunc(func(hash uint32) *RecordMeta {
		if hash == meta.NameHash {
			return meta
		}
		return nil
	})
}

func TestDeserializeArrayField(t *testing.T) {
	meta, r := arrayRecordMeta()
	_ = meta
	json := []byte(`{"Values":[1,2,3,4]}`)

	n, err := Size(r, Hash("Bag"), json)
	require.NoError(t, err)
	buf := make([]byte, n)
	require.NoError(t, Deserialize(r, Hash("Bag"), json, buf))

	ref := GetArrayRef(buf, 0)
	require.Equal(t, uint32(4), ref.Count)
	require.Equal(t, uint32(4), ref.Stride)
	for i := uint32(0); i < ref.Count; i++ {
		v := int32(binary.LittleEndian.Uint32(buf[ref.Offset+i*ref.Stride:]))
		require.Equal(t, int32(i+1), v)
	}
}

func pointerRecordMeta() Resolver {
	meta := &RecordMeta{
		NameHash:  Hash("Node"),
		Size:      8,
		Alignment: 4,
		Fields: []FieldMeta{
			{NameHash: Hash("Value"), Type: TypeInt32, Offset: 0},
			{NameHash: Hash("Next"), Type: TypeRecord, TypeHash: Hash("Node"), Offset: 4, Flags: FlagPointer},
		},
	}
	return ResolverFunc(func(hash uint32) *RecordMeta {
		if hash == meta.NameHash {
			return meta
		}
		return nil
	})
}

func TestDeserializeNullPointer(t *testing.T) {
	r := pointerRecordMeta()
	json := []byte(`{"Value":1,"Next":null}`)

	n, err := Size(r, Hash("Node"), json)
	require.NoError(t, err)
	buf := make([]byte, n)
	require.NoError(t, Deserialize(r, Hash("Node"), json, buf))

	require.True(t, GetPointerRef(buf, 4).IsNull())
}

func TestDeserializeNestedPointer(t *testing.T) {
	r := pointerRecordMeta()
	json := []byte(`{"Value":1,"Next":{"Value":2,"Next":null}}`)

	n, err := Size(r, Hash("Node"), json)
	require.NoError(t, err)
	buf := make([]byte, n)
	require.NoError(t, Deserialize(r, Hash("Node"), json, buf))

	next := GetPointerRef(buf, 4)
	require.False(t, next.IsNull())
	nextVal := int32(binary.LittleEndian.Uint32(buf[uint32(next):]))
	require.Equal(t, int32(2), nextVal)
}
