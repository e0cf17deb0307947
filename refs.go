package dejson

import "encoding/binary"

// NullOffset is the sentinel PointerRef value meaning "no referent", the
// offset-based equivalent of a null pointer.
const NullOffset uint32 = 0xFFFFFFFF

// StringRef is a 4-byte arena-relative byte offset to a length-prefixed,
// NUL-terminated UTF-8 string: a uint32 length followed by that many bytes
// plus one NUL byte, all inside the arena. Representing a string pointer
// this way (rather than a raw address) is required because Go cannot hold
// a live pointer into a byte slice it treats as opaque bytes; see
// DESIGN.md "Representation choice: offsets instead of raw pointers".
type StringRef uint32

// PointerRef is a 4-byte arena-relative byte offset to an optional
// referent, or NullOffset when absent.
type PointerRef uint32

// IsNull reports whether the reference is absent.
func (p PointerRef) IsNull() bool { return uint32(p) == NullOffset }

// ArrayRef describes a contiguous run of elements inside the arena: the
// byte offset of the first element, the element count, and the stride
// (element size in bytes, including any record padding).
type ArrayRef struct {
	Offset uint32
	Count  uint32
	Stride uint32
}

// PutStringRef writes a StringRef at byte offset off in buf.
func PutStringRef(buf []byte, off uint32, ref StringRef) {
	binary.LittleEndian.PutUint32(buf[off:], uint32(ref))
}

// GetStringRef reads a StringRef at byte offset off in buf.
func GetStringRef(buf []byte, off uint32) StringRef {
	return StringRef(binary.LittleEndian.Uint32(buf[off:]))
}

// PutPointerRef writes a PointerRef at byte offset off in buf.
func PutPointerRef(buf []byte, off uint32, ref PointerRef) {
	binary.LittleEndian.PutUint32(buf[off:], uint32(ref))
}

// GetPointerRef reads a PointerRef at byte offset off in buf.
func GetPointerRef(buf []byte, off uint32) PointerRef {
	return PointerRef(binary.LittleEndian.Uint32(buf[off:]))
}

// PutArrayRef writes an ArrayRef at byte offset off in buf.
func PutArrayRef(buf []byte, off uint32, ref ArrayRef) {
	binary.LittleEndian.PutUint32(buf[off:], ref.Offset)
	binary.LittleEndian.PutUint32(buf[off+4:], ref.Count)
	binary.LittleEndian.PutUint32(buf[off+8:], ref.Stride)
}

// GetArrayRef reads an ArrayRef at byte offset off in buf.
func GetArrayRef(buf []byte, off uint32) ArrayRef {
	return ArrayRef{
		Offset: binary.LittleEndian.Uint32(buf[off:]),
		Count:  binary.LittleEndian.Uint32(buf[off+4:]),
		Stride: binary.LittleEndian.Uint32(buf[off+8:]),
	}
}

// StringAt resolves a StringRef against its arena, returning the decoded
// Go string. It returns "" for a ref pointing at an empty string.
func StringAt(arena []byte, ref StringRef) string {
	off := uint32(ref)
	n := binary.LittleEndian.Uint32(arena[off:])
	start := off + 4
	return string(arena[start : start+n])
}
