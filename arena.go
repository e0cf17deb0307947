package dejson

import "encoding/binary"

// Arena is a bump allocator over a caller-supplied buffer, used by the
// object/array/pointer driver (driver.go) to lay out both the fixed-size
// record skeleton and any variable-length tail data (strings, arrays,
// nested pointed-to records) that follows it.
//
// A parse runs twice, mirroring spec.md §4.8/§8: once in counting mode
// (Buf is nil) to measure the total size, and once in materializing mode
// (Buf is the caller's sized buffer) to actually write bytes. Counting
// mode never touches memory; materializing mode bound-checks every
// reservation against len(Buf), resolving spec.md §9's buffer-overrun
// Open Question instead of writing past the end like the original C
// allocator (dejson_alloc) did.
type Arena struct {
	// Buf is the destination buffer in materializing mode, or nil in
	// counting mode.
	Buf []byte
	// Offset is the next free byte offset (also the running total size
	// in counting mode).
	Offset uint32
}

// Counting reports whether the arena is in the size-measuring pass.
func (a *Arena) Counting() bool { return a.Buf == nil }

// align rounds off up to the next multiple of alignment (alignment must
// be a power of two).
func align(off uint32, alignment uint32) uint32 {
	if alignment <= 1 {
		return off
	}
	return (off + alignment - 1) &^ (alignment - 1)
}

// Reserve aligns the current offset to alignment, then reserves size
// bytes at that offset. It returns the aligned offset at which the
// caller should write (in materializing mode) or would have written (in
// counting mode). In materializing mode it returns ErrBufferTooSmall if
// the reservation would exceed len(a.Buf).
func (a *Arena) Reserve(size, alignment uint32) (uint32, error) {
	off := align(a.Offset, alignment)
	end := off + size
	if a.Buf != nil && end > uint32(len(a.Buf)) {
		return 0, ErrBufferTooSmall
	}
	a.Offset = end
	return off, nil
}

// Write reserves len(data) bytes at the given alignment and, in
// materializing mode, copies data into the arena at the reserved offset.
// It returns the offset data was (or would have been) written at.
func (a *Arena) Write(data []byte, alignment uint32) (uint32, error) {
	off, err := a.Reserve(uint32(len(data)), alignment)
	if err != nil {
		return 0, err
	}
	if a.Buf != nil {
		copy(a.Buf[off:], data)
	}
	return off, nil
}

// WriteString reserves and writes a length-prefixed, NUL-terminated
// string (the StringRef on-disk format: a uint32 length, the UTF-8
// bytes, then one NUL byte), returning a StringRef to it.
func (a *Arena) WriteString(s string) (StringRef, error) {
	total := uint32(4 + len(s) + 1)
	off, err := a.Reserve(total, 4)
	if err != nil {
		return 0, err
	}
	if a.Buf != nil {
		binary.LittleEndian.PutUint32(a.Buf[off:], uint32(len(s)))
		copy(a.Buf[off+4:], s)
		a.Buf[off+4+uint32(len(s))] = 0
	}
	return StringRef(off), nil
}
