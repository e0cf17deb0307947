package dejson

import "math"

// GetInt8/GetUint8/... read a scalar of the named width and signedness at
// byte offset off in buf, little-endian. Generated record-view accessors
// (internal/codegen's header emitter) use these instead of unsafe pointer
// casts, since a Go byte slice cannot be reinterpreted as an arbitrary
// struct the way a C buffer can.

func GetInt8(buf []byte, off uint32) int8 { return int8(buf[off]) }

func GetUint8(buf []byte, off uint32) uint8 { return buf[off] }

func GetInt16(buf []byte, off uint32) int16 { return int16(GetUint16(buf, off)) }

func GetUint16(buf []byte, off uint32) uint16 {
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}

func GetInt32(buf []byte, off uint32) int32 { return int32(GetUint32(buf, off)) }

func GetUint32(buf []byte, off uint32) uint32 {
	return uint32(buf[off]) | uint32(buf[off+1])<<8 | uint32(buf[off+2])<<16 | uint32(buf[off+3])<<24
}

func GetInt64(buf []byte, off uint32) int64 { return int64(GetUint64(buf, off)) }

func GetUint64(buf []byte, off uint32) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(buf[off+uint32(i)]) << (8 * i)
	}
	return v
}

func GetFloat32(buf []byte, off uint32) float32 {
	return math.Float32frombits(GetUint32(buf, off))
}

func GetFloat64(buf []byte, off uint32) float64 {
	return math.Float64frombits(GetUint64(buf, off))
}

func GetBool(buf []byte, off uint32) bool { return buf[off] != 0 }
