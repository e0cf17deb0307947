package dejson

import (
	"math"
	"strconv"
)

// numberText slices out the raw number literal starting at the current
// position, advancing past it, so strconv can parse it the same way
// strtoll/strtoull/strtod do in the original.
func (p *parser) numberText() ([]byte, error) {
	start := p.pos
	if err := p.skipNumber(); err != nil {
		return nil, err
	}
	return p.json[start:p.pos], nil
}

func (p *parser) getInt64(min, max int64) (int64, error) {
	text, err := p.numberText()
	if err != nil {
		return 0, ErrInvalidValue
	}
	v, err := strconv.ParseInt(string(text), 10, 64)
	if err != nil || v < min || v > max {
		return 0, ErrInvalidValue
	}
	return v, nil
}

func (p *parser) getUint64(max uint64) (uint64, error) {
	text, err := p.numberText()
	if err != nil {
		return 0, ErrInvalidValue
	}
	v, err := strconv.ParseUint(string(text), 10, 64)
	if err != nil || v > max {
		return 0, ErrInvalidValue
	}
	return v, nil
}

// getDouble parses a JSON number as float64. Unlike the original, whose
// range checks used FLT_MIN/DBL_MIN as a lower bound (which would reject
// every negative value, since *_MIN is the smallest positive
// representable magnitude, not the most negative value), this checks
// against the symmetric range [-max, max] — the corrected behavior named
// in spec.md §9.
func (p *parser) getDouble(maxMagnitude float64) (float64, error) {
	text, err := p.numberText()
	if err != nil {
		return 0, ErrInvalidValue
	}
	v, err := strconv.ParseFloat(string(text), 64)
	if err != nil || v < -maxMagnitude || v > maxMagnitude {
		return 0, ErrInvalidValue
	}
	return v, nil
}

// writeScalar parses one scalar JSON value of the given type tag and, in
// materializing mode, writes it at byte offset off in the arena buffer
// using the field's fixed little-endian width (ScalarWidth).
func (p *parser) writeScalar(t TypeTag, off uint32) error {
	switch t {
	case TypeChar:
		v, err := p.getInt64(math.MinInt8, math.MaxInt8)
		if err != nil {
			return err
		}
		p.putInt(off, 1, v)
	case TypeUChar:
		v, err := p.getUint64(math.MaxUint8)
		if err != nil {
			return err
		}
		p.putUint(off, 1, v)
	case TypeShort:
		v, err := p.getInt64(math.MinInt16, math.MaxInt16)
		if err != nil {
			return err
		}
		p.putInt(off, 2, v)
	case TypeUShort:
		v, err := p.getUint64(math.MaxUint16)
		if err != nil {
			return err
		}
		p.putUint(off, 2, v)
	case TypeInt:
		v, err := p.getInt64(math.MinInt32, math.MaxInt32)
		if err != nil {
			return err
		}
		p.putInt(off, 4, v)
	case TypeUInt:
		v, err := p.getUint64(math.MaxUint32)
		if err != nil {
			return err
		}
		p.putUint(off, 4, v)
	case TypeLong, TypeInt64:
		v, err := p.getInt64(math.MinInt64, math.MaxInt64)
		if err != nil {
			return err
		}
		p.putInt(off, 8, v)
	case TypeULong, TypeUint64:
		v, err := p.getUint64(math.MaxUint64)
		if err != nil {
			return err
		}
		p.putUint(off, 8, v)
	case TypeInt8:
		v, err := p.getInt64(math.MinInt8, math.MaxInt8)
		if err != nil {
			return err
		}
		p.putInt(off, 1, v)
	case TypeInt16:
		v, err := p.getInt64(math.MinInt16, math.MaxInt16)
		if err != nil {
			return err
		}
		p.putInt(off, 2, v)
	case TypeInt32:
		v, err := p.getInt64(math.MinInt32, math.MaxInt32)
		if err != nil {
			return err
		}
		p.putInt(off, 4, v)
	case TypeUint8:
		v, err := p.getUint64(math.MaxUint8)
		if err != nil {
			return err
		}
		p.putUint(off, 1, v)
	case TypeUint16:
		v, err := p.getUint64(math.MaxUint16)
		if err != nil {
			return err
		}
		p.putUint(off, 2, v)
	case TypeUint32:
		v, err := p.getUint64(math.MaxUint32)
		if err != nil {
			return err
		}
		p.putUint(off, 4, v)
	case TypeFloat:
		v, err := p.getDouble(math.MaxFloat32)
		if err != nil {
			return err
		}
		if p.arena.Buf != nil {
			putFloat32(p.arena.Buf, off, float32(v))
		}
	case TypeDouble:
		v, err := p.getDouble(math.MaxFloat64)
		if err != nil {
			return err
		}
		if p.arena.Buf != nil {
			putFloat64(p.arena.Buf, off, v)
		}
	case TypeBool:
		v, err := p.parseBool()
		if err != nil {
			return err
		}
		if p.arena.Buf != nil {
			if v {
				p.arena.Buf[off] = 1
			} else {
				p.arena.Buf[off] = 0
			}
		}
	case TypeString:
		ref, err := p.parseString()
		if err != nil {
			return err
		}
		if p.arena.Buf != nil {
			PutStringRef(p.arena.Buf, off, ref)
		}
	default:
		return ErrInvalidValue
	}
	return nil
}

func (p *parser) parseBool() (bool, error) {
	if p.at(0) == 't' && p.at(1) == 'r' && p.at(2) == 'u' && p.at(3) == 'e' && !isAlpha(p.at(4)) {
		p.pos += 4
		return true, nil
	}
	if p.at(0) == 'f' && p.at(1) == 'a' && p.at(2) == 'l' && p.at(3) == 's' && p.at(4) == 'e' && !isAlpha(p.at(5)) {
		p.pos += 5
		return false, nil
	}
	return false, ErrInvalidValue
}

func (p *parser) putInt(off uint32, width int, v int64) {
	if p.arena.Buf == nil {
		return
	}
	buf := p.arena.Buf[off:]
	for i := 0; i < width; i++ {
		buf[i] = byte(v >> (8 * i))
	}
}

func (p *parser) putUint(off uint32, width int, v uint64) {
	if p.arena.Buf == nil {
		return
	}
	buf := p.arena.Buf[off:]
	for i := 0; i < width; i++ {
		buf[i] = byte(v >> (8 * i))
	}
}

func putFloat32(buf []byte, off uint32, v float32) {
	bits := math.Float32bits(v)
	buf[off] = byte(bits)
	buf[off+1] = byte(bits >> 8)
	buf[off+2] = byte(bits >> 16)
	buf[off+3] = byte(bits >> 24)
}

func putFloat64(buf []byte, off uint32, v float64) {
	bits := math.Float64bits(v)
	for i := 0; i < 8; i++ {
		buf[off+uint32(i)] = byte(bits >> (8 * i))
	}
}
