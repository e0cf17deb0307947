package dejson

// parser walks a JSON document, either measuring it (counting mode, see
// Arena.Counting) or materializing it into arena-backed memory. It plays
// the role of dejson_state_t in the original C implementation, but reports
// failures as ordinary Go errors instead of a setjmp/longjmp rollback
// (spec.md §9: "tagged result propagation at every call site... is
// acceptable" in a language without non-local exits).
type parser struct {
	json     []byte
	pos      int
	arena    *Arena
	resolver Resolver
}

// cur returns the byte at the current position, or 0 past the end of the
// input — mirroring the original's reliance on a NUL-terminated C string
// to stop scanning loops without an explicit bounds check at every step.
func (p *parser) cur() byte {
	if p.pos >= len(p.json) {
		return 0
	}
	return p.json[p.pos]
}

// at returns the byte offset bytes ahead of pos, or 0 past the end.
func (p *parser) at(offset int) byte {
	i := p.pos + offset
	if i < 0 || i >= len(p.json) {
		return 0
	}
	return p.json[i]
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func (p *parser) skipSpaces() {
	for isSpace(p.cur()) {
		p.pos++
	}
}

func (p *parser) skipValue() error {
	switch c := p.cur(); {
	case c == '{':
		if err := p.skipObject(); err != nil {
			return err
		}
	case c == '[':
		if _, err := p.skipArray(); err != nil {
			return err
		}
	case c == '"':
		if _, err := p.skipString(); err != nil {
			return err
		}
	case c == 't' || c == 'f':
		if err := p.skipBoolean(); err != nil {
			return err
		}
	case c == 'n':
		if err := p.skipNull(); err != nil {
			return err
		}
	case isDigit(c) || c == '-':
		if err := p.skipNumber(); err != nil {
			return err
		}
	default:
		return ErrInvalidValue
	}
	p.skipSpaces()
	return nil
}

func (p *parser) skipObject() error {
	p.pos++
	p.skipSpaces()

	for p.cur() != '}' {
		if p.cur() != '"' {
			return ErrMissingKey
		}
		if _, err := p.skipKey(); err != nil {
			return err
		}
		p.skipSpaces()

		if p.cur() != ':' {
			return ErrInvalidValue
		}
		p.pos++
		p.skipSpaces()

		if err := p.skipValue(); err != nil {
			return err
		}
		p.skipSpaces()

		if p.cur() != ',' {
			break
		}
		p.pos++
		p.skipSpaces()
	}

	if p.cur() != '}' {
		return ErrInvalidValue
	}
	p.pos++
	return nil
}

func (p *parser) skipArray() (int, error) {
	count := 0
	p.pos++
	p.skipSpaces()

	for p.cur() != ']' {
		if err := p.skipValue(); err != nil {
			return 0, err
		}
		p.skipSpaces()
		count++

		if p.cur() != ',' {
			break
		}
		p.pos++
		p.skipSpaces()
	}

	if p.cur() != ']' {
		return 0, ErrInvalidValue
	}
	p.pos++
	return count, nil
}

func (p *parser) skipBoolean() error {
	if p.at(0) == 't' && p.at(1) == 'r' && p.at(2) == 'u' && p.at(3) == 'e' && !isAlpha(p.at(4)) {
		p.pos += 4
		return nil
	}
	if p.at(0) == 'f' && p.at(1) == 'a' && p.at(2) == 'l' && p.at(3) == 's' && p.at(4) == 'e' && !isAlpha(p.at(5)) {
		p.pos += 5
		return nil
	}
	return ErrInvalidValue
}

func (p *parser) skipNull() error {
	if p.at(0) == 'n' && p.at(1) == 'u' && p.at(2) == 'l' && p.at(3) == 'l' && !isAlpha(p.at(4)) {
		p.pos += 4
		return nil
	}
	return ErrInvalidValue
}

// utf8EncodedLen returns the number of extra bytes (beyond the first)
// that a \uXXXX escape with this code point contributes once decoded to
// UTF-8, matching the original's length bookkeeping for materialization.
func utf8EncodedLen(code uint32) (int, error) {
	switch {
	case code < 0x80:
		return 0, nil
	case code < 0x800:
		return 1, nil
	case code < 0x10000:
		return 2, nil
	case code < 0x200000:
		return 3, nil
	default:
		return 0, ErrInvalidEscape
	}
}

// hexValue parses the \uXXXX payload at the four bytes ahead of pos,
// requiring all four to be hex digits. This replaces the original's
// precedence bug (`isxdigit(aux[0] || !isxdigit(aux[1]) || ...)`, which
// only ever tested aux[0] for truthiness) with the intended conjunction
// of four independent checks (spec.md §9 Open Question).
func (p *parser) hexValue() (uint32, error) {
	var digits [4]byte
	for i := 0; i < 4; i++ {
		b := p.at(i)
		if !isHexDigit(b) {
			return 0, ErrInvalidEscape
		}
		digits[i] = b
	}
	var v uint32
	for _, d := range digits {
		v <<= 4
		switch {
		case d >= '0' && d <= '9':
			v |= uint32(d - '0')
		case d >= 'a' && d <= 'f':
			v |= uint32(d-'a') + 10
		case d >= 'A' && d <= 'F':
			v |= uint32(d-'A') + 10
		}
	}
	return v, nil
}

// skipString measures a string literal starting at the current position,
// advancing past its closing quote, and returns the decoded UTF-8 byte
// length (not including the key/value position itself).
func (p *parser) skipString() (int, error) {
	return p.skipQuoted(ErrUnterminatedString)
}

// skipKey measures an object member key starting at the current position,
// advancing past its closing quote. It shares skipString's escape grammar
// but reports ErrUnterminatedKey instead of ErrUnterminatedString when the
// closing quote is missing, matching DEJSON_UNTERMINATED_KEY in the
// original (dejson.c's dejson_parse_object key scan), a status distinct
// from an unterminated string value (spec.md §6).
func (p *parser) skipKey() (int, error) {
	return p.skipQuoted(ErrUnterminatedKey)
}

// skipQuoted measures a quoted literal starting at the current position,
// advancing past its closing quote and returning the decoded UTF-8 byte
// length. unterminated is the error reported when the closing quote is
// never found, letting callers distinguish a key from a string value.
func (p *parser) skipQuoted(unterminated error) (int, error) {
	p.pos++ // opening quote
	length := 0

	for p.cur() != '"' {
		if p.pos >= len(p.json) {
			return 0, unterminated
		}

		c := p.cur()
		p.pos++
		length++

		if c == '\\' {
			esc := p.cur()
			p.pos++
			switch esc {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			case 'u':
				code, err := p.hexValue()
				if err != nil {
					return 0, err
				}
				p.pos += 4
				extra, err := utf8EncodedLen(code)
				if err != nil {
					return 0, err
				}
				length += extra
			default:
				return 0, ErrInvalidEscape
			}
		}
	}

	p.pos++ // closing quote
	return length, nil
}

func (p *parser) skipNumber() error {
	start := p.pos
	if p.cur() == '-' {
		p.pos++
	}
	if !isDigit(p.cur()) {
		return ErrInvalidValue
	}
	if p.cur() == '0' {
		p.pos++
	} else {
		for isDigit(p.cur()) {
			p.pos++
		}
	}
	if p.cur() == '.' {
		p.pos++
		if !isDigit(p.cur()) {
			return ErrInvalidValue
		}
		for isDigit(p.cur()) {
			p.pos++
		}
	}
	if p.cur() == 'e' || p.cur() == 'E' {
		p.pos++
		if p.cur() == '+' || p.cur() == '-' {
			p.pos++
		}
		if !isDigit(p.cur()) {
			return ErrInvalidValue
		}
		for isDigit(p.cur()) {
			p.pos++
		}
	}
	if p.pos == start {
		return ErrInvalidValue
	}
	return nil
}
