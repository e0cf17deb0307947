package dejson

// Size runs the counting pass of the parser over json for the record
// named by hash, returning the number of bytes Deserialize would need.
// It performs no writes; callers use it to size the buffer for a
// subsequent Deserialize call (spec.md §4.8 "size" operation).
func Size(r Resolver, hash uint32, json []byte) (uint32, error) {
	n, _, err := execute(r, hash, json, nil)
	return n, err
}

// Deserialize parses json for the record named by hash directly into buf,
// which must be at least as large as the value returned by a prior Size
// call with the same arguments (spec.md §4.8 "materialize" operation). The
// root record is written at buf[0:]; any variable-length tail data
// (strings, arrays, pointed-to records) follows it inside buf.
func Deserialize(r Resolver, hash uint32, json []byte, buf []byte) error {
	_, _, err := execute(r, hash, json, buf)
	return err
}

// execute drives one pass (counting when buf is nil, materializing
// otherwise) over json, mirroring dejson_execute: resolve the root
// record, reserve its skeleton, parse it as an object, then require the
// rest of the input to be only whitespace.
func execute(r Resolver, hash uint32, json []byte, buf []byte) (uint32, *RecordMeta, error) {
	meta := r.Resolve(hash)
	if meta == nil {
		return 0, nil, ErrUnknownRecord
	}

	arena := &Arena{Buf: buf}
	p := &parser{json: json, arena: arena, resolver: r}

	recordOff, err := arena.Reserve(meta.Size, meta.Alignment)
	if err != nil {
		return 0, nil, err
	}

	p.skipSpaces()
	if err := p.parseObject(recordOff, meta); err != nil {
		return 0, nil, err
	}
	p.skipSpaces()

	if p.pos != len(p.json) {
		return 0, nil, ErrEOFExpected
	}

	return arena.Offset, meta, nil
}

// parseObject parses a JSON object into the record already reserved at
// byte offset recordOff, using meta to dispatch each member by its
// DJB32 key hash (spec.md §4.8's object state machine). Unknown keys are
// skipped, matching the original's "skip unknown" behavior rather than
// rejecting the document.
func (p *parser) parseObject(recordOff uint32, meta *RecordMeta) error {
	if p.cur() != '{' {
		return ErrObjectExpected
	}

	if p.arena.Buf != nil {
		clear(p.arena.Buf[recordOff : recordOff+meta.Size])
	}

	p.pos++
	p.skipSpaces()

	for p.cur() != '}' {
		if p.cur() != '"' {
			return ErrMissingKey
		}
		keyStart := p.pos + 1
		if _, err := p.skipKey(); err != nil {
			return err
		}
		keyEnd := p.pos - 1 // position of the closing quote we just passed
		hash := HashBytes(p.json[keyStart:keyEnd])

		p.skipSpaces()
		if p.cur() != ':' {
			return ErrMissingValue
		}
		p.pos++
		p.skipSpaces()

		field, found := meta.FieldByHash(hash)
		if found {
			if err := p.parseValue(recordOff+field.Offset, field); err != nil {
				return err
			}
		} else {
			if err := p.skipValue(); err != nil {
				return err
			}
		}

		p.skipSpaces()
		if p.cur() != ',' {
			break
		}
		p.pos++
		p.skipSpaces()
	}

	if p.cur() != '}' {
		return ErrUnterminatedObject
	}
	p.pos++
	return nil
}

// parseValue dispatches one field value by its metadata, writing to
// (or, in counting mode, only measuring past) byte offset valueOff in
// the arena. It mirrors dejson_parse_value's non-array/non-pointer,
// array, and pointer branches.
func (p *parser) parseValue(valueOff uint32, field FieldMeta) error {
	if !field.IsArray() && !field.IsPointer() {
		if field.Type != TypeRecord {
			return p.writeScalar(field.Type, valueOff)
		}
		meta := p.resolver.Resolve(field.TypeHash)
		if meta == nil {
			return ErrUnknownRecord
		}
		return p.parseObject(valueOff, meta)
	}

	size, alignment, meta, err := p.elementLayout(field)
	if err != nil {
		return err
	}

	if field.IsArray() {
		return p.parseArrayField(valueOff, size, alignment, field, meta)
	}

	// Pointer field.
	if p.at(0) == 'n' && p.at(1) == 'u' && p.at(2) == 'l' && p.at(3) == 'l' && !isAlpha(p.at(4)) {
		if p.arena.Buf != nil {
			PutPointerRef(p.arena.Buf, valueOff, PointerRef(NullOffset))
		}
		p.pos += 4
		return nil
	}

	pointeeOff, err := p.arena.Reserve(size, alignment)
	if err != nil {
		return err
	}
	if p.arena.Buf != nil {
		PutPointerRef(p.arena.Buf, valueOff, PointerRef(pointeeOff))
	}

	if field.Type != TypeRecord {
		scalar := field
		scalar.Flags = 0
		return p.writeScalar(scalar.Type, pointeeOff)
	}
	return p.parseObject(pointeeOff, meta)
}

// elementLayout returns the size and alignment of one element of field
// (its pointee or array element type), resolving the nested RecordMeta
// when field.Type is TypeRecord.
func (p *parser) elementLayout(field FieldMeta) (size, alignment uint32, meta *RecordMeta, err error) {
	if field.Type != TypeRecord {
		w := ScalarWidth(field.Type)
		return w, w, nil, nil
	}
	meta = p.resolver.Resolve(field.TypeHash)
	if meta == nil {
		return 0, 0, nil, ErrUnknownRecord
	}
	return meta.Size, meta.Alignment, meta, nil
}

// parseArrayField parses a JSON array into an ArrayRef at valueOff,
// mirroring dejson_parse_array: it first skips the array to count its
// elements (rewinding afterward), reserves count*elementSize bytes, then
// reparses each element in place.
func (p *parser) parseArrayField(valueOff, elementSize, elementAlignment uint32, field FieldMeta, meta *RecordMeta) error {
	if p.cur() != '[' {
		return ErrInvalidValue
	}

	save := p.pos
	count, err := p.skipArray()
	if err != nil {
		return err
	}
	p.pos = save + 1

	elementsOff, err := p.arena.Reserve(elementSize*uint32(count), elementAlignment)
	if err != nil {
		return err
	}
	if p.arena.Buf != nil {
		PutArrayRef(p.arena.Buf, valueOff, ArrayRef{Offset: elementsOff, Count: uint32(count), Stride: elementSize})
	}

	p.skipSpaces()

	elementOff := elementsOff
	for p.cur() != ']' {
		if field.Type != TypeRecord {
			if err := p.writeScalar(field.Type, elementOff); err != nil {
				return err
			}
		} else {
			if err := p.parseObject(elementOff, meta); err != nil {
				return err
			}
		}
		p.skipSpaces()
		elementOff += elementSize

		if p.cur() != ',' {
			break
		}
		p.pos++
		p.skipSpaces()
	}

	if p.cur() != ']' {
		return ErrUnterminatedArray
	}
	p.pos++
	return nil
}
