package dejson

// TypeTag identifies the scalar or record kind of a record field. Values
// are part of the metadata ABI shared between generated code and the
// runtime; the record tag is always last so scalar tags stay contiguous.
type TypeTag uint8

const (
	TypeChar TypeTag = iota
	TypeUChar
	TypeShort
	TypeUShort
	TypeInt
	TypeUInt
	TypeLong
	TypeULong
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeFloat
	TypeDouble
	TypeBool
	TypeString
	TypeRecord
)

// Flags describes attributes of a field orthogonal to its TypeTag.
type Flags uint8

const (
	// FlagArray marks a field as a repeated sequence of its element type,
	// stored as an ArrayRef. Mutually exclusive with FlagPointer.
	FlagArray Flags = 1 << 0

	// FlagPointer marks a field as an optional reference to its type,
	// stored as a PointerRef. Mutually exclusive with FlagArray.
	FlagPointer Flags = 1 << 1
)

// FieldMeta describes one field of a record: its name and type hashes for
// dispatch, its byte offset within the record, its type tag, and its
// flags. Generated per record by internal/codegen, in declaration order.
type FieldMeta struct {
	NameHash uint32
	TypeHash uint32
	Offset   uint32
	Type     TypeTag
	Flags    Flags
}

// IsArray reports whether the field is array-attributed.
func (f FieldMeta) IsArray() bool { return f.Flags&FlagArray != 0 }

// IsPointer reports whether the field is pointer-attributed.
func (f FieldMeta) IsPointer() bool { return f.Flags&FlagPointer != 0 }

// RecordMeta describes one record type: its fields, its own name hash,
// and the size/alignment of its packed representation. Generated once
// per record by internal/codegen.
type RecordMeta struct {
	Fields    []FieldMeta
	NameHash  uint32
	Size      uint32
	Alignment uint32
}

// FieldByHash returns the field whose NameHash matches hash, or false if
// no such field exists (an unknown JSON key is skipped, not an error).
func (r *RecordMeta) FieldByHash(hash uint32) (FieldMeta, bool) {
	for _, f := range r.Fields {
		if f.NameHash == hash {
			return f, true
		}
	}
	return FieldMeta{}, false
}

// Resolver resolves a record name hash to its metadata. Generated code
// implements this as a dispatcher over the schema's compiled records; it
// plays the role of the original C API's dejson_resolve_record callback.
type Resolver interface {
	Resolve(hash uint32) *RecordMeta
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(hash uint32) *RecordMeta

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(hash uint32) *RecordMeta { return f(hash) }

// typeWidths gives the fixed byte width of every non-record TypeTag, per
// SPEC_FULL.md §3's pinned-width table. TypeRecord has no fixed width; its
// width comes from the referenced RecordMeta.Size.
var typeWidths = [...]uint32{
	TypeChar:   1,
	TypeUChar:  1,
	TypeShort:  2,
	TypeUShort: 2,
	TypeInt:    4,
	TypeUInt:   4,
	TypeLong:   8,
	TypeULong:  8,
	TypeInt8:   1,
	TypeInt16:  2,
	TypeInt32:  4,
	TypeInt64:  8,
	TypeUint8:  1,
	TypeUint16: 2,
	TypeUint32: 4,
	TypeUint64: 8,
	TypeFloat:  4,
	TypeDouble: 8,
	TypeBool:   1,
	TypeString: 4, // StringRef
}

// ScalarWidth returns the fixed width in bytes of a non-record, non-array,
// non-pointer TypeTag. It panics for TypeRecord, whose width depends on
// the referenced RecordMeta.
func ScalarWidth(t TypeTag) uint32 {
	if int(t) >= len(typeWidths) {
		panic("dejson: ScalarWidth called with TypeRecord or an unknown tag")
	}
	return typeWidths[t]
}

const (
	// ArrayRefSize is the fixed byte size of an ArrayRef (Offset, Count, Stride).
	ArrayRefSize = 12
	// PointerRefSize is the fixed byte size of a PointerRef (an offset).
	PointerRefSize = 4
	// StringRefSize is the fixed byte size of a StringRef (an offset).
	StringRefSize = 4
)
