// Package schemalang parses the record-definition schema language into an
// intermediate representation (spec.md §3/§4.2) consumed by
// internal/codegen.
package schemalang

// Attr describes how a Field's type is attributed: a plain scalar/record
// value, a fixed-unknown-length array of it, or a pointer to it.
type Attr int

const (
	Scalar Attr = iota
	Array
	Pointer
)

// FieldType names a field's type: one of the built-in scalar keywords
// (Native true) or a reference to another record declared in the same
// Unit (Native false, Kind is zero and ignored). Unsigned only affects
// char/short/int/long (Kind one of those four); it is meaningless, and
// always false, for every other native kind — matching the original's
// dejsonType(), which only branches on isUnsigned for those four tokens.
type FieldType struct {
	Name     string
	Native   bool
	Kind     NativeKind
	Unsigned bool
	Attr     Attr
}

// NativeKind identifies which built-in scalar keyword a native FieldType
// names, independent of the lexer's token kind (so this package does not
// need to import internal/lexer's token enum as part of its own IR).
type NativeKind int

const (
	KindChar NativeKind = iota
	KindShort
	KindInt
	KindLong
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat
	KindDouble
	KindBool
	KindString
)

// Field is one member of a Record: its name, type, and declaration line
// (for diagnostics).
type Field struct {
	Name string
	Type FieldType
	Line int
}

// Record is one "struct Name { ... };" declaration.
type Record struct {
	Name   string
	Fields []Field
	Line   int
}

// Unit is a whole parsed schema source: an ordered list of records.
type Unit struct {
	Records []Record
}

// RecordByName returns the record with the given name, or false if none
// exists.
func (u *Unit) RecordByName(name string) (Record, bool) {
	for _, r := range u.Records {
		if r.Name == name {
			return r, true
		}
	}
	return Record{}, false
}
