package codegen

import (
	"fmt"
	"strings"

	"github.com/leiradel/dejson"
)

// GenerateMetadata emits the metadata tables and Resolver dispatcher that
// dejson.Deserialize needs at runtime (spec.md §4.4): one []dejson.FieldMeta
// table and one dejson.RecordMeta per record, plus a single dispatcher type
// implementing dejson.Resolver over every record in the unit — the Go
// equivalent of the original's generated dejson_resolve_record switch.
func GenerateMetadata(pkgName string, layout *Layout) string {
	var b strings.Builder

	fmt.Fprintf(&b, "// Code generated by dejsonc. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkgName)
	fmt.Fprintf(&b, "import \"github.com/leiradel/dejson\"\n\n")

	writeHashConstants(&b, layout)

	for _, name := range layout.Order {
		writeRecordMetadata(&b, layout.Records[name])
	}

	writeResolver(&b, layout)

	return b.String()
}

// writeHashConstants emits one Hash<Record> constant per record, its
// DJB32 name hash, so callers can pass e.g. myschema.HashUser as the root
// record selector to dejson.Size/Deserialize without computing it by hand.
func writeHashConstants(b *strings.Builder, layout *Layout) {
	fmt.Fprintf(b, "const (\n")
	for _, name := range layout.Order {
		record := layout.Records[name]
		fmt.Fprintf(b, "\tHash%s uint32 = 0x%08x\n", record.Name, record.NameHash)
	}
	fmt.Fprintf(b, ")\n\n")
}

// writeRecordMetadata emits record's []dejson.FieldMeta table in the
// schema's original declaration order (spec.md §4.4), not packFields'
// weight-sorted wire order — the table's entries still carry each
// field's packed Offset/Type/Flags, only the table's row order differs
// from the record-view accessor order header.go emits.
func writeRecordMetadata(b *strings.Builder, record *LayoutRecord) {
	fieldsVar := unexportName(record.Name) + "Fields"

	fmt.Fprintf(b, "var %s = []dejson.FieldMeta{\n", fieldsVar)
	for _, f := range record.DeclaredFields {
		fmt.Fprintf(b, "\t{NameHash: 0x%08x, TypeHash: 0x%08x, Offset: %d, Type: %s, Flags: %s}, // %s\n",
			dejson.Hash(f.Field.Name), f.TypeHash, f.Offset, typeTagLiteral(f.Tag), flagsLiteral(f), f.Field.Name)
	}
	fmt.Fprintf(b, "}\n\n")

	fmt.Fprintf(b, "// %sMeta describes the packed layout of %s.\n", record.Name, record.Name)
	fmt.Fprintf(b, "var %sMeta = dejson.RecordMeta{\n\tFields: %s,\n\tNameHash: 0x%08x,\n\tSize: %d,\n\tAlignment: %d,\n}\n\n",
		record.Name, fieldsVar, record.NameHash, record.Size, record.Alignment)
}

func writeResolver(b *strings.Builder, layout *Layout) {
	fmt.Fprintf(b, "// Records implements dejson.Resolver over every record declared in this schema.\n")
	fmt.Fprintf(b, "type Records struct{}\n\n")
	fmt.Fprintf(b, "// Resolve implements dejson.Resolver.\n")
	fmt.Fprintf(b, "func (Records) Resolve(hash uint32) *dejson.RecordMeta {\n\tswitch hash {\n")
	for _, name := range layout.Order {
		record := layout.Records[name]
		fmt.Fprintf(b, "\tcase 0x%08x: // %s\n\t\treturn &%sMeta\n", record.NameHash, record.Name, record.Name)
	}
	fmt.Fprintf(b, "\t}\n\treturn nil\n}\n")
}

func typeTagLiteral(tag dejson.TypeTag) string {
	names := [...]string{
		"dejson.TypeChar", "dejson.TypeUChar", "dejson.TypeShort", "dejson.TypeUShort",
		"dejson.TypeInt", "dejson.TypeUInt", "dejson.TypeLong", "dejson.TypeULong",
		"dejson.TypeInt8", "dejson.TypeInt16", "dejson.TypeInt32", "dejson.TypeInt64",
		"dejson.TypeUint8", "dejson.TypeUint16", "dejson.TypeUint32", "dejson.TypeUint64",
		"dejson.TypeFloat", "dejson.TypeDouble", "dejson.TypeBool", "dejson.TypeString",
		"dejson.TypeRecord",
	}
	if int(tag) >= len(names) {
		panic(fmt.Sprintf("codegen: unknown type tag %d", tag))
	}
	return names[tag]
}

func flagsLiteral(f LayoutField) string {
	switch {
	case f.Flags&dejson.FlagArray != 0 && f.Flags&dejson.FlagPointer != 0:
		return "dejson.FlagArray | dejson.FlagPointer"
	case f.Flags&dejson.FlagArray != 0:
		return "dejson.FlagArray"
	case f.Flags&dejson.FlagPointer != 0:
		return "dejson.FlagPointer"
	default:
		return "0"
	}
}

// unexportName lower-cases a record name's first rune, for an
// unexported per-record fields-table variable name.
func unexportName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
