// Package codegen lowers a parsed schemalang.Unit into the packed
// record layout, metadata tables, and dispatcher Go source that
// cmd/dejsonc writes out (spec.md §4.3/§4.4).
package codegen

import (
	"fmt"
	"sort"

	"github.com/leiradel/dejson"
	"github.com/leiradel/dejson/internal/schemalang"
)

// LayoutField is one field of a packed record, in its final (reordered)
// position, with its resolved dejson metadata.
type LayoutField struct {
	Field     schemalang.Field
	Tag       dejson.TypeTag
	TypeHash  uint32
	TypeName  string // for TypeRecord fields, the referenced record's name
	Flags     dejson.Flags
	Size      uint32
	Alignment uint32
	Offset    uint32
}

// LayoutRecord is one record's fully packed layout: its fields in wire
// order, and the record's own size/alignment.
type LayoutRecord struct {
	Name     string
	NameHash uint32
	Fields   []LayoutField

	// DeclaredFields holds the same resolved fields as Fields (offsets,
	// tags, and flags included), but in the schema's original declaration
	// order rather than packFields' weight-sorted wire order. The header
	// emitter (header.go) generates from Fields, since accessor order has
	// no ABI meaning; the metadata emitter (metadata.go) generates the
	// []dejson.FieldMeta table from DeclaredFields, matching the
	// original's GeneratorC.cpp, which walks the parser's un-reordered
	// field list rather than GeneratorH.cpp's separately-sorted copy.
	DeclaredFields []LayoutField

	Size      uint32
	Alignment uint32
}

// Layout is the result of packing a whole Unit: every record's layout,
// keyed by name, plus the records in their original declaration order
// (the order generated source should list them in).
type Layout struct {
	Records map[string]*LayoutRecord
	Order   []string
}

func tagForNative(ft schemalang.FieldType) dejson.TypeTag {
	switch ft.Kind {
	case schemalang.KindChar:
		if ft.Unsigned {
			return dejson.TypeUChar
		}
		return dejson.TypeChar
	case schemalang.KindShort:
		if ft.Unsigned {
			return dejson.TypeUShort
		}
		return dejson.TypeShort
	case schemalang.KindInt:
		if ft.Unsigned {
			return dejson.TypeUInt
		}
		return dejson.TypeInt
	case schemalang.KindLong:
		if ft.Unsigned {
			return dejson.TypeULong
		}
		return dejson.TypeLong
	case schemalang.KindInt8:
		return dejson.TypeInt8
	case schemalang.KindInt16:
		return dejson.TypeInt16
	case schemalang.KindInt32:
		return dejson.TypeInt32
	case schemalang.KindInt64:
		return dejson.TypeInt64
	case schemalang.KindUint8:
		return dejson.TypeUint8
	case schemalang.KindUint16:
		return dejson.TypeUint16
	case schemalang.KindUint32:
		return dejson.TypeUint32
	case schemalang.KindUint64:
		return dejson.TypeUint64
	case schemalang.KindFloat:
		return dejson.TypeFloat
	case schemalang.KindDouble:
		return dejson.TypeDouble
	case schemalang.KindBool:
		return dejson.TypeBool
	case schemalang.KindString:
		return dejson.TypeString
	}
	panic(fmt.Sprintf("codegen: unhandled native kind %v", ft.Kind))
}

// resolveField computes the dejson tag, flags, and wire size/alignment
// for one field. Embedded (non-array, non-pointer) record fields require
// the referenced record to already be in layouts — callers must process
// records in dependency order (see sortRecords).
func resolveField(field schemalang.Field, layouts map[string]*LayoutRecord) (LayoutField, error) {
	lf := LayoutField{Field: field}

	switch field.Type.Attr {
	case schemalang.Array:
		lf.Flags = dejson.FlagArray
		lf.Size = dejson.ArrayRefSize
		lf.Alignment = 4
	case schemalang.Pointer:
		lf.Flags = dejson.FlagPointer
		lf.Size = dejson.PointerRefSize
		lf.Alignment = 4
	}

	if field.Type.Native {
		lf.Tag = tagForNative(field.Type)
		if field.Type.Attr == schemalang.Scalar {
			w := dejson.ScalarWidth(lf.Tag)
			lf.Size, lf.Alignment = w, w
		}
		return lf, nil
	}

	lf.Tag = dejson.TypeRecord
	lf.TypeName = field.Type.Name
	lf.TypeHash = dejson.Hash(field.Type.Name)

	if field.Type.Attr == schemalang.Scalar {
		nested, ok := layouts[field.Type.Name]
		if !ok {
			return LayoutField{}, fmt.Errorf("%d: unresolved or forward-referenced embedded record %q",
				field.Line, field.Type.Name)
		}
		lf.Size, lf.Alignment = nested.Size, nested.Alignment
	}

	return lf, nil
}

// packWeight orders fields for layout: pointer/array fields first
// (SPEC_FULL.md §4.3 — their fixed reference width is smaller than many
// scalars, but the original ranks references above 8-byte scalars, so an
// artificial high weight preserves that ranking intent rather than its
// literal byte count), then by decreasing size, with a stable tiebreak on
// declaration order.
func packWeight(f LayoutField) int {
	if f.Flags&(dejson.FlagArray|dejson.FlagPointer) != 0 {
		return 1 << 30
	}
	return int(f.Size)
}

func packFields(fields []LayoutField) []LayoutField {
	packed := make([]LayoutField, len(fields))
	copy(packed, fields)
	sort.SliceStable(packed, func(i, j int) bool {
		return packWeight(packed[i]) > packWeight(packed[j])
	})
	return packed
}

func align(off, alignment uint32) uint32 {
	if alignment <= 1 {
		return off
	}
	return (off + alignment - 1) &^ (alignment - 1)
}

// layoutRecord packs one record's already-resolved fields, assigning
// offsets, and computes the record's overall size and alignment.
func layoutRecord(name string, fields []LayoutField) *LayoutRecord {
	declaredNames := make([]string, len(fields))
	for i, f := range fields {
		declaredNames[i] = f.Field.Name
	}

	packed := packFields(fields)

	var cursor, maxAlign uint32 = 0, 1
	for i := range packed {
		off := align(cursor, packed[i].Alignment)
		packed[i].Offset = off
		cursor = off + packed[i].Size
		if packed[i].Alignment > maxAlign {
			maxAlign = packed[i].Alignment
		}
	}

	byName := make(map[string]LayoutField, len(packed))
	for _, f := range packed {
		byName[f.Field.Name] = f
	}
	declared := make([]LayoutField, len(declaredNames))
	for i, n := range declaredNames {
		declared[i] = byName[n]
	}

	return &LayoutRecord{
		Name:           name,
		NameHash:       dejson.Hash(name),
		Fields:         packed,
		DeclaredFields: declared,
		Size:           align(cursor, maxAlign),
		Alignment:      maxAlign,
	}
}

// sortRecords returns the unit's records topologically ordered so that
// every record embedded (by value, not pointer/array) in another record
// comes before it — the order layoutRecord must run in, since an
// embedded field needs its referent's real size (SPEC_FULL.md §4.3's
// improvement over the original's forward-declaration placeholder size).
func sortRecords(unit *schemalang.Unit) ([]schemalang.Record, error) {
	byName := make(map[string]schemalang.Record, len(unit.Records))
	for _, r := range unit.Records {
		byName[r.Name] = r
	}

	deps := make(map[string][]string, len(unit.Records))
	for _, r := range unit.Records {
		for _, f := range r.Fields {
			if !f.Type.Native && f.Type.Attr == schemalang.Scalar {
				if _, ok := byName[f.Type.Name]; ok {
					deps[r.Name] = append(deps[r.Name], f.Type.Name)
				}
			}
		}
	}

	var order []string
	state := make(map[string]int) // 0 unvisited, 1 in-progress, 2 done
	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case 2:
			return nil
		case 1:
			return fmt.Errorf("circular embedded record reference involving %q", name)
		}
		state[name] = 1
		for _, dep := range deps[name] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[name] = 2
		order = append(order, name)
		return nil
	}

	for _, r := range unit.Records {
		if err := visit(r.Name); err != nil {
			return nil, err
		}
	}

	sorted := make([]schemalang.Record, len(order))
	for i, name := range order {
		sorted[i] = byName[name]
	}
	return sorted, nil
}

// BuildLayout packs every record in unit, resolving embedded record
// sizes exactly (in dependency order) and detecting the two hash
// collisions named in spec.md §9's Open Questions: two record names, or
// two field names within one record, hashing to the same DJB32 value.
func BuildLayout(unit *schemalang.Unit) (*Layout, error) {
	sorted, err := sortRecords(unit)
	if err != nil {
		return nil, err
	}

	layouts := make(map[string]*LayoutRecord, len(sorted))
	nameHashes := make(map[uint32]string, len(sorted))

	for _, record := range sorted {
		if existing, ok := nameHashes[dejson.Hash(record.Name)]; ok && existing != record.Name {
			return nil, fmt.Errorf("%d: record name %q collides with %q under DJB32 hashing: %w",
				record.Line, record.Name, existing, dejson.ErrDuplicateName)
		}
		nameHashes[dejson.Hash(record.Name)] = record.Name

		fieldHashes := make(map[uint32]string, len(record.Fields))
		fields := make([]LayoutField, 0, len(record.Fields))
		for _, field := range record.Fields {
			if existing, ok := fieldHashes[dejson.Hash(field.Name)]; ok && existing != field.Name {
				return nil, fmt.Errorf("%d: field name %q collides with %q under DJB32 hashing in struct %q: %w",
					field.Line, field.Name, existing, record.Name, dejson.ErrDuplicateName)
			}
			fieldHashes[dejson.Hash(field.Name)] = field.Name

			lf, err := resolveField(field, layouts)
			if err != nil {
				return nil, err
			}
			fields = append(fields, lf)
		}

		layouts[record.Name] = layoutRecord(record.Name, fields)
	}

	order := make([]string, len(unit.Records))
	for i, r := range unit.Records {
		order[i] = r.Name
	}

	return &Layout{Records: layouts, Order: order}, nil
}
