package codegen

import (
	"strings"
	"testing"

	"github.com/leiradel/dejson"
	"github.com/leiradel/dejson/internal/schemalang"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *schemalang.Unit {
	t.Helper()
	unit, err := schemalang.Parse([]byte(src))
	require.NoError(t, err)
	return unit
}

func TestBuildLayoutPacksReferencesBeforeScalars(t *testing.T) {
	unit := mustParse(t, `
struct S {
  char c;
  int values[];
  long l;
  S* next;
};
`)
	layout, err := BuildLayout(unit)
	require.NoError(t, err)

	record := layout.Records["S"]
	require.Len(t, record.Fields, 4)

	// array and pointer fields rank above every scalar (packWeight),
	// so they land first in the packed field order.
	require.Equal(t, "values", record.Fields[0].Field.Name)
	require.Equal(t, "next", record.Fields[1].Field.Name)
	require.Equal(t, "l", record.Fields[2].Field.Name)
	require.Equal(t, "c", record.Fields[3].Field.Name)

	require.Equal(t, uint32(0), record.Fields[0].Offset)
	require.Equal(t, dejson.ArrayRefSize, int(record.Fields[0].Size))
}

func TestBuildLayoutEmbeddedRecordExactSize(t *testing.T) {
	unit := mustParse(t, `
struct Point { int x; int y; };
struct Line { Point a; Point b; };
`)
	layout, err := BuildLayout(unit)
	require.NoError(t, err)

	point := layout.Records["Point"]
	require.Equal(t, uint32(8), point.Size)

	line := layout.Records["Line"]
	require.Len(t, line.Fields, 2)
	for _, f := range line.Fields {
		require.Equal(t, dejson.TypeRecord, f.Tag)
		require.Equal(t, point.Size, f.Size)
		require.Equal(t, point.Alignment, f.Alignment)
	}
}

func TestBuildLayoutCircularEmbedRejected(t *testing.T) {
	unit := mustParse(t, `
struct A { B b; };
struct B { A a; };
`)
	_, err := BuildLayout(unit)
	require.ErrorContains(t, err, "circular embedded record reference")
}

func TestBuildLayoutUndeclaredEmbedRejected(t *testing.T) {
	unit := &schemalang.Unit{Records: []schemalang.Record{
		{Name: "A", Fields: []schemalang.Field{
			{Name: "b", Type: schemalang.FieldType{Name: "B", Attr: schemalang.Scalar}, Line: 1},
		}, Line: 1},
	}}
	_, err := BuildLayout(unit)
	require.ErrorContains(t, err, "unresolved or forward-referenced embedded record")
}

func TestGenerateRecordViewsScalarAndString(t *testing.T) {
	unit := mustParse(t, `
struct Person {
  int age;
  string name;
};
`)
	layout, err := BuildLayout(unit)
	require.NoError(t, err)

	src := GenerateRecordViews("model", layout)
	require.Contains(t, src, "package model")
	require.Contains(t, src, "type Person struct")
	require.Contains(t, src, "func (v Person) Age() int32")
	require.Contains(t, src, "func (v Person) Name() string")
	require.Contains(t, src, "dejson.GetInt32")
	require.Contains(t, src, "dejson.StringAt")
}

func TestGenerateRecordViewsArrayAndPointer(t *testing.T) {
	unit := mustParse(t, `
struct Node {
  int value;
  Node* next;
  int values[];
};
`)
	layout, err := BuildLayout(unit)
	require.NoError(t, err)

	src := GenerateRecordViews("model", layout)
	require.Contains(t, src, "func (v Node) Next() (Node, bool)")
	require.Contains(t, src, "func (v Node) ValuesLen() int")
	require.Contains(t, src, "func (v Node) ValuesAt(i int) int32")
	require.Contains(t, src, "dejson.GetPointerRef")
	require.Contains(t, src, "dejson.GetArrayRef")
}

func TestGenerateMetadataPreservesDeclarationOrder(t *testing.T) {
	unit := mustParse(t, `
struct S {
  char c;
  int values[];
  long l;
};
`)
	layout, err := BuildLayout(unit)
	require.NoError(t, err)

	record := layout.Records["S"]
	// packFields ranks the array field first (packWeight); declaration
	// order must not follow that reordering in the emitted metadata table.
	require.Equal(t, "values", record.Fields[0].Field.Name)
	require.Equal(t, "c", record.DeclaredFields[0].Field.Name)
	require.Equal(t, "values", record.DeclaredFields[1].Field.Name)
	require.Equal(t, "l", record.DeclaredFields[2].Field.Name)

	src := GenerateMetadata("model", layout)
	cIdx := strings.Index(src, "// c\n")
	valuesIdx := strings.Index(src, "// values\n")
	lIdx := strings.Index(src, "// l\n")
	require.True(t, cIdx >= 0 && valuesIdx >= 0 && lIdx >= 0)
	require.Less(t, cIdx, valuesIdx)
	require.Less(t, valuesIdx, lIdx)
}

func TestGenerateMetadataAndResolver(t *testing.T) {
	unit := mustParse(t, `
struct Point { int x; int y; };
`)
	layout, err := BuildLayout(unit)
	require.NoError(t, err)

	src := GenerateMetadata("model", layout)
	require.Contains(t, src, "package model")
	require.Contains(t, src, "var PointMeta = dejson.RecordMeta{")
	require.Contains(t, src, "type Records struct{}")
	require.Contains(t, src, "func (Records) Resolve(hash uint32) *dejson.RecordMeta {")
	require.Contains(t, src, "return &PointMeta")
}
