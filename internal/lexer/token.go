// Package lexer tokenizes the record-definition schema language described
// by spec.md §4.1: a small struct/field grammar with C-like scalar type
// keywords, arrays, and pointers.
package lexer

// Kind identifies the category of a Token.
type Kind int

const (
	EOF Kind = iota
	Identifier
	Number
	String

	// Keywords.
	Struct
	Signed
	Unsigned
	Char
	Short
	Int
	Long
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float
	Double
	Bool
	StringType

	// Punctuation, each standing for exactly the rune it's named after.
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]
	Semicolon
	Lt
	Gt
	Star
)

var keywords = map[string]Kind{
	"struct":   Struct,
	"signed":   Signed,
	"unsigned": Unsigned,
	"char":     Char,
	"short":    Short,
	"int":      Int,
	"long":     Long,
	"int8_t":   Int8,
	"int16_t":  Int16,
	"int32_t":  Int32,
	"int64_t":  Int64,
	"uint8_t":  Uint8,
	"uint16_t": Uint16,
	"uint32_t": Uint32,
	"uint64_t": Uint64,
	"float":    Float,
	"double":   Double,
	"bool":     Bool,
	"string":   StringType,
}

var names = map[Kind]string{
	EOF:        "<eof>",
	Identifier: "identifier",
	Number:     "number",
	String:     "string",
	Struct:     "struct",
	Signed:     "signed",
	Unsigned:   "unsigned",
	Char:       "char",
	Short:      "short",
	Int:        "int",
	Long:       "long",
	Int8:       "int8_t",
	Int16:      "int16_t",
	Int32:      "int32_t",
	Int64:      "int64_t",
	Uint8:      "uint8_t",
	Uint16:     "uint16_t",
	Uint32:     "uint32_t",
	Uint64:     "uint64_t",
	Float:      "float",
	Double:     "double",
	Bool:       "bool",
	StringType: "string",
	LBrace:     "'{'",
	RBrace:     "'}'",
	LBracket:   "'['",
	RBracket:   "']'",
	Semicolon:  "';'",
	Lt:         "'<'",
	Gt:         "'>'",
	Star:       "'*'",
}

// String returns a human-readable name for k, used in parser diagnostics
// the same way the original formats Token::k* constants for error text.
func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return "<unknown>"
}

// IsNativeType reports whether k denotes one of the built-in scalar
// keywords (mirrors Parser::isNativeType; kSigned/kUnsigned alone are not
// native types, they modify char/short/int/long).
func (k Kind) IsNativeType() bool {
	switch k {
	case Float, Double, Int, Char, Short, Long, Int8, Int16, Int32, Int64,
		Uint8, Uint16, Uint32, Uint64, Bool, StringType:
		return true
	}
	return false
}

// Token is one lexical unit: its kind, literal text, and source line.
type Token struct {
	Kind Kind
	Text string
	Line int
}
