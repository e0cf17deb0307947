package schemalang

import (
	"fmt"

	"github.com/leiradel/dejson/internal/lexer"
)

// Parser is a recursive-descent parser over the token stream produced by
// internal/lexer, building a Unit per spec.md §4.2. It reports errors as
// "<line>: <message>" Go errors returned up the call stack, the idiomatic
// replacement for the original's setjmp/longjmp rollback.
type Parser struct {
	lex *lexer.Lexer
	tok lexer.Token
}

// Parse parses a full schema source into a Unit.
func Parse(src []byte) (*Unit, error) {
	p := &Parser{lex: lexer.New(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	unit := &Unit{}
	for p.tok.Kind == lexer.Struct {
		record, err := p.parseStruct()
		if err != nil {
			return nil, err
		}
		if _, exists := unit.RecordByName(record.Name); exists {
			return nil, p.errorAt(record.Line, "duplicate record name %q", record.Name)
		}
		unit.Records = append(unit.Records, record)
	}

	if p.tok.Kind != lexer.EOF {
		return nil, p.errorf("unexpected %s, expected struct or end of input", describe(p.tok))
	}

	return unit, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) expect(kind lexer.Kind) error {
	if p.tok.Kind != kind {
		return p.errorf("%s expected, got %s", kind, describe(p.tok))
	}
	return p.advance()
}

func describe(tok lexer.Token) string {
	if tok.Kind == lexer.Identifier || tok.Kind == lexer.Number || tok.Kind == lexer.String {
		return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
	}
	return tok.Kind.String()
}

func (p *Parser) errorf(format string, args ...any) error {
	return p.errorAt(p.tok.Line, format, args...)
}

func (p *Parser) errorAt(line int, format string, args ...any) error {
	return fmt.Errorf("%d: %s", line, fmt.Sprintf(format, args...))
}

func (p *Parser) parseStruct() (Record, error) {
	line := p.tok.Line
	if err := p.expect(lexer.Struct); err != nil {
		return Record{}, err
	}

	if p.tok.Kind != lexer.Identifier {
		return Record{}, p.errorf("identifier expected, got %s", describe(p.tok))
	}
	name := p.tok.Text
	if err := p.advance(); err != nil {
		return Record{}, err
	}

	if err := p.expect(lexer.LBrace); err != nil {
		return Record{}, err
	}

	record := Record{Name: name, Line: line}
	for {
		field, err := p.parseStructField()
		if err != nil {
			return Record{}, err
		}
		for _, existing := range record.Fields {
			if existing.Name == field.Name {
				return Record{}, p.errorAt(field.Line, "duplicate field name %q in struct %q", field.Name, name)
			}
		}
		record.Fields = append(record.Fields, field)

		if p.tok.Kind == lexer.RBrace {
			break
		}
	}

	if err := p.expect(lexer.RBrace); err != nil {
		return Record{}, err
	}
	if err := p.expect(lexer.Semicolon); err != nil {
		return Record{}, err
	}

	return record, nil
}

func (p *Parser) parseType() (FieldType, error) {
	var ft FieldType
	isSigned := false
	isUnsigned := false

	if p.tok.Kind == lexer.Signed {
		isSigned = true
		if err := p.advance(); err != nil {
			return ft, err
		}
	} else if p.tok.Kind == lexer.Unsigned {
		isUnsigned = true
		if err := p.advance(); err != nil {
			return ft, err
		}
	}

	if p.tok.Kind == lexer.Signed {
		if isSigned {
			return ft, p.errorf("duplicate 'signed'")
		}
		return ft, p.errorf("'signed' and 'unsigned' specified together")
	}
	if p.tok.Kind == lexer.Unsigned {
		if isUnsigned {
			return ft, p.errorf("duplicate 'unsigned'")
		}
		return ft, p.errorf("'signed' and 'unsigned' specified together")
	}

	switch p.tok.Kind {
	case lexer.Char, lexer.Short, lexer.Int, lexer.Long:
		ft.Native = true
		ft.Kind = nativeKindOf(p.tok.Kind)
		ft.Unsigned = isUnsigned
		ft.Name = p.tok.Kind.String()
		if err := p.advance(); err != nil {
			return ft, err
		}

	case lexer.Int8, lexer.Int16, lexer.Int32, lexer.Int64,
		lexer.Uint8, lexer.Uint16, lexer.Uint32, lexer.Uint64,
		lexer.Float, lexer.Double, lexer.Bool, lexer.StringType:
		if isSigned || isUnsigned {
			return ft, p.errorf("'signed' or 'unsigned' invalid for %s", p.tok.Kind)
		}
		ft.Native = true
		ft.Kind = nativeKindOf(p.tok.Kind)
		ft.Name = p.tok.Kind.String()
		if err := p.advance(); err != nil {
			return ft, err
		}

	case lexer.Identifier:
		if isSigned || isUnsigned {
			ft.Native = true
			ft.Kind = KindInt
			ft.Unsigned = isUnsigned
			ft.Name = "int"
		} else {
			ft.Native = false
			ft.Name = p.tok.Text
			if err := p.advance(); err != nil {
				return ft, err
			}
		}

	default:
		if isSigned || isUnsigned {
			ft.Native = true
			ft.Kind = KindInt
			ft.Unsigned = isUnsigned
			ft.Name = "int"
		} else {
			return ft, p.errorf("type or identifier expected, got %s", describe(p.tok))
		}
	}

	if p.tok.Kind == lexer.Star {
		ft.Attr = Pointer
		if err := p.advance(); err != nil {
			return ft, err
		}
	} else {
		ft.Attr = Scalar
	}

	return ft, nil
}

func (p *Parser) parseStructField() (Field, error) {
	line := p.tok.Line
	ft, err := p.parseType()
	if err != nil {
		return Field{}, err
	}

	if p.tok.Kind != lexer.Identifier {
		return Field{}, p.errorf("identifier expected, got %s", describe(p.tok))
	}
	name := p.tok.Text
	if err := p.advance(); err != nil {
		return Field{}, err
	}

	if p.tok.Kind == lexer.LBracket {
		if ft.Attr != Scalar {
			return Field{}, p.errorf("arrays of pointers are not supported")
		}
		if err := p.advance(); err != nil {
			return Field{}, err
		}
		if err := p.expect(lexer.RBracket); err != nil {
			return Field{}, err
		}
		ft.Attr = Array
	}

	if err := p.expect(lexer.Semicolon); err != nil {
		return Field{}, err
	}

	return Field{Name: name, Type: ft, Line: line}, nil
}

func nativeKindOf(k lexer.Kind) NativeKind {
	switch k {
	case lexer.Char:
		return KindChar
	case lexer.Short:
		return KindShort
	case lexer.Int:
		return KindInt
	case lexer.Long:
		return KindLong
	case lexer.Int8:
		return KindInt8
	case lexer.Int16:
		return KindInt16
	case lexer.Int32:
		return KindInt32
	case lexer.Int64:
		return KindInt64
	case lexer.Uint8:
		return KindUint8
	case lexer.Uint16:
		return KindUint16
	case lexer.Uint32:
		return KindUint32
	case lexer.Uint64:
		return KindUint64
	case lexer.Float:
		return KindFloat
	case lexer.Double:
		return KindDouble
	case lexer.Bool:
		return KindBool
	case lexer.StringType:
		return KindString
	}
	panic(fmt.Sprintf("schemalang: not a native type kind: %v", k))
}
