// Package parse implements the textual form of type descriptors along with
// the literal values that get checked against them. It powers the sig CLI and
// the registry file format.
//
// Descriptor expressions look like:
//
//	numeric
//	int | string
//	option(string)
//	list(tuple(numeric, string))
//
// Value literals look like:
//
//	nil  true  42  -3.5  "text"  [1, 2, 3]  (1, "a")
//
// List and tuple literals both produce a []any; which shapes they satisfy is
// decided by the descriptor they are checked against.
package parse

import (
	"fmt"
	"math/big"

	"github.com/jbester/sig/src/serrors"
	"github.com/jbester/sig/src/types"
)

type (
	// Resolver looks up descriptor names that are not builtin, letting a
	// registry of named descriptors extend the expression language.
	Resolver func(name string) (types.Descriptor, bool)
	// Parser parses descriptor expressions and value literals.
	Parser struct {
		resolve Resolver
	}
)

var builtins = map[string]types.Descriptor{
	"any":      types.Any,
	"numeric":  types.Numeric,
	"int":      types.For[int](),
	"int8":     types.For[int8](),
	"int16":    types.For[int16](),
	"int32":    types.For[int32](),
	"int64":    types.For[int64](),
	"uint":     types.For[uint](),
	"uint8":    types.For[uint8](),
	"uint16":   types.For[uint16](),
	"uint32":   types.For[uint32](),
	"uint64":   types.For[uint64](),
	"float":    types.For[float64](),
	"float32":  types.For[float32](),
	"float64":  types.For[float64](),
	"string":   types.For[string](),
	"bool":     types.For[bool](),
	"bigint":   types.For[*big.Int](),
	"bigfloat": types.For[*big.Float](),
	"bigrat":   types.For[*big.Rat](),
}

// New returns a parser that consults resolve for descriptor names that are
// not builtin. A nil resolver restricts expressions to the builtin names.
func New(resolve Resolver) *Parser { return &Parser{resolve: resolve} }

// Descriptor parses a descriptor expression using only builtin names.
func Descriptor(src string) (types.Descriptor, error) { return New(nil).Descriptor(src) }

// Value parses a literal value.
func Value(src string) (any, error) { return New(nil).Value(src) }

// Descriptor parses a full descriptor expression.
func (p *Parser) Descriptor(src string) (types.Descriptor, error) {
	lex := newLexer(src)
	defn, err := p.union(lex)
	if err != nil {
		return nil, err
	}
	return defn, expectEOS(lex)
}

// Value parses a full literal value.
func (p *Parser) Value(src string) (any, error) {
	lex := newLexer(src)
	val, err := p.value(lex)
	if err != nil {
		return nil, err
	}
	return val, expectEOS(lex)
}

// CheckLine parses a "value : descriptor" line and returns both sides so the
// caller can check and report them.
func (p *Parser) CheckLine(src string) (any, types.Descriptor, error) {
	lex := newLexer(src)
	val, err := p.value(lex)
	if err != nil {
		return nil, nil, err
	}
	if err := expect(lex, tokenColon); err != nil {
		return nil, nil, err
	}
	defn, err := p.union(lex)
	if err != nil {
		return nil, nil, err
	}
	return val, defn, expectEOS(lex)
}

func (p *Parser) union(lex *lexer) (types.Descriptor, error) {
	defn, err := p.term(lex)
	if err != nil {
		return nil, err
	}
	members := []any{defn}
	for {
		tk, err := lex.Peek()
		if err != nil {
			return nil, err
		} else if tk.Kind != tokenPipe {
			break
		}
		if _, err := lex.Next(); err != nil {
			return nil, err
		}
		member, err := p.term(lex)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	if len(members) == 1 {
		return defn, nil
	}
	return types.Union(members...), nil
}

func (p *Parser) term(lex *lexer) (types.Descriptor, error) {
	tk, err := lex.Next()
	if err != nil {
		return nil, err
	} else if tk.Kind != tokenIdentifier {
		return nil, perrf(tk, "expected a type name but found %v", tk.Kind)
	}

	switch tk.StringVal {
	case "option":
		defns, err := p.parens(lex)
		if err != nil {
			return nil, err
		} else if len(defns) != 1 {
			return nil, perrf(tk, "option takes exactly one type but found %v", len(defns))
		}
		return types.Optional(defns[0]), nil
	case "list":
		defns, err := p.parens(lex)
		if err != nil {
			return nil, err
		} else if len(defns) != 1 {
			return nil, perrf(tk, "list takes exactly one type but found %v", len(defns))
		}
		return types.ListOf(defns[0]), nil
	case "tuple":
		defns, err := p.parens(lex)
		if err != nil {
			return nil, err
		}
		return types.TupleOf(defns...), nil
	default:
		if defn, ok := builtins[tk.StringVal]; ok {
			return defn, nil
		}
		if p.resolve != nil {
			if defn, ok := p.resolve(tk.StringVal); ok {
				return defn, nil
			}
		}
		return nil, perrf(tk, "unknown type name %v", tk.StringVal)
	}
}

func (p *Parser) parens(lex *lexer) ([]any, error) {
	if err := expect(lex, tokenOpenParen); err != nil {
		return nil, err
	}
	defns := []any{}
	tk, err := lex.Peek()
	if err != nil {
		return nil, err
	} else if tk.Kind == tokenCloseParen {
		_, err := lex.Next()
		return defns, err
	}
	for {
		defn, err := p.union(lex)
		if err != nil {
			return nil, err
		}
		defns = append(defns, defn)
		tk, err := lex.Next()
		if err != nil {
			return nil, err
		} else if tk.Kind == tokenCloseParen {
			return defns, nil
		} else if tk.Kind != tokenComma {
			return nil, perrf(tk, "expected , or ) but found %v", tk.Kind)
		}
	}
}

func (p *Parser) value(lex *lexer) (any, error) {
	tk, err := lex.Next()
	if err != nil {
		return nil, err
	}
	switch tk.Kind {
	case tokenString:
		return tk.StringVal, nil
	case tokenInteger:
		return int(tk.IntVal), nil
	case tokenFloat:
		return tk.FloatVal, nil
	case tokenMinus:
		num, err := lex.Next()
		if err != nil {
			return nil, err
		} else if num.Kind == tokenInteger {
			return int(-num.IntVal), nil
		} else if num.Kind == tokenFloat {
			return -num.FloatVal, nil
		}
		return nil, perrf(num, "expected a number after - but found %v", num.Kind)
	case tokenIdentifier:
		switch tk.StringVal {
		case "nil":
			return nil, nil
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, perrf(tk, "unknown value %v", tk.StringVal)
		}
	case tokenOpenBracket:
		return p.seq(lex, tokenCloseBracket)
	case tokenOpenParen:
		return p.seq(lex, tokenCloseParen)
	default:
		return nil, perrf(tk, "expected a value but found %v", tk.Kind)
	}
}

func (p *Parser) seq(lex *lexer, closer tokenType) (any, error) {
	vals := []any{}
	tk, err := lex.Peek()
	if err != nil {
		return nil, err
	} else if tk.Kind == closer {
		_, err := lex.Next()
		return vals, err
	}
	for {
		val, err := p.value(lex)
		if err != nil {
			return nil, err
		}
		vals = append(vals, val)
		tk, err := lex.Next()
		if err != nil {
			return nil, err
		} else if tk.Kind == closer {
			return vals, nil
		} else if tk.Kind != tokenComma {
			return nil, perrf(tk, "expected , or %v but found %v", closer, tk.Kind)
		}
	}
}

func expect(lex *lexer, kind tokenType) error {
	tk, err := lex.Next()
	if err != nil {
		return err
	} else if tk.Kind != kind {
		return perrf(tk, "expected %v but found %v", kind, tk.Kind)
	}
	return nil
}

func expectEOS(lex *lexer) error {
	tk, err := lex.Next()
	if err != nil {
		return err
	} else if tk.Kind != tokenEOS {
		return perrf(tk, "unexpected trailing input %v", tk.Kind)
	}
	return nil
}

func perrf(tk *token, msg string, data ...any) error {
	return &serrors.Error{
		Kind:   serrors.ParseErr,
		Line:   tk.Line,
		Column: tk.Column,
		Err:    fmt.Errorf(msg, data...),
	}
}
