package parse

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/jbester/sig/src/serrors"
)

var escapeCodes = map[rune]rune{
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
}

type lexer struct {
	rdr    *bufio.Reader
	peeked *token
	LineInfo
}

func newLexer(src string) *lexer {
	return &lexer{
		LineInfo: LineInfo{Line: 1},
		rdr:      bufio.NewReader(strings.NewReader(src)),
	}
}

func (lex *lexer) errf(msg string, data ...any) error {
	return lex.err(fmt.Errorf(msg, data...))
}

func (lex *lexer) err(err error) error {
	if errors.Is(err, io.EOF) {
		return err
	}
	return &serrors.Error{
		Kind:   serrors.ParseErr,
		Line:   lex.Line,
		Column: lex.Column,
		Err:    err,
	}
}

func (lex *lexer) peek() rune {
	chs, _ := lex.rdr.Peek(1)
	if len(chs) == 0 {
		return 0
	}
	return rune(chs[0])
}

func (lex *lexer) next() (rune, error) {
	ch, _, err := lex.rdr.ReadRune()
	if err != nil {
		return ch, lex.err(err)
	}
	if ch == '\n' || ch == '\r' {
		lex.Line++
		lex.Column = 0
	}
	lex.Column++
	return ch, nil
}

func (lex *lexer) skipWhitespace() error {
	for {
		if ch := lex.peek(); ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			if _, err := lex.next(); err != nil {
				return err
			}
			continue
		}
		return nil
	}
}

func (lex *lexer) tokenVal(tk tokenType) (*token, error) {
	return &token{Kind: tk, LineInfo: lex.LineInfo}, nil
}

func (lex *lexer) Peek() (*token, error) {
	if lex.peeked == nil {
		tk, err := lex.Next()
		if err != nil {
			return &token{Kind: tokenEOS}, err
		}
		lex.peeked = tk
	}
	return lex.peeked, nil
}

func (lex *lexer) Next() (*token, error) {
	if lex.peeked != nil {
		top := lex.peeked
		lex.peeked = nil
		return top, nil
	}
	if err := lex.skipWhitespace(); err != nil {
		return nil, err
	}
	ch, err := lex.next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &token{Kind: tokenEOS, LineInfo: lex.LineInfo}, nil
		}
		return nil, err
	}
	switch {
	case ch == '|':
		return lex.tokenVal(tokenPipe)
	case ch == ',':
		return lex.tokenVal(tokenComma)
	case ch == ':':
		return lex.tokenVal(tokenColon)
	case ch == '-':
		return lex.tokenVal(tokenMinus)
	case ch == '(':
		return lex.tokenVal(tokenOpenParen)
	case ch == ')':
		return lex.tokenVal(tokenCloseParen)
	case ch == '[':
		return lex.tokenVal(tokenOpenBracket)
	case ch == ']':
		return lex.tokenVal(tokenCloseBracket)
	case ch == '"' || ch == '\'':
		return lex.parseString(ch)
	case unicode.IsDigit(ch):
		return lex.parseNumber(ch)
	case unicode.IsLetter(ch) || ch == '_':
		return lex.parseIdentifier(ch)
	default:
		return nil, lex.errf("unexpected character %v", string(ch))
	}
}

func (lex *lexer) parseString(delimiter rune) (*token, error) {
	linfo := lex.LineInfo
	var str bytes.Buffer
	for {
		ch, err := lex.next()
		if errors.Is(err, io.EOF) {
			return nil, lex.errf("unterminated string")
		} else if err != nil {
			return nil, err
		}
		if ch == delimiter {
			return &token{Kind: tokenString, StringVal: str.String(), LineInfo: linfo}, nil
		}
		if ch == '\\' {
			esc, err := lex.next()
			if err != nil {
				return nil, err
			}
			code, ok := escapeCodes[esc]
			if !ok {
				return nil, lex.errf("unknown escape code \\%v", string(esc))
			}
			ch = code
		}
		str.WriteRune(ch)
	}
}

func (lex *lexer) parseNumber(start rune) (*token, error) {
	linfo := lex.LineInfo
	var num bytes.Buffer
	num.WriteRune(start)
	isFloat := false
	for {
		ch := lex.peek()
		if unicode.IsDigit(ch) || ch == '.' || ch == 'e' || ch == 'E' {
			isFloat = isFloat || ch == '.' || ch == 'e' || ch == 'E'
			if _, err := lex.next(); err != nil {
				return nil, err
			}
			num.WriteRune(ch)
			if (ch == 'e' || ch == 'E') && (lex.peek() == '-' || lex.peek() == '+') {
				sign, err := lex.next()
				if err != nil {
					return nil, err
				}
				num.WriteRune(sign)
			}
			continue
		}
		break
	}
	if isFloat {
		fval, err := strconv.ParseFloat(num.String(), 64)
		if err != nil {
			return nil, lex.errf("malformed number %v", num.String())
		}
		return &token{Kind: tokenFloat, FloatVal: fval, LineInfo: linfo}, nil
	}
	ival, err := strconv.ParseInt(num.String(), 10, 64)
	if err != nil {
		return nil, lex.errf("malformed number %v", num.String())
	}
	return &token{Kind: tokenInteger, IntVal: ival, LineInfo: linfo}, nil
}

func (lex *lexer) parseIdentifier(start rune) (*token, error) {
	linfo := lex.LineInfo
	var ident bytes.Buffer
	ident.WriteRune(start)
	for {
		if ch := lex.peek(); unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' {
			if _, err := lex.next(); err != nil {
				return nil, err
			}
			ident.WriteRune(ch)
			continue
		}
		break
	}
	return &token{Kind: tokenIdentifier, StringVal: ident.String(), LineInfo: linfo}, nil
}
