// Package parse implements the scanner, recursive-descent parser, and
// text reconstructor for the TChecker system-declaration grammar
// spec.md §3.1 fixes the node shapes of.
package parse

import (
	"io"

	"github.com/tamut/tamut/ast"
	"github.com/tamut/tamut/tckerr"
)

// keywords is the fixed set of reserved identifiers of the grammar.
var keywords = map[string]bool{
	"system": true, "process": true, "event": true, "clock": true,
	"int": true, "location": true, "edge": true, "sync": true,
	"initial": true, "urgent": true, "committed": true, "labels": true,
	"provided": true, "invariant": true, "do": true, "nop": true,
}

type token struct {
	kind ast.TokenKind
	text string
	pos  tckerr.Position
}

// lexer scans a TChecker source file byte-at-a-time, tracking row and
// column the way the teacher's driver/lexer read() method does:
// columns are counted in code points, so continuation bytes of a
// multi-byte rune (the top two bits 10) are skipped and only a
// sequence's leading byte advances the column.
type lexer struct {
	src    []byte
	pos    int
	row    int
	col    int
	peeked *token
}

func newLexer(r io.Reader) (*lexer, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &lexer{src: b, row: 1, col: 1}, nil
}

func (l *lexer) position() tckerr.Position {
	return tckerr.Position{Row: l.row, Col: l.col}
}

// advance consumes and returns the next raw byte, updating row/col.
func (l *lexer) advance() (byte, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.row++
		l.col = 1
	} else if b>>6 != 2 {
		// Not a UTF-8 continuation byte: this is the leading byte of
		// a code point (ASCII or a multi-byte sequence head), so it
		// is the one that advances the column count.
		l.col++
	}
	return b, true
}

func (l *lexer) peekByte() (byte, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// next scans and returns the next token, or the EOF token when the
// source is exhausted.
func (l *lexer) next() (*token, error) {
	if l.peeked != nil {
		t := l.peeked
		l.peeked = nil
		return t, nil
	}
	return l.scan()
}

func (l *lexer) peek() (*token, error) {
	if l.peeked == nil {
		t, err := l.scan()
		if err != nil {
			return nil, err
		}
		l.peeked = t
	}
	return l.peeked, nil
}

func (l *lexer) scan() (*token, error) {
	l.skipTrivia()
	pos := l.position()
	b, ok := l.peekByte()
	if !ok {
		return &token{kind: tokEOF, pos: pos}, nil
	}

	switch {
	case isIdentStart(b):
		return l.scanIdent(pos), nil
	case isDigit(b):
		return l.scanInt(pos), nil
	default:
		return l.scanPunct(pos)
	}
}

const tokEOF ast.TokenKind = "eof"

func (l *lexer) skipTrivia() {
	for {
		b, ok := l.peekByte()
		if !ok {
			return
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			l.advance()
			continue
		case '#':
			for {
				b, ok := l.peekByte()
				if !ok || b == '\n' {
					break
				}
				l.advance()
			}
			continue
		}
		return
	}
}

func (l *lexer) scanIdent(pos tckerr.Position) *token {
	start := l.pos
	for {
		b, ok := l.peekByte()
		if !ok || !isIdentPart(b) {
			break
		}
		l.advance()
	}
	text := string(l.src[start:l.pos])
	if keywords[text] {
		return &token{kind: ast.TokKeyword, text: text, pos: pos}
	}
	return &token{kind: ast.TokIdent, text: text, pos: pos}
}

func (l *lexer) scanInt(pos tckerr.Position) *token {
	start := l.pos
	for {
		b, ok := l.peekByte()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
	return &token{kind: ast.TokInt, text: string(l.src[start:l.pos]), pos: pos}
}

func (l *lexer) scanPunct(pos tckerr.Position) (*token, error) {
	b, _ := l.advance()
	two := func(next byte, kind ast.TokenKind, text string) (*token, bool) {
		if nb, ok := l.peekByte(); ok && nb == next {
			l.advance()
			return &token{kind: kind, text: text, pos: pos}, true
		}
		return nil, false
	}

	switch b {
	case ':':
		return &token{kind: ast.TokColon, text: ":", pos: pos}, nil
	case ',':
		return &token{kind: ast.TokComma, text: ",", pos: pos}, nil
	case '@':
		return &token{kind: ast.TokAt, text: "@", pos: pos}, nil
	case '?':
		return &token{kind: ast.TokQuery, text: "?", pos: pos}, nil
	case '{':
		return &token{kind: ast.TokLBrace, text: "{", pos: pos}, nil
	case '}':
		return &token{kind: ast.TokRBrace, text: "}", pos: pos}, nil
	case '[':
		return &token{kind: ast.TokLBracket, text: "[", pos: pos}, nil
	case ']':
		return &token{kind: ast.TokRBracket, text: "]", pos: pos}, nil
	case '+':
		return &token{kind: ast.TokPlus, text: "+", pos: pos}, nil
	case '-':
		return &token{kind: ast.TokMinus, text: "-", pos: pos}, nil
	case '=':
		if t, ok := two('=', ast.TokEQ, "=="); ok {
			return t, nil
		}
		return &token{kind: ast.TokAssign, text: "=", pos: pos}, nil
	case '<':
		if t, ok := two('=', ast.TokLE, "<="); ok {
			return t, nil
		}
		return &token{kind: ast.TokLT, text: "<", pos: pos}, nil
	case '>':
		if t, ok := two('=', ast.TokGE, ">="); ok {
			return t, nil
		}
		return &token{kind: ast.TokGT, text: ">", pos: pos}, nil
	case '!':
		if t, ok := two('=', ast.TokNE, "!="); ok {
			return t, nil
		}
		return nil, tckerr.New(pos, "unexpected character %q", b)
	case '&':
		if t, ok := two('&', ast.TokAnd, "&&"); ok {
			return t, nil
		}
		return nil, tckerr.New(pos, "unexpected character %q", b)
	}
	return nil, tckerr.New(pos, "unexpected character %q", b)
}
