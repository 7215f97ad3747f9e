package sql

import (
	"fmt"
	"strings"
)

// TokenKind classifies one lexed token.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokIdent
	TokInt
	TokFloat
	TokString

	// Punctuation
	TokEq        // =
	TokNotEq     // <> or !=
	TokLt        // <
	TokLe        // <=
	TokGt        // >
	TokGe        // >=
	TokLParen    // (
	TokRParen    // )
	TokComma     // ,
	TokSemicolon // ;
	TokDot       // .
	TokStar      // *

	// Keywords
	TokSelect
	TokFrom
	TokWhere
	TokAnd
	TokOr
	TokNot
	TokInsert
	TokInto
	TokValues
	TokUpdate
	TokSet
	TokDelete
	TokCreate
	TokTable
	TokDrop
	TokPrimary
	TokKey
	TokUnique
	TokNull
	TokInteger
	TokText
	TokFloatKw
	TokBoolean
	TokJoin
	TokInner
	TokOn
	TokOrder
	TokBy
	TokAsc
	TokDesc
	TokLimit
	TokTrue
	TokFalse
)

var keywords = map[string]TokenKind{
	"SELECT":  TokSelect,
	"FROM":    TokFrom,
	"WHERE":   TokWhere,
	"AND":     TokAnd,
	"OR":      TokOr,
	"NOT":     TokNot,
	"INSERT":  TokInsert,
	"INTO":    TokInto,
	"VALUES":  TokValues,
	"UPDATE":  TokUpdate,
	"SET":     TokSet,
	"DELETE":  TokDelete,
	"CREATE":  TokCreate,
	"TABLE":   TokTable,
	"DROP":    TokDrop,
	"PRIMARY": TokPrimary,
	"KEY":     TokKey,
	"UNIQUE":  TokUnique,
	"NULL":    TokNull,
	"INTEGER": TokInteger,
	"TEXT":    TokText,
	"FLOAT":   TokFloatKw,
	"BOOLEAN": TokBoolean,
	"JOIN":    TokJoin,
	"INNER":   TokInner,
	"ON":      TokOn,
	"ORDER":   TokOrder,
	"BY":      TokBy,
	"ASC":     TokAsc,
	"DESC":    TokDesc,
	"LIMIT":   TokLimit,
	"TRUE":    TokTrue,
	"FALSE":   TokFalse,
}

// Token is one lexed unit, with the byte offset it started at.
type Token struct {
	Kind TokenKind
	Text string // identifier text, or the literal's source text
	I    int64
	F    float64
	Pos  int
}

// LexError reports malformed source text.
type LexError struct {
	Pos int
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at offset %d: %s", e.Pos, e.Msg)
}

// Lex tokenizes src into a token stream terminated by a TokEOF token.
func Lex(src string) ([]Token, error) {
	l := &lexer{src: src}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			return toks, nil
		}
	}
}

type lexer struct {
	src string
	pos int
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

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func (l *lexer) skipWhitespaceAndComments() {
	for {
		for l.pos < len(l.src) {
			b := l.src[l.pos]
			if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
				l.pos++
				continue
			}
			break
		}
		if l.pos+1 < len(l.src) && l.src[l.pos] == '-' && l.src[l.pos+1] == '-' {
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		return
	}
}

func (l *lexer) next() (Token, error) {
	l.skipWhitespaceAndComments()

	start := l.pos
	b, ok := l.peekByte()
	if !ok {
		return Token{Kind: TokEOF, Pos: start}, nil
	}

	switch {
	case isIdentStart(b):
		return l.lexIdent(start), nil
	case isDigit(b):
		return l.lexNumber(start)
	case b == '\'':
		return l.lexString(start)
	}

	switch b {
	case '(':
		l.pos++
		return Token{Kind: TokLParen, Pos: start}, nil
	case ')':
		l.pos++
		return Token{Kind: TokRParen, Pos: start}, nil
	case ',':
		l.pos++
		return Token{Kind: TokComma, Pos: start}, nil
	case ';':
		l.pos++
		return Token{Kind: TokSemicolon, Pos: start}, nil
	case '.':
		l.pos++
		return Token{Kind: TokDot, Pos: start}, nil
	case '*':
		l.pos++
		return Token{Kind: TokStar, Pos: start}, nil
	case '=':
		l.pos++
		return Token{Kind: TokEq, Pos: start}, nil
	case '<':
		l.pos++
		if p, ok := l.peekByte(); ok && p == '>' {
			l.pos++
			return Token{Kind: TokNotEq, Pos: start}, nil
		}
		if p, ok := l.peekByte(); ok && p == '=' {
			l.pos++
			return Token{Kind: TokLe, Pos: start}, nil
		}
		return Token{Kind: TokLt, Pos: start}, nil
	case '>':
		l.pos++
		if p, ok := l.peekByte(); ok && p == '=' {
			l.pos++
			return Token{Kind: TokGe, Pos: start}, nil
		}
		return Token{Kind: TokGt, Pos: start}, nil
	case '!':
		l.pos++
		if p, ok := l.peekByte(); ok && p == '=' {
			l.pos++
			return Token{Kind: TokNotEq, Pos: start}, nil
		}
		return Token{}, &LexError{Pos: start, Msg: "expected '=' after '!'"}
	}

	return Token{}, &LexError{Pos: start, Msg: fmt.Sprintf("unexpected character %q", b)}
}

func (l *lexer) lexIdent(start int) Token {
	l.pos++
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	text := l.src[start:l.pos]
	if kw, ok := keywords[strings.ToUpper(text)]; ok {
		return Token{Kind: kw, Text: text, Pos: start}
	}
	return Token{Kind: TokIdent, Text: text, Pos: start}
}

func (l *lexer) lexNumber(start int) (Token, error) {
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	isFloat := false
	if l.pos < len(l.src) && l.src[l.pos] == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		save := l.pos
		p := l.pos + 1
		if p < len(l.src) && (l.src[p] == '+' || l.src[p] == '-') {
			p++
		}
		if p < len(l.src) && isDigit(l.src[p]) {
			isFloat = true
			l.pos = p
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}

	text := l.src[start:l.pos]
	if isFloat {
		var f float64
		if _, err := fmt.Sscanf(text, "%g", &f); err != nil {
			return Token{}, &LexError{Pos: start, Msg: fmt.Sprintf("invalid float literal %q", text)}
		}
		return Token{Kind: TokFloat, Text: text, F: f, Pos: start}, nil
	}
	var i int64
	if _, err := fmt.Sscanf(text, "%d", &i); err != nil {
		return Token{}, &LexError{Pos: start, Msg: fmt.Sprintf("invalid integer literal %q", text)}
	}
	return Token{Kind: TokInt, Text: text, I: i, Pos: start}, nil
}

// lexString reads a single-quoted string literal, where '' is an escaped
// embedded quote.
func (l *lexer) lexString(start int) (Token, error) {
	l.pos++ // skip opening quote
	var sb strings.Builder
	for {
		if l.pos >= len(l.src) {
			return Token{}, &LexError{Pos: start, Msg: "unterminated string literal"}
		}
		b := l.src[l.pos]
		if b == '\'' {
			if l.pos+1 < len(l.src) && l.src[l.pos+1] == '\'' {
				sb.WriteByte('\'')
				l.pos += 2
				continue
			}
			l.pos++
			return Token{Kind: TokString, Text: sb.String(), Pos: start}, nil
		}
		sb.WriteByte(b)
		l.pos++
	}
}
