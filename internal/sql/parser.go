package sql

import "fmt"

// parser is a recursive-descent parser over a pre-lexed token stream.
// Exactly one statement is accepted per Parse call (spec.md §4.2); a
// trailing semicolon is permitted but not required.
type parser struct {
	toks []Token
	pos  int
}

// Parse lexes and parses a single SQL statement.
func Parse(src string) (Statement, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.parseStatement()
}

func (p *parser) cur() Token  { return p.toks[p.pos] }
func (p *parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func tokenDesc(t Token) string {
	switch t.Kind {
	case TokEOF:
		return "end of input"
	case TokIdent:
		return fmt.Sprintf("identifier %q", t.Text)
	case TokString:
		return fmt.Sprintf("string literal %q", t.Text)
	case TokInt, TokFloat:
		return fmt.Sprintf("number %q", t.Text)
	default:
		if t.Text != "" {
			return fmt.Sprintf("%q", t.Text)
		}
		return "token"
	}
}

func (p *parser) errExpected(expected string) error {
	return &ParseError{Pos: p.cur().Pos, Found: tokenDesc(p.cur()), Expected: expected}
}

func (p *parser) expect(kind TokenKind, expected string) (Token, error) {
	if p.cur().Kind != kind {
		return Token{}, p.errExpected(expected)
	}
	return p.advance(), nil
}

func (p *parser) at(kind TokenKind) bool { return p.cur().Kind == kind }

func (p *parser) parseStatement() (Statement, error) {
	var stmt Statement
	var err error

	switch p.cur().Kind {
	case TokCreate:
		stmt, err = p.parseCreateTable()
	case TokDrop:
		stmt, err = p.parseDropTable()
	case TokInsert:
		stmt, err = p.parseInsert()
	case TokSelect:
		stmt, err = p.parseSelect()
	case TokUpdate:
		stmt, err = p.parseUpdate()
	case TokDelete:
		stmt, err = p.parseDelete()
	case TokEOF:
		return nil, &ParseError{Pos: p.cur().Pos, Found: "end of input", Expected: "a statement"}
	default:
		return nil, p.errExpected("CREATE, DROP, INSERT, SELECT, UPDATE, or DELETE")
	}
	if err != nil {
		return nil, err
	}

	if p.at(TokSemicolon) {
		p.advance()
	}
	if !p.at(TokEOF) {
		return nil, p.errExpected("end of statement")
	}
	return stmt, nil
}

// parseName accepts a plain identifier as a name. Table and
// column names are never keywords in this dialect.
func (p *parser) parseName() (string, error) {
	tok, err := p.expect(TokIdent, "an identifier")
	if err != nil {
		return "", err
	}
	return tok.Text, nil
}

// parseQualifiedName parses `name` or `name.name`.
func (p *parser) parseQualifiedName() (qualifier string, name string, err error) {
	first, err := p.parseName()
	if err != nil {
		return "", "", err
	}
	if p.at(TokDot) {
		p.advance()
		second, err := p.parseName()
		if err != nil {
			return "", "", err
		}
		return first, second, nil
	}
	return "", first, nil
}

func (p *parser) parseLiteral() (Value, error) {
	tok := p.cur()
	switch tok.Kind {
	case TokInt:
		p.advance()
		return IntValue(tok.I), nil
	case TokFloat:
		p.advance()
		return FloatValue(tok.F), nil
	case TokString:
		p.advance()
		return TextValue(tok.Text), nil
	case TokTrue:
		p.advance()
		return BoolValue(true), nil
	case TokFalse:
		p.advance()
		return BoolValue(false), nil
	case TokNull:
		p.advance()
		return Null, nil
	default:
		return Value{}, p.errExpected("a literal")
	}
}
