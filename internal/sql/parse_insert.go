package sql

// parseInsert parses:
//
//	INSERT INTO name [(col, ...)] VALUES (literal, ...)
func (p *parser) parseInsert() (Statement, error) {
	p.advance() // INSERT
	if _, err := p.expect(TokInto, "INTO"); err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	var cols []string
	if p.at(TokLParen) {
		p.advance()
		for {
			c, err := p.parseName()
			if err != nil {
				return nil, err
			}
			cols = append(cols, c)
			if p.at(TokComma) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(TokRParen, "')'"); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokValues, "VALUES"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLParen, "'('"); err != nil {
		return nil, err
	}

	var vals []Value
	for {
		v, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
		if p.at(TokComma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(TokRParen, "')'"); err != nil {
		return nil, err
	}

	return &InsertStmt{TableName: name, Columns: cols, Values: vals}, nil
}
