package sql

// parseCreateTable parses:
//
//	CREATE TABLE name (col type [constraints], ...)
func (p *parser) parseCreateTable() (Statement, error) {
	p.advance() // CREATE
	if _, err := p.expect(TokTable, "TABLE"); err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLParen, "'('"); err != nil {
		return nil, err
	}

	var cols []Column
	seen := map[string]bool{}
	for {
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		if seen[col.Name] {
			return nil, &ParseError{Pos: p.cur().Pos, Found: "duplicate column " + col.Name}
		}
		seen[col.Name] = true
		cols = append(cols, col)

		if p.at(TokComma) {
			p.advance()
			continue
		}
		break
	}

	if _, err := p.expect(TokRParen, "')'"); err != nil {
		return nil, err
	}

	return &CreateTableStmt{TableName: name, Columns: cols}, nil
}

func (p *parser) parseColumnDef() (Column, error) {
	name, err := p.parseName()
	if err != nil {
		return Column{}, err
	}

	var dt DataType
	switch p.cur().Kind {
	case TokInteger:
		dt = TypeInteger
	case TokFloatKw:
		dt = TypeFloat
	case TokText:
		dt = TypeText
	case TokBoolean:
		dt = TypeBoolean
	default:
		return Column{}, p.errExpected("a column type")
	}
	p.advance()

	col := Column{Name: name, Type: dt}
	for {
		switch p.cur().Kind {
		case TokPrimary:
			p.advance()
			if _, err := p.expect(TokKey, "KEY"); err != nil {
				return Column{}, err
			}
			col.PrimaryKey = true
			col.Unique = true
			col.NotNull = true
		case TokUnique:
			p.advance()
			col.Unique = true
		case TokNot:
			p.advance()
			if _, err := p.expect(TokNull, "NULL"); err != nil {
				return Column{}, err
			}
			col.NotNull = true
		default:
			return col, nil
		}
	}
}

// parseDropTable parses `DROP TABLE name`.
func (p *parser) parseDropTable() (Statement, error) {
	p.advance() // DROP
	if _, err := p.expect(TokTable, "TABLE"); err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &DropTableStmt{TableName: name}, nil
}
