package sql

// parseUpdate parses:
//
//	UPDATE name SET col = literal, ... [WHERE pred]
func (p *parser) parseUpdate() (Statement, error) {
	p.advance() // UPDATE
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokSet, "SET"); err != nil {
		return nil, err
	}

	var assigns []Assignment
	for {
		col, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokEq, "'='"); err != nil {
			return nil, err
		}
		val, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		assigns = append(assigns, Assignment{Column: col, Value: val})
		if p.at(TokComma) {
			p.advance()
			continue
		}
		break
	}

	var where Predicate
	if p.at(TokWhere) {
		p.advance()
		where, err = p.parsePredicate()
		if err != nil {
			return nil, err
		}
	}

	return &UpdateStmt{TableName: name, Assignments: assigns, Where: where}, nil
}
