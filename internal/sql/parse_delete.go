package sql

// parseDelete parses `DELETE FROM name [WHERE pred]`.
func (p *parser) parseDelete() (Statement, error) {
	p.advance() // DELETE
	if _, err := p.expect(TokFrom, "FROM"); err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	var where Predicate
	if p.at(TokWhere) {
		p.advance()
		where, err = p.parsePredicate()
		if err != nil {
			return nil, err
		}
	}

	return &DeleteStmt{TableName: name, Where: where}, nil
}
