package sql

// parseSelect parses:
//
//	SELECT (* | item, ...) FROM table [alias] (JOIN table [alias] ON pred)*
//	  [WHERE pred] [ORDER BY col [ASC|DESC]] [LIMIT n]
func (p *parser) parseSelect() (Statement, error) {
	p.advance() // SELECT

	proj, err := p.parseProjection()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokFrom, "FROM"); err != nil {
		return nil, err
	}
	from, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}

	var joins []JoinClause
	for p.at(TokJoin) || p.at(TokInner) {
		if p.at(TokInner) {
			p.advance()
			if _, err := p.expect(TokJoin, "JOIN"); err != nil {
				return nil, err
			}
		} else {
			p.advance()
		}
		ref, err := p.parseTableRef()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokOn, "ON"); err != nil {
			return nil, err
		}
		on, err := p.parsePredicate()
		if err != nil {
			return nil, err
		}
		joins = append(joins, JoinClause{Table: ref, On: on})
	}

	var where Predicate
	if p.at(TokWhere) {
		p.advance()
		where, err = p.parsePredicate()
		if err != nil {
			return nil, err
		}
	}

	var orderBy *OrderBy
	if p.at(TokOrder) {
		p.advance()
		if _, err := p.expect(TokBy, "BY"); err != nil {
			return nil, err
		}
		table, col, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		desc := false
		if p.at(TokAsc) {
			p.advance()
		} else if p.at(TokDesc) {
			p.advance()
			desc = true
		}
		orderBy = &OrderBy{Table: table, Column: col, Desc: desc}
	}

	var limit *int64
	if p.at(TokLimit) {
		p.advance()
		tok, err := p.expect(TokInt, "a non-negative integer")
		if err != nil {
			return nil, err
		}
		if tok.I < 0 {
			return nil, &ParseError{Pos: tok.Pos, Found: "negative LIMIT", Expected: "a non-negative integer"}
		}
		limit = &tok.I
	}

	return &SelectStmt{
		Projection: proj,
		From:       from,
		Joins:      joins,
		Where:      where,
		OrderBy:    orderBy,
		Limit:      limit,
	}, nil
}

func (p *parser) parseProjection() ([]SelectItem, error) {
	if p.at(TokStar) {
		p.advance()
		return []SelectItem{{Star: true}}, nil
	}

	var items []SelectItem
	for {
		table, col, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		items = append(items, SelectItem{Table: table, Column: col})
		if p.at(TokComma) {
			p.advance()
			continue
		}
		break
	}
	return items, nil
}

func (p *parser) parseTableRef() (TableRef, error) {
	name, err := p.parseName()
	if err != nil {
		return TableRef{}, err
	}
	ref := TableRef{Name: name}
	if p.at(TokIdent) {
		alias, err := p.parseName()
		if err != nil {
			return TableRef{}, err
		}
		ref.Alias = alias
	}
	return ref, nil
}
