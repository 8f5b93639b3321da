package jsonpath

import "strconv"

// parser is a hand-written recursive-descent parser over the token
// stream produced by lexer, following the teacher's top-down style
// (parseqry.go) but consuming a pre-lexed token rather than scanning
// runes itself, per spec.md §2's split between components B and C.
//
// Precedence, loosest to tightest (spec.md §4.C):
//
//	expr := union := where ('|' where)*
//	where := descend ('where' descend)*
//	descend := child ('..' child)*
//	child := atom ('.' atom)*
type parser struct {
	lex   *lexer
	input string
	cur   token
}

// Parse compiles a JSONPath expression string into an AST. It returns a
// SyntaxError (lexical or grammatical) on malformed input.
func Parse(source string) (Node, error) {
	p := &parser{lex: newLexer(source), input: source}
	if err := p.advance(); err != nil {
		return nil, err
	}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, SyntaxError{"parser", "unexpected trailing input", source, p.cur.pos}
	}
	return node, nil
}

func (p *parser) advance() error {
	t, err := p.lex.lex()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *parser) expect(k tokenKind) error {
	if p.cur.kind != k {
		return SyntaxError{"parser", "expected " + k.String() + ", found " + p.cur.kind.String(), p.input, p.cur.pos}
	}
	return nil
}

func (p *parser) parseExpr() (Node, error) {
	return p.parseUnion()
}

func (p *parser) parseUnion() (Node, error) {
	left, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPipe {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseWhere()
		if err != nil {
			return nil, err
		}
		left = Union{L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseWhere() (Node, error) {
	left, err := p.parseDescend()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokWhere {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseDescend()
		if err != nil {
			return nil, err
		}
		left = Where{L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseDescend() (Node, error) {
	left, err := p.parseChild()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokDoubleDot {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseChild()
		if err != nil {
			return nil, err
		}
		left = Descendants{L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseChild() (Node, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.kind {
		case tokDot:
			if err := p.advance(); err != nil {
				return nil, err
			}
			right, err := p.parseAtom()
			if err != nil {
				return nil, err
			}
			left = Child{L: left, R: right}
		case tokLBracket:
			// A bracket form attaches directly to the preceding atom
			// with no '.' needed ("objects[0]", "objects[?cow]"),
			// matching the jsonpath-rw grammar's `value '[' ... ']'`
			// production.
			right, err := p.parseAtom()
			if err != nil {
				return nil, err
			}
			left = Child{L: left, R: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) parseAtom() (Node, error) {
	switch p.cur.kind {
	case tokDollar:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return Root{}, nil
	case tokAt:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return This{}, nil
	case tokStar:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return Fields{Names: []string{"*"}}, nil
	case tokNamedOperator:
		name := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return NamedOperator{Name: name}, nil
	case tokID:
		return p.parseFieldset()
	case tokLBracket:
		if err := p.advance(); err != nil {
			return nil, err
		}
		node, err := p.parseBracket()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRBracket); err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return node, nil
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		node, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return node, nil
	default:
		return nil, SyntaxError{"parser", "unexpected token " + p.cur.kind.String(), p.input, p.cur.pos}
	}
}

func (p *parser) parseFieldset() (Node, error) {
	names, err := p.parseIDList()
	if err != nil {
		return nil, err
	}
	return Fields{Names: names}, nil
}

func (p *parser) parseIDList() ([]string, error) {
	if err := p.expect(tokID); err != nil {
		return nil, err
	}
	names := []string{p.cur.text}
	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.cur.kind == tokComma {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(tokID); err != nil {
			return nil, err
		}
		names = append(names, p.cur.text)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return names, nil
}

// parseBracket parses the interior of '[' ... ']' without consuming the
// closing bracket, which the caller (parseAtom) consumes uniformly.
func (p *parser) parseBracket() (Node, error) {
	switch p.cur.kind {
	case tokNumber:
		n, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		if p.cur.kind == tokColon {
			return p.parseSliceFrom(&n)
		}
		return Index{Value: n}, nil
	case tokColon:
		return p.parseSliceFrom(nil)
	case tokStar:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return Slice{}, nil
	case tokQuestion:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parseFilterExpr()
	case tokSlash, tokBackslash:
		return p.parseSortKeys()
	case tokID:
		names, err := p.parseIDList()
		if err != nil {
			return nil, err
		}
		return Fields{Names: names}, nil
	default:
		return nil, SyntaxError{"parser", "unexpected token inside brackets: " + p.cur.kind.String(), p.input, p.cur.pos}
	}
}

func (p *parser) parseNumber() (int, error) {
	if err := p.expect(tokNumber); err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(p.cur.text)
	if err != nil {
		return 0, SyntaxError{"parser", "invalid integer literal " + p.cur.text, p.input, p.cur.pos}
	}
	if err := p.advance(); err != nil {
		return 0, err
	}
	return n, nil
}

func (p *parser) parseSliceFrom(start *int) (Node, error) {
	if err := p.expect(tokColon); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var end *int
	if p.cur.kind == tokNumber {
		n, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		end = &n
	}
	var step *int
	if p.cur.kind == tokColon {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.kind == tokNumber {
			n, err := p.parseNumber()
			if err != nil {
				return nil, err
			}
			step = &n
		}
	}
	return Slice{Start: start, End: end, Step: step}, nil
}

func (p *parser) parseFilterExpr() (Node, error) {
	var terms []FilterTerm
	for {
		term, err := p.parseFilterTerm()
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
		if p.cur.kind != tokAmp {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return Filter{Terms: terms}, nil
}

func (p *parser) parseFilterTerm() (FilterTerm, error) {
	path, err := p.parseDescend()
	if err != nil {
		return FilterTerm{}, err
	}
	op, ok := filterOpFor(p.cur.kind)
	if !ok {
		return FilterTerm{Path: path, Op: OpNone}, nil
	}
	if err := p.advance(); err != nil {
		return FilterTerm{}, err
	}
	lit, err := p.parseLiteral()
	if err != nil {
		return FilterTerm{}, err
	}
	return FilterTerm{Path: path, Op: op, Literal: lit}, nil
}

func filterOpFor(k tokenKind) (FilterOp, bool) {
	switch k {
	case tokEq:
		return OpEq, true
	case tokEqEq:
		return OpEqEq, true
	case tokLt:
		return OpLt, true
	case tokGt:
		return OpGt, true
	case tokLe:
		return OpLe, true
	case tokGe:
		return OpGe, true
	default:
		return OpNone, false
	}
}

func (p *parser) parseLiteral() (any, error) {
	switch p.cur.kind {
	case tokNumber:
		n, err := strconv.ParseFloat(p.cur.text, 64)
		if err != nil {
			return nil, SyntaxError{"parser", "invalid numeric literal " + p.cur.text, p.input, p.cur.pos}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return n, nil
	case tokID:
		s := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, SyntaxError{"parser", "expected a literal, found " + p.cur.kind.String(), p.input, p.cur.pos}
	}
}

func (p *parser) parseSortKeys() (Node, error) {
	var keys []SortKey
	for {
		var desc bool
		switch p.cur.kind {
		case tokSlash:
			desc = false
		case tokBackslash:
			desc = true
		default:
			return nil, SyntaxError{"parser", "expected '/' or '\\' in sort key, found " + p.cur.kind.String(), p.input, p.cur.pos}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		path, err := p.parseDescend()
		if err != nil {
			return nil, err
		}
		keys = append(keys, SortKey{Path: path, Descending: desc})
		if p.cur.kind != tokComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return Sort{Keys: keys}, nil
}
