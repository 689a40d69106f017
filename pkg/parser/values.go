package parser

import (
	"strconv"

	"github.com/cockroachdb/apd/v3"
	"github.com/schmittjoh/pdepend/pkg/model"
	"github.com/schmittjoh/pdepend/pkg/token"
)

// parseDefaultValue implements the default-value mini-grammar of spec.md
// §4.8 / open question (a). The cursor is positioned just after the `=`;
// parseDefaultValue consumes tokens until it reaches one of the three
// terminators (Comma, Semicolon, ParenClose) WITHOUT consuming the
// terminator itself, and returns a MissingValue error if no token ever set
// Value.Available.
//
// Array literals are recorded as present but never evaluated: only their
// balanced parens are skipped. A `::`-qualified name, a bare magic
// constant, or anything else this grammar doesn't assign specific meaning
// to is recorded as ValueUnresolved — present, but not a literal.
func (p *Parser) parseDefaultValue() (model.Value, error) {
	val := model.Unavailable()

	for {
		switch p.cur.Peek() {
		case token.Comma, token.Semicolon, token.ParenClose, token.EOF:
			if !val.Available {
				return val, &MissingValue{Pos: token.Position{Line: p.cur.PeekToken().StartLine}}
			}
			return val, nil

		case token.Null:
			p.cur.Next()
			val = model.NullValue()

		case token.True:
			p.cur.Next()
			val = model.BoolValue(true)

		case token.False:
			p.cur.Next()
			val = model.BoolValue(false)

		case token.LNumber:
			t := p.cur.Next()
			n, _ := strconv.ParseInt(t.Image, 0, 64)
			val = model.IntValue(n)

		case token.DNumber:
			t := p.cur.Next()
			d, _, _ := apd.NewFromString(t.Image)
			val = model.DoubleValue(d)

		case token.ConstantEncapsedString:
			t := p.cur.Next()
			val = model.StringValue(unquoteLiteral(t.Image))

		case token.Minus:
			p.cur.Next()
			val = p.parseSignedNumber(true)

		case token.Plus:
			p.cur.Next()
			val = p.parseSignedNumber(false)

		case token.Array:
			p.cur.Next()
			val = model.ArrayValue()
			if p.cur.Peek() == token.ParenOpen {
				p.skipBalancedParens()
			}

		default:
			// self::X, Class::CONST, a bare magic constant, or any other
			// construct this grammar doesn't evaluate: present, unresolved.
			p.cur.Next()
			val = model.UnresolvedValue()
		}
	}
}

// parseSignedNumber consumes the numeric literal following a unary +/- and
// returns it negated (if negative) as an Int or Double value.
func (p *Parser) parseSignedNumber(negative bool) model.Value {
	switch p.cur.Peek() {
	case token.LNumber:
		t := p.cur.Next()
		n, _ := strconv.ParseInt(t.Image, 0, 64)
		if negative {
			n = -n
		}
		return model.IntValue(n)
	case token.DNumber:
		t := p.cur.Next()
		d, _, _ := apd.NewFromString(t.Image)
		if negative {
			d.Neg(d)
		}
		return model.DoubleValue(d)
	default:
		return model.UnresolvedValue()
	}
}

// skipBalancedParens consumes a `(` and everything up to and including its
// matching `)`, tracking nesting depth. Used to skip over an array(...)
// literal's contents without evaluating them.
func (p *Parser) skipBalancedParens() {
	if p.cur.Peek() != token.ParenOpen {
		return
	}
	depth := 0
	for {
		switch p.cur.Peek() {
		case token.EOF:
			return
		case token.ParenOpen:
			depth++
			p.cur.Next()
		case token.ParenClose:
			depth--
			p.cur.Next()
			if depth == 0 {
				return
			}
		default:
			p.cur.Next()
		}
	}
}

// unquoteLiteral strips the surrounding quote characters a
// ConstantEncapsedString token's image carries.
func unquoteLiteral(image string) string {
	if len(image) >= 2 {
		first, last := image[0], image[len(image)-1]
		if (first == '\'' || first == '"') && first == last {
			return image[1 : len(image)-1]
		}
	}
	return image
}

// parseConstantDecl parses `const NAME = value ;` (spec.md §4.5, class and
// interface body). The cursor is positioned at the `const` token.
func (p *Parser) parseConstantDecl(doc string) (*model.Constant, error) {
	start := p.cur.PeekToken().StartLine
	p.cur.Next() // `const`

	name := ""
	if p.cur.Peek() == token.String {
		name = p.cur.Next().Image
	}

	if p.cur.Peek() == token.Equal {
		p.cur.Next()
		if _, err := p.parseDefaultValue(); err != nil {
			return nil, err
		}
	}

	end := p.cur.PeekToken().StartLine
	if p.cur.Peek() == token.Semicolon {
		end = p.cur.Next().EndLine
	}

	c := p.builder.BuildTypeConstant(name)
	c.DocComment = doc
	c.StartLine = start
	c.EndLine = end
	c.SourceFile = p.cur.SourceFile()
	return c, nil
}
