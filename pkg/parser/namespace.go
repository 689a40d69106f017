package parser

import (
	"strings"

	"github.com/schmittjoh/pdepend/pkg/resolver"
	"github.com/schmittjoh/pdepend/pkg/token"
)

// parseNamespace handles the three shapes a namespace declaration can
// take (spec.md §4.5, open question (c)):
//
//	namespace Qualified;          — applies to the rest of the file
//	namespace Qualified { ... }   — scopes its block only
//	namespace { ... }             — the empty-string namespace, still active
func (p *Parser) parseNamespace() error {
	p.cur.Next() // `namespace`

	var name string
	if p.cur.Peek() == token.String || p.cur.Peek() == token.Backslash {
		frags, _ := p.qualifiedNameRaw()
		name = joinRawFragments(frags)
	}

	ns := resolver.Namespace{Name: name, Active: true}

	switch p.cur.Peek() {
	case token.Semicolon:
		p.cur.Next()
		p.st.namespace = ns
		p.st.reset(0)
		return nil

	case token.CurlyOpen:
		p.cur.Next()
		saved := p.st.namespace
		p.st.namespace = ns
		p.st.reset(0)
		for p.cur.Peek() != token.CurlyClose && p.cur.Peek() != token.EOF {
			if err := p.parseTopLevel(); err != nil {
				return err
			}
		}
		if _, err := p.cur.Consume(token.CurlyClose, nil); err != nil {
			return err
		}
		p.st.namespace = saved
		p.st.reset(0)
		return nil

	default:
		// Malformed; treat as the semicolon form so parsing can continue.
		p.st.namespace = ns
		p.st.reset(0)
		return nil
	}
}

// parseUse handles a `use` declaration list: one or more
// `Qualified (as Short)?` entries separated by commas, terminated by `;`.
// Each entry is added to the innermost open scope of the symbol table so
// qualifiedName's alias lookup (component C4, rule 2) can find it.
func (p *Parser) parseUse() error {
	p.cur.Next() // `use`

	for {
		frags, _ := p.qualifiedNameRaw()
		fq := joinRawFragments(frags)
		if fq == "" {
			break
		}

		short := lastFragmentShortName(fq)
		if p.cur.Peek() == token.As {
			p.cur.Next()
			if p.cur.Peek() == token.String {
				short = p.cur.Next().Image
			}
		}
		p.symbols.Add(short, fq)

		if p.cur.Peek() != token.Comma {
			break
		}
		p.cur.Next()
	}

	if p.cur.Peek() == token.Semicolon {
		p.cur.Next()
	}
	p.st.reset(0)
	return nil
}

// joinRawFragments concatenates a qualifiedNameRaw result back into a
// qualified name string, verbatim — no alias resolution. Used by `use` and
// `namespace`, neither of which resolves its name against the alias table.
func joinRawFragments(fragments []string) string {
	return strings.Join(fragments, "")
}
