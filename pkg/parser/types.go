package parser

import (
	"github.com/schmittjoh/pdepend/pkg/model"
	"github.com/schmittjoh/pdepend/pkg/token"
)

// parseInterface parses `interface Name (extends Q1, Q2, ...)? { body }`.
// The cursor is positioned at the `interface` token.
func (p *Parser) parseInterface() error {
	startLine := p.cur.PeekToken().StartLine
	p.cur.Next() // `interface`

	local := ""
	if p.cur.Peek() == token.String {
		local = p.cur.Next().Image
	}
	qualified := p.declarationName(local)

	t := p.builder.BuildInterface(qualified)
	t.IsInterface = true
	t.DocComment = p.st.pendingDoc
	t.SourceFile = p.cur.SourceFile()
	t.StartLine = startLine

	pkg := p.builder.BuildPackage(p.st.effectivePackage())
	pkg.Types = append(pkg.Types, t)

	if p.cur.Peek() == token.Extends {
		p.cur.Next()
		for {
			name, ok := p.qualifiedName()
			if !ok {
				break
			}
			t.Interfaces = append(t.Interfaces, p.builder.BuildInterfaceReference(name))
			if p.cur.Peek() != token.Comma {
				break
			}
			p.cur.Next()
		}
	}

	if _, err := p.cur.Consume(token.CurlyOpen, nil); err != nil {
		return err
	}
	p.st.modifiers = model.DefaultInterfaceModifiers()
	if err := p.parseTypeBody(t); err != nil {
		return err
	}
	end, err := p.cur.Consume(token.CurlyClose, nil)
	if err != nil {
		return err
	}
	t.EndLine = end.EndLine
	p.st.reset(0)
	return nil
}

// parseClass parses an optional `abstract`/`final` modifier, then
// `class Name (extends Q)? (implements Q1, ...)? { body }`. The cursor is
// positioned at whichever of Abstract/Final/Class starts the declaration.
func (p *Parser) parseClass() error {
	startLine := p.cur.PeekToken().StartLine

	var mods model.Modifiers
	for {
		switch p.cur.Peek() {
		case token.Abstract:
			p.cur.Next()
			mods = mods.SetExplicitAbstract()
			continue
		case token.Final:
			p.cur.Next()
			mods = mods.SetFinal()
			continue
		}
		break
	}
	if _, err := p.cur.Consume(token.Class, nil); err != nil {
		return err
	}

	local := ""
	if p.cur.Peek() == token.String {
		local = p.cur.Next().Image
	}
	qualified := p.declarationName(local)

	t := p.builder.BuildClass(qualified)
	t.IsInterface = false
	t.DocComment = p.st.pendingDoc
	t.SourceFile = p.cur.SourceFile()
	t.StartLine = startLine
	t.Modifiers = mods
	t.UserDefined = true

	pkg := p.builder.BuildPackage(p.st.effectivePackage())
	pkg.Types = append(pkg.Types, t)

	if p.cur.Peek() == token.Extends {
		p.cur.Next()
		if name, ok := p.qualifiedName(); ok {
			t.Parent = p.builder.BuildClassReference(name)
		}
	}

	if p.cur.Peek() == token.Implements {
		p.cur.Next()
		for {
			name, ok := p.qualifiedName()
			if !ok {
				break
			}
			t.Interfaces = append(t.Interfaces, p.builder.BuildInterfaceReference(name))
			if p.cur.Peek() != token.Comma {
				break
			}
			p.cur.Next()
		}
	}

	if _, err := p.cur.Consume(token.CurlyOpen, nil); err != nil {
		return err
	}
	p.st.modifiers = model.DefaultClassModifiers()
	if err := p.parseTypeBody(t); err != nil {
		return err
	}
	end, err := p.cur.Consume(token.CurlyClose, nil)
	if err != nil {
		return err
	}
	t.EndLine = end.EndLine
	p.st.reset(0)
	return nil
}

// parseTypeBody parses the member list of a class or interface body: a
// sequence of modifier tokens, methods, properties, constants, and
// doc-comments, reset to the body's default modifier set (spec.md §4.5)
// after every member. The cursor stops just before CurlyClose; the caller
// consumes it.
func (p *Parser) parseTypeBody(t *model.Type) error {
	defaultMods := p.st.modifiers

	for {
		switch p.cur.Peek() {
		case token.CurlyClose, token.EOF:
			return nil

		case token.Comment:
			p.cur.Next()

		case token.DocComment:
			tok := p.cur.Next()
			p.st.pendingDoc = tok.Image

		case token.Public:
			p.cur.Next()
			p.st.modifiers = p.st.modifiers.SetPublic()
		case token.Protected:
			p.cur.Next()
			p.st.modifiers = p.st.modifiers.SetProtected()
		case token.Private:
			p.cur.Next()
			p.st.modifiers = p.st.modifiers.SetPrivate()
		case token.Static:
			p.cur.Next()
			p.st.modifiers = p.st.modifiers.SetStatic()
		case token.Abstract:
			p.cur.Next()
			p.st.modifiers = p.st.modifiers.SetAbstract()
		case token.Final:
			p.cur.Next()
			p.st.modifiers = p.st.modifiers.SetFinal()

		case token.Function:
			doc := p.st.pendingDoc
			m, err := p.parseMethod(doc)
			if err != nil {
				return err
			}
			t.Methods = append(t.Methods, m)
			p.st.pendingDoc = ""
			p.st.modifiers = defaultMods

		case token.Variable:
			doc := p.st.pendingDoc
			props, err := p.parseProperties(doc)
			if err != nil {
				return err
			}
			t.Properties = append(t.Properties, props...)
			p.st.pendingDoc = ""
			p.st.modifiers = defaultMods

		case token.Const:
			doc := p.st.pendingDoc
			c, err := p.parseConstantDecl(doc)
			if err != nil {
				return err
			}
			t.Constants = append(t.Constants, c)
			p.st.pendingDoc = ""
			p.st.modifiers = defaultMods

		default:
			// Unrecognized inside a body; skip forward so a malformed
			// member doesn't stall the whole file.
			p.cur.Next()
		}
	}
}

// parseProperties parses one `$var (= value)? (, $var (= value)?)* ;`
// member declaration, attaching doc's @var type (if any) to every variable
// in the list.
func (p *Parser) parseProperties(doc string) ([]*model.Property, error) {
	var props []*model.Property
	mods := p.st.modifiers
	file := p.cur.SourceFile()

	var varType string
	if !p.ignoreAnnotations {
		varType = p.ann.Var(doc)
	}

	for p.cur.Peek() == token.Variable {
		start := p.cur.PeekToken().StartLine
		name := p.cur.Next().Image

		if p.cur.Peek() == token.Equal {
			p.cur.Next()
			if _, err := p.parseDefaultValue(); err != nil {
				return props, err
			}
		}

		prop := p.builder.BuildProperty(name)
		prop.DocComment = doc
		prop.Modifiers = mods
		prop.StartLine = start
		prop.EndLine = start
		prop.SourceFile = file
		if varType != "" {
			prop.Type = p.builder.BuildClassOrInterfaceReference(varType)
		}
		props = append(props, prop)

		if p.cur.Peek() != token.Comma {
			break
		}
		p.cur.Next()
	}

	if p.cur.Peek() == token.Semicolon {
		p.cur.Next()
	}
	return props, nil
}
