package parser

import (
	"github.com/schmittjoh/pdepend/pkg/model"
	"github.com/schmittjoh/pdepend/pkg/token"
)

// parseFunctionOrClosure parses `function &? Name? (params) (use (...))? (; | { body })`.
// The cursor is positioned at the `function` token. A name present means a
// named function — attached to the package effective at this point in the
// file (spec.md §9 open question (b): a function nested inside another
// callable's body is attributed to the enclosing package, never to the
// enclosing callable) — its absence means an anonymous closure, built but
// left unattached to anything other than whatever reference discovers it.
func (p *Parser) parseFunctionOrClosure() error {
	startLine := p.cur.PeekToken().StartLine
	p.cur.Next() // `function`

	byRef := false
	if p.cur.Peek() == token.BitwiseAnd {
		p.cur.Next()
		byRef = true
	}

	var name string
	named := p.cur.Peek() == token.String
	if named {
		name = p.cur.Next().Image
	}

	var c *model.Callable
	if named {
		c = p.builder.BuildFunction(name)
		pkg := p.builder.BuildPackage(p.st.effectivePackage())
		pkg.Functions = append(pkg.Functions, c)
	} else {
		c = p.builder.BuildClosure()
	}
	c.DocComment = p.st.pendingDoc
	c.SourceFile = p.cur.SourceFile()
	c.StartLine = startLine
	c.ReturnsByRef = byRef

	params, err := p.parseParameterList()
	if err != nil {
		return err
	}
	c.Parameters = params

	if named && !p.ignoreAnnotations {
		p.applyCallableAnnotations(c, p.st.pendingDoc)
	}
	if named {
		p.st.pendingDoc = ""
	}

	if !named && p.cur.Peek() == token.Use {
		p.cur.Next()
		if _, err := p.cur.Consume(token.ParenOpen, nil); err == nil {
			for p.cur.Peek() != token.ParenClose && p.cur.Peek() != token.EOF {
				if p.cur.Peek() == token.BitwiseAnd {
					p.cur.Next()
				}
				if p.cur.Peek() == token.Variable {
					c.BoundVariables = append(c.BoundVariables, p.cur.Next().Image)
				} else {
					p.cur.Next()
				}
				if p.cur.Peek() == token.Comma {
					p.cur.Next()
					continue
				}
				break
			}
			p.cur.Consume(token.ParenClose, nil)
		}
	}

	switch p.cur.Peek() {
	case token.Semicolon:
		c.EndLine = p.cur.Next().EndLine
	case token.CurlyOpen:
		p.cur.Next()
		p.symbols.PushScope()
		bodyErr := p.parseCallableBody(c)
		p.symbols.PopScope()
		if bodyErr != nil {
			return bodyErr
		}
		end, err := p.cur.Consume(token.CurlyClose, nil)
		if err != nil {
			return err
		}
		c.EndLine = end.EndLine
	}

	if named {
		p.st.reset(0)
	}
	return nil
}

// parseMethod parses a class/interface method: same grammar as a named
// function but modifiers come from parser state, never a package, and an
// abstract/interface method has no body (just a trailing `;`).
func (p *Parser) parseMethod(doc string) (*model.Callable, error) {
	startLine := p.cur.PeekToken().StartLine
	p.cur.Next() // `function`

	byRef := false
	if p.cur.Peek() == token.BitwiseAnd {
		p.cur.Next()
		byRef = true
	}

	name := ""
	if p.cur.Peek() == token.String {
		name = p.cur.Next().Image
	}

	c := p.builder.BuildMethod(name)
	c.Kind = model.KindMethod
	c.DocComment = doc
	c.Modifiers = p.st.modifiers
	c.SourceFile = p.cur.SourceFile()
	c.StartLine = startLine
	c.ReturnsByRef = byRef

	params, err := p.parseParameterList()
	if err != nil {
		return c, err
	}
	c.Parameters = params

	if !p.ignoreAnnotations {
		p.applyCallableAnnotations(c, doc)
	}

	switch p.cur.Peek() {
	case token.Semicolon:
		c.EndLine = p.cur.Next().EndLine
	case token.CurlyOpen:
		p.cur.Next()
		p.symbols.PushScope()
		bodyErr := p.parseCallableBody(c)
		p.symbols.PopScope()
		if bodyErr != nil {
			return c, bodyErr
		}
		end, err := p.cur.Consume(token.CurlyClose, nil)
		if err != nil {
			return c, err
		}
		c.EndLine = end.EndLine
	}
	return c, nil
}

// applyCallableAnnotations attaches the @return and @throws types named in
// doc to c (spec.md §4.7). @throws preserves the full multiset — every
// occurrence becomes its own Reference, no deduplication.
func (p *Parser) applyCallableAnnotations(c *model.Callable, doc string) {
	if ret := p.ann.Return(doc); ret != "" {
		c.ReturnType = p.builder.BuildClassOrInterfaceReference(ret)
	}
	for _, ex := range p.ann.Throws(doc) {
		c.Exceptions = append(c.Exceptions, p.builder.BuildClassReference(ex))
	}
}

// parseParameterList parses `( (hint? &? $var (= value)?)(, ...)* )` and
// computes each Parameter's Optional flag under the trailing-optional rule
// (spec.md §3 invariant 2): a parameter is optional iff it and every
// parameter after it carries a default value.
func (p *Parser) parseParameterList() ([]*model.Parameter, error) {
	if _, err := p.cur.Consume(token.ParenOpen, nil); err != nil {
		return nil, err
	}

	var params []*model.Parameter
	pos := 0
	for p.cur.Peek() != token.ParenClose && p.cur.Peek() != token.EOF {
		var typeRef *model.Reference
		arrayHint := false

		switch p.cur.Peek() {
		case token.Array:
			p.cur.Next()
			arrayHint = true
		case token.String, token.Backslash:
			if name, ok := p.qualifiedName(); ok {
				typeRef = p.builder.BuildClassOrInterfaceReference(name)
			}
		}

		byRef := false
		if p.cur.Peek() == token.BitwiseAnd {
			p.cur.Next()
			byRef = true
		}

		if p.cur.Peek() != token.Variable {
			// Malformed parameter; skip the offending token rather than loop
			// forever, and keep trying for the next one.
			p.cur.Next()
			if p.cur.Peek() == token.Comma {
				p.cur.Next()
				continue
			}
			continue
		}
		varName := p.cur.Next().Image

		param := p.builder.BuildParameter(varName)
		param.Position = pos
		param.ByRef = byRef
		param.ArrayHint = arrayHint
		param.Type = typeRef

		if p.cur.Peek() == token.Equal {
			p.cur.Next()
			val, err := p.parseDefaultValue()
			if err != nil {
				return params, err
			}
			param.Default = val
		}

		params = append(params, param)
		pos++

		if p.cur.Peek() != token.Comma {
			break
		}
		p.cur.Next()
	}

	if _, err := p.cur.Consume(token.ParenClose, nil); err != nil {
		return params, err
	}

	trailing := true
	for i := len(params) - 1; i >= 0; i-- {
		if trailing && params[i].Default.Available {
			params[i].Optional = true
		} else {
			trailing = false
		}
	}
	return params, nil
}

// parseCallableBody scans a callable's `{ ... }` body for the dependency
// references spec.md §4.9 names — catch, new, instanceof, static `::`
// access, and inline `/* @var $x T */` comments — tracking brace depth so
// it stops exactly at the matching close brace, which it leaves for the
// caller to consume. A nested `function`, named or anonymous, is handed to
// parseFunctionOrClosure: a named function is attached to its enclosing
// package, and a closure's body is scanned into the closure's own node,
// not into the enclosing callable.
func (p *Parser) parseCallableBody(c *model.Callable) error {
	depth := 0
	for {
		switch p.cur.Peek() {
		case token.EOF:
			return nil

		case token.CurlyOpen:
			depth++
			p.cur.Next()

		case token.CurlyClose:
			if depth == 0 {
				return nil
			}
			depth--
			p.cur.Next()

		case token.DoubleQuote:
			p.skipDelimited(token.DoubleQuote)
		case token.Backtick:
			p.skipDelimited(token.Backtick)

		case token.Comment:
			t := p.cur.Next()
			if !p.ignoreAnnotations {
				if _, typeName, ok := p.ann.InlineVar(t.Image); ok && typeName != "" {
					c.Dependencies = append(c.Dependencies, p.builder.BuildClassOrInterfaceReference(typeName))
				}
			}

		case token.Catch:
			p.cur.Next()
			if p.cur.Peek() == token.ParenOpen {
				p.cur.Next()
				if name, ok := p.qualifiedName(); ok {
					c.Dependencies = append(c.Dependencies, p.builder.BuildClassOrInterfaceReference(name))
				}
			}

		case token.New:
			p.cur.Next()
			if name, ok := p.qualifiedName(); ok {
				c.Dependencies = append(c.Dependencies, p.builder.BuildClassReference(name))
			}

		case token.Instanceof:
			p.cur.Next()
			if name, ok := p.qualifiedName(); ok {
				c.Dependencies = append(c.Dependencies, p.builder.BuildClassOrInterfaceReference(name))
			}

		case token.Function:
			if err := p.parseFunctionOrClosure(); err != nil {
				return err
			}

		case token.String, token.Backslash:
			name, ok := p.qualifiedName()
			if ok && p.cur.Peek() == token.DoubleColon {
				p.cur.Next()
				if p.cur.Peek() == token.String {
					p.cur.Next()
				}
				c.Dependencies = append(c.Dependencies, p.builder.BuildClassOrInterfaceReference(name))
			}

		default:
			p.cur.Next()
		}
	}
}

// skipDelimited consumes a run of tokens up to and including the next
// occurrence of delim, used to pass over a `"..."`/`` `...` `` span the
// tokenizer hands back as bare delimiter tokens rather than a single
// string literal.
func (p *Parser) skipDelimited(delim token.Kind) {
	p.cur.Next() // opening delimiter
	for {
		switch p.cur.Peek() {
		case token.EOF:
			return
		case delim:
			p.cur.Next()
			return
		default:
			p.cur.Next()
		}
	}
}
