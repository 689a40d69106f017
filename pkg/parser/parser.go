// Package parser implements the recursive-descent declaration parser
// (component C5) and its associated parser state (C7): the core this
// specification covers. Everything else — the tokenizer, the semantic
// model builder, file discovery, post-parse analyses — is an external
// collaborator the parser is only ever handed an interface to.
package parser

import (
	"github.com/schmittjoh/pdepend/pkg/annotation"
	"github.com/schmittjoh/pdepend/pkg/model"
	"github.com/schmittjoh/pdepend/pkg/resolver"
	"github.com/schmittjoh/pdepend/pkg/symtab"
	"github.com/schmittjoh/pdepend/pkg/token"
)

// Parser drives a single file's token stream through the declaration
// grammar, calling builder to materialise every node it recognizes. A
// Parser is strictly single-threaded and non-reentrant: one Parse call
// fully consumes one token stream and returns synchronously (spec.md §5).
// Running many Parsers concurrently is safe as long as each has its own
// Lexer and Builder. Parsers sharing one model.DefaultBuilder must not run
// concurrently: its Build* calls are locked, but the parser then mutates
// the returned nodes (appending to a Package's or Type's lists) without
// locking.
type Parser struct {
	cur     *token.Cursor
	builder model.Builder
	symbols *symtab.Table
	resolve *resolver.Resolver
	ann     *annotation.Reader
	st      *state

	ignoreAnnotations bool
}

// New returns a Parser that will call builder to materialise every
// declaration it parses.
func New(builder model.Builder) *Parser {
	symbols := symtab.New()
	return &Parser{
		builder: builder,
		symbols: symbols,
		resolve: resolver.New(symbols),
		ann:     annotation.NewReader(),
		st:      newState(),
	}
}

// SetIgnoreAnnotations enables annotation suppression (spec.md §4.7): no
// @throws/@return/@var class reference is ever attached, and the inline
// `/* @var $x T */` body annotation is ignored too.
func (p *Parser) SetIgnoreAnnotations(ignore bool) {
	p.ignoreAnnotations = ignore
}

// Parse fully consumes lex's token stream, calling p's Builder for every
// declaration and reference it recognizes. A single parse() invocation
// pushes the file scope on entry and pops it on exit, success or error
// alike.
func (p *Parser) Parse(lex token.Lexer) error {
	p.cur = token.NewCursor(lex)
	p.st = newState()
	p.symbols.PushScope()
	defer p.symbols.PopScope()

	for p.cur.Peek() != token.EOF {
		if err := p.parseTopLevel(); err != nil {
			return err
		}
	}
	return nil
}

// parseTopLevel implements the top-level dispatch table of spec.md §4.5.
func (p *Parser) parseTopLevel() error {
	switch p.cur.Peek() {
	case token.Comment:
		p.cur.Next()
		return nil

	case token.DocComment:
		return p.parseTopLevelDocComment()

	case token.Interface:
		return p.parseInterface()

	case token.Class, token.Final, token.Abstract:
		return p.parseClass()

	case token.Function:
		return p.parseFunctionOrClosure()

	case token.Use:
		return p.parseUse()

	case token.Namespace:
		return p.parseNamespace()

	default:
		p.cur.Next()
		p.st.reset(0)
		return nil
	}
}

// parseTopLevelDocComment implements the DocComment row of the top-level
// dispatch table, plus the isFileComment rule of spec.md §3 invariant 4.
func (p *Parser) parseTopLevelDocComment() error {
	wasAfterOpenTag := p.cur.Prev() == token.OpenTag
	t := p.cur.Next()

	p.st.currentPackage = p.ann.Package(t.Image)
	p.st.pendingDoc = t.Image

	if wasAfterOpenTag && !p.followsFileComment() && !p.st.globalPackageSet {
		p.st.globalPackage = p.st.currentPackage
		p.st.globalPackageSet = true
		p.st.fileDocComment = t.Image
	}
	return nil
}

// followsFileComment reports whether the token immediately after the
// doc-comment just consumed disqualifies it from being a file comment
// (spec.md §3 invariant 4: a file comment must NOT be immediately
// followed by Class|Interface|Final|Abstract|Function).
func (p *Parser) followsFileComment() bool {
	switch p.cur.Peek() {
	case token.Class, token.Interface, token.Final, token.Abstract, token.Function:
		return true
	default:
		return false
	}
}

// FileDocComment returns the text of the first file comment encountered,
// if any (spec.md §3 invariant 4 / Glossary "File comment").
func (p *Parser) FileDocComment() (string, bool) {
	return p.st.fileDocComment, p.st.globalPackageSet
}
