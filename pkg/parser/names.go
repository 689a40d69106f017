package parser

import (
	"github.com/schmittjoh/pdepend/pkg/model"
	"github.com/schmittjoh/pdepend/pkg/resolver"
	"github.com/schmittjoh/pdepend/pkg/token"
)

// qualifiedNameRaw implements parse_qualified_name_raw (spec.md §4.4.1):
// collect the raw fragment sequence for a qualified name starting at the
// cursor's current token. namespacePrefixReplaced is true iff the name
// began with an inline `namespace\` prefix.
func (p *Parser) qualifiedNameRaw() (fragments []string, namespacePrefixReplaced bool) {
	switch p.cur.Peek() {
	case token.Backslash:
		p.cur.Next()
		fragments = append(fragments, model.NamespaceSeparator)
		if p.cur.Peek() == token.String {
			fragments = append(fragments, p.cur.Next().Image)
		}
	case token.Namespace:
		p.cur.Next()
		fragments = append(fragments, p.st.namespace.Name)
		namespacePrefixReplaced = true
	case token.String:
		fragments = append(fragments, p.cur.Next().Image)
	default:
		return nil, false
	}

	for p.cur.Peek() == token.Backslash {
		p.cur.Next()
		fragments = append(fragments, model.NamespaceSeparator)
		if p.cur.Peek() == token.String {
			fragments = append(fragments, p.cur.Next().Image)
		}
	}
	return fragments, namespacePrefixReplaced
}

// qualifiedName gathers a raw name at the cursor and resolves it against
// the current namespace/alias scope (component C4). ok is false if the
// cursor wasn't positioned at a name at all.
func (p *Parser) qualifiedName() (name string, ok bool) {
	frags, prefixReplaced := p.qualifiedNameRaw()
	if frags == nil {
		return "", false
	}
	return p.resolve.Resolve(frags, p.st.namespace, prefixReplaced), true
}

// declarationName implements _createQualifiedTypeName (spec.md §4.4): the
// qualification rule for a class/interface/namespace declaration site.
func (p *Parser) declarationName(local string) string {
	return resolver.DeclarationName(local, p.st.namespace, p.st.effectivePackage())
}

// lastFragmentShortName returns the short (unqualified) name a `use`
// declaration with no explicit alias binds: the last fragment of the
// qualified name.
func lastFragmentShortName(qualified string) string {
	last := qualified
	for i := len(qualified) - 1; i >= 0; i-- {
		if qualified[i] == '\\' {
			last = qualified[i+1:]
			break
		}
	}
	return last
}
