// Package resolver implements the name-resolution component C4: turning a
// raw sequence of name fragments (gathered token-by-token by the
// declaration parser) into a qualified name, consulting the current
// namespace and the scoped alias table per spec.md §4.4 and the §3
// invariant on leading-separator rules.
package resolver

import (
	"strings"

	"github.com/schmittjoh/pdepend/pkg/model"
	"github.com/schmittjoh/pdepend/pkg/symtab"
)

// Resolver converts raw name fragments to qualified names, consulting a
// Table for use-alias lookups. It holds no namespace/package state of its
// own — that's Parser State's (C7) job; callers pass it in per call.
type Resolver struct {
	symbols *symtab.Table
}

// New returns a Resolver backed by symbols.
func New(symbols *symtab.Table) *Resolver {
	return &Resolver{symbols: symbols}
}

// Namespace is the parser's current-namespace state: Active distinguishes
// "no namespace declared" (Active == false) from "namespace {}" (Active ==
// true, Name == "") — spec.md §9 open question (c) requires the empty
// string be preserved verbatim as a real, active namespace rather than
// treated as absent.
type Namespace struct {
	Name   string
	Active bool
}

// Resolve implements parse_qualified_name: fragments is the raw sequence
// gathered by the parser (e.g. ["Foo", "\\", "Bar"], or ["\\", "Foo"] for a
// leading separator, or with fragments[0] pre-seeded to the current
// namespace when a bare `namespace\...` prefix was used — in which case
// namespacePrefixReplaced must be true).
func (r *Resolver) Resolve(fragments []string, ns Namespace, namespacePrefixReplaced bool) string {
	if len(fragments) == 0 {
		return ""
	}

	// Rule 1: a leading separator means the name is already fully
	// qualified; concatenate as-is.
	if fragments[0] == model.NamespaceSeparator {
		return strings.Join(fragments, "")
	}

	frags := append([]string(nil), fragments...)

	// Rule 2: consult the alias table for the first fragment only.
	if fq, ok := r.symbols.Lookup(frags[0]); ok {
		frags[0] = fq
	} else if ns.Active && !namespacePrefixReplaced {
		// Rule 3: on alias miss, prepend the current namespace, unless the
		// name was already produced by a `namespace\` prefix.
		frags[0] = ns.Name + model.NamespaceSeparator + frags[0]
	}
	// Otherwise: legacy, no namespace — leave as-is.

	return strings.Join(frags, "")
}

// DeclarationName implements _createQualifiedTypeName: the qualification
// rule for a class/interface/namespace *declaration site*, as opposed to a
// reference. When a namespace is active, the local name is prefixed with
// `namespace + "\\"`; otherwise it's prefixed with the legacy
// `currentPackage + "::"`.
func DeclarationName(local string, ns Namespace, currentPackage string) string {
	if ns.Active {
		return ns.Name + model.NamespaceSeparator + local
	}
	return currentPackage + model.PackageSeparator + local
}
