package parser

import (
	"github.com/schmittjoh/pdepend/pkg/model"
	"github.com/schmittjoh/pdepend/pkg/resolver"
)

// state is the reset-on-boundary mutable state component C7: the pending
// doc-comment, the accumulated modifier bitset, the current namespace, the
// current (legacy) @package, the file-global package, and the
// namespace-prefix-replaced flag. It's owned by Parser and reset at every
// top-level boundary, class/interface body boundary, and after
// use/namespace declarations (spec.md §5).
type state struct {
	pendingDoc              string
	modifiers               model.Modifiers
	namespace               resolver.Namespace
	namespacePrefixReplaced bool
	currentPackage          string // legacy @package, reset() to DefaultPackage
	globalPackage           string // set once, by the first isFileComment doc-comment
	globalPackageSet        bool
	fileDocComment          string
}

func newState() *state {
	return &state{currentPackage: model.DefaultPackage}
}

// reset clears the pending doc-comment, resets the legacy @package to
// DefaultPackage, and sets the modifier accumulator to mods (spec.md
// §4.5's reset(modifiers=0)).
func (s *state) reset(mods model.Modifiers) {
	s.pendingDoc = ""
	s.currentPackage = model.DefaultPackage
	s.modifiers = mods
}

// effectivePackage implements the package-selection precedence named in
// spec.md §4.5: an active namespace wins over the current @package, which
// wins over the file-global package, which falls back to DefaultPackage.
func (s *state) effectivePackage() string {
	if s.namespace.Active {
		return s.namespace.Name
	}
	if s.currentPackage != model.DefaultPackage {
		return s.currentPackage
	}
	if s.globalPackageSet {
		return s.globalPackage
	}
	return model.DefaultPackage
}
