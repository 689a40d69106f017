package model

// Exposed constants (spec.md §6).
const (
	// DefaultPackage is the package a declaration falls back to when no
	// @package doc-comment tag and no namespace is in scope.
	DefaultPackage = "+global"
	// PackageSeparator joins legacy @package/@subpackage fragments.
	PackageSeparator = "::"
	// NamespaceSeparator joins namespace fragments.
	NamespaceSeparator = "\\"
)
