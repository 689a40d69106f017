// Package annotation implements the regex-driven doc-comment extraction
// component (C3): @package/@subpackage, @var, @return, @throws, and the
// inline `/* @var $x T */` form. This is deliberately the only
// string-level parsing in the core — everything else the parser does is
// token-level — and the six regexes here are precompiled once at init,
// mirroring the teacher's own CleanComment/ExtractBrief regex style.
package annotation

import (
	"regexp"
	"strings"

	"github.com/schmittjoh/pdepend/pkg/model"
)

var (
	packageRe    = regexp.MustCompile(`@package\s+([^\s*]+)`)
	subpackageRe = regexp.MustCompile(`@subpackage\s+([^\s*]+)`)
	varRe        = regexp.MustCompile(`@var\s+([^\s*]+)`)
	returnRe     = regexp.MustCompile(`@return\s+([^\s*]+)`)
	throwsRe     = regexp.MustCompile(`@throws\s+([^\s*]+)`)
	inlineVarRe  = regexp.MustCompile(`^\s*/\*\s*@var\s+(\$[A-Za-z_][A-Za-z0-9_]*)\s+([^\s*]+)\s*\*/\s*$`)
)

// scalarTypes are filtered out of @var/@return extraction: dependency
// extraction treats scalar annotations as noise and must never generate a
// spurious class reference from them.
var scalarTypes = map[string]bool{
	"bool": true, "boolean": true, "int": true, "integer": true,
	"float": true, "double": true, "real": true, "string": true,
	"array": true, "resource": true, "object": true, "mixed": true,
	"void": true, "null": true, "number": true, "numeric": true,
	"callback": true, "unknown_type": true,
}

// isScalar reports whether t (case-insensitively) names a scalar pseudo-type.
func isScalar(t string) bool {
	return scalarTypes[strings.ToLower(t)]
}

// Reader extracts doc-comment annotations from a single comment's text.
// It carries no state of its own; every method operates purely on its
// argument.
type Reader struct{}

// NewReader returns a Reader. There is nothing to configure: the six
// regexes above are package-level and shared by every Reader.
func NewReader() *Reader { return &Reader{} }

// Package extracts the legacy @package/@subpackage scoping: "X::Y" when
// both tags are present, "X" when only @package is, and
// model.DefaultPackage when neither is.
func (r *Reader) Package(comment string) string {
	pkg := firstSubmatch(packageRe, comment)
	if pkg == "" {
		return model.DefaultPackage
	}
	if sub := firstSubmatch(subpackageRe, comment); sub != "" {
		return pkg + model.PackageSeparator + sub
	}
	return pkg
}

// Var extracts the first non-scalar type named in an @var tag, accepting a
// bare identifier, a pipe-separated union, or an array(...) form. Returns
// "" if no @var tag is present or every alternative is scalar.
func (r *Reader) Var(comment string) string {
	return firstNonScalarUnion(firstSubmatch(varRe, comment))
}

// Return extracts the first non-scalar type named in an @return tag, with
// the same union/array handling as Var.
func (r *Reader) Return(comment string) string {
	return firstNonScalarUnion(firstSubmatch(returnRe, comment))
}

// Throws returns every class name named by an @throws tag, in the order
// they occur, with no scalar filtering and no deduplication — spec.md §8
// property 5 requires the exact multiset of @throws X occurrences.
func (r *Reader) Throws(comment string) []string {
	matches := throwsRe.FindAllStringSubmatch(comment, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, stripArrayWrapper(m[1]))
	}
	return out
}

// InlineVar matches a whole-line `/* @var $name T */` comment and returns
// the variable name and the referenced type. ok is false if comment isn't
// of that exact shape.
func (r *Reader) InlineVar(comment string) (varName, typeName string, ok bool) {
	m := inlineVarRe.FindStringSubmatch(comment)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func firstSubmatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

// firstNonScalarUnion accepts a bare identifier, a `Foo|Bar|null` union, or
// an `array(Key=>T)`/`array(T)` form, and returns the first alternative
// that isn't a scalar pseudo-type.
func firstNonScalarUnion(raw string) string {
	if raw == "" {
		return ""
	}
	raw = stripArrayWrapper(raw)
	for _, alt := range strings.Split(raw, "|") {
		alt = strings.TrimSpace(alt)
		if alt != "" && !isScalar(alt) {
			return alt
		}
	}
	return ""
}

// stripArrayWrapper unwraps `array(Key=>T)` / `array(T)` down to T, the
// element type, leaving any other input untouched.
func stripArrayWrapper(raw string) string {
	const prefix = "array("
	if !strings.HasPrefix(strings.ToLower(raw), prefix) || !strings.HasSuffix(raw, ")") {
		return raw
	}
	inner := raw[len(prefix) : len(raw)-1]
	if idx := strings.Index(inner, "=>"); idx >= 0 {
		inner = inner[idx+2:]
	}
	return inner
}
