package model

import "github.com/schmittjoh/pdepend/pkg/token"

// RefKind says what a Reference is allowed to resolve to.
type RefKind int

const (
	RefClass RefKind = iota
	RefInterface
	RefClassOrInterface
)

// Reference is a named pointer to a declaration, resolved lazily by the
// builder (spec.md Glossary). The parser only ever creates these by
// qualified name; unifying a reference created before its declaration with
// the declaration itself is the builder's job, not the parser's.
type Reference struct {
	ID       string
	Name     string
	Kind     RefKind
	Resolved *Type // set once the builder unifies this reference with a Type
}

// CallableKind distinguishes a Function, a Method (belongs to a Type) and
// an anonymous Closure.
type CallableKind int

const (
	KindFunction CallableKind = iota
	KindMethod
	KindClosure
)

// Type is a class or interface declaration. The parser populates the
// fields below except Tokens, which it leaves empty; UserDefined is set on
// classes only. Ownership of the node itself belongs to whichever Builder
// created it.
type Type struct {
	ID           string
	Name         string // fully qualified
	IsInterface  bool
	SourceFile   string
	StartLine    int
	EndLine      int
	Modifiers    Modifiers
	DocComment   string
	Parent       *Reference   // optional, class only
	Interfaces   []*Reference // extends (interface) or implements (class)
	Methods      []*Callable
	Properties   []*Property
	Constants    []*Constant
	Tokens       []token.Token
	UserDefined  bool
}

// Callable is a Function, Method or Closure declaration.
type Callable struct {
	ID             string
	Kind           CallableKind
	Name           string // empty for closures
	DocComment     string
	StartLine      int
	EndLine        int
	SourceFile     string
	Modifiers      Modifiers // methods only
	Parameters     []*Parameter
	ReturnsByRef   bool
	Dependencies   []*Reference // classes/interfaces referenced in the body
	Exceptions     []*Reference // from @throws
	ReturnType     *Reference   // from @return
	BoundVariables []string     // closures only, `use (...)`
	Tokens         []token.Token
}

// Parameter is one entry in a Callable's parameter list.
type Parameter struct {
	Name      string // the `$identifier` image, including `$`
	Position  int    // 0-based
	ByRef     bool
	ArrayHint bool
	Type      *Reference
	Default   Value
	Optional  bool
}

// Property is a class/interface member variable.
type Property struct {
	ID         string
	Name       string
	DocComment string
	Modifiers  Modifiers
	StartLine  int
	EndLine    int
	SourceFile string
	Type       *Reference // from @var
}

// Constant is a class/interface `const NAME = value` member.
type Constant struct {
	ID         string
	Name       string
	DocComment string
	StartLine  int
	EndLine    int
	SourceFile string
}

// Package groups the top-level functions and types declared under one
// qualified package/namespace name.
type Package struct {
	Name      string
	Types     []*Type
	Functions []*Callable
}
