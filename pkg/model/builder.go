package model

// Builder is the externally supplied factory the parser calls to
// materialise every declaration and reference it recognizes (component
// C6). The type, reference and package methods are idempotent by
// qualified name: calling BuildClass("A\\B") twice returns the same *Type
// both times, and a reference created before the matching declaration is
// unified with it once the declaration arrives — forward references across
// files are the Builder's concern, not the parser's. BuildFunction,
// BuildMethod, BuildClosure, BuildProperty, BuildParameter and
// BuildTypeConstant are not idempotent: DefaultBuilder returns a new node
// on every call.
type Builder interface {
	BuildClass(qualifiedName string) *Type
	BuildInterface(qualifiedName string) *Type
	BuildClassReference(qualifiedName string) *Reference
	BuildInterfaceReference(qualifiedName string) *Reference
	BuildClassOrInterfaceReference(qualifiedName string) *Reference
	BuildFunction(name string) *Callable
	BuildMethod(name string) *Callable
	BuildClosure() *Callable
	BuildProperty(name string) *Property
	BuildParameter(name string) *Parameter
	BuildTypeConstant(name string) *Constant
	BuildPackage(qualifiedName string) *Package
}
