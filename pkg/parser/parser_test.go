package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/schmittjoh/pdepend/pkg/model"
	"github.com/schmittjoh/pdepend/pkg/token"
)

func parseSource(t *testing.T, src string) *model.DefaultBuilder {
	t.Helper()
	builder := model.NewDefaultBuilder()
	p := New(builder)
	if err := p.Parse(token.NewTokenizer("test.php", src)); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return builder
}

func TestParseClassWithExtendsAndImplements(t *testing.T) {
	builder := parseSource(t, `<?php
class Foo extends Base implements IOne, ITwo {
}
`)
	ty, ok := builder.Type("+global::Foo")
	if !ok {
		t.Fatal("class Foo not built")
	}
	if ty.IsInterface {
		t.Error("Foo should not be an interface")
	}
	if ty.Parent == nil || ty.Parent.Name != "Base" {
		t.Errorf("Parent = %+v, want reference to Base", ty.Parent)
	}
	if len(ty.Interfaces) != 2 || ty.Interfaces[0].Name != "IOne" || ty.Interfaces[1].Name != "ITwo" {
		t.Errorf("Interfaces = %+v, want [IOne ITwo]", ty.Interfaces)
	}
}

func TestParseInterfaceWithExtends(t *testing.T) {
	builder := parseSource(t, `<?php
interface Foo extends IOne, ITwo {
}
`)
	ty, ok := builder.Type("+global::Foo")
	if !ok {
		t.Fatal("interface Foo not built")
	}
	if !ty.IsInterface {
		t.Error("Foo should be an interface")
	}
	if len(ty.Interfaces) != 2 {
		t.Fatalf("Interfaces = %+v, want 2 entries", ty.Interfaces)
	}
}

func TestAbstractClassModifiers(t *testing.T) {
	builder := parseSource(t, `<?php
abstract class Foo {
}
`)
	ty, _ := builder.Type("+global::Foo")
	if !ty.Modifiers.IsAbstract() {
		t.Error("abstract class should carry ModAbstract")
	}
}

func TestNamespacedDeclarationName(t *testing.T) {
	builder := parseSource(t, `<?php
namespace App\Models;

class User {
}
`)
	if _, ok := builder.Type("App\\Models\\User"); !ok {
		t.Error("expected App\\Models\\User to be built")
	}
}

func TestEmptyNamespaceIsActiveNotAbsent(t *testing.T) {
	builder := parseSource(t, `<?php
namespace {
    class Foo {
    }
}
`)
	if _, ok := builder.Type("\\Foo"); !ok {
		t.Error("expected \\Foo (empty active namespace prefix) to be built")
	}
}

func TestUseAliasResolvesReference(t *testing.T) {
	builder := parseSource(t, `<?php
use Some\Deep\Thing as Short;

class Foo {
    public function bar() {
        new Short();
    }
}
`)
	ty, _ := builder.Type("+global::Foo")
	method := ty.Methods[0]
	if len(method.Dependencies) != 1 || method.Dependencies[0].Name != "Some\\Deep\\Thing" {
		t.Errorf("Dependencies = %+v, want [Some\\Deep\\Thing]", method.Dependencies)
	}
}

func TestUseWithoutAliasDefaultsToLastFragment(t *testing.T) {
	builder := parseSource(t, `<?php
use Some\Deep\Thing;

class Foo {
    public function bar() {
        new Thing();
    }
}
`)
	ty, _ := builder.Type("+global::Foo")
	method := ty.Methods[0]
	if len(method.Dependencies) != 1 || method.Dependencies[0].Name != "Some\\Deep\\Thing" {
		t.Errorf("Dependencies = %+v, want [Some\\Deep\\Thing]", method.Dependencies)
	}
}

func TestTrailingOptionalParameterRule(t *testing.T) {
	builder := parseSource(t, `<?php
function f($a, $b = 1, $c = 2) {
}
`)
	pkg := findFunctionPackage(t, builder, "f")
	fn := pkg.Functions[0]
	if len(fn.Parameters) != 3 {
		t.Fatalf("got %d parameters, want 3", len(fn.Parameters))
	}
	if fn.Parameters[0].Optional {
		t.Error("first parameter has no default; must not be optional")
	}
	if !fn.Parameters[1].Optional || !fn.Parameters[2].Optional {
		t.Error("trailing defaulted parameters must be optional")
	}
}

func TestNonTrailingDefaultIsNotOptional(t *testing.T) {
	// A parameter is optional only if it and everything after it has a
	// default — a later required parameter breaks the trailing chain.
	builder := parseSource(t, `<?php
function f($a = 1, $b) {
}
`)
	pkg := findFunctionPackage(t, builder, "f")
	fn := pkg.Functions[0]
	if fn.Parameters[0].Optional {
		t.Error("$a must not be optional: a required parameter follows it")
	}
	if fn.Parameters[1].Optional {
		t.Error("$b has no default; must not be optional")
	}
}

func TestDefaultValueKinds(t *testing.T) {
	builder := parseSource(t, `<?php
function f($a = null, $b = true, $c = -3, $d = "hi", $e = array(1, 2)) {
}
`)
	pkg := findFunctionPackage(t, builder, "f")
	params := pkg.Functions[0].Parameters
	checks := []struct {
		kind model.ValueKind
	}{
		{model.ValueNull},
		{model.ValueBool},
		{model.ValueInt},
		{model.ValueString},
		{model.ValueArray},
	}
	for i, want := range checks {
		if !params[i].Default.Available {
			t.Errorf("param %d: default not available", i)
			continue
		}
		if params[i].Default.Kind != want.kind {
			t.Errorf("param %d: kind = %v, want %v", i, params[i].Default.Kind, want.kind)
		}
	}
	if params[2].Default.Int != -3 {
		t.Errorf("param 2: Int = %d, want -3", params[2].Default.Int)
	}
	if params[3].Default.Str != "hi" {
		t.Errorf("param 3: Str = %q, want hi", params[3].Default.Str)
	}
}

func TestThrowsAnnotationMultiset(t *testing.T) {
	builder := parseSource(t, `<?php
class Foo {
    /**
     * @throws FooException
     * @throws FooException
     * @throws BarException
     */
    public function bar() {
    }
}
`)
	ty, _ := builder.Type("+global::Foo")
	exc := ty.Methods[0].Exceptions
	if len(exc) != 3 {
		t.Fatalf("got %d exceptions, want 3", len(exc))
	}
	if exc[0].Name != "FooException" || exc[1].Name != "FooException" || exc[2].Name != "BarException" {
		t.Errorf("Exceptions = %+v", exc)
	}
}

func TestPropertyVarAnnotation(t *testing.T) {
	builder := parseSource(t, `<?php
class Foo {
    /** @var Bar */
    public $thing;
}
`)
	ty, _ := builder.Type("+global::Foo")
	prop := ty.Properties[0]
	if prop.Type == nil || prop.Type.Name != "Bar" {
		t.Errorf("Property.Type = %+v, want reference to Bar", prop.Type)
	}
}

func TestIgnoreAnnotationsSuppressesThrowsAndVar(t *testing.T) {
	builder := model.NewDefaultBuilder()
	p := New(builder)
	p.SetIgnoreAnnotations(true)
	err := p.Parse(token.NewTokenizer("test.php", `<?php
class Foo {
    /** @var Bar */
    public $thing;

    /** @throws BazException */
    public function m() {
    }
}
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	ty, _ := builder.Type("+global::Foo")
	if ty.Properties[0].Type != nil {
		t.Error("property type should be suppressed when ignoring annotations")
	}
	if len(ty.Methods[0].Exceptions) != 0 {
		t.Error("exceptions should be suppressed when ignoring annotations")
	}
}

// TestScenarioS1 mirrors spec scenario S1: a doc comment carrying @package
// is directly followed by a function declaration, which disqualifies it as
// a file comment — but the function still lands in the named package,
// because every top-level doc comment updates the current @package
// regardless of the narrower file-comment rule.
func TestScenarioS1(t *testing.T) {
	builder := parseSource(t, `<?php
/**
 * @package Foo
 */
function f() {
}
`)
	pkg := findFunctionPackage(t, builder, "f")
	if pkg.Name != "Foo" {
		t.Errorf("package = %q, want Foo", pkg.Name)
	}
}

// TestScenarioS2 mirrors spec scenario S2: the same doc comment, this time
// followed by a namespace declaration instead of a function. The comment
// now qualifies as a file comment (Namespace isn't a disqualifying token),
// and a function declared under the namespace is attributed to the
// namespace, not to the file's legacy @package.
func TestScenarioS2(t *testing.T) {
	builder := parseSource(t, `<?php
/**
 * @package Foo
 */
namespace A\B;

function f() {
}
`)
	pkg := findFunctionPackage(t, builder, "f")
	if pkg.Name != "A\\B" {
		t.Errorf("package = %q, want A\\B", pkg.Name)
	}
}

func TestNestedNamedFunctionAttributedToEnclosingPackage(t *testing.T) {
	// spec open question (b): a function declared inside another function's
	// body belongs to the enclosing package, not to the enclosing callable.
	builder := parseSource(t, `<?php
namespace App;

function outer() {
    function inner() {
    }
}
`)
	pkg := findFunctionPackage(t, builder, "outer")
	if len(pkg.Functions) != 2 {
		t.Fatalf("package has %d functions, want 2 (outer, inner)", len(pkg.Functions))
	}
	names := []string{pkg.Functions[0].Name, pkg.Functions[1].Name}
	if names[0] != "outer" || names[1] != "inner" {
		t.Errorf("Functions = %v, want [outer inner]", names)
	}
	if len(pkg.Functions[0].Dependencies) != 0 {
		t.Error("inner should not appear as a dependency of outer")
	}
}

func TestDependencyExtractionNewInstanceofCatch(t *testing.T) {
	builder := parseSource(t, `<?php
class Foo {
    public function bar() {
        new Thing();
        if ($x instanceof Marker) {
        }
        try {
        } catch (MyException $e) {
        }
    }
}
`)
	ty, _ := builder.Type("+global::Foo")
	deps := ty.Methods[0].Dependencies
	var names []string
	for _, d := range deps {
		names = append(names, d.Name)
	}
	want := []string{"Thing", "Marker", "MyException"}
	if len(names) != len(want) {
		t.Fatalf("Dependencies = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Dependencies[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestStaticAccessDependency(t *testing.T) {
	builder := parseSource(t, `<?php
class Foo {
    public function bar() {
        Helper::doThing();
    }
}
`)
	ty, _ := builder.Type("+global::Foo")
	deps := ty.Methods[0].Dependencies
	if len(deps) != 1 || deps[0].Name != "Helper" {
		t.Errorf("Dependencies = %+v, want [Helper]", deps)
	}
}

func TestForwardReferenceUnification(t *testing.T) {
	builder := parseSource(t, `<?php
class Foo {
    public function bar() {
        new LaterDeclared();
    }
}

class LaterDeclared {
}
`)
	ty, _ := builder.Type("+global::Foo")
	ref := ty.Methods[0].Dependencies[0]
	if ref.Resolved == nil {
		t.Fatal("reference to LaterDeclared should be unified once its declaration is parsed")
	}
	if ref.Resolved.Name != "+global::LaterDeclared" {
		t.Errorf("Resolved.Name = %q, want +global::LaterDeclared", ref.Resolved.Name)
	}
}

// TestIndependentParsesAreStructurallyEqual exercises property 7: two
// independent parsers, each with its own builder, parsing the same source
// produce graphs equal in every field but the builder-assigned IDs.
func TestIndependentParsesAreStructurallyEqual(t *testing.T) {
	src := `<?php
namespace App;

/**
 * @throws FooException
 */
class Foo extends Base implements IThing {
    /** @var Bar */
    public $thing;

    public function m($a, $b = 1) {
        new Helper();
    }
}
`
	b1 := parseSource(t, src)
	b2 := parseSource(t, src)

	t1, ok1 := b1.Type("App\\Foo")
	t2, ok2 := b2.Type("App\\Foo")
	if !ok1 || !ok2 {
		t.Fatal("App\\Foo not built by both parses")
	}

	ignoreIDs := cmpopts.IgnoreFields(model.Type{}, "ID", "Tokens")
	ignoreRefIDs := cmpopts.IgnoreFields(model.Reference{}, "ID", "Resolved")
	ignoreCallableIDs := cmpopts.IgnoreFields(model.Callable{}, "ID", "Tokens")
	ignorePropIDs := cmpopts.IgnoreFields(model.Property{}, "ID")

	if diff := cmp.Diff(t1, t2, ignoreIDs, ignoreRefIDs, ignoreCallableIDs, ignorePropIDs); diff != "" {
		t.Errorf("two independent parses produced different graphs (-got +want):\n%s", diff)
	}
}

func findFunctionPackage(t *testing.T, builder *model.DefaultBuilder, fnName string) *model.Package {
	t.Helper()
	for _, pkg := range builder.Packages() {
		for _, fn := range pkg.Functions {
			if fn.Name == fnName {
				return pkg
			}
		}
	}
	t.Fatalf("no package contains a function named %q", fnName)
	return nil
}
