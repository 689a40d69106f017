package resolver

import (
	"testing"

	"github.com/schmittjoh/pdepend/pkg/symtab"
)

func TestResolveLeadingSeparatorIsFullyQualified(t *testing.T) {
	r := New(symtab.New())
	got := r.Resolve([]string{"\\", "Foo", "\\", "Bar"}, Namespace{}, false)
	if want := "\\Foo\\Bar"; got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveAliasHit(t *testing.T) {
	symbols := symtab.New()
	symbols.PushScope()
	symbols.Add("Bar", "Some\\Bar")
	r := New(symbols)

	got := r.Resolve([]string{"Bar"}, Namespace{Name: "Other", Active: true}, false)
	if want := "Some\\Bar"; got != want {
		t.Errorf("Resolve() = %q, want %q (alias should win over namespace)", got, want)
	}
}

func TestResolvePrependsActiveNamespaceOnAliasMiss(t *testing.T) {
	r := New(symtab.New())
	got := r.Resolve([]string{"Bar"}, Namespace{Name: "Some\\Ns", Active: true}, false)
	if want := "Some\\Ns\\Bar"; got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveNamespacePrefixReplacedSkipsPrepend(t *testing.T) {
	r := New(symtab.New())
	// Simulates a `namespace\Bar` reference: the parser has already put the
	// current namespace's name in fragments[0].
	got := r.Resolve([]string{"Some\\Ns", "\\", "Bar"}, Namespace{Name: "Some\\Ns", Active: true}, true)
	if want := "Some\\Ns\\Bar"; got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveNoNamespaceLeavesLegacyNameAsIs(t *testing.T) {
	r := New(symtab.New())
	got := r.Resolve([]string{"Bar"}, Namespace{}, false)
	if want := "Bar"; got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveEmptyActiveNamespaceIsPreservedNotTreatedAsAbsent(t *testing.T) {
	// spec open question (c): `namespace {}` sets an active empty-string
	// namespace, distinct from no namespace at all.
	r := New(symtab.New())
	got := r.Resolve([]string{"Bar"}, Namespace{Name: "", Active: true}, false)
	if want := "\\Bar"; got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestDeclarationNameWithNamespace(t *testing.T) {
	got := DeclarationName("Foo", Namespace{Name: "A\\B", Active: true}, "ignored")
	if want := "A\\B\\Foo"; got != want {
		t.Errorf("DeclarationName() = %q, want %q", got, want)
	}
}

func TestDeclarationNameLegacyPackage(t *testing.T) {
	got := DeclarationName("Foo", Namespace{}, "Legacy")
	if want := "Legacy::Foo"; got != want {
		t.Errorf("DeclarationName() = %q, want %q", got, want)
	}
}
