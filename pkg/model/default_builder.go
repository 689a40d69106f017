package model

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mpvl/unique"
)

// DefaultBuilder is the one concrete Builder this repository ships: a
// thread-safe, in-memory implementation that interns every declaration by
// its qualified/given name. A Reference built before its declaration
// exists is handed back again, already resolved, the moment the matching
// Build{Class,Interface} call arrives — so the parser never has to know
// whether a name was seen before.
type DefaultBuilder struct {
	mu sync.Mutex

	types      map[string]*Type
	packages   map[string]*Package
	classRefs  map[string]*Reference
	ifaceRefs  map[string]*Reference
	eitherRefs map[string]*Reference
}

// NewDefaultBuilder returns an empty DefaultBuilder ready to back one or
// many Parser.Parse calls.
func NewDefaultBuilder() *DefaultBuilder {
	return &DefaultBuilder{
		types:      make(map[string]*Type),
		packages:   make(map[string]*Package),
		classRefs:  make(map[string]*Reference),
		ifaceRefs:  make(map[string]*Reference),
		eitherRefs: make(map[string]*Reference),
	}
}

func (b *DefaultBuilder) getOrCreateType(name string, isInterface bool) *Type {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.getOrCreateTypeLocked(name, isInterface)
}

func (b *DefaultBuilder) getOrCreateTypeLocked(name string, isInterface bool) *Type {
	if t, ok := b.types[name]; ok {
		return t
	}
	t := &Type{ID: uuid.NewString(), Name: name, IsInterface: isInterface}
	b.types[name] = t
	b.unifyLocked(name, t)
	return t
}

// unifyLocked resolves any previously built reference to name against t,
// the declaration that just arrived for it. A legacy "package::Local"
// declaration also resolves references built under its bare local name,
// since references outside a namespace carry no package prefix.
func (b *DefaultBuilder) unifyLocked(name string, t *Type) {
	keys := []string{name}
	if i := strings.LastIndex(name, PackageSeparator); i >= 0 {
		keys = append(keys, name[i+len(PackageSeparator):])
	}
	for _, key := range keys {
		if r, ok := b.classRefs[key]; ok {
			r.Resolved = t
		}
		if r, ok := b.ifaceRefs[key]; ok {
			r.Resolved = t
		}
		if r, ok := b.eitherRefs[key]; ok {
			r.Resolved = t
		}
	}
}

// BuildClass implements Builder.
func (b *DefaultBuilder) BuildClass(name string) *Type {
	t := b.getOrCreateType(name, false)
	t.IsInterface = false
	return t
}

// BuildInterface implements Builder.
func (b *DefaultBuilder) BuildInterface(name string) *Type {
	t := b.getOrCreateType(name, true)
	return t
}

func (b *DefaultBuilder) buildRef(cache map[string]*Reference, name string, kind RefKind) *Reference {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r, ok := cache[name]; ok {
		return r
	}
	r := &Reference{ID: uuid.NewString(), Name: name, Kind: kind}
	if t, ok := b.types[name]; ok {
		r.Resolved = t
	}
	cache[name] = r
	return r
}

// BuildClassReference implements Builder.
func (b *DefaultBuilder) BuildClassReference(name string) *Reference {
	return b.buildRef(b.classRefs, name, RefClass)
}

// BuildInterfaceReference implements Builder.
func (b *DefaultBuilder) BuildInterfaceReference(name string) *Reference {
	return b.buildRef(b.ifaceRefs, name, RefInterface)
}

// BuildClassOrInterfaceReference implements Builder.
func (b *DefaultBuilder) BuildClassOrInterfaceReference(name string) *Reference {
	return b.buildRef(b.eitherRefs, name, RefClassOrInterface)
}

// BuildFunction implements Builder. Functions aren't deduplicated by name:
// every call returns a new node, and the parser attaches each to exactly
// one Package, which is the unit of identity a caller would dedupe on.
func (b *DefaultBuilder) BuildFunction(name string) *Callable {
	return &Callable{ID: uuid.NewString(), Kind: KindFunction, Name: name}
}

// BuildMethod implements Builder.
func (b *DefaultBuilder) BuildMethod(name string) *Callable {
	return &Callable{ID: uuid.NewString(), Kind: KindMethod, Name: name}
}

// BuildClosure implements Builder.
func (b *DefaultBuilder) BuildClosure() *Callable {
	return &Callable{ID: uuid.NewString(), Kind: KindClosure}
}

// BuildProperty implements Builder.
func (b *DefaultBuilder) BuildProperty(name string) *Property {
	return &Property{ID: uuid.NewString(), Name: name}
}

// BuildParameter implements Builder.
func (b *DefaultBuilder) BuildParameter(name string) *Parameter {
	return &Parameter{Name: name}
}

// BuildTypeConstant implements Builder.
func (b *DefaultBuilder) BuildTypeConstant(name string) *Constant {
	return &Constant{ID: uuid.NewString(), Name: name}
}

// BuildPackage implements Builder.
func (b *DefaultBuilder) BuildPackage(name string) *Package {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p, ok := b.packages[name]; ok {
		return p
	}
	p := &Package{Name: name}
	b.packages[name] = p
	return p
}

// TypeNames returns every class/interface name built so far, deduplicated
// and sorted for stable CLI/test output.
func (b *DefaultBuilder) TypeNames() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.types))
	for name := range b.types {
		names = append(names, name)
	}
	unique.Strings(&names)
	return names
}

// PackageNames returns every package name built so far, deduplicated and
// sorted.
func (b *DefaultBuilder) PackageNames() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.packages))
	for name := range b.packages {
		names = append(names, name)
	}
	unique.Strings(&names)
	return names
}

// Packages returns every package built so far, sorted by qualified name —
// pdepend's own summary reports are sorted this way for determinism.
func (b *DefaultBuilder) Packages() []*Package {
	b.mu.Lock()
	defer b.mu.Unlock()
	pkgs := make([]*Package, 0, len(b.packages))
	for _, p := range b.packages {
		pkgs = append(pkgs, p)
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Name < pkgs[j].Name })
	return pkgs
}

// Type looks up a previously built type by qualified name.
func (b *DefaultBuilder) Type(name string) (*Type, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.types[name]
	return t, ok
}
