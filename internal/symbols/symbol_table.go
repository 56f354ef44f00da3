// Package symbols implements Paw's scoped symbol table: variables,
// functions, struct/enum type definitions, and trait/impl bookkeeping
// used by the analyzer to check trait completeness and resolve method
// calls and enum-variant constructors.
package symbols

import (
	"github.com/samber/lo"

	"github.com/funvibe/pawc/internal/typesystem"
)

type SymbolKind int

const (
	VariableSymbol SymbolKind = iota
	FunctionSymbol
	StructSymbol
	EnumSymbol
	TraitSymbol
)

// Symbol is a single named entity resolvable in some scope.
type Symbol struct {
	Name       string
	Type       typesystem.Type
	Kind       SymbolKind
	IsMutable  bool
	IsConstant bool
}

// StructInfo records a struct declaration's fields (declaration order
// preserved for C struct emission) and its generic parameter names.
type StructInfo struct {
	Name          string
	FieldNames    []string
	FieldTypes    map[string]typesystem.Type
	GenericParams []string
}

func (si *StructInfo) FieldType(name string) (typesystem.Type, bool) {
	t, ok := si.FieldTypes[name]
	return t, ok
}

// EnumVariant is one constructor of an enum declaration; Payload is nil
// for a unit variant (no associated data).
type EnumVariant struct {
	Name    string
	Payload []typesystem.Type
}

// EnumInfo records an enum declaration's variants in declaration order
// (used both for tag assignment in codegen and exhaustiveness checking).
type EnumInfo struct {
	Name          string
	Variants      []EnumVariant
	GenericParams []string
}

func (ei *EnumInfo) VariantNames() []string {
	return lo.Map(ei.Variants, func(v EnumVariant, _ int) string { return v.Name })
}

func (ei *EnumInfo) Variant(name string) (EnumVariant, bool) {
	for _, v := range ei.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return EnumVariant{}, false
}

// TraitInfo records a trait declaration's method signatures.
type TraitInfo struct {
	Name    string
	Methods map[string]typesystem.Function
}

// ImplInfo records one `impl Trait for Type` block's provided methods,
// used by the analyzer's trait-completeness check (A007) and by the
// codegen backends' static-method-call lowering.
type ImplInfo struct {
	TraitName string
	TypeName  string
	Methods   map[string]typesystem.Function
}

// SymbolTable is a lexically scoped chain of variable/function bindings,
// plus a flat (non-scoped) registry of type-level declarations: structs,
// enums, traits, and impls are all file-scope/global in Paw.
type SymbolTable struct {
	store map[string]Symbol
	outer *SymbolTable

	structs map[string]*StructInfo
	enums   map[string]*EnumInfo
	traits  map[string]*TraitInfo
	impls   map[string][]*ImplInfo // keyed by TypeName

	// methodsByType caches, per named type, every method available on it
	// (from all of its impl blocks) by method name, for quick call
	// resolution independent of which trait provided it.
	methodsByType map[string]map[string]typesystem.Function
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		store:         make(map[string]Symbol),
		structs:       make(map[string]*StructInfo),
		enums:         make(map[string]*EnumInfo),
		traits:        make(map[string]*TraitInfo),
		impls:         make(map[string][]*ImplInfo),
		methodsByType: make(map[string]map[string]typesystem.Function),
	}
}

// NewEnclosedSymbolTable opens a child scope (function body, block, loop
// body) whose variable lookups fall through to outer. Type-level
// registries (structs/enums/traits/impls) always live on the root table;
// Define/Resolve on a child never touch them directly, callers should
// reach those through the methods below, which walk to Root()
// internally.
func NewEnclosedSymbolTable(outer *SymbolTable) *SymbolTable {
	return &SymbolTable{
		store: make(map[string]Symbol),
		outer: outer,
	}
}

func (s *SymbolTable) Root() *SymbolTable {
	if s.outer == nil {
		return s
	}
	return s.outer.Root()
}

func (s *SymbolTable) Define(name string, t typesystem.Type) {
	s.store[name] = Symbol{Name: name, Type: t, Kind: VariableSymbol}
}

func (s *SymbolTable) DefineMutable(name string, t typesystem.Type) {
	s.store[name] = Symbol{Name: name, Type: t, Kind: VariableSymbol, IsMutable: true}
}

func (s *SymbolTable) DefineFunction(name string, t typesystem.Function) {
	s.store[name] = Symbol{Name: name, Type: t, Kind: FunctionSymbol}
}

func (s *SymbolTable) Resolve(name string) (Symbol, bool) {
	if sym, ok := s.store[name]; ok {
		return sym, true
	}
	if s.outer != nil {
		return s.outer.Resolve(name)
	}
	return Symbol{}, false
}

// DefinedInCurrentScope reports whether name is already bound in this
// exact scope (not an outer one) — used to detect A004 shadowing errors
// within a single block.
func (s *SymbolTable) DefinedInCurrentScope(name string) bool {
	_, ok := s.store[name]
	return ok
}

func (s *SymbolTable) DefineStruct(info *StructInfo) {
	s.Root().structs[info.Name] = info
}

func (s *SymbolTable) Struct(name string) (*StructInfo, bool) {
	info, ok := s.Root().structs[name]
	return info, ok
}

func (s *SymbolTable) DefineEnum(info *EnumInfo) {
	s.Root().enums[info.Name] = info
}

func (s *SymbolTable) Enum(name string) (*EnumInfo, bool) {
	info, ok := s.Root().enums[name]
	return info, ok
}

// EnumForVariant finds the enum that declares a constructor named
// variant, used to resolve a bare `Variant(...)` construction or `is`
// pattern against its owning enum when the enum name is elided.
func (s *SymbolTable) EnumForVariant(variant string) (*EnumInfo, bool) {
	root := s.Root()
	for _, ei := range root.enums {
		if _, ok := ei.Variant(variant); ok {
			return ei, true
		}
	}
	return nil, false
}

func (s *SymbolTable) DefineTrait(info *TraitInfo) {
	s.Root().traits[info.Name] = info
}

func (s *SymbolTable) Trait(name string) (*TraitInfo, bool) {
	info, ok := s.Root().traits[name]
	return info, ok
}

func (s *SymbolTable) DefineImpl(info *ImplInfo) {
	root := s.Root()
	root.impls[info.TypeName] = append(root.impls[info.TypeName], info)
	if root.methodsByType[info.TypeName] == nil {
		root.methodsByType[info.TypeName] = make(map[string]typesystem.Function)
	}
	for name, fn := range info.Methods {
		root.methodsByType[info.TypeName][name] = fn
	}
}

func (s *SymbolTable) ImplsFor(typeName string) []*ImplInfo {
	return s.Root().impls[typeName]
}

// Method resolves a method call `receiver.method(...)` by looking across
// every impl block registered for typeName.
func (s *SymbolTable) Method(typeName, methodName string) (typesystem.Function, bool) {
	byName, ok := s.Root().methodsByType[typeName]
	if !ok {
		return typesystem.Function{}, false
	}
	fn, ok := byName[methodName]
	return fn, ok
}

// MissingTraitMethods returns which of trait's methods typeName's impl
// block(s) have not provided, for the A007 completeness check.
func (s *SymbolTable) MissingTraitMethods(traitName, typeName string) []string {
	root := s.Root()
	trait, ok := root.traits[traitName]
	if !ok {
		return nil
	}
	provided := root.methodsByType[typeName]
	var missing []string
	for name := range trait.Methods {
		if provided == nil {
			missing = append(missing, name)
			continue
		}
		if _, ok := provided[name]; !ok {
			missing = append(missing, name)
		}
	}
	return lo.Uniq(missing)
}
