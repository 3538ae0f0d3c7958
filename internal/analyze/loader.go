package analyze

import (
	"fmt"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"

	"golang.org/x/tools/go/packages"

	"measurement-generator/primitive"
	"measurement-generator/schema"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and collects annotated structs.
type Analyzer struct {
	// Dir is the working directory for package patterns; empty means the
	// current directory.
	Dir string
	// TagKey is the struct tag key that marks a struct as a candidate.
	TagKey string
}

// NewAnalyzer creates an Analyzer for the default tag key.
func NewAnalyzer() *Analyzer {
	return &Analyzer{TagKey: schema.DefaultTagKey}
}

// LoadPackages loads the packages matching patterns and returns their
// candidates in source order. Patterns are standard Go package patterns
// (e.g., "./examples/sensors", "measurement-generator/examples/...").
func (a *Analyzer) LoadPackages(patterns ...string) ([]*Package, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	out := make([]*Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		out = append(out, a.processPackage(pkg))
	}

	return out, nil
}

// processPackage extracts candidate structs from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) *Package {
	info := &Package{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	if len(pkg.GoFiles) > 0 {
		info.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	scope := pkg.Types.Scope()

	var names []*types.TypeName
	for _, name := range scope.Names() {
		// Only process type names (not variables, constants, functions)
		if tn, ok := scope.Lookup(name).(*types.TypeName); ok && !tn.IsAlias() {
			names = append(names, tn)
		}
	}

	// Scope names are sorted alphabetically; generated code follows the
	// declaration order instead.
	slices.SortFunc(names, func(x, y *types.TypeName) int {
		return int(x.Pos() - y.Pos())
	})

	for _, tn := range names {
		named, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}

		st, ok := named.Underlying().(*types.Struct)
		if !ok || !a.annotated(st) {
			continue
		}

		def := structDef(tn.Name(), pkg.PkgPath, st)
		def.Generic = named.TypeParams().Len() > 0

		info.Types = append(info.Types, Candidate{
			ID:  TypeID{PkgPath: pkg.PkgPath, Name: tn.Name()},
			Def: def,
		})
	}

	return info
}

// annotated reports whether any field mentions the tag key. Broken tags count
// as annotated so the resolver gets to report them.
func (a *Analyzer) annotated(st *types.Struct) bool {
	for i := range st.NumFields() {
		values, err := schema.Lookup(st.Tag(i), a.TagKey)
		if err != nil || len(values) > 0 {
			return true
		}
	}

	return false
}

func structDef(name, pkgPath string, st *types.Struct) schema.TypeDef {
	def := schema.TypeDef{
		Name:    name,
		PkgPath: pkgPath,
		Struct:  true,
	}

	for i := range st.NumFields() {
		field := st.Field(i)
		def.Fields = append(def.Fields, schema.FieldDef{
			Name:     field.Name(),
			Index:    i,
			Exported: field.Exported(),
			Embedded: field.Embedded(),
			Tag:      st.Tag(i),
			Kind:     primitive.FromGoType(field.Type()),
			Stringer: types.Implements(field.Type(), stringer),
			Nilable:  nilable(field.Type()),
		})
	}

	return def
}

func nilable(t types.Type) bool {
	switch t.Underlying().(type) {
	case *types.Pointer, *types.Interface:
		return true
	}

	return false
}

// stringer is fmt.Stringer built without importing fmt's type information.
var stringer = func() *types.Interface {
	result := types.NewTuple(types.NewVar(token.NoPos, nil, "", types.Typ[types.String]))
	sig := types.NewSignatureType(nil, nil, nil, nil, result, false)
	method := types.NewFunc(token.NoPos, nil, "String", sig)

	return types.NewInterfaceType([]*types.Func{method}, nil).Complete()
}()
