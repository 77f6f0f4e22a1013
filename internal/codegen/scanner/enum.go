package scanner

import (
	"fmt"
	"go/ast"
	"go/build"
	"go/parser"
	"go/token"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/Alia5/httperrgen/internal/codegen/annotation"
	"github.com/Alia5/httperrgen/internal/codegen/meta"
)

// Package is a parsed Go package directory.
type Package struct {
	Dir   string
	Name  string
	Fset  *token.FileSet
	Files []*ast.File
}

// underlying types a constant enum can be declared over
var basicKinds = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"uintptr": true, "byte": true, "rune": true, "string": true,
}

// LoadPackage parses the non-test Go files of dir that match the current
// build context.
func LoadPackage(dir string) (*Package, error) {
	bp, err := build.Default.ImportDir(dir, 0)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", dir, err)
	}

	pkg := &Package{Dir: dir, Name: bp.Name, Fset: token.NewFileSet()}
	for _, name := range bp.GoFiles {
		path := filepath.Join(dir, name)
		f, err := parser.ParseFile(pkg.Fset, path, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parse file: %w", err)
		}
		pkg.Files = append(pkg.Files, f)
	}
	return pkg, nil
}

// ScanEnum loads dir and describes the enum named typeName.
func ScanEnum(dir, typeName string) (*meta.Enum, error) {
	pkg, err := LoadPackage(dir)
	if err != nil {
		return nil, err
	}
	return pkg.Enum(typeName)
}

// Enum describes the type named typeName. It fails with a *meta.ShapeError
// when the type is not a defined integer or string type with constants.
func (p *Package) Enum(typeName string) (*meta.Enum, error) {
	ts := p.findType(typeName)
	if ts == nil {
		return nil, fmt.Errorf("type %s not found in package %s (%s)", typeName, p.Name, p.Dir)
	}
	pos := p.Fset.Position(ts.Pos())

	underlying, err := checkShape(ts, pos)
	if err != nil {
		return nil, err
	}

	enum := &meta.Enum{
		Package:    p.Name,
		Name:       typeName,
		Underlying: underlying,
		Pos:        pos,
	}

	seenImport := make(map[string]bool)
	for _, f := range p.Files {
		variants := p.fileVariants(f, typeName)
		if len(variants) == 0 {
			continue
		}
		enum.Variants = append(enum.Variants, variants...)
		for _, imp := range fileImports(f) {
			if key := imp.Spec(); !seenImport[key] {
				seenImport[key] = true
				enum.Imports = append(enum.Imports, imp)
			}
		}
	}

	if len(enum.Variants) == 0 {
		return nil, &meta.ShapeError{
			Type:   typeName,
			Kind:   "defined " + underlying + " type",
			Pos:    pos,
			Reason: "no constants of this type are declared",
		}
	}
	return enum, nil
}

// HasType reports whether the package declares a type named name.
func (p *Package) HasType(name string) bool {
	return p.findType(name) != nil
}

func (p *Package) findType(name string) *ast.TypeSpec {
	for _, f := range p.Files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				if ts, ok := spec.(*ast.TypeSpec); ok && ts.Name.Name == name {
					return ts
				}
			}
		}
	}
	return nil
}

func checkShape(ts *ast.TypeSpec, pos token.Position) (string, error) {
	name := ts.Name.Name
	if ts.Assign.IsValid() {
		return "", &meta.ShapeError{Type: name, Kind: "type alias", Pos: pos,
			Reason: "methods cannot be declared on an alias, declare a defined type instead"}
	}
	if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
		return "", &meta.ShapeError{Type: name, Kind: "generic type", Pos: pos}
	}

	var kind string
	switch t := ts.Type.(type) {
	case *ast.Ident:
		if basicKinds[t.Name] {
			return t.Name, nil
		}
		return "", &meta.ShapeError{Type: name, Kind: "defined type over " + t.Name, Pos: pos,
			Reason: "the underlying type must be a basic integer or string type"}
	case *ast.StructType:
		kind = "struct"
	case *ast.InterfaceType:
		kind = "interface"
	case *ast.MapType:
		kind = "map"
	case *ast.ArrayType:
		kind = "array"
		if t.Len == nil {
			kind = "slice"
		}
	case *ast.FuncType:
		kind = "func"
	case *ast.ChanType:
		kind = "channel"
	case *ast.StarExpr:
		kind = "pointer"
	case *ast.SelectorExpr:
		return "", &meta.ShapeError{Type: name, Kind: "defined type over an imported type", Pos: pos,
			Reason: "the underlying type must be a basic integer or string type"}
	default:
		kind = fmt.Sprintf("%T", ts.Type)
	}
	return "", &meta.ShapeError{Type: name, Kind: kind, Pos: pos}
}

// fileVariants returns the constants of type typeName declared in f.
// Specs without type or value repeat the previous spec of the block, so
// iota sequences are picked up.
func (p *Package) fileVariants(f *ast.File, typeName string) []meta.Variant {
	var variants []meta.Variant
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.CONST {
			continue
		}

		typ := ""
		for _, spec := range gd.Specs {
			vs := spec.(*ast.ValueSpec)
			switch {
			case vs.Type != nil:
				typ = ""
				if id, ok := vs.Type.(*ast.Ident); ok {
					typ = id.Name
				}
			case len(vs.Values) > 0:
				typ = conversionTarget(vs.Values[0])
			}
			if typ != typeName {
				continue
			}

			doc := vs.Doc
			if !gd.Lparen.IsValid() {
				doc = gd.Doc
			}
			blocks := annotation.Directives(p.Fset, doc, vs.Comment)

			for _, id := range vs.Names {
				if id.Name == "_" {
					continue
				}
				variants = append(variants, meta.Variant{
					Name:        id.Name,
					Pos:         p.Fset.Position(id.Pos()),
					Annotations: slices.Clone(blocks),
				})
			}
		}
	}
	return variants
}

// conversionTarget returns T for a value of the form T(x).
func conversionTarget(expr ast.Expr) string {
	call, ok := expr.(*ast.CallExpr)
	if !ok || len(call.Args) != 1 {
		return ""
	}
	if id, ok := call.Fun.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

// fileImports returns the named and plain imports of f. Blank and dot
// imports are never needed by a selector in a detail value.
func fileImports(f *ast.File) []meta.Import {
	var imports []meta.Import
	for _, spec := range f.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		imp := meta.Import{Path: path}
		if spec.Name != nil {
			if spec.Name.Name == "_" || spec.Name.Name == "." {
				continue
			}
			imp.Name = spec.Name.Name
		}
		imports = append(imports, imp)
	}
	return imports
}
