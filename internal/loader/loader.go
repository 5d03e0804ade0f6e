// Package loader reads annotated type definitions from Go packages.
//
// Loading is syntax-only: field shapes are built from the AST without type
// checking, which is all bound inference needs. Enums follow the sealed
// interface convention: an interface with an is<Name>() marker method is the
// enum, and every struct in the package declaring that method is one of its
// variants, in declaration order.
package loader

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/seitarof/gen-debug/internal/model"
)

const directiveMarker = "//debug:"

// Loader extracts annotated definitions from one package.
type Loader interface {
	// Load returns the definitions for the named types plus every type
	// carrying at least one directive, in declaration order.
	Load(pkgPath string, typeNames []string) ([]*model.TypeDefinition, error)
}

type loaderImpl struct{}

// New returns the default loader.
func New() Loader {
	return &loaderImpl{}
}

// typeDecl couples a type spec with its enclosing declaration's doc comment.
type typeDecl struct {
	spec *ast.TypeSpec
	doc  *ast.CommentGroup // GenDecl doc when the spec has none
	pos  token.Pos
}

func (l *loaderImpl) Load(pkgPath string, typeNames []string) ([]*model.TypeDefinition, error) {
	pkg, err := l.loadPackage(pkgPath)
	if err != nil {
		return nil, err
	}

	decls, markerMethods := collectDecls(pkg)

	var defs []*model.TypeDefinition
	consumed := map[string]bool{}

	// Enums first so their variant structs are not re-emitted as structs.
	for _, d := range decls {
		iface, ok := d.spec.Type.(*ast.InterfaceType)
		if !ok {
			continue
		}
		marker := "is" + d.spec.Name.Name
		if !hasMethod(iface, marker) {
			continue
		}
		def := buildEnum(pkg, d, marker, decls, markerMethods)
		consumed[d.spec.Name.Name] = true
		for _, v := range def.Variants {
			consumed[v.Name] = true
		}
		defs = append(defs, def)
	}
	for _, d := range decls {
		if consumed[d.spec.Name.Name] {
			continue
		}
		if _, ok := d.spec.Type.(*ast.StructType); !ok {
			continue
		}
		defs = append(defs, buildStruct(pkg, d))
	}

	return selectDefs(defs, typeNames, pkgPath)
}

func (l *loaderImpl) loadPackage(pkgPath string) (*packages.Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedSyntax,
	}

	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("load package %q: %w", pkgPath, err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("package %q has load errors", pkgPath)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("package %q not found", pkgPath)
	}
	return pkgs[0], nil
}

// collectDecls walks every file in source order, gathering type declarations
// and the receiver base types of is*() marker methods.
func collectDecls(pkg *packages.Package) ([]typeDecl, map[string][]string) {
	var decls []typeDecl
	markerMethods := map[string][]string{} // method name -> receiver base types, in order

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}
				for _, spec := range d.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					td := typeDecl{spec: ts, pos: ts.Pos()}
					// A grouped declaration's doc belongs to the group,
					// not to each spec inside it.
					if ts.Doc == nil && len(d.Specs) == 1 {
						td.doc = d.Doc
					}
					decls = append(decls, td)
				}
			case *ast.FuncDecl:
				if d.Recv == nil || len(d.Recv.List) == 0 {
					continue
				}
				if !strings.HasPrefix(d.Name.Name, "is") {
					continue
				}
				if base := receiverBaseName(d.Recv.List[0].Type); base != "" {
					markerMethods[d.Name.Name] = append(markerMethods[d.Name.Name], base)
				}
			}
		}
	}
	return decls, markerMethods
}

func buildStruct(pkg *packages.Package, d typeDecl) *model.TypeDefinition {
	def := &model.TypeDefinition{
		Kind:    model.StructDef,
		Name:    d.spec.Name.Name,
		PkgName: pkg.Name,
		PkgPath: pkg.PkgPath,
		Params:  typeParams(d.spec),
	}
	appendDirectives(&def.Raw, pkg.Fset, d.doc, d.spec.Doc, d.spec.Comment)

	params := paramSet(def.Params)
	def.Fields = buildFields(pkg, d.spec.Type.(*ast.StructType), params)
	return def
}

func buildEnum(pkg *packages.Package, d typeDecl, marker string, decls []typeDecl, markerMethods map[string][]string) *model.TypeDefinition {
	def := &model.TypeDefinition{
		Kind:    model.EnumDef,
		Name:    d.spec.Name.Name,
		PkgName: pkg.Name,
		PkgPath: pkg.PkgPath,
		Params:  typeParams(d.spec),
	}
	appendDirectives(&def.Raw, pkg.Fset, d.doc, d.spec.Doc, d.spec.Comment)

	variantNames := map[string]bool{}
	for _, name := range markerMethods[marker] {
		variantNames[name] = true
	}

	params := paramSet(def.Params)
	for _, vd := range decls {
		st, ok := vd.spec.Type.(*ast.StructType)
		if !ok || !variantNames[vd.spec.Name.Name] {
			continue
		}
		variant := model.Variant{Name: vd.spec.Name.Name}
		appendDirectives(&variant.Raw, pkg.Fset, vd.doc, vd.spec.Doc, vd.spec.Comment)
		// Variant type parameters must mirror the enum's by name;
		// shapes are resolved against the enum's parameter list.
		variant.Fields = buildFields(pkg, st, params)
		def.Variants = append(def.Variants, variant)
	}
	return def
}

func buildFields(pkg *packages.Package, st *ast.StructType, params map[string]bool) []model.Field {
	var fields []model.Field
	for _, f := range st.Fields.List {
		shape := buildShape(f.Type, params)
		var raw []model.RawDirective
		appendDirectives(&raw, pkg.Fset, f.Doc, f.Comment)

		if len(f.Names) == 0 {
			fields = append(fields, model.Field{
				Name:  embeddedFieldName(f.Type),
				Shape: shape,
				Raw:   raw,
			})
			continue
		}
		for _, name := range f.Names {
			fields = append(fields, model.Field{
				Name:  name.Name,
				Shape: shape,
				Raw:   raw,
			})
		}
	}
	return fields
}

// appendDirectives harvests //debug: comments from the given groups, keeping
// each payload's exact span.
func appendDirectives(dst *[]model.RawDirective, fset *token.FileSet, groups ...*ast.CommentGroup) {
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			text := c.Text
			if !strings.HasPrefix(text, directiveMarker) {
				continue
			}
			pos := fset.Position(c.Pos())
			*dst = append(*dst, model.RawDirective{
				Payload: text[len(directiveMarker):],
				Span: model.Span{
					File:      pos.Filename,
					Line:      pos.Line,
					Col:       pos.Column,
					Offset:    pos.Offset,
					EndOffset: pos.Offset + len(text),
				},
			})
		}
	}
}

func typeParams(spec *ast.TypeSpec) []model.Param {
	if spec.TypeParams == nil {
		return nil
	}
	var params []model.Param
	for _, f := range spec.TypeParams.List {
		for _, name := range f.Names {
			params = append(params, model.Param{Name: name.Name})
		}
	}
	return params
}

func paramSet(params []model.Param) map[string]bool {
	set := make(map[string]bool, len(params))
	for _, p := range params {
		set[p.Name] = true
	}
	return set
}

func buildShape(expr ast.Expr, params map[string]bool) *model.Shape {
	switch e := expr.(type) {
	case *ast.Ident:
		if params[e.Name] {
			return &model.Shape{Kind: model.ShapeParam, Name: e.Name}
		}
		return &model.Shape{Kind: model.ShapeNamed, Name: e.Name}
	case *ast.SelectorExpr:
		if x, ok := e.X.(*ast.Ident); ok && !params[x.Name] {
			return &model.Shape{Kind: model.ShapeNamed, Pkg: x.Name, Name: e.Sel.Name}
		}
		return &model.Shape{
			Kind: model.ShapeProjection,
			Name: e.Sel.Name,
			Elem: buildShape(e.X, params),
		}
	case *ast.StarExpr:
		return &model.Shape{Kind: model.ShapePointer, Elem: buildShape(e.X, params)}
	case *ast.ArrayType:
		kind := model.ShapeSlice
		if e.Len != nil {
			kind = model.ShapeArray
		}
		return &model.Shape{Kind: kind, Elem: buildShape(e.Elt, params)}
	case *ast.MapType:
		return &model.Shape{
			Kind: model.ShapeMap,
			Key:  buildShape(e.Key, params),
			Elem: buildShape(e.Value, params),
		}
	case *ast.IndexExpr:
		return instantiate(buildShape(e.X, params), buildShape(e.Index, params))
	case *ast.IndexListExpr:
		args := make([]*model.Shape, 0, len(e.Indices))
		for _, idx := range e.Indices {
			args = append(args, buildShape(idx, params))
		}
		return instantiate(buildShape(e.X, params), args...)
	case *ast.ParenExpr:
		return buildShape(e.X, params)
	default:
		return &model.Shape{Kind: model.ShapeOpaque}
	}
}

func instantiate(base *model.Shape, args ...*model.Shape) *model.Shape {
	if base.Kind != model.ShapeNamed {
		return &model.Shape{Kind: model.ShapeOpaque}
	}
	base.Args = args
	return base
}

func hasMethod(iface *ast.InterfaceType, name string) bool {
	for _, m := range iface.Methods.List {
		for _, n := range m.Names {
			if n.Name == name {
				return true
			}
		}
	}
	return false
}

func receiverBaseName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return receiverBaseName(e.X)
	case *ast.IndexExpr:
		return receiverBaseName(e.X)
	case *ast.IndexListExpr:
		return receiverBaseName(e.X)
	default:
		return ""
	}
}

func embeddedFieldName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.StarExpr:
		return embeddedFieldName(e.X)
	case *ast.IndexExpr:
		return embeddedFieldName(e.X)
	case *ast.IndexListExpr:
		return embeddedFieldName(e.X)
	default:
		return ""
	}
}

// selectDefs keeps the named definitions plus every annotated one.
func selectDefs(defs []*model.TypeDefinition, typeNames []string, pkgPath string) ([]*model.TypeDefinition, error) {
	if len(typeNames) == 0 {
		var out []*model.TypeDefinition
		for _, d := range defs {
			if isAnnotated(d) {
				out = append(out, d)
			}
		}
		return out, nil
	}

	byName := make(map[string]*model.TypeDefinition, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
	}

	selected := map[string]bool{}
	var out []*model.TypeDefinition
	for _, name := range typeNames {
		d, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("type %q not found in package %q", name, pkgPath)
		}
		if !selected[name] {
			selected[name] = true
			out = append(out, d)
		}
	}
	for _, d := range defs {
		if isAnnotated(d) && !selected[d.Name] {
			selected[d.Name] = true
			out = append(out, d)
		}
	}
	return out, nil
}

func isAnnotated(def *model.TypeDefinition) bool {
	if len(def.Raw) > 0 {
		return true
	}
	annotated := false
	for i := range def.Variants {
		if len(def.Variants[i].Raw) > 0 {
			annotated = true
		}
	}
	def.AllFields(func(f *model.Field) {
		if len(f.Raw) > 0 {
			annotated = true
		}
	})
	return annotated
}
