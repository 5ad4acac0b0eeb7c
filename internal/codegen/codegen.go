package codegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/viewgen/viewgen/internal/ast"
	"github.com/viewgen/viewgen/internal/catalog"
)

// Generator emits Go source for widget trees.
type Generator struct {
	cat    *catalog.Catalog
	pkg    string
	header string
}

// New returns a generator targeting the given catalog and output package.
// header, when non-empty, is an extra comment line atop generated files.
func New(cat *catalog.Catalog, pkg, header string) *Generator {
	if cat == nil {
		cat = &catalog.Catalog{}
	}
	return &Generator{cat: cat, pkg: pkg, header: header}
}

// File generates the Go source for every entity parsed from one source
// file. Entities whose tree embeds a ParseError contribute diagnostics
// instead of code; the others still generate. A nil byte slice is
// returned when nothing generated.
func (g *Generator) File(srcName string, entities []ast.TopLevelWidget) ([]byte, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	var funcs []string
	aliases := map[string]bool{}

	for _, entity := range entities {
		if errs := entity.Inner.ParseErrors(); errs.HasErrors() {
			diags = append(diags, errs...)
			continue
		}
		fn, fnDiags := g.entity(entity, aliases)
		diags = append(diags, fnDiags...)
		if fnDiags.HasErrors() {
			continue
		}
		funcs = append(funcs, fn)
	}
	if len(funcs) == 0 {
		return nil, diags
	}

	var sb strings.Builder
	sb.WriteString("// Code generated by viewgen from " + srcName + ". DO NOT EDIT.\n")
	if g.header != "" {
		sb.WriteString("// " + g.header + "\n")
	}
	sb.WriteString("\npackage " + g.pkg + "\n")
	sb.WriteString(g.renderImports(aliases, &diags))
	for _, fn := range funcs {
		sb.WriteString("\n" + fn)
	}
	return []byte(sb.String()), diags
}

func (g *Generator) renderImports(aliases map[string]bool, diags *hcl.Diagnostics) string {
	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}
	sort.Strings(names)

	var lines []string
	for _, alias := range names {
		path := g.cat.ImportFor(alias)
		if path == "" {
			*diags = append(*diags, &hcl.Diagnostic{
				Severity: hcl.DiagWarning,
				Summary:  "Unknown toolkit package",
				Detail:   fmt.Sprintf("No catalog import mapping for %q; the generated file will not import it.", alias),
			})
			continue
		}
		lines = append(lines, fmt.Sprintf("\t%s %q\n", alias, path))
	}
	if len(lines) == 0 {
		return ""
	}
	return "\nimport (\n" + strings.Join(lines, "") + ")\n"
}

// entity renders one Build* function.
func (g *Generator) entity(entity ast.TopLevelWidget, aliases map[string]bool) (string, hcl.Diagnostics) {
	em := &emitter{gen: g, names: map[string]bool{}, aliases: aliases}

	params := em.localParams(&entity.Inner)
	retType := em.widgetType(&entity.Inner)
	funcName := "Build" + catalog.Camel(entity.Inner.Name)

	rootVar := em.walk(&entity.Inner)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("// %s builds the %s widget tree.", funcName, entity.Inner.Name))
	if entity.RootAttr != nil {
		sb.WriteString(" It is the root of its view.")
	}
	sb.WriteString("\n")
	for _, line := range docLines(entity.Inner.Doc) {
		sb.WriteString("// " + line + "\n")
	}
	sb.WriteString(fmt.Sprintf("func %s(%s) %s {\n", funcName, strings.Join(params, ", "), retType))
	sb.WriteString(em.buf.String())
	sb.WriteString("\treturn " + rootVar + "\n}\n")
	return sb.String(), em.diags
}

// emitter accumulates the statements of one Build function.
type emitter struct {
	gen     *Generator
	buf     strings.Builder
	names   map[string]bool
	aliases map[string]bool
	diags   hcl.Diagnostics
}

// localParams collects #[local] widgets anywhere in the tree; they become
// parameters of the Build function in declaration order.
func (em *emitter) localParams(w *ast.Widget) []string {
	var params []string
	if w.Attr == ast.WidgetAttrLocal {
		params = append(params, w.Name+" "+em.widgetType(w))
	}
	for _, prop := range w.Properties {
		if child, ok := prop.Type.(ast.WidgetProperty); ok {
			params = append(params, em.localParams(child.Widget)...)
		}
	}
	return params
}

func (em *emitter) widgetType(w *ast.Widget) string {
	em.noteAlias(w.Func.Path)
	if len(w.Func.Type) > 0 {
		em.noteAlias(w.Func.Type)
		return em.gen.cat.TypeFor(w.Func.Type)
	}
	return em.gen.cat.TypeFor(w.Func.Path)
}

// walk emits construction and configuration for w and returns its
// variable name.
func (em *emitter) walk(w *ast.Widget) string {
	name := em.unique(w.Name)

	for _, line := range docLines(w.Doc) {
		em.line("// " + line)
	}
	if w.Attr != ast.WidgetAttrLocal {
		em.line(name + " := " + em.constructorExpr(w))
	}

	for _, prop := range w.Properties {
		em.property(w, name, prop)
	}
	return name
}

func (em *emitter) property(parent *ast.Widget, recv string, prop ast.Property) {
	switch ty := prop.Type.(type) {
	case ast.ValueProperty:
		method := em.gen.cat.SetterFor(parent.Func.Path, prop.Name.String())
		em.line(fmt.Sprintf("%s.%s(%s)", recv, method, renderValue(ty.Value)))

	case ast.TupleProperty:
		method := em.gen.cat.SetterFor(parent.Func.Path, prop.Name.String())
		em.line(fmt.Sprintf("%s.%s(%s)", recv, method, em.renderExprs(ty.Items)))

	case ast.ExprProperty:
		method := em.gen.cat.SetterFor(parent.Func.Path, prop.Name.String())
		em.line(fmt.Sprintf("%s.%s(%s)", recv, method, ty.Raw))

	case ast.SignalProperty:
		method := em.gen.cat.SignalFor(parent.Func.Path, prop.Name.String())
		em.line(fmt.Sprintf("%s.%s(%s)", recv, method, ty.Handler))

	case ast.WidgetProperty:
		em.child(parent, recv, prop.Name, ty.Widget)

	case ast.ParseErrorProperty:
		// Already surfaced by File; a tree with embedded errors never
		// reaches the emitter.
		em.diags = append(em.diags, ty.Diags...)
	}
}

// child emits a child widget and its attachment to the parent.
func (em *emitter) child(parent *ast.Widget, recv string, propName ast.PropertyName, child *ast.Widget) {
	childVar := em.walk(child)

	method := ""
	if len(propName.Parts) > 0 {
		method = em.gen.cat.SetterFor(parent.Func.Path, propName.String())
	} else {
		method = em.gen.cat.ChildMethodFor(parent.Func.Path)
		if method == "" {
			em.diags = append(em.diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "No attach method for child widget",
				Detail: fmt.Sprintf(
					"The catalog defines no child_method for %s; name the attachment property or extend the catalog.",
					parent.Func.PathString()),
				Subject: child.Func.PathRange.Ptr(),
			})
			return
		}
	}

	args := []string{em.widgetRef(child, childVar)}
	for _, arg := range child.Args {
		args = append(args, em.renderExpr(arg))
	}
	call := fmt.Sprintf("%s.%s(%s)", recv, method, strings.Join(args, ", "))

	if ret := child.ReturnedWidget; ret != nil {
		em.noteAlias(ret.Path)
		retVar := em.unique(ret.Name)
		em.line(retVar + " := " + call)
		for _, prop := range ret.Properties {
			em.property(&ast.Widget{Func: ast.WidgetFunc{Path: ret.Path}}, retVar, prop)
		}
		return
	}
	em.line(call)
}

// widgetRef renders how the child value is passed to its parent.
func (em *emitter) widgetRef(w *ast.Widget, name string) string {
	switch {
	case w.Ref:
		return "&" + name
	case w.Deref:
		return "*" + name
	default:
		return name
	}
}

func (em *emitter) constructorExpr(w *ast.Widget) string {
	em.noteAlias(w.Func.Path)
	expr := em.gen.cat.ConstructorFor(w.Func.Path)
	if w.Func.Args != nil {
		expr += "(" + em.renderExprs(w.Func.Args) + ")"
	} else {
		expr += "()"
	}
	for _, call := range w.Func.MethodChain {
		expr += "." + catalog.Camel(call.Name) + "(" + em.renderExprs(call.Args) + ")"
	}
	return expr
}

func (em *emitter) renderExprs(exprs []ast.Expr) string {
	parts := make([]string, len(exprs))
	for i, expr := range exprs {
		parts[i] = em.renderExpr(expr)
	}
	return strings.Join(parts, ", ")
}

func (em *emitter) renderExpr(expr ast.Expr) string {
	if expr.IsLiteral() {
		return renderValue(expr.Value)
	}
	return expr.Raw
}

func renderValue(v cty.Value) string {
	switch v.Type() {
	case cty.String:
		return strconv.Quote(v.AsString())
	case cty.Bool:
		return strconv.FormatBool(v.True())
	case cty.Number:
		return v.AsBigFloat().Text('f', -1)
	default:
		// The parser only produces string, bool and number literals.
		return v.GoString()
	}
}

// unique returns name, suffixed when a sibling already claimed it.
func (em *emitter) unique(name string) string {
	if !em.names[name] {
		em.names[name] = true
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s%d", name, i)
		if !em.names[candidate] {
			em.names[candidate] = true
			return candidate
		}
	}
}

// noteAlias records the package prefix of a dotted path for the import
// block.
func (em *emitter) noteAlias(path []string) {
	if len(path) > 1 {
		em.aliases[path[0]] = true
	}
}

func (em *emitter) line(s string) {
	em.buf.WriteString("\t" + s + "\n")
}

func docLines(doc string) []string {
	if doc == "" {
		return nil
	}
	return strings.Split(doc, "\n")
}
