package ast

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Fallback identifiers used when a top-level widget body fails to parse.
// The names are fixed so that generated output (and tests) can rely on them.
const (
	FallbackWidgetName   = "incorrect_top_level_widget"
	FallbackPropertyName = "invalid_property"
)

// FallbackFuncPath is the constructor path of the placeholder widget.
func FallbackFuncPath() []string {
	return []string{"gtk", "Box"}
}

// AttrKind classifies the attributes that may precede a widget.
type AttrKind int

const (
	// AttrRoot marks the widget as the root of its tree.
	AttrRoot AttrKind = iota
	// AttrName names the widget explicitly: #[name(my_button)].
	AttrName
	// AttrDoc attaches documentation text: #[doc = "..."].
	AttrDoc
	// AttrLocal declares that the widget refers to an existing local value
	// instead of being constructed.
	AttrLocal
)

var attrKindNames = map[AttrKind]string{
	AttrRoot:  "root",
	AttrName:  "name",
	AttrDoc:   "doc",
	AttrLocal: "local",
}

func (k AttrKind) String() string { return attrKindNames[k] }

// Attr is one attribute marker, e.g. #[root] or #[name(sidebar)].
type Attr struct {
	Kind  AttrKind
	Arg   string // payload of name and doc attributes, empty otherwise
	Range hcl.Range
}

// Attrs is an ordered attribute list. Order among non-root attributes is
// significant and must survive root extraction.
type Attrs []Attr

// TopLevelWidget is the result of one top-level parse: the root marker, if
// any, plus the widget subtree.
type TopLevelWidget struct {
	// RootAttr is the extracted #[root] marker. It is kept out of the
	// widget's attribute list so the generator can treat it separately.
	RootAttr *Attr
	Inner    Widget
}

// WidgetAttrKind is the widget-level attribute state.
type WidgetAttrKind int

const (
	// WidgetAttrNone means the widget is constructed by the generated code.
	WidgetAttrNone WidgetAttrKind = iota
	// WidgetAttrLocal means the widget refers to a local value instead.
	WidgetAttrLocal
)

// Widget is one constructible UI object in the declared tree.
type Widget struct {
	Doc     string
	Attr    WidgetAttrKind
	Mutable bool

	// Name is the variable name of the widget, normalized to snake case.
	Name string

	// Func describes how to construct the underlying object.
	Func WidgetFunc

	// Args are extra arguments passed when the widget is attached to its
	// parent, e.g. child.append_page(page, extra).
	Args []Expr

	Properties Properties

	// Wrapper, Ref and Deref adapt how the widget value is passed to the
	// parent: wrapper(ident), &widget, *widget.
	Wrapper string
	Ref     bool
	Deref   bool

	// ReturnedWidget configures the object returned by the attach call,
	// for builder APIs that return a different object than they consume.
	ReturnedWidget *ReturnedWidget
}

// ReturnedWidget is the "-> path { ... }" sub-node of a widget.
type ReturnedWidget struct {
	Name       string
	Path       []string
	Properties Properties
	Range      hcl.Range
}

// WidgetFunc is the function descriptor of a widget: the constructor path,
// optional call arguments, an optional method chain and an optional type
// annotation.
type WidgetFunc struct {
	Path      []string
	PathRange hcl.Range

	// Args is nil when the path was written without parentheses; an empty
	// non-nil slice means an explicit zero-argument call.
	Args []Expr

	MethodChain []MethodCall

	// Type is the annotated result type path, empty when omitted.
	Type []string
}

// PathString renders the constructor path in source form.
func (f WidgetFunc) PathString() string {
	return strings.Join(f.Path, ".")
}

// MethodCall is one link of a method chain, e.g. ".spacing(5)".
type MethodCall struct {
	Name string
	Args []Expr
}

// Expr is a property or argument value. Literal values carry a cty.Value;
// anything else is kept as raw source text for pass-through emission.
type Expr struct {
	Raw   string
	Value cty.Value // cty.NilVal when the expression is not a literal
	Range hcl.Range
}

// IsLiteral reports whether the expression carries a typed literal value.
func (e Expr) IsLiteral() bool { return e.Value.Type() != cty.NilType }

// Properties is the ordered property list of a widget. Order reflects
// assignment order in the generated code.
type Properties []Property

// Property is a named configuration item applied to a widget.
type Property struct {
	Name PropertyName
	Type PropertyType
}

// PropertyName is a plain identifier or a dotted path.
type PropertyName struct {
	Parts []string
	Range hcl.Range
}

// String renders the name in source form.
func (n PropertyName) String() string { return strings.Join(n.Parts, ".") }

// PropertyType is the closed sum of property payloads. The generator must
// switch over every arm.
type PropertyType interface {
	propertyType()
}

// ValueProperty assigns a literal value.
type ValueProperty struct {
	Value cty.Value
	Range hcl.Range
}

// ExprProperty assigns a raw pass-through expression.
type ExprProperty struct {
	Raw   string
	Range hcl.Range
}

// TupleProperty assigns multiple arguments at once: set_size: (320, 240).
type TupleProperty struct {
	Items []Expr
	Range hcl.Range
}

// WidgetProperty attaches a child widget.
type WidgetProperty struct {
	Widget *Widget
}

// SignalProperty connects a signal to a handler: connect_clicked => on_click.
type SignalProperty struct {
	Handler string
	Range   hcl.Range
}

// ParseErrorProperty embeds the diagnostics of a failed sub-parse. A tree
// containing this arm still generates output for its siblings; the
// diagnostics surface at the recorded source ranges.
type ParseErrorProperty struct {
	Diags hcl.Diagnostics
}

func (ValueProperty) propertyType()      {}
func (ExprProperty) propertyType()       {}
func (TupleProperty) propertyType()      {}
func (WidgetProperty) propertyType()     {}
func (SignalProperty) propertyType()     {}
func (ParseErrorProperty) propertyType() {}

// HasParseError reports whether any property in the subtree is a
// ParseErrorProperty.
func (w *Widget) HasParseError() bool {
	for _, p := range w.Properties {
		switch ty := p.Type.(type) {
		case ParseErrorProperty:
			return true
		case WidgetProperty:
			if ty.Widget.HasParseError() {
				return true
			}
		}
	}
	return false
}

// ParseErrors collects the diagnostics of every ParseErrorProperty in the
// subtree, in property order.
func (w *Widget) ParseErrors() hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, p := range w.Properties {
		switch ty := p.Type.(type) {
		case ParseErrorProperty:
			diags = append(diags, ty.Diags...)
		case WidgetProperty:
			diags = append(diags, ty.Widget.ParseErrors()...)
		}
	}
	return diags
}
