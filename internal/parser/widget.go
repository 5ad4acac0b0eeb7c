package parser

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/viewgen/viewgen/internal/ast"
	"github.com/viewgen/viewgen/internal/token"
)

// parseWidget parses a widget declaration given its already-parsed
// attribute list and documentation text. Any syntax error fails the whole
// widget; recovery happens only at the top-level entry point.
func (p *Parser) parseWidget(attrs ast.Attrs, doc string) (ast.Widget, hcl.Diagnostics) {
	w := ast.Widget{Doc: doc}
	for _, attr := range attrs {
		switch attr.Kind {
		case ast.AttrName:
			w.Name = attr.Arg
		case ast.AttrDoc:
			w.Doc = joinDoc(w.Doc, attr.Arg)
		case ast.AttrLocal:
			w.Attr = ast.WidgetAttrLocal
		}
	}

	// Value adapters: some(...), &, *.
	if p.at(token.Ident) && p.peek().Text == "some" && p.peekAt(1).Kind == token.LParen {
		w.Wrapper = p.next().Text
		p.next() // "("
		parsed, diags := p.parseWidgetValue(w)
		if diags.HasErrors() {
			return parsed, diags
		}
		_, diags = p.expect(token.RParen, "wrapped widget")
		return parsed, diags
	}
	return p.parseWidgetValue(w)
}

// parseWidgetValue continues after the optional wrapper.
func (p *Parser) parseWidgetValue(w ast.Widget) (ast.Widget, hcl.Diagnostics) {
	if _, ok := p.accept(token.Amp); ok {
		w.Ref = true
	} else if _, ok := p.accept(token.Star); ok {
		w.Deref = true
	}

	if p.at(token.Ident) && p.peek().Text == "mut" && p.peekAt(1).Kind != token.Assign {
		p.next()
		w.Mutable = true
	}

	// Explicit name: "sidebar = gtk.Box { ... }".
	if p.at(token.Ident) && p.peekAt(1).Kind == token.Assign {
		w.Name = p.next().Text
		p.next() // "="
	}

	fn, diags := p.parseWidgetFunc()
	if diags.HasErrors() {
		return w, diags
	}
	w.Func = fn
	if w.Name == "" {
		w.Name = fn.Path[len(fn.Path)-1]
	}
	w.Name = ast.SnakeCase(w.Name)

	// Attach arguments: "append_page[extra] { ... }".
	if _, ok := p.accept(token.LBrack); ok {
		args, diags := p.parseExprList(token.RBrack, "attach arguments")
		if diags.HasErrors() {
			return w, diags
		}
		w.Args = args
	}

	if _, diags := p.expect(token.LBrace, "widget body"); diags.HasErrors() {
		return w, diags
	}
	props, diags := p.parseBody()
	if diags.HasErrors() {
		return w, diags
	}
	w.Properties = props
	if _, diags := p.expect(token.RBrace, "widget body"); diags.HasErrors() {
		return w, diags
	}

	// Returned widget: "-> gtk.NotebookPage { ... }".
	if p.at(token.Arrow) {
		ret, diags := p.parseReturnedWidget()
		if diags.HasErrors() {
			return w, diags
		}
		w.ReturnedWidget = ret
	}

	return w, nil
}

// parseWidgetFunc parses the function descriptor: dotted constructor path,
// optional call arguments, optional method chain, optional "as" type
// annotation.
func (p *Parser) parseWidgetFunc() (ast.WidgetFunc, hcl.Diagnostics) {
	path, rng, diags := p.parsePath("widget constructor")
	if diags.HasErrors() {
		return ast.WidgetFunc{}, diags
	}
	fn := ast.WidgetFunc{Path: path, PathRange: rng}

	if _, ok := p.accept(token.LParen); ok {
		args, diags := p.parseExprList(token.RParen, "constructor arguments")
		if diags.HasErrors() {
			return fn, diags
		}
		fn.Args = args
	}

	for p.at(token.Dot) {
		p.next()
		name, diags := p.expect(token.Ident, "method chain")
		if diags.HasErrors() {
			return fn, diags
		}
		if _, diags := p.expect(token.LParen, "method chain"); diags.HasErrors() {
			return fn, diags
		}
		args, diags := p.parseExprList(token.RParen, "method chain")
		if diags.HasErrors() {
			return fn, diags
		}
		fn.MethodChain = append(fn.MethodChain, ast.MethodCall{Name: name.Text, Args: args})
	}

	if p.at(token.Ident) && p.peek().Text == "as" {
		p.next()
		ty, _, diags := p.parsePath("type annotation")
		if diags.HasErrors() {
			return fn, diags
		}
		fn.Type = ty
	}

	return fn, nil
}

// parsePath parses a dotted identifier path.
func (p *Parser) parsePath(context string) ([]string, hcl.Range, hcl.Diagnostics) {
	first, diags := p.expect(token.Ident, context)
	if diags.HasErrors() {
		return nil, hcl.Range{}, diags
	}
	path := []string{first.Text}
	rng := first.Range
	for p.at(token.Dot) && p.peekAt(1).Kind == token.Ident {
		p.next()
		seg := p.next()
		path = append(path, seg.Text)
		rng = hcl.RangeBetween(rng, seg.Range)
	}
	return path, rng, diags
}

// parseBody parses comma-separated body items up to (but not including)
// the closing brace: properties, signal connections and child widgets.
// The trailing comma is optional.
func (p *Parser) parseBody() (ast.Properties, hcl.Diagnostics) {
	var props ast.Properties
	for !p.at(token.RBrace) && !p.atEOF() {
		prop, diags := p.parseBodyItem()
		if diags.HasErrors() {
			return props, diags
		}
		props = append(props, prop)

		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	return props, nil
}

func (p *Parser) parseBodyItem() (ast.Property, hcl.Diagnostics) {
	// Anything that can only begin a widget.
	switch p.peek().Kind {
	case token.DocComment, token.Hash, token.Amp, token.Star:
		return p.parseChildWidget()
	}
	if p.at(token.Ident) {
		switch p.peek().Text {
		case "mut":
			return p.parseChildWidget()
		case "some":
			if p.peekAt(1).Kind == token.LParen {
				return p.parseChildWidget()
			}
		}
	}

	// A dotted path followed by ":" is a property, followed by "=>" a
	// signal connection; everything else is a child widget.
	i := p.pos
	if p.kindAt(i) == token.Ident {
		i++
		for p.kindAt(i) == token.Dot && p.kindAt(i+1) == token.Ident {
			i += 2
		}
		switch p.kindAt(i) {
		case token.Colon:
			return p.parseProperty()
		case token.FatArrow:
			return p.parseSignal()
		}
	}
	return p.parseChildWidget()
}

func (p *Parser) parseProperty() (ast.Property, hcl.Diagnostics) {
	path, rng, diags := p.parsePath("property name")
	if diags.HasErrors() {
		return ast.Property{}, diags
	}
	if _, diags := p.expect(token.Colon, "property"); diags.HasErrors() {
		return ast.Property{}, diags
	}
	ty, diags := p.parsePropertyValue()
	if diags.HasErrors() {
		return ast.Property{}, diags
	}
	return ast.Property{
		Name: ast.PropertyName{Parts: path, Range: rng},
		Type: ty,
	}, nil
}

func (p *Parser) parseSignal() (ast.Property, hcl.Diagnostics) {
	path, rng, diags := p.parsePath("signal name")
	if diags.HasErrors() {
		return ast.Property{}, diags
	}
	if _, diags := p.expect(token.FatArrow, "signal connection"); diags.HasErrors() {
		return ast.Property{}, diags
	}
	handler, hrng, diags := p.parsePath("signal handler")
	if diags.HasErrors() {
		return ast.Property{}, diags
	}
	return ast.Property{
		Name: ast.PropertyName{Parts: path, Range: rng},
		Type: ast.SignalProperty{
			Handler: joinPath(handler),
			Range:   hrng,
		},
	}, nil
}

// parseChildWidget parses a widget appearing inside another widget's body,
// including its own leading doc comments and attribute groups.
func (p *Parser) parseChildWidget() (ast.Property, hcl.Diagnostics) {
	w, diags := p.parseAnnotatedWidget()
	if diags.HasErrors() {
		return ast.Property{}, diags
	}
	return ast.Property{Type: ast.WidgetProperty{Widget: &w}}, nil
}

// parseAnnotatedWidget parses doc comments and attributes followed by a
// widget. A #[root] marker here is an error: root markers only have
// meaning on top-level widgets.
func (p *Parser) parseAnnotatedWidget() (ast.Widget, hcl.Diagnostics) {
	doc := p.collectDocComments()
	attrs, diags := p.parseAttrs()
	if diags.HasErrors() {
		return ast.Widget{}, diags
	}
	attrs, rootAttr, dupDiags := PartitionRoot(attrs)
	p.warnings = append(p.warnings, dupDiags...)
	if rootAttr != nil {
		return ast.Widget{}, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Misplaced root marker",
			Detail:   "#[root] is only allowed on a top-level widget.",
			Subject:  rootAttr.Range.Ptr(),
		}}
	}
	return p.parseWidget(attrs, doc)
}

// parsePropertyValue parses the value after "name:": a literal, a tuple,
// a nested widget or a raw pass-through expression.
func (p *Parser) parsePropertyValue() (ast.PropertyType, hcl.Diagnostics) {
	tok := p.peek()

	switch tok.Kind {
	case token.String:
		if isTerminator(p.peekAt(1).Kind) {
			p.next()
			return ast.ValueProperty{Value: cty.StringVal(tok.Text), Range: tok.Range}, nil
		}
	case token.Number:
		if isTerminator(p.peekAt(1).Kind) {
			p.next()
			return ast.ValueProperty{Value: cty.MustParseNumberVal(tok.Text), Range: tok.Range}, nil
		}
	case token.Ident:
		if (tok.Text == "true" || tok.Text == "false") && isTerminator(p.peekAt(1).Kind) {
			p.next()
			return ast.ValueProperty{Value: cty.BoolVal(tok.Text == "true"), Range: tok.Range}, nil
		}
	case token.LParen:
		p.next()
		items, diags := p.parseExprList(token.RParen, "tuple value")
		if diags.HasErrors() {
			return nil, diags
		}
		return ast.TupleProperty{Items: items, Range: tok.Range}, nil
	}

	if p.valueIsWidget() {
		w, diags := p.parseAnnotatedWidget()
		if diags.HasErrors() {
			return nil, diags
		}
		return ast.WidgetProperty{Widget: &w}, nil
	}

	expr, diags := p.parseRawExpr(token.Comma, token.RBrace)
	if diags.HasErrors() {
		return nil, diags
	}
	return ast.ExprProperty{Raw: expr.Raw, Range: expr.Range}, nil
}

// valueIsWidget reports whether the tokens at the cursor reach a "{" at
// bracket depth zero before the value terminates, i.e. the value is a
// nested widget rather than an expression.
func (p *Parser) valueIsWidget() bool {
	depth := 0
	for i := p.pos; ; i++ {
		switch p.kindAt(i) {
		case token.LBrace:
			if depth == 0 {
				return true
			}
			depth++
		case token.LParen, token.LBrack:
			depth++
		case token.RParen, token.RBrack:
			depth--
			if depth < 0 {
				return false
			}
		case token.Comma, token.RBrace:
			if depth == 0 {
				return false
			}
			if p.kindAt(i) == token.RBrace {
				depth--
			}
		case token.FatArrow, token.EOF:
			return false
		}
	}
}

// parseReturnedWidget parses "-> name = path { properties }" after a
// widget body; name and properties are optional.
func (p *Parser) parseReturnedWidget() (*ast.ReturnedWidget, hcl.Diagnostics) {
	arrow, diags := p.expect(token.Arrow, "returned widget")
	if diags.HasErrors() {
		return nil, diags
	}

	ret := &ast.ReturnedWidget{}
	if p.at(token.Ident) && p.peekAt(1).Kind == token.Assign {
		ret.Name = ast.SnakeCase(p.next().Text)
		p.next() // "="
	}

	path, rng, diags := p.parsePath("returned widget")
	if diags.HasErrors() {
		return nil, diags
	}
	ret.Path = path
	ret.Range = hcl.RangeBetween(arrow.Range, rng)
	if ret.Name == "" {
		ret.Name = ast.SnakeCase(path[len(path)-1])
	}

	if _, ok := p.accept(token.LBrace); ok {
		props, diags := p.parseBody()
		if diags.HasErrors() {
			return nil, diags
		}
		ret.Properties = props
		if _, diags := p.expect(token.RBrace, "returned widget"); diags.HasErrors() {
			return nil, diags
		}
	}
	return ret, nil
}

// parseExprList parses a comma-separated expression list up to and
// including the closing token. The result is non-nil even when empty, so
// "()" is distinguishable from an absent argument list.
func (p *Parser) parseExprList(close token.Kind, context string) ([]ast.Expr, hcl.Diagnostics) {
	exprs := []ast.Expr{}
	for !p.at(close) {
		expr, diags := p.parseExpr(close)
		if diags.HasErrors() {
			return exprs, diags
		}
		exprs = append(exprs, expr)
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	_, diags := p.expect(close, context)
	return exprs, diags
}

// parseExpr parses one argument: a literal when it is a single token,
// otherwise a raw expression.
func (p *Parser) parseExpr(close token.Kind) (ast.Expr, hcl.Diagnostics) {
	tok := p.peek()
	next := p.peekAt(1).Kind
	if next == token.Comma || next == close {
		switch tok.Kind {
		case token.String:
			p.next()
			return ast.Expr{Raw: tok.Text, Value: cty.StringVal(tok.Text), Range: tok.Range}, nil
		case token.Number:
			p.next()
			return ast.Expr{Raw: tok.Text, Value: cty.MustParseNumberVal(tok.Text), Range: tok.Range}, nil
		case token.Ident:
			if tok.Text == "true" || tok.Text == "false" {
				p.next()
				return ast.Expr{Raw: tok.Text, Value: cty.BoolVal(tok.Text == "true"), Range: tok.Range}, nil
			}
		}
	}
	return p.parseRawExpr(token.Comma, close)
}

// parseRawExpr consumes tokens up to (but not including) one of the stop
// kinds at bracket depth zero and returns the covered source text.
func (p *Parser) parseRawExpr(stops ...token.Kind) (ast.Expr, hcl.Diagnostics) {
	first := p.peek()
	last := first
	depth := 0
	count := 0
	for {
		tok := p.peek()
		if tok.Kind == token.EOF {
			return ast.Expr{}, hcl.Diagnostics{&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unterminated expression",
				Detail:   "The file ended in the middle of an expression.",
				Subject:  tok.Range.Ptr(),
			}}
		}
		if depth == 0 {
			for _, stop := range stops {
				if tok.Kind == stop {
					if count == 0 {
						return ast.Expr{}, hcl.Diagnostics{&hcl.Diagnostic{
							Severity: hcl.DiagError,
							Summary:  "Missing expression",
							Detail:   "Expected an expression before " + tok.Kind.String() + ".",
							Subject:  tok.Range.Ptr(),
						}}
					}
					rng := hcl.RangeBetween(first.Range, last.Range)
					return ast.Expr{Raw: p.rawText(first.Range, last.Range), Range: rng}, nil
				}
			}
		}
		switch tok.Kind {
		case token.LParen, token.LBrack, token.LBrace:
			depth++
		case token.RParen, token.RBrack, token.RBrace:
			depth--
			if depth < 0 {
				rng := hcl.RangeBetween(first.Range, last.Range)
				if count == 0 {
					return ast.Expr{}, hcl.Diagnostics{&hcl.Diagnostic{
						Severity: hcl.DiagError,
						Summary:  "Missing expression",
						Detail:   "Expected an expression before " + tok.Kind.String() + ".",
						Subject:  tok.Range.Ptr(),
					}}
				}
				return ast.Expr{Raw: p.rawText(first.Range, last.Range), Range: rng}, nil
			}
		case token.Illegal:
			return ast.Expr{}, hcl.Diagnostics{&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid expression",
				Detail:   tok.Text + ".",
				Subject:  tok.Range.Ptr(),
			}}
		}
		last = p.next()
		count++
	}
}

func (p *Parser) collectDocComments() string {
	var doc string
	for {
		tok, ok := p.accept(token.DocComment)
		if !ok {
			return doc
		}
		doc = joinDoc(doc, tok.Text)
	}
}

func (p *Parser) kindAt(i int) token.Kind {
	if i >= len(p.toks) {
		return token.EOF
	}
	return p.toks[i].Kind
}

func isTerminator(k token.Kind) bool {
	return k == token.Comma || k == token.RBrace || k == token.RParen || k == token.RBrack
}

func joinDoc(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + "\n" + b
}

func joinPath(parts []string) string {
	out := parts[0]
	for _, part := range parts[1:] {
		out += "." + part
	}
	return out
}
