package parser

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/viewgen/viewgen/internal/ast"
	"github.com/viewgen/viewgen/internal/token"
)

// parseAttrs parses zero or more attribute groups: #[root], #[name(x)],
// #[doc = "..."], #[local]. Absence of a leading "#" is not an error; the
// caller decides what a failed parse collapses to.
func (p *Parser) parseAttrs() (ast.Attrs, hcl.Diagnostics) {
	var attrs ast.Attrs
	for p.at(token.Hash) {
		p.next()
		if _, diags := p.expect(token.LBrack, "attribute list"); diags.HasErrors() {
			return attrs, diags
		}
		for {
			attr, diags := p.parseAttr()
			if diags.HasErrors() {
				return attrs, diags
			}
			attrs = append(attrs, attr)
			if _, ok := p.accept(token.Comma); ok {
				if p.at(token.RBrack) {
					break
				}
				continue
			}
			break
		}
		if _, diags := p.expect(token.RBrack, "attribute list"); diags.HasErrors() {
			return attrs, diags
		}
	}
	return attrs, nil
}

func (p *Parser) parseAttr() (ast.Attr, hcl.Diagnostics) {
	ident, diags := p.expect(token.Ident, "attribute")
	if diags.HasErrors() {
		return ast.Attr{}, diags
	}

	switch ident.Text {
	case "root":
		return ast.Attr{Kind: ast.AttrRoot, Range: ident.Range}, nil

	case "local":
		return ast.Attr{Kind: ast.AttrLocal, Range: ident.Range}, nil

	case "name":
		if _, diags := p.expect(token.LParen, "name attribute"); diags.HasErrors() {
			return ast.Attr{}, diags
		}
		arg, diags := p.expect(token.Ident, "name attribute")
		if diags.HasErrors() {
			return ast.Attr{}, diags
		}
		close, diags := p.expect(token.RParen, "name attribute")
		if diags.HasErrors() {
			return ast.Attr{}, diags
		}
		return ast.Attr{
			Kind:  ast.AttrName,
			Arg:   arg.Text,
			Range: hcl.RangeBetween(ident.Range, close.Range),
		}, nil

	case "doc":
		if _, diags := p.expect(token.Assign, "doc attribute"); diags.HasErrors() {
			return ast.Attr{}, diags
		}
		text, diags := p.expect(token.String, "doc attribute")
		if diags.HasErrors() {
			return ast.Attr{}, diags
		}
		return ast.Attr{
			Kind:  ast.AttrDoc,
			Arg:   text.Text,
			Range: hcl.RangeBetween(ident.Range, text.Range),
		}, nil
	}

	return ast.Attr{}, hcl.Diagnostics{&hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Unknown attribute",
		Detail:   fmt.Sprintf("%q is not a recognized attribute; expected root, name, doc or local.", ident.Text),
		Subject:  ident.Range.Ptr(),
	}}
}
