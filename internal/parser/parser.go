package parser

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/viewgen/viewgen/internal/ast"
	"github.com/viewgen/viewgen/internal/token"
)

// Parser holds the token cursor state for one source file.
type Parser struct {
	filename string
	src      []byte
	toks     []token.Token
	pos      int

	// warnings accumulates non-fatal diagnostics (e.g. duplicate root
	// markers). They never affect the produced tree.
	warnings hcl.Diagnostics
}

// NewFromSource lexes src and returns a parser positioned at the first token.
func NewFromSource(filename string, src []byte) *Parser {
	return &Parser{
		filename: filename,
		src:      src,
		toks:     token.Lex(filename, src),
	}
}

// Parse is a convenience wrapper: it parses a single top-level widget
// declaration from src. The returned diagnostics are warnings only; parse
// failures are embedded in the tree itself.
func Parse(filename string, src []byte) (ast.TopLevelWidget, hcl.Diagnostics) {
	p := NewFromSource(filename, src)
	tlw := p.ParseTopLevel()
	return tlw, p.Warnings()
}

// ParseFile parses every top-level widget declaration in src.
func ParseFile(filename string, src []byte) ([]ast.TopLevelWidget, hcl.Diagnostics) {
	p := NewFromSource(filename, src)
	var out []ast.TopLevelWidget
	for !p.atEOF() {
		out = append(out, p.ParseTopLevel())
	}
	return out, p.Warnings()
}

// Warnings returns the non-fatal diagnostics accumulated so far.
func (p *Parser) Warnings() hcl.Diagnostics {
	return p.warnings
}

// ParseTopLevel parses one top-level widget declaration. It never fails:
// a malformed attribute list is treated as an absent one, and a malformed
// widget body yields the fixed placeholder widget carrying the body
// diagnostics in its single ParseError property.
func (p *Parser) ParseTopLevel() ast.TopLevelWidget {
	// Best-effort attribute list. The failure case collapses to "no
	// attributes" by rewinding the cursor; the failed attempt leaves no
	// diagnostics behind and the offending tokens are instead reported by
	// the widget body parse.
	mark := p.pos
	doc := p.collectDocComments()
	attrs, attrDiags := p.parseAttrs()
	if attrDiags.HasErrors() {
		p.pos = mark
		doc = p.collectDocComments()
		attrs = nil
	}

	attrs, rootAttr, dupDiags := PartitionRoot(attrs)
	p.warnings = append(p.warnings, dupDiags...)

	start := p.pos
	inner, diags := p.parseWidget(attrs, doc)
	if diags.HasErrors() {
		inner = fallbackWidget(diags)
		p.synchronize(start)
	}

	return ast.TopLevelWidget{RootAttr: rootAttr, Inner: inner}
}

// PartitionRoot scans an ordered attribute list and pulls the root marker
// out into a separate slot. The remaining attributes keep their relative
// order in a fresh list pre-sized to the input length; no attribute is
// duplicated or dropped except the relocated root marker.
//
// When more than one root marker appears, the last one wins and a warning
// diagnostic is emitted for each superseded marker.
func PartitionRoot(attrs ast.Attrs) (ast.Attrs, *ast.Attr, hcl.Diagnostics) {
	if attrs == nil {
		return nil, nil, nil
	}
	rest := make(ast.Attrs, 0, len(attrs))
	var root *ast.Attr
	var diags hcl.Diagnostics
	for _, attr := range attrs {
		if attr.Kind == ast.AttrRoot {
			if root != nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagWarning,
					Summary:  "Duplicate root marker",
					Detail:   "A later #[root] supersedes this one; only the last marker takes effect.",
					Subject:  root.Range.Ptr(),
				})
			}
			a := attr
			root = &a
			continue
		}
		rest = append(rest, attr)
	}
	return rest, root, diags
}

// fallbackWidget is the placeholder produced when a widget body fails to
// parse: a fixed name, the default constructor path, and exactly one
// property embedding the original diagnostics. No other field is set.
func fallbackWidget(diags hcl.Diagnostics) ast.Widget {
	return ast.Widget{
		Name: ast.SnakeCase(ast.FallbackWidgetName),
		Func: ast.WidgetFunc{Path: ast.FallbackFuncPath()},
		Properties: ast.Properties{{
			Name: ast.PropertyName{Parts: []string{ast.FallbackPropertyName}},
			Type: ast.ParseErrorProperty{Diags: diags},
		}},
	}
}

// synchronize skips past the failed declaration so that the next
// ParseTopLevel call starts at a plausible entity boundary. start is where
// the failed widget parse began; progress past it is guaranteed.
func (p *Parser) synchronize(start int) {
	if p.pos <= start {
		p.pos = start + 1
	}
	depth := 0
	for !p.atEOF() {
		switch p.peek().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth <= 0 {
				p.next()
				// A returned-widget clause may trail the closing brace;
				// leave it to the next entity only if one does not.
				if p.peek().Kind != token.Arrow {
					return
				}
				depth = 0
				continue
			}
		case token.Hash, token.DocComment:
			if depth <= 0 {
				return
			}
		}
		p.next()
	}
}

// --- cursor helpers ---

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF, Range: p.eofRange()}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return token.Token{Kind: token.EOF, Range: p.eofRange()}
	}
	return p.toks[p.pos+n]
}

func (p *Parser) next() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

func (p *Parser) at(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) atEOF() bool {
	return p.peek().Kind == token.EOF
}

// accept consumes the next token iff it has the given kind.
func (p *Parser) accept(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.next(), true
	}
	return token.Token{}, false
}

// expect consumes the next token of the given kind or produces an error
// diagnostic naming what was being parsed.
func (p *Parser) expect(kind token.Kind, context string) (token.Token, hcl.Diagnostics) {
	tok := p.peek()
	if tok.Kind == kind {
		p.next()
		return tok, nil
	}
	detail := fmt.Sprintf("Expected %s while parsing %s, but found %s.", kind, context, p.describe(tok))
	return tok, hcl.Diagnostics{&hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  fmt.Sprintf("Invalid %s", context),
		Detail:   detail,
		Subject:  tok.Range.Ptr(),
	}}
}

func (p *Parser) describe(tok token.Token) string {
	switch tok.Kind {
	case token.Ident:
		return fmt.Sprintf("identifier %q", tok.Text)
	case token.Illegal:
		return tok.Text
	default:
		return tok.Kind.String()
	}
}

func (p *Parser) eofRange() hcl.Range {
	if len(p.toks) > 0 {
		return p.toks[len(p.toks)-1].Range
	}
	pos := hcl.Pos{Line: 1, Column: 1, Byte: 0}
	return hcl.Range{Filename: p.filename, Start: pos, End: pos}
}

// rawText slices the original source between two token ranges.
func (p *Parser) rawText(from, to hcl.Range) string {
	start, end := from.Start.Byte, to.End.Byte
	if start < 0 || end > len(p.src) || start > end {
		return ""
	}
	return string(p.src[start:end])
}
