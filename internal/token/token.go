package token

import "github.com/hashicorp/hcl/v2"

// Kind identifies the lexical class of a token.
type Kind int

const (
	EOF Kind = iota
	Illegal

	Ident
	String // double-quoted literal, Text holds the decoded value
	Number

	Hash   // "#"
	LBrack // "["
	RBrack // "]"
	LBrace // "{"
	RBrace // "}"
	LParen // "("
	RParen // ")"
	Comma  // ","
	Colon  // ":"
	Dot    // "."
	Assign // "="
	Amp    // "&"
	Star   // "*"

	Arrow    // "->"
	FatArrow // "=>"

	DocComment // "/// ..." with the marker stripped
)

var kindNames = map[Kind]string{
	EOF:        "end of file",
	Illegal:    "invalid token",
	Ident:      "identifier",
	String:     "string literal",
	Number:     "number literal",
	Hash:       `"#"`,
	LBrack:     `"["`,
	RBrack:     `"]"`,
	LBrace:     `"{"`,
	RBrace:     `"}"`,
	LParen:     `"("`,
	RParen:     `")"`,
	Comma:      `","`,
	Colon:      `":"`,
	Dot:        `"."`,
	Assign:     `"="`,
	Amp:        `"&"`,
	Star:       `"*"`,
	Arrow:      `"->"`,
	FatArrow:   `"=>"`,
	DocComment: "doc comment",
}

// String returns a human-readable name suitable for diagnostics.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown token"
}

// Token is a single lexical token with its source location.
type Token struct {
	Kind  Kind
	Text  string
	Range hcl.Range
}
