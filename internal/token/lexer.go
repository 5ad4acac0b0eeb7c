package token

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
)

// Lexer scans viewgen DSL source into tokens.
type Lexer struct {
	filename string
	src      []byte
	offset   int
	line     int // 1-based
	column   int // 1-based, in runes
}

// NewLexer returns a lexer over src. filename is only used for spans.
func NewLexer(filename string, src []byte) *Lexer {
	return &Lexer{
		filename: filename,
		src:      src,
		line:     1,
		column:   1,
	}
}

// Lex scans the entire input and returns the token stream, terminated by
// exactly one EOF token.
func Lex(filename string, src []byte) []Token {
	lx := NewLexer(filename, src)
	var toks []Token
	for {
		tok := lx.Scan()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

// Scan returns the next token. After EOF is returned, every subsequent
// call returns EOF again.
func (lx *Lexer) Scan() Token {
	lx.skipSpaceAndComments()

	start := lx.pos()
	if lx.offset >= len(lx.src) {
		return Token{Kind: EOF, Range: lx.rangeFrom(start)}
	}

	r, _ := lx.peekRune()
	switch {
	case r == '/' && lx.hasPrefix("///"):
		return lx.scanDocComment(start)
	case isIdentStart(r):
		return lx.scanIdent(start)
	case r == '"':
		return lx.scanString(start)
	case unicode.IsDigit(r):
		return lx.scanNumber(start)
	}

	lx.next()
	switch r {
	case '#':
		return lx.emit(Hash, "#", start)
	case '[':
		return lx.emit(LBrack, "[", start)
	case ']':
		return lx.emit(RBrack, "]", start)
	case '{':
		return lx.emit(LBrace, "{", start)
	case '}':
		return lx.emit(RBrace, "}", start)
	case '(':
		return lx.emit(LParen, "(", start)
	case ')':
		return lx.emit(RParen, ")", start)
	case ',':
		return lx.emit(Comma, ",", start)
	case ':':
		return lx.emit(Colon, ":", start)
	case '.':
		return lx.emit(Dot, ".", start)
	case '&':
		return lx.emit(Amp, "&", start)
	case '*':
		return lx.emit(Star, "*", start)
	case '=':
		if next, _ := lx.peekRune(); next == '>' {
			lx.next()
			return lx.emit(FatArrow, "=>", start)
		}
		return lx.emit(Assign, "=", start)
	case '-':
		if next, _ := lx.peekRune(); next == '>' {
			lx.next()
			return lx.emit(Arrow, "->", start)
		}
		if next, _ := lx.peekRune(); unicode.IsDigit(next) {
			return lx.scanNumberTail(start, "-")
		}
		return lx.emit(Illegal, `unexpected "-"`, start)
	}

	return lx.emit(Illegal, fmt.Sprintf("unexpected character %q", r), start)
}

func (lx *Lexer) scanIdent(start hcl.Pos) Token {
	var sb strings.Builder
	for lx.offset < len(lx.src) {
		r, _ := lx.peekRune()
		if !isIdentPart(r) {
			break
		}
		sb.WriteRune(r)
		lx.next()
	}
	return lx.emit(Ident, sb.String(), start)
}

func (lx *Lexer) scanNumber(start hcl.Pos) Token {
	return lx.scanNumberTail(start, "")
}

// scanNumberTail consumes digits and at most one decimal point. prefix is
// any already-consumed leading text (a minus sign).
func (lx *Lexer) scanNumberTail(start hcl.Pos, prefix string) Token {
	var sb strings.Builder
	sb.WriteString(prefix)
	sawDot := false
	for lx.offset < len(lx.src) {
		r, _ := lx.peekRune()
		if r == '.' && !sawDot {
			// Only part of the number when followed by a digit, otherwise
			// it is a path separator.
			if d, ok := lx.peekRuneAt(1); ok && unicode.IsDigit(d) {
				sawDot = true
				sb.WriteRune(r)
				lx.next()
				continue
			}
			break
		}
		if !unicode.IsDigit(r) {
			break
		}
		sb.WriteRune(r)
		lx.next()
	}
	return lx.emit(Number, sb.String(), start)
}

func (lx *Lexer) scanString(start hcl.Pos) Token {
	lx.next() // opening quote
	var sb strings.Builder
	for lx.offset < len(lx.src) {
		r, _ := lx.peekRune()
		switch r {
		case '"':
			lx.next()
			return lx.emit(String, sb.String(), start)
		case '\n':
			return lx.emit(Illegal, "unterminated string literal", start)
		case '\\':
			lx.next()
			esc, _ := lx.peekRune()
			lx.next()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '\\', '"':
				sb.WriteRune(esc)
			default:
				return lx.emit(Illegal, fmt.Sprintf("invalid escape sequence \\%c", esc), start)
			}
		default:
			sb.WriteRune(r)
			lx.next()
		}
	}
	return lx.emit(Illegal, "unterminated string literal", start)
}

func (lx *Lexer) scanDocComment(start hcl.Pos) Token {
	lx.next() // '/'
	lx.next() // '/'
	lx.next() // '/'
	var sb strings.Builder
	for lx.offset < len(lx.src) {
		r, _ := lx.peekRune()
		if r == '\n' {
			break
		}
		sb.WriteRune(r)
		lx.next()
	}
	text := strings.TrimPrefix(sb.String(), " ")
	return lx.emit(DocComment, text, start)
}

func (lx *Lexer) skipSpaceAndComments() {
	for lx.offset < len(lx.src) {
		r, _ := lx.peekRune()
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			lx.next()
		case r == '/' && lx.hasPrefix("//") && !lx.hasPrefix("///"):
			for lx.offset < len(lx.src) {
				r, _ := lx.peekRune()
				if r == '\n' {
					break
				}
				lx.next()
			}
		default:
			return
		}
	}
}

func (lx *Lexer) emit(kind Kind, text string, start hcl.Pos) Token {
	return Token{Kind: kind, Text: text, Range: lx.rangeFrom(start)}
}

func (lx *Lexer) pos() hcl.Pos {
	return hcl.Pos{Line: lx.line, Column: lx.column, Byte: lx.offset}
}

func (lx *Lexer) rangeFrom(start hcl.Pos) hcl.Range {
	return hcl.Range{Filename: lx.filename, Start: start, End: lx.pos()}
}

func (lx *Lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(string(lx.src[lx.offset:]), s)
}

func (lx *Lexer) peekRune() (rune, bool) {
	return lx.peekRuneAt(0)
}

// peekRuneAt looks ahead n runes without consuming input.
func (lx *Lexer) peekRuneAt(n int) (rune, bool) {
	off := lx.offset
	for {
		if off >= len(lx.src) {
			return 0, false
		}
		r, size := utf8.DecodeRune(lx.src[off:])
		if n == 0 {
			return r, true
		}
		off += size
		n--
	}
}

// next consumes one rune and advances the line/column bookkeeping.
func (lx *Lexer) next() {
	if lx.offset >= len(lx.src) {
		return
	}
	r, size := utf8.DecodeRune(lx.src[lx.offset:])
	lx.offset += size
	if r == '\n' {
		lx.line++
		lx.column = 1
	} else {
		lx.column++
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
