// Package token implements the lexer for the viewgen widget DSL. It turns
// raw source bytes into a flat token stream in which every token carries an
// hcl.Range locating it in the original file. The lexer is total: input it
// cannot understand is emitted as Illegal tokens carrying a message, and
// the decision of what to do about them belongs to the parser.
package token
