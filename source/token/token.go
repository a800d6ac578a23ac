package token

import "fmt"

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Literals and identifiers
	NUMBER  = "number"  // 42, -1.5, .5
	SYMBOL  = "symbol"  // define, x, +, null?
	BOOLEAN = "boolean" // #t, #f, true, false
	STRING  = "string"  // "foo"

	LPAREN = "("
	RPAREN = ")"
	QUOTE  = "'"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	ChStart int
	ChEnd   int
	Source  string
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q @%d:%d", t.Type, t.Literal, t.Line, t.ChStart)
}

// Truth literals are lexed as BOOLEAN tokens so the parser never has to look at
// the text of a symbol to decide whether it's a boolean.
var truthLiterals = map[string]bool{
	"#t":     true,
	"#true":  true,
	"true":   true,
	"#f":     false,
	"#false": false,
	"false":  false,
}

// Returns the truth value of a boolean literal, and whether the string is one.
func LookupBoolean(lit string) (bool, bool) {
	b, ok := truthLiterals[lit]
	return b, ok
}

// Returns BOOLEAN if the identifier is a truth literal, SYMBOL otherwise.
func LookupIdent(ident string) TokenType {
	if _, ok := truthLiterals[ident]; ok {
		return BOOLEAN
	}
	return SYMBOL
}
