package lexer

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/tim-hardcastle/minilisp/source/report"
	"github.com/tim-hardcastle/minilisp/source/settings"
	"github.com/tim-hardcastle/minilisp/source/token"
)

type lexer struct {
	runes  *RuneSupplier
	tstart int // the value of char at the start of a token
	lineNo int
	source string
}

func NewLexer(source, input string) *lexer {
	return &lexer{
		runes:  NewRuneSupplier([]rune(input)),
		source: source,
		lineNo: 1,
	}
}

// Turns the whole of the input into tokens, in source order. The first illegal character
// stops the lexing: nothing after it can be trusted.
func Tokenize(source, input string) ([]token.Token, error) {
	l := NewLexer(source, input)
	result := []token.Token{}
	for {
		tok, e := l.NextToken()
		if e != nil {
			return nil, e
		}
		if tok.Type == token.EOF {
			return result, nil
		}
		result = append(result, tok)
	}
}

func (l *lexer) NextToken() (token.Token, error) {
	l.skipWhitespaceAndComments()
	l.lineNo, l.tstart = l.runes.Position()
	if l.runes.AtEnd() {
		return l.MakeToken(token.EOF, "EOF"), nil
	}
	ch := l.runes.CurrentRune()
	switch ch {
	case '(':
		return l.NewToken(token.LPAREN, "("), nil
	case ')':
		return l.NewToken(token.RPAREN, ")"), nil
	case '\'':
		return l.NewToken(token.QUOTE, "'"), nil
	case '"':
		s, ok := l.runes.ReadString()
		if !ok {
			return l.Throw("lex/string")
		}
		return l.NewToken(token.STRING, s), nil
	case '#':
		lit := l.runes.ReadAtom()
		if _, ok := token.LookupBoolean(lit); ok {
			return l.NewToken(token.BOOLEAN, lit), nil
		}
		return l.Throw("lex/hash", lit)
	}

	// We may have a number.
	if l.runes.atNumberStart() {
		numString := l.runes.ReadAtom()
		if IsNumberLiteral(numString) {
			return l.NewToken(token.NUMBER, numString), nil
		}
		return l.Throw("lex/num", numString)
	}

	// We may have a symbol, or a truth literal spelled out.
	if IsSymbolStart(ch) {
		lit := l.runes.ReadSymbol()
		return l.NewToken(token.LookupIdent(lit), lit), nil
	}

	// Or we have nothing recognizable.
	return l.Throw("lex/ill", ch)
}

func (l *lexer) skipWhitespaceAndComments() {
	for !l.runes.AtEnd() {
		switch {
		case IsWhitespace(l.runes.CurrentRune()):
			l.runes.Next()
		case l.runes.CurrentRune() == ';':
			l.runes.SkipComment()
		default:
			return
		}
	}
}

func (runes *RuneSupplier) atNumberStart() bool {
	ch, pc := runes.CurrentRune(), runes.PeekRune()
	switch {
	case IsDigit(ch):
		return true
	case ch == '.':
		return IsDigit(pc)
	case ch == '-' || ch == '+':
		return IsDigit(pc) || pc == '.' && IsDigit(runes.PeekPeekRune())
	}
	return false
}

// An optional sign, then digits with at most one decimal point among them. This is stricter
// than strconv.ParseFloat, which would also take exponents, hex floats and underscores.
func IsNumberLiteral(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	digits, points := 0, 0
	for _, ch := range s {
		switch {
		case IsDigit(ch):
			digits++
		case ch == '.':
			points++
		default:
			return false
		}
	}
	return digits > 0 && points <= 1
}

// Reads up to the next delimiter, leaving the supplier on the last rune of the atom.
func (runes *RuneSupplier) ReadAtom() string {
	var sb strings.Builder
	sb.WriteRune(runes.CurrentRune())
	for !runes.PeekAtEnd() && !IsDelimiter(runes.PeekRune()) {
		runes.Next()
		sb.WriteRune(runes.CurrentRune())
	}
	return sb.String()
}

// Like ReadAtom but stops at anything that can't be part of a symbol, so that an illegal
// character gets reported at its own position.
func (runes *RuneSupplier) ReadSymbol() string {
	var sb strings.Builder
	sb.WriteRune(runes.CurrentRune())
	for !runes.PeekAtEnd() && IsSymbolRune(runes.PeekRune()) {
		runes.Next()
		sb.WriteRune(runes.CurrentRune())
	}
	return sb.String()
}

// Reads a string literal whose opening quote is the current rune. Returns false if the input
// ends before the closing quote.
func (runes *RuneSupplier) ReadString() (string, bool) {
	escape := false
	var sb strings.Builder
	for {
		if runes.PeekAtEnd() {
			runes.Next()
			return sb.String(), false
		}
		runes.Next()
		ch := runes.CurrentRune()
		if escape {
			escape = false
			switch ch {
			case 'n':
				ch = '\n'
			case 'r':
				ch = '\r'
			case 't':
				ch = '\t'
			}
			sb.WriteRune(ch)
			continue
		}
		if ch == '\\' {
			escape = true
			continue
		}
		if ch == '"' {
			return sb.String(), true
		}
		sb.WriteRune(ch)
	}
}

// Skips from a ';' to the end of the line.
func (runes *RuneSupplier) SkipComment() {
	for !runes.AtEnd() && runes.CurrentRune() != '\n' {
		runes.Next()
	}
}

func IsDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func IsWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func IsDelimiter(ch rune) bool {
	return IsWhitespace(ch) || ch == '(' || ch == ')' || ch == '\'' || ch == '"' || ch == ';'
}

const symbolPunctuation = "!$%&*/:<=>?^_~+-.@"

func IsSymbolStart(ch rune) bool {
	return unicode.IsLetter(ch) || strings.ContainsRune(symbolPunctuation, ch)
}

func IsSymbolRune(ch rune) bool {
	return IsSymbolStart(ch) || unicode.IsDigit(ch) || ch == '#'
}

func (l *lexer) NewToken(tokenType token.TokenType, st string) token.Token {
	l.runes.Next()
	return l.MakeToken(tokenType, st)
}

func (l *lexer) MakeToken(tokenType token.TokenType, st string) token.Token {
	_, chNo := l.runes.Position()
	tok := token.Token{Type: tokenType, Literal: st, Source: l.source, Line: l.lineNo, ChStart: l.tstart, ChEnd: chNo}
	if settings.SHOW_LEXER {
		slog.Debug("lexed", "type", tok.Type, "literal", tok.Literal, "line", tok.Line, "ch", tok.ChStart)
	}
	return tok
}

func (l *lexer) Throw(errorID string, args ...any) (token.Token, error) {
	tok := l.MakeToken(token.ILLEGAL, errorID)
	return tok, report.CreateErr(errorID, &tok, args...)
}
