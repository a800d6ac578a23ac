package parser

import (
	"log/slog"
	"strconv"

	"github.com/tim-hardcastle/minilisp/source/lexer"
	"github.com/tim-hardcastle/minilisp/source/report"
	"github.com/tim-hardcastle/minilisp/source/settings"
	"github.com/tim-hardcastle/minilisp/source/token"
	"github.com/tim-hardcastle/minilisp/source/values"
)

// The parser owns its tokens and walks them with a cursor. We only ever look at the token
// under the cursor before deciding whether to consume it, so tokens are consumed in exactly
// the order the lexer produced them.
//
// Nesting, whether of lists or of quotes, is capped at maxDepth so that a pathological input
// fails with an error instead of exhausting the Go stack.
type Parser struct {
	tokens   []token.Token
	pos      int
	depth    int
	maxDepth int
}

// A top-level form together with the token it starts at, so that errors found while
// evaluating it can say where it was.
type Form struct {
	Expr  values.Value
	Token token.Token
}

func New(tokens []token.Token) *Parser {
	return NewWithMaxDepth(tokens, settings.DEFAULT_MAX_DEPTH)
}

func NewWithMaxDepth(tokens []token.Token, maxDepth int) *Parser {
	if maxDepth <= 0 {
		maxDepth = settings.DEFAULT_MAX_DEPTH
	}
	return &Parser{tokens: tokens, maxDepth: maxDepth}
}

// Parses a whole program: every top-level form, in order.
func Parse(tokens []token.Token) ([]values.Value, error) {
	forms, e := New(tokens).ParseForms()
	if e != nil {
		return nil, e
	}
	result := make([]values.Value, len(forms))
	for i, form := range forms {
		result[i] = form.Expr
	}
	return result, nil
}

// Lexes and parses in one go.
func ParseString(source, input string) ([]values.Value, error) {
	toks, e := lexer.Tokenize(source, input)
	if e != nil {
		return nil, e
	}
	return Parse(toks)
}

func (p *Parser) ParseForms() ([]Form, error) {
	result := []Form{}
	for !p.AtEnd() {
		start := p.curToken()
		expr, e := p.ParseExpr()
		if e != nil {
			return nil, e
		}
		if settings.SHOW_PARSER {
			slog.Debug("parsed", "form", values.Describe(expr), "line", start.Line)
		}
		result = append(result, Form{Expr: expr, Token: start})
	}
	return result, nil
}

func (p *Parser) AtEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) curToken() token.Token {
	if p.AtEnd() {
		if len(p.tokens) == 0 {
			return token.Token{Type: token.EOF, Literal: "EOF"}
		}
		last := p.tokens[len(p.tokens)-1]
		return token.Token{Type: token.EOF, Literal: "EOF", Line: last.Line, ChStart: last.ChEnd, ChEnd: last.ChEnd, Source: last.Source}
	}
	return p.tokens[p.pos]
}

func (p *Parser) NextToken() {
	p.pos++
}

// Parses one expression starting at the cursor and leaves the cursor after it.
func (p *Parser) ParseExpr() (values.Value, error) {
	tok := p.curToken()
	switch tok.Type {
	case token.LPAREN:
		return p.parseList()
	case token.RPAREN:
		return values.Value{}, p.Throw("parse/rparen", tok)
	case token.QUOTE:
		if e := p.descend(tok); e != nil {
			return values.Value{}, e
		}
		defer p.ascend()
		p.NextToken()
		if p.AtEnd() {
			return values.Value{}, p.Throw("parse/quote", tok)
		}
		quoted, e := p.ParseExpr()
		if e != nil {
			return values.Value{}, e
		}
		return values.List(values.Symbol("quote"), quoted), nil
	case token.NUMBER:
		p.NextToken()
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return values.Value{}, p.Throw("parse/token", tok, tok.Literal)
		}
		return values.Number(f), nil
	case token.BOOLEAN:
		p.NextToken()
		b, _ := token.LookupBoolean(tok.Literal)
		return values.Bool(b), nil
	case token.SYMBOL:
		p.NextToken()
		return values.Symbol(tok.Literal), nil
	case token.STRING:
		p.NextToken()
		return values.String(tok.Literal), nil
	case token.EOF:
		return values.Value{}, p.Throw("parse/eof", tok)
	}
	return values.Value{}, p.Throw("parse/token", tok, tok.Literal)
}

// The cursor is on a '('. Every nested '(' recurses, so lists of lists come out as lists
// of lists.
func (p *Parser) parseList() (values.Value, error) {
	open := p.curToken()
	if e := p.descend(open); e != nil {
		return values.Value{}, e
	}
	defer p.ascend()
	p.NextToken()
	elements := []values.Value{}
	for {
		if p.AtEnd() {
			return values.Value{}, p.Throw("parse/eof", open)
		}
		if p.curToken().Type == token.RPAREN {
			p.NextToken()
			return values.List(elements...), nil
		}
		el, e := p.ParseExpr()
		if e != nil {
			return values.Value{}, e
		}
		elements = append(elements, el)
	}
}

func (p *Parser) descend(tok token.Token) error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.Throw("parse/depth", tok, p.maxDepth)
	}
	return nil
}

func (p *Parser) ascend() {
	p.depth--
}

func (p *Parser) Throw(errorId string, tok token.Token, args ...any) error {
	return report.CreateErr(errorId, &tok, args...)
}
