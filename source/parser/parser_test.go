package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/tim-hardcastle/minilisp/source/lexer"
	"github.com/tim-hardcastle/minilisp/source/parser"
	"github.com/tim-hardcastle/minilisp/source/report"
	"github.com/tim-hardcastle/minilisp/source/test_helper"
	"github.com/tim-hardcastle/minilisp/source/values"
)

func TestAtoms(t *testing.T) {
	tests := []test_helper.TestItem{
		{`42`, `42`},
		{`3.5`, `3.5`},
		{`-7`, `-7`},
		{`.5`, `0.5`},
		{`#t`, `#t`},
		{`#false`, `#f`},
		{`true`, `#t`},
		{`foo`, `foo`},
		{`set!`, `set!`},
		{`-`, `-`},
		{`"a\tb"`, `"a\tb"`},
	}
	test_helper.RunTest(t, "", tests, test_helper.TestParserOutput)
}

func TestLists(t *testing.T) {
	tests := []test_helper.TestItem{
		{`()`, `()`},
		{`(+ 1 2)`, `(+ 1 2)`},
		{`(define (f x) (* x (g x 1)))`, `(define (f x) (* x (g x 1)))`},
		{`((()))`, `((()))`},
		{`1 (a) b`, `1, (a), b`},
		{`(a ; comment
		   b)`, `(a b)`},
	}
	test_helper.RunTest(t, "", tests, test_helper.TestParserOutput)
}

func TestQuote(t *testing.T) {
	tests := []test_helper.TestItem{
		{`'a`, `(quote a)`},
		{`'(1 2)`, `(quote (1 2))`},
		{`''a`, `(quote (quote a))`},
		{`(f 'x y)`, `(f (quote x) y)`},
	}
	test_helper.RunTest(t, "", tests, test_helper.TestParserOutput)
}

func TestParserErrors(t *testing.T) {
	tests := []test_helper.TestItem{
		{`(+ 1 2`, `parse/eof`},
		{`((a b)`, `parse/eof`},
		{`)`, `parse/rparen`},
		{`(a))`, `parse/rparen`},
		{`'`, `parse/quote`},
		{`(a ')`, `parse/rparen`},
		{`(a #x)`, `lex/hash`},
		{`(a 1.2.3)`, `lex/num`},
		{`"open`, `lex/string`},
		{`{`, `lex/ill`},
	}
	test_helper.RunTest(t, "", tests, test_helper.TestParserErrors)
}

func TestFormsKeepTheirPositions(t *testing.T) {
	toks, e := lexer.Tokenize("test", "(a)\n  'b")
	if e != nil {
		t.Fatal(e)
	}
	forms, e := parser.New(toks).ParseForms()
	if e != nil {
		t.Fatal(e)
	}
	if len(forms) != 2 {
		t.Fatalf("wanted 2 forms, got %d", len(forms))
	}
	if forms[0].Token.Line != 1 || forms[0].Token.ChStart != 0 {
		t.Fatalf("first form at wrong position: %+v", forms[0].Token)
	}
	if forms[1].Token.Line != 2 || forms[1].Token.ChStart != 2 {
		t.Fatalf("second form at wrong position: %+v", forms[1].Token)
	}
	if got := values.Describe(forms[1].Expr); got != "(quote b)" {
		t.Fatalf("wanted (quote b), got %s", got)
	}
}

func TestUnclosedListReportsItsOpening(t *testing.T) {
	_, e := parser.ParseString("test", "(a\n  (b c)")
	var rErr *report.Error
	if !errors.As(e, &rErr) || !errors.Is(e, report.ErrEOF) {
		t.Fatalf("wanted an unexpected EOF error, got %v", e)
	}
	if rErr.Token.Line != 1 || rErr.Token.ChStart != 0 {
		t.Fatalf("error should point at the opening paren, got %+v", rErr.Token)
	}
}

func TestEmptyProgram(t *testing.T) {
	exprs, e := parser.ParseString("test", "  ; nothing here\n")
	if e != nil || len(exprs) != 0 {
		t.Fatalf("wanted no forms and no error, got %v, %v", exprs, e)
	}
}

func TestNestingIsLimited(t *testing.T) {
	nest := func(n int) string {
		return "'" + strings.Repeat("(", n) + strings.Repeat(")", n)
	}
	toks, e := lexer.Tokenize("test", nest(49))
	if e != nil {
		t.Fatal(e)
	}
	if _, e := parser.NewWithMaxDepth(toks, 50).ParseForms(); e != nil {
		t.Fatalf("49 lists under a quote should parse: %v", e)
	}
	toks, _ = lexer.Tokenize("test", nest(50))
	_, e = parser.NewWithMaxDepth(toks, 50).ParseForms()
	if !errors.Is(e, report.ErrNesting) {
		t.Fatalf("wanted a nesting error, got %v", e)
	}
	toks, _ = lexer.Tokenize("test", strings.Repeat("'", 100)+"a")
	if _, e := parser.NewWithMaxDepth(toks, 50).ParseForms(); !errors.Is(e, report.ErrNesting) {
		t.Fatalf("quotes should count towards the nesting, got %v", e)
	}
	if _, e := parser.ParseString("test", nest(100000)); !errors.Is(e, report.ErrNesting) {
		t.Fatalf("wanted a nesting error at the default limit, got %v", e)
	}
}
