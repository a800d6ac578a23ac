package service_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/tim-hardcastle/minilisp/source/report"
	"github.com/tim-hardcastle/minilisp/source/service"
	"github.com/tim-hardcastle/minilisp/source/test_helper"
	"github.com/tim-hardcastle/minilisp/source/values"
)

func TestDo(t *testing.T) {
	tests := []test_helper.TestItem{
		{`(define x 2) (define y 3) (+ x y)`, `5`},
		{`(define (sq x) (* x x))
		  (sq (sq 2))`, `16`},
		{`; Only a comment.
		  42`, `42`},
	}
	test_helper.RunTest(t, "", tests, test_helper.TestValues)
}

func TestEnvironmentPersists(t *testing.T) {
	sv := service.NewService()
	sv.Do(`(define x 10)`)
	results := sv.Do(`(* x 2)`)
	if len(results) != 1 || results[0].Failed() || values.Describe(results[0].Value) != "20" {
		t.Fatalf("wanted 20, got %+v", results)
	}
	if !sv.Env().Exists("x") {
		t.Fatalf("x should be bound in the service's environment")
	}
}

func TestErrorsDontStopLaterForms(t *testing.T) {
	sv := service.NewService()
	results := sv.Do(`(define a 1) undefined (+ a 1)`)
	if len(results) != 3 {
		t.Fatalf("wanted 3 results, got %d", len(results))
	}
	if results[0].Failed() || !results[1].Failed() || results[2].Failed() {
		t.Fatalf("only the second form should fail: %+v", results)
	}
	if !errors.Is(results[1].Err, report.ErrUnbound) {
		t.Fatalf("wanted an unbound symbol error, got %v", results[1].Err)
	}
	if got := values.Describe(results[2].Value); got != "2" {
		t.Fatalf("wanted 2, got %s", got)
	}
	if !service.AnyFailed(results) {
		t.Fatalf("AnyFailed should be true")
	}
}

func TestParseErrorsStopEverything(t *testing.T) {
	sv := service.NewService()
	results := sv.Do(`(define a 1) (+ 1 2`)
	if len(results) != 1 || !results[0].Failed() {
		t.Fatalf("wanted one failed result, got %+v", results)
	}
	if !errors.Is(results[0].Err, report.ErrEOF) {
		t.Fatalf("wanted an unexpected EOF error, got %v", results[0].Err)
	}
	if sv.Env().Exists("a") {
		t.Fatalf("nothing should have been evaluated")
	}
	results = sv.Do(`(+ 1 2))`)
	if len(results) != 1 || !errors.Is(results[0].Err, report.ErrRightParen) {
		t.Fatalf("wanted an unmatched paren error, got %+v", results)
	}
	results = sv.Do(`(+ 1 [2])`)
	if len(results) != 1 || !errors.Is(results[0].Err, report.ErrLex) {
		t.Fatalf("wanted a lex error, got %+v", results)
	}
}

func TestDeepNestingFailsCleanly(t *testing.T) {
	sv := service.NewService()
	results := sv.Do("'" + strings.Repeat("(", 100000) + strings.Repeat(")", 100000))
	if len(results) != 1 || !errors.Is(results[0].Err, report.ErrNesting) {
		t.Fatalf("wanted one nesting error, got %d results", len(results))
	}
	if !strings.HasPrefix(results[0].Err.Error(), "parse error: expressions are nested more than 10000 deep") {
		t.Fatalf("unexpected message: %s", results[0].Err)
	}
	results = sv.Do(`(+ 1 2)`)
	if len(results) != 1 || values.Describe(results[0].Value) != "3" {
		t.Fatalf("the service should still work afterwards, got %+v", results)
	}
}

func TestEvalErrorsArePlaced(t *testing.T) {
	sv := service.NewService()
	results := sv.DoSource("test", "(define a 1)\n  (car a)")
	var rErr *report.Error
	if !errors.As(results[1].Err, &rErr) {
		t.Fatalf("wanted a *report.Error, got %v", results[1].Err)
	}
	if rErr.Token == nil || rErr.Token.Line != 2 || rErr.Token.ChStart != 2 {
		t.Fatalf("error should be at line 2:2, got %+v", rErr.Token)
	}
	if got := rErr.Error(); got != "eval error: 'car' expects a list but got '1' at line 2:2 of test" {
		t.Fatalf("unexpected message: %s", got)
	}
	if r := service.GetErrorReport(rErr); !strings.Contains(r, "line 2:2") {
		t.Fatalf("report should give the position: %s", r)
	}
}

func TestRunFile(t *testing.T) {
	wd, _ := os.Getwd()
	sv := service.NewService()
	results, e := sv.RunFile(wd + "/test-files/area.lsp")
	if e != nil {
		t.Fatal(e)
	}
	want := []string{"3.14159", "10", "#<procedure area>", "314.159", "", "3.14159"}
	if len(results) != len(want) {
		t.Fatalf("wanted %d results, got %d", len(want), len(results))
	}
	for i, r := range results {
		if want[i] == "" {
			if !r.Failed() {
				t.Fatalf("form %d should have failed", i)
			}
			continue
		}
		if r.Failed() {
			t.Fatalf("form %d failed: %v", i, r.Err)
		}
		if got := values.Describe(r.Value); got != want[i] {
			t.Fatalf("form %d: wanted %s, got %s", i, want[i], got)
		}
	}
	if !strings.HasSuffix(sv.GetFilepath(), "area.lsp") {
		t.Fatalf("filepath not recorded")
	}
	if _, e := sv.RunFile(wd + "/test-files/nonexistent.lsp"); e == nil {
		t.Fatalf("expected an error reading a missing file")
	}
}

func TestServicesAreIndependent(t *testing.T) {
	a, b := service.NewService(), service.NewService()
	a.Do(`(define only-in-a 1)`)
	if b.Env().Exists("only-in-a") {
		t.Fatalf("services shouldn't share environments")
	}
}
