package service

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tim-hardcastle/minilisp/source/evaluator"
	"github.com/tim-hardcastle/minilisp/source/lexer"
	"github.com/tim-hardcastle/minilisp/source/parser"
	"github.com/tim-hardcastle/minilisp/source/report"
	"github.com/tim-hardcastle/minilisp/source/settings"
	"github.com/tim-hardcastle/minilisp/source/text"
	"github.com/tim-hardcastle/minilisp/source/token"
	"github.com/tim-hardcastle/minilisp/source/values"
)

// A Service is what the REPL, the CLI and the tests talk to. It owns a global environment
// which persists from one call of Do to the next, so that what one input defines the next can
// use.
//
// A Service is not safe for concurrent use. To run programs concurrently, give each one its own
// Service: they share nothing.
type Service struct {
	env      *values.Environment
	ctx      *evaluator.Context
	maxDepth int
	filepath string
}

// The outcome of evaluating one top-level form. Exactly one of Value and Err is meaningful.
type Result struct {
	Source string
	Value  values.Value
	Err    error
}

func (r Result) Failed() bool {
	return r.Err != nil
}

// Returns a new service with the default depth limit.
func NewService() *Service {
	return NewServiceWithConfig(settings.Default())
}

func NewServiceWithConfig(cfg *settings.Config) *Service {
	return &Service{
		env:      evaluator.NewGlobalEnvironment(),
		ctx:      evaluator.NewContext(cfg.MaxDepth),
		maxDepth: cfg.MaxDepth,
	}
}

// Evaluates each top-level form of the code in turn, in the service's environment, and returns
// one result per form.
//
// If the code doesn't lex or parse, nothing is evaluated and there is one failed result. If a
// form fails to evaluate, its result says so and evaluation goes on with the next form.
func (sv *Service) Do(code string) []Result {
	return sv.DoSource("REPL input", code)
}

// As Do, but errors will report the given source name.
func (sv *Service) DoSource(source, code string) []Result {
	toks, e := lexer.Tokenize(source, code)
	if e != nil {
		return []Result{{Source: code, Err: e}}
	}
	forms, e := parser.NewWithMaxDepth(toks, sv.maxDepth).ParseForms()
	if e != nil {
		return []Result{{Source: code, Err: e}}
	}
	results := make([]Result, 0, len(forms))
	for _, form := range forms {
		val, e := sv.ctx.Eval(form.Expr, sv.env)
		if e != nil {
			locate(e, form.Token)
			slog.Debug("form failed", "form", values.Describe(form.Expr), "err", e)
		}
		results = append(results, Result{Source: values.Describe(form.Expr), Value: val, Err: e})
	}
	return results
}

// Values don't know where they came from, so an error raised while evaluating is given the
// position of the top-level form it happened in.
func locate(e error, tok token.Token) {
	var rErr *report.Error
	if !errors.As(e, &rErr) {
		return
	}
	if rErr.Token == nil {
		rErr.Token = &tok
	}
	rErr.AddToTrace(&tok)
}

// Reads the file and evaluates it with DoSource. The error is only for failing to read the file:
// errors in the code are in the results.
func (sv *Service) RunFile(path string) ([]Result, error) {
	code, e := os.ReadFile(path)
	if e != nil {
		return nil, fmt.Errorf("service: read %s: %w", path, e)
	}
	sv.filepath = path
	return sv.DoSource(path, string(code)), nil
}

func (sv *Service) GetFilepath() string {
	return sv.filepath
}

func (sv *Service) Env() *values.Environment {
	return sv.env
}

func (sv *Service) Describe(v values.Value) string {
	return values.Describe(v)
}

// Reports whether any of the results is an error.
func AnyFailed(results []Result) bool {
	for _, r := range results {
		if r.Failed() {
			return true
		}
	}
	return false
}

// Gets a report of an error and where it came from, suitable for printing to the terminal.
func GetErrorReport(e error) string {
	var rErr *report.Error
	if !errors.As(e, &rErr) {
		return text.BROKEN + e.Error() + "\n"
	}
	var sb strings.Builder
	sb.WriteString(text.BROKEN + text.Red(rErr.Kind().Stage()+" error") + ": " + rErr.Message + report.DescribePos(rErr.Token) + ".\n")
	for i := len(rErr.Trace) - 1; i >= 0; i-- {
		if rErr.Trace[i] == rErr.Token {
			continue
		}
		sb.WriteString(text.BULLET_SPACING + "From: " + text.Emph(rErr.Trace[i].Literal) + report.DescribePos(rErr.Trace[i]) + ".\n")
	}
	return sb.String()
}
