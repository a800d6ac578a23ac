package evaluator

import (
	"errors"
	"testing"

	"github.com/tim-hardcastle/minilisp/source/report"
	"github.com/tim-hardcastle/minilisp/source/values"
)

func TestDescribeArity(t *testing.T) {
	tests := []struct {
		min, max int
		want     string
	}{
		{1, 1, "exactly 1 argument"},
		{2, 2, "exactly 2 arguments"},
		{0, -1, "at least 0 arguments"},
		{1, -1, "at least 1 argument"},
		{1, 3, "between 1 and 3 arguments"},
	}
	for _, tt := range tests {
		if got := describeArity(tt.min, tt.max); got != tt.want {
			t.Fatalf("wanted %s, got %s", tt.want, got)
		}
	}
}

func TestGlobalEnvironment(t *testing.T) {
	env := NewGlobalEnvironment()
	for name := range builtins {
		v, ok := env.Get(name)
		if !ok || v.T != values.BUILTIN {
			t.Fatalf("builtin %s isn't bound", name)
		}
	}
	if env.Exists("define") {
		t.Fatalf("special forms shouldn't be bound")
	}
}

func TestApply(t *testing.T) {
	env := NewGlobalEnvironment()
	plus, _ := env.Get("+")
	c := NewContext(0)
	got, e := c.Apply(plus, []values.Value{values.Number(1), values.Number(2)})
	if e != nil || got.AsNumber() != 3 {
		t.Fatalf("wanted 3, got %s, %v", values.Describe(got), e)
	}
	_, e = c.Apply(values.Number(1), nil)
	if !errors.Is(e, report.ErrApply) {
		t.Fatalf("wanted a NotApplicable error, got %v", e)
	}
	car, _ := env.Get("car")
	_, e = c.Apply(car, nil)
	if !errors.Is(e, report.ErrArity) {
		t.Fatalf("wanted an arity error, got %v", e)
	}
}

func TestDepthIsRestored(t *testing.T) {
	c := NewContext(100)
	env := NewGlobalEnvironment()
	expr := values.List(values.Symbol("+"), values.Number(1), values.List(values.Symbol("car"), values.EMPTY_LIST))
	if _, e := c.Eval(expr, env); e == nil {
		t.Fatalf("expected an error")
	}
	if c.depth != 0 {
		t.Fatalf("depth should be back to 0 after an error, got %d", c.depth)
	}
}
