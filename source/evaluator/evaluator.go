package evaluator

// This is basically your standard tree-walking evaluator. Source code and data are the same
// values.Value lists, so there is no separate AST: a list is evaluated by looking at its head.

import (
	"log/slog"

	"github.com/tim-hardcastle/minilisp/source/report"
	"github.com/tim-hardcastle/minilisp/source/settings"
	"github.com/tim-hardcastle/minilisp/source/values"
)

// The evaluator is stateless apart from the environment, which is passed from call to call.
// What the Context carries is the bookkeeping for the recursion: there is no tail-call
// elimination, so depth counts nested evaluations and is capped at maxDepth so that runaway
// recursion gives an error rather than exhausting the Go stack.
//
// A Context is not safe for concurrent use, and nor are the environments it evaluates in.
type Context struct {
	depth    int
	maxDepth int
}

func NewContext(maxDepth int) *Context {
	if maxDepth <= 0 {
		maxDepth = settings.DEFAULT_MAX_DEPTH
	}
	return &Context{maxDepth: maxDepth}
}

// Evaluates expr in env with the default depth limit.
func Eval(expr values.Value, env *values.Environment) (values.Value, error) {
	return NewContext(settings.DEFAULT_MAX_DEPTH).Eval(expr, env)
}

// Makes a root environment with all the builtins bound in it.
func NewGlobalEnvironment() *values.Environment {
	env := values.NewEnvironment()
	for name, b := range builtins {
		env.Define(name, values.Value{T: values.BUILTIN, V: b})
	}
	return env
}

func (c *Context) Eval(expr values.Value, env *values.Environment) (values.Value, error) {
	switch expr.T {
	case values.SYMBOL:
		name := expr.AsString()
		val, ok := env.Get(name)
		if !ok {
			return values.Value{}, newError("eval/unbound", name)
		}
		return val, nil
	case values.LIST:
		if expr.Len() == 0 {
			return expr, nil
		}
		c.depth++
		defer func() { c.depth-- }()
		if c.depth > c.maxDepth {
			return values.Value{}, newError("eval/depth", c.maxDepth)
		}
		if settings.SHOW_EVAL {
			slog.Debug("eval", "expr", values.Describe(expr), "depth", c.depth)
		}
		head := expr.Index(0)
		if head.T == values.SYMBOL {
			if result, ok, e := c.evalSpecialForm(head.AsString(), expr, env); ok {
				return result, e
			}
		}
		return c.evalApplication(expr, env)
	}
	// Everything else evaluates to itself.
	return expr, nil
}

// The head of the list is evaluated to get a procedure and every other element is evaluated
// to get the arguments, left to right, before anything is applied.
func (c *Context) evalApplication(expr values.Value, env *values.Environment) (values.Value, error) {
	elements := expr.Elements()
	proc, e := c.Eval(elements[0], env)
	if e != nil {
		return values.Value{}, e
	}
	if !proc.IsProcedure() {
		return values.Value{}, newError("eval/apply", values.Describe(proc))
	}
	args, e := c.evalAll(elements[1:], env)
	if e != nil {
		return values.Value{}, e
	}
	return c.Apply(proc, args)
}

func (c *Context) evalAll(exprs []values.Value, env *values.Environment) ([]values.Value, error) {
	result := make([]values.Value, 0, len(exprs))
	for _, expr := range exprs {
		val, e := c.Eval(expr, env)
		if e != nil {
			return nil, e
		}
		result = append(result, val)
	}
	return result, nil
}

// Applies a procedure to arguments that have already been evaluated.
func (c *Context) Apply(proc values.Value, args []values.Value) (values.Value, error) {
	switch proc.T {
	case values.BUILTIN:
		b := proc.V.(*values.Builtin)
		if len(args) < b.MinArgs || (b.MaxArgs >= 0 && len(args) > b.MaxArgs) {
			return values.Value{}, newError("eval/arity/builtin", b.Name, describeArity(b.MinArgs, b.MaxArgs), len(args))
		}
		return b.Fn(nil, args)
	case values.CLOSURE:
		cl := proc.V.(*values.Closure)
		if len(args) != len(cl.Params) {
			return values.Value{}, newError("eval/arity/closure", values.Describe(proc), len(cl.Params), len(args))
		}
		frame := values.NewEnclosedEnvironment(cl.Env)
		for i, param := range cl.Params {
			frame.Define(param, args[i])
		}
		return c.evalBody(cl.Body, frame)
	}
	return values.Value{}, newError("eval/apply", values.Describe(proc))
}

// Evaluates the forms in order and returns the value of the last one, or nil if there are none.
func (c *Context) evalBody(body []values.Value, env *values.Environment) (values.Value, error) {
	result := values.NIL
	for _, expr := range body {
		val, e := c.Eval(expr, env)
		if e != nil {
			return values.Value{}, e
		}
		result = val
	}
	return result, nil
}

func newError(ident string, args ...any) *report.Error {
	return report.CreateErr(ident, nil, args...)
}
