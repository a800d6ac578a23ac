package evaluator

import (
	"github.com/tim-hardcastle/minilisp/source/values"
)

// Special forms are recognized by the symbol at the head of the list and are evaluated by
// their own rules rather than by evaluating the head and applying it. The bool says whether
// name was a special form at all.
func (c *Context) evalSpecialForm(name string, form values.Value, env *values.Environment) (values.Value, bool, error) {
	var (
		result values.Value
		e      error
	)
	switch name {
	case "quote":
		result, e = c.evalQuote(form)
	case "if":
		result, e = c.evalIf(form, env)
	case "define":
		result, e = c.evalDefine(form, env)
	case "set!":
		result, e = c.evalSet(form, env)
	case "lambda":
		result, e = c.evalLambda(form, env)
	case "begin":
		result, e = c.evalBody(form.Elements()[1:], env)
	case "let":
		result, e = c.evalLet(form, env)
	case "cond":
		result, e = c.evalCond(form, env)
	case "and":
		result, e = c.evalAnd(form, env)
	case "or":
		result, e = c.evalOr(form, env)
	default:
		return values.Value{}, false, nil
	}
	return result, true, e
}

// (quote x)
func (c *Context) evalQuote(form values.Value) (values.Value, error) {
	if form.Len() != 2 {
		return values.Value{}, newError("eval/arity/form", "quote", "exactly one argument")
	}
	return form.Index(1), nil
}

// (if test then) or (if test then else). Only #f is false. With no else branch, a false test
// gives nil.
func (c *Context) evalIf(form values.Value, env *values.Environment) (values.Value, error) {
	if form.Len() != 3 && form.Len() != 4 {
		return values.Value{}, newError("eval/arity/form", "if", "(if test then [else])")
	}
	test, e := c.Eval(form.Index(1), env)
	if e != nil {
		return values.Value{}, e
	}
	if test.IsTruthy() {
		return c.Eval(form.Index(2), env)
	}
	if form.Len() == 4 {
		return c.Eval(form.Index(3), env)
	}
	return values.NIL, nil
}

// (define name expr) binds name in the current frame and returns the value bound.
// (define (name params...) body...) is short for (define name (lambda (params...) body...)).
func (c *Context) evalDefine(form values.Value, env *values.Environment) (values.Value, error) {
	if form.Len() < 3 {
		return values.Value{}, newError("eval/arity/form", "define", "(define name expr)")
	}
	target := form.Index(1)
	switch target.T {
	case values.SYMBOL:
		if form.Len() != 3 {
			return values.Value{}, newError("eval/arity/form", "define", "(define name expr)")
		}
		val, e := c.Eval(form.Index(2), env)
		if e != nil {
			return values.Value{}, e
		}
		return env.Define(target.AsString(), nameClosure(val, target.AsString())), nil
	case values.LIST:
		if target.Len() == 0 || target.Index(0).T != values.SYMBOL {
			return values.Value{}, newError("eval/syntax/name", "define", values.Describe(target))
		}
		name := target.Index(0).AsString()
		params, e := paramNames(target.Rest(), "define")
		if e != nil {
			return values.Value{}, e
		}
		cl := &values.Closure{Name: name, Params: params, Body: form.Elements()[2:], Env: env}
		return env.Define(name, values.Value{T: values.CLOSURE, V: cl}), nil
	}
	return values.Value{}, newError("eval/syntax/name", "define", values.Describe(target))
}

func nameClosure(val values.Value, name string) values.Value {
	if val.T == values.CLOSURE && val.V.(*values.Closure).Name == "" {
		return values.Value{T: values.CLOSURE, V: val.V.(*values.Closure).Named(name)}
	}
	return val
}

// (set! name expr) rebinds the nearest existing binding of name.
func (c *Context) evalSet(form values.Value, env *values.Environment) (values.Value, error) {
	if form.Len() != 3 {
		return values.Value{}, newError("eval/arity/form", "set!", "(set! name expr)")
	}
	target := form.Index(1)
	if target.T != values.SYMBOL {
		return values.Value{}, newError("eval/syntax/name", "set!", values.Describe(target))
	}
	val, e := c.Eval(form.Index(2), env)
	if e != nil {
		return values.Value{}, e
	}
	if !env.Set(target.AsString(), val) {
		return values.Value{}, newError("eval/unbound/set", target.AsString())
	}
	return val, nil
}

// (lambda (params...) body...) captures env. The body isn't looked at until the closure is called.
func (c *Context) evalLambda(form values.Value, env *values.Environment) (values.Value, error) {
	if form.Len() < 3 {
		return values.Value{}, newError("eval/arity/form", "lambda", "(lambda (params...) body...)")
	}
	paramList := form.Index(1)
	if paramList.T != values.LIST {
		return values.Value{}, newError("eval/syntax/params", "lambda")
	}
	params, e := paramNames(paramList, "lambda")
	if e != nil {
		return values.Value{}, e
	}
	cl := &values.Closure{Params: params, Body: form.Elements()[2:], Env: env}
	return values.Value{T: values.CLOSURE, V: cl}, nil
}

func paramNames(list values.Value, formName string) ([]string, error) {
	result := make([]string, 0, list.Len())
	for _, p := range list.Elements() {
		if p.T != values.SYMBOL {
			return nil, newError("eval/syntax/params", formName)
		}
		result = append(result, p.AsString())
	}
	return result, nil
}

// (let ((name expr)...) body...). The exprs are all evaluated in env before any of the names
// are bound, in a new frame.
func (c *Context) evalLet(form values.Value, env *values.Environment) (values.Value, error) {
	if form.Len() < 3 || form.Index(1).T != values.LIST {
		return values.Value{}, newError("eval/arity/form", "let", "(let ((name expr)...) body...)")
	}
	frame := values.NewEnclosedEnvironment(env)
	for _, binding := range form.Index(1).Elements() {
		if binding.T != values.LIST || binding.Len() != 2 || binding.Index(0).T != values.SYMBOL {
			return values.Value{}, newError("eval/syntax/binding", values.Describe(binding))
		}
		val, e := c.Eval(binding.Index(1), env)
		if e != nil {
			return values.Value{}, e
		}
		frame.Define(binding.Index(0).AsString(), val)
	}
	return c.evalBody(form.Elements()[2:], frame)
}

// (cond (test body...)... (else body...)). A clause with no body returns the value of its test.
func (c *Context) evalCond(form values.Value, env *values.Environment) (values.Value, error) {
	for _, clause := range form.Elements()[1:] {
		if clause.T != values.LIST || clause.Len() == 0 {
			return values.Value{}, newError("eval/syntax/clause", values.Describe(clause))
		}
		head := clause.Index(0)
		if head.T == values.SYMBOL && head.AsString() == "else" {
			return c.evalBody(clause.Elements()[1:], env)
		}
		test, e := c.Eval(head, env)
		if e != nil {
			return values.Value{}, e
		}
		if !test.IsTruthy() {
			continue
		}
		if clause.Len() == 1 {
			return test, nil
		}
		return c.evalBody(clause.Elements()[1:], env)
	}
	return values.NIL, nil
}

// (and ...) returns the first false value, or the last value.
func (c *Context) evalAnd(form values.Value, env *values.Environment) (values.Value, error) {
	result := values.TRUE
	for _, expr := range form.Elements()[1:] {
		val, e := c.Eval(expr, env)
		if e != nil {
			return values.Value{}, e
		}
		if !val.IsTruthy() {
			return val, nil
		}
		result = val
	}
	return result, nil
}

// (or ...) returns the first true value, or #f.
func (c *Context) evalOr(form values.Value, env *values.Environment) (values.Value, error) {
	for _, expr := range form.Elements()[1:] {
		val, e := c.Eval(expr, env)
		if e != nil {
			return values.Value{}, e
		}
		if val.IsTruthy() {
			return val, nil
		}
	}
	return values.FALSE, nil
}
