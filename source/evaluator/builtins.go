package evaluator

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/tim-hardcastle/minilisp/source/report"
	"github.com/tim-hardcastle/minilisp/source/token"
	"github.com/tim-hardcastle/minilisp/source/values"
)

// The builtin procedures. NewGlobalEnvironment binds each of these under its name.
var builtins = map[string]*values.Builtin{}

func init() {
	for _, b := range []*values.Builtin{
		{Name: "+", MinArgs: 0, MaxArgs: -1, Fn: addition},
		{Name: "-", MinArgs: 1, MaxArgs: -1, Fn: subtraction},
		{Name: "*", MinArgs: 0, MaxArgs: -1, Fn: multiplication},
		{Name: "/", MinArgs: 1, MaxArgs: -1, Fn: division},
		{Name: "%", MinArgs: 2, MaxArgs: 2, Fn: modulo("%")},
		{Name: "modulo", MinArgs: 2, MaxArgs: 2, Fn: modulo("modulo")},
		{Name: "=", MinArgs: 1, MaxArgs: -1, Fn: comparison("=", func(a, b float64) bool { return a == b })},
		{Name: "<", MinArgs: 1, MaxArgs: -1, Fn: comparison("<", func(a, b float64) bool { return a < b })},
		{Name: ">", MinArgs: 1, MaxArgs: -1, Fn: comparison(">", func(a, b float64) bool { return a > b })},
		{Name: "<=", MinArgs: 1, MaxArgs: -1, Fn: comparison("<=", func(a, b float64) bool { return a <= b })},
		{Name: ">=", MinArgs: 1, MaxArgs: -1, Fn: comparison(">=", func(a, b float64) bool { return a >= b })},
		{Name: "abs", MinArgs: 1, MaxArgs: 1, Fn: absolute},
		{Name: "min", MinArgs: 1, MaxArgs: -1, Fn: extremum("min", func(a, b float64) bool { return a < b })},
		{Name: "max", MinArgs: 1, MaxArgs: -1, Fn: extremum("max", func(a, b float64) bool { return a > b })},
		{Name: "not", MinArgs: 1, MaxArgs: 1, Fn: not},
		{Name: "cons", MinArgs: 2, MaxArgs: 2, Fn: cons},
		{Name: "car", MinArgs: 1, MaxArgs: 1, Fn: car},
		{Name: "cdr", MinArgs: 1, MaxArgs: 1, Fn: cdr},
		{Name: "list", MinArgs: 0, MaxArgs: -1, Fn: list},
		{Name: "length", MinArgs: 1, MaxArgs: 1, Fn: length},
		{Name: "null?", MinArgs: 1, MaxArgs: 1, Fn: isNull},
		{Name: "list?", MinArgs: 1, MaxArgs: 1, Fn: isType(values.LIST)},
		{Name: "number?", MinArgs: 1, MaxArgs: 1, Fn: isType(values.NUMBER)},
		{Name: "symbol?", MinArgs: 1, MaxArgs: 1, Fn: isType(values.SYMBOL)},
		{Name: "boolean?", MinArgs: 1, MaxArgs: 1, Fn: isType(values.BOOL)},
		{Name: "string?", MinArgs: 1, MaxArgs: 1, Fn: isType(values.STRING)},
		{Name: "procedure?", MinArgs: 1, MaxArgs: 1, Fn: isProcedure},
		{Name: "eq?", MinArgs: 2, MaxArgs: 2, Fn: isIdentical},
		{Name: "equal?", MinArgs: 2, MaxArgs: 2, Fn: isEqual},
	} {
		builtins[b.Name] = b
	}
}

func describeArity(min, max int) string {
	switch {
	case min == max:
		return "exactly " + pluralArgs(min)
	case max < 0:
		return "at least " + pluralArgs(min)
	}
	return "between " + strconv.Itoa(min) + " and " + pluralArgs(max)
}

func pluralArgs(n int) string {
	if n == 1 {
		return "1 argument"
	}
	return strconv.Itoa(n) + " arguments"
}

func typeErr(tok *token.Token, name, expected string, got values.Value) error {
	return report.CreateErr("eval/type", tok, name, expected, values.Describe(got))
}

// Checks that every argument is a number and unwraps them.
func numbers(tok *token.Token, name string, args []values.Value) ([]float64, error) {
	result := make([]float64, len(args))
	for i, arg := range args {
		if arg.T != values.NUMBER {
			return nil, typeErr(tok, name, "a number", arg)
		}
		result[i] = arg.AsNumber()
	}
	return result, nil
}

func addition(tok *token.Token, args []values.Value) (values.Value, error) {
	nums, e := numbers(tok, "+", args)
	if e != nil {
		return values.Value{}, e
	}
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	return values.Number(sum), nil
}

// With one argument, negates it.
func subtraction(tok *token.Token, args []values.Value) (values.Value, error) {
	nums, e := numbers(tok, "-", args)
	if e != nil {
		return values.Value{}, e
	}
	if len(nums) == 1 {
		return values.Number(-nums[0]), nil
	}
	result := nums[0]
	for _, n := range nums[1:] {
		result -= n
	}
	return values.Number(result), nil
}

func multiplication(tok *token.Token, args []values.Value) (values.Value, error) {
	nums, e := numbers(tok, "*", args)
	if e != nil {
		return values.Value{}, e
	}
	product := 1.0
	for _, n := range nums {
		product *= n
	}
	return values.Number(product), nil
}

// With one argument, takes the reciprocal.
func division(tok *token.Token, args []values.Value) (values.Value, error) {
	nums, e := numbers(tok, "/", args)
	if e != nil {
		return values.Value{}, e
	}
	if len(nums) == 1 {
		nums = []float64{1, nums[0]}
	}
	result := nums[0]
	for _, n := range nums[1:] {
		if n == 0 {
			return values.Value{}, report.CreateErr("eval/div", tok, "/")
		}
		result /= n
	}
	return values.Number(result), nil
}

// Floored, so the result has the sign of the divisor.
func modulo(name string) func(tok *token.Token, args []values.Value) (values.Value, error) {
	return func(tok *token.Token, args []values.Value) (values.Value, error) {
		nums, e := numbers(tok, name, args)
		if e != nil {
			return values.Value{}, e
		}
		if nums[1] == 0 {
			return values.Value{}, report.CreateErr("eval/div", tok, name)
		}
		m := math.Mod(nums[0], nums[1])
		if m != 0 && (m < 0) != (nums[1] < 0) {
			m += nums[1]
		}
		return values.Number(m), nil
	}
}

// (< a b c) is true if a < b and b < c.
func comparison(name string, cmp func(a, b float64) bool) func(tok *token.Token, args []values.Value) (values.Value, error) {
	return func(tok *token.Token, args []values.Value) (values.Value, error) {
		nums, e := numbers(tok, name, args)
		if e != nil {
			return values.Value{}, e
		}
		for i := 1; i < len(nums); i++ {
			if !cmp(nums[i-1], nums[i]) {
				return values.FALSE, nil
			}
		}
		return values.TRUE, nil
	}
}

func absolute(tok *token.Token, args []values.Value) (values.Value, error) {
	nums, e := numbers(tok, "abs", args)
	if e != nil {
		return values.Value{}, e
	}
	return values.Number(math.Abs(nums[0])), nil
}

func extremum(name string, better func(a, b float64) bool) func(tok *token.Token, args []values.Value) (values.Value, error) {
	return func(tok *token.Token, args []values.Value) (values.Value, error) {
		nums, e := numbers(tok, name, args)
		if e != nil {
			return values.Value{}, e
		}
		result := nums[0]
		for _, n := range nums[1:] {
			if better(n, result) {
				result = n
			}
		}
		return values.Number(result), nil
	}
}

func not(tok *token.Token, args []values.Value) (values.Value, error) {
	return values.Bool(!args[0].IsTruthy()), nil
}

// There are no dotted pairs, so the second argument has to be a list.
func cons(tok *token.Token, args []values.Value) (values.Value, error) {
	if args[1].T != values.LIST {
		return values.Value{}, typeErr(tok, "cons", "a list as its second argument", args[1])
	}
	return args[1].Cons(args[0]), nil
}

func car(tok *token.Token, args []values.Value) (values.Value, error) {
	if args[0].T != values.LIST {
		return values.Value{}, typeErr(tok, "car", "a list", args[0])
	}
	if args[0].Len() == 0 {
		return values.Value{}, report.CreateErr("eval/type/empty", tok, "car")
	}
	return args[0].Index(0), nil
}

func cdr(tok *token.Token, args []values.Value) (values.Value, error) {
	if args[0].T != values.LIST {
		return values.Value{}, typeErr(tok, "cdr", "a list", args[0])
	}
	if args[0].Len() == 0 {
		return values.Value{}, report.CreateErr("eval/type/empty", tok, "cdr")
	}
	return args[0].Rest(), nil
}

func list(tok *token.Token, args []values.Value) (values.Value, error) {
	return values.List(args...), nil
}

// Lists are measured in elements and strings in characters.
func length(tok *token.Token, args []values.Value) (values.Value, error) {
	switch args[0].T {
	case values.LIST:
		return values.Number(float64(args[0].Len())), nil
	case values.STRING:
		return values.Number(float64(utf8.RuneCountInString(args[0].AsString()))), nil
	}
	return values.Value{}, typeErr(tok, "length", "a list or a string", args[0])
}

func isNull(tok *token.Token, args []values.Value) (values.Value, error) {
	return values.Bool(args[0].IsEmptyList() || args[0].T == values.NULL), nil
}

func isType(t values.ValueType) func(tok *token.Token, args []values.Value) (values.Value, error) {
	return func(tok *token.Token, args []values.Value) (values.Value, error) {
		return values.Bool(args[0].T == t), nil
	}
}

func isProcedure(tok *token.Token, args []values.Value) (values.Value, error) {
	return values.Bool(args[0].IsProcedure()), nil
}

func isIdentical(tok *token.Token, args []values.Value) (values.Value, error) {
	return values.Bool(values.Identical(args[0], args[1])), nil
}

func isEqual(tok *token.Token, args []values.Value) (values.Value, error) {
	return values.Bool(values.Equal(args[0], args[1])), nil
}
