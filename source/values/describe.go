package values

import (
	"math"
	"strconv"
	"strings"
)

// Renders a value the way the REPL shows it: numbers in their shortest literal form,
// booleans as #t and #f, lists parenthesized and space-separated, procedures opaquely.
func Describe(v Value) string {
	var sb strings.Builder
	describe(&sb, v)
	return sb.String()
}

func describe(sb *strings.Builder, v Value) {
	switch v.T {
	case NULL:
		sb.WriteString("nil")
	case NUMBER:
		sb.WriteString(FormatNumber(v.V.(float64)))
	case BOOL:
		if v.V.(bool) {
			sb.WriteString("#t")
		} else {
			sb.WriteString("#f")
		}
	case SYMBOL:
		sb.WriteString(v.V.(string))
	case STRING:
		sb.WriteString(strconv.Quote(v.V.(string)))
	case LIST:
		sb.WriteByte('(')
		for i, el := range v.Elements() {
			if i > 0 {
				sb.WriteByte(' ')
			}
			describe(sb, el)
		}
		sb.WriteByte(')')
	case BUILTIN:
		sb.WriteString("#<procedure " + v.V.(*Builtin).Name + ">")
	case CLOSURE:
		if name := v.V.(*Closure).Name; name != "" {
			sb.WriteString("#<procedure " + name + ">")
		} else {
			sb.WriteString("#<procedure>")
		}
	default:
		sb.WriteString("#<undefined>")
	}
}

// Whole numbers print without a decimal point so long as that's exact. Negative zero prints as 0.
func FormatNumber(f float64) string {
	if f == 0 {
		f = 0
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Describes a list of values separated by commas, for error messages.
func DescribeAll(vals []Value) string {
	strs := make([]string, len(vals))
	for i, v := range vals {
		strs[i] = Describe(v)
	}
	return strings.Join(strs, ", ")
}
