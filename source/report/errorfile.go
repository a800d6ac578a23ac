package report

import (
	"fmt"
	"strconv"

	"github.com/tim-hardcastle/minilisp/source/text"
	"github.com/tim-hardcastle/minilisp/source/token"
)

// A map from error identifiers to functions that supply the corresponding error messages and explanations.
//
// Errors in the map are in alphabetical order of their identifers.
//
// Major categories are eval, lex and parse.

type ErrorCreator struct {
	Kind        Kind
	Message     func(tok *token.Token, args ...any) string
	Explanation func(tok *token.Token, args ...any) string
}

var ErrorCreatorMap = map[string]ErrorCreator{

	"eval/apply": {
		Kind: NotApplicable,
		Message: func(tok *token.Token, args ...any) string {
			return "trying to apply " + emph(args[0]) + ", which is not a procedure"
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "The first element of a list that isn't a special form is evaluated and then " +
				"called with the rest of the list as its arguments. Here the first element evaluated to " +
				emph(args[0]) + ", which can't be called. If you meant the list as data, quote it."
		},
	},

	"eval/arity/builtin": {
		Kind: ArityError,
		Message: func(tok *token.Token, args ...any) string {
			return emph(args[0]) + " expects " + fmt.Sprint(args[1]) + " but got " + plural(args[2], "argument")
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "The builtin procedure " + emph(args[0]) + " was called with the wrong number of arguments."
		},
	},

	"eval/arity/closure": {
		Kind: ArityError,
		Message: func(tok *token.Token, args ...any) string {
			return emph(args[0]) + " expects " + plural(args[1], "argument") + " but got " + strconv.Itoa(args[2].(int))
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "A procedure made with " + emph("lambda") + " must be called with exactly as many " +
				"arguments as it has parameters."
		},
	},

	"eval/arity/form": {
		Kind: ArityError,
		Message: func(tok *token.Token, args ...any) string {
			return "malformed " + emph(args[0]) + ": expected " + fmt.Sprint(args[1])
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "The special form " + emph(args[0]) + " has a fixed shape and this use of it doesn't match."
		},
	},

	"eval/depth": {
		Kind: DepthExceeded,
		Message: func(tok *token.Token, args ...any) string {
			return "maximum evaluation depth of " + strconv.Itoa(args[0].(int)) + " exceeded"
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "There is no tail-call elimination, so every nested call uses up some of a fixed budget " +
				"of evaluation depth. Runaway recursion fails here rather than crashing the interpreter. " +
				"The limit can be raised with " + emph("max_depth") + " in the config file."
		},
	},

	"eval/div": {
		Kind: DivisionByZero,
		Message: func(tok *token.Token, args ...any) string {
			return "division by zero in " + emph(args[0])
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "A divisor evaluated to zero."
		},
	},

	"eval/syntax/binding": {
		Kind: SyntaxError,
		Message: func(tok *token.Token, args ...any) string {
			return "malformed binding " + emph(args[0]) + " in " + emph("let")
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "Each binding of a " + emph("let") + " should be a two-element list of a symbol " +
				"and an expression, like " + emph("(x 1)") + "."
		},
	},

	"eval/syntax/clause": {
		Kind: SyntaxError,
		Message: func(tok *token.Token, args ...any) string {
			return "malformed clause " + emph(args[0]) + " in " + emph("cond")
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "Each clause of a " + emph("cond") + " should be a non-empty list whose first " +
				"element is the test, or " + emph("else") + "."
		},
	},

	"eval/syntax/name": {
		Kind: SyntaxError,
		Message: func(tok *token.Token, args ...any) string {
			return "expected a symbol in " + emph(args[0]) + " but found " + emph(args[1])
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "Only symbols can be bound to values."
		},
	},

	"eval/syntax/params": {
		Kind: SyntaxError,
		Message: func(tok *token.Token, args ...any) string {
			return "the parameters of " + emph(args[0]) + " must be a list of symbols"
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "A lambda looks like " + emph("(lambda (x y) body)") + ": the second element " +
				"must be a list, and every element of that list must be a symbol."
		},
	},

	"eval/type": {
		Kind: TypeError,
		Message: func(tok *token.Token, args ...any) string {
			return emph(args[0]) + " expects " + fmt.Sprint(args[1]) + " but got " + emph(args[2])
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "The builtin procedure " + emph(args[0]) + " was given an argument of the wrong type."
		},
	},

	"eval/type/empty": {
		Kind: TypeError,
		Message: func(tok *token.Token, args ...any) string {
			return emph(args[0]) + " of the empty list"
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "The empty list has no first element and no rest."
		},
	},

	"eval/unbound": {
		Kind: UnboundSymbol,
		Message: func(tok *token.Token, args ...any) string {
			return "unbound symbol " + emph(args[0])
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "The symbol " + emph(args[0]) + " has not been given a value by " + emph("define") +
				", by a parameter, or by a " + emph("let") + " in any enclosing scope."
		},
	},

	"eval/unbound/set": {
		Kind: UnboundSymbol,
		Message: func(tok *token.Token, args ...any) string {
			return "can't " + emph("set!") + " unbound symbol " + emph(args[0])
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return emph("set!") + " only changes an existing binding. Use " + emph("define") +
				" to make a new one."
		},
	},

	"lex/hash": {
		Kind: LexError,
		Message: func(tok *token.Token, args ...any) string {
			return "unknown literal " + emph(args[0])
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "The only literals beginning with " + emph("#") + " are the booleans " +
				emph("#t") + " and " + emph("#f") + "."
		},
	},

	"lex/ill": {
		Kind: LexError,
		Message: func(tok *token.Token, args ...any) string {
			return "illegal character " + emph(string(args[0].(rune)))
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "That character can't start a number, a symbol, a string or a boolean, and isn't a " +
				"parenthesis, a quote, or whitespace."
		},
	},

	"lex/num": {
		Kind: LexError,
		Message: func(tok *token.Token, args ...any) string {
			return "malformed number " + emph(args[0])
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "A number is an optional sign, then digits with at most one decimal point."
		},
	},

	"lex/string": {
		Kind: LexError,
		Message: func(tok *token.Token, args ...any) string {
			return "unterminated string literal"
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "A string literal was opened with " + emph("\"") + " but the input ended before it was closed."
		},
	},

	"parse/depth": {
		Kind: NestingExceeded,
		Message: func(tok *token.Token, args ...any) string {
			return "expressions are nested more than " + strconv.Itoa(args[0].(int)) + " deep"
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "Lists and quotes can only be nested so deep. The limit is the same as the evaluation " +
				"depth and can be raised with " + emph("max_depth") + " in the config file."
		},
	},

	"parse/eof": {
		Kind: UnexpectedEOF,
		Message: func(tok *token.Token, args ...any) string {
			return "unexpected end of input: missing " + emph(")")
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "There are more opening parentheses than closing ones."
		},
	},

	"parse/quote": {
		Kind: UnexpectedEOF,
		Message: func(tok *token.Token, args ...any) string {
			return "unexpected end of input after " + emph("'")
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "A quote mark must be followed by the expression it quotes."
		},
	},

	"parse/rparen": {
		Kind: UnmatchedRightParen,
		Message: func(tok *token.Token, args ...any) string {
			return "unmatched " + emph(")")
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "There are more closing parentheses than opening ones."
		},
	},

	"parse/token": {
		Kind: UnexpectedToken,
		Message: func(tok *token.Token, args ...any) string {
			return "unexpected token " + emph(args[0])
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "The parser was given a token it doesn't know how to turn into an expression."
		},
	},
}

func emph(s any) string {
	return text.Emph(fmt.Sprint(s))
}

func plural(n any, word string) string {
	i, ok := n.(int)
	if !ok {
		return fmt.Sprint(n) + " " + word + "s"
	}
	if i == 1 {
		return "1 " + word
	}
	return strconv.Itoa(i) + " " + word + "s"
}

// Returns the long-form explanation of an error, for the REPL's ':why' command.
func Explain(e *Error) string {
	creator, ok := ErrorCreatorMap[e.ErrorId]
	if !ok || creator.Explanation == nil {
		return ""
	}
	return creator.Explanation(e.Token, e.Args...)
}
