package report

import (
	"strconv"

	"github.com/tim-hardcastle/minilisp/source/token"
)

// The error type returned by every stage of the interpreter.
//
// The ErrorId is the key into the ErrorCreatorMap. Two identical errors thrown from different
// places in the Go code should get different identifiers, if only by suffixing /a, /b, etc.
type Error struct {
	ErrorId string
	Message string
	Args    []any
	Token   *token.Token
	Trace   []*token.Token
}

// Makes a new error from its identifier, filling in the message from the ErrorCreatorMap.
func CreateErr(errorId string, tok *token.Token, args ...any) *Error {
	creator, ok := ErrorCreatorMap[errorId]
	if !ok {
		panic("report: no error creator for '" + errorId + "'")
	}
	return &Error{ErrorId: errorId, Message: creator.Message(tok, args...), Args: args, Token: tok}
}

func (e *Error) Error() string {
	return e.Kind().Stage() + " error: " + e.Message + DescribePos(e.Token)
}

func (e *Error) AddToTrace(tok *token.Token) {
	if tok == nil {
		return
	}
	e.Trace = append(e.Trace, tok)
}

func (e *Error) Kind() Kind {
	if creator, ok := ErrorCreatorMap[e.ErrorId]; ok {
		return creator.Kind
	}
	return UnknownError
}

// Lets errors.Is(err, report.UnboundSymbol) and friends work.
func (e *Error) Is(target error) bool {
	if k, ok := target.(Kind); ok {
		return e.Kind() == k
	}
	if t, ok := target.(*Error); ok {
		return e.ErrorId == t.ErrorId
	}
	return false
}

// A Kind is one leaf of the error taxonomy. Kinds are themselves errors so they can be the
// target of errors.Is.
type Kind int

const (
	UnknownError Kind = iota
	LexError
	UnexpectedEOF
	UnmatchedRightParen
	UnexpectedToken
	UnboundSymbol
	ArityError
	TypeError
	DivisionByZero
	NotApplicable
	SyntaxError
	DepthExceeded
	NestingExceeded
)

var kindNames = map[Kind]string{
	UnknownError:        "UnknownError",
	LexError:            "LexError",
	UnexpectedEOF:       "UnexpectedEOF",
	UnmatchedRightParen: "UnmatchedRightParen",
	UnexpectedToken:     "UnexpectedToken",
	UnboundSymbol:       "UnboundSymbol",
	ArityError:          "ArityError",
	TypeError:           "TypeError",
	DivisionByZero:      "DivisionByZero",
	NotApplicable:       "NotApplicable",
	SyntaxError:         "SyntaxError",
	DepthExceeded:       "DepthExceeded",
	NestingExceeded:     "NestingExceeded",
}

func (k Kind) Error() string {
	return kindNames[k]
}

func (k Kind) String() string {
	return kindNames[k]
}

// Says which stage of the pipeline produces errors of this kind: "lex", "parse" or "eval".
func (k Kind) Stage() string {
	switch k {
	case LexError:
		return "lex"
	case UnexpectedEOF, UnmatchedRightParen, UnexpectedToken, NestingExceeded:
		return "parse"
	case UnknownError:
		return "internal"
	}
	return "eval"
}

func DescribePos(tok *token.Token) string {
	if tok == nil || tok.Line == 0 {
		return ""
	}
	result := " at line " + strconv.Itoa(tok.Line) + ":" + strconv.Itoa(tok.ChStart)
	if tok.Source != "" {
		result = result + " of " + tok.Source
	}
	return result
}

// Sentinels for errors.Is.
var (
	ErrLex        error = LexError
	ErrEOF        error = UnexpectedEOF
	ErrRightParen error = UnmatchedRightParen
	ErrToken      error = UnexpectedToken
	ErrUnbound    error = UnboundSymbol
	ErrArity      error = ArityError
	ErrType       error = TypeError
	ErrDivision   error = DivisionByZero
	ErrApply      error = NotApplicable
	ErrSyntax     error = SyntaxError
	ErrDepth      error = DepthExceeded
	ErrNesting    error = NestingExceeded
)
