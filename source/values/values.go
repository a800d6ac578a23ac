package values

import (
	"github.com/tim-hardcastle/minilisp/source/token"

	"src.elv.sh/pkg/persistent/vector"
)

type ValueType uint32

const (
	UNDEFINED_VALUE ValueType = iota // For debugging purposes, it is useful to have the zero value something it should never actually be.
	NULL
	NUMBER
	BOOL
	SYMBOL
	STRING
	LIST
	BUILTIN
	CLOSURE
)

var typeNames = map[ValueType]string{
	UNDEFINED_VALUE: "undefined",
	NULL:            "nil",
	NUMBER:          "number",
	BOOL:            "boolean",
	SYMBOL:          "symbol",
	STRING:          "string",
	LIST:            "list",
	BUILTIN:         "procedure",
	CLOSURE:         "procedure",
}

func (t ValueType) String() string {
	return typeNames[t]
}

// A value is a tag and a payload. The payload is a float64 for NUMBER, a bool for BOOL,
// a string for SYMBOL and STRING, a vector.Vector of Values for LIST, a *Builtin for
// BUILTIN and a *Closure for CLOSURE.
//
// The same LIST representation serves for source code and for data.
type Value struct {
	T ValueType
	V any
}

var (
	FALSE      = Value{T: BOOL, V: false}
	TRUE       = Value{T: BOOL, V: true}
	NIL        = Value{T: NULL}
	EMPTY_LIST = Value{T: LIST, V: vector.Empty}
)

func Number(f float64) Value {
	return Value{T: NUMBER, V: f}
}

func Bool(b bool) Value {
	if b {
		return TRUE
	}
	return FALSE
}

func Symbol(s string) Value {
	return Value{T: SYMBOL, V: s}
}

func String(s string) Value {
	return Value{T: STRING, V: s}
}

func List(elements ...Value) Value {
	vec := vector.Empty
	for _, el := range elements {
		vec = vec.Conj(el)
	}
	return Value{T: LIST, V: vec}
}

func ListFromVector(vec vector.Vector) Value {
	return Value{T: LIST, V: vec}
}

// A builtin procedure. MaxArgs of -1 means it's variadic.
type Builtin struct {
	Name    string
	MinArgs int
	MaxArgs int
	Fn      func(tok *token.Token, args []Value) (Value, error)
}

// A procedure made by 'lambda'. Env is the frame the lambda was evaluated in, shared and
// never copied. Body is one or more forms, evaluated in order.
type Closure struct {
	Name   string
	Params []string
	Body   []Value
	Env    *Environment
}

// Returns a copy of the closure with the name filled in, for nicer descriptions and error
// messages. The original is untouched.
func (c *Closure) Named(name string) *Closure {
	return &Closure{Name: name, Params: c.Params, Body: c.Body, Env: c.Env}
}

func (v Value) IsProcedure() bool {
	return v.T == BUILTIN || v.T == CLOSURE
}

// #f is the only falsy value.
func (v Value) IsTruthy() bool {
	return !(v.T == BOOL && !v.V.(bool))
}

func (v Value) IsEmptyList() bool {
	return v.T == LIST && v.V.(vector.Vector).Len() == 0
}

func (v Value) AsNumber() float64 {
	return v.V.(float64)
}

func (v Value) AsString() string {
	return v.V.(string)
}

func (v Value) AsVector() vector.Vector {
	return v.V.(vector.Vector)
}

// List operations. These all assume v.T == LIST.

func (v Value) Len() int {
	return v.V.(vector.Vector).Len()
}

func (v Value) Index(i int) Value {
	el, ok := v.V.(vector.Vector).Index(i)
	if !ok {
		panic("values: list index out of range")
	}
	return el.(Value)
}

func (v Value) Elements() []Value {
	vec := v.V.(vector.Vector)
	result := make([]Value, 0, vec.Len())
	for it := vec.Iterator(); it.HasElem(); it.Next() {
		result = append(result, it.Elem().(Value))
	}
	return result
}

// Everything but the first element, sharing structure with v.
func (v Value) Rest() Value {
	vec := v.V.(vector.Vector)
	return Value{T: LIST, V: vec.SubVector(1, vec.Len())}
}

// A new list with head in front of the elements of v.
func (v Value) Cons(head Value) Value {
	vec := vector.Empty.Conj(head)
	for it := v.V.(vector.Vector).Iterator(); it.HasElem(); it.Next() {
		vec = vec.Conj(it.Elem())
	}
	return Value{T: LIST, V: vec}
}

// Structural equality, as for 'equal?'. Procedures are equal only to themselves.
func Equal(a, b Value) bool {
	if a.T != b.T {
		return false
	}
	switch a.T {
	case NULL:
		return true
	case NUMBER:
		return a.V.(float64) == b.V.(float64)
	case BOOL:
		return a.V.(bool) == b.V.(bool)
	case SYMBOL, STRING:
		return a.V.(string) == b.V.(string)
	case LIST:
		if a.Len() != b.Len() {
			return false
		}
		aIt, bIt := a.AsVector().Iterator(), b.AsVector().Iterator()
		for ; aIt.HasElem(); aIt.Next() {
			if !Equal(aIt.Elem().(Value), bIt.Elem().(Value)) {
				return false
			}
			bIt.Next()
		}
		return true
	case BUILTIN:
		return a.V.(*Builtin) == b.V.(*Builtin)
	case CLOSURE:
		return a.V.(*Closure) == b.V.(*Closure)
	}
	return false
}

// Identity, as for 'eq?'. Atoms are compared by value; lists are the same only if they are
// the same list, or both empty.
func Identical(a, b Value) bool {
	if a.T == LIST && b.T == LIST {
		if a.Len() == 0 && b.Len() == 0 {
			return true
		}
		return a.V == b.V
	}
	return Equal(a, b)
}
