package values

import (
	"math"
	"testing"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		val  Value
		want string
	}{
		{Number(42), "42"},
		{Number(-2.5), "-2.5"},
		{Number(0.1), "0.1"},
		{Number(math.Copysign(0, -1)), "0"},
		{List(Number(math.Copysign(0, -1))), "(0)"},
		{Number(1e20), "1e+20"},
		{TRUE, "#t"},
		{FALSE, "#f"},
		{NIL, "nil"},
		{Symbol("foo"), "foo"},
		{String("a\"b"), `"a\"b"`},
		{EMPTY_LIST, "()"},
		{List(Number(1), List(Symbol("x"), TRUE), String("s")), `(1 (x #t) "s")`},
		{Value{T: BUILTIN, V: &Builtin{Name: "car"}}, "#<procedure car>"},
		{Value{T: CLOSURE, V: &Closure{}}, "#<procedure>"},
		{Value{T: CLOSURE, V: (&Closure{}).Named("fact")}, "#<procedure fact>"},
	}
	for _, tt := range tests {
		if got := Describe(tt.val); got != tt.want {
			t.Fatalf("wanted %s, got %s", tt.want, got)
		}
	}
}

func TestTruthiness(t *testing.T) {
	for _, v := range []Value{TRUE, Number(0), EMPTY_LIST, NIL, String(""), Symbol("f")} {
		if !v.IsTruthy() {
			t.Fatalf("%s should be truthy", Describe(v))
		}
	}
	if FALSE.IsTruthy() {
		t.Fatalf("#f should be falsy")
	}
}

func TestListOperations(t *testing.T) {
	l := List(Number(1), Number(2), Number(3))
	if l.Len() != 3 {
		t.Fatalf("wanted length 3, got %d", l.Len())
	}
	if got := Describe(l.Rest()); got != "(2 3)" {
		t.Fatalf("rest: wanted (2 3), got %s", got)
	}
	consed := l.Cons(Number(0))
	if got := Describe(consed); got != "(0 1 2 3)" {
		t.Fatalf("cons: wanted (0 1 2 3), got %s", got)
	}
	if got := Describe(l); got != "(1 2 3)" {
		t.Fatalf("cons changed the original list: %s", got)
	}
	if got := Describe(l.Rest().Cons(Number(9))); got != "(9 2 3)" {
		t.Fatalf("cons onto rest: wanted (9 2 3), got %s", got)
	}
	if !EMPTY_LIST.IsEmptyList() || l.IsEmptyList() {
		t.Fatalf("IsEmptyList is wrong")
	}
}

func TestEquality(t *testing.T) {
	a := List(Number(1), List(Symbol("x")))
	b := List(Number(1), List(Symbol("x")))
	if !Equal(a, b) {
		t.Fatalf("structurally equal lists should be equal")
	}
	if Identical(a, b) {
		t.Fatalf("different lists should not be identical")
	}
	if !Identical(a, a) || !Identical(EMPTY_LIST, List()) {
		t.Fatalf("a list should be identical to itself, and empty lists to each other")
	}
	if Equal(Number(1), String("1")) || Equal(Symbol("a"), String("a")) {
		t.Fatalf("values of different types should not be equal")
	}
	if Equal(List(Number(1)), List(Number(1), Number(2))) {
		t.Fatalf("lists of different lengths should not be equal")
	}
}
