package repl

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/lmorg/readline"

	"github.com/tim-hardcastle/minilisp/source/history"
	"github.com/tim-hardcastle/minilisp/source/service"
)

func TestDo(t *testing.T) {
	var out bytes.Buffer
	r := New(service.NewService(), &out, nil, "")
	if r.Do("(define x 2) (* x 21) (if #f 1)") {
		t.Fatalf("shouldn't quit")
	}
	if got := out.String(); got != "2\n42\n" {
		t.Fatalf("wanted the two non-nil results, got %q", got)
	}
	out.Reset()
	r.Do("undefined")
	if !strings.Contains(out.String(), "unbound symbol 'undefined'") {
		t.Fatalf("wanted an error report, got %q", out.String())
	}
	out.Reset()
	r.Do(":why")
	if !strings.Contains(out.String(), "define") {
		t.Fatalf("wanted an explanation, got %q", out.String())
	}
	if !r.Do("  exit ") || !r.Do("quit") {
		t.Fatalf("exit and quit should quit")
	}
}

func TestCommands(t *testing.T) {
	var out bytes.Buffer
	r := New(service.NewService(), &out, nil, "")
	r.Do(":env")
	if !strings.Contains(out.String(), "Nothing has been defined") {
		t.Fatalf("wanted an empty environment, got %q", out.String())
	}
	out.Reset()
	r.Do("(define y '(1 2))")
	out.Reset()
	r.Do(":env")
	if got := out.String(); !strings.Contains(got, "y = (1 2)") || strings.Contains(got, "car") {
		t.Fatalf("wanted only the user's bindings, got %q", got)
	}
	out.Reset()
	r.Do(":why")
	if !strings.Contains(out.String(), "no errors") {
		t.Fatalf("got %q", out.String())
	}
	out.Reset()
	r.Do(":history")
	if !strings.Contains(out.String(), "No history store") {
		t.Fatalf("got %q", out.String())
	}
	out.Reset()
	r.Do(":help")
	if !strings.Contains(out.String(), "exit") {
		t.Fatalf("got %q", out.String())
	}
}

func TestRecordsTranscript(t *testing.T) {
	st, err := history.Open("sqlite", filepath.Join(t.TempDir(), "t.db"), "test")
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	var out bytes.Buffer
	r := New(service.NewService(), &out, st, "")
	r.Do("(+ 1 2) (+ 3 4)")
	r.Do("(car '())")
	r.Do(":env")
	entries, err := st.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("wanted 2 entries, got %d", len(entries))
	}
	if entries[0].Output != "3\n7" || entries[0].Failed {
		t.Fatalf("wrong first entry: %+v", entries[0])
	}
	if !entries[1].Failed {
		t.Fatalf("second entry should have failed: %+v", entries[1])
	}
	out.Reset()
	r.Do(":history")
	if !strings.Contains(out.String(), "(+ 1 2) (+ 3 4)") {
		t.Fatalf("got %q", out.String())
	}
}

func TestCompletions(t *testing.T) {
	sv := service.NewService()
	sv.Do("(define lengthy 1)")
	if got := Completions("len", sv.Env()); !reflect.DeepEqual(got, []string{"gth", "gthy"}) {
		t.Fatalf("wanted [gth gthy], got %v", got)
	}
	if got := Completions("la", sv.Env()); !reflect.DeepEqual(got, []string{"mbda"}) {
		t.Fatalf("wanted [mbda], got %v", got)
	}
	if got := Completions("", sv.Env()); got != nil {
		t.Fatalf("wanted nothing for an empty prefix, got %v", got)
	}
	r := New(sv, &bytes.Buffer{}, nil, "")
	line := []rune("(define x (lam")
	prefix, suggestions, _, _ := r.complete(line, len(line), readline.DelayedTabContext{})
	if prefix != "lam" || !reflect.DeepEqual(suggestions, []string{"bda"}) {
		t.Fatalf("wrong completion: %q %v", prefix, suggestions)
	}
}
