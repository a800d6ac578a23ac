package repl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/lmorg/readline"

	"github.com/tim-hardcastle/minilisp/source/history"
	"github.com/tim-hardcastle/minilisp/source/lexer"
	"github.com/tim-hardcastle/minilisp/source/report"
	"github.com/tim-hardcastle/minilisp/source/service"
	"github.com/tim-hardcastle/minilisp/source/text"
	"github.com/tim-hardcastle/minilisp/source/values"
)

var specialForms = []string{"and", "begin", "cond", "define", "else", "if", "lambda", "let", "or", "quote", "set!"}

type REPL struct {
	sv      *service.Service
	out     io.Writer
	store   *history.Store // nil if there's no transcript
	prompt  string
	lastErr error
}

func New(sv *service.Service, out io.Writer, store *history.Store, prompt string) *REPL {
	if prompt == "" {
		prompt = text.PROMPT
	}
	return &REPL{sv: sv, out: out, store: store, prompt: prompt}
}

// Reads input from the terminal until the user quits. Input carries on over as many lines as it
// takes to balance the parentheses.
func (r *REPL) Start() {
	rline := readline.NewInstance()
	rline.TabCompleter = r.complete
	if r.store != nil {
		rline.History = r.store
	}
	pending := ""
	for {
		if pending == "" {
			rline.SetPrompt(r.prompt)
		} else {
			rline.SetPrompt(text.CONTINUATION_PROMPT)
		}
		line, err := rline.Readline()
		if errors.Is(err, readline.CtrlC) {
			pending = ""
			continue
		}
		if err != nil {
			if pending != "" {
				r.Do(pending)
			}
			return
		}
		if pending != "" {
			pending = pending + "\n" + line
		} else {
			pending = line
		}
		if depth, inString := lexer.Balance(pending); depth > 0 || inString {
			continue
		}
		input := pending
		pending = ""
		if r.Do(input) {
			return
		}
	}
}

// Does one complete input, which may be a REPL command or code, and writes the outcome. Returns
// true if the user wants to quit.
func (r *REPL) Do(input string) bool {
	input = strings.TrimSpace(input)
	switch input {
	case "":
		return false
	case "exit", "quit":
		return true
	case ":env":
		r.showEnv()
		return false
	case ":why":
		r.explain()
		return false
	case ":history":
		r.showHistory()
		return false
	case ":help":
		fmt.Fprint(r.out, text.Pretty(text.REPL_HELP, 2, 92))
		return false
	}
	results := r.sv.Do(input)
	var output []string
	for _, res := range results {
		if res.Failed() {
			r.lastErr = res.Err
			fmt.Fprint(r.out, service.GetErrorReport(res.Err))
			output = append(output, res.Err.Error())
			continue
		}
		if res.Value.T == values.NULL {
			continue
		}
		fmt.Fprintln(r.out, values.Describe(res.Value))
		output = append(output, values.Describe(res.Value))
	}
	if r.store != nil {
		if err := r.store.Record(input, strings.Join(output, "\n"), service.AnyFailed(results)); err != nil {
			slog.Warn("couldn't record input", "err", err)
		}
	}
	return false
}

// Lists the user's bindings, leaving out the builtins.
func (r *REPL) showEnv() {
	env := r.sv.Env()
	shown := false
	for _, name := range env.Names() {
		v, _ := env.Get(name)
		if v.T == values.BUILTIN {
			continue
		}
		fmt.Fprintln(r.out, text.BULLET+name+" = "+values.Describe(v))
		shown = true
	}
	if !shown {
		fmt.Fprintln(r.out, text.BULLET+"Nothing has been defined yet.")
	}
}

func (r *REPL) explain() {
	var rErr *report.Error
	if r.lastErr == nil || !errors.As(r.lastErr, &rErr) {
		fmt.Fprintln(r.out, text.BULLET+"There are no errors to explain.")
		return
	}
	fmt.Fprint(r.out, text.Pretty(report.Explain(rErr), 4, 92))
}

func (r *REPL) showHistory() {
	if r.store == nil {
		fmt.Fprintln(r.out, text.BULLET+"No history store is configured.")
		return
	}
	entries, err := r.store.Entries()
	if err != nil {
		fmt.Fprint(r.out, service.GetErrorReport(err))
		return
	}
	for _, e := range entries {
		bullet := text.GOOD_BULLET
		if e.Failed {
			bullet = text.BROKEN
		}
		fmt.Fprintln(r.out, bullet+e.Input)
		if e.Output != "" {
			fmt.Fprintln(r.out, text.BULLET_SPACING+strings.ReplaceAll(e.Output, "\n", "\n"+text.BULLET_SPACING))
		}
	}
}

// Completes the symbol under the cursor from the special forms and the names in scope.
func (r *REPL) complete(line []rune, pos int, dtx readline.DelayedTabContext) (string, []string, map[string]string, readline.TabDisplayType) {
	if pos > len(line) {
		pos = len(line)
	}
	start := pos
	for start > 0 && !lexer.IsDelimiter(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	return prefix, Completions(prefix, r.sv.Env()), nil, readline.TabDisplayGrid
}

// Returns the rest of each special form or bound name that begins with the prefix, sorted. As
// readline wants, the prefix itself is cropped off.
func Completions(prefix string, env *values.Environment) []string {
	if prefix == "" {
		return nil
	}
	seen := map[string]bool{}
	result := []string{}
	names := append(append([]string{}, specialForms...), env.Names()...)
	for _, name := range names {
		if !seen[name] && strings.HasPrefix(name, prefix) && name != prefix {
			seen[name] = true
			result = append(result, name[len(prefix):])
		}
	}
	sort.Strings(result)
	return result
}
