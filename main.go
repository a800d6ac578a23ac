//
// minilisp version 0.2.0
//
// A small Lisp: numbers, booleans, symbols, strings and lists, lexically scoped closures, and a
// REPL that can keep its history in any of several SQL databases.
//

package main

import (
	"fmt"
	"os"

	"github.com/tim-hardcastle/minilisp/source/history"
	"github.com/tim-hardcastle/minilisp/source/repl"
	"github.com/tim-hardcastle/minilisp/source/service"
	"github.com/tim-hardcastle/minilisp/source/settings"
	"github.com/tim-hardcastle/minilisp/source/text"
	"github.com/tim-hardcastle/minilisp/source/values"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	configPath := ""
	var rest []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			fmt.Print(text.HELP)
			return 0
		case "-v", "--version":
			fmt.Println("minilisp version " + text.VERSION)
			return 0
		case "-c", "--config":
			if i+1 == len(args) {
				fmt.Fprintln(os.Stderr, text.BROKEN+"The "+text.Emph(args[i])+" option needs a file.")
				return 2
			}
			i++
			configPath = args[i]
		default:
			rest = append(rest, args[i])
		}
	}

	cfg, err := settings.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, text.BROKEN+err.Error())
		return 2
	}
	cfg.Apply(os.Stderr)
	sv := service.NewServiceWithConfig(cfg)

	switch {
	case len(rest) == 0:
		return startRepl(sv, cfg)
	case len(rest) == 2 && rest[0] == "run":
		return runFile(sv, rest[1])
	}
	fmt.Fprint(os.Stderr, text.BROKEN+"Didn't understand "+text.Emph(fmt.Sprint(rest))+".\n"+text.HELP)
	return 2
}

// Prints the value of each form that has one. Errors go to stderr and make the exit status 1.
func runFile(sv *service.Service, path string) int {
	results, err := sv.RunFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, text.BROKEN+err.Error())
		return 1
	}
	for _, r := range results {
		if r.Failed() {
			fmt.Fprint(os.Stderr, service.GetErrorReport(r.Err))
			continue
		}
		if r.Value.T != values.NULL {
			fmt.Println(values.Describe(r.Value))
		}
	}
	if service.AnyFailed(results) {
		return 1
	}
	return 0
}

func startRepl(sv *service.Service, cfg *settings.Config) int {
	fmt.Print(text.Logo())
	var store *history.Store
	if cfg.History.DSN != "" {
		session := cfg.History.Session
		if session == "" {
			session = "default"
		}
		st, err := history.Open(cfg.History.Driver, cfg.History.DSN, session)
		if err != nil {
			fmt.Fprintln(os.Stderr, text.BROKEN+err.Error())
		} else {
			store = st
			defer store.Close()
		}
	}
	repl.New(sv, os.Stdout, store, cfg.Prompt).Start()
	return 0
}
