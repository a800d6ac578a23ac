package test_helper

import (
	"errors"
	"os"
	"testing"

	"github.com/tim-hardcastle/minilisp/source/parser"
	"github.com/tim-hardcastle/minilisp/source/report"
	"github.com/tim-hardcastle/minilisp/source/service"
	"github.com/tim-hardcastle/minilisp/source/settings"
	"github.com/tim-hardcastle/minilisp/source/text"
	"github.com/tim-hardcastle/minilisp/source/values"
)

// Auxiliary types and functions for testing the parser and evaluator.

type TestItem struct {
	Input string
	Want  string
}

// Runs each test in a fresh service. If filename isn't empty, the service first runs that file
// from the test-files directory of the package being tested, so tests can use what it defines.
func RunTest(t *testing.T, filename string, tests []TestItem, F func(sv *service.Service, s string) (string, error)) {
	RunTestWithConfig(t, settings.Default(), filename, tests, F)
}

func RunTestWithConfig(t *testing.T, cfg *settings.Config, filename string, tests []TestItem, F func(sv *service.Service, s string) (string, error)) {
	wd, _ := os.Getwd() // The working directory is the directory containing the package being tested.
	for _, test := range tests {
		if settings.SHOW_TESTS {
			println(text.BULLET + "Running test " + text.Emph(test.Input))
		}
		sv := service.NewServiceWithConfig(cfg)
		if filename != "" {
			results, e := sv.RunFile(wd + "/test-files/" + filename)
			if e != nil {
				t.Fatalf("Couldn't run the test file: %v", e)
			}
			for _, r := range results {
				if r.Failed() {
					t.Fatalf("There were errors initializing the service : \n%s", service.GetErrorReport(r.Err))
				}
			}
		}
		got, e := F(sv, test.Input)
		if e != nil {
			println(text.Red(test.Input))
			println("There were errors running the line: \n" + service.GetErrorReport(e))
		}
		if !(test.Want == got) {
			t.Fatalf(`Test failed with input %s | Wanted : %s | Got : %s.`, test.Input, test.Want, got)
		}
	}
}

// Describes the value of the last form of the input.
func TestValues(sv *service.Service, s string) (string, error) {
	results := sv.Do(s)
	if len(results) == 0 {
		return "", nil
	}
	last := results[len(results)-1]
	if last.Failed() {
		return "", last.Err
	}
	return sv.Describe(last.Value), nil
}

// Returns the error identifier of the first form that fails.
func TestErrors(sv *service.Service, s string) (string, error) {
	for _, r := range sv.Do(s) {
		if r.Failed() {
			var rErr *report.Error
			if errors.As(r.Err, &rErr) {
				return rErr.ErrorId, nil
			}
			return r.Err.Error(), nil
		}
	}
	return "unexpected successful evaluation", nil
}

// Describes what the parser makes of the input, without evaluating it.
func TestParserOutput(sv *service.Service, s string) (string, error) {
	exprs, e := parser.ParseString("test", s)
	if e != nil {
		return "", e
	}
	return values.DescribeAll(exprs), nil
}

// Returns the error identifier from parsing the input.
func TestParserErrors(sv *service.Service, s string) (string, error) {
	_, e := parser.ParseString("test", s)
	if e == nil {
		return "unexpected successful parsing", nil
	}
	var rErr *report.Error
	if errors.As(e, &rErr) {
		return rErr.ErrorId, nil
	}
	return e.Error(), nil
}
