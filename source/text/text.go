package text

// This consists of a bunch of text utilities to help in generating pretty and meaningful
// help messages, error messages, etc.

import (
	"strings"
)

const (
	VERSION             = "0.2.0"
	BULLET              = "  ▪ "
	BULLET_SPACING      = "    " // I.e. whitespace the same width as BULLET.
	GOOD_BULLET         = "\033[32m  ▪ \033[0m"
	BROKEN              = "\033[31m  ✖ \033[0m"
	PROMPT              = "→ "
	CONTINUATION_PROMPT = "… "
)

var (
	RESET = "\033[0m"
	RED   = "\033[31m"
	CYAN  = "\033[36m"
)

func Cyan(s string) string {
	return CYAN + s + RESET
}

func Emph(s string) string {
	return "'" + s + "'"
}

func Red(s string) string {
	return RED + s + RESET
}

func Logo() string {
	var padding string
	if len(VERSION)%2 == 0 {
		padding = ","
	}
	titleText := " minilisp" + padding + " version " + VERSION + " "
	lambda := Cyan("λ")
	leftMargin := "  "
	bar := strings.Repeat("═", len(titleText)/2)
	logoString := "\n" +
		leftMargin + "╔" + bar + lambda + bar + "╗\n" +
		leftMargin + "║" + titleText + "║\n" +
		leftMargin + "╚" + bar + lambda + bar + "╝\n\n"
	return logoString
}

const HELP = "\nUsage: minilisp [-v | --version] [-h | --help] [-c <config file>]\n" +
	"                [run <file>]\n\n" +
	"With no command, starts the REPL.\n\n" +
	"Commands are:\n\n" +
	"  run <file>    Evaluates every form in the file and prints the results.\n\n"

const REPL_HELP = "\nType an expression to evaluate it. Input continues over several lines until\n" +
	"the parentheses balance.\n\n" +
	"REPL commands are:\n\n" +
	"  :env          Lists the names bound in the top-level environment.\n" +
	"  :why          Explains the last error.\n" +
	"  :history      Shows the transcript of this session, if a history store is configured.\n" +
	"  :help         Shows this message.\n" +
	"  exit, quit    Leaves the REPL.\n\n"

// Highlights anything enclosed in '   ', since that is code, i.e. 'foo' serves the same
// function as writing foo in a monotype font would in a textbook or manual.
//
// The ' doesn't trigger the highlighting unless it follows a line beginning or space etc,
// because it might be an apostrophe.
func HighlightLine(plainLine string) string {
	highlitLine := ""
	prevCh := ' '
	highlighting := false
	for _, ch := range plainLine {
		if ch == '\'' {
			if !highlighting && (prevCh == ' ' || prevCh == '\n' || prevCh == '(') {
				highlighting = true
				highlitLine = highlitLine + CYAN + string(ch)
				prevCh = ch
				continue
			}
			if highlighting {
				highlighting = false
				highlitLine = highlitLine + string(ch) + RESET
				prevCh = ch
				continue
			}
		}
		prevCh = ch
		highlitLine = highlitLine + string(ch)
	}
	if highlighting {
		highlitLine = highlitLine + RESET
	}
	return highlitLine
}

// Wraps the text between the margins, highlighting code as it goes.
func Pretty(s string, lMargin, rMargin int) string {
	LENGTH := rMargin - lMargin
	result := ""
	for _, paragraph := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(paragraph) {
			if line != "" && len(line)+1+len(word) > LENGTH {
				result = result + strings.Repeat(" ", lMargin) + HighlightLine(line) + "\n"
				line = ""
			}
			if line == "" {
				line = word
			} else {
				line = line + " " + word
			}
		}
		result = result + strings.Repeat(" ", lMargin) + HighlightLine(line) + "\n"
	}
	return result
}
