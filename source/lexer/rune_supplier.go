package lexer

// We want to be able to use the same functions for slurping up e.g. string literals
// here and in the REPL, which has to know whether a line leaves a string or a list open
// before it's worth lexing anything. The RuneSupplier gives us something simpler than a
// lexer that we can use in both places.
type RuneSupplier struct {
	code      []rune
	pos       int
	lineNo    int
	lineStart int
}

func NewRuneSupplier(code []rune) *RuneSupplier {
	return &RuneSupplier{code: code, lineNo: 1}
}

func (rs *RuneSupplier) CurrentRune() rune {
	if rs.pos < len(rs.code) {
		return rs.code[rs.pos]
	}
	return 0
}

func (rs *RuneSupplier) PeekRune() rune {
	if rs.pos+1 < len(rs.code) {
		return rs.code[rs.pos+1]
	}
	return 0
}

// Looks two runes ahead, which is as far as we ever need to: to tell '-.5' from '-.'.
func (rs *RuneSupplier) PeekPeekRune() rune {
	if rs.pos+2 < len(rs.code) {
		return rs.code[rs.pos+2]
	}
	return 0
}

func (rs *RuneSupplier) AtEnd() bool {
	return rs.pos >= len(rs.code)
}

// Says whether the rune after the current one would end the input.
func (rs *RuneSupplier) PeekAtEnd() bool {
	return rs.pos+1 >= len(rs.code)
}

func (rs *RuneSupplier) Next() {
	if rs.pos >= len(rs.code) {
		return
	}
	if rs.code[rs.pos] == '\n' {
		rs.lineNo++
		rs.lineStart = rs.pos + 1
	}
	rs.pos++
}

// Line number (from 1) and column (from 0) of the current rune.
func (rs *RuneSupplier) Position() (int, int) {
	return rs.lineNo, rs.pos - rs.lineStart
}
