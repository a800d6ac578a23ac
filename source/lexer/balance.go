package lexer

// Used by the REPL to decide whether a line of input is complete. Returns the number of
// parentheses left open (negative if there are too many closing ones) and whether a string
// literal is left open. Comments and the contents of strings are ignored.
func Balance(input string) (int, bool) {
	runes := NewRuneSupplier([]rune(input))
	depth := 0
	for !runes.AtEnd() {
		switch runes.CurrentRune() {
		case '(':
			depth++
		case ')':
			depth--
		case ';':
			runes.SkipComment()
			continue
		case '"':
			if _, ok := runes.ReadString(); !ok {
				return depth, true
			}
		}
		runes.Next()
	}
	return depth, false
}
