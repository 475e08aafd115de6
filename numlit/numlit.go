// Package numlit parses the integer literal grammar shared by the lexical
// pre-pass (directive operands, li immediates) and the instruction
// encoder (immediate operands): decimal, 0x-prefixed hex, and leading-zero
// octal, with an optional leading sign.
package numlit

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseInt parses tok per the assembly-source integer grammar.
func ParseInt(tok string) (int64, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0, fmt.Errorf("empty integer literal")
	}

	neg := false
	switch tok[0] {
	case '-':
		neg = true
		tok = tok[1:]
	case '+':
		tok = tok[1:]
	}

	var v uint64
	var err error
	switch {
	case strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X"):
		v, err = strconv.ParseUint(tok[2:], 16, 64)
	case len(tok) > 1 && tok[0] == '0':
		v, err = strconv.ParseUint(tok, 8, 64)
	default:
		v, err = strconv.ParseUint(tok, 10, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q: %w", tok, err)
	}
	if neg {
		return -int64(v), nil
	}
	return int64(v), nil
}
