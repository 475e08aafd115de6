package parser

import "strings"

// stripComment removes a trailing `# ...` comment, if any.
func stripComment(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		return line[:idx]
	}
	return line
}

// splitLabel splits a line into an optional leading `label:` and the
// remainder. Only the first colon is significant.
func splitLabel(line string) (label string, rest string, hasLabel bool) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return "", line, false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

// tokenize splits an instruction/directive body on whitespace and commas.
// A `imm(reg)` memory operand contains neither and survives as one token.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
