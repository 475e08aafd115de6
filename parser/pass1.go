package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lookbusy1344/rv32sim/numlit"
	"github.com/lookbusy1344/rv32sim/vm"
)

// Pass1 runs the lexical pre-pass over src, seeding mem with
// directive-initialised data and returning the resulting Program. startAddr
// is the address assigned before any `.org` directive is seen.
func Pass1(src io.Reader, mem *vm.Memory, filename string, startAddr uint32) (*Program, error) {
	prog := &Program{SymbolTable: NewSymbolTable()}
	addr := startAddr

	scanner := bufio.NewScanner(src)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		pos := Position{Filename: filename, Line: lineNo}
		raw := scanner.Text()

		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}

		label, rest, hasLabel := splitLabel(line)
		if hasLabel {
			if label == "" {
				return nil, newError(pos, ErrorSyntax, "empty label")
			}
			if err := prog.SymbolTable.Define(label, addr, pos); err != nil {
				return nil, newError(pos, ErrorDuplicateLabel, err.Error())
			}
			rest = strings.TrimSpace(rest)
			if rest == "" {
				continue
			}
		}

		if strings.HasPrefix(rest, ".") {
			tokens := tokenize(rest)
			newAddr, err := applyDirective(mem, tokens, addr, pos)
			if err != nil {
				return nil, err
			}
			if tokens[0] == ".org" {
				prog.Origin = newAddr
				prog.OriginSet = true
			}
			addr = newAddr
			continue
		}

		tokens := tokenize(rest)
		if len(tokens) == 0 {
			continue
		}

		if strings.EqualFold(tokens[0], "li") {
			expanded, err := expandLi(tokens, pos)
			if err != nil {
				return nil, err
			}
			for _, toks := range expanded {
				prog.Instructions = append(prog.Instructions, Instruction{
					Tokens: toks, Address: addr, RawLine: raw, Pos: pos,
				})
				addr += 4
			}
			continue
		}

		prog.Instructions = append(prog.Instructions, Instruction{
			Tokens: tokens, Address: addr, RawLine: raw, Pos: pos,
		})
		addr += 4
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	return prog, nil
}

// expandLi expands `li rd, imm` into one or two real instructions
// *before* address assignment, so Pass 1's running address always tracks
// real instruction words.
func expandLi(tokens []string, pos Position) ([][]string, error) {
	if len(tokens) != 3 {
		return nil, newError(pos, ErrorSyntax, "li requires exactly two operands: rd, imm")
	}
	rd := tokens[1]
	imm, err := numlit.ParseInt(tokens[2])
	if err != nil {
		return nil, newError(pos, ErrorSyntax, fmt.Sprintf("li: %v", err))
	}

	if imm >= -0xFFF && imm <= 0xFFF {
		return [][]string{{"addi", rd, "x0", fmt.Sprintf("%d", imm)}}, nil
	}

	// addi sign-extends its 12-bit immediate, so when the lower 12 bits'
	// top bit is set the upper field must be rounded up by one to
	// compensate (standard lui+addi construction).
	v32 := uint32(imm)
	upper := v32 >> 12
	lower := int32(v32 & 0xFFF)
	if lower >= 0x800 {
		lower -= 0x1000
		upper++
	}
	return [][]string{
		{"lui", rd, fmt.Sprintf("0x%x", upper&0xFFFFF)},
		{"addi", rd, rd, fmt.Sprintf("%d", lower)},
	}, nil
}
