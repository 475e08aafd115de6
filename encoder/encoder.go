// Package encoder implements Pass 2 of the toolchain: mapping a tokenised
// instruction and its assembly-time address to an exact 32-bit RISC-V
// encoding, bit-compatible with what vm's multi-cycle engine decodes.
package encoder

import (
	"strings"

	"github.com/lookbusy1344/rv32sim/vm"
)

// SymbolResolver is the minimal view of the symbol table the encoder
// needs: resolving a label to an address. Unknown labels resolve to 0,
// with ok=false so the caller can surface a diagnostic.
type SymbolResolver interface {
	Resolve(name string) (addr uint32, ok bool)
}

// Encoder converts tokenised instructions into RISC-V machine words.
type Encoder struct {
	Symbols SymbolResolver

	// Warnings accumulates non-fatal diagnostics raised while encoding
	// (currently: unknown branch/jump target labels).
	Warnings []string
}

// NewEncoder creates an encoder resolving labels against symbols.
func NewEncoder(symbols SymbolResolver) *Encoder {
	return &Encoder{Symbols: symbols}
}

// EncodeInstruction encodes one already-tokenised instruction
// (mnemonic plus operands, commas stripped) at the given address.
func (e *Encoder) EncodeInstruction(tokens []string, addr uint32, rawLine string) (uint32, error) {
	if len(tokens) == 0 {
		return 0, NewEncodingError(addr, "", rawLine, "empty instruction")
	}
	mnemonic := strings.ToLower(tokens[0])
	ops := tokens[1:]

	switch mnemonic {
	case "add", "sub", "xor", "or", "and", "sll", "srl", "sra", "slt", "sltu",
		"mul", "mulh", "mulhsu", "mulhu", "div", "divu", "rem", "remu":
		return e.encodeR(mnemonic, ops, addr, rawLine)
	case "addi", "xori", "ori", "andi", "slti", "sltiu":
		return e.encodeIArith(mnemonic, ops, addr, rawLine)
	case "slli", "srli", "srai":
		return e.encodeIShift(mnemonic, ops, addr, rawLine)
	case "lb", "lh", "lw", "lbu", "lhu":
		return e.encodeILoad(mnemonic, ops, addr, rawLine)
	case "jalr":
		return e.encodeIJump(ops, addr, rawLine)
	case "sb", "sh", "sw":
		return e.encodeS(mnemonic, ops, addr, rawLine)
	case "beq", "bne", "blt", "bge", "bltu", "bgeu":
		return e.encodeB(mnemonic, ops, addr, rawLine)
	case "lui", "auipc":
		return e.encodeU(mnemonic, ops, addr, rawLine)
	case "jal":
		return e.encodeJ(ops, addr, rawLine)
	case "ecall":
		return vm.EcallWord, nil
	case "ebreak":
		return vm.EbreakWord, nil
	default:
		return 0, WrapEncodingError(addr, mnemonic, rawLine, &ErrUnknownInstruction{Mnemonic: mnemonic})
	}
}

// rewriteMemOperand rewrites a load/store's third token from the
// `imm(reg)` surface form into two tokens [reg, imm].
func rewriteMemOperand(tok string) (reg string, imm string, ok bool) {
	open := strings.IndexByte(tok, '(')
	close := strings.IndexByte(tok, ')')
	if open < 0 || close < 0 || close < open {
		return "", "", false
	}
	imm = strings.TrimSpace(tok[:open])
	reg = strings.TrimSpace(tok[open+1 : close])
	if imm == "" {
		imm = "0"
	}
	return reg, imm, true
}

func (e *Encoder) resolveLabel(name string) uint32 {
	if e.Symbols == nil {
		return 0
	}
	addr, ok := e.Symbols.Resolve(name)
	if !ok {
		e.Warnings = append(e.Warnings, "undefined label \""+name+"\" encodes as displacement from address 0")
	}
	return addr
}
