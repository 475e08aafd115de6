package encoder

import (
	"fmt"

	"github.com/lookbusy1344/rv32sim/vm"
)

func need(ops []string, n int, mnemonic, rawLine string, addr uint32) error {
	if len(ops) != n {
		return NewEncodingError(addr, mnemonic, rawLine, fmt.Sprintf("expected %d operands, got %d", n, len(ops)))
	}
	return nil
}

var rFunct3 = map[string]uint32{
	"add": vm.F3ADDSUB, "sub": vm.F3ADDSUB,
	"sll": vm.F3SLL, "slt": vm.F3SLT, "sltu": vm.F3SLTU,
	"xor": vm.F3XOR, "srl": vm.F3SR, "sra": vm.F3SR,
	"or": vm.F3OR, "and": vm.F3AND,
	"mul": vm.F3MUL, "mulh": vm.F3MULH, "mulhsu": vm.F3MULHSU, "mulhu": vm.F3MULHU,
	"div": vm.F3DIV, "divu": vm.F3DIVU, "rem": vm.F3REM, "remu": vm.F3REMU,
}

var mExtMnemonics = map[string]bool{
	"mul": true, "mulh": true, "mulhsu": true, "mulhu": true,
	"div": true, "divu": true, "rem": true, "remu": true,
}

func (e *Encoder) encodeR(mnemonic string, ops []string, addr uint32, raw string) (uint32, error) {
	if err := need(ops, 3, mnemonic, raw, addr); err != nil {
		return 0, err
	}
	rd, err := ParseRegister(ops[0])
	if err != nil {
		return 0, WrapEncodingError(addr, mnemonic, raw, err)
	}
	rs1, err := ParseRegister(ops[1])
	if err != nil {
		return 0, WrapEncodingError(addr, mnemonic, raw, err)
	}
	rs2, err := ParseRegister(ops[2])
	if err != nil {
		return 0, WrapEncodingError(addr, mnemonic, raw, err)
	}

	f3 := rFunct3[mnemonic]
	var f7 uint32
	switch {
	case mExtMnemonics[mnemonic]:
		f7 = vm.F7MExt
	case mnemonic == "sub" || mnemonic == "sra":
		f7 = vm.F7Alt
	default:
		f7 = vm.F7Base
	}

	word := uint32(vm.OpR) | (rd << 7) | (f3 << 12) | (rs1 << 15) | (rs2 << 20) | (f7 << 25)
	return word, nil
}

var iArithFunct3 = map[string]uint32{
	"addi": vm.F3ADDSUB, "xori": vm.F3XOR, "ori": vm.F3OR,
	"andi": vm.F3AND, "slti": vm.F3SLT, "sltiu": vm.F3SLTU,
}

func (e *Encoder) encodeIArith(mnemonic string, ops []string, addr uint32, raw string) (uint32, error) {
	if err := need(ops, 3, mnemonic, raw, addr); err != nil {
		return 0, err
	}
	rd, err := ParseRegister(ops[0])
	if err != nil {
		return 0, WrapEncodingError(addr, mnemonic, raw, err)
	}
	rs1, err := ParseRegister(ops[1])
	if err != nil {
		return 0, WrapEncodingError(addr, mnemonic, raw, err)
	}
	imm, err := ParseImmediate(ops[2])
	if err != nil {
		return 0, WrapEncodingError(addr, mnemonic, raw, err)
	}
	f3 := iArithFunct3[mnemonic]
	word := uint32(vm.OpIArith) | (rd << 7) | (f3 << 12) | (rs1 << 15) | ((uint32(imm) & 0xFFF) << 20)
	return word, nil
}

var iShiftFunct3 = map[string]uint32{"slli": vm.F3SLL, "srli": vm.F3SR, "srai": vm.F3SR}

func (e *Encoder) encodeIShift(mnemonic string, ops []string, addr uint32, raw string) (uint32, error) {
	if err := need(ops, 3, mnemonic, raw, addr); err != nil {
		return 0, err
	}
	rd, err := ParseRegister(ops[0])
	if err != nil {
		return 0, WrapEncodingError(addr, mnemonic, raw, err)
	}
	rs1, err := ParseRegister(ops[1])
	if err != nil {
		return 0, WrapEncodingError(addr, mnemonic, raw, err)
	}
	shamtV, err := ParseImmediate(ops[2])
	if err != nil {
		return 0, WrapEncodingError(addr, mnemonic, raw, err)
	}
	shamt := uint32(shamtV) & 0x1F
	f3 := iShiftFunct3[mnemonic]
	var f7 uint32
	if mnemonic == "srai" {
		f7 = vm.F7Alt
	}
	word := uint32(vm.OpIArith) | (rd << 7) | (f3 << 12) | (rs1 << 15) | (shamt << 20) | (f7 << 25)
	return word, nil
}

var loadFunct3 = map[string]uint32{"lb": vm.F3LB, "lh": vm.F3LH, "lw": vm.F3LW, "lbu": vm.F3LBU, "lhu": vm.F3LHU}

func (e *Encoder) encodeILoad(mnemonic string, ops []string, addr uint32, raw string) (uint32, error) {
	if len(ops) != 2 {
		return 0, NewEncodingError(addr, mnemonic, raw, "expected rd, imm(reg)")
	}
	rd, err := ParseRegister(ops[0])
	if err != nil {
		return 0, WrapEncodingError(addr, mnemonic, raw, err)
	}
	regTok, immTok, ok := rewriteMemOperand(ops[1])
	if !ok {
		return 0, NewEncodingError(addr, mnemonic, raw, "invalid memory operand, expected imm(reg)")
	}
	rs1, err := ParseRegister(regTok)
	if err != nil {
		return 0, WrapEncodingError(addr, mnemonic, raw, err)
	}
	imm, err := ParseImmediate(immTok)
	if err != nil {
		return 0, WrapEncodingError(addr, mnemonic, raw, err)
	}
	f3 := loadFunct3[mnemonic]
	word := uint32(vm.OpILoad) | (rd << 7) | (f3 << 12) | (rs1 << 15) | ((uint32(imm) & 0xFFF) << 20)
	return word, nil
}

func (e *Encoder) encodeIJump(ops []string, addr uint32, raw string) (uint32, error) {
	if err := need(ops, 3, "jalr", raw, addr); err != nil {
		return 0, err
	}
	rd, err := ParseRegister(ops[0])
	if err != nil {
		return 0, WrapEncodingError(addr, "jalr", raw, err)
	}
	rs1, err := ParseRegister(ops[1])
	if err != nil {
		return 0, WrapEncodingError(addr, "jalr", raw, err)
	}
	imm, err := ParseImmediate(ops[2])
	if err != nil {
		return 0, WrapEncodingError(addr, "jalr", raw, err)
	}
	word := uint32(vm.OpIJump) | (rd << 7) | (rs1 << 15) | ((uint32(imm) & 0xFFF) << 20)
	return word, nil
}

var storeFunct3 = map[string]uint32{"sb": vm.F3SB, "sh": vm.F3SH, "sw": vm.F3SW}

func (e *Encoder) encodeS(mnemonic string, ops []string, addr uint32, raw string) (uint32, error) {
	if len(ops) != 2 {
		return 0, NewEncodingError(addr, mnemonic, raw, "expected rs2, imm(reg)")
	}
	rs2, err := ParseRegister(ops[0])
	if err != nil {
		return 0, WrapEncodingError(addr, mnemonic, raw, err)
	}
	regTok, immTok, ok := rewriteMemOperand(ops[1])
	if !ok {
		return 0, NewEncodingError(addr, mnemonic, raw, "invalid memory operand, expected imm(reg)")
	}
	rs1, err := ParseRegister(regTok)
	if err != nil {
		return 0, WrapEncodingError(addr, mnemonic, raw, err)
	}
	imm, err := ParseImmediate(immTok)
	if err != nil {
		return 0, WrapEncodingError(addr, mnemonic, raw, err)
	}
	f3 := storeFunct3[mnemonic]
	u := uint32(imm)
	word := uint32(vm.OpS) | ((u & 0x1F) << 7) | (f3 << 12) | (rs1 << 15) | (rs2 << 20) | (((u >> 5) & 0x7F) << 25)
	return word, nil
}

var branchFunct3 = map[string]uint32{
	"beq": vm.F3BEQ, "bne": vm.F3BNE, "blt": vm.F3BLT,
	"bge": vm.F3BGE, "bltu": vm.F3BLTU, "bgeu": vm.F3BGEU,
}

func (e *Encoder) encodeB(mnemonic string, ops []string, addr uint32, raw string) (uint32, error) {
	if err := need(ops, 3, mnemonic, raw, addr); err != nil {
		return 0, err
	}
	rs1, err := ParseRegister(ops[0])
	if err != nil {
		return 0, WrapEncodingError(addr, mnemonic, raw, err)
	}
	rs2, err := ParseRegister(ops[1])
	if err != nil {
		return 0, WrapEncodingError(addr, mnemonic, raw, err)
	}
	target := e.resolveLabel(ops[2])
	imm := uint32(int32(target) - int32(addr))

	f3 := branchFunct3[mnemonic]
	word := uint32(vm.OpB) |
		(((imm >> 11) & 0x1) << 7) |
		(((imm >> 1) & 0xF) << 8) |
		(f3 << 12) |
		(rs1 << 15) | (rs2 << 20) |
		(((imm >> 5) & 0x3F) << 25) |
		(((imm >> 12) & 0x1) << 31)
	return word, nil
}

func (e *Encoder) encodeU(mnemonic string, ops []string, addr uint32, raw string) (uint32, error) {
	if err := need(ops, 2, mnemonic, raw, addr); err != nil {
		return 0, err
	}
	rd, err := ParseRegister(ops[0])
	if err != nil {
		return 0, WrapEncodingError(addr, mnemonic, raw, err)
	}
	imm, err := ParseImmediate(ops[1])
	if err != nil {
		return 0, WrapEncodingError(addr, mnemonic, raw, err)
	}
	op := vm.OpLUI
	if mnemonic == "auipc" {
		op = vm.OpAUIPC
	}
	word := uint32(op) | (rd << 7) | ((uint32(imm) & 0xFFFFF) << 12)
	return word, nil
}

func (e *Encoder) encodeJ(ops []string, addr uint32, raw string) (uint32, error) {
	if err := need(ops, 2, "jal", raw, addr); err != nil {
		return 0, err
	}
	rd, err := ParseRegister(ops[0])
	if err != nil {
		return 0, WrapEncodingError(addr, "jal", raw, err)
	}
	target := e.resolveLabel(ops[1])
	imm := uint32(int32(target) - int32(addr))

	word := uint32(vm.OpJAL) | (rd << 7) |
		(((imm >> 12) & 0xFF) << 12) |
		(((imm >> 11) & 0x1) << 20) |
		(((imm >> 1) & 0x3FF) << 21) |
		(((imm >> 20) & 0x1) << 31)
	return word, nil
}
