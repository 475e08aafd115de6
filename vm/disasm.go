package vm

import "fmt"

var rMnemonics = map[uint32]map[uint32]string{
	F7Base: {F3ADDSUB: "add", F3SLL: "sll", F3SLT: "slt", F3SLTU: "sltu", F3XOR: "xor", F3SR: "srl", F3OR: "or", F3AND: "and"},
	F7Alt:  {F3ADDSUB: "sub", F3SR: "sra"},
	F7MExt: {F3MUL: "mul", F3MULH: "mulh", F3MULHSU: "mulhsu", F3MULHU: "mulhu", F3DIV: "div", F3DIVU: "divu", F3REM: "rem", F3REMU: "remu"},
}

var iArithMnemonics = map[uint32]string{F3ADDSUB: "addi", F3XOR: "xori", F3OR: "ori", F3AND: "andi", F3SLT: "slti", F3SLTU: "sltiu"}
var loadMnemonics = map[uint32]string{F3LB: "lb", F3LH: "lh", F3LW: "lw", F3LBU: "lbu", F3LHU: "lhu"}
var storeMnemonics = map[uint32]string{F3SB: "sb", F3SH: "sh", F3SW: "sw"}
var branchMnemonics = map[uint32]string{F3BEQ: "beq", F3BNE: "bne", F3BLT: "blt", F3BGE: "bge", F3BLTU: "bltu", F3BGEU: "bgeu"}

// Disassemble renders a best-effort mnemonic form of word, for trace
// display only; it is not used by the encoder or executor for anything
// semantic.
func Disassemble(word uint32) string {
	if word == EbreakWord {
		return "ebreak"
	}
	if word == EcallWord {
		return "ecall"
	}

	op := DecodeOpcode(word)
	rd, rs1, rs2 := DecodeRD(word), DecodeRS1(word), DecodeRS2(word)
	f3, f7 := DecodeFunct3(word), DecodeFunct7(word)

	switch op {
	case OpR:
		if m, ok := rMnemonics[f7]; ok {
			if name, ok := m[f3]; ok {
				return fmt.Sprintf("%s x%d, x%d, x%d", name, rd, rs1, rs2)
			}
		}
		return fmt.Sprintf("unknown-r 0x%08x", word)
	case OpIArith:
		if f3 == F3SLL || f3 == F3SR {
			name := "slli"
			if f3 == F3SR {
				if f7 == F7Alt {
					name = "srai"
				} else {
					name = "srli"
				}
			}
			return fmt.Sprintf("%s x%d, x%d, %d", name, rd, rs1, DecodeShamt(word))
		}
		return fmt.Sprintf("%s x%d, x%d, %d", iArithMnemonics[f3], rd, rs1, DecodeImmI(word))
	case OpILoad:
		return fmt.Sprintf("%s x%d, %d(x%d)", loadMnemonics[f3], rd, DecodeImmI(word), rs1)
	case OpIJump:
		return fmt.Sprintf("jalr x%d, x%d, %d", rd, rs1, DecodeImmI(word))
	case OpS:
		return fmt.Sprintf("%s x%d, %d(x%d)", storeMnemonics[f3], rs2, DecodeImmS(word), rs1)
	case OpB:
		return fmt.Sprintf("%s x%d, x%d, %d", branchMnemonics[f3], rs1, rs2, DecodeImmB(word))
	case OpLUI:
		return fmt.Sprintf("lui x%d, 0x%x", rd, DecodeImmU(word)>>12)
	case OpAUIPC:
		return fmt.Sprintf("auipc x%d, 0x%x", rd, DecodeImmU(word)>>12)
	case OpJAL:
		return fmt.Sprintf("jal x%d, %d", rd, DecodeImmJ(word))
	default:
		return fmt.Sprintf("unknown 0x%08x", word)
	}
}
