package vm

// Opcode is the 7-bit field in IR[6:0] that selects an instruction format.
type Opcode uint32

const (
	OpR      Opcode = 0b0110011 // register-register arithmetic, incl. M-extension
	OpIArith Opcode = 0b0010011 // register-immediate arithmetic / shift-immediate
	OpILoad  Opcode = 0b0000011 // loads
	OpIJump  Opcode = 0b1100111 // jalr
	OpS      Opcode = 0b0100011 // stores
	OpB      Opcode = 0b1100011 // conditional branches
	OpLUI    Opcode = 0b0110111
	OpAUIPC  Opcode = 0b0010111
	OpJAL    Opcode = 0b1101111
	OpSystem Opcode = 0b1110011 // ecall / ebreak
)

// funct3 values, grouped by the opcode that selects them.
const (
	F3ADDSUB = 0b000
	F3SLL    = 0b001
	F3SLT    = 0b010
	F3SLTU   = 0b011
	F3XOR    = 0b100
	F3SR     = 0b101 // SRL/SRA, selected further by funct7
	F3OR     = 0b110
	F3AND    = 0b111

	F3MUL    = 0b000
	F3MULH   = 0b001
	F3MULHSU = 0b010
	F3MULHU  = 0b011
	F3DIV    = 0b100
	F3DIVU   = 0b101
	F3REM    = 0b110
	F3REMU   = 0b111

	F3LB  = 0b000
	F3LH  = 0b001
	F3LW  = 0b010
	F3LBU = 0b100
	F3LHU = 0b101

	F3SB = 0b000
	F3SH = 0b001
	F3SW = 0b010

	F3BEQ  = 0b000
	F3BNE  = 0b001
	F3BLT  = 0b100
	F3BGE  = 0b101
	F3BLTU = 0b110
	F3BGEU = 0b111
)

// funct7 discriminators.
const (
	F7Base  = 0b0000000 // add, srl, or, sll, slt, sltu, xor, and
	F7Alt   = 0b0100000 // sub, sra
	F7MExt  = 0b0000001 // mul/div/rem family
)

// EbreakWord and EcallWord are the fixed encodings of the two System
// instructions (identical to the original RISC-V SYSTEM opcode with
// distinguishing immediates).
const (
	EcallWord  uint32 = 0x00000073
	EbreakWord uint32 = 0x00100073
)

// DecodeOpcode extracts the 7-bit opcode field from a raw instruction word.
func DecodeOpcode(word uint32) Opcode {
	return Opcode(word & 0x7F)
}

// DecodeRD extracts the destination register field (bits 11:7).
func DecodeRD(word uint32) uint32 { return (word >> 7) & 0x1F }

// DecodeFunct3 extracts funct3 (bits 14:12).
func DecodeFunct3(word uint32) uint32 { return (word >> 12) & 0x7 }

// DecodeRS1 extracts rs1 (bits 19:15).
func DecodeRS1(word uint32) uint32 { return (word >> 15) & 0x1F }

// DecodeRS2 extracts rs2 (bits 24:20).
func DecodeRS2(word uint32) uint32 { return (word >> 20) & 0x1F }

// DecodeFunct7 extracts funct7 (bits 31:25).
func DecodeFunct7(word uint32) uint32 { return (word >> 25) & 0x7F }

// signExtend sign-extends the low `bits` bits of v to a full int32.
func signExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}

// DecodeImmI extracts and sign-extends the I-type immediate (bits 31:20).
func DecodeImmI(word uint32) int32 {
	return signExtend(word>>20, 12)
}

// DecodeImmS extracts and sign-extends the S-type immediate.
func DecodeImmS(word uint32) int32 {
	imm := ((word >> 25) << 5) | ((word >> 7) & 0x1F)
	return signExtend(imm, 12)
}

// DecodeImmB extracts and sign-extends the B-type immediate.
func DecodeImmB(word uint32) int32 {
	imm := (((word >> 31) & 0x1) << 12) |
		(((word >> 7) & 0x1) << 11) |
		(((word >> 25) & 0x3F) << 5) |
		(((word >> 8) & 0xF) << 1)
	return signExtend(imm, 13)
}

// DecodeImmU extracts the U-type immediate (bits 31:12, verbatim, not
// sign-extended - it represents the *upper* 20 bits of a value).
func DecodeImmU(word uint32) uint32 {
	return word & 0xFFFFF000
}

// DecodeImmJ extracts and sign-extends the J-type immediate.
func DecodeImmJ(word uint32) int32 {
	imm := (((word >> 31) & 0x1) << 20) |
		(((word >> 12) & 0xFF) << 12) |
		(((word >> 20) & 0x1) << 11) |
		(((word >> 21) & 0x3FF) << 1)
	return signExtend(imm, 21)
}

// DecodeShamt extracts the 5-bit shift amount used by slli/srli/srai,
// carried in the same bit positions as rs2.
func DecodeShamt(word uint32) uint32 {
	return (word >> 20) & 0x1F
}
