package vm

// This file implements the per-format micro-sequences: each function
// continues the cycle count left off by the common fetch (which has
// already run cycles 1-3 by the time these are called) and drives the
// pipeline latches through the remaining cycles for its instruction class.

func (v *VM) execR(word uint32, sink TraceSink) {
	lat := &v.CPU.Latches
	rd, rs1, rs2 := DecodeRD(word), DecodeRS1(word), DecodeRS2(word)
	f3, f7 := DecodeFunct3(word), DecodeFunct7(word)

	v.tick(func() {
		lat.A.Write(v.CPU.Regs.Read(rs1))
		lat.B.Write(v.CPU.Regs.Read(rs2))
	}, sink)

	v.tick(func() {
		a, b := lat.A.Read(), lat.B.Read()
		lat.ALUOut.Write(aluR(f3, f7, a, b))
	}, sink)

	v.tick(func() {
		v.CPU.Regs.Write(rd, lat.ALUOut.Read())
	}, sink)
}

// aluR computes the R-type ALU result, dispatching the base integer ops
// (funct7 == F7Base/F7Alt) and the M-extension (funct7 == F7MExt) by
// funct3.
func aluR(f3, f7, a, b uint32) uint32 {
	if f7 == F7MExt {
		return mulDivOp(f3, a, b)
	}
	switch f3 {
	case F3ADDSUB:
		if f7 == F7Alt {
			return a - b
		}
		return a + b
	case F3SLL:
		return a << (b & 0x1F)
	case F3SLT:
		return boolU32(int32(a) < int32(b))
	case F3SLTU:
		return boolU32(a < b)
	case F3XOR:
		return a ^ b
	case F3SR:
		if f7 == F7Alt {
			return uint32(int32(a) >> (b & 0x1F))
		}
		return a >> (b & 0x1F)
	case F3OR:
		return a | b
	case F3AND:
		return a & b
	}
	return 0
}

// mulDivOp implements the M-extension with the RISC-V-defined edge cases
// for division by zero and signed overflow.
func mulDivOp(f3, a, b uint32) uint32 {
	sa, sb := int32(a), int32(b)
	switch f3 {
	case F3MUL:
		return uint32(sa * sb)
	case F3MULH:
		return uint32((int64(sa) * int64(sb)) >> 32)
	case F3MULHSU:
		return uint32((int64(sa) * int64(uint64(b))) >> 32)
	case F3MULHU:
		return uint32((uint64(a) * uint64(b)) >> 32)
	case F3DIV:
		if sb == 0 {
			return uint32(int32(-1))
		}
		if sa == int32(-2147483648) && sb == -1 {
			return uint32(sa)
		}
		return uint32(sa / sb)
	case F3DIVU:
		if b == 0 {
			return 0xFFFFFFFF
		}
		return a / b
	case F3REM:
		if sb == 0 {
			return uint32(sa)
		}
		if sa == int32(-2147483648) && sb == -1 {
			return 0
		}
		return uint32(sa % sb)
	case F3REMU:
		if b == 0 {
			return a
		}
		return a % b
	}
	return 0
}

func boolU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func (v *VM) execIArith(word uint32, sink TraceSink) {
	lat := &v.CPU.Latches
	rd, rs1 := DecodeRD(word), DecodeRS1(word)
	f3 := DecodeFunct3(word)
	isShift := f3 == F3SLL || f3 == F3SR
	f7 := DecodeFunct7(word)
	shamt := DecodeShamt(word)
	imm := DecodeImmI(word)

	v.tick(func() {
		lat.A.Write(v.CPU.Regs.Read(rs1))
		if isShift {
			lat.B.Write(shamt)
		} else {
			lat.B.Write(uint32(imm))
		}
	}, sink)

	v.tick(func() {
		a, b := lat.A.Read(), lat.B.Read()
		switch f3 {
		case F3ADDSUB:
			lat.ALUOut.Write(a + b)
		case F3XOR:
			lat.ALUOut.Write(a ^ b)
		case F3OR:
			lat.ALUOut.Write(a | b)
		case F3AND:
			lat.ALUOut.Write(a & b)
		case F3SLT:
			lat.ALUOut.Write(boolU32(int32(a) < int32(b)))
		case F3SLTU:
			lat.ALUOut.Write(boolU32(a < b))
		case F3SLL:
			lat.ALUOut.Write(a << (b & 0x1F))
		case F3SR:
			if f7 == F7Alt {
				lat.ALUOut.Write(uint32(int32(a) >> (b & 0x1F)))
			} else {
				lat.ALUOut.Write(a >> (b & 0x1F))
			}
		}
	}, sink)

	v.tick(func() {
		v.CPU.Regs.Write(rd, lat.ALUOut.Read())
	}, sink)
}

func (v *VM) execILoad(word uint32, sink TraceSink) {
	lat := &v.CPU.Latches
	rd, rs1 := DecodeRD(word), DecodeRS1(word)
	f3 := DecodeFunct3(word)
	imm := DecodeImmI(word)

	v.tick(func() {
		lat.A.Write(v.CPU.Regs.Read(rs1))
		lat.B.Write(uint32(imm))
	}, sink)
	v.tick(func() {
		lat.ALUOut.Write(lat.A.Read() + lat.B.Read())
	}, sink)
	v.tick(func() {
		lat.MAR.Write(lat.ALUOut.Read())
	}, sink)
	v.tick(func() {
		addr := lat.MAR.Read()
		switch f3 {
		case F3LB:
			lat.MDR.Write(uint32(int32(int8(v.Memory.ReadByte(addr)))))
		case F3LBU:
			lat.MDR.Write(uint32(v.Memory.ReadByte(addr)))
		case F3LH:
			lat.MDR.Write(uint32(int32(int16(v.Memory.ReadHalf(addr)))))
		case F3LHU:
			lat.MDR.Write(uint32(v.Memory.ReadHalf(addr)))
		case F3LW:
			lat.MDR.Write(v.Memory.ReadWord(addr))
		}
	}, sink)
	v.tick(func() {
		v.CPU.Regs.Write(rd, lat.MDR.Read())
	}, sink)
}

func (v *VM) execIJump(word uint32, sink TraceSink) {
	lat := &v.CPU.Latches
	rd, rs1 := DecodeRD(word), DecodeRS1(word)
	imm := DecodeImmI(word)

	v.tick(func() {
		lat.A.Write(v.CPU.Regs.Read(rs1))
		lat.B.Write(uint32(imm))
	}, sink)
	v.tick(func() {
		lat.ALUOut.Write(lat.A.Read() + lat.B.Read())
	}, sink)
	v.tick(func() {
		ret := lat.PC.Read()
		v.CPU.Regs.Write(rd, ret)
		lat.PC.Write(lat.ALUOut.Read() &^ 1)
	}, sink)
}

func (v *VM) execS(word uint32, sink TraceSink) {
	lat := &v.CPU.Latches
	rs1, rs2 := DecodeRS1(word), DecodeRS2(word)
	f3 := DecodeFunct3(word)
	imm := DecodeImmS(word)

	v.tick(func() {
		lat.A.Write(v.CPU.Regs.Read(rs1))
		lat.B.Write(uint32(imm))
	}, sink)
	v.tick(func() {
		lat.ALUOut.Write(lat.A.Read() + lat.B.Read())
	}, sink)
	v.tick(func() {
		lat.MAR.Write(lat.ALUOut.Read())
	}, sink)
	v.tick(func() {
		lat.MDR.Write(v.CPU.Regs.Read(rs2))
	}, sink)
	v.tick(func() {
		addr, val := lat.MAR.Read(), lat.MDR.Read()
		switch f3 {
		case F3SB:
			v.Memory.WriteByte(addr, uint8(val))
		case F3SH:
			v.Memory.WriteHalf(addr, uint16(val))
		case F3SW:
			v.Memory.WriteWord(addr, val)
		}
	}, sink)
}

func (v *VM) execB(word uint32, sink TraceSink) {
	lat := &v.CPU.Latches
	rs1, rs2 := DecodeRS1(word), DecodeRS2(word)
	f3 := DecodeFunct3(word)
	imm := DecodeImmB(word)

	v.tick(func() {
		lat.A.Write(v.CPU.Regs.Read(rs1))
		lat.B.Write(v.CPU.Regs.Read(rs2))
	}, sink)
	v.tick(func() {
		a, b := lat.A.Read(), lat.B.Read()
		var taken bool
		switch f3 {
		case F3BEQ:
			taken = a == b
		case F3BNE:
			taken = a != b
		case F3BLT:
			taken = int32(a) < int32(b)
		case F3BGE:
			taken = int32(a) >= int32(b)
		case F3BLTU:
			taken = a < b
		case F3BGEU:
			taken = a >= b
		}
		if taken {
			// PC has already advanced past this instruction (cycle 2 of
			// fetch); the branch target is relative to this instruction's
			// own address, hence PC-4.
			lat.PC.Write(uint32(int64(lat.PC.Read())-4+int64(imm)))
		}
	}, sink)
}

func (v *VM) execLUI(word uint32, sink TraceSink) {
	lat := &v.CPU.Latches
	rd := DecodeRD(word)
	imm := DecodeImmU(word)

	v.tick(func() { lat.B.Write(imm) }, sink)
	v.tick(func() { lat.ALUOut.Write(lat.B.Read()) }, sink)
	v.tick(func() { v.CPU.Regs.Write(rd, lat.ALUOut.Read()) }, sink)
}

func (v *VM) execAUIPC(word uint32, sink TraceSink) {
	lat := &v.CPU.Latches
	rd := DecodeRD(word)
	imm := DecodeImmU(word)

	v.tick(func() {
		lat.A.Write(lat.PC.Read() - 4) // this instruction's own address
		lat.B.Write(imm)
	}, sink)
	v.tick(func() { lat.ALUOut.Write(lat.A.Read() + lat.B.Read()) }, sink)
	v.tick(func() { v.CPU.Regs.Write(rd, lat.ALUOut.Read()) }, sink)
}

func (v *VM) execJAL(word uint32, sink TraceSink) {
	lat := &v.CPU.Latches
	rd := DecodeRD(word)
	imm := DecodeImmJ(word)

	v.tick(func() { lat.A.Write(lat.PC.Read()) }, sink) // return address = old PC + 4
	v.tick(func() {
		lat.PC.Write(uint32(int64(lat.PC.Read()) - 4 + int64(imm)))
	}, sink)
	v.tick(func() { v.CPU.Regs.Write(rd, lat.A.Read()) }, sink)
}
