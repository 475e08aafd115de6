package vm

// Latches holds the seven architectural pipeline registers the multi-cycle
// datapath threads state through between cycles: PC, MAR (memory address),
// MDR (memory data), IR (instruction), A and B (ALU operands), and ALUOut
// (ALU result).
type Latches struct {
	PC     Register
	MAR    Register
	MDR    Register
	IR     Register
	A      Register
	B      Register
	ALUOut Register
}

// CPU bundles the register file, pipeline latches, and the cycle counters
// that make up the simulator's architectural state.
type CPU struct {
	Regs    *RegisterFile
	Latches Latches

	// Clk counts cycles within the current instruction; reset to 0 at the
	// end of every instruction.
	Clk int

	// Cycles is the running total cycle count across the whole program,
	// used for statistics and the max-cycle safeguard.
	Cycles uint64
}

// NewCPU creates a CPU with PC initialised to startPC and every other
// latch/register zeroed.
func NewCPU(startPC uint32) *CPU {
	c := &CPU{Regs: NewRegisterFile()}
	c.Latches.PC.Write(startPC)
	return c
}

// Reset zeroes every register and latch and resets PC to startPC.
func (c *CPU) Reset(startPC uint32) {
	c.Regs.Reset()
	c.Latches = Latches{}
	c.Latches.PC.Write(startPC)
	c.Clk = 0
	c.Cycles = 0
}

// EndInstruction resets the per-instruction clock. Called once the final
// cycle of an instruction's micro-sequence has been traced.
func (c *CPU) EndInstruction() {
	c.Clk = 0
}
