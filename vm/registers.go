package vm

// Register is a single 32-bit latch with read/write/reset.
type Register struct {
	value uint32
}

// Read returns the current value of the register.
func (r *Register) Read() uint32 {
	return r.value
}

// Write sets the register's value.
func (r *Register) Write(v uint32) {
	r.value = v
}

// Reset zeroes the register.
func (r *Register) Reset() {
	r.value = 0
}

// RegisterFile is the 32-entry integer register file. Register x0 is
// architecturally hard-wired to zero: writes to index 0 are silently
// discarded, and reads always return 0 regardless of what was last
// written.
type RegisterFile struct {
	regs [RegCount]Register
}

// NewRegisterFile creates a zeroed register file.
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{}
}

// Read returns the value of register x[idx]. Reading x0 always yields 0.
func (rf *RegisterFile) Read(idx uint32) uint32 {
	if idx == 0 {
		return 0
	}
	return rf.regs[idx].Read()
}

// Write stores v into x[idx]. Writing x0 is a silent no-op.
func (rf *RegisterFile) Write(idx uint32, v uint32) {
	if idx == 0 {
		return
	}
	rf.regs[idx].Write(v)
}

// Reset zeroes every register.
func (rf *RegisterFile) Reset() {
	for i := range rf.regs {
		rf.regs[i].Reset()
	}
}

// Snapshot returns a copy of all 32 register values, for tracing/display.
func (rf *RegisterFile) Snapshot() [RegCount]uint32 {
	var out [RegCount]uint32
	for i := range rf.regs {
		out[i] = rf.Read(uint32(i))
	}
	return out
}
