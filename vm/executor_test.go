package vm_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lookbusy1344/rv32sim/encoder"
	"github.com/lookbusy1344/rv32sim/vm"
)

// stubResolver satisfies encoder.SymbolResolver for tests that need
// branch/jump targets without going through the full parser.
type stubResolver map[string]uint32

func (s stubResolver) Resolve(name string) (uint32, bool) {
	addr, ok := s[name]
	return addr, ok
}

func assembleOne(t *testing.T, mnemonic string, ops ...string) uint32 {
	t.Helper()
	enc := encoder.NewEncoder(nil)
	word, err := enc.EncodeInstruction(append([]string{mnemonic}, ops...), vm.ProgramStart, mnemonic)
	require.NoError(t, err)
	return word
}

func newRunner(t *testing.T, words ...uint32) *vm.VM {
	t.Helper()
	machine := vm.NewVM(vm.DefaultMemWords, vm.ProgramStart)
	for i, w := range words {
		machine.Memory.WriteWord(vm.ProgramStart+uint32(i*4), w)
	}
	return machine
}

func TestStep_AddImmediate(t *testing.T) {
	word := assembleOne(t, "addi", "x1", "x0", "5")
	m := newRunner(t, word)
	require.NoError(t, m.Step(nil))
	require.Equal(t, uint32(5), m.CPU.Regs.Read(1))
	require.Equal(t, vm.ProgramStart+4, m.CPU.Latches.PC.Read())
}

func TestStep_RTypeArithmetic(t *testing.T) {
	words := []uint32{
		assembleOne(t, "addi", "x1", "x0", "10"),
		assembleOne(t, "addi", "x2", "x0", "32"),
		assembleOne(t, "add", "x3", "x1", "x2"),
	}
	m := newRunner(t, words...)
	for range words {
		require.NoError(t, m.Step(nil))
	}
	require.Equal(t, uint32(42), m.CPU.Regs.Read(3))
}

func TestStep_LoadStoreRoundTrip(t *testing.T) {
	words := []uint32{
		assembleOne(t, "addi", "x1", "x0", "99"),
		assembleOne(t, "sw", "x1", "0(x0)"), // store via rewritten imm(reg)
		assembleOne(t, "lw", "x2", "0(x0)"),
	}
	m := newRunner(t, words...)
	for range words {
		require.NoError(t, m.Step(nil))
	}
	require.Equal(t, uint32(99), m.CPU.Regs.Read(2))
}

func TestStep_BranchTaken(t *testing.T) {
	// beq x0, x0, label ; addi x5, x0, 1 ; label: addi x6, x0, 2
	enc := encoder.NewEncoder(stubResolver{"label": vm.ProgramStart + 8})
	beq, err := enc.EncodeInstruction([]string{"beq", "x0", "x0", "label"}, vm.ProgramStart, "beq")
	require.NoError(t, err)
	skipped, err := enc.EncodeInstruction([]string{"addi", "x5", "x0", "1"}, vm.ProgramStart+4, "addi")
	require.NoError(t, err)
	target, err := enc.EncodeInstruction([]string{"addi", "x6", "x0", "2"}, vm.ProgramStart+8, "addi")
	require.NoError(t, err)

	m := newRunner(t, beq, skipped, target)
	require.NoError(t, m.Step(nil)) // beq, branch taken
	require.Equal(t, vm.ProgramStart+8, m.CPU.Latches.PC.Read())
	require.NoError(t, m.Step(nil)) // addi x6, x0, 2
	require.Equal(t, uint32(2), m.CPU.Regs.Read(6))
	require.Equal(t, uint32(0), m.CPU.Regs.Read(5), "instruction at the skipped address must not execute")
}

func TestStep_JalSetsLinkAndTarget(t *testing.T) {
	enc := encoder.NewEncoder(stubResolver{"callee": vm.ProgramStart + 12})
	jal, err := enc.EncodeInstruction([]string{"jal", "x1", "callee"}, vm.ProgramStart, "jal")
	require.NoError(t, err)

	m := newRunner(t, jal)
	require.NoError(t, m.Step(nil))
	require.Equal(t, vm.ProgramStart+4, m.CPU.Regs.Read(1), "ra should hold the return address")
	require.Equal(t, vm.ProgramStart+12, m.CPU.Latches.PC.Read())
}

func TestStep_Ebreak_HaltsClean(t *testing.T) {
	m := newRunner(t, vm.EbreakWord)
	err := m.Step(nil)
	var halt *vm.ExecutionHalt
	require.True(t, errors.As(err, &halt))
	require.True(t, halt.Clean())
	require.Equal(t, vm.StateHalted, m.State)
}

func TestStep_UnknownOpcode_HaltsFatal(t *testing.T) {
	m := newRunner(t, 0x0000007F) // reserved/unused opcode bits
	err := m.Step(nil)
	var halt *vm.ExecutionHalt
	require.True(t, errors.As(err, &halt))
	require.False(t, halt.Clean())
	require.Equal(t, vm.StateError, m.State)
}

func TestStep_MulDiv(t *testing.T) {
	words := []uint32{
		assembleOne(t, "addi", "x1", "x0", "6"),
		assembleOne(t, "addi", "x2", "x0", "7"),
		assembleOne(t, "mul", "x3", "x1", "x2"),
		assembleOne(t, "div", "x4", "x3", "x2"),
	}
	m := newRunner(t, words...)
	for range words {
		require.NoError(t, m.Step(nil))
	}
	require.Equal(t, uint32(42), m.CPU.Regs.Read(3))
	require.Equal(t, uint32(6), m.CPU.Regs.Read(4))
}

func TestStep_DivisionByZero(t *testing.T) {
	words := []uint32{
		assembleOne(t, "addi", "x1", "x0", "5"),
		assembleOne(t, "div", "x2", "x1", "x0"),
		assembleOne(t, "rem", "x3", "x1", "x0"),
	}
	m := newRunner(t, words...)
	for range words {
		require.NoError(t, m.Step(nil))
	}
	require.Equal(t, uint32(0xFFFFFFFF), m.CPU.Regs.Read(2), "div by zero yields all-ones")
	require.Equal(t, uint32(5), m.CPU.Regs.Read(3), "rem by zero yields the dividend")
}

func TestRun_CycleLimitHaltsFatally(t *testing.T) {
	// An infinite loop: beq x0, x0, self.
	enc := encoder.NewEncoder(stubResolver{"self": vm.ProgramStart})
	word, err := enc.EncodeInstruction([]string{"beq", "x0", "x0", "self"}, vm.ProgramStart, "beq")
	require.NoError(t, err)

	m := newRunner(t, word)
	m.CycleLimit = 10
	err = m.Run(nil)
	var halt *vm.ExecutionHalt
	require.True(t, errors.As(err, &halt))
	require.False(t, halt.Clean())
}
