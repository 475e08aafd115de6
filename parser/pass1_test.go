package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookbusy1344/rv32sim/vm"
)

func TestPass1_LabelsAssignedAddresses(t *testing.T) {
	src := `
start:
    addi x1, x0, 1
loop:
    addi x1, x1, 1
    beq x1, x0, loop
end:
`
	mem := vm.NewMemory(64)
	prog, err := Pass1(strings.NewReader(src), mem, "t.asm", vm.ProgramStart)
	require.NoError(t, err)

	addr, ok := prog.SymbolTable.Lookup("start")
	require.True(t, ok)
	assert.Equal(t, vm.ProgramStart, addr)

	addr, ok = prog.SymbolTable.Lookup("loop")
	require.True(t, ok)
	assert.Equal(t, vm.ProgramStart+4, addr)

	addr, ok = prog.SymbolTable.Lookup("end")
	require.True(t, ok)
	assert.Equal(t, vm.ProgramStart+12, addr)

	require.Len(t, prog.Instructions, 3)
}

func TestPass1_DuplicateLabelRejected(t *testing.T) {
	src := `
foo:
    addi x1, x0, 1
foo:
    addi x2, x0, 2
`
	mem := vm.NewMemory(64)
	_, err := Pass1(strings.NewReader(src), mem, "t.asm", vm.ProgramStart)
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrorDuplicateLabel, perr.Kind)
}

func TestPass1_CommentsAndBlankLinesIgnored(t *testing.T) {
	src := `
# a full-line comment
addi x1, x0, 1  # trailing comment

addi x2, x0, 2
`
	mem := vm.NewMemory(64)
	prog, err := Pass1(strings.NewReader(src), mem, "t.asm", vm.ProgramStart)
	require.NoError(t, err)
	require.Len(t, prog.Instructions, 2)
}

func TestPass1_WordDirectiveWritesMemory(t *testing.T) {
	src := `
.org 0x2000
.word 0xDEADBEEF
`
	mem := vm.NewMemory(4096)
	prog, err := Pass1(strings.NewReader(src), mem, "t.asm", vm.ProgramStart)
	require.NoError(t, err)
	assert.True(t, prog.OriginSet)
	assert.Equal(t, uint32(0x2000), prog.Origin)
	assert.Equal(t, uint32(0xDEADBEEF), mem.ReadWord(0x2000))
}

func TestPass1_AlignDirective(t *testing.T) {
	src := `
.org 1
.align 2
.word 7
`
	mem := vm.NewMemory(16)
	_, err := Pass1(strings.NewReader(src), mem, "t.asm", vm.ProgramStart)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), mem.ReadWord(4))
}

func TestPass1_LiExpansionSmallFitsInAddi(t *testing.T) {
	src := "li x1, 5\n"
	mem := vm.NewMemory(64)
	prog, err := Pass1(strings.NewReader(src), mem, "t.asm", vm.ProgramStart)
	require.NoError(t, err)
	require.Len(t, prog.Instructions, 1)
	assert.Equal(t, []string{"addi", "x1", "x0", "5"}, prog.Instructions[0].Tokens)
}

func TestPass1_LiExpansionLargeUsesLuiAddi(t *testing.T) {
	src := "li x3, 0x12345678\n"
	mem := vm.NewMemory(64)
	prog, err := Pass1(strings.NewReader(src), mem, "t.asm", vm.ProgramStart)
	require.NoError(t, err)
	require.Len(t, prog.Instructions, 2)
	assert.Equal(t, "lui", prog.Instructions[0].Tokens[0])
	assert.Equal(t, "addi", prog.Instructions[1].Tokens[0])
	assert.Equal(t, prog.Instructions[0].Address+4, prog.Instructions[1].Address)
}

func TestPass1_LiExpansionRoundsUpperWhenLowerSignBitSet(t *testing.T) {
	// 0x80000800: lower 12 bits = 0x800 (sign bit set), so upper must be
	// bumped by one and the addi immediate must be negative.
	src := "li x3, 0x80000800\n"
	mem := vm.NewMemory(64)
	prog, err := Pass1(strings.NewReader(src), mem, "t.asm", vm.ProgramStart)
	require.NoError(t, err)
	require.Len(t, prog.Instructions, 2)
	assert.Equal(t, "0x80001", prog.Instructions[0].Tokens[2])
	assert.Equal(t, "-2048", prog.Instructions[1].Tokens[3])
}

func TestPass1_UnknownDirectiveErrors(t *testing.T) {
	mem := vm.NewMemory(16)
	_, err := Pass1(strings.NewReader(".nonsense 1\n"), mem, "t.asm", vm.ProgramStart)
	require.Error(t, err)
}
