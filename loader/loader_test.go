package loader

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookbusy1344/rv32sim/vm"
)

func TestAssemble_SimpleProgram(t *testing.T) {
	src := `
start:
    addi x1, x0, 10
    addi x2, x0, 32
    add  x3, x1, x2
    ebreak
`
	mem := vm.NewMemory(vm.DefaultMemWords)
	result, err := Assemble(strings.NewReader(src), mem, "t.asm", vm.ProgramStart)
	require.NoError(t, err)
	require.Len(t, result.Words, 4)
	assert.Equal(t, result.Words[3], vm.EbreakWord)
	assert.Empty(t, result.Warnings)
}

func TestAssemble_BackwardBranch(t *testing.T) {
	src := `
    addi x1, x0, 0
loop:
    addi x1, x1, 1
    addi x2, x0, 3
    bne  x1, x2, loop
    ebreak
`
	mem := vm.NewMemory(vm.DefaultMemWords)
	result, err := Assemble(strings.NewReader(src), mem, "t.asm", vm.ProgramStart)
	require.NoError(t, err)

	machine := vm.NewVM(vm.DefaultMemWords, vm.ProgramStart)
	require.NoError(t, LoadWords(machine.Memory, result.Words, vm.ProgramStart))
	err = machine.Run(nil)
	var halt *vm.ExecutionHalt
	require.ErrorAs(t, err, &halt)
	assert.True(t, halt.Clean())
	assert.Equal(t, uint32(3), machine.CPU.Regs.Read(1))
}

func TestAssemble_UndefinedLabelWarnsButSucceeds(t *testing.T) {
	src := "jal x1, nowhere\n"
	mem := vm.NewMemory(vm.DefaultMemWords)
	result, err := Assemble(strings.NewReader(src), mem, "t.asm", vm.ProgramStart)
	require.NoError(t, err)
	assert.Len(t, result.Warnings, 1)
}

func TestAssemble_ProgramTooLarge(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 10; i++ {
		sb.WriteString("addi x1, x0, 1\n")
	}
	mem := vm.NewMemory(4) // only 4 words available
	_, err := Assemble(strings.NewReader(sb.String()), mem, "t.asm", vm.ProgramStart)
	require.Error(t, err)
	var tooLarge *vm.ProgramTooLarge
	require.ErrorAs(t, err, &tooLarge)
}

func TestObjectFile_RoundTrip(t *testing.T) {
	words := []uint32{0x00000013, 0xDEADBEEF, 0x00100073}
	var buf bytes.Buffer
	require.NoError(t, WriteObjectFile(&buf, words))

	got, err := ReadObjectFile(&buf)
	require.NoError(t, err)
	assert.Equal(t, words, got)
}

func TestObjectFile_SkipsBlankLines(t *testing.T) {
	r := strings.NewReader("0000000a\n\n0000000b\n")
	got, err := ReadObjectFile(r)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0xa, 0xb}, got)
}

func TestObjectFile_RejectsGarbage(t *testing.T) {
	r := strings.NewReader("not-hex\n")
	_, err := ReadObjectFile(r)
	assert.Error(t, err)
}

func TestLoadWords_PlacesAtStartAddr(t *testing.T) {
	mem := vm.NewMemory(64)
	require.NoError(t, LoadWords(mem, []uint32{1, 2, 3}, 0x20))
	assert.Equal(t, uint32(1), mem.ReadWord(0x20))
	assert.Equal(t, uint32(2), mem.ReadWord(0x24))
	assert.Equal(t, uint32(3), mem.ReadWord(0x28))
}
