// Package loader drives the assembler end to end: it runs Pass 1 (parser)
// and Pass 2 (encoder) over a source file, writes the resulting machine
// words into the shared memory image, and serialises/deserialises the
// intermediate object-file format.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lookbusy1344/rv32sim/encoder"
	"github.com/lookbusy1344/rv32sim/parser"
	"github.com/lookbusy1344/rv32sim/vm"
)

// AssembleResult carries everything downstream stages need: the Pass 1
// program (symbol table, instruction list), the encoded words in program
// order, and any non-fatal diagnostics raised while encoding.
type AssembleResult struct {
	Program  *parser.Program
	Words    []uint32
	Warnings []string
}

// Assemble runs Pass 1 then Pass 2 over src, writing each encoded word
// into mem at its assigned address.
func Assemble(src io.Reader, mem *vm.Memory, filename string, startAddr uint32) (*AssembleResult, error) {
	prog, err := parser.Pass1(src, mem, filename, startAddr)
	if err != nil {
		return nil, fmt.Errorf("pass 1: %w", err)
	}

	enc := encoder.NewEncoder(prog.SymbolTable)
	words := make([]uint32, len(prog.Instructions))
	for i, inst := range prog.Instructions {
		word, err := enc.EncodeInstruction(inst.Tokens, inst.Address, inst.RawLine)
		if err != nil {
			return nil, fmt.Errorf("pass 2 at %s: %w", inst.Pos, err)
		}
		words[i] = word
		mem.WriteWord(inst.Address, word)
	}

	maxWord := 0
	if len(prog.Instructions) > 0 {
		last := prog.Instructions[len(prog.Instructions)-1]
		maxWord = int(last.Address)/4 + 1
	}
	if maxWord > mem.Words() {
		return nil, &vm.ProgramTooLarge{Words: maxWord, MemWords: mem.Words()}
	}

	return &AssembleResult{Program: prog, Words: words, Warnings: enc.Warnings}, nil
}

// WriteObjectFile writes words as the object-file format: one instruction
// per line, each an 8-char zero-padded lowercase hex word.
func WriteObjectFile(w io.Writer, words []uint32) error {
	bw := bufio.NewWriter(w)
	for _, word := range words {
		if _, err := fmt.Fprintf(bw, "%08x\n", word); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadObjectFile parses the object-file format back into a word slice.
func ReadObjectFile(r io.Reader) ([]uint32, error) {
	var words []uint32
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseUint(line, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("object file line %d: %w", lineNo, err)
		}
		words = append(words, uint32(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// LoadWords writes words sequentially into mem starting at startAddr, as
// the simulator does when loading an object file rather than assembling
// directly.
func LoadWords(mem *vm.Memory, words []uint32, startAddr uint32) error {
	if len(words) > mem.Words()-int(startAddr/4) {
		return &vm.ProgramTooLarge{Words: len(words), MemWords: mem.Words()}
	}
	for i, w := range words {
		mem.WriteWord(startAddr+uint32(i*4), w)
	}
	return nil
}
