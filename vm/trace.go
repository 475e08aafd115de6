package vm

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// CycleTrace is a snapshot of the complete architectural state after one
// clock tick, the unit the ANSI tracer and the TUI live viewer both
// consume.
type CycleTrace struct {
	Clk      int
	Cycles   uint64
	Regs     [RegCount]uint32
	PC       uint32
	MAR      uint32
	MDR      uint32
	IR       uint32
	A        uint32
	B        uint32
	ALUOut   uint32
	Disasm   string
}

// Tracer renders a CycleTrace to a writer, one block per cycle: clock
// counter, all 32 registers in 4-per-row hex rows, then the seven named
// latches in hex. Colour is cosmetic and may be disabled.
type Tracer struct {
	w      io.Writer
	Color  bool
	prev   *CycleTrace
}

// NewTracer creates a tracer writing to w. Colour output is enabled by
// default; callers on a non-TTY or with --no-color should set Color=false.
func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w, Color: true}
}

func (t *Tracer) paint(changed bool, format string, args ...interface{}) string {
	s := fmt.Sprintf(format, args...)
	if t.Color && changed {
		return color.New(color.FgYellow, color.Bold).Sprint(s)
	}
	return s
}

// Emit writes one trace block for ct, highlighting values that differ from
// the previous cycle when colour is enabled.
func (t *Tracer) Emit(ct *CycleTrace) {
	header := color.New(color.FgCyan, color.Bold)
	if t.Color {
		header.Fprintf(t.w, "--- clk=%d (cycle %d) ---\n", ct.Clk, ct.Cycles)
	} else {
		fmt.Fprintf(t.w, "--- clk=%d (cycle %d) ---\n", ct.Clk, ct.Cycles)
	}
	if ct.Disasm != "" {
		fmt.Fprintf(t.w, "  %s\n", ct.Disasm)
	}

	for row := 0; row < RegCount; row += 4 {
		for col := 0; col < 4 && row+col < RegCount; col++ {
			i := row + col
			name := fmt.Sprintf("x%d", i)
			changed := t.prev != nil && t.prev.Regs[i] != ct.Regs[i]
			fmt.Fprint(t.w, t.paint(changed, "%-5s=%08x ", name, ct.Regs[i]))
		}
		fmt.Fprintln(t.w)
	}

	latches := []struct {
		name string
		val  uint32
	}{
		{"PC", ct.PC}, {"MAR", ct.MAR}, {"MDR", ct.MDR}, {"IR", ct.IR},
		{"A", ct.A}, {"B", ct.B}, {"ALUOut", ct.ALUOut},
	}
	for _, l := range latches {
		changed := t.prev != nil && latchChanged(t.prev, l.name, l.val)
		fmt.Fprint(t.w, t.paint(changed, "%-7s=%08x ", l.name, l.val))
	}
	fmt.Fprintln(t.w)
	fmt.Fprintln(t.w)

	t.prev = ct
}

func latchChanged(prev *CycleTrace, name string, val uint32) bool {
	switch name {
	case "PC":
		return prev.PC != val
	case "MAR":
		return prev.MAR != val
	case "MDR":
		return prev.MDR != val
	case "IR":
		return prev.IR != val
	case "A":
		return prev.A != val
	case "B":
		return prev.B != val
	case "ALUOut":
		return prev.ALUOut != val
	}
	return false
}

// Snapshot captures the VM's current state as a CycleTrace, ready to be
// handed to Emit or to the TUI viewer's Update.
func (vm *VM) Snapshot(disasm string) *CycleTrace {
	return &CycleTrace{
		Clk:    vm.CPU.Clk,
		Cycles: vm.CPU.Cycles,
		Regs:   vm.CPU.Regs.Snapshot(),
		PC:     vm.CPU.Latches.PC.Read(),
		MAR:    vm.CPU.Latches.MAR.Read(),
		MDR:    vm.CPU.Latches.MDR.Read(),
		IR:     vm.CPU.Latches.IR.Read(),
		A:      vm.CPU.Latches.A.Read(),
		B:      vm.CPU.Latches.B.Read(),
		ALUOut: vm.CPU.Latches.ALUOut.Read(),
		Disasm: disasm,
	}
}
