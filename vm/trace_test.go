package vm

import (
	"bytes"
	"strings"
	"testing"
)

func TestTracer_EmitWritesRegistersAndLatches(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(&buf)
	tr.Color = false

	m := NewVM(16, ProgramStart)
	m.CPU.Regs.Write(1, 0xABCD)
	ct := m.Snapshot("addi x1, x0, 1")
	tr.Emit(ct)

	out := buf.String()
	if !strings.Contains(out, "addi x1, x0, 1") {
		t.Errorf("trace output missing disassembly line: %q", out)
	}
	if !strings.Contains(out, "x1") {
		t.Errorf("trace output missing register x1: %q", out)
	}
	if !strings.Contains(out, "PC") {
		t.Errorf("trace output missing PC latch: %q", out)
	}
}

func TestSnapshot_CapturesLatches(t *testing.T) {
	m := NewVM(16, ProgramStart)
	m.CPU.Latches.MAR.Write(0x44)
	ct := m.Snapshot("")
	if ct.MAR != 0x44 {
		t.Errorf("snapshot MAR = 0x%x, want 0x44", ct.MAR)
	}
	if ct.PC != ProgramStart {
		t.Errorf("snapshot PC = 0x%x, want 0x%x", ct.PC, ProgramStart)
	}
}
