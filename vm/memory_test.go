package vm

import "testing"

func TestMemory_WordRoundTrip(t *testing.T) {
	m := NewMemory(16)
	m.WriteWord(8, 0xCAFEBABE)
	if got := m.ReadWord(8); got != 0xCAFEBABE {
		t.Errorf("ReadWord(8) = 0x%x, want 0xCAFEBABE", got)
	}
}

func TestMemory_ByteAndHalfLanes(t *testing.T) {
	m := NewMemory(4)
	m.WriteByte(0, 0xAA)
	m.WriteByte(1, 0xBB)
	m.WriteByte(2, 0xCC)
	m.WriteByte(3, 0xDD)
	if got := m.ReadWord(0); got != 0xDDCCBBAA {
		t.Errorf("ReadWord(0) = 0x%08x, want 0xDDCCBBAA", got)
	}
	if got := m.ReadHalf(0); got != 0xBBAA {
		t.Errorf("ReadHalf(0) = 0x%04x, want 0xBBAA", got)
	}
	if got := m.ReadHalf(2); got != 0xDDCC {
		t.Errorf("ReadHalf(2) = 0x%04x, want 0xDDCC", got)
	}
}

func TestMemory_OutOfRangeIsSilent(t *testing.T) {
	m := NewMemory(2)
	m.WriteWord(1000, 42) // word 250, far past the 2-word memory
	if got := m.ReadWord(1000); got != 0 {
		t.Errorf("out-of-range ReadWord = %d, want 0", got)
	}
}

func TestMemory_UnalignedAddressMaskedDown(t *testing.T) {
	m := NewMemory(4)
	m.WriteWord(0, 0x11223344)
	if got := m.ReadWord(2); got != 0x11223344 {
		t.Errorf("ReadWord(2) (masked to word 0) = 0x%08x, want 0x11223344", got)
	}
}

func TestMemory_AccessCounters(t *testing.T) {
	m := NewMemory(4)
	m.WriteWord(0, 1)
	m.ReadWord(0)
	if m.WriteCount != 1 || m.ReadCount != 1 || m.AccessCount != 2 {
		t.Errorf("counters = write=%d read=%d access=%d, want 1/1/2", m.WriteCount, m.ReadCount, m.AccessCount)
	}
}
