package vm

// Memory is the flat, word-addressed backing store shared by the directive
// handler (Pass 1), the encoder's code emission (Pass 2), and the
// simulator's load/store datapath (Pass 3). It holds MemWords 32-bit cells;
// byte and half-word accesses are translated to a (word index, lane) pair.
//
// Unused cells read as zero. Out-of-range accesses read as zero and drop
// writes silently rather than erroring.
type Memory struct {
	words []uint32

	AccessCount uint64
	ReadCount   uint64
	WriteCount  uint64
}

// NewMemory creates a memory of the given size in 32-bit words.
func NewMemory(words int) *Memory {
	return &Memory{words: make([]uint32, words)}
}

// Words reports the memory size in 32-bit words.
func (m *Memory) Words() int {
	return len(m.words)
}

// Reset zeroes every cell and clears the access counters.
func (m *Memory) Reset() {
	for i := range m.words {
		m.words[i] = 0
	}
	m.AccessCount, m.ReadCount, m.WriteCount = 0, 0, 0
}

func (m *Memory) inRange(wordIdx int) bool {
	return wordIdx >= 0 && wordIdx < len(m.words)
}

// ReadWord reads the 32-bit word at addr, masking addr down to a word
// boundary (addr & ^3).
func (m *Memory) ReadWord(addr uint32) uint32 {
	m.AccessCount++
	m.ReadCount++
	idx := int((addr &^ 3) / 4)
	if !m.inRange(idx) {
		return 0
	}
	return m.words[idx]
}

// WriteWord stores v at addr, ignoring the low two bits of addr (alignment
// is discarded rather than enforced).
func (m *Memory) WriteWord(addr uint32, v uint32) {
	m.AccessCount++
	m.WriteCount++
	idx := int((addr &^ 3) / 4)
	if !m.inRange(idx) {
		return
	}
	m.words[idx] = v
}

// ReadHalf reads the 16-bit half-word at addr (masked to addr & ^1),
// selecting the low or high half of the containing word by addr&2.
func (m *Memory) ReadHalf(addr uint32) uint16 {
	m.AccessCount++
	m.ReadCount++
	base := addr &^ 1
	idx := int((base &^ 3) / 4)
	if !m.inRange(idx) {
		return 0
	}
	word := m.words[idx]
	if base&2 != 0 {
		return uint16(word >> 16)
	}
	return uint16(word)
}

// WriteHalf updates the selected half of the word at addr. It does not
// reject odd addresses: it discards the low bit. The .half directive
// rejects odd addresses before calling it; the sh store path does not
// check, so an odd sh address writes the half-word at addr &^ 1.
func (m *Memory) WriteHalf(addr uint32, v uint16) {
	m.AccessCount++
	m.WriteCount++
	base := addr &^ 1
	idx := int((base &^ 3) / 4)
	if !m.inRange(idx) {
		return
	}
	word := m.words[idx]
	if base&2 != 0 {
		word = (word & 0x0000FFFF) | (uint32(v) << 16)
	} else {
		word = (word & 0xFFFF0000) | uint32(v)
	}
	m.words[idx] = word
}

// ReadByte reads the byte lane (addr&3) of the word at addr.
func (m *Memory) ReadByte(addr uint32) uint8 {
	m.AccessCount++
	m.ReadCount++
	idx := int((addr &^ 3) / 4)
	if !m.inRange(idx) {
		return 0
	}
	shift := (addr & 3) * 8
	return uint8(m.words[idx] >> shift)
}

// WriteByte updates the byte lane (addr&3) of the word at addr.
func (m *Memory) WriteByte(addr uint32, v uint8) {
	m.AccessCount++
	m.WriteCount++
	idx := int((addr &^ 3) / 4)
	if !m.inRange(idx) {
		return
	}
	shift := (addr & 3) * 8
	mask := uint32(0xFF) << shift
	m.words[idx] = (m.words[idx] &^ mask) | (uint32(v) << shift)
}
