package vm

// ProgramStart is the fixed address at which both the assembler's default
// .org base and the simulator's initial PC agree, so the two passes can
// never drift apart on where a program starts.
const ProgramStart uint32 = 0x1000

// DefaultMemWords is the default memory size in 32-bit words (256 KiB).
const DefaultMemWords = 65536

// DefaultMaxCycles bounds a non-interactive run so a runaway program does
// not hang the CLI forever.
const DefaultMaxCycles uint64 = 10_000_000

// RegCount is the size of the integer register file.
const RegCount = 32

// ABINames gives the calling-convention name for each register index,
// shown by the TUI register view and accepted by the encoder as an
// alternative register spelling.
var ABINames = [RegCount]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}
