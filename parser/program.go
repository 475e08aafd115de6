package parser

// Instruction is a single instruction source line, tagged with the
// address it will occupy, as emitted by Pass 1 for Pass 2 to encode. Its
// Tokens have already had commas and the trailing label colon stripped.
type Instruction struct {
	Tokens  []string
	Address uint32
	RawLine string
	Pos     Position
}

// Program is the complete output of Pass 1: the symbol table, the ordered
// instruction list, and (via Memory, supplied by the caller) the
// directive-initialised data.
type Program struct {
	SymbolTable  *SymbolTable
	Instructions []Instruction
	Origin       uint32
	OriginSet    bool
}
