package encoder

import (
	"fmt"
	"strings"

	"github.com/lookbusy1344/rv32sim/numlit"
	"github.com/lookbusy1344/rv32sim/vm"
)

// registerNames maps every accepted register spelling to its 5-bit index.
// Only x0..x31 are defined by the instruction set; the ABI aliases
// (zero, ra, sp, ...) are accepted as an additional convenience spelling
// that resolves to the same index.
var registerNames = buildRegisterNames()

func buildRegisterNames() map[string]uint32 {
	m := make(map[string]uint32, vm.RegCount*2)
	for i := 0; i < vm.RegCount; i++ {
		m[fmt.Sprintf("x%d", i)] = uint32(i)
	}
	for i, name := range vm.ABINames {
		m[name] = uint32(i)
	}
	return m
}

// ParseRegister resolves a register operand to its 5-bit index. Unknown
// names are rejected loudly rather than silently mapped to x0.
func ParseRegister(tok string) (uint32, error) {
	name := strings.ToLower(strings.TrimSpace(tok))
	if idx, ok := registerNames[name]; ok {
		return idx, nil
	}
	return 0, fmt.Errorf("unknown register %q", tok)
}

// ParseImmediate accepts decimal, 0x-hex, and leading-zero octal integer
// literals, matching the assembly-source integer grammar.
func ParseImmediate(tok string) (int64, error) {
	return numlit.ParseInt(tok)
}
