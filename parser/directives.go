package parser

import (
	"fmt"

	"github.com/lookbusy1344/rv32sim/numlit"
	"github.com/lookbusy1344/rv32sim/vm"
)

// applyDirective executes one address-affecting directive against mem,
// returning the address following it. pos is used for diagnostics.
func applyDirective(mem *vm.Memory, tokens []string, addr uint32, pos Position) (uint32, error) {
	name := tokens[0]
	args := tokens[1:]

	switch name {
	case ".org":
		if len(args) != 1 {
			return addr, newError(pos, ErrorInvalidDirective, ".org requires exactly one operand")
		}
		v, err := numlit.ParseInt(args[0])
		if err != nil {
			return addr, newError(pos, ErrorInvalidDirective, fmt.Sprintf(".org: %v", err))
		}
		return uint32(v), nil

	case ".word":
		if len(args) != 1 {
			return addr, newError(pos, ErrorInvalidDirective, ".word requires exactly one operand")
		}
		v, err := numlit.ParseInt(args[0])
		if err != nil {
			return addr, newError(pos, ErrorInvalidDirective, fmt.Sprintf(".word: %v", err))
		}
		mem.WriteWord(addr, uint32(v))
		return addr + 4, nil

	case ".half":
		if len(args) != 1 {
			return addr, newError(pos, ErrorInvalidDirective, ".half requires exactly one operand")
		}
		if addr%2 != 0 {
			return addr, newError(pos, ErrorAlignment, fmt.Sprintf(".half at misaligned address 0x%08X", addr))
		}
		v, err := numlit.ParseInt(args[0])
		if err != nil {
			return addr, newError(pos, ErrorInvalidDirective, fmt.Sprintf(".half: %v", err))
		}
		mem.WriteHalf(addr, uint16(v))
		return addr + 2, nil

	case ".byte":
		if len(args) != 1 {
			return addr, newError(pos, ErrorInvalidDirective, ".byte requires exactly one operand")
		}
		v, err := numlit.ParseInt(args[0])
		if err != nil {
			return addr, newError(pos, ErrorInvalidDirective, fmt.Sprintf(".byte: %v", err))
		}
		mem.WriteByte(addr, uint8(v))
		return addr + 1, nil

	case ".align":
		if len(args) != 1 {
			return addr, newError(pos, ErrorInvalidDirective, ".align requires exactly one operand")
		}
		n, err := numlit.ParseInt(args[0])
		if err != nil {
			return addr, newError(pos, ErrorInvalidDirective, fmt.Sprintf(".align: %v", err))
		}
		boundary := uint32(1) << uint(n)
		rem := addr % boundary
		if rem == 0 {
			return addr, nil
		}
		return addr + (boundary - rem), nil

	default:
		return addr, newError(pos, ErrorInvalidDirective, fmt.Sprintf("unknown directive %q", name))
	}
}
