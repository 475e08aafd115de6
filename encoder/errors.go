package encoder

import "fmt"

// EncodingError provides detailed context for encoding failures: the
// source line and address that failed, the mnemonic being encoded, and
// the underlying cause.
type EncodingError struct {
	Line    string
	Addr    uint32
	Mnemonic string
	Message string
	Wrapped error
}

func (e *EncodingError) Error() string {
	loc := fmt.Sprintf("0x%08X", e.Addr)
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %s: %v", loc, e.Mnemonic, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s: %s", loc, e.Mnemonic, e.Message)
}

// Unwrap supports errors.Is/As against the wrapped cause.
func (e *EncodingError) Unwrap() error {
	return e.Wrapped
}

// NewEncodingError builds an EncodingError without a wrapped cause.
func NewEncodingError(addr uint32, mnemonic, line, message string) *EncodingError {
	return &EncodingError{Addr: addr, Mnemonic: mnemonic, Line: line, Message: message}
}

// WrapEncodingError wraps err with instruction context. Returns nil if err
// is nil; returns err unchanged if it is already an *EncodingError.
func WrapEncodingError(addr uint32, mnemonic, line string, err error) error {
	if err == nil {
		return nil
	}
	if ee, ok := err.(*EncodingError); ok {
		return ee
	}
	return &EncodingError{Addr: addr, Mnemonic: mnemonic, Line: line, Message: "failed to encode instruction", Wrapped: err}
}

// ErrUnknownInstruction is returned (wrapped in an EncodingError) when the
// mnemonic is not recognised by the encoder.
type ErrUnknownInstruction struct {
	Mnemonic string
}

func (e *ErrUnknownInstruction) Error() string {
	return fmt.Sprintf("unknown instruction: %s", e.Mnemonic)
}
