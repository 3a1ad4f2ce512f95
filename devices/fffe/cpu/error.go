package cpu

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
)

// Known fault causes.
var (
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrAddress        = errors.New("address out of range")
	ErrKey            = errors.New("key index out of range")
	ErrProgramSize    = errors.New("program does not fit in memory")
)

// Error defines a runtime fault along with the instruction that raised it.
type Error struct {
	Instruction
	Err error
}

// NewError creates a new runtime error for the given instruction.
func NewError(instr *Instruction, err error) *Error {
	return &Error{
		Instruction: *instr,
		Err:         err,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%04x: %s: %v", e.IP, arch.Format(e.Word), e.Err)
}

// Cause returns the underlying fault, for use with errors.Cause.
func (e *Error) Cause() error { return e.Err }

// Unwrap returns the underlying fault, for use with errors.Is.
func (e *Error) Unwrap() error { return e.Err }
