package cpu

import (
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
)

// Instruction defines decoded instruction data.
type Instruction struct {
	IP     int // Instruction address.
	Word   int // Raw instruction word.
	Opcode int // Decoded opcode; one of the arch constants.
	X      int // Register index in bits 8-11.
	Y      int // Register index in bits 4-7.
	N      int // 4-bit immediate.
	KK     int // 8-bit immediate.
	NNN    int // 12-bit address.
}

// Decode decodes the instruction at address pc from the given memory bank.
func (i *Instruction) Decode(m *Memory, pc int) error {
	*i = Instruction{IP: pc}

	if pc > MaxPC {
		return NewError(i, errors.Wrapf(ErrAddress, "program counter %04x", pc))
	}

	word, err := m.U16(pc)
	if err != nil {
		return NewError(i, err)
	}

	i.Word = word
	i.X = (word >> 8) & 0xf
	i.Y = (word >> 4) & 0xf
	i.N = word & 0xf
	i.KK = word & 0xff
	i.NNN = word & 0xfff

	op, ok := arch.Decode(word)
	if !ok {
		return NewError(i, ErrUnknownOpcode)
	}

	i.Opcode = op
	return nil
}

// String returns the instruction in assembly form.
func (i *Instruction) String() string {
	return arch.Format(i.Word)
}
