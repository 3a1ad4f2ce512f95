package cpu

import "github.com/pkg/errors"

// Memory layout.
const (
	MemoryCapacity  = 0x1000                          // Size of addressable memory.
	FontAddress     = 0x000                           // Start of the built-in font set.
	GlyphSize       = 5                               // Bytes per font glyph.
	ProgramAddress  = 0x200                           // Start of user code.
	ProgramCapacity = MemoryCapacity - ProgramAddress // Largest program that fits.
	MaxPC           = MemoryCapacity - 2              // Highest address holding a full instruction.
	StackDepth      = 16                              // Number of call stack slots.
)

// Memory defines the system's memory bank.
// All accessors fail on addresses outside of it instead of wrapping.
type Memory [MemoryCapacity]byte

// U8 returns the byte at the given address.
func (m *Memory) U8(addr int) (byte, error) {
	if err := m.check(addr, 1); err != nil {
		return 0, err
	}
	return m[addr], nil
}

// SetU8 sets the byte at the given address.
func (m *Memory) SetU8(addr int, value byte) error {
	if err := m.check(addr, 1); err != nil {
		return err
	}
	m[addr] = value
	return nil
}

// U16 returns the big-endian 16-bit value at the given address.
func (m *Memory) U16(addr int) (int, error) {
	if err := m.check(addr, 2); err != nil {
		return 0, err
	}
	return int(m[addr])<<8 | int(m[addr+1]), nil
}

// Write writes len(p) bytes from p into memory, starting at the given address.
func (m *Memory) Write(addr int, p []byte) error {
	if err := m.check(addr, len(p)); err != nil {
		return err
	}
	copy(m[addr:], p)
	return nil
}

// Read reads len(p) bytes from memory into p, starting at the given address.
func (m *Memory) Read(addr int, p []byte) error {
	if err := m.check(addr, len(p)); err != nil {
		return err
	}
	copy(p, m[addr:])
	return nil
}

// check fails if the n bytes starting at addr do not all lie within memory.
func (m *Memory) check(addr, n int) error {
	if addr < 0 || n < 0 || addr+n > len(m) {
		return errors.Wrapf(ErrAddress, "access of %d byte(s) at %04x", n, addr)
	}
	return nil
}
