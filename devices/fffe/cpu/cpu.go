// Package cpu implements the CHIP-8 interpreter core.
package cpu

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/devices"
)

// TraceFunc represents a callback handler for debug trace output.
type TraceFunc func(*Instruction)

// CPU implements the runtime.
type CPU struct {
	display devices.Display          // Framebuffer sink for CLS and DRW.
	keypad  devices.Keypad           // Source of key state.
	audio   devices.Audio            // Tone output driven by the sound timer.
	trace   TraceFunc                // Handler for debug trace output.
	rng     *rand.Rand               // Random number generator.
	quirks  Quirks                   // Active opcode behaviour profile.
	instr   Instruction              // Decoded instruction data.
	keys    [devices.KeyCount]bool   // Key state sampled at the start of the current cycle.
	memory  Memory                   // System memory.
	v       [arch.RegisterCount]byte // General purpose registers V0-VF.
	stack   [StackDepth]uint16       // Return addresses.
	i       uint16                   // Index register.
	pc      uint16                   // Program counter.
	sp      int                      // Number of occupied stack slots.
	dt      byte                     // Delay timer.
	st      byte                     // Sound timer.
}

// New creates a new CPU wired to the given peripherals.
// The CPU starts out in its reset state with the COSMAC quirk profile.
func New(display devices.Display, keypad devices.Keypad, audio devices.Audio) *CPU {
	c := &CPU{
		display: display,
		keypad:  keypad,
		audio:   audio,
		trace:   func(*Instruction) { /* nop */ },
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		quirks:  COSMAC,
	}
	c.Reset()
	return c
}

// ID returns the cpu's device Id.
func (c *CPU) ID() devices.ID {
	return devices.BuiltinID(devices.SerialCPU)
}

// SetTrace sets the debug trace handler. A nil value disables tracing.
func (c *CPU) SetTrace(trace TraceFunc) {
	if trace == nil {
		trace = func(*Instruction) { /* nop */ }
	}
	c.trace = trace
}

// SetRand replaces the random number source used by RND.
func (c *CPU) SetRand(rng *rand.Rand) {
	c.rng = rng
}

// SetQuirks selects the opcode behaviour profile.
func (c *CPU) SetQuirks(q Quirks) {
	c.quirks = q
}

// Quirks returns the active opcode behaviour profile.
func (c *CPU) Quirks() Quirks {
	return c.quirks
}

// Reset clears all machine state, installs the font set and
// points the program counter at the program start.
func (c *CPU) Reset() {
	c.memory = Memory{}
	copy(c.memory[FontAddress:], font[:])
	c.v = [arch.RegisterCount]byte{}
	c.stack = [StackDepth]uint16{}
	c.keys = [devices.KeyCount]bool{}
	c.i = 0
	c.pc = ProgramAddress
	c.sp = 0
	c.dt = 0
	c.st = 0
}

// Load copies the given program into memory at ProgramAddress.
// It does not reset any other state.
func (c *CPU) Load(program []byte) error {
	if len(program) > ProgramCapacity {
		return errors.Wrapf(ErrProgramSize, "%d bytes; %d available", len(program), ProgramCapacity)
	}
	return c.memory.Write(ProgramAddress, program)
}

// Tick decrements the delay and sound timers. It is meant to be
// called at 60Hz. The tone is stopped once the sound timer is zero.
func (c *CPU) Tick() {
	if c.dt > 0 {
		c.dt--
	}

	if c.st > 0 {
		c.st--
	} else {
		c.audio.StopTone()
	}
}

// Step performs a single fetch, decode and execute cycle.
// Faults are returned as *Error values and leave the machine
// in whatever state the faulting instruction produced.
func (c *CPU) Step() error {
	instr := &c.instr

	if err := instr.Decode(&c.memory, int(c.pc)); err != nil {
		return err
	}

	c.keys = c.keypad.Keys()
	c.trace(instr)

	if err := c.execute(instr); err != nil {
		return NewError(instr, err)
	}

	if c.pc > MaxPC {
		return NewError(instr, errors.Wrapf(ErrAddress, "program counter %04x", c.pc))
	}

	c.display.Present()
	return nil
}

func (c *CPU) execute(instr *Instruction) error {
	v := &c.v
	x, y := instr.X, instr.Y
	kk := byte(instr.KK)

	switch instr.Opcode {
	case arch.CLS:
		c.display.Clear()
		c.pc += 2

	case arch.RET:
		if c.sp == 0 {
			return ErrStackUnderflow
		}
		c.sp--
		c.pc = c.stack[c.sp] + 2

	case arch.JP:
		c.pc = uint16(instr.NNN)

	case arch.CALL:
		if c.sp >= StackDepth {
			return ErrStackOverflow
		}
		c.stack[c.sp] = c.pc
		c.sp++
		c.pc = uint16(instr.NNN)

	case arch.SE:
		c.skipIf(v[x] == kk)

	case arch.SNE:
		c.skipIf(v[x] != kk)

	case arch.SEV:
		c.skipIf(v[x] == v[y])

	case arch.SNEV:
		c.skipIf(v[x] != v[y])

	case arch.LD:
		v[x] = kk
		c.pc += 2

	case arch.ADD:
		v[x] += kk
		c.pc += 2

	case arch.LDV:
		v[x] = v[y]
		c.pc += 2

	case arch.OR:
		v[x] |= v[y]
		c.logicFlag()
		c.pc += 2

	case arch.AND:
		v[x] &= v[y]
		c.logicFlag()
		c.pc += 2

	case arch.XOR:
		v[x] ^= v[y]
		c.logicFlag()
		c.pc += 2

	case arch.ADDV:
		sum := int(v[x]) + int(v[y])
		v[x] = byte(sum)
		v[arch.FlagRegister] = flag(sum > 0xff)
		c.pc += 2

	case arch.SUB:
		borrow := flag(v[x] > v[y])
		v[x] -= v[y]
		v[arch.FlagRegister] = borrow
		c.pc += 2

	case arch.SUBN:
		borrow := flag(v[y] > v[x])
		v[x] = v[y] - v[x]
		v[arch.FlagRegister] = borrow
		c.pc += 2

	case arch.SHR:
		src := c.shiftSource(x, y)
		v[x] = src >> 1
		v[arch.FlagRegister] = src & 1
		c.pc += 2

	case arch.SHL:
		src := c.shiftSource(x, y)
		v[x] = src << 1
		v[arch.FlagRegister] = src >> 7
		c.pc += 2

	case arch.LDI:
		c.i = uint16(instr.NNN)
		c.pc += 2

	case arch.JPV0:
		c.pc = uint16(instr.NNN) + uint16(v[0])

	case arch.RND:
		v[x] = byte(c.rng.Intn(256)) & kk
		c.pc += 2

	case arch.DRW:
		c.draw(int(v[x]), int(v[y]), instr.N)
		c.pc += 2

	case arch.SKP:
		if v[x] >= devices.KeyCount {
			return errors.Wrapf(ErrKey, "key %x", v[x])
		}
		c.skipIf(c.keys[v[x]])

	case arch.SKNP:
		if v[x] >= devices.KeyCount {
			return errors.Wrapf(ErrKey, "key %x", v[x])
		}
		c.skipIf(!c.keys[v[x]])

	case arch.LDVDT:
		v[x] = c.dt
		c.pc += 2

	case arch.LDK:
		// The program counter stays put until a key is down.
		for key, down := range c.keys {
			if down {
				v[x] = byte(key)
				c.pc += 2
				break
			}
		}

	case arch.LDDT:
		c.dt = v[x]
		c.pc += 2

	case arch.LDST:
		c.st = v[x]
		if c.st > 0 {
			c.audio.StartTone()
		}
		c.pc += 2

	case arch.ADDI:
		c.i += uint16(v[x])
		c.pc += 2

	case arch.LDF:
		c.i = FontAddress + uint16(v[x])*GlyphSize
		c.pc += 2

	case arch.LDB:
		bcd := []byte{v[x] / 100, (v[x] / 10) % 10, v[x] % 10}
		if err := c.memory.Write(int(c.i), bcd); err != nil {
			return err
		}
		c.pc += 2

	case arch.LDMV:
		if err := c.memory.Write(int(c.i), v[:x+1]); err != nil {
			return err
		}
		c.advanceI(x)
		c.pc += 2

	case arch.LDVM:
		if err := c.memory.Read(int(c.i), v[:x+1]); err != nil {
			return err
		}
		c.advanceI(x)
		c.pc += 2

	default:
		return ErrUnknownOpcode
	}

	return nil
}

// draw XORs an n-byte sprite read from I onto the display at (x, y).
// Pixels past the display edges and rows past the end of memory are
// dropped. VF is set to 1 if any lit pixel was turned off.
func (c *CPU) draw(x, y, n int) {
	var collision bool

	for row := 0; row < n; row++ {
		addr := int(c.i) + row
		if addr >= MemoryCapacity {
			break
		}

		bits := c.memory[addr]
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}

			px, py := x+col, y+row
			if px >= devices.DisplayWidth || py >= devices.DisplayHeight {
				continue
			}

			if c.display.Pixel(px, py) {
				c.display.SetPixel(px, py, false)
				collision = true
			} else {
				c.display.SetPixel(px, py, true)
			}
		}
	}

	c.v[arch.FlagRegister] = flag(collision)
}

func (c *CPU) skipIf(cond bool) {
	if cond {
		c.pc += 4
	} else {
		c.pc += 2
	}
}

func (c *CPU) logicFlag() {
	if c.quirks.LogicResetsVF {
		c.v[arch.FlagRegister] = 0
	}
}

func (c *CPU) shiftSource(x, y int) byte {
	if c.quirks.ShiftReadsVY {
		return c.v[y]
	}
	return c.v[x]
}

func (c *CPU) advanceI(x int) {
	if c.quirks.LoadStoreAdvancesI {
		c.i += uint16(x) + 1
	}
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// V returns the value of register Vn.
// Panics if n is not a register index.
func (c *CPU) V(n int) byte { return c.v[n] }

// I returns the index register.
func (c *CPU) I() uint16 { return c.i }

// PC returns the program counter.
func (c *CPU) PC() uint16 { return c.pc }

// SP returns the number of occupied stack slots.
func (c *CPU) SP() int { return c.sp }

// Stack returns the return address in stack slot n.
// Panics if n is not a stack slot.
func (c *CPU) Stack(n int) uint16 { return c.stack[n] }

// DelayTimer returns the delay timer value.
func (c *CPU) DelayTimer() byte { return c.dt }

// SoundTimer returns the sound timer value.
func (c *CPU) SoundTimer() byte { return c.st }

// Memory returns a copy of the cpu's memory bank.
func (c *CPU) Memory() Memory { return c.memory }
