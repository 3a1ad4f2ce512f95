package cpu

import (
	"bufio"
	"fmt"
	"io"

	"github.com/hexaflex/chip8/arch"
)

// State is a snapshot of all machine state. Snapshots are comparable.
type State struct {
	Memory     Memory
	V          [arch.RegisterCount]byte
	Stack      [StackDepth]uint16
	I          uint16
	PC         uint16
	SP         int
	DelayTimer byte
	SoundTimer byte
}

// State returns a snapshot of the current machine state.
func (c *CPU) State() State {
	return State{
		Memory:     c.memory,
		V:          c.v,
		Stack:      c.stack,
		I:          c.i,
		PC:         c.pc,
		SP:         c.sp,
		DelayTimer: c.dt,
		SoundTimer: c.st,
	}
}

// Dump writes a human readable listing of the registers, timers, call stack
// and the instruction at PC to w.
func (s *State) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "PC %04x  I %04x  SP %d  DT %02x  ST %02x\n",
		s.PC, s.I, s.SP, s.DelayTimer, s.SoundTimer)

	for n, value := range s.V {
		fmt.Fprintf(bw, "%s %02x", arch.RegisterName(n), value)
		if n%8 == 7 {
			bw.WriteByte('\n')
		} else {
			bw.WriteString("  ")
		}
	}

	for n := 0; n < s.SP && n < StackDepth; n++ {
		fmt.Fprintf(bw, "S%X %04x\n", n, s.Stack[n])
	}

	if word, err := s.Memory.U16(int(s.PC)); err == nil {
		fmt.Fprintf(bw, "%04x  %04x  %s\n", s.PC, word, arch.Format(word))
	}

	return bw.Flush()
}
