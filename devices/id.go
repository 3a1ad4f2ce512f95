package devices

import "fmt"

// ID identifies a device.
// The upper 16 bits hold the device manufacturer id.
// The lower 16 bits hold the device serial number.
type ID uint32

// Builtin is the manufacturer id shared by all devices shipped with the emulator.
const Builtin = 0xfffe

// Serial numbers of the built-in devices.
const (
	SerialCPU = iota + 1
	SerialDisplay
	SerialKeypad
	SerialAudio
	SerialTerminalDisplay
	SerialTerminalKeypad
)

// NewID creates a new id with the given components.
func NewID(manufacturer, serial int) ID {
	return ID(manufacturer&0xffff)<<16 | ID(serial&0xffff)
}

// BuiltinID creates the id for the built-in device with the given serial.
func BuiltinID(serial int) ID {
	return NewID(Builtin, serial)
}

// Manufacturer returns the manufacturer component of the ID.
func (id ID) Manufacturer() int {
	return int(id>>16) & 0xffff
}

// Serial returns the device serial number component of the ID.
func (id ID) Serial() int {
	return int(id) & 0xffff
}

func (id ID) String() string {
	return fmt.Sprintf("%04x:%04x", id.Manufacturer(), id.Serial())
}
