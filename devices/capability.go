package devices

// Display is a monochrome surface the interpreter draws onto.
// Coordinates outside the surface are ignored by SetPixel and read as unset by Pixel.
type Display interface {
	// Clear unsets all pixels.
	Clear()

	// SetPixel sets or unsets the pixel at x, y.
	SetPixel(x, y int, on bool)

	// Pixel returns the state of the pixel at x, y.
	Pixel(x, y int) bool

	// Present is called once after every executed instruction.
	// It publishes the current surface contents to the presentation layer.
	Present()
}

// Keypad yields the state of the 16 logical keys.
// Implementations must never block.
type Keypad interface {
	// Keys returns the current pressed state, indexed by logical key 0x0-0xF.
	Keys() [KeyCount]bool

	// Active returns false once the user has asked to close the emulator.
	Active() bool
}

// Audio produces the single continuous tone of the system.
type Audio interface {
	StartTone()
	StopTone()
}
