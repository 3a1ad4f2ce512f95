package devices

import "strings"

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Bitmap is a monochrome framebuffer. Each byte holds one pixel: 0 or 1.
// The zero value is a cleared display.
type Bitmap [DisplayWidth * DisplayHeight]byte

// Clear unsets all pixels.
func (b *Bitmap) Clear() {
	*b = Bitmap{}
}

// SetPixel sets or unsets the pixel at x, y.
// Out of range coordinates are ignored.
func (b *Bitmap) SetPixel(x, y int, on bool) {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return
	}

	if on {
		b[y*DisplayWidth+x] = 1
	} else {
		b[y*DisplayWidth+x] = 0
	}
}

// Pixel returns the state of the pixel at x, y.
// Out of range coordinates read as unset.
func (b *Bitmap) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return b[y*DisplayWidth+x] != 0
}

// Count returns the number of set pixels.
func (b *Bitmap) Count() int {
	var n int
	for _, v := range b {
		n += int(v)
	}
	return n
}

// String renders the bitmap as rows of '#' and '.' characters.
func (b *Bitmap) String() string {
	var sb strings.Builder
	sb.Grow((DisplayWidth + 1) * DisplayHeight)

	for y := 0; y < DisplayHeight; y++ {
		for x := 0; x < DisplayWidth; x++ {
			if b[y*DisplayWidth+x] != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
