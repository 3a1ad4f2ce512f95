package devices

import "unicode"

// KeyCount is the number of logical keys on the keypad.
const KeyCount = 16

// KeyLayout maps the physical keypad grid onto logical keys:
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
var KeyLayout = [4][4]int{
	{0x1, 0x2, 0x3, 0xc},
	{0x4, 0x5, 0x6, 0xd},
	{0x7, 0x8, 0x9, 0xe},
	{0xa, 0x0, 0xb, 0xf},
}

// KeyboardRows holds the host keyboard keys covering KeyLayout, row by row.
var KeyboardRows = [4]string{"1234", "QWER", "ASDF", "ZXCV"}

// KeyIndex returns the logical key bound to the given host keyboard character.
// Returns false if the character is not part of the layout.
func KeyIndex(r rune) (int, bool) {
	r = unicode.ToUpper(r)
	for row, keys := range KeyboardRows {
		for col, k := range keys {
			if k == r {
				return KeyLayout[row][col], true
			}
		}
	}
	return 0, false
}
