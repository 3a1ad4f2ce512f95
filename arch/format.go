package arch

import "fmt"

// Format returns the human-readable assembly form of the given instruction word.
// Words without a defined meaning are rendered as a data directive.
func Format(word int) string {
	word &= 0xffff

	opcode, ok := Decode(word)
	if !ok {
		return fmt.Sprintf("DW $%04X", word)
	}

	name, _ := Name(opcode)
	x := (word >> 8) & 0xf
	y := (word >> 4) & 0xf
	n := word & 0xf
	kk := word & 0xff
	nnn := word & 0xfff

	switch opcode {
	case CLS, RET:
		return name
	case JP, CALL:
		return fmt.Sprintf("%s $%03X", name, nnn)
	case JPV0:
		return fmt.Sprintf("%s V0, $%03X", name, nnn)
	case SE, SNE, LD, ADD, RND:
		return fmt.Sprintf("%s V%X, $%02X", name, x, kk)
	case SEV, SNEV, LDV, OR, AND, XOR, ADDV, SUB, SHR, SUBN, SHL:
		return fmt.Sprintf("%s V%X, V%X", name, x, y)
	case LDI:
		return fmt.Sprintf("%s I, $%03X", name, nnn)
	case DRW:
		return fmt.Sprintf("%s V%X, V%X, $%X", name, x, y, n)
	case SKP, SKNP:
		return fmt.Sprintf("%s V%X", name, x)
	case LDVDT:
		return fmt.Sprintf("%s V%X, DT", name, x)
	case LDK:
		return fmt.Sprintf("%s V%X, K", name, x)
	case LDDT:
		return fmt.Sprintf("%s DT, V%X", name, x)
	case LDST:
		return fmt.Sprintf("%s ST, V%X", name, x)
	case ADDI:
		return fmt.Sprintf("%s I, V%X", name, x)
	case LDF:
		return fmt.Sprintf("%s F, V%X", name, x)
	case LDB:
		return fmt.Sprintf("%s B, V%X", name, x)
	case LDMV:
		return fmt.Sprintf("%s [I], V%X", name, x)
	case LDVM:
		return fmt.Sprintf("%s V%X, [I]", name, x)
	}

	return name
}
