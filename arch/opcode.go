// Package arch defines the system's instruction set along with
// some related helper functions.
package arch

// Known opcodes.
const (
	CLS  = iota // 00E0
	RET         // 00EE
	JP          // 1nnn
	CALL        // 2nnn
	SE          // 3xkk
	SNE         // 4xkk
	SEV         // 5xy0
	LD          // 6xkk
	ADD         // 7xkk

	LDV  // 8xy0
	OR   // 8xy1
	AND  // 8xy2
	XOR  // 8xy3
	ADDV // 8xy4
	SUB  // 8xy5
	SHR  // 8xy6
	SUBN // 8xy7
	SHL  // 8xyE
	SNEV // 9xy0

	LDI  // Annn
	JPV0 // Bnnn
	RND  // Cxkk
	DRW  // Dxyn
	SKP  // Ex9E
	SKNP // ExA1

	LDVDT // Fx07
	LDK   // Fx0A
	LDDT  // Fx15
	LDST  // Fx18
	ADDI  // Fx1E
	LDF   // Fx29
	LDB   // Fx33
	LDMV  // Fx55
	LDVM  // Fx65

	opcodeCount
)

// pattern maps a masked instruction word onto an opcode.
type pattern struct {
	mask   int
	value  int
	opcode int
}

// patterns is indexed by the top nibble of an instruction word.
// 5xy_ and 9xy_ ignore the low nibble.
var patterns = [16][]pattern{
	0x0: {{0xf0ff, 0x00e0, CLS}, {0xf0ff, 0x00ee, RET}},
	0x1: {{0xf000, 0x1000, JP}},
	0x2: {{0xf000, 0x2000, CALL}},
	0x3: {{0xf000, 0x3000, SE}},
	0x4: {{0xf000, 0x4000, SNE}},
	0x5: {{0xf000, 0x5000, SEV}},
	0x6: {{0xf000, 0x6000, LD}},
	0x7: {{0xf000, 0x7000, ADD}},
	0x8: {
		{0xf00f, 0x8000, LDV},
		{0xf00f, 0x8001, OR},
		{0xf00f, 0x8002, AND},
		{0xf00f, 0x8003, XOR},
		{0xf00f, 0x8004, ADDV},
		{0xf00f, 0x8005, SUB},
		{0xf00f, 0x8006, SHR},
		{0xf00f, 0x8007, SUBN},
		{0xf00f, 0x800e, SHL},
	},
	0x9: {{0xf000, 0x9000, SNEV}},
	0xa: {{0xf000, 0xa000, LDI}},
	0xb: {{0xf000, 0xb000, JPV0}},
	0xc: {{0xf000, 0xc000, RND}},
	0xd: {{0xf000, 0xd000, DRW}},
	0xe: {{0xf0ff, 0xe09e, SKP}, {0xf0ff, 0xe0a1, SKNP}},
	0xf: {
		{0xf0ff, 0xf007, LDVDT},
		{0xf0ff, 0xf00a, LDK},
		{0xf0ff, 0xf015, LDDT},
		{0xf0ff, 0xf018, LDST},
		{0xf0ff, 0xf01e, ADDI},
		{0xf0ff, 0xf029, LDF},
		{0xf0ff, 0xf033, LDB},
		{0xf0ff, 0xf055, LDMV},
		{0xf0ff, 0xf065, LDVM},
	},
}

// Decode returns the opcode for the given 16-bit instruction word.
// Returns false if the word has no defined meaning.
func Decode(word int) (int, bool) {
	word &= 0xffff
	for _, p := range patterns[word>>12] {
		if word&p.mask == p.value {
			return p.opcode, true
		}
	}
	return 0, false
}

// Name returns the mnemonic for the given opcode.
// Returns false if the opcode is not recognized.
func Name(opcode int) (string, bool) {
	switch opcode {
	case CLS:
		return "CLS", true
	case RET:
		return "RET", true
	case JP, JPV0:
		return "JP", true
	case CALL:
		return "CALL", true
	case SE, SEV:
		return "SE", true
	case SNE, SNEV:
		return "SNE", true
	case LD, LDV, LDI, LDVDT, LDK, LDDT, LDST, LDF, LDB, LDMV, LDVM:
		return "LD", true
	case ADD, ADDV, ADDI:
		return "ADD", true
	case OR:
		return "OR", true
	case AND:
		return "AND", true
	case XOR:
		return "XOR", true
	case SUB:
		return "SUB", true
	case SHR:
		return "SHR", true
	case SUBN:
		return "SUBN", true
	case SHL:
		return "SHL", true
	case RND:
		return "RND", true
	case DRW:
		return "DRW", true
	case SKP:
		return "SKP", true
	case SKNP:
		return "SKNP", true
	}
	return "", false
}

// Count returns the number of known opcodes.
func Count() int {
	return opcodeCount
}
