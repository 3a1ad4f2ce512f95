package arch

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		word   int
		opcode int
	}{
		{0x00e0, CLS},
		{0x00ee, RET},
		{0x1abc, JP},
		{0x2206, CALL},
		{0x3a12, SE},
		{0x4a12, SNE},
		{0x5ab0, SEV},
		{0x5ab3, SEV},
		{0x6acc, LD},
		{0x7a01, ADD},
		{0x8ab0, LDV},
		{0x8ab1, OR},
		{0x8ab2, AND},
		{0x8ab3, XOR},
		{0x8ab4, ADDV},
		{0x8ab5, SUB},
		{0x8ab6, SHR},
		{0x8ab7, SUBN},
		{0x8abe, SHL},
		{0x9ab0, SNEV},
		{0xa12c, LDI},
		{0xb200, JPV0},
		{0xc3ff, RND},
		{0xd125, DRW},
		{0xe19e, SKP},
		{0xe1a1, SKNP},
		{0xf107, LDVDT},
		{0xfc0a, LDK},
		{0xf515, LDDT},
		{0xf518, LDST},
		{0xf11e, ADDI},
		{0xf129, LDF},
		{0xf133, LDB},
		{0xf355, LDMV},
		{0xf365, LDVM},
	}

	for _, tt := range tests {
		opcode, ok := Decode(tt.word)
		if !ok {
			t.Fatalf("word %04x: expected a known opcode", tt.word)
		}
		assert.Equal(t, tt.opcode, opcode)
	}

	assert.Equal(t, Count(), len(tests)-1)
}

func TestDecodeUnknown(t *testing.T) {
	for _, word := range []int{0x0000, 0x0123, 0x8ab8, 0x8abf, 0xe19f, 0xf1ff, 0xf100} {
		if _, ok := Decode(word); ok {
			t.Fatalf("word %04x: expected decode failure", word)
		}
	}
}

func TestName(t *testing.T) {
	for op := 0; op < Count(); op++ {
		if _, ok := Name(op); !ok {
			t.Fatalf("opcode %d has no name", op)
		}
	}

	if _, ok := Name(Count()); ok {
		t.Fatalf("expected no name for opcode %d", Count())
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		word int
		want string
	}{
		{0x00e0, "CLS"},
		{0x1abc, "JP $ABC"},
		{0xb200, "JP V0, $200"},
		{0x6acc, "LD VA, $CC"},
		{0x8ab4, "ADD VA, VB"},
		{0xa12c, "LD I, $12C"},
		{0xd125, "DRW V1, V2, $5"},
		{0xe19e, "SKP V1"},
		{0xfc0a, "LD VC, K"},
		{0xf355, "LD [I], V3"},
		{0xf365, "LD V3, [I]"},
		{0x0123, "DW $0123"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.word))
	}
}

func TestRegisters(t *testing.T) {
	for n := 0; n < RegisterCount; n++ {
		name := RegisterName(n)
		assert.Equal(t, n, RegisterIndex(name))
	}

	assert.Equal(t, "VF", RegisterName(FlagRegister))
	assert.Equal(t, "", RegisterName(16))
	assert.Equal(t, -1, RegisterIndex("R0"))
	assert.Equal(t, -1, RegisterIndex("VG"))

	if !IsRegister("va") {
		t.Fatalf("expected va to be a register")
	}
}
