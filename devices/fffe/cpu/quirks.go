package cpu

import "strings"

// Quirks selects between historically divergent opcode behaviours.
type Quirks struct {
	LogicResetsVF      bool // 8xy1, 8xy2 and 8xy3 set VF to 0.
	ShiftReadsVY       bool // 8xy6 and 8xyE shift Vy into Vx instead of shifting Vx in place.
	LoadStoreAdvancesI bool // Fx55 and Fx65 leave I pointing past the last byte transferred.
}

// Known quirk profiles.
var (
	COSMAC = Quirks{LogicResetsVF: true, ShiftReadsVY: true, LoadStoreAdvancesI: true}
	CHIP48 = Quirks{}
)

// QuirksByName returns the profile with the given name.
// Returns false if the name is not recognized.
func QuirksByName(name string) (Quirks, bool) {
	switch strings.ToLower(name) {
	case "", "cosmac":
		return COSMAC, true
	case "chip48":
		return CHIP48, true
	}
	return Quirks{}, false
}
