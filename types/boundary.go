package types

import "strings"

// BCFlag is the integer boundary code carried by nodes and boundary
// faces. Code 0 marks interior nodes / internal faces; code 1 is
// reserved for land. Higher codes are user-assigned open boundaries.
type BCFlag int

const (
	BC_Internal BCFlag = iota
	BC_Land
)

// DeleteValue is the default sentinel marking "no data" in a sample
// array, matching the single-precision sentinel used by hydraulic
// simulation files.
const DeleteValue = 1e-35

var BCNameMap = map[string]BCFlag{
	"internal": BC_Internal,
	"interior": BC_Internal,
	"land":     BC_Land,
	"closed":   BC_Land,
}

// ParseBCName converts a boundary code name to a BCFlag,
// case-insensitively. Unknown names map to land, the conservative
// choice for a boundary.
func ParseBCName(name string) BCFlag {
	if bc, ok := BCNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return bc
	}
	return BC_Land
}

func (bc BCFlag) String() string {
	switch bc {
	case BC_Internal:
		return "Internal"
	case BC_Land:
		return "Land"
	}
	return "Open"
}
