package interp

import (
	"strings"

	"github.com/oceanmesh/gomesh/types"
)

// ChopMode selects how the undefined sub-region of a bilinear cell
// with deleted corners is shaped.
type ChopMode uint8

const (
	// ChopAbrupt marks the target undefined whenever its nearest
	// corner (coordinate rounding at 0.5) is deleted, chopping the
	// cell into quadrants.
	ChopAbrupt ChopMode = iota
	// ChopSmoothed shrinks the undefined region to the diagonal
	// triangle cut off at half the distance to the deleted corner, so
	// the surviving corners blend across more of the cell.
	ChopSmoothed
)

var ChopNameMap = map[string]ChopMode{
	"abrupt":   ChopAbrupt,
	"smoothed": ChopSmoothed,
	"smooth":   ChopSmoothed,
}

// ParseChopName converts a chop mode name to a ChopMode. Unknown names
// map to ChopAbrupt.
func ParseChopName(name string) ChopMode {
	if cm, ok := ChopNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return cm
	}
	return ChopAbrupt
}

func (cm ChopMode) String() string {
	if cm == ChopSmoothed {
		return "Smoothed"
	}
	return "Abrupt"
}

// bilinearValue interpolates a quadrilateral cell at local coordinates
// (dx,dy) in [0,1]^2 from corner values z, ordered counter-clockwise
// from the (0,0) corner: z[0]@(0,0), z[1]@(1,0), z[2]@(1,1), z[3]@(0,1).
//
// Corners equal to deleteValue define, per chop mode, an exact
// undefined sub-region of the cell in which the result is deleteValue;
// elsewhere the bilinear weights of the surviving corners are
// renormalized. All 16 corner-flag combinations reduce to this rule;
// with no deleted corner it is plain bilinear interpolation.
func bilinearValue(z [4]float64, dx, dy, deleteValue float64, chop ChopMode, circular types.CircularType) float64 {
	var deleted [4]bool
	nDeleted := 0
	for i, v := range z {
		if v == deleteValue {
			deleted[i] = true
			nDeleted++
		}
	}
	if nDeleted == 4 {
		return deleteValue
	}
	if nDeleted > 0 && inUndefinedRegion(deleted, dx, dy, chop) {
		return deleteValue
	}
	var (
		w       = [4]float64{(1 - dx) * (1 - dy), dx * (1 - dy), dx * dy, (1 - dx) * dy}
		ref     float64
		haveRef bool
		sum     float64
		wsum    float64
	)
	for i, v := range z {
		if deleted[i] {
			continue
		}
		if !haveRef {
			ref = v
			haveRef = true
		}
		sum += w[i] * circular.TranslateNear(v, ref)
		wsum += w[i]
	}
	if wsum <= 0 {
		return deleteValue
	}
	return circular.Wrap(sum / wsum)
}

func inUndefinedRegion(deleted [4]bool, dx, dy float64, chop ChopMode) bool {
	if chop == ChopAbrupt {
		corner := 0
		switch {
		case dx > 0.5 && dy <= 0.5:
			corner = 1
		case dx > 0.5 && dy > 0.5:
			corner = 2
		case dx <= 0.5 && dy > 0.5:
			corner = 3
		}
		return deleted[corner]
	}
	// Smoothed: half-plane cut at half the corner's diagonal distance.
	switch {
	case deleted[0] && dx+dy < 0.5:
		return true
	case deleted[1] && (1-dx)+dy < 0.5:
		return true
	case deleted[2] && (1-dx)+(1-dy) < 0.5:
		return true
	case deleted[3] && dx+(1-dy) < 0.5:
		return true
	}
	return false
}
