package interp

import "github.com/oceanmesh/gomesh/types"

// blendValues computes the weighted average of values, excluding
// samples equal to deleteValue from both the sum and the normalizing
// denominator. When the dominant sample (the largest weight, above
// 0.5) is itself deleted the result is deleteValue: the blend must not
// extrapolate across a hard data void. Circular quantities are
// translated to within half a period of the first valid sample before
// averaging and the result wrapped back into canonical range.
//
// Weights are assumed normalized to sum to 1.
func blendValues(values, weights []float64, deleteValue float64, circular types.CircularType) float64 {
	var (
		ref       float64
		haveRef   bool
		maxW      = -1.0
		maxWDel   bool
		sum, wsum float64
	)
	for i, v := range values {
		w := weights[i]
		if w <= 0 {
			continue
		}
		if w > maxW {
			maxW = w
			maxWDel = v == deleteValue
		}
		if v == deleteValue {
			continue
		}
		if !haveRef {
			ref = v
			haveRef = true
		}
		sum += w * circular.TranslateNear(v, ref)
		wsum += w
	}
	if !haveRef || wsum <= 0 {
		return deleteValue
	}
	if maxWDel && maxW > 0.5 {
		return deleteValue
	}
	return circular.Wrap(sum / wsum)
}
