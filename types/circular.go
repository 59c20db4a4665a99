package types

import (
	"math"
	"strings"
)

// CircularType classifies a scalar quantity as linear or as an angle
// measured modulo a period. Angular quantities must be translated to
// within half a period of a common reference before they can be
// averaged, then wrapped back into their canonical range.
type CircularType uint8

const (
	Normal CircularType = iota
	Degrees180
	Degrees360
	RadiansPi
	Radians2Pi
)

var CircularNameMap = map[string]CircularType{
	"normal":     Normal,
	"degrees180": Degrees180,
	"degrees360": Degrees360,
	"radianspi":  RadiansPi,
	"radians2pi": Radians2Pi,
}

// ParseCircularName converts a circular type name to a CircularType.
// Unknown names map to Normal.
func ParseCircularName(name string) CircularType {
	if ct, ok := CircularNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return ct
	}
	return Normal
}

func (ct CircularType) String() string {
	switch ct {
	case Degrees180:
		return "Degrees180"
	case Degrees360:
		return "Degrees360"
	case RadiansPi:
		return "RadiansPi"
	case Radians2Pi:
		return "Radians2Pi"
	}
	return "Normal"
}

// Period returns the modulus of the quantity, 0 for Normal.
func (ct CircularType) Period() (period float64) {
	switch ct {
	case Degrees180:
		period = 180
	case Degrees360:
		period = 360
	case RadiansPi:
		period = math.Pi
	case Radians2Pi:
		period = 2 * math.Pi
	}
	return
}

// TranslateNear shifts v by whole periods so that it lies within half a
// period of ref. For Normal quantities v is returned unchanged.
func (ct CircularType) TranslateNear(v, ref float64) float64 {
	period := ct.Period()
	if period == 0 {
		return v
	}
	for v-ref > period/2 {
		v -= period
	}
	for v-ref < -period/2 {
		v += period
	}
	return v
}

// Wrap maps v into the canonical range [0, period). For Normal
// quantities v is returned unchanged.
func (ct CircularType) Wrap(v float64) float64 {
	period := ct.Period()
	if period == 0 {
		return v
	}
	v = math.Mod(v, period)
	if v < 0 {
		v += period
	}
	return v
}
