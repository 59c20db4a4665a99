package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateNear(t *testing.T) {
	assert.Equal(t, 361.0, Degrees360.TranslateNear(1, 359))
	assert.Equal(t, -1.0, Degrees360.TranslateNear(359, 1))
	assert.Equal(t, 181.0, Degrees180.TranslateNear(1, 179))
	assert.InDelta(t, 2*math.Pi+0.1, Radians2Pi.TranslateNear(0.1, 2*math.Pi-0.1), 1e-12)
	// Normal quantities are never shifted.
	assert.Equal(t, 1.0, Normal.TranslateNear(1, 1e9))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, 0.0, Degrees360.Wrap(360))
	assert.Equal(t, 5.0, Degrees360.Wrap(725))
	assert.Equal(t, 359.0, Degrees360.Wrap(-1))
	assert.Equal(t, 1.0, Degrees180.Wrap(181))
	assert.InDelta(t, 0.5, RadiansPi.Wrap(math.Pi+0.5), 1e-12)
	assert.Equal(t, -42.0, Normal.Wrap(-42))
}

func TestParseCircularName(t *testing.T) {
	assert.Equal(t, Degrees360, ParseCircularName(" Degrees360 "))
	assert.Equal(t, RadiansPi, ParseCircularName("radianspi"))
	assert.Equal(t, Normal, ParseCircularName("unknown"))
}

func TestParseBCName(t *testing.T) {
	assert.Equal(t, BC_Internal, ParseBCName("Interior"))
	assert.Equal(t, BC_Land, ParseBCName("closed"))
	assert.Equal(t, BC_Land, ParseBCName("whatever"))
}
