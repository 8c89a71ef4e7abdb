package colormap

import (
	"fmt"
	"math"
	"strings"
)

// Ramp is a pure function from a normalized scalar in [0,1] to an RGB triple.
// Inputs outside the interval are clamped.
type Ramp func(t float64) (r, g, b uint8)

type rampAnchor struct {
	r, g, b float64
}

// anchorRamp builds a Ramp that linearly interpolates between evenly spaced
// color anchors.
func anchorRamp(anchors []rampAnchor) Ramp {
	return func(t float64) (uint8, uint8, uint8) {
		t = clamp01(t)
		scaled := t * float64(len(anchors)-1)
		lo := int(math.Floor(scaled))
		if lo >= len(anchors)-1 {
			last := anchors[len(anchors)-1]
			return uint8(math.Round(last.r)), uint8(math.Round(last.g)), uint8(math.Round(last.b))
		}
		frac := scaled - float64(lo)
		a, b := anchors[lo], anchors[lo+1]
		return uint8(math.Round(a.r + (b.r-a.r)*frac)),
			uint8(math.Round(a.g + (b.g-a.g)*frac)),
			uint8(math.Round(a.b + (b.b-a.b)*frac))
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Viridis is the perceptually uniform default ramp.
var Viridis = anchorRamp([]rampAnchor{
	{68, 1, 84},
	{71, 44, 122},
	{59, 81, 139},
	{44, 113, 142},
	{33, 144, 141},
	{39, 173, 129},
	{92, 200, 99},
	{170, 220, 50},
	{253, 231, 37},
})

// Coolwarm is a diverging ramp with a neutral midpoint, suited to fields
// centered on a reference value.
var Coolwarm = anchorRamp([]rampAnchor{
	{59, 76, 192},
	{124, 159, 249},
	{192, 212, 245},
	{221, 221, 221},
	{245, 196, 173},
	{237, 132, 103},
	{180, 4, 38},
})

// Rainbow is the classic blue-to-red spectral ramp.
var Rainbow = anchorRamp([]rampAnchor{
	{0, 0, 255},
	{0, 255, 255},
	{0, 255, 0},
	{255, 255, 0},
	{255, 0, 0},
})

// Grayscale maps 0 to black and 1 to white.
var Grayscale = func(t float64) (uint8, uint8, uint8) {
	v := uint8(math.Round(clamp01(t) * 255))
	return v, v, v
}

// RampByName resolves a ramp from its command line / config name.
func RampByName(name string) (Ramp, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "viridis":
		return Viridis, nil
	case "coolwarm":
		return Coolwarm, nil
	case "rainbow":
		return Rainbow, nil
	case "grayscale", "gray":
		return Grayscale, nil
	}
	return nil, fmt.Errorf("unknown color ramp %q, must be one of viridis, coolwarm, rainbow, grayscale", name)
}
