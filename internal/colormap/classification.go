package colormap

// classificationColor is one entry of the fixed classification code lookup.
type classificationColor struct {
	r, g, b uint8
}

// classificationColors follows the usual ASPRS class palette. Codes outside
// the table render in neutral gray so unexpected classes stay visible without
// dominating the scene.
var classificationColors = map[uint8]classificationColor{
	0:  {160, 160, 160}, // created, never classified
	1:  {211, 211, 211}, // unclassified
	2:  {139, 90, 43},   // ground
	3:  {144, 238, 144}, // low vegetation
	4:  {60, 179, 113},  // medium vegetation
	5:  {34, 139, 34},   // high vegetation
	6:  {178, 34, 34},   // building
	7:  {255, 105, 180}, // low point (noise)
	9:  {30, 144, 255},  // water
	10: {105, 105, 105}, // rail
	11: {90, 90, 90},    // road surface
	13: {255, 215, 0},   // wire guard
	14: {255, 165, 0},   // wire conductor
	15: {150, 75, 0},    // transmission tower
	17: {128, 0, 128},   // bridge deck
	18: {255, 0, 255},   // high noise
}

var classificationFallback = classificationColor{128, 128, 128}

// ClassificationColor looks up the fixed RGB triple for a class code.
func ClassificationColor(code uint8) (r, g, b uint8) {
	c, ok := classificationColors[code]
	if !ok {
		c = classificationFallback
	}
	return c.r, c.g, c.b
}
