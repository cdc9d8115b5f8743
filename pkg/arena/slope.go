package arena

import "strings"

// Slope classifies how a tile's top surface is tilted.
type Slope uint8

const (
	SlopeFlat Slope = iota
	SlopeInclineN
	SlopeInclineE
	SlopeInclineS
	SlopeInclineW
	SlopeConvexNE
	SlopeConvexSE
	SlopeConvexSW
	SlopeConvexNW
	SlopeConcaveNE
	SlopeConcaveSE
	SlopeConcaveSW
	SlopeConcaveNW
)

var slopeLabels = [...]string{
	SlopeFlat:      "Flat 0",
	SlopeInclineN:  "Incline N",
	SlopeInclineE:  "Incline E",
	SlopeInclineS:  "Incline S",
	SlopeInclineW:  "Incline W",
	SlopeConvexNE:  "Convex NE",
	SlopeConvexSE:  "Convex SE",
	SlopeConvexSW:  "Convex SW",
	SlopeConvexNW:  "Convex NW",
	SlopeConcaveNE: "Concave NE",
	SlopeConcaveSE: "Concave SE",
	SlopeConcaveSW: "Concave SW",
	SlopeConcaveNW: "Concave NW",
}

// Game data slope codes as exported by the map dump tool.
var slopeCodes = map[uint8]Slope{
	0x00: SlopeFlat,
	0x85: SlopeInclineN,
	0x52: SlopeInclineE,
	0x25: SlopeInclineS,
	0x58: SlopeInclineW,
	0x41: SlopeConvexNE,
	0x11: SlopeConvexSE,
	0x14: SlopeConvexSW,
	0x44: SlopeConvexNW,
	0x96: SlopeConcaveNE,
	0x66: SlopeConcaveSE,
	0x69: SlopeConcaveSW,
	0x99: SlopeConcaveNW,
}

var slopeByName map[string]Slope

func init() {
	slopeByName = make(map[string]Slope, len(slopeLabels)+1)
	for s, label := range slopeLabels {
		slopeByName[normalizeSlopeLabel(label)] = Slope(s)
	}
	slopeByName["flat"] = SlopeFlat
}

// normalizeSlopeLabel folds "Incline N", "incline-n" and "INCLINE_N" together.
func normalizeSlopeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.NewReplacer("-", " ", "_", " ").Replace(label)
	return strings.Join(strings.Fields(label), " ")
}

// ParseSlope maps a slope label to a Slope. Unknown labels are flat.
func ParseSlope(label string) Slope {
	if s, ok := slopeByName[normalizeSlopeLabel(label)]; ok {
		return s
	}
	return SlopeFlat
}

// SlopeFromCode maps a raw game slope code to a Slope. Unknown codes are flat.
func SlopeFromCode(code uint8) Slope {
	if s, ok := slopeCodes[code]; ok {
		return s
	}
	return SlopeFlat
}

// String returns the label used on the wire.
func (s Slope) String() string {
	if int(s) < len(slopeLabels) {
		return slopeLabels[s]
	}
	return slopeLabels[SlopeFlat]
}

// Corner is one of the four top corners of a tile, or an edge of corners.
type Corner uint8

const (
	CornerNE Corner = 1 << iota
	CornerSE
	CornerSW
	CornerNW
)

// Edge corner sets.
const (
	EdgeN = CornerNE | CornerNW
	EdgeE = CornerNE | CornerSE
	EdgeS = CornerSE | CornerSW
	EdgeW = CornerSW | CornerNW

	AllCorners = CornerNE | CornerSE | CornerSW | CornerNW
)

// Has reports whether every corner in other is set in c.
func (c Corner) Has(other Corner) bool {
	return c&other == other
}

// Raised returns the top corners lifted by slope_height.
// Incline raises an edge, convex one corner, concave every corner except the named one.
func (s Slope) Raised() Corner {
	switch s {
	case SlopeInclineN:
		return EdgeN
	case SlopeInclineE:
		return EdgeE
	case SlopeInclineS:
		return EdgeS
	case SlopeInclineW:
		return EdgeW
	case SlopeConvexNE:
		return CornerNE
	case SlopeConvexSE:
		return CornerSE
	case SlopeConvexSW:
		return CornerSW
	case SlopeConvexNW:
		return CornerNW
	case SlopeConcaveNE:
		return AllCorners &^ CornerNE
	case SlopeConcaveSE:
		return AllCorners &^ CornerSE
	case SlopeConcaveSW:
		return AllCorners &^ CornerSW
	case SlopeConcaveNW:
		return AllCorners &^ CornerNW
	default:
		return 0
	}
}
