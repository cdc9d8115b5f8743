// Package arena defines the battle map and team summary payloads served by
// the betting bot, along with the slope and surface tables used to read them.
package arena

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Tile is one cell of one map layer.
type Tile struct {
	X                  int     `json:"x"`
	Y                  int     `json:"y"`
	NoCursor           bool    `json:"no_cursor"`
	NoWalk             bool    `json:"no_walk"`
	Depth              int     `json:"depth"`
	Height             int     `json:"height"`
	SlopeType          *string `json:"slope_type"`
	SlopeTypeNumeric   int     `json:"slope_type_numeric"`
	SurfaceType        string  `json:"surface_type"`
	SurfaceTypeNumeric int     `json:"surface_type_numeric"`
	SlopeHeight        int     `json:"slope_height"`
}

// Top is the slab elevation of the tile, before slope.
func (t *Tile) Top() int {
	return t.Height + t.Depth
}

// Slope returns the tile's slope. A missing label falls back to the numeric
// code; anything unrecognized is flat.
func (t *Tile) Slope() Slope {
	if t.SlopeType != nil {
		return ParseSlope(*t.SlopeType)
	}
	if t.SlopeTypeNumeric > 0 && t.SlopeTypeNumeric <= 0xFF {
		return SlopeFromCode(uint8(t.SlopeTypeNumeric))
	}
	return SlopeFlat
}

// Surface returns the surface label, resolving the numeric code when the
// label is absent.
func (t *Tile) Surface() string {
	if t.SurfaceType != "" {
		return t.SurfaceType
	}
	if t.SurfaceTypeNumeric >= 0 && t.SurfaceTypeNumeric <= 0xFF {
		return SurfaceName(uint8(t.SurfaceTypeNumeric))
	}
	return ""
}

// Layer selects the lower or upper floor of a map.
type Layer int

const (
	Lower Layer = iota
	Upper
)

func (l Layer) String() string {
	if l == Upper {
		return "upper"
	}
	return "lower"
}

// Map is the payload of /map/{id}.
type Map struct {
	GNS               string             `json:"gns,omitempty"`
	Width             int                `json:"width"`
	Height            int                `json:"height"`
	Lower             [][]Tile           `json:"lower"`
	Upper             [][]Tile           `json:"upper"`
	SurfaceTypes      []string           `json:"surface_types,omitempty"`
	StartingLocations []StartingLocation `json:"starting_locations"`
}

// Tile returns the tile at grid (x, y) of a layer, or nil when out of range.
func (m *Map) Tile(layer Layer, x, y int) *Tile {
	grid := m.Lower
	if layer == Upper {
		grid = m.Upper
	}
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return nil
	}
	return &grid[y][x]
}

// ErrInvalidMap reports a map payload that fails the schema or grid shape.
var ErrInvalidMap = errors.New("invalid map")

// Team names used by starting locations.
const (
	TeamLeft  = "Player 1"
	TeamRight = "Player 2"
)

// StartingLocation places one roster unit on the map.
type StartingLocation struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Layer  bool   `json:"layer"`
	Team   string `json:"team"`
	Unit   int    `json:"unit"`
	Facing Facing `json:"facing"`
}

// MapLayer returns the layer the unit stands on.
func (s StartingLocation) MapLayer() Layer {
	if s.Layer {
		return Upper
	}
	return Lower
}

// Left reports whether the unit belongs to the left team.
func (s StartingLocation) Left() bool {
	return s.Team == TeamLeft
}

// Facing is the direction a unit faces at the start of a match.
type Facing uint8

const (
	North Facing = iota
	East
	South
	West
)

var facingNames = [...]string{North: "North", East: "East", South: "South", West: "West"}

func (f Facing) String() string {
	if int(f) < len(facingNames) {
		return facingNames[f]
	}
	return fmt.Sprintf("Facing(%d)", uint8(f))
}

// Index is the facing's position in the sprite rotation cycle:
// North=0, West=1, South=2, East=3.
func (f Facing) Index() int {
	switch f {
	case West:
		return 1
	case South:
		return 2
	case East:
		return 3
	default:
		return 0
	}
}

// ParseFacing accepts the facing names case-insensitively.
func ParseFacing(s string) (Facing, error) {
	for i, name := range facingNames {
		if strings.EqualFold(s, name) {
			return Facing(i), nil
		}
	}
	return North, fmt.Errorf("unknown facing %q", s)
}

func (f Facing) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *Facing) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("facing: %w", err)
	}
	parsed, err := ParseFacing(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
