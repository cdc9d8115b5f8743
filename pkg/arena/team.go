package arena

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GenderMonster marks roster units without gendered sprites.
const GenderMonster = "Monster"

// Unit is one roster entry of the team summary.
type Unit struct {
	Name   string `json:"name,omitempty"`
	Job    string `json:"job"`
	Gender string `json:"gender"`
	Sign   string `json:"sign,omitempty"`
	Brave  int    `json:"brave,omitempty"`
	Faith  int    `json:"faith,omitempty"`
}

// IsMonster reports whether the unit has no gendered sprite variant.
func (u Unit) IsMonster() bool {
	return strings.EqualFold(u.Gender, GenderMonster)
}

// TeamSummary is the payload of /team-summary.
type TeamSummary struct {
	Map            json.RawMessage `json:"map,omitempty"`
	LeftTeam       string          `json:"left_team"`
	RightTeam      string          `json:"right_team"`
	LeftTeamUnits  []Unit          `json:"left_team_units"`
	RightTeamUnits []Unit          `json:"right_team_units"`
}

// Resolve returns the roster unit and team name for a starting location's
// team and unit index.
func (s *TeamSummary) Resolve(team string, index int) (Unit, string, error) {
	var units []Unit
	var name string
	switch team {
	case TeamLeft:
		units, name = s.LeftTeamUnits, s.LeftTeam
	case TeamRight:
		units, name = s.RightTeamUnits, s.RightTeam
	default:
		return Unit{}, "", fmt.Errorf("unknown team %q", team)
	}
	if index < 0 || index >= len(units) {
		return Unit{}, "", fmt.Errorf("%s has no unit %d (roster of %d)", team, index, len(units))
	}
	return units[index], name, nil
}

// DecodeTeamSummary parses a /team-summary body.
func DecodeTeamSummary(data []byte) (*TeamSummary, error) {
	var s TeamSummary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode team summary: %w", err)
	}
	return &s, nil
}

// Team colors of the tournament, as 0xRRGGBB.
var teamColors = map[string]uint32{
	"red":      0xd9534f,
	"blue":     0x375a7f,
	"green":    0x00bc8c,
	"yellow":   0xf39c12,
	"white":    0xeeeeee,
	"black":    0x444444,
	"purple":   0x8e44ad,
	"brown":    0x8b5a2b,
	"champion": 0xffd700,
}

// TeamColor returns the display color for a team name. Unknown teams are white
// so sprites render untinted.
func TeamColor(team string) uint32 {
	if c, ok := teamColors[strings.ToLower(team)]; ok {
		return c
	}
	return 0xffffff
}
