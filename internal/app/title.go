package app

import (
	"fmt"
	"strings"

	"github.com/birbbrains/arenaview/internal/viewer"
)

// status is what the window title reports.
type status struct {
	mapID   int
	live    bool
	err     error
	hover   viewer.Hover
	hovered bool
}

func formatTitle(s status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - map %d", windowTitle, s.mapID)
	switch {
	case s.err != nil:
		fmt.Fprintf(&b, " (error: %v)", s.err)
	case !s.live:
		b.WriteString(" (loading)")
	}
	if s.hovered {
		h := s.hover
		fmt.Fprintf(&b, " | (%d,%d) %s %s h%d", h.Tile.X, h.Tile.Y, h.Layer, h.Surface, h.Height)
		if h.Tile.SlopeHeight > 0 {
			fmt.Fprintf(&b, " %s+%d", h.Tile.Slope(), h.Tile.SlopeHeight)
		}
		if !h.Walkable {
			b.WriteString(" no-walk")
		}
	}
	return b.String()
}
