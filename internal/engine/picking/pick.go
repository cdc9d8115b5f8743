package picking

import (
	"github.com/birbbrains/arenaview/internal/engine/scene"
	"github.com/birbbrains/arenaview/pkg/arena"
)

// Hit is the nearest tagged mesh under a ray.
type Hit struct {
	Mesh     *scene.Mesh
	Tile     *arena.Tile
	Distance float32
}

// Pick returns the nearest mesh along the ray that carries a tile. Meshes
// without a tile are ignored. It reports false when nothing tagged is hit or
// the scene is nil.
func Pick(s *scene.Scene, r Ray) (Hit, bool) {
	var best Hit
	found := false
	if s == nil {
		return best, false
	}
	for _, m := range s.Meshes() {
		tile := s.TileOf(m.ID)
		if tile == nil || m.Local == nil {
			continue
		}
		if t, ok := r.IntersectAABB(m.Bounds()); !ok || (found && t > best.Distance) {
			continue
		}
		// Meshes are only translated, so move the ray into local space.
		t, ok := m.Local.Raycast(r.Origin.Sub(m.Position), r.Direction)
		if !ok || (found && t >= best.Distance) {
			continue
		}
		best = Hit{Mesh: m, Tile: tile, Distance: t}
		found = true
	}
	return best, found
}
