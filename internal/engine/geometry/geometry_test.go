package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/birbbrains/arenaview/pkg/arena"
)

const h = 0.25

func slopedTile(label string, slopeHeight int) *arena.Tile {
	return &arena.Tile{Height: 2, SlopeType: &label, SlopeHeight: slopeHeight}
}

// raisedCorners reads back which top corners of a mesh sit above the flat top.
func raisedCorners(t *testing.T, m *Mesh) arena.Corner {
	t.Helper()
	var raised arena.Corner
	for _, p := range m.Positions {
		if p.Y() <= h/2+1e-5 {
			continue
		}
		for _, c := range topCorners {
			sx, sz := CornerXZ(c)
			if p.X()*sx > 0 && p.Z()*sz > 0 {
				raised |= c
			}
		}
	}
	return raised
}

func TestSurfaceRaisesExactlyTheNamedCorners(t *testing.T) {
	tests := []struct {
		label string
		want  arena.Corner
	}{
		{"Flat 0", 0},
		{"Incline N", arena.CornerNE | arena.CornerNW},
		{"Incline E", arena.CornerNE | arena.CornerSE},
		{"Incline S", arena.CornerSE | arena.CornerSW},
		{"Incline W", arena.CornerSW | arena.CornerNW},
		{"Convex NE", arena.CornerNE},
		{"Convex SE", arena.CornerSE},
		{"Convex SW", arena.CornerSW},
		{"Convex NW", arena.CornerNW},
		{"Concave NE", arena.CornerSE | arena.CornerSW | arena.CornerNW},
		{"Concave SE", arena.CornerNE | arena.CornerSW | arena.CornerNW},
		{"Concave SW", arena.CornerNE | arena.CornerSE | arena.CornerNW},
		{"Concave NW", arena.CornerNE | arena.CornerSE | arena.CornerSW},
		{"Mystery", 0},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			m := Surface(slopedTile(tt.label, 2), h)
			if got := raisedCorners(t, m); got != tt.want {
				t.Errorf("raised %04b, want %04b", got, tt.want)
			}
			for _, p := range m.Positions {
				if y := p.Y(); y > h/2+1e-5 && mgl32.Abs(y-(h/2+2*2*h)) > 1e-5 {
					t.Errorf("raised corner at y=%f, want %f", y, h/2+2*2*h)
				}
			}
		})
	}
}

func TestSurfaceWithoutSlopeData(t *testing.T) {
	m := Surface(&arena.Tile{Height: 3, SlopeHeight: 4}, h)
	if got := raisedCorners(t, m); got != 0 {
		t.Errorf("missing slope type raised %04b", got)
	}
}

func TestBoxShape(t *testing.T) {
	m := Box(1, 2, 1)
	if len(m.Positions) != 24 || len(m.Indices) != 36 || len(m.Normals) != 24 {
		t.Fatalf("got %d positions, %d indices, %d normals", len(m.Positions), len(m.Indices), len(m.Normals))
	}
	b := m.Bounds()
	if b.Min != (mgl32.Vec3{-0.5, -1, -0.5}) || b.Max != (mgl32.Vec3{0.5, 1, 0.5}) {
		t.Errorf("bounds = %+v", b)
	}
	if got := len(m.Interleaved()); got != 24*6 {
		t.Errorf("interleaved length = %d", got)
	}
}

func TestNormalsPointOutward(t *testing.T) {
	m := Box(1, 1, 1)
	for i, p := range m.Positions {
		n := m.Normals[i]
		if !mgl32.FloatEqualThreshold(n.Len(), 1, 1e-5) {
			t.Fatalf("normal %d not unit: %v", i, n)
		}
		// Each face normal points along the axis the vertex sits at the extreme of.
		if n.Dot(p) <= 0 {
			t.Errorf("normal %v at %v points inward", n, p)
		}
	}
}

func TestInclineTiltsTopNormal(t *testing.T) {
	m := Surface(slopedTile("Incline N", 2), h)
	// Top face is the third quad.
	n := m.Normals[8]
	if n.Y() <= 0 || n.Y() >= 0.999 {
		t.Errorf("incline top normal should tilt, got %v", n)
	}
	// Raised north edge (-Z) tilts the normal toward +Z.
	if n.Z() <= 0 {
		t.Errorf("expected normal to lean south, got %v", n)
	}
}

func TestRaycast(t *testing.T) {
	m := Box(1, 1, 1)
	down := mgl32.Vec3{0, -1, 0}

	d, ok := m.Raycast(mgl32.Vec3{0.1, 5, 0.2}, down)
	if !ok || !mgl32.FloatEqualThreshold(d, 4.5, 1e-5) {
		t.Errorf("hit = %v at %f, want 4.5", ok, d)
	}
	if _, ok := m.Raycast(mgl32.Vec3{2, 5, 0}, down); ok {
		t.Error("ray beside the box should miss")
	}
	if _, ok := m.Raycast(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, 1, 0}); ok {
		t.Error("ray pointing away should miss")
	}
}

func TestBoundsTranslate(t *testing.T) {
	b := Box(1, 1, 1).Bounds().Translate(mgl32.Vec3{3, 1, 2})
	if b.Min != (mgl32.Vec3{2.5, 0.5, 1.5}) || b.Max != (mgl32.Vec3{3.5, 1.5, 2.5}) {
		t.Errorf("translated bounds = %+v", b)
	}
}
