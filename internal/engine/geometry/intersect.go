package geometry

import "github.com/go-gl/mathgl/mgl32"

const epsilon = 1e-6

// IntersectTriangle is the Möller-Trumbore ray/triangle test. It returns
// the distance along dir to the hit.
func IntersectTriangle(origin, dir, a, b, c mgl32.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if det > -epsilon && det < epsilon {
		return 0, false
	}
	inv := 1 / det
	s := origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < epsilon {
		return 0, false
	}
	return t, true
}

// Raycast returns the nearest hit of a local-space ray against the mesh.
func (m *Mesh) Raycast(origin, dir mgl32.Vec3) (float32, bool) {
	best := float32(0)
	hit := false
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.Positions[m.Indices[i]]
		b := m.Positions[m.Indices[i+1]]
		c := m.Positions[m.Indices[i+2]]
		if t, ok := IntersectTriangle(origin, dir, a, b, c); ok && (!hit || t < best) {
			best, hit = t, true
		}
	}
	return best, hit
}
