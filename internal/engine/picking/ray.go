// Package picking provides ray casting and tile picking for the map viewer.
package picking

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/birbbrains/arenaview/internal/engine/geometry"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// NDC converts pixel coordinates to normalized device coordinates in [-1, 1],
// with y pointing up.
func NDC(px, py float32, viewportW, viewportH int) (x, y float32) {
	x = 2*px/float32(viewportW) - 1
	y = 1 - 2*py/float32(viewportH) // Flip Y
	return x, y
}

// FromNDC unprojects a normalized device coordinate into a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func FromNDC(ndcX, ndcY float32, invViewProj mgl32.Mat4) Ray {
	near := invViewProj.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := invViewProj.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})

	// Perspective divide
	nearW, farW := near.Vec3(), far.Vec3()
	if near.W() != 0 {
		nearW = nearW.Mul(1 / near.W())
	}
	if far.W() != 0 {
		farW = farW.Mul(1 / far.W())
	}

	dir := farW.Sub(nearW)
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	return Ray{Origin: nearW, Direction: dir}
}

// ScreenToRay converts pixel coordinates to a world-space ray.
func ScreenToRay(px, py float32, viewportW, viewportH int, invViewProj mgl32.Mat4) Ray {
	x, y := NDC(px, py, viewportW, viewportH)
	return FromNDC(x, y, invViewProj)
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box geometry.Bounds) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Direction[axis]
		if d == 0 {
			if o < box.Min[axis] || o > box.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - o) / d
		t2 := (box.Max[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
