// Package camera provides the orthographic corner camera used by the map viewer.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Orientations is the number of corner viewpoints.
const Orientations = 4

// Horizontal direction from the map center to each corner viewpoint.
// Each step turns the camera a quarter around the map.
var corners = [Orientations][2]float32{
	{-1, -1},
	{1, -1},
	{1, 1},
	{-1, 1},
}

// CornerCamera looks at a map center from one of four fixed corners.
type CornerCamera struct {
	// Point the camera looks at
	Center mgl32.Vec3

	// Placement
	Distance float32 // Horizontal offset along each axis
	Lift     float32 // Extra height above Distance for a steeper down-angle

	// Projection
	ViewSize float32 // Half the visible height in world units
	Near     float32
	Far      float32
	Aspect   float32

	orientation int
}

// New creates a corner camera at orientation 0.
func New(viewSize, distance, lift float32) *CornerCamera {
	return &CornerCamera{
		Distance: distance,
		Lift:     lift,
		ViewSize: viewSize,
		Near:     1,
		Far:      1000,
		Aspect:   1,
	}
}

// FrameGrid centers the camera on a width×height tile grid whose tiles sit
// at integer coordinates.
func (c *CornerCamera) FrameGrid(width, height int) {
	c.Center = mgl32.Vec3{float32(width-1) / 2, 0, float32(height-1) / 2}
}

// Orientation returns the current viewpoint index in [0, 4).
func (c *CornerCamera) Orientation() int {
	return c.orientation
}

// Rotate moves the camera step viewpoints around the map and returns the
// new orientation.
func (c *CornerCamera) Rotate(step int) int {
	c.orientation = ((c.orientation+step)%Orientations + Orientations) % Orientations
	return c.orientation
}

// Reset returns the camera to orientation 0.
func (c *CornerCamera) Reset() {
	c.orientation = 0
}

// SetAspect updates the projection aspect ratio (width / height).
func (c *CornerCamera) SetAspect(aspect float32) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// Position returns the camera position in world space.
func (c *CornerCamera) Position() mgl32.Vec3 {
	dir := corners[c.orientation]
	return c.Center.Add(mgl32.Vec3{dir[0] * c.Distance, c.Distance + c.Lift, dir[1] * c.Distance})
}

// Target returns the point the camera looks at.
func (c *CornerCamera) Target() mgl32.Vec3 {
	return c.Center
}

// ViewMatrix returns the view matrix for this camera.
func (c *CornerCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target(), mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the orthographic projection.
func (c *CornerCamera) ProjectionMatrix() mgl32.Mat4 {
	d := c.ViewSize
	return mgl32.Ortho(-d*c.Aspect, d*c.Aspect, -d, d, c.Near, c.Far)
}

// ViewProjection returns projection × view.
func (c *CornerCamera) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}
