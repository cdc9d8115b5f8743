package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRotateIsCyclic(t *testing.T) {
	c := New(10, 10, 2)
	c.FrameGrid(9, 11)
	startPos, startTarget := c.Position(), c.Target()

	for i := 1; i <= 4; i++ {
		got := c.Rotate(1)
		if got != i%4 {
			t.Errorf("after %d rotations orientation = %d", i, got)
		}
		if i < 4 && c.Position().ApproxEqual(startPos) {
			t.Errorf("rotation %d did not move the camera", i)
		}
	}
	if !c.Position().ApproxEqualThreshold(startPos, 1e-5) || !c.Target().ApproxEqualThreshold(startTarget, 1e-5) {
		t.Errorf("four rotations moved camera from %v to %v", startPos, c.Position())
	}
}

func TestRotateNegative(t *testing.T) {
	c := New(10, 10, 2)
	if got := c.Rotate(-1); got != 3 {
		t.Errorf("rotate(-1) from 0 = %d, want 3", got)
	}
	if got := c.Rotate(-6); got != 1 {
		t.Errorf("rotate(-6) from 3 = %d, want 1", got)
	}
	c.Reset()
	if c.Orientation() != 0 {
		t.Error("reset should return to orientation 0")
	}
}

func TestCornersAreEquidistant(t *testing.T) {
	c := New(10, 10, 2)
	c.FrameGrid(5, 5)
	if c.Center != (mgl32.Vec3{2, 0, 2}) {
		t.Fatalf("center = %v", c.Center)
	}
	want := c.Position().Sub(c.Center).Len()
	for i := 0; i < 4; i++ {
		pos := c.Position()
		if !mgl32.FloatEqualThreshold(pos.Sub(c.Center).Len(), want, 1e-4) {
			t.Errorf("orientation %d at distance %f, want %f", i, pos.Sub(c.Center).Len(), want)
		}
		if pos.Y() != 12 {
			t.Errorf("orientation %d height = %f, want 12", i, pos.Y())
		}
		c.Rotate(1)
	}
}

func TestViewProjectionMapsCenterToOrigin(t *testing.T) {
	c := New(10, 10, 2)
	c.FrameGrid(8, 8)
	c.SetAspect(16.0 / 9.0)
	for i := 0; i < 4; i++ {
		clip := c.ViewProjection().Mul4x1(c.Center.Vec4(1))
		if math.Abs(float64(clip.X())) > 1e-4 || math.Abs(float64(clip.Y())) > 1e-4 {
			t.Errorf("orientation %d: center projects to %v", i, clip)
		}
		c.Rotate(1)
	}
}

func TestSetAspectIgnoresInvalid(t *testing.T) {
	c := New(10, 10, 2)
	c.SetAspect(2)
	c.SetAspect(0)
	c.SetAspect(-1)
	if c.Aspect != 2 {
		t.Errorf("aspect = %f, want 2", c.Aspect)
	}
	p := c.ProjectionMatrix()
	// Ortho x scale is 2/(right-left) = 1/(d*aspect).
	if !mgl32.FloatEqualThreshold(p.At(0, 0), 1.0/20, 1e-6) {
		t.Errorf("projection x scale = %f", p.At(0, 0))
	}
}
