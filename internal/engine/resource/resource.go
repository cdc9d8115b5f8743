// Package resource tracks GPU-backed objects so that a scene can be torn
// down without leaking or double-freeing anything.
package resource

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/birbbrains/arenaview/internal/engine/geometry"
)

// Kind is the type of a device resource.
type Kind uint8

const (
	KindGeometry Kind = iota
	KindMaterial
	KindTexture
)

func (k Kind) String() string {
	switch k {
	case KindGeometry:
		return "geometry"
	case KindMaterial:
		return "material"
	case KindTexture:
		return "texture"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Handle names one device resource.
type Handle struct {
	Kind Kind
	ID   uint32
}

// Material describes how a mesh is shaded.
type Material struct {
	Color   mgl32.Vec3
	Opacity float32
	// Lit materials use Lambert shading; unlit ones draw their flat color.
	Lit bool
}

// Transparent reports whether the material needs blending.
func (m Material) Transparent() bool {
	return m.Opacity < 1
}

// Device allocates and frees GPU objects.
type Device interface {
	CreateGeometry(m *geometry.Mesh) (Handle, error)
	CreateMaterial(m Material) (Handle, error)
	CreateTexture(img *image.RGBA) (Handle, error)
	Release(h Handle)
}

// Stats counts allocations and releases made through an arena.
type Stats struct {
	Allocated int
	Released  int
}

// Live is the number of resources not yet released.
func (s Stats) Live() int {
	return s.Allocated - s.Released
}

// Arena registers every handle at creation and frees them together.
type Arena struct {
	dev     Device
	handles []Handle
	stats   Stats
}

// NewArena creates an arena allocating from dev.
func NewArena(dev Device) *Arena {
	return &Arena{dev: dev}
}

// Geometry uploads a mesh.
func (a *Arena) Geometry(m *geometry.Mesh) (Handle, error) {
	h, err := a.dev.CreateGeometry(m)
	if err != nil {
		return Handle{}, fmt.Errorf("create geometry: %w", err)
	}
	a.track(h)
	return h, nil
}

// Material creates a material.
func (a *Arena) Material(m Material) (Handle, error) {
	h, err := a.dev.CreateMaterial(m)
	if err != nil {
		return Handle{}, fmt.Errorf("create material: %w", err)
	}
	a.track(h)
	return h, nil
}

// Texture uploads an image.
func (a *Arena) Texture(img *image.RGBA) (Handle, error) {
	h, err := a.dev.CreateTexture(img)
	if err != nil {
		return Handle{}, fmt.Errorf("create texture: %w", err)
	}
	a.track(h)
	return h, nil
}

func (a *Arena) track(h Handle) {
	a.handles = append(a.handles, h)
	a.stats.Allocated++
}

// Release frees every registered handle once, newest first, and empties
// the arena. Calling it again is a no-op until more handles are created.
func (a *Arena) Release() {
	for i := len(a.handles) - 1; i >= 0; i-- {
		a.dev.Release(a.handles[i])
		a.stats.Released++
	}
	a.handles = a.handles[:0]
}

// Len is the number of handles currently registered.
func (a *Arena) Len() int {
	return len(a.handles)
}

// Stats returns lifetime counters.
func (a *Arena) Stats() Stats {
	return a.stats
}
