// Package scene holds the renderable state of one displayed map: tile
// meshes, unit sprites and lights.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/birbbrains/arenaview/internal/engine/geometry"
	"github.com/birbbrains/arenaview/internal/engine/palette"
	"github.com/birbbrains/arenaview/internal/engine/resource"
	"github.com/birbbrains/arenaview/pkg/arena"
)

// MeshID identifies a mesh within its scene.
type MeshID uint32

// Mesh is one placed geometry/material pair.
type Mesh struct {
	ID       MeshID
	Geometry resource.Handle
	Material resource.Handle
	Position mgl32.Vec3

	// Local is the CPU copy of the geometry, used for picking.
	Local       *geometry.Mesh
	Color       mgl32.Vec3
	Opacity     float32
	Transparent bool
}

// Bounds returns the mesh's world-space bounding box.
func (m *Mesh) Bounds() geometry.Bounds {
	return m.Local.Bounds().Translate(m.Position)
}

// Sprite is a camera-facing textured quad.
type Sprite struct {
	Texture  resource.Handle
	Position mgl32.Vec3
	// Scale is the world size of the quad.
	Scale mgl32.Vec2
	FlipX bool
	Tint  mgl32.Vec3
}

// LightKind distinguishes ambient from directional lights.
type LightKind uint8

const (
	Ambient LightKind = iota
	Directional
)

// Light is a scene light. Position is only used by directional lights,
// which shine from Position toward the origin.
type Light struct {
	Kind      LightKind
	Color     mgl32.Vec3
	Intensity float32
	Position  mgl32.Vec3
}

// Scene is the set of objects drawn for one map.
type Scene struct {
	Background mgl32.Vec3
	Lights     []Light

	meshes  []*Mesh
	sprites []*Sprite
	tiles   map[MeshID]*arena.Tile
	nextID  MeshID
}

// New creates an empty scene with a 0xRRGGBB background.
func New(background uint32) *Scene {
	return &Scene{
		Background: palette.RGB(background),
		tiles:      make(map[MeshID]*arena.Tile),
	}
}

// AddAmbient adds an ambient light.
func (s *Scene) AddAmbient(color uint32) {
	s.Lights = append(s.Lights, Light{Kind: Ambient, Color: palette.RGB(color), Intensity: 1})
}

// AddDirectional adds a directional light shining from pos.
func (s *Scene) AddDirectional(color uint32, intensity float32, pos mgl32.Vec3) {
	s.Lights = append(s.Lights, Light{Kind: Directional, Color: palette.RGB(color), Intensity: intensity, Position: pos})
}

// AddMesh places a mesh and returns it.
func (s *Scene) AddMesh(m Mesh) *Mesh {
	s.nextID++
	m.ID = s.nextID
	mesh := &m
	s.meshes = append(s.meshes, mesh)
	return mesh
}

// Tag records the tile a mesh was built from.
func (s *Scene) Tag(id MeshID, tile *arena.Tile) {
	s.tiles[id] = tile
}

// TileOf returns the tile tagged on a mesh, or nil.
func (s *Scene) TileOf(id MeshID) *arena.Tile {
	return s.tiles[id]
}

// Tagged is the number of meshes carrying a tile.
func (s *Scene) Tagged() int {
	return len(s.tiles)
}

// Meshes returns every mesh in insertion order.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

// AddSprite adds a sprite to the scene.
func (s *Scene) AddSprite(sp *Sprite) {
	s.sprites = append(s.sprites, sp)
}

// RemoveSprite removes a sprite. It reports whether the sprite was present.
func (s *Scene) RemoveSprite(sp *Sprite) bool {
	for i, cur := range s.sprites {
		if cur == sp {
			s.sprites = append(s.sprites[:i], s.sprites[i+1:]...)
			return true
		}
	}
	return false
}

// Sprites returns the sprites in insertion order.
func (s *Scene) Sprites() []*Sprite {
	return s.sprites
}
