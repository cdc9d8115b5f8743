// Package geometry builds tile meshes: plain boxes for slabs and top
// surfaces whose corners are lifted according to the tile's slope.
package geometry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/birbbrains/arenaview/pkg/arena"
)

// Mesh is an indexed triangle mesh in local space.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint32
}

// Box corner indices. Top corners come first so that lifts line up with
// arena corners.
const (
	topNE = iota
	topSE
	topSW
	topNW
	botNE
	botSE
	botSW
	botNW
)

// Faces as counter-clockwise corner quads seen from outside.
var boxFaces = [6][4]int{
	{topSW, botSW, botNW, topNW}, // +X (west)
	{topNE, botNE, botSE, topSE}, // -X (east)
	{topNW, topNE, topSE, topSW}, // +Y (top)
	{botSW, botSE, botNE, botNW}, // -Y (bottom)
	{topSE, botSE, botSW, topSW}, // +Z (south)
	{topNW, botNW, botNE, topNE}, // -Z (north)
}

// CornerXZ returns the local x and z signs of a top corner.
// North is -Z, south +Z. East is -X because the grid's x axis is mirrored.
func CornerXZ(c arena.Corner) (sx, sz float32) {
	switch c {
	case arena.CornerNE:
		return -1, -1
	case arena.CornerSE:
		return -1, 1
	case arena.CornerSW:
		return 1, 1
	default:
		return 1, -1
	}
}

var topCorners = [4]arena.Corner{arena.CornerNE, arena.CornerSE, arena.CornerSW, arena.CornerNW}

// Box returns a w×h×d box centered on the origin with 24 vertices.
func Box(w, h, d float32) *Mesh {
	return DeformedBox(w, h, d, [4]float32{})
}

// DeformedBox is Box with each top corner raised by lift, indexed
// NE, SE, SW, NW.
func DeformedBox(w, h, d float32, lift [4]float32) *Mesh {
	var corners [8]mgl32.Vec3
	for i, c := range topCorners {
		sx, sz := CornerXZ(c)
		corners[i] = mgl32.Vec3{sx * w / 2, h/2 + lift[i], sz * d / 2}
		corners[i+4] = mgl32.Vec3{sx * w / 2, -h / 2, sz * d / 2}
	}

	m := &Mesh{
		Positions: make([]mgl32.Vec3, 0, 24),
		Indices:   make([]uint32, 0, 36),
	}
	for _, face := range boxFaces {
		base := uint32(len(m.Positions))
		for _, ci := range face {
			m.Positions = append(m.Positions, corners[ci])
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	m.ComputeNormals()
	return m
}

// Lifts returns how far each top corner (NE, SE, SW, NW) of a surface of
// thickness h is raised for a tile.
func Lifts(tile *arena.Tile, h float32) [4]float32 {
	var lift [4]float32
	raised := tile.Slope().Raised()
	amount := float32(tile.SlopeHeight) * 2 * h
	for i, c := range topCorners {
		if raised.Has(c) {
			lift[i] = amount
		}
	}
	return lift
}

// Surface returns the thin top surface of a tile with its sloped corners raised.
func Surface(tile *arena.Tile, h float32) *Mesh {
	return DeformedBox(1, h, 1, Lifts(tile, h))
}

// ComputeNormals recomputes vertex normals by accumulating face normals
// per index, then normalizing.
func (m *Mesh) ComputeNormals() {
	normals := make([]mgl32.Vec3, len(m.Positions))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		a, b, c := m.Positions[ia], m.Positions[ib], m.Positions[ic]
		n := c.Sub(b).Cross(a.Sub(b))
		normals[ia] = normals[ia].Add(n)
		normals[ib] = normals[ib].Add(n)
		normals[ic] = normals[ic].Add(n)
	}
	for i, n := range normals {
		if l := n.Len(); l > 0 {
			normals[i] = n.Mul(1 / l)
		}
	}
	m.Normals = normals
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max mgl32.Vec3
}

// Bounds returns the mesh's bounding box.
func (m *Mesh) Bounds() Bounds {
	if len(m.Positions) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Positions[0], Max: m.Positions[0]}
	for _, p := range m.Positions[1:] {
		for k := 0; k < 3; k++ {
			b.Min[k] = min(b.Min[k], p[k])
			b.Max[k] = max(b.Max[k], p[k])
		}
	}
	return b
}

// Translate returns the box moved by offset.
func (b Bounds) Translate(offset mgl32.Vec3) Bounds {
	return Bounds{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// Interleaved returns position and normal data as x,y,z,nx,ny,nz per vertex.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Positions)*6)
	for i, p := range m.Positions {
		n := m.Normals[i]
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2])
	}
	return out
}
