package viewer

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/birbbrains/arenaview/internal/engine/geometry"
	"github.com/birbbrains/arenaview/internal/engine/palette"
	"github.com/birbbrains/arenaview/internal/engine/resource"
	"github.com/birbbrains/arenaview/internal/engine/scene"
	"github.com/birbbrains/arenaview/pkg/arena"
)

// Fixed scene lighting.
const (
	ambientColor     = 0x606060
	directionalColor = 0x69bbbb
	directionalPower = 0.5
	slabOpacity      = 0.55
)

var directionalPos = mgl32.Vec3{10, 20, -10}

// liveScene is everything built for one displayed map.
type liveScene struct {
	id      int
	m       *arena.Map
	summary *arena.TeamSummary
	scene   *scene.Scene
	arena   *resource.Arena
	layers  map[scene.MeshID]arena.Layer
	units   []*Unit

	// Shared device objects within this scene
	materials map[resource.Material]resource.Handle
	slabs     map[int]sharedGeometry
	surfaces  map[surfaceKey]sharedGeometry
	textures  map[*image.RGBA]texture
}

type sharedGeometry struct {
	local  *geometry.Mesh
	handle resource.Handle
}

type surfaceKey struct {
	slope       arena.Slope
	slopeHeight int
}

// slabColor tints no_cursor slabs. Lower no_walk tiles never get a slab.
func slabColor(t *arena.Tile) uint32 {
	if t.NoCursor {
		return 0x555588
	}
	return 0x888888
}

// displayX mirrors a grid x coordinate to its render position.
func displayX(m *arena.Map, gridX int) float32 {
	return float32(m.Width - 1 - gridX)
}

// build creates the scene for a map. On error everything allocated so far
// is released.
func (v *Viewer) build(id int, m *arena.Map, summary *arena.TeamSummary) (*liveScene, error) {
	live := &liveScene{
		id:        id,
		m:         m,
		summary:   summary,
		scene:     scene.New(v.opts.Background),
		arena:     resource.NewArena(v.renderer),
		layers:    make(map[scene.MeshID]arena.Layer),
		materials: make(map[resource.Material]resource.Handle),
		slabs:     make(map[int]sharedGeometry),
		surfaces:  make(map[surfaceKey]sharedGeometry),
		textures:  make(map[*image.RGBA]texture),
	}
	live.scene.AddAmbient(ambientColor)
	live.scene.AddDirectional(directionalColor, directionalPower, directionalPos)

	h := v.opts.SurfaceThickness
	for y := 0; y < m.Height; y++ {
		for gx := 0; gx < m.Width; gx++ {
			x := displayX(m, gx)
			lower := &m.Lower[y][gx]
			if !lower.NoWalk {
				if err := v.addSlab(live, lower, x, y, h); err != nil {
					live.arena.Release()
					return nil, err
				}
				if err := v.addSurface(live, lower, arena.Lower, x, y, h); err != nil {
					live.arena.Release()
					return nil, err
				}
			}

			upper := &m.Upper[y][gx]
			if upper.Height == 0 || upper.NoWalk || upper.Top() <= lower.Top() {
				continue
			}
			if err := v.addSurface(live, upper, arena.Upper, x, y, h); err != nil {
				live.arena.Release()
				return nil, err
			}
		}
	}

	v.log.Info("scene built",
		zap.Int("map", id),
		zap.String("gns", m.GNS),
		zap.Int("width", m.Width),
		zap.Int("height", m.Height),
		zap.Int("meshes", len(live.scene.Meshes())),
		zap.Int("tagged", live.scene.Tagged()),
		zap.Int("resources", live.arena.Len()))
	return live, nil
}

// addSlab adds the translucent box under a lower tile.
func (v *Viewer) addSlab(live *liveScene, t *arena.Tile, x float32, y int, h float32) error {
	top := t.Top()
	slabHeight := float32(top) + h
	geo, err := live.slabGeometry(top, slabHeight/2)
	if err != nil {
		return fmt.Errorf("slab at (%d,%d): %w", t.X, t.Y, err)
	}
	mat := resource.Material{Color: palette.RGB(slabColor(t)), Opacity: slabOpacity, Lit: true}
	matHandle, err := live.material(mat)
	if err != nil {
		return fmt.Errorf("slab at (%d,%d): %w", t.X, t.Y, err)
	}
	live.scene.AddMesh(scene.Mesh{
		Geometry:    geo.handle,
		Material:    matHandle,
		Position:    mgl32.Vec3{x, slabHeight / 4, float32(y)},
		Local:       geo.local,
		Color:       mat.Color,
		Opacity:     mat.Opacity,
		Transparent: true,
	})
	return nil
}

// addSurface adds the colored top surface of a tile and tags it for picking.
func (v *Viewer) addSurface(live *liveScene, t *arena.Tile, layer arena.Layer, x float32, y int, h float32) error {
	geo, err := live.surfaceGeometry(t, h)
	if err != nil {
		return fmt.Errorf("%s surface at (%d,%d): %w", layer, t.X, t.Y, err)
	}
	mat := resource.Material{Color: palette.RGB(palette.SurfaceColor(t.Surface())), Opacity: 1, Lit: true}
	matHandle, err := live.material(mat)
	if err != nil {
		return fmt.Errorf("%s surface at (%d,%d): %w", layer, t.X, t.Y, err)
	}
	slabHeight := float32(t.Top()) + h
	mesh := live.scene.AddMesh(scene.Mesh{
		Geometry: geo.handle,
		Material: matHandle,
		Position: mgl32.Vec3{x, slabHeight/2 + h/2, float32(y)},
		Local:    geo.local,
		Color:    mat.Color,
		Opacity:  mat.Opacity,
	})
	live.scene.Tag(mesh.ID, t)
	live.layers[mesh.ID] = layer
	return nil
}

func (l *liveScene) material(m resource.Material) (resource.Handle, error) {
	if h, ok := l.materials[m]; ok {
		return h, nil
	}
	h, err := l.arena.Material(m)
	if err != nil {
		return resource.Handle{}, err
	}
	l.materials[m] = h
	return h, nil
}

func (l *liveScene) slabGeometry(top int, height float32) (sharedGeometry, error) {
	if g, ok := l.slabs[top]; ok {
		return g, nil
	}
	local := geometry.Box(1, height, 1)
	h, err := l.arena.Geometry(local)
	if err != nil {
		return sharedGeometry{}, err
	}
	g := sharedGeometry{local: local, handle: h}
	l.slabs[top] = g
	return g, nil
}

func (l *liveScene) surfaceGeometry(t *arena.Tile, h float32) (sharedGeometry, error) {
	key := surfaceKey{slope: t.Slope(), slopeHeight: t.SlopeHeight}
	if key.slope == arena.SlopeFlat {
		key.slopeHeight = 0
	}
	if g, ok := l.surfaces[key]; ok {
		return g, nil
	}
	local := geometry.Surface(t, h)
	handle, err := l.arena.Geometry(local)
	if err != nil {
		return sharedGeometry{}, err
	}
	g := sharedGeometry{local: local, handle: handle}
	l.surfaces[key] = g
	return g, nil
}
