// Package viewer owns the state of one map viewer: the loaded map, its
// scene and GPU resources, the camera, unit sprites and pointer picking.
//
// A Viewer is driven from a single goroutine. Fetches run in the
// background and hand their results back through a completion queue that
// the owner drains with Pump, so all state changes happen on the caller's
// goroutine and need no locking.
package viewer

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/birbbrains/arenaview/internal/config"
	"github.com/birbbrains/arenaview/internal/engine/camera"
	"github.com/birbbrains/arenaview/internal/engine/palette"
	"github.com/birbbrains/arenaview/internal/engine/picking"
	"github.com/birbbrains/arenaview/internal/engine/resource"
	"github.com/birbbrains/arenaview/internal/engine/scene"
	"github.com/birbbrains/arenaview/internal/logger"
	"github.com/birbbrains/arenaview/pkg/arena"
)

// ErrClosed is returned by operations on a closed viewer.
var ErrClosed = errors.New("viewer closed")

// Service provides map and roster data.
type Service interface {
	Map(ctx context.Context, id int) (*arena.Map, error)
	TeamSummary(ctx context.Context) (*arena.TeamSummary, error)
}

// Sprites loads both billboard views of a roster unit.
type Sprites interface {
	LoadPair(ctx context.Context, u arena.Unit) (nw, sw *image.RGBA, err error)
}

// Renderer draws scenes and allocates the resources they use.
type Renderer interface {
	resource.Device
	Resize(width, height int)
	Render(s *scene.Scene, cam *camera.CornerCamera)
	Clear(background mgl32.Vec3)
}

// Key is a viewer input key.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
)

// Options tune scene construction and the camera.
type Options struct {
	SurfaceThickness float32
	ViewSize         float32
	CameraDistance   float32
	CameraLift       float32
	Background       uint32
}

// OptionsFromConfig converts the viewer config section.
func OptionsFromConfig(cfg config.ViewerConfig) Options {
	return Options{
		SurfaceThickness: cfg.SurfaceThickness,
		ViewSize:         cfg.ViewSize,
		CameraDistance:   cfg.CameraDistance,
		CameraLift:       cfg.CameraLift,
		Background:       cfg.Background,
	}
}

// DefaultOptions matches config.Default.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default().Viewer)
}

// Hover describes the tile under the pointer.
type Hover struct {
	Tile     arena.Tile
	Layer    arena.Layer
	Surface  string
	Height   int // height + depth
	Walkable bool
}

// Viewer displays one map at a time.
type Viewer struct {
	svc      Service
	sprites  Sprites
	renderer Renderer
	opts     Options
	log      *zap.Logger

	// Current view state
	currentID int
	hasID     bool
	gen       uint64
	cancel    context.CancelFunc
	live      *liveScene
	cam       *camera.CornerCamera
	width     int
	height    int
	pointer   mgl32.Vec2
	pointerIn bool
	hovered   *Hover
	lastErr   error
	closed    bool

	// Background work
	base        context.Context
	stop        context.CancelFunc
	completions chan func()
	done        chan struct{}
	wg          sync.WaitGroup
}

// New creates a viewer. Nothing is fetched until Load.
func New(svc Service, sprites Sprites, r Renderer, opts Options) *Viewer {
	base, stop := context.WithCancel(context.Background())
	return &Viewer{
		svc:         svc,
		sprites:     sprites,
		renderer:    r,
		opts:        opts,
		log:         logger.Named("viewer"),
		cam:         camera.New(opts.ViewSize, opts.CameraDistance, opts.CameraLift),
		base:        base,
		stop:        stop,
		completions: make(chan func(), 64),
		done:        make(chan struct{}),
	}
}

// Load starts displaying map id. Loading the id that is already current,
// or already in flight, does nothing. A newer id cancels the older fetch.
func (v *Viewer) Load(id int) error {
	if v.closed {
		return ErrClosed
	}
	if v.hasID && v.currentID == id {
		return nil
	}
	if v.cancel != nil {
		v.cancel()
	}
	v.gen++
	v.currentID, v.hasID = id, true
	gen := v.gen
	ctx, cancel := context.WithCancel(v.base)
	v.cancel = cancel

	v.log.Info("loading map", zap.Int("map", id))
	v.spawn(func() {
		m, summary, err := v.fetch(ctx, id)
		v.post(func() { v.finishMap(ctx, gen, id, m, summary, err) })
	})
	return nil
}

// fetch loads the map and the team summary together. A missing team
// summary only costs the units.
func (v *Viewer) fetch(ctx context.Context, id int) (*arena.Map, *arena.TeamSummary, error) {
	var (
		m          *arena.Map
		summary    *arena.TeamSummary
		summaryErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		m, err = v.svc.Map(ctx, id)
		return err
	})
	g.Go(func() error {
		summary, summaryErr = v.svc.TeamSummary(ctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if summaryErr != nil {
		v.log.Warn("team summary unavailable, units skipped", zap.Int("map", id), zap.Error(summaryErr))
		summary = nil
	}
	return m, summary, nil
}

// finishMap swaps in the scene for a completed fetch. ctx stays live for
// the unit loads until the next Load or Close cancels it.
func (v *Viewer) finishMap(ctx context.Context, gen uint64, id int, m *arena.Map, summary *arena.TeamSummary, err error) {
	if v.closed || gen != v.gen {
		v.log.Debug("stale map result dropped", zap.Int("map", id))
		return
	}
	if err != nil {
		v.lastErr = err
		v.hasID = false
		v.cancel()
		v.cancel = nil
		v.log.Warn("map load failed", zap.Int("map", id), zap.Error(err))
		return
	}

	v.teardown()
	live, err := v.build(id, m, summary)
	if err != nil {
		v.lastErr = err
		v.hasID = false
		v.log.Warn("scene build failed", zap.Int("map", id), zap.Error(err))
		return
	}
	v.live = live
	v.lastErr = nil
	v.cam.FrameGrid(m.Width, m.Height)
	v.cam.Reset()
	v.repick()
	v.loadUnits(ctx, gen, live)
}

// spawn runs fn in the background, tracked for Close.
func (v *Viewer) spawn(fn func()) {
	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		fn()
	}()
}

// post queues fn to run on the owner's goroutine. It is dropped once the
// viewer is closed.
func (v *Viewer) post(fn func()) {
	select {
	case v.completions <- fn:
	case <-v.done:
	}
}

// Pump runs queued completions and returns how many ran.
func (v *Viewer) Pump() int {
	n := 0
	for {
		select {
		case fn := <-v.completions:
			fn()
			n++
		default:
			return n
		}
	}
}

// Rotate turns the camera step corners and re-places every unit sprite
// before returning. It reports false when no scene is live.
func (v *Viewer) Rotate(step int) bool {
	if v.live == nil {
		return false
	}
	v.cam.Rotate(step)
	for _, u := range v.live.units {
		v.placeSprite(v.live, u)
	}
	v.log.Debug("camera rotated", zap.Int("orientation", v.cam.Orientation()))
	v.repick()
	return true
}

// HandleKey applies a key press. It reports whether the key was consumed,
// which only happens while a scene is live.
func (v *Viewer) HandleKey(k Key) bool {
	switch k {
	case KeyLeft:
		return v.Rotate(-1)
	case KeyRight:
		return v.Rotate(1)
	default:
		return false
	}
}

// PointerMove updates the hovered tile for a pointer at pixel (px, py)
// of the render surface.
func (v *Viewer) PointerMove(px, py float32) {
	if v.width <= 0 || v.height <= 0 {
		return
	}
	x, y := picking.NDC(px, py, v.width, v.height)
	v.pointer = mgl32.Vec2{x, y}
	v.pointerIn = true
	v.repick()
}

// PointerLeave clears the pointer and the hovered tile.
func (v *Viewer) PointerLeave() {
	v.pointerIn = false
	v.hovered = nil
}

// Hovered returns the tile under the pointer, if any.
func (v *Viewer) Hovered() (Hover, bool) {
	if v.hovered == nil {
		return Hover{}, false
	}
	return *v.hovered, true
}

func (v *Viewer) repick() {
	if !v.pointerIn || v.live == nil {
		v.hovered = nil
		return
	}
	ray := picking.FromNDC(v.pointer.X(), v.pointer.Y(), v.cam.ViewProjection().Inv())
	hit, ok := picking.Pick(v.live.scene, ray)
	if !ok {
		v.hovered = nil
		return
	}
	v.hovered = &Hover{
		Tile:     *hit.Tile,
		Layer:    v.live.layers[hit.Mesh.ID],
		Surface:  hit.Tile.Surface(),
		Height:   hit.Tile.Top(),
		Walkable: !hit.Tile.NoWalk,
	}
}

// Frame draws one frame for a surface of the given pixel size, resizing
// the camera and renderer first when the size changed. It reports whether
// a scene was drawn.
func (v *Viewer) Frame(displayW, displayH int) bool {
	if v.closed || displayW <= 0 || displayH <= 0 {
		return false
	}
	if displayW != v.width || displayH != v.height {
		v.width, v.height = displayW, displayH
		v.cam.SetAspect(float32(displayW) / float32(displayH))
		v.renderer.Resize(displayW, displayH)
		v.repick()
	}
	if v.live == nil {
		v.renderer.Clear(palette.RGB(v.opts.Background))
		return false
	}
	v.renderer.Render(v.live.scene, v.cam)
	return true
}

// CurrentID returns the map id being shown or loaded.
func (v *Viewer) CurrentID() (int, bool) {
	return v.currentID, v.hasID
}

// Live reports whether a scene is displayed.
func (v *Viewer) Live() bool {
	return v.live != nil
}

// LastError returns the most recent load failure, cleared by a successful load.
func (v *Viewer) LastError() error {
	return v.lastErr
}

// Camera returns the viewer camera.
func (v *Viewer) Camera() *camera.CornerCamera {
	return v.cam
}

// Scene returns the live scene, or nil.
func (v *Viewer) Scene() *scene.Scene {
	if v.live == nil {
		return nil
	}
	return v.live.scene
}

// Units returns the units placed in the live scene.
func (v *Viewer) Units() []*Unit {
	if v.live == nil {
		return nil
	}
	return v.live.units
}

// teardown releases the live scene and everything allocated for it.
func (v *Viewer) teardown() {
	if v.live == nil {
		return
	}
	stats := v.live.arena.Stats()
	v.live.arena.Release()
	v.log.Debug("scene torn down",
		zap.Int("map", v.live.id),
		zap.Int("released", v.live.arena.Stats().Released-stats.Released))
	v.live = nil
	v.hovered = nil
}

// Close tears down the scene and stops background work. Results still in
// flight are discarded. Close is safe to call more than once.
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.stop()
	close(v.done)
	v.teardown()
	v.hasID = false
	v.wg.Wait()
	v.log.Info("viewer closed")
}
