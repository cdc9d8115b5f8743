package viewer

import (
	"context"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/birbbrains/arenaview/internal/assets"
	"github.com/birbbrains/arenaview/internal/engine/camera"
	"github.com/birbbrains/arenaview/internal/engine/palette"
	"github.com/birbbrains/arenaview/internal/engine/resource"
	"github.com/birbbrains/arenaview/internal/engine/scene"
	"github.com/birbbrains/arenaview/pkg/arena"
)

// unitClearance lifts a sprite's center above the tile it stands on.
const unitClearance = 0.5

// Unit is a roster unit placed in the live scene.
type Unit struct {
	Location arena.StartingLocation
	Roster   arena.Unit
	Team     string
	Position mgl32.Vec3
	Tint     mgl32.Vec3

	nw, sw texture
	sprite *scene.Sprite
}

// Sprite returns the unit's current sprite.
func (u *Unit) Sprite() *scene.Sprite {
	return u.sprite
}

// SpriteTexture returns the texture backing a view.
func (u *Unit) SpriteTexture(view assets.View) resource.Handle {
	if view == assets.ViewSW {
		return u.sw.handle
	}
	return u.nw.handle
}

type texture struct {
	handle resource.Handle
	size   image.Point
}

// SpriteChoice picks the texture and flip for a unit facing f seen from a
// camera orientation. Two captured angles cover all four views: the
// first two orientations are mirrored.
func SpriteChoice(orientation int, f arena.Facing) (assets.View, bool) {
	switch (orientation + f.Index()) % camera.Orientations {
	case 0:
		return assets.ViewNW, true
	case 1:
		return assets.ViewSW, true
	case 2:
		return assets.ViewSW, false
	default:
		return assets.ViewNW, false
	}
}

// spriteScale normalizes a texture so its longer side is one world unit.
func spriteScale(size image.Point) mgl32.Vec2 {
	w, h := float32(size.X), float32(size.Y)
	longest := max(w, h)
	if longest <= 0 {
		return mgl32.Vec2{1, 1}
	}
	return mgl32.Vec2{w / longest, h / longest}
}

// unitPosition places a unit over its tile, mirrored like the tiles.
func unitPosition(m *arena.Map, loc arena.StartingLocation, h float32) mgl32.Vec3 {
	y := float32(0)
	if t := m.Tile(loc.MapLayer(), loc.X, loc.Y); t != nil {
		y = (float32(t.Height) + float32(t.SlopeHeight)/2) / 2
	}
	return mgl32.Vec3{displayX(m, loc.X), y + h + unitClearance, float32(loc.Y)}
}

// teamTint softens a team color into a sprite tint.
func teamTint(team string) mgl32.Vec3 {
	return mgl32.Vec3{1, 1, 1}.Mul(0.7).Add(palette.RGB(arena.TeamColor(team)).Mul(0.3))
}

// loadUnits starts the texture loads for every starting location. Units
// enter the scene one by one as both of their textures arrive.
func (v *Viewer) loadUnits(ctx context.Context, gen uint64, live *liveScene) {
	if live.summary == nil || v.sprites == nil {
		return
	}
	for _, loc := range live.m.StartingLocations {
		roster, team, err := live.summary.Resolve(loc.Team, loc.Unit)
		if err != nil {
			v.log.Warn("starting location skipped", zap.Int("map", live.id), zap.Error(err))
			continue
		}
		v.spawn(func() {
			nw, sw, err := v.sprites.LoadPair(ctx, roster)
			v.post(func() { v.finishUnit(gen, loc, roster, team, nw, sw, err) })
		})
	}
}

func (v *Viewer) finishUnit(gen uint64, loc arena.StartingLocation, roster arena.Unit, team string, nw, sw *image.RGBA, err error) {
	if v.closed || gen != v.gen || v.live == nil {
		return
	}
	if err != nil {
		v.lastErr = fmt.Errorf("unit %s #%d (%s): %w", loc.Team, loc.Unit, roster.Job, err)
		v.log.Warn("unit sprites failed", zap.String("job", roster.Job), zap.Error(err))
		return
	}

	live := v.live
	nwTex, err := live.texture(nw)
	if err != nil {
		v.lastErr = err
		return
	}
	swTex, err := live.texture(sw)
	if err != nil {
		v.lastErr = err
		return
	}

	u := &Unit{
		Location: loc,
		Roster:   roster,
		Team:     team,
		Position: unitPosition(live.m, loc, v.opts.SurfaceThickness),
		Tint:     teamTint(team),
		nw:       nwTex,
		sw:       swTex,
	}
	live.units = append(live.units, u)
	v.placeSprite(live, u)
	v.log.Debug("unit placed",
		zap.String("job", roster.Job),
		zap.String("team", team),
		zap.Stringer("facing", loc.Facing))
}

// placeSprite swaps the unit's sprite for one matching the camera.
func (v *Viewer) placeSprite(live *liveScene, u *Unit) {
	if u.sprite != nil {
		live.scene.RemoveSprite(u.sprite)
	}
	view, flip := SpriteChoice(v.cam.Orientation(), u.Location.Facing)
	tex := u.nw
	if view == assets.ViewSW {
		tex = u.sw
	}
	u.sprite = &scene.Sprite{
		Texture:  tex.handle,
		Position: u.Position,
		Scale:    spriteScale(tex.size),
		FlipX:    flip,
		Tint:     u.Tint,
	}
	live.scene.AddSprite(u.sprite)
}

// texture uploads an image once per scene.
func (l *liveScene) texture(img *image.RGBA) (texture, error) {
	if t, ok := l.textures[img]; ok {
		return t, nil
	}
	h, err := l.arena.Texture(img)
	if err != nil {
		return texture{}, err
	}
	t := texture{handle: h, size: img.Bounds().Size()}
	l.textures[img] = t
	return t, nil
}
