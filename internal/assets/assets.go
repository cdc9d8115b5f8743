// Package assets loads and caches unit sprite images.
package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/birbbrains/arenaview/internal/logger"
	"github.com/birbbrains/arenaview/pkg/arena"
)

// Fetcher returns the raw bytes of a named asset.
type Fetcher interface {
	Asset(ctx context.Context, name string) ([]byte, error)
}

// View is one of the two pre-rendered sprite angles.
type View int

const (
	ViewNW View = iota
	ViewSW
)

func (v View) String() string {
	if v == ViewSW {
		return "SW"
	}
	return "NW"
}

// SpriteName returns the sprite file for a unit seen from a view,
// e.g. "Squire1M-NW.gif". Monsters have no gender suffix.
func SpriteName(u arena.Unit, v View) string {
	var b strings.Builder
	b.WriteString(u.Job)
	if !u.IsMonster() && u.Gender != "" {
		b.WriteByte('1')
		r, _ := utf8.DecodeRuneInString(u.Gender)
		b.WriteString(strings.ToUpper(string(r)))
	}
	b.WriteByte('-')
	b.WriteString(v.String())
	b.WriteString(".gif")
	return b.String()
}

// Manager fetches sprites and keeps decoded images in memory.
type Manager struct {
	fetcher Fetcher
	cache   *Cache
	log     *zap.Logger
}

// NewManager creates a manager reading from f.
func NewManager(f Fetcher) *Manager {
	return &Manager{
		fetcher: f,
		cache:   NewCache(),
		log:     logger.Named("assets"),
	}
}

// Load returns the decoded sprite with the given name.
func (m *Manager) Load(ctx context.Context, name string) (*image.RGBA, error) {
	if img, ok := m.cache.Get(name); ok {
		return img, nil
	}

	data, err := m.fetcher.Asset(ctx, name)
	if err != nil {
		return nil, err
	}
	img, err := DecodeGIF(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	m.cache.Set(name, img)

	m.log.Debug("sprite loaded",
		zap.String("name", name),
		zap.String("size", humanize.Bytes(uint64(len(data)))),
		zap.Int("w", img.Bounds().Dx()),
		zap.Int("h", img.Bounds().Dy()))
	return img, nil
}

// LoadPair loads both views of a unit. It returns only once both are
// decoded, or the first error.
func (m *Manager) LoadPair(ctx context.Context, u arena.Unit) (nw, sw *image.RGBA, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		nw, err = m.Load(gctx, SpriteName(u, ViewNW))
		return err
	})
	g.Go(func() error {
		var err error
		sw, err = m.Load(gctx, SpriteName(u, ViewSW))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return nw, sw, nil
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops every cached image.
func (m *Manager) Close() {
	m.cache.Clear()
}

// DecodeGIF decodes the first frame of a GIF into RGBA.
func DecodeGIF(data []byte) (*image.RGBA, error) {
	src, err := gif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ToRGBA(src), nil
}

// ToRGBA converts any image to a zero-origin RGBA image.
func ToRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	if rgba, ok := src.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Cache is an in-memory cache of decoded sprites.
type Cache struct {
	data map[string]*image.RGBA
	mu   sync.Mutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*image.RGBA),
	}
}

// Get retrieves an image from the cache.
func (c *Cache) Get(key string) (*image.RGBA, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	img, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return img, ok
}

// Set stores an image.
func (c *Cache) Set(key string, img *image.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = img
}

// Clear empties the cache and resets statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*image.RGBA)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
