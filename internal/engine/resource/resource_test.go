package resource

import (
	"image"
	"testing"

	"github.com/birbbrains/arenaview/internal/engine/geometry"
)

type orderDevice struct {
	*FakeDevice
	order []Handle
}

func (d *orderDevice) Release(h Handle) {
	d.order = append(d.order, h)
	d.FakeDevice.Release(h)
}

func TestArenaReleasesEverythingOnceNewestFirst(t *testing.T) {
	dev := &orderDevice{FakeDevice: NewFakeDevice()}
	a := NewArena(dev)

	g, err := a.Geometry(geometry.Box(1, 1, 1))
	if err != nil {
		t.Fatalf("geometry: %v", err)
	}
	m, err := a.Material(Material{Opacity: 0.5})
	if err != nil {
		t.Fatalf("material: %v", err)
	}
	tex, err := a.Texture(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if err != nil {
		t.Fatalf("texture: %v", err)
	}
	if a.Len() != 3 || dev.Live() != 3 {
		t.Fatalf("expected 3 live handles, arena %d device %d", a.Len(), dev.Live())
	}

	a.Release()
	want := []Handle{tex, m, g}
	if len(dev.order) != len(want) {
		t.Fatalf("released %v, want %v", dev.order, want)
	}
	for i := range want {
		if dev.order[i] != want[i] {
			t.Errorf("release %d = %v, want %v", i, dev.order[i], want[i])
		}
	}

	a.Release()
	if len(dev.Errors) != 0 {
		t.Errorf("second release touched the device: %v", dev.Errors)
	}
	if s := a.Stats(); s.Allocated != 3 || s.Released != 3 || s.Live() != 0 {
		t.Errorf("stats = %+v", s)
	}
}

func TestArenaReuseAcrossCycles(t *testing.T) {
	dev := NewFakeDevice()
	a := NewArena(dev)
	for cycle := 0; cycle < 5; cycle++ {
		for i := 0; i <= cycle; i++ {
			if _, err := a.Geometry(geometry.Box(1, 1, 1)); err != nil {
				t.Fatal(err)
			}
			if _, err := a.Material(Material{Opacity: 1, Lit: true}); err != nil {
				t.Fatal(err)
			}
		}
		a.Release()
	}
	if dev.Live() != 0 || dev.TotalCreated() != dev.TotalReleased() {
		t.Errorf("leak: live %d created %d released %d", dev.Live(), dev.TotalCreated(), dev.TotalReleased())
	}
	if len(dev.Errors) != 0 {
		t.Errorf("device errors: %v", dev.Errors)
	}
}

func TestArenaFailedCreateIsNotTracked(t *testing.T) {
	dev := NewFakeDevice()
	dev.FailOn[KindTexture] = true
	a := NewArena(dev)
	if _, err := a.Texture(image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Fatal("expected failure")
	}
	if a.Len() != 0 {
		t.Errorf("failed handle was tracked")
	}
	a.Release()
	if len(dev.Errors) != 0 {
		t.Errorf("unexpected device errors: %v", dev.Errors)
	}
}

func TestFakeDeviceDetectsDoubleRelease(t *testing.T) {
	dev := NewFakeDevice()
	h, _ := dev.CreateMaterial(Material{})
	dev.Release(h)
	dev.Release(h)
	if len(dev.Errors) != 1 {
		t.Errorf("expected one double release error, got %v", dev.Errors)
	}
}

func TestMaterialTransparent(t *testing.T) {
	if (Material{Opacity: 1}).Transparent() || !(Material{Opacity: 0.4}).Transparent() {
		t.Error("transparency should follow opacity")
	}
}
