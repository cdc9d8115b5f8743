package resource

import (
	"errors"
	"fmt"
	"image"

	"github.com/birbbrains/arenaview/internal/engine/geometry"
)

// ErrDoubleRelease is recorded by a FakeDevice when a handle is freed twice.
var ErrDoubleRelease = errors.New("handle released twice")

// FakeDevice is an in-memory Device that records every call. It is used
// by tests and by headless runs.
type FakeDevice struct {
	next     uint32
	live     map[Handle]struct{}
	Created  map[Kind]int
	Released map[Kind]int
	// Errors collects misuse such as releasing an unknown handle.
	Errors []error
	// FailOn makes the next creation of that kind fail when set.
	FailOn map[Kind]bool
}

// NewFakeDevice returns an empty fake device.
func NewFakeDevice() *FakeDevice {
	return &FakeDevice{
		live:     make(map[Handle]struct{}),
		Created:  make(map[Kind]int),
		Released: make(map[Kind]int),
		FailOn:   make(map[Kind]bool),
	}
}

func (d *FakeDevice) create(k Kind) (Handle, error) {
	if d.FailOn[k] {
		d.FailOn[k] = false
		return Handle{}, fmt.Errorf("fake %s failure", k)
	}
	d.next++
	h := Handle{Kind: k, ID: d.next}
	d.live[h] = struct{}{}
	d.Created[k]++
	return h, nil
}

func (d *FakeDevice) CreateGeometry(*geometry.Mesh) (Handle, error) { return d.create(KindGeometry) }
func (d *FakeDevice) CreateMaterial(Material) (Handle, error)       { return d.create(KindMaterial) }
func (d *FakeDevice) CreateTexture(*image.RGBA) (Handle, error)     { return d.create(KindTexture) }

func (d *FakeDevice) Release(h Handle) {
	if _, ok := d.live[h]; !ok {
		d.Errors = append(d.Errors, fmt.Errorf("%w: %s %d", ErrDoubleRelease, h.Kind, h.ID))
		return
	}
	delete(d.live, h)
	d.Released[h.Kind]++
}

// Live is the number of handles created and not yet released.
func (d *FakeDevice) Live() int {
	return len(d.live)
}

// TotalCreated sums creations over every kind.
func (d *FakeDevice) TotalCreated() int {
	n := 0
	for _, c := range d.Created {
		n += c
	}
	return n
}

// TotalReleased sums releases over every kind.
func (d *FakeDevice) TotalReleased() int {
	n := 0
	for _, c := range d.Released {
		n += c
	}
	return n
}
