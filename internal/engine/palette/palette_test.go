package palette

import (
	"testing"

	"github.com/birbbrains/arenaview/pkg/arena"
)

func TestHash53KnownValues(t *testing.T) {
	// Reference values of cyrb53 with seed 0.
	tests := []struct {
		in   string
		want uint64
	}{
		{"", 3338908027751811},
		{"a", 7929297801672961},
		{"Grassland", 3214424811250930},
	}
	for _, tt := range tests {
		if got := Hash53(tt.in, 0); got != tt.want {
			t.Errorf("Hash53(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSurfaceColorIsStable(t *testing.T) {
	first := SurfaceColor("Grassland")
	for i := 0; i < 10; i++ {
		if SurfaceColor("Grassland") != first {
			t.Fatal("same label produced different colors")
		}
	}
	if first > 0xFFFFFF {
		t.Errorf("color %#x exceeds 24 bits", first)
	}
	if SurfaceColor("Grassland") == SurfaceColor("Road") {
		t.Error("different labels should not share a color")
	}
}

func TestSurfaceColorsDistinctAcrossTable(t *testing.T) {
	seen := map[uint32]string{}
	for code := 0; code <= 0x3F; code++ {
		name := arena.SurfaceName(uint8(code))
		if name == "" || name == "(blank)" {
			continue
		}
		c := SurfaceColor(name)
		if prev, ok := seen[c]; ok && prev != name {
			t.Errorf("%q and %q share color %#x", prev, name, c)
		}
		seen[c] = name
	}
}

func TestSeedChangesHash(t *testing.T) {
	if Hash53("Lava", 0) == Hash53("Lava", 1) {
		t.Error("seed should change the hash")
	}
}

func TestRGB(t *testing.T) {
	c := RGB(0xFF8000)
	if c[0] != 1 || c[2] != 0 || c[1] < 0.5 || c[1] > 0.51 {
		t.Errorf("RGB(0xFF8000) = %v", c)
	}
}

func TestSurfaceColorKnownValue(t *testing.T) {
	if got := SurfaceColor("Grassland"); got != 0x07bcb2 {
		t.Errorf("SurfaceColor(Grassland) = %#06x, want 0x07bcb2", got)
	}
}
