// Package palette assigns stable display colors to surface labels.
package palette

import "github.com/go-gl/mathgl/mgl32"

// Hash53 is cyrb53: a fast 53-bit string hash over UTF-16 code units.
func Hash53(s string, seed uint32) uint64 {
	h1 := 0xdeadbeef ^ seed
	h2 := 0x41c6ce57 ^ seed
	for _, r := range s {
		for _, ch := range utf16Units(r) {
			h1 = (h1 ^ ch) * 2654435761
			h2 = (h2 ^ ch) * 1597334677
		}
	}
	h1 = (h1^(h1>>16))*2246822507 ^ (h2^(h2>>13))*3266489909
	h2 = (h2^(h2>>16))*2246822507 ^ (h1^(h1>>13))*3266489909
	return uint64(h2&0x1FFFFF)<<32 | uint64(h1)
}

func utf16Units(r rune) []uint32 {
	if r >= 0x10000 {
		r -= 0x10000
		return []uint32{0xD800 + uint32(r>>10), 0xDC00 + uint32(r&0x3FF)}
	}
	return []uint32{uint32(r)}
}

// SurfaceColor returns the 0xRRGGBB color of a surface label, the low
// 24 hash bits darkened by 5%.
func SurfaceColor(label string) uint32 {
	return uint32(float64(Hash53(label, 0)&0xFFFFFF) * 0.95)
}

// RGB splits a 0xRRGGBB color into [0,1] channels.
func RGB(c uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((c>>16)&0xFF) / 255,
		float32((c>>8)&0xFF) / 255,
		float32(c&0xFF) / 255,
	}
}
