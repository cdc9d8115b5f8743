package arena

// Surface type names keyed by the game's surface code.
var surfaceNames = map[uint8]string{
	0x00: "Natural Surface",
	0x01: "Sand area",
	0x02: "Stalactite",
	0x03: "Grassland",
	0x04: "Thicket",
	0x05: "Snow",
	0x06: "Rocky cliff",
	0x07: "Gravel",
	0x08: "Wasteland",
	0x09: "Swamp",
	0x0A: "Marsh",
	0x0B: "Poisoned marsh",
	0x0C: "Lava rocks",
	0x0D: "Ice",
	0x0E: "Waterway",
	0x0F: "River",
	0x10: "Lake",
	0x11: "Sea",
	0x12: "Lava",
	0x13: "Road",
	0x14: "Wooden floor",
	0x15: "Stone floor",
	0x16: "Roof",
	0x17: "Stone wall",
	0x18: "Sky",
	0x19: "Darkness",
	0x1A: "Salt",
	0x1B: "Book",
	0x1C: "Obstacle",
	0x1D: "Rug",
	0x1E: "Tree",
	0x1F: "Box",
	0x20: "Brick",
	0x21: "Chimney",
	0x22: "Mud wall",
	0x23: "Bridge",
	0x24: "Water plant",
	0x25: "Stairs",
	0x26: "Furniture",
	0x27: "Ivy",
	0x28: "Deck",
	0x29: "Machine",
	0x2A: "Iron plate",
	0x2B: "Moss",
	0x2C: "Tombstone",
	0x2D: "Waterfall",
	0x2E: "Coffin",
	0x2F: "(blank)",
	0x30: "(blank)",
	0x3F: "Cross section",
}

// SurfaceName returns the label for a surface code, or "" if unknown.
func SurfaceName(code uint8) string {
	return surfaceNames[code]
}
