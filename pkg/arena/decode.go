package arena

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed map.schema.json
var mapSchemaSource string

var (
	mapSchemaOnce sync.Once
	mapSchema     *jsonschema.Schema
	mapSchemaErr  error
)

func compiledMapSchema() (*jsonschema.Schema, error) {
	mapSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("map.schema.json", strings.NewReader(mapSchemaSource)); err != nil {
			mapSchemaErr = fmt.Errorf("add map schema: %w", err)
			return
		}
		mapSchema, mapSchemaErr = c.Compile("map.schema.json")
	})
	return mapSchema, mapSchemaErr
}

// DecodeMap validates a /map/{id} body and decodes it. Every error wraps
// ErrInvalidMap except a broken embedded schema.
func DecodeMap(data []byte) (*Map, error) {
	schema, err := compiledMapSchema()
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}

	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}
	if err := m.checkShape(); err != nil {
		return nil, err
	}
	return &m, nil
}

// checkShape verifies both layers are height rows of width tiles and that
// every starting location lands on the grid.
func (m *Map) checkShape() error {
	for _, layer := range []struct {
		name string
		grid [][]Tile
	}{{"lower", m.Lower}, {"upper", m.Upper}} {
		if len(layer.grid) != m.Height {
			return fmt.Errorf("%w: %s layer has %d rows, want %d", ErrInvalidMap, layer.name, len(layer.grid), m.Height)
		}
		for y, row := range layer.grid {
			if len(row) != m.Width {
				return fmt.Errorf("%w: %s row %d has %d tiles, want %d", ErrInvalidMap, layer.name, y, len(row), m.Width)
			}
		}
	}
	for i, loc := range m.StartingLocations {
		if loc.X >= m.Width || loc.Y >= m.Height {
			return fmt.Errorf("%w: starting location %d at (%d,%d) is off the %dx%d grid",
				ErrInvalidMap, i, loc.X, loc.Y, m.Width, m.Height)
		}
	}
	return nil
}
