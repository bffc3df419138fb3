package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// DefaultLevel is loaded when no level is named on the command line.
const DefaultLevel = "crypt.json"

type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  int         `json:"tile_size,omitempty"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
}

// Entity is a placed object. X is the horizontal center and Y the bottom
// edge, both in pixels.
type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// PropString returns a string prop or fallback.
func (e Entity) PropString(key, fallback string) string {
	if v, ok := e.Props[key].(string); ok {
		return v
	}
	return fallback
}

// PropFloat returns a numeric prop or fallback. JSON numbers decode as float64.
func (e Entity) PropFloat(key string, fallback float64) float64 {
	if v, ok := e.Props[key].(float64); ok {
		return v
	}
	return fallback
}

// PropBool returns a boolean prop or fallback.
func (e Entity) PropBool(key string, fallback bool) bool {
	if v, ok := e.Props[key].(bool); ok {
		return v
	}
	return fallback
}

func LoadLevelFromFS(name string) (*Level, error) {
	if name == "" {
		name = DefaultLevel
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(data)
}

// Parse decodes and sanity-checks a level.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("levels: invalid size %dx%d", lvl.Width, lvl.Height)
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			return nil, fmt.Errorf("levels: layer %d has %d tiles, want %d", i, len(layer), lvl.Width*lvl.Height)
		}
	}
	return &lvl, nil
}

// PhysicsLayer reports whether layer idx carries collision.
func (l *Level) PhysicsLayer(idx int) bool {
	return idx < len(l.LayerMeta) && l.LayerMeta[idx].Physics
}
