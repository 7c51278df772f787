// Package template loads the room library: authored room shapes with their
// doorways, scenery variants and item spawn points, grouped by the role each
// room plays in a level.
package template

import (
	"encoding/json"
	"fmt"
	"os"

	"floorforge/pkg/engine/mesh"
	"floorforge/pkg/engine/world"
)

// Kind is the role a template plays during generation
type Kind string

const (
	KindStart      Kind = "start"
	KindExit       Kind = "exit"
	KindStairwell  Kind = "stairwell"
	KindStoreroom  Kind = "storeroom"
	KindConnecting Kind = "connecting"
	KindUnique     Kind = "unique"
)

// Kinds lists every template kind in library order
var Kinds = []Kind{KindStart, KindConnecting, KindUnique, KindStairwell, KindExit, KindStoreroom}

// IsValid reports whether k is a known kind
func (k Kind) IsValid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// DefaultDoorwaySize is the width, height and depth of a doorway volume facing North
var DefaultDoorwaySize = world.V(1.5, 2.5, 0.2)

// Piece is one child box of a room
type Piece struct {
	Name     string     `json:"name"`
	Material string     `json:"material"`
	Center   world.Vec3 `json:"center"`
	Size     world.Vec3 `json:"size"`
}

// Doorway is an authored connection point on the room's outline. Position is
// at floor level in room space; Facing points out of the room.
type Doorway struct {
	Position world.Vec3      `json:"position"`
	Facing   world.Direction `json:"facing"`
	Size     *world.Vec3     `json:"size,omitempty"` // defaults to DefaultDoorwaySize
}

// Yaw returns the doorway's facing in room space
func (d Doorway) Yaw() float64 {
	return d.Facing.Yaw()
}

// Bounds returns the doorway's volume in room space
func (d Doorway) Bounds() world.Bounds {
	size := DefaultDoorwaySize
	if d.Size != nil {
		size = *d.Size
	}
	if d.Facing == world.East || d.Facing == world.West {
		size.X, size.Z = size.Z, size.X
	}
	return world.NewBounds(d.Position.Add(world.V(0, size.Y/2, 0)), size)
}

// Scenery is one mutually exclusive decoration variant of a room
type Scenery struct {
	Name   string       `json:"name"`
	Spawns []world.Vec3 `json:"spawns"`
}

// Template is an authored room
type Template struct {
	Name        string       `json:"name"`
	Kind        Kind         `json:"kind"`
	Pieces      []Piece      `json:"pieces"`
	Doorways    []Doorway    `json:"doorways"`
	Scenery     []Scenery    `json:"scenery,omitempty"`
	Spawns      []world.Vec3 `json:"spawns,omitempty"` // always available, whatever the scenery
	PlayerSpawn *world.Vec3  `json:"player_spawn,omitempty"`
}

// ChildGeometry returns the template pieces in mesh form
func (t *Template) ChildGeometry() []mesh.Piece {
	pieces := make([]mesh.Piece, 0, len(t.Pieces))
	for _, p := range t.Pieces {
		pieces = append(pieces, mesh.Piece{
			Name:     p.Name,
			Material: p.Material,
			Bounds:   world.NewBounds(p.Center, p.Size),
		})
	}
	return pieces
}

// Bounds returns the local box enclosing every piece
func (t *Template) Bounds() world.Bounds {
	var b world.Bounds
	for _, p := range t.Pieces {
		b = b.Encapsulate(world.NewBounds(p.Center, p.Size))
	}
	return b
}

// Validate checks if a template is usable
func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if !t.Kind.IsValid() {
		return fmt.Errorf("template %s: invalid kind %q", t.Name, t.Kind)
	}
	if len(t.Pieces) == 0 {
		return fmt.Errorf("template %s: at least one piece is required", t.Name)
	}
	for i, p := range t.Pieces {
		if p.Size.X <= 0 || p.Size.Y <= 0 || p.Size.Z <= 0 {
			return fmt.Errorf("template %s: piece %d has non-positive size %v", t.Name, i, p.Size)
		}
	}
	if len(t.Doorways) == 0 {
		return fmt.Errorf("template %s: at least one doorway is required", t.Name)
	}
	for i, d := range t.Doorways {
		if !d.Facing.IsValid() {
			return fmt.Errorf("template %s: doorway %d has invalid facing", t.Name, i)
		}
	}
	for i, s := range t.Scenery {
		if s.Name == "" {
			return fmt.Errorf("template %s: scenery %d needs a name", t.Name, i)
		}
	}
	if t.Kind == KindStairwell && len(t.Doorways) < 2 {
		return fmt.Errorf("template %s: a stairwell needs a doorway in and a doorway up", t.Name)
	}
	return nil
}

// Library holds a collection of templates
type Library struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Templates   []*Template `json:"templates"`
}

// Validate checks every template and that the single-instance kinds appear at most once
func (l *Library) Validate() error {
	names := make(map[string]bool)
	counts := make(map[Kind]int)
	for _, t := range l.Templates {
		if err := t.Validate(); err != nil {
			return err
		}
		if names[t.Name] {
			return fmt.Errorf("duplicate template name %s", t.Name)
		}
		names[t.Name] = true
		counts[t.Kind]++
	}
	for _, k := range []Kind{KindStart, KindExit, KindStairwell, KindStoreroom} {
		if counts[k] > 1 {
			return fmt.Errorf("library %s: %d %s templates, want at most 1", l.Name, counts[k], k)
		}
	}
	return nil
}

// ByKind returns every template of kind k in library order
func (l *Library) ByKind(k Kind) []*Template {
	var result []*Template
	for _, t := range l.Templates {
		if t.Kind == k {
			result = append(result, t)
		}
	}
	return result
}

// Get returns the template with the given name
func (l *Library) Get(name string) (*Template, bool) {
	for _, t := range l.Templates {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Registry returns the library grouped by role
func (l *Library) Registry() *Registry {
	r := &Registry{
		Connecting: l.ByKind(KindConnecting),
		Unique:     l.ByKind(KindUnique),
	}
	first := func(k Kind) *Template {
		if ts := l.ByKind(k); len(ts) > 0 {
			return ts[0]
		}
		return nil
	}
	r.Start = first(KindStart)
	r.Exit = first(KindExit)
	r.Stairwell = first(KindStairwell)
	r.Storeroom = first(KindStoreroom)
	return r
}

// Registry is the template set generation draws from
type Registry struct {
	Start     *Template
	Exit      *Template
	Stairwell *Template
	Storeroom *Template

	// Connecting rooms are drawn with replacement
	Connecting []*Template
	// Unique rooms are placed at most once per level
	Unique []*Template
}

// Parse decodes and validates a library
func Parse(data []byte) (*Library, error) {
	var library Library
	if err := json.Unmarshal(data, &library); err != nil {
		return nil, fmt.Errorf("failed to parse room library JSON: %w", err)
	}
	if err := library.Validate(); err != nil {
		return nil, err
	}
	return &library, nil
}

// Load reads a library from a JSON file
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read room library file: %w", err)
	}
	return Parse(data)
}
