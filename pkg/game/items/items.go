// Package items scatters game items over the spawn points of a finished
// level. It only reads the level.
package items

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"floorforge/pkg/engine/world"
	"floorforge/pkg/game/level"
)

// ErrNoSpawnPoints is returned when the level has fewer free spawn points
// than items to place
var ErrNoSpawnPoints = errors.New("no free spawn points")

// Kind is the category of an item
type Kind int

const (
	// Objective items are what the player is sent to collect
	Objective Kind = iota
	// Keycard opens the storerooms
	Keycard
	// Rare items only appear in storerooms
	Rare
)

func (k Kind) String() string {
	switch k {
	case Objective:
		return "objective"
	case Keycard:
		return "keycard"
	case Rare:
		return "rare"
	default:
		return "unknown"
	}
}

// Manifest lists what to place
type Manifest struct {
	Objectives []string
	Keycard    string   // empty for no keycard
	Rare       []string // one of these goes to a storeroom
}

// DefaultManifest is the item set the command uses
func DefaultManifest() Manifest {
	return Manifest{
		Objectives: []string{"Fuel Cell", "Navigation Chip", "Coolant Valve", "Signal Booster"},
		Keycard:    "Storeroom Keycard",
		Rare:       []string{"Power Coil", "Prototype Lens"},
	}
}

// Placement is an item put at a spawn point
type Placement struct {
	Name     string
	Kind     Kind
	Floor    int
	Room     *level.Room
	Position world.Vec3
}

// pool is the free spawn points of each floor. A position is handed out once
// even when two rooms expose it.
type pool struct {
	floors [][]level.SpawnPoint
	used   mapset.Set[world.Vec3]
}

func newPool(l *level.Level) *pool {
	p := &pool{used: mapset.New[world.Vec3]()}
	for _, f := range l.Floors {
		p.floors = append(p.floors, append([]level.SpawnPoint(nil), f.ItemSpawnPoints...))
	}
	return p
}

// take removes a random free point from a random floor that still has one
func (p *pool) take(rng *rand.Rand) (int, level.SpawnPoint, bool) {
	for {
		var open []int
		for i, points := range p.floors {
			if len(points) > 0 {
				open = append(open, i)
			}
		}
		if len(open) == 0 {
			return 0, level.SpawnPoint{}, false
		}

		floor := open[rng.Intn(len(open))]
		points := p.floors[floor]
		i := rng.Intn(len(points))
		point := points[i]
		p.floors[floor] = append(points[:i], points[i+1:]...)

		if p.used.Has(point.Position) {
			continue
		}
		p.used.Put(point.Position)
		return floor, point, true
	}
}

// Distribute places every objective and the keycard on floor spawn points,
// then one rare item on a storeroom spawn point. Objectives are drawn in
// random order; no spawn point is used twice.
func Distribute(rng *rand.Rand, l *level.Level, m Manifest) ([]Placement, error) {
	p := newPool(l)
	var placed []Placement

	put := func(name string, kind Kind) error {
		floor, point, ok := p.take(rng)
		if !ok {
			return fmt.Errorf("%w: cannot place %s %q", ErrNoSpawnPoints, kind, name)
		}
		placed = append(placed, Placement{Name: name, Kind: kind, Floor: floor, Room: point.Room, Position: point.Position})
		return nil
	}

	remaining := append([]string(nil), m.Objectives...)
	for len(remaining) > 0 {
		i := rng.Intn(len(remaining))
		if err := put(remaining[i], Objective); err != nil {
			return placed, err
		}
		remaining = append(remaining[:i], remaining[i+1:]...)
	}

	if m.Keycard != "" {
		if err := put(m.Keycard, Keycard); err != nil {
			return placed, err
		}
	}

	if len(m.Rare) > 0 {
		points := l.StoreroomSpawnPoints
		if len(points) == 0 {
			return placed, fmt.Errorf("%w: the level has no storeroom for a rare item", ErrNoSpawnPoints)
		}
		point := points[rng.Intn(len(points))]
		placed = append(placed, Placement{
			Name:     m.Rare[rng.Intn(len(m.Rare))],
			Kind:     Rare,
			Floor:    point.Room.Floor,
			Room:     point.Room,
			Position: point.Position,
		})
	}

	return placed, nil
}
