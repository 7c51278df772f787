package generator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"floorforge/pkg/game/console"
	"floorforge/pkg/game/level"
	"floorforge/pkg/game/template"
)

// placement controls how a candidate room may attach to a floor
type placement struct {
	// designated rooms connect through their first doorway only
	designated bool
	// expose adds the candidate's other doorways to the frontier
	expose bool
	// storeroom rooms are kept apart from the floor's main rooms
	storeroom bool
}

var (
	connectingPlacement = placement{expose: true}
	uniquePlacement     = placement{expose: true}
	stairwellPlacement  = placement{designated: true}
	exitPlacement       = placement{designated: true}
	storeroomPlacement  = placement{designated: true, storeroom: true}
)

// instantiate creates a candidate room with merged geometry and registers
// its volumes. Its id is drawn from the generator's random source so a
// seeded run is reproducible.
func (g *Generator) instantiate(t *template.Template, floor int) (*level.Room, error) {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return nil, fmt.Errorf("room id: %w", err)
	}
	room := level.NewRoom(id, t, floor)
	if err := g.cfg.Merger.MergeChildGeometry(room); err != nil {
		return nil, fmt.Errorf("merging %s: %w", t.Name, err)
	}
	room.Attach(g.cfg.Physics)
	return room, nil
}

// place attaches a new instance of t to the first open doorway of f where it
// fits. Frontier doorways are tried in order and, for each, the candidate's
// doorways in order. A candidate that fits nowhere is destroyed.
func (g *Generator) place(ctx context.Context, f *level.Floor, t *template.Template, how placement) (*level.Room, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: no template to place on floor %d", ErrEmptyPool, f.Number)
	}
	room, err := g.instantiate(t, f.Number)
	if err != nil {
		return nil, err
	}

	candidates := room.Doorways
	if how.designated {
		candidates = candidates[:1]
	}

	for _, target := range f.Frontier.Snapshot() {
		for _, doorway := range candidates {
			if err := ctx.Err(); err != nil {
				room.Destroy()
				return nil, err
			}
			orient(room, doorway, target)
			if overlaps(g.cfg.Physics, room, g.cfg.PlacementMargin) {
				continue
			}
			if err := g.commit(f, room, doorway, target, how); err != nil {
				room.Destroy()
				return nil, err
			}
			g.log.Debugf(console.T("ROOM_PLACED", "ROOM{"+t.Name+"}")+" (FLOOR{%d}, %v)", f.Number, room.Pose())
			return room, nil
		}
	}

	room.Destroy()
	g.log.Debugf("%s", console.T("ROOM_REJECTED", "ROOM{"+t.Name+"}"))
	return nil, fmt.Errorf("%w: %s on floor %d", ErrPlacementInfeasible, t.Name, f.Number)
}

// commit records a successful pairing. Nothing in the frontier changes
// before this point.
func (g *Generator) commit(f *level.Floor, room *level.Room, doorway, target *level.Doorway, how placement) error {
	tx := f.Frontier.Begin(target, doorway)
	if err := tx.Remove(target); err != nil {
		return err
	}
	if err := tx.Remove(doorway); err != nil {
		return err
	}
	level.Connect(target, doorway)

	if how.expose {
		rest := make([]*level.Doorway, 0, len(room.Doorways)-1)
		for _, d := range room.Doorways {
			if d != doorway {
				rest = append(rest, d)
			}
		}
		if err := f.Frontier.Insert(g.rng, rest...); err != nil {
			return err
		}
	}

	if how.storeroom {
		room.Storeroom = true
		f.Storerooms = append(f.Storerooms, room)
	} else {
		f.Rooms = append(f.Rooms, room)
	}
	return nil
}

// placeStart puts the start room at the origin and opens all its doorways
func (g *Generator) placeStart(f *level.Floor) error {
	room, err := g.instantiate(g.registry.Start, f.Number)
	if err != nil {
		return err
	}
	if err := f.Frontier.Insert(g.rng, room.Doorways...); err != nil {
		room.Destroy()
		return err
	}
	f.Rooms = append(f.Rooms, room)
	g.level.Start = room
	return nil
}
