package generator

import (
	"context"
	"fmt"

	"floorforge/pkg/game/console"
	"floorforge/pkg/game/level"
	"floorforge/pkg/game/template"
)

// Stage is a step of floor construction
type Stage int

const (
	StageStartRoom Stage = iota
	StageSeedFrontier
	StageConnectingRooms
	StageStairwell
	StageExitRoom
	StageUniqueRooms
	StageStorerooms
	StageFinalize
)

func (s Stage) String() string {
	switch s {
	case StageStartRoom:
		return "start room"
	case StageSeedFrontier:
		return "seed frontier"
	case StageConnectingRooms:
		return "connecting rooms"
	case StageStairwell:
		return "stairwell"
	case StageExitRoom:
		return "exit room"
	case StageUniqueRooms:
		return "unique rooms"
	case StageStorerooms:
		return "storerooms"
	case StageFinalize:
		return "finalize"
	default:
		return "unknown"
	}
}

// floorStages returns the stages that build floor n of total
func floorStages(n, total int) []Stage {
	stages := []Stage{StageStartRoom, StageConnectingRooms}
	if n > 0 {
		stages[0] = StageSeedFrontier
	}
	if n < total-1 {
		return append(stages, StageStairwell)
	}
	return append(stages, StageExitRoom)
}

// run builds one complete level into g.level. Any error leaves a partial
// level behind for the caller to tear down.
func (g *Generator) run(ctx context.Context) error {
	if err := g.wait(ctx, g.cfg.StartupDelay); err != nil {
		return err
	}

	for g.floor < g.cfg.Floors {
		f := g.level.AddFloor()
		g.log.Debugf("GT{FLOOR_START}: FLOOR{%d}", f.Number)
		for _, stage := range floorStages(f.Number, g.cfg.Floors) {
			if err := g.buildStage(ctx, f, stage); err != nil {
				return fmt.Errorf("floor %d, %v: %w", f.Number, stage, err)
			}
		}
		g.floor++
	}

	if err := g.placeUniqueRooms(ctx); err != nil {
		return fmt.Errorf("%v: %w", StageUniqueRooms, err)
	}
	if err := g.placeStorerooms(ctx); err != nil {
		return fmt.Errorf("%v: %w", StageStorerooms, err)
	}
	g.finalize()
	return nil
}

func (g *Generator) buildStage(ctx context.Context, f *level.Floor, stage Stage) error {
	switch stage {
	case StageStartRoom:
		if err := g.placeStart(f); err != nil {
			return err
		}
	case StageSeedFrontier:
		if err := g.seedFrontier(f); err != nil {
			return err
		}
	case StageConnectingRooms:
		for i := 0; i < g.cfg.FloorLength; i++ {
			if _, err := g.place(ctx, f, g.drawConnecting(), connectingPlacement); err != nil {
				return err
			}
			if err := g.settle(ctx); err != nil {
				return err
			}
		}
		return nil
	case StageStairwell:
		stairwell, err := g.place(ctx, f, g.registry.Stairwell, stairwellPlacement)
		if err != nil {
			return err
		}
		f.Stairwell = stairwell
	case StageExitRoom:
		exit, err := g.place(ctx, f, g.registry.Exit, exitPlacement)
		if err != nil {
			return err
		}
		g.level.Exit = exit
	}
	return g.settle(ctx)
}

// seedFrontier opens the doorways leading up out of the stairwell that ends
// the floor below. The stairwell's first doorway is its way in.
func (g *Generator) seedFrontier(f *level.Floor) error {
	below := g.level.Floors[f.Number-1].Stairwell
	if below == nil || len(below.Doorways) < 2 {
		return fmt.Errorf("%w: floor %d has no stairwell leading up", ErrInternalConsistency, f.Number-1)
	}
	return f.Frontier.Insert(g.rng, below.Doorways[1:]...)
}

// drawConnecting picks a connecting template, with replacement
func (g *Generator) drawConnecting() *template.Template {
	pool := g.registry.Connecting
	if len(pool) == 0 {
		return nil
	}
	return pool[g.rng.Intn(len(pool))]
}

// placeStorerooms places the configured number of storerooms on random
// floors, each through its single designated doorway.
func (g *Generator) placeStorerooms(ctx context.Context) error {
	for i := 0; i < g.cfg.Storerooms; i++ {
		f := g.level.Floors[g.rng.Intn(len(g.level.Floors))]
		if _, err := g.place(ctx, f, g.registry.Storeroom, storeroomPlacement); err != nil {
			return err
		}
		g.log.Debugf("GT{STOREROOM_PLACED}: FLOOR{%d}", f.Number)
		if err := g.settle(ctx); err != nil {
			return err
		}
	}
	return nil
}

// finalize enables scenery and collects item spawn points, then runs the
// informational duplicate doorway check.
func (g *Generator) finalize() {
	for _, f := range g.level.Floors {
		for _, r := range f.AllRooms() {
			r.EnableScenery(g.rng, g.cfg.RandomScenery)
		}
		for _, r := range f.Rooms {
			f.ItemSpawnPoints = append(f.ItemSpawnPoints, r.SpawnPoints()...)
		}
		for _, r := range f.Storerooms {
			g.level.StoreroomSpawnPoints = append(g.level.StoreroomSpawnPoints, r.SpawnPoints()...)
		}
	}

	g.level.DuplicateDoorways = duplicateDoorways(g.cfg.Physics, g.level)
	if g.level.DuplicateDoorways > 0 {
		g.log.Debugf("%s", console.T("DUPLICATE_DOORWAYS", g.level.DuplicateDoorways))
	}
}
