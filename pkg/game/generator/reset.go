package generator

import (
	"floorforge/pkg/game/level"
)

// teardown destroys the attempt in progress: every room, the start and exit
// singletons and every floor. The floor counter goes back to zero.
func (g *Generator) teardown() {
	if g.level != nil {
		g.level.Destroy()
		g.level = nil
	}
	g.floor = 0
}

// reset tears down any attempt in progress and prepares a fresh one with the
// unique room pool restored to its original membership.
func (g *Generator) reset() {
	g.teardown()
	g.level = level.New(g.cfg.Seed)
	g.unique.reset(g.rng, g.cfg.UniqueRoomChance, g.cfg.UniqueRoomCount)
}
