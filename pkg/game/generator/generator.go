// Package generator assembles multi-floor levels from a room template
// library. Rooms are attached doorway to doorway, first fit, and any room
// that cannot be placed without overlapping another restarts the whole level.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"floorforge/pkg/engine/mesh"
	"floorforge/pkg/game/console"
	"floorforge/pkg/game/level"
	"floorforge/pkg/game/template"
)

// LevelGenerator is anything that can produce a level
type LevelGenerator interface {
	Generate(ctx context.Context) (*level.Level, error)
	Name() string
}

// Merger fuses a room's child geometry before it is overlap tested.
// Merging an already merged room must do nothing.
type Merger interface {
	MergeChildGeometry(n mesh.Node) error
}

// Generator is the doorway placement engine. It is not safe for concurrent
// use; Session serializes runs.
type Generator struct {
	cfg      Config
	registry *template.Registry
	rng      *rand.Rand
	log      *console.Logger

	level  *level.Level
	floor  int
	unique *uniquePool
}

var _ LevelGenerator = (*Generator)(nil)

// New validates cfg against registry and creates a generator
func New(cfg Config, registry *template.Registry) (*Generator, error) {
	if err := cfg.validate(registry); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	return &Generator{
		cfg:      cfg,
		registry: registry,
		rng:      cfg.Rand,
		log:      cfg.Log,
		unique:   newUniquePool(registry.Unique),
	}, nil
}

// Name returns the name of this generator
func (g *Generator) Name() string {
	return "Doorway placement"
}

// Seed returns the seed of the random source, zero when Config.Rand was supplied
func (g *Generator) Seed() int64 {
	return g.cfg.Seed
}

// Generate builds a level. An infeasible placement destroys everything built
// so far and starts again from the first floor, up to MaxRetries times.
// Configuration, consistency and context errors end generation at once; in
// every failure case no room of the failed attempt is left registered.
func (g *Generator) Generate(ctx context.Context) (*level.Level, error) {
	g.log.Infof("%s", console.T("GENERATION_START", g.cfg.Floors, g.cfg.FloorLength, g.cfg.Seed))

	for attempt := 1; ; attempt++ {
		g.reset()
		g.level.Attempts = attempt
		g.log.Debugf("%s", console.T("GENERATION_ATTEMPT", attempt))

		err := g.run(ctx)
		if err == nil {
			lvl := g.level
			g.level = nil
			g.log.Infof("%s", console.T("GENERATION_DONE", attempt))
			return lvl, nil
		}

		g.teardown()
		if !retryable(err) {
			return nil, err
		}
		if attempt > g.cfg.MaxRetries {
			return nil, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, attempt, err)
		}
		g.log.Debugf("GT{GENERATION_RESET}: %v", err)
	}
}

// settle is the suspension point after each placement: pending transform
// changes are flushed before the next query can run.
func (g *Generator) settle(ctx context.Context) error {
	g.cfg.Physics.SyncTransforms()
	return g.wait(ctx, g.cfg.StepDelay)
}

// wait pauses for d unless ctx ends first
func (g *Generator) wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
