package generator

import (
	"fmt"
	"math/rand"
	"time"

	"floorforge/pkg/engine/mesh"
	"floorforge/pkg/engine/world"
	"floorforge/pkg/game/console"
	"floorforge/pkg/game/template"
)

// Defaults
const (
	DefaultFloors          = 3
	DefaultFloorLength     = 8
	DefaultStorerooms      = 2
	DefaultUniqueChance    = 100
	DefaultPlacementMargin = 0.1
	DefaultMaxRetries      = 500
)

// Config controls level generation
type Config struct {
	// Seed feeds the random source when Rand is nil. Zero picks a time-based seed.
	Seed int64
	// Rand overrides the random source
	Rand *rand.Rand

	Floors      int
	FloorLength int
	Storerooms  int

	// UniqueRoomChance is the percent chance each unique template joins an attempt
	UniqueRoomChance int
	// UniqueRoomCount caps the unique rooms per level, zero means no cap
	UniqueRoomCount int

	// RandomScenery picks a random scenery set per room instead of the first
	RandomScenery bool

	// PlacementMargin shrinks room volumes before overlap tests so rooms may touch
	PlacementMargin float64

	// MaxRetries bounds how many restarts may follow an infeasible placement
	MaxRetries int

	// StartupDelay is waited before the first placement, StepDelay after each one
	StartupDelay time.Duration
	StepDelay    time.Duration

	Physics world.Physics
	Merger  Merger
	Log     *console.Logger
}

// DefaultConfig returns a config with every default filled in
func DefaultConfig() Config {
	return Config{
		Floors:           DefaultFloors,
		FloorLength:      DefaultFloorLength,
		Storerooms:       DefaultStorerooms,
		UniqueRoomChance: DefaultUniqueChance,
		PlacementMargin:  DefaultPlacementMargin,
		MaxRetries:       DefaultMaxRetries,
	}
}

// validate checks cfg against the templates generation will draw from
func (cfg *Config) validate(reg *template.Registry) error {
	if reg == nil {
		return fmt.Errorf("%w: no template registry", ErrInvalidConfig)
	}
	if cfg.Floors < 1 {
		return fmt.Errorf("%w: floors must be at least 1, got %d", ErrInvalidConfig, cfg.Floors)
	}
	if cfg.FloorLength < 0 || cfg.Storerooms < 0 || cfg.UniqueRoomCount < 0 || cfg.MaxRetries < 0 {
		return fmt.Errorf("%w: counts must not be negative", ErrInvalidConfig)
	}
	if cfg.UniqueRoomChance < 0 || cfg.UniqueRoomChance > 100 {
		return fmt.Errorf("%w: unique room chance %d is not a percentage", ErrInvalidConfig, cfg.UniqueRoomChance)
	}
	if cfg.PlacementMargin < 0 {
		return fmt.Errorf("%w: negative placement margin", ErrInvalidConfig)
	}
	if cfg.FloorLength > 0 && len(reg.Connecting) == 0 {
		return fmt.Errorf("%w: connecting rooms", ErrEmptyPool)
	}

	required := []struct {
		t    *template.Template
		kind template.Kind
		need bool
	}{
		{reg.Start, template.KindStart, true},
		{reg.Exit, template.KindExit, true},
		{reg.Stairwell, template.KindStairwell, cfg.Floors > 1},
		{reg.Storeroom, template.KindStoreroom, cfg.Storerooms > 0},
	}
	for _, r := range required {
		if !r.need {
			continue
		}
		if r.t == nil {
			return fmt.Errorf("%w: no %s template", ErrInvalidConfig, r.kind)
		}
		if len(r.t.Doorways) == 0 {
			return fmt.Errorf("%w: %s template %s has no doorway", ErrInvalidConfig, r.kind, r.t.Name)
		}
	}
	if cfg.Floors > 1 && len(reg.Stairwell.Doorways) < 2 {
		return fmt.Errorf("%w: stairwell %s has no doorway leading up", ErrInvalidConfig, reg.Stairwell.Name)
	}
	for _, t := range append(append([]*template.Template{}, reg.Connecting...), reg.Unique...) {
		if len(t.Doorways) == 0 {
			return fmt.Errorf("%w: template %s has no doorway", ErrInvalidConfig, t.Name)
		}
	}
	return nil
}

// withDefaults fills in collaborators that were left unset
func (cfg Config) withDefaults() Config {
	if cfg.Rand == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		cfg.Seed = seed
		cfg.Rand = rand.New(rand.NewSource(seed))
	}
	if cfg.Physics == nil {
		cfg.Physics = world.NewSpace(world.DefaultCellSize)
	}
	if cfg.Merger == nil {
		cfg.Merger = mesh.NewCombiner()
	}
	if cfg.Log == nil {
		cfg.Log = console.Discard()
	}
	return cfg
}
