package generator

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"floorforge/pkg/game/template"
)

// uniquePool holds the unique templates still to be placed in the current
// attempt. Membership only shrinks until the pool is reset.
type uniquePool struct {
	all       []*template.Template
	remaining []*template.Template
	consumed  mapset.Set[*template.Template]
}

func newUniquePool(templates []*template.Template) *uniquePool {
	return &uniquePool{all: templates, consumed: mapset.New[*template.Template]()}
}

// reset restores the pool. Each template is kept with chance percent
// probability and at most limit are kept when limit is positive.
func (p *uniquePool) reset(rng *rand.Rand, chance, limit int) {
	p.remaining = p.remaining[:0]
	p.consumed = mapset.New[*template.Template]()
	for _, t := range p.all {
		if limit > 0 && len(p.remaining) >= limit {
			break
		}
		if chance < 100 && rng.Intn(100) >= chance {
			continue
		}
		p.remaining = append(p.remaining, t)
	}
}

func (p *uniquePool) Len() int {
	return len(p.remaining)
}

// consume takes t out of the pool
func (p *uniquePool) consume(t *template.Template) error {
	if p.consumed.Has(t) {
		return fmt.Errorf("%w: unique room %s consumed twice", ErrInternalConsistency, t.Name)
	}
	for i, r := range p.remaining {
		if r == t {
			p.remaining = append(p.remaining[:i], p.remaining[i+1:]...)
			p.consumed.Put(t)
			return nil
		}
	}
	return fmt.Errorf("%w: unique room %s is not in the pool", ErrInternalConsistency, t.Name)
}

// placeUniqueRooms places every pooled unique room on a random built floor,
// searching all of its doorways like a connecting room.
func (g *Generator) placeUniqueRooms(ctx context.Context) error {
	for g.unique.Len() > 0 {
		f := g.level.Floors[g.rng.Intn(len(g.level.Floors))]
		t := g.unique.remaining[g.rng.Intn(g.unique.Len())]
		if _, err := g.place(ctx, f, t, uniquePlacement); err != nil {
			return err
		}
		if err := g.unique.consume(t); err != nil {
			return err
		}
		g.log.Debugf("GT{UNIQUE_PLACED}: ROOM{%s} FLOOR{%d}", t.Name, f.Number)
		if err := g.settle(ctx); err != nil {
			return err
		}
	}
	return nil
}
