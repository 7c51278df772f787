package level

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// Frontier is a floor's ordered set of open doorways: the doorways new rooms
// may connect to. It indexes doorways without owning them.
type Frontier struct {
	doorways []*Doorway
	members  mapset.Set[*Doorway]
}

// NewFrontier creates an empty frontier
func NewFrontier() *Frontier {
	return &Frontier{members: mapset.New[*Doorway]()}
}

// Len returns the number of open doorways
func (f *Frontier) Len() int {
	return len(f.doorways)
}

// Has reports whether d is open in this frontier
func (f *Frontier) Has(d *Doorway) bool {
	return f.members.Has(d)
}

// Snapshot returns a copy of the frontier in its current order. Later changes
// to the frontier do not affect the copy.
func (f *Frontier) Snapshot() []*Doorway {
	out := make([]*Doorway, len(f.doorways))
	copy(out, f.doorways)
	return out
}

// Insert adds doorways one at a time, each at a random position of the
// current order. Doorways of destroyed rooms and doorways already present
// are bookkeeping errors.
func (f *Frontier) Insert(rng *rand.Rand, doorways ...*Doorway) error {
	for _, d := range doorways {
		if d.Room == nil || d.Room.Destroyed() {
			return fmt.Errorf("%w: inserting doorway %v of a destroyed room", ErrInternalConsistency, d)
		}
		if f.members.Has(d) {
			return fmt.Errorf("%w: doorway %v is already open", ErrInternalConsistency, d)
		}
		at := 0
		if len(f.doorways) > 0 {
			at = rng.Intn(len(f.doorways))
		}
		f.doorways = append(f.doorways, nil)
		copy(f.doorways[at+1:], f.doorways[at:])
		f.doorways[at] = d
		f.members.Put(d)
	}
	return nil
}

// Remove deletes d by identity. Removing a doorway that is not open is a
// bookkeeping error.
func (f *Frontier) Remove(d *Doorway) error {
	if !f.members.Has(d) {
		return fmt.Errorf("%w: doorway %v is not open", ErrInternalConsistency, d)
	}
	f.remove(d)
	return nil
}

func (f *Frontier) remove(d *Doorway) {
	for i, open := range f.doorways {
		if open == d {
			f.doorways = append(f.doorways[:i], f.doorways[i+1:]...)
			break
		}
	}
	f.members.Remove(d)
}

// Begin starts a commit consuming the given doorways. Within the commit,
// removing a consumed doorway that is no longer (or never was) open is a no-op.
func (f *Frontier) Begin(consumed ...*Doorway) *Commit {
	c := &Commit{frontier: f, consumed: mapset.New[*Doorway]()}
	for _, d := range consumed {
		c.consumed.Put(d)
	}
	return c
}

// Commit is one placement's set of frontier changes
type Commit struct {
	frontier *Frontier
	consumed mapset.Set[*Doorway]
}

// Remove deletes d from the frontier
func (c *Commit) Remove(d *Doorway) error {
	if c.frontier.members.Has(d) {
		c.frontier.remove(d)
		c.consumed.Put(d)
		return nil
	}
	if c.consumed.Has(d) {
		return nil
	}
	return fmt.Errorf("%w: doorway %v is neither open nor consumed by this placement", ErrInternalConsistency, d)
}

// Consumed reports whether d was consumed by this commit
func (c *Commit) Consumed(d *Doorway) bool {
	return c.consumed.Has(d)
}
