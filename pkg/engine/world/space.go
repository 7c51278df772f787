package world

import (
	"github.com/google/uuid"
)

// Layer is a bit mask used to filter overlap queries
type Layer uint32

// Layers used by level generation
const (
	LayerRoom Layer = 1 << iota
	LayerDoorway

	LayerAll Layer = ^Layer(0)
)

// Physics is the contract the level engine needs from a geometry engine:
// register collision volumes, move them, and ask which volumes intersect a box.
type Physics interface {
	Add(owner uuid.UUID, layer Layer, local Bounds, pose Transform) *Body
	Remove(b *Body)
	OverlapBox(center, halfExtents Vec3, yaw float64, mask Layer) []*Body
	SyncTransforms()
}

// Body is a collision volume registered in a Space. Its shape is fixed in the
// owner's local space; only its pose changes.
type Body struct {
	id      uint64
	owner   uuid.UUID
	layer   Layer
	local   Bounds
	pose    Transform
	enabled bool

	space *Space
	cells []*Cell
	dirty bool
}

// Owner returns the id of the object the body belongs to
func (b *Body) Owner() uuid.UUID {
	return b.owner
}

// Layer returns the body's layer
func (b *Body) Layer() Layer {
	return b.layer
}

// Enabled reports whether the body takes part in queries
func (b *Body) Enabled() bool {
	return b.enabled
}

// SetEnabled switches the body on or off for queries
func (b *Body) SetEnabled(enabled bool) {
	b.enabled = enabled
}

// Pose returns the body's last assigned pose
func (b *Body) Pose() Transform {
	return b.pose
}

// SetPose moves the body. The broad phase picks the change up on the next sync.
func (b *Body) SetPose(t Transform) {
	b.pose = t
	if b.space != nil && !b.dirty {
		b.dirty = true
		b.space.dirty = append(b.space.dirty, b)
	}
}

// Box returns the body's world volume
func (b *Body) Box() Box {
	return b.local.In(b.pose)
}

// Space is an in-memory Physics implementation: a sparse grid broad phase
// with an oriented-box narrow phase.
type Space struct {
	grid   *Grid
	bodies map[*Body]struct{}
	dirty  []*Body
	nextID uint64
}

// NewSpace creates an empty space with the given broad-phase cell size
func NewSpace(cellSize float64) *Space {
	return &Space{
		grid:   NewGrid(cellSize),
		bodies: make(map[*Body]struct{}),
	}
}

// Len returns the number of registered bodies
func (s *Space) Len() int {
	return len(s.bodies)
}

// Add registers a new enabled body
func (s *Space) Add(owner uuid.UUID, layer Layer, local Bounds, pose Transform) *Body {
	s.nextID++
	b := &Body{
		id:      s.nextID,
		owner:   owner,
		layer:   layer,
		local:   local,
		pose:    pose,
		enabled: true,
		space:   s,
	}
	s.bodies[b] = struct{}{}
	s.index(b)
	return b
}

// Remove unregisters a body. Removing twice is harmless.
func (s *Space) Remove(b *Body) {
	if b == nil || b.space != s {
		return
	}
	s.grid.Remove(b, b.cells)
	b.cells = nil
	b.space = nil
	delete(s.bodies, b)
}

func (s *Space) index(b *Body) {
	s.grid.Remove(b, b.cells)
	lo, hi := b.Box().Extents()
	b.cells = s.grid.Insert(b, lo, hi)
	b.dirty = false
}

// SyncTransforms re-indexes every body moved since the last sync
func (s *Space) SyncTransforms() {
	for _, b := range s.dirty {
		if b.space == s && b.dirty {
			s.index(b)
		}
	}
	s.dirty = s.dirty[:0]
}

// OverlapBox returns the enabled bodies on mask intersecting the given box,
// ordered by registration. Pending moves are synced first.
func (s *Space) OverlapBox(center, halfExtents Vec3, yaw float64, mask Layer) []*Body {
	s.SyncTransforms()
	query := Box{Center: center, HalfExtents: halfExtents.Abs(), Yaw: NormalizeYaw(yaw)}
	lo, hi := query.Extents()
	var hits []*Body
	for _, b := range s.grid.Collect(lo, hi) {
		if !b.enabled || b.layer&mask == 0 {
			continue
		}
		if query.Intersects(b.Box()) {
			hits = append(hits, b)
		}
	}
	return hits
}
