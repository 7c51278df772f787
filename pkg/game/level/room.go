package level

import (
	"math/rand"
	"strconv"

	"github.com/google/uuid"

	"floorforge/pkg/engine/mesh"
	"floorforge/pkg/engine/world"
	"floorforge/pkg/game/template"
)

// Room is a placed (or candidate) instance of a template. Its shape never
// changes after creation; only its pose and doorway state do.
type Room struct {
	ID        uuid.UUID
	Template  *template.Template
	Floor     int
	Storeroom bool

	Doorways []*Doorway
	Scenery  []*Scenery

	pose      world.Transform
	merged    *mesh.Mesh
	physics   world.Physics
	body      *world.Body
	destroyed bool
}

// Doorway is a connection point of a room
type Doorway struct {
	Room  *Room
	Index int
	// Local is the doorway pose in room space, facing out of the room
	Local world.Transform

	// Openable is set once the doorway has been connected and is passable
	Openable bool
	// Peer is the doorway this one was connected to
	Peer *Doorway

	bounds world.Bounds
	body   *world.Body
}

// Scenery is an instance of one of the room's mutually exclusive decorations
type Scenery struct {
	Name    string
	Spawns  []world.Vec3
	Enabled bool
}

// NewRoom instantiates a template at the identity pose. The room has no
// collision volume until Attach is called.
func NewRoom(id uuid.UUID, t *template.Template, floor int) *Room {
	r := &Room{
		ID:       id,
		Template: t,
		Floor:    floor,
		pose:     world.Identity,
	}
	for i, d := range t.Doorways {
		r.Doorways = append(r.Doorways, &Doorway{
			Room:   r,
			Index:  i,
			Local:  world.NewTransform(d.Position, d.Yaw()),
			bounds: d.Bounds(),
		})
	}
	for _, s := range t.Scenery {
		r.Scenery = append(r.Scenery, &Scenery{Name: s.Name, Spawns: s.Spawns})
	}
	return r
}

func (r *Room) String() string {
	return r.Template.Name
}

// ChildGeometry returns the template pieces for merging
func (r *Room) ChildGeometry() []mesh.Piece {
	return r.Template.ChildGeometry()
}

// MergedGeometry returns the merged mesh, or nil before merging
func (r *Room) MergedGeometry() *mesh.Mesh {
	return r.merged
}

// SetMergedGeometry stores the merged mesh
func (r *Room) SetMergedGeometry(m *mesh.Mesh) {
	r.merged = m
}

// Bounds returns the room's volume in room space
func (r *Room) Bounds() world.Bounds {
	if r.merged != nil {
		return r.merged.Bounds
	}
	return r.Template.Bounds()
}

// Box returns the room's volume in world space
func (r *Room) Box() world.Box {
	return r.Bounds().In(r.pose)
}

// Pose returns the room's world pose
func (r *Room) Pose() world.Transform {
	return r.pose
}

// SetPose moves the room and every volume it registered
func (r *Room) SetPose(t world.Transform) {
	r.pose = world.NewTransform(t.Position, t.Yaw)
	if r.body != nil {
		r.body.SetPose(r.pose)
	}
	for _, d := range r.Doorways {
		if d.body != nil {
			d.body.SetPose(r.pose)
		}
	}
}

// Attach registers the room volume and its doorway volumes with p
func (r *Room) Attach(p world.Physics) {
	if r.physics != nil || r.destroyed {
		return
	}
	r.physics = p
	r.body = p.Add(r.ID, world.LayerRoom, r.Bounds(), r.pose)
	for _, d := range r.Doorways {
		d.body = p.Add(r.ID, world.LayerDoorway, d.bounds, r.pose)
	}
}

// Destroy releases every volume the room registered. It is safe to call more than once.
func (r *Room) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	if r.physics == nil {
		return
	}
	if r.body != nil {
		r.physics.Remove(r.body)
		r.body = nil
	}
	for _, d := range r.Doorways {
		if d.body != nil {
			r.physics.Remove(d.body)
			d.body = nil
		}
	}
}

// Destroyed reports whether Destroy has been called
func (r *Room) Destroyed() bool {
	return r.destroyed
}

// Body returns the room's collision volume, nil when not attached
func (r *Room) Body() *world.Body {
	return r.body
}

// EnableScenery activates one scenery set and disables the rest. With random
// set the set is drawn from rng, otherwise the first is used.
func (r *Room) EnableScenery(rng *rand.Rand, random bool) *Scenery {
	if len(r.Scenery) == 0 {
		return nil
	}
	pick := 0
	if random {
		pick = rng.Intn(len(r.Scenery))
	}
	for i, s := range r.Scenery {
		s.Enabled = i == pick
	}
	return r.Scenery[pick]
}

// ActiveScenery returns the enabled scenery set, if any
func (r *Room) ActiveScenery() *Scenery {
	for _, s := range r.Scenery {
		if s.Enabled {
			return s
		}
	}
	return nil
}

// SpawnPoints returns the room's item spawn points in world space: the
// template's fixed spawns plus those of the active scenery.
func (r *Room) SpawnPoints() []SpawnPoint {
	var points []SpawnPoint
	add := func(local world.Vec3) {
		points = append(points, SpawnPoint{Room: r, Position: r.pose.Apply(local)})
	}
	for _, p := range r.Template.Spawns {
		add(p)
	}
	if s := r.ActiveScenery(); s != nil {
		for _, p := range s.Spawns {
			add(p)
		}
	}
	return points
}

// WorldPose returns the doorway's pose in world space
func (d *Doorway) WorldPose() world.Transform {
	return d.Room.pose.Compose(d.Local)
}

// Box returns the doorway's volume in world space
func (d *Doorway) Box() world.Box {
	return d.bounds.In(d.Room.pose)
}

// Active reports whether the doorway's geometry is still solid
func (d *Doorway) Active() bool {
	return d.body != nil && d.body.Enabled()
}

// Deactivate disables the doorway's geometry, making it passable
func (d *Doorway) Deactivate() {
	if d.body != nil {
		d.body.SetEnabled(false)
	}
}

// Connect links two doorways. The candidate side becomes openable and the
// target side loses its geometry.
func Connect(target, candidate *Doorway) {
	target.Deactivate()
	target.Peer = candidate
	candidate.Peer = target
	candidate.Openable = true
}

func (d *Doorway) String() string {
	return d.Room.String() + "#" + strconv.Itoa(d.Index)
}
