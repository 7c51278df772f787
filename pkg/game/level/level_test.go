package level

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/uuid"

	"floorforge/pkg/engine/world"
	"floorforge/pkg/game/template"
)

func corridorTemplate(kind template.Kind) *template.Template {
	return &template.Template{
		Name: "corridor",
		Kind: kind,
		Pieces: []template.Piece{
			{Name: "shell", Material: "stone", Center: world.V(0, 1.5, 0), Size: world.V(4, 3, 10)},
		},
		Doorways: []template.Doorway{
			{Position: world.V(0, 0, -5), Facing: world.South},
			{Position: world.V(0, 0, 5), Facing: world.North},
		},
		Scenery: []template.Scenery{
			{Name: "bare"},
			{Name: "crates", Spawns: []world.Vec3{world.V(1, 0, 1)}},
		},
		Spawns: []world.Vec3{world.V(0, 0, 0)},
	}
}

func newRoom(t *testing.T, space *world.Space, floor int, pose world.Transform) *Room {
	t.Helper()
	r := NewRoom(uuid.New(), corridorTemplate(template.KindConnecting), floor)
	r.SetPose(pose)
	r.Attach(space)
	return r
}

func TestFrontierInsertRemove(t *testing.T) {
	space := world.NewSpace(world.DefaultCellSize)
	r := newRoom(t, space, 0, world.Identity)
	other := newRoom(t, space, 0, world.NewTransform(world.V(0, 0, 10), 0))
	rng := rand.New(rand.NewSource(1))

	f := NewFrontier()
	if err := f.Insert(rng, r.Doorways...); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := f.Insert(rng, other.Doorways[0]); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if f.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", f.Len())
	}

	snap := f.Snapshot()
	if err := f.Remove(r.Doorways[0]); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if len(snap) != 3 {
		t.Errorf("snapshot changed length to %d after Remove", len(snap))
	}
	if f.Has(r.Doorways[0]) {
		t.Error("Has() = true after Remove")
	}

	if err := f.Remove(r.Doorways[0]); !errors.Is(err, ErrInternalConsistency) {
		t.Errorf("second Remove() error = %v, want ErrInternalConsistency", err)
	}
	if err := f.Insert(rng, r.Doorways[1]); !errors.Is(err, ErrInternalConsistency) {
		t.Errorf("Insert(duplicate) error = %v, want ErrInternalConsistency", err)
	}
}

func TestFrontierRejectsDestroyedRooms(t *testing.T) {
	space := world.NewSpace(world.DefaultCellSize)
	r := newRoom(t, space, 0, world.Identity)
	r.Destroy()

	f := NewFrontier()
	if err := f.Insert(rand.New(rand.NewSource(1)), r.Doorways[0]); !errors.Is(err, ErrInternalConsistency) {
		t.Errorf("Insert(destroyed room doorway) error = %v, want ErrInternalConsistency", err)
	}
	if f.Len() != 0 {
		t.Errorf("Len() = %d, want 0", f.Len())
	}
}

func TestFrontierInsertOrderIsSeeded(t *testing.T) {
	space := world.NewSpace(world.DefaultCellSize)
	var doorways []*Doorway
	for i := 0; i < 4; i++ {
		doorways = append(doorways, newRoom(t, space, 0, world.NewTransform(world.V(float64(i)*20, 0, 0), 0)).Doorways...)
	}

	order := func(seed int64) []*Doorway {
		f := NewFrontier()
		if err := f.Insert(rand.New(rand.NewSource(seed)), doorways...); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		return f.Snapshot()
	}

	a, b := order(7), order(7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("order differs at %d for the same seed", i)
		}
	}
}

func TestCommitRemove(t *testing.T) {
	space := world.NewSpace(world.DefaultCellSize)
	target := newRoom(t, space, 0, world.Identity).Doorways[1]
	candidate := newRoom(t, space, 0, world.NewTransform(world.V(0, 0, 10), 0)).Doorways[0]
	stranger := newRoom(t, space, 0, world.NewTransform(world.V(30, 0, 0), 0)).Doorways[0]

	f := NewFrontier()
	if err := f.Insert(rand.New(rand.NewSource(1)), target); err != nil {
		t.Fatal(err)
	}

	c := f.Begin(target, candidate)
	for _, d := range []*Doorway{target, candidate, target} {
		if err := c.Remove(d); err != nil {
			t.Errorf("Commit.Remove(%v) error = %v", d, err)
		}
	}
	if f.Len() != 0 {
		t.Errorf("Len() = %d after commit, want 0", f.Len())
	}
	if err := c.Remove(stranger); !errors.Is(err, ErrInternalConsistency) {
		t.Errorf("Commit.Remove(stranger) error = %v, want ErrInternalConsistency", err)
	}
}

func TestRoomScenerySpawnPoints(t *testing.T) {
	space := world.NewSpace(world.DefaultCellSize)
	r := newRoom(t, space, 0, world.NewTransform(world.V(10, 0, 0), 90))

	if s := r.EnableScenery(nil, false); s == nil || s.Name != "bare" {
		t.Fatalf("EnableScenery(first) = %v, want bare", s)
	}
	if got := len(r.SpawnPoints()); got != 1 {
		t.Errorf("len(SpawnPoints()) with bare scenery = %d, want 1", got)
	}

	r.Scenery[0].Enabled = false
	r.Scenery[1].Enabled = true
	points := r.SpawnPoints()
	if len(points) != 2 {
		t.Fatalf("len(SpawnPoints()) with crates = %d, want 2", len(points))
	}
	// (1, 0, 1) turned 90 degrees lands at (1, 0, -1) around the room origin
	if want := world.V(11, 0, -1); !points[1].Position.ApproxEqual(want, 1e-9) {
		t.Errorf("SpawnPoints()[1] = %v, want %v", points[1].Position, want)
	}

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 10; i++ {
		r.EnableScenery(rng, true)
		enabled := 0
		for _, s := range r.Scenery {
			if s.Enabled {
				enabled++
			}
		}
		if enabled != 1 {
			t.Fatalf("EnableScenery(random) left %d sets enabled, want 1", enabled)
		}
	}
}

func TestDestroyReleasesVolumes(t *testing.T) {
	space := world.NewSpace(world.DefaultCellSize)
	l := New(1)
	f := l.AddFloor()
	f.Rooms = append(f.Rooms, newRoom(t, space, 0, world.Identity))
	f.Storerooms = append(f.Storerooms, newRoom(t, space, 0, world.NewTransform(world.V(20, 0, 0), 0)))
	l.Start = f.Rooms[0]

	if space.Len() != 6 {
		t.Fatalf("space.Len() = %d, want 6", space.Len())
	}
	l.Destroy()
	l.Destroy()
	if space.Len() != 0 {
		t.Errorf("space.Len() after Destroy = %d, want 0", space.Len())
	}
	if len(l.Floors) != 0 || l.Start != nil {
		t.Error("Destroy() left floors or the start room behind")
	}
}

func TestVerify(t *testing.T) {
	space := world.NewSpace(world.DefaultCellSize)
	l := New(1)
	f := l.AddFloor()
	a := newRoom(t, space, 0, world.Identity)
	b := newRoom(t, space, 0, world.NewTransform(world.V(0, 0, 10), 0))
	f.Rooms = append(f.Rooms, a, b)
	Connect(a.Doorways[1], b.Doorways[0])
	if err := f.Frontier.Insert(rand.New(rand.NewSource(1)), a.Doorways[0], b.Doorways[1]); err != nil {
		t.Fatal(err)
	}

	if err := Verify(l, 0.1); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	// a third room on top of b
	c := newRoom(t, space, 0, world.NewTransform(world.V(1, 0, 10), 0))
	f.Rooms = append(f.Rooms, c)
	err := Verify(l, 0.1)
	if !errors.Is(err, ErrInvalidLevel) || !strings.Contains(err.Error(), "overlap") {
		t.Errorf("Verify() with overlapping rooms = %v, want an overlap error", err)
	}
}

func TestVerifyDoorwayStates(t *testing.T) {
	space := world.NewSpace(world.DefaultCellSize)
	l := New(1)
	f := l.AddFloor()
	a := newRoom(t, space, 0, world.Identity)
	b := newRoom(t, space, 0, world.NewTransform(world.V(0, 0, 10), 0))
	f.Rooms = append(f.Rooms, a, b)
	Connect(a.Doorways[1], b.Doorways[0])
	// the consumed target must not stay open
	if err := f.Frontier.Insert(rand.New(rand.NewSource(1)), a.Doorways[1]); err != nil {
		t.Fatal(err)
	}

	err := Verify(l, 0.1)
	if err == nil || !strings.Contains(err.Error(), "both open and connected") {
		t.Errorf("Verify() = %v, want a doorway state error", err)
	}
}

func TestVerifyUniqueCardinality(t *testing.T) {
	space := world.NewSpace(world.DefaultCellSize)
	l := New(1)
	f := l.AddFloor()
	for i := 0; i < 2; i++ {
		r := NewRoom(uuid.New(), corridorTemplate(template.KindUnique), 0)
		r.SetPose(world.NewTransform(world.V(float64(i)*20, 0, 0), 0))
		r.Attach(space)
		f.Rooms = append(f.Rooms, r)
	}

	err := Verify(l, 0.1)
	if err == nil || !strings.Contains(err.Error(), "unique room corridor placed 2 times") {
		t.Errorf("Verify() = %v, want a unique cardinality error", err)
	}
}

func TestPlayerSpawn(t *testing.T) {
	l := New(1)
	if _, ok := l.PlayerSpawn(); ok {
		t.Error("PlayerSpawn() ok = true without a start room")
	}
	tpl := corridorTemplate(template.KindStart)
	spawn := world.V(0, 0, 2)
	tpl.PlayerSpawn = &spawn
	l.Start = NewRoom(uuid.New(), tpl, 0)
	l.Start.SetPose(world.NewTransform(world.V(5, 0, 5), 180))

	got, ok := l.PlayerSpawn()
	if want := world.V(5, 0, 3); !ok || !got.ApproxEqual(want, 1e-9) {
		t.Errorf("PlayerSpawn() = %v, %v, want %v, true", got, ok, want)
	}
}

func TestVerifyFloorConnectivity(t *testing.T) {
	space := world.NewSpace(world.DefaultCellSize)
	l := New(1)
	ground, upper := l.AddFloor(), l.AddFloor()
	a := newRoom(t, space, 0, world.Identity)
	b := newRoom(t, space, 1, world.NewTransform(world.V(0, 3, 10), 0))
	ground.Rooms = append(ground.Rooms, a)
	upper.Rooms = append(upper.Rooms, b)
	Connect(a.Doorways[1], b.Doorways[0])

	err := Verify(l, 0.1)
	if err == nil || !strings.Contains(err.Error(), "no stairwell leads up") {
		t.Errorf("Verify() without a stairwell = %v, want a floor error", err)
	}

	ground.Stairwell = a
	if err := Verify(l, 0.1); err != nil {
		t.Errorf("Verify() error = %v", err)
	}

	// entered through the stairwell's way in instead of a way up
	b.Doorways[0].Peer, a.Doorways[1].Peer = nil, nil
	b.Doorways[0].Openable = false
	Connect(a.Doorways[0], b.Doorways[1])
	err = Verify(l, 0.1)
	if err == nil || !strings.Contains(err.Error(), "floor 1 is not entered from") {
		t.Errorf("Verify() = %v, want a floor entry error", err)
	}
}
