// Package level holds a generated level: its floors, their rooms and
// storerooms, the doorway frontier of each floor and the item spawn points
// discovered once generation completes.
package level

import (
	"errors"

	"floorforge/pkg/engine/world"
)

// ErrInternalConsistency reports a bookkeeping bug such as removing a doorway
// that is not open. It is never recoverable.
var ErrInternalConsistency = errors.New("internal consistency failure")

// SpawnPoint is a world position where an item may be placed
type SpawnPoint struct {
	Room     *Room
	Position world.Vec3
}

// Floor owns the rooms built on one storey of the level
type Floor struct {
	Number     int
	Rooms      []*Room
	Storerooms []*Room
	Frontier   *Frontier

	// Stairwell leads up to the next floor; nil on the top floor
	Stairwell *Room

	ItemSpawnPoints []SpawnPoint
}

// NewFloor creates an empty floor
func NewFloor(number int) *Floor {
	return &Floor{Number: number, Frontier: NewFrontier()}
}

// First returns the floor's first room
func (f *Floor) First() *Room {
	if len(f.Rooms) == 0 {
		return nil
	}
	return f.Rooms[0]
}

// Last returns the floor's most recently placed main room
func (f *Floor) Last() *Room {
	if len(f.Rooms) == 0 {
		return nil
	}
	return f.Rooms[len(f.Rooms)-1]
}

// AllRooms returns main rooms followed by storerooms
func (f *Floor) AllRooms() []*Room {
	all := make([]*Room, 0, len(f.Rooms)+len(f.Storerooms))
	all = append(all, f.Rooms...)
	return append(all, f.Storerooms...)
}

// Destroy releases every room of the floor and empties it
func (f *Floor) Destroy() {
	for _, r := range f.AllRooms() {
		r.Destroy()
	}
	f.Rooms = nil
	f.Storerooms = nil
	f.Stairwell = nil
	f.ItemSpawnPoints = nil
	f.Frontier = NewFrontier()
}

// Level is an ordered stack of floors
type Level struct {
	Seed     int64
	Attempts int
	Floors   []*Floor

	// Start and Exit are the singleton rooms on the first and last floor
	Start *Room
	Exit  *Room

	// StoreroomSpawnPoints are reserved for the restricted item category
	StoreroomSpawnPoints []SpawnPoint

	// DuplicateDoorways counts open doorways that overlap another room's doorway
	DuplicateDoorways int
}

// New creates an empty level
func New(seed int64) *Level {
	return &Level{Seed: seed}
}

// AddFloor appends a new floor numbered after the existing ones
func (l *Level) AddFloor() *Floor {
	f := NewFloor(len(l.Floors))
	l.Floors = append(l.Floors, f)
	return f
}

// Rooms returns every room of every floor, storerooms included
func (l *Level) Rooms() []*Room {
	var rooms []*Room
	for _, f := range l.Floors {
		rooms = append(rooms, f.AllRooms()...)
	}
	return rooms
}

// ItemSpawnPoints returns the spawn points of every floor
func (l *Level) ItemSpawnPoints() []SpawnPoint {
	var points []SpawnPoint
	for _, f := range l.Floors {
		points = append(points, f.ItemSpawnPoints...)
	}
	return points
}

// PlayerSpawn returns where the player enters the level
func (l *Level) PlayerSpawn() (world.Vec3, bool) {
	if l.Start == nil || l.Start.Template.PlayerSpawn == nil {
		return world.Vec3{}, false
	}
	return l.Start.Pose().Apply(*l.Start.Template.PlayerSpawn), true
}

// Destroy releases every room, including the start and exit singletons,
// and drops all floors. It is safe to call more than once.
func (l *Level) Destroy() {
	for _, f := range l.Floors {
		f.Destroy()
	}
	if l.Start != nil {
		l.Start.Destroy()
	}
	if l.Exit != nil {
		l.Exit.Destroy()
	}
	l.Floors = nil
	l.Start = nil
	l.Exit = nil
	l.StoreroomSpawnPoints = nil
	l.DuplicateDoorways = 0
}
