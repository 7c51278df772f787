package level

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"floorforge/pkg/game/template"
)

// ErrInvalidLevel is wrapped by every structural problem Verify reports
var ErrInvalidLevel = errors.New("invalid level")

// Verify checks a completed level: no two rooms overlap once shrunk by
// margin, every doorway is in exactly one state, no unique template is used
// twice, and every floor above the first is entered from the stairwell below.
// All problems found are returned joined.
func Verify(l *Level, margin float64) error {
	var problems []error
	report := func(format string, a ...any) {
		problems = append(problems, fmt.Errorf("%w: "+format, append([]any{ErrInvalidLevel}, a...)...))
	}

	rooms := l.Rooms()
	placed := mapset.New[*Room]()
	for _, r := range rooms {
		placed.Put(r)
	}

	// rooms sharing volume
	for i, a := range rooms {
		boxA := a.Box().Shrink(margin)
		for _, b := range rooms[i+1:] {
			if boxA.Intersects(b.Box().Shrink(margin)) {
				report("rooms %s (floor %d) and %s (floor %d) overlap", a, a.Floor, b, b.Floor)
			}
		}
	}

	// doorway states
	open := mapset.New[*Doorway]()
	for _, f := range l.Floors {
		for _, d := range f.Frontier.Snapshot() {
			if open.Has(d) {
				report("doorway %v is open on more than one floor", d)
			}
			open.Put(d)
			if !placed.Has(d.Room) || d.Room.Destroyed() {
				report("floor %d frontier holds doorway %v of a room that is not placed", f.Number, d)
			}
		}
	}
	for _, r := range rooms {
		if r.Destroyed() {
			report("room %s is destroyed but still listed", r)
		}
		for _, d := range r.Doorways {
			if d.Peer == nil {
				if d.Openable {
					report("doorway %v is openable but connected to nothing", d)
				}
				continue
			}
			if open.Has(d) {
				report("doorway %v is both open and connected", d)
			}
			if d.Peer.Peer != d {
				report("doorway %v is connected to %v which is connected elsewhere", d, d.Peer)
			}
			if !placed.Has(d.Peer.Room) {
				report("doorway %v is connected to a room that is not placed", d)
			}
			if d.Openable == d.Peer.Openable {
				report("connection %v - %v must have exactly one openable side", d, d.Peer)
			}
		}
	}

	// unique rooms
	uniques := make(map[string]int)
	for _, r := range rooms {
		if r.Template.Kind == template.KindUnique {
			uniques[r.Template.Name]++
		}
	}
	for name, n := range uniques {
		if n > 1 {
			report("unique room %s placed %d times", name, n)
		}
	}

	// floors
	for i, f := range l.Floors {
		if f.Number != i {
			report("floor at index %d is numbered %d", i, f.Number)
		}
		for _, r := range f.AllRooms() {
			if r.Floor != f.Number {
				report("room %s is tagged floor %d but listed on floor %d", r, r.Floor, f.Number)
			}
		}
		if i == 0 {
			continue
		}
		below := l.Floors[i-1].Stairwell
		first := f.First()
		if below == nil || first == nil {
			report("floor %d has no rooms or no stairwell leads up to it", i)
			continue
		}
		if !enteredFrom(first, below) {
			report("floor %d is not entered from %s on floor %d", i, below, i-1)
		}
	}

	return errors.Join(problems...)
}

// enteredFrom reports whether room is connected to an upper doorway of below
func enteredFrom(room, below *Room) bool {
	for _, d := range room.Doorways {
		if d.Peer != nil && d.Peer.Room == below && d.Peer.Index > 0 {
			return true
		}
	}
	return false
}
