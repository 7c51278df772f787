package world

import (
	"testing"

	"github.com/google/uuid"
)

func TestBoxIntersects(t *testing.T) {
	unit := NewBounds(Vec3{}, V(2, 2, 2))

	tests := []struct {
		name string
		a, b Box
		want bool
	}{
		{"same place", unit.In(Identity), unit.In(Identity), true},
		{"apart", unit.In(Identity), unit.In(NewTransform(V(5, 0, 0), 0)), false},
		{"touching faces", unit.In(Identity), unit.In(NewTransform(V(2, 0, 0), 0)), true},
		{"touching after shrink", unit.In(Identity).Shrink(0.1), unit.In(NewTransform(V(2, 0, 0), 0)).Shrink(0.1), false},
		{"stacked", unit.In(Identity), unit.In(NewTransform(V(0, 3, 0), 0)), false},
		// a 45 degree box reaches sqrt(2) along X
		{"rotated corner", unit.In(NewTransform(V(2.3, 0, 0), 45)), unit.In(Identity), true},
		{"rotated clear", unit.In(NewTransform(V(2.5, 0, 0), 45)), unit.In(Identity), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("Intersects() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundsExpandMatchesShrink(t *testing.T) {
	b := NewBounds(V(1, 1.5, 0), V(4, 3, 10))
	pose := NewTransform(V(3, 0, -2), 90)

	want := b.Expand(-0.1).In(pose)
	got := b.In(pose).Shrink(0.1)
	if !got.HalfExtents.ApproxEqual(want.HalfExtents, 1e-9) || !got.Center.ApproxEqual(want.Center, 1e-9) {
		t.Errorf("Shrink(0.1) = %+v, want %+v", got, want)
	}
}

func TestSpaceOverlapBox(t *testing.T) {
	s := NewSpace(4)
	roomA, roomB := uuid.New(), uuid.New()
	size := V(4, 3, 10)

	a := s.Add(roomA, LayerRoom, NewBounds(Vec3{}, size), Identity)
	door := s.Add(roomA, LayerDoorway, NewBounds(V(0, 0, 5), V(1, 2, 0.2)), Identity)
	b := s.Add(roomB, LayerRoom, NewBounds(Vec3{}, size), NewTransform(V(20, 0, 0), 0))

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	hits := s.OverlapBox(Vec3{}, size.Scale(0.5), 0, LayerRoom)
	if len(hits) != 1 || hits[0] != a {
		t.Errorf("OverlapBox(origin, rooms) = %d hits, want only room A", len(hits))
	}

	hits = s.OverlapBox(V(0, 0, 5), V(0.5, 1, 0.5), 0, LayerDoorway)
	if len(hits) != 1 || hits[0] != door {
		t.Errorf("OverlapBox(door, doorways) = %d hits, want only the doorway", len(hits))
	}

	// moving B onto A is only visible after sync, which OverlapBox performs
	b.SetPose(NewTransform(V(1, 0, 0), 0))
	hits = s.OverlapBox(Vec3{}, size.Scale(0.5), 0, LayerRoom)
	if len(hits) != 2 {
		t.Errorf("OverlapBox() after move = %d hits, want 2", len(hits))
	}

	b.SetEnabled(false)
	if hits = s.OverlapBox(Vec3{}, size.Scale(0.5), 0, LayerRoom); len(hits) != 1 {
		t.Errorf("OverlapBox() with B disabled = %d hits, want 1", len(hits))
	}

	s.Remove(a)
	s.Remove(a)
	if hits = s.OverlapBox(Vec3{}, size.Scale(0.5), 0, LayerAll); len(hits) != 1 || hits[0] != door {
		t.Errorf("OverlapBox() after remove = %d hits, want only the doorway", len(hits))
	}
	if s.Len() != 2 {
		t.Errorf("Len() after remove = %d, want 2", s.Len())
	}
}

func TestGridDropsEmptyCells(t *testing.T) {
	s := NewSpace(2)
	b := s.Add(uuid.New(), LayerRoom, NewBounds(Vec3{}, V(3, 1, 3)), Identity)
	if s.grid.Len() == 0 {
		t.Fatal("grid has no cells after Add")
	}
	s.Remove(b)
	if got := s.grid.Len(); got != 0 {
		t.Errorf("grid.Len() after Remove = %d, want 0", got)
	}
}

func TestBoxContainsXZ(t *testing.T) {
	long := NewBounds(Vec3{}, V(2, 2, 6))

	tests := []struct {
		name string
		box  Box
		x, z float64
		want bool
	}{
		{"center", long.In(Identity), 0, 0, true},
		{"along length", long.In(Identity), 0, 2.9, true},
		{"past the side", long.In(Identity), 1.5, 0, false},
		{"turned east", long.In(NewTransform(Vec3{}, 90)), 2.9, 0, true},
		{"turned east, old length", long.In(NewTransform(Vec3{}, 90)), 0, 2.9, false},
		{"moved", long.In(NewTransform(V(10, 0, 10), 0)), 10.5, 12, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.ContainsXZ(tt.x, tt.z); got != tt.want {
				t.Errorf("ContainsXZ(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
			}
		})
	}
}
