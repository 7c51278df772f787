package mesh

import (
	"errors"
	"testing"

	"floorforge/pkg/engine/world"
)

type node struct {
	pieces []Piece
	merged *Mesh
}

func (n *node) ChildGeometry() []Piece { return n.pieces }
func (n *node) MergedGeometry() *Mesh { return n.merged }
func (n *node) SetMergedGeometry(m *Mesh) { n.merged = m }

func TestMergeChildGeometry(t *testing.T) {
	n := &node{pieces: []Piece{
		{Name: "floor", Material: "stone", Bounds: world.NewBounds(world.V(0, 0.05, 0), world.V(4, 0.1, 10))},
		{Name: "wall", Material: "brick", Bounds: world.NewBounds(world.V(-2, 1.5, 0), world.V(0.2, 3, 10))},
		{Name: "ceiling", Material: "stone", Bounds: world.NewBounds(world.V(0, 2.95, 0), world.V(4, 0.1, 10))},
	}}
	c := NewCombiner()

	if err := c.MergeChildGeometry(n); err != nil {
		t.Fatalf("MergeChildGeometry() error = %v", err)
	}
	first := n.merged
	if err := c.MergeChildGeometry(n); err != nil {
		t.Fatalf("second MergeChildGeometry() error = %v", err)
	}

	if n.merged != first {
		t.Error("second MergeChildGeometry() replaced the mesh")
	}
	if c.Merges() != 1 {
		t.Errorf("Merges() = %d, want 1", c.Merges())
	}
	if got := len(first.Submeshes); got != 2 {
		t.Fatalf("len(Submeshes) = %d, want 2", got)
	}
	if first.Submeshes[0].Material != "stone" || len(first.Submeshes[0].Pieces) != 2 {
		t.Errorf("Submeshes[0] = %s with %d pieces, want stone with 2", first.Submeshes[0].Material, len(first.Submeshes[0].Pieces))
	}
	if first.Pieces() != 3 {
		t.Errorf("Pieces() = %d, want 3", first.Pieces())
	}

	wantMin, wantMax := world.V(-2.1, 0, -5), world.V(2, 3, 5)
	if !first.Bounds.Min().ApproxEqual(wantMin, 1e-9) || !first.Bounds.Max().ApproxEqual(wantMax, 1e-9) {
		t.Errorf("Bounds = %v..%v, want %v..%v", first.Bounds.Min(), first.Bounds.Max(), wantMin, wantMax)
	}
}

func TestCombineErrors(t *testing.T) {
	c := &Combiner{MaxPieces: 1}
	if _, err := c.Combine(nil); !errors.Is(err, ErrNoGeometry) {
		t.Errorf("Combine(nil) error = %v, want ErrNoGeometry", err)
	}
	two := []Piece{{Material: "a"}, {Material: "b"}}
	if _, err := c.Combine(two); !errors.Is(err, ErrTooManyPieces) {
		t.Errorf("Combine(two) error = %v, want ErrTooManyPieces", err)
	}
}
