// Package mesh fuses the child geometry of an object into a single surface
// with one submesh per material.
package mesh

import (
	"errors"
	"fmt"

	"floorforge/pkg/engine/world"
)

// DefaultMaxPieces bounds how many pieces one merge may fuse; very large
// merges produce unreliable geometry.
const DefaultMaxPieces = 256

var (
	// ErrNoGeometry is returned when an object has nothing to merge
	ErrNoGeometry = errors.New("no child geometry")
	// ErrTooManyPieces is returned when a merge exceeds the combiner's piece limit
	ErrTooManyPieces = errors.New("too many pieces to merge")
)

// Piece is one child box of an object, in the object's local space
type Piece struct {
	Name     string
	Material string
	Bounds   world.Bounds
}

// Submesh groups the pieces sharing a material
type Submesh struct {
	Material string
	Pieces   []Piece
}

// Mesh is the merged result: its local bounds plus one submesh per material,
// in the order materials were first encountered.
type Mesh struct {
	Bounds    world.Bounds
	Submeshes []Submesh
}

// Pieces returns the number of pieces fused into the mesh
func (m *Mesh) Pieces() int {
	n := 0
	for _, s := range m.Submeshes {
		n += len(s.Pieces)
	}
	return n
}

// Node is an object whose children can be merged
type Node interface {
	ChildGeometry() []Piece
	MergedGeometry() *Mesh
	SetMergedGeometry(m *Mesh)
}

// Combiner merges node geometry
type Combiner struct {
	MaxPieces int

	merges int
}

// NewCombiner creates a combiner with the default piece limit
func NewCombiner() *Combiner {
	return &Combiner{MaxPieces: DefaultMaxPieces}
}

// Merges returns how many nodes the combiner has actually merged
func (c *Combiner) Merges() int {
	return c.merges
}

// MergeChildGeometry fuses the node's children into one mesh and stores it on
// the node. Nodes that already carry a merged mesh are left untouched.
func (c *Combiner) MergeChildGeometry(n Node) error {
	if n.MergedGeometry() != nil {
		return nil
	}
	m, err := c.Combine(n.ChildGeometry())
	if err != nil {
		return err
	}
	n.SetMergedGeometry(m)
	c.merges++
	return nil
}

// Combine fuses pieces without touching any node
func (c *Combiner) Combine(pieces []Piece) (*Mesh, error) {
	if len(pieces) == 0 {
		return nil, ErrNoGeometry
	}
	if c.MaxPieces > 0 && len(pieces) > c.MaxPieces {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyPieces, len(pieces), c.MaxPieces)
	}

	m := &Mesh{}
	index := make(map[string]int)
	for _, p := range pieces {
		m.Bounds = m.Bounds.Encapsulate(p.Bounds)

		i, found := index[p.Material]
		if !found {
			i = len(m.Submeshes)
			index[p.Material] = i
			m.Submeshes = append(m.Submeshes, Submesh{Material: p.Material})
		}
		m.Submeshes[i].Pieces = append(m.Submeshes[i].Pieces, p)
	}
	return m, nil
}
