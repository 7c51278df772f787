package world

import (
	"github.com/zyedidia/generic/mapset"
)

// Cell is one bucket of the space's broad-phase grid. It holds every body
// whose footprint touches the cell's square on the horizontal plane.
type Cell struct {
	// Grid position
	Row int
	Col int

	Bodies mapset.Set[*Body]
}

// NewCell creates a new empty cell at the given position
func NewCell(row, col int) *Cell {
	return &Cell{
		Row:    row,
		Col:    col,
		Bodies: mapset.New[*Body](),
	}
}

// IsEmpty returns true if no body touches the cell
func (c *Cell) IsEmpty() bool {
	return c.Bodies.Size() == 0
}
