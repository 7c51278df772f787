package world

import (
	"math"
	"sort"
)

// DefaultCellSize is the edge length of a broad-phase cell in world units
const DefaultCellSize = 8.0

// Grid is a sparse uniform grid over the horizontal plane (X → col, Z → row).
// Cells are created on demand and dropped once empty.
type Grid struct {
	cellMap  map[int]map[int]*Cell
	cellSize float64
	cells    int
}

// NewGrid creates a new grid with the given cell size
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Grid{
		cellMap:  make(map[int]map[int]*Cell),
		cellSize: cellSize,
	}
}

// CellSize returns the edge length of one cell
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// Len returns the number of non-empty cells
func (g *Grid) Len() int {
	return g.cells
}

// GetCell returns the cell at the given position, or nil if nothing was ever stored there
func (g *Grid) GetCell(row, col int) *Cell {
	rowMap, found := g.cellMap[row]
	if !found {
		return nil
	}
	return rowMap[col]
}

// CellAt returns the row and column containing the world point
func (g *Grid) CellAt(p Vec3) (row, col int) {
	return int(math.Floor(p.Z / g.cellSize)), int(math.Floor(p.X / g.cellSize))
}

// span returns the inclusive row/col range covering the world rectangle lo..hi
func (g *Grid) span(lo, hi Vec3) (r0, c0, r1, c1 int) {
	r0, c0 = g.CellAt(lo)
	r1, c1 = g.CellAt(hi)
	return r0, c0, r1, c1
}

func (g *Grid) ensureCell(row, col int) *Cell {
	rowMap, found := g.cellMap[row]
	if !found {
		rowMap = make(map[int]*Cell)
		g.cellMap[row] = rowMap
	}
	c, found := rowMap[col]
	if !found {
		c = NewCell(row, col)
		rowMap[col] = c
		g.cells++
	}
	return c
}

// Insert adds b to every cell overlapping lo..hi and returns those cells
func (g *Grid) Insert(b *Body, lo, hi Vec3) []*Cell {
	r0, c0, r1, c1 := g.span(lo, hi)
	var cells []*Cell
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			c := g.ensureCell(row, col)
			c.Bodies.Put(b)
			cells = append(cells, c)
		}
	}
	return cells
}

// Remove takes b out of the given cells, dropping cells that become empty
func (g *Grid) Remove(b *Body, cells []*Cell) {
	for _, c := range cells {
		c.Bodies.Remove(b)
		if !c.IsEmpty() {
			continue
		}
		if rowMap, found := g.cellMap[c.Row]; found {
			delete(rowMap, c.Col)
			g.cells--
			if len(rowMap) == 0 {
				delete(g.cellMap, c.Row)
			}
		}
	}
}

// Collect returns every distinct body stored in cells overlapping lo..hi, ordered by id
func (g *Grid) Collect(lo, hi Vec3) []*Body {
	r0, c0, r1, c1 := g.span(lo, hi)
	seen := make(map[*Body]struct{})
	var out []*Body
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			c := g.GetCell(row, col)
			if c == nil {
				continue
			}
			c.Bodies.Each(func(b *Body) {
				if _, ok := seen[b]; ok {
					return
				}
				seen[b] = struct{}{}
				out = append(out, b)
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// ForEachCell iterates over all non-empty cells, calling the provided function for each
func (g *Grid) ForEachCell(fn func(row, col int, cell *Cell)) {
	for row, rowMap := range g.cellMap {
		for col, c := range rowMap {
			fn(row, col, c)
		}
	}
}
