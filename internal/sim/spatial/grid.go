// Package spatial provides the broad-phase spatial query provider the
// simulation core depends on: "all entities within a radius of a point" on
// the horizontal arena plane.
//
// Cells hold integer entity indices (not pointers) in preallocated slices
// to keep the per-tick rebuild allocation-free.
package spatial

import "math"

// Grid partitions the X/Z arena plane into fixed-size square cells for O(1)
// average radius queries. It is rebuilt from scratch every tick: Clear is
// O(cells) and keeps all capacity.
type Grid struct {
	cellSize    float64
	invCellSize float64
	cols, rows  int
	cells       [][]uint32
	scratch     []uint32
}

// NewGrid creates a grid covering an arenaSize x arenaSize plane. cellSize
// should match the largest common query radius.
func NewGrid(arenaSize, cellSize float64, maxEntities int) *Grid {
	cols := int(math.Ceil(arenaSize / cellSize))
	if cols < 1 {
		cols = 1
	}
	cells := make([][]uint32, cols*cols)
	perCell := maxEntities / len(cells)
	if perCell < 4 {
		perCell = 4
	}
	for i := range cells {
		cells[i] = make([]uint32, 0, perCell)
	}
	return &Grid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        cols,
		cells:       cells,
		scratch:     make([]uint32, 0, 64),
	}
}

// Clear resets all cells without deallocating.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity index at horizontal position (x, z). Positions
// outside the arena clamp to the border cells.
func (g *Grid) Insert(id uint32, x, z float64) {
	idx := g.cellIndex(x, z)
	g.cells[idx] = append(g.cells[idx], id)
}

func (g *Grid) cellIndex(x, z float64) int {
	col := int(x * g.invCellSize)
	row := int(z * g.invCellSize)
	if col < 0 {
		col = 0
	}
	if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= g.rows {
		row = g.rows - 1
	}
	return row*g.cols + col
}

// QueryRadius returns candidate entity indices near (x, z). The result is a
// broad-phase superset: callers must narrow with a precise distance check.
//
// The returned slice is an internal scratch buffer reused on the next call;
// copy it to persist results.
func (g *Grid) QueryRadius(x, z, radius float64) []uint32 {
	g.scratch = g.scratch[:0]

	minCol := int((x - radius) * g.invCellSize)
	maxCol := int((x + radius) * g.invCellSize)
	minRow := int((z - radius) * g.invCellSize)
	maxRow := int((z + radius) * g.invCellSize)

	if minCol < 0 {
		minCol = 0
	}
	if maxCol >= g.cols {
		maxCol = g.cols - 1
	}
	if minRow < 0 {
		minRow = 0
	}
	if maxRow >= g.rows {
		maxRow = g.rows - 1
	}

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			g.scratch = append(g.scratch, g.cells[row*g.cols+col]...)
		}
	}
	return g.scratch
}
