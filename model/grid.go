package model

import (
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/sparse-gol/rules"
)

// Grid is a dense toroidal board. It scans every position each generation and
// is only used to cross-check the sparse engine.
type Grid struct {
	width  int
	height int
	cells  [][]bool
}

// NewGrid creates a new grid with the specified dimensions
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Reset(width, height)
	return g
}

// Reset resets the grid to new dimensions
func (g *Grid) Reset(width, height int) {
	g.width = width
	g.height = height

	// Resize cells if needed
	if len(g.cells) != height {
		g.cells = make([][]bool, height)
	}
	for i := range g.cells {
		if len(g.cells[i]) != width {
			g.cells[i] = make([]bool, width)
		} else {
			clear(g.cells[i])
		}
	}
}

// Clear clears all cells
func (g *Grid) Clear() {
	for y := range g.cells {
		clear(g.cells[y])
	}
}

// Set sets a cell to alive (true) or dead (false), wrapping the coordinates
func (g *Grid) Set(x, y int, alive bool) {
	x, y = g.wrap(x, y)
	g.cells[y][x] = alive
}

// Get returns the state of a cell, wrapping the coordinates
func (g *Grid) Get(x, y int) bool {
	x, y = g.wrap(x, y)
	return g.cells[y][x]
}

func (g *Grid) wrap(x, y int) (int, int) {
	return ((x % g.width) + g.width) % g.width, ((y % g.height) + g.height) % g.height
}

// Load marks every position of pop as alive
func (g *Grid) Load(pop Population) {
	for p := range pop {
		g.Set(p.X, p.Y, true)
	}
}

// CountNeighbors counts living neighbors with toroidal wraparound
func (g *Grid) CountNeighbors(x, y int) (count int) {
	for _, d := range neighborOffsets {
		if g.Get(x+d.X, y+d.Y) {
			count++
		}
	}
	return
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] {
				count++
			}
		}
	}
	return
}

// NextGenerationParallel calculates the next generation using parallel processing
func (g *Grid) NextGenerationParallel(pool *GridPool) *Grid {
	var next *Grid
	if pool != nil {
		next = pool.Get(g.width, g.height)
	} else {
		next = NewGrid(g.width, g.height)
	}

	var (
		eg            errgroup.Group
		numWorkers    = runtime.NumCPU()
		rowsPerWorker = (g.height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := 0; i < numWorkers; i++ {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}

		eg.Go(func() error {
			for y := startRow; y < endRow; y++ {
				for x := 0; x < g.width; x++ {
					if rules.ApplyConwayRules(g.CountNeighbors(x, y), g.cells[y][x]) {
						next.cells[y][x] = true
					}
				}
			}
			return nil
		})
	}

	// workers never fail
	_ = eg.Wait()

	return next
}

// Verify recomputes the generation after pop on a dense grid and checks that
// next holds exactly the same living positions
func (e Engine) Verify(pop, next Population, pool *GridPool) error {
	cur := pool.Get(e.width, e.height)
	defer GridToPool(cur, pool)
	cur.Load(pop)

	want := cur.NextGenerationParallel(pool)
	defer GridToPool(want, pool)

	for p := range next {
		if p != e.Normalize(p) {
			return errors.Errorf("[Verify] position %v outside the %dx%d domain", p, e.width, e.height)
		}
	}

	var missing, extra int
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			_, alive := next[Position{X: x, Y: y}]
			switch expected := want.cells[y][x]; {
			case expected && !alive:
				missing++
			case !expected && alive:
				extra++
			}
		}
	}
	if missing > 0 || extra > 0 {
		return errors.Errorf("[Verify] population mismatch: %d missing, %d unexpected cells", missing, extra)
	}
	return nil
}
