package model

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/sparse-gol/rules"
)

// Position is a point on the torus. Positions stored in a Population are always normalized.
type Position struct {
	X, Y int
}

// Cell is a living cell and the generation at which it was born
type Cell struct {
	Pos Position
	Gen int
}

// Population maps every living position to its cell. It is replaced, never mutated, each generation.
type Population map[Position]Cell

// neighborOffsets is the Moore neighborhood
var neighborOffsets = [8]Position{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Engine advances a sparse population on a fixed width x height torus
type Engine struct {
	width  int
	height int
}

// NewEngine creates an engine for the given domain size
func NewEngine(width, height int) (Engine, error) {
	if width <= 0 || height <= 0 {
		return Engine{}, errors.Errorf("[NewEngine] invalid domain size %dx%d", width, height)
	}
	return Engine{width: width, height: height}, nil
}

// Width returns the width of the domain
func (e Engine) Width() int {
	return e.width
}

// Height returns the height of the domain
func (e Engine) Height() int {
	return e.height
}

// Normalize wraps p into [0, width) x [0, height), including negative coordinates
func (e Engine) Normalize(p Position) Position {
	return Position{
		X: ((p.X % e.width) + e.width) % e.width,
		Y: ((p.Y % e.height) + e.height) % e.height,
	}
}

// neighbors returns the 8 normalized neighbors of p
func (e Engine) neighbors(p Position) (out [8]Position) {
	for i, d := range neighborOffsets {
		out[i] = e.Normalize(Position{X: p.X + d.X, Y: p.Y + d.Y})
	}
	return out
}

// OccupiedNeighborCount counts how many of the 8 neighbors of p are alive in pop
func (e Engine) OccupiedNeighborCount(p Position, pop Population) (count int) {
	for _, np := range e.neighbors(p) {
		if _, ok := pop[np]; ok {
			count++
		}
	}
	return
}

// checkNeighbors scans the neighborhood of a living cell at p. It returns how many
// neighbors are alive and which empty neighbors will be born. seen caches the
// occupancy of every position already examined during this generation.
func (e Engine) checkNeighbors(p Position, pop Population, seen map[Position]bool) (n int, births []Position) {
	for _, np := range e.neighbors(p) {
		if occupied, ok := seen[np]; ok {
			if occupied {
				n++
			}
			continue
		}

		_, occupied := pop[np]
		if occupied {
			n++
		} else if rules.ApplyConwayRules(e.OccupiedNeighborCount(np, pop), false) {
			births = append(births, np)
		}
		seen[np] = occupied
	}
	return n, births
}

// Step computes the population of the next generation. Survivors keep their
// birth generation, newborn cells get generation+1. pop is left untouched.
func (e Engine) Step(pop Population, generation int) Population {
	var (
		seen = make(map[Position]bool, len(pop)*8)
		next = make(Population, len(pop))
	)

	for pos, cell := range pop {
		n, births := e.checkNeighbors(pos, pop, seen)
		if rules.ApplyConwayRules(n, true) {
			next[pos] = cell
		}
		for _, b := range births {
			next[b] = Cell{Pos: b, Gen: generation + 1}
		}
	}

	return next
}

// Populate builds a population from arbitrary positions, all born at generation
func (e Engine) Populate(positions []Position, generation int) Population {
	pop := make(Population, len(positions))
	for _, p := range positions {
		np := e.Normalize(p)
		pop[np] = Cell{Pos: np, Gen: generation}
	}
	return pop
}

// Positions returns the living positions sorted by row, then column
func (pop Population) Positions() []Position {
	out := make([]Position, 0, len(pop))
	for p := range pop {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
