package model

import (
	"math/rand"
	"sort"

	"github.com/pkg/errors"
)

// DefaultPattern is seeded when the configuration names none
const DefaultPattern = "r-pentomino"

// patterns holds seed offsets relative to the domain center, with y pointing up
var patterns = map[string][]Position{
	"r-pentomino": {{-1, 0}, {0, 0}, {0, -1}, {0, 1}, {1, 1}},
	"acorn":       {{-4, 0}, {-3, 0}, {0, 0}, {1, 0}, {2, 0}, {-1, -1}, {-3, -2}},
	"glider":      {{0, 1}, {1, 0}, {-1, -1}, {0, -1}, {1, -1}},
	"blinker":     {{-1, 0}, {0, 0}, {1, 0}},
	"block":       {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
}

// PatternNames lists the built-in seed patterns in alphabetical order
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPattern returns a copy of the offsets of a built-in pattern
func LookupPattern(name string) ([]Position, error) {
	offsets, ok := patterns[name]
	if !ok {
		return nil, errors.Errorf("[LookupPattern] unknown pattern %q, expected one of %v", name, PatternNames())
	}
	return append([]Position(nil), offsets...), nil
}

// Seed places offsets around the center of the domain, born at generation
func (e Engine) Seed(offsets []Position, generation int) Population {
	var (
		cx        = e.width / 2
		cy        = e.height / 2
		positions = make([]Position, len(offsets))
	)
	for i, o := range offsets {
		positions[i] = Position{X: cx + o.X, Y: cy - o.Y}
	}
	return e.Populate(positions, generation)
}

// Randomize returns a copy of pop where every empty position has been brought to
// life with the given probability. New cells are stamped with generation.
func (e Engine) Randomize(pop Population, density float64, generation int, rng *rand.Rand) Population {
	next := clonePopulation(pop)
	if density <= 0 {
		return next
	}

	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			p := Position{X: x, Y: y}
			if _, ok := next[p]; ok {
				continue
			}
			if rng.Float64() < density {
				next[p] = Cell{Pos: p, Gen: generation}
			}
		}
	}
	return next
}

// InjectRandomLife returns a copy of pop with up to count random cells added to break stagnation
func (e Engine) InjectRandomLife(pop Population, count, generation int, rng *rand.Rand) Population {
	next := clonePopulation(pop)
	for i := 0; i < count; i++ {
		p := Position{X: rng.Intn(e.width), Y: rng.Intn(e.height)}
		if _, ok := next[p]; !ok {
			next[p] = Cell{Pos: p, Gen: generation}
		}
	}
	return next
}

func clonePopulation(pop Population) Population {
	out := make(Population, len(pop))
	for p, c := range pop {
		out[p] = c
	}
	return out
}
