package model

import "testing"

func TestPopulationHashIgnoresGeneration(t *testing.T) {
	e := mustEngine(t, 10, 10)
	a := e.Populate([]Position{{1, 2}, {3, 4}}, 0)
	b := e.Populate([]Position{{3, 4}, {1, 2}}, 7)
	c := e.Populate([]Position{{1, 2}, {3, 5}}, 0)

	if PopulationHash(a) != PopulationHash(b) {
		t.Fatal("same positions hashed differently")
	}
	if PopulationHash(a) == PopulationHash(c) {
		t.Fatal("different positions hashed equally")
	}
}

func TestHistoryDetectsBlinkerCycle(t *testing.T) {
	var (
		e    = mustEngine(t, 10, 10)
		h    History
		pop  = e.Populate([]Position{{4, 4}, {5, 4}, {6, 4}}, 0)
		seen []bool
	)
	for gen := 0; gen < 5; gen++ {
		seen = append(seen, h.IsStagnant(pop))
		h.Update(pop)
		pop = e.Step(pop, gen)
	}

	want := []bool{false, false, false, true, true}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("generation %d: stagnant = %v, want %v", i, seen[i], want[i])
		}
	}
}

func TestHistoryActivePattern(t *testing.T) {
	var (
		e   = mustEngine(t, 40, 40)
		h   History
		pop = e.Seed(patterns["glider"], 0)
	)
	for gen := 0; gen < 12; gen++ {
		if h.IsStagnant(pop) {
			t.Fatalf("generation %d: glider reported stagnant", gen)
		}
		h.Update(pop)
		pop = e.Step(pop, gen)
	}

	h.Reset()
	if h.IsStagnant(pop) {
		t.Fatal("empty history reported stagnant")
	}
}
