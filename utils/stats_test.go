package utils

import (
	"math"
	"testing"
	"time"
)

func TestStatsUpdate(t *testing.T) {
	s := NewStats()

	s.Update(1, 100, 10*time.Millisecond)
	if s.AveragePopulation != 100 {
		t.Fatalf("first average = %v, want 100", s.AveragePopulation)
	}
	if s.GenerationsPerSecond < 99 || s.GenerationsPerSecond > 101 {
		t.Fatalf("gen/sec = %v, want ~100", s.GenerationsPerSecond)
	}

	s.Update(2, 200, 0)
	if math.Abs(s.AveragePopulation-110) > 1e-9 {
		t.Fatalf("moving average = %v, want 110", s.AveragePopulation)
	}
	if s.TotalGenerations != 2 || s.ActiveCells != 200 || s.PeakPopulation != 200 {
		t.Fatalf("unexpected stats %+v", s)
	}

	s.Update(3, 50, time.Millisecond)
	if s.PeakPopulation != 200 {
		t.Fatalf("peak = %d, want 200", s.PeakPopulation)
	}
}
