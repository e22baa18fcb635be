package model

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
)

// historySize is how many recent snapshots are kept for cycle detection
const historySize = 5

// History records hashes of recent populations to detect still lifes and short cycles
type History struct {
	hashes []string
}

// PopulationHash returns an MD5 hash of the living positions, ignoring generation numbers
func PopulationHash(pop Population) string {
	var (
		h   = md5.New()
		buf [16]byte
	)
	for _, p := range pop.Positions() {
		binary.LittleEndian.PutUint64(buf[:8], uint64(p.X))
		binary.LittleEndian.PutUint64(buf[8:], uint64(p.Y))
		h.Write(buf[:])
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Update adds pop to history and maintains size
func (h *History) Update(pop Population) {
	h.hashes = append(h.hashes, PopulationHash(pop))
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant checks whether pop repeats one of the last three recorded snapshots
func (h *History) IsStagnant(pop Population) bool {
	if len(h.hashes) < 3 {
		return false
	}

	current := PopulationHash(pop)
	for i := 1; i <= 3; i++ {
		if h.hashes[len(h.hashes)-i] == current {
			return true
		}
	}
	return false
}

// Reset forgets all recorded snapshots
func (h *History) Reset() {
	h.hashes = nil
}
