// Package random provides seed generation for dealing puzzles.
//
// Seeds come from crypto/rand so separate sessions (for example two SSH
// users connecting in the same nanosecond) never share a deal, while an
// explicit seed still reproduces a deal exactly.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"time"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Resolve returns seed unchanged when it is non-zero. Zero means "pick one":
// a crypto seed, or the clock if the system source fails.
func Resolve(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	s, err := NewSeed()
	if err != nil || s == 0 {
		return time.Now().UnixNano()
	}
	return s
}

// New returns a generator for the given seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
