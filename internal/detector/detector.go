package detector

import (
	"context"
	"errors"
	"image"
	"math/rand/v2"
	"sync"
)

// ErrNoImage is returned when a nil image is passed to a detector.
var ErrNoImage = errors.New("image is required")

// Static always gives the same answer.
type Static struct {
	// Result is returned for every image.
	Result bool
}

// ContainsCat returns d.Result.
func (d Static) ContainsCat(_ context.Context, img image.Image, _ float32) (bool, error) {
	if img == nil {
		return false, ErrNoImage
	}

	return d.Result, nil
}

// Random reports a cat when a uniform draw in [0, 100) exceeds the confidence threshold.
// It stands in for a classifier during demos.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom creates a randomised detector seeded from the given values.
func NewRandom(seed1, seed2 uint64) *Random {
	return &Random{
		rng: rand.New(rand.NewPCG(seed1, seed2)), //nolint:gosec // Not used for security decisions.
	}
}

// ContainsCat draws a confidence score and compares it to the threshold.
func (d *Random) ContainsCat(_ context.Context, img image.Image, confidenceThreshold float32) (bool, error) {
	if img == nil {
		return false, ErrNoImage
	}

	d.mu.Lock()
	score := d.rng.Float32() * 100
	d.mu.Unlock()

	return score > confidenceThreshold, nil
}
