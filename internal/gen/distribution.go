// SPDX-License-Identifier: MIT

package gen

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Distribution is the probability law governing a Range generator's draws.
type Distribution interface {
	next(rng *rand.Rand, lo, hi int) (int, error)
}

type uniformDist struct{}

func (uniformDist) next(rng *rand.Rand, lo, hi int) (int, error) {
	return lo + rng.IntN(hi-lo), nil
}

// Uniform draws every value in [lo, hi) with equal probability.
func Uniform() Distribution {
	return uniformDist{}
}

type geometricDist struct {
	p float64
}

// Geometric biases draws toward lo: the offset above lo follows a geometric
// law with mean 1/p. Offsets landing at or beyond hi are rejected and
// redrawn, so a p far too small for the range width exhausts the attempt cap.
func Geometric(p float64) Distribution {
	return geometricDist{p: p}
}

func (d geometricDist) next(rng *rand.Rand, lo, hi int) (int, error) {
	if d.p <= 0 || d.p > 1 {
		return 0, fmt.Errorf("%w: geometric p=%v", ErrInvalidProbability, d.p)
	}
	if d.p == 1 {
		return lo, nil
	}
	for i := 0; i < maxAttempts; i++ {
		u := rng.Float64()
		if u == 0 {
			continue
		}
		k := int(math.Floor(math.Log(u) / math.Log(1-d.p)))
		if v := lo + k; v < hi {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: geometric draw stayed outside [%d, %d) for %d attempts", ErrExhausted, lo, hi, maxAttempts)
}
