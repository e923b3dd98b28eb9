// SPDX-License-Identifier: MIT

// Package gen provides the generator combinators the engine draws inputs
// from. A generator is a capability: every Produce call is an independent
// draw, so a generator never runs out and never needs resetting. Generators
// that reject draws (Filter, geometric ranges) cap their attempts and return
// ErrExhausted instead of blocking.
package gen

import (
	"fmt"
	"math/rand/v2"
)

// maxAttempts bounds every rejection loop in this package.
const maxAttempts = 10000

// Generator produces conforming random values of a declared shape on demand.
// Draws are independent of prior draws unless the generator is explicitly
// documented as dependent (see Derived).
type Generator[T any] interface {
	Produce(rng *rand.Rand) (T, error)
}

// Erased is the untyped form of a generator, suitable for positional binding
// to a function parameter.
type Erased func(rng *rand.Rand) (any, error)

// Erase adapts a typed generator for positional binding in a spec.
func Erase[T any](g Generator[T]) Erased {
	return func(rng *rand.Rand) (any, error) {
		return g.Produce(rng)
	}
}

type produceFunc[T any] func(rng *rand.Rand) (T, error)

func (f produceFunc[T]) Produce(rng *rand.Rand) (T, error) {
	return f(rng)
}

// OneOf picks uniformly among a fixed set of literals. Building it from zero
// literals is a configuration mistake and surfaces as ErrEmptySet on the
// first draw.
func OneOf[T any](values ...T) Generator[T] {
	// copy so later mutation of the caller's slice cannot skew draws
	set := make([]T, len(values))
	copy(set, values)
	return produceFunc[T](func(rng *rand.Rand) (T, error) {
		if len(set) == 0 {
			var zero T
			return zero, ErrEmptySet
		}
		return set[rng.IntN(len(set))], nil
	})
}

// Range draws integers from [lo, hi) under the given distribution. The
// degenerate case lo == hi always yields lo.
func Range(lo, hi int, dist Distribution) Generator[int] {
	return produceFunc[int](func(rng *rand.Rand) (int, error) {
		if hi < lo {
			return 0, fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, lo, hi)
		}
		if hi == lo {
			return lo, nil
		}
		return dist.next(rng, lo, hi)
	})
}

// VectorOf produces fixed-length sequences of n independent draws from elem.
func VectorOf[T any](elem Generator[T], n int) Generator[[]T] {
	return produceFunc[[]T](func(rng *rand.Rand) ([]T, error) {
		if n < 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
		}
		out := make([]T, n)
		for i := range out {
			v, err := elem.Produce(rng)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	})
}

// Derived wraps an arbitrary production function as a generator. The function
// owns its own draw logic, so a derived generator may be dependent (it may
// correlate parts of a single produced value, e.g. "four values distinct from
// the first"); across Produce calls it must still behave independently.
func Derived[T any](fn func(rng *rand.Rand) (T, error)) Generator[T] {
	return produceFunc[T](fn)
}

// Filter redraws from g until accept returns true, up to the attempt cap.
// Callers are responsible for predicates with a reasonable accept rate; a
// predicate that never accepts surfaces as ErrExhausted, not a hang.
func Filter[T any](g Generator[T], accept func(T) bool) Generator[T] {
	return produceFunc[T](func(rng *rand.Rand) (T, error) {
		var zero T
		for i := 0; i < maxAttempts; i++ {
			v, err := g.Produce(rng)
			if err != nil {
				return zero, err
			}
			if accept(v) {
				return v, nil
			}
		}
		return zero, fmt.Errorf("%w: no accepted draw in %d attempts", ErrExhausted, maxAttempts)
	})
}

// Const always produces the same value. Useful for pinning one parameter of a
// spec while the others vary.
func Const[T any](v T) Generator[T] {
	return produceFunc[T](func(*rand.Rand) (T, error) {
		return v, nil
	})
}
