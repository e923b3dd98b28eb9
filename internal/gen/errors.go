// SPDX-License-Identifier: MIT

package gen

import "errors"

var (
	// ErrExhausted indicates a rejection loop failed to produce an accepted
	// value within the attempt cap. Use errors.Is(err, ErrExhausted) instead
	// of string matching.
	ErrExhausted = errors.New("gen: generator exhausted")

	// ErrInvalidRange indicates range bounds with hi < lo.
	ErrInvalidRange = errors.New("gen: invalid range bounds")

	// ErrEmptySet indicates OneOf was built from zero literals.
	ErrEmptySet = errors.New("gen: empty literal set")

	// ErrInvalidProbability indicates a geometric parameter outside (0, 1].
	ErrInvalidProbability = errors.New("gen: probability out of range")

	// ErrInvalidLength indicates a negative vector length.
	ErrInvalidLength = errors.New("gen: invalid vector length")
)
