// SPDX-License-Identifier: MIT

package main

import (
	"math/rand/v2"
	"sort"

	"github.com/ManuGH/propkit/internal/gen"
	"github.com/ManuGH/propkit/internal/samples"
	"github.com/ManuGH/propkit/internal/spec"
)

// registerSampleSpecs wires the demo domain functions into the registry.
// Each spec mirrors one of the classic engine exercises: an intentionally
// falsifiable sum property, the yahtzee scorer under a constrained and an
// unconstrained dice generator, and the sorted-merge property.
func registerSampleSpecs(reg *spec.Registry) error {
	d6 := gen.OneOf(1, 2, 3, 4, 5, 6)

	sum, err := spec.New("sum_non_negative",
		func(a, b int) int { return a + b },
		[]spec.Param{
			{Name: "a", Gen: gen.Erase(gen.Range(-10, 10, gen.Uniform()))},
			{Name: "b", Gen: gen.Erase(gen.Range(-10, 10, gen.Uniform()))},
		},
		spec.Validator{Name: "result_non_negative", Check: func(_, results []any) bool {
			return results[0].(int) >= 0
		}},
	)
	if err != nil {
		return err
	}

	// all five dice forced equal: the scorer must always score
	equalDice := gen.Derived(func(rng *rand.Rand) ([]int, error) {
		v, err := d6.Produce(rng)
		if err != nil {
			return nil, err
		}
		return []int{v, v, v, v, v}, nil
	})
	yahtzeeEqual, err := spec.New("yahtzee_five_equal",
		samples.Yahtzee,
		[]spec.Param{{Name: "dice", Gen: gen.Erase(equalDice)}},
		spec.Validator{Name: "score_is_five_times_value", Check: func(inputs, results []any) bool {
			dice := inputs[0].([]int)
			return results[1].(bool) && results[0].(int) == 5*dice[0]
		}},
	)
	if err != nil {
		return err
	}

	// unconstrained dice: "never scores" is falsified whenever the
	// generator happens to roll five of a kind (1 in 6^4 hands)
	yahtzeeMixed, err := spec.New("yahtzee_never_scores",
		samples.Yahtzee,
		[]spec.Param{{Name: "dice", Gen: gen.Erase(gen.VectorOf(d6, 5))}},
		spec.Validator{Name: "score_is_none", Check: func(_, results []any) bool {
			return !results[1].(bool)
		}},
	)
	if err != nil {
		return err
	}

	merge, err := spec.New("merge_sorted",
		func(halves [2][]int) []int { return samples.MergeIterative(halves[0], halves[1]) },
		[]spec.Param{
			{Name: "halves", Gen: gen.Erase(mergeHalvesGen(200000))},
		},
		spec.Validator{Name: "result_non_decreasing", Check: func(_, results []any) bool {
			return sort.IntsAreSorted(results[0].([]int))
		}},
		spec.Validator{Name: "length_preserved", Check: func(inputs, results []any) bool {
			halves := inputs[0].([2][]int)
			return len(results[0].([]int)) == len(halves[0])+len(halves[1])
		}},
	)
	if err != nil {
		return err
	}

	for _, s := range []*spec.Spec{sum, yahtzeeEqual, yahtzeeMixed, merge} {
		if err := reg.Register(s); err != nil {
			return err
		}
	}
	return nil
}

// mergeHalvesGen draws a total length from [0, maxTotal), splits it at a
// random point and fills each half with sorted values. Generating both
// slices from one draw lets their combined length cover the whole range
// while each spec parameter stays independent.
func mergeHalvesGen(maxTotal int) gen.Generator[[2][]int] {
	total := gen.Range(0, maxTotal, gen.Uniform())
	return gen.Derived(func(rng *rand.Rand) ([2][]int, error) {
		n, err := total.Produce(rng)
		if err != nil {
			return [2][]int{}, err
		}
		k := rng.IntN(n + 1)
		return [2][]int{sortedSlice(rng, k), sortedSlice(rng, n-k)}, nil
	})
}

// sortedSlice fills a slice of length n with values from [0, 200000) and
// sorts it.
func sortedSlice(rng *rand.Rand, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = rng.IntN(200000)
	}
	sort.Ints(out)
	return out
}
