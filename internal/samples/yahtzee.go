// SPDX-License-Identifier: MIT

// Package samples holds the demo domain functions the engine is exercised
// against. The engine treats them as arbitrary collaborators; nothing in
// here is part of the core.
package samples

// Yahtzee scores a hand of five dice: five of a kind scores the sum of the
// dice, any other hand scores nothing (ok=false).
func Yahtzee(dice []int) (score int, ok bool) {
	if len(dice) != 5 {
		return 0, false
	}
	sum := dice[0]
	for _, d := range dice[1:] {
		if d != dice[0] {
			return 0, false
		}
		sum += d
	}
	return sum, true
}
