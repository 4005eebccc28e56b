// Package engine implements the card-combination scoring pipeline.
package engine

// MaxCombinationSize is the hard ceiling on cards per combination.
// Combination count grows combinatorially with group size, so requests
// beyond this are clamped rather than honored.
const MaxCombinationSize = 10

// MaxResults is the hard ceiling on returned group results, applied
// after ranking and independent of the requested group size.
const MaxResults = 10

// combinationIndexes enumerates every non-empty subset of {0..n-1} with
// size 1..maxSize as strictly increasing index slices, in deterministic
// depth-first order. Index-based recursion avoids the per-call slice
// copies of the naive approach.
func combinationIndexes(n, maxSize int) [][]int {
	if maxSize > MaxCombinationSize {
		maxSize = MaxCombinationSize
	}
	if n <= 0 || maxSize <= 0 {
		return nil
	}

	var results [][]int
	current := make([]int, 0, maxSize)

	var walk func(start int)
	walk = func(start int) {
		if len(current) > 0 {
			combo := make([]int, len(current))
			copy(combo, current)
			results = append(results, combo)
		}
		if len(current) == maxSize {
			return
		}
		for i := start; i < n; i++ {
			current = append(current, i)
			walk(i + 1)
			current = current[:len(current)-1]
		}
	}
	walk(0)

	return results
}
