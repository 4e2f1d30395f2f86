package usecase

import (
	"math"
	"sort"
	"strings"
)

// TokenSortRatio computes a token-order-insensitive similarity between two
// strings on a 0–100 scale. Tokens are sorted before comparison, so
// reordering words never lowers the score; the sorted forms are then
// compared with a Levenshtein ratio. Symmetric, and 100 for identical
// non-empty inputs. Either input reducing to nothing scores 0.
func TokenSortRatio(a, b string) int {
	sortedA := sortTokens(a)
	sortedB := sortTokens(b)

	if sortedA == "" || sortedB == "" {
		return 0
	}
	if sortedA == sortedB {
		return 100
	}

	lenSum := len([]rune(sortedA)) + len([]rune(sortedB))
	dist := levenshteinDistance(sortedA, sortedB)

	ratio := float64(lenSum-dist) / float64(lenSum) * 100
	return int(math.Round(ratio))
}

// sortTokens splits on whitespace, sorts the tokens and rejoins them with
// single spaces. Case and edge whitespace are the caller's concern; match
// keys are already lower-cased by NormalizeNameForMatching.
func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	// Use two rows instead of the full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
