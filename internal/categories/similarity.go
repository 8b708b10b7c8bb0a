package categories

import (
	"strings"

	"github.com/listenupapp/bookpage/internal/genre"
)

// DefaultThreshold is the minimum score for a merge suggestion.
const DefaultThreshold = 0.8

// Score for tags whose words abbreviate each other ("Sci Fi", "Science Fiction").
const abbreviationScore = 0.9

// Similarity scores two tags in [0, 1]. It is symmetric and deterministic:
// the maximum of alias equivalence, word-abbreviation, edit-distance ratio,
// and word overlap, all computed on slug forms.
func Similarity(a, b string) float64 {
	sa, sb := genre.Slugify(a), genre.Slugify(b)
	if sa == "" || sb == "" {
		return 0
	}
	if sa == sb || genre.Equivalent(a, b) {
		return 1
	}

	ta, tb := genre.Tokens(a), genre.Tokens(b)

	score := max(stringSimilarity(sa, sb), jaccard(ta, tb))
	if abbreviates(ta, tb) {
		score = max(score, abbreviationScore)
	}
	return score
}

// abbreviates reports whether two multi-word tags have the same number of
// words and each word is a prefix of its counterpart.
func abbreviates(a, b []string) bool {
	if len(a) < 2 || len(a) != len(b) {
		return false
	}
	for i := range a {
		short, long := a[i], b[i]
		if len(short) > len(long) {
			short, long = long, short
		}
		if len(short) < 2 || !strings.HasPrefix(long, short) {
			return false
		}
	}
	return true
}

func jaccard(a, b []string) float64 {
	setA := make(map[string]bool, len(a))
	for _, w := range a {
		setA[w] = true
	}
	setB := make(map[string]bool, len(b))
	for _, w := range b {
		setB[w] = true
	}

	inter := 0
	for w := range setA {
		if setB[w] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// stringSimilarity is one minus the edit distance over the longer length.
func stringSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}

	distance := levenshteinDistance(ra, rb)
	return 1.0 - float64(distance)/float64(max(len(ra), len(rb)))
}

// levenshteinDistance keeps two rows of the edit matrix.
func levenshteinDistance(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
