package services

import (
	"sort"
	"strings"
	"unicode"
)

// defaultFuzzyThreshold is the inclusion cutoff used when a caller
// does not supply one: a candidate matches when any weighted field
// brings a query token within this normalised edit distance. Lower is
// stricter; 0 is an exact match.
const defaultFuzzyThreshold = 0.4

// substringScore is the score awarded when a query token appears as a
// substring of a field word, making prefix typing rank near-exact.
const substringScore = 0.1

// fuzzyField is one scored field of a candidate record.
type fuzzyField struct {
	value  string
	weight float64
}

// fuzzyScore computes the weighted match score of a candidate against
// pre-tokenised query tokens. Lower is better. The boolean reports
// whether the candidate clears the inclusion threshold at all. A
// threshold of zero or below selects defaultFuzzyThreshold.
//
// Each field is scored as the average, over query tokens, of the best
// normalised Levenshtein distance between the token and the field's
// words. The final score is the weighted average over non-empty fields,
// so sparse records are not penalised for what they leave blank.
func fuzzyScore(fields []fuzzyField, tokens []string, threshold float64) (float64, bool) {
	if len(tokens) == 0 {
		return 1, false
	}
	if threshold <= 0 {
		threshold = defaultFuzzyThreshold
	}

	var weighted, totalWeight float64
	included := false

	for _, f := range fields {
		if f.value == "" {
			continue
		}
		words := tokenize(f.value)
		if len(words) == 0 {
			continue
		}

		var sum float64
		for _, token := range tokens {
			best := bestTokenScore(token, words)
			if best <= threshold {
				included = true
			}
			sum += best
		}

		weighted += f.weight * (sum / float64(len(tokens)))
		totalWeight += f.weight
	}

	if totalWeight == 0 {
		return 1, false
	}
	return weighted / totalWeight, included
}

// bestTokenScore returns the lowest normalised distance between token
// and any of the words.
func bestTokenScore(token string, words []string) float64 {
	best := 1.0
	for _, word := range words {
		s := normalizedLevenshtein(token, word)
		if strings.Contains(word, token) && substringScore < s {
			s = substringScore
		}
		if s < best {
			best = s
		}
	}
	return best
}

// tokenize lowercases s and splits it on anything that is not a letter
// or digit.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// normalizedLevenshtein returns the edit distance between a and b
// divided by the longer length, giving a score in [0, 1].
func normalizedLevenshtein(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 0
	}

	longer := len(ra)
	if len(rb) > longer {
		longer = len(rb)
	}
	return float64(levenshtein(ra, rb)) / float64(longer)
}

// levenshtein computes the edit distance with the classic two-row
// dynamic programme.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

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
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// rankedMatch pairs a candidate index with its score for sorting.
type rankedMatch struct {
	index int
	score float64
}

// rankMatches scores every candidate and returns the indices of those
// clearing the threshold, best first. A threshold of zero or below
// selects defaultFuzzyThreshold. The sort is stable so equal scores
// keep input order, which keeps results deterministic.
func rankMatches(count int, fieldsAt func(i int) []fuzzyField, tokens []string, threshold float64) []int {
	matches := make([]rankedMatch, 0, count)
	for i := 0; i < count; i++ {
		score, ok := fuzzyScore(fieldsAt(i), tokens, threshold)
		if !ok {
			continue
		}
		matches = append(matches, rankedMatch{index: i, score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score < matches[j].score
	})

	indices := make([]int, len(matches))
	for i, m := range matches {
		indices[i] = m.index
	}
	return indices
}
