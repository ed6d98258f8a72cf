package nlu

// TokenOverlap scores the token-set overlap between two strings in
// [0,1]. Each shared token contributes its weight (default 1) and the
// sum is divided by the size of the larger token set, so a short
// utterance compared against a long phrase is penalized. Duplicate
// tokens are ignored. Returns 0 when either side has no tokens.
func TokenOverlap(a, b string, weights map[string]float64) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	var sum float64
	for tok := range setA {
		if _, ok := setB[tok]; !ok {
			continue
		}
		w := 1.0
		if weights != nil {
			if v, ok := weights[tok]; ok && v > 0 {
				w = v
			}
		}
		sum += w
	}
	if sum == 0 {
		return 0
	}

	larger := len(setA)
	if len(setB) > larger {
		larger = len(setB)
	}
	return sum / float64(larger)
}

// CharSimilarity returns 1 - editDistance/len(longer) in [0,1], a
// cheap proxy for near-miss spellings. Two empty strings score 1.
func CharSimilarity(a, b string) float64 {
	longer, shorter := a, b
	if len(b) > len(a) {
		longer, shorter = b, a
	}
	if len(longer) == 0 {
		return 1
	}
	dist := levenshtein(longer, shorter)
	return float64(len(longer)-dist) / float64(len(longer))
}

// levenshtein computes edit distance with unit insert/delete/substitute
// costs using the standard two-row dynamic program.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(rb); i++ {
		curr[0] = i
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min3(prev[j-1], curr[j-1], prev[j]) + 1
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(ra)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
