package validate

import "strings"

// similarity is a sequence-similarity ratio in [0,1]: twice the number of
// matching runes (longest-common-substring blocks, found recursively) over
// the total length. Case-insensitive comparison is the caller's job.
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	matched := matchingRunes(ra, rb)
	return 2 * float64(matched) / float64(len(ra)+len(rb))
}

// matchingRunes finds the longest common substring, then recurses into the
// pieces to its left and right. Candidate strings here are short document
// type names, so the cubic worst case is irrelevant.
func matchingRunes(a, b []rune) int {
	ai, bi, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingRunes(a[:ai], b[:bi])
	total += matchingRunes(a[ai+size:], b[bi+size:])
	return total
}

func longestCommonBlock(a, b []rune) (ai, bi, size int) {
	// lengths[j] is the common-suffix length ending at a[i-1], b[j-1].
	lengths := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		prev := 0
		for j := 1; j <= len(b); j++ {
			cur := lengths[j]
			if a[i-1] == b[j-1] {
				lengths[j] = prev + 1
				if lengths[j] > size {
					size = lengths[j]
					ai = i - size
					bi = j - size
				}
			} else {
				lengths[j] = 0
			}
			prev = cur
		}
	}
	return ai, bi, size
}

// BestMatch returns the candidate with the highest similarity to text and
// the score itself, comparing case-insensitively.
func BestMatch(text string, candidates []string) (string, float64) {
	best, bestScore := "", 0.0
	needle := strings.ToLower(strings.TrimSpace(text))
	for _, c := range candidates {
		if score := similarity(needle, strings.ToLower(c)); score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, bestScore
}
