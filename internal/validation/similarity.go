package validation

import "strings"

// Passwords scoring at or above this ratio against a personal field are
// rejected.
const similarityThreshold = 0.7

// tooSimilar reports whether the password is close to the field value or
// to any word inside it. Both inputs are expected lowercased.
func tooSimilar(password, field string) bool {
	parts := strings.FieldsFunc(field, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	parts = append(parts, field)

	for _, part := range parts {
		if part == "" {
			continue
		}
		if len(part) >= 4 && (strings.Contains(password, part) || strings.Contains(part, password)) {
			return true
		}
		if ratio(password, part) >= similarityThreshold {
			return true
		}
	}
	return false
}

// ratio is the Ratcliff/Obershelp similarity of two strings:
// twice the matched character count over the total length.
func ratio(a, b string) float64 {
	if len(a)+len(b) == 0 {
		return 0
	}
	return 2 * float64(matchingChars(a, b)) / float64(len(a)+len(b))
}

// matchingChars counts matched characters by recursively splitting both
// strings around their longest common substring.
func matchingChars(a, b string) int {
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingChars(a[:ai], b[:bi]) +
		matchingChars(a[ai+size:], b[bi+size:])
}

func longestCommonSubstring(a, b string) (ai, bi, size int) {
	// prev[j] holds the match length ending at a[i-1], b[j-1]
	prev := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		cur := make([]int, len(b)+1)
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > size {
					size = cur[j]
					ai = i - size
					bi = j - size
				}
			}
		}
		prev = cur
	}
	return ai, bi, size
}
