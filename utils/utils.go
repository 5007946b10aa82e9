package utils

import "strings"

// Normalize lowercases s and collapses every run of non-alphanumeric
// characters into a single space, trimming the ends. Applied to both stored
// patterns and user input so the two always meet in the same form.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r + 32)
		default:
			space = true
		}
	}
	return b.String()
}

// Tight is Normalize with the spaces removed, so typos that span word
// boundaries ("sage300" vs "sage 300") still line up.
func Tight(s string) string {
	return strings.ReplaceAll(Normalize(s), " ", "")
}

// Tokens splits s into normalized words.
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}

// Levenshtein returns the edit distance between a and b with unit-cost
// insert, delete and substitute.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = Min(Min(curr[j-1]+1, prev[j]+1), prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
