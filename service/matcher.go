package service

import (
	"strings"

	"support-agent/utils"
)

const (
	scoreSubstring = 3
	scoreWholeWord = 2
	scoreTypo      = 1

	// TypoDistance bounds the edit distance (and the word-length difference)
	// accepted as a typo. Calibration constant, tuned against real chat logs.
	TypoDistance = 1

	// minTypoPatternLen keeps the typo fallback away from two-letter patterns
	// like "hp", where one edit reaches half the dictionary.
	minTypoPatternLen = 3
)

// MatchScore scores text against a pattern set. Per pattern: substring match
// on the normalized or space-free form scores 3; otherwise the best word-level
// match counts, 2 for an exact word and 1 for a near-miss within TypoDistance
// edits. The length guard keeps short unrelated words ("pc" vs "vpn") from
// sneaking in as typos. Pattern scores accumulate across the set.
func MatchScore(text string, patterns []string) int {
	norm := utils.Normalize(text)
	if norm == "" {
		return 0
	}
	tight := utils.Tight(text)
	words := strings.Fields(norm)

	total := 0
	for _, p := range patterns {
		pn := utils.Normalize(p)
		if pn == "" {
			continue
		}
		if strings.Contains(norm, pn) || strings.Contains(tight, utils.Tight(p)) {
			total += scoreSubstring
			continue
		}

		best := 0
		for _, w := range words {
			if w == pn {
				best = scoreWholeWord
				break
			}
			if len(pn) >= minTypoPatternLen &&
				lengthDelta(w, pn) <= TypoDistance &&
				utils.Levenshtein(w, pn) <= TypoDistance {
				best = scoreTypo
			}
		}
		total += best
	}
	return total
}

func lengthDelta(a, b string) int {
	if len(a) > len(b) {
		return len(a) - len(b)
	}
	return len(b) - len(a)
}
