package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchScoreSubstring(t *testing.T) {
	assert.Equal(t, 3, MatchScore("my printer is jammed", []string{"printer"}))
	// Space-free form catches patterns that span word boundaries.
	assert.Equal(t, 3, MatchScore("sage300 crashed", []string{"sage 300"}))
	assert.Equal(t, 3, MatchScore("sage 300 crashed", []string{"sage300"}))
}

func TestMatchScoreWholeWord(t *testing.T) {
	// A standalone word is also a substring of the normalized text, so the
	// substring tier takes it.
	assert.Equal(t, 3, MatchScore("the hp by the window", []string{"hp"}))
}

func TestMatchScoreTypo(t *testing.T) {
	// One-edit typo within the length guard scores 1.
	assert.Equal(t, 1, MatchScore("my prnter is broken", []string{"printer"}))
	// Short unrelated words must not match: "pc" vs "vpn" is two edits.
	assert.Equal(t, 0, MatchScore("my pc is fine", []string{"vpn"}))
	// Two edits away is out of tolerance.
	assert.Equal(t, 0, MatchScore("my pritr is broken", []string{"printer"}))
}

func TestMatchScoreAccumulates(t *testing.T) {
	single := MatchScore("my hp printer is jammed", []string{"printer"})
	both := MatchScore("my hp printer is jammed", []string{"printer", "hp"})
	assert.Greater(t, both, single)
}

// Adding patterns to a set can only add score, never remove it.
func TestMatchScoreMonotonic(t *testing.T) {
	text := "outlook will not open my email today"
	base := []string{"outlook"}
	grown := []string{"outlook", "email", "inbox", "zzzz"}
	assert.GreaterOrEqual(t, MatchScore(text, grown), MatchScore(text, base))
}

func TestMatchScoreEmptyInputs(t *testing.T) {
	assert.Equal(t, 0, MatchScore("", []string{"printer"}))
	assert.Equal(t, 0, MatchScore("printer", nil))
	assert.Equal(t, 0, MatchScore("printer", []string{""}))
}
