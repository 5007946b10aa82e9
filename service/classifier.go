package service

import (
	"strings"

	"support-agent/model"
	"support-agent/utils"
)

// Classifier scores a message against every configured intent's pattern set
// and keeps the best one that clears its own minimum score.
type Classifier struct {
	defs []model.IntentDefinition
}

func NewClassifier(defs []model.IntentDefinition) *Classifier {
	enabled := make([]model.IntentDefinition, 0, len(defs))
	for _, d := range defs {
		if d.Enabled {
			enabled = append(enabled, d)
		}
	}
	return &Classifier{defs: enabled}
}

// IntentMatch is a classification result. Intent is IntentUnknown with a
// zero score when nothing clears its threshold or two intents tie.
type IntentMatch struct {
	Intent model.Intent
	Score  int
}

// Detect picks the highest-scoring intent above its configured minimum.
// A tie for the top spot yields IntentUnknown rather than an arbitrary pick.
func (c *Classifier) Detect(text string) IntentMatch {
	best := IntentMatch{Intent: model.IntentUnknown}
	bestMin := 0
	tied := false

	for _, d := range c.defs {
		score := MatchScore(text, d.Patterns)
		if score == 0 {
			continue
		}
		switch {
		case score > best.Score:
			best = IntentMatch{Intent: d.ID, Score: score}
			bestMin = d.MinScore
			tied = false
		case score == best.Score:
			tied = true
		}
	}

	if best.Score < bestMin || tied {
		return IntentMatch{Intent: model.IntentUnknown}
	}
	return best
}

// TopicScore is the highest raw pattern score across all intents, threshold
// ignored. Used to suppress the greeting and diagnostics shortcuts when the
// message also looks like an issue report.
func (c *Classifier) TopicScore(text string) int {
	max := 0
	for _, d := range c.defs {
		if s := MatchScore(text, d.Patterns); s > max {
			max = s
		}
	}
	return max
}

// Definition returns the config entry for an intent, or nil.
func (c *Classifier) Definition(id model.Intent) *model.IntentDefinition {
	for i := range c.defs {
		if c.defs[i].ID == id {
			return &c.defs[i]
		}
	}
	return nil
}

var greetingWords = []string{
	"hi", "hello", "hey", "yo", "hiya", "howdy", "greetings",
	"morning", "afternoon", "evening",
}

var greetingPrefixes = []string{
	"good morning", "good afternoon", "good evening",
	"hi ", "hello ", "hey ",
}

// IsGreeting reports whether the message is a bare greeting: at most three
// words, an exact greeting word or a standard greeting prefix, and no topical
// keyword anywhere in it. "hi, my printer is broken" is not a greeting.
func (c *Classifier) IsGreeting(text string) bool {
	norm := utils.Normalize(text)
	if norm == "" {
		return false
	}
	if len(strings.Fields(norm)) > 3 {
		return false
	}
	if c.TopicScore(text) > 0 {
		return false
	}
	for _, w := range greetingWords {
		if norm == w {
			return true
		}
	}
	for _, p := range greetingPrefixes {
		if strings.HasPrefix(norm, p) {
			return true
		}
	}
	return false
}
