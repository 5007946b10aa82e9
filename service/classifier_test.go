package service

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"support-agent/model"
)

// loadIntentDefs pulls the shipped intent tables so tests run against the
// real configuration.
func loadIntentDefs(t *testing.T) []model.IntentDefinition {
	t.Helper()
	data, err := os.ReadFile("../config/intents.yaml")
	require.NoError(t, err)

	var cfg model.IntentConfig
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	require.Len(t, cfg.Intents, 8)
	return cfg.Intents
}

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	return NewClassifier(loadIntentDefs(t))
}

func TestDetectTopics(t *testing.T) {
	c := newTestClassifier(t)

	cases := []struct {
		text string
		want model.Intent
	}{
		{"my hp printer won't print", model.IntentPrinters},
		{"sage 300 throws an error", model.IntentSage300},
		{"sage300 frozen in payroll", model.IntentSage300},
		{"accpac won't open", model.IntentSage300},
		{"outlook won't open my inbox", model.IntentOutlookEmail},
		{"i can't reach the shared drive", model.IntentSharedDrive},
		{"forticlient won't connect", model.IntentVPN},
		{"no internet on my laptop since lunch", model.IntentNetworkInternet},
		{"teams and onedrive are both down", model.IntentOffice365},
		{"my laptop is frozen", model.IntentGeneralIT},
	}
	for _, tc := range cases {
		got := c.Detect(tc.text)
		require.Equal(t, tc.want, got.Intent, "Detect(%q) scored %d", tc.text, got.Score)
	}
}

func TestDetectUnknownBelowThreshold(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Detect("the weather is lovely today")
	require.Equal(t, model.IntentUnknown, got.Intent)
	require.Zero(t, got.Score)
}

// Detect is a pure function: same input, same result.
func TestDetectDeterministic(t *testing.T) {
	c := newTestClassifier(t)

	first := c.Detect("my hp printer won't print")
	for i := 0; i < 10; i++ {
		require.Equal(t, first, c.Detect("my hp printer won't print"))
	}
}

func TestDetectTypoTolerance(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Detect("my prnter is broken")
	// "prnter" is one edit from "printer" (typo, 1) and "broken" scores
	// nothing; 1 is below the printers threshold of 2, so the weak typo
	// alone must not start a flow. Calibration behaviour.
	require.Equal(t, model.IntentUnknown, got.Intent)

	got = c.Detect("prnter paper jam")
	require.Equal(t, model.IntentPrinters, got.Intent)
}

func TestIsGreeting(t *testing.T) {
	c := newTestClassifier(t)

	for _, text := range []string{"hi", "Hello!", "hey", "good morning", "Good afternoon all", "hi there"} {
		require.True(t, c.IsGreeting(text), "expected greeting: %q", text)
	}
	for _, text := range []string{
		"",
		"hi my printer is down",        // topical keyword present
		"hello i need help with sage",  // topical keyword present
		"how do i reset my password",   // not a greeting shape
		"good morning everyone at the office today", // too long
	} {
		require.False(t, c.IsGreeting(text), "expected not a greeting: %q", text)
	}
}

func TestTopicScoreSuppressesGreeting(t *testing.T) {
	c := newTestClassifier(t)

	require.Zero(t, c.TopicScore("hi"))
	require.Positive(t, c.TopicScore("hi my printer is down"))
}
