package model

// IntentDefinition is one topic's entry in config/intents.yaml: the keyword
// patterns that select it, the minimum match score it needs, and the two
// scripted questions its dialogue asks. SlotLabels name the captured answers
// in the summary and ticket description ("Printer: ...", "Module: ...").
type IntentDefinition struct {
	ID         Intent   `yaml:"id"`
	Label      string   `yaml:"label"`
	Patterns   []string `yaml:"patterns"`
	MinScore   int      `yaml:"min_score"`
	Questions  []string `yaml:"questions"`
	SlotLabels []string `yaml:"slot_labels"`
	Enabled    bool     `yaml:"enabled"`
}

type IntentConfig struct {
	Intents []IntentDefinition `yaml:"intents"`
}
