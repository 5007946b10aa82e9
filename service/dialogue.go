package service

import (
	"fmt"
	"strings"

	"support-agent/model"
	"support-agent/utils"
)

// FollowUpDelayMs is how long the caller should wait before rendering the
// summary bubble a completed flow produces.
const FollowUpDelayMs = 1200

const escalateText = "You can submit a ticket from the Support tab, or call the IT service desk if this is blocking you."

const (
	slotFirst  = "first"
	slotSecond = "second"
)

// Phrases that abandon the current flow and re-run intent detection. Mid-flow
// these are the only way to change topic; ordinary free text fills slots.
var switchPhrases = []string{
	"new issue",
	"new problem",
	"different issue",
	"different problem",
	"another issue",
	"another problem",
	"something else",
	"start over",
}

func hasSwitchHint(text string) bool {
	return matchesAnyPhrase(text, switchPhrases)
}

// stripSwitchHint removes the switch phrases from a message before it is
// re-classified, so "new issue, my outlook is broken" scores on "outlook"
// rather than on the word "issue" inside the hint itself.
func stripSwitchHint(text string) string {
	norm := utils.Normalize(text)
	for _, p := range switchPhrases {
		norm = strings.ReplaceAll(norm, utils.Normalize(p), " ")
	}
	return strings.Join(strings.Fields(norm), " ")
}

// startFlow opens a fresh dialogue for the intent: emit the first scripted
// question and park at step 1. Any previous flow's slots are discarded.
func startFlow(def *model.IntentDefinition) model.AiResponse {
	state := model.ConversationState{
		ActiveIntent: def.ID,
		StepIndex:    1,
		Slots:        map[string]string{},
	}
	if def.ID == model.IntentSage300 {
		state.Sage = &model.SageSlots{}
	}
	return model.AiResponse{
		Answer: question(def, 0),
		Flow:   &state,
	}
}

// advanceFlow consumes the user's message as the answer to the outstanding
// scripted question. Step 1 captures the first detail and asks the second
// question; step 2 captures the second detail, acknowledges immediately, and
// schedules the summary plus ticket prefill as the delayed follow-up.
func advanceFlow(def *model.IntentDefinition, state model.ConversationState, message string) model.AiResponse {
	message = strings.TrimSpace(message)

	switch state.StepIndex {
	case 1:
		next := state
		next.Slots = copySlots(state.Slots)
		next.Slots[slotFirst] = message
		if next.Sage != nil {
			sage := *next.Sage
			sage.Module = message
			next.Sage = &sage
		}
		next.StepIndex = 2
		return model.AiResponse{
			Answer: question(def, 1),
			Flow:   &next,
		}

	case 2:
		slots := copySlots(state.Slots)
		if _, ok := slots[slotSecond]; !ok {
			slots[slotSecond] = message
		}
		var sage *model.SageSlots
		if state.Sage != nil {
			s := *state.Sage
			s.ErrorText = message
			sage = &s
		}

		summary := flowSummary(def, slots, sage)
		ticket := &model.TicketData{
			Category:    def.Label,
			Description: flowDescription(def, slots, sage),
		}

		done := model.ConversationState{TicketDraft: ticket}
		return model.AiResponse{
			Answer:          "Got it. Preparing the details for IT support...",
			FollowUp:        summary,
			FollowUpDelayMs: FollowUpDelayMs,
			Flow:            &done,
			ActionLabel:     "Open ticket form",
			ActionTarget:    model.ActionTicket,
			TicketData:      ticket,
		}

	default:
		// No script left for this step. Hand off and reset.
		reset := model.ConversationState{}
		return model.AiResponse{
			Answer: "This one needs a person. " + escalateText,
			Flow:   &reset,
		}
	}
}

func question(def *model.IntentDefinition, idx int) string {
	if idx < len(def.Questions) {
		return def.Questions[idx]
	}
	return "Could you tell me a bit more about the problem?"
}

func slotLabel(def *model.IntentDefinition, idx int) string {
	if idx < len(def.SlotLabels) {
		return def.SlotLabels[idx]
	}
	if idx == 0 {
		return "Details"
	}
	return "More details"
}

// flowSummary is the delayed second bubble: both captured slots under their
// per-intent labels, then the standard escalation instruction.
func flowSummary(def *model.IntentDefinition, slots map[string]string, sage *model.SageSlots) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summary of your %s issue:\n", def.Label)
	b.WriteString(flowDescription(def, slots, sage))
	b.WriteString("\n\n")
	b.WriteString(escalateText)
	return b.String()
}

func flowDescription(def *model.IntentDefinition, slots map[string]string, sage *model.SageSlots) string {
	first := slots[slotFirst]
	second := slots[slotSecond]
	if sage != nil {
		first = sage.Module
		second = sage.ErrorText
	}
	return fmt.Sprintf("%s: %s\n%s: %s",
		slotLabel(def, 0), orNotGiven(first),
		slotLabel(def, 1), orNotGiven(second))
}

func orNotGiven(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(not provided)"
	}
	return s
}

func copySlots(m map[string]string) map[string]string {
	out := make(map[string]string, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
