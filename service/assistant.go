package service

import (
	"strings"

	"support-agent/model"
	"support-agent/utils"
)

const greetingReply = "Hi! I'm your IT assistant. Tell me what's going wrong (printers, Sage 300, Outlook, the shared drive, VPN, internet, Office 365), or ask me about your device's current status."

const fallbackEmptyReply = "I didn't catch that. Describe the problem you're seeing, or submit a ticket from the Support tab."

const fallbackUnknownReply = "I'm not sure how to handle this one automatically. " + escalateText

// Assistant is the conversational diagnosis engine. It is a pure computation
// over its inputs: no I/O, no timers, no shared state. Each call takes the
// caller-held ConversationState and returns the next one in the response.
type Assistant struct {
	classifier *Classifier
}

func NewAssistant(defs []model.IntentDefinition) *Assistant {
	return &Assistant{classifier: NewClassifier(defs)}
}

// Classifier exposes the intent classifier for callers that only need
// detection (no dialogue).
func (a *Assistant) Classifier() *Classifier {
	return a.classifier
}

// BuildAnswer turns one user message into an AiResponse. Precedence:
//
//  1. empty message -> fixed prompt, state untouched
//  2. direct status question (VPN / online / IP) -> telemetry answer,
//     state untouched even mid-flow
//  3. mid-flow message -> fills the outstanding slot, unless a switch
//     phrase abandons the flow and re-runs detection
//  4. bare greeting -> fixed intro
//  5. diagnostics question with no topical keywords -> snapshot report
//  6. intent detection -> start a flow, or the unknown fallback
//
// recentQuestions (the caller's last few user messages) only feed detection
// when the current message alone is inconclusive.
func (a *Assistant) BuildAnswer(
	question string,
	recentQuestions []string,
	telemetry *model.TelemetryContext,
	history []model.Exchange,
	state model.ConversationState,
	device *model.DeviceStatus,
) model.AiResponse {
	unchanged := state

	if len(recentQuestions) == 0 {
		for _, ex := range history {
			recentQuestions = append(recentQuestions, ex.Question)
		}
	}

	if utils.Normalize(question) == "" {
		return model.AiResponse{Answer: fallbackEmptyReply, Flow: &unchanged}
	}

	if resp, ok := a.directStatusAnswer(question, telemetry, device); ok {
		resp.Flow = &unchanged
		return resp
	}

	if state.ActiveIntent != model.IntentNone && state.ActiveIntent != model.IntentUnknown && state.StepIndex > 0 {
		if hasSwitchHint(question) {
			return a.startDetectedFlow(question, recentQuestions, true)
		}
		def := a.classifier.Definition(state.ActiveIntent)
		if def == nil {
			reset := model.ConversationState{}
			return model.AiResponse{Answer: fallbackUnknownReply, Flow: &reset}
		}
		return advanceFlow(def, state, question)
	}

	if a.classifier.IsGreeting(question) {
		return model.AiResponse{Answer: greetingReply, Flow: &unchanged}
	}

	if isDiagnosticsQuestion(question) && a.classifier.TopicScore(question) == 0 {
		return model.AiResponse{
			Answer:       snapshotReport(device),
			Flow:         &unchanged,
			ActionLabel:  "View details in Troubleshoot",
			ActionTarget: model.ActionTroubleshoot,
		}
	}

	return a.startDetectedFlow(question, recentQuestions, false)
}

// directStatusAnswer handles the literal status-question groups. These echo
// telemetry back and never touch conversation state.
func (a *Assistant) directStatusAnswer(question string, telemetry *model.TelemetryContext, device *model.DeviceStatus) (model.AiResponse, bool) {
	var lastVpn *model.VpnStatus
	if telemetry != nil {
		lastVpn = telemetry.LastVpnResult
	}

	switch {
	case matchesAnyPhrase(question, vpnStatusPatterns):
		return model.AiResponse{
			Answer:       vpnStatusAnswer(device, lastVpn),
			ActionLabel:  "View details in Troubleshoot",
			ActionTarget: model.ActionTroubleshoot,
		}, true
	case matchesAnyPhrase(question, onlineStatusPatterns):
		return model.AiResponse{
			Answer:       onlineStatusAnswer(telemetry, device),
			ActionLabel:  "View details in Troubleshoot",
			ActionTarget: model.ActionTroubleshoot,
		}, true
	case matchesAnyPhrase(question, ipGatewayPatterns):
		return model.AiResponse{
			Answer:       ipGatewayAnswer(device),
			ActionLabel:  "View details in Troubleshoot",
			ActionTarget: model.ActionTroubleshoot,
		}, true
	}
	return model.AiResponse{}, false
}

// startDetectedFlow classifies the message and opens the matching flow.
// afterSwitch marks re-detection triggered by a switch phrase: there the user
// has clearly asked to talk about something new, so an unrecognized topic
// falls back to the general IT script instead of the unknown reply.
func (a *Assistant) startDetectedFlow(question string, recentQuestions []string, afterSwitch bool) model.AiResponse {
	// The hint phrases themselves contain words like "issue" that would
	// otherwise feed the general-IT pattern set.
	question = stripSwitchHint(question)

	match := a.classifier.Detect(question)
	if match.Intent == model.IntentUnknown && !afterSwitch && len(recentQuestions) > 0 {
		// A vague follow-up borrows context from the last few questions. Not
		// after a switch phrase: those would pull back the abandoned topic.
		corpus := question + " " + strings.Join(lastN(recentQuestions, 3), " ")
		match = a.classifier.Detect(corpus)
	}

	if match.Intent == model.IntentUnknown {
		if afterSwitch {
			match.Intent = model.IntentGeneralIT
		} else {
			reset := model.ConversationState{ActiveIntent: model.IntentUnknown}
			return model.AiResponse{Answer: fallbackUnknownReply, Flow: &reset}
		}
	}

	def := a.classifier.Definition(match.Intent)
	if def == nil {
		reset := model.ConversationState{ActiveIntent: model.IntentUnknown}
		return model.AiResponse{Answer: fallbackUnknownReply, Flow: &reset}
	}
	return startFlow(def)
}

func lastN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}
