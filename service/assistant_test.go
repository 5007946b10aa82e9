package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"support-agent/model"
)

func newTestAssistant(t *testing.T) *Assistant {
	t.Helper()
	return NewAssistant(loadIntentDefs(t))
}

func ask(a *Assistant, question string, state model.ConversationState) model.AiResponse {
	return a.BuildAnswer(question, nil, nil, nil, state, nil)
}

func TestEmptyQuestion(t *testing.T) {
	a := newTestAssistant(t)

	resp := ask(a, "   ", model.ConversationState{})
	assert.Equal(t, fallbackEmptyReply, resp.Answer)
	require.NotNil(t, resp.Flow)
	assert.Equal(t, model.IntentNone, resp.Flow.ActiveIntent)
}

func TestGreetingAlone(t *testing.T) {
	a := newTestAssistant(t)

	resp := ask(a, "hi", model.ConversationState{})
	assert.Equal(t, greetingReply, resp.Answer)
	require.NotNil(t, resp.Flow)
	assert.Equal(t, model.IntentNone, resp.Flow.ActiveIntent)
	assert.Zero(t, resp.Flow.StepIndex)
}

func TestGreetingWithTopicStartsFlow(t *testing.T) {
	a := newTestAssistant(t)

	resp := ask(a, "hi my printer is down", model.ConversationState{})
	require.NotNil(t, resp.Flow)
	assert.Equal(t, model.IntentPrinters, resp.Flow.ActiveIntent)
	assert.Equal(t, 1, resp.Flow.StepIndex)
	assert.NotEqual(t, greetingReply, resp.Answer)
}

func TestPrinterFlowStart(t *testing.T) {
	a := newTestAssistant(t)

	resp := ask(a, "My HP printer won't print", model.ConversationState{})
	require.NotNil(t, resp.Flow)
	assert.Equal(t, model.IntentPrinters, resp.Flow.ActiveIntent)
	assert.Equal(t, 1, resp.Flow.StepIndex)
	assert.Contains(t, resp.Answer, "Which printer")
}

func TestGenericFlowCompletes(t *testing.T) {
	a := newTestAssistant(t)

	r1 := ask(a, "my printer is jammed", model.ConversationState{})
	require.Equal(t, model.IntentPrinters, r1.Flow.ActiveIntent)

	r2 := ask(a, "The HP in accounting, it worked yesterday", *r1.Flow)
	require.Equal(t, 2, r2.Flow.StepIndex)
	assert.Equal(t, "The HP in accounting, it worked yesterday", r2.Flow.Slots["first"])

	r3 := ask(a, "It says paper jam but there is no paper stuck", *r2.Flow)
	assert.Contains(t, r3.Answer, "Preparing")
	require.NotEmpty(t, r3.FollowUp)
	assert.Equal(t, FollowUpDelayMs, r3.FollowUpDelayMs)
	assert.Contains(t, r3.FollowUp, "The HP in accounting, it worked yesterday")
	assert.Contains(t, r3.FollowUp, "It says paper jam but there is no paper stuck")

	// Flow resets; ticket prefill carries both details.
	require.NotNil(t, r3.Flow)
	assert.Equal(t, model.IntentNone, r3.Flow.ActiveIntent)
	assert.Zero(t, r3.Flow.StepIndex)
	require.NotNil(t, r3.TicketData)
	assert.Equal(t, "Printers", r3.TicketData.Category)
	assert.Contains(t, r3.TicketData.Description, "The HP in accounting")
	assert.Equal(t, model.ActionTicket, r3.ActionTarget)
}

func TestSageFlowCapturesModuleVerbatim(t *testing.T) {
	a := newTestAssistant(t)

	r1 := ask(a, "sage 300 error", model.ConversationState{})
	require.NotNil(t, r1.Flow)
	require.Equal(t, model.IntentSage300, r1.Flow.ActiveIntent)
	assert.Contains(t, r1.Answer, "module")
	require.NotNil(t, r1.Flow.Sage)

	r2 := ask(a, "General Ledger", *r1.Flow)
	require.NotNil(t, r2.Flow.Sage)
	assert.Equal(t, "General Ledger", r2.Flow.Sage.Module)
	assert.Contains(t, r2.Answer, "error text")

	r3 := ask(a, "Error 49153: cannot access database", *r2.Flow)
	require.NotNil(t, r3.TicketData)
	assert.Contains(t, r3.FollowUp, "General Ledger")
	assert.Contains(t, r3.FollowUp, "Error 49153: cannot access database")
	assert.Equal(t, "Sage 300", r3.TicketData.Category)
}

// Once a flow is past step 0, topical free text fills slots instead of
// restarting classification.
func TestMidFlowIntentLocked(t *testing.T) {
	a := newTestAssistant(t)

	r1 := ask(a, "my vpn keeps dropping", model.ConversationState{})
	require.Equal(t, model.IntentVPN, r1.Flow.ActiveIntent)

	r2 := ask(a, "printer", *r1.Flow)
	require.NotNil(t, r2.Flow)
	assert.Equal(t, model.IntentVPN, r2.Flow.ActiveIntent)
	assert.Equal(t, 2, r2.Flow.StepIndex)
	assert.Equal(t, "printer", r2.Flow.Slots["first"])
}

func TestSwitchHintResetsFlow(t *testing.T) {
	a := newTestAssistant(t)

	r1 := ask(a, "my printer is jammed", model.ConversationState{})
	require.Equal(t, model.IntentPrinters, r1.Flow.ActiveIntent)

	r2 := ask(a, "new issue, my outlook is broken", *r1.Flow)
	require.NotNil(t, r2.Flow)
	assert.Equal(t, model.IntentOutlookEmail, r2.Flow.ActiveIntent)
	assert.Equal(t, 1, r2.Flow.StepIndex)
	// Printer slots are gone.
	assert.Empty(t, r2.Flow.Slots["first"])
}

func TestSwitchHintWithoutTopicFallsBackToGeneral(t *testing.T) {
	a := newTestAssistant(t)

	r1 := ask(a, "my printer is jammed", model.ConversationState{})
	r2 := ask(a, "different problem now", *r1.Flow)
	require.NotNil(t, r2.Flow)
	assert.Equal(t, model.IntentGeneralIT, r2.Flow.ActiveIntent)
	assert.Equal(t, 1, r2.Flow.StepIndex)
}

// Direct status questions are answered from telemetry and leave an active
// flow exactly where it was.
func TestVpnStatusShortcutPreservesFlow(t *testing.T) {
	a := newTestAssistant(t)
	device := testDeviceStatus()

	state := model.ConversationState{
		ActiveIntent: model.IntentPrinters,
		StepIndex:    1,
		Slots:        map[string]string{},
	}
	resp := a.BuildAnswer("am i on vpn", nil, nil, nil, state, device)

	assert.Contains(t, resp.Answer, "connected")
	assert.Contains(t, resp.Answer, "203.0.113.5")
	require.NotNil(t, resp.Flow)
	assert.Equal(t, model.IntentPrinters, resp.Flow.ActiveIntent)
	assert.Equal(t, 1, resp.Flow.StepIndex)
	assert.Equal(t, model.ActionTroubleshoot, resp.ActionTarget)
}

func TestDiagnosticsSnapshotReport(t *testing.T) {
	a := newTestAssistant(t)

	resp := a.BuildAnswer("how much disk space is left", nil, nil, nil, model.ConversationState{}, testDeviceStatus())
	assert.Contains(t, resp.Answer, "C:")
	assert.Equal(t, model.ActionTroubleshoot, resp.ActionTarget)
	require.NotNil(t, resp.Flow)
	assert.Equal(t, model.IntentNone, resp.Flow.ActiveIntent)
}

// A topical issue report that happens to mention a diagnostics word starts
// its flow instead of dumping the snapshot.
func TestTopicBeatsDiagnosticsPredicate(t *testing.T) {
	a := newTestAssistant(t)

	resp := a.BuildAnswer("my printer shows offline", nil, nil, nil, model.ConversationState{}, testDeviceStatus())
	require.NotNil(t, resp.Flow)
	assert.Equal(t, model.IntentPrinters, resp.Flow.ActiveIntent)
	assert.Equal(t, 1, resp.Flow.StepIndex)
}

func TestUnknownFallback(t *testing.T) {
	a := newTestAssistant(t)

	resp := ask(a, "the quarterly numbers look odd", model.ConversationState{})
	assert.Equal(t, fallbackUnknownReply, resp.Answer)
	require.NotNil(t, resp.Flow)
	assert.Equal(t, model.IntentUnknown, resp.Flow.ActiveIntent)
	assert.Zero(t, resp.Flow.StepIndex)
}

// Recent questions rescue a vague follow-up, but never override a clear
// current message.
func TestRecentQuestionsFeedDetection(t *testing.T) {
	a := newTestAssistant(t)

	resp := a.BuildAnswer("it is doing it again", []string{"my printer is jammed"}, nil, nil, model.ConversationState{}, nil)
	require.NotNil(t, resp.Flow)
	assert.Equal(t, model.IntentPrinters, resp.Flow.ActiveIntent)

	resp = a.BuildAnswer("outlook will not start", []string{"my printer is jammed"}, nil, nil, model.ConversationState{}, nil)
	assert.Equal(t, model.IntentOutlookEmail, resp.Flow.ActiveIntent)
}

// BuildAnswer never mutates the state it was handed.
func TestInputStateNotMutated(t *testing.T) {
	a := newTestAssistant(t)

	state := model.ConversationState{
		ActiveIntent: model.IntentVPN,
		StepIndex:    1,
		Slots:        map[string]string{},
	}
	_ = ask(a, "it times out after a minute", state)

	assert.Equal(t, 1, state.StepIndex)
	assert.Empty(t, state.Slots)
}
