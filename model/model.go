package model

// Intent is the classified topic of a troubleshooting message.
type Intent string

const (
	IntentPrinters        Intent = "printers"
	IntentSage300         Intent = "sage300"
	IntentOutlookEmail    Intent = "outlook_email"
	IntentSharedDrive     Intent = "shared_drive"
	IntentVPN             Intent = "vpn"
	IntentNetworkInternet Intent = "network_internet"
	IntentOffice365       Intent = "office365"
	IntentGeneralIT       Intent = "general_it"
	IntentNone            Intent = ""
	IntentUnknown         Intent = "unknown"
)

type SessionState string

const (
	SessionNew      SessionState = "new"
	SessionActive   SessionState = "active"
	SessionOnFlow   SessionState = "on_flow"
	SessionComplete SessionState = "complete"
)

type TicketStatus string

const (
	TicketOpen     TicketStatus = "open"
	TicketPending  TicketStatus = "pending"
	TicketResolved TicketStatus = "resolved"
	TicketClosed   TicketStatus = "closed"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// UI surfaces a response may ask the desktop agent to open.
const (
	ActionTroubleshoot = "troubleshoot"
	ActionTicket       = "ticket"
)

// SageSlots is the Sage 300 specific slot shape: that flow collects the
// module the user was in and the exact error text, instead of the generic
// two free-form details.
type SageSlots struct {
	Module    string `json:"module,omitempty"`
	ErrorText string `json:"error_text,omitempty"`
}

// ConversationState tracks one in-progress troubleshooting dialogue.
// StepIndex 0 means no question has been asked yet, 1 means the first
// scripted question is outstanding, 2 means the second is. At most one flow
// is active at a time; starting a new one discards the previous slots.
type ConversationState struct {
	ActiveIntent Intent            `json:"active_intent,omitempty"`
	StepIndex    int               `json:"step_index"`
	Slots        map[string]string `json:"slots,omitempty"`
	Sage         *SageSlots        `json:"sage,omitempty"`
	TicketDraft  *TicketData       `json:"ticket_draft,omitempty"`
}

// TicketData prefills the desktop agent's ticket-submission form.
type TicketData struct {
	Subject     string `json:"subject,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	UserEmail   string `json:"user_email,omitempty"`
	Urgency     string `json:"urgency,omitempty"`
}

// AiResponse is what the engine hands back for every message. Answer is
// always set. FollowUp, when present, is a second chat bubble the caller
// should render after FollowUpDelayMs; the engine declares the delay but
// never schedules anything itself.
type AiResponse struct {
	Answer          string             `json:"answer"`
	FollowUp        string             `json:"follow_up,omitempty"`
	FollowUpDelayMs int                `json:"follow_up_delay_ms,omitempty"`
	Flow            *ConversationState `json:"flow,omitempty"`
	ActionLabel     string             `json:"action_label,omitempty"`
	ActionTarget    string             `json:"action_target,omitempty"`
	TicketData      *TicketData        `json:"ticket_data,omitempty"`
}

// Exchange is one prior question/answer pair kept by the caller.
type Exchange struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Session is the per-chat record held in Redis. The store's inactivity TTL
// implements the 10-minute conversation reset.
type Session struct {
	ID           string            `json:"id"`
	UserID       string            `json:"user_id,omitempty"`
	State        SessionState      `json:"state"`
	Conversation ConversationState `json:"conversation"`
	Messages     []Message         `json:"messages,omitempty"`
	CreatedAt    string            `json:"created_at"`
	UpdatedAt    string            `json:"updated_at"`
}

type ChatRequest struct {
	SessionID    string            `json:"session_id"`
	UserID       string            `json:"user_id"`
	Message      string            `json:"message"`
	Telemetry    *TelemetryContext `json:"telemetry,omitempty"`
	DeviceStatus *DeviceStatus     `json:"device_status,omitempty"`
}

type ChatResponse struct {
	SessionID       string       `json:"session_id"`
	Reply           string       `json:"reply"`
	FollowUp        string       `json:"follow_up,omitempty"`
	FollowUpDelayMs int          `json:"follow_up_delay_ms,omitempty"`
	Intent          Intent       `json:"intent,omitempty"`
	Session         SessionState `json:"session_state,omitempty"`
	FlowStep        int          `json:"flow_step"`
	ActionLabel     string       `json:"action_label,omitempty"`
	ActionTarget    string       `json:"action_target,omitempty"`
	Ticket          *TicketData  `json:"ticket,omitempty"`
}

// Ticket is a persisted support ticket, created when the user submits the
// prefilled form a completed flow produced.
type Ticket struct {
	ID          string       `json:"id"`
	SessionID   string       `json:"session_id"`
	UserID      string       `json:"user_id"`
	Category    string       `json:"category"`
	Subject     string       `json:"subject"`
	Description string       `json:"description"`
	UserEmail   string       `json:"user_email,omitempty"`
	Urgency     string       `json:"urgency,omitempty"`
	Status      TicketStatus `json:"status"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
}
