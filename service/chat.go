package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"support-agent/model"
)

// ErrTicketInvalid marks a ticket submission missing required fields.
var ErrTicketInvalid = errors.New("ticket invalid")

// SessionStore persists conversation sessions. Implemented by dao.RedisStore;
// the store's TTL provides the 10-minute inactivity reset.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*model.Session, error)
	Save(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, sessionID string) error
}

// TicketRepo persists submitted tickets. Implemented by dao.TicketRepo.
type TicketRepo interface {
	Create(ctx context.Context, t *model.Ticket) error
	GetByID(ctx context.Context, id string) (*model.Ticket, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Ticket, error)
}

// recentWindow is how many prior user messages feed the classifier corpus.
const recentWindow = 3

type ChatService struct {
	assistant *Assistant
	store     SessionStore
	tickets   TicketRepo
}

func NewChatService(assistant *Assistant, store SessionStore, tickets TicketRepo) *ChatService {
	return &ChatService{assistant: assistant, store: store, tickets: tickets}
}

// HandleMessage resolves the session, runs the engine, persists the new
// conversation state and returns the reply plus any follow-up, UI action and
// ticket prefill the engine produced.
func (s *ChatService) HandleMessage(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	session, err := s.resolveSession(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := s.assistant.BuildAnswer(
		req.Message,
		recentUserMessages(session.Messages, recentWindow),
		req.Telemetry,
		exchanges(session.Messages),
		session.Conversation,
		req.DeviceStatus,
	)

	if resp.Flow != nil {
		session.Conversation = *resp.Flow
	}
	now := time.Now().Format(time.RFC3339Nano)
	session.Messages = append(session.Messages,
		model.Message{Role: model.RoleUser, Content: req.Message, Timestamp: now},
		model.Message{Role: model.RoleAssistant, Content: resp.Answer, Timestamp: now},
	)
	session.State = sessionStateFor(session.Conversation, resp)
	session.UpdatedAt = now

	if err := s.store.Save(ctx, session); err != nil {
		log.Printf("[ChatService] save session %s: %v", session.ID, err)
		return nil, err
	}

	return &model.ChatResponse{
		SessionID:       session.ID,
		Reply:           resp.Answer,
		FollowUp:        resp.FollowUp,
		FollowUpDelayMs: resp.FollowUpDelayMs,
		Intent:          session.Conversation.ActiveIntent,
		Session:         session.State,
		FlowStep:        session.Conversation.StepIndex,
		ActionLabel:     resp.ActionLabel,
		ActionTarget:    resp.ActionTarget,
		Ticket:          resp.TicketData,
	}, nil
}

// ClearSession drops the session outright, the explicit "clear" next to the
// store's inactivity TTL.
func (s *ChatService) ClearSession(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// SubmitTicket persists a ticket the desktop agent submits, usually from the
// form a completed flow prefilled.
func (s *ChatService) SubmitTicket(ctx context.Context, userID, sessionID string, data model.TicketData) (*model.Ticket, error) {
	if data.Description == "" {
		return nil, fmt.Errorf("%w: description is empty", ErrTicketInvalid)
	}
	now := time.Now().Format(time.RFC3339)
	ticket := &model.Ticket{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		UserID:      userID,
		Category:    data.Category,
		Subject:     data.Subject,
		Description: data.Description,
		UserEmail:   data.UserEmail,
		Urgency:     data.Urgency,
		Status:      model.TicketOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	log.Printf("[ChatService] ticket %s created for user %s (%s)", ticket.ID, userID, ticket.Category)
	return ticket, nil
}

func (s *ChatService) GetTicket(ctx context.Context, id string) (*model.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

func (s *ChatService) ListTickets(ctx context.Context, userID string) ([]*model.Ticket, error) {
	return s.tickets.ListByUser(ctx, userID)
}

func (s *ChatService) resolveSession(ctx context.Context, req model.ChatRequest) (*model.Session, error) {
	if req.SessionID != "" {
		session, err := s.store.Get(ctx, req.SessionID)
		if err != nil {
			return nil, err
		}
		if session != nil {
			return session, nil
		}
		// Expired or never existed: fall through and start fresh under a new ID.
	}
	now := time.Now().Format(time.RFC3339Nano)
	return &model.Session{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		State:     model.SessionNew,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func sessionStateFor(conv model.ConversationState, resp model.AiResponse) model.SessionState {
	switch {
	case resp.TicketData != nil:
		return model.SessionComplete
	case conv.StepIndex > 0:
		return model.SessionOnFlow
	default:
		return model.SessionActive
	}
}

func recentUserMessages(messages []model.Message, n int) []string {
	var out []string
	for _, m := range messages {
		if m.Role == model.RoleUser {
			out = append(out, m.Content)
		}
	}
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

func exchanges(messages []model.Message) []model.Exchange {
	var out []model.Exchange
	var pending string
	for _, m := range messages {
		switch m.Role {
		case model.RoleUser:
			pending = m.Content
		case model.RoleAssistant:
			out = append(out, model.Exchange{Question: pending, Answer: m.Content})
			pending = ""
		}
	}
	return out
}
