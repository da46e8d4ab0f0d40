package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/dto"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
	ticketsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/ticket"
	"github.com/autoassistgroup-dev/AutoAssist--portal/utils"

	"github.com/google/uuid"
)

const fallbackSubject = "Support Request"

type Service struct {
	repo Repository
	now  func() time.Time
}

func New(db *database.Database) *Service {
	return &Service{
		repo: ticketsvc.NewDynamoRepository(db),
		now:  time.Now,
	}
}

func NewWithRepository(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{
		repo: repo,
		now:  now,
	}
}

// ReconcileInbound maps an inbound payload to the ticket it belongs to,
// trying each resolution rule in order and stopping at the first hit. Only
// when every rule misses does it open a new ticket.
func (s *Service) ReconcileInbound(ctx context.Context, payload dto.InboundPayload) (Result, error) {
	msg := Normalize(payload, s.now().UTC())

	if msg.Subject == "" && msg.Body == "" && msg.Message == "" {
		return Result{}, newError(ErrorCodeValidation, "payload carries no usable content", nil)
	}

	// Rule 1: a code quoted in the body wins, but only when it names a real
	// ticket.
	if code := ExtractTicketCode(msg.Body); code != "" {
		ticket, err := s.repo.GetTicket(ctx, code)
		if err == nil {
			return s.recordOnExisting(ctx, ticket, msg)
		}
		if !errors.Is(err, ticketsvc.ErrNotFound) {
			return Result{}, newError(ErrorCodeInternal, "failed to resolve extracted ticket code", err)
		}
	}

	// Rule 2: the payload's own claimed ticket id.
	if msg.TicketCode != "" {
		ticket, err := s.repo.GetTicket(ctx, msg.TicketCode)
		if err == nil {
			return s.recordOnExisting(ctx, ticket, msg)
		}
		if !errors.Is(err, ticketsvc.ErrNotFound) {
			return Result{}, newError(ErrorCodeInternal, "failed to resolve claimed ticket id", err)
		}
	}

	// Rule 3: the sender's most recent ticket.
	if msg.FromEmail != "" {
		ticket, err := s.repo.LatestTicketByEmail(ctx, msg.FromEmail)
		if err == nil {
			return s.recordOnExisting(ctx, ticket, msg)
		}
		if !errors.Is(err, ticketsvc.ErrNotFound) {
			return Result{}, newError(ErrorCodeInternal, "failed to resolve sender email", err)
		}
	}

	return s.createTicket(ctx, msg)
}

// RecordReply is the strict variant behind the reply webhook: the payload
// must claim a ticket id, and an unknown id is a not found error rather than
// a new ticket.
func (s *Service) RecordReply(ctx context.Context, payload dto.InboundPayload) (Result, error) {
	msg := Normalize(payload, s.now().UTC())

	if msg.TicketCode == "" {
		return Result{}, newError(ErrorCodeValidation, "ticket_id is required", nil)
	}
	if msg.Message == "" {
		return Result{}, newError(ErrorCodeValidation, "message is required", nil)
	}

	ticket, err := s.repo.GetTicket(ctx, msg.TicketCode)
	if err != nil {
		if errors.Is(err, ticketsvc.ErrNotFound) {
			return Result{}, newError(ErrorCodeNotFound, "ticket not found", err)
		}
		return Result{}, newError(ErrorCodeInternal, "failed to load ticket", err)
	}

	return s.recordOnExisting(ctx, ticket, msg)
}

func (s *Service) recordOnExisting(ctx context.Context, ticket model.TicketItem, msg InboundMessage) (Result, error) {
	if msg.Message == "" {
		return Result{
			TicketCode: ticket.TicketCode,
			Created:    false,
			Message:    "Ticket already exists",
		}, nil
	}

	senderType := model.SenderTypeWebhook
	if msg.FromEmail != "" {
		senderType = model.SenderTypeCustomer
	}

	senderName := msg.FromName
	if senderName == "" {
		senderName = msg.FromEmail
	}
	if senderName == "" {
		senderName = "External System"
	}

	now := msg.ReceivedAt.Format(time.RFC3339)

	reply := model.ReplyItem{
		ReplyID:     uuid.NewString(),
		TicketCode:  ticket.TicketCode,
		Message:     msg.Message,
		SenderName:  senderName,
		SenderType:  senderType,
		Attachments: msg.Attachments,
		CreatedAt:   now,
	}

	// The reply row must land before the ticket row changes, so a reader
	// never sees the status flip without the reply that caused it.
	if err := s.repo.CreateReply(ctx, reply); err != nil {
		return Result{}, newError(ErrorCodeInternal, "failed to save reply", err)
	}

	var status *string
	if senderType == model.SenderTypeCustomer {
		customerReplied := string(model.TicketStatusCustomerReplied)
		status = &customerReplied
	}

	if _, err := s.repo.MarkCustomerReplied(ctx, ticket.TicketCode, status, now); err != nil {
		return Result{}, newError(ErrorCodeInternal, "failed to update ticket", err)
	}

	return Result{
		TicketCode: ticket.TicketCode,
		Created:    false,
		ReplyID:    reply.ReplyID,
		Message:    "Reply added to existing ticket",
	}, nil
}

func (s *Service) createTicket(ctx context.Context, msg InboundMessage) (Result, error) {
	threadID := msg.ThreadID
	if threadID == "" {
		threadID = uuid.NewString()
	}

	subject := msg.Subject
	if subject == "" {
		subject = fallbackSubject
	}

	body := msg.Body
	if body == "" {
		body = msg.Message
	}

	priority := model.TicketPriority(msg.Priority)
	if priority == "" {
		priority = model.PriorityMedium
	}

	now := msg.ReceivedAt.Format(time.RFC3339)

	ticket := model.TicketItem{
		TicketCode:     utils.GenerateTicketCode(),
		ThreadID:       threadID,
		Status:         model.TicketStatusNew,
		Priority:       priority,
		Classification: msg.Classification,
		Email:          msg.FromEmail,
		CustomerName:   msg.FromName,
		Subject:        subject,
		Body:           body,
		CreationMethod: model.CreationMethodWebhook,
		Attachments:    msg.Attachments,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.repo.CreateTicket(ctx, ticket)
	if err == nil {
		return Result{
			TicketCode: ticket.TicketCode,
			Created:    true,
			Message:    "Ticket created",
		}, nil
	}

	if errors.Is(err, ticketsvc.ErrDuplicateThread) {
		existing, ferr := s.repo.FindTicketByThread(ctx, threadID)
		if ferr != nil {
			return Result{}, newError(ErrorCodeInternal, "failed to resolve duplicate thread", ferr)
		}

		return Result{
			TicketCode: existing.TicketCode,
			Created:    false,
			Message:    "A ticket for this conversation already exists",
		}, nil
	}

	return Result{}, newError(ErrorCodeInternal, "failed to create ticket", err)
}
