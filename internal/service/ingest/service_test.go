package ingest

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/dto"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
	ticketsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/ticket"
)

// memoryRepository records the order of write operations so ordering
// guarantees can be asserted.
type memoryRepository struct {
	mu      sync.Mutex
	tickets map[string]model.TicketItem
	replies map[string]model.ReplyItem
	ops     []string
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		tickets: make(map[string]model.TicketItem),
		replies: make(map[string]model.ReplyItem),
	}
}

func (m *memoryRepository) GetTicket(ctx context.Context, ticketCode string) (model.TicketItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ticket, ok := m.tickets[ticketCode]
	if !ok {
		return model.TicketItem{}, ticketsvc.ErrNotFound
	}
	return ticket, nil
}

func (m *memoryRepository) FindTicketByThread(ctx context.Context, threadID string) (model.TicketItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ticket := range m.tickets {
		if ticket.ThreadID == threadID {
			return ticket, nil
		}
	}
	return model.TicketItem{}, ticketsvc.ErrNotFound
}

func (m *memoryRepository) LatestTicketByEmail(ctx context.Context, email string) (model.TicketItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var latest model.TicketItem
	found := false
	for _, ticket := range m.tickets {
		if ticket.Email != email {
			continue
		}
		if !found || ticket.CreatedAt > latest.CreatedAt {
			latest = ticket
			found = true
		}
	}

	if !found {
		return model.TicketItem{}, ticketsvc.ErrNotFound
	}
	return latest, nil
}

func (m *memoryRepository) CreateTicket(ctx context.Context, ticket model.TicketItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ticket.ThreadID != "" {
		for _, existing := range m.tickets {
			if existing.ThreadID == ticket.ThreadID {
				return ticketsvc.ErrDuplicateThread
			}
		}
	}

	m.tickets[ticket.TicketCode] = ticket
	m.ops = append(m.ops, "insert_ticket")
	return nil
}

func (m *memoryRepository) CreateReply(ctx context.Context, reply model.ReplyItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.replies[reply.ReplyID] = reply
	m.ops = append(m.ops, "insert_reply")
	return nil
}

func (m *memoryRepository) MarkCustomerReplied(ctx context.Context, ticketCode string, status *string, lastReplyAt string) (model.TicketItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ticket, ok := m.tickets[ticketCode]
	if !ok {
		return model.TicketItem{}, ticketsvc.ErrNotFound
	}

	ticket.HasUnreadReply = true
	ticket.LastReplyAt = lastReplyAt
	ticket.UpdatedAt = lastReplyAt
	if status != nil {
		ticket.Status = model.TicketStatus(*status)
	}
	m.tickets[ticketCode] = ticket
	m.ops = append(m.ops, "update_ticket")
	return ticket, nil
}

func (m *memoryRepository) repliesFor(ticketCode string) []model.ReplyItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	replies := make([]model.ReplyItem, 0)
	for _, reply := range m.replies {
		if reply.TicketCode == ticketCode {
			replies = append(replies, reply)
		}
	}
	return replies
}

func (m *memoryRepository) opLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.ops...)
}

func fixedNow() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func seedTicket(t *testing.T, repo *memoryRepository, ticket model.TicketItem) {
	t.Helper()

	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.tickets[ticket.TicketCode] = ticket
}

func TestExtractedCodeBeatsEmailFallback(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	seedTicket(t, repo, model.TicketItem{
		TicketCode: "M3F9A2",
		Status:     model.TicketStatusOpen,
		Email:      "other@example.com",
		CreatedAt:  "2023-12-01T09:00:00Z",
	})
	seedTicket(t, repo, model.TicketItem{
		TicketCode: "M7B1C4",
		Status:     model.TicketStatusOpen,
		Email:      "a@b.com",
		CreatedAt:  "2023-12-20T09:00:00Z",
	})

	result, err := svc.ReconcileInbound(context.Background(), dto.InboundPayload{
		TicketID: "",
		Body:     "regarding ticket #M3F9A2",
		From:     "a@b.com",
		Message:  "still broken",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TicketCode != "M3F9A2" || result.Created {
		t.Fatalf("expected (M3F9A2, created=false), got (%s, %v)", result.TicketCode, result.Created)
	}

	replies := repo.repliesFor("M3F9A2")
	if len(replies) != 1 {
		t.Fatalf("expected 1 reply on M3F9A2, got %d", len(replies))
	}
	if replies[0].Message != "still broken" || replies[0].SenderType != model.SenderTypeCustomer {
		t.Fatalf("unexpected reply %+v", replies[0])
	}

	ticket, err := repo.GetTicket(context.Background(), "M3F9A2")
	if err != nil {
		t.Fatalf("get ticket: %v", err)
	}
	if ticket.Status != model.TicketStatusCustomerReplied {
		t.Fatalf("expected customer replied status, got %s", ticket.Status)
	}
	if !ticket.HasUnreadReply || ticket.LastReplyAt == "" {
		t.Fatalf("expected unread reply stamp, got %+v", ticket)
	}

	if len(repo.repliesFor("M7B1C4")) != 0 {
		t.Fatal("expected the email-matched ticket untouched")
	}
}

func TestExtractedCodeMustNameRealTicket(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	seedTicket(t, repo, model.TicketItem{
		TicketCode: "M1234",
		Status:     model.TicketStatusOpen,
		CreatedAt:  "2023-12-01T09:00:00Z",
	})

	result, err := svc.ReconcileInbound(context.Background(), dto.InboundPayload{
		TicketID: "M1234",
		Body:     "see ticket #ZZ9999 for history",
		Message:  "an update",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TicketCode != "M1234" || result.Created {
		t.Fatalf("expected claimed id fallback to M1234, got (%s, %v)", result.TicketCode, result.Created)
	}
}

func TestClaimedIDAcceptsAlternateKey(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	seedTicket(t, repo, model.TicketItem{
		TicketCode: "M1234",
		Status:     model.TicketStatusOpen,
		CreatedAt:  "2023-12-01T09:00:00Z",
	})

	result, err := svc.ReconcileInbound(context.Background(), dto.InboundPayload{
		TicketIDAlt: "m1234",
		Message:     "reply via camelCase key",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TicketCode != "M1234" || result.Created {
		t.Fatalf("expected resolution by ticketId key, got (%s, %v)", result.TicketCode, result.Created)
	}
}

func TestEmailFallbackPicksNewestTicket(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	seedTicket(t, repo, model.TicketItem{
		TicketCode: "M0OLD1",
		Status:     model.TicketStatusClosed,
		Email:      "a@b.com",
		CreatedAt:  "2023-11-01T09:00:00Z",
	})
	seedTicket(t, repo, model.TicketItem{
		TicketCode: "M0NEW1",
		Status:     model.TicketStatusOpen,
		Email:      "a@b.com",
		CreatedAt:  "2023-12-20T09:00:00Z",
	})

	result, err := svc.ReconcileInbound(context.Background(), dto.InboundPayload{
		From:    "A@B.com",
		Message: "following up on my request",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TicketCode != "M0NEW1" || result.Created {
		t.Fatalf("expected newest ticket for sender, got (%s, %v)", result.TicketCode, result.Created)
	}
}

func TestNoMatchCreatesTicket(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	result, err := svc.ReconcileInbound(context.Background(), dto.InboundPayload{
		Subject: "Strange noise from the rear axle",
		Body:    "It started yesterday on the motorway.",
		From:    "new.customer@example.com",
		Name:    "Sam Driver",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Created {
		t.Fatal("expected a new ticket")
	}

	if !strings.HasPrefix(result.TicketCode, "M") || len(result.TicketCode) != 6 {
		t.Fatalf("unexpected generated code %q", result.TicketCode)
	}

	ticket, err := repo.GetTicket(context.Background(), result.TicketCode)
	if err != nil {
		t.Fatalf("get created ticket: %v", err)
	}

	if ticket.ThreadID == "" {
		t.Fatal("expected a generated thread id")
	}
	if ticket.CreationMethod != model.CreationMethodWebhook {
		t.Fatalf("expected webhook creation method, got %s", ticket.CreationMethod)
	}
	if ticket.Status != model.TicketStatusNew {
		t.Fatalf("expected status New, got %s", ticket.Status)
	}
	if ticket.Email != "new.customer@example.com" {
		t.Fatalf("expected sender email on ticket, got %q", ticket.Email)
	}
}

func TestDuplicateThreadConvertedToExistingCode(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	seedTicket(t, repo, model.TicketItem{
		TicketCode: "M0001A",
		ThreadID:   "thread-42",
		Status:     model.TicketStatusOpen,
		Email:      "original@example.com",
		CreatedAt:  "2023-12-01T09:00:00Z",
	})

	result, err := svc.ReconcileInbound(context.Background(), dto.InboundPayload{
		ThreadID: "thread-42",
		Subject:  "Re: my earlier email",
	})
	if err != nil {
		t.Fatalf("expected the conflict converted, got error: %v", err)
	}

	if result.TicketCode != "M0001A" || result.Created {
		t.Fatalf("expected existing code with created=false, got (%s, %v)", result.TicketCode, result.Created)
	}

	if !strings.Contains(strings.ToLower(result.Message), "already exists") {
		t.Fatalf("expected friendly message, got %q", result.Message)
	}

	repo.mu.Lock()
	count := len(repo.tickets)
	repo.mu.Unlock()
	if count != 1 {
		t.Fatalf("expected a single ticket for the thread, got %d", count)
	}
}

func TestReplyInsertLandsBeforeTicketUpdate(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	seedTicket(t, repo, model.TicketItem{
		TicketCode: "M1234",
		Status:     model.TicketStatusOpen,
		CreatedAt:  "2023-12-01T09:00:00Z",
	})

	_, err := svc.ReconcileInbound(context.Background(), dto.InboundPayload{
		TicketID:      "M1234",
		Message:       "customer follow-up",
		CustomerEmail: "a@b.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ops := repo.opLog()
	replyIdx, updateIdx := -1, -1
	for i, op := range ops {
		switch op {
		case "insert_reply":
			replyIdx = i
		case "update_ticket":
			updateIdx = i
		}
	}

	if replyIdx == -1 || updateIdx == -1 {
		t.Fatalf("expected both writes, got %v", ops)
	}
	if replyIdx > updateIdx {
		t.Fatalf("expected the reply insert before the ticket update, got %v", ops)
	}
}

func TestRecordReplyValidation(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	_, err := svc.RecordReply(context.Background(), dto.InboundPayload{Message: "no id"})
	svcErr, ok := err.(*Error)
	if !ok || svcErr.Code != ErrorCodeValidation {
		t.Fatalf("expected validation error for missing ticket id, got %v", err)
	}

	_, err = svc.RecordReply(context.Background(), dto.InboundPayload{TicketID: "M1234"})
	svcErr, ok = err.(*Error)
	if !ok || svcErr.Code != ErrorCodeValidation {
		t.Fatalf("expected validation error for missing message, got %v", err)
	}
}

func TestRecordReplyUnknownTicket(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	_, err := svc.RecordReply(context.Background(), dto.InboundPayload{
		TicketID: "M9999",
		Message:  "hello",
	})

	svcErr, ok := err.(*Error)
	if !ok || svcErr.Code != ErrorCodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRecordReplyWebhookSenderDefaults(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	seedTicket(t, repo, model.TicketItem{
		TicketCode: "M1234",
		Status:     model.TicketStatusInProgress,
		CreatedAt:  "2023-12-01T09:00:00Z",
	})

	result, err := svc.RecordReply(context.Background(), dto.InboundPayload{
		TicketID: "M1234",
		Message:  "automated delivery report",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ReplyID == "" {
		t.Fatal("expected a reply id")
	}

	replies := repo.repliesFor("M1234")
	if len(replies) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(replies))
	}
	if replies[0].SenderType != model.SenderTypeWebhook {
		t.Fatalf("expected webhook sender type, got %s", replies[0].SenderType)
	}
	if replies[0].SenderName != "External System" {
		t.Fatalf("expected default sender name, got %q", replies[0].SenderName)
	}

	ticket, err := repo.GetTicket(context.Background(), "M1234")
	if err != nil {
		t.Fatalf("get ticket: %v", err)
	}
	if ticket.Status != model.TicketStatusInProgress {
		t.Fatalf("expected status untouched for system reply, got %s", ticket.Status)
	}
	if !ticket.HasUnreadReply {
		t.Fatal("expected unread flag set")
	}
}

func TestReconcileRejectsEmptyPayload(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	_, err := svc.ReconcileInbound(context.Background(), dto.InboundPayload{From: "a@b.com"})
	svcErr, ok := err.(*Error)
	if !ok || svcErr.Code != ErrorCodeValidation {
		t.Fatalf("expected validation error for empty payload, got %v", err)
	}
}
