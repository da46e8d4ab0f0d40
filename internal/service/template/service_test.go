package template

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
	ticketsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/ticket"
)

type memoryRepository struct {
	mu      sync.Mutex
	tickets map[string]model.TicketItem
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{tickets: make(map[string]model.TicketItem)}
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

func (m *memoryRepository) add(ticket model.TicketItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets[ticket.TicketCode] = ticket
}

func TestEmailTemplateSubjectAppendsReference(t *testing.T) {
	repo := newMemoryRepository()
	repo.add(model.TicketItem{
		TicketCode:   "M12345",
		Subject:      "Gearbox noise",
		CustomerName: "Anna Smith",
	})
	svc := NewWithRepository(repo)

	result, err := svc.EmailTemplate(context.Background(), TypeCustomerService, "m12345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Subject != "Re: Gearbox noise [TID: M12345]" {
		t.Fatalf("unexpected subject: %q", result.Subject)
	}
	if !strings.Contains(result.Body, "Dear Anna,") {
		t.Fatalf("expected greeting by first name, got %q", result.Body[:40])
	}
	if result.ContentSource != ContentSourceTemplate {
		t.Fatalf("expected template content source, got %s", result.ContentSource)
	}
}

func TestEmailTemplateKeepsExistingRePrefix(t *testing.T) {
	repo := newMemoryRepository()
	repo.add(model.TicketItem{
		TicketCode: "M12345",
		Subject:    "RE: Gearbox noise",
	})
	svc := NewWithRepository(repo)

	result, err := svc.EmailTemplate(context.Background(), TypeDefault, "M12345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Subject != "RE: Gearbox noise [TID: M12345]" {
		t.Fatalf("expected no doubled Re:, got %q", result.Subject)
	}
}

func TestWarrantyClaimOverridesSubject(t *testing.T) {
	repo := newMemoryRepository()
	repo.add(model.TicketItem{
		TicketCode:   "M12345",
		Subject:      "Engine warning light",
		CustomerName: "Ben Jones",
	})
	svc := NewWithRepository(repo)

	result, err := svc.EmailTemplate(context.Background(), TypeWarrantyClaim, "M12345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Subject != "Re: Warranty Claim Update - Ticket #M12345" {
		t.Fatalf("unexpected subject: %q", result.Subject)
	}
	if !strings.Contains(result.Body, "warranty claim") {
		t.Fatal("expected warranty claim body")
	}
}

func TestDraftServedWhenPresent(t *testing.T) {
	repo := newMemoryRepository()
	repo.add(model.TicketItem{
		TicketCode: "M12345",
		Subject:    "Gearbox noise",
		AIDraft:    "Hello, the gearbox part is on order.",
	})
	svc := NewWithRepository(repo)

	result, err := svc.EmailTemplate(context.Background(), TypeDraft, "M12345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Body != "Hello, the gearbox part is on order." {
		t.Fatalf("expected stored draft body, got %q", result.Body)
	}
	if result.ContentSource != ContentSourceAIDraft {
		t.Fatalf("expected ai_draft content source, got %s", result.ContentSource)
	}
	if !result.HasDraft {
		t.Fatal("expected has_draft to be set")
	}
}

func TestDraftRequestWithoutDraftFallsBack(t *testing.T) {
	repo := newMemoryRepository()
	repo.add(model.TicketItem{
		TicketCode: "M12345",
		Subject:    "Gearbox noise",
	})
	svc := NewWithRepository(repo)

	result, err := svc.EmailTemplate(context.Background(), TypeDraft, "M12345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ContentSource != ContentSourceTemplate {
		t.Fatalf("expected template content source, got %s", result.ContentSource)
	}
	if result.HasDraft {
		t.Fatal("expected has_draft to be false")
	}
	if !strings.Contains(result.Body, "#M12345") {
		t.Fatal("expected default body to reference the ticket")
	}
}

func TestEmailTemplateUnknownTicket(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo)

	_, err := svc.EmailTemplate(context.Background(), TypeDefault, "M99999")
	if err == nil {
		t.Fatal("expected error for unknown ticket")
	}

	svcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected service error, got %T", err)
	}
	if svcErr.Code != ErrorCodeNotFound {
		t.Fatalf("expected not found, got %s", svcErr.Code)
	}
}

func TestEmailTemplateMissingCustomerName(t *testing.T) {
	repo := newMemoryRepository()
	repo.add(model.TicketItem{
		TicketCode: "M12345",
		Subject:    "Gearbox noise",
	})
	svc := NewWithRepository(repo)

	result, err := svc.EmailTemplate(context.Background(), TypeTechnicalSupport, "M12345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result.Body, "Dear Customer,") {
		t.Fatal("expected fallback greeting")
	}
}

func TestAIResponseReferencesTicket(t *testing.T) {
	response := AIResponse("M12345")
	if !strings.Contains(response, "#M12345") {
		t.Fatalf("expected response to reference the ticket, got %q", response)
	}
}
