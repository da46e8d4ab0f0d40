package attachment

import (
	"context"
	"encoding/base64"
	"sync"
	"testing"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
	ticketsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/ticket"
)

type memoryRepository struct {
	mu      sync.Mutex
	tickets map[string]model.TicketItem
	replies map[string]model.ReplyItem
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

func (m *memoryRepository) GetReply(ctx context.Context, replyID string) (model.ReplyItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reply, ok := m.replies[replyID]
	if !ok {
		return model.ReplyItem{}, ticketsvc.ErrNotFound
	}
	return reply, nil
}

func encoded(content string) string {
	return base64.StdEncoding.EncodeToString([]byte(content))
}

func TestTicketAttachmentDecodes(t *testing.T) {
	repo := newMemoryRepository()
	repo.tickets["M12345"] = model.TicketItem{
		TicketCode: "M12345",
		Attachments: []model.AttachmentItem{
			{Filename: "dashboard.jpg", Data: encoded("jpeg bytes")},
			{Filename: "codes.txt", ContentType: "text/plain; charset=utf-8", Data: encoded("P0420")},
		},
	}
	svc := NewWithRepository(repo)

	file, err := svc.TicketAttachment(context.Background(), "m12345", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if file.Filename != "dashboard.jpg" {
		t.Fatalf("unexpected filename: %s", file.Filename)
	}
	if file.ContentType != "image/jpeg" {
		t.Fatalf("expected inferred content type, got %s", file.ContentType)
	}
	if string(file.Data) != "jpeg bytes" {
		t.Fatalf("unexpected data: %q", file.Data)
	}

	second, err := svc.TicketAttachment(context.Background(), "M12345", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ContentType != "text/plain; charset=utf-8" {
		t.Fatalf("expected stored content type to win, got %s", second.ContentType)
	}
}

func TestTicketAttachmentIndexOutOfRange(t *testing.T) {
	repo := newMemoryRepository()
	repo.tickets["M12345"] = model.TicketItem{
		TicketCode:  "M12345",
		Attachments: []model.AttachmentItem{{Filename: "a.pdf", Data: encoded("x")}},
	}
	svc := NewWithRepository(repo)

	for _, index := range []int{-1, 1, 5} {
		_, err := svc.TicketAttachment(context.Background(), "M12345", index)
		if err == nil {
			t.Fatalf("expected error for index %d", index)
		}
		svcErr, ok := err.(*Error)
		if !ok {
			t.Fatalf("expected service error, got %T", err)
		}
		if svcErr.Code != ErrorCodeNotFound {
			t.Fatalf("expected not found for index %d, got %s", index, svcErr.Code)
		}
	}
}

func TestTicketAttachmentUnknownTicket(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo)

	_, err := svc.TicketAttachment(context.Background(), "M99999", 0)
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

func TestReplyAttachmentDecodes(t *testing.T) {
	repo := newMemoryRepository()
	repo.replies["r-1"] = model.ReplyItem{
		ReplyID:     "r-1",
		TicketCode:  "M12345",
		Attachments: []model.AttachmentItem{{Filename: "invoice.pdf", Data: encoded("pdf bytes")}},
	}
	svc := NewWithRepository(repo)

	file, err := svc.ReplyAttachment(context.Background(), "r-1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if file.Filename != "invoice.pdf" {
		t.Fatalf("unexpected filename: %s", file.Filename)
	}
	if file.ContentType != "application/pdf" {
		t.Fatalf("unexpected content type: %s", file.ContentType)
	}
	if string(file.Data) != "pdf bytes" {
		t.Fatalf("unexpected data: %q", file.Data)
	}
}

func TestAttachmentWithoutDataIsNotFound(t *testing.T) {
	repo := newMemoryRepository()
	repo.tickets["M12345"] = model.TicketItem{
		TicketCode:  "M12345",
		Attachments: []model.AttachmentItem{{Filename: "empty.pdf"}},
	}
	svc := NewWithRepository(repo)

	_, err := svc.TicketAttachment(context.Background(), "M12345", 0)
	if err == nil {
		t.Fatal("expected error for attachment without data")
	}

	svcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected service error, got %T", err)
	}
	if svcErr.Code != ErrorCodeNotFound {
		t.Fatalf("expected not found, got %s", svcErr.Code)
	}
}

func TestAttachmentBadBase64IsNotFound(t *testing.T) {
	repo := newMemoryRepository()
	repo.tickets["M12345"] = model.TicketItem{
		TicketCode:  "M12345",
		Attachments: []model.AttachmentItem{{Filename: "broken.pdf", Data: "%%% not base64 %%%"}},
	}
	svc := NewWithRepository(repo)

	_, err := svc.TicketAttachment(context.Background(), "M12345", 0)
	if err == nil {
		t.Fatal("expected error for undecodable attachment")
	}

	svcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected service error, got %T", err)
	}
	if svcErr.Code != ErrorCodeNotFound {
		t.Fatalf("expected not found, got %s", svcErr.Code)
	}
}

func TestAttachmentMissingFilenameFallsBack(t *testing.T) {
	repo := newMemoryRepository()
	repo.tickets["M12345"] = model.TicketItem{
		TicketCode:  "M12345",
		Attachments: []model.AttachmentItem{{Data: encoded("x")}},
	}
	svc := NewWithRepository(repo)

	file, err := svc.TicketAttachment(context.Background(), "M12345", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if file.Filename != fallbackFilename {
		t.Fatalf("expected fallback filename, got %s", file.Filename)
	}
	if file.ContentType != "application/octet-stream" {
		t.Fatalf("expected octet-stream fallback, got %s", file.ContentType)
	}
}
