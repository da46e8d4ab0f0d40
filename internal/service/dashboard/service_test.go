package dashboard

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
	"github.com/autoassistgroup-dev/AutoAssist--portal/utils"
)

type memoryRepository struct {
	mu      sync.Mutex
	tickets []model.TicketItem
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{}
}

func (m *memoryRepository) ListTickets(ctx context.Context) ([]model.TicketItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.TicketItem, len(m.tickets))
	copy(out, m.tickets)
	return out, nil
}

func (m *memoryRepository) add(ticket model.TicketItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets = append(m.tickets, ticket)
}

func fixedNow() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func makeTicket(code string, status model.TicketStatus, createdAt string) model.TicketItem {
	return model.TicketItem{
		TicketCode: code,
		Status:     status,
		Priority:   model.PriorityMedium,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func TestStatsBucketsAreExclusive(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	open := makeTicket("M00001", model.TicketStatusNew, "2024-01-01T08:00:00Z")
	open.Priority = model.PriorityUrgent
	open.Classification = "Warranty Claim"
	repo.add(open)

	waiting := makeTicket("M00002", model.TicketStatusWaitingParts, "2024-01-01T08:00:00Z")
	repo.add(waiting)

	resolved := makeTicket("M00003", model.TicketStatusClosed, "2024-01-01T08:00:00Z")
	resolved.Priority = "Critical"
	resolved.Classification = "Mystery"
	repo.add(resolved)

	replied := makeTicket("M00004", model.TicketStatusCustomerReplied, "2024-01-01T08:00:00Z")
	repo.add(replied)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Total != 4 {
		t.Fatalf("expected total 4, got %d", stats.Total)
	}
	if stats.Open != 1 || stats.Waiting != 1 || stats.Resolved != 1 {
		t.Fatalf("expected 1/1/1 open/waiting/resolved, got %d/%d/%d", stats.Open, stats.Waiting, stats.Resolved)
	}

	if stats.ByPriority["Urgent"] != 1 {
		t.Fatalf("expected 1 urgent ticket, got %d", stats.ByPriority["Urgent"])
	}
	if _, ok := stats.ByPriority["Critical"]; ok {
		t.Fatal("expected unknown priority to be dropped")
	}
	if count, ok := stats.ByPriority["Low"]; !ok || count != 0 {
		t.Fatalf("expected empty Low bucket to be present, got %d (present %v)", count, ok)
	}

	if stats.ByClassification["Warranty Claim"] != 1 {
		t.Fatalf("expected 1 warranty claim, got %d", stats.ByClassification["Warranty Claim"])
	}
	if _, ok := stats.ByClassification["Mystery"]; ok {
		t.Fatal("expected unknown classification to be dropped")
	}

	if stats.ByStatus[string(model.TicketStatusCustomerReplied)] != 1 {
		t.Fatalf("expected status counts to include Customer Replied, got %#v", stats.ByStatus)
	}
}

func TestOverviewAgeBuckets(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	repo.add(makeTicket("M00001", model.TicketStatusOpen, "2023-12-27T12:00:00Z"))
	repo.add(makeTicket("M00002", model.TicketStatusInProgress, "2023-12-30T12:00:00Z"))
	repo.add(makeTicket("M00003", model.TicketStatusNew, "2024-01-01T08:00:00Z"))

	// Opened yesterday evening: under a day old but before midnight, so it
	// belongs to no age bucket.
	repo.add(makeTicket("M00004", model.TicketStatusOpen, "2023-12-31T20:00:00Z"))

	// Resolved tickets never age.
	repo.add(makeTicket("M00005", model.TicketStatusClosed, "2023-12-01T12:00:00Z"))

	unread := makeTicket("M00006", model.TicketStatusCustomerReplied, "2024-01-01T09:00:00Z")
	unread.HasUnreadReply = true
	repo.add(unread)

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if overview.Overdue != 1 {
		t.Fatalf("expected 1 overdue ticket, got %d", overview.Overdue)
	}
	if overview.OpenRecent != 1 {
		t.Fatalf("expected 1 ticket open 1-3 days, got %d", overview.OpenRecent)
	}
	if overview.OpenedToday != 2 {
		t.Fatalf("expected 2 tickets opened today, got %d", overview.OpenedToday)
	}
	if overview.UnreadReplies != 1 {
		t.Fatalf("expected 1 unread ticket, got %d", overview.UnreadReplies)
	}
}

func TestOverviewClaimsAndTeam(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	statuses := []model.TicketStatus{
		model.TicketStatusApproved,
		model.TicketStatusRevisit,
		model.TicketStatusDeclined,
		model.TicketStatusNotCovered,
		model.TicketStatusReferred,
	}
	for i, status := range statuses {
		repo.add(makeTicket(fmt.Sprintf("M0000%d", i), status, "2024-01-01T08:00:00Z"))
	}

	assigned := makeTicket("M00010", model.TicketStatusInProgress, "2024-01-01T08:00:00Z")
	assigned.AssignedTechnician = "Sam"
	repo.add(assigned)

	assignedTwo := makeTicket("M00011", model.TicketStatusOpen, "2024-01-01T08:00:00Z")
	assignedTwo.AssignedTechnician = "Sam"
	repo.add(assignedTwo)

	closed := makeTicket("M00012", model.TicketStatusClosed, "2024-01-01T08:00:00Z")
	closed.AssignedTechnician = "Alex"
	repo.add(closed)

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if overview.Approved != 2 {
		t.Fatalf("expected 2 approved, got %d", overview.Approved)
	}
	if overview.Declined != 2 {
		t.Fatalf("expected 2 declined, got %d", overview.Declined)
	}
	if overview.Referred != 1 {
		t.Fatalf("expected 1 referred, got %d", overview.Referred)
	}

	if len(overview.Team) != 2 {
		t.Fatalf("expected 2 technicians, got %#v", overview.Team)
	}
	if overview.Team[0].Technician != "Alex" || overview.Team[0].Closed != 1 || overview.Team[0].Open != 0 {
		t.Fatalf("unexpected first technician: %#v", overview.Team[0])
	}
	if overview.Team[1].Technician != "Sam" || overview.Team[1].Open != 2 || overview.Team[1].Closed != 0 {
		t.Fatalf("unexpected second technician: %#v", overview.Team[1])
	}
}

func TestReferredQueueNewestFirst(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	repo.add(makeTicket("M0OLD1", model.TicketStatusReferred, "2023-12-20T12:00:00Z"))
	repo.add(makeTicket("M00001", model.TicketStatusOpen, "2024-01-01T08:00:00Z"))
	repo.add(makeTicket("M0NEW1", model.TicketStatusReferred, "2023-12-31T12:00:00Z"))

	queue, err := svc.ReferredQueue(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(queue) != 2 {
		t.Fatalf("expected 2 referred tickets, got %d", len(queue))
	}
	if queue[0].TicketCode != "M0NEW1" || queue[1].TicketCode != "M0OLD1" {
		t.Fatalf("expected newest first, got %s then %s", queue[0].TicketCode, queue[1].TicketCode)
	}
}

func TestStatusSummaryCountsResolvedToday(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	repo.add(makeTicket("M00001", model.TicketStatusWaitingCustomer, "2024-01-01T08:00:00Z"))
	repo.add(makeTicket("M00002", model.TicketStatusInProgress, "2024-01-01T08:00:00Z"))

	resolvedToday := makeTicket("M00003", model.TicketStatusResolved, "2023-12-28T08:00:00Z")
	resolvedToday.UpdatedAt = "2024-01-01T09:00:00Z"
	repo.add(resolvedToday)

	resolvedYesterday := makeTicket("M00004", model.TicketStatusResolved, "2023-12-28T08:00:00Z")
	resolvedYesterday.UpdatedAt = "2023-12-31T23:59:00Z"
	repo.add(resolvedYesterday)

	// Closed is resolved for the active count but never counts as resolved
	// today.
	closedToday := makeTicket("M00005", model.TicketStatusClosed, "2023-12-28T08:00:00Z")
	closedToday.UpdatedAt = "2024-01-01T09:00:00Z"
	repo.add(closedToday)

	summary, err := svc.StatusSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Active != 2 {
		t.Fatalf("expected 2 active tickets, got %d", summary.Active)
	}
	if summary.Waiting != 1 {
		t.Fatalf("expected 1 waiting ticket, got %d", summary.Waiting)
	}
	if summary.ResolvedToday != 1 {
		t.Fatalf("expected 1 resolved today, got %d", summary.ResolvedToday)
	}
}

func TestRecentGroupsLabelsInOrder(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	repo.add(makeTicket("M0TDY1", model.TicketStatusNew, "2024-01-01T08:00:00Z"))
	repo.add(makeTicket("M0TDY2", model.TicketStatusNew, "2024-01-01T10:00:00Z"))
	repo.add(makeTicket("M0YDY1", model.TicketStatusNew, "2023-12-31T10:00:00Z"))
	repo.add(makeTicket("M0OLD1", model.TicketStatusNew, "2023-12-10T10:00:00Z"))

	groups, err := svc.RecentGroups(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %#v", groups)
	}
	if groups[0].Label != utils.BucketToday || len(groups[0].Tickets) != 2 {
		t.Fatalf("unexpected first group: %s with %d tickets", groups[0].Label, len(groups[0].Tickets))
	}
	if groups[0].Tickets[0].TicketCode != "M0TDY2" {
		t.Fatalf("expected newest ticket first, got %s", groups[0].Tickets[0].TicketCode)
	}
	if groups[1].Label != utils.BucketYesterday {
		t.Fatalf("expected yesterday group second, got %s", groups[1].Label)
	}
	if groups[2].Label != utils.BucketOlder {
		t.Fatalf("expected older group last, got %s", groups[2].Label)
	}
}

func TestRecentGroupsCapsAtTwenty(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	for i := 0; i < 25; i++ {
		created := time.Date(2024, 1, 1, 0, i+1, 0, 0, time.UTC).Format(time.RFC3339)
		repo.add(makeTicket(fmt.Sprintf("M%05d", i), model.TicketStatusNew, created))
	}

	groups, err := svc.RecentGroups(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total := 0
	for _, group := range groups {
		total += len(group.Tickets)
	}
	if total != recentLimit {
		t.Fatalf("expected %d grouped tickets, got %d", recentLimit, total)
	}
}
