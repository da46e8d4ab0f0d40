package dashboard

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
	ticketsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/ticket"
	"github.com/autoassistgroup-dev/AutoAssist--portal/utils"
)

const (
	overdueAfterDays = 3
	recentLimit      = 20
)

var bucketOrder = []string{
	utils.BucketToday,
	utils.BucketYesterday,
	utils.BucketThisWeek,
	utils.BucketThisMonth,
	utils.BucketOlder,
}

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

// Stats buckets the whole ticket table by priority, classification and
// status. Priorities and classifications outside the known sets are dropped;
// the open/waiting/resolved counters are exclusive, in that order.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	tickets, err := s.repo.ListTickets(ctx)
	if err != nil {
		return Stats{}, newError(ErrorCodeInternal, "failed to list tickets", err)
	}

	stats := Stats{
		ByPriority:       make(map[string]int, len(model.Priorities)),
		ByClassification: make(map[string]int, len(model.Classifications)),
		ByStatus:         make(map[string]int),
	}
	for _, priority := range model.Priorities {
		stats.ByPriority[string(priority)] = 0
	}
	for _, classification := range model.Classifications {
		stats.ByClassification[classification] = 0
	}

	for _, ticket := range tickets {
		if _, ok := stats.ByPriority[string(ticket.Priority)]; ok {
			stats.ByPriority[string(ticket.Priority)]++
		}
		if _, ok := stats.ByClassification[ticket.Classification]; ok {
			stats.ByClassification[ticket.Classification]++
		}
		stats.ByStatus[string(ticket.Status)]++

		switch {
		case ticket.Status.IsOpen():
			stats.Open++
		case ticket.Status.IsWaiting():
			stats.Waiting++
		case ticket.Status.IsResolved():
			stats.Resolved++
		}
	}

	stats.Total = len(tickets)
	return stats, nil
}

// Overview computes the claims dashboard. Age buckets only consider active
// tickets with a parseable creation time; a ticket opened yesterday evening
// is less than a day old but before today, so it lands in no bucket, which
// is how the dashboard has always counted.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	tickets, err := s.repo.ListTickets(ctx)
	if err != nil {
		return Overview{}, newError(ErrorCodeInternal, "failed to list tickets", err)
	}

	now := s.now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	overview := Overview{}
	team := make(map[string]*TechnicianLoad)

	for _, ticket := range tickets {
		status := string(ticket.Status)

		switch {
		case strings.Contains(status, "Approved") || strings.Contains(status, "Revisit"):
			overview.Approved++
		case strings.Contains(status, "Declined") || strings.Contains(status, "Not Covered"):
			overview.Declined++
		case ticket.Status.IsReferred():
			overview.Referred++
		}

		created := utils.SafeParseTime(ticket.CreatedAt)
		if !created.IsZero() && ticket.Status.IsActive() {
			daysOld := int(now.Sub(created.UTC()).Hours() / 24)
			switch {
			case daysOld > overdueAfterDays:
				overview.Overdue++
			case daysOld >= 1:
				overview.OpenRecent++
			case !created.UTC().Before(todayStart):
				overview.OpenedToday++
			}
		}

		if ticket.HasUnreadReply {
			overview.UnreadReplies++
		}

		if ticket.AssignedTechnician != "" {
			load, ok := team[ticket.AssignedTechnician]
			if !ok {
				load = &TechnicianLoad{Technician: ticket.AssignedTechnician}
				team[ticket.AssignedTechnician] = load
			}
			if ticket.Status.IsResolved() {
				load.Closed++
			} else {
				load.Open++
			}
		}
	}

	names := make([]string, 0, len(team))
	for name := range team {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		overview.Team = append(overview.Team, *team[name])
	}

	return overview, nil
}

// ReferredQueue lists the tickets waiting on the technical director, newest
// first.
func (s *Service) ReferredQueue(ctx context.Context) ([]model.TicketItem, error) {
	tickets, err := s.repo.ListTickets(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list tickets", err)
	}

	referred := make([]model.TicketItem, 0)
	for _, ticket := range tickets {
		if ticket.Status.IsReferred() {
			referred = append(referred, ticket)
		}
	}

	sortByNewest(referred)
	return referred, nil
}

// StatusSummary backs the public status page. Active and waiting overlap on
// purpose; resolved-today means exactly Resolved with an update stamp since
// midnight UTC.
func (s *Service) StatusSummary(ctx context.Context) (StatusSummary, error) {
	tickets, err := s.repo.ListTickets(ctx)
	if err != nil {
		return StatusSummary{}, newError(ErrorCodeInternal, "failed to list tickets", err)
	}

	now := s.now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	summary := StatusSummary{}
	for _, ticket := range tickets {
		if ticket.Status.IsActive() {
			summary.Active++
		}
		if ticket.Status.IsWaiting() {
			summary.Waiting++
		}
		if ticket.Status == model.TicketStatusResolved {
			updated := utils.SafeParseTime(ticket.UpdatedAt)
			if !updated.IsZero() && !updated.UTC().Before(todayStart) {
				summary.ResolvedToday++
			}
		}
	}

	return summary, nil
}

// RecentGroups returns the newest tickets grouped under list-view date
// labels. Empty buckets are dropped.
func (s *Service) RecentGroups(ctx context.Context) ([]TicketGroup, error) {
	tickets, err := s.repo.ListTickets(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list tickets", err)
	}

	sortByNewest(tickets)
	if len(tickets) > recentLimit {
		tickets = tickets[:recentLimit]
	}

	now := s.now().UTC()
	buckets := make(map[string][]model.TicketItem)
	for _, ticket := range tickets {
		label := utils.DateBucket(utils.SafeParseTime(ticket.CreatedAt), now)
		buckets[label] = append(buckets[label], ticket)
	}

	groups := make([]TicketGroup, 0, len(buckets))
	for _, label := range bucketOrder {
		if items, ok := buckets[label]; ok {
			groups = append(groups, TicketGroup{Label: label, Tickets: items})
		}
	}

	return groups, nil
}

func sortByNewest(tickets []model.TicketItem) {
	sort.Slice(tickets, func(i, j int) bool {
		return utils.SafeParseTime(tickets[i].CreatedAt).After(utils.SafeParseTime(tickets[j].CreatedAt))
	})
}
