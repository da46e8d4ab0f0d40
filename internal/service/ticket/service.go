package ticket

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
	"github.com/autoassistgroup-dev/AutoAssist--portal/utils"

	"github.com/google/uuid"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// vehicleInfoFields is the closed set of warranty-worksheet keys a client may
// write; anything else in the payload is dropped.
var vehicleInfoFields = []string{
	"vehicle_registration",
	"service_date",
	"claim_date",
	"type_of_claim",
	"technician",
	"vhc_link",
	"days_between_service_claim",
	"advisories_followed",
	"within_warranty",
	"new_fault_codes",
	"dpf_light_on",
	"eml_light_on",
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func New(db *database.Database) *Service {
	return &Service{
		repo: NewDynamoRepository(db),
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

func (s *Service) Create(ctx context.Context, params CreateParams) (model.TicketItem, error) {
	subject := strings.TrimSpace(params.Subject)
	body := strings.TrimSpace(params.Body)

	if subject == "" && body == "" {
		return model.TicketItem{}, newError(ErrorCodeValidation, "subject or body is required", nil)
	}

	priority := model.TicketPriority(strings.TrimSpace(params.Priority))
	if priority == "" {
		priority = model.PriorityMedium
	}

	method := params.CreationMethod
	if method == "" {
		method = model.CreationMethodAPI
	}

	now := s.now().UTC().Format(time.RFC3339)

	ticket := model.TicketItem{
		TicketCode:     utils.GenerateTicketCode(),
		ThreadID:       strings.TrimSpace(params.ThreadID),
		Status:         model.TicketStatusNew,
		Priority:       priority,
		Classification: strings.TrimSpace(params.Classification),
		Email:          normalizeEmail(params.Email),
		CustomerName:   strings.TrimSpace(params.CustomerName),
		CustomerNumber: strings.TrimSpace(params.CustomerNumber),
		Subject:        subject,
		Body:           body,
		AIDraft:        params.AIDraft,
		CreationMethod: method,
		Attachments:    params.Attachments,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.CreateTicket(ctx, ticket); err != nil {
		if errors.Is(err, ErrDuplicateThread) {
			return model.TicketItem{}, newError(ErrorCodeConflict, "a ticket for this thread already exists", err)
		}
		return model.TicketItem{}, newError(ErrorCodeInternal, "failed to create ticket", err)
	}

	return ticket, nil
}

func (s *Service) Get(ctx context.Context, ticketCode string) (model.TicketItem, error) {
	ticketCode = strings.TrimSpace(ticketCode)
	if ticketCode == "" {
		return model.TicketItem{}, newError(ErrorCodeValidation, "ticket code is required", nil)
	}

	ticket, err := s.repo.GetTicket(ctx, ticketCode)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.TicketItem{}, newError(ErrorCodeNotFound, "ticket not found", err)
		}
		return model.TicketItem{}, newError(ErrorCodeInternal, "failed to load ticket", err)
	}

	return ticket, nil
}

func (s *Service) List(ctx context.Context, params ListParams) (ListResult, error) {
	tickets, err := s.repo.ListTickets(ctx)
	if err != nil {
		return ListResult{}, newError(ErrorCodeInternal, "failed to list tickets", err)
	}

	filtered := make([]model.TicketItem, 0, len(tickets))
	for _, ticket := range tickets {
		if params.Status != "" && string(ticket.Status) != params.Status {
			continue
		}
		if params.Priority != "" && string(ticket.Priority) != params.Priority {
			continue
		}
		if params.Search != "" && !matchesQuery(ticket, params.Search) {
			continue
		}
		filtered = append(filtered, ticket)
	}

	sortByNewest(filtered)

	page := params.Page
	if page < 1 {
		page = 1
	}

	perPage := params.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	total := len(filtered)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return ListResult{
		Tickets:    filtered[start:end],
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) Search(ctx context.Context, params SearchParams) ([]model.TicketItem, error) {
	tickets, err := s.repo.ListTickets(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to search tickets", err)
	}

	matches := make([]model.TicketItem, 0, len(tickets))
	for _, ticket := range tickets {
		if params.Status != "" && string(ticket.Status) != params.Status {
			continue
		}
		if params.Priority != "" && string(ticket.Priority) != params.Priority {
			continue
		}
		if params.Classification != "" && ticket.Classification != params.Classification {
			continue
		}
		if params.Query != "" && !matchesQuery(ticket, params.Query) {
			continue
		}
		matches = append(matches, ticket)
	}

	sortByNewest(matches)

	return matches, nil
}

func (s *Service) UpdateStatus(ctx context.Context, ticketCode, status string) (model.TicketItem, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return model.TicketItem{}, newError(ErrorCodeValidation, "status is required", nil)
	}

	ticket, err := s.Get(ctx, ticketCode)
	if err != nil {
		return model.TicketItem{}, err
	}

	now := s.now().UTC().Format(time.RFC3339)

	updated, err := s.repo.UpdateTicketStatus(ctx, ticket.TicketCode, status, now)
	if err != nil {
		return model.TicketItem{}, newError(ErrorCodeInternal, "failed to update ticket status", err)
	}

	return updated, nil
}

func (s *Service) Close(ctx context.Context, ticketCode, closedBy string) (model.TicketItem, error) {
	ticket, err := s.Get(ctx, ticketCode)
	if err != nil {
		return model.TicketItem{}, err
	}

	now := s.now().UTC().Format(time.RFC3339)

	updated, err := s.repo.CloseTicket(ctx, ticket.TicketCode, strings.TrimSpace(closedBy), now)
	if err != nil {
		return model.TicketItem{}, newError(ErrorCodeInternal, "failed to close ticket", err)
	}

	return updated, nil
}

func (s *Service) Refer(ctx context.Context, ticketCode, referredBy string) (model.TicketItem, error) {
	ticket, err := s.Get(ctx, ticketCode)
	if err != nil {
		return model.TicketItem{}, err
	}

	now := s.now().UTC().Format(time.RFC3339)

	updated, err := s.repo.ReferTicket(ctx, ticket.TicketCode, strings.TrimSpace(referredBy), now)
	if err != nil {
		return model.TicketItem{}, newError(ErrorCodeInternal, "failed to refer ticket", err)
	}

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, ticketCode string) error {
	ticket, err := s.Get(ctx, ticketCode)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteTicket(ctx, ticket.TicketCode); err != nil {
		return newError(ErrorCodeInternal, "failed to delete ticket", err)
	}

	return nil
}

func (s *Service) ListReplies(ctx context.Context, ticketCode string) ([]model.ReplyItem, error) {
	ticket, err := s.Get(ctx, ticketCode)
	if err != nil {
		return nil, err
	}

	replies, err := s.repo.ListReplies(ctx, ticket.TicketCode)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list replies", err)
	}

	return replies, nil
}

// PostReply records an agent reply. The unread flag flips off because the
// agent has by definition seen the thread they are answering.
func (s *Service) PostReply(ctx context.Context, params ReplyParams) (ReplyResult, error) {
	message := strings.TrimSpace(params.Message)
	if message == "" {
		return ReplyResult{}, newError(ErrorCodeValidation, "message is required", nil)
	}

	ticket, err := s.Get(ctx, params.TicketCode)
	if err != nil {
		return ReplyResult{}, err
	}

	senderName := strings.TrimSpace(params.SenderName)
	if senderName == "" {
		senderName = "Support Agent"
	}

	now := s.now().UTC().Format(time.RFC3339)

	reply := model.ReplyItem{
		ReplyID:     uuid.NewString(),
		TicketCode:  ticket.TicketCode,
		Message:     message,
		SenderName:  senderName,
		SenderType:  model.SenderTypeAgent,
		Attachments: params.Attachments,
		CreatedAt:   now,
	}

	if err := s.repo.CreateReply(ctx, reply); err != nil {
		return ReplyResult{}, newError(ErrorCodeInternal, "failed to save reply", err)
	}

	updated, err := s.repo.ClearUnreadReply(ctx, ticket.TicketCode, now)
	if err != nil {
		return ReplyResult{}, newError(ErrorCodeInternal, "failed to update ticket", err)
	}

	return ReplyResult{Reply: reply, Ticket: updated}, nil
}

func (s *Service) GetReply(ctx context.Context, replyID string) (model.ReplyItem, error) {
	replyID = strings.TrimSpace(replyID)
	if replyID == "" {
		return model.ReplyItem{}, newError(ErrorCodeValidation, "reply id is required", nil)
	}

	reply, err := s.repo.GetReply(ctx, replyID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.ReplyItem{}, newError(ErrorCodeNotFound, "reply not found", err)
		}
		return model.ReplyItem{}, newError(ErrorCodeInternal, "failed to load reply", err)
	}

	return reply, nil
}

// UpdateVehicleInfo merges the provided worksheet fields into the stored map.
// Keys outside vehicleInfoFields are dropped, and fields absent from the
// payload keep their stored value.
func (s *Service) UpdateVehicleInfo(ctx context.Context, ticketCode string, info map[string]string) (model.TicketItem, error) {
	ticket, err := s.Get(ctx, ticketCode)
	if err != nil {
		return model.TicketItem{}, err
	}

	merged := map[string]string{}
	for key, value := range ticket.VehicleInfo {
		merged[key] = value
	}
	for _, field := range vehicleInfoFields {
		if value, ok := info[field]; ok {
			merged[field] = value
		}
	}

	now := s.now().UTC().Format(time.RFC3339)

	updated, err := s.repo.UpdateVehicleInfo(ctx, ticket.TicketCode, merged, now)
	if err != nil {
		return model.TicketItem{}, newError(ErrorCodeInternal, "failed to update vehicle info", err)
	}

	return updated, nil
}

func matchesQuery(ticket model.TicketItem, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}

	for _, field := range []string{
		ticket.TicketCode,
		ticket.Subject,
		ticket.Body,
		ticket.Email,
		ticket.CustomerName,
	} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}

	return false
}

func sortByNewest(tickets []model.TicketItem) {
	sort.Slice(tickets, func(i, j int) bool {
		ti := utils.SafeParseTime(tickets[i].CreatedAt)
		tj := utils.SafeParseTime(tickets[j].CreatedAt)
		return ti.After(tj)
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
