package template

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
	ticketsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/ticket"
	"github.com/autoassistgroup-dev/AutoAssist--portal/utils"
)

const (
	fallbackSubject      = "Support Request"
	fallbackCustomerName = "Customer"
)

// Repository is the slice of ticket storage template rendering needs. The
// ticket package's DynamoDB repository satisfies it.
type Repository interface {
	GetTicket(ctx context.Context, ticketCode string) (model.TicketItem, error)
}

type Service struct {
	repo Repository
}

func New(db *database.Database) *Service {
	return &Service{repo: ticketsvc.NewDynamoRepository(db)}
}

func NewWithRepository(repo Repository) *Service {
	return &Service{repo: repo}
}

// EmailTemplate renders the compose-modal payload for a ticket. Unknown
// template types fall back to the default body rather than erroring, and a
// draft request without a stored draft does the same.
func (s *Service) EmailTemplate(ctx context.Context, templateType, ticketCode string) (EmailTemplate, error) {
	templateType = strings.TrimSpace(templateType)
	ticketCode = strings.ToUpper(strings.TrimSpace(ticketCode))

	if templateType == "" || ticketCode == "" {
		return EmailTemplate{}, newError(ErrorCodeValidation, "template type and ticket code are required", nil)
	}

	ticket, err := s.repo.GetTicket(ctx, ticketCode)
	if err != nil {
		if errors.Is(err, ticketsvc.ErrNotFound) {
			return EmailTemplate{}, newError(ErrorCodeNotFound, "ticket not found", err)
		}
		return EmailTemplate{}, newError(ErrorCodeInternal, "failed to fetch ticket", err)
	}

	firstName := utils.FirstWord(ticket.CustomerName, fallbackCustomerName)
	hasDraft := ticket.AIDraft != ""

	result := EmailTemplate{
		Subject:        replySubject(ticket.Subject, ticketCode),
		RecipientEmail: ticket.Email,
		Attachments:    ticket.Attachments,
		HasDraft:       hasDraft,
		ContentSource:  ContentSourceTemplate,
		TemplateType:   templateType,
	}

	switch {
	case templateType == TypeWarrantyClaim:
		result.Body = warrantyClaimBody(firstName)
		result.Subject = fmt.Sprintf("Re: Warranty Claim Update - Ticket #%s", ticketCode)
	case templateType == TypeTechnicalSupport:
		result.Body = technicalSupportBody(firstName)
	case templateType == TypeCustomerService:
		result.Body = customerServiceBody(firstName)
	case templateType == TypeDraft && hasDraft:
		result.Body = ticket.AIDraft
		result.ContentSource = ContentSourceAIDraft
	default:
		result.Body = defaultBody(firstName, ticketCode)
	}

	return result, nil
}

// replySubject prefixes Re: unless the thread subject already carries one,
// then appends the ticket reference the inbound mail parser keys on.
func replySubject(subject, ticketCode string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = fallbackSubject
	}

	if strings.HasPrefix(strings.ToLower(subject), "re:") {
		return fmt.Sprintf("%s [TID: %s]", subject, ticketCode)
	}
	return fmt.Sprintf("Re: %s [TID: %s]", subject, ticketCode)
}

// AIResponse returns the canned assistant draft for a ticket. The real
// generator runs on the automation platform; this keeps the compose modal
// usable when that platform is unreachable.
func AIResponse(ticketCode string) string {
	return fmt.Sprintf(`Dear Customer,

Thank you for contacting AutoAssistGroup regarding ticket #%s.

I have reviewed your request and I am looking into it immediately. We usually resolve issues like this within 24 hours.

Is there any additional information you can provide that might help us expedite this?

Best regards,
AutoAssist AI Support`, ticketCode)
}
