package attachment

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
	ticketsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/ticket"
	"github.com/autoassistgroup-dev/AutoAssist--portal/utils"
)

const fallbackFilename = "download"

// Repository is the slice of ticket storage attachment serving needs. The
// ticket package's DynamoDB repository satisfies it.
type Repository interface {
	GetTicket(ctx context.Context, ticketCode string) (model.TicketItem, error)
	GetReply(ctx context.Context, replyID string) (model.ReplyItem, error)
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

// TicketAttachment decodes the indexed attachment embedded on a ticket.
func (s *Service) TicketAttachment(ctx context.Context, ticketCode string, index int) (File, error) {
	ticketCode = strings.ToUpper(strings.TrimSpace(ticketCode))
	if ticketCode == "" {
		return File{}, newError(ErrorCodeValidation, "ticket code is required", nil)
	}

	ticket, err := s.repo.GetTicket(ctx, ticketCode)
	if err != nil {
		if errors.Is(err, ticketsvc.ErrNotFound) {
			return File{}, newError(ErrorCodeNotFound, "ticket not found", err)
		}
		return File{}, newError(ErrorCodeInternal, "failed to fetch ticket", err)
	}

	return decodeAt(ticket.Attachments, index)
}

// ReplyAttachment decodes the indexed attachment embedded on a reply.
func (s *Service) ReplyAttachment(ctx context.Context, replyID string, index int) (File, error) {
	replyID = strings.TrimSpace(replyID)
	if replyID == "" {
		return File{}, newError(ErrorCodeValidation, "reply id is required", nil)
	}

	reply, err := s.repo.GetReply(ctx, replyID)
	if err != nil {
		if errors.Is(err, ticketsvc.ErrNotFound) {
			return File{}, newError(ErrorCodeNotFound, "reply not found", err)
		}
		return File{}, newError(ErrorCodeInternal, "failed to fetch reply", err)
	}

	return decodeAt(reply.Attachments, index)
}

func decodeAt(attachments []model.AttachmentItem, index int) (File, error) {
	if index < 0 || index >= len(attachments) {
		return File{}, newError(ErrorCodeNotFound, "attachment not found", nil)
	}

	item := attachments[index]

	filename := strings.TrimSpace(item.Filename)
	if filename == "" {
		filename = fallbackFilename
	}

	if strings.TrimSpace(item.Data) == "" {
		return File{}, newError(ErrorCodeNotFound, "attachment data not available", nil)
	}

	data, err := base64.StdEncoding.DecodeString(item.Data)
	if err != nil {
		return File{}, newError(ErrorCodeNotFound, "attachment data not available", err)
	}

	contentType := strings.TrimSpace(item.ContentType)
	if contentType == "" {
		contentType = utils.MimeTypeFor(filename)
	}

	return File{
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}
