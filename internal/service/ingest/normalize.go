package ingest

import (
	"strings"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/dto"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
)

// InboundMessage is the canonical form of an inbound payload. Normalize
// collapses the duck-typed key alternates exactly once; the resolution rules
// read only this struct and never touch raw payload keys.
type InboundMessage struct {
	TicketCode     string
	ThreadID       string
	Subject        string
	Body           string
	Message        string
	FromEmail      string
	FromName       string
	Priority       string
	Classification string
	Attachments    []model.AttachmentItem
	ReceivedAt     time.Time
}

func Normalize(payload dto.InboundPayload, receivedAt time.Time) InboundMessage {
	msg := InboundMessage{
		TicketCode:     strings.ToUpper(strings.TrimSpace(firstNonEmpty(payload.TicketID, payload.TicketIDAlt))),
		ThreadID:       strings.TrimSpace(payload.ThreadID),
		Subject:        strings.TrimSpace(payload.Subject),
		Body:           payload.Body,
		Message:        strings.TrimSpace(firstNonEmpty(payload.Message, payload.Response, payload.Reply, payload.Content)),
		FromEmail:      normalizeEmail(firstNonEmpty(payload.CustomerEmail, payload.From)),
		FromName:       strings.TrimSpace(firstNonEmpty(payload.SenderName, payload.CustomerName, payload.Name)),
		Priority:       strings.TrimSpace(payload.Priority),
		Classification: strings.TrimSpace(payload.Classification),
		ReceivedAt:     receivedAt,
	}

	for _, attachment := range payload.Attachments {
		filename := firstNonEmpty(attachment.Filename, attachment.FileName)
		data := firstNonEmpty(attachment.Data, attachment.FileData)
		if filename == "" && data == "" {
			continue
		}

		msg.Attachments = append(msg.Attachments, model.AttachmentItem{
			Filename:    filename,
			ContentType: attachment.ContentType,
			Data:        data,
		})
	}

	return msg
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
