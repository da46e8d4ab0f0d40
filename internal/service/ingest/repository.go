package ingest

import (
	"context"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
)

// Repository is the slice of the ticket store reconciliation needs. The
// ticket package's DynamoDB repository satisfies it, so both services share
// one set of table queries.
type Repository interface {
	GetTicket(ctx context.Context, ticketCode string) (model.TicketItem, error)
	FindTicketByThread(ctx context.Context, threadID string) (model.TicketItem, error)
	LatestTicketByEmail(ctx context.Context, email string) (model.TicketItem, error)
	CreateTicket(ctx context.Context, ticket model.TicketItem) error
	CreateReply(ctx context.Context, reply model.ReplyItem) error
	MarkCustomerReplied(ctx context.Context, ticketCode string, status *string, lastReplyAt string) (model.TicketItem, error)
}
