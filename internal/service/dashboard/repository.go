package dashboard

import (
	"context"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
)

// Repository is the slice of ticket storage the dashboards read. The ticket
// package's DynamoDB repository satisfies it; every aggregate here is
// computed from a full table read, the way the reporting views always were.
type Repository interface {
	ListTickets(ctx context.Context) ([]model.TicketItem, error)
}
