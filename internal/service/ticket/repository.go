package ticket

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
	"github.com/autoassistgroup-dev/AutoAssist--portal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var (
	ErrNotFound        = errors.New("ticket repository: not found")
	ErrDuplicateThread = errors.New("ticket repository: duplicate thread")
)

type Repository interface {
	CreateTicket(ctx context.Context, ticket model.TicketItem) error
	GetTicket(ctx context.Context, ticketCode string) (model.TicketItem, error)
	FindTicketByThread(ctx context.Context, threadID string) (model.TicketItem, error)
	LatestTicketByEmail(ctx context.Context, email string) (model.TicketItem, error)
	ListTickets(ctx context.Context) ([]model.TicketItem, error)
	UpdateTicketStatus(ctx context.Context, ticketCode, status, updatedAt string) (model.TicketItem, error)
	CloseTicket(ctx context.Context, ticketCode, closedBy, closedAt string) (model.TicketItem, error)
	ReferTicket(ctx context.Context, ticketCode, referredBy, referredAt string) (model.TicketItem, error)
	MarkCustomerReplied(ctx context.Context, ticketCode string, status *string, lastReplyAt string) (model.TicketItem, error)
	ClearUnreadReply(ctx context.Context, ticketCode, updatedAt string) (model.TicketItem, error)
	UpdateVehicleInfo(ctx context.Context, ticketCode string, info map[string]string, updatedAt string) (model.TicketItem, error)
	DeleteTicket(ctx context.Context, ticketCode string) error
	CreateReply(ctx context.Context, reply model.ReplyItem) error
	GetReply(ctx context.Context, replyID string) (model.ReplyItem, error)
	ListReplies(ctx context.Context, ticketCode string) ([]model.ReplyItem, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

// CreateTicket enforces thread uniqueness: when the ticket carries a thread
// id, an existing ticket on the same thread turns the insert into
// ErrDuplicateThread instead of a second row.
func (r *DynamoRepository) CreateTicket(ctx context.Context, ticket model.TicketItem) error {
	if ticket.ThreadID != "" {
		_, err := r.FindTicketByThread(ctx, ticket.ThreadID)
		if err == nil {
			return ErrDuplicateThread
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
	}

	return r.db.Client.PutItemIfAbsent(ctx, model.TicketsTable, ticket, "ticketCode")
}

func (r *DynamoRepository) GetTicket(ctx context.Context, ticketCode string) (model.TicketItem, error) {
	var ticket model.TicketItem
	err := r.db.Client.GetItem(
		ctx,
		model.TicketsTable,
		map[string]types.AttributeValue{
			"ticketCode": &types.AttributeValueMemberS{Value: ticketCode},
		},
		&ticket,
	)
	if err != nil {
		if isNotFound(err) {
			return model.TicketItem{}, ErrNotFound
		}
		return model.TicketItem{}, err
	}
	return ticket, nil
}

func (r *DynamoRepository) FindTicketByThread(ctx context.Context, threadID string) (model.TicketItem, error) {
	items, err := r.db.Client.QueryItems(
		ctx,
		model.TicketsTable,
		aws.String(model.TicketsByThreadIndex),
		"threadId = :threadId",
		map[string]types.AttributeValue{
			":threadId": &types.AttributeValueMemberS{Value: threadID},
		},
		nil,
		nil,
	)
	if err != nil && !isIndexNotFound(err) {
		return model.TicketItem{}, err
	}

	if (err != nil && isIndexNotFound(err)) || items == nil {
		items, err = r.db.Client.ScanItems(
			ctx,
			model.TicketsTable,
			"threadId = :threadId",
			map[string]types.AttributeValue{
				":threadId": &types.AttributeValueMemberS{Value: threadID},
			},
			nil,
		)
		if err != nil {
			return model.TicketItem{}, err
		}
	}

	if len(items) == 0 {
		return model.TicketItem{}, ErrNotFound
	}

	var ticket model.TicketItem
	if err := attributevalue.UnmarshalMap(items[0], &ticket); err != nil {
		return model.TicketItem{}, err
	}
	return ticket, nil
}

func (r *DynamoRepository) LatestTicketByEmail(ctx context.Context, email string) (model.TicketItem, error) {
	scanForward := false
	items, err := r.db.Client.QueryItems(
		ctx,
		model.TicketsTable,
		aws.String(model.TicketsByEmailIndex),
		"email = :email",
		map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
		nil,
		&scanForward,
	)
	if err != nil && !isIndexNotFound(err) {
		return model.TicketItem{}, err
	}

	if (err != nil && isIndexNotFound(err)) || items == nil {
		items, err = r.db.Client.ScanItems(
			ctx,
			model.TicketsTable,
			"email = :email",
			map[string]types.AttributeValue{
				":email": &types.AttributeValueMemberS{Value: email},
			},
			nil,
		)
		if err != nil {
			return model.TicketItem{}, err
		}
	}

	if len(items) == 0 {
		return model.TicketItem{}, ErrNotFound
	}

	tickets := make([]model.TicketItem, 0, len(items))
	for _, item := range items {
		var ticket model.TicketItem
		if err := attributevalue.UnmarshalMap(item, &ticket); err != nil {
			return model.TicketItem{}, err
		}
		tickets = append(tickets, ticket)
	}

	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt > tickets[j].CreatedAt
	})

	return tickets[0], nil
}

func (r *DynamoRepository) ListTickets(ctx context.Context) ([]model.TicketItem, error) {
	items, err := r.db.Client.ScanAll(ctx, model.TicketsTable)
	if err != nil {
		return nil, err
	}

	tickets := make([]model.TicketItem, 0, len(items))
	for _, item := range items {
		var ticket model.TicketItem
		if err := attributevalue.UnmarshalMap(item, &ticket); err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	return tickets, nil
}

func (r *DynamoRepository) UpdateTicketStatus(ctx context.Context, ticketCode, status, updatedAt string) (model.TicketItem, error) {
	var ticket model.TicketItem
	err := r.db.Client.UpdateItem(
		ctx,
		model.TicketsTable,
		ticketKey(ticketCode),
		"SET #status = :status, #updatedAt = :updatedAt",
		map[string]types.AttributeValue{
			":status":    &types.AttributeValueMemberS{Value: status},
			":updatedAt": &types.AttributeValueMemberS{Value: updatedAt},
		},
		map[string]string{
			"#status":    "status",
			"#updatedAt": "updatedAt",
		},
		&ticket,
	)
	if err != nil {
		return model.TicketItem{}, err
	}
	return ticket, nil
}

func (r *DynamoRepository) CloseTicket(ctx context.Context, ticketCode, closedBy, closedAt string) (model.TicketItem, error) {
	var ticket model.TicketItem
	err := r.db.Client.UpdateItem(
		ctx,
		model.TicketsTable,
		ticketKey(ticketCode),
		"SET #status = :status, #updatedAt = :updatedAt, #closedAt = :closedAt, #closedBy = :closedBy",
		map[string]types.AttributeValue{
			":status":    &types.AttributeValueMemberS{Value: string(model.TicketStatusClosed)},
			":updatedAt": &types.AttributeValueMemberS{Value: closedAt},
			":closedAt":  &types.AttributeValueMemberS{Value: closedAt},
			":closedBy":  &types.AttributeValueMemberS{Value: closedBy},
		},
		map[string]string{
			"#status":    "status",
			"#updatedAt": "updatedAt",
			"#closedAt":  "closedAt",
			"#closedBy":  "closedBy",
		},
		&ticket,
	)
	if err != nil {
		return model.TicketItem{}, err
	}
	return ticket, nil
}

func (r *DynamoRepository) ReferTicket(ctx context.Context, ticketCode, referredBy, referredAt string) (model.TicketItem, error) {
	var ticket model.TicketItem
	err := r.db.Client.UpdateItem(
		ctx,
		model.TicketsTable,
		ticketKey(ticketCode),
		"SET #status = :status, #updatedAt = :updatedAt, #referredAt = :referredAt, #referredBy = :referredBy",
		map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(model.TicketStatusReferred)},
			":updatedAt":  &types.AttributeValueMemberS{Value: referredAt},
			":referredAt": &types.AttributeValueMemberS{Value: referredAt},
			":referredBy": &types.AttributeValueMemberS{Value: referredBy},
		},
		map[string]string{
			"#status":     "status",
			"#updatedAt":  "updatedAt",
			"#referredAt": "referredAt",
			"#referredBy": "referredBy",
		},
		&ticket,
	)
	if err != nil {
		return model.TicketItem{}, err
	}
	return ticket, nil
}

func (r *DynamoRepository) MarkCustomerReplied(ctx context.Context, ticketCode string, status *string, lastReplyAt string) (model.TicketItem, error) {
	updateExpr := "SET #hasUnreadReply = :hasUnreadReply, #lastReplyAt = :lastReplyAt, #updatedAt = :updatedAt"
	exprValues := map[string]types.AttributeValue{
		":hasUnreadReply": &types.AttributeValueMemberBOOL{Value: true},
		":lastReplyAt":    &types.AttributeValueMemberS{Value: lastReplyAt},
		":updatedAt":      &types.AttributeValueMemberS{Value: lastReplyAt},
	}
	attrNames := map[string]string{
		"#hasUnreadReply": "hasUnreadReply",
		"#lastReplyAt":    "lastReplyAt",
		"#updatedAt":      "updatedAt",
	}

	if status != nil {
		updateExpr += ", #status = :status"
		exprValues[":status"] = &types.AttributeValueMemberS{Value: *status}
		attrNames["#status"] = "status"
	}

	var ticket model.TicketItem
	err := r.db.Client.UpdateItem(ctx, model.TicketsTable, ticketKey(ticketCode), updateExpr, exprValues, attrNames, &ticket)
	if err != nil {
		return model.TicketItem{}, err
	}
	return ticket, nil
}

func (r *DynamoRepository) ClearUnreadReply(ctx context.Context, ticketCode, updatedAt string) (model.TicketItem, error) {
	var ticket model.TicketItem
	err := r.db.Client.UpdateItem(
		ctx,
		model.TicketsTable,
		ticketKey(ticketCode),
		"SET #hasUnreadReply = :hasUnreadReply, #updatedAt = :updatedAt",
		map[string]types.AttributeValue{
			":hasUnreadReply": &types.AttributeValueMemberBOOL{Value: false},
			":updatedAt":      &types.AttributeValueMemberS{Value: updatedAt},
		},
		map[string]string{
			"#hasUnreadReply": "hasUnreadReply",
			"#updatedAt":      "updatedAt",
		},
		&ticket,
	)
	if err != nil {
		return model.TicketItem{}, err
	}
	return ticket, nil
}

func (r *DynamoRepository) UpdateVehicleInfo(ctx context.Context, ticketCode string, info map[string]string, updatedAt string) (model.TicketItem, error) {
	infoAttr, err := attributevalue.Marshal(info)
	if err != nil {
		return model.TicketItem{}, err
	}

	var ticket model.TicketItem
	err = r.db.Client.UpdateItem(
		ctx,
		model.TicketsTable,
		ticketKey(ticketCode),
		"SET #vehicleInfo = :vehicleInfo, #updatedAt = :updatedAt",
		map[string]types.AttributeValue{
			":vehicleInfo": infoAttr,
			":updatedAt":   &types.AttributeValueMemberS{Value: updatedAt},
		},
		map[string]string{
			"#vehicleInfo": "vehicleInfo",
			"#updatedAt":   "updatedAt",
		},
		&ticket,
	)
	if err != nil {
		return model.TicketItem{}, err
	}
	return ticket, nil
}

func (r *DynamoRepository) DeleteTicket(ctx context.Context, ticketCode string) error {
	return r.db.Client.DeleteItem(ctx, model.TicketsTable, ticketKey(ticketCode))
}

func (r *DynamoRepository) CreateReply(ctx context.Context, reply model.ReplyItem) error {
	return r.db.Client.PutItem(ctx, model.RepliesTable, reply)
}

func (r *DynamoRepository) GetReply(ctx context.Context, replyID string) (model.ReplyItem, error) {
	var reply model.ReplyItem
	err := r.db.Client.GetItem(
		ctx,
		model.RepliesTable,
		map[string]types.AttributeValue{
			"replyId": &types.AttributeValueMemberS{Value: replyID},
		},
		&reply,
	)
	if err != nil {
		if isNotFound(err) {
			return model.ReplyItem{}, ErrNotFound
		}
		return model.ReplyItem{}, err
	}
	return reply, nil
}

func (r *DynamoRepository) ListReplies(ctx context.Context, ticketCode string) ([]model.ReplyItem, error) {
	items, err := r.db.Client.QueryAll(
		ctx,
		model.RepliesTable,
		aws.String(model.RepliesByTicketIndex),
		"ticketCode = :ticketCode",
		map[string]types.AttributeValue{
			":ticketCode": &types.AttributeValueMemberS{Value: ticketCode},
		},
	)
	if err != nil && !isIndexNotFound(err) {
		return nil, err
	}

	if (err != nil && isIndexNotFound(err)) || items == nil {
		items, err = r.db.Client.ScanItems(
			ctx,
			model.RepliesTable,
			"ticketCode = :ticketCode",
			map[string]types.AttributeValue{
				":ticketCode": &types.AttributeValueMemberS{Value: ticketCode},
			},
			nil,
		)
		if err != nil {
			return nil, err
		}
	}

	replies := make([]model.ReplyItem, 0, len(items))
	for _, item := range items {
		var reply model.ReplyItem
		if err := attributevalue.UnmarshalMap(item, &reply); err != nil {
			return nil, err
		}
		replies = append(replies, reply)
	}

	sort.Slice(replies, func(i, j int) bool {
		ti := utils.SafeParseTime(replies[i].CreatedAt)
		tj := utils.SafeParseTime(replies[j].CreatedAt)
		return ti.Before(tj)
	})

	return replies, nil
}

func ticketKey(ticketCode string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"ticketCode": &types.AttributeValueMemberS{Value: ticketCode},
	}
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "item not found")
}

func isIndexNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "index") && strings.Contains(msg, "not") && strings.Contains(msg, "found")
}
