package document

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

var ErrNotFound = errors.New("document repository: not found")

type Repository interface {
	GetTicket(ctx context.Context, ticketCode string) (model.TicketItem, error)
	CreateClaimDocument(ctx context.Context, doc model.ClaimDocumentItem) error
	GetClaimDocument(ctx context.Context, documentID string) (model.ClaimDocumentItem, error)
	ListClaimDocuments(ctx context.Context, ticketCode string) ([]model.ClaimDocumentItem, error)
	SoftDeleteClaimDocument(ctx context.Context, documentID, deletedAt string) error
	ListCommonDocuments(ctx context.Context) ([]model.CommonDocumentItem, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
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

func (r *DynamoRepository) CreateClaimDocument(ctx context.Context, doc model.ClaimDocumentItem) error {
	return r.db.Client.PutItem(ctx, model.ClaimDocumentsTable, doc)
}

func (r *DynamoRepository) GetClaimDocument(ctx context.Context, documentID string) (model.ClaimDocumentItem, error) {
	var doc model.ClaimDocumentItem
	err := r.db.Client.GetItem(
		ctx,
		model.ClaimDocumentsTable,
		map[string]types.AttributeValue{
			"documentId": &types.AttributeValueMemberS{Value: documentID},
		},
		&doc,
	)
	if err != nil {
		if isNotFound(err) {
			return model.ClaimDocumentItem{}, ErrNotFound
		}
		return model.ClaimDocumentItem{}, err
	}
	return doc, nil
}

func (r *DynamoRepository) ListClaimDocuments(ctx context.Context, ticketCode string) ([]model.ClaimDocumentItem, error) {
	items, err := r.db.Client.QueryAll(
		ctx,
		model.ClaimDocumentsTable,
		aws.String(model.ClaimDocsByTicketIndex),
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
			model.ClaimDocumentsTable,
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

	docs := make([]model.ClaimDocumentItem, 0, len(items))
	for _, item := range items {
		var doc model.ClaimDocumentItem
		if err := attributevalue.UnmarshalMap(item, &doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		return utils.SafeParseTime(docs[i].CreatedAt).Before(utils.SafeParseTime(docs[j].CreatedAt))
	})

	return docs, nil
}

func (r *DynamoRepository) SoftDeleteClaimDocument(ctx context.Context, documentID, deletedAt string) error {
	return r.db.Client.UpdateItem(
		ctx,
		model.ClaimDocumentsTable,
		map[string]types.AttributeValue{
			"documentId": &types.AttributeValueMemberS{Value: documentID},
		},
		"SET #isDeleted = :isDeleted, #deletedAt = :deletedAt",
		map[string]types.AttributeValue{
			":isDeleted": &types.AttributeValueMemberBOOL{Value: true},
			":deletedAt": &types.AttributeValueMemberS{Value: deletedAt},
		},
		map[string]string{
			"#isDeleted": "isDeleted",
			"#deletedAt": "deletedAt",
		},
		nil,
	)
}

func (r *DynamoRepository) ListCommonDocuments(ctx context.Context) ([]model.CommonDocumentItem, error) {
	items, err := r.db.Client.ScanAll(ctx, model.CommonDocumentsTable)
	if err != nil {
		return nil, err
	}

	docs := make([]model.CommonDocumentItem, 0, len(items))
	for _, item := range items {
		var doc model.CommonDocumentItem
		if err := attributevalue.UnmarshalMap(item, &doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Title < docs[j].Title
	})

	return docs, nil
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
