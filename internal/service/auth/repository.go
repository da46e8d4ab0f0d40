package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("auth repository: not found")

type Repository interface {
	CreateMember(ctx context.Context, member model.MemberItem) error
	GetMember(ctx context.Context, memberID string) (model.MemberItem, error)
	FindMemberByEmail(ctx context.Context, email string) (model.MemberItem, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) CreateMember(ctx context.Context, member model.MemberItem) error {
	return r.db.Client.PutItem(ctx, model.MembersTable, member)
}

func (r *DynamoRepository) GetMember(ctx context.Context, memberID string) (model.MemberItem, error) {
	var member model.MemberItem
	err := r.db.Client.GetItem(
		ctx,
		model.MembersTable,
		map[string]types.AttributeValue{
			"memberId": &types.AttributeValueMemberS{Value: memberID},
		},
		&member,
	)
	if err != nil {
		if isNotFound(err) {
			return model.MemberItem{}, ErrNotFound
		}
		return model.MemberItem{}, err
	}
	return member, nil
}

func (r *DynamoRepository) FindMemberByEmail(ctx context.Context, email string) (model.MemberItem, error) {
	items, err := r.db.Client.QueryItems(
		ctx,
		model.MembersTable,
		aws.String(model.MembersByEmailIndex),
		"email = :email",
		map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
		nil,
		nil,
	)
	if err != nil {
		return model.MemberItem{}, err
	}

	if len(items) == 0 {
		return model.MemberItem{}, ErrNotFound
	}

	var member model.MemberItem
	if err := attributevalue.UnmarshalMap(items[0], &member); err != nil {
		return model.MemberItem{}, err
	}

	return member, nil
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "item not found")
}
