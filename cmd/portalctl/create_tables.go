package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/spf13/cobra"
)

var createTablesCmd = &cobra.Command{
	Use:   "create-tables",
	Short: "Create the portal DynamoDB tables and their indexes for local/dev",
	RunE:  runCreateTables,
}

func runCreateTables(cmd *cobra.Command, args []string) error {
	db, err := database.NewDatabase()
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	for _, input := range tableDefinitions() {
		name := aws.ToString(input.TableName)

		exists, err := db.Client.TableExists(ctx, name)
		if err != nil {
			return fmt.Errorf("describe %s: %w", name, err)
		}
		if exists {
			log.Printf("create-tables: %s already exists", name)
			continue
		}

		if err := db.Client.CreateTable(ctx, input); err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
		if err := db.Client.WaitForTable(ctx, name, 2*time.Minute); err != nil {
			return fmt.Errorf("wait for %s: %w", name, err)
		}
		log.Printf("create-tables: %s created", name)
	}

	log.Println("create-tables: ok")
	return nil
}

func tableDefinitions() []*dynamodb.CreateTableInput {
	return []*dynamodb.CreateTableInput{
		{
			TableName:   aws.String(model.TicketsTable),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				attrS("ticketCode"), attrS("threadId"), attrS("email"), attrS("createdAt"),
			},
			KeySchema: hashOnly("ticketCode"),
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
				globalIndex(model.TicketsByThreadIndex, hashOnly("threadId")),
				globalIndex(model.TicketsByEmailIndex, hashRange("email", "createdAt")),
			},
		},
		{
			TableName:   aws.String(model.RepliesTable),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				attrS("replyId"), attrS("ticketCode"), attrS("createdAt"),
			},
			KeySchema: hashOnly("replyId"),
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
				globalIndex(model.RepliesByTicketIndex, hashRange("ticketCode", "createdAt")),
			},
		},
		{
			TableName:   aws.String(model.MembersTable),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				attrS("memberId"), attrS("email"),
			},
			KeySchema: hashOnly("memberId"),
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
				globalIndex(model.MembersByEmailIndex, hashOnly("email")),
			},
		},
		{
			TableName:   aws.String(model.ClaimDocumentsTable),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				attrS("documentId"), attrS("ticketCode"), attrS("createdAt"),
			},
			KeySchema: hashOnly("documentId"),
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
				globalIndex(model.ClaimDocsByTicketIndex, hashRange("ticketCode", "createdAt")),
			},
		},
		{
			TableName:   aws.String(model.CommonDocumentsTable),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				attrS("documentId"),
			},
			KeySchema: hashOnly("documentId"),
		},
	}
}

func attrS(name string) types.AttributeDefinition {
	return types.AttributeDefinition{
		AttributeName: aws.String(name),
		AttributeType: types.ScalarAttributeTypeS,
	}
}

func hashOnly(name string) []types.KeySchemaElement {
	return []types.KeySchemaElement{
		{AttributeName: aws.String(name), KeyType: types.KeyTypeHash},
	}
}

func hashRange(hashName, rangeName string) []types.KeySchemaElement {
	return []types.KeySchemaElement{
		{AttributeName: aws.String(hashName), KeyType: types.KeyTypeHash},
		{AttributeName: aws.String(rangeName), KeyType: types.KeyTypeRange},
	}
}

func globalIndex(name string, key []types.KeySchemaElement) types.GlobalSecondaryIndex {
	return types.GlobalSecondaryIndex{
		IndexName:  aws.String(name),
		KeySchema:  key,
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}
}
