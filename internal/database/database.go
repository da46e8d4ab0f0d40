package database

import (
	"context"
	"fmt"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/env"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDBClient wraps the generated DynamoDB client with the small set of
// document operations the portal repositories use (functions.go).
type DynamoDBClient struct {
	svc *dynamodb.Client
}

// Database is the handle passed to every service; it exists so additional
// stores can be attached later without changing service constructors.
type Database struct {
	Client *DynamoDBClient
}

func NewDatabase() (*Database, error) {
	client, err := newDynamoDBClient(context.Background())
	if err != nil {
		return nil, fmt.Errorf("init dynamodb client: %w", err)
	}
	return &Database{Client: client}, nil
}

// newDynamoDBClient builds the client from the environment. Static
// credentials and a custom endpoint are only applied when set, so the default
// AWS credential chain keeps working in deployed environments while
// dynamodb-local works in dev.
func newDynamoDBClient(ctx context.Context) (*DynamoDBClient, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(env.Get(env.AWSRegion)),
	}

	if id, secret := env.Get(env.AWSID), env.Get(env.AWSSecret); id != "" && secret != "" {
		provider := credentials.NewStaticCredentialsProvider(id, secret, env.Get(env.AWSToken))
		loadOpts = append(loadOpts, config.WithCredentialsProvider(aws.NewCredentialsCache(provider)))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	svc := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint := env.Get(env.DynamoDBEndpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &DynamoDBClient{svc: svc}, nil
}
