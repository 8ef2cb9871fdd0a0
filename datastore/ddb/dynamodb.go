/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
	dnerrors "github.com/suparena/dailynote/errors"
	"github.com/suparena/dailynote/storagemodels"
)

const (
	claimPrefix  = "DAILYNOTE#"
	claimSortKey = "CLAIM"

	// DefaultClaimTTL bounds how long a claim item is kept when the table has TTL enabled on ExpiresAt.
	DefaultClaimTTL = 48 * time.Hour
)

// ItemAPI is the subset of the DynamoDB client used by ClaimStore.
type ItemAPI interface {
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
}

// ClaimStore implements datastore.Claimer with one conditional PutItem per day.
type ClaimStore struct {
	client    ItemAPI
	tableName string
	ttl       time.Duration
	now       func() time.Time
}

// NewDynamoDBClient initializes a DynamoDB client using static AWS credentials.
func NewDynamoDBClient(ctx context.Context, awsAccessKey, awsSecretKey, awsSessionToken, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, awsSessionToken),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(cfg), nil
}

// NewClaimStore constructs a ClaimStore on the given table.
func NewClaimStore(client ItemAPI, tableName string) *ClaimStore {
	return &ClaimStore{
		client:    client,
		tableName: tableName,
		ttl:       DefaultClaimTTL,
		now:       time.Now,
	}
}

// WithClock overrides the clock used for ClaimedAt and ExpiresAt.
func (c *ClaimStore) WithClock(now func() time.Time) *ClaimStore {
	c.now = now
	return c
}

// WithTTL overrides DefaultClaimTTL.
func (c *ClaimStore) WithTTL(ttl time.Duration) *ClaimStore {
	c.ttl = ttl
	return c
}

func claimKey(day string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: claimPrefix + day},
		"SK": &types.AttributeValueMemberS{Value: claimSortKey},
	}
}

// Claim writes the day's claim item unless one already exists.
func (c *ClaimStore) Claim(ctx context.Context, note storagemodels.NoteProperties, traceID string) error {
	now := c.now()
	claim := storagemodels.Claim{
		PK:        claimPrefix + note.Date,
		SK:        claimSortKey,
		Day:       note.Date,
		Title:     note.Title,
		TraceID:   traceID,
		ClaimedAt: strfmt.DateTime(now.UTC()).String(),
		ExpiresAt: now.Add(c.ttl).Unix(),
	}

	av, err := attributevalue.MarshalMap(claim)
	if err != nil {
		return fmt.Errorf("failed to marshal claim: %w", err)
	}

	_, err = c.client.PutItem(ctx, &sdk.PutItemInput{
		TableName:           &c.tableName,
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return dnerrors.NewAlreadyClaimedError(note.Date)
		}
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Release deletes the day's claim item.
func (c *ClaimStore) Release(ctx context.Context, note storagemodels.NoteProperties) error {
	_, err := c.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &c.tableName,
		Key:       claimKey(note.Date),
	})
	if err != nil {
		return fmt.Errorf("failed to delete claim in DynamoDB: %w", err)
	}
	return nil
}
