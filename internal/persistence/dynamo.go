package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/haroonchishty/sca-backend/internal/config"
)

// ErrRecordNotFound signals an absent record for the given key.
var ErrRecordNotFound = errors.New("record not found")

// Store provides generic document access over DynamoDB tables, each keyed
// by a single string partition key. Updates apply sparse field patches
// without rewriting sibling attributes; concurrent writers are
// last-write-wins at the field level.
type Store struct {
	client *dynamodb.Client
}

// NewDynamo builds a Store from the AWS default config chain.
func NewDynamo(ctx context.Context, cfg config.DynamoConfig, logger *zap.Logger) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	logger.Info("dynamodb client initialized", zap.String("region", cfg.Region))

	return &Store{client: client}, nil
}

// NewStoreWithClient wraps an existing client; used by tests.
func NewStoreWithClient(client *dynamodb.Client) *Store {
	return &Store{client: client}
}

// Get fetches the record with the given key into out. An empty projection
// fetches the whole record.
func (s *Store) Get(ctx context.Context, table, keyName, keyValue string, projection []string, out any) error {
	in := &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       stringKey(keyName, keyValue),
	}
	if len(projection) > 0 {
		proj := buildProjection(projection)
		expr, err := expression.NewBuilder().WithProjection(proj).Build()
		if err != nil {
			return fmt.Errorf("build projection: %w", err)
		}
		in.ProjectionExpression = expr.Projection()
		in.ExpressionAttributeNames = expr.Names()
	}

	res, err := s.client.GetItem(ctx, in)
	if err != nil {
		return fmt.Errorf("get %s/%s: %w", table, keyValue, err)
	}
	if len(res.Item) == 0 {
		return ErrRecordNotFound
	}
	return attributevalue.UnmarshalMap(res.Item, out)
}

// Put writes a full record.
func (s *Store) Put(ctx context.Context, table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", table, err)
	}
	return nil
}

// Update applies a sparse patch to the record with the given key and
// unmarshals the whole updated record into out (which may be nil). The
// record must already exist.
func (s *Store) Update(ctx context.Context, table, keyName, keyValue string, patch Patch, out any) error {
	if patch.IsEmpty() {
		return errors.New("empty patch")
	}

	var update expression.UpdateBuilder
	for path, value := range patch {
		update = update.Set(expression.Name(path), expression.Value(value))
	}
	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name(keyName))).
		Build()
	if err != nil {
		return fmt.Errorf("build update expression: %w", err)
	}

	res, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       stringKey(keyName, keyValue),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("update %s/%s: %w", table, keyValue, err)
	}
	if out == nil {
		return nil
	}
	return attributevalue.UnmarshalMap(res.Attributes, out)
}

// Query runs an equality query against a secondary index, unmarshaling the
// matching records into out (a pointer to a slice).
func (s *Store) Query(ctx context.Context, table, index, keyName string, keyValue any, projection []string, out any) error {
	builder := expression.NewBuilder().
		WithKeyCondition(expression.Key(keyName).Equal(expression.Value(keyValue)))
	if len(projection) > 0 {
		builder = builder.WithProjection(buildProjection(projection))
	}
	expr, err := builder.Build()
	if err != nil {
		return fmt.Errorf("build query expression: %w", err)
	}

	res, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(table),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    expr.KeyCondition(),
		ProjectionExpression:      expr.Projection(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return fmt.Errorf("query %s/%s: %w", table, index, err)
	}
	return attributevalue.UnmarshalListOfMaps(res.Items, out)
}

// Scan reads up to limit records from the table into out (a pointer to a
// slice).
func (s *Store) Scan(ctx context.Context, table string, projection []string, limit int32, out any) error {
	in := &dynamodb.ScanInput{
		TableName: aws.String(table),
		Limit:     aws.Int32(limit),
	}
	if len(projection) > 0 {
		expr, err := expression.NewBuilder().WithProjection(buildProjection(projection)).Build()
		if err != nil {
			return fmt.Errorf("build projection: %w", err)
		}
		in.ProjectionExpression = expr.Projection()
		in.ExpressionAttributeNames = expr.Names()
	}

	res, err := s.client.Scan(ctx, in)
	if err != nil {
		return fmt.Errorf("scan %s: %w", table, err)
	}
	return attributevalue.UnmarshalListOfMaps(res.Items, out)
}

// Ping verifies store connectivity.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.ListTables(ctx, &dynamodb.ListTablesInput{Limit: aws.Int32(1)})
	return err
}

func stringKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}

func buildProjection(fields []string) expression.ProjectionBuilder {
	names := make([]expression.NameBuilder, 0, len(fields))
	for _, f := range fields {
		names = append(names, expression.Name(f))
	}
	return expression.NamesList(names[0], names[1:]...)
}
