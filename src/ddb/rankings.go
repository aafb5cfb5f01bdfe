// Package ddb stores ranking rows in DynamoDB for the dashboard.
package ddb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type DynamoDBAPI interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

type RankingRow struct {
	Season    string
	Format    string
	Rank      int
	PokemonID int
	Form      int
}

const maxBatch = 25

// PutRankingRows writes rows keyed by Season#Format (PK) and Rank (SK).
func PutRankingRows(ctx context.Context, api DynamoDBAPI, table string, rows []RankingRow) error {
	if len(rows) == 0 {
		return nil
	}
	now := strconv.FormatInt(time.Now().Unix(), 10)

	for i := 0; i < len(rows); i += maxBatch {
		end := min(i+maxBatch, len(rows))

		reqs := make([]types.WriteRequest, 0, end-i)
		for _, r := range rows[i:end] {
			if r.Season == "" || r.Format == "" || r.Rank <= 0 {
				continue
			}
			item := map[string]types.AttributeValue{
				"SeasonFormat": &types.AttributeValueMemberS{Value: r.Season + "#" + r.Format},
				"Rank":         &types.AttributeValueMemberN{Value: strconv.Itoa(r.Rank)},
				"Season":       &types.AttributeValueMemberS{Value: r.Season},
				"Format":       &types.AttributeValueMemberS{Value: r.Format},
				"PokemonID":    &types.AttributeValueMemberN{Value: strconv.Itoa(r.PokemonID)},
				"Form":         &types.AttributeValueMemberN{Value: strconv.Itoa(r.Form)},
				"UpdatedAt":    &types.AttributeValueMemberN{Value: now},
			}
			reqs = append(reqs, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}
		if len(reqs) == 0 {
			continue
		}
		if err := writeBatch(ctx, api, table, reqs); err != nil {
			return fmt.Errorf("batch write ranking rows: %w", err)
		}
	}
	return nil
}

// ErrUnprocessed is returned when DynamoDB keeps handing back part of a
// batch after every attempt.
var ErrUnprocessed = errors.New("ranking rows left unprocessed")

const writeAttempts = 6

// retryStep grows the wait between attempts, capped at two seconds.
var retryStep = 100 * time.Millisecond

// writeBatch resubmits whatever DynamoDB reports as unprocessed until the
// batch is empty or the attempts run out.
func writeBatch(ctx context.Context, api DynamoDBAPI, table string, reqs []types.WriteRequest) error {
	pending := map[string][]types.WriteRequest{table: reqs}
	wait := retryStep
	for attempt := 1; ; attempt++ {
		out, err := api.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
		if err != nil {
			return err
		}
		if len(out.UnprocessedItems) == 0 {
			return nil
		}
		pending = out.UnprocessedItems
		if attempt == writeAttempts {
			return fmt.Errorf("%w: %d rows for %s after %d attempts", ErrUnprocessed, len(pending[table]), table, attempt)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait = min(wait+retryStep, 2*time.Second)
	}
}
