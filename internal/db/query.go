package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
)

// countDocuments runs a server-side count aggregation over the given query.
// Used to report totals independent of pagination.
func countDocuments(ctx context.Context, query firestore.Query) (int64, error) {
	results, err := query.NewAggregationQuery().WithCount("total").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("count aggregation failed: %w", err)
	}
	raw, ok := results["total"]
	if !ok {
		return 0, fmt.Errorf("count aggregation returned no 'total' field")
	}
	value, ok := raw.(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected count aggregation value type %T", raw)
	}
	return value.GetIntegerValue(), nil
}

// sortDirection maps a descending flag onto the Firestore direction constants.
func sortDirection(descending bool) firestore.Direction {
	if descending {
		return firestore.Desc
	}
	return firestore.Asc
}
