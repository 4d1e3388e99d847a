package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/plantnet/pkg/database"
	"github.com/shashiranjanraj/plantnet/pkg/metrics"
)

// OrderTotals is the all-time revenue and order count.
type OrderTotals struct {
	TotalRevenue float64 `bson:"totalRevenue" json:"totalRevenue"`
	TotalOrder   int64   `bson:"totalOrder" json:"totalOrder"`
}

// ChartPoint is one calendar-day bucket of order activity.
type ChartPoint struct {
	Date     string  `bson:"date" json:"date"` // YYYY-MM-DD
	Quantity int64   `bson:"quantity" json:"quantity"`
	Price    float64 `bson:"price" json:"price"`
	Order    int64   `bson:"order" json:"order"`
}

// StatsRepository runs the reporting aggregations over the orders collection.
type StatsRepository struct {
	col *mongo.Collection
}

func NewStatsRepository(db *database.Mongo) *StatsRepository {
	return &StatsRepository{col: db.Collection(database.OrdersCollection)}
}

// Totals sums revenue and counts orders across the whole collection.
func (r *StatsRepository) Totals(ctx context.Context) (OrderTotals, error) {
	defer metrics.ObserveMongoOp(database.OrdersCollection, "aggregate", time.Now())

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"totalRevenue": bson.M{"$sum": "$price"},
			"totalOrder":   bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return OrderTotals{}, fmt.Errorf("stats: totals: %w", err)
	}
	defer cur.Close(ctx)

	var out []OrderTotals
	if err := cur.All(ctx, &out); err != nil {
		return OrderTotals{}, fmt.Errorf("stats: decode totals: %w", err)
	}
	if len(out) == 0 {
		// No orders yet.
		return OrderTotals{}, nil
	}
	return out[0], nil
}

// DailyBuckets groups orders by the calendar day of their created_at
// timestamp, most recent day first.
func (r *StatsRepository) DailyBuckets(ctx context.Context) ([]ChartPoint, error) {
	defer metrics.ObserveMongoOp(database.OrdersCollection, "aggregate", time.Now())

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$created_at",
			}},
			"quantity": bson.M{"$sum": "$quantity"},
			"price":    bson.M{"$sum": "$price"},
			"order":    bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": -1}}},
		{{Key: "$project", Value: bson.M{
			"_id":      0,
			"date":     "$_id",
			"quantity": 1,
			"price":    1,
			"order":    1,
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("stats: buckets: %w", err)
	}
	defer cur.Close(ctx)

	points := []ChartPoint{}
	if err := cur.All(ctx, &points); err != nil {
		return nil, fmt.Errorf("stats: decode buckets: %w", err)
	}
	return points, nil
}
