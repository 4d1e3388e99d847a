package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/pkg/database"
	"github.com/shashiranjanraj/plantnet/pkg/metrics"
)

// ErrOrderNotFound is returned when no order document matches the id.
var ErrOrderNotFound = errors.New("order not found")

// ErrBadOrderID is returned when an id is not a valid ObjectID hex string.
var ErrBadOrderID = errors.New("invalid order id")

// OrderRepository handles database operations for Order.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *database.Mongo) *OrderRepository {
	return &OrderRepository{col: db.Collection(database.OrdersCollection)}
}

// Insert persists a new order and fills in the generated id.
func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) error {
	defer metrics.ObserveMongoOp(database.OrdersCollection, "insert", time.Now())

	order.CreatedAt = time.Now()
	res, err := r.col.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("orders: insert: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

// FindByID fetches one order by its hex id.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Order{}, ErrBadOrderID
	}

	defer metrics.ObserveMongoOp(database.OrdersCollection, "find", time.Now())

	var order models.Order
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("orders: find %s: %w", id, err)
	}
	return order, nil
}

// SetStatus overwrites the status field. The value is stored verbatim;
// sellers use whatever workflow labels they like.
func (r *OrderRepository) SetStatus(ctx context.Context, id, status string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrBadOrderID
	}

	defer metrics.ObserveMongoOp(database.OrdersCollection, "update", time.Now())

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return 0, fmt.Errorf("orders: set status %s: %w", id, err)
	}
	// Matched, not modified: re-sending the current label is not a miss.
	return res.MatchedCount, nil
}

// Delete removes one order permanently.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrBadOrderID
	}

	defer metrics.ObserveMongoOp(database.OrdersCollection, "delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("orders: delete %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// ByCustomer lists a customer's orders enriched with the plant's name,
// image and category. Orders whose plant was deleted still appear, with
// the joined fields absent.
func (r *OrderRepository) ByCustomer(ctx context.Context, email string) ([]models.Order, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"customer.email": email}}},
		{{Key: "$addFields", Value: bson.M{
			"plantObjectId": bson.M{"$toObjectId": "$plantId"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.PlantsCollection,
			"localField":   "plantObjectId",
			"foreignField": "_id",
			"as":           "plants",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$plants",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$addFields", Value: bson.M{
			"name":     "$plants.name",
			"image":    "$plants.image",
			"category": "$plants.category",
		}}},
		{{Key: "$project", Value: bson.M{"plants": 0, "plantObjectId": 0}}},
	}
	return r.aggregate(ctx, pipeline)
}

// BySeller lists a seller's incoming orders enriched with the plant's name.
func (r *OrderRepository) BySeller(ctx context.Context, email string) ([]models.Order, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"seller": email}}},
		{{Key: "$addFields", Value: bson.M{
			"plantObjectId": bson.M{"$toObjectId": "$plantId"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.PlantsCollection,
			"localField":   "plantObjectId",
			"foreignField": "_id",
			"as":           "plants",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$plants",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$addFields", Value: bson.M{
			"name": "$plants.name",
		}}},
		{{Key: "$project", Value: bson.M{"plants": 0, "plantObjectId": 0}}},
	}
	return r.aggregate(ctx, pipeline)
}

func (r *OrderRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.Order, error) {
	defer metrics.ObserveMongoOp(database.OrdersCollection, "aggregate", time.Now())

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("orders: aggregate: %w", err)
	}
	defer cur.Close(ctx)

	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("orders: decode aggregate: %w", err)
	}
	return orders, nil
}
