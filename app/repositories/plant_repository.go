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

// ErrPlantNotFound is returned when no plant document matches the id.
var ErrPlantNotFound = errors.New("plant not found")

// ErrBadPlantID is returned when an id is not a valid ObjectID hex string.
var ErrBadPlantID = errors.New("invalid plant id")

// PlantRepository handles database operations for Plant.
type PlantRepository struct {
	col *mongo.Collection
}

func NewPlantRepository(db *database.Mongo) *PlantRepository {
	return &PlantRepository{col: db.Collection(database.PlantsCollection)}
}

// Create persists a new listing and fills in the generated id.
func (r *PlantRepository) Create(ctx context.Context, plant *models.Plant) error {
	defer metrics.ObserveMongoOp(database.PlantsCollection, "insert", time.Now())

	plant.CreatedAt = time.Now()
	res, err := r.col.InsertOne(ctx, plant)
	if err != nil {
		return fmt.Errorf("plants: insert: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		plant.ID = id
	}
	return nil
}

// All returns every listing in the catalogue.
func (r *PlantRepository) All(ctx context.Context) ([]models.Plant, error) {
	defer metrics.ObserveMongoOp(database.PlantsCollection, "find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("plants: list: %w", err)
	}
	defer cur.Close(ctx)

	plants := []models.Plant{}
	if err := cur.All(ctx, &plants); err != nil {
		return nil, fmt.Errorf("plants: decode list: %w", err)
	}
	return plants, nil
}

// FindByID fetches one listing by its hex id.
func (r *PlantRepository) FindByID(ctx context.Context, id string) (models.Plant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Plant{}, ErrBadPlantID
	}

	defer metrics.ObserveMongoOp(database.PlantsCollection, "find", time.Now())

	var plant models.Plant
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&plant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Plant{}, ErrPlantNotFound
	}
	if err != nil {
		return models.Plant{}, fmt.Errorf("plants: find %s: %w", id, err)
	}
	return plant, nil
}

// BySeller lists a seller's inventory.
func (r *PlantRepository) BySeller(ctx context.Context, email string) ([]models.Plant, error) {
	defer metrics.ObserveMongoOp(database.PlantsCollection, "find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{"seller.email": email})
	if err != nil {
		return nil, fmt.Errorf("plants: list for %s: %w", email, err)
	}
	defer cur.Close(ctx)

	plants := []models.Plant{}
	if err := cur.All(ctx, &plants); err != nil {
		return nil, fmt.Errorf("plants: decode seller list: %w", err)
	}
	return plants, nil
}

// Delete removes one listing by its hex id.
func (r *PlantRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrBadPlantID
	}

	defer metrics.ObserveMongoOp(database.PlantsCollection, "delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("plants: delete %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrPlantNotFound
	}
	return nil
}

// AdjustQuantity applies a signed stock delta atomically via $inc.
// There is no floor check: over-decrementing drives quantity negative.
// A missing plant is not an error; the modified count is returned as-is.
func (r *PlantRepository) AdjustQuantity(ctx context.Context, id string, delta int) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrBadPlantID
	}

	defer metrics.ObserveMongoOp(database.PlantsCollection, "update", time.Now())

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"quantity": delta}},
	)
	if err != nil {
		return 0, fmt.Errorf("plants: adjust quantity %s: %w", id, err)
	}
	return res.ModifiedCount, nil
}

// Count returns the approximate number of plant documents.
func (r *PlantRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveMongoOp(database.PlantsCollection, "count", time.Now())

	n, err := r.col.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("plants: count: %w", err)
	}
	return n, nil
}
