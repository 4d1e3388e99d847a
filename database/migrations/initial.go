// Package migrations holds the one-shot database setup steps. Import it
// blank so the init registrations fire:
//
//	import _ "github.com/shashiranjanraj/plantnet/database/migrations"
package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/plantnet/pkg/database"
	"github.com/shashiranjanraj/plantnet/pkg/migration"
)

func init() {
	migration.Register("20250101000000_create_indexes", &createIndexes{})
}

// createIndexes builds the indexes the query paths depend on: unique user
// lookup by email, seller-scoped plant and order listings, customer order
// history, and the created_at index behind the admin chart buckets.
type createIndexes struct{}

func (createIndexes) Up(ctx context.Context, db *database.Mongo) error {
	users := db.Collection(database.UsersCollection)
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	plants := db.Collection(database.PlantsCollection)
	_, err = plants.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "seller.email", Value: 1}},
	})
	if err != nil {
		return err
	}

	orders := db.Collection(database.OrdersCollection)
	_, err = orders.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "customer.email", Value: 1}}},
		{Keys: bson.D{{Key: "seller", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return err
}
