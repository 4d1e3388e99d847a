// Package database owns the MongoDB connection.
//
// The handle is constructed once at startup, passed explicitly to every
// repository, and closed on shutdown. There is no module-level client.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names used across the app.
const (
	UsersCollection      = "users"
	PlantsCollection     = "plants"
	OrdersCollection     = "orders"
	LogsCollection       = "logs"
	FailedJobsCollection = "failed_jobs"
	MigrationsCollection = "migrations"
)

// Mongo is the explicit store handle.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client against uri, pings it, and selects dbName.
func Connect(ctx context.Context, uri, dbName string) (*Mongo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return &Mongo{client: client, db: client.Database(dbName)}, nil
}

// Collection returns the named collection in the selected database.
func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// Database returns the selected database.
func (m *Mongo) Database() *mongo.Database {
	return m.db
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	closeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := m.client.Disconnect(closeCtx); err != nil {
		return fmt.Errorf("database: disconnect: %w", err)
	}
	return nil
}
