// Package migration tracks one-shot database setup steps (index creation)
// in a migrations collection, so `plantnet db:index` is idempotent.
//
// Usage (in database/migrations/initial.go):
//
//	func init() {
//	    migration.Register("20250101000000_create_indexes", &createIndexes{})
//	}
//
// Run from the CLI:
//
//	plantnet db:index
package migration

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/shashiranjanraj/plantnet/pkg/database"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
)

// Migration is the interface every migration must implement.
type Migration interface {
	Up(ctx context.Context, db *database.Mongo) error
}

// record is the document stored in the tracking collection.
type record struct {
	Name  string    `bson:"name"`
	RunAt time.Time `bson:"run_at"`
}

type registeredMigration struct {
	name string
	m    Migration
}

var registry []registeredMigration

// Register adds a migration to the global registry. Call from init().
func Register(name string, m Migration) {
	registry = append(registry, registeredMigration{name: name, m: m})
}

// Run applies every registered migration that has not run yet, in name order.
func Run(ctx context.Context, db *database.Mongo) error {
	col := db.Collection(database.MigrationsCollection)

	sorted := make([]registeredMigration, len(registry))
	copy(sorted, registry)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })

	for _, rm := range sorted {
		count, err := col.CountDocuments(ctx, bson.M{"name": rm.name})
		if err != nil {
			return fmt.Errorf("migration: check %s: %w", rm.name, err)
		}
		if count > 0 {
			continue
		}

		if err := rm.m.Up(ctx, db); err != nil {
			return fmt.Errorf("migration: %s: %w", rm.name, err)
		}

		if _, err := col.InsertOne(ctx, record{Name: rm.name, RunAt: time.Now()}); err != nil {
			return fmt.Errorf("migration: record %s: %w", rm.name, err)
		}

		logger.Info("migration applied", "name", rm.name)
	}

	return nil
}
