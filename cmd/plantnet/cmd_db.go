package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/plantnet/config"
	"github.com/shashiranjanraj/plantnet/database/seeders"
	"github.com/shashiranjanraj/plantnet/pkg/database"
	"github.com/shashiranjanraj/plantnet/pkg/migration"
)

// bootDB loads config and opens the MongoDB connection.
func bootDB(ctx context.Context) (*database.Mongo, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	return database.Connect(ctx, config.MongoURI(), config.MongoDB())
}

// plantnet db:index
var dbIndexCmd = &cobra.Command{
	Use:   "db:index",
	Short: "Create the MongoDB indexes (idempotent)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		db, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close(ctx) //nolint:errcheck

		fmt.Println("Creating indexes…")
		return migration.Run(ctx, db)
	},
}

// plantnet seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		db, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close(ctx) //nolint:errcheck

		fmt.Println("Running seeders…")
		return seeders.RunAll(ctx, db)
	},
}
