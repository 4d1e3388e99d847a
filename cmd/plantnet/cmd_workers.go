package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/plantnet/app/jobs"
	"github.com/shashiranjanraj/plantnet/config"
	"github.com/shashiranjanraj/plantnet/pkg/database"
	"github.com/shashiranjanraj/plantnet/pkg/queue"
)

var queueWorkersFlag int

// plantnet queue:work — run queue workers in a standalone process.
// Requires QUEUE_DRIVER=redis so jobs are shared with the server.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close(context.Background()) //nolint:errcheck

		queue.UseCollection(db.Collection(database.FailedJobsCollection))
		if config.QueueDriver() == "redis" {
			rdb := redis.NewClient(&redis.Options{
				Addr:     config.RedisAddr(),
				Password: config.RedisPassword(),
			})
			if err := rdb.Ping(ctx).Err(); err != nil {
				return err
			}
			driver := queue.NewRedisDriver(rdb)
			queue.SetDriver(driver)
			defer driver.Close()
			defer rdb.Close() //nolint:errcheck
		} else {
			fmt.Println("QUEUE_DRIVER is not redis; this worker only sees jobs dispatched in-process.")
		}

		jobs.Register()

		workers := queueWorkersFlag
		if workers < 1 {
			workers = 5
		}

		fmt.Printf("🚀 Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\n⚡ Queue worker stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 5, "Number of concurrent workers")
}
