// Package server wires the whole application together: configuration,
// MongoDB, the queue, storage, dependencies, routes, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/plantnet/app/controllers"
	"github.com/shashiranjanraj/plantnet/app/jobs"
	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/app/routes"
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/config"
	"github.com/shashiranjanraj/plantnet/pkg/database"
	"github.com/shashiranjanraj/plantnet/pkg/event"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/metrics"
	"github.com/shashiranjanraj/plantnet/pkg/middleware"
	"github.com/shashiranjanraj/plantnet/pkg/payment"
	"github.com/shashiranjanraj/plantnet/pkg/queue"
	"github.com/shashiranjanraj/plantnet/pkg/reqid"
	"github.com/shashiranjanraj/plantnet/pkg/router"
	"github.com/shashiranjanraj/plantnet/pkg/storage"
	"github.com/shashiranjanraj/plantnet/pkg/workerpool"
)

const (
	queueWorkers    = 3
	statsPoolSize   = 4
	shutdownTimeout = 10 * time.Second
)

// Start boots the application and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	db, err := database.Connect(bootCtx, config.MongoURI(), config.MongoDB())
	if err != nil {
		return err
	}

	// Fan logs out to Mongo alongside stdout.
	mongoSink := logger.NewMongoHandler(db.Collection(database.LogsCollection))
	logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), mongoSink))
	defer mongoSink.Close()

	queue.UseCollection(db.Collection(database.FailedJobsCollection))
	if config.QueueDriver() == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr(),
			Password: config.RedisPassword(),
		})
		if err := rdb.Ping(bootCtx).Err(); err != nil {
			return err
		}
		driver := queue.NewRedisDriver(rdb)
		queue.SetDriver(driver)
		defer driver.Close()
		defer rdb.Close() //nolint:errcheck
	}
	queue.StartWorkers(ctx, queueWorkers)

	storage.Connect()
	jobs.Register()

	users := repositories.NewUserRepository(db)
	plants := repositories.NewPlantRepository(db)
	orders := repositories.NewOrderRepository(db)
	stats := repositories.NewStatsRepository(db)

	pool := workerpool.New(statsPoolSize)

	orderSvc := services.NewOrderService(orders, plants)
	statsSvc := services.NewStatsService(users, plants, stats, pool)
	paySvc := services.NewPaymentService(plants, payment.NewStripe(config.PaymentSecret()))

	catalogue, err := controllers.NewCatalogueHandler(plants)
	if err != nil {
		return err
	}

	r := router.New()
	r.Use(
		reqid.Middleware(),
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
		metrics.Middleware(),
	)
	routes.RegisterAPI(r, routes.Deps{
		Users:     users,
		Plants:    plants,
		Orders:    orderSvc,
		Stats:     statsSvc,
		Payments:  paySvc,
		Catalogue: catalogue,
	})

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("plantNet server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}

	event.Flush()
	pool.Shutdown()

	if err := db.Close(shutdownCtx); err != nil {
		logger.Error("mongo close", "error", err)
	}
	return nil
}
