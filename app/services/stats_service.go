package services

import (
	"context"
	"sync"

	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/pkg/workerpool"
)

type counter interface {
	Count(ctx context.Context) (int64, error)
}

type statsStore interface {
	Totals(ctx context.Context) (repositories.OrderTotals, error)
	DailyBuckets(ctx context.Context) ([]repositories.ChartPoint, error)
}

// AdminStats is the dashboard snapshot returned to admins.
type AdminStats struct {
	TotalUser    int64                     `json:"totalUser"`
	TotalPlants  int64                     `json:"totalPlants"`
	TotalRevenue float64                   `json:"totalRevenue"`
	TotalOrder   int64                     `json:"totalOrder"`
	ChartData    []repositories.ChartPoint `json:"chartData"`
}

// StatsService assembles the admin dashboard numbers. The four aggregation
// passes are independent, so they run concurrently on a small pool.
type StatsService struct {
	users  counter
	plants counter
	stats  statsStore
	pool   *workerpool.Pool
}

func NewStatsService(users, plants counter, stats statsStore, pool *workerpool.Pool) *StatsService {
	return &StatsService{users: users, plants: plants, stats: stats, pool: pool}
}

// Admin runs all reporting passes and returns the combined snapshot.
// The first error wins; remaining results are discarded.
func (s *StatsService) Admin(ctx context.Context) (AdminStats, error) {
	var (
		out  AdminStats
		mu   sync.Mutex
		wg   sync.WaitGroup
		errs []error
	)

	run := func(fn func() error) {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}
		if err := s.pool.SubmitWait(task); err != nil {
			// Pool closed during shutdown: run inline so the caller
			// still gets an answer.
			task()
		}
	}

	run(func() error {
		n, err := s.users.Count(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		out.TotalUser = n
		mu.Unlock()
		return nil
	})

	run(func() error {
		n, err := s.plants.Count(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		out.TotalPlants = n
		mu.Unlock()
		return nil
	})

	run(func() error {
		totals, err := s.stats.Totals(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		out.TotalRevenue = totals.TotalRevenue
		out.TotalOrder = totals.TotalOrder
		mu.Unlock()
		return nil
	})

	run(func() error {
		points, err := s.stats.DailyBuckets(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		out.ChartData = points
		mu.Unlock()
		return nil
	})

	wg.Wait()

	if len(errs) > 0 {
		return AdminStats{}, errs[0]
	}
	return out, nil
}
