package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/pkg/workerpool"
)

type stubCounter struct {
	n   int64
	err error
}

func (s stubCounter) Count(context.Context) (int64, error) { return s.n, s.err }

type stubStatsStore struct {
	totals    repositories.OrderTotals
	points    []repositories.ChartPoint
	totalsErr error
}

func (s stubStatsStore) Totals(context.Context) (repositories.OrderTotals, error) {
	return s.totals, s.totalsErr
}

func (s stubStatsStore) DailyBuckets(context.Context) ([]repositories.ChartPoint, error) {
	return s.points, nil
}

func TestAdminCombinesAllPasses(t *testing.T) {
	pool := workerpool.New(4)
	t.Cleanup(pool.Shutdown)

	store := stubStatsStore{
		totals: repositories.OrderTotals{TotalRevenue: 1250.5, TotalOrder: 42},
		points: []repositories.ChartPoint{
			{Date: "2026-08-30", Quantity: 3, Price: 75, Order: 2},
			{Date: "2026-08-29", Quantity: 1, Price: 25, Order: 1},
		},
	}
	svc := NewStatsService(stubCounter{n: 17}, stubCounter{n: 9}, store, pool)

	stats, err := svc.Admin(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(17), stats.TotalUser)
	assert.Equal(t, int64(9), stats.TotalPlants)
	assert.Equal(t, 1250.5, stats.TotalRevenue)
	assert.Equal(t, int64(42), stats.TotalOrder)
	require.Len(t, stats.ChartData, 2)
	assert.Equal(t, "2026-08-30", stats.ChartData[0].Date)
}

func TestAdminFirstErrorWins(t *testing.T) {
	pool := workerpool.New(4)
	t.Cleanup(pool.Shutdown)

	boom := errors.New("aggregation failed")
	svc := NewStatsService(stubCounter{n: 1}, stubCounter{n: 1}, stubStatsStore{totalsErr: boom}, pool)

	_, err := svc.Admin(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestAdminRunsInlineWhenPoolClosed(t *testing.T) {
	pool := workerpool.New(2)
	pool.Shutdown()

	svc := NewStatsService(stubCounter{n: 3}, stubCounter{n: 5}, stubStatsStore{}, pool)

	stats, err := svc.Admin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalUser)
	assert.Equal(t, int64(5), stats.TotalPlants)
}
