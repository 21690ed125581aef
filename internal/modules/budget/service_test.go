package budget

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avenstudio/internal/pkg/apperr"
	"avenstudio/internal/store"
	"avenstudio/internal/testutil"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	now := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	return NewService(testutil.NewTestStore(t), testutil.FixedClock(now))
}

func cost(v float64) *float64 { return &v }

func TestCreate_ComputesVariance(t *testing.T) {
	svc := setupTestService(t)

	item, err := svc.Create(context.Background(), CreateRequest{
		ProjectID:     store.DefaultProjectID,
		Category:      "groundworks",
		ItemName:      "Concrete",
		EstimatedCost: cost(1000),
		ActualCost:    cost(1200),
	})
	require.NoError(t, err)
	assert.Equal(t, 200.0, item["variance"])
	assert.Equal(t, "estimated", item.String("status"))
}

func TestVariance_EdgeValues(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	cases := []struct {
		estimated, actual, variance float64
	}{
		{0, 0, 0},
		{0, 150, 150},
		{500, 0, -500},
		{-100, 50, 150},
		{1000.5, 999.25, -1.25},
	}
	for _, tc := range cases {
		item, err := svc.Create(ctx, CreateRequest{
			ProjectID: store.DefaultProjectID, ItemName: "x",
			EstimatedCost: cost(tc.estimated), ActualCost: cost(tc.actual),
		})
		require.NoError(t, err)
		assert.Equal(t, tc.variance, item["variance"])
	}

	items, err := svc.List(ctx, ListRequest{})
	require.NoError(t, err)
	for _, item := range items {
		assert.Equal(t, item.Float("actual_cost")-item.Float("estimated_cost"), item["variance"])
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{ItemName: "x"})
	assert.EqualError(t, err, "Project ID required")

	_, err = svc.Create(ctx, CreateRequest{ProjectID: store.DefaultProjectID})
	assert.EqualError(t, err, "Item name required")
}

func TestUpdate(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateRequest{ProjectID: store.DefaultProjectID, ItemName: "Boiler", EstimatedCost: cost(2000)})
	require.NoError(t, err)

	paid := "paid"
	got, err := svc.Update(ctx, UpdateRequest{ID: item.String("id"), ActualCost: cost(2100), Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, 100.0, got["variance"])
	assert.Equal(t, "paid", got.String("status"))

	_, err = svc.Update(ctx, UpdateRequest{ID: "nope"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSummary(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{ProjectID: store.DefaultProjectID, Category: "groundworks", ItemName: "Concrete", EstimatedCost: cost(1000), ActualCost: cost(1200)})
	require.NoError(t, err)

	sum, err := svc.Summary(ctx, store.DefaultProjectID)
	require.NoError(t, err)
	assert.Equal(t, 200.0, sum.TotalVariance)
	assert.Equal(t, 120.0, sum.SpentPercentage)
	assert.Equal(t, 20.0, sum.VariancePercentage)
	assert.Equal(t, 1, sum.ItemsCount)
	assert.Equal(t, &CategoryTotals{Estimated: 1000, Actual: 1200, Variance: 200, Count: 1}, sum.ByCategory["groundworks"])
	assert.Equal(t, map[string]int{"estimated": 1}, sum.ByStatus)
}

func TestSummary_ZeroEstimate(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{ProjectID: store.DefaultProjectID, ItemName: "Gift", ActualCost: cost(300)})
	require.NoError(t, err)

	sum, err := svc.Summary(ctx, store.DefaultProjectID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sum.VariancePercentage)
	assert.Equal(t, 0.0, sum.SpentPercentage)
	assert.Equal(t, 300.0, sum.TotalVariance)
}

func TestSummary_RequiresProject(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.Summary(context.Background(), "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
