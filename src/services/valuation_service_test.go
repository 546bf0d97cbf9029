package services_test

import (
	"context"
	"testing"
	"time"

	"fundnav/src/models"
	"fundnav/src/schemas"
	"fundnav/src/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type valuationFixture struct {
	strategies *mockStrategyRepo
	products   *mockProductRepo
	navRecords *mockNavRepo
	weights    *mockWeightRepo
	valuation  *services.ValuationService
	navService *services.NavService

	strategyA int64
	strategyB int64
	productID int64
}

func newValuationFixture(t *testing.T) *valuationFixture {
	t.Helper()
	ctx := context.Background()

	strategies := newMockStrategyRepo()
	products := newMockProductRepo()
	navRecords := newMockNavRepo(strategies)
	weights := newMockWeightRepo(strategies)

	valuation := services.NewValuationService(products, strategies, weights, navRecords, time.Minute)
	navService := services.NewNavService(strategies, navRecords, weights, valuation)

	strategyA := &models.Strategy{Name: "Equity Alpha", StartDate: day(t, "2024-01-01"), InitialNav: 1.0}
	require.NoError(t, strategies.Create(ctx, strategyA, nil))
	strategyB := &models.Strategy{Name: "Rates Carry", StartDate: day(t, "2024-01-01"), InitialNav: 1.0}
	require.NoError(t, strategies.Create(ctx, strategyB, nil))

	product := &models.Product{Name: "Multi-Strategy Fund"}
	require.NoError(t, products.Create(ctx, product, nil))

	return &valuationFixture{
		strategies: strategies,
		products:   products,
		navRecords: navRecords,
		weights:    weights,
		valuation:  valuation,
		navService: navService,
		strategyA:  strategyA.ID,
		strategyB:  strategyB.ID,
		productID:  product.ID,
	}
}

func (f *valuationFixture) setWeights(t *testing.T, effective string, entries ...schemas.WeightInput) {
	t.Helper()
	_, err := f.valuation.SetWeights(context.Background(), f.productID, day(t, effective), entries)
	require.NoError(t, err)
}

func (f *valuationFixture) recordNav(t *testing.T, strategyID int64, date string, nav float64) {
	t.Helper()
	_, err := f.navService.RecordNav(context.Background(), strategyID, day(t, date), nav)
	require.NoError(t, err)
}

func TestProductNavAsOf(t *testing.T) {
	ctx := context.Background()

	t.Run("WeightedAverageOverPricedStrategies", func(t *testing.T) {
		f := newValuationFixture(t)
		f.setWeights(t, "2024-01-01",
			schemas.WeightInput{StrategyID: f.strategyA, Weight: 0.6},
			schemas.WeightInput{StrategyID: f.strategyB, Weight: 0.4})
		f.recordNav(t, f.strategyA, "2024-01-10", 1.10)
		f.recordNav(t, f.strategyB, "2024-01-10", 1.05)

		nav, err := f.valuation.ProductNavAsOf(ctx, f.productID, day(t, "2024-01-15"))
		require.NoError(t, err)
		assert.InDelta(t, 1.10*0.6+1.05*0.4, nav, 1e-9)
	})

	t.Run("WeightsResolvedAsOfDate", func(t *testing.T) {
		f := newValuationFixture(t)
		f.setWeights(t, "2024-01-01",
			schemas.WeightInput{StrategyID: f.strategyA, Weight: 0.5},
			schemas.WeightInput{StrategyID: f.strategyB, Weight: 0.5})
		f.setWeights(t, "2024-02-01",
			schemas.WeightInput{StrategyID: f.strategyA, Weight: 0.3},
			schemas.WeightInput{StrategyID: f.strategyB, Weight: 0.7})
		f.recordNav(t, f.strategyA, "2024-01-05", 1.20)
		f.recordNav(t, f.strategyB, "2024-01-05", 1.00)

		janNav, err := f.valuation.ProductNavAsOf(ctx, f.productID, day(t, "2024-01-15"))
		require.NoError(t, err)
		assert.InDelta(t, 1.20*0.5+1.00*0.5, janNav, 1e-9)

		febNav, err := f.valuation.ProductNavAsOf(ctx, f.productID, day(t, "2024-02-15"))
		require.NoError(t, err)
		assert.InDelta(t, 1.20*0.3+1.00*0.7, febNav, 1e-9)
	})

	t.Run("UnpricedStrategyExcludedFromBlend", func(t *testing.T) {
		f := newValuationFixture(t)
		f.setWeights(t, "2024-01-01",
			schemas.WeightInput{StrategyID: f.strategyA, Weight: 0.6},
			schemas.WeightInput{StrategyID: f.strategyB, Weight: 0.4})
		f.recordNav(t, f.strategyA, "2024-01-10", 1.08)

		nav, err := f.valuation.ProductNavAsOf(ctx, f.productID, day(t, "2024-01-15"))
		require.NoError(t, err)
		assert.InDelta(t, 1.08, nav, 1e-9)
	})

	t.Run("NoActiveWeightsFallsBackToDefault", func(t *testing.T) {
		f := newValuationFixture(t)

		nav, err := f.valuation.ProductNavAsOf(ctx, f.productID, day(t, "2024-01-15"))
		require.NoError(t, err)
		assert.Equal(t, services.DefaultProductNav, nav)
	})

	t.Run("AllStrategiesUnpricedFallsBackToDefault", func(t *testing.T) {
		f := newValuationFixture(t)
		f.setWeights(t, "2024-01-01",
			schemas.WeightInput{StrategyID: f.strategyA, Weight: 0.6},
			schemas.WeightInput{StrategyID: f.strategyB, Weight: 0.4})

		nav, err := f.valuation.ProductNavAsOf(ctx, f.productID, day(t, "2024-01-15"))
		require.NoError(t, err)
		assert.Equal(t, services.DefaultProductNav, nav)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		f := newValuationFixture(t)

		_, err := f.valuation.ProductNavAsOf(ctx, 999, day(t, "2024-01-15"))
		assert.ErrorIs(t, err, services.ErrUnknownProduct)
	})

	t.Run("CachedUntilInvalidated", func(t *testing.T) {
		f := newValuationFixture(t)
		f.setWeights(t, "2024-01-01", schemas.WeightInput{StrategyID: f.strategyA, Weight: 1.0})
		f.recordNav(t, f.strategyA, "2024-01-10", 1.10)

		nav, err := f.valuation.ProductNavAsOf(ctx, f.productID, day(t, "2024-01-15"))
		require.NoError(t, err)
		assert.InDelta(t, 1.10, nav, 1e-9)

		// Mutate the store behind the service's back: the cached value wins
		// until an invalidation.
		f.navRecords.records[0].NavValue = 1.50

		nav, err = f.valuation.ProductNavAsOf(ctx, f.productID, day(t, "2024-01-15"))
		require.NoError(t, err)
		assert.InDelta(t, 1.10, nav, 1e-9)

		f.valuation.InvalidateProducts(f.productID)

		nav, err = f.valuation.ProductNavAsOf(ctx, f.productID, day(t, "2024-01-15"))
		require.NoError(t, err)
		assert.InDelta(t, 1.50, nav, 1e-9)
	})
}

func TestSetWeights(t *testing.T) {
	ctx := context.Background()

	t.Run("ReSubmittingSameEffectiveDateReplaces", func(t *testing.T) {
		f := newValuationFixture(t)
		f.setWeights(t, "2024-01-01", schemas.WeightInput{StrategyID: f.strategyA, Weight: 0.6})
		f.setWeights(t, "2024-01-01", schemas.WeightInput{StrategyID: f.strategyA, Weight: 0.8})

		weights, err := f.valuation.GetWeights(ctx, f.productID, day(t, "2024-01-15"))
		require.NoError(t, err)
		require.Len(t, weights, 1)
		assert.Equal(t, 0.8, weights[0].Weight)
	})

	t.Run("RejectsWeightOutsideUnitInterval", func(t *testing.T) {
		f := newValuationFixture(t)

		_, err := f.valuation.SetWeights(ctx, f.productID, day(t, "2024-01-01"),
			[]schemas.WeightInput{{StrategyID: f.strategyA, Weight: 1.2}})
		assert.ErrorIs(t, err, services.ErrInvalidWeight)

		_, err = f.valuation.SetWeights(ctx, f.productID, day(t, "2024-01-01"),
			[]schemas.WeightInput{{StrategyID: f.strategyA, Weight: -0.1}})
		assert.ErrorIs(t, err, services.ErrInvalidWeight)
	})

	t.Run("RejectsUnknownStrategy", func(t *testing.T) {
		f := newValuationFixture(t)

		_, err := f.valuation.SetWeights(ctx, f.productID, day(t, "2024-01-01"),
			[]schemas.WeightInput{{StrategyID: 999, Weight: 0.5}})
		assert.ErrorIs(t, err, services.ErrUnknownStrategy)
	})

	t.Run("RejectedBatchWritesNothing", func(t *testing.T) {
		f := newValuationFixture(t)

		_, err := f.valuation.SetWeights(ctx, f.productID, day(t, "2024-01-01"),
			[]schemas.WeightInput{
				{StrategyID: f.strategyA, Weight: 0.5},
				{StrategyID: 999, Weight: 0.5},
			})
		assert.ErrorIs(t, err, services.ErrUnknownStrategy)

		weights, err := f.valuation.GetWeights(ctx, f.productID, day(t, "2024-01-15"))
		require.NoError(t, err)
		assert.Empty(t, weights)
	})

	t.Run("RejectsUnknownProduct", func(t *testing.T) {
		f := newValuationFixture(t)

		_, err := f.valuation.SetWeights(ctx, 999, day(t, "2024-01-01"),
			[]schemas.WeightInput{{StrategyID: f.strategyA, Weight: 0.5}})
		assert.ErrorIs(t, err, services.ErrUnknownProduct)
	})

	t.Run("PartialBatchIsAcceptedAndRenormalized", func(t *testing.T) {
		f := newValuationFixture(t)
		f.setWeights(t, "2024-01-01",
			schemas.WeightInput{StrategyID: f.strategyA, Weight: 0.3},
			schemas.WeightInput{StrategyID: f.strategyB, Weight: 0.3})
		f.recordNav(t, f.strategyA, "2024-01-10", 1.10)
		f.recordNav(t, f.strategyB, "2024-01-10", 1.00)

		nav, err := f.valuation.ProductNavAsOf(ctx, f.productID, day(t, "2024-01-15"))
		require.NoError(t, err)
		assert.InDelta(t, (1.10*0.3+1.00*0.3)/0.6, nav, 1e-9)
	})
}

func TestProductNavHistory(t *testing.T) {
	ctx := context.Background()
	f := newValuationFixture(t)
	f.setWeights(t, "2024-01-01",
		schemas.WeightInput{StrategyID: f.strategyA, Weight: 0.5},
		schemas.WeightInput{StrategyID: f.strategyB, Weight: 0.5})

	// Strategies observed on different dates. The history covers the union.
	f.recordNav(t, f.strategyA, "2024-01-05", 1.00)
	f.recordNav(t, f.strategyA, "2024-01-12", 1.10)
	f.recordNav(t, f.strategyB, "2024-01-08", 1.00)

	points, err := f.valuation.ProductNavHistory(ctx, f.productID, day(t, "2024-01-01"), day(t, "2024-01-31"))
	require.NoError(t, err)

	require.Len(t, points, 3)
	assert.Equal(t, "2024-01-05", points[0].Date)
	assert.Equal(t, "2024-01-08", points[1].Date)
	assert.Equal(t, "2024-01-12", points[2].Date)

	// Jan 5: only A priced. Jan 8: both at 1.00/1.00. Jan 12: A moved to 1.10.
	assert.InDelta(t, 1.00, points[0].Nav, 1e-9)
	assert.InDelta(t, 1.00, points[1].Nav, 1e-9)
	assert.InDelta(t, (1.10*0.5+1.00*0.5), points[2].Nav, 1e-9)
}

func TestProductNavHistoryRangeFilter(t *testing.T) {
	ctx := context.Background()
	f := newValuationFixture(t)
	f.setWeights(t, "2024-01-01", schemas.WeightInput{StrategyID: f.strategyA, Weight: 1.0})

	f.recordNav(t, f.strategyA, "2024-01-05", 1.00)
	f.recordNav(t, f.strategyA, "2024-02-05", 1.10)
	f.recordNav(t, f.strategyA, "2024-03-05", 1.20)

	points, err := f.valuation.ProductNavHistory(ctx, f.productID, day(t, "2024-02-01"), day(t, "2024-02-28"))
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "2024-02-05", points[0].Date)
	assert.InDelta(t, 1.10, points[0].Nav, 1e-9)
}
