package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fundnav/src/models"
	"fundnav/src/repositories"
	"fundnav/src/services"
	"fundnav/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := utils.ParseDate(value)
	require.NoError(t, err)
	return parsed
}

type navFixture struct {
	strategies  *mockStrategyRepo
	products    *mockProductRepo
	navRecords  *mockNavRepo
	weights     *mockWeightRepo
	navService  *services.NavService
	valuation   *services.ValuationService
	strategyOne int64
}

func newNavFixture(t *testing.T) *navFixture {
	t.Helper()
	ctx := context.Background()

	strategies := newMockStrategyRepo()
	products := newMockProductRepo()
	navRecords := newMockNavRepo(strategies)
	weights := newMockWeightRepo(strategies)

	valuation := services.NewValuationService(products, strategies, weights, navRecords, time.Minute)
	navService := services.NewNavService(strategies, navRecords, weights, valuation)

	strategy := &models.Strategy{Name: "Global Macro", StartDate: day(t, "2024-01-01"), InitialNav: 1.0}
	require.NoError(t, strategies.Create(ctx, strategy, nil))

	return &navFixture{
		strategies:  strategies,
		products:    products,
		navRecords:  navRecords,
		weights:     weights,
		navService:  navService,
		valuation:   valuation,
		strategyOne: strategy.ID,
	}
}

func TestRecordNav(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstObservationHasNoReturnRate", func(t *testing.T) {
		f := newNavFixture(t)

		record, err := f.navService.RecordNav(ctx, f.strategyOne, day(t, "2024-01-05"), 1.02)
		require.NoError(t, err)
		assert.Equal(t, 1.02, record.NavValue)
		assert.Nil(t, record.ReturnRate)
	})

	t.Run("ReturnRateAgainstLatestEarlierObservation", func(t *testing.T) {
		f := newNavFixture(t)

		_, err := f.navService.RecordNav(ctx, f.strategyOne, day(t, "2024-01-05"), 1.00)
		require.NoError(t, err)

		record, err := f.navService.RecordNav(ctx, f.strategyOne, day(t, "2024-01-12"), 1.05)
		require.NoError(t, err)
		require.NotNil(t, record.ReturnRate)
		assert.InDelta(t, 5.0, *record.ReturnRate, 1e-9)
	})

	t.Run("BackfilledObservationUsesStrictlyEarlierBase", func(t *testing.T) {
		f := newNavFixture(t)

		_, err := f.navService.RecordNav(ctx, f.strategyOne, day(t, "2024-01-05"), 1.00)
		require.NoError(t, err)
		_, err = f.navService.RecordNav(ctx, f.strategyOne, day(t, "2024-01-20"), 1.10)
		require.NoError(t, err)

		record, err := f.navService.RecordNav(ctx, f.strategyOne, day(t, "2024-01-12"), 1.04)
		require.NoError(t, err)
		require.NotNil(t, record.ReturnRate)
		assert.InDelta(t, 4.0, *record.ReturnRate, 1e-9)
	})

	t.Run("SameDateReplacesExistingObservation", func(t *testing.T) {
		f := newNavFixture(t)

		_, err := f.navService.RecordNav(ctx, f.strategyOne, day(t, "2024-01-05"), 1.02)
		require.NoError(t, err)
		_, err = f.navService.RecordNav(ctx, f.strategyOne, day(t, "2024-01-05"), 1.03)
		require.NoError(t, err)

		strategyID := f.strategyOne
		records, err := f.navService.ListNavRecords(ctx, repositories.NavRecordFilter{StrategyID: &strategyID})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 1.03, records[0].NavValue)
	})

	t.Run("RejectsNonPositiveNav", func(t *testing.T) {
		f := newNavFixture(t)

		_, err := f.navService.RecordNav(ctx, f.strategyOne, day(t, "2024-01-05"), 0)
		assert.ErrorIs(t, err, services.ErrInvalidNav)

		_, err = f.navService.RecordNav(ctx, f.strategyOne, day(t, "2024-01-05"), -1.5)
		assert.ErrorIs(t, err, services.ErrInvalidNav)
	})

	t.Run("UnknownStrategy", func(t *testing.T) {
		f := newNavFixture(t)

		_, err := f.navService.RecordNav(ctx, 999, day(t, "2024-01-05"), 1.02)
		assert.ErrorIs(t, err, services.ErrUnknownStrategy)
	})
}

func TestNavAsOf(t *testing.T) {
	ctx := context.Background()

	t.Run("PicksLatestObservationOnOrBeforeDate", func(t *testing.T) {
		f := newNavFixture(t)

		_, err := f.navService.RecordNav(ctx, f.strategyOne, day(t, "2024-01-05"), 1.00)
		require.NoError(t, err)
		_, err = f.navService.RecordNav(ctx, f.strategyOne, day(t, "2024-01-12"), 1.05)
		require.NoError(t, err)
		_, err = f.navService.RecordNav(ctx, f.strategyOne, day(t, "2024-01-19"), 1.07)
		require.NoError(t, err)

		nav, priced, err := f.navService.NavAsOf(ctx, f.strategyOne, day(t, "2024-01-15"))
		require.NoError(t, err)
		assert.True(t, priced)
		assert.Equal(t, 1.05, nav)

		nav, priced, err = f.navService.NavAsOf(ctx, f.strategyOne, day(t, "2024-01-12"))
		require.NoError(t, err)
		assert.True(t, priced)
		assert.Equal(t, 1.05, nav)
	})

	t.Run("UnpricedStrategyIsNotAnError", func(t *testing.T) {
		f := newNavFixture(t)

		nav, priced, err := f.navService.NavAsOf(ctx, f.strategyOne, day(t, "2024-01-15"))
		require.NoError(t, err)
		assert.False(t, priced)
		assert.Equal(t, 0.0, nav)
	})

	t.Run("DateBeforeFirstObservation", func(t *testing.T) {
		f := newNavFixture(t)

		_, err := f.navService.RecordNav(ctx, f.strategyOne, day(t, "2024-01-12"), 1.05)
		require.NoError(t, err)

		_, priced, err := f.navService.NavAsOf(ctx, f.strategyOne, day(t, "2024-01-10"))
		require.NoError(t, err)
		assert.False(t, priced)
	})
}

func TestRecordNavInvalidatesProductValuations(t *testing.T) {
	ctx := context.Background()
	f := newNavFixture(t)

	product := &models.Product{Name: "Balanced Fund"}
	require.NoError(t, f.products.Create(ctx, product, nil))
	require.NoError(t, f.weights.Upsert(ctx, &models.ProductWeight{
		ProductID:     product.ID,
		StrategyID:    f.strategyOne,
		Weight:        1.0,
		EffectiveDate: day(t, "2024-01-01"),
	}, nil))

	_, err := f.navService.RecordNav(ctx, f.strategyOne, day(t, "2024-01-05"), 1.00)
	require.NoError(t, err)

	nav, err := f.valuation.ProductNavAsOf(ctx, product.ID, day(t, "2024-01-10"))
	require.NoError(t, err)
	assert.Equal(t, 1.00, nav)

	// An observation landing before the cached date must purge the cache.
	_, err = f.navService.RecordNav(ctx, f.strategyOne, day(t, "2024-01-08"), 1.20)
	require.NoError(t, err)

	nav, err = f.valuation.ProductNavAsOf(ctx, product.ID, day(t, "2024-01-10"))
	require.NoError(t, err)
	assert.Equal(t, 1.20, nav)
}

type brokenProductLookupWeightRepo struct {
	*mockWeightRepo
}

func (r *brokenProductLookupWeightRepo) GetProductIDsByStrategy(context.Context, int64) ([]int64, error) {
	return nil, errors.New("store unavailable")
}

func TestRecordNavSucceedsWhenInvalidationLookupFails(t *testing.T) {
	ctx := context.Background()

	strategies := newMockStrategyRepo()
	products := newMockProductRepo()
	navRecords := newMockNavRepo(strategies)
	weights := &brokenProductLookupWeightRepo{newMockWeightRepo(strategies)}

	valuation := services.NewValuationService(products, strategies, weights, navRecords, time.Minute)
	navService := services.NewNavService(strategies, navRecords, weights, valuation)

	strategy := &models.Strategy{Name: "Global Macro", StartDate: day(t, "2024-01-01"), InitialNav: 1.0}
	require.NoError(t, strategies.Create(ctx, strategy, nil))

	// The observation persists even though the product lookup for cache
	// invalidation is failing.
	record, err := navService.RecordNav(ctx, strategy.ID, day(t, "2024-01-05"), 1.04)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 1.04, record.NavValue)

	stored, err := navService.ListNavRecords(ctx, repositories.NavRecordFilter{StrategyID: &strategy.ID})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 1.04, stored[0].NavValue)
}
