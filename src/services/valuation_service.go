package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"fundnav/src/models"
	"fundnav/src/repositories"
	"fundnav/src/schemas"
	"fundnav/src/utils"

	"github.com/go-gota/gota/dataframe"
)

// DefaultProductNav is the reference price of a product with no resolvable
// weight or NAV data. Products must stay tradable before their first weight
// batch or strategy observation, so this is a floor, not an error.
const DefaultProductNav = 1.0

// WeightSumTolerance is the advisory band around 1.0 for one effective-date
// batch. Batches outside it are accepted and renormalized implicitly by the
// weighted-average denominator.
const WeightSumTolerance = 0.001

type ValuationServiceI interface {
	ProductNavAsOf(ctx context.Context, productID int64, date time.Time) (float64, error)
	SetWeights(ctx context.Context, productID int64, effectiveDate time.Time, entries []schemas.WeightInput) ([]models.ProductWeight, error)
	GetWeights(ctx context.Context, productID int64, asOf time.Time) ([]models.ProductWeightWithStrategy, error)
	ProductNavHistory(ctx context.Context, productID int64, from, to time.Time) ([]schemas.NavPoint, error)
	InvalidateProducts(ids ...int64)
}

type ValuationService struct {
	productRepo  repositories.ProductRepository
	strategyRepo repositories.StrategyRepository
	weightRepo   repositories.WeightRepository
	navRepo      repositories.NavRecordRepository
	cache        *utils.KeyedCache[float64]
	cacheTTL     time.Duration
}

func NewValuationService(
	productRepo repositories.ProductRepository,
	strategyRepo repositories.StrategyRepository,
	weightRepo repositories.WeightRepository,
	navRepo repositories.NavRecordRepository,
	cacheTTL time.Duration,
) *ValuationService {
	return &ValuationService{
		productRepo:  productRepo,
		strategyRepo: strategyRepo,
		weightRepo:   weightRepo,
		navRepo:      navRepo,
		cache:        utils.NewKeyedCache[float64](),
		cacheTTL:     cacheTTL,
	}
}

// ProductNavAsOf computes the weighted-average NAV of a product on a date.
// Strategies without a resolvable NAV are excluded from numerator and
// denominator both; an empty or fully unpriced weight set yields the default
// floor. Partial schedules therefore still price, renormalized over whatever
// weight resolves.
func (s *ValuationService) ProductNavAsOf(ctx context.Context, productID int64, date time.Time) (float64, error) {
	logger := utils.LoggerFromContext(ctx)

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrUnknownProduct
		}
		return 0, err
	}

	cacheKey := fmt.Sprintf("%d|%s", productID, utils.FormatDate(date))
	if nav, ok := s.cache.Get(cacheKey); ok {
		return nav, nil
	}

	weights, err := s.weightRepo.GetActiveWeights(ctx, productID, date)
	if err != nil {
		return 0, err
	}
	if len(weights) == 0 {
		logger.WithFields(map[string]interface{}{
			"productId": productID,
			"date":      utils.FormatDate(date),
		}).Warn("product has no active weights, using default nav")
		return DefaultProductNav, nil
	}

	totalNav := 0.0
	totalWeight := 0.0
	for _, w := range weights {
		record, err := s.navRepo.GetLatestAt(ctx, w.StrategyID, date)
		if errors.Is(err, repositories.ErrNotFound) {
			// Strategy not yet priced: excluded from the blend entirely.
			continue
		}
		if err != nil {
			return 0, err
		}
		totalNav += record.NavValue * w.Weight
		totalWeight += w.Weight
	}

	if totalWeight <= 0 {
		logger.WithFields(map[string]interface{}{
			"productId": productID,
			"date":      utils.FormatDate(date),
		}).Warn("no strategy in product is priced yet, using default nav")
		return DefaultProductNav, nil
	}

	nav := totalNav / totalWeight
	s.cache.Set(productID, cacheKey, nav, s.cacheTTL)
	return nav, nil
}

// SetWeights commits one effective-date batch of schedule entries. Weights
// outside [0,1] are rejected; a batch sum away from 1.0 is an advisory only.
func (s *ValuationService) SetWeights(ctx context.Context, productID int64, effectiveDate time.Time, entries []schemas.WeightInput) ([]models.ProductWeight, error) {
	logger := utils.LoggerFromContext(ctx)

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownProduct
		}
		return nil, err
	}

	// The whole batch is validated before the first write so a bad entry
	// cannot leave a partially committed schedule behind.
	for _, entry := range entries {
		if entry.Weight < 0 || entry.Weight > 1 {
			return nil, ErrInvalidWeight
		}
		if _, err := s.strategyRepo.GetByID(ctx, entry.StrategyID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrUnknownStrategy
			}
			return nil, err
		}
	}

	written := make([]models.ProductWeight, 0, len(entries))
	for _, entry := range entries {
		weight := &models.ProductWeight{
			ProductID:     productID,
			StrategyID:    entry.StrategyID,
			Weight:        entry.Weight,
			EffectiveDate: effectiveDate,
		}
		if err := s.weightRepo.Upsert(ctx, weight, nil); err != nil {
			return nil, err
		}
		written = append(written, *weight)
	}

	batch, err := s.weightRepo.GetBatch(ctx, productID, effectiveDate)
	if err != nil {
		return nil, err
	}
	sum := 0.0
	for _, w := range batch {
		sum += w.Weight
	}
	if math.Abs(sum-1.0) > WeightSumTolerance {
		logger.WithFields(map[string]interface{}{
			"productId":     productID,
			"effectiveDate": utils.FormatDate(effectiveDate),
			"weightSum":     sum,
		}).Warn("weight batch does not sum to 1.0, schedule is partial")
	}

	s.InvalidateProducts(productID)
	return written, nil
}

func (s *ValuationService) GetWeights(ctx context.Context, productID int64, asOf time.Time) ([]models.ProductWeightWithStrategy, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownProduct
		}
		return nil, err
	}
	return s.weightRepo.GetActiveWeights(ctx, productID, asOf)
}

// ProductNavHistory prices the product on every date in the union of its
// strategies' observation dates within [from, to].
func (s *ValuationService) ProductNavHistory(ctx context.Context, productID int64, from, to time.Time) ([]schemas.NavPoint, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownProduct
		}
		return nil, err
	}

	schedule, err := s.weightRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	strategySeen := map[int64]bool{}
	var frames []dataframe.DataFrame
	for _, entry := range schedule {
		if strategySeen[entry.StrategyID] {
			continue
		}
		strategySeen[entry.StrategyID] = true

		strategyID := entry.StrategyID
		records, err := s.navRepo.List(ctx, repositories.NavRecordFilter{
			StrategyID: &strategyID,
			StartDate:  &from,
			EndDate:    &to,
		})
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			continue
		}

		dates := make([]string, len(records))
		for i, record := range records {
			dates[i] = utils.FormatDate(record.Date)
		}
		frames = append(frames, utils.DateIndexFrame("date", dates))
	}

	points := []schemas.NavPoint{}
	for _, dateStr := range utils.UnionDateIndex("date", frames...) {
		date, err := utils.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		nav, err := s.ProductNavAsOf(ctx, productID, date)
		if err != nil {
			return nil, err
		}
		points = append(points, schemas.NavPoint{Date: dateStr, Nav: nav})
	}
	return points, nil
}

func (s *ValuationService) InvalidateProducts(ids ...int64) {
	for _, id := range ids {
		s.cache.InvalidateGroup(id)
	}
}
