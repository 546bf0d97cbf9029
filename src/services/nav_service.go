package services

import (
	"context"
	"errors"
	"time"

	"fundnav/src/models"
	"fundnav/src/repositories"
	"fundnav/src/utils"
)

// ProductInvalidator drops cached product valuations after a write makes
// them stale. Implemented by the valuation service.
type ProductInvalidator interface {
	InvalidateProducts(ids ...int64)
}

type NavServiceI interface {
	RecordNav(ctx context.Context, strategyID int64, date time.Time, navValue float64) (*models.NavRecord, error)
	NavAsOf(ctx context.Context, strategyID int64, date time.Time) (float64, bool, error)
	ListNavRecords(ctx context.Context, filter repositories.NavRecordFilter) ([]models.NavRecordWithStrategy, error)
}

type NavService struct {
	strategyRepo repositories.StrategyRepository
	navRepo      repositories.NavRecordRepository
	weightRepo   repositories.WeightRepository
	invalidator  ProductInvalidator
}

func NewNavService(
	strategyRepo repositories.StrategyRepository,
	navRepo repositories.NavRecordRepository,
	weightRepo repositories.WeightRepository,
	invalidator ProductInvalidator,
) *NavService {
	return &NavService{
		strategyRepo: strategyRepo,
		navRepo:      navRepo,
		weightRepo:   weightRepo,
		invalidator:  invalidator,
	}
}

// RecordNav upserts the observation for (strategy, date). The return rate is
// derived against the latest observation strictly before date and stays nil
// for a strategy's first observation. A write for an already-observed date
// silently replaces it (last write wins) and is logged as a warning.
func (s *NavService) RecordNav(ctx context.Context, strategyID int64, date time.Time, navValue float64) (*models.NavRecord, error) {
	logger := utils.LoggerFromContext(ctx)

	if navValue <= 0 {
		return nil, ErrInvalidNav
	}
	if _, err := s.strategyRepo.GetByID(ctx, strategyID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownStrategy
		}
		return nil, err
	}

	existing, err := s.navRepo.GetAt(ctx, strategyID, date)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	var returnRate *float64
	prev, err := s.navRepo.GetLastBefore(ctx, strategyID, date)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if prev != nil {
		rate := (navValue - prev.NavValue) / prev.NavValue * 100
		returnRate = &rate
	}

	record := &models.NavRecord{
		StrategyID: strategyID,
		Date:       date,
		NavValue:   navValue,
		ReturnRate: returnRate,
	}
	if err := s.navRepo.Upsert(ctx, record, nil); err != nil {
		return nil, err
	}

	if existing != nil {
		logger.WithFields(map[string]interface{}{
			"strategyId": strategyID,
			"date":       utils.FormatDate(date),
			"oldNav":     existing.NavValue,
			"newNav":     navValue,
		}).Warn("nav observation replaced, prior value discarded")
	}

	if s.invalidator != nil {
		productIDs, err := s.weightRepo.GetProductIDsByStrategy(ctx, strategyID)
		if err != nil {
			// The observation is already persisted at this point. A failed
			// lookup only delays cache invalidation until the TTL expires.
			logger.WithFields(map[string]interface{}{
				"strategyId": strategyID,
				"error":      err.Error(),
			}).Warn("could not resolve products for cache invalidation")
			return record, nil
		}
		s.invalidator.InvalidateProducts(productIDs...)
	}

	return record, nil
}

// NavAsOf resolves the strategy NAV from the latest observation on or before
// date. A strategy with no observation at or before date is reported as not
// priced (false), never as an error.
func (s *NavService) NavAsOf(ctx context.Context, strategyID int64, date time.Time) (float64, bool, error) {
	if _, err := s.strategyRepo.GetByID(ctx, strategyID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, false, ErrUnknownStrategy
		}
		return 0, false, err
	}

	record, err := s.navRepo.GetLatestAt(ctx, strategyID, date)
	if errors.Is(err, repositories.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return record.NavValue, true, nil
}

func (s *NavService) ListNavRecords(ctx context.Context, filter repositories.NavRecordFilter) ([]models.NavRecordWithStrategy, error) {
	return s.navRepo.List(ctx, filter)
}
