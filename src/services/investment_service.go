package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"fundnav/src/models"
	"fundnav/src/repositories"
	"fundnav/src/schemas"
	"fundnav/src/utils"
)

// ProductPricer is the slice of the valuation service the ledger needs.
type ProductPricer interface {
	ProductNavAsOf(ctx context.Context, productID int64, date time.Time) (float64, error)
}

type InvestmentServiceI interface {
	RecordInvestment(ctx context.Context, investorID, productID int64, amount float64, date time.Time, typ models.InvestmentType) (*models.Investment, error)
	Portfolio(ctx context.Context, investorID int64) ([]schemas.HoldingView, error)
	ListInvestments(ctx context.Context, filter repositories.InvestmentFilter) ([]models.InvestmentWithNames, error)
}

type InvestmentService struct {
	investorRepo   repositories.InvestorRepository
	productRepo    repositories.ProductRepository
	investmentRepo repositories.InvestmentRepository
	pricer         ProductPricer
	// rejectOverRedemption turns on balance checking for redemptions. Off by
	// default: the ledger historically allowed negative holdings.
	rejectOverRedemption bool
}

func NewInvestmentService(
	investorRepo repositories.InvestorRepository,
	productRepo repositories.ProductRepository,
	investmentRepo repositories.InvestmentRepository,
	pricer ProductPricer,
	rejectOverRedemption bool,
) *InvestmentService {
	return &InvestmentService{
		investorRepo:         investorRepo,
		productRepo:          productRepo,
		investmentRepo:       investmentRepo,
		pricer:               pricer,
		rejectOverRedemption: rejectOverRedemption,
	}
}

// RecordInvestment prices the product at the transaction date, freezes price
// and shares, and appends the ledger entry. Pricing plus persistence is one
// logical step: if the append fails nothing is written, and the frozen values
// are never recomputed afterwards.
func (s *InvestmentService) RecordInvestment(ctx context.Context, investorID, productID int64, amount float64, date time.Time, typ models.InvestmentType) (*models.Investment, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if typ != models.Subscription && typ != models.Redemption {
		return nil, ErrInvalidInvestmentType
	}
	if _, err := s.investorRepo.GetByID(ctx, investorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownInvestor
		}
		return nil, err
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownProduct
		}
		return nil, err
	}

	price, err := s.pricer.ProductNavAsOf(ctx, productID, date)
	if err != nil {
		return nil, err
	}
	if price <= 0 {
		return nil, fmt.Errorf("resolved nav %f for product %d is not positive", price, productID)
	}
	shares := amount / price

	if typ == models.Redemption && s.rejectOverRedemption {
		held, err := s.netShares(ctx, investorID, productID)
		if err != nil {
			return nil, err
		}
		if held-shares < -shareTolerance {
			return nil, ErrInsufficientShares
		}
	}

	investment := &models.Investment{
		InvestorID: investorID,
		ProductID:  productID,
		Date:       date,
		Amount:     amount,
		Shares:     shares,
		NavAtTrade: price,
		Type:       typ,
	}
	if err := s.investmentRepo.Append(ctx, investment, nil); err != nil {
		return nil, err
	}
	return investment, nil
}

// shareTolerance absorbs float rounding when comparing share balances.
const shareTolerance = 1e-9

func (s *InvestmentService) netShares(ctx context.Context, investorID, productID int64) (float64, error) {
	investments, err := s.investmentRepo.List(ctx, repositories.InvestmentFilter{
		InvestorID: &investorID,
		ProductID:  &productID,
	})
	if err != nil {
		return 0, err
	}
	net := 0.0
	for _, inv := range investments {
		if inv.Type == models.Subscription {
			net += inv.Shares
		} else {
			net -= inv.Shares
		}
	}
	return net, nil
}

// Portfolio aggregates the investor's ledger into per-product positions
// valued as of today. Products whose net shares dropped to zero or below are
// omitted entirely.
func (s *InvestmentService) Portfolio(ctx context.Context, investorID int64) ([]schemas.HoldingView, error) {
	if _, err := s.investorRepo.GetByID(ctx, investorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownInvestor
		}
		return nil, err
	}

	investments, err := s.investmentRepo.List(ctx, repositories.InvestmentFilter{InvestorID: &investorID})
	if err != nil {
		return nil, err
	}

	type position struct {
		productName string
		netInvested float64
		netShares   float64
		count       int
	}
	positions := map[int64]*position{}
	for _, inv := range investments {
		pos, ok := positions[inv.ProductID]
		if !ok {
			pos = &position{productName: inv.ProductName}
			positions[inv.ProductID] = pos
		}
		if inv.Type == models.Subscription {
			pos.netInvested += inv.Amount
			pos.netShares += inv.Shares
		} else {
			pos.netInvested -= inv.Amount
			pos.netShares -= inv.Shares
		}
		pos.count++
	}

	productIDs := make([]int64, 0, len(positions))
	for id := range positions {
		productIDs = append(productIDs, id)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	today := utils.Today()
	holdings := []schemas.HoldingView{}
	for _, productID := range productIDs {
		pos := positions[productID]
		if pos.netShares <= 0 {
			continue
		}

		currentNav, err := s.pricer.ProductNavAsOf(ctx, productID, today)
		if err != nil {
			return nil, err
		}
		currentValue := pos.netShares * currentNav
		profitLoss := currentValue - pos.netInvested
		// Floor, not a generic else: with all capital redeemed but residual
		// shares left by rounding, a rate against a non-positive base is
		// meaningless, so it is pinned to zero.
		profitRate := 0.0
		if pos.netInvested > 0 {
			profitRate = profitLoss / pos.netInvested * 100
		}

		holdings = append(holdings, schemas.HoldingView{
			ProductID:        productID,
			ProductName:      pos.productName,
			NetInvested:      pos.netInvested,
			NetShares:        pos.netShares,
			CurrentNav:       currentNav,
			CurrentValue:     currentValue,
			ProfitLoss:       profitLoss,
			ProfitRate:       profitRate,
			TransactionCount: pos.count,
		})
	}
	return holdings, nil
}

func (s *InvestmentService) ListInvestments(ctx context.Context, filter repositories.InvestmentFilter) ([]models.InvestmentWithNames, error) {
	return s.investmentRepo.List(ctx, filter)
}
