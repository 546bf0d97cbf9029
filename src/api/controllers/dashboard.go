package controllers

import (
	"context"

	"fundnav/src/repositories"
	"fundnav/src/schemas"
	"fundnav/src/services"
	"fundnav/src/utils"
)

type DashboardControllerI interface {
	GetDashboard(ctx context.Context) (*schemas.DashboardResponse, error)
}

type DashboardController struct {
	StrategyRepo     repositories.StrategyRepository
	ProductRepo      repositories.ProductRepository
	InvestorRepo     repositories.InvestorRepository
	InvestmentRepo   repositories.InvestmentRepository
	ValuationService services.ValuationServiceI
}

func NewDashboardController(
	strategyRepo repositories.StrategyRepository,
	productRepo repositories.ProductRepository,
	investorRepo repositories.InvestorRepository,
	investmentRepo repositories.InvestmentRepository,
	valuationService services.ValuationServiceI,
) *DashboardController {
	return &DashboardController{
		StrategyRepo:     strategyRepo,
		ProductRepo:      productRepo,
		InvestorRepo:     investorRepo,
		InvestmentRepo:   investmentRepo,
		ValuationService: valuationService,
	}
}

func (c *DashboardController) GetDashboard(ctx context.Context) (*schemas.DashboardResponse, error) {
	strategies, err := c.StrategyRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := c.ProductRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	investors, err := c.InvestorRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	investments, err := c.InvestmentRepo.List(ctx, repositories.InvestmentFilter{})
	if err != nil {
		return nil, err
	}

	today := utils.Today()
	productNavs := make([]schemas.ProductNavResponse, 0, len(products))
	for _, product := range products {
		nav, err := c.ValuationService.ProductNavAsOf(ctx, product.ID, today)
		if err != nil {
			return nil, mapServiceError(err)
		}
		productNavs = append(productNavs, schemas.ProductNavResponse{
			ProductID: product.ID,
			Date:      utils.FormatDate(today),
			Nav:       nav,
		})
	}

	return &schemas.DashboardResponse{
		StrategyCount:   len(strategies),
		ProductCount:    len(products),
		InvestorCount:   len(investors),
		InvestmentCount: len(investments),
		ProductNavs:     productNavs,
	}, nil
}
