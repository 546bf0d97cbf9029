package controllers

import (
	"context"
	"time"

	"fundnav/src/models"
	"fundnav/src/repositories"
	"fundnav/src/schemas"
	"fundnav/src/services"
	"fundnav/src/utils"
)

type InvestmentsControllerI interface {
	CreateInvestor(ctx context.Context, req *schemas.CreateInvestorRequest) (*schemas.InvestorResponse, error)
	GetAllInvestors(ctx context.Context) ([]*schemas.InvestorResponse, error)
	RecordInvestment(ctx context.Context, req *schemas.RecordInvestmentRequest) (*schemas.InvestmentResponse, error)
	GetInvestments(ctx context.Context, filter repositories.InvestmentFilter) ([]*schemas.InvestmentResponse, error)
	GetPortfolio(ctx context.Context, investorID int64) ([]schemas.HoldingView, error)
}

type InvestmentsController struct {
	InvestorRepo      repositories.InvestorRepository
	InvestmentService services.InvestmentServiceI
}

func NewInvestmentsController(investorRepo repositories.InvestorRepository, investmentService services.InvestmentServiceI) *InvestmentsController {
	return &InvestmentsController{InvestorRepo: investorRepo, InvestmentService: investmentService}
}

func (c *InvestmentsController) CreateInvestor(ctx context.Context, req *schemas.CreateInvestorRequest) (*schemas.InvestorResponse, error) {
	if req.Name == "" {
		return nil, utils.BadRequest("investor name is required")
	}
	investor := &models.Investor{Name: req.Name, Contact: req.Contact}
	if err := c.InvestorRepo.Create(ctx, investor, nil); err != nil {
		return nil, err
	}
	return investorToResponse(investor), nil
}

func (c *InvestmentsController) GetAllInvestors(ctx context.Context) ([]*schemas.InvestorResponse, error) {
	investors, err := c.InvestorRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*schemas.InvestorResponse, len(investors))
	for i := range investors {
		responses[i] = investorToResponse(&investors[i])
	}
	return responses, nil
}

func (c *InvestmentsController) RecordInvestment(ctx context.Context, req *schemas.RecordInvestmentRequest) (*schemas.InvestmentResponse, error) {
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, utils.UnprocessableEntity(err.Error())
	}

	investment, err := c.InvestmentService.RecordInvestment(ctx,
		req.InvestorID, req.ProductID, req.Amount, date, models.InvestmentType(req.Type))
	if err != nil {
		return nil, mapServiceError(err)
	}
	return &schemas.InvestmentResponse{
		ID:         investment.ID,
		InvestorID: investment.InvestorID,
		ProductID:  investment.ProductID,
		Date:       utils.FormatDate(investment.Date),
		Amount:     investment.Amount,
		Shares:     investment.Shares,
		NavAtTrade: investment.NavAtTrade,
		Type:       string(investment.Type),
	}, nil
}

func (c *InvestmentsController) GetInvestments(ctx context.Context, filter repositories.InvestmentFilter) ([]*schemas.InvestmentResponse, error) {
	investments, err := c.InvestmentService.ListInvestments(ctx, filter)
	if err != nil {
		return nil, mapServiceError(err)
	}
	responses := make([]*schemas.InvestmentResponse, len(investments))
	for i, inv := range investments {
		responses[i] = &schemas.InvestmentResponse{
			ID:           inv.ID,
			InvestorID:   inv.InvestorID,
			InvestorName: inv.InvestorName,
			ProductID:    inv.ProductID,
			ProductName:  inv.ProductName,
			Date:         utils.FormatDate(inv.Date),
			Amount:       inv.Amount,
			Shares:       inv.Shares,
			NavAtTrade:   inv.NavAtTrade,
			Type:         string(inv.Type),
		}
	}
	return responses, nil
}

func (c *InvestmentsController) GetPortfolio(ctx context.Context, investorID int64) ([]schemas.HoldingView, error) {
	holdings, err := c.InvestmentService.Portfolio(ctx, investorID)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return holdings, nil
}

func investorToResponse(inv *models.Investor) *schemas.InvestorResponse {
	return &schemas.InvestorResponse{
		ID:        inv.ID,
		Name:      inv.Name,
		Contact:   inv.Contact,
		CreatedAt: inv.CreatedAt.Format(time.RFC3339),
	}
}
