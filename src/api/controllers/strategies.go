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

type StrategiesControllerI interface {
	CreateStrategy(ctx context.Context, req *schemas.CreateStrategyRequest) (*schemas.StrategyResponse, error)
	GetAllStrategies(ctx context.Context) ([]*schemas.StrategyResponse, error)
	GetStrategyByID(ctx context.Context, id int64) (*schemas.StrategyResponse, error)
	RecordNav(ctx context.Context, strategyID int64, req *schemas.RecordNavRequest) (*schemas.NavRecordResponse, error)
	GetNavRecords(ctx context.Context, filter repositories.NavRecordFilter) ([]*schemas.NavRecordResponse, error)
}

type StrategiesController struct {
	StrategyRepo repositories.StrategyRepository
	NavService   services.NavServiceI
}

func NewStrategiesController(strategyRepo repositories.StrategyRepository, navService services.NavServiceI) *StrategiesController {
	return &StrategiesController{StrategyRepo: strategyRepo, NavService: navService}
}

func (c *StrategiesController) CreateStrategy(ctx context.Context, req *schemas.CreateStrategyRequest) (*schemas.StrategyResponse, error) {
	if req.Name == "" {
		return nil, utils.BadRequest("strategy name is required")
	}

	startDate := utils.Today()
	if req.StartDate != "" {
		var err error
		startDate, err = utils.ParseDate(req.StartDate)
		if err != nil {
			return nil, utils.UnprocessableEntity(err.Error())
		}
	}
	initialNav := req.InitialNav
	if initialNav == 0 {
		initialNav = 1.0
	}
	if initialNav < 0 {
		return nil, utils.BadRequest("initial nav must be positive")
	}

	strategy := &models.Strategy{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   startDate,
		InitialNav:  initialNav,
	}
	if err := c.StrategyRepo.Create(ctx, strategy, nil); err != nil {
		return nil, mapServiceError(err)
	}
	return strategyToResponse(strategy), nil
}

func (c *StrategiesController) GetAllStrategies(ctx context.Context) ([]*schemas.StrategyResponse, error) {
	strategies, err := c.StrategyRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*schemas.StrategyResponse, len(strategies))
	for i := range strategies {
		responses[i] = strategyToResponse(&strategies[i])
	}
	return responses, nil
}

func (c *StrategiesController) GetStrategyByID(ctx context.Context, id int64) (*schemas.StrategyResponse, error) {
	strategy, err := c.StrategyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return strategyToResponse(strategy), nil
}

func (c *StrategiesController) RecordNav(ctx context.Context, strategyID int64, req *schemas.RecordNavRequest) (*schemas.NavRecordResponse, error) {
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, utils.UnprocessableEntity(err.Error())
	}

	record, err := c.NavService.RecordNav(ctx, strategyID, date, req.NavValue)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return &schemas.NavRecordResponse{
		ID:         record.ID,
		StrategyID: record.StrategyID,
		Date:       utils.FormatDate(record.Date),
		NavValue:   record.NavValue,
		ReturnRate: record.ReturnRate,
	}, nil
}

func (c *StrategiesController) GetNavRecords(ctx context.Context, filter repositories.NavRecordFilter) ([]*schemas.NavRecordResponse, error) {
	records, err := c.NavService.ListNavRecords(ctx, filter)
	if err != nil {
		return nil, mapServiceError(err)
	}
	responses := make([]*schemas.NavRecordResponse, len(records))
	for i, record := range records {
		responses[i] = &schemas.NavRecordResponse{
			ID:           record.ID,
			StrategyID:   record.StrategyID,
			StrategyName: record.StrategyName,
			Date:         utils.FormatDate(record.Date),
			NavValue:     record.NavValue,
			ReturnRate:   record.ReturnRate,
		}
	}
	return responses, nil
}

func strategyToResponse(s *models.Strategy) *schemas.StrategyResponse {
	return &schemas.StrategyResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		StartDate:   utils.FormatDate(s.StartDate),
		InitialNav:  s.InitialNav,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
	}
}
