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

type ProductsControllerI interface {
	CreateProduct(ctx context.Context, req *schemas.CreateProductRequest) (*schemas.ProductResponse, error)
	GetAllProducts(ctx context.Context) ([]*schemas.ProductResponse, error)
	GetProductByID(ctx context.Context, id int64) (*schemas.ProductResponse, error)
	SetWeights(ctx context.Context, productID int64, req *schemas.SetWeightsRequest) ([]*schemas.ProductWeightResponse, error)
	GetWeights(ctx context.Context, productID int64, asOf time.Time) ([]*schemas.ProductWeightResponse, error)
	GetProductNav(ctx context.Context, productID int64, date time.Time) (*schemas.ProductNavResponse, error)
	GetProductNavHistory(ctx context.Context, productID int64, from, to time.Time) (*schemas.ProductNavHistoryResponse, error)
}

type ProductsController struct {
	ProductRepo      repositories.ProductRepository
	ValuationService services.ValuationServiceI
}

func NewProductsController(productRepo repositories.ProductRepository, valuationService services.ValuationServiceI) *ProductsController {
	return &ProductsController{ProductRepo: productRepo, ValuationService: valuationService}
}

func (c *ProductsController) CreateProduct(ctx context.Context, req *schemas.CreateProductRequest) (*schemas.ProductResponse, error) {
	if req.Name == "" {
		return nil, utils.BadRequest("product name is required")
	}
	product := &models.Product{Name: req.Name, Description: req.Description}
	if err := c.ProductRepo.Create(ctx, product, nil); err != nil {
		return nil, mapServiceError(err)
	}
	return productToResponse(product), nil
}

func (c *ProductsController) GetAllProducts(ctx context.Context) ([]*schemas.ProductResponse, error) {
	products, err := c.ProductRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*schemas.ProductResponse, len(products))
	for i := range products {
		responses[i] = productToResponse(&products[i])
	}
	return responses, nil
}

func (c *ProductsController) GetProductByID(ctx context.Context, id int64) (*schemas.ProductResponse, error) {
	product, err := c.ProductRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return productToResponse(product), nil
}

func (c *ProductsController) SetWeights(ctx context.Context, productID int64, req *schemas.SetWeightsRequest) ([]*schemas.ProductWeightResponse, error) {
	effectiveDate, err := utils.ParseDate(req.EffectiveDate)
	if err != nil {
		return nil, utils.UnprocessableEntity(err.Error())
	}
	if len(req.Weights) == 0 {
		return nil, utils.BadRequest("weights batch is empty")
	}

	written, err := c.ValuationService.SetWeights(ctx, productID, effectiveDate, req.Weights)
	if err != nil {
		return nil, mapServiceError(err)
	}
	responses := make([]*schemas.ProductWeightResponse, len(written))
	for i, w := range written {
		responses[i] = &schemas.ProductWeightResponse{
			StrategyID:    w.StrategyID,
			Weight:        w.Weight,
			EffectiveDate: utils.FormatDate(w.EffectiveDate),
		}
	}
	return responses, nil
}

func (c *ProductsController) GetWeights(ctx context.Context, productID int64, asOf time.Time) ([]*schemas.ProductWeightResponse, error) {
	weights, err := c.ValuationService.GetWeights(ctx, productID, asOf)
	if err != nil {
		return nil, mapServiceError(err)
	}
	responses := make([]*schemas.ProductWeightResponse, len(weights))
	for i, w := range weights {
		responses[i] = &schemas.ProductWeightResponse{
			StrategyID:    w.StrategyID,
			StrategyName:  w.StrategyName,
			Weight:        w.Weight,
			EffectiveDate: utils.FormatDate(w.EffectiveDate),
		}
	}
	return responses, nil
}

func (c *ProductsController) GetProductNav(ctx context.Context, productID int64, date time.Time) (*schemas.ProductNavResponse, error) {
	nav, err := c.ValuationService.ProductNavAsOf(ctx, productID, date)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return &schemas.ProductNavResponse{
		ProductID: productID,
		Date:      utils.FormatDate(date),
		Nav:       nav,
	}, nil
}

func (c *ProductsController) GetProductNavHistory(ctx context.Context, productID int64, from, to time.Time) (*schemas.ProductNavHistoryResponse, error) {
	points, err := c.ValuationService.ProductNavHistory(ctx, productID, from, to)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return &schemas.ProductNavHistoryResponse{ProductID: productID, Points: points}, nil
}

func productToResponse(p *models.Product) *schemas.ProductResponse {
	return &schemas.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}
