package controllers

import (
	"context"
	"errors"

	"fundnav/src/repositories"
	"fundnav/src/services"
	"fundnav/src/utils"
)

type SnapshotControllerI interface {
	RunSnapshots(ctx context.Context) (int, error)
}

// SnapshotController prices every product as of today. Running it daily
// keeps the valuation cache warm and leaves a priced record in the logs.
type SnapshotController struct {
	productRepo repositories.ProductRepository
	valuation   services.ValuationServiceI
}

func NewSnapshotController(
	productRepo repositories.ProductRepository,
	valuation services.ValuationServiceI,
) *SnapshotController {
	return &SnapshotController{productRepo: productRepo, valuation: valuation}
}

// RunSnapshots returns the number of products priced. A failure on one
// product does not stop the run, the first error is reported at the end.
func (c *SnapshotController) RunSnapshots(ctx context.Context) (int, error) {
	logger := utils.LoggerFromContext(ctx)

	products, err := c.productRepo.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	today := utils.Today()
	priced := 0
	var firstErr error
	for _, product := range products {
		nav, err := c.valuation.ProductNavAsOf(ctx, product.ID, today)
		if err != nil {
			logger.WithError(err).WithField("productId", product.ID).
				Warn("snapshot pricing failed")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		priced++
		logger.WithField("productId", product.ID).
			WithField("date", utils.FormatDate(today)).
			WithField("nav", nav).
			Info("product snapshot priced")
	}

	if firstErr != nil {
		return priced, errors.Join(errors.New("snapshot run finished with errors"), firstErr)
	}
	return priced, nil
}

var _ SnapshotControllerI = (*SnapshotController)(nil)
