package controllers

import (
	"errors"

	"fundnav/src/repositories"
	"fundnav/src/services"
	"fundnav/src/utils"
)

// mapServiceError translates domain errors into HTTP errors. Storage
// failures pass through untouched and surface as 500s; the API layer never
// retries them.
func mapServiceError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, services.ErrUnknownStrategy),
		errors.Is(err, services.ErrUnknownProduct),
		errors.Is(err, services.ErrUnknownInvestor),
		errors.Is(err, repositories.ErrNotFound):
		return utils.NotFound(err.Error())
	case errors.Is(err, services.ErrInvalidNav),
		errors.Is(err, services.ErrInvalidWeight),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidInvestmentType):
		return utils.BadRequest(err.Error())
	case errors.Is(err, services.ErrInsufficientShares):
		return utils.UnprocessableEntity(err.Error())
	case errors.Is(err, repositories.ErrDuplicate):
		return utils.Conflict(err.Error())
	default:
		return err
	}
}
