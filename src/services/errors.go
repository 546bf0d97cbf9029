package services

import "errors"

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrUnknownProduct  = errors.New("unknown product")
	ErrUnknownInvestor = errors.New("unknown investor")

	ErrInvalidNav            = errors.New("nav value must be positive")
	ErrInvalidWeight         = errors.New("weight must be between 0 and 1")
	ErrInvalidAmount         = errors.New("amount must be strictly positive")
	ErrInvalidInvestmentType = errors.New("type must be subscription or redemption")

	// ErrInsufficientShares is only returned when the over-redemption policy
	// is enabled; by default redemptions are not checked against the balance.
	ErrInsufficientShares = errors.New("redemption exceeds held shares")
)
