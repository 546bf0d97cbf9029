package models

import "time"

// ProductWeight is one entry in a product's versioned weight schedule.
// Entries are never updated in place; changing an allocation means inserting
// a new entry with a later effective date.
type ProductWeight struct {
	ID            int64     `db:"id"`
	ProductID     int64     `db:"product_id"`
	StrategyID    int64     `db:"strategy_id"`
	Weight        float64   `db:"weight"`
	EffectiveDate time.Time `db:"effective_date"`
	CreatedAt     time.Time `db:"created_at"`
}

// ProductWeightWithStrategy joins the strategy name for display listings.
type ProductWeightWithStrategy struct {
	ProductWeight
	StrategyName string `db:"strategy_name"`
}
