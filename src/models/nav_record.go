package models

import "time"

// NavRecord is one NAV observation for a strategy. At most one row exists per
// (strategy, date); writes for an existing date replace the previous value.
type NavRecord struct {
	ID         int64     `db:"id"`
	StrategyID int64     `db:"strategy_id"`
	Date       time.Time `db:"date"`
	NavValue   float64   `db:"nav_value"`
	// ReturnRate is the percent change against the latest observation strictly
	// before Date. Nil when no earlier observation exists; never zero-filled.
	ReturnRate *float64  `db:"return_rate"`
	CreatedAt  time.Time `db:"created_at"`
}

// NavRecordWithStrategy joins the strategy name for listings.
type NavRecordWithStrategy struct {
	NavRecord
	StrategyName string `db:"strategy_name"`
}
