package models

import "time"

type InvestmentType string

const (
	Subscription InvestmentType = "subscription"
	Redemption   InvestmentType = "redemption"
)

// Investment is one ledger entry for an investor/product pair. Amount is
// always positive; direction is carried by Type only. Shares and NavAtTrade
// are frozen at creation and never recomputed, even if NAV history or weight
// schedules are edited later.
type Investment struct {
	ID         int64          `db:"id"`
	InvestorID int64          `db:"investor_id"`
	ProductID  int64          `db:"product_id"`
	Date       time.Time      `db:"date"`
	Amount     float64        `db:"amount"`
	Shares     float64        `db:"shares"`
	NavAtTrade float64        `db:"nav_at_trade"`
	Type       InvestmentType `db:"type"`
	CreatedAt  time.Time      `db:"created_at"`
}

// InvestmentWithNames joins investor and product names for listings.
type InvestmentWithNames struct {
	Investment
	InvestorName string `db:"investor_name"`
	ProductName  string `db:"product_name"`
}
