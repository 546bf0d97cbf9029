package reststore

import (
	"time"

	"fundnav/src/models"
	"fundnav/src/utils"
)

// Row schemas for the remote store. Dates are wire strings (YYYY-MM-DD) and
// are converted to time.Time only after crossing back into the process.

type nameRef struct {
	Name string `json:"name"`
}

type strategyRow struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date"`
	InitialNav  float64 `json:"initial_nav"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

type navRecordRow struct {
	ID         int64    `json:"id,omitempty"`
	StrategyID int64    `json:"strategy_id"`
	Date       string   `json:"date"`
	NavValue   float64  `json:"nav_value"`
	ReturnRate *float64 `json:"return_rate"`
	CreatedAt  string   `json:"created_at,omitempty"`
	Strategy   *nameRef `json:"strategies,omitempty"`
}

type weightRow struct {
	ID            int64    `json:"id,omitempty"`
	ProductID     int64    `json:"product_id"`
	StrategyID    int64    `json:"strategy_id"`
	Weight        float64  `json:"weight"`
	EffectiveDate string   `json:"effective_date"`
	CreatedAt     string   `json:"created_at,omitempty"`
	Strategy      *nameRef `json:"strategies,omitempty"`
}

type productRow struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type investorRow struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	CreatedAt string `json:"created_at,omitempty"`
}

type investmentRow struct {
	ID         int64    `json:"id,omitempty"`
	InvestorID int64    `json:"investor_id"`
	ProductID  int64    `json:"product_id"`
	Date       string   `json:"date"`
	Amount     float64  `json:"amount"`
	Shares     float64  `json:"shares"`
	NavAtTrade float64  `json:"nav_at_trade"`
	Type       string   `json:"type"`
	CreatedAt  string   `json:"created_at,omitempty"`
	Investor   *nameRef `json:"investors,omitempty"`
	Product    *nameRef `json:"products,omitempty"`
}

func parseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func (row strategyRow) toModel() (*models.Strategy, error) {
	startDate, err := utils.ParseDate(row.StartDate)
	if err != nil {
		return nil, err
	}
	return &models.Strategy{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		StartDate:   startDate,
		InitialNav:  row.InitialNav,
		CreatedAt:   parseTimestamp(row.CreatedAt),
	}, nil
}

func (row navRecordRow) toModel() (*models.NavRecord, error) {
	date, err := utils.ParseDate(row.Date)
	if err != nil {
		return nil, err
	}
	return &models.NavRecord{
		ID:         row.ID,
		StrategyID: row.StrategyID,
		Date:       date,
		NavValue:   row.NavValue,
		ReturnRate: row.ReturnRate,
		CreatedAt:  parseTimestamp(row.CreatedAt),
	}, nil
}

func (row weightRow) toModel() (*models.ProductWeight, error) {
	effectiveDate, err := utils.ParseDate(row.EffectiveDate)
	if err != nil {
		return nil, err
	}
	return &models.ProductWeight{
		ID:            row.ID,
		ProductID:     row.ProductID,
		StrategyID:    row.StrategyID,
		Weight:        row.Weight,
		EffectiveDate: effectiveDate,
		CreatedAt:     parseTimestamp(row.CreatedAt),
	}, nil
}

func (row productRow) toModel() *models.Product {
	return &models.Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		CreatedAt:   parseTimestamp(row.CreatedAt),
	}
}

func (row investorRow) toModel() *models.Investor {
	return &models.Investor{
		ID:        row.ID,
		Name:      row.Name,
		Contact:   row.Contact,
		CreatedAt: parseTimestamp(row.CreatedAt),
	}
}

func (row investmentRow) toModel() (*models.Investment, error) {
	date, err := utils.ParseDate(row.Date)
	if err != nil {
		return nil, err
	}
	return &models.Investment{
		ID:         row.ID,
		InvestorID: row.InvestorID,
		ProductID:  row.ProductID,
		Date:       date,
		Amount:     row.Amount,
		Shares:     row.Shares,
		NavAtTrade: row.NavAtTrade,
		Type:       models.InvestmentType(row.Type),
		CreatedAt:  parseTimestamp(row.CreatedAt),
	}, nil
}
