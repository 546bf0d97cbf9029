package reststore

import (
	"context"
	"fmt"
	"net/url"

	"fundnav/src/models"
	"fundnav/src/repositories"
	"fundnav/src/utils"

	"github.com/jackc/pgx/v5"
)

type InvestmentStore struct {
	client *Client
}

func NewInvestmentStore(client *Client) *InvestmentStore {
	return &InvestmentStore{client: client}
}

func (s *InvestmentStore) Append(ctx context.Context, investment *models.Investment, _ pgx.Tx) error {
	body := []investmentRow{{
		InvestorID: investment.InvestorID,
		ProductID:  investment.ProductID,
		Date:       utils.FormatDate(investment.Date),
		Amount:     investment.Amount,
		Shares:     investment.Shares,
		NavAtTrade: investment.NavAtTrade,
		Type:       string(investment.Type),
	}}
	var rows []investmentRow
	if err := s.client.insert(ctx, "investments", body, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("rest store returned no row for appended investment")
	}
	written, err := rows[0].toModel()
	if err != nil {
		return err
	}
	*investment = *written
	return nil
}

func (s *InvestmentStore) List(ctx context.Context, filter repositories.InvestmentFilter) ([]models.InvestmentWithNames, error) {
	params := url.Values{}
	params.Set("select", "*,investors(name),products(name)")
	if filter.InvestorID != nil {
		params.Set("investor_id", fmt.Sprintf("eq.%d", *filter.InvestorID))
	}
	if filter.ProductID != nil {
		params.Set("product_id", fmt.Sprintf("eq.%d", *filter.ProductID))
	}
	params.Set("order", "date.desc,id.desc")

	var rows []investmentRow
	if err := s.client.get(ctx, "investments", params, &rows); err != nil {
		return nil, err
	}
	investments := make([]models.InvestmentWithNames, 0, len(rows))
	for _, row := range rows {
		investment, err := row.toModel()
		if err != nil {
			return nil, err
		}
		withNames := models.InvestmentWithNames{Investment: *investment}
		if row.Investor != nil {
			withNames.InvestorName = row.Investor.Name
		}
		if row.Product != nil {
			withNames.ProductName = row.Product.Name
		}
		investments = append(investments, withNames)
	}
	return investments, nil
}

var _ repositories.InvestmentRepository = (*InvestmentStore)(nil)
