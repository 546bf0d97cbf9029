package reststore

import (
	"context"
	"fmt"
	"net/url"

	"fundnav/src/models"
	"fundnav/src/repositories"

	"github.com/jackc/pgx/v5"
)

type InvestorStore struct {
	client *Client
}

func NewInvestorStore(client *Client) *InvestorStore {
	return &InvestorStore{client: client}
}

func (s *InvestorStore) Create(ctx context.Context, investor *models.Investor, _ pgx.Tx) error {
	body := []investorRow{{
		Name:    investor.Name,
		Contact: investor.Contact,
	}}
	var rows []investorRow
	if err := s.client.insert(ctx, "investors", body, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("rest store returned no row for created investor")
	}
	*investor = *rows[0].toModel()
	return nil
}

func (s *InvestorStore) GetByID(ctx context.Context, id int64) (*models.Investor, error) {
	params := url.Values{}
	params.Set("id", fmt.Sprintf("eq.%d", id))

	var rows []investorRow
	if err := s.client.get(ctx, "investors", params, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, repositories.ErrNotFound
	}
	return rows[0].toModel(), nil
}

func (s *InvestorStore) GetAll(ctx context.Context) ([]models.Investor, error) {
	params := url.Values{}
	params.Set("order", "created_at.asc")

	var rows []investorRow
	if err := s.client.get(ctx, "investors", params, &rows); err != nil {
		return nil, err
	}
	investors := make([]models.Investor, 0, len(rows))
	for _, row := range rows {
		investors = append(investors, *row.toModel())
	}
	return investors, nil
}

var _ repositories.InvestorRepository = (*InvestorStore)(nil)
