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

// The remote store has no client-side transactions; the tx parameter of the
// repository interfaces is ignored by every store in this package.

type StrategyStore struct {
	client *Client
}

func NewStrategyStore(client *Client) *StrategyStore {
	return &StrategyStore{client: client}
}

func (s *StrategyStore) Create(ctx context.Context, strategy *models.Strategy, _ pgx.Tx) error {
	body := []strategyRow{{
		Name:        strategy.Name,
		Description: strategy.Description,
		StartDate:   utils.FormatDate(strategy.StartDate),
		InitialNav:  strategy.InitialNav,
	}}
	var rows []strategyRow
	if err := s.client.insert(ctx, "strategies", body, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("rest store returned no row for created strategy")
	}
	created, err := rows[0].toModel()
	if err != nil {
		return err
	}
	*strategy = *created
	return nil
}

func (s *StrategyStore) GetByID(ctx context.Context, id int64) (*models.Strategy, error) {
	params := url.Values{}
	params.Set("id", fmt.Sprintf("eq.%d", id))

	var rows []strategyRow
	if err := s.client.get(ctx, "strategies", params, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, repositories.ErrNotFound
	}
	return rows[0].toModel()
}

func (s *StrategyStore) GetAll(ctx context.Context) ([]models.Strategy, error) {
	params := url.Values{}
	params.Set("order", "created_at.asc")

	var rows []strategyRow
	if err := s.client.get(ctx, "strategies", params, &rows); err != nil {
		return nil, err
	}
	strategies := make([]models.Strategy, 0, len(rows))
	for _, row := range rows {
		strategy, err := row.toModel()
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, *strategy)
	}
	return strategies, nil
}

var _ repositories.StrategyRepository = (*StrategyStore)(nil)
