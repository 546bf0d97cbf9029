package reststore

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"fundnav/src/models"
	"fundnav/src/repositories"
	"fundnav/src/utils"

	"github.com/jackc/pgx/v5"
)

type WeightStore struct {
	client *Client
}

func NewWeightStore(client *Client) *WeightStore {
	return &WeightStore{client: client}
}

func (s *WeightStore) Upsert(ctx context.Context, weight *models.ProductWeight, _ pgx.Tx) error {
	body := []weightRow{{
		ProductID:     weight.ProductID,
		StrategyID:    weight.StrategyID,
		Weight:        weight.Weight,
		EffectiveDate: utils.FormatDate(weight.EffectiveDate),
	}}
	var rows []weightRow
	if err := s.client.upsert(ctx, "product_strategy_weights", "product_id,strategy_id,effective_date", body, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("rest store returned no row for upserted weight")
	}
	written, err := rows[0].toModel()
	if err != nil {
		return err
	}
	*weight = *written
	return nil
}

// GetActiveWeights fetches every candidate entry ordered newest-first and
// keeps the first row per strategy, the same resolution the SQL store does
// with DISTINCT ON.
func (s *WeightStore) GetActiveWeights(ctx context.Context, productID int64, asOf time.Time) ([]models.ProductWeightWithStrategy, error) {
	params := url.Values{}
	params.Set("select", "*,strategies(name)")
	params.Set("product_id", fmt.Sprintf("eq.%d", productID))
	params.Set("effective_date", "lte."+utils.FormatDate(asOf))
	params.Set("order", "strategy_id.asc,effective_date.desc,id.desc")

	rows, err := s.list(ctx, params)
	if err != nil {
		return nil, err
	}

	var active []models.ProductWeightWithStrategy
	seen := map[int64]bool{}
	for _, w := range rows {
		if seen[w.StrategyID] {
			continue
		}
		seen[w.StrategyID] = true
		active = append(active, w)
	}
	return active, nil
}

func (s *WeightStore) ListByProduct(ctx context.Context, productID int64) ([]models.ProductWeightWithStrategy, error) {
	params := url.Values{}
	params.Set("select", "*,strategies(name)")
	params.Set("product_id", fmt.Sprintf("eq.%d", productID))
	params.Set("order", "effective_date.desc,strategy_id.asc")
	return s.list(ctx, params)
}

func (s *WeightStore) GetBatch(ctx context.Context, productID int64, effectiveDate time.Time) ([]models.ProductWeight, error) {
	params := url.Values{}
	params.Set("product_id", fmt.Sprintf("eq.%d", productID))
	params.Set("effective_date", "eq."+utils.FormatDate(effectiveDate))
	params.Set("order", "strategy_id.asc")

	var rows []weightRow
	if err := s.client.get(ctx, "product_strategy_weights", params, &rows); err != nil {
		return nil, err
	}
	weights := make([]models.ProductWeight, 0, len(rows))
	for _, row := range rows {
		weight, err := row.toModel()
		if err != nil {
			return nil, err
		}
		weights = append(weights, *weight)
	}
	return weights, nil
}

func (s *WeightStore) GetProductIDsByStrategy(ctx context.Context, strategyID int64) ([]int64, error) {
	params := url.Values{}
	params.Set("select", "product_id")
	params.Set("strategy_id", fmt.Sprintf("eq.%d", strategyID))

	var rows []struct {
		ProductID int64 `json:"product_id"`
	}
	if err := s.client.get(ctx, "product_strategy_weights", params, &rows); err != nil {
		return nil, err
	}

	var ids []int64
	seen := map[int64]bool{}
	for _, row := range rows {
		if seen[row.ProductID] {
			continue
		}
		seen[row.ProductID] = true
		ids = append(ids, row.ProductID)
	}
	return ids, nil
}

func (s *WeightStore) list(ctx context.Context, params url.Values) ([]models.ProductWeightWithStrategy, error) {
	var rows []weightRow
	if err := s.client.get(ctx, "product_strategy_weights", params, &rows); err != nil {
		return nil, err
	}
	weights := make([]models.ProductWeightWithStrategy, 0, len(rows))
	for _, row := range rows {
		weight, err := row.toModel()
		if err != nil {
			return nil, err
		}
		withStrategy := models.ProductWeightWithStrategy{ProductWeight: *weight}
		if row.Strategy != nil {
			withStrategy.StrategyName = row.Strategy.Name
		}
		weights = append(weights, withStrategy)
	}
	return weights, nil
}

var _ repositories.WeightRepository = (*WeightStore)(nil)
