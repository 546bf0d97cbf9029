package repositories

import (
	"context"
	"time"

	"fundnav/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WeightRepository interface {
	// Upsert writes a schedule entry. Re-submitting the same
	// (product, strategy, effective date) replaces the previous weight,
	// so duplicates collapse to last write wins.
	Upsert(ctx context.Context, w *models.ProductWeight, tx pgx.Tx) error
	// GetActiveWeights resolves the schedule as of a date: for each strategy
	// with any entry effective on or before asOf, the entry with the greatest
	// effective date (greatest id on ties). Strategies with no such entry are
	// absent from the result, not zero-weighted.
	GetActiveWeights(ctx context.Context, productID int64, asOf time.Time) ([]models.ProductWeightWithStrategy, error)
	ListByProduct(ctx context.Context, productID int64) ([]models.ProductWeightWithStrategy, error)
	// GetBatch returns all entries of a product sharing one effective date.
	GetBatch(ctx context.Context, productID int64, effectiveDate time.Time) ([]models.ProductWeight, error)
	// GetProductIDsByStrategy lists the products whose schedule references a
	// strategy, used to invalidate cached valuations on NAV writes.
	GetProductIDsByStrategy(ctx context.Context, strategyID int64) ([]int64, error)
}

type weightRepo struct {
	db *pgxpool.Pool
}

func NewWeightRepository(db *pgxpool.Pool) WeightRepository {
	return &weightRepo{db: db}
}

func (r *weightRepo) Upsert(ctx context.Context, w *models.ProductWeight, tx pgx.Tx) error {
	query := `
		INSERT INTO product_strategy_weights (product_id, strategy_id, weight, effective_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, strategy_id, effective_date) DO UPDATE SET
			weight = EXCLUDED.weight
		RETURNING id, created_at`

	if tx != nil {
		return tx.QueryRow(ctx, query, w.ProductID, w.StrategyID, w.Weight, w.EffectiveDate).
			Scan(&w.ID, &w.CreatedAt)
	}
	return r.db.QueryRow(ctx, query, w.ProductID, w.StrategyID, w.Weight, w.EffectiveDate).
		Scan(&w.ID, &w.CreatedAt)
}

func (r *weightRepo) GetActiveWeights(ctx context.Context, productID int64, asOf time.Time) ([]models.ProductWeightWithStrategy, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT ON (pw.strategy_id)
			pw.id, pw.product_id, pw.strategy_id, pw.weight, pw.effective_date, pw.created_at,
			s.name AS strategy_name
		FROM product_strategy_weights pw
		JOIN strategies s ON pw.strategy_id = s.id
		WHERE pw.product_id = $1 AND pw.effective_date <= $2
		ORDER BY pw.strategy_id, pw.effective_date DESC, pw.id DESC`,
		productID, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWeightsWithStrategy(rows)
}

func (r *weightRepo) ListByProduct(ctx context.Context, productID int64) ([]models.ProductWeightWithStrategy, error) {
	rows, err := r.db.Query(ctx,
		`SELECT pw.id, pw.product_id, pw.strategy_id, pw.weight, pw.effective_date, pw.created_at,
			s.name AS strategy_name
		FROM product_strategy_weights pw
		JOIN strategies s ON pw.strategy_id = s.id
		WHERE pw.product_id = $1
		ORDER BY pw.effective_date DESC, pw.strategy_id`,
		productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWeightsWithStrategy(rows)
}

func (r *weightRepo) GetBatch(ctx context.Context, productID int64, effectiveDate time.Time) ([]models.ProductWeight, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, product_id, strategy_id, weight, effective_date, created_at
		FROM product_strategy_weights
		WHERE product_id = $1 AND effective_date = $2
		ORDER BY strategy_id`,
		productID, effectiveDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var weights []models.ProductWeight
	for rows.Next() {
		var w models.ProductWeight
		if err := rows.Scan(&w.ID, &w.ProductID, &w.StrategyID, &w.Weight, &w.EffectiveDate, &w.CreatedAt); err != nil {
			return nil, err
		}
		weights = append(weights, w)
	}
	return weights, rows.Err()
}

func (r *weightRepo) GetProductIDsByStrategy(ctx context.Context, strategyID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT product_id FROM product_strategy_weights WHERE strategy_id = $1`,
		strategyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanWeightsWithStrategy(rows pgx.Rows) ([]models.ProductWeightWithStrategy, error) {
	var weights []models.ProductWeightWithStrategy
	for rows.Next() {
		var w models.ProductWeightWithStrategy
		if err := rows.Scan(&w.ID, &w.ProductID, &w.StrategyID, &w.Weight, &w.EffectiveDate, &w.CreatedAt, &w.StrategyName); err != nil {
			return nil, err
		}
		weights = append(weights, w)
	}
	return weights, rows.Err()
}
