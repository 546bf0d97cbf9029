package repositories

import (
	"context"
	"errors"

	"fundnav/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StrategyRepository interface {
	Create(ctx context.Context, s *models.Strategy, tx pgx.Tx) error
	GetByID(ctx context.Context, id int64) (*models.Strategy, error)
	GetAll(ctx context.Context) ([]models.Strategy, error)
}

type strategyRepo struct {
	db *pgxpool.Pool
}

func NewStrategyRepository(db *pgxpool.Pool) StrategyRepository {
	return &strategyRepo{db: db}
}

func (r *strategyRepo) Create(ctx context.Context, s *models.Strategy, tx pgx.Tx) error {
	query := `
		INSERT INTO strategies (name, description, start_date, initial_nav)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	var err error
	if tx != nil {
		err = tx.QueryRow(ctx, query, s.Name, s.Description, s.StartDate, s.InitialNav).
			Scan(&s.ID, &s.CreatedAt)
	} else {
		err = r.db.QueryRow(ctx, query, s.Name, s.Description, s.StartDate, s.InitialNav).
			Scan(&s.ID, &s.CreatedAt)
	}
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *strategyRepo) GetByID(ctx context.Context, id int64) (*models.Strategy, error) {
	var s models.Strategy
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, start_date, initial_nav, created_at
		FROM strategies WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Description, &s.StartDate, &s.InitialNav, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *strategyRepo) GetAll(ctx context.Context) ([]models.Strategy, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, start_date, initial_nav, created_at
		FROM strategies ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var strategies []models.Strategy
	for rows.Next() {
		var s models.Strategy
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.StartDate, &s.InitialNav, &s.CreatedAt); err != nil {
			return nil, err
		}
		strategies = append(strategies, s)
	}
	return strategies, rows.Err()
}
