package repositories

import (
	"context"
	"errors"

	"fundnav/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvestorRepository interface {
	Create(ctx context.Context, inv *models.Investor, tx pgx.Tx) error
	GetByID(ctx context.Context, id int64) (*models.Investor, error)
	GetAll(ctx context.Context) ([]models.Investor, error)
}

type investorRepo struct {
	db *pgxpool.Pool
}

func NewInvestorRepository(db *pgxpool.Pool) InvestorRepository {
	return &investorRepo{db: db}
}

func (r *investorRepo) Create(ctx context.Context, inv *models.Investor, tx pgx.Tx) error {
	query := `
		INSERT INTO investors (name, contact)
		VALUES ($1, $2)
		RETURNING id, created_at`

	if tx != nil {
		return tx.QueryRow(ctx, query, inv.Name, inv.Contact).Scan(&inv.ID, &inv.CreatedAt)
	}
	return r.db.QueryRow(ctx, query, inv.Name, inv.Contact).Scan(&inv.ID, &inv.CreatedAt)
}

func (r *investorRepo) GetByID(ctx context.Context, id int64) (*models.Investor, error) {
	var inv models.Investor
	err := r.db.QueryRow(ctx,
		`SELECT id, name, contact, created_at FROM investors WHERE id = $1`, id).
		Scan(&inv.ID, &inv.Name, &inv.Contact, &inv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *investorRepo) GetAll(ctx context.Context) ([]models.Investor, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, contact, created_at FROM investors ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var investors []models.Investor
	for rows.Next() {
		var inv models.Investor
		if err := rows.Scan(&inv.ID, &inv.Name, &inv.Contact, &inv.CreatedAt); err != nil {
			return nil, err
		}
		investors = append(investors, inv)
	}
	return investors, rows.Err()
}
