package repositories

import (
	"context"
	"errors"

	"fundnav/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository interface {
	Create(ctx context.Context, p *models.Product, tx pgx.Tx) error
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
}

type productRepo struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, p *models.Product, tx pgx.Tx) error {
	query := `
		INSERT INTO products (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at`

	var err error
	if tx != nil {
		err = tx.QueryRow(ctx, query, p.Name, p.Description).Scan(&p.ID, &p.CreatedAt)
	} else {
		err = r.db.QueryRow(ctx, query, p.Name, p.Description).Scan(&p.ID, &p.CreatedAt)
	}
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) GetAll(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, created_at FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
