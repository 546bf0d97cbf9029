package repositories

import (
	"context"
	"fmt"
	"strings"

	"fundnav/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvestmentFilter struct {
	InvestorID *int64
	ProductID  *int64
}

type InvestmentRepository interface {
	// Append inserts a new ledger entry. The ledger is append-only: rows are
	// never updated or deleted, corrections are offsetting entries.
	Append(ctx context.Context, inv *models.Investment, tx pgx.Tx) error
	List(ctx context.Context, filter InvestmentFilter) ([]models.InvestmentWithNames, error)
}

type investmentRepo struct {
	db *pgxpool.Pool
}

func NewInvestmentRepository(db *pgxpool.Pool) InvestmentRepository {
	return &investmentRepo{db: db}
}

func (r *investmentRepo) Append(ctx context.Context, inv *models.Investment, tx pgx.Tx) error {
	query := `
		INSERT INTO investments (investor_id, product_id, date, amount, shares, nav_at_trade, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	if tx != nil {
		return tx.QueryRow(ctx, query,
			inv.InvestorID, inv.ProductID, inv.Date, inv.Amount, inv.Shares, inv.NavAtTrade, inv.Type).
			Scan(&inv.ID, &inv.CreatedAt)
	}
	return r.db.QueryRow(ctx, query,
		inv.InvestorID, inv.ProductID, inv.Date, inv.Amount, inv.Shares, inv.NavAtTrade, inv.Type).
		Scan(&inv.ID, &inv.CreatedAt)
}

func (r *investmentRepo) List(ctx context.Context, filter InvestmentFilter) ([]models.InvestmentWithNames, error) {
	query := `
		SELECT i.id, i.investor_id, i.product_id, i.date, i.amount, i.shares, i.nav_at_trade, i.type, i.created_at,
			inv.name AS investor_name, p.name AS product_name
		FROM investments i
		JOIN investors inv ON i.investor_id = inv.id
		JOIN products p ON i.product_id = p.id`

	var conditions []string
	var args []interface{}

	if filter.InvestorID != nil {
		args = append(args, *filter.InvestorID)
		conditions = append(conditions, fmt.Sprintf("i.investor_id = $%d", len(args)))
	}
	if filter.ProductID != nil {
		args = append(args, *filter.ProductID)
		conditions = append(conditions, fmt.Sprintf("i.product_id = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.db.Query(ctx, query+" ORDER BY i.date DESC, i.id DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var investments []models.InvestmentWithNames
	for rows.Next() {
		var inv models.InvestmentWithNames
		if err := rows.Scan(&inv.ID, &inv.InvestorID, &inv.ProductID, &inv.Date, &inv.Amount,
			&inv.Shares, &inv.NavAtTrade, &inv.Type, &inv.CreatedAt,
			&inv.InvestorName, &inv.ProductName); err != nil {
			return nil, err
		}
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}
