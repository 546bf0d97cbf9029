package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fundnav/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NavRecordFilter struct {
	StrategyID *int64
	StartDate  *time.Time
	EndDate    *time.Time
}

type NavRecordRepository interface {
	// Upsert writes the observation for (strategy, date), replacing any
	// previous value for that date. Last write wins.
	Upsert(ctx context.Context, record *models.NavRecord, tx pgx.Tx) error
	// GetAt returns the observation for the exact date, or ErrNotFound.
	GetAt(ctx context.Context, strategyID int64, date time.Time) (*models.NavRecord, error)
	// GetLatestAt returns the latest observation with date <= the given date.
	GetLatestAt(ctx context.Context, strategyID int64, date time.Time) (*models.NavRecord, error)
	// GetLastBefore returns the latest observation with date < the given date.
	GetLastBefore(ctx context.Context, strategyID int64, date time.Time) (*models.NavRecord, error)
	List(ctx context.Context, filter NavRecordFilter) ([]models.NavRecordWithStrategy, error)
}

type navRecordRepo struct {
	db *pgxpool.Pool
}

func NewNavRecordRepository(db *pgxpool.Pool) NavRecordRepository {
	return &navRecordRepo{db: db}
}

func (r *navRecordRepo) Upsert(ctx context.Context, record *models.NavRecord, tx pgx.Tx) error {
	query := `
		INSERT INTO nav_records (strategy_id, date, nav_value, return_rate)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (strategy_id, date) DO UPDATE SET
			nav_value = EXCLUDED.nav_value,
			return_rate = EXCLUDED.return_rate
		RETURNING id, created_at`

	if tx != nil {
		return tx.QueryRow(ctx, query, record.StrategyID, record.Date, record.NavValue, record.ReturnRate).
			Scan(&record.ID, &record.CreatedAt)
	}
	return r.db.QueryRow(ctx, query, record.StrategyID, record.Date, record.NavValue, record.ReturnRate).
		Scan(&record.ID, &record.CreatedAt)
}

func (r *navRecordRepo) GetAt(ctx context.Context, strategyID int64, date time.Time) (*models.NavRecord, error) {
	return r.getOne(ctx,
		`SELECT id, strategy_id, date, nav_value, return_rate, created_at
		FROM nav_records WHERE strategy_id = $1 AND date = $2`,
		strategyID, date)
}

func (r *navRecordRepo) GetLatestAt(ctx context.Context, strategyID int64, date time.Time) (*models.NavRecord, error) {
	return r.getOne(ctx,
		`SELECT id, strategy_id, date, nav_value, return_rate, created_at
		FROM nav_records WHERE strategy_id = $1 AND date <= $2
		ORDER BY date DESC LIMIT 1`,
		strategyID, date)
}

func (r *navRecordRepo) GetLastBefore(ctx context.Context, strategyID int64, date time.Time) (*models.NavRecord, error) {
	return r.getOne(ctx,
		`SELECT id, strategy_id, date, nav_value, return_rate, created_at
		FROM nav_records WHERE strategy_id = $1 AND date < $2
		ORDER BY date DESC LIMIT 1`,
		strategyID, date)
}

func (r *navRecordRepo) getOne(ctx context.Context, query string, args ...interface{}) (*models.NavRecord, error) {
	var record models.NavRecord
	err := r.db.QueryRow(ctx, query, args...).
		Scan(&record.ID, &record.StrategyID, &record.Date, &record.NavValue, &record.ReturnRate, &record.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *navRecordRepo) List(ctx context.Context, filter NavRecordFilter) ([]models.NavRecordWithStrategy, error) {
	query := `
		SELECT nr.id, nr.strategy_id, nr.date, nr.nav_value, nr.return_rate, nr.created_at, s.name AS strategy_name
		FROM nav_records nr
		JOIN strategies s ON nr.strategy_id = s.id`

	var conditions []string
	var args []interface{}

	if filter.StrategyID != nil {
		args = append(args, *filter.StrategyID)
		conditions = append(conditions, fmt.Sprintf("nr.strategy_id = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("nr.date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("nr.date <= $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.db.Query(ctx, query+" ORDER BY nr.date", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.NavRecordWithStrategy
	for rows.Next() {
		var record models.NavRecordWithStrategy
		if err := rows.Scan(&record.ID, &record.StrategyID, &record.Date, &record.NavValue,
			&record.ReturnRate, &record.CreatedAt, &record.StrategyName); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
