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

type NavRecordStore struct {
	client *Client
}

func NewNavRecordStore(client *Client) *NavRecordStore {
	return &NavRecordStore{client: client}
}

func (s *NavRecordStore) Upsert(ctx context.Context, record *models.NavRecord, _ pgx.Tx) error {
	body := []navRecordRow{{
		StrategyID: record.StrategyID,
		Date:       utils.FormatDate(record.Date),
		NavValue:   record.NavValue,
		ReturnRate: record.ReturnRate,
	}}
	var rows []navRecordRow
	if err := s.client.upsert(ctx, "nav_records", "strategy_id,date", body, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("rest store returned no row for upserted nav record")
	}
	written, err := rows[0].toModel()
	if err != nil {
		return err
	}
	*record = *written
	return nil
}

func (s *NavRecordStore) GetAt(ctx context.Context, strategyID int64, date time.Time) (*models.NavRecord, error) {
	params := url.Values{}
	params.Set("strategy_id", fmt.Sprintf("eq.%d", strategyID))
	params.Set("date", "eq."+utils.FormatDate(date))
	return s.getOne(ctx, params)
}

func (s *NavRecordStore) GetLatestAt(ctx context.Context, strategyID int64, date time.Time) (*models.NavRecord, error) {
	params := url.Values{}
	params.Set("strategy_id", fmt.Sprintf("eq.%d", strategyID))
	params.Set("date", "lte."+utils.FormatDate(date))
	params.Set("order", "date.desc")
	params.Set("limit", "1")
	return s.getOne(ctx, params)
}

func (s *NavRecordStore) GetLastBefore(ctx context.Context, strategyID int64, date time.Time) (*models.NavRecord, error) {
	params := url.Values{}
	params.Set("strategy_id", fmt.Sprintf("eq.%d", strategyID))
	params.Set("date", "lt."+utils.FormatDate(date))
	params.Set("order", "date.desc")
	params.Set("limit", "1")
	return s.getOne(ctx, params)
}

func (s *NavRecordStore) getOne(ctx context.Context, params url.Values) (*models.NavRecord, error) {
	var rows []navRecordRow
	if err := s.client.get(ctx, "nav_records", params, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, repositories.ErrNotFound
	}
	return rows[0].toModel()
}

func (s *NavRecordStore) List(ctx context.Context, filter repositories.NavRecordFilter) ([]models.NavRecordWithStrategy, error) {
	params := url.Values{}
	params.Set("select", "*,strategies(name)")
	params.Set("order", "date.asc")
	if filter.StrategyID != nil {
		params.Set("strategy_id", fmt.Sprintf("eq.%d", *filter.StrategyID))
	}
	if filter.StartDate != nil {
		params.Add("date", "gte."+utils.FormatDate(*filter.StartDate))
	}
	if filter.EndDate != nil {
		params.Add("date", "lte."+utils.FormatDate(*filter.EndDate))
	}

	var rows []navRecordRow
	if err := s.client.get(ctx, "nav_records", params, &rows); err != nil {
		return nil, err
	}
	records := make([]models.NavRecordWithStrategy, 0, len(rows))
	for _, row := range rows {
		record, err := row.toModel()
		if err != nil {
			return nil, err
		}
		withStrategy := models.NavRecordWithStrategy{NavRecord: *record}
		if row.Strategy != nil {
			withStrategy.StrategyName = row.Strategy.Name
		}
		records = append(records, withStrategy)
	}
	return records, nil
}

var _ repositories.NavRecordRepository = (*NavRecordStore)(nil)
