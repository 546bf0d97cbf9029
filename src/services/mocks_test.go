package services_test

import (
	"context"
	"sort"
	"time"

	"fundnav/src/models"
	"fundnav/src/repositories"

	"github.com/jackc/pgx/v5"
)

// In-memory repositories reproducing the store contracts: upsert keyed on the
// unique columns, as-of lookups resolved by max date, ErrNotFound on misses.

type mockStrategyRepo struct {
	items  map[int64]models.Strategy
	nextID int64
}

func newMockStrategyRepo() *mockStrategyRepo {
	return &mockStrategyRepo{items: map[int64]models.Strategy{}}
}

func (r *mockStrategyRepo) Create(_ context.Context, s *models.Strategy, _ pgx.Tx) error {
	r.nextID++
	s.ID = r.nextID
	s.CreatedAt = time.Now()
	r.items[s.ID] = *s
	return nil
}

func (r *mockStrategyRepo) GetByID(_ context.Context, id int64) (*models.Strategy, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &s, nil
}

func (r *mockStrategyRepo) GetAll(_ context.Context) ([]models.Strategy, error) {
	out := make([]models.Strategy, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type mockProductRepo struct {
	items  map[int64]models.Product
	nextID int64
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{items: map[int64]models.Product{}}
}

func (r *mockProductRepo) Create(_ context.Context, p *models.Product, _ pgx.Tx) error {
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	r.items[p.ID] = *p
	return nil
}

func (r *mockProductRepo) GetByID(_ context.Context, id int64) (*models.Product, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (r *mockProductRepo) GetAll(_ context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type mockInvestorRepo struct {
	items  map[int64]models.Investor
	nextID int64
}

func newMockInvestorRepo() *mockInvestorRepo {
	return &mockInvestorRepo{items: map[int64]models.Investor{}}
}

func (r *mockInvestorRepo) Create(_ context.Context, inv *models.Investor, _ pgx.Tx) error {
	r.nextID++
	inv.ID = r.nextID
	inv.CreatedAt = time.Now()
	r.items[inv.ID] = *inv
	return nil
}

func (r *mockInvestorRepo) GetByID(_ context.Context, id int64) (*models.Investor, error) {
	inv, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &inv, nil
}

func (r *mockInvestorRepo) GetAll(_ context.Context) ([]models.Investor, error) {
	out := make([]models.Investor, 0, len(r.items))
	for _, inv := range r.items {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type mockNavRepo struct {
	records    []models.NavRecord
	strategies *mockStrategyRepo
	nextID     int64
}

func newMockNavRepo(strategies *mockStrategyRepo) *mockNavRepo {
	return &mockNavRepo{strategies: strategies}
}

func (r *mockNavRepo) Upsert(_ context.Context, record *models.NavRecord, _ pgx.Tx) error {
	for i, existing := range r.records {
		if existing.StrategyID == record.StrategyID && existing.Date.Equal(record.Date) {
			record.ID = existing.ID
			record.CreatedAt = existing.CreatedAt
			r.records[i] = *record
			return nil
		}
	}
	r.nextID++
	record.ID = r.nextID
	record.CreatedAt = time.Now()
	r.records = append(r.records, *record)
	return nil
}

func (r *mockNavRepo) GetAt(_ context.Context, strategyID int64, date time.Time) (*models.NavRecord, error) {
	for _, record := range r.records {
		if record.StrategyID == strategyID && record.Date.Equal(date) {
			found := record
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockNavRepo) GetLatestAt(_ context.Context, strategyID int64, date time.Time) (*models.NavRecord, error) {
	return r.latest(strategyID, func(d time.Time) bool { return !d.After(date) })
}

func (r *mockNavRepo) GetLastBefore(_ context.Context, strategyID int64, date time.Time) (*models.NavRecord, error) {
	return r.latest(strategyID, func(d time.Time) bool { return d.Before(date) })
}

func (r *mockNavRepo) latest(strategyID int64, include func(time.Time) bool) (*models.NavRecord, error) {
	var best *models.NavRecord
	for i := range r.records {
		record := r.records[i]
		if record.StrategyID != strategyID || !include(record.Date) {
			continue
		}
		if best == nil || record.Date.After(best.Date) {
			found := record
			best = &found
		}
	}
	if best == nil {
		return nil, repositories.ErrNotFound
	}
	return best, nil
}

func (r *mockNavRepo) List(_ context.Context, filter repositories.NavRecordFilter) ([]models.NavRecordWithStrategy, error) {
	var out []models.NavRecordWithStrategy
	for _, record := range r.records {
		if filter.StrategyID != nil && record.StrategyID != *filter.StrategyID {
			continue
		}
		if filter.StartDate != nil && record.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && record.Date.After(*filter.EndDate) {
			continue
		}
		name := ""
		if s, ok := r.strategies.items[record.StrategyID]; ok {
			name = s.Name
		}
		out = append(out, models.NavRecordWithStrategy{NavRecord: record, StrategyName: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type mockWeightRepo struct {
	weights    []models.ProductWeight
	strategies *mockStrategyRepo
	nextID     int64
}

func newMockWeightRepo(strategies *mockStrategyRepo) *mockWeightRepo {
	return &mockWeightRepo{strategies: strategies}
}

func (r *mockWeightRepo) Upsert(_ context.Context, w *models.ProductWeight, _ pgx.Tx) error {
	for i, existing := range r.weights {
		if existing.ProductID == w.ProductID && existing.StrategyID == w.StrategyID &&
			existing.EffectiveDate.Equal(w.EffectiveDate) {
			w.ID = existing.ID
			w.CreatedAt = existing.CreatedAt
			r.weights[i] = *w
			return nil
		}
	}
	r.nextID++
	w.ID = r.nextID
	w.CreatedAt = time.Now()
	r.weights = append(r.weights, *w)
	return nil
}

func (r *mockWeightRepo) GetActiveWeights(_ context.Context, productID int64, asOf time.Time) ([]models.ProductWeightWithStrategy, error) {
	best := map[int64]models.ProductWeight{}
	for _, w := range r.weights {
		if w.ProductID != productID || w.EffectiveDate.After(asOf) {
			continue
		}
		current, ok := best[w.StrategyID]
		if !ok || w.EffectiveDate.After(current.EffectiveDate) ||
			(w.EffectiveDate.Equal(current.EffectiveDate) && w.ID > current.ID) {
			best[w.StrategyID] = w
		}
	}

	strategyIDs := make([]int64, 0, len(best))
	for id := range best {
		strategyIDs = append(strategyIDs, id)
	}
	sort.Slice(strategyIDs, func(i, j int) bool { return strategyIDs[i] < strategyIDs[j] })

	out := make([]models.ProductWeightWithStrategy, 0, len(best))
	for _, id := range strategyIDs {
		w := best[id]
		name := ""
		if s, ok := r.strategies.items[id]; ok {
			name = s.Name
		}
		out = append(out, models.ProductWeightWithStrategy{ProductWeight: w, StrategyName: name})
	}
	return out, nil
}

func (r *mockWeightRepo) ListByProduct(_ context.Context, productID int64) ([]models.ProductWeightWithStrategy, error) {
	var out []models.ProductWeightWithStrategy
	for _, w := range r.weights {
		if w.ProductID != productID {
			continue
		}
		name := ""
		if s, ok := r.strategies.items[w.StrategyID]; ok {
			name = s.Name
		}
		out = append(out, models.ProductWeightWithStrategy{ProductWeight: w, StrategyName: name})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EffectiveDate.Equal(out[j].EffectiveDate) {
			return out[i].EffectiveDate.After(out[j].EffectiveDate)
		}
		return out[i].StrategyID < out[j].StrategyID
	})
	return out, nil
}

func (r *mockWeightRepo) GetBatch(_ context.Context, productID int64, effectiveDate time.Time) ([]models.ProductWeight, error) {
	var out []models.ProductWeight
	for _, w := range r.weights {
		if w.ProductID == productID && w.EffectiveDate.Equal(effectiveDate) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StrategyID < out[j].StrategyID })
	return out, nil
}

func (r *mockWeightRepo) GetProductIDsByStrategy(_ context.Context, strategyID int64) ([]int64, error) {
	seen := map[int64]bool{}
	var ids []int64
	for _, w := range r.weights {
		if w.StrategyID != strategyID || seen[w.ProductID] {
			continue
		}
		seen[w.ProductID] = true
		ids = append(ids, w.ProductID)
	}
	return ids, nil
}

type mockInvestmentRepo struct {
	items     []models.Investment
	investors *mockInvestorRepo
	products  *mockProductRepo
	nextID    int64
}

func newMockInvestmentRepo(investors *mockInvestorRepo, products *mockProductRepo) *mockInvestmentRepo {
	return &mockInvestmentRepo{investors: investors, products: products}
}

func (r *mockInvestmentRepo) Append(_ context.Context, inv *models.Investment, _ pgx.Tx) error {
	r.nextID++
	inv.ID = r.nextID
	inv.CreatedAt = time.Now()
	r.items = append(r.items, *inv)
	return nil
}

func (r *mockInvestmentRepo) List(_ context.Context, filter repositories.InvestmentFilter) ([]models.InvestmentWithNames, error) {
	var out []models.InvestmentWithNames
	for _, inv := range r.items {
		if filter.InvestorID != nil && inv.InvestorID != *filter.InvestorID {
			continue
		}
		if filter.ProductID != nil && inv.ProductID != *filter.ProductID {
			continue
		}
		withNames := models.InvestmentWithNames{Investment: inv}
		if investor, ok := r.investors.items[inv.InvestorID]; ok {
			withNames.InvestorName = investor.Name
		}
		if product, ok := r.products.items[inv.ProductID]; ok {
			withNames.ProductName = product.Name
		}
		out = append(out, withNames)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
