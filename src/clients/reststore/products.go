package reststore

import (
	"context"
	"fmt"
	"net/url"

	"fundnav/src/models"
	"fundnav/src/repositories"

	"github.com/jackc/pgx/v5"
)

type ProductStore struct {
	client *Client
}

func NewProductStore(client *Client) *ProductStore {
	return &ProductStore{client: client}
}

func (s *ProductStore) Create(ctx context.Context, product *models.Product, _ pgx.Tx) error {
	body := []productRow{{
		Name:        product.Name,
		Description: product.Description,
	}}
	var rows []productRow
	if err := s.client.insert(ctx, "products", body, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("rest store returned no row for created product")
	}
	*product = *rows[0].toModel()
	return nil
}

func (s *ProductStore) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	params := url.Values{}
	params.Set("id", fmt.Sprintf("eq.%d", id))

	var rows []productRow
	if err := s.client.get(ctx, "products", params, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, repositories.ErrNotFound
	}
	return rows[0].toModel(), nil
}

func (s *ProductStore) GetAll(ctx context.Context) ([]models.Product, error) {
	params := url.Values{}
	params.Set("order", "created_at.asc")

	var rows []productRow
	if err := s.client.get(ctx, "products", params, &rows); err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, *row.toModel())
	}
	return products, nil
}

var _ repositories.ProductRepository = (*ProductStore)(nil)
