package inventory

import (
	"context"

	"rocketcart/internal/domain/model"
	repo "rocketcart/internal/repository"
)

// RepositoryClient は商品DBを直接読む InventoryClient（--inventory=db）
type RepositoryClient struct {
	products repo.ProductRepository
}

// DI
func NewRepositoryClient(products repo.ProductRepository) *RepositoryClient {
	return &RepositoryClient{products: products}
}

func (c *RepositoryClient) GetStock(ctx context.Context, productID int64) (model.Stock, error) {
	p, err := c.products.FindByID(ctx, productID)
	if err != nil {
		return model.Stock{}, err
	}
	return p.StockOf(), nil
}

func (c *RepositoryClient) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	return c.products.FindByID(ctx, productID)
}
